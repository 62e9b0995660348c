package app

import (
	"fmt"

	transactionHTTP "github.com/allisson/crm/internal/transaction/http"
	transactionRepository "github.com/allisson/crm/internal/transaction/repository"
	transactionUseCase "github.com/allisson/crm/internal/transaction/usecase"
)

// TransactionRepository returns the transaction repository for the configured driver.
func (c *Container) TransactionRepository() (transactionUseCase.TransactionRepository, error) {
	var err error
	c.transactionRepositoryInit.Do(func() {
		c.transactionRepository, err = c.initTransactionRepository()
		if err != nil {
			c.initErrors["transactionRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["transactionRepository"]; exists {
		return nil, storedErr
	}
	return c.transactionRepository, nil
}

// TransactionUseCase returns the transaction use case.
func (c *Container) TransactionUseCase() (transactionUseCase.TransactionUseCase, error) {
	var err error
	c.transactionUseCaseInit.Do(func() {
		c.transactionUseCase, err = c.initTransactionUseCase()
		if err != nil {
			c.initErrors["transactionUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["transactionUseCase"]; exists {
		return nil, storedErr
	}
	return c.transactionUseCase, nil
}

// TransactionHandler returns the HTTP handler for transaction and purchase routes.
func (c *Container) TransactionHandler() (*transactionHTTP.TransactionHandler, error) {
	var err error
	c.transactionHandlerInit.Do(func() {
		c.transactionHandler, err = c.initTransactionHandler()
		if err != nil {
			c.initErrors["transactionHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["transactionHandler"]; exists {
		return nil, storedErr
	}
	return c.transactionHandler, nil
}

func (c *Container) initTransactionRepository() (transactionUseCase.TransactionRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for transaction repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return transactionRepository.NewPostgreSQLTransactionRepository(db), nil
	case "mysql":
		return transactionRepository.NewMySQLTransactionRepository(db), nil
	default:
		return nil, c.unsupportedDriver()
	}
}

func (c *Container) initTransactionUseCase() (transactionUseCase.TransactionUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for transaction use case: %w", err)
	}
	repository, err := c.TransactionRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction repository for transaction use case: %w", err)
	}
	priceRepository, err := c.PriceRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get price repository for transaction use case: %w", err)
	}
	membershipRepository, err := c.MembershipRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get membership repository for transaction use case: %w", err)
	}
	outboxRepository, err := c.OutboxRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get outbox repository for transaction use case: %w", err)
	}

	baseUseCase := transactionUseCase.NewTransactionUseCase(
		txManager,
		repository,
		priceRepository,
		membershipRepository,
		outboxRepository,
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for transaction use case: %w", err)
		}
		return transactionUseCase.NewTransactionUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initTransactionHandler() (*transactionHTTP.TransactionHandler, error) {
	useCase, err := c.TransactionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction use case for transaction handler: %w", err)
	}
	authorizer, err := c.Authorizer()
	if err != nil {
		return nil, fmt.Errorf("failed to get authorizer for transaction handler: %w", err)
	}
	return transactionHTTP.NewTransactionHandler(useCase, authorizer, c.Logger()), nil
}
