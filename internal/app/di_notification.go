package app

import (
	"fmt"

	notificationHTTP "github.com/allisson/crm/internal/notification/http"
	notificationRepository "github.com/allisson/crm/internal/notification/repository"
	notificationUseCase "github.com/allisson/crm/internal/notification/usecase"
	outboxRepository "github.com/allisson/crm/internal/outbox/repository"
	outboxUseCase "github.com/allisson/crm/internal/outbox/usecase"
)

// NotificationRepository returns the notification repository for the configured driver.
func (c *Container) NotificationRepository() (notificationUseCase.NotificationRepository, error) {
	var err error
	c.notificationRepositoryInit.Do(func() {
		c.notificationRepository, err = c.initNotificationRepository()
		if err != nil {
			c.initErrors["notificationRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["notificationRepository"]; exists {
		return nil, storedErr
	}
	return c.notificationRepository, nil
}

// NotificationUseCase returns the notification use case.
func (c *Container) NotificationUseCase() (notificationUseCase.NotificationUseCase, error) {
	var err error
	c.notificationUseCaseInit.Do(func() {
		c.notificationUseCase, err = c.initNotificationUseCase()
		if err != nil {
			c.initErrors["notificationUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["notificationUseCase"]; exists {
		return nil, storedErr
	}
	return c.notificationUseCase, nil
}

// NotificationHandler returns the HTTP handler for notification routes.
func (c *Container) NotificationHandler() (*notificationHTTP.NotificationHandler, error) {
	var err error
	c.notificationHandlerInit.Do(func() {
		c.notificationHandler, err = c.initNotificationHandler()
		if err != nil {
			c.initErrors["notificationHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["notificationHandler"]; exists {
		return nil, storedErr
	}
	return c.notificationHandler, nil
}

// OutboxRepository returns the outbox event repository for the configured driver.
func (c *Container) OutboxRepository() (outboxUseCase.OutboxEventRepository, error) {
	var err error
	c.outboxRepositoryInit.Do(func() {
		c.outboxRepository, err = c.initOutboxRepository()
		if err != nil {
			c.initErrors["outboxRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["outboxRepository"]; exists {
		return nil, storedErr
	}
	return c.outboxRepository, nil
}

// OutboxUseCase returns the outbox worker wired to the notification event processor.
func (c *Container) OutboxUseCase() (outboxUseCase.UseCase, error) {
	var err error
	c.outboxUseCaseInit.Do(func() {
		c.outboxUseCase, err = c.initOutboxUseCase()
		if err != nil {
			c.initErrors["outboxUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["outboxUseCase"]; exists {
		return nil, storedErr
	}
	return c.outboxUseCase, nil
}

func (c *Container) initNotificationRepository() (notificationUseCase.NotificationRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for notification repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return notificationRepository.NewPostgreSQLNotificationRepository(db), nil
	case "mysql":
		return notificationRepository.NewMySQLNotificationRepository(db), nil
	default:
		return nil, c.unsupportedDriver()
	}
}

func (c *Container) initOutboxRepository() (outboxUseCase.OutboxEventRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for outbox repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return outboxRepository.NewPostgreSQLOutboxEventRepository(db), nil
	case "mysql":
		return outboxRepository.NewMySQLOutboxEventRepository(db), nil
	default:
		return nil, c.unsupportedDriver()
	}
}

func (c *Container) initNotificationUseCase() (notificationUseCase.NotificationUseCase, error) {
	repository, err := c.NotificationRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get notification repository for notification use case: %w", err)
	}

	baseUseCase := notificationUseCase.NewNotificationUseCase(repository)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for notification use case: %w", err)
		}
		return notificationUseCase.NewNotificationUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initNotificationHandler() (*notificationHTTP.NotificationHandler, error) {
	useCase, err := c.NotificationUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get notification use case for notification handler: %w", err)
	}
	authorizer, err := c.Authorizer()
	if err != nil {
		return nil, fmt.Errorf("failed to get authorizer for notification handler: %w", err)
	}
	return notificationHTTP.NewNotificationHandler(useCase, authorizer, c.Logger()), nil
}

func (c *Container) initOutboxUseCase() (outboxUseCase.UseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for outbox use case: %w", err)
	}
	repository, err := c.OutboxRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get outbox repository for outbox use case: %w", err)
	}
	notifications, err := c.NotificationRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get notification repository for outbox use case: %w", err)
	}
	linkSealer, err := c.LinkSealer()
	if err != nil {
		return nil, fmt.Errorf("failed to get link sealer for outbox use case: %w", err)
	}

	logger := c.Logger()
	config := outboxUseCase.Config{
		Interval:   c.config.WorkerInterval,
		BatchSize:  c.config.WorkerBatchSize,
		MaxRetries: c.config.WorkerMaxRetries,
	}
	processor := notificationUseCase.NewEventProcessor(
		notifications,
		linkSealer,
		notificationUseCase.NewLogLinkSender(logger),
		logger,
	)

	return outboxUseCase.NewOutboxUseCase(config, txManager, repository, processor, logger), nil
}
