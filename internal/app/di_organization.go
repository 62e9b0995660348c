package app

import (
	"fmt"

	orgHTTP "github.com/allisson/crm/internal/organization/http"
	orgRepository "github.com/allisson/crm/internal/organization/repository"
	orgUseCase "github.com/allisson/crm/internal/organization/usecase"
)

// OrganizationRepository returns the organization repository for the configured driver.
func (c *Container) OrganizationRepository() (orgUseCase.OrganizationRepository, error) {
	var err error
	c.organizationRepositoryInit.Do(func() {
		c.organizationRepository, err = c.initOrganizationRepository()
		if err != nil {
			c.initErrors["organizationRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["organizationRepository"]; exists {
		return nil, storedErr
	}
	return c.organizationRepository, nil
}

// MembershipRepository returns the membership repository for the configured driver.
func (c *Container) MembershipRepository() (orgUseCase.MembershipRepository, error) {
	var err error
	c.membershipRepositoryInit.Do(func() {
		c.membershipRepository, err = c.initMembershipRepository()
		if err != nil {
			c.initErrors["membershipRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["membershipRepository"]; exists {
		return nil, storedErr
	}
	return c.membershipRepository, nil
}

// OrganizationUseCase returns the organization use case.
func (c *Container) OrganizationUseCase() (orgUseCase.OrganizationUseCase, error) {
	var err error
	c.organizationUseCaseInit.Do(func() {
		c.organizationUseCase, err = c.initOrganizationUseCase()
		if err != nil {
			c.initErrors["organizationUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["organizationUseCase"]; exists {
		return nil, storedErr
	}
	return c.organizationUseCase, nil
}

// OrganizationHandler returns the HTTP handler for organization routes.
func (c *Container) OrganizationHandler() (*orgHTTP.OrganizationHandler, error) {
	var err error
	c.organizationHandlerInit.Do(func() {
		c.organizationHandler, err = c.initOrganizationHandler()
		if err != nil {
			c.initErrors["organizationHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["organizationHandler"]; exists {
		return nil, storedErr
	}
	return c.organizationHandler, nil
}

func (c *Container) initOrganizationRepository() (orgUseCase.OrganizationRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for organization repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return orgRepository.NewPostgreSQLOrganizationRepository(db), nil
	case "mysql":
		return orgRepository.NewMySQLOrganizationRepository(db), nil
	default:
		return nil, c.unsupportedDriver()
	}
}

func (c *Container) initMembershipRepository() (orgUseCase.MembershipRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for membership repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return orgRepository.NewPostgreSQLMembershipRepository(db), nil
	case "mysql":
		return orgRepository.NewMySQLMembershipRepository(db), nil
	default:
		return nil, c.unsupportedDriver()
	}
}

func (c *Container) initOrganizationUseCase() (orgUseCase.OrganizationUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for organization use case: %w", err)
	}
	organizationRepository, err := c.OrganizationRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get organization repository for organization use case: %w", err)
	}
	membershipRepository, err := c.MembershipRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get membership repository for organization use case: %w", err)
	}
	profileRepository, err := c.ProfileRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get profile repository for organization use case: %w", err)
	}
	userRepository, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for organization use case: %w", err)
	}
	outboxRepository, err := c.OutboxRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get outbox repository for organization use case: %w", err)
	}

	baseUseCase := orgUseCase.NewOrganizationUseCase(
		txManager,
		organizationRepository,
		membershipRepository,
		profileRepository,
		userRepository,
		outboxRepository,
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for organization use case: %w", err)
		}
		return orgUseCase.NewOrganizationUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initOrganizationHandler() (*orgHTTP.OrganizationHandler, error) {
	useCase, err := c.OrganizationUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get organization use case for organization handler: %w", err)
	}
	authorizer, err := c.Authorizer()
	if err != nil {
		return nil, fmt.Errorf("failed to get authorizer for organization handler: %w", err)
	}
	return orgHTTP.NewOrganizationHandler(useCase, authorizer, c.Logger()), nil
}
