package app

import (
	"fmt"

	catalogHTTP "github.com/allisson/crm/internal/catalog/http"
	catalogRepository "github.com/allisson/crm/internal/catalog/repository"
	catalogUseCase "github.com/allisson/crm/internal/catalog/usecase"
)

// ProductRepository returns the product repository for the configured driver.
func (c *Container) ProductRepository() (catalogUseCase.ProductRepository, error) {
	var err error
	c.productRepositoryInit.Do(func() {
		c.productRepository, err = c.initProductRepository()
		if err != nil {
			c.initErrors["productRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["productRepository"]; exists {
		return nil, storedErr
	}
	return c.productRepository, nil
}

// PriceRepository returns the price repository for the configured driver.
func (c *Container) PriceRepository() (catalogUseCase.PriceRepository, error) {
	var err error
	c.priceRepositoryInit.Do(func() {
		c.priceRepository, err = c.initPriceRepository()
		if err != nil {
			c.initErrors["priceRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["priceRepository"]; exists {
		return nil, storedErr
	}
	return c.priceRepository, nil
}

// CatalogUseCase returns the catalog use case.
func (c *Container) CatalogUseCase() (catalogUseCase.CatalogUseCase, error) {
	var err error
	c.catalogUseCaseInit.Do(func() {
		c.catalogUseCase, err = c.initCatalogUseCase()
		if err != nil {
			c.initErrors["catalogUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["catalogUseCase"]; exists {
		return nil, storedErr
	}
	return c.catalogUseCase, nil
}

// CatalogHandler returns the HTTP handler for product and price routes.
func (c *Container) CatalogHandler() (*catalogHTTP.CatalogHandler, error) {
	var err error
	c.catalogHandlerInit.Do(func() {
		c.catalogHandler, err = c.initCatalogHandler()
		if err != nil {
			c.initErrors["catalogHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["catalogHandler"]; exists {
		return nil, storedErr
	}
	return c.catalogHandler, nil
}

func (c *Container) initProductRepository() (catalogUseCase.ProductRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for product repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return catalogRepository.NewPostgreSQLProductRepository(db), nil
	case "mysql":
		return catalogRepository.NewMySQLProductRepository(db), nil
	default:
		return nil, c.unsupportedDriver()
	}
}

func (c *Container) initPriceRepository() (catalogUseCase.PriceRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for price repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return catalogRepository.NewPostgreSQLPriceRepository(db), nil
	case "mysql":
		return catalogRepository.NewMySQLPriceRepository(db), nil
	default:
		return nil, c.unsupportedDriver()
	}
}

func (c *Container) initCatalogUseCase() (catalogUseCase.CatalogUseCase, error) {
	productRepository, err := c.ProductRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get product repository for catalog use case: %w", err)
	}
	priceRepository, err := c.PriceRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get price repository for catalog use case: %w", err)
	}

	baseUseCase := catalogUseCase.NewCatalogUseCase(productRepository, priceRepository)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for catalog use case: %w", err)
		}
		return catalogUseCase.NewCatalogUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initCatalogHandler() (*catalogHTTP.CatalogHandler, error) {
	useCase, err := c.CatalogUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog use case for catalog handler: %w", err)
	}
	authorizer, err := c.Authorizer()
	if err != nil {
		return nil, fmt.Errorf("failed to get authorizer for catalog handler: %w", err)
	}
	return catalogHTTP.NewCatalogHandler(useCase, authorizer, c.Logger()), nil
}
