// Package app provides the dependency injection container that assembles the application.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	authHTTP "github.com/allisson/crm/internal/auth/http"
	authService "github.com/allisson/crm/internal/auth/service"
	authUseCase "github.com/allisson/crm/internal/auth/usecase"
	catalogHTTP "github.com/allisson/crm/internal/catalog/http"
	catalogUseCase "github.com/allisson/crm/internal/catalog/usecase"
	"github.com/allisson/crm/internal/config"
	"github.com/allisson/crm/internal/database"
	"github.com/allisson/crm/internal/http"
	"github.com/allisson/crm/internal/metrics"
	notificationHTTP "github.com/allisson/crm/internal/notification/http"
	notificationUseCase "github.com/allisson/crm/internal/notification/usecase"
	orgHTTP "github.com/allisson/crm/internal/organization/http"
	orgUseCase "github.com/allisson/crm/internal/organization/usecase"
	outboxUseCase "github.com/allisson/crm/internal/outbox/usecase"
	settingsHTTP "github.com/allisson/crm/internal/settings/http"
	settingsService "github.com/allisson/crm/internal/settings/service"
	settingsUseCase "github.com/allisson/crm/internal/settings/usecase"
	transactionHTTP "github.com/allisson/crm/internal/transaction/http"
	transactionUseCase "github.com/allisson/crm/internal/transaction/usecase"
)

// Container holds all application dependencies. Components are created on first access.
type Container struct {
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	txManager       database.TxManager
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Auth
	userRepository     authUseCase.UserRepository
	sessionRepository  authUseCase.SessionRepository
	authCodeRepository authUseCase.AuthCodeRepository
	profileRepository  orgUseCase.ProfileStore
	passwordService    authService.PasswordService
	tokenService       authService.TokenService
	signingKey         []byte
	accessTokenService authService.AccessTokenService
	linkSealer         authService.LinkSealer
	sessionUseCase     authUseCase.SessionUseCase
	gate               authUseCase.Gate
	authorizer         *authHTTP.Authorizer
	authHandler        *authHTTP.AuthHandler

	// Settings
	settingRepository settingsUseCase.SettingRepository
	settingsCache     *settingsService.Cache
	settingsUseCase   settingsUseCase.SettingsUseCase
	settingsHandler   *settingsHTTP.SettingsHandler

	// Organizations
	organizationRepository orgUseCase.OrganizationRepository
	membershipRepository   orgUseCase.MembershipRepository
	organizationUseCase    orgUseCase.OrganizationUseCase
	organizationHandler    *orgHTTP.OrganizationHandler

	// Catalog
	productRepository catalogUseCase.ProductRepository
	priceRepository   catalogUseCase.PriceRepository
	catalogUseCase    catalogUseCase.CatalogUseCase
	catalogHandler    *catalogHTTP.CatalogHandler

	// Transactions
	transactionRepository transactionUseCase.TransactionRepository
	transactionUseCase    transactionUseCase.TransactionUseCase
	transactionHandler    *transactionHTTP.TransactionHandler

	// Notifications and outbox
	notificationRepository notificationUseCase.NotificationRepository
	notificationUseCase    notificationUseCase.NotificationUseCase
	notificationHandler    *notificationHTTP.NotificationHandler
	outboxRepository       outboxUseCase.OutboxEventRepository
	outboxUseCase          outboxUseCase.UseCase

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	mu                         sync.Mutex
	loggerInit                 sync.Once
	dbInit                     sync.Once
	txManagerInit              sync.Once
	metricsProviderInit        sync.Once
	businessMetricsInit        sync.Once
	userRepositoryInit         sync.Once
	sessionRepositoryInit      sync.Once
	authCodeRepositoryInit     sync.Once
	profileRepositoryInit      sync.Once
	passwordServiceInit        sync.Once
	tokenServiceInit           sync.Once
	signingKeyInit             sync.Once
	accessTokenServiceInit     sync.Once
	linkSealerInit             sync.Once
	sessionUseCaseInit         sync.Once
	gateInit                   sync.Once
	authorizerInit             sync.Once
	authHandlerInit            sync.Once
	settingRepositoryInit      sync.Once
	settingsCacheInit          sync.Once
	settingsUseCaseInit        sync.Once
	settingsHandlerInit        sync.Once
	organizationRepositoryInit sync.Once
	membershipRepositoryInit   sync.Once
	organizationUseCaseInit    sync.Once
	organizationHandlerInit    sync.Once
	productRepositoryInit      sync.Once
	priceRepositoryInit        sync.Once
	catalogUseCaseInit         sync.Once
	catalogHandlerInit         sync.Once
	transactionRepositoryInit  sync.Once
	transactionUseCaseInit     sync.Once
	transactionHandlerInit     sync.Once
	notificationRepositoryInit sync.Once
	notificationUseCaseInit    sync.Once
	notificationHandlerInit    sync.Once
	outboxRepositoryInit       sync.Once
	outboxUseCaseInit          sync.Once
	httpServerInit             sync.Once
	metricsServerInit          sync.Once
	initErrors                 map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the JSON logger configured from LOG_LEVEL.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
func (c *Container) DB() (*sql.DB, error) {
	var err error
	c.dbInit.Do(func() {
		c.db, err = c.initDB()
		if err != nil {
			c.initErrors["db"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
func (c *Container) TxManager() (database.TxManager, error) {
	var err error
	c.txManagerInit.Do(func() {
		c.txManager, err = c.initTxManager()
		if err != nil {
			c.initErrors["txManager"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// MetricsProvider returns the OpenTelemetry provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		c.metricsProvider, err = c.initMetricsProvider()
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the use case metrics recorder. It is a no-op when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// HTTPServer returns the API server with every route registered. ctx bounds the background
// goroutines started by the router.
func (c *Container) HTTPServer(ctx context.Context) (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer(ctx)
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the Prometheus server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.initErrors["metricsServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown flushes the metrics provider, closes the link keeper and the database. Servers
// are stopped by their owners before this is called.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.linkSealer != nil {
		if err := c.linkSealer.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("link sealer close: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	return errors.Join(shutdownErrors...)
}

func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func (c *Container) initTxManager() (database.TxManager, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewTxManager(db), nil
}

func (c *Container) initMetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}
	provider, err := metrics.NewProvider(c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}
	return provider, nil
}

func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}
	return metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
}

func (c *Container) initHTTPServer(ctx context.Context) (*http.Server, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	var handlers http.Handlers
	if handlers.Auth, err = c.AuthHandler(); err != nil {
		return nil, fmt.Errorf("failed to get auth handler for http server: %w", err)
	}
	if handlers.Settings, err = c.SettingsHandler(); err != nil {
		return nil, fmt.Errorf("failed to get settings handler for http server: %w", err)
	}
	if handlers.Organization, err = c.OrganizationHandler(); err != nil {
		return nil, fmt.Errorf("failed to get organization handler for http server: %w", err)
	}
	if handlers.Catalog, err = c.CatalogHandler(); err != nil {
		return nil, fmt.Errorf("failed to get catalog handler for http server: %w", err)
	}
	if handlers.Transaction, err = c.TransactionHandler(); err != nil {
		return nil, fmt.Errorf("failed to get transaction handler for http server: %w", err)
	}
	if handlers.Notification, err = c.NotificationHandler(); err != nil {
		return nil, fmt.Errorf("failed to get notification handler for http server: %w", err)
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, c.Logger())
	server.SetupRouter(ctx, c.config, handlers, provider)
	return server, nil
}

func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}
	if provider == nil {
		return nil, nil
	}
	return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider), nil
}

// unsupportedDriver is returned by every repository getter for an unknown DB_DRIVER.
func (c *Container) unsupportedDriver() error {
	return fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
}
