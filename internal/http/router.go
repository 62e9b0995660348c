package http

import (
	"context"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/crm/internal/auth/http"
	catalogHTTP "github.com/allisson/crm/internal/catalog/http"
	"github.com/allisson/crm/internal/config"
	"github.com/allisson/crm/internal/metrics"
	notificationHTTP "github.com/allisson/crm/internal/notification/http"
	organizationHTTP "github.com/allisson/crm/internal/organization/http"
	settingsHTTP "github.com/allisson/crm/internal/settings/http"
	transactionHTTP "github.com/allisson/crm/internal/transaction/http"
)

// Handlers groups the route handlers mounted by SetupRouter.
type Handlers struct {
	Auth         *authHTTP.AuthHandler
	Settings     *settingsHTTP.SettingsHandler
	Organization *organizationHTTP.OrganizationHandler
	Catalog      *catalogHTTP.CatalogHandler
	Transaction  *transactionHTTP.TransactionHandler
	Notification *notificationHTTP.NotificationHandler
}

// SetupRouter builds the gin engine with every route. ctx bounds the background cleanup of the
// auth rate limiter. metricsProvider may be nil when metrics are disabled.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	handlers Handlers,
	metricsProvider *metrics.Provider,
) {
	gin.SetMode(cfg.GetGinMode())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}
	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	authLimit := func(c *gin.Context) { c.Next() }
	if cfg.RateLimitAuthEnabled {
		authLimit = authHTTP.IPRateLimitMiddleware(ctx, cfg.RateLimitAuthRequestsPerSec, cfg.RateLimitAuthBurst, s.logger)
	}

	router.GET("/auth/callback", authLimit, handlers.Auth.CallbackHandler)

	v1 := router.Group("/v1")

	auth := v1.Group("/auth")
	auth.POST("/sign-in", authLimit, handlers.Auth.SignInHandler)
	auth.POST("/magic-link", authLimit, handlers.Auth.MagicLinkHandler)
	auth.POST("/recover", authLimit, handlers.Auth.RecoverHandler)
	auth.POST("/sign-out", handlers.Auth.SignOutHandler)
	auth.POST("/password", handlers.Auth.UpdatePasswordHandler)

	v1.GET("/me", handlers.Auth.MeHandler)
	v1.GET("/site", handlers.Settings.SiteHandler)

	admin := v1.Group("/admin")
	admin.GET("/settings", handlers.Settings.ListHandler)
	admin.PUT("/settings/:key", handlers.Settings.SetHandler)

	v1.GET("/notifications", handlers.Notification.ListHandler)
	v1.POST("/notifications/:notification_id/read", handlers.Notification.MarkReadHandler)

	orgs := v1.Group("/organizations")
	orgs.GET("", handlers.Organization.ListHandler)
	orgs.POST("/switch", handlers.Organization.SwitchHandler)

	org := orgs.Group("/:org_id")
	org.GET("", handlers.Organization.GetHandler)
	org.POST("/members", handlers.Organization.AddMemberHandler)
	org.GET("/profiles", handlers.Organization.ListProfilesHandler)
	org.PUT("/profiles/:user_id/role", handlers.Organization.UpdateRoleHandler)

	org.GET("/products", handlers.Catalog.ListProductsHandler)
	org.POST("/products", handlers.Catalog.CreateProductHandler)
	org.GET("/products/:product_id", handlers.Catalog.GetProductHandler)
	org.POST("/products/:product_id/prices", handlers.Catalog.CreatePriceHandler)

	org.GET("/transactions", handlers.Transaction.ListHandler)
	org.POST("/transactions", handlers.Transaction.CreateHandler)
	org.GET("/transactions/:transaction_id", handlers.Transaction.GetHandler)
	org.GET("/purchases/:product_id", handlers.Transaction.PurchaseHandler)

	s.router = router
}
