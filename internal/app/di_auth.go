package app

import (
	"context"
	"fmt"

	authHTTP "github.com/allisson/crm/internal/auth/http"
	authRepository "github.com/allisson/crm/internal/auth/repository"
	authService "github.com/allisson/crm/internal/auth/service"
	authUseCase "github.com/allisson/crm/internal/auth/usecase"
	orgUseCase "github.com/allisson/crm/internal/organization/usecase"
)

// UserRepository returns the user repository for the configured driver.
func (c *Container) UserRepository() (authUseCase.UserRepository, error) {
	var err error
	c.userRepositoryInit.Do(func() {
		c.userRepository, err = c.initUserRepository()
		if err != nil {
			c.initErrors["userRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["userRepository"]; exists {
		return nil, storedErr
	}
	return c.userRepository, nil
}

// SessionRepository returns the session repository for the configured driver.
func (c *Container) SessionRepository() (authUseCase.SessionRepository, error) {
	var err error
	c.sessionRepositoryInit.Do(func() {
		c.sessionRepository, err = c.initSessionRepository()
		if err != nil {
			c.initErrors["sessionRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sessionRepository"]; exists {
		return nil, storedErr
	}
	return c.sessionRepository, nil
}

// AuthCodeRepository returns the single-use code repository for the configured driver.
func (c *Container) AuthCodeRepository() (authUseCase.AuthCodeRepository, error) {
	var err error
	c.authCodeRepositoryInit.Do(func() {
		c.authCodeRepository, err = c.initAuthCodeRepository()
		if err != nil {
			c.initErrors["authCodeRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authCodeRepository"]; exists {
		return nil, storedErr
	}
	return c.authCodeRepository, nil
}

// ProfileRepository returns the profile repository. The auth gate reads it and the
// organization use case writes it.
func (c *Container) ProfileRepository() (orgUseCase.ProfileStore, error) {
	var err error
	c.profileRepositoryInit.Do(func() {
		c.profileRepository, err = c.initProfileRepository()
		if err != nil {
			c.initErrors["profileRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["profileRepository"]; exists {
		return nil, storedErr
	}
	return c.profileRepository, nil
}

// PasswordService returns the argon2id password service.
func (c *Container) PasswordService() authService.PasswordService {
	c.passwordServiceInit.Do(func() {
		c.passwordService = authService.NewPasswordService()
	})
	return c.passwordService
}

// TokenService returns the opaque token service used for refresh tokens and auth codes.
func (c *Container) TokenService() authService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = authService.NewTokenService()
	})
	return c.tokenService
}

// SigningKey returns the auth master key. It is loaded, and unwrapped by the KMS keeper
// when configured, on first access.
func (c *Container) SigningKey() ([]byte, error) {
	var err error
	c.signingKeyInit.Do(func() {
		c.signingKey, err = c.initSigningKey()
		if err != nil {
			c.initErrors["signingKey"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["signingKey"]; exists {
		return nil, storedErr
	}
	return c.signingKey, nil
}

// LinkSealer returns the keeper that encrypts auth links before they are queued.
func (c *Container) LinkSealer() (authService.LinkSealer, error) {
	var err error
	c.linkSealerInit.Do(func() {
		c.linkSealer, err = c.initLinkSealer()
		if err != nil {
			c.initErrors["linkSealer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["linkSealer"]; exists {
		return nil, storedErr
	}
	return c.linkSealer, nil
}

// AccessTokenService returns the access token signer.
func (c *Container) AccessTokenService() (authService.AccessTokenService, error) {
	var err error
	c.accessTokenServiceInit.Do(func() {
		c.accessTokenService, err = c.initAccessTokenService()
		if err != nil {
			c.initErrors["accessTokenService"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["accessTokenService"]; exists {
		return nil, storedErr
	}
	return c.accessTokenService, nil
}

// SessionUseCase returns the session use case.
func (c *Container) SessionUseCase() (authUseCase.SessionUseCase, error) {
	var err error
	c.sessionUseCaseInit.Do(func() {
		c.sessionUseCase, err = c.initSessionUseCase()
		if err != nil {
			c.initErrors["sessionUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sessionUseCase"]; exists {
		return nil, storedErr
	}
	return c.sessionUseCase, nil
}

// Gate returns the authorization gate.
func (c *Container) Gate() (authUseCase.Gate, error) {
	var err error
	c.gateInit.Do(func() {
		c.gate, err = c.initGate()
		if err != nil {
			c.initErrors["gate"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["gate"]; exists {
		return nil, storedErr
	}
	return c.gate, nil
}

// Authorizer returns the HTTP adapter of the gate shared by every handler.
func (c *Container) Authorizer() (*authHTTP.Authorizer, error) {
	var err error
	c.authorizerInit.Do(func() {
		c.authorizer, err = c.initAuthorizer()
		if err != nil {
			c.initErrors["authorizer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authorizer"]; exists {
		return nil, storedErr
	}
	return c.authorizer, nil
}

// AuthHandler returns the HTTP handler for the sign-in and callback routes.
func (c *Container) AuthHandler() (*authHTTP.AuthHandler, error) {
	var err error
	c.authHandlerInit.Do(func() {
		c.authHandler, err = c.initAuthHandler()
		if err != nil {
			c.initErrors["authHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authHandler"]; exists {
		return nil, storedErr
	}
	return c.authHandler, nil
}

func (c *Container) initUserRepository() (authUseCase.UserRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for user repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return authRepository.NewPostgreSQLUserRepository(db), nil
	case "mysql":
		return authRepository.NewMySQLUserRepository(db), nil
	default:
		return nil, c.unsupportedDriver()
	}
}

func (c *Container) initSessionRepository() (authUseCase.SessionRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for session repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return authRepository.NewPostgreSQLSessionRepository(db), nil
	case "mysql":
		return authRepository.NewMySQLSessionRepository(db), nil
	default:
		return nil, c.unsupportedDriver()
	}
}

func (c *Container) initAuthCodeRepository() (authUseCase.AuthCodeRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for auth code repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return authRepository.NewPostgreSQLAuthCodeRepository(db), nil
	case "mysql":
		return authRepository.NewMySQLAuthCodeRepository(db), nil
	default:
		return nil, c.unsupportedDriver()
	}
}

func (c *Container) initProfileRepository() (orgUseCase.ProfileStore, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for profile repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return authRepository.NewPostgreSQLProfileRepository(db), nil
	case "mysql":
		return authRepository.NewMySQLProfileRepository(db), nil
	default:
		return nil, c.unsupportedDriver()
	}
}

func (c *Container) initSigningKey() ([]byte, error) {
	key, err := authService.LoadSigningKey(
		context.Background(),
		c.config.AuthSigningKey,
		c.config.AuthSigningKeyKMSURI,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load auth signing key: %w", err)
	}
	return key, nil
}

func (c *Container) initAccessTokenService() (authService.AccessTokenService, error) {
	key, err := c.SigningKey()
	if err != nil {
		return nil, err
	}
	return authService.NewAccessTokenService(key, c.config.AuthAccessTokenTTL)
}

func (c *Container) initLinkSealer() (authService.LinkSealer, error) {
	key, err := c.SigningKey()
	if err != nil {
		return nil, err
	}
	return authService.NewLinkSealer(key)
}

func (c *Container) initSessionUseCase() (authUseCase.SessionUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for session use case: %w", err)
	}
	userRepository, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for session use case: %w", err)
	}
	sessionRepository, err := c.SessionRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get session repository for session use case: %w", err)
	}
	authCodeRepository, err := c.AuthCodeRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get auth code repository for session use case: %w", err)
	}
	outboxRepository, err := c.OutboxRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get outbox repository for session use case: %w", err)
	}
	accessTokenService, err := c.AccessTokenService()
	if err != nil {
		return nil, fmt.Errorf("failed to get access token service for session use case: %w", err)
	}
	linkSealer, err := c.LinkSealer()
	if err != nil {
		return nil, fmt.Errorf("failed to get link sealer for session use case: %w", err)
	}

	baseUseCase := authUseCase.NewSessionUseCase(
		c.config,
		txManager,
		userRepository,
		sessionRepository,
		authCodeRepository,
		outboxRepository,
		c.PasswordService(),
		c.TokenService(),
		accessTokenService,
		linkSealer,
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for session use case: %w", err)
		}
		return authUseCase.NewSessionUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initGate() (authUseCase.Gate, error) {
	sessionUseCase, err := c.SessionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get session use case for gate: %w", err)
	}
	profileRepository, err := c.ProfileRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get profile repository for gate: %w", err)
	}

	baseGate := authUseCase.NewGate(sessionUseCase, authUseCase.NewProfileLoader(profileRepository))

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for gate: %w", err)
		}
		return authUseCase.NewGateWithMetrics(baseGate, businessMetrics), nil
	}

	return baseGate, nil
}

func (c *Container) cookieConfig() authHTTP.CookieConfig {
	return authHTTP.CookieConfig{
		Secure: c.config.AuthCookieSecure,
		Domain: c.config.AuthCookieDomain,
	}
}

func (c *Container) initAuthorizer() (*authHTTP.Authorizer, error) {
	gate, err := c.Gate()
	if err != nil {
		return nil, fmt.Errorf("failed to get gate for authorizer: %w", err)
	}
	sessionUseCase, err := c.SessionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get session use case for authorizer: %w", err)
	}
	return authHTTP.NewAuthorizer(gate, sessionUseCase, c.cookieConfig(), c.Logger()), nil
}

func (c *Container) initAuthHandler() (*authHTTP.AuthHandler, error) {
	sessionUseCase, err := c.SessionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get session use case for auth handler: %w", err)
	}
	authorizer, err := c.Authorizer()
	if err != nil {
		return nil, fmt.Errorf("failed to get authorizer for auth handler: %w", err)
	}

	redirects := authHTTP.Redirects{
		SignInPath:        c.config.AuthSignInPath,
		PasswordResetPath: c.config.AuthPasswordResetPath,
		DefaultRedirect:   c.config.AuthDefaultRedirect,
	}
	return authHTTP.NewAuthHandler(sessionUseCase, authorizer, c.cookieConfig(), redirects, c.Logger()), nil
}
