package usecase

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/crm/internal/auth/domain"
	authService "github.com/allisson/crm/internal/auth/service"
	"github.com/allisson/crm/internal/config"
	"github.com/allisson/crm/internal/database"
	outboxDomain "github.com/allisson/crm/internal/outbox/domain"
)

type sessionUseCase struct {
	config          *config.Config
	txManager       database.TxManager
	userRepo        UserRepository
	sessionRepo     SessionRepository
	codeRepo        AuthCodeRepository
	outboxRepo      OutboxRepository
	passwordService authService.PasswordService
	tokenService    authService.TokenService
	accessTokens    authService.AccessTokenService
	linkSealer      authService.LinkSealer
	now             func() time.Time
}

func (s *sessionUseCase) Resolve(
	ctx context.Context,
	credentials authDomain.Credentials,
) (*authDomain.Resolution, error) {
	if credentials.AccessToken != "" {
		identity, err := s.GetUser(ctx, credentials.AccessToken)
		if err == nil {
			return &authDomain.Resolution{Identity: identity}, nil
		}
		if !errors.Is(err, authDomain.ErrUnauthenticated) {
			return nil, err
		}
	}

	if credentials.RefreshToken == "" {
		// A stale access cookie without a refresh token is dropped by the caller.
		return &authDomain.Resolution{SignedOut: credentials.AccessToken != ""}, authDomain.ErrUnauthenticated
	}

	// Exactly one refresh attempt.
	identity, tokens, err := s.RefreshSession(ctx, credentials.RefreshToken)
	if err == nil {
		return &authDomain.Resolution{Identity: identity, Rotated: tokens}, nil
	}
	if !errors.Is(err, authDomain.ErrUnauthenticated) {
		return nil, err
	}
	// The winner already set fresh cookies on its own response; leave them alone.
	if errors.Is(err, authDomain.ErrRefreshRaced) {
		return &authDomain.Resolution{}, authDomain.ErrUnauthenticated
	}

	if err := s.revokeByRefreshToken(ctx, credentials.RefreshToken); err != nil {
		return nil, err
	}
	return &authDomain.Resolution{SignedOut: true}, authDomain.ErrUnauthenticated
}

func (s *sessionUseCase) GetUser(ctx context.Context, accessToken string) (*authDomain.Identity, error) {
	claims, err := s.accessTokens.Verify(accessToken)
	if err != nil {
		return nil, authDomain.ErrUnauthenticated
	}

	session, err := s.sessionRepo.Get(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, authDomain.ErrSessionNotFound) {
			return nil, authDomain.ErrUnauthenticated
		}
		return nil, err
	}
	if !session.IsActive(s.now()) || session.UserID != claims.UserID {
		return nil, authDomain.ErrUnauthenticated
	}

	user, err := s.userRepo.Get(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, authDomain.ErrUserNotFound) {
			return nil, authDomain.ErrUnauthenticated
		}
		return nil, err
	}

	return &authDomain.Identity{ID: user.ID, Email: user.Email, SessionID: session.ID}, nil
}

func (s *sessionUseCase) RefreshSession(
	ctx context.Context,
	refreshToken string,
) (*authDomain.Identity, *authDomain.IssuedTokens, error) {
	oldHash := s.tokenService.HashToken(refreshToken)

	session, err := s.sessionRepo.GetByRefreshTokenHash(ctx, oldHash)
	if err != nil {
		if errors.Is(err, authDomain.ErrSessionNotFound) {
			return nil, nil, authDomain.ErrUnauthenticated
		}
		return nil, nil, err
	}

	now := s.now()
	if !session.IsActive(now) {
		return nil, nil, authDomain.ErrUnauthenticated
	}

	user, err := s.userRepo.Get(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, authDomain.ErrUserNotFound) {
			return nil, nil, authDomain.ErrUnauthenticated
		}
		return nil, nil, err
	}

	plainRefresh, newHash, err := s.tokenService.GenerateToken()
	if err != nil {
		return nil, nil, err
	}

	expiresAt := now.Add(s.config.AuthSessionTTL)
	if err := s.sessionRepo.Rotate(ctx, session.ID, oldHash, newHash, expiresAt); err != nil {
		// A concurrent request rotated first; this token is spent.
		if errors.Is(err, authDomain.ErrSessionNotFound) {
			return nil, nil, authDomain.ErrRefreshRaced
		}
		return nil, nil, err
	}

	identity := &authDomain.Identity{ID: user.ID, Email: user.Email, SessionID: session.ID}
	tokens, err := s.issueTokens(identity, plainRefresh, expiresAt, now)
	if err != nil {
		return nil, nil, err
	}
	return identity, tokens, nil
}

func (s *sessionUseCase) ExchangeCodeForSession(ctx context.Context, code string) (*authDomain.Exchange, error) {
	if code == "" {
		return nil, authDomain.ErrUnauthenticated
	}

	var exchange *authDomain.Exchange
	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		authCode, err := s.codeRepo.GetByCodeHashForUpdate(ctx, s.tokenService.HashToken(code))
		if err != nil {
			if errors.Is(err, authDomain.ErrCodeNotFound) {
				return authDomain.ErrUnauthenticated
			}
			return err
		}
		if !authCode.IsUsable(s.now()) {
			return authDomain.ErrUnauthenticated
		}

		if err := s.codeRepo.MarkUsed(ctx, authCode.ID); err != nil {
			if errors.Is(err, authDomain.ErrCodeNotFound) {
				return authDomain.ErrUnauthenticated
			}
			return err
		}

		user, err := s.userRepo.Get(ctx, authCode.UserID)
		if err != nil {
			if errors.Is(err, authDomain.ErrUserNotFound) {
				return authDomain.ErrUnauthenticated
			}
			return err
		}

		identity, tokens, err := s.openSession(ctx, user)
		if err != nil {
			return err
		}

		exchange = &authDomain.Exchange{Identity: identity, Tokens: tokens, Type: authCode.Type}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return exchange, nil
}

func (s *sessionUseCase) SignOut(ctx context.Context, credentials authDomain.Credentials) error {
	if credentials.AccessToken != "" {
		if claims, err := s.accessTokens.Verify(credentials.AccessToken); err == nil {
			return s.sessionRepo.Revoke(ctx, claims.SessionID)
		}
	}
	if credentials.RefreshToken != "" {
		return s.revokeByRefreshToken(ctx, credentials.RefreshToken)
	}
	return nil
}

func (s *sessionUseCase) SignInWithPassword(
	ctx context.Context,
	email, password string,
) (*authDomain.Exchange, error) {
	user, err := s.userRepo.GetByEmail(ctx, authDomain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, authDomain.ErrUserNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.passwordService.Compare(password, user.PasswordHash) {
		return nil, authDomain.ErrInvalidCredentials
	}

	identity, tokens, err := s.openSession(ctx, user)
	if err != nil {
		return nil, err
	}
	return &authDomain.Exchange{Identity: identity, Tokens: tokens, Type: authDomain.CodeTypeSignIn}, nil
}

func (s *sessionUseCase) RequestMagicLink(ctx context.Context, email, next string) error {
	return s.requestLink(ctx, email, authDomain.CodeTypeSignIn, next)
}

func (s *sessionUseCase) RequestRecovery(ctx context.Context, email string) error {
	return s.requestLink(ctx, email, authDomain.CodeTypeRecovery, "")
}

func (s *sessionUseCase) UpdatePassword(ctx context.Context, identity *authDomain.Identity, password string) error {
	hash, err := s.passwordService.Hash(password)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, identity.ID, hash)
}

func (s *sessionUseCase) CreateUser(ctx context.Context, email, password string) (*authDomain.User, error) {
	email = authDomain.NormalizeEmail(email)

	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, authDomain.ErrUserAlreadyExists
	}
	if !errors.Is(err, authDomain.ErrUserNotFound) {
		return nil, err
	}

	var passwordHash string
	if password != "" {
		if passwordHash, err = s.passwordService.Hash(password); err != nil {
			return nil, err
		}
	}

	now := s.now().UTC()
	user := &authDomain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *sessionUseCase) CleanExpired(ctx context.Context, olderThan time.Duration) (int64, error) {
	before := s.now().UTC().Add(-olderThan)

	var total int64
	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		sessions, err := s.sessionRepo.DeleteExpired(ctx, before)
		if err != nil {
			return err
		}
		codes, err := s.codeRepo.DeleteExpired(ctx, before)
		if err != nil {
			return err
		}
		total = sessions + codes
		return nil
	})
	return total, err
}

// requestLink stores a single-use code and its delivery event in one transaction.
func (s *sessionUseCase) requestLink(ctx context.Context, email string, codeType authDomain.CodeType, next string) error {
	user, err := s.userRepo.GetByEmail(ctx, authDomain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, authDomain.ErrUserNotFound) {
			return nil
		}
		return err
	}

	plainCode, codeHash, err := s.tokenService.GenerateToken()
	if err != nil {
		return err
	}

	now := s.now().UTC()
	code := &authDomain.AuthCode{
		ID:        uuid.Must(uuid.NewV7()),
		UserID:    user.ID,
		CodeHash:  codeHash,
		Type:      codeType,
		ExpiresAt: now.Add(s.config.AuthCodeTTL),
		CreatedAt: now,
	}

	eventType := outboxDomain.EventMagicLinkRequested
	if codeType == authDomain.CodeTypeRecovery {
		eventType = outboxDomain.EventRecoveryRequested
	}
	sealedLink, err := s.linkSealer.Seal(ctx, s.callbackLink(plainCode, codeType, next))
	if err != nil {
		return err
	}
	event, err := outboxDomain.NewEvent(eventType, outboxDomain.AuthLinkPayload{
		UserID:     user.ID,
		Email:      user.Email,
		SealedLink: sealedLink,
	})
	if err != nil {
		return err
	}

	return s.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := s.codeRepo.Create(ctx, code); err != nil {
			return err
		}
		return s.outboxRepo.Create(ctx, event)
	})
}

func (s *sessionUseCase) callbackLink(code string, codeType authDomain.CodeType, next string) string {
	query := url.Values{}
	query.Set("code", code)
	if codeType == authDomain.CodeTypeRecovery {
		query.Set("type", string(authDomain.CodeTypeRecovery))
	}
	if safe := authDomain.SafeRedirect(next, ""); safe != "" {
		query.Set("next", safe)
	}
	return s.config.PublicBaseURL + "/auth/callback?" + query.Encode()
}

func (s *sessionUseCase) openSession(
	ctx context.Context,
	user *authDomain.User,
) (*authDomain.Identity, *authDomain.IssuedTokens, error) {
	plainRefresh, refreshHash, err := s.tokenService.GenerateToken()
	if err != nil {
		return nil, nil, err
	}

	now := s.now().UTC()
	session := &authDomain.Session{
		ID:               uuid.Must(uuid.NewV7()),
		UserID:           user.ID,
		RefreshTokenHash: refreshHash,
		ExpiresAt:        now.Add(s.config.AuthSessionTTL),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, nil, err
	}

	identity := &authDomain.Identity{ID: user.ID, Email: user.Email, SessionID: session.ID}
	tokens, err := s.issueTokens(identity, plainRefresh, session.ExpiresAt, now)
	if err != nil {
		return nil, nil, err
	}
	return identity, tokens, nil
}

func (s *sessionUseCase) issueTokens(
	identity *authDomain.Identity,
	refreshToken string,
	refreshExpiresAt time.Time,
	now time.Time,
) (*authDomain.IssuedTokens, error) {
	accessToken, accessExpiresAt, err := s.accessTokens.Issue(identity, now)
	if err != nil {
		return nil, err
	}
	return &authDomain.IssuedTokens{
		AccessToken:      accessToken,
		AccessExpiresAt:  accessExpiresAt,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExpiresAt,
	}, nil
}

func (s *sessionUseCase) revokeByRefreshToken(ctx context.Context, refreshToken string) error {
	session, err := s.sessionRepo.GetByRefreshTokenHash(ctx, s.tokenService.HashToken(refreshToken))
	if err != nil {
		if errors.Is(err, authDomain.ErrSessionNotFound) {
			return nil
		}
		return err
	}
	if session.RevokedAt != nil {
		return nil
	}
	return s.sessionRepo.Revoke(ctx, session.ID)
}

// NewSessionUseCase creates the SessionUseCase.
func NewSessionUseCase(
	config *config.Config,
	txManager database.TxManager,
	userRepo UserRepository,
	sessionRepo SessionRepository,
	codeRepo AuthCodeRepository,
	outboxRepo OutboxRepository,
	passwordService authService.PasswordService,
	tokenService authService.TokenService,
	accessTokens authService.AccessTokenService,
	linkSealer authService.LinkSealer,
) SessionUseCase {
	return &sessionUseCase{
		config:          config,
		txManager:       txManager,
		userRepo:        userRepo,
		sessionRepo:     sessionRepo,
		codeRepo:        codeRepo,
		outboxRepo:      outboxRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		accessTokens:    accessTokens,
		linkSealer:      linkSealer,
		now:             time.Now,
	}
}
