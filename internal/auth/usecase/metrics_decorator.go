package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/crm/internal/auth/domain"
	"github.com/allisson/crm/internal/metrics"
)

const metricsDomain = "auth"

// gateWithMetrics records one operation per decision, labelled by its reason.
type gateWithMetrics struct {
	next    Gate
	metrics metrics.BusinessMetrics
}

// NewGateWithMetrics wraps a Gate with metrics recording.
func NewGateWithMetrics(next Gate, m metrics.BusinessMetrics) Gate {
	return &gateWithMetrics{next: next, metrics: m}
}

func (g *gateWithMetrics) Authorize(
	ctx context.Context,
	credentials authDomain.Credentials,
	requirement authDomain.Requirement,
) (*authDomain.AuthDecision, error) {
	start := time.Now()
	decision, err := g.next.Authorize(ctx, credentials, requirement)

	status := metrics.StatusError
	if err == nil {
		status = decision.StatusLabel()
	}
	metrics.Observe(ctx, g.metrics, metricsDomain, "authorize", start, status)

	return decision, err
}

// sessionUseCaseWithMetrics decorates SessionUseCase with metrics instrumentation.
type sessionUseCaseWithMetrics struct {
	next    SessionUseCase
	metrics metrics.BusinessMetrics
}

// NewSessionUseCaseWithMetrics wraps a SessionUseCase with metrics recording.
func NewSessionUseCaseWithMetrics(next SessionUseCase, m metrics.BusinessMetrics) SessionUseCase {
	return &sessionUseCaseWithMetrics{next: next, metrics: m}
}

func (s *sessionUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, s.metrics, metricsDomain, operation, start, metrics.StatusFromError(err))
}

func (s *sessionUseCaseWithMetrics) Resolve(
	ctx context.Context,
	credentials authDomain.Credentials,
) (*authDomain.Resolution, error) {
	start := time.Now()
	resolution, err := s.next.Resolve(ctx, credentials)

	status := metrics.StatusFromError(err)
	switch {
	case err == nil && resolution.Rotated != nil:
		status = "refreshed"
	case resolution != nil && resolution.Identity == nil:
		status = string(authDomain.ReasonUnauthenticated)
	}
	metrics.Observe(ctx, s.metrics, metricsDomain, "session_resolve", start, status)

	return resolution, err
}

func (s *sessionUseCaseWithMetrics) GetUser(ctx context.Context, accessToken string) (*authDomain.Identity, error) {
	start := time.Now()
	identity, err := s.next.GetUser(ctx, accessToken)
	s.record(ctx, "session_get_user", start, err)
	return identity, err
}

func (s *sessionUseCaseWithMetrics) RefreshSession(
	ctx context.Context,
	refreshToken string,
) (*authDomain.Identity, *authDomain.IssuedTokens, error) {
	start := time.Now()
	identity, tokens, err := s.next.RefreshSession(ctx, refreshToken)
	s.record(ctx, "session_refresh", start, err)
	return identity, tokens, err
}

func (s *sessionUseCaseWithMetrics) ExchangeCodeForSession(
	ctx context.Context,
	code string,
) (*authDomain.Exchange, error) {
	start := time.Now()
	exchange, err := s.next.ExchangeCodeForSession(ctx, code)
	s.record(ctx, "code_exchange", start, err)
	return exchange, err
}

func (s *sessionUseCaseWithMetrics) SignOut(ctx context.Context, credentials authDomain.Credentials) error {
	start := time.Now()
	err := s.next.SignOut(ctx, credentials)
	s.record(ctx, "sign_out", start, err)
	return err
}

func (s *sessionUseCaseWithMetrics) SignInWithPassword(
	ctx context.Context,
	email, password string,
) (*authDomain.Exchange, error) {
	start := time.Now()
	exchange, err := s.next.SignInWithPassword(ctx, email, password)
	s.record(ctx, "sign_in_password", start, err)
	return exchange, err
}

func (s *sessionUseCaseWithMetrics) RequestMagicLink(ctx context.Context, email, next string) error {
	start := time.Now()
	err := s.next.RequestMagicLink(ctx, email, next)
	s.record(ctx, "magic_link_request", start, err)
	return err
}

func (s *sessionUseCaseWithMetrics) RequestRecovery(ctx context.Context, email string) error {
	start := time.Now()
	err := s.next.RequestRecovery(ctx, email)
	s.record(ctx, "recovery_request", start, err)
	return err
}

func (s *sessionUseCaseWithMetrics) UpdatePassword(
	ctx context.Context,
	identity *authDomain.Identity,
	password string,
) error {
	start := time.Now()
	err := s.next.UpdatePassword(ctx, identity, password)
	s.record(ctx, "password_update", start, err)
	return err
}

func (s *sessionUseCaseWithMetrics) CreateUser(
	ctx context.Context,
	email, password string,
) (*authDomain.User, error) {
	start := time.Now()
	user, err := s.next.CreateUser(ctx, email, password)
	s.record(ctx, "user_create", start, err)
	return user, err
}

func (s *sessionUseCaseWithMetrics) CleanExpired(ctx context.Context, olderThan time.Duration) (int64, error) {
	start := time.Now()
	count, err := s.next.CleanExpired(ctx, olderThan)
	s.record(ctx, "session_clean", start, err)
	return count, err
}
