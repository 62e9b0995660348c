package service

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/hkdf"

	authDomain "github.com/allisson/crm/internal/auth/domain"
)

// ErrInvalidAccessToken is returned for any malformed, forged or expired access token.
var ErrInvalidAccessToken = errors.New("invalid access token")

const (
	accessTokenIssuer = "crm"
	signingKeyInfo    = "crm-access-token-v1"
	minMasterKeyLen   = 32
)

type accessClaims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
	Email     string `json:"email"`
}

type accessTokenService struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewAccessTokenService derives an HS256 signing key from masterKey with HKDF-SHA256.
func NewAccessTokenService(masterKey []byte, ttl time.Duration) (AccessTokenService, error) {
	if len(masterKey) < minMasterKeyLen {
		return nil, fmt.Errorf("auth signing key must be at least %d bytes", minMasterKeyLen)
	}

	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, masterKey, nil, []byte(signingKeyInfo)), key); err != nil {
		return nil, fmt.Errorf("failed to derive signing key: %w", err)
	}

	return &accessTokenService{key: key, ttl: ttl, now: time.Now}, nil
}

func (s *accessTokenService) Issue(identity *authDomain.Identity, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(s.ttl)
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.Must(uuid.NewV7()).String(),
			Subject:   identity.ID.String(),
			Issuer:    accessTokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		SessionID: identity.SessionID.String(),
		Email:     identity.Email,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, expiresAt, nil
}

func (s *accessTokenService) Verify(token string) (*AccessClaims, error) {
	if token == "" {
		return nil, ErrInvalidAccessToken
	}

	claims := &accessClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(accessTokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, ErrInvalidAccessToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidAccessToken
	}
	sessionID, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return nil, ErrInvalidAccessToken
	}

	return &AccessClaims{
		UserID:    userID,
		SessionID: sessionID,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
