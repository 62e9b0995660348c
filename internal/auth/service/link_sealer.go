package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"gocloud.dev/secrets"
	"gocloud.dev/secrets/localsecrets"
	"golang.org/x/crypto/hkdf"
)

const linkKeyInfo = "crm-auth-link-v1"

type keeperLinkSealer struct {
	keeper *secrets.Keeper
}

// NewLinkSealer derives a link encryption key from masterKey with HKDF-SHA256 and
// seals callback links with a local secretbox keeper.
func NewLinkSealer(masterKey []byte) (LinkSealer, error) {
	if len(masterKey) < minMasterKeyLen {
		return nil, fmt.Errorf("auth signing key must be at least %d bytes", minMasterKeyLen)
	}

	var key [32]byte
	if _, err := io.ReadFull(hkdf.New(sha256.New, masterKey, nil, []byte(linkKeyInfo)), key[:]); err != nil {
		return nil, fmt.Errorf("failed to derive link key: %w", err)
	}

	return &keeperLinkSealer{keeper: localsecrets.NewKeeper(key)}, nil
}

func (s *keeperLinkSealer) Seal(ctx context.Context, link string) (string, error) {
	ciphertext, err := s.keeper.Encrypt(ctx, []byte(link))
	if err != nil {
		return "", fmt.Errorf("failed to seal auth link: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(ciphertext), nil
}

func (s *keeperLinkSealer) Open(ctx context.Context, sealed string) (string, error) {
	ciphertext, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("failed to decode sealed auth link: %w", err)
	}
	plaintext, err := s.keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return "", fmt.Errorf("failed to open sealed auth link: %w", err)
	}
	return string(plaintext), nil
}

func (s *keeperLinkSealer) Close() error {
	return s.keeper.Close()
}
