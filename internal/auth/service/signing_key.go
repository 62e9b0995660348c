package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"gocloud.dev/secrets"

	// Keeper drivers selectable through AUTH_SIGNING_KEY_KMS_URI.
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// LoadSigningKey decodes the base64 master key. When keeperURI is set the decoded bytes
// are a keeper ciphertext and are decrypted first (gcpkms://, awskms://, azurekeyvault://,
// hashivault:// or base64key://).
func LoadSigningKey(ctx context.Context, encoded, keeperURI string) ([]byte, error) {
	if encoded == "" {
		return nil, errors.New("AUTH_SIGNING_KEY is not set")
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode auth signing key: %w", err)
	}

	if keeperURI == "" {
		return raw, nil
	}

	keeper, err := secrets.OpenKeeper(ctx, keeperURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() {
		_ = keeper.Close()
	}()

	plaintext, err := keeper.Decrypt(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt auth signing key: %w", err)
	}
	return plaintext, nil
}
