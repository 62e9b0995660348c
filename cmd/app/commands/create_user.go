package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	authUseCase "github.com/allisson/crm/internal/auth/usecase"
)

// RunCreateUser registers an account. An empty password creates a passwordless account that
// signs in through magic links.
func RunCreateUser(
	ctx context.Context,
	sessionUseCase authUseCase.SessionUseCase,
	logger *slog.Logger,
	writer io.Writer,
	email, password, format string,
) error {
	logger.Info("creating user", slog.String("email", email))

	user, err := sessionUseCase.CreateUser(ctx, email, password)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if format == "json" {
		if err := writeJSON(writer, map[string]any{
			"id":       user.ID.String(),
			"email":    user.Email,
			"password": password != "",
		}); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintf(writer, "User created successfully\nID: %s\nEmail: %s\n", user.ID, user.Email)
	}

	logger.Info("user created", slog.String("user_id", user.ID.String()))
	return nil
}
