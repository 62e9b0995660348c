package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	orgUseCase "github.com/allisson/crm/internal/organization/usecase"
)

// RunCreateOrganization registers an organization under a unique slug.
func RunCreateOrganization(
	ctx context.Context,
	organizationUseCase orgUseCase.OrganizationUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name, slug, format string,
) error {
	logger.Info("creating organization", slog.String("slug", slug))

	org, err := organizationUseCase.Create(ctx, name, slug)
	if err != nil {
		return fmt.Errorf("failed to create organization: %w", err)
	}

	if format == "json" {
		if err := writeJSON(writer, map[string]any{
			"id":   org.ID.String(),
			"name": org.Name,
			"slug": org.Slug,
		}); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintf(writer, "Organization created successfully\nID: %s\nName: %s\nSlug: %s\n",
			org.ID, org.Name, org.Slug)
	}

	logger.Info("organization created", slog.String("org_id", org.ID.String()))
	return nil
}
