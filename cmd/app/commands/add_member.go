package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	authDomain "github.com/allisson/crm/internal/auth/domain"
	orgUseCase "github.com/allisson/crm/internal/organization/usecase"
)

// RunAddMember adds a registered account to an organization. The operator acts with the
// privileged role the grant requires, so any role may be granted, including the first admin.
func RunAddMember(
	ctx context.Context,
	organizationUseCase orgUseCase.OrganizationUseCase,
	logger *slog.Logger,
	writer io.Writer,
	orgIDStr, email, roleStr, format string,
) error {
	orgID, err := uuid.Parse(orgIDStr)
	if err != nil {
		return fmt.Errorf("invalid organization id: %w", err)
	}
	role, err := authDomain.ParseRole(roleStr)
	if err != nil {
		return fmt.Errorf("invalid role %q: %w", roleStr, err)
	}

	logger.Info("adding member",
		slog.String("org_id", orgID.String()),
		slog.String("email", email),
		slog.String("role", string(role)),
	)

	member, err := organizationUseCase.AddMember(ctx, orgID, email, role, operatorRole(role))
	if err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}

	if format == "json" {
		if err := writeJSON(writer, map[string]any{
			"org_id":  orgID.String(),
			"user_id": member.UserID.String(),
			"email":   member.Email,
			"role":    member.Role,
		}); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintf(writer, "Member added successfully\nUser ID: %s\nEmail: %s\nRole: %s\n",
			member.UserID, member.Email, member.Role)
	}

	return nil
}

// operatorRole is the actor used for CLI grants: admin for admin, owner otherwise.
func operatorRole(role authDomain.Role) authDomain.Role {
	if role == authDomain.RoleAdmin {
		return authDomain.RoleAdmin
	}
	return authDomain.RoleOwner
}
