package dto

import (
	"time"

	authDomain "github.com/allisson/crm/internal/auth/domain"
)

// UserResponse is the public view of an identity.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// ProfileResponse is the public view of a profile.
type ProfileResponse struct {
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	OrgID     *string   `json:"org_id"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MeResponse is returned by GET /v1/me.
type MeResponse struct {
	User    UserResponse    `json:"user"`
	Profile ProfileResponse `json:"profile"`
}

// MapIdentityToResponse converts an identity into its response.
func MapIdentityToResponse(identity *authDomain.Identity) UserResponse {
	return UserResponse{ID: identity.ID.String(), Email: identity.Email}
}

// MapProfileToResponse converts a profile into its response.
func MapProfileToResponse(profile *authDomain.Profile) ProfileResponse {
	response := ProfileResponse{
		FullName:  profile.FullName,
		Role:      string(profile.Role),
		UpdatedAt: profile.UpdatedAt,
	}
	if profile.OrgID != nil {
		orgID := profile.OrgID.String()
		response.OrgID = &orgID
	}
	return response
}
