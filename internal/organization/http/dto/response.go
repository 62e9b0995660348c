package dto

import (
	"time"

	orgDomain "github.com/allisson/crm/internal/organization/domain"
)

// OrganizationResponse is the public view of an organization.
type OrganizationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// MemberResponse is the admin view of a member.
type MemberResponse struct {
	UserID   string    `json:"user_id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// MapOrganizationToResponse converts an organization into its response.
func MapOrganizationToResponse(org *orgDomain.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:        org.ID.String(),
		Name:      org.Name,
		Slug:      org.Slug,
		CreatedAt: org.CreatedAt,
	}
}

// MapOrganizationsToResponse converts a list of organizations.
func MapOrganizationsToResponse(orgs []*orgDomain.Organization) []OrganizationResponse {
	responses := make([]OrganizationResponse, 0, len(orgs))
	for _, org := range orgs {
		responses = append(responses, MapOrganizationToResponse(org))
	}
	return responses
}

// MapMemberToResponse converts a member into its response.
func MapMemberToResponse(member *orgDomain.Member) MemberResponse {
	return MemberResponse{
		UserID:   member.UserID.String(),
		Email:    member.Email,
		FullName: member.FullName,
		Role:     string(member.Role),
		JoinedAt: member.JoinedAt,
	}
}

// MapMembersToResponse converts a list of members.
func MapMembersToResponse(members []*orgDomain.Member) []MemberResponse {
	responses := make([]MemberResponse, 0, len(members))
	for _, member := range members {
		responses = append(responses, MapMemberToResponse(member))
	}
	return responses
}
