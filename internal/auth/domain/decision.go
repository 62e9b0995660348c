package domain

import (
	"github.com/google/uuid"
)

// Reason explains why an AuthDecision denied a request.
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonUnauthenticated Reason = "unauthenticated"
	ReasonNoProfile       Reason = "no_profile"
	ReasonForbidden       Reason = "forbidden"
)

// Requirement is what a route demands of the caller. Empty Roles admits any role;
// a nil OrgID skips the organization check.
type Requirement struct {
	Roles []Role
	OrgID *uuid.UUID
}

// AnyRole admits every authenticated profile.
func AnyRole() Requirement {
	return Requirement{}
}

// RequireRoles admits the given roles in any organization.
func RequireRoles(roles ...Role) Requirement {
	return Requirement{Roles: roles}
}

// InOrg returns a copy of r that also requires the profile to belong to orgID.
func (r Requirement) InOrg(orgID uuid.UUID) Requirement {
	r.OrgID = &orgID
	return r
}

// AuthDecision is the gate's verdict for one request.
type AuthDecision struct {
	Authorized bool
	Identity   *Identity
	Profile    *Profile
	Reason     Reason

	Rotated   *IssuedTokens
	SignedOut bool
}

// Err maps a denial to the matching sentinel error, or nil when authorized.
func (d *AuthDecision) Err() error {
	switch {
	case d.Authorized:
		return nil
	case d.Reason == ReasonNoProfile:
		return ErrNoProfile
	case d.Reason == ReasonForbidden:
		return ErrForbidden
	default:
		return ErrUnauthenticated
	}
}

// StatusLabel is the decision as a metrics label.
func (d *AuthDecision) StatusLabel() string {
	if d.Authorized {
		return "authorized"
	}
	return string(d.Reason)
}
