package rbac

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/feral-file/ff-crm/internal/domain"
)

// Grant is one permission in force for a user, with the role it came through
type Grant struct {
	Permission       domain.PermissionName       `json:"permission"`
	Scope            domain.PermissionScope      `json:"scope"`
	Conditions       domain.PermissionConditions `json:"conditions"`
	TimeRestrictions domain.TimeRestrictions     `json:"time_restrictions"`
	RoleID           uuid.UUID                   `json:"role_id"`
	// DelegationID is set when the role was received through a delegation
	DelegationID *uuid.UUID `json:"delegation_id,omitempty"`
	// ValidUntil is the earliest expiry along the grant's path
	ValidUntil *time.Time `json:"valid_until,omitempty"`
}

// PermissionSet is the evaluated permissions of a user at ComputedAt
type PermissionSet struct {
	UserID     uuid.UUID `json:"user_id"`
	Roles      []string  `json:"roles"`
	Grants     []Grant   `json:"grants"`
	ComputedAt time.Time `json:"computed_at"`
	// ExpiresAt is the next moment a grant starts or ends
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// HasRole reports whether the role, directly or inherited, is held
func (s *PermissionSet) HasRole(name string) bool {
	return slices.Contains(s.Roles, name)
}

// Names returns the distinct permission names of the set in order
func (s *PermissionSet) Names() []domain.PermissionName {
	names := make([]domain.PermissionName, 0, len(s.Grants))
	for _, g := range s.Grants {
		if !slices.Contains(names, g.Permission) {
			names = append(names, g.Permission)
		}
	}
	slices.Sort(names)
	return names
}

// At returns a copy of the set without the grants that expired before t
func (s *PermissionSet) At(t time.Time) *PermissionSet {
	out := *s
	out.Grants = make([]Grant, 0, len(s.Grants))
	for _, g := range s.Grants {
		if g.ValidUntil == nil || g.ValidUntil.After(t) {
			out.Grants = append(out.Grants, g)
		}
	}
	return &out
}
