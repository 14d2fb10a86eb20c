package schema

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-crm/internal/domain"
)

// Role represents the roles table. Roles form a tree through ParentRoleID;
// a role inherits every permission granted to its ancestors.
type Role struct {
	Base
	Name         string          `gorm:"column:name;type:text;not null"`
	Description  *string         `gorm:"column:description;type:text"`
	RoleType     domain.RoleType `gorm:"column:role_type;type:role_type;not null;default:custom"`
	ParentRoleID *uuid.UUID      `gorm:"column:parent_role_id;type:uuid"`
	// Priority orders roles when several apply; higher wins
	Priority int            `gorm:"column:priority;not null;default:0"`
	IsSystem bool           `gorm:"column:is_system;not null"`
	Metadata datatypes.JSON `gorm:"column:metadata;type:jsonb;not null;default:'{}'"`
}

// TableName specifies the table name for the Role model
func (Role) TableName() string {
	return "roles"
}

// Permission represents the permissions table
type Permission struct {
	Base
	// Name is resource:action and must match the two columns below
	Name        string                  `gorm:"column:name;type:text;not null"`
	Resource    string                  `gorm:"column:resource;type:text;not null"`
	Action      domain.PermissionAction `gorm:"column:action;type:permission_action;not null"`
	Scope       domain.PermissionScope  `gorm:"column:scope;type:permission_scope;not null;default:own"`
	Description *string                 `gorm:"column:description;type:text"`
	// Conditions and TimeRestrictions are evaluated by the rbac package, never by SQL
	Conditions       datatypes.JSONType[domain.PermissionConditions] `gorm:"column:conditions;type:jsonb;not null;default:'{}'"`
	TimeRestrictions datatypes.JSONType[domain.TimeRestrictions]     `gorm:"column:time_restrictions;type:jsonb;not null;default:'{}'"`
	IsSystem         bool                                            `gorm:"column:is_system;not null"`
}

// TableName specifies the table name for the Permission model
func (Permission) TableName() string {
	return "permissions"
}

// Grant holds the temporal and approval columns shared by user_roles and role_permissions
type Grant struct {
	Status           domain.GrantStatus    `gorm:"column:status;type:grant_status;not null;default:active"`
	ValidFrom        time.Time             `gorm:"column:valid_from;not null;default:now()"`
	ValidUntil       *time.Time            `gorm:"column:valid_until"`
	RequiresApproval bool                  `gorm:"column:requires_approval;not null"`
	ApprovalStatus   domain.ApprovalStatus `gorm:"column:approval_status;type:approval_status;not null;default:approved"`
	ApprovedBy       *uuid.UUID            `gorm:"column:approved_by;type:uuid"`
	ApprovedAt       *time.Time            `gorm:"column:approved_at"`
	GrantedBy        *uuid.UUID            `gorm:"column:granted_by;type:uuid"`
}

// ActiveAt reports whether the grant is in force at t. Soft deletion is
// checked separately by the caller.
func (g Grant) ActiveAt(t time.Time) bool {
	if g.Status != domain.GrantStatusActive || g.ApprovalStatus != domain.ApprovalStatusApproved {
		return false
	}
	if g.ValidFrom.After(t) {
		return false
	}
	return g.ValidUntil == nil || g.ValidUntil.After(t)
}

// UserRole represents the user_roles table
type UserRole struct {
	Base
	Grant
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null"`
	RoleID    uuid.UUID `gorm:"column:role_id;type:uuid;not null"`
	IsPrimary bool      `gorm:"column:is_primary;not null"`
	Reason    *string   `gorm:"column:reason;type:text"`

	Role *Role `gorm:"foreignKey:RoleID"`
}

// TableName specifies the table name for the UserRole model
func (UserRole) TableName() string {
	return "user_roles"
}

// RolePermission represents the role_permissions table
type RolePermission struct {
	Base
	Grant
	RoleID       uuid.UUID `gorm:"column:role_id;type:uuid;not null"`
	PermissionID uuid.UUID `gorm:"column:permission_id;type:uuid;not null"`

	Permission *Permission `gorm:"foreignKey:PermissionID"`
}

// TableName specifies the table name for the RolePermission model
func (RolePermission) TableName() string {
	return "role_permissions"
}

// RoleDelegation represents the role_delegations table: a time-boxed grant
// of one of the delegator's roles to another user.
type RoleDelegation struct {
	Base
	DelegatorID uuid.UUID `gorm:"column:delegator_id;type:uuid;not null"`
	DelegateID  uuid.UUID `gorm:"column:delegate_id;type:uuid;not null"`
	RoleID      uuid.UUID `gorm:"column:role_id;type:uuid;not null"`
	// ParentDelegationID is set when the delegator holds the role through another delegation
	ParentDelegationID *uuid.UUID              `gorm:"column:parent_delegation_id;type:uuid"`
	ValidFrom          time.Time               `gorm:"column:valid_from;not null;default:now()"`
	ValidUntil         time.Time               `gorm:"column:valid_until;not null"`
	Status             domain.DelegationStatus `gorm:"column:status;type:delegation_status;not null;default:pending"`
	ApprovalStatus     domain.ApprovalStatus   `gorm:"column:approval_status;type:approval_status;not null;default:pending"`
	ApprovedBy         *uuid.UUID              `gorm:"column:approved_by;type:uuid"`
	ApprovedAt         *time.Time              `gorm:"column:approved_at"`
	// CanRedelegate allows the delegate to pass the role on
	CanRedelegate    bool       `gorm:"column:can_redelegate;not null"`
	Reason           *string    `gorm:"column:reason;type:text"`
	RevokedAt        *time.Time `gorm:"column:revoked_at"`
	RevokedBy        *uuid.UUID `gorm:"column:revoked_by;type:uuid"`
	RevocationReason *string    `gorm:"column:revocation_reason;type:text"`
}

// TableName specifies the table name for the RoleDelegation model
func (RoleDelegation) TableName() string {
	return "role_delegations"
}

// ActiveAt reports whether the delegation itself is in force at t
func (d RoleDelegation) ActiveAt(t time.Time) bool {
	if d.DeletedAt != nil || d.RevokedAt != nil {
		return false
	}
	if d.Status != domain.DelegationStatusActive || d.ApprovalStatus != domain.ApprovalStatusApproved {
		return false
	}
	return !d.ValidFrom.After(t) && d.ValidUntil.After(t)
}

// TeamAssignment represents the team_assignments table used by the
// team-indirection RLS policies.
type TeamAssignment struct {
	Base
	UserID     uuid.UUID         `gorm:"column:user_id;type:uuid;not null"`
	EntityID   uuid.UUID         `gorm:"column:entity_id;type:uuid;not null"`
	EntityType domain.EntityType `gorm:"column:entity_type;type:entity_type;not null"`
	// TeamRole is one of owner, member or viewer
	TeamRole string `gorm:"column:team_role;type:text;not null;default:member"`
}

// TableName specifies the table name for the TeamAssignment model
func (TeamAssignment) TableName() string {
	return "team_assignments"
}
