package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/feral-file/ff-crm/internal/domain"
)

// CreateProfileRequest is the body of POST /api/v1/profiles
type CreateProfileRequest struct {
	ProfileType domain.EntityType `json:"profile_type"`
	Handle      string            `json:"handle" binding:"required"`
	Email       *string           `json:"email"`
	FirstName   *string           `json:"first_name"`
	LastName    *string           `json:"last_name"`
	DisplayName *string           `json:"display_name"`
	AvatarURL   *string           `json:"avatar_url"`
	Bio         *string           `json:"bio"`
	Timezone    string            `json:"timezone"`
	Locale      string            `json:"locale"`
	Metadata    json.RawMessage   `json:"metadata"`
}

// UpdateProfileRequest is the body of PATCH /api/v1/profiles/:id. Nil fields
// are left unchanged.
type UpdateProfileRequest struct {
	Version           int                       `json:"version" binding:"required"`
	Handle            *string                   `json:"handle"`
	FirstName         *string                   `json:"first_name"`
	LastName          *string                   `json:"last_name"`
	DisplayName       *string                   `json:"display_name"`
	AvatarURL         *string                   `json:"avatar_url"`
	Bio               *string                   `json:"bio"`
	Timezone          *string                   `json:"timezone"`
	Locale            *string                   `json:"locale"`
	Status            *domain.RecordStatus      `json:"status"`
	VerificationLevel *domain.VerificationLevel `json:"verification_level"`
	IsVerified        *bool                     `json:"is_verified"`
	Metadata          json.RawMessage           `json:"metadata"`
}

// AddEmailRequest is the body of POST /api/v1/entities/:type/:id/emails
type AddEmailRequest struct {
	Email     string           `json:"email" binding:"required"`
	EmailType domain.EmailType `json:"email_type"`
	IsPrimary bool             `json:"is_primary"`
}

// CheckPermissionRequest is the body of POST /api/v1/permissions/check
type CheckPermissionRequest struct {
	// UserID defaults to the caller
	UserID     *uuid.UUID            `json:"user_id"`
	Permission domain.PermissionName `json:"permission" binding:"required"`
	EntityType domain.EntityType     `json:"entity_type"`
	EntityID   *uuid.UUID            `json:"entity_id"`
	OwnerID    *uuid.UUID            `json:"owner_id"`
	AssignedTo *uuid.UUID            `json:"assigned_to"`
}

// AssignRoleRequest is the body of POST /api/v1/roles/assignments
type AssignRoleRequest struct {
	UserID           uuid.UUID  `json:"user_id" binding:"required"`
	RoleID           uuid.UUID  `json:"role_id" binding:"required"`
	IsPrimary        bool       `json:"is_primary"`
	Reason           *string    `json:"reason"`
	ValidFrom        *time.Time `json:"valid_from"`
	ValidUntil       *time.Time `json:"valid_until"`
	RequiresApproval bool       `json:"requires_approval"`
}

// CreateDelegationRequest is the body of POST /api/v1/delegations. The
// caller is always the delegator.
type CreateDelegationRequest struct {
	DelegateID         uuid.UUID  `json:"delegate_id" binding:"required"`
	RoleID             uuid.UUID  `json:"role_id" binding:"required"`
	ParentDelegationID *uuid.UUID `json:"parent_delegation_id"`
	ValidFrom          *time.Time `json:"valid_from"`
	ValidUntil         time.Time  `json:"valid_until" binding:"required"`
	CanRedelegate      bool       `json:"can_redelegate"`
	RequiresApproval   bool       `json:"requires_approval"`
	Reason             *string    `json:"reason"`
}

// RevokeDelegationRequest is the body of POST /api/v1/delegations/:id/revoke
type RevokeDelegationRequest struct {
	Reason string `json:"reason"`
}

// CreateLeadRequest is the body of POST /api/v1/leads
type CreateLeadRequest struct {
	FirstName      *string           `json:"first_name"`
	LastName       string            `json:"last_name" binding:"required"`
	Email          *string           `json:"email"`
	Phone          *string           `json:"phone"`
	CompanyName    *string           `json:"company_name"`
	JobTitle       *string           `json:"job_title"`
	Source         domain.LeadSource `json:"source"`
	Score          int               `json:"score"`
	EstimatedValue *float64          `json:"estimated_value"`
	AssignedTo     *uuid.UUID        `json:"assigned_to"`
	Notes          *string           `json:"notes"`
}

// ConvertLeadRequest is the body of POST /api/v1/leads/:id/convert
type ConvertLeadRequest struct {
	Version           int                `json:"version" binding:"required"`
	ContactType       domain.ContactType `json:"contact_type"`
	CreateOpportunity bool               `json:"create_opportunity"`
	OpportunityName   string             `json:"opportunity_name"`
	Amount            *float64           `json:"amount"`
	PipelineID        *uuid.UUID         `json:"pipeline_id"`
}

// MoveStageRequest is the body of POST /api/v1/opportunities/:id/stage
type MoveStageRequest struct {
	Version     int                     `json:"version" binding:"required"`
	Stage       domain.OpportunityStage `json:"stage" binding:"required"`
	Probability *float64                `json:"probability"`
}
