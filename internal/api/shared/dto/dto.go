package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/feral-file/ff-crm/internal/domain"
	"github.com/feral-file/ff-crm/internal/store"
)

// Record carries the housekeeping columns shared by every response
type Record struct {
	ID        uuid.UUID `json:"id"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfileResponse represents a profile
type ProfileResponse struct {
	Record
	UserID            *uuid.UUID               `json:"user_id,omitempty"`
	ProfileType       domain.EntityType        `json:"profile_type"`
	Handle            string                   `json:"handle"`
	Email             *string                  `json:"email,omitempty"`
	FirstName         *string                  `json:"first_name,omitempty"`
	LastName          *string                  `json:"last_name,omitempty"`
	FullName          *string                  `json:"full_name,omitempty"`
	DisplayName       *string                  `json:"display_name,omitempty"`
	AvatarURL         *string                  `json:"avatar_url,omitempty"`
	Bio               *string                  `json:"bio,omitempty"`
	Timezone          string                   `json:"timezone"`
	Locale            string                   `json:"locale"`
	Status            domain.RecordStatus      `json:"status"`
	VerificationLevel domain.VerificationLevel `json:"verification_level"`
	IsVerified        bool                     `json:"is_verified"`
	Metadata          json.RawMessage          `json:"metadata"`
}

// EmailResponse represents an entity email
type EmailResponse struct {
	Record
	EntityID   uuid.UUID         `json:"entity_id"`
	EntityType domain.EntityType `json:"entity_type"`
	Email      string            `json:"email"`
	EmailType  domain.EmailType  `json:"email_type"`
	IsPrimary  bool              `json:"is_primary"`
	IsVerified bool              `json:"is_verified"`
	VerifiedAt *time.Time        `json:"verified_at,omitempty"`
}

// EmailListResponse represents the emails of one entity
type EmailListResponse struct {
	Emails []EmailResponse `json:"emails"`
}

// UserRoleResponse represents a role assignment
type UserRoleResponse struct {
	Record
	UserID         uuid.UUID             `json:"user_id"`
	RoleID         uuid.UUID             `json:"role_id"`
	RoleName       string                `json:"role_name,omitempty"`
	IsPrimary      bool                  `json:"is_primary"`
	Status         domain.GrantStatus    `json:"status"`
	ApprovalStatus domain.ApprovalStatus `json:"approval_status"`
	ValidFrom      time.Time             `json:"valid_from"`
	ValidUntil     *time.Time            `json:"valid_until,omitempty"`
	Reason         *string               `json:"reason,omitempty"`
}

// DelegationResponse represents a role delegation
type DelegationResponse struct {
	Record
	DelegatorID        uuid.UUID               `json:"delegator_id"`
	DelegateID         uuid.UUID               `json:"delegate_id"`
	RoleID             uuid.UUID               `json:"role_id"`
	ParentDelegationID *uuid.UUID              `json:"parent_delegation_id,omitempty"`
	ValidFrom          time.Time               `json:"valid_from"`
	ValidUntil         time.Time               `json:"valid_until"`
	Status             domain.DelegationStatus `json:"status"`
	ApprovalStatus     domain.ApprovalStatus   `json:"approval_status"`
	CanRedelegate      bool                    `json:"can_redelegate"`
	Reason             *string                 `json:"reason,omitempty"`
	RevokedAt          *time.Time              `json:"revoked_at,omitempty"`
	RevocationReason   *string                 `json:"revocation_reason,omitempty"`
}

// CheckPermissionResponse is the result of a permission check
type CheckPermissionResponse struct {
	Permission domain.PermissionName `json:"permission"`
	Allowed    bool                  `json:"allowed"`
}

// LeadResponse represents a lead
type LeadResponse struct {
	Record
	OwnerID                *uuid.UUID        `json:"owner_id,omitempty"`
	AssignedTo             *uuid.UUID        `json:"assigned_to,omitempty"`
	FirstName              *string           `json:"first_name,omitempty"`
	LastName               string            `json:"last_name"`
	FullName               string            `json:"full_name"`
	Email                  *string           `json:"email,omitempty"`
	Phone                  *string           `json:"phone,omitempty"`
	CompanyName            *string           `json:"company_name,omitempty"`
	JobTitle               *string           `json:"job_title,omitempty"`
	Status                 domain.LeadStatus `json:"status"`
	Source                 domain.LeadSource `json:"source"`
	Score                  int               `json:"score"`
	EstimatedValue         *float64          `json:"estimated_value,omitempty"`
	ConvertedAt            *time.Time        `json:"converted_at,omitempty"`
	ConvertedContactID     *uuid.UUID        `json:"converted_contact_id,omitempty"`
	ConvertedOpportunityID *uuid.UUID        `json:"converted_opportunity_id,omitempty"`
	Notes                  *string           `json:"notes,omitempty"`
}

// ContactResponse represents a contact
type ContactResponse struct {
	Record
	OwnerID     *uuid.UUID          `json:"owner_id,omitempty"`
	AssignedTo  *uuid.UUID          `json:"assigned_to,omitempty"`
	FirstName   *string             `json:"first_name,omitempty"`
	LastName    string              `json:"last_name"`
	FullName    string              `json:"full_name"`
	Email       *string             `json:"email,omitempty"`
	Phone       *string             `json:"phone,omitempty"`
	CompanyName *string             `json:"company_name,omitempty"`
	ContactType domain.ContactType  `json:"contact_type"`
	Status      domain.RecordStatus `json:"status"`
	Tags        []string            `json:"tags"`
}

// OpportunityResponse represents an opportunity
type OpportunityResponse struct {
	Record
	OwnerID         *uuid.UUID              `json:"owner_id,omitempty"`
	AssignedTo      *uuid.UUID              `json:"assigned_to,omitempty"`
	Name            string                  `json:"name"`
	ContactID       *uuid.UUID              `json:"contact_id,omitempty"`
	LeadID          *uuid.UUID              `json:"lead_id,omitempty"`
	PipelineID      *uuid.UUID              `json:"pipeline_id,omitempty"`
	Stage           domain.OpportunityStage `json:"stage"`
	Amount          float64                 `json:"amount"`
	Probability     float64                 `json:"probability"`
	ExpectedRevenue float64                 `json:"expected_revenue"`
	Currency        string                  `json:"currency"`
	ClosedAt        *time.Time              `json:"closed_at,omitempty"`
}

// ConvertLeadResponse holds the rows written by a lead conversion
type ConvertLeadResponse struct {
	Lead        LeadResponse         `json:"lead"`
	Contact     ContactResponse      `json:"contact"`
	Opportunity *OpportunityResponse `json:"opportunity,omitempty"`
}

// SearchResponse holds ranked search hits
type SearchResponse struct {
	Query string            `json:"query"`
	Hits  []store.SearchHit `json:"hits"`
}

// AuditLogResponse represents one audit_logs row
type AuditLogResponse struct {
	ID         uuid.UUID          `json:"id"`
	Seq        int64              `json:"seq"`
	EntityType string             `json:"entity_type"`
	EntityID   *uuid.UUID         `json:"entity_id,omitempty"`
	Action     domain.AuditAction `json:"action"`
	UserID     *uuid.UUID         `json:"user_id,omitempty"`
	Changes    json.RawMessage    `json:"changes"`
	OldValues  json.RawMessage    `json:"old_values,omitempty"`
	NewValues  json.RawMessage    `json:"new_values,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
}

// AuditLogListResponse represents a page of audit rows
type AuditLogListResponse struct {
	Items  []AuditLogResponse `json:"items"`
	Offset int                `json:"offset"`
	Limit  int                `json:"limit"`
}

// DocumentResponse represents a registered document
type DocumentResponse struct {
	Record
	EntityID       *uuid.UUID          `json:"entity_id,omitempty"`
	EntityType     *domain.EntityType  `json:"entity_type,omitempty"`
	Name           string              `json:"name"`
	DocumentType   domain.DocumentType `json:"document_type"`
	MimeType       string              `json:"mime_type"`
	SizeBytes      int64               `json:"size_bytes"`
	ChecksumSHA256 string              `json:"checksum_sha256"`
	Description    *string             `json:"description,omitempty"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
