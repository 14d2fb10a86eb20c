package schema

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-crm/internal/domain"
)

// Ownership holds the owner and assignee columns consulted by the CRM RLS policies
type Ownership struct {
	// OwnerID defaults to auth.uid() in the database
	OwnerID    *uuid.UUID `gorm:"column:owner_id;type:uuid;default:auth.uid()"`
	AssignedTo *uuid.UUID `gorm:"column:assigned_to;type:uuid"`
}

// CRMPipeline represents the crm_pipelines table
type CRMPipeline struct {
	Base
	Name         string                                    `gorm:"column:name;type:text;not null"`
	PipelineType domain.PipelineType                       `gorm:"column:pipeline_type;type:pipeline_type;not null;default:sales"`
	Description  *string                                   `gorm:"column:description;type:text"`
	Stages       datatypes.JSONSlice[domain.PipelineStage] `gorm:"column:stages;type:jsonb;not null;default:'[]'"`
	// IsDefault is unique per pipeline type among live rows
	IsDefault bool       `gorm:"column:is_default;not null"`
	OwnerID   *uuid.UUID `gorm:"column:owner_id;type:uuid;default:auth.uid()"`
}

// TableName specifies the table name for the CRMPipeline model
func (CRMPipeline) TableName() string {
	return "crm_pipelines"
}

// CRMProduct represents the crm_products table
type CRMProduct struct {
	Base
	Ownership
	SKU         string              `gorm:"column:sku;type:text;not null"`
	Name        string              `gorm:"column:name;type:text;not null"`
	Description *string             `gorm:"column:description;type:text"`
	Category    *string             `gorm:"column:category;type:text"`
	UnitPrice   float64             `gorm:"column:unit_price;type:numeric(15,2);not null"`
	Currency    string              `gorm:"column:currency;type:char(3);not null;default:USD"`
	Status      domain.RecordStatus `gorm:"column:status;type:record_status;not null;default:active"`
}

// TableName specifies the table name for the CRMProduct model
func (CRMProduct) TableName() string {
	return "crm_products"
}

// CRMContact represents the crm_contacts table
type CRMContact struct {
	Base
	Ownership
	ProfileID    *uuid.UUID                  `gorm:"column:profile_id;type:uuid"`
	FirstName    *string                     `gorm:"column:first_name;type:text"`
	LastName     string                      `gorm:"column:last_name;type:text;not null"`
	FullName     string                      `gorm:"column:full_name;->"`
	Email        *string                     `gorm:"column:email;type:text"`
	Phone        *string                     `gorm:"column:phone;type:text"`
	CompanyName  *string                     `gorm:"column:company_name;type:text"`
	JobTitle     *string                     `gorm:"column:job_title;type:text"`
	ContactType  domain.ContactType          `gorm:"column:contact_type;type:contact_type;not null;default:prospect"`
	AccountType  domain.AccountType          `gorm:"column:account_type;type:account_type;not null;default:individual"`
	Status       domain.RecordStatus         `gorm:"column:status;type:record_status;not null;default:active"`
	LeadSource   *domain.LeadSource          `gorm:"column:lead_source;type:lead_source"`
	Notes        *string                     `gorm:"column:notes;type:text"`
	Tags         datatypes.JSONSlice[string] `gorm:"column:tags;type:jsonb;not null;default:'[]'"`
	CustomFields datatypes.JSON              `gorm:"column:custom_fields;type:jsonb;not null;default:'{}'"`
}

// TableName specifies the table name for the CRMContact model
func (CRMContact) TableName() string {
	return "crm_contacts"
}

// CRMLead represents the crm_leads table
type CRMLead struct {
	Base
	Ownership
	FirstName   *string           `gorm:"column:first_name;type:text"`
	LastName    string            `gorm:"column:last_name;type:text;not null"`
	FullName    string            `gorm:"column:full_name;->"`
	Email       *string           `gorm:"column:email;type:text"`
	Phone       *string           `gorm:"column:phone;type:text"`
	CompanyName *string           `gorm:"column:company_name;type:text"`
	JobTitle    *string           `gorm:"column:job_title;type:text"`
	Status      domain.LeadStatus `gorm:"column:status;type:lead_status;not null;default:new"`
	Source      domain.LeadSource `gorm:"column:source;type:lead_source;not null;default:other"`
	// Score is between 0 and 100
	Score          int      `gorm:"column:score;not null;default:0"`
	EstimatedValue *float64 `gorm:"column:estimated_value;type:numeric(15,2)"`
	// Conversion fields are set together by ConvertLead
	ConvertedAt            *time.Time     `gorm:"column:converted_at"`
	ConvertedContactID     *uuid.UUID     `gorm:"column:converted_contact_id;type:uuid"`
	ConvertedOpportunityID *uuid.UUID     `gorm:"column:converted_opportunity_id;type:uuid"`
	Notes                  *string        `gorm:"column:notes;type:text"`
	CustomFields           datatypes.JSON `gorm:"column:custom_fields;type:jsonb;not null;default:'{}'"`
}

// TableName specifies the table name for the CRMLead model
func (CRMLead) TableName() string {
	return "crm_leads"
}

// CRMOpportunity represents the crm_opportunities table
type CRMOpportunity struct {
	Base
	Ownership
	Name       string                  `gorm:"column:name;type:text;not null"`
	ContactID  *uuid.UUID              `gorm:"column:contact_id;type:uuid"`
	LeadID     *uuid.UUID              `gorm:"column:lead_id;type:uuid"`
	PipelineID *uuid.UUID              `gorm:"column:pipeline_id;type:uuid"`
	Stage      domain.OpportunityStage `gorm:"column:stage;type:opportunity_stage;not null;default:prospecting"`
	Amount     float64                 `gorm:"column:amount;type:numeric(15,2);not null"`
	// Probability is a percentage between 0 and 100
	Probability float64 `gorm:"column:probability;type:numeric(5,2);not null"`
	// ExpectedRevenue is amount * probability / 100, computed by the database
	ExpectedRevenue   float64         `gorm:"column:expected_revenue;->"`
	Currency          string          `gorm:"column:currency;type:char(3);not null;default:USD"`
	ExpectedCloseDate *datatypes.Date `gorm:"column:expected_close_date;type:date"`
	// ClosedAt is set exactly when the stage is closed
	ClosedAt    *time.Time `gorm:"column:closed_at"`
	Description *string    `gorm:"column:description;type:text"`
	Notes       *string    `gorm:"column:notes;type:text"`
}

// TableName specifies the table name for the CRMOpportunity model
func (CRMOpportunity) TableName() string {
	return "crm_opportunities"
}

// CRMQuote represents the crm_quotes table
type CRMQuote struct {
	Base
	Ownership
	QuoteNumber    string             `gorm:"column:quote_number;type:text;not null"`
	OpportunityID  *uuid.UUID         `gorm:"column:opportunity_id;type:uuid"`
	ContactID      *uuid.UUID         `gorm:"column:contact_id;type:uuid"`
	Status         domain.QuoteStatus `gorm:"column:status;type:quote_status;not null;default:draft"`
	Subtotal       float64            `gorm:"column:subtotal;type:numeric(15,2);not null"`
	DiscountAmount float64            `gorm:"column:discount_amount;type:numeric(15,2);not null"`
	TaxAmount      float64            `gorm:"column:tax_amount;type:numeric(15,2);not null"`
	// TotalAmount is subtotal - discount_amount + tax_amount, computed by the database
	TotalAmount float64         `gorm:"column:total_amount;->"`
	Currency    string          `gorm:"column:currency;type:char(3);not null;default:USD"`
	ValidUntil  *datatypes.Date `gorm:"column:valid_until;type:date"`
	Notes       *string         `gorm:"column:notes;type:text"`
	Terms       *string         `gorm:"column:terms;type:text"`

	Items []CRMQuoteItem `gorm:"foreignKey:QuoteID"`
}

// TableName specifies the table name for the CRMQuote model
func (CRMQuote) TableName() string {
	return "crm_quotes"
}

// CRMQuoteItem represents the crm_quote_items table
type CRMQuoteItem struct {
	Base
	QuoteID         uuid.UUID  `gorm:"column:quote_id;type:uuid;not null"`
	ProductID       *uuid.UUID `gorm:"column:product_id;type:uuid"`
	Description     string     `gorm:"column:description;type:text;not null"`
	Quantity        float64    `gorm:"column:quantity;type:numeric(12,3);not null;default:1"`
	UnitPrice       float64    `gorm:"column:unit_price;type:numeric(15,2);not null"`
	DiscountPercent float64    `gorm:"column:discount_percent;type:numeric(5,2);not null"`
	LineTotal       float64    `gorm:"column:line_total;->"`
	Position        int        `gorm:"column:position;not null"`
}

// TableName specifies the table name for the CRMQuoteItem model
func (CRMQuoteItem) TableName() string {
	return "crm_quote_items"
}

// CRMJob represents the crm_jobs table
type CRMJob struct {
	Base
	Ownership
	JobNumber      string               `gorm:"column:job_number;type:text;not null"`
	Title          string               `gorm:"column:title;type:text;not null"`
	Description    *string              `gorm:"column:description;type:text"`
	ContactID      *uuid.UUID           `gorm:"column:contact_id;type:uuid"`
	OpportunityID  *uuid.UUID           `gorm:"column:opportunity_id;type:uuid"`
	QuoteID        *uuid.UUID           `gorm:"column:quote_id;type:uuid"`
	Status         domain.JobStatus     `gorm:"column:status;type:job_status;not null;default:scheduled"`
	Priority       domain.PriorityLevel `gorm:"column:priority;type:priority_level;not null;default:medium"`
	ScheduledStart *time.Time           `gorm:"column:scheduled_start"`
	ScheduledEnd   *time.Time           `gorm:"column:scheduled_end"`
	ActualStart    *time.Time           `gorm:"column:actual_start"`
	ActualEnd      *time.Time           `gorm:"column:actual_end"`
	EstimatedHours *float64             `gorm:"column:estimated_hours;type:numeric(8,2)"`
	Notes          *string              `gorm:"column:notes;type:text"`
}

// TableName specifies the table name for the CRMJob model
func (CRMJob) TableName() string {
	return "crm_jobs"
}

// CRMReferral represents the crm_referrals table
type CRMReferral struct {
	Base
	Ownership
	ReferrerContactID *uuid.UUID            `gorm:"column:referrer_contact_id;type:uuid"`
	ReferredName      string                `gorm:"column:referred_name;type:text;not null"`
	ReferredEmail     *string               `gorm:"column:referred_email;type:text"`
	ReferredPhone     *string               `gorm:"column:referred_phone;type:text"`
	Status            domain.ReferralStatus `gorm:"column:status;type:referral_status;not null;default:pending"`
	LeadID            *uuid.UUID            `gorm:"column:lead_id;type:uuid"`
	RewardAmount      *float64              `gorm:"column:reward_amount;type:numeric(15,2)"`
	Notes             *string               `gorm:"column:notes;type:text"`
}

// TableName specifies the table name for the CRMReferral model
func (CRMReferral) TableName() string {
	return "crm_referrals"
}

// CRMCommunication represents the crm_communications table
type CRMCommunication struct {
	Base
	EntityID          uuid.UUID                     `gorm:"column:entity_id;type:uuid;not null"`
	EntityType        domain.EntityType             `gorm:"column:entity_type;type:entity_type;not null"`
	CommunicationType domain.CommunicationType      `gorm:"column:communication_type;type:communication_type;not null"`
	Direction         domain.CommunicationDirection `gorm:"column:direction;type:communication_direction;not null;default:outbound"`
	Subject           *string                       `gorm:"column:subject;type:text"`
	Body              *string                       `gorm:"column:body;type:text"`
	OccurredAt        time.Time                     `gorm:"column:occurred_at;not null;default:now()"`
	DurationSeconds   *int                          `gorm:"column:duration_seconds"`
	OwnerID           *uuid.UUID                    `gorm:"column:owner_id;type:uuid;default:auth.uid()"`
}

// TableName specifies the table name for the CRMCommunication model
func (CRMCommunication) TableName() string {
	return "crm_communications"
}

// CRMDocument represents the crm_documents table. The content itself lives
// in the document store under StoragePath.
type CRMDocument struct {
	Base
	EntityID       *uuid.UUID          `gorm:"column:entity_id;type:uuid"`
	EntityType     *domain.EntityType  `gorm:"column:entity_type;type:entity_type"`
	Name           string              `gorm:"column:name;type:text;not null"`
	DocumentType   domain.DocumentType `gorm:"column:document_type;type:document_type;not null;default:other"`
	MimeType       string              `gorm:"column:mime_type;type:text;not null"`
	SizeBytes      int64               `gorm:"column:size_bytes;not null"`
	ChecksumSHA256 string              `gorm:"column:checksum_sha256;type:text;not null"`
	StoragePath    string              `gorm:"column:storage_path;type:text;not null"`
	Description    *string             `gorm:"column:description;type:text"`
	OwnerID        *uuid.UUID          `gorm:"column:owner_id;type:uuid;default:auth.uid()"`
}

// TableName specifies the table name for the CRMDocument model
func (CRMDocument) TableName() string {
	return "crm_documents"
}

// CRMRelationship represents the crm_relationships table
type CRMRelationship struct {
	Base
	SourceID         uuid.UUID               `gorm:"column:source_id;type:uuid;not null"`
	SourceType       domain.EntityType       `gorm:"column:source_type;type:entity_type;not null"`
	TargetID         uuid.UUID               `gorm:"column:target_id;type:uuid;not null"`
	TargetType       domain.EntityType       `gorm:"column:target_type;type:entity_type;not null"`
	RelationshipType domain.RelationshipType `gorm:"column:relationship_type;type:relationship_type;not null;default:other"`
	Notes            *string                 `gorm:"column:notes;type:text"`
	OwnerID          *uuid.UUID              `gorm:"column:owner_id;type:uuid;default:auth.uid()"`
}

// TableName specifies the table name for the CRMRelationship model
func (CRMRelationship) TableName() string {
	return "crm_relationships"
}

// CRMNote represents the crm_notes table
type CRMNote struct {
	Base
	EntityID   uuid.UUID         `gorm:"column:entity_id;type:uuid;not null"`
	EntityType domain.EntityType `gorm:"column:entity_type;type:entity_type;not null"`
	Title      *string           `gorm:"column:title;type:text"`
	Content    string            `gorm:"column:content;type:text;not null"`
	IsPinned   bool              `gorm:"column:is_pinned;not null"`
	IsPrivate  bool              `gorm:"column:is_private;not null"`
	OwnerID    *uuid.UUID        `gorm:"column:owner_id;type:uuid;default:auth.uid()"`
}

// TableName specifies the table name for the CRMNote model
func (CRMNote) TableName() string {
	return "crm_notes"
}
