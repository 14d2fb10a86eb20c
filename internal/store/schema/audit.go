package schema

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-crm/internal/domain"
)

// AuditLog represents the append-only audit_logs table written by process_audit_trail
type AuditLog struct {
	// ID is the row's UUID, used as the message id when relayed
	ID uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	// Seq is the insert order. It is not commit order
	Seq int64 `gorm:"column:seq;->"`
	// TxID is the id of the writing transaction
	TxID int64 `gorm:"column:txid;->"`
	// EntityType is the name of the table the change happened in
	EntityType string             `gorm:"column:entity_type;type:text;not null"`
	EntityID   *uuid.UUID         `gorm:"column:entity_id;type:uuid"`
	Action     domain.AuditAction `gorm:"column:action;type:audit_action;not null"`
	UserID     *uuid.UUID         `gorm:"column:user_id;type:uuid"`
	// Changes is {action, timestamp, user_id, changes} with a per-column old/new diff
	Changes   datatypes.JSON `gorm:"column:changes;type:jsonb;not null"`
	OldValues datatypes.JSON `gorm:"column:old_values;type:jsonb"`
	NewValues datatypes.JSON `gorm:"column:new_values;type:jsonb"`
	IPAddress *string        `gorm:"column:ip_address;type:inet"`
	UserAgent *string        `gorm:"column:user_agent;type:text"`
	CreatedAt time.Time      `gorm:"column:created_at;not null;default:now()"`
}

// TableName specifies the table name for the AuditLog model
func (AuditLog) TableName() string {
	return "audit_logs"
}

// Cursor returns the relay position just past this row
func (a AuditLog) Cursor() AuditCursor {
	return AuditCursor{TxID: a.TxID, Seq: a.Seq}
}

// AuditCursor is a position in the audit trail ordered by (txid, seq).
// The zero value is before the first row.
type AuditCursor struct {
	TxID int64
	Seq  int64
}

// UserActivity represents the user_activities table
type UserActivity struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID       uuid.UUID          `gorm:"column:user_id;type:uuid;not null"`
	ActivityType string             `gorm:"column:activity_type;type:text;not null"`
	EntityID     *uuid.UUID         `gorm:"column:entity_id;type:uuid"`
	EntityType   *domain.EntityType `gorm:"column:entity_type;type:entity_type"`
	Description  *string            `gorm:"column:description;type:text"`
	Metadata     datatypes.JSON     `gorm:"column:metadata;type:jsonb;not null;default:'{}'"`
	IPAddress    *string            `gorm:"column:ip_address;type:inet"`
	UserAgent    *string            `gorm:"column:user_agent;type:text"`
	CreatedAt    time.Time          `gorm:"column:created_at;not null;default:now()"`
}

// TableName specifies the table name for the UserActivity model
func (UserActivity) TableName() string {
	return "user_activities"
}

// SecurityEvent represents the security_events table
type SecurityEvent struct {
	ID          uuid.UUID                `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID      *uuid.UUID               `gorm:"column:user_id;type:uuid"`
	EventType   domain.SecurityEventType `gorm:"column:event_type;type:security_event_type;not null"`
	Severity    domain.SeverityLevel     `gorm:"column:severity;type:severity_level;not null;default:low"`
	Description *string                  `gorm:"column:description;type:text"`
	IPAddress   *string                  `gorm:"column:ip_address;type:inet"`
	UserAgent   *string                  `gorm:"column:user_agent;type:text"`
	Metadata    datatypes.JSON           `gorm:"column:metadata;type:jsonb;not null;default:'{}'"`
	Resolved    bool                     `gorm:"column:resolved;not null"`
	ResolvedAt  *time.Time               `gorm:"column:resolved_at"`
	ResolvedBy  *uuid.UUID               `gorm:"column:resolved_by;type:uuid"`
	CreatedAt   time.Time                `gorm:"column:created_at;not null;default:now()"`
}

// TableName specifies the table name for the SecurityEvent model
func (SecurityEvent) TableName() string {
	return "security_events"
}

// ComplianceLog represents the compliance_logs table
type ComplianceLog struct {
	ID          uuid.UUID                  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Framework   domain.ComplianceFramework `gorm:"column:framework;type:compliance_framework;not null"`
	Requirement string                     `gorm:"column:requirement;type:text;not null"`
	EntityID    *uuid.UUID                 `gorm:"column:entity_id;type:uuid"`
	EntityType  *string                    `gorm:"column:entity_type;type:text"`
	UserID      *uuid.UUID                 `gorm:"column:user_id;type:uuid"`
	Action      string                     `gorm:"column:action;type:text;not null"`
	Details     datatypes.JSON             `gorm:"column:details;type:jsonb;not null;default:'{}'"`
	CreatedAt   time.Time                  `gorm:"column:created_at;not null;default:now()"`
}

// TableName specifies the table name for the ComplianceLog model
func (ComplianceLog) TableName() string {
	return "compliance_logs"
}
