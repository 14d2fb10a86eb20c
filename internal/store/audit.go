package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/feral-file/ff-crm/internal/domain"
	"github.com/feral-file/ff-crm/internal/store/schema"
)

// RecordUserActivityInput represents a user_activities entry
type RecordUserActivityInput struct {
	UserID       uuid.UUID
	ActivityType string
	EntityID     *uuid.UUID
	EntityType   *domain.EntityType
	Description  *string
	Metadata     json.RawMessage
	IPAddress    *string
	UserAgent    *string
}

// RecordSecurityEventInput represents a security_events entry
type RecordSecurityEventInput struct {
	UserID      *uuid.UUID
	EventType   domain.SecurityEventType
	Severity    domain.SeverityLevel
	Description *string
	IPAddress   *string
	UserAgent   *string
	Metadata    json.RawMessage
}

// RecordComplianceLogInput represents a compliance_logs entry
type RecordComplianceLogInput struct {
	Framework   domain.ComplianceFramework
	Requirement string
	EntityID    *uuid.UUID
	EntityType  *string
	UserID      *uuid.UUID
	Action      string
	Details     json.RawMessage
}

// SecurityEventFilter narrows ListSecurityEvents
type SecurityEventFilter struct {
	UserID       *uuid.UUID
	MinSeverity  domain.SeverityLevel
	OnlyOpen     bool
	CreatedAfter *time.Time
	Pagination
}

var severityRank = map[domain.SeverityLevel]int{
	domain.SeverityLevelLow:      1,
	domain.SeverityLevelMedium:   2,
	domain.SeverityLevelHigh:     3,
	domain.SeverityLevelCritical: 4,
}

// ListAuditLogs returns the audit trail of one row, oldest first
func (s *pgStore) ListAuditLogs(ctx context.Context, entityType string, entityID uuid.UUID, page Pagination) ([]schema.AuditLog, error) {
	var logs []schema.AuditLog
	err := s.read(ctx, func(tx *gorm.DB) error {
		return page.apply(tx).
			Where("entity_type = ? AND entity_id = ?", entityType, entityID).
			Order("seq ASC").
			Find(&logs).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return logs, nil
}

// ListAuditLogsAfter returns up to limit audit logs past the cursor in
// (txid, seq) order. Rows written by transactions at or above the snapshot
// xmin are held back: an older writer may still commit rows that sort before
// them. Reads go to the primary since replicas may lag behind the cursor.
func (s *pgStore) ListAuditLogsAfter(ctx context.Context, after schema.AuditCursor, limit int) ([]schema.AuditLog, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}

	var logs []schema.AuditLog
	err := s.write(ctx, func(tx *gorm.DB) error {
		return tx.Where("(txid, seq) > (?, ?)", after.TxID, after.Seq).
			Where("txid < (pg_snapshot_xmin(pg_current_snapshot())::text)::bigint").
			Order("txid ASC, seq ASC").
			Limit(limit).
			Find(&logs).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return logs, nil
}

// RecordUserActivity appends a user_activities entry
func (s *pgStore) RecordUserActivity(ctx context.Context, input RecordUserActivityInput) (*schema.UserActivity, error) {
	if (input.EntityID == nil) != (input.EntityType == nil) {
		return nil, fmt.Errorf("%w: entity id and type go together", domain.ErrInvalidInput)
	}

	activity := schema.UserActivity{
		ID:           uuid.New(),
		UserID:       input.UserID,
		ActivityType: input.ActivityType,
		EntityID:     input.EntityID,
		EntityType:   input.EntityType,
		Description:  input.Description,
		Metadata:     datatypes.JSON(input.Metadata),
		IPAddress:    input.IPAddress,
		UserAgent:    input.UserAgent,
	}

	err := s.write(ctx, func(tx *gorm.DB) error {
		return create(tx, &activity)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record user activity: %w", err)
	}
	return &activity, nil
}

// RecordSecurityEvent appends a security_events entry
func (s *pgStore) RecordSecurityEvent(ctx context.Context, input RecordSecurityEventInput) (*schema.SecurityEvent, error) {
	if !input.EventType.Valid() {
		return nil, fmt.Errorf("%w: unknown security event type %q", domain.ErrInvalidInput, input.EventType)
	}
	if input.Severity != "" && !input.Severity.Valid() {
		return nil, fmt.Errorf("%w: unknown severity %q", domain.ErrInvalidInput, input.Severity)
	}

	event := schema.SecurityEvent{
		ID:          uuid.New(),
		UserID:      input.UserID,
		EventType:   input.EventType,
		Severity:    input.Severity,
		Description: input.Description,
		IPAddress:   input.IPAddress,
		UserAgent:   input.UserAgent,
		Metadata:    datatypes.JSON(input.Metadata),
	}

	err := s.write(ctx, func(tx *gorm.DB) error {
		return create(tx, &event)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record security event: %w", err)
	}
	return &event, nil
}

// RecordComplianceLog appends a compliance_logs entry
func (s *pgStore) RecordComplianceLog(ctx context.Context, input RecordComplianceLogInput) (*schema.ComplianceLog, error) {
	if !input.Framework.Valid() {
		return nil, fmt.Errorf("%w: unknown compliance framework %q", domain.ErrInvalidInput, input.Framework)
	}

	entry := schema.ComplianceLog{
		ID:          uuid.New(),
		Framework:   input.Framework,
		Requirement: input.Requirement,
		EntityID:    input.EntityID,
		EntityType:  input.EntityType,
		UserID:      input.UserID,
		Action:      input.Action,
		Details:     datatypes.JSON(input.Details),
	}

	err := s.write(ctx, func(tx *gorm.DB) error {
		return create(tx, &entry)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record compliance log: %w", err)
	}
	return &entry, nil
}

// ListSecurityEvents returns security events matching filter, newest first
func (s *pgStore) ListSecurityEvents(ctx context.Context, filter SecurityEventFilter) ([]schema.SecurityEvent, error) {
	var events []schema.SecurityEvent
	err := s.read(ctx, func(tx *gorm.DB) error {
		q := filter.Pagination.apply(tx)
		if filter.UserID != nil {
			q = q.Where("user_id = ?", *filter.UserID)
		}
		if filter.OnlyOpen {
			q = q.Where("NOT resolved")
		}
		if filter.CreatedAfter != nil {
			q = q.Where("created_at > ?", *filter.CreatedAfter)
		}
		if rank, ok := severityRank[filter.MinSeverity]; ok {
			var levels []domain.SeverityLevel
			for level, r := range severityRank {
				if r >= rank {
					levels = append(levels, level)
				}
			}
			q = q.Where("severity IN ?", levels)
		}
		return q.Order("created_at DESC").Find(&events).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list security events: %w", err)
	}
	return events, nil
}
