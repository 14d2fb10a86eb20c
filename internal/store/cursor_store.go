package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-crm/internal/store/schema"
)

// CursorStore defines the interface for storing and retrieving audit relay cursors
type CursorStore interface {
	// GetAuditCursor retrieves the last relayed audit_logs position of a consumer
	GetAuditCursor(ctx context.Context, consumer string) (schema.AuditCursor, error)
	// SetAuditCursor stores the last relayed audit_logs position of a consumer
	SetAuditCursor(ctx context.Context, consumer string, cursor schema.AuditCursor) error
}

func auditCursorKey(consumer string) string {
	return fmt.Sprintf("audit_cursor:%s", consumer)
}

// GetAuditCursor retrieves the last relayed audit_logs position of a consumer.
// Values are stored as "<txid>:<seq>".
func (s *pgStore) GetAuditCursor(ctx context.Context, consumer string) (schema.AuditCursor, error) {
	value, err := s.GetKeyValue(ctx, auditCursorKey(consumer))
	if err != nil {
		return schema.AuditCursor{}, fmt.Errorf("failed to get audit cursor: %w", err)
	}
	if value == "" {
		return schema.AuditCursor{}, nil // Zero cursor if none exists
	}

	txPart, seqPart, ok := strings.Cut(value, ":")
	if !ok {
		return schema.AuditCursor{}, fmt.Errorf("failed to parse audit cursor %q", value)
	}
	txID, err := strconv.ParseInt(txPart, 10, 64)
	if err != nil {
		return schema.AuditCursor{}, fmt.Errorf("failed to parse audit cursor txid: %w", err)
	}
	seq, err := strconv.ParseInt(seqPart, 10, 64)
	if err != nil {
		return schema.AuditCursor{}, fmt.Errorf("failed to parse audit cursor seq: %w", err)
	}

	return schema.AuditCursor{TxID: txID, Seq: seq}, nil
}

// SetAuditCursor stores the last relayed audit_logs position of a consumer
func (s *pgStore) SetAuditCursor(ctx context.Context, consumer string, cursor schema.AuditCursor) error {
	value := strconv.FormatInt(cursor.TxID, 10) + ":" + strconv.FormatInt(cursor.Seq, 10)
	if err := s.SetKeyValue(ctx, auditCursorKey(consumer), value); err != nil {
		return fmt.Errorf("failed to set audit cursor: %w", err)
	}
	return nil
}

// GetKeyValue retrieves a value by key, returning "" when it is not set
func (s *pgStore) GetKeyValue(ctx context.Context, key string) (string, error) {
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get key value: %w", err)
	}
	return kv.Value, nil
}

// SetKeyValue stores a value by key
func (s *pgStore) SetKeyValue(ctx context.Context, key, value string) error {
	kv := schema.KeyValueStore{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&kv).Error
	if err != nil {
		return fmt.Errorf("failed to set key value: %w", err)
	}

	return nil
}
