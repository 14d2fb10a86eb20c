package schema

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base holds the primary key and the housekeeping columns shared by every
// soft-deletable table. updated_at, updated_by, deleted_by and version are
// maintained by triggers; the models only carry them.
type Base struct {
	// ID is the row's UUID primary key
	ID uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	// Version is the optimistic lock counter, bumped by enforce_row_version
	Version int `gorm:"column:version;not null;default:1"`
	// CreatedAt is when the row was inserted
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	// CreatedBy is the user who inserted the row
	CreatedBy *uuid.UUID `gorm:"column:created_by;type:uuid"`
	// UpdatedAt is stamped by update_timestamp
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`
	// UpdatedBy is stamped by update_timestamp from the session user
	UpdatedBy *uuid.UUID `gorm:"column:updated_by;type:uuid"`
	// DeletedAt marks a soft-deleted row; nil means live
	DeletedAt *time.Time `gorm:"column:deleted_at"`
	// DeletedBy is set together with DeletedAt (valid_deletion)
	DeletedBy *uuid.UUID `gorm:"column:deleted_by;type:uuid"`
}

// BeforeCreate assigns the primary key client side so callers see it
// without a round trip.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// IsDeleted reports whether the row is soft-deleted
func (b Base) IsDeleted() bool {
	return b.DeletedAt != nil
}

// Record is implemented by every model embedding Base
type Record interface {
	TableName() string
	GetBase() *Base
}

// GetBase exposes the embedded housekeeping columns
func (b *Base) GetBase() *Base {
	return b
}
