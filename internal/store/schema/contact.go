package schema

import (
	"time"

	"github.com/google/uuid"

	"github.com/feral-file/ff-crm/internal/domain"
)

// Owned is implemented by rows attached to a polymorphic (entity_id, entity_type) owner
type Owned interface {
	Record
	Owner() domain.EntityRef
	Primary() bool
}

// EntityEmail represents the entity_emails table
type EntityEmail struct {
	Base
	// EntityID and EntityType identify the owner; existence is enforced by validate_entity_reference
	EntityID   uuid.UUID         `gorm:"column:entity_id;type:uuid;not null"`
	EntityType domain.EntityType `gorm:"column:entity_type;type:entity_type;not null"`
	Email      string            `gorm:"column:email;type:text;not null"`
	EmailType  domain.EmailType  `gorm:"column:email_type;type:email_type;not null;default:personal"`
	// IsPrimary is unique among the owner's live rows
	IsPrimary  bool       `gorm:"column:is_primary;not null"`
	IsVerified bool       `gorm:"column:is_verified;not null"`
	VerifiedAt *time.Time `gorm:"column:verified_at"`
}

// TableName specifies the table name for the EntityEmail model
func (EntityEmail) TableName() string {
	return "entity_emails"
}

// Owner returns the polymorphic owner
func (e *EntityEmail) Owner() domain.EntityRef {
	return domain.EntityRef{ID: e.EntityID.String(), Type: e.EntityType}
}

// Primary reports the primary flag
func (e *EntityEmail) Primary() bool {
	return e.IsPrimary
}

// EntityPhone represents the entity_phones table
type EntityPhone struct {
	Base
	EntityID    uuid.UUID         `gorm:"column:entity_id;type:uuid;not null"`
	EntityType  domain.EntityType `gorm:"column:entity_type;type:entity_type;not null"`
	Phone       string            `gorm:"column:phone;type:text;not null"`
	PhoneType   domain.PhoneType  `gorm:"column:phone_type;type:phone_type;not null;default:mobile"`
	CountryCode *string           `gorm:"column:country_code;type:text"`
	Extension   *string           `gorm:"column:extension;type:text"`
	IsPrimary   bool              `gorm:"column:is_primary;not null"`
	IsVerified  bool              `gorm:"column:is_verified;not null"`
	VerifiedAt  *time.Time        `gorm:"column:verified_at"`
}

// TableName specifies the table name for the EntityPhone model
func (EntityPhone) TableName() string {
	return "entity_phones"
}

// Owner returns the polymorphic owner
func (e *EntityPhone) Owner() domain.EntityRef {
	return domain.EntityRef{ID: e.EntityID.String(), Type: e.EntityType}
}

// Primary reports the primary flag
func (e *EntityPhone) Primary() bool {
	return e.IsPrimary
}

// EntityAddress represents the entity_addresses table. This polymorphic
// table is the only address model; there is no per-user address table.
type EntityAddress struct {
	Base
	EntityID    uuid.UUID          `gorm:"column:entity_id;type:uuid;not null"`
	EntityType  domain.EntityType  `gorm:"column:entity_type;type:entity_type;not null"`
	AddressType domain.AddressType `gorm:"column:address_type;type:address_type;not null;default:home"`
	Line1       string             `gorm:"column:line1;type:text;not null"`
	Line2       *string            `gorm:"column:line2;type:text"`
	City        string             `gorm:"column:city;type:text;not null"`
	State       *string            `gorm:"column:state;type:text"`
	PostalCode  *string            `gorm:"column:postal_code;type:text"`
	// Country is an ISO 3166-1 alpha-2 code
	Country   string   `gorm:"column:country;type:text;not null"`
	Latitude  *float64 `gorm:"column:latitude;type:numeric(9,6)"`
	Longitude *float64 `gorm:"column:longitude;type:numeric(9,6)"`
	IsPrimary bool     `gorm:"column:is_primary;not null"`
}

// TableName specifies the table name for the EntityAddress model
func (EntityAddress) TableName() string {
	return "entity_addresses"
}

// Owner returns the polymorphic owner
func (e *EntityAddress) Owner() domain.EntityRef {
	return domain.EntityRef{ID: e.EntityID.String(), Type: e.EntityType}
}

// Primary reports the primary flag
func (e *EntityAddress) Primary() bool {
	return e.IsPrimary
}
