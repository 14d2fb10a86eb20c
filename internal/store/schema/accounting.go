package schema

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-crm/internal/domain"
)

// Account represents the chart_of_accounts table
type Account struct {
	Base
	SyncState
	Code            string                 `gorm:"column:code;type:text;not null"`
	Name            string                 `gorm:"column:name;type:text;not null"`
	Category        domain.AccountCategory `gorm:"column:category;type:account_category;not null"`
	ParentAccountID *uuid.UUID             `gorm:"column:parent_account_id;type:uuid"`
	Description     *string                `gorm:"column:description;type:text"`
	// NormalBalance is debit or credit
	NormalBalance string `gorm:"column:normal_balance;type:text;not null;default:debit"`
	IsActive      bool   `gorm:"column:is_active;not null"`
}

// TableName specifies the table name for the Account model
func (Account) TableName() string {
	return "chart_of_accounts"
}

// JournalEntry represents the journal_entries table. Once posted an entry
// and its lines can only be voided.
type JournalEntry struct {
	Base
	SyncState
	EntryNumber   string                    `gorm:"column:entry_number;type:text;not null"`
	EntryDate     *datatypes.Date           `gorm:"column:entry_date;type:date;default:current_date"`
	Description   *string                   `gorm:"column:description;type:text"`
	Status        domain.JournalEntryStatus `gorm:"column:status;type:journal_entry_status;not null;default:draft"`
	PostedAt      *time.Time                `gorm:"column:posted_at"`
	PostedBy      *uuid.UUID                `gorm:"column:posted_by;type:uuid"`
	VoidedAt      *time.Time                `gorm:"column:voided_at"`
	VoidedBy      *uuid.UUID                `gorm:"column:voided_by;type:uuid"`
	VoidReason    *string                   `gorm:"column:void_reason;type:text"`
	ReferenceType *string                   `gorm:"column:reference_type;type:text"`
	ReferenceID   *uuid.UUID                `gorm:"column:reference_id;type:uuid"`
	OwnerID       *uuid.UUID                `gorm:"column:owner_id;type:uuid;default:auth.uid()"`

	Lines []JournalEntryLine `gorm:"foreignKey:JournalEntryID"`
}

// TableName specifies the table name for the JournalEntry model
func (JournalEntry) TableName() string {
	return "journal_entries"
}

// JournalEntryLine represents the journal_entry_lines table. Exactly one of
// Debit and Credit is positive.
type JournalEntryLine struct {
	Base
	JournalEntryID uuid.UUID `gorm:"column:journal_entry_id;type:uuid;not null"`
	AccountID      uuid.UUID `gorm:"column:account_id;type:uuid;not null"`
	LineNumber     int       `gorm:"column:line_number;not null"`
	Description    *string   `gorm:"column:description;type:text"`
	Debit          float64   `gorm:"column:debit;type:numeric(15,2);not null"`
	Credit         float64   `gorm:"column:credit;type:numeric(15,2);not null"`
}

// TableName specifies the table name for the JournalEntryLine model
func (JournalEntryLine) TableName() string {
	return "journal_entry_lines"
}

// Payment represents the payments table
type Payment struct {
	Base
	SyncState
	PaymentNumber  string               `gorm:"column:payment_number;type:text;not null"`
	EntityID       *uuid.UUID           `gorm:"column:entity_id;type:uuid"`
	EntityType     *domain.EntityType   `gorm:"column:entity_type;type:entity_type"`
	QuoteID        *uuid.UUID           `gorm:"column:quote_id;type:uuid"`
	JournalEntryID *uuid.UUID           `gorm:"column:journal_entry_id;type:uuid"`
	Amount         float64              `gorm:"column:amount;type:numeric(15,2);not null"`
	Currency       string               `gorm:"column:currency;type:char(3);not null;default:USD"`
	Method         domain.PaymentMethod `gorm:"column:method;type:payment_method;not null"`
	Status         domain.PaymentStatus `gorm:"column:status;type:payment_status;not null;default:pending"`
	PaidAt         *time.Time           `gorm:"column:paid_at"`
	Reference      *string              `gorm:"column:reference;type:text"`
	Notes          *string              `gorm:"column:notes;type:text"`
	OwnerID        *uuid.UUID           `gorm:"column:owner_id;type:uuid;default:auth.uid()"`
}

// TableName specifies the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
