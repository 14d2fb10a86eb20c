package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/feral-file/ff-crm/internal/domain"
	"github.com/feral-file/ff-crm/internal/store/schema"
)

// JournalLineInput represents one side of a journal entry
type JournalLineInput struct {
	AccountID   uuid.UUID
	Description *string
	Debit       float64
	Credit      float64
}

// CreateJournalEntryInput represents a new draft journal entry
type CreateJournalEntryInput struct {
	EntryNumber   string
	EntryDate     *time.Time
	Description   *string
	ReferenceType *string
	ReferenceID   *uuid.UUID
	Lines         []JournalLineInput
}

// RecordPaymentInput represents a payment received or made
type RecordPaymentInput struct {
	PaymentNumber  string
	EntityID       *uuid.UUID
	EntityType     *domain.EntityType
	QuoteID        *uuid.UUID
	JournalEntryID *uuid.UUID
	Amount         float64
	Currency       string
	Method         domain.PaymentMethod
	Status         domain.PaymentStatus
	PaidAt         *time.Time
	Reference      *string
	Notes          *string
}

// PaymentFilter narrows ListPayments
type PaymentFilter struct {
	EntityID   *uuid.UUID
	EntityType *domain.EntityType
	QuoteID    *uuid.UUID
	Statuses   []domain.PaymentStatus
	Pagination
}

// CreateJournalEntry inserts a draft entry. Lines are numbered in the order
// given and must each carry exactly one positive side.
func (s *pgStore) CreateJournalEntry(ctx context.Context, input CreateJournalEntryInput) (*schema.JournalEntry, error) {
	if strings.TrimSpace(input.EntryNumber) == "" {
		return nil, fmt.Errorf("%w: entry number is required", domain.ErrInvalidInput)
	}
	if (input.ReferenceType == nil) != (input.ReferenceID == nil) {
		return nil, fmt.Errorf("%w: reference type and id go together", domain.ErrInvalidInput)
	}

	entry := schema.JournalEntry{
		EntryNumber:   strings.TrimSpace(input.EntryNumber),
		Description:   input.Description,
		ReferenceType: input.ReferenceType,
		ReferenceID:   input.ReferenceID,
		OwnerID:       actorRef(ctx),
	}
	entry.CreatedBy = actorRef(ctx)
	if input.EntryDate != nil {
		date := datatypes.Date(*input.EntryDate)
		entry.EntryDate = &date
	}

	for i, in := range input.Lines {
		if err := validateJournalLine(in); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		line := schema.JournalEntryLine{
			AccountID:   in.AccountID,
			LineNumber:  i + 1,
			Description: in.Description,
			Debit:       roundCents(in.Debit),
			Credit:      roundCents(in.Credit),
		}
		line.CreatedBy = actorRef(ctx)
		entry.Lines = append(entry.Lines, line)
	}

	err := s.write(ctx, func(tx *gorm.DB) error {
		return create(tx, &entry)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create journal entry: %w", err)
	}

	return s.GetJournalEntry(ctx, entry.ID)
}

func validateJournalLine(line JournalLineInput) error {
	if line.AccountID == uuid.Nil {
		return fmt.Errorf("%w: account is required", domain.ErrInvalidInput)
	}
	if line.Debit < 0 || line.Credit < 0 {
		return fmt.Errorf("%w: amounts must not be negative", domain.ErrInvalidInput)
	}
	if (line.Debit > 0) == (line.Credit > 0) {
		return fmt.Errorf("%w: exactly one of debit or credit must be set", domain.ErrInvalidInput)
	}
	return nil
}

// GetJournalEntry retrieves a live journal entry with its lines
func (s *pgStore) GetJournalEntry(ctx context.Context, id uuid.UUID) (*schema.JournalEntry, error) {
	var entry schema.JournalEntry
	err := s.read(ctx, func(tx *gorm.DB) error {
		return live(tx).
			Preload("Lines", func(db *gorm.DB) *gorm.DB {
				return live(db).Order("line_number ASC")
			}).
			Where("id = ?", id).
			First(&entry).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get journal entry: %w", err)
	}
	return &entry, nil
}

// AddJournalLine appends a line to a draft entry
func (s *pgStore) AddJournalLine(ctx context.Context, entryID uuid.UUID, input JournalLineInput) (*schema.JournalEntry, error) {
	if err := validateJournalLine(input); err != nil {
		return nil, err
	}

	err := s.write(ctx, func(tx *gorm.DB) error {
		entry, err := lockLive[schema.JournalEntry](tx, entryID)
		if err != nil {
			return err
		}
		if entry.Status != domain.JournalEntryStatusDraft {
			return fmt.Errorf("journal entry %s is %s: %w", entry.EntryNumber, entry.Status, domain.ErrImmutable)
		}

		var last int
		err = live(tx.Model(&schema.JournalEntryLine{})).
			Where("journal_entry_id = ?", entryID).
			Select("coalesce(max(line_number), 0)").
			Scan(&last).Error
		if err != nil {
			return err
		}

		line := schema.JournalEntryLine{
			JournalEntryID: entryID,
			AccountID:      input.AccountID,
			LineNumber:     last + 1,
			Description:    input.Description,
			Debit:          roundCents(input.Debit),
			Credit:         roundCents(input.Credit),
		}
		line.CreatedBy = actorRef(ctx)
		return create(tx, &line)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add journal line: %w", err)
	}

	return s.GetJournalEntry(ctx, entryID)
}

// PostJournalEntry moves a draft entry to posted. The balance is checked
// here for a clear error and again by the posting trigger.
func (s *pgStore) PostJournalEntry(ctx context.Context, id uuid.UUID, version int) (*schema.JournalEntry, error) {
	err := s.write(ctx, func(tx *gorm.DB) error {
		entry, err := lockLive[schema.JournalEntry](tx, id)
		if err != nil {
			return err
		}
		if entry.Status != domain.JournalEntryStatusDraft {
			return fmt.Errorf("journal entry %s is %s: %w", entry.EntryNumber, entry.Status, domain.ErrImmutable)
		}

		var totals struct {
			Lines  int
			Debit  float64
			Credit float64
		}
		err = live(tx.Model(&schema.JournalEntryLine{})).
			Where("journal_entry_id = ?", id).
			Select("count(*) AS lines, coalesce(sum(debit), 0) AS debit, coalesce(sum(credit), 0) AS credit").
			Scan(&totals).Error
		if err != nil {
			return err
		}
		if totals.Lines < 2 || totals.Debit == 0 || roundCents(totals.Debit) != roundCents(totals.Credit) {
			return fmt.Errorf("journal entry %s has %d lines, debits %.2f, credits %.2f: %w",
				entry.EntryNumber, totals.Lines, totals.Debit, totals.Credit, domain.ErrUnbalancedEntry)
		}

		var updated schema.JournalEntry
		return updateVersioned(tx, &updated, id, version, map[string]any{
			"status":    domain.JournalEntryStatusPosted,
			"posted_at": time.Now().UTC(),
			"posted_by": domain.ActorID(ctx),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to post journal entry: %w", err)
	}

	return s.GetJournalEntry(ctx, id)
}

// VoidJournalEntry voids a posted entry. Voiding a draft or an already
// void entry is refused by the database.
func (s *pgStore) VoidJournalEntry(ctx context.Context, id uuid.UUID, version int, reason string) (*schema.JournalEntry, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: void reason is required", domain.ErrInvalidInput)
	}

	err := s.write(ctx, func(tx *gorm.DB) error {
		var updated schema.JournalEntry
		return updateVersioned(tx, &updated, id, version, map[string]any{
			"status":      domain.JournalEntryStatusVoid,
			"voided_at":   time.Now().UTC(),
			"voided_by":   domain.ActorID(ctx),
			"void_reason": strings.TrimSpace(reason),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to void journal entry: %w", err)
	}

	return s.GetJournalEntry(ctx, id)
}

// RecordPayment inserts a payment. Completed payments without a paid_at
// are stamped with the current time.
func (s *pgStore) RecordPayment(ctx context.Context, input RecordPaymentInput) (*schema.Payment, error) {
	if strings.TrimSpace(input.PaymentNumber) == "" {
		return nil, fmt.Errorf("%w: payment number is required", domain.ErrInvalidInput)
	}
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}
	if !input.Method.Valid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", domain.ErrInvalidInput, input.Method)
	}
	if input.Status == "" {
		input.Status = domain.PaymentStatusPending
	}
	if !input.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown payment status %q", domain.ErrInvalidInput, input.Status)
	}

	payment := schema.Payment{
		PaymentNumber:  strings.TrimSpace(input.PaymentNumber),
		QuoteID:        input.QuoteID,
		JournalEntryID: input.JournalEntryID,
		Amount:         roundCents(input.Amount),
		Currency:       strings.ToUpper(input.Currency),
		Method:         input.Method,
		Status:         input.Status,
		PaidAt:         input.PaidAt,
		Reference:      input.Reference,
		Notes:          input.Notes,
		OwnerID:        actorRef(ctx),
	}
	payment.CreatedBy = actorRef(ctx)
	if (input.EntityID == nil) != (input.EntityType == nil) {
		return nil, fmt.Errorf("%w: entity id and type go together", domain.ErrInvalidInput)
	}
	if input.EntityID != nil {
		if err := validateOwner(*input.EntityID, *input.EntityType); err != nil {
			return nil, err
		}
		payment.EntityID = input.EntityID
		payment.EntityType = input.EntityType
	}
	if payment.PaidAt == nil && (payment.Status == domain.PaymentStatusCompleted || payment.Status == domain.PaymentStatusRefunded) {
		now := time.Now().UTC()
		payment.PaidAt = &now
	}

	err := s.write(ctx, func(tx *gorm.DB) error {
		return create(tx, &payment)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}
	return &payment, nil
}

// ListPayments returns live payments, newest first
func (s *pgStore) ListPayments(ctx context.Context, filter PaymentFilter) ([]schema.Payment, error) {
	var payments []schema.Payment
	err := s.read(ctx, func(tx *gorm.DB) error {
		q := filter.Pagination.apply(live(tx))
		if filter.EntityID != nil {
			q = q.Where("entity_id = ?", *filter.EntityID)
		}
		if filter.EntityType != nil {
			q = q.Where("entity_type = ?", *filter.EntityType)
		}
		if filter.QuoteID != nil {
			q = q.Where("quote_id = ?", *filter.QuoteID)
		}
		if len(filter.Statuses) > 0 {
			q = q.Where("status IN ?", filter.Statuses)
		}
		return q.Order("created_at DESC").Find(&payments).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}
