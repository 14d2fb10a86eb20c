package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/feral-file/ff-crm/internal/domain"
	"github.com/feral-file/ff-crm/internal/store/schema"
)

// AddEmailInput represents the input for attaching an email to an entity
type AddEmailInput struct {
	EntityID   uuid.UUID
	EntityType domain.EntityType
	Email      string
	EmailType  domain.EmailType
	// IsPrimary demotes the current primary email. The first email of an entity is always primary.
	IsPrimary bool
}

// AddPhoneInput represents the input for attaching a phone number to an entity
type AddPhoneInput struct {
	EntityID    uuid.UUID
	EntityType  domain.EntityType
	Phone       string
	PhoneType   domain.PhoneType
	CountryCode *string
	Extension   *string
	IsPrimary   bool
}

// AddAddressInput represents the input for attaching a postal address to an entity
type AddAddressInput struct {
	EntityID    uuid.UUID
	EntityType  domain.EntityType
	AddressType domain.AddressType
	Line1       string
	Line2       *string
	City        string
	State       *string
	PostalCode  *string
	Country     string
	Latitude    *float64
	Longitude   *float64
	IsPrimary   bool
}

func validateOwner(entityID uuid.UUID, entityType domain.EntityType) error {
	if entityID == uuid.Nil {
		return fmt.Errorf("%w: entity id is required", domain.ErrInvalidInput)
	}
	if !entityType.Valid() {
		return fmt.Errorf("%w: unknown entity type %q", domain.ErrInvalidInput, entityType)
	}
	return nil
}

// AddEmail attaches an email to an entity
func (s *pgStore) AddEmail(ctx context.Context, input AddEmailInput) (*schema.EntityEmail, error) {
	if err := validateOwner(input.EntityID, input.EntityType); err != nil {
		return nil, err
	}
	if input.EmailType != "" && !input.EmailType.Valid() {
		return nil, fmt.Errorf("%w: unknown email type %q", domain.ErrInvalidInput, input.EmailType)
	}

	email := schema.EntityEmail{
		EntityID:   input.EntityID,
		EntityType: input.EntityType,
		Email:      strings.TrimSpace(input.Email),
		EmailType:  input.EmailType,
		IsPrimary:  input.IsPrimary,
	}
	if err := addOwned(ctx, s, &email, &email.IsPrimary); err != nil {
		return nil, fmt.Errorf("failed to add email: %w", err)
	}
	return &email, nil
}

// AddPhone attaches a phone number to an entity
func (s *pgStore) AddPhone(ctx context.Context, input AddPhoneInput) (*schema.EntityPhone, error) {
	if err := validateOwner(input.EntityID, input.EntityType); err != nil {
		return nil, err
	}
	if input.PhoneType != "" && !input.PhoneType.Valid() {
		return nil, fmt.Errorf("%w: unknown phone type %q", domain.ErrInvalidInput, input.PhoneType)
	}

	phone := schema.EntityPhone{
		EntityID:    input.EntityID,
		EntityType:  input.EntityType,
		Phone:       strings.TrimSpace(input.Phone),
		PhoneType:   input.PhoneType,
		CountryCode: input.CountryCode,
		Extension:   input.Extension,
		IsPrimary:   input.IsPrimary,
	}
	if err := addOwned(ctx, s, &phone, &phone.IsPrimary); err != nil {
		return nil, fmt.Errorf("failed to add phone: %w", err)
	}
	return &phone, nil
}

// AddAddress attaches a postal address to an entity
func (s *pgStore) AddAddress(ctx context.Context, input AddAddressInput) (*schema.EntityAddress, error) {
	if err := validateOwner(input.EntityID, input.EntityType); err != nil {
		return nil, err
	}
	if input.AddressType != "" && !input.AddressType.Valid() {
		return nil, fmt.Errorf("%w: unknown address type %q", domain.ErrInvalidInput, input.AddressType)
	}

	address := schema.EntityAddress{
		EntityID:    input.EntityID,
		EntityType:  input.EntityType,
		AddressType: input.AddressType,
		Line1:       input.Line1,
		Line2:       input.Line2,
		City:        input.City,
		State:       input.State,
		PostalCode:  input.PostalCode,
		Country:     strings.ToUpper(strings.TrimSpace(input.Country)),
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		IsPrimary:   input.IsPrimary,
	}
	if err := addOwned(ctx, s, &address, &address.IsPrimary); err != nil {
		return nil, fmt.Errorf("failed to add address: %w", err)
	}
	return &address, nil
}

// addOwned inserts a contact row. A primary row demotes the owner's current
// primary first; a row for an owner without any live rows becomes primary.
func addOwned(ctx context.Context, s *pgStore, row schema.Owned, primary *bool) error {
	row.GetBase().CreatedBy = actorRef(ctx)
	owner := row.Owner()

	return s.write(ctx, func(tx *gorm.DB) error {
		if *primary {
			if err := demotePrimary(tx, row.TableName(), owner, uuid.Nil); err != nil {
				return err
			}
		} else {
			var count int64
			err := live(tx.Table(row.TableName())).
				Where("entity_id = ? AND entity_type = ?", owner.ID, owner.Type).
				Count(&count).Error
			if err != nil {
				return err
			}
			*primary = count == 0
		}
		return create(tx, row)
	})
}

func demotePrimary(tx *gorm.DB, table string, owner domain.EntityRef, except uuid.UUID) error {
	return live(tx.Table(table)).
		Where("entity_id = ? AND entity_type = ? AND is_primary AND id <> ?", owner.ID, owner.Type, except).
		Update("is_primary", false).Error
}

// listOwned returns an entity's live contact rows, primary first
func listOwned[T any](ctx context.Context, s *pgStore, entityID uuid.UUID, entityType domain.EntityType) ([]T, error) {
	var rows []T
	err := s.read(ctx, func(tx *gorm.DB) error {
		return live(tx).
			Where("entity_id = ? AND entity_type = ?", entityID, entityType).
			Order("is_primary DESC, created_at ASC").
			Find(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListEmails returns the live emails of an entity, primary first
func (s *pgStore) ListEmails(ctx context.Context, entityID uuid.UUID, entityType domain.EntityType) ([]schema.EntityEmail, error) {
	rows, err := listOwned[schema.EntityEmail](ctx, s, entityID, entityType)
	if err != nil {
		return nil, fmt.Errorf("failed to list emails: %w", err)
	}
	return rows, nil
}

// ListPhones returns the live phone numbers of an entity, primary first
func (s *pgStore) ListPhones(ctx context.Context, entityID uuid.UUID, entityType domain.EntityType) ([]schema.EntityPhone, error) {
	rows, err := listOwned[schema.EntityPhone](ctx, s, entityID, entityType)
	if err != nil {
		return nil, fmt.Errorf("failed to list phones: %w", err)
	}
	return rows, nil
}

// ListAddresses returns the live addresses of an entity, primary first
func (s *pgStore) ListAddresses(ctx context.Context, entityID uuid.UUID, entityType domain.EntityType) ([]schema.EntityAddress, error) {
	rows, err := listOwned[schema.EntityAddress](ctx, s, entityID, entityType)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	return rows, nil
}

// setPrimary demotes the owner's primary row and promotes id, in that order,
// so the partial unique index never sees two primaries.
func setPrimary[T any, P interface {
	*T
	schema.Owned
}](ctx context.Context, s *pgStore, id uuid.UUID) (*T, error) {
	var row T
	err := s.write(ctx, func(tx *gorm.DB) error {
		current, err := lockLive[T](tx, id)
		if err != nil {
			return err
		}
		if P(current).Primary() {
			row = *current
			return nil
		}
		if err := demotePrimary(tx, P(current).TableName(), P(current).Owner(), id); err != nil {
			return err
		}
		return updateFields(tx, &row, id, map[string]any{"is_primary": true})
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// SetPrimaryEmail makes the email the primary one of its entity
func (s *pgStore) SetPrimaryEmail(ctx context.Context, id uuid.UUID) (*schema.EntityEmail, error) {
	row, err := setPrimary[schema.EntityEmail](ctx, s, id)
	if err != nil {
		return nil, fmt.Errorf("failed to set primary email: %w", err)
	}
	return row, nil
}

// SetPrimaryPhone makes the phone number the primary one of its entity
func (s *pgStore) SetPrimaryPhone(ctx context.Context, id uuid.UUID) (*schema.EntityPhone, error) {
	row, err := setPrimary[schema.EntityPhone](ctx, s, id)
	if err != nil {
		return nil, fmt.Errorf("failed to set primary phone: %w", err)
	}
	return row, nil
}

// SetPrimaryAddress makes the address the primary one of its entity
func (s *pgStore) SetPrimaryAddress(ctx context.Context, id uuid.UUID) (*schema.EntityAddress, error) {
	row, err := setPrimary[schema.EntityAddress](ctx, s, id)
	if err != nil {
		return nil, fmt.Errorf("failed to set primary address: %w", err)
	}
	return row, nil
}

// RemoveEmail soft-deletes an email
func (s *pgStore) RemoveEmail(ctx context.Context, id uuid.UUID) error {
	return s.removeOwned(ctx, &schema.EntityEmail{}, id)
}

// RemovePhone soft-deletes a phone number
func (s *pgStore) RemovePhone(ctx context.Context, id uuid.UUID) error {
	return s.removeOwned(ctx, &schema.EntityPhone{}, id)
}

// RemoveAddress soft-deletes an address
func (s *pgStore) RemoveAddress(ctx context.Context, id uuid.UUID) error {
	return s.removeOwned(ctx, &schema.EntityAddress{}, id)
}

func (s *pgStore) removeOwned(ctx context.Context, model schema.Owned, id uuid.UUID) error {
	return s.write(ctx, func(tx *gorm.DB) error {
		if err := softDelete(ctx, tx, model, id); err != nil {
			return fmt.Errorf("failed to remove %s: %w", model.TableName(), err)
		}
		return nil
	})
}

// VerifyEmail marks an email as verified
func (s *pgStore) VerifyEmail(ctx context.Context, id uuid.UUID) (*schema.EntityEmail, error) {
	var email schema.EntityEmail
	err := s.write(ctx, func(tx *gorm.DB) error {
		return updateFields(tx, &email, id, map[string]any{
			"is_verified": true,
			"verified_at": time.Now().UTC(),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to verify email: %w", err)
	}
	return &email, nil
}

// taskAssignee resolves to the caller when they hold a live assignee row on the task
const taskAssignee = `(SELECT a.user_id FROM public.task_assignments a
	WHERE a.task_id = tasks.id AND a.user_id = auth.uid() AND a.role = 'assignee' AND a.deleted_at IS NULL
	LIMIT 1)`

// GetEntityOwnership returns the owner and assignee of a live entity of any
// type, or nil when it does not exist or is not visible. A profile is owned
// by its user.
func (s *pgStore) GetEntityOwnership(ctx context.Context, entityType domain.EntityType, id uuid.UUID) (*schema.Ownership, error) {
	table, ok := entityType.Table()
	if !ok {
		return nil, fmt.Errorf("%w: unknown entity type %q", domain.ErrInvalidInput, entityType)
	}

	owner, assignee := "owner_id", "assigned_to"
	switch table {
	case "profiles":
		owner, assignee = "user_id", "NULL::uuid"
	case "tasks":
		assignee = taskAssignee
	}

	var rows []schema.Ownership
	err := s.read(ctx, func(tx *gorm.DB) error {
		q := live(tx.Table(table)).
			Select(fmt.Sprintf("%s AS owner_id, %s AS assigned_to", owner, assignee)).
			Where("id = ?", id)
		if table == "profiles" {
			q = q.Where("profile_type = ?", entityType)
		}
		return q.Limit(1).Find(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s ownership: %w", entityType, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}
