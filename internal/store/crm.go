package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/feral-file/ff-crm/internal/domain"
	"github.com/feral-file/ff-crm/internal/store/schema"
)

// ConvertLeadInput represents the input for converting a lead
type ConvertLeadInput struct {
	LeadID uuid.UUID
	// Version is the lead version the caller last read
	Version     int
	ContactType domain.ContactType
	// CreateOpportunity also opens an opportunity for the new contact
	CreateOpportunity bool
	OpportunityName   string
	// Amount defaults to the lead's estimated value
	Amount *float64
	// PipelineID defaults to the default sales pipeline
	PipelineID *uuid.UUID
}

// ConvertLeadResult holds the rows written by ConvertLead
type ConvertLeadResult struct {
	Lead        *schema.CRMLead
	Contact     *schema.CRMContact
	Opportunity *schema.CRMOpportunity
}

// AddQuoteItemInput represents a new quote line
type AddQuoteItemInput struct {
	QuoteID   uuid.UUID
	ProductID *uuid.UUID
	// Description and UnitPrice default to the product's when a product is given
	Description     string
	Quantity        float64
	UnitPrice       *float64
	DiscountPercent float64
}

// AddNoteInput represents a note attached to an entity
type AddNoteInput struct {
	EntityID   uuid.UUID
	EntityType domain.EntityType
	Title      *string
	Content    string
	IsPinned   bool
	IsPrivate  bool
}

// LogCommunicationInput represents an interaction with an entity
type LogCommunicationInput struct {
	EntityID          uuid.UUID
	EntityType        domain.EntityType
	CommunicationType domain.CommunicationType
	Direction         domain.CommunicationDirection
	Subject           *string
	Body              *string
	// OccurredAt defaults to now
	OccurredAt      *time.Time
	DurationSeconds *int
}

// LinkEntitiesInput represents a relationship between two entities
type LinkEntitiesInput struct {
	SourceID         uuid.UUID
	SourceType       domain.EntityType
	TargetID         uuid.UUID
	TargetType       domain.EntityType
	RelationshipType domain.RelationshipType
	Notes            *string
}

// ConvertLead turns a lead into a contact and, optionally, an opportunity.
// The lead is marked converted in the same transaction.
func (s *pgStore) ConvertLead(ctx context.Context, input ConvertLeadInput) (*ConvertLeadResult, error) {
	if input.ContactType == "" {
		input.ContactType = domain.ContactTypeCustomer
	}
	if !input.ContactType.Valid() {
		return nil, fmt.Errorf("%w: unknown contact type %q", domain.ErrInvalidInput, input.ContactType)
	}

	var result ConvertLeadResult
	err := s.write(ctx, func(tx *gorm.DB) error {
		lead, err := lockLive[schema.CRMLead](tx, input.LeadID)
		if err != nil {
			return err
		}
		if lead.Version != input.Version {
			return fmt.Errorf("lead %s: %w", lead.ID, domain.ErrVersionConflict)
		}
		if lead.Status == domain.LeadStatusConverted {
			return fmt.Errorf("%w: lead %s is already converted", domain.ErrInvalidInput, lead.ID)
		}

		// Under RLS the converting user must own what they create
		owner := lead.OwnerID
		if ref := actorRef(ctx); ref != nil {
			owner = ref
		}

		source := lead.Source
		contact := schema.CRMContact{
			Ownership:   schema.Ownership{OwnerID: owner, AssignedTo: lead.AssignedTo},
			FirstName:   lead.FirstName,
			LastName:    lead.LastName,
			Email:       lead.Email,
			Phone:       lead.Phone,
			CompanyName: lead.CompanyName,
			JobTitle:    lead.JobTitle,
			ContactType: input.ContactType,
			LeadSource:  &source,
			Notes:       lead.Notes,
		}
		if lead.CompanyName != nil {
			contact.AccountType = domain.AccountTypeBusiness
		}
		contact.CreatedBy = actorRef(ctx)
		if err := create(tx, &contact); err != nil {
			return fmt.Errorf("failed to create contact: %w", err)
		}
		result.Contact = &contact

		if lead.Email != nil {
			email := schema.EntityEmail{
				EntityID:   contact.ID,
				EntityType: domain.EntityTypeContact,
				Email:      *lead.Email,
				EmailType:  domain.EmailTypeWork,
				IsPrimary:  true,
			}
			email.CreatedBy = actorRef(ctx)
			if err := create(tx, &email); err != nil {
				return fmt.Errorf("failed to add contact email: %w", err)
			}
		}

		fields := map[string]any{
			"status":               domain.LeadStatusConverted,
			"converted_at":         time.Now().UTC(),
			"converted_contact_id": contact.ID,
		}

		if input.CreateOpportunity {
			opportunity, err := openOpportunity(ctx, tx, lead, &contact, input)
			if err != nil {
				return err
			}
			result.Opportunity = opportunity
			fields["converted_opportunity_id"] = opportunity.ID
		}

		var converted schema.CRMLead
		if err := updateVersioned(tx, &converted, lead.ID, input.Version, fields); err != nil {
			return fmt.Errorf("failed to mark lead converted: %w", err)
		}
		result.Lead = &converted
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to convert lead: %w", err)
	}

	return &result, nil
}

func openOpportunity(ctx context.Context, tx *gorm.DB, lead *schema.CRMLead, contact *schema.CRMContact, input ConvertLeadInput) (*schema.CRMOpportunity, error) {
	pipelineID := input.PipelineID
	if pipelineID == nil {
		var pipeline schema.CRMPipeline
		err := live(tx).
			Where("pipeline_type = ? AND is_default", domain.PipelineTypeSales).
			First(&pipeline).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if err == nil {
			pipelineID = &pipeline.ID
		}
	}

	name := strings.TrimSpace(input.OpportunityName)
	if name == "" {
		name = lead.FullName
		if lead.CompanyName != nil {
			name = *lead.CompanyName
		}
	}

	var amount float64
	switch {
	case input.Amount != nil:
		amount = *input.Amount
	case lead.EstimatedValue != nil:
		amount = *lead.EstimatedValue
	}

	opportunity := schema.CRMOpportunity{
		Ownership:   contact.Ownership,
		Name:        name,
		ContactID:   &contact.ID,
		LeadID:      &lead.ID,
		PipelineID:  pipelineID,
		Stage:       domain.OpportunityStageProspecting,
		Amount:      amount,
		Probability: domain.OpportunityStageProspecting.DefaultProbability(),
	}
	opportunity.CreatedBy = actorRef(ctx)
	if err := create(tx, &opportunity); err != nil {
		return nil, fmt.Errorf("failed to create opportunity: %w", err)
	}
	return &opportunity, nil
}

// MoveOpportunityStage moves an opportunity to stage. Probability defaults
// to the stage's conventional value; closed stages stamp closed_at and
// reopening clears it.
func (s *pgStore) MoveOpportunityStage(ctx context.Context, id uuid.UUID, version int, stage domain.OpportunityStage, probability *float64) (*schema.CRMOpportunity, error) {
	if !stage.Valid() {
		return nil, fmt.Errorf("%w: unknown opportunity stage %q", domain.ErrInvalidInput, stage)
	}

	p := stage.DefaultProbability()
	if probability != nil {
		p = *probability
	}
	if p < 0 || p > 100 {
		return nil, fmt.Errorf("%w: probability must be between 0 and 100", domain.ErrInvalidInput)
	}

	fields := map[string]any{
		"stage":       stage,
		"probability": p,
		"closed_at":   nil,
	}
	if stage.IsClosed() {
		fields["closed_at"] = time.Now().UTC()
	}

	var opportunity schema.CRMOpportunity
	err := s.write(ctx, func(tx *gorm.DB) error {
		return updateVersioned(tx, &opportunity, id, version, fields)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to move opportunity stage: %w", err)
	}
	return &opportunity, nil
}

// GetQuote retrieves a live quote with its live items in position order
func (s *pgStore) GetQuote(ctx context.Context, id uuid.UUID) (*schema.CRMQuote, error) {
	var quote schema.CRMQuote
	err := s.read(ctx, func(tx *gorm.DB) error {
		return live(tx).
			Preload("Items", func(db *gorm.DB) *gorm.DB {
				return live(db).Order("position ASC")
			}).
			Where("id = ?", id).
			First(&quote).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	return &quote, nil
}

// AddQuoteItem appends a line to a draft quote and recomputes its subtotal
func (s *pgStore) AddQuoteItem(ctx context.Context, input AddQuoteItemInput) (*schema.CRMQuote, error) {
	if input.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
	}

	err := s.write(ctx, func(tx *gorm.DB) error {
		quote, err := lockLive[schema.CRMQuote](tx, input.QuoteID)
		if err != nil {
			return err
		}
		if quote.Status != domain.QuoteStatusDraft {
			return fmt.Errorf("quote %s is %s: %w", quote.ID, quote.Status, domain.ErrImmutable)
		}

		item := schema.CRMQuoteItem{
			QuoteID:         quote.ID,
			ProductID:       input.ProductID,
			Description:     strings.TrimSpace(input.Description),
			Quantity:        input.Quantity,
			DiscountPercent: input.DiscountPercent,
		}
		if input.UnitPrice != nil {
			item.UnitPrice = *input.UnitPrice
		}
		if input.ProductID != nil {
			product, err := mustGetLive[schema.CRMProduct](tx, *input.ProductID)
			if err != nil {
				return err
			}
			if input.UnitPrice == nil {
				item.UnitPrice = product.UnitPrice
			}
			if item.Description == "" {
				item.Description = product.Name
			}
		}
		if item.Description == "" {
			return fmt.Errorf("%w: item description is required", domain.ErrInvalidInput)
		}

		var last int
		err = live(tx.Model(&schema.CRMQuoteItem{})).
			Where("quote_id = ?", quote.ID).
			Select("coalesce(max(position), -1)").
			Scan(&last).Error
		if err != nil {
			return err
		}
		item.Position = last + 1

		item.CreatedBy = actorRef(ctx)
		if err := create(tx, &item); err != nil {
			return fmt.Errorf("failed to create quote item: %w", err)
		}

		return recomputeQuoteSubtotal(tx, quote.ID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add quote item: %w", err)
	}

	return s.GetQuote(ctx, input.QuoteID)
}

func recomputeQuoteSubtotal(tx *gorm.DB, quoteID uuid.UUID) error {
	var subtotal float64
	err := live(tx.Model(&schema.CRMQuoteItem{})).
		Where("quote_id = ?", quoteID).
		Select("coalesce(sum(line_total), 0)").
		Scan(&subtotal).Error
	if err != nil {
		return err
	}

	var quote schema.CRMQuote
	return updateFields(tx, &quote, quoteID, map[string]any{"subtotal": subtotal})
}

// AddNote attaches a note to an entity, owned by the actor
func (s *pgStore) AddNote(ctx context.Context, input AddNoteInput) (*schema.CRMNote, error) {
	if err := validateOwner(input.EntityID, input.EntityType); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, fmt.Errorf("%w: note content is required", domain.ErrInvalidInput)
	}

	note := schema.CRMNote{
		EntityID:   input.EntityID,
		EntityType: input.EntityType,
		Title:      input.Title,
		Content:    input.Content,
		IsPinned:   input.IsPinned,
		IsPrivate:  input.IsPrivate,
		OwnerID:    actorRef(ctx),
	}
	note.CreatedBy = actorRef(ctx)

	err := s.write(ctx, func(tx *gorm.DB) error {
		return create(tx, &note)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add note: %w", err)
	}
	return &note, nil
}

// ListNotes returns the visible live notes of an entity, pinned first
func (s *pgStore) ListNotes(ctx context.Context, entityID uuid.UUID, entityType domain.EntityType) ([]schema.CRMNote, error) {
	var notes []schema.CRMNote
	err := s.read(ctx, func(tx *gorm.DB) error {
		return live(tx).
			Where("entity_id = ? AND entity_type = ?", entityID, entityType).
			Order("is_pinned DESC, created_at DESC").
			Find(&notes).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

// LogCommunication records an interaction with an entity
func (s *pgStore) LogCommunication(ctx context.Context, input LogCommunicationInput) (*schema.CRMCommunication, error) {
	if err := validateOwner(input.EntityID, input.EntityType); err != nil {
		return nil, err
	}
	if !input.CommunicationType.Valid() {
		return nil, fmt.Errorf("%w: unknown communication type %q", domain.ErrInvalidInput, input.CommunicationType)
	}
	if input.Direction != "" && !input.Direction.Valid() {
		return nil, fmt.Errorf("%w: unknown direction %q", domain.ErrInvalidInput, input.Direction)
	}

	communication := schema.CRMCommunication{
		EntityID:          input.EntityID,
		EntityType:        input.EntityType,
		CommunicationType: input.CommunicationType,
		Direction:         input.Direction,
		Subject:           input.Subject,
		Body:              input.Body,
		DurationSeconds:   input.DurationSeconds,
		OwnerID:           actorRef(ctx),
	}
	if input.OccurredAt != nil {
		communication.OccurredAt = input.OccurredAt.UTC()
	}
	communication.CreatedBy = actorRef(ctx)

	err := s.write(ctx, func(tx *gorm.DB) error {
		return create(tx, &communication)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to log communication: %w", err)
	}
	return &communication, nil
}

// LinkEntities records a relationship between two distinct entities
func (s *pgStore) LinkEntities(ctx context.Context, input LinkEntitiesInput) (*schema.CRMRelationship, error) {
	if err := validateOwner(input.SourceID, input.SourceType); err != nil {
		return nil, err
	}
	if err := validateOwner(input.TargetID, input.TargetType); err != nil {
		return nil, err
	}
	if input.SourceID == input.TargetID && input.SourceType == input.TargetType {
		return nil, fmt.Errorf("%w: an entity cannot be linked to itself", domain.ErrInvalidInput)
	}
	if input.RelationshipType != "" && !input.RelationshipType.Valid() {
		return nil, fmt.Errorf("%w: unknown relationship type %q", domain.ErrInvalidInput, input.RelationshipType)
	}

	relationship := schema.CRMRelationship{
		SourceID:         input.SourceID,
		SourceType:       input.SourceType,
		TargetID:         input.TargetID,
		TargetType:       input.TargetType,
		RelationshipType: input.RelationshipType,
		Notes:            input.Notes,
		OwnerID:          actorRef(ctx),
	}
	relationship.CreatedBy = actorRef(ctx)

	err := s.write(ctx, func(tx *gorm.DB) error {
		return create(tx, &relationship)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to link entities: %w", err)
	}
	return &relationship, nil
}

// CreateDocument inserts a crm_documents row for content already written to storage
func (s *pgStore) CreateDocument(ctx context.Context, document *schema.CRMDocument) error {
	if (document.EntityID == nil) != (document.EntityType == nil) {
		return fmt.Errorf("%w: entity id and type go together", domain.ErrInvalidInput)
	}
	if document.OwnerID == nil {
		document.OwnerID = actorRef(ctx)
	}
	document.CreatedBy = actorRef(ctx)

	err := s.write(ctx, func(tx *gorm.DB) error {
		return create(tx, document)
	})
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}
