package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/feral-file/ff-crm/internal/domain"
	"github.com/feral-file/ff-crm/internal/store/schema"
)

// SyncTable names a table carrying external-system sync columns
type SyncTable string

const (
	SyncTableInventoryItems SyncTable = "inventory_items"
	SyncTablePurchaseOrders SyncTable = "purchase_orders"
	SyncTableAccounts       SyncTable = "chart_of_accounts"
	SyncTableJournalEntries SyncTable = "journal_entries"
	SyncTablePayments       SyncTable = "payments"
)

// Valid reports whether the table carries sync columns
func (t SyncTable) Valid() bool {
	switch t {
	case SyncTableInventoryItems, SyncTablePurchaseOrders, SyncTableAccounts, SyncTableJournalEntries, SyncTablePayments:
		return true
	}
	return false
}

// PurchaseOrderReference is the inventory_transactions.reference_type of receipts
const PurchaseOrderReference = "purchase_order"

// RecordInventoryTransactionInput represents a stock movement
type RecordInventoryTransactionInput struct {
	ItemID          uuid.UUID
	LocationID      *uuid.UUID
	TransactionType domain.InventoryTransactionType
	// Quantity is signed: receipts and returns add, issues remove
	Quantity      float64
	UnitCost      *float64
	ReferenceType *string
	ReferenceID   *uuid.UUID
	Notes         *string
	OccurredAt    *time.Time
}

// PurchaseOrderItemInput represents one ordered item
type PurchaseOrderItemInput struct {
	ItemID          uuid.UUID
	Description     *string
	QuantityOrdered float64
	UnitCost        float64
}

// CreatePurchaseOrderInput represents a new purchase order
type CreatePurchaseOrderInput struct {
	PONumber        string
	VendorProfileID *uuid.UUID
	LocationID      *uuid.UUID
	ExpectedDate    *time.Time
	TaxAmount       float64
	ShippingAmount  float64
	Currency        string
	Notes           *string
	Items           []PurchaseOrderItemInput
}

// RecordInventoryTransaction applies a stock movement to an item and appends
// it to the ledger. The item row stays locked until the transaction ends so
// concurrent movements serialize.
func (s *pgStore) RecordInventoryTransaction(ctx context.Context, input RecordInventoryTransactionInput) (*schema.InventoryTransaction, *schema.InventoryItem, error) {
	var (
		movement *schema.InventoryTransaction
		item     *schema.InventoryItem
	)
	err := s.write(ctx, func(tx *gorm.DB) error {
		var err error
		movement, item, err = recordMovement(ctx, tx, input)
		return err
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to record inventory transaction: %w", err)
	}
	return movement, item, nil
}

func recordMovement(ctx context.Context, tx *gorm.DB, input RecordInventoryTransactionInput) (*schema.InventoryTransaction, *schema.InventoryItem, error) {
	if !input.TransactionType.Valid() {
		return nil, nil, fmt.Errorf("%w: unknown transaction type %q", domain.ErrInvalidInput, input.TransactionType)
	}
	if input.Quantity == 0 {
		return nil, nil, fmt.Errorf("%w: quantity must not be zero", domain.ErrInvalidInput)
	}
	if sign := input.TransactionType.Sign(); sign != 0 && math.Signbit(input.Quantity) != (sign < 0) {
		return nil, nil, fmt.Errorf("%w: %s quantity has the wrong sign", domain.ErrInvalidInput, input.TransactionType)
	}
	if (input.ReferenceType == nil) != (input.ReferenceID == nil) {
		return nil, nil, fmt.Errorf("%w: reference type and id go together", domain.ErrInvalidInput)
	}

	item, err := lockLive[schema.InventoryItem](tx, input.ItemID)
	if err != nil {
		return nil, nil, err
	}

	onHand := item.QuantityOnHand + input.Quantity
	if onHand < 0 || onHand < item.QuantityReserved {
		return nil, nil, fmt.Errorf("item %s has %.3f available, movement of %.3f: %w",
			item.SKU, item.QuantityAvailable, input.Quantity, domain.ErrInsufficientStock)
	}

	movement := schema.InventoryTransaction{
		ID:              uuid.New(),
		ItemID:          item.ID,
		LocationID:      input.LocationID,
		TransactionType: input.TransactionType,
		Quantity:        input.Quantity,
		UnitCost:        input.UnitCost,
		ReferenceType:   input.ReferenceType,
		ReferenceID:     input.ReferenceID,
		Notes:           input.Notes,
		PerformedBy:     actorRef(ctx),
		CreatedBy:       actorRef(ctx),
	}
	if movement.LocationID == nil {
		movement.LocationID = item.LocationID
	}
	if input.OccurredAt != nil {
		movement.OccurredAt = input.OccurredAt.UTC()
	}
	if err := create(tx, &movement); err != nil {
		return nil, nil, fmt.Errorf("failed to append ledger entry: %w", err)
	}

	var updated schema.InventoryItem
	err = updateFields(tx, &updated, item.ID, map[string]any{
		"quantity_on_hand": gorm.Expr("quantity_on_hand + ?", input.Quantity),
	})
	if err != nil {
		return nil, nil, err
	}

	return &movement, &updated, nil
}

// ListInventoryTransactions returns an item's ledger, newest first
func (s *pgStore) ListInventoryTransactions(ctx context.Context, itemID uuid.UUID, page Pagination) ([]schema.InventoryTransaction, error) {
	var movements []schema.InventoryTransaction
	err := s.read(ctx, func(tx *gorm.DB) error {
		return page.apply(tx).
			Where("item_id = ?", itemID).
			Order("occurred_at DESC, created_at DESC").
			Find(&movements).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory transactions: %w", err)
	}
	return movements, nil
}

// CreatePurchaseOrder inserts a draft purchase order with its items
func (s *pgStore) CreatePurchaseOrder(ctx context.Context, input CreatePurchaseOrderInput) (*schema.PurchaseOrder, error) {
	if strings.TrimSpace(input.PONumber) == "" {
		return nil, fmt.Errorf("%w: purchase order number is required", domain.ErrInvalidInput)
	}
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: purchase order has no items", domain.ErrInvalidInput)
	}

	order := schema.PurchaseOrder{
		PONumber:        strings.TrimSpace(input.PONumber),
		VendorProfileID: input.VendorProfileID,
		LocationID:      input.LocationID,
		TaxAmount:       input.TaxAmount,
		ShippingAmount:  input.ShippingAmount,
		Currency:        input.Currency,
		Notes:           input.Notes,
		OwnerID:         actorRef(ctx),
	}
	if input.ExpectedDate != nil {
		expected := datatypes.Date(*input.ExpectedDate)
		order.ExpectedDate = &expected
	}
	order.CreatedBy = actorRef(ctx)

	for _, in := range input.Items {
		if in.QuantityOrdered <= 0 {
			return nil, fmt.Errorf("%w: ordered quantity must be positive", domain.ErrInvalidInput)
		}
		item := schema.PurchaseOrderItem{
			ItemID:          in.ItemID,
			Description:     in.Description,
			QuantityOrdered: in.QuantityOrdered,
			UnitCost:        in.UnitCost,
		}
		item.CreatedBy = actorRef(ctx)
		order.Items = append(order.Items, item)
		order.Subtotal += roundCents(in.QuantityOrdered * in.UnitCost)
	}

	err := s.write(ctx, func(tx *gorm.DB) error {
		return create(tx, &order)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create purchase order: %w", err)
	}

	return s.GetPurchaseOrder(ctx, order.ID)
}

// GetPurchaseOrder retrieves a live purchase order with its live items
func (s *pgStore) GetPurchaseOrder(ctx context.Context, id uuid.UUID) (*schema.PurchaseOrder, error) {
	var order schema.PurchaseOrder
	err := s.read(ctx, func(tx *gorm.DB) error {
		return live(tx).
			Preload("Items", func(db *gorm.DB) *gorm.DB {
				return live(db).Order("created_at ASC")
			}).
			Where("id = ?", id).
			First(&order).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get purchase order: %w", err)
	}
	return &order, nil
}

// ReceivePurchaseOrder books received quantities, keyed by purchase order
// item id, as receipt transactions. A nil map receives everything still
// outstanding. The order becomes received once every item is complete and
// partially_received otherwise.
func (s *pgStore) ReceivePurchaseOrder(ctx context.Context, id uuid.UUID, received map[uuid.UUID]float64) (*schema.PurchaseOrder, error) {
	err := s.write(ctx, func(tx *gorm.DB) error {
		order, err := lockLive[schema.PurchaseOrder](tx, id)
		if err != nil {
			return err
		}
		switch order.Status {
		case domain.PurchaseOrderStatusSubmitted, domain.PurchaseOrderStatusApproved, domain.PurchaseOrderStatusPartiallyReceived:
		default:
			return fmt.Errorf("purchase order %s is %s: %w", order.PONumber, order.Status, domain.ErrImmutable)
		}

		var items []schema.PurchaseOrderItem
		if err := live(tx).Where("purchase_order_id = ?", id).Find(&items).Error; err != nil {
			return err
		}

		known := make(map[uuid.UUID]bool, len(items))
		complete := true
		reference := PurchaseOrderReference
		for _, item := range items {
			known[item.ID] = true
			outstanding := item.QuantityOrdered - item.QuantityReceived

			quantity := outstanding
			if received != nil {
				quantity = received[item.ID]
			}
			if quantity < 0 || quantity > outstanding {
				return fmt.Errorf("%w: cannot receive %.3f of item %s, %.3f outstanding",
					domain.ErrInvalidInput, quantity, item.ID, outstanding)
			}
			if quantity < outstanding {
				complete = false
			}
			if quantity == 0 {
				continue
			}

			unitCost := item.UnitCost
			_, _, err := recordMovement(ctx, tx, RecordInventoryTransactionInput{
				ItemID:          item.ItemID,
				LocationID:      order.LocationID,
				TransactionType: domain.InventoryTransactionTypeReceipt,
				Quantity:        quantity,
				UnitCost:        &unitCost,
				ReferenceType:   &reference,
				ReferenceID:     &order.ID,
			})
			if err != nil {
				return err
			}

			var updated schema.PurchaseOrderItem
			err = updateFields(tx, &updated, item.ID, map[string]any{
				"quantity_received": gorm.Expr("quantity_received + ?", quantity),
			})
			if err != nil {
				return err
			}
		}
		for itemID := range received {
			if !known[itemID] {
				return fmt.Errorf("purchase order item %s: %w", itemID, domain.ErrNotFound)
			}
		}

		fields := map[string]any{"status": domain.PurchaseOrderStatusPartiallyReceived}
		if complete {
			fields["status"] = domain.PurchaseOrderStatusReceived
			fields["received_at"] = time.Now().UTC()
		}
		var updated schema.PurchaseOrder
		return updateFields(tx, &updated, id, fields)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to receive purchase order: %w", err)
	}

	return s.GetPurchaseOrder(ctx, id)
}

// MarkSynced records a successful push of a row to the external system
func (s *pgStore) MarkSynced(ctx context.Context, table SyncTable, id uuid.UUID, externalID string) error {
	return s.markSync(ctx, table, id, map[string]any{
		"sync_status":    domain.SyncStatusSynced,
		"external_id":    externalID,
		"last_synced_at": time.Now().UTC(),
		"sync_error":     nil,
	})
}

// MarkSyncFailed records a failed push of a row to the external system
func (s *pgStore) MarkSyncFailed(ctx context.Context, table SyncTable, id uuid.UUID, syncErr string) error {
	return s.markSync(ctx, table, id, map[string]any{
		"sync_status": domain.SyncStatusFailed,
		"sync_error":  syncErr,
	})
}

func (s *pgStore) markSync(ctx context.Context, table SyncTable, id uuid.UUID, fields map[string]any) error {
	if !table.Valid() {
		return fmt.Errorf("%w: %q has no sync columns", domain.ErrInvalidInput, table)
	}

	err := s.write(ctx, func(tx *gorm.DB) error {
		result := live(tx.Table(string(table))).Where("id = ?", id).Updates(fields)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%s %s: %w", table, id, domain.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update sync state: %w", err)
	}
	return nil
}

// ListPendingSync returns the ids of live rows that still need a push, oldest first
func (s *pgStore) ListPendingSync(ctx context.Context, table SyncTable, limit int) ([]uuid.UUID, error) {
	if !table.Valid() {
		return nil, fmt.Errorf("%w: %q has no sync columns", domain.ErrInvalidInput, table)
	}

	var ids []uuid.UUID
	err := s.read(ctx, func(tx *gorm.DB) error {
		return Pagination{Limit: limit}.apply(live(tx.Table(string(table)))).
			Where("sync_status IN ?", []domain.SyncStatus{domain.SyncStatusPending, domain.SyncStatusFailed}).
			Order("updated_at ASC").
			Pluck("id", &ids).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pending sync: %w", err)
	}
	return ids, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
