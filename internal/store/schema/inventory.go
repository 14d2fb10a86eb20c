package schema

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-crm/internal/domain"
)

// SyncState holds the external-system synchronisation columns
type SyncState struct {
	ExternalID   *string           `gorm:"column:external_id;type:text"`
	SyncStatus   domain.SyncStatus `gorm:"column:sync_status;type:sync_status;not null;default:pending"`
	LastSyncedAt *time.Time        `gorm:"column:last_synced_at"`
	// SyncError is only kept while the status is failed
	SyncError *string `gorm:"column:sync_error;type:text"`
}

// InventoryLocation represents the inventory_locations table
type InventoryLocation struct {
	Base
	Code         string              `gorm:"column:code;type:text;not null"`
	Name         string              `gorm:"column:name;type:text;not null"`
	LocationType domain.LocationType `gorm:"column:location_type;type:location_type;not null;default:warehouse"`
	Description  *string             `gorm:"column:description;type:text"`
	IsActive     bool                `gorm:"column:is_active;not null"`
}

// TableName specifies the table name for the InventoryLocation model
func (InventoryLocation) TableName() string {
	return "inventory_locations"
}

// InventoryItem represents the inventory_items table
type InventoryItem struct {
	Base
	SyncState
	SKU              string     `gorm:"column:sku;type:text;not null"`
	Name             string     `gorm:"column:name;type:text;not null"`
	Description      *string    `gorm:"column:description;type:text"`
	ProductID        *uuid.UUID `gorm:"column:product_id;type:uuid"`
	LocationID       *uuid.UUID `gorm:"column:location_id;type:uuid"`
	QuantityOnHand   float64    `gorm:"column:quantity_on_hand;type:numeric(14,3);not null"`
	QuantityReserved float64    `gorm:"column:quantity_reserved;type:numeric(14,3);not null"`
	// QuantityAvailable is on hand minus reserved, computed by the database
	QuantityAvailable float64    `gorm:"column:quantity_available;->"`
	ReorderPoint      *float64   `gorm:"column:reorder_point;type:numeric(14,3)"`
	ReorderQuantity   *float64   `gorm:"column:reorder_quantity;type:numeric(14,3)"`
	UnitCost          float64    `gorm:"column:unit_cost;type:numeric(15,2);not null"`
	OwnerID           *uuid.UUID `gorm:"column:owner_id;type:uuid;default:auth.uid()"`
}

// TableName specifies the table name for the InventoryItem model
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// NeedsReorder reports whether available stock has dropped to the reorder point
func (i *InventoryItem) NeedsReorder() bool {
	return i.ReorderPoint != nil && i.QuantityAvailable <= *i.ReorderPoint
}

// InventoryTransaction represents the append-only inventory_transactions ledger
type InventoryTransaction struct {
	ID              uuid.UUID                       `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	ItemID          uuid.UUID                       `gorm:"column:item_id;type:uuid;not null"`
	LocationID      *uuid.UUID                      `gorm:"column:location_id;type:uuid"`
	TransactionType domain.InventoryTransactionType `gorm:"column:transaction_type;type:inventory_transaction_type;not null"`
	// Quantity is signed; issues are negative
	Quantity      float64    `gorm:"column:quantity;type:numeric(14,3);not null"`
	UnitCost      *float64   `gorm:"column:unit_cost;type:numeric(15,2)"`
	ReferenceType *string    `gorm:"column:reference_type;type:text"`
	ReferenceID   *uuid.UUID `gorm:"column:reference_id;type:uuid"`
	Notes         *string    `gorm:"column:notes;type:text"`
	PerformedBy   *uuid.UUID `gorm:"column:performed_by;type:uuid"`
	OccurredAt    time.Time  `gorm:"column:occurred_at;not null;default:now()"`
	CreatedAt     time.Time  `gorm:"column:created_at;not null;default:now()"`
	CreatedBy     *uuid.UUID `gorm:"column:created_by;type:uuid"`
}

// TableName specifies the table name for the InventoryTransaction model
func (InventoryTransaction) TableName() string {
	return "inventory_transactions"
}

// PurchaseOrder represents the purchase_orders table
type PurchaseOrder struct {
	Base
	SyncState
	PONumber        string                     `gorm:"column:po_number;type:text;not null"`
	VendorProfileID *uuid.UUID                 `gorm:"column:vendor_profile_id;type:uuid"`
	LocationID      *uuid.UUID                 `gorm:"column:location_id;type:uuid"`
	Status          domain.PurchaseOrderStatus `gorm:"column:status;type:purchase_order_status;not null;default:draft"`
	OrderDate       *datatypes.Date            `gorm:"column:order_date;type:date;default:current_date"`
	ExpectedDate    *datatypes.Date            `gorm:"column:expected_date;type:date"`
	ReceivedAt      *time.Time                 `gorm:"column:received_at"`
	Subtotal        float64                    `gorm:"column:subtotal;type:numeric(15,2);not null"`
	TaxAmount       float64                    `gorm:"column:tax_amount;type:numeric(15,2);not null"`
	ShippingAmount  float64                    `gorm:"column:shipping_amount;type:numeric(15,2);not null"`
	// TotalAmount is computed by the database
	TotalAmount float64    `gorm:"column:total_amount;->"`
	Currency    string     `gorm:"column:currency;type:char(3);not null;default:USD"`
	Notes       *string    `gorm:"column:notes;type:text"`
	OwnerID     *uuid.UUID `gorm:"column:owner_id;type:uuid;default:auth.uid()"`

	Items []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID"`
}

// TableName specifies the table name for the PurchaseOrder model
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// PurchaseOrderItem represents the purchase_order_items table
type PurchaseOrderItem struct {
	Base
	PurchaseOrderID  uuid.UUID `gorm:"column:purchase_order_id;type:uuid;not null"`
	ItemID           uuid.UUID `gorm:"column:item_id;type:uuid;not null"`
	Description      *string   `gorm:"column:description;type:text"`
	QuantityOrdered  float64   `gorm:"column:quantity_ordered;type:numeric(14,3);not null"`
	QuantityReceived float64   `gorm:"column:quantity_received;type:numeric(14,3);not null"`
	UnitCost         float64   `gorm:"column:unit_cost;type:numeric(15,2);not null"`
	LineTotal        float64   `gorm:"column:line_total;->"`
}

// TableName specifies the table name for the PurchaseOrderItem model
func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}
