package inventory

import (
	"time"

	"github.com/drumflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the receiving state of a purchase order
type OrderStatus string

const (
	// OrderStatusPending means no drums have been received yet
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusPartial means some but not all drums have been received
	OrderStatusPartial OrderStatus = "partial"
	// OrderStatusComplete means every ordered drum has been received
	OrderStatusComplete OrderStatus = "complete"
)

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// Order is a purchase order for a quantity of material from a supplier.
// One order owns zero or more drums; quantity_received is maintained by
// the storage engine as intake transactions arrive and must never exceed
// quantity.
type Order struct {
	OrderID          int64           `gorm:"primaryKey;autoIncrement;column:order_id" json:"order_id"`
	Supplier         string          `gorm:"type:varchar(100);not null" json:"supplier"`
	Material         string          `gorm:"type:varchar(100);not null" json:"material"`
	Quantity         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"quantity"`
	QuantityReceived decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"quantity_received"`
	Status           OrderStatus     `gorm:"type:varchar(20);not null;default:pending" json:"status"`
	PONumber         *string         `gorm:"type:varchar(50);column:po_number" json:"po_number,omitempty"`
	DateOrdered      time.Time       `gorm:"not null" json:"date_ordered"`
	ETA              *time.Time      `gorm:"column:eta" json:"eta,omitempty"`
	shared.Timestamps
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new purchase order
func NewOrder(supplier, material string, quantity decimal.Decimal) (*Order, error) {
	if supplier == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier cannot be empty")
	}
	if material == "" {
		return nil, shared.NewDomainError("INVALID_MATERIAL", "Material cannot be empty")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	now := time.Now()
	return &Order{
		Supplier:         supplier,
		Material:         material,
		Quantity:         quantity,
		QuantityReceived: decimal.Zero,
		Status:           OrderStatusPending,
		DateOrdered:      now,
		Timestamps: shared.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}, nil
}

// DrumCount returns the number of drum rows to generate for this order.
// Fractional quantities round up so that partial drums still get a label.
func (o *Order) DrumCount() int {
	return int(o.Quantity.Ceil().IntPart())
}

// IsComplete returns true once every ordered drum has been received
func (o *Order) IsComplete() bool {
	return o.QuantityReceived.GreaterThanOrEqual(o.Quantity)
}

// Remaining returns the quantity still outstanding
func (o *Order) Remaining() decimal.Decimal {
	remaining := o.Quantity.Sub(o.QuantityReceived)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}
