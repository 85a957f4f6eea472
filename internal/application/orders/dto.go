package orders

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/drumflow/backend/internal/domain/inventory"
)

// CreateOrderRequest carries a new purchase order submission
type CreateOrderRequest struct {
	Supplier string          `json:"supplier" binding:"required"`
	Material string          `json:"material" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	PONumber *string         `json:"po_number,omitempty"`
	ETA      *time.Time      `json:"eta,omitempty"`
}

// OrderResponse is the API representation of a purchase order
type OrderResponse struct {
	OrderID          int64                 `json:"order_id"`
	Supplier         string                `json:"supplier"`
	Material         string                `json:"material"`
	Quantity         decimal.Decimal       `json:"quantity"`
	QuantityReceived decimal.Decimal       `json:"quantity_received"`
	Status           inventory.OrderStatus `json:"status"`
	PONumber         *string               `json:"po_number,omitempty"`
	DateOrdered      time.Time             `json:"date_ordered"`
	ETA              *time.Time            `json:"eta,omitempty"`
	DrumIDs          []int64               `json:"drum_ids,omitempty"`
	Barcodes         []string              `json:"barcodes,omitempty"`
}

// ToOrderResponse maps a domain order and its drums to the API shape.
// Each generated drum gets its printable barcode alongside its ID.
func ToOrderResponse(order *inventory.Order, drums []*inventory.Drum) OrderResponse {
	resp := OrderResponse{
		OrderID:          order.OrderID,
		Supplier:         order.Supplier,
		Material:         order.Material,
		Quantity:         order.Quantity,
		QuantityReceived: order.QuantityReceived,
		Status:           order.Status,
		PONumber:         order.PONumber,
		DateOrdered:      order.DateOrdered,
		ETA:              order.ETA,
	}
	for _, drum := range drums {
		resp.DrumIDs = append(resp.DrumIDs, drum.DrumID)
		resp.Barcodes = append(resp.Barcodes, inventory.Barcode{OrderID: order.OrderID, DrumID: drum.DrumID}.String())
	}
	return resp
}
