package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/drumflow/backend/internal/domain/inventory"
)

// DrumDetailResponse is the API representation of a drum with its order
// context and scan history
type DrumDetailResponse struct {
	DrumID        int64                   `json:"drum_id"`
	Material      string                  `json:"material"`
	Status        inventory.DrumStatus    `json:"status"`
	Location      *string                 `json:"location,omitempty"`
	DateProcessed *time.Time              `json:"date_processed,omitempty"`
	Barcode       string                  `json:"barcode,omitempty"`
	Order         *OrderSummary           `json:"order,omitempty"`
	History       []inventory.Transaction `json:"history,omitempty"`
}

// OrderSummary is the condensed order context attached to a drum
type OrderSummary struct {
	OrderID          int64                 `json:"order_id"`
	Supplier         string                `json:"supplier"`
	Material         string                `json:"material"`
	Quantity         decimal.Decimal       `json:"quantity"`
	QuantityReceived decimal.Decimal       `json:"quantity_received"`
	Status           inventory.OrderStatus `json:"status"`
}

// ToDrumDetailResponse maps a domain drum to its API shape
func ToDrumDetailResponse(drum *inventory.Drum) *DrumDetailResponse {
	resp := &DrumDetailResponse{
		DrumID:        drum.DrumID,
		Material:      drum.Material,
		Status:        drum.Status,
		Location:      drum.Location,
		DateProcessed: drum.DateProcessed,
	}
	if drum.OrderID != nil {
		resp.Barcode = inventory.Barcode{OrderID: *drum.OrderID, DrumID: drum.DrumID}.String()
	}
	return resp
}

func toOrderSummary(order *inventory.Order) *OrderSummary {
	return &OrderSummary{
		OrderID:          order.OrderID,
		Supplier:         order.Supplier,
		Material:         order.Material,
		Quantity:         order.Quantity,
		QuantityReceived: order.QuantityReceived,
		Status:           order.Status,
	}
}
