package inventory

import (
	"strconv"

	"github.com/drumflow/backend/internal/domain/shared"
)

// Event type constants for the inventory domain
const (
	EventTypeDrumStatusChanged = "drum.status_changed"
	EventTypeOrderProgress     = "order.progress"
	EventTypeOrderCompleted    = "order.completed"
)

// DrumStatusChangedEvent is published after a verified scan transition
type DrumStatusChangedEvent struct {
	shared.BaseDomainEvent
	DrumID    int64      `json:"drum_id"`
	OldStatus DrumStatus `json:"old_status"`
	NewStatus DrumStatus `json:"new_status"`
}

// NewDrumStatusChangedEvent creates a new DrumStatusChangedEvent
func NewDrumStatusChangedEvent(drumID int64, oldStatus, newStatus DrumStatus) *DrumStatusChangedEvent {
	return &DrumStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDrumStatusChanged, "Drum", strconv.FormatInt(drumID, 10)),
		DrumID:          drumID,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// OrderProgressEvent is published when an intake scan advances an order's
// received count. Increment is the number of drums received by this scan.
type OrderProgressEvent struct {
	shared.BaseDomainEvent
	OrderID   int64 `json:"order_id"`
	DrumID    int64 `json:"drum_id"`
	Increment int   `json:"increment"`
}

// NewOrderProgressEvent creates a new OrderProgressEvent
func NewOrderProgressEvent(orderID, drumID int64, increment int) *OrderProgressEvent {
	return &OrderProgressEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderProgress, "Order", strconv.FormatInt(orderID, 10)),
		OrderID:         orderID,
		DrumID:          drumID,
		Increment:       increment,
	}
}

// OrderCompletedEvent is published when the final drum of an order is
// received into inventory
type OrderCompletedEvent struct {
	shared.BaseDomainEvent
	OrderID  int64  `json:"order_id"`
	Supplier string `json:"supplier"`
	Material string `json:"material"`
}

// NewOrderCompletedEvent creates a new OrderCompletedEvent
func NewOrderCompletedEvent(orderID int64, supplier, material string) *OrderCompletedEvent {
	return &OrderCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCompleted, "Order", strconv.FormatInt(orderID, 10)),
		OrderID:         orderID,
		Supplier:        supplier,
		Material:        material,
	}
}
