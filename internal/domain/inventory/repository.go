package inventory

import "context"

// DrumRepository provides access to persisted drums
type DrumRepository interface {
	// FindByID finds a drum by its identifier
	FindByID(ctx context.Context, drumID int64) (*Drum, error)
	// CreateBatch persists a batch of newly generated drums
	CreateBatch(ctx context.Context, drums []*Drum) error
}

// OrderRepository provides access to persisted purchase orders
type OrderRepository interface {
	// FindByID finds an order by its identifier
	FindByID(ctx context.Context, orderID int64) (*Order, error)
	// MaterialForOrder resolves the material name on file for an order.
	// Orders without a material resolve to the empty string.
	MaterialForOrder(ctx context.Context, orderID int64) (string, error)
	// CreateWithDrums persists an order and its generated pending drums
	// in a single transaction
	CreateWithDrums(ctx context.Context, order *Order, drums []*Drum) error
}

// TransactionRepository provides append-only access to the audit log
type TransactionRepository interface {
	// Create appends one transaction. The log is never updated in place.
	Create(ctx context.Context, tx *Transaction) error
	// FindLatestByDrum returns the most recent transaction for a drum,
	// ordered by write time descending, or nil when none exists
	FindLatestByDrum(ctx context.Context, drumID int64) (*Transaction, error)
	// FindByDrum returns a drum's full scan history, newest first
	FindByDrum(ctx context.Context, drumID int64) ([]Transaction, error)
}
