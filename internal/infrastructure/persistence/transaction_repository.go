package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/drumflow/backend/internal/domain/inventory"
)

// GormTransactionRepository implements TransactionRepository using GORM.
// The transactions table is append-only; no update or delete paths exist.
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Create appends one transaction to the audit log
func (r *GormTransactionRepository) Create(ctx context.Context, tx *inventory.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

// FindLatestByDrum returns the most recent transaction for a drum, or
// nil when the drum has never been scanned. Ordering is by tx_date with
// tx_id as tiebreaker so same-timestamp writes resolve deterministically.
func (r *GormTransactionRepository) FindLatestByDrum(ctx context.Context, drumID int64) (*inventory.Transaction, error) {
	var tx inventory.Transaction
	err := r.db.WithContext(ctx).
		Where("drum_id = ?", drumID).
		Order("tx_date DESC, tx_id DESC").
		First(&tx).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tx, nil
}

// FindByDrum returns a drum's full scan history, newest first
func (r *GormTransactionRepository) FindByDrum(ctx context.Context, drumID int64) ([]inventory.Transaction, error) {
	var txs []inventory.Transaction
	if err := r.db.WithContext(ctx).
		Where("drum_id = ?", drumID).
		Order("tx_date DESC, tx_id DESC").
		Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// Ensure GormTransactionRepository implements TransactionRepository
var _ inventory.TransactionRepository = (*GormTransactionRepository)(nil)
