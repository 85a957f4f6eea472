package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/drumflow/backend/internal/domain/inventory"
	"github.com/drumflow/backend/internal/domain/shared"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its identifier
func (r *GormOrderRepository) FindByID(ctx context.Context, orderID int64) (*inventory.Order, error) {
	var order inventory.Order
	if err := r.db.WithContext(ctx).First(&order, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// MaterialForOrder resolves the material name on file for an order.
// Unknown orders resolve to the empty string rather than an error; the
// audit log records a transaction even when the order row is missing.
func (r *GormOrderRepository) MaterialForOrder(ctx context.Context, orderID int64) (string, error) {
	var material string
	err := r.db.WithContext(ctx).
		Model(&inventory.Order{}).
		Select("material").
		Where("order_id = ?", orderID).
		Limit(1).
		Scan(&material).Error
	if err != nil {
		return "", err
	}
	return material, nil
}

// CreateWithDrums persists an order and its generated pending drums in a
// single transaction
func (r *GormOrderRepository) CreateWithDrums(ctx context.Context, order *inventory.Order, drums []*inventory.Drum) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for _, drum := range drums {
			drum.OrderID = &order.OrderID
		}
		if len(drums) > 0 {
			if err := tx.Create(&drums).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Ensure GormOrderRepository implements OrderRepository
var _ inventory.OrderRepository = (*GormOrderRepository)(nil)
