package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/drumflow/backend/internal/domain/inventory"
	"github.com/drumflow/backend/internal/domain/shared"
)

// GormDrumRepository implements DrumRepository using GORM
type GormDrumRepository struct {
	db *gorm.DB
}

// NewGormDrumRepository creates a new GormDrumRepository
func NewGormDrumRepository(db *gorm.DB) *GormDrumRepository {
	return &GormDrumRepository{db: db}
}

// FindByID finds a drum by its identifier
func (r *GormDrumRepository) FindByID(ctx context.Context, drumID int64) (*inventory.Drum, error) {
	var drum inventory.Drum
	if err := r.db.WithContext(ctx).First(&drum, "drum_id = ?", drumID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &drum, nil
}

// CreateBatch persists a batch of newly generated drums
func (r *GormDrumRepository) CreateBatch(ctx context.Context, drums []*inventory.Drum) error {
	if len(drums) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&drums).Error
}

// Ensure GormDrumRepository implements DrumRepository
var _ inventory.DrumRepository = (*GormDrumRepository)(nil)
