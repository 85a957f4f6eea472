package inventory

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/drumflow/backend/internal/domain/inventory"
	"github.com/drumflow/backend/internal/domain/shared"
)

// DrumService exposes read access to drums and their audit context
type DrumService struct {
	drumRepo        inventory.DrumRepository
	orderRepo       inventory.OrderRepository
	transactionRepo inventory.TransactionRepository
	logger          *zap.Logger
}

// NewDrumService creates a new DrumService
func NewDrumService(
	drumRepo inventory.DrumRepository,
	orderRepo inventory.OrderRepository,
	transactionRepo inventory.TransactionRepository,
	logger *zap.Logger,
) *DrumService {
	return &DrumService{
		drumRepo:        drumRepo,
		orderRepo:       orderRepo,
		transactionRepo: transactionRepo,
		logger:          logger,
	}
}

// GetByID retrieves a drum with its order context and scan history
func (s *DrumService) GetByID(ctx context.Context, drumID int64) (*DrumDetailResponse, error) {
	drum, err := s.drumRepo.FindByID(ctx, drumID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, &inventory.DrumNotFoundError{DrumID: drumID}
		}
		return nil, err
	}

	resp := ToDrumDetailResponse(drum)

	if drum.OrderID != nil {
		order, err := s.orderRepo.FindByID(ctx, *drum.OrderID)
		if err == nil {
			resp.Order = toOrderSummary(order)
		} else if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}

	history, err := s.transactionRepo.FindByDrum(ctx, drum.DrumID)
	if err != nil {
		return nil, err
	}
	resp.History = history

	return resp, nil
}
