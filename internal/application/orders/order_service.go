package orders

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/drumflow/backend/internal/domain/inventory"
	"github.com/drumflow/backend/internal/domain/shared"
)

// OrderService handles purchase order intake. Creating an order
// generates its pending drum rows so labels can be printed before the
// shipment arrives.
type OrderService struct {
	orderRepo inventory.OrderRepository
	drumRepo  inventory.DrumRepository
	logger    *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo inventory.OrderRepository, drumRepo inventory.DrumRepository, logger *zap.Logger) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		drumRepo:  drumRepo,
		logger:    logger,
	}
}

// Create persists a new order together with its generated pending drums
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	order, err := inventory.NewOrder(req.Supplier, req.Material, req.Quantity)
	if err != nil {
		return nil, err
	}
	order.PONumber = req.PONumber
	order.ETA = req.ETA

	drums := make([]*inventory.Drum, 0, order.DrumCount())
	for i := 0; i < order.DrumCount(); i++ {
		drum, err := inventory.NewDrum(order.Material, order.OrderID)
		if err != nil {
			return nil, err
		}
		drums = append(drums, drum)
	}

	if err := s.orderRepo.CreateWithDrums(ctx, order, drums); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info("order created",
		zap.Int64("order_id", order.OrderID),
		zap.String("supplier", order.Supplier),
		zap.String("material", order.Material),
		zap.Int("drums", len(drums)),
	)

	resp := ToOrderResponse(order, drums)
	return &resp, nil
}

// GetByID retrieves an order by its identifier
func (s *OrderService) GetByID(ctx context.Context, orderID int64) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("ORDER_NOT_FOUND", fmt.Sprintf("Order %d not found", orderID))
		}
		return nil, err
	}
	resp := ToOrderResponse(order, nil)
	return &resp, nil
}
