package scanning

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/drumflow/backend/internal/domain/inventory"
	"github.com/drumflow/backend/internal/domain/shared"
)

// Success messages returned to scanner clients. The intake wording
// reflects that the status mutation is delegated to database triggers.
const (
	msgIntakeAccepted     = "Import transaction created; DB triggers will finalize updates."
	msgProcessingAccepted = "Drum status updated to 'processed'"
)

// ScanService runs the scan lifecycle: parse, lock, look up, deduplicate,
// resolve the transition, write the audit transaction, verify the
// delegated status mutation, and notify subscribers.
type ScanService struct {
	drumRepo        inventory.DrumRepository
	orderRepo       inventory.OrderRepository
	transactionRepo inventory.TransactionRepository
	transitions     inventory.StatusTransitionPort
	locker          inventory.ScanLocker
	eventPublisher  shared.EventPublisher
	logger          *zap.Logger

	cooldownMinutes int
	now             func() time.Time
}

// NewScanService creates a new ScanService
func NewScanService(
	drumRepo inventory.DrumRepository,
	orderRepo inventory.OrderRepository,
	transactionRepo inventory.TransactionRepository,
	transitions inventory.StatusTransitionPort,
	locker inventory.ScanLocker,
	cooldownMinutes int,
	logger *zap.Logger,
) *ScanService {
	if cooldownMinutes <= 0 {
		cooldownMinutes = inventory.DefaultCooldownMinutes
	}
	return &ScanService{
		drumRepo:        drumRepo,
		orderRepo:       orderRepo,
		transactionRepo: transactionRepo,
		transitions:     transitions,
		locker:          locker,
		logger:          logger,
		cooldownMinutes: cooldownMinutes,
		now:             time.Now,
	}
}

// SetEventPublisher sets the event publisher for scan notifications
func (s *ScanService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Scan processes one barcode submission end to end.
//
// The returned error is one of the structured scan errors
// (*InvalidBarcodeError, *DrumNotFoundError, *DuplicateScanError,
// *UnhandledStatusError, *TransitionVerificationError,
// *ScanInProgressError) or an infrastructure error.
func (s *ScanService) Scan(ctx context.Context, req ScanRequest) (*ScanResult, error) {
	barcode, err := inventory.ParseBarcode(req.Barcode)
	if err != nil {
		return nil, err
	}

	// Serialize scans of this drum; concurrent duplicates would otherwise
	// both pass the dedup guard and write conflicting transactions.
	release, err := s.locker.Acquire(ctx, barcode.DrumID)
	if err != nil {
		return nil, err
	}
	defer release()

	drum, err := s.drumRepo.FindByID(ctx, barcode.DrumID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, &inventory.DrumNotFoundError{DrumID: barcode.DrumID}
		}
		return nil, fmt.Errorf("failed to look up drum %d: %w", barcode.DrumID, err)
	}

	if err := s.checkCooldown(ctx, drum, barcode.OrderID); err != nil {
		return nil, err
	}

	transition, ok := inventory.TransitionFor(drum.Status)
	if !ok {
		return nil, &inventory.UnhandledStatusError{DrumID: drum.DrumID, Status: drum.Status}
	}

	result, err := s.applyTransition(ctx, drum, barcode, transition)
	if err != nil {
		return nil, err
	}

	s.logger.Info("scan accepted",
		zap.Int64("drum_id", drum.DrumID),
		zap.String("tx_type", transition.TxType.String()),
		zap.String("old_status", drum.Status.String()),
		zap.String("new_status", transition.NextStatus.String()),
	)
	return result, nil
}

// checkCooldown enforces the deduplication window. A rejected scan is
// itself audited as a cancelled transaction before the error returns.
func (s *ScanService) checkCooldown(ctx context.Context, drum *inventory.Drum, orderID int64) error {
	latest, err := s.transactionRepo.FindLatestByDrum(ctx, drum.DrumID)
	if err != nil {
		return fmt.Errorf("failed to read scan history for drum %d: %w", drum.DrumID, err)
	}
	if latest == nil {
		return nil
	}

	now := s.now()
	if !inventory.IsWithinCooldown(latest.TxDate, now, s.cooldownMinutes) {
		return nil
	}

	elapsed := inventory.ElapsedWholeMinutes(latest.TxDate, now)
	material, err := s.materialFor(ctx, drum, orderID)
	if err != nil {
		return err
	}
	cancelled, err := inventory.NewCancelledTransaction(material, drum.DrumID, orderID, elapsed)
	if err != nil {
		return err
	}
	if err := s.transactionRepo.Create(ctx, cancelled); err != nil {
		return fmt.Errorf("failed to record cancelled scan for drum %d: %w", drum.DrumID, err)
	}

	s.logger.Warn("duplicate scan rejected",
		zap.Int64("drum_id", drum.DrumID),
		zap.Int("elapsed_minutes", elapsed),
	)
	return &inventory.DuplicateScanError{DrumID: drum.DrumID, ElapsedMinutes: elapsed}
}

// applyTransition writes the audit transaction, verifies the delegated
// status mutation, and publishes notifications.
func (s *ScanService) applyTransition(ctx context.Context, drum *inventory.Drum, barcode inventory.Barcode, transition inventory.ScanTransition) (*ScanResult, error) {
	material, err := s.materialFor(ctx, drum, barcode.OrderID)
	if err != nil {
		return nil, err
	}

	tx, err := inventory.NewTransaction(transition.TxType, material, drum.DrumID, transition.Note)
	if err != nil {
		return nil, err
	}
	if transition.RecordOrder {
		tx.WithOrderID(barcode.OrderID)
	}
	if err := s.transactionRepo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to write %s transaction for drum %d: %w", transition.TxType, drum.DrumID, err)
	}

	// The transaction row stays even when verification fails; operators
	// reconcile from the audit log.
	oldStatus := drum.Status
	if err := s.transitions.ApplyAndVerify(ctx, drum.DrumID, oldStatus, transition.NextStatus); err != nil {
		return nil, err
	}

	result := &ScanResult{
		Message:   s.successMessage(transition),
		DrumID:    drum.DrumID,
		OrderID:   barcode.OrderID,
		TxID:      tx.TxID,
		TxType:    transition.TxType,
		OldStatus: oldStatus,
		NewStatus: transition.NextStatus,
		Material:  material,
		ScannedAt: tx.TxDate,
	}

	s.notify(ctx, drum, barcode, transition, result)
	return result, nil
}

func (s *ScanService) successMessage(transition inventory.ScanTransition) string {
	if transition.TxType == inventory.TransactionTypeIntake {
		return msgIntakeAccepted
	}
	return msgProcessingAccepted
}

// notify publishes the post-scan events. Notification failures never
// fail the scan; the bus logs its own errors.
func (s *ScanService) notify(ctx context.Context, drum *inventory.Drum, barcode inventory.Barcode, transition inventory.ScanTransition, result *ScanResult) {
	if s.eventPublisher == nil {
		return
	}

	events := []shared.DomainEvent{
		inventory.NewDrumStatusChangedEvent(drum.DrumID, result.OldStatus, result.NewStatus),
	}
	if transition.EmitProgress {
		events = append(events, inventory.NewOrderProgressEvent(barcode.OrderID, drum.DrumID, 1))

		if complete, order := s.orderIsComplete(ctx, barcode.OrderID); complete {
			result.OrderComplete = true
			events = append(events, inventory.NewOrderCompletedEvent(order.OrderID, order.Supplier, order.Material))
		}
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}

// materialFor resolves the material stamped on audit rows. The order's
// record is authoritative; the drum's copy covers rows whose order has
// gone missing.
func (s *ScanService) materialFor(ctx context.Context, drum *inventory.Drum, orderID int64) (string, error) {
	material, err := s.orderRepo.MaterialForOrder(ctx, orderID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve material for order %d: %w", orderID, err)
	}
	if material == "" {
		material = drum.Material
	}
	return material, nil
}

// orderIsComplete re-reads the order after the intake side effects have
// landed and reports whether every ordered drum has been received. The
// check follows quantity_received, not drum statuses: drums received
// earlier may already have moved on to processed. Lookup failures are
// logged and treated as not complete.
func (s *ScanService) orderIsComplete(ctx context.Context, orderID int64) (bool, *inventory.Order) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("failed to check order completion", zap.Int64("order_id", orderID), zap.Error(err))
		}
		return false, nil
	}
	return order.IsComplete(), order
}

// History returns a drum's full audit trail, newest first
func (s *ScanService) History(ctx context.Context, drumID int64) ([]inventory.Transaction, error) {
	drum, err := s.drumRepo.FindByID(ctx, drumID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, &inventory.DrumNotFoundError{DrumID: drumID}
		}
		return nil, err
	}
	return s.transactionRepo.FindByDrum(ctx, drum.DrumID)
}
