package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/drumflow/backend/internal/domain/inventory"
)

// TriggerStatusTransition implements StatusTransitionPort for deployments
// where database triggers react to transaction inserts and mutate drum
// status themselves. It performs no write: it re-reads the drum and
// confirms the trigger fired.
type TriggerStatusTransition struct {
	db *gorm.DB
}

// NewTriggerStatusTransition creates a trigger-mode transition port
func NewTriggerStatusTransition(db *gorm.DB) *TriggerStatusTransition {
	return &TriggerStatusTransition{db: db}
}

// ApplyAndVerify re-reads the drum and checks its status reached
// expectedTo. A stale status means the trigger did not fire.
func (t *TriggerStatusTransition) ApplyAndVerify(ctx context.Context, drumID int64, expectedFrom, expectedTo inventory.DrumStatus) error {
	var drum inventory.Drum
	if err := t.db.WithContext(ctx).First(&drum, "drum_id = ?", drumID).Error; err != nil {
		return err
	}
	if drum.Status != expectedTo {
		return &inventory.TransitionVerificationError{
			DrumID:    drumID,
			OldStatus: expectedFrom,
			Expected:  expectedTo,
		}
	}
	return nil
}

// ExplicitStatusTransition implements StatusTransitionPort for deployments
// without database triggers. It replicates the triggers' work in a single
// transaction: a conditional status update keyed on the expected current
// status, plus the order bookkeeping the intake trigger would otherwise
// perform and the processing timestamp the processing trigger would stamp.
// A concurrent writer that already moved the drum causes a zero-row update
// instead of a silent overwrite.
type ExplicitStatusTransition struct {
	db *gorm.DB
}

// NewExplicitStatusTransition creates an explicit-mode transition port
func NewExplicitStatusTransition(db *gorm.DB) *ExplicitStatusTransition {
	return &ExplicitStatusTransition{db: db}
}

// ApplyAndVerify moves the drum from expectedFrom to expectedTo with a
// conditional update and applies the transition's side effects: intake
// advances the owning order's received quantity, processing stamps
// date_processed.
func (t *ExplicitStatusTransition) ApplyAndVerify(ctx context.Context, drumID int64, expectedFrom, expectedTo inventory.DrumStatus) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var drum inventory.Drum
		if err := tx.First(&drum, "drum_id = ?", drumID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &inventory.TransitionVerificationError{DrumID: drumID, OldStatus: expectedFrom, Expected: expectedTo}
			}
			return err
		}

		updates := map[string]any{"status": expectedTo}
		if expectedTo == inventory.DrumStatusProcessed {
			updates["date_processed"] = time.Now()
		}
		res := tx.Model(&inventory.Drum{}).
			Where("drum_id = ? AND status = ?", drumID, expectedFrom).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &inventory.TransitionVerificationError{
				DrumID:    drumID,
				OldStatus: expectedFrom,
				Expected:  expectedTo,
			}
		}

		if expectedTo == inventory.DrumStatusAvailable && drum.OrderID != nil {
			return advanceOrderProgress(tx, *drum.OrderID)
		}
		return nil
	})
}

// advanceOrderProgress mirrors the intake trigger: quantity_received
// advances by one and the order status follows it to partial or complete.
func advanceOrderProgress(tx *gorm.DB, orderID int64) error {
	return tx.Model(&inventory.Order{}).
		Where("order_id = ?", orderID).
		Updates(map[string]any{
			"quantity_received": gorm.Expr("quantity_received + 1"),
			"status": gorm.Expr(
				"CASE WHEN quantity_received + 1 >= quantity THEN ? ELSE ? END",
				inventory.OrderStatusComplete, inventory.OrderStatusPartial,
			),
		}).Error
}

var (
	_ inventory.StatusTransitionPort = (*TriggerStatusTransition)(nil)
	_ inventory.StatusTransitionPort = (*ExplicitStatusTransition)(nil)
)
