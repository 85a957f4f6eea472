package scanning

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/drumflow/backend/internal/domain/inventory"
	"github.com/drumflow/backend/internal/domain/shared"
	"github.com/drumflow/backend/internal/infrastructure/lock"
)

// --- mocks ---

type mockDrumRepo struct{ mock.Mock }

func (m *mockDrumRepo) FindByID(ctx context.Context, drumID int64) (*inventory.Drum, error) {
	args := m.Called(ctx, drumID)
	if d := args.Get(0); d != nil {
		return d.(*inventory.Drum), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDrumRepo) CreateBatch(ctx context.Context, drums []*inventory.Drum) error {
	return m.Called(ctx, drums).Error(0)
}

type mockOrderRepo struct{ mock.Mock }

func (m *mockOrderRepo) FindByID(ctx context.Context, orderID int64) (*inventory.Order, error) {
	args := m.Called(ctx, orderID)
	if o := args.Get(0); o != nil {
		return o.(*inventory.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderRepo) MaterialForOrder(ctx context.Context, orderID int64) (string, error) {
	args := m.Called(ctx, orderID)
	return args.String(0), args.Error(1)
}

func (m *mockOrderRepo) CreateWithDrums(ctx context.Context, order *inventory.Order, drums []*inventory.Drum) error {
	return m.Called(ctx, order, drums).Error(0)
}

type mockTransactionRepo struct{ mock.Mock }

func (m *mockTransactionRepo) Create(ctx context.Context, tx *inventory.Transaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *mockTransactionRepo) FindLatestByDrum(ctx context.Context, drumID int64) (*inventory.Transaction, error) {
	args := m.Called(ctx, drumID)
	if tx := args.Get(0); tx != nil {
		return tx.(*inventory.Transaction), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTransactionRepo) FindByDrum(ctx context.Context, drumID int64) ([]inventory.Transaction, error) {
	args := m.Called(ctx, drumID)
	if txs := args.Get(0); txs != nil {
		return txs.([]inventory.Transaction), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockTransitionPort struct{ mock.Mock }

func (m *mockTransitionPort) ApplyAndVerify(ctx context.Context, drumID int64, from, to inventory.DrumStatus) error {
	return m.Called(ctx, drumID, from, to).Error(0)
}

type capturingPublisher struct {
	events []shared.DomainEvent
}

func (p *capturingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

func (p *capturingPublisher) typesSeen() []string {
	types := make([]string, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.EventType())
	}
	return types
}

// --- fixtures ---

type scanFixture struct {
	drums       *mockDrumRepo
	orders      *mockOrderRepo
	txs         *mockTransactionRepo
	transitions *mockTransitionPort
	publisher   *capturingPublisher
	service     *ScanService
}

func newScanFixture(t *testing.T) *scanFixture {
	t.Helper()
	f := &scanFixture{
		drums:       &mockDrumRepo{},
		orders:      &mockOrderRepo{},
		txs:         &mockTransactionRepo{},
		transitions: &mockTransitionPort{},
		publisher:   &capturingPublisher{},
	}
	f.service = NewScanService(
		f.drums, f.orders, f.txs, f.transitions,
		lock.NewInMemoryScanLocker(), 60, zap.NewNop(),
	)
	f.service.SetEventPublisher(f.publisher)
	return f
}

func (f *scanFixture) freezeNow(now time.Time) {
	f.service.now = func() time.Time { return now }
}

func pendingDrum() *inventory.Drum {
	orderID := int64(52)
	return &inventory.Drum{
		DrumID:   1024,
		Material: "Toluene",
		Status:   inventory.DrumStatusPending,
		OrderID:  &orderID,
	}
}

func availableDrum() *inventory.Drum {
	orderID := int64(52)
	return &inventory.Drum{
		DrumID:   1024,
		Material: "Toluene",
		Status:   inventory.DrumStatusAvailable,
		OrderID:  &orderID,
	}
}

// --- tests ---

func TestScan_InvalidBarcode(t *testing.T) {
	f := newScanFixture(t)

	for _, raw := range []string{"", "garbage", "52H1024", "-H1024", "52-H", "52-h1024"} {
		_, err := f.service.Scan(context.Background(), ScanRequest{Barcode: raw})
		var invalidErr *inventory.InvalidBarcodeError
		require.True(t, errors.As(err, &invalidErr), "barcode %q should be rejected", raw)
	}
	f.drums.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestScan_DrumNotFound(t *testing.T) {
	f := newScanFixture(t)
	f.drums.On("FindByID", mock.Anything, int64(1024)).Return(nil, shared.ErrNotFound)

	_, err := f.service.Scan(context.Background(), ScanRequest{Barcode: "52-H1024"})

	var notFound *inventory.DrumNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, int64(1024), notFound.DrumID)
	assert.Equal(t, "Drum ID 1024 not found in database", notFound.Error())
	f.txs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestScan_IntakeTransition(t *testing.T) {
	f := newScanFixture(t)
	drum := pendingDrum()

	f.drums.On("FindByID", mock.Anything, int64(1024)).Return(drum, nil)
	f.txs.On("FindLatestByDrum", mock.Anything, int64(1024)).Return(nil, nil)
	f.orders.On("MaterialForOrder", mock.Anything, int64(52)).Return("Toluene", nil)
	f.txs.On("Create", mock.Anything, mock.MatchedBy(func(tx *inventory.Transaction) bool {
		return tx.TxType == inventory.TransactionTypeIntake &&
			tx.TxNotes == "Scanned into inventory" &&
			tx.DrumID == 1024 &&
			tx.OrderID != nil && *tx.OrderID == 52
	})).Return(nil)
	f.transitions.On("ApplyAndVerify", mock.Anything, int64(1024),
		inventory.DrumStatusPending, inventory.DrumStatusAvailable).Return(nil)
	f.orders.On("FindByID", mock.Anything, int64(52)).Return(nil, shared.ErrNotFound)

	result, err := f.service.Scan(context.Background(), ScanRequest{Barcode: "52-H1024"})

	require.NoError(t, err)
	assert.Equal(t, "Import transaction created; DB triggers will finalize updates.", result.Message)
	assert.Equal(t, inventory.DrumStatusPending, result.OldStatus)
	assert.Equal(t, inventory.DrumStatusAvailable, result.NewStatus)
	assert.Equal(t, int64(52), result.OrderID)
	assert.Equal(t, "Toluene", result.Material)

	// Intake notifies both drum status and order progress
	assert.Contains(t, f.publisher.typesSeen(), inventory.EventTypeDrumStatusChanged)
	assert.Contains(t, f.publisher.typesSeen(), inventory.EventTypeOrderProgress)
	f.transitions.AssertExpectations(t)
}

func TestScan_IntakeAcceptsScannerTimestampSuffix(t *testing.T) {
	f := newScanFixture(t)
	drum := pendingDrum()

	f.drums.On("FindByID", mock.Anything, int64(1024)).Return(drum, nil)
	f.txs.On("FindLatestByDrum", mock.Anything, int64(1024)).Return(nil, nil)
	f.orders.On("MaterialForOrder", mock.Anything, int64(52)).Return("Toluene", nil)
	f.txs.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.transitions.On("ApplyAndVerify", mock.Anything, int64(1024),
		inventory.DrumStatusPending, inventory.DrumStatusAvailable).Return(nil)
	f.orders.On("FindByID", mock.Anything, int64(52)).Return(nil, shared.ErrNotFound)

	_, err := f.service.Scan(context.Background(), ScanRequest{Barcode: "52-H1024 2024/01/22 08:31:59"})
	require.NoError(t, err)
}

func TestScan_ProcessingTransition(t *testing.T) {
	f := newScanFixture(t)
	drum := availableDrum()

	f.drums.On("FindByID", mock.Anything, int64(1024)).Return(drum, nil)
	f.txs.On("FindLatestByDrum", mock.Anything, int64(1024)).Return(nil, nil)
	f.orders.On("MaterialForOrder", mock.Anything, int64(52)).Return("Toluene", nil)
	f.txs.On("Create", mock.Anything, mock.MatchedBy(func(tx *inventory.Transaction) bool {
		return tx.TxType == inventory.TransactionTypeProcessing &&
			tx.TxNotes == "Scanned out of inventory - staged for production" &&
			tx.OrderID == nil
	})).Return(nil)
	f.transitions.On("ApplyAndVerify", mock.Anything, int64(1024),
		inventory.DrumStatusAvailable, inventory.DrumStatusProcessed).Return(nil)

	result, err := f.service.Scan(context.Background(), ScanRequest{Barcode: "52-H1024"})

	require.NoError(t, err)
	assert.Equal(t, "Drum status updated to 'processed'", result.Message)
	assert.Equal(t, inventory.DrumStatusProcessed, result.NewStatus)

	// Processing notifies drum status only, no order progress
	assert.Contains(t, f.publisher.typesSeen(), inventory.EventTypeDrumStatusChanged)
	assert.NotContains(t, f.publisher.typesSeen(), inventory.EventTypeOrderProgress)
}

func TestScan_DuplicateWithinCooldown(t *testing.T) {
	f := newScanFixture(t)
	drum := availableDrum()
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	f.freezeNow(now)

	previous := &inventory.Transaction{
		TxID:   7,
		TxType: inventory.TransactionTypeIntake,
		DrumID: 1024,
		TxDate: now.Add(-42*time.Minute - 30*time.Second),
	}

	f.drums.On("FindByID", mock.Anything, int64(1024)).Return(drum, nil)
	f.txs.On("FindLatestByDrum", mock.Anything, int64(1024)).Return(previous, nil)
	f.orders.On("MaterialForOrder", mock.Anything, int64(52)).Return("Toluene", nil)
	f.txs.On("Create", mock.Anything, mock.MatchedBy(func(tx *inventory.Transaction) bool {
		return tx.TxType == inventory.TransactionTypeCancelled &&
			tx.TxNotes == "Scanned 42 minutes after most recent scan"
	})).Return(nil)

	_, err := f.service.Scan(context.Background(), ScanRequest{Barcode: "52-H1024"})

	var dup *inventory.DuplicateScanError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, 42, dup.ElapsedMinutes)
	assert.Equal(t, "Drum has been scanned recently. Transaction cancelled.", dup.Error())

	// No transition, no events for a rejected scan
	f.transitions.AssertNotCalled(t, "ApplyAndVerify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, f.publisher.events)
	f.txs.AssertExpectations(t)
}

func TestScan_CooldownBoundaryIsExclusive(t *testing.T) {
	f := newScanFixture(t)
	drum := pendingDrum()
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	f.freezeNow(now)

	// Exactly 60 whole minutes elapsed: the window has passed
	previous := &inventory.Transaction{
		TxID:   7,
		TxType: inventory.TransactionTypeCancelled,
		DrumID: 1024,
		TxDate: now.Add(-60 * time.Minute),
	}

	f.drums.On("FindByID", mock.Anything, int64(1024)).Return(drum, nil)
	f.txs.On("FindLatestByDrum", mock.Anything, int64(1024)).Return(previous, nil)
	f.orders.On("MaterialForOrder", mock.Anything, int64(52)).Return("Toluene", nil)
	f.txs.On("Create", mock.Anything, mock.MatchedBy(func(tx *inventory.Transaction) bool {
		return tx.TxType == inventory.TransactionTypeIntake
	})).Return(nil)
	f.transitions.On("ApplyAndVerify", mock.Anything, int64(1024),
		inventory.DrumStatusPending, inventory.DrumStatusAvailable).Return(nil)
	f.orders.On("FindByID", mock.Anything, int64(52)).Return(nil, shared.ErrNotFound)

	_, err := f.service.Scan(context.Background(), ScanRequest{Barcode: "52-H1024"})
	require.NoError(t, err)
}

func TestScan_UnhandledStatus(t *testing.T) {
	for _, status := range []inventory.DrumStatus{
		inventory.DrumStatusProcessed,
		inventory.DrumStatusScheduled,
		inventory.DrumStatusWasted,
		inventory.DrumStatusLost,
	} {
		t.Run(status.String(), func(t *testing.T) {
			f := newScanFixture(t)
			drum := pendingDrum()
			drum.Status = status

			f.drums.On("FindByID", mock.Anything, int64(1024)).Return(drum, nil)
			f.txs.On("FindLatestByDrum", mock.Anything, int64(1024)).Return(nil, nil)

			_, err := f.service.Scan(context.Background(), ScanRequest{Barcode: "52-H1024"})

			var unhandled *inventory.UnhandledStatusError
			require.True(t, errors.As(err, &unhandled))
			assert.Equal(t, status, unhandled.Status)
			f.txs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestScan_TransitionVerificationFailure(t *testing.T) {
	f := newScanFixture(t)
	drum := pendingDrum()

	f.drums.On("FindByID", mock.Anything, int64(1024)).Return(drum, nil)
	f.txs.On("FindLatestByDrum", mock.Anything, int64(1024)).Return(nil, nil)
	f.orders.On("MaterialForOrder", mock.Anything, int64(52)).Return("Toluene", nil)
	f.txs.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.transitions.On("ApplyAndVerify", mock.Anything, int64(1024),
		inventory.DrumStatusPending, inventory.DrumStatusAvailable).
		Return(&inventory.TransitionVerificationError{
			DrumID:    1024,
			OldStatus: inventory.DrumStatusPending,
			Expected:  inventory.DrumStatusAvailable,
		})

	_, err := f.service.Scan(context.Background(), ScanRequest{Barcode: "52-H1024"})

	var verifyErr *inventory.TransitionVerificationError
	require.True(t, errors.As(err, &verifyErr))
	assert.Equal(t, "Failed to update drum status via database trigger", verifyErr.Error())

	// The audit transaction was written and stays; no events fire.
	f.txs.AssertCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Empty(t, f.publisher.events)
}

func TestScan_AuditRowsStampOrderMaterial(t *testing.T) {
	t.Run("intake row carries the order's record", func(t *testing.T) {
		f := newScanFixture(t)
		drum := pendingDrum()

		// The drum's copy is stale; the order's record wins.
		f.drums.On("FindByID", mock.Anything, int64(1024)).Return(drum, nil)
		f.txs.On("FindLatestByDrum", mock.Anything, int64(1024)).Return(nil, nil)
		f.orders.On("MaterialForOrder", mock.Anything, int64(52)).Return("Acetone", nil)
		f.txs.On("Create", mock.Anything, mock.MatchedBy(func(tx *inventory.Transaction) bool {
			return tx.Material == "Acetone"
		})).Return(nil)
		f.transitions.On("ApplyAndVerify", mock.Anything, int64(1024),
			inventory.DrumStatusPending, inventory.DrumStatusAvailable).Return(nil)
		f.orders.On("FindByID", mock.Anything, int64(52)).Return(nil, shared.ErrNotFound)

		result, err := f.service.Scan(context.Background(), ScanRequest{Barcode: "52-H1024"})

		require.NoError(t, err)
		assert.Equal(t, "Acetone", result.Material)
	})

	t.Run("cancelled row carries the order's record", func(t *testing.T) {
		f := newScanFixture(t)
		drum := availableDrum()
		now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
		f.freezeNow(now)

		previous := &inventory.Transaction{
			TxID:   7,
			TxType: inventory.TransactionTypeIntake,
			DrumID: 1024,
			TxDate: now.Add(-10 * time.Minute),
		}

		f.drums.On("FindByID", mock.Anything, int64(1024)).Return(drum, nil)
		f.txs.On("FindLatestByDrum", mock.Anything, int64(1024)).Return(previous, nil)
		f.orders.On("MaterialForOrder", mock.Anything, int64(52)).Return("Acetone", nil)
		f.txs.On("Create", mock.Anything, mock.MatchedBy(func(tx *inventory.Transaction) bool {
			return tx.TxType == inventory.TransactionTypeCancelled && tx.Material == "Acetone"
		})).Return(nil)

		_, err := f.service.Scan(context.Background(), ScanRequest{Barcode: "52-H1024"})

		var dup *inventory.DuplicateScanError
		require.True(t, errors.As(err, &dup))
		f.txs.AssertExpectations(t)
	})

	t.Run("drum copy covers a missing order row", func(t *testing.T) {
		f := newScanFixture(t)
		drum := pendingDrum()

		f.drums.On("FindByID", mock.Anything, int64(1024)).Return(drum, nil)
		f.txs.On("FindLatestByDrum", mock.Anything, int64(1024)).Return(nil, nil)
		f.orders.On("MaterialForOrder", mock.Anything, int64(52)).Return("", nil)
		f.txs.On("Create", mock.Anything, mock.MatchedBy(func(tx *inventory.Transaction) bool {
			return tx.Material == "Toluene"
		})).Return(nil)
		f.transitions.On("ApplyAndVerify", mock.Anything, int64(1024),
			inventory.DrumStatusPending, inventory.DrumStatusAvailable).Return(nil)
		f.orders.On("FindByID", mock.Anything, int64(52)).Return(nil, shared.ErrNotFound)

		result, err := f.service.Scan(context.Background(), ScanRequest{Barcode: "52-H1024"})

		require.NoError(t, err)
		assert.Equal(t, "Toluene", result.Material)
	})
}

func TestScan_FinalIntakeCompletesOrder(t *testing.T) {
	f := newScanFixture(t)
	drum := pendingDrum()

	// The order's first drum has already moved on to processed; completion
	// follows the received count, not current drum statuses.
	order := &inventory.Order{
		OrderID:          52,
		Supplier:         "Kemfirst",
		Material:         "Toluene",
		Quantity:         decimal.NewFromInt(2),
		QuantityReceived: decimal.NewFromInt(2),
		Status:           inventory.OrderStatusComplete,
	}

	f.drums.On("FindByID", mock.Anything, int64(1024)).Return(drum, nil)
	f.txs.On("FindLatestByDrum", mock.Anything, int64(1024)).Return(nil, nil)
	f.orders.On("MaterialForOrder", mock.Anything, int64(52)).Return("Toluene", nil)
	f.txs.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.transitions.On("ApplyAndVerify", mock.Anything, int64(1024),
		inventory.DrumStatusPending, inventory.DrumStatusAvailable).Return(nil)
	f.orders.On("FindByID", mock.Anything, int64(52)).Return(order, nil)

	result, err := f.service.Scan(context.Background(), ScanRequest{Barcode: "52-H1024"})

	require.NoError(t, err)
	assert.True(t, result.OrderComplete)
	assert.Equal(t, []string{
		inventory.EventTypeDrumStatusChanged,
		inventory.EventTypeOrderProgress,
		inventory.EventTypeOrderCompleted,
	}, f.publisher.typesSeen())
}

func TestScan_PartialIntakeDoesNotCompleteOrder(t *testing.T) {
	f := newScanFixture(t)
	drum := pendingDrum()

	order := &inventory.Order{
		OrderID:          52,
		Supplier:         "Kemfirst",
		Material:         "Toluene",
		Quantity:         decimal.NewFromInt(2),
		QuantityReceived: decimal.NewFromInt(1),
		Status:           inventory.OrderStatusPartial,
	}

	f.drums.On("FindByID", mock.Anything, int64(1024)).Return(drum, nil)
	f.txs.On("FindLatestByDrum", mock.Anything, int64(1024)).Return(nil, nil)
	f.orders.On("MaterialForOrder", mock.Anything, int64(52)).Return("Toluene", nil)
	f.txs.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.transitions.On("ApplyAndVerify", mock.Anything, int64(1024),
		inventory.DrumStatusPending, inventory.DrumStatusAvailable).Return(nil)
	f.orders.On("FindByID", mock.Anything, int64(52)).Return(order, nil)

	result, err := f.service.Scan(context.Background(), ScanRequest{Barcode: "52-H1024"})

	require.NoError(t, err)
	assert.False(t, result.OrderComplete)
	assert.NotContains(t, f.publisher.typesSeen(), inventory.EventTypeOrderCompleted)
}

func TestScan_ConcurrentScanRejectedByLock(t *testing.T) {
	f := newScanFixture(t)

	// Hold the lock as if another scan of the same drum were in flight
	locker := lock.NewInMemoryScanLocker()
	f.service.locker = locker
	release, err := locker.Acquire(context.Background(), 1024)
	require.NoError(t, err)
	defer release()

	_, err = f.service.Scan(context.Background(), ScanRequest{Barcode: "52-H1024"})

	var inProgress *inventory.ScanInProgressError
	require.True(t, errors.As(err, &inProgress))
	f.drums.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestHistory(t *testing.T) {
	t.Run("returns full trail for known drum", func(t *testing.T) {
		f := newScanFixture(t)
		drum := availableDrum()
		trail := []inventory.Transaction{
			{TxID: 8, TxType: inventory.TransactionTypeProcessing, DrumID: 1024},
			{TxID: 7, TxType: inventory.TransactionTypeIntake, DrumID: 1024},
		}

		f.drums.On("FindByID", mock.Anything, int64(1024)).Return(drum, nil)
		f.txs.On("FindByDrum", mock.Anything, int64(1024)).Return(trail, nil)

		got, err := f.service.History(context.Background(), 1024)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("unknown drum returns DrumNotFoundError", func(t *testing.T) {
		f := newScanFixture(t)
		f.drums.On("FindByID", mock.Anything, int64(404)).Return(nil, shared.ErrNotFound)

		_, err := f.service.History(context.Background(), 404)
		var notFound *inventory.DrumNotFoundError
		require.True(t, errors.As(err, &notFound))
	})
}
