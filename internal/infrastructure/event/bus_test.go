package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/drumflow/backend/internal/domain/inventory"
	"github.com/drumflow/backend/internal/domain/shared"
)

// recordingHandler collects every event it receives
type recordingHandler struct {
	mu     sync.Mutex
	types  []string
	events []shared.DomainEvent
	err    error
	panics bool
}

func (h *recordingHandler) Handle(_ context.Context, evt shared.DomainEvent) error {
	if h.panics {
		panic("handler boom")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, evt)
	return h.err
}

func (h *recordingHandler) EventTypes() []string { return h.types }

func (h *recordingHandler) received() []shared.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]shared.DomainEvent(nil), h.events...)
}

func TestPublishRoutesByEventType(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	statusHandler := &recordingHandler{types: []string{inventory.EventTypeDrumStatusChanged}}
	progressHandler := &recordingHandler{types: []string{inventory.EventTypeOrderProgress}}
	bus.Subscribe(statusHandler)
	bus.Subscribe(progressHandler)

	evt := inventory.NewDrumStatusChangedEvent(1024, inventory.DrumStatusPending, inventory.DrumStatusAvailable)
	require.NoError(t, bus.Publish(context.Background(), evt))

	require.Len(t, statusHandler.received(), 1)
	assert.Equal(t, inventory.EventTypeDrumStatusChanged, statusHandler.received()[0].EventType())
	assert.Empty(t, progressHandler.received())
}

func TestPublishDeliversToWildcardHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	all := &recordingHandler{}
	bus.Subscribe(all)

	require.NoError(t, bus.Publish(context.Background(),
		inventory.NewDrumStatusChangedEvent(7, inventory.DrumStatusAvailable, inventory.DrumStatusProcessed),
		inventory.NewOrderProgressEvent(52, 1024, 1),
	))

	assert.Len(t, all.received(), 2)
}

func TestPublishContinuesPastFailingHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	failing := &recordingHandler{types: []string{inventory.EventTypeDrumStatusChanged}, err: errors.New("downstream unavailable")}
	healthy := &recordingHandler{types: []string{inventory.EventTypeDrumStatusChanged}}
	bus.Subscribe(failing)
	bus.Subscribe(healthy)

	err := bus.Publish(context.Background(),
		inventory.NewDrumStatusChangedEvent(1024, inventory.DrumStatusPending, inventory.DrumStatusAvailable))

	require.NoError(t, err)
	assert.Len(t, healthy.received(), 1)
}

func TestPublishRecoversFromPanickingHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	panicking := &recordingHandler{types: []string{inventory.EventTypeDrumStatusChanged}, panics: true}
	healthy := &recordingHandler{types: []string{inventory.EventTypeDrumStatusChanged}}
	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	require.NotPanics(t, func() {
		_ = bus.Publish(context.Background(),
			inventory.NewDrumStatusChangedEvent(1024, inventory.DrumStatusPending, inventory.DrumStatusAvailable))
	})
	assert.Len(t, healthy.received(), 1)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	h := &recordingHandler{types: []string{inventory.EventTypeDrumStatusChanged}}
	bus.Subscribe(h)
	bus.Unsubscribe(h)

	require.NoError(t, bus.Publish(context.Background(),
		inventory.NewDrumStatusChangedEvent(1024, inventory.DrumStatusPending, inventory.DrumStatusAvailable)))
	assert.Empty(t, h.received())
}
