package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/drumflow/backend/internal/domain/inventory"
	"github.com/drumflow/backend/internal/domain/shared"
	"github.com/drumflow/backend/internal/interfaces/http/dto"
)

// SSEClient represents one connected scan-feed subscriber
type SSEClient struct {
	ID   string
	Chan chan SSEMessage
	Done chan struct{}
}

// SSEMessage is one server-sent event
type SSEMessage struct {
	Event string
	Data  string
	ID    string
}

// ScanStreamHandler pushes accepted scan transitions to dashboard
// clients over Server-Sent Events. It subscribes to the event bus and
// relays drum status and order progress events.
type ScanStreamHandler struct {
	BaseHandler
	logger     *zap.Logger
	clients    sync.Map // map[string]*SSEClient
	ctx        context.Context
	cancel     context.CancelFunc
	heartbeat  time.Duration
	maxClients int
}

// ScanStreamOption is a functional option for configuring the handler
type ScanStreamOption func(*ScanStreamHandler)

// WithStreamLogger sets the logger for the handler
func WithStreamLogger(logger *zap.Logger) ScanStreamOption {
	return func(h *ScanStreamHandler) { h.logger = logger }
}

// WithStreamHeartbeat sets the keepalive interval
func WithStreamHeartbeat(interval time.Duration) ScanStreamOption {
	return func(h *ScanStreamHandler) { h.heartbeat = interval }
}

// WithStreamMaxClients caps concurrent subscribers
func WithStreamMaxClients(max int) ScanStreamOption {
	return func(h *ScanStreamHandler) { h.maxClients = max }
}

// NewScanStreamHandler creates a new scan-feed SSE handler
func NewScanStreamHandler(opts ...ScanStreamOption) *ScanStreamHandler {
	ctx, cancel := context.WithCancel(context.Background())
	h := &ScanStreamHandler{
		logger:     zap.NewNop(),
		ctx:        ctx,
		cancel:     cancel,
		heartbeat:  30 * time.Second,
		maxClients: 500,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Start launches the heartbeat loop
func (h *ScanStreamHandler) Start() {
	go h.sendHeartbeats()
}

// Stop disconnects all subscribers
func (h *ScanStreamHandler) Stop() {
	h.cancel()
	h.clients.Range(func(_, value any) bool {
		if client, ok := value.(*SSEClient); ok {
			close(client.Done)
		}
		return true
	})
}

// Handle implements shared.EventHandler: relays bus events to subscribers
func (h *ScanStreamHandler) Handle(_ context.Context, evt shared.DomainEvent) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event for stream: %w", err)
	}
	h.broadcast(SSEMessage{
		Event: evt.EventType(),
		Data:  string(data),
		ID:    evt.EventID().String(),
	})
	return nil
}

// EventTypes implements shared.EventHandler
func (h *ScanStreamHandler) EventTypes() []string {
	return []string{
		inventory.EventTypeDrumStatusChanged,
		inventory.EventTypeOrderProgress,
		inventory.EventTypeOrderCompleted,
	}
}

// broadcast fans a message out to every connected client. Slow clients
// drop messages rather than blocking the bus.
func (h *ScanStreamHandler) broadcast(msg SSEMessage) {
	h.clients.Range(func(_, value any) bool {
		client, ok := value.(*SSEClient)
		if !ok {
			return true
		}
		select {
		case client.Chan <- msg:
		default:
			h.logger.Warn("scan feed client channel full, dropping message",
				zap.String("client_id", client.ID))
		}
		return true
	})
}

func (h *ScanStreamHandler) sendHeartbeats() {
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return
		case <-ticker.C:
			h.broadcast(SSEMessage{
				Event: "heartbeat",
				Data:  fmt.Sprintf(`{"timestamp":%d}`, time.Now().Unix()),
			})
		}
	}
}

// Stream handles GET /api/v1/scans/stream
func (h *ScanStreamHandler) Stream(c *gin.Context) {
	if h.maxClients > 0 && h.ClientCount() >= h.maxClients {
		c.JSON(http.StatusServiceUnavailable,
			dto.NewErrorResponse("ERR_MAX_CONNECTIONS", "Maximum number of stream connections reached"))
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	const bufferSize = 100
	client := &SSEClient{
		ID:   uuid.NewString(),
		Chan: make(chan SSEMessage, bufferSize),
		Done: make(chan struct{}),
	}

	// The channel is never closed: broadcast may race a disconnect, and a
	// send on a closed channel panics. Deleting the registry entry is
	// enough; the channel is collected with the client.
	h.clients.Store(client.ID, client)
	defer h.clients.Delete(client.ID)

	h.logger.Info("scan feed client connected", zap.String("client_id", client.ID))

	h.sendEvent(c.Writer, SSEMessage{
		Event: "connected",
		Data:  fmt.Sprintf(`{"client_id":"%s","timestamp":%d}`, client.ID, time.Now().Unix()),
	})
	c.Writer.Flush()

	reqCtx := c.Request.Context()
	for {
		select {
		case <-reqCtx.Done():
			return
		case <-client.Done:
			return
		case <-h.ctx.Done():
			return
		case msg := <-client.Chan:
			h.sendEvent(c.Writer, msg)
			c.Writer.Flush()
		}
	}
}

func (h *ScanStreamHandler) sendEvent(w io.Writer, msg SSEMessage) {
	if msg.Event != "" {
		fmt.Fprintf(w, "event: %s\n", msg.Event)
	}
	if msg.ID != "" {
		fmt.Fprintf(w, "id: %s\n", msg.ID)
	}
	fmt.Fprintf(w, "data: %s\n\n", msg.Data)
}

// ClientCount returns the number of connected subscribers
func (h *ScanStreamHandler) ClientCount() int {
	count := 0
	h.clients.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}

var _ shared.EventHandler = (*ScanStreamHandler)(nil)
