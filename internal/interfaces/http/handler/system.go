package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger abstracts a backing-service liveness check
type Pinger interface {
	Ping() error
}

// PingerFunc adapts a plain function to the Pinger interface
type PingerFunc func() error

// Ping implements Pinger
func (f PingerFunc) Ping() error { return f() }

// SystemHandler exposes health and readiness endpoints
type SystemHandler struct {
	BaseHandler
	db      Pinger
	redis   Pinger
	started time.Time
	version string
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db Pinger, version string) *SystemHandler {
	return &SystemHandler{
		db:      db,
		started: time.Now(),
		version: version,
	}
}

// SetRedisPinger registers the optional Redis readiness check
func (h *SystemHandler) SetRedisPinger(p Pinger) {
	h.redis = p
}

// Health handles GET /health. Liveness only; always 200 while the
// process can serve.
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": h.version,
		"uptime":  time.Since(h.started).String(),
	})
}

// Ready handles GET /ready. Fails when the database is unreachable so
// load balancers stop routing scans here.
func (h *SystemHandler) Ready(c *gin.Context) {
	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
				"reason": "database unreachable",
			})
			return
		}
	}
	if h.redis != nil {
		if err := h.redis.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
				"reason": "redis unreachable",
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
