package router

import (
	"github.com/gin-gonic/gin"

	"github.com/drumflow/backend/internal/interfaces/http/handler"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g. "v1")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a RouteRegistrar to be registered later
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// ScanRoutes registers the scan pipeline endpoints
type ScanRoutes struct {
	scan   *handler.ScanHandler
	stream *handler.ScanStreamHandler
}

// NewScanRoutes creates the scan route registrar
func NewScanRoutes(scan *handler.ScanHandler, stream *handler.ScanStreamHandler) *ScanRoutes {
	return &ScanRoutes{scan: scan, stream: stream}
}

// RegisterRoutes implements RouteRegistrar
func (r *ScanRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	scans := rg.Group("/scans")
	scans.POST("/drum", r.scan.Scan)
	scans.GET("/stream", r.stream.Stream)
}

// DrumRoutes registers the drum read endpoints
type DrumRoutes struct {
	drum *handler.DrumHandler
	scan *handler.ScanHandler
}

// NewDrumRoutes creates the drum route registrar
func NewDrumRoutes(drum *handler.DrumHandler, scan *handler.ScanHandler) *DrumRoutes {
	return &DrumRoutes{drum: drum, scan: scan}
}

// RegisterRoutes implements RouteRegistrar
func (r *DrumRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	drums := rg.Group("/drums")
	drums.GET("/:id", r.drum.GetByID)
	drums.GET("/:id/history", r.scan.History)
}

// OrderRoutes registers the purchase order endpoints
type OrderRoutes struct {
	order *handler.OrderHandler
}

// NewOrderRoutes creates the order route registrar
func NewOrderRoutes(order *handler.OrderHandler) *OrderRoutes {
	return &OrderRoutes{order: order}
}

// RegisterRoutes implements RouteRegistrar
func (r *OrderRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	orders.POST("", r.order.Create)
	orders.GET("/:id", r.order.GetByID)
}
