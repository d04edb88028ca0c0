package router

import (
	"net/http"

	"github.com/erp/skucatalog/internal/infrastructure/logger"
	"github.com/erp/skucatalog/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	apiVersion string
	healthPath string
	health     gin.HandlerFunc
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// WithHealth mounts a liveness handler outside the versioned API group
func WithHealth(path string, handler gin.HandlerFunc) RouterOption {
	return func(r *Router) {
		r.healthPath = path
		r.health = handler
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
		registrars: make([]RouteRegistrar, 0),
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

// APIPrefix returns the versioned API path, e.g. "/api/v1"
func (r *Router) APIPrefix() string {
	return "/api/" + r.apiVersion
}

// Setup registers all routes with the engine.
// Unmatched paths answer 404 with the standard error envelope.
func (r *Router) Setup() {
	if r.health != nil {
		r.engine.GET(r.healthPath, r.health)
	}

	api := r.engine.Group(r.APIPrefix())
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}

	r.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeRouteNotFound,
			"Route "+c.Request.Method+" "+c.Request.URL.Path+" not found",
			c.GetString(logger.RequestIDKey),
		))
	})
}
