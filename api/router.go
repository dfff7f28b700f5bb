package api

import (
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth      *AuthHandler
	Rooms     *RoomHandler
	Bookings  *BookingHandler
	Dashboard *DashboardHandler
	Logs      *LogHandler
	Health    *HealthHandler
}

type RouterOptions struct {
	Swagger bool
}

// NewRouter mounts every handler under /api/v1. Everything except login requires a bearer token.
func NewRouter(parser TokenParser, h Handlers, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	if h.Health != nil {
		h.Health.Register(router)
	}
	if opts.Swagger {
		RegisterDocs(router)
	}

	public := router.Group("/api/v1")
	protected := router.Group("/api/v1", Authenticate(parser))

	h.Auth.Register(public, protected)
	h.Rooms.Register(protected)
	h.Bookings.Register(protected)
	h.Dashboard.Register(protected)
	h.Logs.Register(protected)

	return router
}
