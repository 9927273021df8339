package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pushp314/derive-duel-backend/internal/handlers"
	"github.com/pushp314/derive-duel-backend/internal/middleware"
)

// NewRouter wires middleware and every route. hub may be nil.
func NewRouter(h *handlers.Handler, hub *handlers.DuelHub, frontendURL string) *gin.Engine {
	r := gin.New()

	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.ErrorHandlerMiddleware())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(frontendURL))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.GeneralRateLimit("/socket.io/"))

	api := r.Group("/api")
	{
		RegisterProofRoutes(api, h)
		RegisterDuelRoutes(api, h)
	}

	r.GET("/health", h.Health)

	if hub != nil {
		r.GET("/socket.io/*any", hub.Handler())
		r.POST("/socket.io/*any", hub.Handler())
	}

	return r
}
