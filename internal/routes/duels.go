package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pushp314/derive-duel-backend/internal/handlers"
	"github.com/pushp314/derive-duel-backend/internal/middleware"
)

// RegisterDuelRoutes sets up the two-player duel endpoints
func RegisterDuelRoutes(r gin.IRouter, h *handlers.Handler) {
	duels := r.Group("/duels")
	{
		duels.POST("", middleware.DuelRateLimit(), h.CreateDuel)
		duels.POST("/join", middleware.DuelRateLimit(), h.JoinDuel)
		duels.GET("/:id", h.GetDuel)
		duels.POST("/:id/submit", middleware.SubmitRateLimit(), h.SubmitDuelSolution)
	}
}
