package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pushp314/derive-duel-backend/internal/handlers"
	"github.com/pushp314/derive-duel-backend/internal/middleware"
)

// RegisterProofRoutes sets up browsing and solo practice
func RegisterProofRoutes(r gin.IRouter, h *handlers.Handler) {
	proofs := r.Group("/proofs")
	{
		proofs.GET("", h.ListProofs)
		proofs.GET("/random", h.GetRandomProof)
		proofs.GET("/daily", h.GetDailyProof)
		proofs.GET("/:id", h.GetProof)
		proofs.GET("/:id/submissions", h.ListSubmissions)
		proofs.GET("/:id/hints", h.GetHintStatus)

		proofs.POST("/:id/submit", middleware.SubmitRateLimit(), h.SubmitSolution)
		proofs.POST("/:id/hint", middleware.HintRateLimit(), h.RequestHint)
	}
}
