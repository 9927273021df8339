package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/pushp314/derive-duel-backend/internal/database"
	"github.com/pushp314/derive-duel-backend/internal/duel"
	"github.com/pushp314/derive-duel-backend/internal/evaluator"
	"github.com/pushp314/derive-duel-backend/internal/hints"
	"github.com/pushp314/derive-duel-backend/internal/services"
	"github.com/pushp314/derive-duel-backend/internal/store"
	"gorm.io/gorm"
)

// GeminiKeyHeader carries a per-request evaluator key that overrides the
// server's own
const GeminiKeyHeader = "X-Gemini-Key"

type HintProvider interface {
	Hint(ctx context.Context, req hints.HintRequest) hints.Outcome
}

// Handler holds everything the HTTP layer talks to
type Handler struct {
	DB        *gorm.DB
	Store     *store.Store
	Evaluator duel.Evaluator
	Hints     HintProvider
	Budget    *services.HintBudget
	Duels     *duel.Service
	Cache     *database.Cache
}

var _ duel.Evaluator = (*evaluator.Normalizer)(nil)

// abort hands err to ErrorHandlerMiddleware
func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func apiKey(c *gin.Context) string {
	return c.GetHeader(GeminiKeyHeader)
}
