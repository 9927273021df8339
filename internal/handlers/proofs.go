package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pushp314/derive-duel-backend/internal/evaluator"
	"github.com/pushp314/derive-duel-backend/internal/hints"
	"github.com/pushp314/derive-duel-backend/internal/models"
	"github.com/pushp314/derive-duel-backend/internal/store"
	apperrors "github.com/pushp314/derive-duel-backend/pkg/errors"
	"github.com/pushp314/derive-duel-backend/pkg/logger"
	"github.com/pushp314/derive-duel-backend/pkg/utils"
)

const proofListTTL = 60 * time.Second

// ListProofs handles GET /api/proofs
func (h *Handler) ListProofs(c *gin.Context) {
	filter, err := parseProofFilter(c)
	if err != nil {
		abort(c, err)
		return
	}

	ctx := c.Request.Context()
	key := store.ProofListCachePrefix + filterKey(filter)

	var cached []models.Proof
	if err := h.Cache.Get(ctx, key, &cached); err == nil {
		c.JSON(http.StatusOK, gin.H{"proofs": cached})
		return
	}

	proofs, err := h.Store.ListProofs(ctx, filter)
	if err != nil {
		abort(c, err)
		return
	}
	for i := range proofs {
		proofs[i] = proofs[i].Public()
	}

	if err := h.Cache.Set(ctx, key, proofs, proofListTTL); err != nil {
		logger.Warn().Err(err).Msg("Failed to cache proof list")
	}
	c.JSON(http.StatusOK, gin.H{"proofs": proofs})
}

// GetRandomProof handles GET /api/proofs/random
func (h *Handler) GetRandomProof(c *gin.Context) {
	proof, err := h.Store.RandomProof(c.Request.Context())
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"proof": proof.Public()})
}

// GetDailyProof handles GET /api/proofs/daily
func (h *Handler) GetDailyProof(c *gin.Context) {
	proof, err := h.Store.DailyProof(c.Request.Context(), time.Now().UTC())
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"proof": proof.Public()})
}

// GetProof handles GET /api/proofs/:id
func (h *Handler) GetProof(c *gin.Context) {
	proof, err := h.Store.GetProof(c.Request.Context(), c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"proof": proof.Public()})
}

// ListSubmissions handles GET /api/proofs/:id/submissions
func (h *Handler) ListSubmissions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	subs, err := h.Store.ListSubmissions(c.Request.Context(), c.Param("id"), strings.TrimSpace(c.Query("userName")), limit)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"submissions": subs})
}

type solutionRequest struct {
	UserName string `json:"userName" binding:"required"`
	Solution string `json:"solution"`
}

func bindSolution(c *gin.Context, requireSolution bool) (*solutionRequest, bool) {
	var req solutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, fmt.Errorf("%w: %v", apperrors.ErrInvalidRequest, err))
		return nil, false
	}
	req.UserName = utils.CleanDisplayName(req.UserName)
	if req.UserName == "" {
		abort(c, fmt.Errorf("%w: userName is required", apperrors.ErrInvalidRequest))
		return nil, false
	}
	if requireSolution && strings.TrimSpace(req.Solution) == "" {
		abort(c, fmt.Errorf("%w: solution is required", apperrors.ErrInvalidRequest))
		return nil, false
	}
	return &req, true
}

// SubmitSolution handles POST /api/proofs/:id/submit
func (h *Handler) SubmitSolution(c *gin.Context) {
	req, ok := bindSolution(c, true)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	proof, err := h.Store.GetProof(ctx, c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}

	out := h.Evaluator.Evaluate(ctx, evaluator.EvaluationRequest{
		UserSolution:       req.Solution,
		ReferenceSolution:  proof.Content,
		MathematicianProof: proof.MathematicianProof,
		Source:             proof.SourceContext(),
		APIKey:             apiKey(c),
	})

	sub := &models.Submission{
		UserName: req.UserName,
		ProofID:  proof.ID,
		Content:  req.Solution,
		Progress: out.Result.Progress,
		Feedback: out.Result.Feedback,
	}
	fb := &models.ProofFeedback{
		IsCorrect:    out.Result.IsCorrect,
		OnRightTrack: out.Result.OnRightTrack,
		FeedbackText: out.Result.Feedback,
		Source:       string(out.Source),
	}
	if err := h.Store.CreateSubmission(ctx, sub, fb); err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"evaluation":   out.Result,
		"source":       out.Source,
		"submissionId": sub.ID,
	})
}

// RequestHint handles POST /api/proofs/:id/hint
func (h *Handler) RequestHint(c *gin.Context) {
	req, ok := bindSolution(c, false)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	proof, err := h.Store.GetProof(ctx, c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}

	used, err := h.Budget.Use(ctx, proof.ID, req.UserName)
	if err != nil {
		abort(c, err)
		return
	}

	out := h.Hints.Hint(ctx, hints.HintRequest{
		ReferenceSolution:  proof.Content,
		UserSolution:       req.Solution,
		MathematicianProof: proof.MathematicianProof,
		Source:             proof.SourceContext(),
		APIKey:             apiKey(c),
	})

	c.JSON(http.StatusOK, gin.H{
		"hint":      out.Text,
		"source":    out.Source,
		"hintsUsed": used,
		"maxHints":  h.Budget.Max(),
	})
}

// GetHintStatus handles GET /api/proofs/:id/hints
func (h *Handler) GetHintStatus(c *gin.Context) {
	userName := utils.CleanDisplayName(c.Query("userName"))
	if userName == "" {
		abort(c, fmt.Errorf("%w: userName is required", apperrors.ErrInvalidRequest))
		return
	}

	ctx := c.Request.Context()
	proof, err := h.Store.GetProof(ctx, c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}

	used := h.Budget.Used(ctx, proof.ID, userName)
	c.JSON(http.StatusOK, gin.H{
		"hintsUsed":      used,
		"maxHints":       h.Budget.Max(),
		"hintsRemaining": h.Budget.Max() - used,
	})
}

func parseProofFilter(c *gin.Context) (store.ProofFilter, error) {
	f := store.ProofFilter{
		Difficulty: models.Difficulty(strings.ToLower(c.Query("difficulty"))),
		Category:   c.Query("category"),
	}
	if f.Difficulty != "" && !f.Difficulty.Valid() {
		return f, fmt.Errorf("%w: unknown difficulty %q", apperrors.ErrInvalidRequest, f.Difficulty)
	}

	var err error
	if f.MinYear, err = queryInt(c, "minYear"); err != nil {
		return f, err
	}
	if f.MaxYear, err = queryInt(c, "maxYear"); err != nil {
		return f, err
	}
	return f, nil
}

func queryInt(c *gin.Context, name string) (*int, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", apperrors.ErrInvalidRequest, name)
	}
	return &n, nil
}

func filterKey(f store.ProofFilter) string {
	year := func(p *int) string {
		if p == nil {
			return "*"
		}
		return strconv.Itoa(*p)
	}
	return fmt.Sprintf("%s:%s:%s:%s", f.Difficulty, f.Category, year(f.MinYear), year(f.MaxYear))
}
