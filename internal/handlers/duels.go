package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pushp314/derive-duel-backend/internal/duel"
	apperrors "github.com/pushp314/derive-duel-backend/pkg/errors"
)

// CreateDuel handles POST /api/duels
func (h *Handler) CreateDuel(c *gin.Context) {
	var req struct {
		CreatorName string `json:"creatorName" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, fmt.Errorf("%w: %v", apperrors.ErrInvalidRequest, err))
		return
	}

	ticket, err := h.Duels.Create(c.Request.Context(), req.CreatorName)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, ticket)
}

// JoinDuel handles POST /api/duels/join
func (h *Handler) JoinDuel(c *gin.Context) {
	var req struct {
		Code         string `json:"code" binding:"required"`
		OpponentName string `json:"opponentName" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, fmt.Errorf("%w: %v", apperrors.ErrInvalidRequest, err))
		return
	}

	ticket, err := h.Duels.Join(c.Request.Context(), req.Code, req.OpponentName)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// GetDuel handles GET /api/duels/:id
func (h *Handler) GetDuel(c *gin.Context) {
	d, err := h.Duels.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}

	resp := gin.H{"duel": d}
	// the proof is revealed once the duel starts
	if d.OpponentName != nil {
		if proof, err := h.Store.GetProof(c.Request.Context(), d.ProofID); err == nil {
			resp["proof"] = proof.Public()
		}
	}
	c.JSON(http.StatusOK, resp)
}

// SubmitDuelSolution handles POST /api/duels/:id/submit
func (h *Handler) SubmitDuelSolution(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Token    string `json:"token"`
		Solution string `json:"solution" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, fmt.Errorf("%w: %v", apperrors.ErrInvalidRequest, err))
		return
	}
	if req.Name == "" && req.Token == "" {
		abort(c, fmt.Errorf("%w: name or token is required", apperrors.ErrInvalidRequest))
		return
	}

	res, err := h.Duels.Submit(c.Request.Context(), duel.SubmitInput{
		DuelID:   c.Param("id"),
		Name:     req.Name,
		Token:    req.Token,
		Solution: req.Solution,
		APIKey:   apiKey(c),
	})
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
