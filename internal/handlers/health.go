package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health handles GET /health with database and redis checks
func (h *Handler) Health(c *gin.Context) {
	dbStatus := "ok"
	sqlDB, err := h.DB.DB()
	if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		dbStatus = "error"
	}

	redisStatus := h.Cache.Ping(c.Request.Context())

	status := "ok"
	if dbStatus != "ok" || redisStatus == "error" {
		status = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  status,
		"message": "Derive Duel backend is running",
		"checks": gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		},
	})
}
