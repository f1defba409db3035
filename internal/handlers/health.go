package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	apperrors "github.com/RazanRezq/munjiz/pkg/errors"
	"github.com/RazanRezq/munjiz/pkg/response"
)

// HealthHandler reports service liveness and database reachability.
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		appErr := apperrors.New("SERVICE_UNAVAILABLE", "database unreachable", http.StatusServiceUnavailable).WithInternal(err)
		response.Error(c, appErr)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "ok"})
}
