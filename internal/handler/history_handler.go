package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tcfprep/backend/internal/middleware"
	"github.com/tcfprep/backend/internal/response"
	"github.com/tcfprep/backend/internal/service"
)

// HistoryHandler serves the test history ledger.
type HistoryHandler struct {
	historyService *service.HistoryService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(historyService *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// ListHistory godoc
// GET /api/v1/history/:skill
// Returns the user's completed tests, oldest first.
func (h *HistoryHandler) ListHistory(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	entries, err := h.historyService.List(c.Request.Context(), claims.UserID, middleware.GetSkill(c))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrPersistence)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"entries": entries,
		"count":   len(entries),
	})
}
