package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tcfprep/backend/internal/engine"
	"github.com/tcfprep/backend/internal/middleware"
	"github.com/tcfprep/backend/internal/model"
	"github.com/tcfprep/backend/internal/response"
	"github.com/tcfprep/backend/internal/service"
	"github.com/tcfprep/backend/internal/validator"
)

// PracticeHandler handles the free-practice surface.
type PracticeHandler struct {
	practiceService *service.PracticeService
}

// NewPracticeHandler creates a new PracticeHandler.
func NewPracticeHandler(practiceService *service.PracticeService) *PracticeHandler {
	return &PracticeHandler{practiceService: practiceService}
}

// SetFilter godoc
// PUT /api/v1/practice/:skill/filter
// Replaces the active filter; the question list reshuffles once here.
func (h *PracticeHandler) SetFilter(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}
	skill := middleware.GetSkill(c)

	var req model.SetFilterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	view, err := h.practiceService.SetFilter(c.Request.Context(), claims.UserID, skill, req.Weight, engine.PracticeMode(req.Mode))
	if err != nil {
		failEngine(c, err)
		return
	}

	response.Success(c, http.StatusOK, view)
}

// GetCurrent godoc
// GET /api/v1/practice/:skill/current
// Returns the question under the practice cursor.
func (h *PracticeHandler) GetCurrent(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	view, err := h.practiceService.Current(claims.UserID, middleware.GetSkill(c))
	if err != nil {
		failEngine(c, err)
		return
	}

	response.Success(c, http.StatusOK, view)
}

// Navigate godoc
// POST /api/v1/practice/:skill/navigate
// Moves the cursor forward or backward with wrap-around.
func (h *PracticeHandler) Navigate(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.NavigateRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	view, err := h.practiceService.Navigate(claims.UserID, middleware.GetSkill(c), req.Direction == "next")
	if err != nil {
		failEngine(c, err)
		return
	}

	response.Success(c, http.StatusOK, view)
}

// SubmitAnswer godoc
// POST /api/v1/practice/:skill/answer
// Checks the selection and returns feedback with lifetime statistics.
func (h *PracticeHandler) SubmitAnswer(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.AnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.practiceService.SubmitAnswer(c.Request.Context(), claims.UserID, middleware.GetSkill(c), req.Alternative)
	if err != nil {
		failEngine(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}
