package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tcfprep/backend/internal/middleware"
	"github.com/tcfprep/backend/internal/model"
	"github.com/tcfprep/backend/internal/response"
	"github.com/tcfprep/backend/internal/service"
	"github.com/tcfprep/backend/internal/validator"
)

// TestHandler handles the timed real-test surface.
type TestHandler struct {
	testService *service.TestService
}

// NewTestHandler creates a new TestHandler.
func NewTestHandler(testService *service.TestService) *TestHandler {
	return &TestHandler{testService: testService}
}

// Start godoc
// POST /api/v1/test/:skill/start
// Assembles a session pool and enters PREPARING.
func (h *TestHandler) Start(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.StartTestRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	view, err := h.testService.Start(c.Request.Context(), claims.UserID, middleware.GetSkill(c), req.DiscardPrevious)
	if err != nil {
		failEngine(c, err)
		return
	}

	response.Success(c, http.StatusCreated, view)
}

// Confirm godoc
// POST /api/v1/test/:skill/confirm
// Commits the prepared session once the pacing delay elapsed.
func (h *TestHandler) Confirm(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	view, err := h.testService.Confirm(c.Request.Context(), claims.UserID, middleware.GetSkill(c))
	if err != nil {
		failEngine(c, err)
		return
	}

	response.Success(c, http.StatusOK, view)
}

// GetState godoc
// GET /api/v1/test/:skill/state
// Returns the live session, restoring from the crash snapshot if needed.
// This covers page reloads: the frontend gets the answered set, cursor,
// and the current question back.
func (h *TestHandler) GetState(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	view, err := h.testService.State(c.Request.Context(), claims.UserID, middleware.GetSkill(c))
	if err != nil {
		failEngine(c, err)
		return
	}

	response.Success(c, http.StatusOK, view)
}

// SubmitAnswer godoc
// POST /api/v1/test/:skill/answer
// Records the selection on the current question; the cursor advances to
// the next unanswered question, wrapping past the end.
func (h *TestHandler) SubmitAnswer(c *gin.Context) {
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

	result, err := h.testService.Submit(c.Request.Context(), claims.UserID, middleware.GetSkill(c), req.Alternative)
	if err != nil {
		failEngine(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Jump godoc
// POST /api/v1/test/:skill/jump
// Moves the cursor to an arbitrary position (free navigation).
func (h *TestHandler) Jump(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.JumpRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	view, err := h.testService.Jump(c.Request.Context(), claims.UserID, middleware.GetSkill(c), req.Position)
	if err != nil {
		failEngine(c, err)
		return
	}

	response.Success(c, http.StatusOK, view)
}

// Finish godoc
// POST /api/v1/test/:skill/finish
// Freezes and scores the session. With unanswered questions remaining
// the request must carry the acknowledgement flag, otherwise it fails
// naming the gap count.
func (h *TestHandler) Finish(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.FinishTestRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.testService.Finish(c.Request.Context(), claims.UserID, middleware.GetSkill(c), req.AcknowledgeUnanswered)
	if err != nil {
		failEngine(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Abandon godoc
// DELETE /api/v1/test/:skill
// Drops the session without scoring; nothing reaches the history ledger.
func (h *TestHandler) Abandon(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.testService.Abandon(c.Request.Context(), claims.UserID, middleware.GetSkill(c)); err != nil {
		failEngine(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "abandoned"})
}
