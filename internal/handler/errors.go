package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tcfprep/backend/internal/engine"
	"github.com/tcfprep/backend/internal/response"
	"github.com/tcfprep/backend/internal/service"
)

// failEngine maps engine and service errors onto API error codes.
func failEngine(c *gin.Context, err error) {
	var unanswered *engine.UnansweredError
	if errors.As(err, &unanswered) {
		// Finishing with gaps must never happen silently: the count is
		// surfaced for the confirmation prompt.
		response.FailWithFields(c, http.StatusConflict, response.ErrUnansweredRemain, map[string]string{
			"unanswered_count": strconv.Itoa(unanswered.Count),
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrCatalogUnavailable):
		response.Fail(c, http.StatusServiceUnavailable, response.ErrDataUnavailable)
	case errors.Is(err, engine.ErrEmptyBucket):
		response.Fail(c, http.StatusInternalServerError, response.ErrEmptyBucket)
	case errors.Is(err, engine.ErrNoSession):
		response.Fail(c, http.StatusNotFound, response.ErrNoSession)
	case errors.Is(err, engine.ErrSessionNotReady):
		response.Fail(c, http.StatusConflict, response.ErrSessionNotReady)
	case errors.Is(err, engine.ErrSessionActive), errors.Is(err, engine.ErrSessionNotInProgress):
		response.Fail(c, http.StatusConflict, response.ErrSessionActive)
	case errors.Is(err, engine.ErrSessionFinished), errors.Is(err, engine.ErrSessionNotFinished):
		response.Fail(c, http.StatusConflict, response.ErrSessionFinished)
	case errors.Is(err, engine.ErrResultsPending):
		response.Fail(c, http.StatusConflict, response.ErrResultsPending)
	case errors.Is(err, engine.ErrInvalidPosition):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPosition)
	case errors.Is(err, engine.ErrInvalidAlternative):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidAlternative)
	case errors.Is(err, engine.ErrNoFilter):
		response.Fail(c, http.StatusNotFound, response.ErrNoFilter)
	case errors.Is(err, engine.ErrEmptyFilter):
		response.Fail(c, http.StatusConflict, response.ErrEmptyFilter)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
