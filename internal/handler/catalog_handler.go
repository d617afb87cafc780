package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tcfprep/backend/internal/engine"
	"github.com/tcfprep/backend/internal/middleware"
	"github.com/tcfprep/backend/internal/model"
	"github.com/tcfprep/backend/internal/response"
	"github.com/tcfprep/backend/internal/service"
)

// CatalogHandler serves the sanitized question catalog.
type CatalogHandler struct {
	catalogService *service.CatalogService
	catalogs       map[model.Skill]*engine.Catalog
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService *service.CatalogService, catalogs map[model.Skill]*engine.Catalog) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		catalogs:       catalogs,
	}
}

// GetCatalog godoc
// GET /api/v1/catalog/:skill
// Returns the skill's question catalog with correct-answer flags stripped.
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	skill := middleware.GetSkill(c)

	payload, err := h.catalogService.GetCatalogPayload(c.Request.Context(), h.catalogs[skill], skill)
	if err != nil {
		failEngine(c, err)
		return
	}

	response.Success(c, http.StatusOK, payload)
}
