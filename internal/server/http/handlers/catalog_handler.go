package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the list views the wizard picks from.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// Materials handles GET /api/catalog/materials.
func (h *CatalogHandler) Materials(c *gin.Context) {
	groups, err := h.facade.Materials(c.Request.Context(), CurrentSession(c), listQuery(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

// Fleets handles GET /api/catalog/fleets.
func (h *CatalogHandler) Fleets(c *gin.Context) {
	fleets, err := h.facade.Fleets(c.Request.Context(), CurrentSession(c), listQuery(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, fleets)
}

// Projects handles GET /api/projects.
func (h *CatalogHandler) Projects(c *gin.Context) {
	projects, err := h.facade.Projects(c.Request.Context(), CurrentSession(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}
