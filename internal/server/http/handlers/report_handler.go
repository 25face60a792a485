package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bestchance/orderdesk/internal/server/http/dto"
)

// ReportHandler serves the cost analysis screen.
type ReportHandler struct {
	facade ReportFacade
}

func NewReportHandler(facade ReportFacade) *ReportHandler {
	return &ReportHandler{facade: facade}
}

// Monthly handles GET /api/reports/monthly.
func (h *ReportHandler) Monthly(c *gin.Context) {
	reports, err := h.facade.MonthlyReports(c.Request.Context(), CurrentSession(c), listQuery(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MonthlyReportsResponse{Reports: reports})
}
