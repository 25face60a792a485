package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bestchance/orderdesk/internal/domain/model"
	"github.com/bestchance/orderdesk/internal/server/http/dto"
)

// ProjectHandler manages project expense and ledger endpoints.
type ProjectHandler struct {
	facade ProjectFacade
}

// NewProjectHandler constructs ProjectHandler.
func NewProjectHandler(facade ProjectFacade) *ProjectHandler {
	return &ProjectHandler{facade: facade}
}

// Expenses handles GET /api/projects/:projectID/expenses.
func (h *ProjectHandler) Expenses(c *gin.Context) {
	projectID := c.Param("projectID")
	report, err := h.facade.Expenses(c.Request.Context(), CurrentSession(c), projectID, expenseFilter(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ExpenseReportResponse{
		ProjectID: projectID,
		Groups:    report.Groups,
		RowSpans:  report.RowSpans,
	})
}

// Export handles GET /api/projects/:projectID/expenses/export.
func (h *ProjectHandler) Export(c *gin.Context) {
	wb, err := h.facade.ExportExpenses(c.Request.Context(), CurrentSession(c), c.Param("projectID"), expenseFilter(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", wb.Filename))
	c.Data(http.StatusOK, wb.ContentType, wb.Data)
}

// AddFee handles POST /api/projects/:projectID/operational-fees.
func (h *ProjectHandler) AddFee(c *gin.Context) {
	var fee model.OperationalFee
	if err := c.ShouldBindJSON(&fee); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	notice, err := h.facade.AddOperationalFee(c.Request.Context(), CurrentSession(c), c.Param("projectID"), fee)
	if err != nil {
		writeSubmissionError(c, err, notice)
		return
	}
	c.JSON(http.StatusCreated, dto.NoticeResponse{Notice: notice})
}

// Submissions handles GET /api/projects/:projectID/submissions.
func (h *ProjectHandler) Submissions(c *gin.Context) {
	projectID := c.Param("projectID")
	history, err := h.facade.Submissions(c.Request.Context(), projectID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSubmissionHistory(projectID, history))
}

// UpdateExpense handles PUT /api/projects/:projectID/expenses/:expenseID.
func (h *ProjectHandler) UpdateExpense(c *gin.Context) {
	var req dto.ExpenseUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	update := model.ExpensePriceUpdate{
		ExpenseID:   c.Param("expenseID"),
		ExpenseName: req.ExpenseName,
		UnitPrice:   req.UnitPrice,
	}
	notice, err := h.facade.UpdateExpensePrice(c.Request.Context(), CurrentSession(c), c.Param("projectID"), update)
	if err != nil {
		writeSubmissionError(c, err, notice)
		return
	}
	c.JSON(http.StatusOK, dto.NoticeResponse{Notice: notice})
}
