package dto

import (
	"encoding/json"
	"time"

	"github.com/bestchance/orderdesk/internal/domain/model"
)

// ExpenseReportResponse is a grouped project report. RowSpans[i][j] is the number of
// rows supplier j of group i spans.
type ExpenseReportResponse struct {
	ProjectID string               `json:"project_id"`
	Groups    []model.ExpenseGroup `json:"groups"`
	RowSpans  [][]int              `json:"row_spans"`
}

// SubmissionResponse is one submission ledger entry.
type SubmissionResponse struct {
	ID          string          `json:"id"`
	Flow        model.Flow      `json:"flow"`
	Username    string          `json:"username"`
	Succeeded   bool            `json:"succeeded"`
	Response    string          `json:"response,omitempty"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	SubmittedAt time.Time       `json:"submitted_at"`
}

// SubmissionHistoryResponse lists a project's submission attempts.
type SubmissionHistoryResponse struct {
	ProjectID       string               `json:"project_id"`
	Attempts        int                  `json:"attempts"`
	Successes       int                  `json:"successes"`
	LastSubmittedAt *time.Time           `json:"last_submitted_at,omitempty"`
	Items           []SubmissionResponse `json:"items"`
}

// ExpenseUpdateRequest corrects one expense line.
type ExpenseUpdateRequest struct {
	ExpenseName string `json:"expense_name"`
	UnitPrice   string `json:"unit_price"`
}

// MonthlyReportsResponse lists monthly cost reports.
type MonthlyReportsResponse struct {
	Reports []model.MonthlyReport `json:"reports"`
}
