package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bestchance/orderdesk/internal/adapter/backend"
	domainErrors "github.com/bestchance/orderdesk/internal/domain/errors"
	"github.com/bestchance/orderdesk/internal/domain/model"
	"github.com/bestchance/orderdesk/internal/export"
	"github.com/bestchance/orderdesk/internal/listview"
	"github.com/bestchance/orderdesk/internal/wizard"
)

const (
	FieldExpenseName = "expense_name"
	FieldUnitPrice   = "unit_price"
	FieldGeneral     = "general"

	msgExpenseNameRequired = "請輸入費用名稱"
	msgPriceRequired       = "請輸入價格"
	msgPriceNotNumber      = "單價必須為數字"
	msgPriceNotPositive    = "單價唔可以小於或等於零"

	msgEditNameRequired  = "費用名稱不能為空"
	msgEditPriceRequired = "單價不能為空"
	msgNothingChanged    = "請先進行更改後再提交"
)

// ExpenseFilter narrows a project expense report.
type ExpenseFilter struct {
	Type   string
	Search string
	Sort   listview.SortState
}

// ExpenseReport is a filtered project report with per-group supplier row spans.
type ExpenseReport struct {
	Groups   []model.ExpenseGroup
	RowSpans [][]int
}

// Workbook is a rendered expense export.
type Workbook struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExpenseUseCase serves project expense reports and operational fee entry.
type ExpenseUseCase struct {
	client  backend.Client
	logger  *slog.Logger
	notices noticeClock
}

// NewExpenseUseCase constructs ExpenseUseCase. A nil clock falls back to time.Now.
func NewExpenseUseCase(client backend.Client, logger *slog.Logger, now func() time.Time, noticeDuration time.Duration) *ExpenseUseCase {
	if now == nil {
		now = time.Now
	}
	return &ExpenseUseCase{client: client, logger: logger, notices: noticeClock{now: now, duration: noticeDuration}}
}

// Report fetches and shapes the expense report of a project. Fetch failures yield an empty report.
func (u *ExpenseUseCase) Report(ctx context.Context, session model.Session, projectID string, f ExpenseFilter) (ExpenseReport, error) {
	groups, err := u.client.ProjectExpenses(ctx, session, projectID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrUnauthorized) {
			return ExpenseReport{}, err
		}
		u.logger.Error("expense fetch failed", slog.String("project_id", projectID), slog.Any("error", err))
		groups = nil
	}

	view := listview.ExpenseView(groups, f.Type, f.Search, f.Sort)
	spans := make([][]int, len(view))
	for i, g := range view {
		spans[i] = listview.RowSpans(g)
	}
	return ExpenseReport{Groups: view, RowSpans: spans}, nil
}

// Export renders the filtered report as an XLSX workbook.
func (u *ExpenseUseCase) Export(ctx context.Context, session model.Session, projectID string, f ExpenseFilter) (*Workbook, error) {
	report, err := u.Report(ctx, session, projectID, f)
	if err != nil {
		return nil, err
	}
	now := u.notices.now()
	data, err := export.ExpenseWorkbook(projectID, report.Groups, now)
	if err != nil {
		return nil, err
	}
	return &Workbook{Filename: export.Filename(projectID, now), ContentType: export.ContentType, Data: data}, nil
}

// ValidateFee checks a manually entered operation expense.
func ValidateFee(fee model.OperationalFee) error {
	fields := map[string]string{}
	if strings.TrimSpace(fee.ExpenseName) == "" {
		fields[FieldExpenseName] = msgExpenseNameRequired
	}

	price := strings.TrimSpace(fee.UnitPrice)
	switch {
	case price == "":
		fields[FieldUnitPrice] = msgPriceRequired
	default:
		d, err := decimal.NewFromString(price)
		if err != nil {
			fields[FieldUnitPrice] = msgPriceNotNumber
		} else if !d.IsPositive() {
			fields[FieldUnitPrice] = msgPriceNotPositive
		}
	}

	if len(fields) > 0 {
		return &wizard.ValidationError{Fields: fields}
	}
	return nil
}

// AddOperationalFee validates and forwards an operation expense. Backend failures are
// reported as a SubmissionError carrying the generic fee failure copy.
func (u *ExpenseUseCase) AddOperationalFee(ctx context.Context, session model.Session, projectID string, fee model.OperationalFee) (Notice, error) {
	if err := ValidateFee(fee); err != nil {
		return Notice{}, err
	}
	fee.UnitPrice = strings.TrimSpace(fee.UnitPrice)

	if err := u.client.AddOperationalFee(ctx, session, projectID, fee); err != nil {
		u.logger.Error("operational fee failed",
			slog.String("project_id", projectID),
			slog.String("username", session.Username),
			slog.Any("error", err),
		)
		return u.notices.notice(NoticeError, FeeFailedMessage), &wizard.SubmissionError{Message: FeeFailedMessage, Err: err}
	}
	return u.notices.notice(NoticeSuccess, FeeAddedMessage), nil
}

// ValidateExpenseEdit checks a corrected expense line. Blank or non-numeric prices
// share one message.
func ValidateExpenseEdit(update model.ExpensePriceUpdate) error {
	fields := map[string]string{}
	if strings.TrimSpace(update.ExpenseName) == "" {
		fields[FieldExpenseName] = msgEditNameRequired
	}
	d, err := decimal.NewFromString(strings.TrimSpace(update.UnitPrice))
	switch {
	case err != nil:
		fields[FieldUnitPrice] = msgEditPriceRequired
	case !d.IsPositive():
		fields[FieldUnitPrice] = msgPriceNotPositive
	}
	if len(fields) > 0 {
		return &wizard.ValidationError{Fields: fields}
	}
	return nil
}

// UpdateExpensePrice corrects the name and unit price of one line of a project's
// expense report. The line must exist and the edit must change something; when the
// report cannot be read those checks are left to the backend.
func (u *ExpenseUseCase) UpdateExpensePrice(ctx context.Context, session model.Session, projectID string, update model.ExpensePriceUpdate) (Notice, error) {
	if err := ValidateExpenseEdit(update); err != nil {
		return Notice{}, err
	}
	update.ExpenseName = strings.TrimSpace(update.ExpenseName)
	update.UnitPrice = strings.TrimSpace(update.UnitPrice)

	groups, err := u.client.ProjectExpenses(ctx, session, projectID)
	switch {
	case errors.Is(err, domainErrors.ErrUnauthorized):
		return Notice{}, err
	case err != nil:
		u.logger.Warn("expense lookup failed", slog.String("project_id", projectID), slog.Any("error", err))
	default:
		current, ok := findExpense(groups, update.ExpenseID)
		if !ok {
			return Notice{}, fmt.Errorf("expense %s: %w", update.ExpenseID, domainErrors.ErrNotFound)
		}
		if unchanged(current, update) {
			return Notice{}, &wizard.ValidationError{Fields: map[string]string{FieldGeneral: msgNothingChanged}}
		}
	}

	if err := u.client.UpdateExpensePrice(ctx, session, update); err != nil {
		u.logger.Error("expense update failed",
			slog.String("project_id", projectID),
			slog.String("expense_id", update.ExpenseID),
			slog.String("username", session.Username),
			slog.Any("error", err),
		)
		return u.notices.notice(NoticeError, ExpenseUpdateFailedMessage), &wizard.SubmissionError{Message: ExpenseUpdateFailedMessage, Err: err}
	}
	return u.notices.notice(NoticeSuccess, ExpenseUpdatedMessage), nil
}

// MonthlyReports lists the monthly cost reports. Fetch failures yield an empty list.
func (u *ExpenseUseCase) MonthlyReports(ctx context.Context, session model.Session, q ListQuery) ([]model.MonthlyReport, error) {
	reports, err := u.client.MonthlyReports(ctx, session)
	if err != nil {
		if errors.Is(err, domainErrors.ErrUnauthorized) {
			return nil, err
		}
		u.logger.Error("monthly reports fetch failed", slog.Any("error", err))
		reports = nil
	}
	if reports == nil {
		reports = []model.MonthlyReport{}
	}
	return listview.SortMonthly(listview.FilterMonthly(reports, q.Search), q.Sort), nil
}

func findExpense(groups []model.ExpenseGroup, id string) (model.ExpenseRecord, bool) {
	for _, g := range groups {
		for _, s := range g.Suppliers {
			for _, r := range s.Records {
				if r.ID == id {
					return r, true
				}
			}
		}
	}
	return model.ExpenseRecord{}, false
}

func unchanged(current model.ExpenseRecord, update model.ExpensePriceUpdate) bool {
	if update.ExpenseName != current.ExpenseName {
		return false
	}
	was, err := decimal.NewFromString(strings.TrimSpace(current.UnitPrice))
	if err != nil {
		return false
	}
	return was.Equal(decimal.RequireFromString(update.UnitPrice))
}
