package facades

import (
	"context"

	"github.com/bestchance/orderdesk/internal/domain/model"
	"github.com/bestchance/orderdesk/internal/listview"
	"github.com/bestchance/orderdesk/internal/usecase"
	"github.com/bestchance/orderdesk/internal/wizard"
)

// AuthFacadeStub provides configurable login behaviour.
type AuthFacadeStub struct {
	LoginFn func(context.Context, string, string) (model.Session, error)
}

// Login returns a session for username unless overridden.
func (s AuthFacadeStub) Login(ctx context.Context, username, password string) (model.Session, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, username, password)
	}
	return model.Session{Username: username, Token: "token-" + username}, nil
}

// CatalogFacadeStub serves canned catalog data.
type CatalogFacadeStub struct {
	Groups      []listview.SupplierGroup
	FleetsFn    func(context.Context, model.Session, usecase.ListQuery) ([]model.FleetItem, error)
	ProjectList []model.Project
	Err         error
}

func (s CatalogFacadeStub) Materials(context.Context, model.Session, usecase.ListQuery) ([]listview.SupplierGroup, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Groups == nil {
		return []listview.SupplierGroup{}, nil
	}
	return s.Groups, nil
}

func (s CatalogFacadeStub) Fleets(ctx context.Context, session model.Session, q usecase.ListQuery) ([]model.FleetItem, error) {
	if s.FleetsFn != nil {
		return s.FleetsFn(ctx, session, q)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return []model.FleetItem{}, nil
}

func (s CatalogFacadeStub) Projects(context.Context, model.Session) ([]model.Project, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.ProjectList == nil {
		return []model.Project{}, nil
	}
	return s.ProjectList, nil
}

// ProjectFacadeStub simulates expense reports, fee entry and the ledger.
type ProjectFacadeStub struct {
	ExpensesFn    func(context.Context, model.Session, string, usecase.ExpenseFilter) (usecase.ExpenseReport, error)
	ExportFn      func(context.Context, model.Session, string, usecase.ExpenseFilter) (*usecase.Workbook, error)
	FeeFn         func(context.Context, model.Session, string, model.OperationalFee) (usecase.Notice, error)
	SubmissionsFn func(context.Context, string) (usecase.History, error)
	UpdateFn      func(context.Context, model.Session, string, model.ExpensePriceUpdate) (usecase.Notice, error)
}

func (s ProjectFacadeStub) Expenses(ctx context.Context, session model.Session, projectID string, f usecase.ExpenseFilter) (usecase.ExpenseReport, error) {
	if s.ExpensesFn != nil {
		return s.ExpensesFn(ctx, session, projectID, f)
	}
	return usecase.ExpenseReport{Groups: []model.ExpenseGroup{}, RowSpans: [][]int{}}, nil
}

func (s ProjectFacadeStub) ExportExpenses(ctx context.Context, session model.Session, projectID string, f usecase.ExpenseFilter) (*usecase.Workbook, error) {
	if s.ExportFn != nil {
		return s.ExportFn(ctx, session, projectID, f)
	}
	return &usecase.Workbook{Filename: "expenses-" + projectID + ".xlsx", ContentType: "application/octet-stream", Data: []byte("xlsx")}, nil
}

func (s ProjectFacadeStub) AddOperationalFee(ctx context.Context, session model.Session, projectID string, fee model.OperationalFee) (usecase.Notice, error) {
	if s.FeeFn != nil {
		return s.FeeFn(ctx, session, projectID, fee)
	}
	return usecase.Notice{Kind: usecase.NoticeSuccess, Message: usecase.FeeAddedMessage}, nil
}

func (s ProjectFacadeStub) Submissions(ctx context.Context, projectID string) (usecase.History, error) {
	if s.SubmissionsFn != nil {
		return s.SubmissionsFn(ctx, projectID)
	}
	return usecase.History{Summary: model.SubmissionSummary{ProjectID: projectID}}, nil
}

func (s ProjectFacadeStub) UpdateExpensePrice(ctx context.Context, session model.Session, projectID string, update model.ExpensePriceUpdate) (usecase.Notice, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, session, projectID, update)
	}
	return usecase.Notice{Kind: usecase.NoticeSuccess, Message: usecase.ExpenseUpdatedMessage}, nil
}

// ReportFacadeStub serves canned monthly reports.
type ReportFacadeStub struct {
	MonthlyFn func(context.Context, model.Session, usecase.ListQuery) ([]model.MonthlyReport, error)
}

func (s ReportFacadeStub) MonthlyReports(ctx context.Context, session model.Session, q usecase.ListQuery) ([]model.MonthlyReport, error) {
	if s.MonthlyFn != nil {
		return s.MonthlyFn(ctx, session, q)
	}
	return []model.MonthlyReport{}, nil
}

// DraftFacadeStub hands out a single combined draft "d1" for project "P1" unless
// an override is set.
type DraftFacadeStub struct {
	StartFn    func(context.Context, string, usecase.StartRequest) (usecase.Draft, error)
	MutateFn   func(op, owner, id string) (usecase.Draft, error)
	PriceFn    func(context.Context, string, string, string) (usecase.PriceEdit, error)
	ValidateFn func(context.Context, string, string) (wizard.ValidationResult, error)
	SubmitFn   func(context.Context, model.Session, string) (usecase.SubmitOutcome, error)
	DiscardErr error
}

// NewStubDraft returns an empty draft for tests.
func NewStubDraft(id string, flow model.Flow) usecase.Draft {
	d, _ := wizard.NewDraft("P1", flow)
	return usecase.Draft{ID: id, Draft: d}
}

func (s DraftFacadeStub) mutate(op, owner, id string) (usecase.Draft, error) {
	if s.MutateFn != nil {
		return s.MutateFn(op, owner, id)
	}
	return NewStubDraft(id, model.FlowCombined), nil
}

func (s DraftFacadeStub) StartDraft(ctx context.Context, owner string, req usecase.StartRequest) (usecase.Draft, error) {
	if s.StartFn != nil {
		return s.StartFn(ctx, owner, req)
	}
	return NewStubDraft("d1", req.Flow), nil
}

func (s DraftFacadeStub) Draft(_ context.Context, owner, id string) (usecase.Draft, error) {
	return s.mutate("get", owner, id)
}

func (s DraftFacadeStub) DiscardDraft(context.Context, string, string) error {
	return s.DiscardErr
}

func (s DraftFacadeStub) UpdateDraft(_ context.Context, owner, id string, _ wizard.DraftPatch) (usecase.Draft, error) {
	return s.mutate("update", owner, id)
}

func (s DraftFacadeStub) ToggleMaterial(_ context.Context, owner, id string, _ model.MaterialItem) (usecase.Draft, error) {
	return s.mutate("toggle_material", owner, id)
}

func (s DraftFacadeStub) SetMaterialQuantity(_ context.Context, owner, id string, _ model.MaterialItem, _ string) (usecase.Draft, error) {
	return s.mutate("quantity", owner, id)
}

func (s DraftFacadeStub) ToggleFleet(_ context.Context, owner, id string, _ model.FleetItem) (usecase.Draft, error) {
	return s.mutate("toggle_fleet", owner, id)
}

func (s DraftFacadeStub) SetFleetPrice(ctx context.Context, owner, id, value string) (usecase.PriceEdit, error) {
	if s.PriceFn != nil {
		return s.PriceFn(ctx, owner, id, value)
	}
	return usecase.PriceEdit{Draft: NewStubDraft(id, model.FlowCombined), Accepted: true}, nil
}

func (s DraftFacadeStub) NextStep(_ context.Context, owner, id string) (usecase.Draft, error) {
	return s.mutate("next", owner, id)
}

func (s DraftFacadeStub) PreviousStep(_ context.Context, owner, id string) (usecase.Draft, error) {
	return s.mutate("back", owner, id)
}

func (s DraftFacadeStub) ValidateDraft(ctx context.Context, owner, id string) (wizard.ValidationResult, error) {
	if s.ValidateFn != nil {
		return s.ValidateFn(ctx, owner, id)
	}
	return wizard.ValidationResult{Valid: true}, nil
}

func (s DraftFacadeStub) SubmitDraft(ctx context.Context, session model.Session, id string) (usecase.SubmitOutcome, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, session, id)
	}
	return usecase.SubmitOutcome{
		Receipt:  &model.OrderReceipt{ID: "order-1"},
		Notice:   usecase.Notice{Kind: usecase.NoticeSuccess, Message: usecase.OrderPlacedMessage},
		Redirect: usecase.EntryPath(model.FlowCombined, "P1"),
	}, nil
}

// OrderDeskFacadeStub composes all facade stubs.
type OrderDeskFacadeStub struct {
	AuthFacadeStub
	CatalogFacadeStub
	ProjectFacadeStub
	ReportFacadeStub
	DraftFacadeStub
}
