package app

import (
	"context"
	"time"

	"github.com/bestchance/orderdesk/internal/domain/model"
	"github.com/bestchance/orderdesk/internal/listview"
	"github.com/bestchance/orderdesk/internal/usecase"
	"github.com/bestchance/orderdesk/internal/wizard"
)

// OrderDeskFacade exposes the console use cases to transport and workers.
type OrderDeskFacade struct {
	auth     *usecase.AuthUseCase
	catalog  *usecase.CatalogUseCase
	expenses *usecase.ExpenseUseCase
	orders   *usecase.OrderUseCase
}

func NewOrderDeskFacade(auth *usecase.AuthUseCase, catalog *usecase.CatalogUseCase, expenses *usecase.ExpenseUseCase, orders *usecase.OrderUseCase) *OrderDeskFacade {
	return &OrderDeskFacade{auth: auth, catalog: catalog, expenses: expenses, orders: orders}
}

func (f *OrderDeskFacade) Login(ctx context.Context, username, password string) (model.Session, error) {
	return f.auth.Login(ctx, username, password)
}

func (f *OrderDeskFacade) Materials(ctx context.Context, session model.Session, q usecase.ListQuery) ([]listview.SupplierGroup, error) {
	return f.catalog.Materials(ctx, session, q)
}

func (f *OrderDeskFacade) Fleets(ctx context.Context, session model.Session, q usecase.ListQuery) ([]model.FleetItem, error) {
	return f.catalog.Fleets(ctx, session, q)
}

func (f *OrderDeskFacade) Projects(ctx context.Context, session model.Session) ([]model.Project, error) {
	return f.catalog.Projects(ctx, session)
}

func (f *OrderDeskFacade) Expenses(ctx context.Context, session model.Session, projectID string, filter usecase.ExpenseFilter) (usecase.ExpenseReport, error) {
	return f.expenses.Report(ctx, session, projectID, filter)
}

func (f *OrderDeskFacade) ExportExpenses(ctx context.Context, session model.Session, projectID string, filter usecase.ExpenseFilter) (*usecase.Workbook, error) {
	return f.expenses.Export(ctx, session, projectID, filter)
}

func (f *OrderDeskFacade) AddOperationalFee(ctx context.Context, session model.Session, projectID string, fee model.OperationalFee) (usecase.Notice, error) {
	return f.expenses.AddOperationalFee(ctx, session, projectID, fee)
}

func (f *OrderDeskFacade) Submissions(ctx context.Context, projectID string) (usecase.History, error) {
	return f.orders.History(ctx, projectID)
}

func (f *OrderDeskFacade) UpdateExpensePrice(ctx context.Context, session model.Session, projectID string, update model.ExpensePriceUpdate) (usecase.Notice, error) {
	return f.expenses.UpdateExpensePrice(ctx, session, projectID, update)
}

func (f *OrderDeskFacade) MonthlyReports(ctx context.Context, session model.Session, q usecase.ListQuery) ([]model.MonthlyReport, error) {
	return f.expenses.MonthlyReports(ctx, session, q)
}

func (f *OrderDeskFacade) StartDraft(ctx context.Context, owner string, req usecase.StartRequest) (usecase.Draft, error) {
	return f.orders.Start(ctx, owner, req)
}

func (f *OrderDeskFacade) Draft(ctx context.Context, owner, id string) (usecase.Draft, error) {
	return f.orders.Get(ctx, owner, id)
}

func (f *OrderDeskFacade) DiscardDraft(ctx context.Context, owner, id string) error {
	return f.orders.Discard(ctx, owner, id)
}

func (f *OrderDeskFacade) UpdateDraft(ctx context.Context, owner, id string, patch wizard.DraftPatch) (usecase.Draft, error) {
	return f.orders.Update(ctx, owner, id, patch)
}

func (f *OrderDeskFacade) ToggleMaterial(ctx context.Context, owner, id string, item model.MaterialItem) (usecase.Draft, error) {
	return f.orders.ToggleMaterial(ctx, owner, id, item)
}

func (f *OrderDeskFacade) SetMaterialQuantity(ctx context.Context, owner, id string, item model.MaterialItem, value string) (usecase.Draft, error) {
	return f.orders.SetMaterialQuantity(ctx, owner, id, item, value)
}

func (f *OrderDeskFacade) ToggleFleet(ctx context.Context, owner, id string, item model.FleetItem) (usecase.Draft, error) {
	return f.orders.ToggleFleet(ctx, owner, id, item)
}

func (f *OrderDeskFacade) SetFleetPrice(ctx context.Context, owner, id, value string) (usecase.PriceEdit, error) {
	return f.orders.SetFleetPrice(ctx, owner, id, value)
}

func (f *OrderDeskFacade) NextStep(ctx context.Context, owner, id string) (usecase.Draft, error) {
	return f.orders.Next(ctx, owner, id)
}

func (f *OrderDeskFacade) PreviousStep(ctx context.Context, owner, id string) (usecase.Draft, error) {
	return f.orders.Back(ctx, owner, id)
}

func (f *OrderDeskFacade) ValidateDraft(ctx context.Context, owner, id string) (wizard.ValidationResult, error) {
	return f.orders.Validate(ctx, owner, id)
}

func (f *OrderDeskFacade) SubmitDraft(ctx context.Context, session model.Session, id string) (usecase.SubmitOutcome, error) {
	return f.orders.Submit(ctx, session, id)
}

func (f *OrderDeskFacade) EvictIdleDrafts(ctx context.Context, olderThan time.Time) int {
	return f.orders.EvictIdle(ctx, olderThan)
}

func (f *OrderDeskFacade) ActiveDrafts() int {
	return f.orders.ActiveDrafts()
}
