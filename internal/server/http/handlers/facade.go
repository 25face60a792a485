package handlers

import (
	"context"

	"github.com/bestchance/orderdesk/internal/domain/model"
	"github.com/bestchance/orderdesk/internal/listview"
	"github.com/bestchance/orderdesk/internal/usecase"
	"github.com/bestchance/orderdesk/internal/wizard"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Login(ctx context.Context, username, password string) (model.Session, error)
}

// CatalogFacade serves the selectable materials, fleets and projects.
type CatalogFacade interface {
	Materials(ctx context.Context, session model.Session, q usecase.ListQuery) ([]listview.SupplierGroup, error)
	Fleets(ctx context.Context, session model.Session, q usecase.ListQuery) ([]model.FleetItem, error)
	Projects(ctx context.Context, session model.Session) ([]model.Project, error)
}

// ProjectFacade provides per-project reports and fee entry.
type ProjectFacade interface {
	Expenses(ctx context.Context, session model.Session, projectID string, filter usecase.ExpenseFilter) (usecase.ExpenseReport, error)
	ExportExpenses(ctx context.Context, session model.Session, projectID string, filter usecase.ExpenseFilter) (*usecase.Workbook, error)
	AddOperationalFee(ctx context.Context, session model.Session, projectID string, fee model.OperationalFee) (usecase.Notice, error)
	Submissions(ctx context.Context, projectID string) (usecase.History, error)
	UpdateExpensePrice(ctx context.Context, session model.Session, projectID string, update model.ExpensePriceUpdate) (usecase.Notice, error)
}

// ReportFacade serves cross-project cost reports.
type ReportFacade interface {
	MonthlyReports(ctx context.Context, session model.Session, q usecase.ListQuery) ([]model.MonthlyReport, error)
}

// DraftFacade drives the order wizard.
type DraftFacade interface {
	StartDraft(ctx context.Context, owner string, req usecase.StartRequest) (usecase.Draft, error)
	Draft(ctx context.Context, owner, id string) (usecase.Draft, error)
	DiscardDraft(ctx context.Context, owner, id string) error
	UpdateDraft(ctx context.Context, owner, id string, patch wizard.DraftPatch) (usecase.Draft, error)
	ToggleMaterial(ctx context.Context, owner, id string, item model.MaterialItem) (usecase.Draft, error)
	SetMaterialQuantity(ctx context.Context, owner, id string, item model.MaterialItem, value string) (usecase.Draft, error)
	ToggleFleet(ctx context.Context, owner, id string, item model.FleetItem) (usecase.Draft, error)
	SetFleetPrice(ctx context.Context, owner, id, value string) (usecase.PriceEdit, error)
	NextStep(ctx context.Context, owner, id string) (usecase.Draft, error)
	PreviousStep(ctx context.Context, owner, id string) (usecase.Draft, error)
	ValidateDraft(ctx context.Context, owner, id string) (wizard.ValidationResult, error)
	SubmitDraft(ctx context.Context, session model.Session, id string) (usecase.SubmitOutcome, error)
}

// OrderDeskFacade aggregates the full set of operations used across handlers.
type OrderDeskFacade interface {
	AuthFacade
	CatalogFacade
	ProjectFacade
	ReportFacade
	DraftFacade
}
