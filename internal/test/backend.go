package test

import (
	"context"
	"sync"

	"github.com/bestchance/orderdesk/internal/domain/model"
)

// BackendStub implements backend.Client with canned data and optional overrides.
type BackendStub struct {
	TokenFn  func(ctx context.Context, username, password string) (string, error)
	SubmitFn func(ctx context.Context, session model.Session, req model.OrderRequest) (*model.OrderReceipt, error)
	FeeFn    func(ctx context.Context, session model.Session, projectID string, fee model.OperationalFee) error
	UpdateFn func(ctx context.Context, session model.Session, update model.ExpensePriceUpdate) error

	MaterialList []model.MaterialItem
	MaterialErr  error
	FleetList    []model.FleetItem
	FleetErr     error
	ProjectList  []model.Project
	ProjectErr   error
	Expenses     []model.ExpenseGroup
	ExpenseErr   error
	Monthly      []model.MonthlyReport
	MonthlyErr   error

	mu        sync.Mutex
	Submitted []model.OrderRequest
	Fees      []model.OperationalFee
	Updates   []model.ExpensePriceUpdate
	Sessions  []model.Session
}

func (s *BackendStub) track(session model.Session) {
	s.mu.Lock()
	s.Sessions = append(s.Sessions, session)
	s.mu.Unlock()
}

// Token returns "token-<username>" unless overridden.
func (s *BackendStub) Token(ctx context.Context, username, password string) (string, error) {
	if s.TokenFn != nil {
		return s.TokenFn(ctx, username, password)
	}
	return "token-" + username, nil
}

func (s *BackendStub) Materials(_ context.Context, session model.Session) ([]model.MaterialItem, error) {
	s.track(session)
	return s.MaterialList, s.MaterialErr
}

func (s *BackendStub) Fleets(_ context.Context, session model.Session) ([]model.FleetItem, error) {
	s.track(session)
	return s.FleetList, s.FleetErr
}

func (s *BackendStub) Projects(_ context.Context, session model.Session) ([]model.Project, error) {
	s.track(session)
	return s.ProjectList, s.ProjectErr
}

func (s *BackendStub) ProjectExpenses(_ context.Context, session model.Session, _ string) ([]model.ExpenseGroup, error) {
	s.track(session)
	return s.Expenses, s.ExpenseErr
}

// SubmitOrder records the request and returns receipt "order-1" unless overridden.
func (s *BackendStub) SubmitOrder(ctx context.Context, session model.Session, req model.OrderRequest) (*model.OrderReceipt, error) {
	s.track(session)
	s.mu.Lock()
	s.Submitted = append(s.Submitted, req)
	s.mu.Unlock()
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, session, req)
	}
	return &model.OrderReceipt{ID: "order-1", Response: `{"id":"order-1"}`}, nil
}

func (s *BackendStub) AddOperationalFee(ctx context.Context, session model.Session, projectID string, fee model.OperationalFee) error {
	s.track(session)
	s.mu.Lock()
	s.Fees = append(s.Fees, fee)
	s.mu.Unlock()
	if s.FeeFn != nil {
		return s.FeeFn(ctx, session, projectID, fee)
	}
	return nil
}

func (s *BackendStub) UpdateExpensePrice(ctx context.Context, session model.Session, update model.ExpensePriceUpdate) error {
	s.track(session)
	s.mu.Lock()
	s.Updates = append(s.Updates, update)
	s.mu.Unlock()
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, session, update)
	}
	return nil
}

func (s *BackendStub) MonthlyReports(_ context.Context, session model.Session) ([]model.MonthlyReport, error) {
	s.track(session)
	return s.Monthly, s.MonthlyErr
}
