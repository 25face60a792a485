package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/bestchance/orderdesk/internal/adapter/backend"
	"github.com/bestchance/orderdesk/internal/config"
	"github.com/bestchance/orderdesk/internal/domain/repository"
	"github.com/bestchance/orderdesk/internal/metrics"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewCatalogUseCase,
	newExpenseUseCase,
	newOrderUseCase,
)

type expenseParams struct {
	fx.In

	Client backend.Client
	Config *config.Config
	Logger *slog.Logger
}

func newExpenseUseCase(p expenseParams) *ExpenseUseCase {
	return NewExpenseUseCase(p.Client, p.Logger, nil, p.Config.NoticeDuration)
}

type orderParams struct {
	fx.In

	Drafts      repository.DraftRepository
	Submissions repository.SubmissionRepository
	Client      backend.Client
	Config      *config.Config
	Logger      *slog.Logger
	Metrics     *metrics.Metrics `optional:"true"`
}

func newOrderUseCase(p orderParams) *OrderUseCase {
	opts := OrderOptions{
		Location:       p.Config.Location,
		NoticeDuration: p.Config.NoticeDuration,
		HistoryLimit:   p.Config.HistoryLimit,
	}
	if p.Metrics != nil {
		opts.Observer = p.Metrics
	}
	return NewOrderUseCase(p.Drafts, p.Submissions, p.Client, p.Logger, opts)
}
