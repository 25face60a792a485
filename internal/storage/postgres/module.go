package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/bestchance/orderdesk/internal/config"
	"github.com/bestchance/orderdesk/internal/domain/repository"
	"github.com/bestchance/orderdesk/internal/storage/memory"
)

// Module wires the submission ledger. PostgreSQL is used when a DSN is configured.
var Module = fx.Options(
	fx.Provide(newLedger),
)

type storageParams struct {
	fx.In

	Ctx       context.Context
	Config    *config.Config
	Logger    *slog.Logger
	Lifecycle fx.Lifecycle
}

type ledgerResult struct {
	fx.Out

	Submissions repository.SubmissionRepository
	Health      repository.HealthChecker
}

func newLedger(p storageParams) (ledgerResult, error) {
	if p.Config.DatabaseURI == "" {
		p.Logger.Info("database uri not set, submission ledger kept in memory")
		ledger := memory.NewLedger()
		return ledgerResult{Submissions: ledger, Health: ledger}, nil
	}

	storage, err := New(p.Ctx, p.Config.DatabaseURI, p.Logger)
	if err != nil {
		return ledgerResult{}, err
	}
	registerLifecycle(p.Lifecycle, storage)
	return ledgerResult{Submissions: storage.Submissions(), Health: storage}, nil
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
