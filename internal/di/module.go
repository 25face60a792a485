package di

import (
	"go.uber.org/fx"

	"github.com/bestchance/orderdesk/internal/adapter/backend"
	"github.com/bestchance/orderdesk/internal/app"
	"github.com/bestchance/orderdesk/internal/config"
	"github.com/bestchance/orderdesk/internal/logger"
	"github.com/bestchance/orderdesk/internal/metrics"
	"github.com/bestchance/orderdesk/internal/pkg/auth"
	"github.com/bestchance/orderdesk/internal/server/http/handlers"
	"github.com/bestchance/orderdesk/internal/server/http/router"
	"github.com/bestchance/orderdesk/internal/storage/memory"
	"github.com/bestchance/orderdesk/internal/storage/postgres"
	"github.com/bestchance/orderdesk/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		metrics.Module,
		auth.Module,
		memory.Module,
		postgres.Module,
		backend.Module,
		usecase.Module,
		fx.Provide(func(f *app.OrderDeskFacade) handlers.OrderDeskFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
