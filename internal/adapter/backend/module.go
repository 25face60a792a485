package backend

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/bestchance/orderdesk/internal/config"
	"github.com/bestchance/orderdesk/internal/metrics"
)

// Module exposes the REST backend client to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics `optional:"true"`
}

func newClient(p clientParams) (Client, error) {
	var observer Observer
	if p.Metrics != nil {
		observer = p.Metrics
	}
	creds := Credentials{ClientID: p.Config.BackendClientID, ClientSecret: p.Config.BackendClientSecret}
	return NewHTTPClient(p.Config.BackendAddress, p.Config.RequestTimeout, creds, observer, p.Logger)
}
