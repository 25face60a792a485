package auth

import (
	"go.uber.org/fx"

	"github.com/bestchance/orderdesk/internal/config"
)

// Module provides the session store via fx.
var Module = fx.Options(
	fx.Provide(newSessionStore),
)

type storeParams struct {
	fx.In

	Config *config.Config
}

func newSessionStore(p storeParams) (SessionStore, error) {
	return NewCookieStore(p.Config.SessionSecret, Options{
		MaxAge: p.Config.SessionMaxAge,
		Secure: p.Config.SecureCookies,
	})
}
