package auth

import (
	"net/http"
	"time"

	"github.com/bestchance/orderdesk/internal/domain/model"
)

// SessionStore persists the authenticated operator between requests.
type SessionStore interface {
	Load(r *http.Request) (model.Session, bool)
	Save(w http.ResponseWriter, r *http.Request, s model.Session) error
	Clear(w http.ResponseWriter, r *http.Request) error
}

type Options struct {
	MaxAge time.Duration
	Secure bool
}
