package test

import (
	"net/http"

	"github.com/bestchance/orderdesk/internal/domain/model"
)

// SessionStoreStub keeps a single session in memory.
type SessionStoreStub struct {
	Session model.Session
	SaveErr error
	Saved   []model.Session
	Cleared int
}

// Load reports the stored session when it carries a token.
func (s *SessionStoreStub) Load(*http.Request) (model.Session, bool) {
	return s.Session, s.Session.Authenticated()
}

// Save records s unless SaveErr is configured.
func (s *SessionStoreStub) Save(_ http.ResponseWriter, _ *http.Request, session model.Session) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.Session = session
	s.Saved = append(s.Saved, session)
	return nil
}

// Clear forgets the stored session.
func (s *SessionStoreStub) Clear(http.ResponseWriter, *http.Request) error {
	s.Session = model.Session{}
	s.Cleared++
	return nil
}
