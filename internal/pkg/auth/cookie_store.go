package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/sessions"

	"github.com/bestchance/orderdesk/internal/domain/model"
)

const (
	sessionName = "orderdesk_session"
	keyUsername = "username"
	keyToken    = "token"
)

var ErrEmptySecret = errors.New("session secret must not be empty")

// CookieStore keeps the operator session in an encrypted, signed cookie.
type CookieStore struct {
	store *sessions.CookieStore
}

// NewCookieStore builds CookieStore with keys derived from secret.
func NewCookieStore(secret string, opts Options) (*CookieStore, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	hashKey, blockKey, err := deriveKeys(secret)
	if err != nil {
		return nil, err
	}

	maxAge := opts.MaxAge
	if maxAge <= 0 {
		maxAge = 7 * 24 * time.Hour
	}

	cs := sessions.NewCookieStore(hashKey, blockKey)
	cs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(maxAge / time.Second),
		Secure:   opts.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	cs.MaxAge(cs.Options.MaxAge)
	return &CookieStore{store: cs}, nil
}

func (s *CookieStore) get(r *http.Request) *sessions.Session {
	// A tampered or stale cookie still yields a fresh session.
	sess, _ := s.store.Get(r, sessionName)
	return sess
}

// Load returns the session carried by the request, if any.
func (s *CookieStore) Load(r *http.Request) (model.Session, bool) {
	sess := s.get(r)
	username, _ := sess.Values[keyUsername].(string)
	token, _ := sess.Values[keyToken].(string)
	session := model.Session{Username: username, Token: token}
	if !session.Authenticated() {
		return model.Session{}, false
	}
	return session, true
}

func (s *CookieStore) Save(w http.ResponseWriter, r *http.Request, session model.Session) error {
	sess := s.get(r)
	sess.Values[keyUsername] = session.Username
	sess.Values[keyToken] = session.Token
	return sess.Save(r, w)
}

func (s *CookieStore) Clear(w http.ResponseWriter, r *http.Request) error {
	sess := s.get(r)
	delete(sess.Values, keyUsername)
	delete(sess.Values, keyToken)
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}
