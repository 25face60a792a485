package model

// Session carries the caller's backend credentials.
type Session struct {
	Token    string
	Username string
}

// Authenticated reports whether the session holds a bearer token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}
