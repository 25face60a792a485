package dto

// LoginRequest describes operator credentials.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionResponse identifies the signed-in operator.
type SessionResponse struct {
	Username string `json:"username"`
}
