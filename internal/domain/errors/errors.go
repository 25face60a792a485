package errors

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrDraftNotFound      = errors.New("draft not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidFlow        = errors.New("invalid flow")
	ErrStepIncomplete     = errors.New("step incomplete")
	ErrInvalidQuantity    = errors.New("invalid quantity")
)
