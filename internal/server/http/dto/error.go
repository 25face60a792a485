package dto

import "github.com/bestchance/orderdesk/internal/usecase"

// ErrorResponse is the body of every failed request that carries details.
type ErrorResponse struct {
	Error       string            `json:"error"`
	FieldErrors map[string]string `json:"field_errors,omitempty"`
	Notice      *usecase.Notice   `json:"notice,omitempty"`
}

// ConflictResponse reports a material from a second supplier.
type ConflictResponse struct {
	Message           string `json:"message"`
	CurrentSupplier   string `json:"current_supplier"`
	AttemptedSupplier string `json:"attempted_supplier"`
}

// NoticeResponse wraps a transient banner.
type NoticeResponse struct {
	Notice usecase.Notice `json:"notice"`
}
