package wizard

import (
	"errors"
	"fmt"
)

const (
	// SupplierConflictMessage is shown when a material from a second supplier is picked.
	SupplierConflictMessage = "一次只能選擇一個供應商的材料！"
	// SubmissionFailedMessage is the only failure copy shown for submissions.
	SubmissionFailedMessage = "訂購失敗，請稍後再試。"
)

var (
	ErrNoNextStep     = errors.New("no next step")
	ErrNoPreviousStep = errors.New("no previous step")
	ErrInvalidStep    = errors.New("invalid step")
	ErrNoFleetStep    = errors.New("flow has no fleet step")
)

// SupplierConflictError reports a rejected material insert.
type SupplierConflictError struct {
	Current   string
	Attempted string
}

func (e *SupplierConflictError) Error() string {
	return fmt.Sprintf("%s (current %q, attempted %q)", SupplierConflictMessage, e.Current, e.Attempted)
}

// ValidationError carries one message per failing field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d field(s)", len(e.Fields))
}

// SubmissionError hides the transport cause behind the generic failure copy.
type SubmissionError struct {
	Message string
	Err     error
}

// NewSubmissionError wraps cause with the generic failure copy.
func NewSubmissionError(cause error) *SubmissionError {
	return &SubmissionError{Message: SubmissionFailedMessage, Err: cause}
}

func (e *SubmissionError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
