package wizard

import (
	"strings"
	"time"

	"github.com/bestchance/orderdesk/internal/domain/model"
)

// DateLayout is the wire format of delivery dates.
const DateLayout = "2006-01-02"

const (
	FieldStartingLocation = "starting_location"
	FieldDeliveryDate     = "delivery_date"
)

const (
	MsgStartingLocationRequired = "請輸入起運地點"
	MsgDeliveryDateRequired     = "請選擇交貨日期"
	MsgDeliveryDateInvalid      = "交貨日期格式不正確"
	MsgDeliveryDateInPast       = "交貨日期不能早於今日"
)

// ValidationResult maps each failing field to one message.
type ValidationResult struct {
	Valid       bool              `json:"valid"`
	FieldErrors map[string]string `json:"field_errors,omitempty"`
}

// Err returns the result as a *ValidationError, or nil when valid.
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return &ValidationError{Fields: r.FieldErrors}
}

// Validator checks a draft before submission. Dates are compared by calendar day
// in loc.
type Validator struct {
	loc *time.Location
	now func() time.Time
}

// NewValidator builds a validator. Nil arguments fall back to UTC and time.Now.
func NewValidator(loc *time.Location, now func() time.Time) *Validator {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &Validator{loc: loc, now: now}
}

// Validate checks the confirmation fields of d for flow. An empty material
// selection is accepted.
func (v *Validator) Validate(d *OrderDraft, flow model.Flow) ValidationResult {
	errs := make(map[string]string)

	if flow == model.FlowCombined && strings.TrimSpace(d.StartingLocation) == "" {
		errs[FieldStartingLocation] = MsgStartingLocationRequired
	}

	if msg := v.checkDeliveryDate(d.DeliveryDate); msg != "" {
		errs[FieldDeliveryDate] = msg
	}

	if len(errs) == 0 {
		return ValidationResult{Valid: true}
	}
	return ValidationResult{FieldErrors: errs}
}

func (v *Validator) checkDeliveryDate(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return MsgDeliveryDateRequired
	}
	date, err := time.ParseInLocation(DateLayout, value, v.loc)
	if err != nil {
		return MsgDeliveryDateInvalid
	}
	y, m, day := v.now().In(v.loc).Date()
	today := time.Date(y, m, day, 0, 0, 0, 0, v.loc)
	if date.Before(today) {
		return MsgDeliveryDateInPast
	}
	return ""
}
