package wizard

import (
	"errors"
	"testing"
	"time"

	"github.com/bestchance/orderdesk/internal/domain/model"
)

func fixedValidator(t *testing.T) *Validator {
	t.Helper()
	loc := time.FixedZone("HKT", 8*60*60)
	// 2026-10-16 01:30 in HKT is still 2026-10-15 in UTC.
	now := time.Date(2026, 10, 15, 17, 30, 0, 0, time.UTC)
	return NewValidator(loc, func() time.Time { return now })
}

func TestValidatorDeliveryDate(t *testing.T) {
	v := fixedValidator(t)
	cases := []struct {
		name string
		date string
		msg  string
	}{
		{"missing", "", MsgDeliveryDateRequired},
		{"blank", "   ", MsgDeliveryDateRequired},
		{"malformed", "16/10/2026", MsgDeliveryDateInvalid},
		{"yesterday", "2026-10-15", MsgDeliveryDateInPast},
		{"today", "2026-10-16", ""},
		{"future", "2027-01-01", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, _ := NewDraft("P1", model.FlowMaterial)
			d.DeliveryDate = tc.date
			res := v.Validate(d, model.FlowMaterial)
			if got := res.FieldErrors[FieldDeliveryDate]; got != tc.msg {
				t.Fatalf("expected %q, got %q", tc.msg, got)
			}
			if res.Valid != (tc.msg == "") {
				t.Fatalf("unexpected validity %v", res.Valid)
			}
		})
	}
}

func TestValidatorStartingLocationOnlyForCombined(t *testing.T) {
	v := fixedValidator(t)
	d, _ := NewDraft("P1", model.FlowCombined)
	d.DeliveryDate = "2026-10-20"
	d.StartingLocation = "  "

	res := v.Validate(d, model.FlowCombined)
	if res.Valid || res.FieldErrors[FieldStartingLocation] != MsgStartingLocationRequired {
		t.Fatalf("expected starting location error, got %+v", res)
	}
	if len(res.FieldErrors) != 1 {
		t.Fatalf("expected a single field error, got %v", res.FieldErrors)
	}

	if res := v.Validate(d, model.FlowMaterial); !res.Valid {
		t.Fatalf("material flow must not require starting location, got %+v", res)
	}
}

func TestValidatorReportsEveryField(t *testing.T) {
	v := fixedValidator(t)
	d, _ := NewDraft("P1", model.FlowCombined)

	res := v.Validate(d, model.FlowCombined)
	if res.Valid || len(res.FieldErrors) != 2 {
		t.Fatalf("expected two field errors, got %+v", res)
	}

	var verr *ValidationError
	if !errors.As(res.Err(), &verr) || verr.Fields[FieldDeliveryDate] != MsgDeliveryDateRequired {
		t.Fatalf("expected validation error, got %v", res.Err())
	}
}

func TestValidatorAcceptsEmptyMaterials(t *testing.T) {
	v := fixedValidator(t)
	d, _ := NewDraft("P1", model.FlowCombined)
	d.StartingLocation = "Yard"
	d.DeliveryDate = "2026-10-16"
	if res := v.Validate(d, model.FlowCombined); !res.Valid || res.Err() != nil {
		t.Fatalf("expected valid draft without materials, got %+v", res)
	}
}

func TestNewValidatorDefaults(t *testing.T) {
	v := NewValidator(nil, nil)
	if v.loc != time.UTC || v.now == nil {
		t.Fatalf("unexpected defaults %+v", v)
	}
}
