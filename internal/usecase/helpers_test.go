package usecase

import (
	"io"
	"log/slog"
	"time"

	"github.com/bestchance/orderdesk/internal/domain/model"
)

var (
	hkt      = time.FixedZone("HKT", 8*60*60)
	fixedNow = time.Date(2026, 10, 16, 1, 30, 0, 0, hkt)

	cement = model.MaterialItem{MaterialName: "Cement", SupplierName: "Acme", Unit: "bag", UnitPrice: "45.5"}
	sand   = model.MaterialItem{MaterialName: "Sand", SupplierName: "Acme", Unit: "ton", UnitPrice: "300"}
	rebar  = model.MaterialItem{MaterialName: "Rebar", SupplierName: "Steelco", Unit: "pc", UnitPrice: "12"}
	truckA = model.FleetItem{DrivingPlate: "AB1234", Name: "Chan", Company: "Fast", Mobile: "91234567", UnitPrice: "800"}

	alice = model.Session{Username: "alice", Token: "tok-alice"}
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func clock() time.Time {
	return fixedNow
}
