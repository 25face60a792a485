package wizard

import (
	"testing"

	"github.com/bestchance/orderdesk/internal/domain/model"
)

var (
	cement = model.MaterialItem{MaterialName: "Cement", SupplierName: "Acme", Unit: "bag", UnitPrice: "45.5"}
	sand   = model.MaterialItem{MaterialName: "Sand", SupplierName: "Acme", Unit: "ton", UnitPrice: "120"}
	rebar  = model.MaterialItem{MaterialName: "Rebar", SupplierName: "Steelco", Unit: "kg", UnitPrice: "8"}

	truckA = model.FleetItem{DrivingPlate: "AB1234", Name: "Chan", Company: "Fast", Mobile: "91234567", UnitPrice: "800"}
	truckB = model.FleetItem{DrivingPlate: "CD5678", Name: "Wong", Mobile: "98765432", UnitPrice: "950"}
)

func TestMaterialToggleTwiceRestoresSelection(t *testing.T) {
	var sel MaterialSelection
	sel.Toggle(sand)

	before := sel.Entries()
	if !sel.Toggle(cement) {
		t.Fatal("expected first toggle to select")
	}
	if sel.Quantity(cement) != 1 {
		t.Fatalf("expected default quantity 1, got %d", sel.Quantity(cement))
	}
	if sel.Toggle(cement) {
		t.Fatal("expected second toggle to deselect")
	}

	after := sel.Entries()
	if len(after) != len(before) || after[0] != before[0] {
		t.Fatalf("selection changed: before %v after %v", before, after)
	}
}

func TestMaterialToggleParity(t *testing.T) {
	tests := []struct {
		name    string
		toggles []model.MaterialItem
		want    []model.MaterialItem
	}{
		{name: "none"},
		{name: "once", toggles: []model.MaterialItem{cement}, want: []model.MaterialItem{cement}},
		{name: "twice", toggles: []model.MaterialItem{cement, cement}},
		{name: "thrice", toggles: []model.MaterialItem{cement, cement, cement}, want: []model.MaterialItem{cement}},
		{name: "interleaved", toggles: []model.MaterialItem{cement, sand, cement}, want: []model.MaterialItem{sand}},
		{name: "reselected keeps new position", toggles: []model.MaterialItem{cement, sand, cement, cement}, want: []model.MaterialItem{sand, cement}},
		{name: "both odd", toggles: []model.MaterialItem{sand, cement, sand, sand, cement, cement}, want: []model.MaterialItem{sand, cement}},
		{name: "all even", toggles: []model.MaterialItem{sand, cement, cement, sand}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sel MaterialSelection
			counts := map[model.MaterialItem]int{}
			for _, item := range tt.toggles {
				sel.Toggle(item)
				counts[item]++
			}
			for item, n := range counts {
				if sel.Contains(item) != (n%2 == 1) {
					t.Fatalf("%s toggled %d times, selected=%v", item.MaterialName, n, sel.Contains(item))
				}
			}
			got := sel.Entries()
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d entries, got %v", len(tt.want), got)
			}
			for i, item := range tt.want {
				if got[i].Item != item || got[i].Quantity != 1 {
					t.Fatalf("entry %d: expected %s x1, got %+v", i, item.MaterialName, got[i])
				}
			}
		})
	}
}

func TestFleetToggleParity(t *testing.T) {
	tests := []struct {
		name    string
		toggles []model.FleetItem
		want    string
	}{
		{name: "none"},
		{name: "once", toggles: []model.FleetItem{truckA}, want: truckA.DrivingPlate},
		{name: "twice", toggles: []model.FleetItem{truckA, truckA}},
		{name: "switch", toggles: []model.FleetItem{truckA, truckB}, want: truckB.DrivingPlate},
		{name: "switch back", toggles: []model.FleetItem{truckA, truckB, truckA}, want: truckA.DrivingPlate},
		{name: "switch then clear", toggles: []model.FleetItem{truckA, truckB, truckB}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sel FleetSelection
			for _, item := range tt.toggles {
				sel.Toggle(item)
			}
			entry, ok := sel.Selected()
			if tt.want == "" {
				if ok {
					t.Fatalf("expected no fleet, got %s", entry.Item.DrivingPlate)
				}
				return
			}
			if !ok || entry.Item.DrivingPlate != tt.want {
				t.Fatalf("expected %s, got %+v (selected=%v)", tt.want, entry, ok)
			}
		})
	}
}

func TestMaterialSetQuantity(t *testing.T) {
	cases := []struct {
		name     string
		value    string
		selected bool
		quantity int
	}{
		{"positive inserts", "5", true, 5},
		{"leading digits", "12kg", true, 12},
		{"decimal truncates", "3.7", true, 3},
		{"zero removes", "0", false, 0},
		{"negative removes", "-4", false, 0},
		{"non numeric removes", "abc", false, 0},
		{"empty removes", "", false, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var sel MaterialSelection
			sel.Toggle(cement)
			got := sel.SetQuantity(cement, tc.value)
			if got != tc.quantity {
				t.Fatalf("expected quantity %d, got %d", tc.quantity, got)
			}
			if sel.Contains(cement) != tc.selected {
				t.Fatalf("expected selected=%v", tc.selected)
			}
		})
	}
}

func TestMaterialSetQuantityInsertsAbsentItem(t *testing.T) {
	var sel MaterialSelection
	sel.SetQuantity(sand, "7")
	if !sel.Contains(sand) || sel.Quantity(sand) != 7 {
		t.Fatalf("expected sand with quantity 7, got %v", sel.Entries())
	}
	sel.SetQuantity(sand, "9")
	if sel.Len() != 1 || sel.Quantity(sand) != 9 {
		t.Fatalf("expected update in place, got %v", sel.Entries())
	}
}

func TestMaterialEntriesKeepInsertionOrder(t *testing.T) {
	var sel MaterialSelection
	sel.Toggle(sand)
	sel.Toggle(cement)
	entries := sel.Entries()
	if entries[0].Item != sand || entries[1].Item != cement {
		t.Fatalf("unexpected order %v", entries)
	}

	entries[0].Quantity = 99
	if sel.Quantity(sand) != 1 {
		t.Fatal("entries must be a copy")
	}
}

func TestMaterialSupplierLockFollowsFirstEntry(t *testing.T) {
	var sel MaterialSelection
	if _, ok := sel.Supplier(); ok {
		t.Fatal("empty selection must not be locked")
	}
	sel.Toggle(cement)
	if supplier, ok := sel.Supplier(); !ok || supplier != "Acme" {
		t.Fatalf("expected Acme lock, got %q %v", supplier, ok)
	}
	sel.Toggle(cement)
	if !sel.IsEmpty() {
		t.Fatal("expected empty selection")
	}
	if _, ok := sel.Supplier(); ok {
		t.Fatal("lock must be released when empty")
	}
}

func TestFleetToggleIsExclusive(t *testing.T) {
	var sel FleetSelection
	sel.Toggle(truckA)
	sel.Toggle(truckB)

	entry, ok := sel.Selected()
	if !ok || entry.Item.DrivingPlate != truckB.DrivingPlate {
		t.Fatalf("expected only truck B selected, got %+v", entry)
	}
	if entry.Price != truckB.UnitPrice {
		t.Fatalf("expected catalog price, got %q", entry.Price)
	}

	if sel.Toggle(truckB) {
		t.Fatal("toggling the selected fleet must deselect it")
	}
	if !sel.IsEmpty() {
		t.Fatal("expected no fleet selected")
	}
}

func TestFleetSetPrice(t *testing.T) {
	var sel FleetSelection
	if sel.SetPrice("100") {
		t.Fatal("price must not be editable without a fleet")
	}

	sel.Toggle(truckA)
	cases := []struct {
		value    string
		accepted bool
		price    string
	}{
		{"1000", true, "1000"},
		{"12.5", true, "12.5"},
		{".5", true, ".5"},
		{"12.", true, "12."},
		{"1.2.3", false, "12."},
		{"abc", false, "12."},
		{"-5", false, "12."},
		{"", true, ""},
	}

	for _, tc := range cases {
		if got := sel.SetPrice(tc.value); got != tc.accepted {
			t.Fatalf("SetPrice(%q): expected accepted=%v", tc.value, tc.accepted)
		}
		entry, _ := sel.Selected()
		if entry.Price != tc.price {
			t.Fatalf("SetPrice(%q): expected price %q, got %q", tc.value, tc.price, entry.Price)
		}
	}

	entry, _ := sel.Selected()
	if entry.EffectivePrice() != truckA.UnitPrice {
		t.Fatalf("blank edit must fall back to catalog price, got %q", entry.EffectivePrice())
	}
}

func TestParseQuantity(t *testing.T) {
	cases := map[string]int{
		"":     0,
		"  8 ": 8,
		"+3":   3,
		"-2":   -2,
		"1e3":  1,
		"x1":   0,
		"007":  7,
	}
	for in, want := range cases {
		if got := ParseQuantity(in); got != want {
			t.Fatalf("ParseQuantity(%q) = %d, want %d", in, got, want)
		}
	}
	if got := ParseQuantity("99999999999999999999999"); got != MaxQuantity {
		t.Fatalf("overflowing input must clamp to %d, got %d", MaxQuantity, got)
	}
	if got := ParseQuantity("3000000000"); got != MaxQuantity {
		t.Fatalf("large input must clamp to %d, got %d", MaxQuantity, got)
	}
	if got := ParseQuantity("-99999999999999999999999"); got != -MaxQuantity {
		t.Fatalf("overflowing negative input must clamp to %d, got %d", -MaxQuantity, got)
	}
}

func TestMaterialSetQuantityHugeInputKeepsSelection(t *testing.T) {
	var sel MaterialSelection
	sel.Toggle(cement)
	if got := sel.SetQuantity(cement, "99999999999999999999999"); got != MaxQuantity {
		t.Fatalf("expected clamped quantity, got %d", got)
	}
	if !sel.Contains(cement) || sel.Quantity(cement) != MaxQuantity {
		t.Fatalf("huge quantity must keep the item selected, got %v", sel.Entries())
	}
}
