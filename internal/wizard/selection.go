package wizard

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/bestchance/orderdesk/internal/domain/model"
)

var priceInput = regexp.MustCompile(`^\d*\.?\d*$`)

// MaterialEntry is a selected material and its ordered quantity.
type MaterialEntry struct {
	Item     model.MaterialItem `json:"item"`
	Quantity int                `json:"quantity"`
}

// MaterialSelection is an insertion-ordered set of materials keyed by supplier and name.
// Entries always carry a positive quantity.
type MaterialSelection struct {
	entries []MaterialEntry
}

// Toggle removes item when selected, otherwise inserts it with quantity 1.
// It reports whether item is selected afterwards.
func (s *MaterialSelection) Toggle(item model.MaterialItem) bool {
	if i := s.index(item.Key()); i >= 0 {
		s.removeAt(i)
		return false
	}
	s.entries = append(s.entries, MaterialEntry{Item: item, Quantity: 1})
	return true
}

// SetQuantity parses value as an integer quantity. A positive quantity inserts or
// updates the entry, anything else removes it. The resulting quantity is returned.
func (s *MaterialSelection) SetQuantity(item model.MaterialItem, value string) int {
	qty := ParseQuantity(value)
	i := s.index(item.Key())
	if qty <= 0 {
		if i >= 0 {
			s.removeAt(i)
		}
		return 0
	}
	if i >= 0 {
		s.entries[i].Quantity = qty
		return qty
	}
	s.entries = append(s.entries, MaterialEntry{Item: item, Quantity: qty})
	return qty
}

// Contains reports whether item is selected.
func (s *MaterialSelection) Contains(item model.MaterialItem) bool {
	return s.index(item.Key()) >= 0
}

// Quantity returns the quantity of item or 0 when it is not selected.
func (s *MaterialSelection) Quantity(item model.MaterialItem) int {
	if i := s.index(item.Key()); i >= 0 {
		return s.entries[i].Quantity
	}
	return 0
}

// IsEmpty reports whether nothing is selected.
func (s *MaterialSelection) IsEmpty() bool {
	return len(s.entries) == 0
}

// Len returns the number of selected materials.
func (s *MaterialSelection) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the selection in insertion order.
func (s *MaterialSelection) Entries() []MaterialEntry {
	out := make([]MaterialEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Supplier returns the supplier the selection is locked to.
func (s *MaterialSelection) Supplier() (string, bool) {
	if len(s.entries) == 0 {
		return "", false
	}
	return s.entries[0].Item.SupplierName, true
}

func (s *MaterialSelection) index(key string) int {
	for i := range s.entries {
		if s.entries[i].Item.Key() == key {
			return i
		}
	}
	return -1
}

func (s *MaterialSelection) removeAt(i int) {
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	if len(s.entries) == 0 {
		s.entries = nil
	}
}

func (s MaterialSelection) clone() MaterialSelection {
	if s.entries == nil {
		return MaterialSelection{}
	}
	return MaterialSelection{entries: s.Entries()}
}

// FleetEntry is the selected fleet with its agreed price.
type FleetEntry struct {
	Item  model.FleetItem `json:"item"`
	Price string          `json:"price"`
}

// EffectivePrice is the edited price, or the catalog price when the edit is blank.
func (e FleetEntry) EffectivePrice() string {
	if e.Price != "" {
		return e.Price
	}
	return e.Item.UnitPrice
}

// FleetSelection holds at most one fleet.
type FleetSelection struct {
	entry *FleetEntry
}

// Toggle deselects item when it is the current fleet, otherwise selects it at its
// catalog price, replacing any previous fleet. It reports whether item is selected afterwards.
func (s *FleetSelection) Toggle(item model.FleetItem) bool {
	if s.entry != nil && s.entry.Item.DrivingPlate == item.DrivingPlate {
		s.entry = nil
		return false
	}
	s.entry = &FleetEntry{Item: item, Price: item.UnitPrice}
	return true
}

// SetPrice edits the selected fleet price. Values other than "" or a plain decimal
// are rejected and the previous price is kept.
func (s *FleetSelection) SetPrice(value string) bool {
	if s.entry == nil || !priceInput.MatchString(value) {
		return false
	}
	s.entry.Price = value
	return true
}

// Selected returns the current fleet.
func (s *FleetSelection) Selected() (FleetEntry, bool) {
	if s.entry == nil {
		return FleetEntry{}, false
	}
	return *s.entry, true
}

// IsEmpty reports whether no fleet is selected.
func (s *FleetSelection) IsEmpty() bool {
	return s.entry == nil
}

func (s FleetSelection) clone() FleetSelection {
	if s.entry == nil {
		return FleetSelection{}
	}
	e := *s.entry
	return FleetSelection{entry: &e}
}

// MaxQuantity caps parsed quantities. Longer digit runs clamp here instead of
// failing, so a huge entry stays selected.
const MaxQuantity = math.MaxInt32

// ParseQuantity reads the leading integer of value: "12kg" is 12, "3.7" is 3 and
// input without leading digits is 0. The magnitude is capped at MaxQuantity.
func ParseQuantity(value string) int {
	s := strings.TrimSpace(value)
	sign := 1
	if s != "" && (s[0] == '+' || s[0] == '-') {
		if s[0] == '-' {
			sign = -1
		}
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil || n > MaxQuantity {
		// only a range error is possible on a pure digit run
		n = MaxQuantity
	}
	return sign * int(n)
}
