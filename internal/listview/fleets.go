package listview

import (
	"slices"
	"strings"

	"github.com/bestchance/orderdesk/internal/domain/model"
)

// FilterFleets keeps fleets whose visible columns contain query, ignoring case.
func FilterFleets(items []model.FleetItem, query string) []model.FleetItem {
	query = strings.ToLower(query)
	if query == "" {
		return items
	}
	out := make([]model.FleetItem, 0, len(items))
	for _, f := range items {
		if containsFold(query, f.Name, f.Company, f.Mobile, f.DrivingPlate, f.UnitPrice) {
			out = append(out, f)
		}
	}
	return out
}

// SortFleets sorts a copy of items. unit_price sorts numerically.
func SortFleets(items []model.FleetItem, state SortState) []model.FleetItem {
	if state.Key == "" {
		return items
	}
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b model.FleetItem) int {
		return state.compareValues(fleetField(a, state.Key), fleetField(b, state.Key), state.Key == "unit_price")
	})
	return out
}

func fleetField(f model.FleetItem, key string) string {
	switch key {
	case "name":
		return f.Name
	case "company":
		return f.Company
	case "mobile":
		return f.Mobile
	case "driving_plate":
		return f.DrivingPlate
	case "unit_price":
		return f.UnitPrice
	default:
		return ""
	}
}
