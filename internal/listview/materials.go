package listview

import (
	"slices"
	"strings"

	"github.com/bestchance/orderdesk/internal/domain/model"
)

// SupplierGroup is a supplier with its catalog materials.
type SupplierGroup struct {
	Supplier  string               `json:"supplier_name"`
	Materials []model.MaterialItem `json:"materials"`
}

// GroupBySupplier groups items by supplier in order of first appearance.
func GroupBySupplier(items []model.MaterialItem) []SupplierGroup {
	groups := make([]SupplierGroup, 0)
	index := make(map[string]int)
	for _, item := range items {
		i, ok := index[item.SupplierName]
		if !ok {
			i = len(groups)
			index[item.SupplierName] = i
			groups = append(groups, SupplierGroup{Supplier: item.SupplierName})
		}
		groups[i].Materials = append(groups[i].Materials, item)
	}
	return groups
}

// SearchGroups keeps materials whose name, unit, price or supplier contains query,
// ignoring case. Groups left empty are dropped.
func SearchGroups(groups []SupplierGroup, query string) []SupplierGroup {
	query = strings.ToLower(query)
	if query == "" {
		return groups
	}
	out := make([]SupplierGroup, 0, len(groups))
	for _, g := range groups {
		var kept []model.MaterialItem
		for _, m := range g.Materials {
			if containsFold(query, m.MaterialName, m.Unit, m.UnitPrice, m.SupplierName) {
				kept = append(kept, m)
			}
		}
		if len(kept) > 0 {
			out = append(out, SupplierGroup{Supplier: g.Supplier, Materials: kept})
		}
	}
	return out
}

// SortGroups sorts materials inside each group. unit_price sorts numerically.
func SortGroups(groups []SupplierGroup, state SortState) []SupplierGroup {
	if state.Key == "" {
		return groups
	}
	out := make([]SupplierGroup, len(groups))
	for i, g := range groups {
		materials := slices.Clone(g.Materials)
		slices.SortStableFunc(materials, func(a, b model.MaterialItem) int {
			return state.compareValues(materialField(a, state.Key), materialField(b, state.Key), state.Key == "unit_price")
		})
		out[i] = SupplierGroup{Supplier: g.Supplier, Materials: materials}
	}
	return out
}

// MaterialView groups, searches and sorts a catalog in one pass.
func MaterialView(items []model.MaterialItem, query string, state SortState) []SupplierGroup {
	return SortGroups(SearchGroups(GroupBySupplier(items), query), state)
}

func materialField(m model.MaterialItem, key string) string {
	switch key {
	case "material_name":
		return m.MaterialName
	case "supplier_name":
		return m.SupplierName
	case "unit":
		return m.Unit
	case "unit_price":
		return m.UnitPrice
	default:
		return ""
	}
}
