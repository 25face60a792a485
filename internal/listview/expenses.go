package listview

import (
	"slices"
	"strings"

	"github.com/bestchance/orderdesk/internal/domain/model"
)

// TypeAll disables the expense type filter.
const TypeAll = "all"

var numericExpenseKeys = map[string]bool{"qty": true, "unit_price": true, "total_price": true}

// FilterExpenses applies a type filter and a record search. Suppliers and groups
// without matching records are dropped. Groups come out as material, fleet, operation.
func FilterExpenses(groups []model.ExpenseGroup, expenseType, query string) []model.ExpenseGroup {
	query = strings.ToLower(query)
	out := make([]model.ExpenseGroup, 0, len(groups))
	for _, g := range groups {
		if expenseType != "" && expenseType != TypeAll && string(g.Type) != expenseType {
			continue
		}
		var suppliers []model.SupplierExpenses
		for _, s := range g.Suppliers {
			var records []model.ExpenseRecord
			for _, r := range s.Records {
				if query == "" || recordMatches(r, query) {
					records = append(records, r)
				}
			}
			if len(records) > 0 {
				suppliers = append(suppliers, model.SupplierExpenses{Supplier: s.Supplier, Records: records})
			}
		}
		if len(suppliers) > 0 {
			out = append(out, model.ExpenseGroup{Type: g.Type, Suppliers: suppliers})
		}
	}
	slices.SortStableFunc(out, func(a, b model.ExpenseGroup) int {
		return a.Type.Rank() - b.Type.Rank()
	})
	return out
}

// SortExpenses sorts records inside every supplier. qty, unit_price and total_price
// sort numerically.
func SortExpenses(groups []model.ExpenseGroup, state SortState) []model.ExpenseGroup {
	if state.Key == "" {
		return groups
	}
	numeric := numericExpenseKeys[state.Key]
	out := make([]model.ExpenseGroup, len(groups))
	for i, g := range groups {
		suppliers := make([]model.SupplierExpenses, len(g.Suppliers))
		for j, s := range g.Suppliers {
			records := slices.Clone(s.Records)
			slices.SortStableFunc(records, func(a, b model.ExpenseRecord) int {
				return state.compareValues(expenseField(a, state.Key), expenseField(b, state.Key), numeric)
			})
			suppliers[j] = model.SupplierExpenses{Supplier: s.Supplier, Records: records}
		}
		out[i] = model.ExpenseGroup{Type: g.Type, Suppliers: suppliers}
	}
	return out
}

// ExpenseView filters then sorts a project expense report.
func ExpenseView(groups []model.ExpenseGroup, expenseType, query string, state SortState) []model.ExpenseGroup {
	return SortExpenses(FilterExpenses(groups, expenseType, query), state)
}

// RowSpans returns the number of table rows each supplier of g occupies.
func RowSpans(g model.ExpenseGroup) []int {
	spans := make([]int, len(g.Suppliers))
	for i, s := range g.Suppliers {
		spans[i] = len(s.Records)
	}
	return spans
}

func recordMatches(r model.ExpenseRecord, query string) bool {
	return containsFold(query, r.ExpenseName, r.StartingLocation, r.Destination, r.DeliveryDate,
		r.Qty, r.Unit, r.UnitPrice, r.TotalPrice)
}

func expenseField(r model.ExpenseRecord, key string) string {
	switch key {
	case "expense_name":
		return r.ExpenseName
	case "starting_location":
		return r.StartingLocation
	case "destination":
		return r.Destination
	case "delivery_date":
		return r.DeliveryDate
	case "qty":
		return r.Qty
	case "unit":
		return r.Unit
	case "unit_price":
		return r.UnitPrice
	case "total_price":
		return r.TotalPrice
	default:
		return ""
	}
}
