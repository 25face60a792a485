package listview

import (
	"slices"
	"strings"

	"github.com/bestchance/orderdesk/internal/domain/model"
)

// FilterMonthly keeps reports whose month contains query, ignoring case.
func FilterMonthly(reports []model.MonthlyReport, query string) []model.MonthlyReport {
	query = strings.ToLower(query)
	if query == "" {
		return reports
	}
	out := make([]model.MonthlyReport, 0, len(reports))
	for _, r := range reports {
		if containsFold(query, r.Month) {
			out = append(out, r)
		}
	}
	return out
}

// SortMonthly sorts a copy of reports by expense_month or total_cost. Both columns
// compare as text.
func SortMonthly(reports []model.MonthlyReport, state SortState) []model.MonthlyReport {
	if state.Key == "" {
		return reports
	}
	out := slices.Clone(reports)
	slices.SortStableFunc(out, func(a, b model.MonthlyReport) int {
		return state.compareValues(monthlyField(a, state.Key), monthlyField(b, state.Key), false)
	})
	return out
}

func monthlyField(r model.MonthlyReport, key string) string {
	switch key {
	case "expense_month":
		return r.Month
	case "total_cost":
		return r.TotalCost
	default:
		return ""
	}
}
