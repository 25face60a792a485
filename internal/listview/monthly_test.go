package listview

import (
	"testing"

	"github.com/bestchance/orderdesk/internal/domain/model"
)

func monthly() []model.MonthlyReport {
	return []model.MonthlyReport{
		{Month: "2026-09", ReportURL: "https://r/9", TotalCost: "900"},
		{Month: "2025-12", ReportURL: "https://r/12", TotalCost: "1200"},
		{Month: "2026-10", ReportURL: "https://r/10", TotalCost: "80"},
	}
}

func TestFilterMonthlyMatchesMonthOnly(t *testing.T) {
	if got := FilterMonthly(monthly(), "2026"); len(got) != 2 {
		t.Fatalf("expected two 2026 reports, got %+v", got)
	}
	if got := FilterMonthly(monthly(), "900"); len(got) != 0 {
		t.Fatalf("total cost must not be searched, got %+v", got)
	}
	if got := FilterMonthly(monthly(), ""); len(got) != 3 {
		t.Fatalf("empty query keeps everything, got %+v", got)
	}
}

func TestSortMonthly(t *testing.T) {
	byMonth := SortMonthly(monthly(), SortState{Key: "expense_month", Direction: Desc})
	if byMonth[0].Month != "2026-10" || byMonth[2].Month != "2025-12" {
		t.Fatalf("unexpected month order %+v", byMonth)
	}

	// costs compare as text: "1200" < "80" < "900"
	byCost := SortMonthly(monthly(), SortState{Key: "total_cost", Direction: Asc})
	if byCost[0].TotalCost != "1200" || byCost[1].TotalCost != "80" || byCost[2].TotalCost != "900" {
		t.Fatalf("unexpected cost order %+v", byCost)
	}

	in := monthly()
	if got := SortMonthly(in, SortState{}); got[0] != in[0] || got[2] != in[2] {
		t.Fatalf("empty sort must keep input order, got %+v", got)
	}
}
