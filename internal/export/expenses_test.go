package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/bestchance/orderdesk/internal/domain/model"
)

func sampleGroups() []model.ExpenseGroup {
	return []model.ExpenseGroup{
		{
			Type: model.ExpenseTypeMaterial,
			Suppliers: []model.SupplierExpenses{
				{Supplier: "Acme", Records: []model.ExpenseRecord{
					{ExpenseName: "Cement", Qty: "10", Unit: "bag", UnitPrice: "45.5", TotalPrice: "455"},
					{ExpenseName: "Sand", Qty: "2", Unit: "ton", UnitPrice: "300", TotalPrice: "600"},
				}},
			},
		},
		{
			Type: model.ExpenseTypeOperation,
			Suppliers: []model.SupplierExpenses{
				{Supplier: "", Records: []model.ExpenseRecord{
					{ExpenseName: "Permit", Qty: "1", UnitPrice: "n/a", TotalPrice: "n/a"},
				}},
			},
		},
	}
}

func openWorkbook(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func cellValue(t *testing.T, f *excelize.File, cell string) string {
	t.Helper()
	v, err := f.GetCellValue(SheetName, cell)
	if err != nil {
		t.Fatalf("read %s: %v", cell, err)
	}
	return v
}

func TestExpenseWorkbookLayout(t *testing.T) {
	at := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)
	data, err := ExpenseWorkbook("P1", sampleGroups(), at)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f := openWorkbook(t, data)

	if name := f.GetSheetName(f.GetActiveSheetIndex()); name != SheetName {
		t.Fatalf("expected sheet %q, got %q", SheetName, name)
	}
	if got := cellValue(t, f, "A1"); got != "項目 P1 支出" {
		t.Fatalf("unexpected title %q", got)
	}
	if got := cellValue(t, f, "A2"); !strings.Contains(got, "2026-10-16 09:30:00") {
		t.Fatalf("unexpected timestamp %q", got)
	}
	if got := cellValue(t, f, "J4"); got != "總價" {
		t.Fatalf("unexpected header %q", got)
	}

	checks := map[string]string{
		"A5":  "材料",
		"B5":  "Acme",
		"C5":  "Cement",
		"I5":  "45.5",
		"J5":  "455",
		"C6":  "Sand",
		"I7":  "材料 小計",
		"J7":  "1055",
		"C8":  "Permit",
		"J8":  "n/a",
		"I9":  "營運 小計",
		"J9":  "0",
		"I10": "總計",
		"J10": "1055",
	}
	for cell, want := range checks {
		if got := cellValue(t, f, cell); got != want {
			t.Errorf("cell %s: expected %q, got %q", cell, want, got)
		}
	}

	merged, err := f.GetMergeCells(SheetName)
	if err != nil {
		t.Fatalf("merged cells: %v", err)
	}
	if len(merged) != 1 || merged[0].GetStartAxis() != "B5" || merged[0].GetEndAxis() != "B6" {
		t.Fatalf("expected supplier merge B5:B6, got %v", merged)
	}
}

func TestExpenseWorkbookEmptyReport(t *testing.T) {
	data, err := ExpenseWorkbook("P9", nil, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f := openWorkbook(t, data)
	if got := cellValue(t, f, "I5"); got != "總計" {
		t.Fatalf("expected grand total row right after header, got %q", got)
	}
}

func TestFilename(t *testing.T) {
	at := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	if got := Filename("P1", at); got != "expenses-P1-20261016.xlsx" {
		t.Fatalf("unexpected filename %q", got)
	}
}
