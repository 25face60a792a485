// Package export renders project expense reports as spreadsheets.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/bestchance/orderdesk/internal/domain/model"
	"github.com/bestchance/orderdesk/internal/listview"
)

const (
	SheetName   = "支出"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	headerRow    = 4
	firstDataRow = headerRow + 1
)

var headers = []any{"類別", "供應商", "項目名稱", "起運地點", "目的地", "交貨日期", "數量", "單位", "單價", "總價"}

// Filename returns the download name of a project's expense workbook.
func Filename(projectID string, at time.Time) string {
	return fmt.Sprintf("expenses-%s-%s.xlsx", projectID, at.Format("20060102"))
}

// ExpenseWorkbook writes groups into a single-sheet XLSX document. Supplier cells are merged
// across their records and every expense type gets a subtotal row over total_price.
func ExpenseWorkbook(projectID string, groups []model.ExpenseGroup, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	styles, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	if err := f.SetCellValue(SheetName, "A1", fmt.Sprintf("項目 %s 支出", projectID)); err != nil {
		return nil, err
	}
	_ = f.SetCellStyle(SheetName, "A1", "A1", styles.title)
	_ = f.SetRowHeight(SheetName, 1, 30)
	if err := f.SetCellValue(SheetName, "A2", "生成時間: "+generatedAt.Format("2006-01-02 15:04:05")); err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(SheetName, "A4", &headers); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	_ = f.SetCellStyle(SheetName, "A4", lastCol+"4", styles.header)
	_ = f.SetColWidth(SheetName, "A", lastCol, 16)

	row := firstDataRow
	grand := decimal.Zero
	for _, g := range groups {
		subtotal := decimal.Zero
		spans := listview.RowSpans(g)
		for i, s := range g.Suppliers {
			if spans[i] == 0 {
				continue
			}
			start := row
			for _, r := range s.Records {
				values := []any{
					g.Type.Label(), s.Supplier, r.ExpenseName, r.StartingLocation, r.Destination, r.DeliveryDate,
					numeric(r.Qty), r.Unit, numeric(r.UnitPrice), numeric(r.TotalPrice),
				}
				cell, err := excelize.CoordinatesToCellName(1, row)
				if err != nil {
					return nil, err
				}
				if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
					return nil, fmt.Errorf("write row %d: %w", row, err)
				}
				if total, err := decimal.NewFromString(r.TotalPrice); err == nil {
					subtotal = subtotal.Add(total)
				}
				row++
			}
			if spans[i] > 1 {
				top, _ := excelize.CoordinatesToCellName(2, start)
				bottom, _ := excelize.CoordinatesToCellName(2, row-1)
				if err := f.MergeCell(SheetName, top, bottom); err != nil {
					return nil, fmt.Errorf("merge supplier cells: %w", err)
				}
			}
		}
		if err := writeTotal(f, row, g.Type.Label()+" 小計", subtotal, styles.total); err != nil {
			return nil, err
		}
		grand = grand.Add(subtotal)
		row++
	}
	if err := writeTotal(f, row, "總計", grand, styles.total); err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

type sheetStyles struct {
	title  int
	header int
	total  int
}

func newStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	var err error
	s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Vertical: "center"},
	})
	if err != nil {
		return s, fmt.Errorf("title style: %w", err)
	}
	s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return s, fmt.Errorf("header style: %w", err)
	}
	s.total, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return s, fmt.Errorf("total style: %w", err)
	}
	return s, nil
}

func writeTotal(f *excelize.File, row int, label string, sum decimal.Decimal, style int) error {
	labelCell, _ := excelize.CoordinatesToCellName(9, row)
	valueCell, _ := excelize.CoordinatesToCellName(10, row)
	if err := f.SetCellValue(SheetName, labelCell, label); err != nil {
		return err
	}
	if err := f.SetCellValue(SheetName, valueCell, sum.InexactFloat64()); err != nil {
		return err
	}
	return f.SetCellStyle(SheetName, labelCell, valueCell, style)
}

// numeric keeps parseable amounts as numbers so spreadsheet formulas work on them.
func numeric(v string) any {
	d, err := decimal.NewFromString(v)
	if err != nil {
		return v
	}
	return d.InexactFloat64()
}
