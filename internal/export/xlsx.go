// Package export renders best-combination results as XLSX workbooks and PDF
// reports for offline review.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/eshaffer321/quote-optimizer/internal/domain/combination"
)

// Sheet names in the exported workbook
const (
	SummarySheet   = "Summary"
	ItemsSheet     = "Items"
	SuppliersSheet = "Suppliers"
)

// ContentTypeXLSX is the MIME type of WriteXLSX output.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WriteXLSX writes result as a three-sheet workbook.
func WriteXLSX(w io.Writer, title string, result *combination.Result) error {
	if result == nil {
		return fmt.Errorf("export: nil result")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("export: rename sheet: %w", err)
	}
	if _, err := f.NewSheet(ItemsSheet); err != nil {
		return fmt.Errorf("export: create sheet: %w", err)
	}
	if _, err := f.NewSheet(SuppliersSheet); err != nil {
		return fmt.Errorf("export: create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Family: "Arial"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("export: header style: %w", err)
	}
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14, Family: "Arial"},
	})
	if err != nil {
		return fmt.Errorf("export: title style: %w", err)
	}

	if err := writeSummarySheet(f, title, result, titleStyle); err != nil {
		return err
	}
	if err := writeItemsSheet(f, result, headerStyle); err != nil {
		return err
	}
	if err := writeSuppliersSheet(f, result, headerStyle); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: write workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, title string, result *combination.Result, titleStyle int) error {
	rows := [][]interface{}{
		{title},
		{},
		{"Total Cost", result.TotalCost},
		{"Total Savings", result.TotalSavings},
		{"Savings %", result.SavingsPercentage},
		{"Suppliers Used", len(result.UniqueSuppliers)},
		{"Multi-Supplier", yesNo(result.IsMultiSupplier)},
	}
	if single := result.BestSingleSupplier; single != nil {
		rows = append(rows,
			[]interface{}{"Best Single Supplier", single.SupplierName},
			[]interface{}{"Single Supplier Cost", single.TotalCost},
			[]interface{}{"Savings vs Single Supplier", single.SavingsVsSingleSupplier},
		)
	}

	if err := setRows(f, SummarySheet, rows); err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, "A1", "A1", titleStyle); err != nil {
		return fmt.Errorf("export: style summary: %w", err)
	}
	return f.SetColWidth(SummarySheet, "A", "A", 28)
}

func writeItemsSheet(f *excelize.File, result *combination.Result, headerStyle int) error {
	rows := [][]interface{}{
		{"Item", "Best Supplier", "Unit Price", "Quantity", "Total", "Savings", "Savings %", "Other Offers"},
	}
	for _, item := range result.Items {
		rows = append(rows, []interface{}{
			item.ItemName,
			item.BestSupplierName,
			item.BestPrice,
			item.Quantity,
			item.TotalItemCost,
			item.Savings,
			item.SavingsPercentage,
			len(item.OtherOptions),
		})
	}

	if err := setRows(f, ItemsSheet, rows); err != nil {
		return err
	}
	if err := f.SetCellStyle(ItemsSheet, "A1", "H1", headerStyle); err != nil {
		return fmt.Errorf("export: style items: %w", err)
	}
	return f.SetColWidth(ItemsSheet, "A", "B", 30)
}

func writeSuppliersSheet(f *excelize.File, result *combination.Result, headerStyle int) error {
	rows := [][]interface{}{
		{"Supplier ID", "Supplier", "Items Won", "Subtotal"},
	}
	for _, b := range result.SupplierBreakdown {
		rows = append(rows, []interface{}{b.SupplierID, b.SupplierName, b.ItemCount, b.Subtotal})
	}

	if err := setRows(f, SuppliersSheet, rows); err != nil {
		return err
	}
	if err := f.SetCellStyle(SuppliersSheet, "A1", "D1", headerStyle); err != nil {
		return fmt.Errorf("export: style suppliers: %w", err)
	}
	return f.SetColWidth(SuppliersSheet, "A", "B", 24)
}

func setRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("export: write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
