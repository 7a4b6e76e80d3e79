package export

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/eshaffer321/quote-optimizer/internal/domain/combination"
)

// ContentTypePDF is the MIME type of WritePDF output.
const ContentTypePDF = "application/pdf"

// WritePDF writes result as a single A4 report: summary, winning items and
// the per-supplier purchase list.
func WritePDF(w io.Writer, title string, result *combination.Result) error {
	if result == nil {
		return fmt.Errorf("export: nil result")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(190, 10, tr(title))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(190, 6, "Generated on: "+time.Now().Format("2006-01-02 15:04:05"))
	pdf.Ln(10)

	sectionHeader(pdf, "Summary")
	summaryLine(pdf, "Total cost", money(result.TotalCost))
	summaryLine(pdf, "Total savings", fmt.Sprintf("%s (%.1f%%)", money(result.TotalSavings), result.SavingsPercentage))
	summaryLine(pdf, "Suppliers used", fmt.Sprintf("%d", len(result.UniqueSuppliers)))
	summaryLine(pdf, "Multi-supplier", yesNo(result.IsMultiSupplier))
	if single := result.BestSingleSupplier; single != nil {
		summaryLine(pdf, "Best single supplier", tr(fmt.Sprintf("%s at %s", single.SupplierName, money(single.TotalCost))))
		summaryLine(pdf, "Saved vs single supplier", money(single.SavingsVsSingleSupplier))
	}
	pdf.Ln(6)

	sectionHeader(pdf, "Items")
	tableHeader(pdf, []string{"Item", "Supplier", "Unit", "Qty", "Total", "Savings"}, itemWidths)
	pdf.SetFont("Arial", "", 9)
	for _, item := range result.Items {
		pdf.CellFormat(itemWidths[0], 6, tr(truncate(item.ItemName, 32)), "", 0, "L", false, 0, "")
		pdf.CellFormat(itemWidths[1], 6, tr(truncate(item.BestSupplierName, 26)), "", 0, "L", false, 0, "")
		pdf.CellFormat(itemWidths[2], 6, money(item.BestPrice), "", 0, "R", false, 0, "")
		pdf.CellFormat(itemWidths[3], 6, fmt.Sprintf("%g", item.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(itemWidths[4], 6, money(item.TotalItemCost), "", 0, "R", false, 0, "")
		pdf.CellFormat(itemWidths[5], 6, money(item.Savings), "", 0, "R", false, 0, "")
		pdf.Ln(6)
	}
	pdf.Ln(6)

	sectionHeader(pdf, "Purchase list by supplier")
	for _, b := range result.SupplierBreakdown {
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(190, 7, tr(fmt.Sprintf("%s: %d item(s), %s", b.SupplierName, b.ItemCount, money(b.Subtotal))))
		pdf.Ln(7)
		pdf.SetFont("Arial", "", 9)
		for _, item := range b.Items {
			pdf.Cell(10, 5, "")
			pdf.Cell(180, 5, tr(fmt.Sprintf("%g x %s = %s", item.Quantity, item.ItemName, money(item.TotalItemCost))))
			pdf.Ln(5)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("export: write pdf: %w", err)
	}
	return nil
}

var itemWidths = []float64{60, 45, 20, 15, 25, 25}

func sectionHeader(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Arial", "B", 13)
	pdf.SetFillColor(245, 245, 245)
	pdf.CellFormat(190, 8, text, "", 1, "L", true, 0, "")
	pdf.Ln(2)
}

func summaryLine(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(60, 6, label+":")
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(130, 6, value)
	pdf.Ln(6)
}

func tableHeader(pdf *gofpdf.Fpdf, columns []string, widths []float64) {
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, col := range columns {
		align := "L"
		if i >= 2 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 7, col, "", 0, align, true, 0, "")
	}
	pdf.Ln(7)
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
