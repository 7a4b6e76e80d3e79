package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/eshaffer321/quote-optimizer/internal/domain/combination"
	"github.com/eshaffer321/quote-optimizer/internal/domain/validator"
)

// PrintComparison prints a best-combination result as a plain-text report
func PrintComparison(w io.Writer, result *combination.Result, validations map[string]*validator.ProposalValidation) {
	fmt.Fprintln(w, "Best combination")
	fmt.Fprintln(w, strings.Repeat("-", 60))

	for _, item := range result.Items {
		fmt.Fprintf(w, "%-28s %-18s %8g x $%-9.2f = $%.2f\n",
			truncate(item.ItemName, 28),
			truncate(item.BestSupplierName, 18),
			item.Quantity,
			item.BestPrice,
			item.TotalItemCost)
		if item.Savings > 0 {
			fmt.Fprintf(w, "%-28s saves $%.2f (%.1f%%) vs worst offer\n", "", item.Savings, item.SavingsPercentage)
		}
	}

	fmt.Fprintln(w, strings.Repeat("-", 60))
	fmt.Fprintf(w, "Total: $%.2f | Savings: $%.2f (%.1f%%) | Suppliers: %d\n",
		result.TotalCost,
		result.TotalSavings,
		result.SavingsPercentage,
		len(result.UniqueSuppliers))

	if single := result.BestSingleSupplier; single != nil {
		fmt.Fprintf(w, "Best single supplier: %s at $%.2f (combination saves $%.2f)\n",
			single.SupplierName, single.TotalCost, single.SavingsVsSingleSupplier)
	}

	if result.IsMultiSupplier {
		fmt.Fprintln(w, "\nPurchase list:")
		for _, b := range result.SupplierBreakdown {
			fmt.Fprintf(w, "  %s: %d item(s), $%.2f\n", b.SupplierName, b.ItemCount, b.Subtotal)
		}
	}

	printWarnings(w, validations)
}

func printWarnings(w io.Writer, validations map[string]*validator.ProposalValidation) {
	ids := make([]string, 0, len(validations))
	for id, v := range validations {
		if !v.Consistent {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return
	}
	sort.Strings(ids)

	fmt.Fprintln(w, "\nWarnings:")
	for _, id := range ids {
		for _, warning := range validations[id].Warnings {
			fmt.Fprintf(w, "  - %s / %s: %s\n", id, warning.ProductName, warning.Reason)
		}
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
