// Package validator provides sanity checks for supplier proposals.
//
// Suppliers quote both a unit price and a line total. The best-combination
// calculator trusts the quoted total, so this package only reports lines whose
// total disagrees with unit price * quantity. Nothing is rejected here: the
// warnings are surfaced to whoever reviews the comparison.
package validator

import (
	"fmt"
	"math"

	"github.com/eshaffer321/quote-optimizer/internal/domain/combination"
)

// DefaultTolerance allows 2 cents of rounding per line.
const DefaultTolerance = 0.02

// LineWarning describes a line whose total does not match its price.
type LineWarning struct {
	ProductName string
	Expected    float64 // UnitPrice * Quantity, rounded to cents
	Quoted      float64
	Difference  float64 // Quoted - Expected
	Reason      string
}

// ProposalValidation contains the result of checking one proposal.
type ProposalValidation struct {
	SupplierID string

	// Consistent is true if every line total matches its price
	Consistent bool

	// QuotedTotal is the sum of the supplier's line totals
	QuotedTotal float64

	// ComputedTotal is the sum of UnitPrice * Quantity
	ComputedTotal float64

	Warnings []LineWarning
}

// ValidateProposal compares each line total with unit price * quantity.
// A tolerance <= 0 falls back to DefaultTolerance.
func ValidateProposal(p combination.Proposal, tolerance float64) *ProposalValidation {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	result := &ProposalValidation{
		SupplierID: p.SupplierID,
		Consistent: true,
	}

	for _, item := range p.Items {
		expected := roundToCents(item.UnitPrice * item.Quantity)
		quoted := roundToCents(item.Total)
		diff := roundToCents(quoted - expected)

		result.QuotedTotal += quoted
		result.ComputedTotal += expected

		if math.Abs(diff) <= tolerance {
			continue
		}

		var reason string
		if diff < 0 {
			reason = fmt.Sprintf("quoted total ($%.2f) is $%.2f below %.2f x $%.2f - possible unlisted discount",
				quoted, -diff, item.Quantity, item.UnitPrice)
		} else {
			reason = fmt.Sprintf("quoted total ($%.2f) is $%.2f above %.2f x $%.2f - possible fee folded into the line",
				quoted, diff, item.Quantity, item.UnitPrice)
		}

		result.Consistent = false
		result.Warnings = append(result.Warnings, LineWarning{
			ProductName: item.ProductName,
			Expected:    expected,
			Quoted:      quoted,
			Difference:  diff,
			Reason:      reason,
		})
	}

	result.QuotedTotal = roundToCents(result.QuotedTotal)
	result.ComputedTotal = roundToCents(result.ComputedTotal)

	return result
}

// ValidateAll validates every proposal, keyed by supplier ID.
func ValidateAll(proposals []combination.Proposal, tolerance float64) map[string]*ProposalValidation {
	results := make(map[string]*ProposalValidation, len(proposals))
	for _, p := range proposals {
		results[p.SupplierID] = ValidateProposal(p, tolerance)
	}
	return results
}

// roundToCents rounds a float to 2 decimal places.
func roundToCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
