package combination

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrNoProposals is returned by CalculateChecked when there is nothing to compare.
	ErrNoProposals = errors.New("no proposals to compare")

	// ErrInvalidProposal is wrapped by every ValidationError.
	ErrInvalidProposal = errors.New("invalid proposal")
)

// FieldError describes one malformed field in the input.
type FieldError struct {
	Proposal int    // Index into the proposals slice
	Item     int    // Index into the proposal's items, -1 for proposal-level fields
	Field    string
	Reason   string
}

func (e FieldError) String() string {
	if e.Item < 0 {
		return fmt.Sprintf("proposals[%d].%s: %s", e.Proposal, e.Field, e.Reason)
	}
	return fmt.Sprintf("proposals[%d].items[%d].%s: %s", e.Proposal, e.Item, e.Field, e.Reason)
}

// ValidationError lists every problem found in a set of proposals.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.String())
	}
	return fmt.Sprintf("%s: %s", ErrInvalidProposal, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidProposal
}

// CalculateChecked validates the proposals before calculating, so callers can
// tell "no data" (ErrNoProposals) from "bad data" (*ValidationError) from success.
func CalculateChecked(proposals []Proposal) (*Result, error) {
	if len(proposals) == 0 {
		return nil, ErrNoProposals
	}
	if err := Validate(proposals); err != nil {
		return nil, err
	}
	return Calculate(proposals), nil
}

// Validate checks the structural contract Calculate relies on.
// Returns nil or a *ValidationError.
func Validate(proposals []Proposal) error {
	var fields []FieldError
	seen := make(map[string]int)

	for i, p := range proposals {
		if p.SupplierID == "" {
			fields = append(fields, FieldError{Proposal: i, Item: -1, Field: "supplier_id", Reason: "is required"})
		} else if first, dup := seen[p.SupplierID]; dup {
			fields = append(fields, FieldError{
				Proposal: i, Item: -1, Field: "supplier_id",
				Reason: fmt.Sprintf("duplicates proposals[%d]", first),
			})
		} else {
			seen[p.SupplierID] = i
		}

		for j, item := range p.Items {
			if item.ProductName == "" && item.ItemID == "" {
				fields = append(fields, FieldError{Proposal: i, Item: j, Field: "product_name", Reason: "is required"})
			}
			switch {
			case !finite(item.UnitPrice):
				fields = append(fields, FieldError{Proposal: i, Item: j, Field: "unit_price", Reason: "must be a finite number"})
			case item.UnitPrice < 0:
				fields = append(fields, FieldError{Proposal: i, Item: j, Field: "unit_price", Reason: "must not be negative"})
			}
			switch {
			case !finite(item.Quantity):
				fields = append(fields, FieldError{Proposal: i, Item: j, Field: "quantity", Reason: "must be a finite number"})
			case item.Quantity <= 0:
				fields = append(fields, FieldError{Proposal: i, Item: j, Field: "quantity", Reason: "must be positive"})
			}
			switch {
			case !finite(item.Total):
				fields = append(fields, FieldError{Proposal: i, Item: j, Field: "total", Reason: "must be a finite number"})
			case item.Total < 0:
				fields = append(fields, FieldError{Proposal: i, Item: j, Field: "total", Reason: "must not be negative"})
			}
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
