package dto

import "github.com/eshaffer321/quote-optimizer/internal/domain/combination"

// CreateQuoteRequest is the body of POST /api/quotes.
type CreateQuoteRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SubmitProposalRequest is the body of PUT /api/quotes/{id}/proposals.
type SubmitProposalRequest struct {
	SupplierID   string                     `json:"supplier_id"`
	SupplierName string                     `json:"supplier_name"`
	Items        []combination.ProposalItem `json:"items"`
}

// ToProposal converts the request to the calculator's input shape.
func (r SubmitProposalRequest) ToProposal() combination.Proposal {
	return combination.Proposal{
		SupplierID:   r.SupplierID,
		SupplierName: r.SupplierName,
		Items:        r.Items,
	}
}

// BestCombinationRequest is the body of POST /api/best-combination.
type BestCombinationRequest struct {
	Proposals []combination.Proposal `json:"proposals"`
}

// Query parameter defaults
const (
	DefaultQuoteLimit      = 50
	DefaultComparisonLimit = 20
)
