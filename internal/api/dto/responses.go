package dto

import (
	"sort"
	"time"

	"github.com/eshaffer321/quote-optimizer/internal/domain/combination"
	"github.com/eshaffer321/quote-optimizer/internal/domain/validator"
	"github.com/eshaffer321/quote-optimizer/internal/infrastructure/storage"
)

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// NewHealthResponse creates a health response with current timestamp.
func NewHealthResponse() HealthResponse {
	return HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// QuoteResponse represents a quote in API responses.
type QuoteResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

// QuoteListResponse is a paginated list of quotes.
type QuoteListResponse struct {
	Quotes     []QuoteResponse `json:"quotes"`
	TotalCount int             `json:"total_count"`
	Limit      int             `json:"limit"`
	Offset     int             `json:"offset"`
}

// WarningResponse is a line whose quoted total disagrees with its unit price.
type WarningResponse struct {
	SupplierID  string  `json:"supplier_id"`
	ProductName string  `json:"product_name"`
	Expected    float64 `json:"expected"`
	Quoted      float64 `json:"quoted"`
	Reason      string  `json:"reason"`
}

// ProposalResponse represents a stored supplier proposal.
type ProposalResponse struct {
	ID           string                     `json:"id"`
	QuoteID      string                     `json:"quote_id"`
	SupplierID   string                     `json:"supplier_id"`
	SupplierName string                     `json:"supplier_name"`
	Items        []combination.ProposalItem `json:"items"`
	QuotedTotal  float64                    `json:"quoted_total"`
	SubmittedAt  string                     `json:"submitted_at"`
	UpdatedAt    string                     `json:"updated_at"`
	Warnings     []WarningResponse          `json:"warnings,omitempty"`
}

// ProposalListResponse lists a quote's proposals in submission order.
type ProposalListResponse struct {
	Proposals []ProposalResponse `json:"proposals"`
	Count     int                `json:"count"`
}

// ComparisonResponse is a full comparison snapshot.
type ComparisonResponse struct {
	ID            string              `json:"id"`
	QuoteID       string              `json:"quote_id"`
	CreatedAt     string              `json:"created_at"`
	ProposalCount int                 `json:"proposal_count"`
	Result        *combination.Result `json:"result"`
	Warnings      []WarningResponse   `json:"warnings,omitempty"`
}

// ComparisonSummaryResponse is a comparison without the per-item detail.
type ComparisonSummaryResponse struct {
	ID                string  `json:"id"`
	CreatedAt         string  `json:"created_at"`
	ProposalCount     int     `json:"proposal_count"`
	TotalCost         float64 `json:"total_cost"`
	TotalSavings      float64 `json:"total_savings"`
	SavingsPercentage float64 `json:"savings_percentage"`
	IsMultiSupplier   bool    `json:"is_multi_supplier"`
	SupplierCount     int     `json:"supplier_count"`
}

// ComparisonListResponse lists a quote's comparisons, newest first.
type ComparisonListResponse struct {
	Comparisons []ComparisonSummaryResponse `json:"comparisons"`
	Count       int                         `json:"count"`
}

// BestCombinationResponse is returned by the stateless calculator endpoint.
type BestCombinationResponse struct {
	*combination.Result
	Warnings []WarningResponse `json:"warnings,omitempty"`
}

// NewQuoteResponse converts a storage quote.
func NewQuoteResponse(q *storage.Quote) QuoteResponse {
	return QuoteResponse{
		ID:          q.ID,
		Title:       q.Title,
		Description: q.Description,
		Status:      q.Status,
		CreatedAt:   q.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// NewProposalResponse converts a storage proposal and its sanity check.
func NewProposalResponse(r *storage.ProposalRecord, v *validator.ProposalValidation) ProposalResponse {
	items := r.Items
	if items == nil {
		items = []combination.ProposalItem{}
	}
	resp := ProposalResponse{
		ID:           r.ID,
		QuoteID:      r.QuoteID,
		SupplierID:   r.SupplierID,
		SupplierName: r.SupplierName,
		Items:        items,
		SubmittedAt:  r.SubmittedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    r.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if v != nil {
		resp.QuotedTotal = v.QuotedTotal
		resp.Warnings = NewWarningResponses(map[string]*validator.ProposalValidation{r.SupplierID: v})
	}
	return resp
}

// NewComparisonResponse converts a stored comparison.
func NewComparisonResponse(r *storage.ComparisonRecord, validations map[string]*validator.ProposalValidation) ComparisonResponse {
	return ComparisonResponse{
		ID:            r.ID,
		QuoteID:       r.QuoteID,
		CreatedAt:     r.CreatedAt.UTC().Format(time.RFC3339),
		ProposalCount: r.ProposalCount,
		Result:        r.Result,
		Warnings:      NewWarningResponses(validations),
	}
}

// NewComparisonSummaryResponse converts a stored comparison without its result.
func NewComparisonSummaryResponse(r *storage.ComparisonRecord) ComparisonSummaryResponse {
	return ComparisonSummaryResponse{
		ID:                r.ID,
		CreatedAt:         r.CreatedAt.UTC().Format(time.RFC3339),
		ProposalCount:     r.ProposalCount,
		TotalCost:         r.TotalCost,
		TotalSavings:      r.TotalSavings,
		SavingsPercentage: r.SavingsPercentage,
		IsMultiSupplier:   r.IsMultiSupplier,
		SupplierCount:     r.SupplierCount,
	}
}

// NewWarningResponses flattens validations, sorted by supplier ID.
func NewWarningResponses(validations map[string]*validator.ProposalValidation) []WarningResponse {
	ids := make([]string, 0, len(validations))
	for id := range validations {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var warnings []WarningResponse
	for _, id := range ids {
		for _, w := range validations[id].Warnings {
			warnings = append(warnings, WarningResponse{
				SupplierID:  id,
				ProductName: w.ProductName,
				Expected:    w.Expected,
				Quoted:      w.Quoted,
				Reason:      w.Reason,
			})
		}
	}
	return warnings
}
