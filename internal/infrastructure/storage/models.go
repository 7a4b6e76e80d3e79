package storage

import (
	"encoding/json"
	"time"

	"github.com/eshaffer321/quote-optimizer/internal/domain/combination"
)

// Quote statuses
const (
	QuoteStatusOpen   = "open"
	QuoteStatusClosed = "closed"
)

// Quote is a client's request for supplier proposals
type Quote struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProposalRecord is a supplier's stored bid for a quote
type ProposalRecord struct {
	ID           string                     `json:"id"`
	QuoteID      string                     `json:"quote_id"`
	SupplierID   string                     `json:"supplier_id"`
	SupplierName string                     `json:"supplier_name"`
	Items        []combination.ProposalItem `json:"items"`
	SubmittedAt  time.Time                  `json:"submitted_at"`
	UpdatedAt    time.Time                  `json:"updated_at"`
}

// ToProposal converts the record to the calculator's input shape
func (r *ProposalRecord) ToProposal() combination.Proposal {
	items := make([]combination.ProposalItem, len(r.Items))
	copy(items, r.Items)
	return combination.Proposal{
		SupplierID:   r.SupplierID,
		SupplierName: r.SupplierName,
		Items:        items,
	}
}

// ComparisonRecord is a persisted best-combination snapshot
type ComparisonRecord struct {
	ID                string    `json:"id"`
	QuoteID           string    `json:"quote_id"`
	CreatedAt         time.Time `json:"created_at"`
	ProposalCount     int       `json:"proposal_count"`
	TotalCost         float64   `json:"total_cost"`
	TotalSavings      float64   `json:"total_savings"`
	SavingsPercentage float64   `json:"savings_percentage"`
	IsMultiSupplier   bool      `json:"is_multi_supplier"`
	SupplierCount     int       `json:"supplier_count"`

	Result *combination.Result `json:"result"`
}

// NewComparisonRecord copies the summary columns out of a result
func NewComparisonRecord(id, quoteID string, proposalCount int, result *combination.Result, at time.Time) *ComparisonRecord {
	return &ComparisonRecord{
		ID:                id,
		QuoteID:           quoteID,
		CreatedAt:         at,
		ProposalCount:     proposalCount,
		TotalCost:         result.TotalCost,
		TotalSavings:      result.TotalSavings,
		SavingsPercentage: result.SavingsPercentage,
		IsMultiSupplier:   result.IsMultiSupplier,
		SupplierCount:     len(result.UniqueSuppliers),
		Result:            result,
	}
}

// QuoteFilters defines filters for listing quotes
type QuoteFilters struct {
	Status string // Filter by status (empty = all)
	Limit  int    // Max results (0 = default 50)
	Offset int    // Pagination offset
}

// QuoteListResult contains paginated quote results
type QuoteListResult struct {
	Quotes     []*Quote `json:"quotes"`
	TotalCount int      `json:"total_count"`
	Limit      int      `json:"limit"`
	Offset     int      `json:"offset"`
}

func (f QuoteFilters) normalized() QuoteFilters {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

func encodeItems(items []combination.ProposalItem) (string, error) {
	if items == nil {
		items = []combination.ProposalItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeItems(data string) ([]combination.ProposalItem, error) {
	items := []combination.ProposalItem{}
	if data == "" {
		return items, nil
	}
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func decodeResult(data string) (*combination.Result, error) {
	var result combination.Result
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, err
	}
	return &result, nil
}
