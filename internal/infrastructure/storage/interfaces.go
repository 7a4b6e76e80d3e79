package storage

import "context"

// Repository defines the complete storage interface.
// This interface allows swapping implementations (SQLite, PostgreSQL)
// and makes testing with mocks straightforward.
//
// Lookups of missing rows return nil with a nil error.
type Repository interface {
	QuoteRepository
	ProposalRepository
	ComparisonRepository
	Close() error
}

// QuoteRepository handles quote requests
type QuoteRepository interface {
	// CreateQuote inserts a new quote
	CreateQuote(ctx context.Context, quote *Quote) error

	// GetQuote retrieves a quote by ID
	GetQuote(ctx context.Context, id string) (*Quote, error)

	// ListQuotes returns quotes matching the filters, newest first
	ListQuotes(ctx context.Context, filters QuoteFilters) (*QuoteListResult, error)
}

// ProposalRepository handles supplier proposals
type ProposalRepository interface {
	// SaveProposal inserts or replaces a supplier's proposal for a quote.
	// The original submission time and ID are kept on replace and written
	// back into record.
	SaveProposal(ctx context.Context, record *ProposalRecord) error

	// ListProposals returns a quote's proposals in submission order
	ListProposals(ctx context.Context, quoteID string) ([]*ProposalRecord, error)

	// DeleteProposal removes a supplier's proposal, reporting whether it existed
	DeleteProposal(ctx context.Context, quoteID, supplierID string) (bool, error)
}

// ComparisonRepository handles best-combination snapshots
type ComparisonRepository interface {
	// SaveComparison stores a computed comparison
	SaveComparison(ctx context.Context, record *ComparisonRecord) error

	// GetLatestComparison returns the most recent comparison for a quote
	GetLatestComparison(ctx context.Context, quoteID string) (*ComparisonRecord, error)

	// ListComparisons returns a quote's comparisons, newest first
	ListComparisons(ctx context.Context, quoteID string, limit int) ([]*ComparisonRecord, error)
}
