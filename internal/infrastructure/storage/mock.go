package storage

import (
	"context"
	"sort"
	"sync"
)

// MockRepository is an in-memory implementation of Repository for testing.
// It stores all data in maps and slices, making tests fast and isolated.
type MockRepository struct {
	mu          sync.Mutex
	quotes      map[string]*Quote
	proposals   map[string][]*ProposalRecord // Keyed by quote_id, submission order
	comparisons map[string][]*ComparisonRecord

	// Hooks for test assertions
	SaveProposalCalled   bool
	SaveComparisonCalled bool
	LastSavedComparison  *ComparisonRecord

	// Error injection for testing error paths
	CreateQuoteErr         error
	GetQuoteErr            error
	ListQuotesErr          error
	SaveProposalErr        error
	ListProposalsErr       error
	DeleteProposalErr      error
	SaveComparisonErr      error
	GetLatestComparisonErr error
	ListComparisonsErr     error
}

// NewMockRepository creates a new mock repository for testing
func NewMockRepository() *MockRepository {
	return &MockRepository{
		quotes:      make(map[string]*Quote),
		proposals:   make(map[string][]*ProposalRecord),
		comparisons: make(map[string][]*ComparisonRecord),
	}
}

// Compile-time check that MockRepository implements Repository
var _ Repository = (*MockRepository)(nil)

// Close does nothing for mock
func (m *MockRepository) Close() error {
	return nil
}

// AddQuote seeds a quote directly (test helper)
func (m *MockRepository) AddQuote(quote *Quote) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *quote
	m.quotes[quote.ID] = &copied
}

// CreateQuote stores a copy of the quote
func (m *MockRepository) CreateQuote(_ context.Context, quote *Quote) error {
	if m.CreateQuoteErr != nil {
		return m.CreateQuoteErr
	}
	m.AddQuote(quote)
	return nil
}

// GetQuote retrieves a quote from the in-memory map
func (m *MockRepository) GetQuote(_ context.Context, id string) (*Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetQuoteErr != nil {
		return nil, m.GetQuoteErr
	}
	quote, ok := m.quotes[id]
	if !ok {
		return nil, nil
	}
	copied := *quote
	return &copied, nil
}

// ListQuotes filters and paginates the in-memory quotes, newest first
func (m *MockRepository) ListQuotes(_ context.Context, filters QuoteFilters) (*QuoteListResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListQuotesErr != nil {
		return nil, m.ListQuotesErr
	}
	filters = filters.normalized()

	matched := make([]*Quote, 0)
	for _, quote := range m.quotes {
		if filters.Status != "" && quote.Status != filters.Status {
			continue
		}
		copied := *quote
		matched = append(matched, &copied)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	start := min(filters.Offset, total)
	end := min(start+filters.Limit, total)

	return &QuoteListResult{
		Quotes:     matched[start:end],
		TotalCount: total,
		Limit:      filters.Limit,
		Offset:     filters.Offset,
	}, nil
}

// SaveProposal upserts by supplier, keeping the first submission's ID and time
func (m *MockRepository) SaveProposal(_ context.Context, record *ProposalRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveProposalCalled = true
	if m.SaveProposalErr != nil {
		return m.SaveProposalErr
	}

	copied := *record
	list := m.proposals[record.QuoteID]
	for i, existing := range list {
		if existing.SupplierID == record.SupplierID {
			copied.ID = existing.ID
			copied.SubmittedAt = existing.SubmittedAt
			list[i] = &copied
			record.ID = copied.ID
			record.SubmittedAt = copied.SubmittedAt
			return nil
		}
	}
	m.proposals[record.QuoteID] = append(list, &copied)
	return nil
}

// ListProposals returns copies of a quote's proposals in submission order
func (m *MockRepository) ListProposals(_ context.Context, quoteID string) ([]*ProposalRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListProposalsErr != nil {
		return nil, m.ListProposalsErr
	}
	records := make([]*ProposalRecord, 0, len(m.proposals[quoteID]))
	for _, record := range m.proposals[quoteID] {
		copied := *record
		records = append(records, &copied)
	}
	return records, nil
}

// DeleteProposal removes a supplier's proposal from memory
func (m *MockRepository) DeleteProposal(_ context.Context, quoteID, supplierID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteProposalErr != nil {
		return false, m.DeleteProposalErr
	}
	list := m.proposals[quoteID]
	for i, existing := range list {
		if existing.SupplierID == supplierID {
			m.proposals[quoteID] = append(list[:i:i], list[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// SaveComparison appends a comparison snapshot
func (m *MockRepository) SaveComparison(_ context.Context, record *ComparisonRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveComparisonCalled = true
	m.LastSavedComparison = record
	if m.SaveComparisonErr != nil {
		return m.SaveComparisonErr
	}
	copied := *record
	m.comparisons[record.QuoteID] = append(m.comparisons[record.QuoteID], &copied)
	return nil
}

// GetLatestComparison returns the last saved comparison for a quote
func (m *MockRepository) GetLatestComparison(_ context.Context, quoteID string) (*ComparisonRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetLatestComparisonErr != nil {
		return nil, m.GetLatestComparisonErr
	}
	list := m.comparisons[quoteID]
	if len(list) == 0 {
		return nil, nil
	}
	copied := *list[len(list)-1]
	return &copied, nil
}

// ListComparisons returns comparisons newest first
func (m *MockRepository) ListComparisons(_ context.Context, quoteID string, limit int) ([]*ComparisonRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListComparisonsErr != nil {
		return nil, m.ListComparisonsErr
	}
	if limit <= 0 {
		limit = 20
	}
	list := m.comparisons[quoteID]
	records := make([]*ComparisonRecord, 0, min(limit, len(list)))
	for i := len(list) - 1; i >= 0 && len(records) < limit; i-- {
		copied := *list[i]
		records = append(records, &copied)
	}
	return records, nil
}
