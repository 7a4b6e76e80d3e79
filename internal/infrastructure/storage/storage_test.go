package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshaffer321/quote-optimizer/internal/domain/combination"
)

// createTempStore opens a fresh SQLite database under t.TempDir()
func createTempStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "quotes_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func seedQuote(t *testing.T, repo Repository, id string, createdAt time.Time) *Quote {
	t.Helper()
	quote := &Quote{
		ID:        id,
		Title:     "Reforma da fachada " + id,
		Status:    QuoteStatusOpen,
		CreatedAt: createdAt,
	}
	require.NoError(t, repo.CreateQuote(context.Background(), quote))
	return quote
}

func TestSQLiteStore_QuoteRoundTrip(t *testing.T) {
	store := createTempStore(t)
	ctx := context.Background()

	created := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	seedQuote(t, store, "quote-1", created)

	quote, err := store.GetQuote(ctx, "quote-1")
	require.NoError(t, err)
	require.NotNil(t, quote)
	assert.Equal(t, "Reforma da fachada quote-1", quote.Title)
	assert.Equal(t, QuoteStatusOpen, quote.Status)
	assert.True(t, created.Equal(quote.CreatedAt))
}

func TestSQLiteStore_GetQuote_Missing(t *testing.T) {
	store := createTempStore(t)

	quote, err := store.GetQuote(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, quote)
}

func TestSQLiteStore_ListQuotes(t *testing.T) {
	store := createTempStore(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	seedQuote(t, store, "q-1", base)
	seedQuote(t, store, "q-2", base.Add(time.Hour))
	closed := &Quote{ID: "q-3", Title: "Closed", Status: QuoteStatusClosed, CreatedAt: base.Add(2 * time.Hour)}
	require.NoError(t, store.CreateQuote(ctx, closed))

	t.Run("newest first", func(t *testing.T) {
		result, err := store.ListQuotes(ctx, QuoteFilters{})
		require.NoError(t, err)
		assert.Equal(t, 3, result.TotalCount)
		assert.Equal(t, 50, result.Limit)
		require.Len(t, result.Quotes, 3)
		assert.Equal(t, "q-3", result.Quotes[0].ID)
		assert.Equal(t, "q-1", result.Quotes[2].ID)
	})

	t.Run("filters by status", func(t *testing.T) {
		result, err := store.ListQuotes(ctx, QuoteFilters{Status: QuoteStatusOpen})
		require.NoError(t, err)
		assert.Equal(t, 2, result.TotalCount)
		assert.Len(t, result.Quotes, 2)
	})

	t.Run("paginates", func(t *testing.T) {
		result, err := store.ListQuotes(ctx, QuoteFilters{Limit: 1, Offset: 1})
		require.NoError(t, err)
		assert.Equal(t, 3, result.TotalCount)
		require.Len(t, result.Quotes, 1)
		assert.Equal(t, "q-2", result.Quotes[0].ID)
	})
}

func TestSQLiteStore_SaveProposal_Upsert(t *testing.T) {
	store := createTempStore(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	seedQuote(t, store, "q-1", base)

	first := &ProposalRecord{
		ID:           "p-1",
		QuoteID:      "q-1",
		SupplierID:   "A",
		SupplierName: "Supplier A",
		Items: []combination.ProposalItem{
			{ProductName: "Cimento", UnitPrice: 10, Quantity: 5, Total: 50},
		},
		SubmittedAt: base.Add(time.Hour),
		UpdatedAt:   base.Add(time.Hour),
	}
	require.NoError(t, store.SaveProposal(ctx, first))

	// Resubmission with a new ID keeps the original ID and submission time
	revised := &ProposalRecord{
		ID:           "p-2",
		QuoteID:      "q-1",
		SupplierID:   "A",
		SupplierName: "Supplier A Ltda",
		Items: []combination.ProposalItem{
			{ProductName: "Cimento", UnitPrice: 9, Quantity: 5, Total: 45},
			{ProductName: "Areia", UnitPrice: 3, Quantity: 10, Total: 30},
		},
		SubmittedAt: base.Add(3 * time.Hour),
		UpdatedAt:   base.Add(3 * time.Hour),
	}
	require.NoError(t, store.SaveProposal(ctx, revised))
	assert.Equal(t, "p-1", revised.ID)
	assert.True(t, base.Add(time.Hour).Equal(revised.SubmittedAt))

	records, err := store.ListProposals(ctx, "q-1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Supplier A Ltda", records[0].SupplierName)
	require.Len(t, records[0].Items, 2)
	assert.Equal(t, 9.0, records[0].Items[0].UnitPrice)
	assert.True(t, base.Add(3*time.Hour).Equal(records[0].UpdatedAt))
}

func TestSQLiteStore_ListProposals_SubmissionOrder(t *testing.T) {
	store := createTempStore(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	seedQuote(t, store, "q-1", base)

	for i, supplier := range []string{"C", "A", "B"} {
		at := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, store.SaveProposal(ctx, &ProposalRecord{
			ID: "p-" + supplier, QuoteID: "q-1", SupplierID: supplier,
			SubmittedAt: at, UpdatedAt: at,
		}))
	}

	records, err := store.ListProposals(ctx, "q-1")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "C", records[0].SupplierID)
	assert.Equal(t, "A", records[1].SupplierID)
	assert.Equal(t, "B", records[2].SupplierID)
	assert.NotNil(t, records[0].Items, "nil items should come back as an empty list")
}

func TestSQLiteStore_SaveProposal_UnknownQuote(t *testing.T) {
	store := createTempStore(t)
	now := time.Now().UTC()

	err := store.SaveProposal(context.Background(), &ProposalRecord{
		ID: "p-1", QuoteID: "missing", SupplierID: "A", SubmittedAt: now, UpdatedAt: now,
	})
	assert.Error(t, err, "foreign key should reject proposals for unknown quotes")
}

func TestSQLiteStore_DeleteProposal(t *testing.T) {
	store := createTempStore(t)
	ctx := context.Background()
	now := time.Now().UTC()
	seedQuote(t, store, "q-1", now)
	require.NoError(t, store.SaveProposal(ctx, &ProposalRecord{
		ID: "p-1", QuoteID: "q-1", SupplierID: "A", SubmittedAt: now, UpdatedAt: now,
	}))

	deleted, err := store.DeleteProposal(ctx, "q-1", "A")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.DeleteProposal(ctx, "q-1", "A")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestSQLiteStore_Comparisons(t *testing.T) {
	store := createTempStore(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	seedQuote(t, store, "q-1", base)

	result := combination.Calculate([]combination.Proposal{
		{SupplierID: "A", SupplierName: "Supplier A", Items: []combination.ProposalItem{{ProductName: "Cimento", UnitPrice: 10, Quantity: 5, Total: 50}}},
		{SupplierID: "B", SupplierName: "Supplier B", Items: []combination.ProposalItem{{ProductName: "Cimento", UnitPrice: 8, Quantity: 5, Total: 40}}},
	})

	older := NewComparisonRecord("c-1", "q-1", 2, result, base.Add(time.Hour))
	newer := NewComparisonRecord("c-2", "q-1", 2, result, base.Add(2*time.Hour))
	require.NoError(t, store.SaveComparison(ctx, older))
	require.NoError(t, store.SaveComparison(ctx, newer))

	latest, err := store.GetLatestComparison(ctx, "q-1")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "c-2", latest.ID)
	assert.Equal(t, 2, latest.ProposalCount)
	assert.Equal(t, 40.0, latest.TotalCost)
	assert.Equal(t, 10.0, latest.TotalSavings)
	assert.False(t, latest.IsMultiSupplier)
	assert.Equal(t, 1, latest.SupplierCount)
	require.NotNil(t, latest.Result)
	assert.Equal(t, "B", latest.Result.Items[0].BestSupplierID)

	all, err := store.ListComparisons(ctx, "q-1", 10)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "c-2", all[0].ID)
	assert.Equal(t, "c-1", all[1].ID)

	none, err := store.GetLatestComparison(ctx, "other")
	require.NoError(t, err)
	assert.Nil(t, none)
}
