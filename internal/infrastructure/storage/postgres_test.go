package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshaffer321/quote-optimizer/internal/domain/combination"
)

// Runs only against a real database: DATABASE_URL=postgres://... go test ./...
func TestPostgresStore_RoundTrip(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	store, err := NewPostgresStore(ctx, dsn)
	require.NoError(t, err)
	defer store.Close()

	now := time.Now().UTC().Truncate(time.Millisecond)
	quoteID := uuid.NewString()
	require.NoError(t, store.CreateQuote(ctx, &Quote{ID: quoteID, Title: "Integration", Status: QuoteStatusOpen, CreatedAt: now}))

	record := &ProposalRecord{
		ID: uuid.NewString(), QuoteID: quoteID, SupplierID: "A", SupplierName: "Supplier A",
		Items:       []combination.ProposalItem{{ProductName: "Cimento", UnitPrice: 10, Quantity: 5, Total: 50}},
		SubmittedAt: now, UpdatedAt: now,
	}
	require.NoError(t, store.SaveProposal(ctx, record))

	records, err := store.ListProposals(ctx, quoteID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Cimento", records[0].Items[0].ProductName)

	result := combination.Calculate([]combination.Proposal{records[0].ToProposal()})
	require.NoError(t, store.SaveComparison(ctx, NewComparisonRecord(uuid.NewString(), quoteID, 1, result, now)))

	latest, err := store.GetLatestComparison(ctx, quoteID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 50.0, latest.TotalCost)

	deleted, err := store.DeleteProposal(ctx, quoteID, "A")
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), configFor("mongo"))
	assert.Error(t, err)
}

func TestOpen_PostgresRequiresURL(t *testing.T) {
	_, err := Open(context.Background(), configFor("postgres"))
	assert.Error(t, err)
}
