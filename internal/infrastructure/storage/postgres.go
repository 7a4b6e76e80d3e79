package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// PostgresStore provides PostgreSQL access through a pgx connection pool.
// It implements the Repository interface.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// Compile-time check that PostgresStore implements Repository
var _ Repository = (*PostgresStore)(nil)

// NewPostgresStore connects to databaseURL, verifies the connection and runs migrations
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	if databaseURL == "" {
		return nil, errors.New("database URL is required for postgres storage")
	}

	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid database URL: %w", err)
	}

	cfg.MaxConns = 10
	cfg.MinConns = 2
	cfg.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres connection failed: %w", err)
	}

	// goose needs database/sql; borrow the pool through pgx's stdlib adapter
	db := stdlib.OpenDBFromPool(pool)
	migrateErr := runMigrations(db, "postgres")
	_ = db.Close()
	if migrateErr != nil {
		pool.Close()
		return nil, migrateErr
	}

	return &PostgresStore{pool: pool}, nil
}

// Close closes the pool
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// CreateQuote inserts a new quote
func (s *PostgresStore) CreateQuote(ctx context.Context, quote *Quote) error {
	_, err := s.pool.Exec(ctx, `
	INSERT INTO quotes (id, title, description, status, created_at)
	VALUES ($1, $2, $3, $4, $5)
	`, quote.ID, quote.Title, quote.Description, quote.Status, quote.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert quote %s: %w", quote.ID, err)
	}
	return nil
}

// GetQuote retrieves a quote by ID
func (s *PostgresStore) GetQuote(ctx context.Context, id string) (*Quote, error) {
	quote := &Quote{}
	err := s.pool.QueryRow(ctx, `
	SELECT id, title, description, status, created_at
	FROM quotes WHERE id = $1
	`, id).Scan(&quote.ID, &quote.Title, &quote.Description, &quote.Status, &quote.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return quote, nil
}

// ListQuotes returns quotes matching the filters, newest first
func (s *PostgresStore) ListQuotes(ctx context.Context, filters QuoteFilters) (*QuoteListResult, error) {
	filters = filters.normalized()

	var total int
	err := s.pool.QueryRow(ctx, `
	SELECT COUNT(*) FROM quotes WHERE ($1::text = '' OR status = $1)
	`, filters.Status).Scan(&total)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, `
	SELECT id, title, description, status, created_at
	FROM quotes WHERE ($1::text = '' OR status = $1)
	ORDER BY created_at DESC, id
	LIMIT $2 OFFSET $3
	`, filters.Status, filters.Limit, filters.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := &QuoteListResult{
		Quotes:     make([]*Quote, 0),
		TotalCount: total,
		Limit:      filters.Limit,
		Offset:     filters.Offset,
	}
	for rows.Next() {
		quote := &Quote{}
		if err := rows.Scan(&quote.ID, &quote.Title, &quote.Description, &quote.Status, &quote.CreatedAt); err != nil {
			return nil, err
		}
		result.Quotes = append(result.Quotes, quote)
	}

	return result, rows.Err()
}

// SaveProposal inserts or replaces a supplier's proposal
func (s *PostgresStore) SaveProposal(ctx context.Context, record *ProposalRecord) error {
	itemsJSON, err := encodeItems(record.Items)
	if err != nil {
		return fmt.Errorf("failed to encode items: %w", err)
	}

	err = s.pool.QueryRow(ctx, `
	INSERT INTO proposals (id, quote_id, supplier_id, supplier_name, items_json, submitted_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (quote_id, supplier_id) DO UPDATE SET
		supplier_name = EXCLUDED.supplier_name,
		items_json = EXCLUDED.items_json,
		updated_at = EXCLUDED.updated_at
	RETURNING id, submitted_at
	`,
		record.ID,
		record.QuoteID,
		record.SupplierID,
		record.SupplierName,
		itemsJSON,
		record.SubmittedAt.UTC(),
		record.UpdatedAt.UTC(),
	).Scan(&record.ID, &record.SubmittedAt)
	if err != nil {
		return fmt.Errorf("failed to save proposal for supplier %s: %w", record.SupplierID, err)
	}
	return nil
}

// ListProposals returns a quote's proposals in submission order
func (s *PostgresStore) ListProposals(ctx context.Context, quoteID string) ([]*ProposalRecord, error) {
	rows, err := s.pool.Query(ctx, `
	SELECT id, quote_id, supplier_id, supplier_name, items_json, submitted_at, updated_at
	FROM proposals WHERE quote_id = $1
	ORDER BY submitted_at, supplier_id
	`, quoteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*ProposalRecord, 0)
	for rows.Next() {
		record := &ProposalRecord{}
		var itemsJSON string
		if err := rows.Scan(
			&record.ID,
			&record.QuoteID,
			&record.SupplierID,
			&record.SupplierName,
			&itemsJSON,
			&record.SubmittedAt,
			&record.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if record.Items, err = decodeItems(itemsJSON); err != nil {
			return nil, fmt.Errorf("corrupt items for proposal %s: %w", record.ID, err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// DeleteProposal removes a supplier's proposal
func (s *PostgresStore) DeleteProposal(ctx context.Context, quoteID, supplierID string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM proposals WHERE quote_id = $1 AND supplier_id = $2`, quoteID, supplierID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// SaveComparison stores a computed comparison
func (s *PostgresStore) SaveComparison(ctx context.Context, record *ComparisonRecord) error {
	resultJSON, err := json.Marshal(record.Result)
	if err != nil {
		return fmt.Errorf("failed to encode comparison result: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
	INSERT INTO comparisons
	(id, quote_id, created_at, proposal_count, total_cost, total_savings,
	 savings_percentage, is_multi_supplier, supplier_count, result_json)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		record.ID,
		record.QuoteID,
		record.CreatedAt.UTC(),
		record.ProposalCount,
		record.TotalCost,
		record.TotalSavings,
		record.SavingsPercentage,
		record.IsMultiSupplier,
		record.SupplierCount,
		string(resultJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to insert comparison %s: %w", record.ID, err)
	}
	return nil
}

// GetLatestComparison returns the most recent comparison for a quote
func (s *PostgresStore) GetLatestComparison(ctx context.Context, quoteID string) (*ComparisonRecord, error) {
	records, err := s.ListComparisons(ctx, quoteID, 1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

// ListComparisons returns a quote's comparisons, newest first
func (s *PostgresStore) ListComparisons(ctx context.Context, quoteID string, limit int) ([]*ComparisonRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.pool.Query(ctx, `
	SELECT id, quote_id, created_at, proposal_count, total_cost, total_savings,
	       savings_percentage, is_multi_supplier, supplier_count, result_json
	FROM comparisons WHERE quote_id = $1
	ORDER BY created_at DESC, id DESC
	LIMIT $2
	`, quoteID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*ComparisonRecord, 0)
	for rows.Next() {
		record := &ComparisonRecord{}
		var resultJSON string
		if err := rows.Scan(
			&record.ID,
			&record.QuoteID,
			&record.CreatedAt,
			&record.ProposalCount,
			&record.TotalCost,
			&record.TotalSavings,
			&record.SavingsPercentage,
			&record.IsMultiSupplier,
			&record.SupplierCount,
			&resultJSON,
		); err != nil {
			return nil, err
		}
		if record.Result, err = decodeResult(resultJSON); err != nil {
			return nil, fmt.Errorf("corrupt result for comparison %s: %w", record.ID, err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}
