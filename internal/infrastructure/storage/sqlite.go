package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore provides SQLite database access for quotes, proposals and comparisons.
// It implements the Repository interface.
type SQLiteStore struct {
	db *sql.DB
}

// Compile-time check that SQLiteStore implements Repository
var _ Repository = (*SQLiteStore)(nil)

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	// One writer at a time; SQLite serializes writes anyway
	db.SetMaxOpenConns(1)

	if err := runMigrations(db, "sqlite3"); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateQuote inserts a new quote
func (s *SQLiteStore) CreateQuote(ctx context.Context, quote *Quote) error {
	_, err := s.db.ExecContext(ctx, `
	INSERT INTO quotes (id, title, description, status, created_at)
	VALUES (?, ?, ?, ?, ?)
	`, quote.ID, quote.Title, quote.Description, quote.Status, quote.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert quote %s: %w", quote.ID, err)
	}
	return nil
}

// GetQuote retrieves a quote by ID
func (s *SQLiteStore) GetQuote(ctx context.Context, id string) (*Quote, error) {
	quote := &Quote{}
	err := s.db.QueryRowContext(ctx, `
	SELECT id, title, description, status, created_at
	FROM quotes WHERE id = ?
	`, id).Scan(&quote.ID, &quote.Title, &quote.Description, &quote.Status, &quote.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return quote, nil
}

// ListQuotes returns quotes matching the filters, newest first
func (s *SQLiteStore) ListQuotes(ctx context.Context, filters QuoteFilters) (*QuoteListResult, error) {
	filters = filters.normalized()

	where := ""
	args := []interface{}{}
	if filters.Status != "" {
		where = "WHERE status = ?"
		args = append(args, filters.Status)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM quotes "+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	query := `
	SELECT id, title, description, status, created_at
	FROM quotes ` + where + `
	ORDER BY created_at DESC, id
	LIMIT ? OFFSET ?`

	rows, err := s.db.QueryContext(ctx, query, append(args, filters.Limit, filters.Offset)...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

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
func (s *SQLiteStore) SaveProposal(ctx context.Context, record *ProposalRecord) error {
	itemsJSON, err := encodeItems(record.Items)
	if err != nil {
		return fmt.Errorf("failed to encode items: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
	INSERT INTO proposals (id, quote_id, supplier_id, supplier_name, items_json, submitted_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (quote_id, supplier_id) DO UPDATE SET
		supplier_name = excluded.supplier_name,
		items_json = excluded.items_json,
		updated_at = excluded.updated_at
	`,
		record.ID,
		record.QuoteID,
		record.SupplierID,
		record.SupplierName,
		itemsJSON,
		record.SubmittedAt.UTC(),
		record.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save proposal for supplier %s: %w", record.SupplierID, err)
	}

	// Read back the kept ID and first submission time
	err = s.db.QueryRowContext(ctx, `
	SELECT id, submitted_at FROM proposals WHERE quote_id = ? AND supplier_id = ?
	`, record.QuoteID, record.SupplierID).Scan(&record.ID, &record.SubmittedAt)
	if err != nil {
		return fmt.Errorf("failed to read back proposal for supplier %s: %w", record.SupplierID, err)
	}
	return nil
}

// ListProposals returns a quote's proposals in submission order
func (s *SQLiteStore) ListProposals(ctx context.Context, quoteID string) ([]*ProposalRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT id, quote_id, supplier_id, supplier_name, items_json, submitted_at, updated_at
	FROM proposals WHERE quote_id = ?
	ORDER BY submitted_at, supplier_id
	`, quoteID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

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
func (s *SQLiteStore) DeleteProposal(ctx context.Context, quoteID, supplierID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM proposals WHERE quote_id = ? AND supplier_id = ?`, quoteID, supplierID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SaveComparison stores a computed comparison
func (s *SQLiteStore) SaveComparison(ctx context.Context, record *ComparisonRecord) error {
	resultJSON, err := json.Marshal(record.Result)
	if err != nil {
		return fmt.Errorf("failed to encode comparison result: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
	INSERT INTO comparisons
	(id, quote_id, created_at, proposal_count, total_cost, total_savings,
	 savings_percentage, is_multi_supplier, supplier_count, result_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
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
func (s *SQLiteStore) GetLatestComparison(ctx context.Context, quoteID string) (*ComparisonRecord, error) {
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
func (s *SQLiteStore) ListComparisons(ctx context.Context, quoteID string, limit int) ([]*ComparisonRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
	SELECT id, quote_id, created_at, proposal_count, total_cost, total_savings,
	       savings_percentage, is_multi_supplier, supplier_count, result_json
	FROM comparisons WHERE quote_id = ?
	ORDER BY created_at DESC, rowid DESC
	LIMIT ?
	`, quoteID, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

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
