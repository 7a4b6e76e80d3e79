package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/eshaffer321/quote-optimizer/internal/domain/combination"
	"github.com/eshaffer321/quote-optimizer/internal/domain/validator"
	"github.com/eshaffer321/quote-optimizer/internal/infrastructure/storage"
)

var (
	// ErrQuoteNotFound is returned when the quote ID has no stored quote.
	ErrQuoteNotFound = errors.New("quote not found")

	// ErrNoProposals is returned when a quote has no proposals to compare.
	ErrNoProposals = combination.ErrNoProposals
)

// Comparison is a computed best combination together with the inputs'
// sanity-check warnings.
type Comparison struct {
	Record      *storage.ComparisonRecord
	Validations map[string]*validator.ProposalValidation
}

// ComparisonService loads proposals, runs the calculator and stores snapshots.
type ComparisonService struct {
	storage   storage.Repository
	logger    *slog.Logger
	tolerance float64
	now       func() time.Time
}

// NewComparisonService creates a new comparison service.
// A non-positive tolerance falls back to validator.DefaultTolerance. store may
// be nil when only CompareProposals and Check are used.
func NewComparisonService(store storage.Repository, tolerance float64, logger *slog.Logger) *ComparisonService {
	if logger == nil {
		logger = slog.Default()
	}
	if tolerance <= 0 {
		tolerance = validator.DefaultTolerance
	}
	return &ComparisonService{
		storage:   store,
		logger:    logger.With(slog.String("system", "compare")),
		tolerance: tolerance,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Compare computes the best combination for a stored quote and persists it.
func (s *ComparisonService) Compare(ctx context.Context, quoteID string) (*Comparison, error) {
	quote, err := s.storage.GetQuote(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to load quote: %w", err)
	}
	if quote == nil {
		return nil, ErrQuoteNotFound
	}

	records, err := s.storage.ListProposals(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to load proposals: %w", err)
	}

	proposals := make([]combination.Proposal, 0, len(records))
	for _, record := range records {
		proposals = append(proposals, record.ToProposal())
	}

	result, err := combination.CalculateChecked(proposals)
	if err != nil {
		return nil, err
	}

	validations := s.checkTotals(quoteID, proposals)

	record := storage.NewComparisonRecord(uuid.NewString(), quoteID, len(proposals), result, s.now())
	if err := s.storage.SaveComparison(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save comparison: %w", err)
	}

	s.logger.Info("comparison complete",
		"quote_id", quoteID,
		"comparison_id", record.ID,
		"proposals", len(proposals),
		"total_cost", result.TotalCost,
		"total_savings", result.TotalSavings,
		"suppliers", len(result.UniqueSuppliers),
	)

	return &Comparison{Record: record, Validations: validations}, nil
}

// CompareProposals computes a best combination without touching storage.
// The validations are keyed by supplier ID.
func (s *ComparisonService) CompareProposals(proposals []combination.Proposal) (*combination.Result, map[string]*validator.ProposalValidation, error) {
	result, err := combination.CalculateChecked(proposals)
	if err != nil {
		return nil, nil, err
	}
	return result, s.checkTotals("", proposals), nil
}

// checkTotals logs every line whose quoted total disagrees with price * quantity.
func (s *ComparisonService) checkTotals(quoteID string, proposals []combination.Proposal) map[string]*validator.ProposalValidation {
	validations := validator.ValidateAll(proposals, s.tolerance)
	for supplierID, v := range validations {
		for _, w := range v.Warnings {
			s.logger.Warn("quoted total differs from unit price * quantity",
				"quote_id", quoteID,
				"supplier_id", supplierID,
				"item", w.ProductName,
				"quoted", w.Quoted,
				"expected", w.Expected,
			)
		}
	}
	return validations
}

// Check runs the total sanity check on a single proposal.
func (s *ComparisonService) Check(p combination.Proposal) *validator.ProposalValidation {
	return validator.ValidateProposal(p, s.tolerance)
}
