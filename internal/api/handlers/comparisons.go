package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eshaffer321/quote-optimizer/internal/api/dto"
	"github.com/eshaffer321/quote-optimizer/internal/application/service"
	"github.com/eshaffer321/quote-optimizer/internal/export"
	"github.com/eshaffer321/quote-optimizer/internal/infrastructure/storage"
)

// ComparisonsHandler computes and serves best-combination snapshots.
type ComparisonsHandler struct {
	*Base
	comparisons *service.ComparisonService
}

// NewComparisonsHandler creates a new comparisons handler.
func NewComparisonsHandler(repo storage.Repository, comparisons *service.ComparisonService) *ComparisonsHandler {
	return &ComparisonsHandler{
		Base:        NewBase(repo),
		comparisons: comparisons,
	}
}

// Create handles POST /api/quotes/{id}/comparisons - computes the best
// combination over the quote's current proposals and stores it.
func (h *ComparisonsHandler) Create(c *gin.Context) {
	comparison, err := h.comparisons.Compare(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrQuoteNotFound) {
			h.WriteError(c, http.StatusNotFound, dto.NotFoundError("quote"))
			return
		}
		if h.WriteCalculationError(c, err) {
			return
		}
		h.WriteInternalError(c, err)
		return
	}

	h.WriteJSON(c, http.StatusCreated, dto.NewComparisonResponse(comparison.Record, comparison.Validations))
}

// List handles GET /api/quotes/{id}/comparisons - summaries, newest first.
func (h *ComparisonsHandler) List(c *gin.Context) {
	quote, ok := h.loadQuote(c)
	if !ok {
		return
	}

	records, err := h.repo.ListComparisons(c.Request.Context(), quote.ID, ParseIntParam(c, "limit", dto.DefaultComparisonLimit))
	if err != nil {
		h.WriteInternalError(c, err)
		return
	}

	response := dto.ComparisonListResponse{
		Comparisons: make([]dto.ComparisonSummaryResponse, 0, len(records)),
		Count:       len(records),
	}
	for _, record := range records {
		response.Comparisons = append(response.Comparisons, dto.NewComparisonSummaryResponse(record))
	}

	h.WriteJSON(c, http.StatusOK, response)
}

// Latest handles GET /api/quotes/{id}/comparisons/latest.
func (h *ComparisonsHandler) Latest(c *gin.Context) {
	_, record, ok := h.loadLatest(c)
	if !ok {
		return
	}
	h.WriteJSON(c, http.StatusOK, dto.NewComparisonResponse(record, nil))
}

// Export handles GET /api/quotes/{id}/comparisons/latest/export?format=xlsx|pdf.
func (h *ComparisonsHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "xlsx")
	if format != "xlsx" && format != "pdf" {
		h.WriteError(c, http.StatusBadRequest, dto.BadRequestError("format must be xlsx or pdf"))
		return
	}

	quote, record, ok := h.loadLatest(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	contentType := export.ContentTypeXLSX
	var err error
	if format == "pdf" {
		contentType = export.ContentTypePDF
		err = export.WritePDF(&buf, quote.Title, record.Result)
	} else {
		err = export.WriteXLSX(&buf, quote.Title, record.Result)
	}
	if err != nil {
		h.WriteInternalError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=comparison_%s.%s", record.ID, format))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (h *ComparisonsHandler) loadLatest(c *gin.Context) (*storage.Quote, *storage.ComparisonRecord, bool) {
	quote, ok := h.loadQuote(c)
	if !ok {
		return nil, nil, false
	}

	record, err := h.repo.GetLatestComparison(c.Request.Context(), quote.ID)
	if err != nil {
		h.WriteInternalError(c, err)
		return nil, nil, false
	}
	if record == nil {
		h.WriteError(c, http.StatusNotFound, dto.NotFoundError("comparison"))
		return nil, nil, false
	}
	return quote, record, true
}
