package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/eshaffer321/quote-optimizer/internal/api/dto"
	"github.com/eshaffer321/quote-optimizer/internal/infrastructure/storage"
)

// QuotesHandler handles quote-related HTTP requests.
type QuotesHandler struct {
	*Base
}

// NewQuotesHandler creates a new quotes handler.
func NewQuotesHandler(repo storage.Repository) *QuotesHandler {
	return &QuotesHandler{
		Base: NewBase(repo),
	}
}

// Create handles POST /api/quotes - opens a new quote request.
func (h *QuotesHandler) Create(c *gin.Context) {
	var req dto.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.WriteError(c, http.StatusBadRequest, dto.BadRequestError("invalid JSON body"))
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		h.WriteError(c, http.StatusUnprocessableEntity, dto.ValidationError("title is required"))
		return
	}

	quote := &storage.Quote{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Status:      storage.QuoteStatusOpen,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.repo.CreateQuote(c.Request.Context(), quote); err != nil {
		h.WriteInternalError(c, err)
		return
	}

	h.WriteJSON(c, http.StatusCreated, dto.NewQuoteResponse(quote))
}

// List handles GET /api/quotes - returns paginated list of quotes.
func (h *QuotesHandler) List(c *gin.Context) {
	filters := storage.QuoteFilters{
		Status: c.Query("status"),
		Limit:  ParseIntParam(c, "limit", dto.DefaultQuoteLimit),
		Offset: ParseIntParam(c, "offset", 0),
	}

	result, err := h.repo.ListQuotes(c.Request.Context(), filters)
	if err != nil {
		h.WriteInternalError(c, err)
		return
	}

	response := dto.QuoteListResponse{
		Quotes:     make([]dto.QuoteResponse, 0, len(result.Quotes)),
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	}
	for _, quote := range result.Quotes {
		response.Quotes = append(response.Quotes, dto.NewQuoteResponse(quote))
	}

	h.WriteJSON(c, http.StatusOK, response)
}

// Get handles GET /api/quotes/{id} - returns a single quote by ID.
func (h *QuotesHandler) Get(c *gin.Context) {
	quote, ok := h.loadQuote(c)
	if !ok {
		return
	}
	h.WriteJSON(c, http.StatusOK, dto.NewQuoteResponse(quote))
}

// loadQuote fetches the quote named by the :id path parameter, writing the
// error response itself when it cannot.
func (b *Base) loadQuote(c *gin.Context) (*storage.Quote, bool) {
	quoteID := c.Param("id")
	if quoteID == "" {
		b.WriteError(c, http.StatusBadRequest, dto.BadRequestError("quote ID is required"))
		return nil, false
	}

	quote, err := b.repo.GetQuote(c.Request.Context(), quoteID)
	if err != nil {
		b.WriteInternalError(c, err)
		return nil, false
	}
	if quote == nil {
		b.WriteError(c, http.StatusNotFound, dto.NotFoundError("quote"))
		return nil, false
	}
	return quote, true
}
