package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/eshaffer321/quote-optimizer/internal/api/dto"
	"github.com/eshaffer321/quote-optimizer/internal/application/service"
	"github.com/eshaffer321/quote-optimizer/internal/domain/combination"
	"github.com/eshaffer321/quote-optimizer/internal/infrastructure/storage"
)

// ProposalsHandler handles supplier proposal submissions.
type ProposalsHandler struct {
	*Base
	comparisons *service.ComparisonService
}

// NewProposalsHandler creates a new proposals handler.
func NewProposalsHandler(repo storage.Repository, comparisons *service.ComparisonService) *ProposalsHandler {
	return &ProposalsHandler{
		Base:        NewBase(repo),
		comparisons: comparisons,
	}
}

// Submit handles PUT /api/quotes/{id}/proposals - creates or replaces one
// supplier's proposal. Line totals that disagree with their unit price are
// accepted and returned as warnings.
func (h *ProposalsHandler) Submit(c *gin.Context) {
	quote, ok := h.loadQuote(c)
	if !ok {
		return
	}

	var req dto.SubmitProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.WriteError(c, http.StatusBadRequest, dto.BadRequestError("invalid JSON body"))
		return
	}

	proposal := req.ToProposal()
	if err := combination.Validate([]combination.Proposal{proposal}); err != nil {
		h.WriteCalculationError(c, err)
		return
	}

	now := time.Now().UTC()
	record := &storage.ProposalRecord{
		ID:           uuid.NewString(),
		QuoteID:      quote.ID,
		SupplierID:   proposal.SupplierID,
		SupplierName: proposal.SupplierName,
		Items:        proposal.Items,
		SubmittedAt:  now,
		UpdatedAt:    now,
	}
	if err := h.repo.SaveProposal(c.Request.Context(), record); err != nil {
		h.WriteInternalError(c, err)
		return
	}

	h.WriteJSON(c, http.StatusOK, dto.NewProposalResponse(record, h.comparisons.Check(proposal)))
}

// List handles GET /api/quotes/{id}/proposals.
func (h *ProposalsHandler) List(c *gin.Context) {
	quote, ok := h.loadQuote(c)
	if !ok {
		return
	}

	records, err := h.repo.ListProposals(c.Request.Context(), quote.ID)
	if err != nil {
		h.WriteInternalError(c, err)
		return
	}

	response := dto.ProposalListResponse{
		Proposals: make([]dto.ProposalResponse, 0, len(records)),
		Count:     len(records),
	}
	for _, record := range records {
		response.Proposals = append(response.Proposals,
			dto.NewProposalResponse(record, h.comparisons.Check(record.ToProposal())))
	}

	h.WriteJSON(c, http.StatusOK, response)
}

// Delete handles DELETE /api/quotes/{id}/proposals/{supplierId}.
func (h *ProposalsHandler) Delete(c *gin.Context) {
	quote, ok := h.loadQuote(c)
	if !ok {
		return
	}

	deleted, err := h.repo.DeleteProposal(c.Request.Context(), quote.ID, c.Param("supplierId"))
	if err != nil {
		h.WriteInternalError(c, err)
		return
	}
	if !deleted {
		h.WriteError(c, http.StatusNotFound, dto.NotFoundError("proposal"))
		return
	}

	c.Status(http.StatusNoContent)
}
