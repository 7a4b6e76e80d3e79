package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eshaffer321/quote-optimizer/internal/api/dto"
	"github.com/eshaffer321/quote-optimizer/internal/application/service"
)

// CalculatorHandler serves the stateless best-combination endpoint.
type CalculatorHandler struct {
	*Base
	comparisons *service.ComparisonService
}

// NewCalculatorHandler creates a new calculator handler.
func NewCalculatorHandler(comparisons *service.ComparisonService) *CalculatorHandler {
	return &CalculatorHandler{
		Base:        NewBase(nil),
		comparisons: comparisons,
	}
}

// BestCombination handles POST /api/best-combination. Nothing is stored.
func (h *CalculatorHandler) BestCombination(c *gin.Context) {
	var req dto.BestCombinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.WriteError(c, http.StatusBadRequest, dto.BadRequestError("invalid JSON body"))
		return
	}

	result, validations, err := h.comparisons.CompareProposals(req.Proposals)
	if err != nil {
		if h.WriteCalculationError(c, err) {
			return
		}
		h.WriteInternalError(c, err)
		return
	}

	h.WriteJSON(c, http.StatusOK, dto.BestCombinationResponse{
		Result:   result,
		Warnings: dto.NewWarningResponses(validations),
	})
}
