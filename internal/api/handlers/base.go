package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eshaffer321/quote-optimizer/internal/api/dto"
	"github.com/eshaffer321/quote-optimizer/internal/domain/combination"
	"github.com/eshaffer321/quote-optimizer/internal/infrastructure/storage"
)

// Base provides shared functionality for all handlers.
type Base struct {
	repo storage.Repository
}

// NewBase creates a new base handler with the given repository.
func NewBase(repo storage.Repository) *Base {
	return &Base{repo: repo}
}

// WriteJSON writes a JSON response with the given status code.
func (b *Base) WriteJSON(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// WriteError writes an error response with the given status code.
func (b *Base) WriteError(c *gin.Context, status int, err dto.APIError) {
	c.AbortWithStatusJSON(status, err)
}

// WriteInternalError records err for the request log and writes a generic 500.
func (b *Base) WriteInternalError(c *gin.Context, err error) {
	_ = c.Error(err)
	b.WriteError(c, http.StatusInternalServerError, dto.InternalError())
}

// WriteCalculationError maps calculator errors to 422 responses.
// Returns false when err is not a calculator error.
func (b *Base) WriteCalculationError(c *gin.Context, err error) bool {
	if errors.Is(err, combination.ErrNoProposals) {
		b.WriteError(c, http.StatusUnprocessableEntity, dto.NoProposalsError())
		return true
	}
	var verr *combination.ValidationError
	if errors.As(err, &verr) {
		details := make([]string, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			details = append(details, f.String())
		}
		b.WriteError(c, http.StatusUnprocessableEntity, dto.ValidationError("invalid proposal", details...))
		return true
	}
	return false
}

// ParseIntParam parses an integer query parameter with a default value.
func ParseIntParam(c *gin.Context, name string, defaultVal int) int {
	val := c.Query(name)
	if val == "" {
		return defaultVal
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return parsed
}
