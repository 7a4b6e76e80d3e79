package combination

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateChecked_NoProposals(t *testing.T) {
	result, err := CalculateChecked(nil)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrNoProposals)
}

func TestCalculateChecked_Valid(t *testing.T) {
	proposals := []Proposal{
		makeProposal("A", "Supplier A", makeItem("Cimento", 10, 5, 50)),
		makeProposal("B", "Supplier B", makeItem("Cimento", 8, 5, 40)),
	}

	result, err := CalculateChecked(proposals)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "B", result.Items[0].BestSupplierID)
}

func TestCalculateChecked_CollectsEveryProblem(t *testing.T) {
	proposals := []Proposal{
		makeProposal("", "No ID", makeItem("Cimento", -1, 0, -5)),
		makeProposal("B", "Supplier B", makeItem("", 8, 5, 40)),
		makeProposal("B", "Supplier B again", makeItem("Cimento", 8, 5, 40)),
	}

	result, err := CalculateChecked(proposals)

	assert.Nil(t, result)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidProposal)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))

	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.String())
	}
	assert.Equal(t, []string{
		"proposals[0].supplier_id: is required",
		"proposals[0].items[0].unit_price: must not be negative",
		"proposals[0].items[0].quantity: must be positive",
		"proposals[0].items[0].total: must not be negative",
		"proposals[1].items[0].product_name: is required",
		"proposals[2].supplier_id: duplicates proposals[1]",
	}, fields)
	assert.Contains(t, err.Error(), "invalid proposal")
}

func TestValidate_ItemIDWithoutName(t *testing.T) {
	proposals := []Proposal{
		makeProposal("A", "Supplier A", ProposalItem{ItemID: "line-1", UnitPrice: 1, Quantity: 1, Total: 1}),
	}

	assert.NoError(t, Validate(proposals))
}

func TestValidate_NonFinite(t *testing.T) {
	proposals := []Proposal{
		makeProposal("A", "Supplier A", makeItem("Cimento", math.NaN(), math.Inf(1), math.Inf(-1))),
		makeProposal("B", "Supplier B", makeItem("Cimento", 8, 5, 40)),
	}

	var verr *ValidationError
	require.True(t, errors.As(Validate(proposals), &verr))

	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.String())
	}
	assert.Equal(t, []string{
		"proposals[0].items[0].unit_price: must be a finite number",
		"proposals[0].items[0].quantity: must be a finite number",
		"proposals[0].items[0].total: must be a finite number",
	}, fields)
}

func TestCalculateChecked_NaNIsAValidationError(t *testing.T) {
	proposals := []Proposal{
		makeProposal("A", "Supplier A", makeItem("Cimento", math.NaN(), 5, math.NaN())),
		makeProposal("B", "Supplier B", makeItem("Cimento", 8, 5, 40)),
	}

	var (
		result *Result
		err    error
	)
	require.NotPanics(t, func() { result, err = CalculateChecked(proposals) })
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInvalidProposal)
}
