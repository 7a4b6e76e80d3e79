package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/eshaffer321/quote-optimizer/internal/domain/combination"
)

func sampleResult() *combination.Result {
	return combination.Calculate([]combination.Proposal{
		{SupplierID: "A", SupplierName: "Depósito São Jorge", Items: []combination.ProposalItem{
			{ProductName: "Cimento CP-II 50kg", UnitPrice: 10, Quantity: 5, Total: 50},
			{ProductName: "Areia média", UnitPrice: 3, Quantity: 10, Total: 30},
		}},
		{SupplierID: "B", SupplierName: "Casa do Construtor", Items: []combination.ProposalItem{
			{ProductName: "Cimento CP-II 50kg", UnitPrice: 8, Quantity: 5, Total: 40},
			{ProductName: "Areia média", UnitPrice: 4, Quantity: 10, Total: 40},
		}},
	})
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, "Obra Rua 7", sampleResult()))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, ItemsSheet, SuppliersSheet}, f.GetSheetList())

	title, err := f.GetCellValue(SummarySheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Obra Rua 7", title)

	label, err := f.GetCellValue(SummarySheet, "A8")
	require.NoError(t, err)
	assert.Equal(t, "Best Single Supplier", label)

	items, err := f.GetRows(ItemsSheet)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Item", items[0][0])
	assert.Equal(t, "Cimento CP-II 50kg", items[1][0])
	assert.Equal(t, "Casa do Construtor", items[1][1])
	assert.Equal(t, "Depósito São Jorge", items[2][1])

	suppliers, err := f.GetRows(SuppliersSheet)
	require.NoError(t, err)
	require.Len(t, suppliers, 3)
	assert.Equal(t, "B", suppliers[1][0])
	assert.Equal(t, "A", suppliers[2][0])
}

func TestWriteXLSX_NilResult(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteXLSX(&buf, "x", nil))
	assert.Zero(t, buf.Len())
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, "Obra Rua 7 - cotação", sampleResult()))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 500)
}

func TestWritePDF_NilResult(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WritePDF(&buf, "x", nil))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}
