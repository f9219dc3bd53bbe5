package xlsx

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestParse(t *testing.T) {
	content := buildWorkbook(t, [][]interface{}{
		{"Size", "Brand", "Model", "Price"},
		{"205/55R16", "Michelin", "Primacy 4", 85.50},
		{"195/65R15", "Continental", "EcoContact 6", "72,00"},
	})

	rows, err := Parse(content)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "205/55R16", rows[0].Size)
	assert.Equal(t, "Michelin", rows[0].Brand)
	assert.Equal(t, "Primacy 4", rows[0].Model)
	assert.InDelta(t, 85.50, rows[0].Cost, 0.001)
	assert.InDelta(t, 72.00, rows[1].Cost, 0.001)
}

func TestParseMissingColumns(t *testing.T) {
	content := buildWorkbook(t, [][]interface{}{
		{"Size", "Brand", "Price"},
		{"205/55R16", "Michelin", 85.50},
	})

	_, err := Parse(content)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing model column")
}

func TestParseSkipsBlankRows(t *testing.T) {
	content := buildWorkbook(t, [][]interface{}{
		{"Size", "Brand", "Model", "Cost"},
		{"205/55R16", "Michelin", "Primacy 4", 85.50},
		{"", "", "", ""},
	})

	rows, err := Parse(content)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestParseNotAnExcelFile(t *testing.T) {
	_, err := Parse([]byte("size,brand,model,cost\n205/55R16,Michelin,Primacy 4,85.50"))
	require.Error(t, err)
}

func TestIsStructured(t *testing.T) {
	structured := buildWorkbook(t, [][]interface{}{
		{"Dimension", "Make", "Pattern", "Net"},
	})
	assert.True(t, IsStructured(structured))

	unstructured := buildWorkbook(t, [][]interface{}{
		{"col1", "col2"},
	})
	assert.False(t, IsStructured(unstructured))

	assert.False(t, IsStructured([]byte("not an excel file")))
}
