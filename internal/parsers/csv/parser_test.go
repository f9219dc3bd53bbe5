package csv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	content := []byte("Size,Brand,Model,Price\n205/55R16,Michelin,Primacy 4,85.50\n195/65R15,Continental,EcoContact 6,72.00\n")

	rows, err := Parse(content)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "205/55R16", rows[0].Size)
	assert.Equal(t, "Michelin", rows[0].Brand)
	assert.Equal(t, "Primacy 4", rows[0].Model)
	assert.InDelta(t, 85.50, rows[0].Cost, 0.001)
	assert.Equal(t, "Continental", rows[1].Brand)
}

func TestParseSemicolonDelimited(t *testing.T) {
	content := []byte("Dimension;Make;Pattern;Net price\n225/45R17;Pirelli;P Zero;120,00\n")

	rows, err := Parse(content)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "225/45R17", rows[0].Size)
	assert.Equal(t, "Pirelli", rows[0].Brand)
	assert.Equal(t, "P Zero", rows[0].Model)
	assert.InDelta(t, 120.00, rows[0].Cost, 0.001)
}

func TestParseSkipsBlankRows(t *testing.T) {
	content := []byte("size,brand,model,cost\n205/55R16,Michelin,Primacy 4,85.50\n,,,\n")

	rows, err := Parse(content)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestParseUnparseableCostBecomesZero(t *testing.T) {
	content := []byte("size,brand,model,cost\n205/55R16,Michelin,Primacy 4,call us\n")

	rows, err := Parse(content)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Zero(t, rows[0].Cost)
}

func TestParseMissingColumns(t *testing.T) {
	content := []byte("size,brand,price\n205/55R16,Michelin,85.50\n")

	_, err := Parse(content)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing model column")
}

func TestParseNoDataRows(t *testing.T) {
	_, err := Parse([]byte("size,brand,model,cost\n"))
	require.Error(t, err)
}

func TestIsStructured(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"recognizable header", "Size,Brand,Model,Cost\n205/55R16,Michelin,Primacy 4,85.50", true},
		{"semicolon header", "Dimension;Make;Pattern;Net\n", true},
		{"unrecognizable header", "col1,col2,col3\na,b,c", false},
		{"prose document", "Dear customer, please find our price list attached.", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsStructured([]byte(tt.content)))
		})
	}
}

func TestDetectDelimiter(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    rune
	}{
		{"comma", "a,b,c\nd,e,f\n", ','},
		{"semicolon", "a;b;c\nd;e;f\n", ';'},
		{"tab", "a\tb\tc\nd\te\tf\n", '\t'},
		{"semicolon with in-field commas", "name;price\nPrimacy 4, XL;85,50\nP Zero, RFT;120,00\n", ';'},
		{"empty defaults to comma", "", ','},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectDelimiter(tt.content))
		})
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"85.50", 85.50, false},
		{"85,50", 85.50, false},
		{"1.299,00", 1299.00, false},
		{"1,299.00", 1299.00, false},
		{"120,00 EUR", 120.00, false},
		{"€ 85.50", 85.50, false},
		{"85", 85, false},
		{"", 0, true},
		{"call us", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePrice(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}
