package ingest

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyredesk/tyre-service/internal/types"
)

func TestValidateRowsPartialSuccess(t *testing.T) {
	rows := []types.PriceListRow{
		{Size: "205/55R16", Brand: "Michelin", Model: "Primacy 4", Cost: 120},
		{Size: "225/45R17", Brand: "Pirelli", Model: "P Zero", Cost: 160},
		{Size: "235/35R19", Brand: "Bridgestone", Model: "Potenza Sport", Cost: 200},
		{Size: "205-55-16", Brand: "Continental", Model: "PremiumContact 6", Cost: 110},
		{Size: "265/70R16", Brand: "Goodyear", Model: "Wrangler AT", Cost: -5},
	}

	valid, invalid := ValidateRows(rows)

	require.Len(t, valid, 3)
	require.Len(t, invalid, 2)

	// Malformed size
	assert.Equal(t, "205-55-16", invalid[0].Row.Size)
	require.NotEmpty(t, invalid[0].Reasons)
	assert.Contains(t, invalid[0].Reasons[0], "205-55-16")

	// Non-positive cost
	assert.Equal(t, "265/70R16", invalid[1].Row.Size)
	require.NotEmpty(t, invalid[1].Reasons)
	assert.Contains(t, invalid[1].Reasons[0], "greater than zero")
}

func TestValidateRowsAccumulatesReasons(t *testing.T) {
	rows := []types.PriceListRow{
		{Size: "", Brand: "  ", Model: "", Cost: 0},
	}

	valid, invalid := ValidateRows(rows)
	assert.Empty(t, valid)
	require.Len(t, invalid, 1)
	assert.Len(t, invalid[0].Reasons, 4)
}

func TestValidateRowsNonFiniteCost(t *testing.T) {
	rows := []types.PriceListRow{
		{Size: "205/55R16", Brand: "Michelin", Model: "Primacy 4", Cost: math.NaN()},
		{Size: "205/55R16", Brand: "Michelin", Model: "Primacy 4", Cost: math.Inf(1)},
	}

	valid, invalid := ValidateRows(rows)
	assert.Empty(t, valid)
	require.Len(t, invalid, 2)
	for _, inv := range invalid {
		require.Len(t, inv.Reasons, 1)
		assert.Contains(t, inv.Reasons[0], "finite")
	}
}

func TestValidateRowsBlankAfterTrim(t *testing.T) {
	rows := []types.PriceListRow{
		{Size: "205/55R16", Brand: " \t ", Model: "Primacy 4", Cost: 100},
	}

	_, invalid := ValidateRows(rows)
	require.Len(t, invalid, 1)
	assert.Equal(t, []string{"brand is missing"}, invalid[0].Reasons)
}

func TestValidateRowsEmptyInput(t *testing.T) {
	valid, invalid := ValidateRows(nil)
	assert.Empty(t, valid)
	assert.Empty(t, invalid)
}
