package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tyredesk/tyre-service/internal/database"
	"github.com/tyredesk/tyre-service/internal/types"
)

func TestMarginRules(t *testing.T) {
	sizeID := "size-1"
	modelID := "model-1"

	configs := []database.MarginConfig{
		{ID: "m1", MarginType: types.MarginPercentage, MarginValue: 30, Priority: 1},
		{ID: "m2", TyreSizeID: &sizeID, MarginType: types.MarginFixed, MarginValue: 15, Priority: 5},
		{ID: "m3", TyreModelID: &modelID, MarginType: types.MarginPercentage, MarginValue: 10, Priority: 9},
	}

	rules := marginRules(configs)
	assert.Len(t, rules, 3)

	assert.Empty(t, rules[0].TyreSizeID)
	assert.Empty(t, rules[0].BrandID)
	assert.Empty(t, rules[0].TyreModelID)

	assert.Equal(t, "size-1", rules[1].TyreSizeID)
	assert.Equal(t, types.MarginFixed, rules[1].Type)
	assert.InDelta(t, 15.0, rules[1].Value, 0.001)

	assert.Equal(t, "model-1", rules[2].TyreModelID)
	assert.Equal(t, 9, rules[2].Priority)
}

func TestMarginRequestValidate(t *testing.T) {
	assert.Empty(t, MarginRequest{MarginType: "percentage", MarginValue: 30}.validate())
	assert.Empty(t, MarginRequest{MarginType: "fixed", MarginValue: 0}.validate())
	assert.NotEmpty(t, MarginRequest{MarginType: "markup", MarginValue: 30}.validate())
	assert.NotEmpty(t, MarginRequest{MarginType: "percentage", MarginValue: -5}.validate())
}
