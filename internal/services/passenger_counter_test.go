package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiptix/internal/domain/models"
)

func TestPassengerCounter_SimpleFloors(t *testing.T) {
	c := PassengerCounter{Policy: PolicySimple}
	counts := models.PassengerCounts{Adults: 1}

	counts = c.Decrement(counts, models.PassengerAdult)
	assert.Equal(t, 1, counts.Adults)

	counts = c.Decrement(counts, models.PassengerInfant)
	assert.Equal(t, 0, counts.Infants)

	counts = c.Increment(counts, models.PassengerChild)
	counts = c.Increment(counts, models.PassengerChild)
	counts = c.Decrement(counts, models.PassengerChild)
	assert.Equal(t, 1, counts.Children)

	// seniors do not lift the adult floor in the simple policy
	counts = c.Increment(counts, models.PassengerSenior)
	counts = c.Decrement(counts, models.PassengerAdult)
	assert.Equal(t, 1, counts.Adults)
}

func TestPassengerCounter_FlexibleFloors(t *testing.T) {
	c := PassengerCounter{Policy: PolicyFlexible}
	counts := models.PassengerCounts{Adults: 1, Seniors: 1}

	counts = c.Decrement(counts, models.PassengerAdult)
	assert.Equal(t, 0, counts.Adults)

	// the last senior is now the only fare-eligible passenger
	counts = c.Decrement(counts, models.PassengerSenior)
	assert.Equal(t, 1, counts.Seniors)
	assert.Equal(t, 1, counts.FareEligible())
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		raw  any
		want int
	}{
		{3, 3},
		{"4", 4},
		{" 2 ", 2},
		{2.9, 2},
		{"2.5", 2},
		{-1, 0},
		{"-3", 0},
		{"abc", 0},
		{"", 0},
		{nil, 0},
		{"010", 10},
		{"0x10", 0},
		{"08", 8},
		{"+5", 5},
		{"3 orang", 3},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ParseCount(tc.raw), "raw=%v", tc.raw)
	}
}

func TestPassengerCounter_Set(t *testing.T) {
	c := PassengerCounter{}
	counts := c.Set(models.PassengerCounts{Adults: 1}, models.PassengerChild, "x")
	assert.Equal(t, 0, counts.Children)
	counts = c.Set(counts, models.PassengerChild, "3")
	assert.Equal(t, 3, counts.Children)
	assert.Equal(t, 1, counts.Adults)
}

func TestNormalizeCounts_AcceptsLocalNames(t *testing.T) {
	got := NormalizeCounts(map[string]any{"dewasa": 2, "lansia": "1", "anak": 1, "bayi": 1})
	assert.Equal(t, models.PassengerCounts{Adults: 2, Seniors: 1, Children: 1, Infants: 1}, got)
}

func TestNormalizeCounts_AliasesAreDeterministic(t *testing.T) {
	raw := map[string]any{"adult": 1, "adults": 3, "dewasa": 2}
	for i := 0; i < 200; i++ {
		got := NormalizeCounts(raw)
		require.Equal(t, 2, got.Adults, "run %d", i)
	}
}

func TestParsePassengerPolicy(t *testing.T) {
	assert.Equal(t, PolicyFlexible, ParsePassengerPolicy(" Flexible "))
	assert.Equal(t, PolicySimple, ParsePassengerPolicy("whatever"))
}
