package pnl

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSamplePrices_StrictlyAscendingWithEndpoints(t *testing.T) {
	prices := SamplePrices(85000, 130000, 104000, 500)

	require.NotEmpty(t, prices)
	assert.Equal(t, 85000.0, prices[0])
	assert.Equal(t, 130000.0, prices[len(prices)-1])

	for i := 1; i < len(prices); i++ {
		if prices[i] <= prices[i-1] {
			t.Fatalf("prices not strictly ascending at %d: %v <= %v", i, prices[i], prices[i-1])
		}
	}
}

func TestSamplePrices_ReferenceComposition(t *testing.T) {
	prices := SamplePrices(85000, 130000, 104000, 500)

	// 91 grid points, 21 band points of which 3 are on the grid, 2 cliff points.
	assert.Len(t, prices, 91+21-3+2)

	for _, want := range []float64{85000, 85500, 103500, 103550, 103999.99, 104000, 104000.01, 104450, 104500, 129500, 130000} {
		assert.True(t, slices.Contains(prices, want), "missing %v", want)
	}
	assert.False(t, slices.Contains(prices, 103450.0))
	assert.False(t, slices.Contains(prices, 104550.0))
}

func TestSamplePrices_StraddlesCondition(t *testing.T) {
	prices := SamplePrices(85000, 130000, 104000, 500)

	i := slices.Index(prices, 104000.0)
	require.GreaterOrEqual(t, i, 1)
	require.Less(t, i, len(prices)-1)
	assert.InDelta(t, 103999.99, prices[i-1], 1e-9)
	assert.InDelta(t, 104000.01, prices[i+1], 1e-9)
}

func TestSamplePrices_ConditionOutsideDomain(t *testing.T) {
	prices := SamplePrices(85000, 90000, 104000, 1000)
	assert.Equal(t, []float64{85000, 86000, 87000, 88000, 89000, 90000}, prices)
}

func TestSamplePrices_BandClippedAtDomainEdge(t *testing.T) {
	prices := SamplePrices(103800, 110000, 104000, 1000)

	assert.Equal(t, 103800.0, prices[0])
	assert.True(t, slices.Contains(prices, 103850.0))
	assert.True(t, slices.Contains(prices, 103999.99))
	assert.False(t, slices.Contains(prices, 103750.0))
}

func TestSamplePrices_MaxIncludedWhenOffGrid(t *testing.T) {
	prices := SamplePrices(100, 1050, 5000, 100)
	assert.Equal(t, 1050.0, prices[len(prices)-1])
	assert.Equal(t, 1000.0, prices[len(prices)-2])
}

func TestSamplePrices_SwappedBounds(t *testing.T) {
	assert.Equal(t, SamplePrices(85000, 130000, 104000, 500), SamplePrices(130000, 85000, 104000, 500))
}

func TestSamplePrices_NonPositiveStepSkipsGrid(t *testing.T) {
	prices := SamplePrices(85000, 130000, 200000, 0)
	assert.Equal(t, []float64{85000, 130000}, prices)
}

func TestSamplePricesWith_CustomBand(t *testing.T) {
	opts := SamplingOptions{BandHalfWidth: 100, BandStep: 25, Epsilon: 0.5}
	prices := SamplePricesWith(1000, 2000, 1500, 1000, opts)

	assert.Equal(t, []float64{1000, 1400, 1425, 1450, 1475, 1499.5, 1500, 1500.5, 1525, 1550, 1575, 1600, 2000}, prices)
}

func TestSamplePrices_Deterministic(t *testing.T) {
	first := SamplePrices(85000, 130000, 104000, 500)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, SamplePrices(85000, 130000, 104000, 500))
	}
}

func TestPrices_Restartable(t *testing.T) {
	seq := Prices(85000, 130000, 104000, 500)

	first := slices.Collect(seq)
	second := slices.Collect(seq)

	assert.Equal(t, first, second)
	assert.Equal(t, SamplePrices(85000, 130000, 104000, 500), first)
}

func TestPrices_EarlyStop(t *testing.T) {
	var got []float64
	for p := range Prices(85000, 130000, 104000, 500) {
		if len(got) == 3 {
			break
		}
		got = append(got, p)
	}
	assert.Equal(t, []float64{85000, 85500, 86000}, got)
}
