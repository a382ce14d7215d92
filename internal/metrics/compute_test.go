package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perp-hedge-lab/internal/domain"
	"perp-hedge-lab/internal/pnl"
)

func referenceSeries(t *testing.T, params domain.StrategyParameters) domain.PnLSeries {
	t.Helper()
	series, err := pnl.GenerateSeries(params, domain.DefaultPriceDomain())
	require.NoError(t, err)
	return series
}

func TestCompute_ReferenceCurve(t *testing.T) {
	params := domain.DefaultStrategyParameters()
	stats := Compute(referenceSeries(t, params), params)

	assert.Equal(t, 0.5, stats.EntryOdd)
	assert.Equal(t, 111, stats.Samples)
	assert.False(t, stats.HasSentinel)

	// best sample sits just above the cliff, worst at the top of the domain
	assert.InDelta(t, 104000.01, stats.MaxPnLPrice, 1e-9)
	assert.InDelta(t, 5000+50000*(104370-104000.01)/104370, stats.MaxPnL, 1e-6)
	assert.Equal(t, 130000.0, stats.MinPnLPrice)
	assert.InDelta(t, -7278.43, stats.MinPnL, 0.01)

	require.Len(t, stats.BreakevenPrices, 2)
	assert.InDelta(t, 104370*0.9, stats.BreakevenPrices[0], 1e-6)
	assert.InDelta(t, 104370*1.1, stats.BreakevenPrices[1], 1e-6)

	require.NotNil(t, stats.CliffJump)
	assert.InDelta(t, 10000.0, *stats.CliffJump, 0.01)

	assert.Greater(t, stats.ProfitableShare, 0.0)
	assert.Less(t, stats.ProfitableShare, 1.0)
	assert.LessOrEqual(t, stats.P10PnL, stats.MedianPnL)
	assert.LessOrEqual(t, stats.MedianPnL, stats.P90PnL)
}

func TestCompute_EarlySaleHasNoCliff(t *testing.T) {
	params := domain.DefaultStrategyParameters()
	params.ResolveOdd = domain.Float64(0.75)
	stats := Compute(referenceSeries(t, params), params)

	assert.Nil(t, stats.CliffJump)
	require.Len(t, stats.BreakevenPrices, 1)
	assert.InDelta(t, 104370*1.05, stats.BreakevenPrices[0], 1e-6)
}

func TestCompute_SentinelFlag(t *testing.T) {
	params := domain.DefaultStrategyParameters().WithEntryOdd(0)
	stats := Compute(referenceSeries(t, params), params)

	assert.True(t, stats.HasSentinel)
	assert.Equal(t, 1.0, stats.ProfitableShare)
	assert.Empty(t, stats.BreakevenPrices)
}

func TestCompute_EmptySeries(t *testing.T) {
	stats := Compute(domain.PnLSeries{EntryOdd: 0.3}, domain.DefaultStrategyParameters())
	assert.Equal(t, 0, stats.Samples)
	assert.Equal(t, 0.3, stats.EntryOdd)
	assert.Nil(t, stats.CliffJump)
}

func TestCompute_ConditionOutsideDomain(t *testing.T) {
	params := domain.DefaultStrategyParameters()
	series, err := pnl.GenerateSeries(params, domain.PriceDomain{Min: 105000, Max: 120000, Step: 500})
	require.NoError(t, err)

	stats := Compute(series, params)
	assert.Nil(t, stats.CliffJump)
}

func TestComputeBreakevens_ExactZeroSample(t *testing.T) {
	points := []domain.PnLPoint{
		{Price: 1, NetPnL: -1},
		{Price: 2, NetPnL: 0},
		{Price: 3, NetPnL: 1},
	}
	assert.Equal(t, []float64{2}, computeBreakevens(points, 100, false))
}

func TestComputeBreakevens_SkipsCliffOnlyWhenPresent(t *testing.T) {
	points := []domain.PnLPoint{
		{Price: 9, NetPnL: -5},
		{Price: 11, NetPnL: 5},
	}
	assert.Empty(t, computeBreakevens(points, 10, true))
	assert.Equal(t, []float64{10}, computeBreakevens(points, 10, false))
}

func TestComputeAll_SortedByEntryOdd(t *testing.T) {
	params := domain.DefaultStrategyParameters()
	var series []domain.PnLSeries
	for _, odd := range []float64{0.8, 0.3, 0.63} {
		series = append(series, referenceSeries(t, params.WithEntryOdd(odd)))
	}

	stats := ComputeAll(series, params)
	require.Len(t, stats, 3)
	assert.Equal(t, 0.3, stats[0].EntryOdd)
	assert.Equal(t, 0.63, stats[1].EntryOdd)
	assert.Equal(t, 0.8, stats[2].EntryOdd)
}

func TestComputePercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty", nil, 0.5, 0},
		{"single", []float64{3}, 0.9, 3},
		{"median odd", []float64{1, 2, 3}, 0.5, 2},
		{"median even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p100", []float64{1, 2, 3, 4}, 1.0, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computePercentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("computePercentile() = %v, want %v", got, tt.want)
			}
		})
	}
}
