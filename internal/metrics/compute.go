package metrics

import (
	"math"
	"sort"

	"perp-hedge-lab/internal/domain"
	"perp-hedge-lab/internal/lookup"
)

// Compute calculates curve statistics for a series evaluated with params.
// Only ConditionPrice and ResolveOdd are read from params; the entry odd
// comes from the series itself.
func Compute(series domain.PnLSeries, params domain.StrategyParameters) domain.CurveStats {
	stats := domain.CurveStats{
		EntryOdd:    series.EntryOdd,
		Samples:     len(series.Points),
		HasSentinel: series.EntryOdd <= 0,
	}
	if len(series.Points) == 0 {
		return stats
	}

	values := series.Values()

	maxIdx, minIdx := 0, 0
	profitable := 0
	for i, v := range values {
		if v > values[maxIdx] {
			maxIdx = i
		}
		if v < values[minIdx] {
			minIdx = i
		}
		if v > 0 {
			profitable++
		}
	}
	stats.MaxPnL = values[maxIdx]
	stats.MaxPnLPrice = series.Points[maxIdx].Price
	stats.MinPnL = values[minIdx]
	stats.MinPnLPrice = series.Points[minIdx].Price

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	stats.MeanPnL = computeMean(values)
	stats.MedianPnL = computePercentile(sorted, 0.50)
	stats.P10PnL = computePercentile(sorted, 0.10)
	stats.P90PnL = computePercentile(sorted, 0.90)
	stats.ProfitableShare = float64(profitable) / float64(len(values))

	hasCliff := params.ResolveOdd == nil
	stats.BreakevenPrices = computeBreakevens(series.Points, params.ConditionPrice, hasCliff)
	if hasCliff {
		stats.CliffJump = computeCliffJump(series, params.ConditionPrice)
	}

	return stats
}

// ComputeAll computes stats for every series, ordered by entry odd ASC.
func ComputeAll(series []domain.PnLSeries, params domain.StrategyParameters) []domain.CurveStats {
	out := make([]domain.CurveStats, 0, len(series))
	for _, s := range series {
		out = append(out, Compute(s, params))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EntryOdd < out[j].EntryOdd
	})
	return out
}

// computeBreakevens returns prices where the curve is zero.
// Sign changes between adjacent samples are linearly interpolated, except
// across the resolution cliff where the curve jumps rather than crosses.
func computeBreakevens(points []domain.PnLPoint, conditionPrice float64, hasCliff bool) []float64 {
	var out []float64
	for i, p := range points {
		if p.NetPnL == 0 {
			out = append(out, p.Price)
			continue
		}
		if i == len(points)-1 {
			break
		}
		next := points[i+1]
		if next.NetPnL == 0 || math.Signbit(p.NetPnL) == math.Signbit(next.NetPnL) {
			continue
		}
		if hasCliff && p.Price <= conditionPrice && next.Price > conditionPrice {
			continue
		}
		out = append(out, p.Price+(0-p.NetPnL)*(next.Price-p.Price)/(next.NetPnL-p.NetPnL))
	}
	return out
}

// computeCliffJump returns the P&L change across the condition price,
// or nil if the series does not sample both sides of it.
func computeCliffJump(series domain.PnLSeries, conditionPrice float64) *float64 {
	below, err := lookup.PointAtOrBelow(conditionPrice, series)
	if err != nil || below.Price > conditionPrice {
		return nil
	}
	above, err := lookup.PointAbove(conditionPrice, series)
	if err != nil {
		return nil
	}
	jump := above.NetPnL - below.NetPnL
	return &jump
}

// computeMean calculates arithmetic mean of values.
func computeMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// computePercentile uses linear interpolation.
// sorted must be pre-sorted ASC.
// p is percentile (0.10 = 10th percentile).
func computePercentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}

	idx := p * float64(n-1)
	lower := int(idx)
	upper := lower + 1
	if upper >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}
