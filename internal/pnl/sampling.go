package pnl

import (
	"iter"
	"math"
	"slices"
)

// SamplingOptions controls the points added around the condition price.
type SamplingOptions struct {
	BandHalfWidth float64 // dense band spans ConditionPrice ± BandHalfWidth
	BandStep      float64 // grid interval inside the band
	Epsilon       float64 // offset of the two points straddling the condition price
}

// Reference sampling around the resolution cliff.
const (
	DefaultBandHalfWidth = 500.0
	DefaultBandStep      = 50.0
	DefaultEpsilon       = 0.01
)

// DefaultSamplingOptions returns the reference band (±500 at 50) and a 0.01 epsilon.
func DefaultSamplingOptions() SamplingOptions {
	return SamplingOptions{
		BandHalfWidth: DefaultBandHalfWidth,
		BandStep:      DefaultBandStep,
		Epsilon:       DefaultEpsilon,
	}
}

// SamplePrices builds the ascending, deduplicated price axis for a series
// using the default sampling options.
func SamplePrices(minPrice, maxPrice, conditionPrice, step float64) []float64 {
	return SamplePricesWith(minPrice, maxPrice, conditionPrice, step, DefaultSamplingOptions())
}

// SamplePricesWith builds the price axis from:
//   - both domain endpoints
//   - a uniform grid minPrice + i*step up to maxPrice
//   - a denser grid across the band around conditionPrice
//   - conditionPrice - Epsilon and conditionPrice + Epsilon
//
// Points outside [minPrice, maxPrice] are dropped. A non-positive step or
// band step skips that grid. Bounds given in reverse order are swapped.
func SamplePricesWith(minPrice, maxPrice, conditionPrice, step float64, opts SamplingOptions) []float64 {
	if minPrice > maxPrice {
		minPrice, maxPrice = maxPrice, minPrice
	}

	points := []float64{minPrice, maxPrice}
	inDomain := func(p float64) bool { return p >= minPrice && p <= maxPrice }

	points = appendGrid(points, minPrice, maxPrice, step, inDomain)

	if opts.BandHalfWidth > 0 {
		points = appendGrid(points,
			conditionPrice-opts.BandHalfWidth,
			conditionPrice+opts.BandHalfWidth,
			opts.BandStep, inDomain)
	}

	if opts.Epsilon > 0 {
		for _, p := range []float64{conditionPrice - opts.Epsilon, conditionPrice + opts.Epsilon} {
			if inDomain(p) {
				points = append(points, p)
			}
		}
	}

	slices.Sort(points)
	return slices.Compact(points)
}

// appendGrid appends from + i*step for every i keeping the value <= to.
// Values are computed by index so long grids do not accumulate rounding.
func appendGrid(points []float64, from, to, step float64, keep func(float64) bool) []float64 {
	if !(step > 0) || math.IsInf(step, 0) || to < from {
		return points
	}
	n := int(math.Floor((to-from)/step + 1e-9))
	for i := 0; i <= n; i++ {
		p := from + float64(i)*step
		if p > to {
			break
		}
		if keep(p) {
			points = append(points, p)
		}
	}
	return points
}

// Prices returns the price axis as a sequence. Each iteration recomputes
// the axis, so the sequence can be ranged over any number of times.
func Prices(minPrice, maxPrice, conditionPrice, step float64) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for _, p := range SamplePrices(minPrice, maxPrice, conditionPrice, step) {
			if !yield(p) {
				return
			}
		}
	}
}
