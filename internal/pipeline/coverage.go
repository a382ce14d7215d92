package pipeline

import (
	"fmt"
	"math"

	"perp-hedge-lab/internal/chart"
	"perp-hedge-lab/internal/pnl"
)

// CoverageCheck represents one sampling coverage criterion.
type CoverageCheck struct {
	Name     string
	Expected string
	Actual   string
	Pass     bool
}

// CoverageResult contains all coverage checks.
type CoverageResult struct {
	Checks  []CoverageCheck
	AllPass bool
}

// CheckCoverage verifies that a dataset's price axis covers the domain
// bounds and both sides of the condition price, is strictly ascending, and
// that every curve value is finite.
func CheckCoverage(ds *chart.Dataset, opts pnl.SamplingOptions) *CoverageResult {
	result := &CoverageResult{
		Checks:  make([]CoverageCheck, 0, 5),
		AllPass: true,
	}
	add := func(c CoverageCheck) {
		result.Checks = append(result.Checks, c)
		if !c.Pass {
			result.AllPass = false
		}
	}

	prices := ds.Prices
	d := ds.Domain
	cond := ds.Parameters.ConditionPrice

	// 1. Domain bounds
	first, last := math.NaN(), math.NaN()
	if len(prices) > 0 {
		first, last = prices[0], prices[len(prices)-1]
	}
	add(CoverageCheck{
		Name:     "domain_bounds",
		Expected: fmt.Sprintf("%.2f..%.2f", d.Min, d.Max),
		Actual:   fmt.Sprintf("%.2f..%.2f", first, last),
		Pass:     first == d.Min && last == d.Max,
	})

	// 2. Uniform grid size
	gridSize := d.GridSize()
	add(CoverageCheck{
		Name:     "grid_samples",
		Expected: fmt.Sprintf(">= %d", gridSize),
		Actual:   fmt.Sprintf("%d", len(prices)),
		Pass:     len(prices) >= gridSize,
	})

	// 3. Both sides of the condition price
	below, above := cond-opts.Epsilon, cond+opts.Epsilon
	bracket := CoverageCheck{
		Name:     "condition_bracketed",
		Expected: fmt.Sprintf("%.2f and %.2f", below, above),
	}
	switch {
	case below < d.Min || above > d.Max:
		bracket.Actual = "condition outside domain"
		bracket.Pass = true
	default:
		hasBelow, hasAbove := contains(prices, below), contains(prices, above)
		bracket.Actual = fmt.Sprintf("below=%t above=%t", hasBelow, hasAbove)
		bracket.Pass = hasBelow && hasAbove
	}
	add(bracket)

	// 4. Strictly ascending axis
	ascending := true
	for i := 1; i < len(prices); i++ {
		if prices[i] <= prices[i-1] {
			ascending = false
			break
		}
	}
	add(CoverageCheck{
		Name:     "axis_ascending",
		Expected: "strictly ascending",
		Actual:   fmt.Sprintf("%t", ascending),
		Pass:     ascending,
	})

	// 5. Finite values
	nonFinite := 0
	for _, c := range ds.Curves {
		for _, v := range c.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				nonFinite++
			}
		}
	}
	add(CoverageCheck{
		Name:     "finite_values",
		Expected: "0 non-finite",
		Actual:   fmt.Sprintf("%d non-finite", nonFinite),
		Pass:     nonFinite == 0,
	})

	return result
}

func contains(prices []float64, target float64) bool {
	for _, p := range prices {
		if p == target {
			return true
		}
	}
	return false
}
