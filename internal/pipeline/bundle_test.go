package pipeline

import (
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perp-hedge-lab/internal/chart"
	"perp-hedge-lab/internal/decision"
	"perp-hedge-lab/internal/domain"
	"perp-hedge-lab/internal/pnl"
)

var fixedTime = time.Date(2025, 1, 4, 12, 0, 0, 0, time.UTC)

func TestPipeline_Run(t *testing.T) {
	dir := t.TempDir()

	p := New(Options{Logger: zerolog.Nop(), OutputDir: dir}).
		WithClock(func() time.Time { return fixedTime })

	res, err := p.Run(context.Background(), domain.DefaultStrategyParameters(), domain.DefaultPriceDomain(), domain.DefaultChartOdds)
	require.NoError(t, err)

	require.Len(t, res.Files, 5)
	for _, name := range []string{ReportFile, SeriesCSVFile, StatsCSVFile, SeriesJSONFile, DecisionFile} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	assert.True(t, res.Coverage.AllPass)
	assert.True(t, res.Report.Coverage.AllPassed)
	assert.Len(t, res.Report.DataVersion, 12)

	md, err := os.ReadFile(filepath.Join(dir, ReportFile))
	require.NoError(t, err)
	assert.Contains(t, string(md), "## Sampling Coverage")
	assert.Contains(t, string(md), "| condition_bracketed |")
	assert.Contains(t, string(md), res.Report.DataVersion)

	raw, err := os.ReadFile(filepath.Join(dir, SeriesJSONFile))
	require.NoError(t, err)
	var decoded struct {
		Prices []float64 `json:"prices"`
		Curves []struct {
			Key    string    `json:"key"`
			Values []float64 `json:"values"`
		} `json:"curves"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Len(t, decoded.Prices, 111)
	assert.Len(t, decoded.Curves, 4)

	require.NotNil(t, res.Decision)
	assert.Equal(t, decision.DecisionGO, res.Decision.Decision)
	gate, err := os.ReadFile(filepath.Join(dir, DecisionFile))
	require.NoError(t, err)
	assert.Contains(t, string(gate), "## Decision: GO")
	assert.Contains(t, string(gate), "| Break-even Prices | 93933.00, 114807.00 |")
	assert.Contains(t, string(gate), "NO-GO triggers fired: 0/2.")
}

func TestPipeline_GateThresholds(t *testing.T) {
	params := domain.DefaultStrategyParameters().WithEntryOdd(0.8)

	res, err := New(Options{Logger: zerolog.Nop()}).Run(context.Background(), params, domain.DefaultPriceDomain(), nil)
	require.NoError(t, err)
	assert.Equal(t, decision.DecisionNOGO, res.Decision.Decision)

	loose := decision.Thresholds{MaxLossMultiple: 3, MinProfitableShare: 0.1}
	res, err = New(Options{Logger: zerolog.Nop(), Thresholds: loose}).Run(context.Background(), params, domain.DefaultPriceDomain(), nil)
	require.NoError(t, err)
	assert.Equal(t, decision.DecisionGO, res.Decision.Decision)
}

func TestPipeline_Deterministic(t *testing.T) {
	run := func() []byte {
		dir := t.TempDir()
		p := New(Options{Logger: zerolog.Nop(), OutputDir: dir}).
			WithClock(func() time.Time { return fixedTime })
		_, err := p.Run(context.Background(), domain.DefaultStrategyParameters(), domain.DefaultPriceDomain(), nil)
		require.NoError(t, err)
		data, err := os.ReadFile(filepath.Join(dir, ReportFile))
		require.NoError(t, err)
		return data
	}

	assert.Equal(t, run(), run())
}

func TestPipeline_NoOutputDir(t *testing.T) {
	p := New(Options{Logger: zerolog.Nop()})

	res, err := p.Run(context.Background(), domain.DefaultStrategyParameters(), domain.DefaultPriceDomain(), nil)
	require.NoError(t, err)
	assert.Empty(t, res.Files)
	assert.NotNil(t, res.Report)
}

func TestPipeline_InvalidParameters(t *testing.T) {
	params := domain.DefaultStrategyParameters()
	params.StopLossPrice = domain.Float64(1)

	_, err := New(Options{Logger: zerolog.Nop()}).Run(context.Background(), params, domain.DefaultPriceDomain(), nil)
	assert.ErrorIs(t, err, domain.ErrStopLossBelowEntry)
}

func TestCheckCoverage_ConditionOutsideDomain(t *testing.T) {
	params := domain.DefaultStrategyParameters()
	params.ConditionPrice = 200000

	ds, err := chart.NewBuilder(chart.BuilderOptions{Logger: zerolog.Nop()}).
		Build(context.Background(), params, domain.DefaultPriceDomain(), nil)
	require.NoError(t, err)

	res := CheckCoverage(ds, pnl.DefaultSamplingOptions())
	assert.True(t, res.AllPass)
	assert.Equal(t, "condition outside domain", res.Checks[2].Actual)
}

func TestCheckCoverage_Failures(t *testing.T) {
	ds := &chart.Dataset{
		Parameters: domain.DefaultStrategyParameters(),
		Domain:     domain.PriceDomain{Min: 100000, Max: 110000, Step: 5000},
		Prices:     []float64{100000, 105000, 104000},
		Curves:     []chart.Curve{{Key: "odd_0.5", EntryOdd: 0.5, Values: []float64{1, math.NaN(), 2}}},
	}

	res := CheckCoverage(ds, pnl.DefaultSamplingOptions())
	assert.False(t, res.AllPass)

	failed := make([]string, 0)
	for _, c := range res.Checks {
		if !c.Pass {
			failed = append(failed, c.Name)
		}
	}
	assert.Equal(t, "domain_bounds,condition_bracketed,axis_ascending,finite_values", strings.Join(failed, ","))
}
