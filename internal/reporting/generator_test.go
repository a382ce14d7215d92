package reporting

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perp-hedge-lab/internal/chart"
	"perp-hedge-lab/internal/domain"
	"perp-hedge-lab/internal/observability"
)

var fixedTime = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

func buildDataset(t *testing.T, params domain.StrategyParameters, odds []float64) *chart.Dataset {
	t.Helper()
	b := chart.NewBuilder(chart.BuilderOptions{Logger: zerolog.Nop()})
	ds, err := b.Build(context.Background(), params, domain.DefaultPriceDomain(), odds)
	require.NoError(t, err)
	return ds
}

func TestGenerate_Deterministic(t *testing.T) {
	ds := buildDataset(t, domain.DefaultStrategyParameters(), domain.DefaultChartOdds)

	gen := NewGenerator(nil).WithClock(func() time.Time { return fixedTime })

	r1, err := gen.Generate(ds)
	require.NoError(t, err)
	r2, err := gen.Generate(ds)
	require.NoError(t, err)

	assert.Equal(t, r1, r2)
	assert.Equal(t, fixedTime, r1.GeneratedAt)
	assert.Equal(t, RenderMarkdown(r1), RenderMarkdown(r2))
	assert.Equal(t, RenderStatsCSV(r1), RenderStatsCSV(r2))
}

func TestGenerate_Rows(t *testing.T) {
	params := domain.DefaultStrategyParameters().WithEntryOdd(0.42)
	ds := buildDataset(t, params, domain.DefaultChartOdds)

	r, err := NewGenerator(nil).WithClock(func() time.Time { return fixedTime }).Generate(ds)
	require.NoError(t, err)

	require.Equal(t, 5, r.CurveCount)
	require.Len(t, r.Curves, 5)

	// Rows are ordered by entry odd even though the selected odd was appended last
	odds := make([]float64, len(r.Curves))
	for i, c := range r.Curves {
		odds[i] = c.EntryOdd
	}
	assert.Equal(t, []float64{0.3, 0.42, 0.5, 0.63, 0.8}, odds)
	assert.True(t, r.Curves[1].Selected)
	assert.Equal(t, "odd_0.42", r.Curves[1].Key)

	// Series IDs are unique per curve and 64 hex chars
	seen := make(map[string]bool)
	for _, c := range r.Curves {
		assert.Len(t, c.SeriesID, 64)
		assert.False(t, seen[c.SeriesID])
		seen[c.SeriesID] = true
	}

	assert.Equal(t, 111, r.Domain.Samples)
	assert.Equal(t, "-", r.Parameters.StopLossPrice)
	assert.Equal(t, 0.42, r.Parameters.SelectedEntryOdd)
}

func TestGenerate_EmptyDataset(t *testing.T) {
	_, err := NewGenerator(nil).Generate(&chart.Dataset{})
	assert.ErrorIs(t, err, ErrEmptyDataset)

	_, err = NewGenerator(nil).Generate(nil)
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestGenerate_RecordsMetric(t *testing.T) {
	m := observability.NewMetrics("")
	ds := buildDataset(t, domain.DefaultStrategyParameters(), []float64{0.3})

	_, err := NewGenerator(m).Generate(ds)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReportsGenerated))
}

func TestRenderSeriesCSV(t *testing.T) {
	ds := buildDataset(t, domain.DefaultStrategyParameters(), []float64{0.3})

	out := RenderSeriesCSV(ds)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

	require.Len(t, lines, len(ds.Prices)+1)
	assert.Equal(t, "price,odd_0.3,odd_0.5", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "85000.00,"))
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "130000.00,"))
}

func TestRenderStatsCSV(t *testing.T) {
	ds := buildDataset(t, domain.DefaultStrategyParameters(), nil)

	r, err := NewGenerator(nil).WithClock(func() time.Time { return fixedTime }).Generate(ds)
	require.NoError(t, err)

	out := RenderStatsCSV(r)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "series_id,key,entry_odd"))
	fields := strings.Split(lines[1], ",")
	require.Len(t, fields, 13)
	assert.Equal(t, "odd_0.5", fields[1])
	assert.Equal(t, "true", fields[3])
	assert.Equal(t, "93933.00;114807.00", fields[10])
	assert.Equal(t, "false", fields[12])
}

func TestRenderMarkdown(t *testing.T) {
	params := domain.DefaultStrategyParameters()
	params.StopLossPrice = domain.Float64(120000)
	ds := buildDataset(t, params, []float64{0, 0.63})

	r, err := NewGenerator(nil).WithClock(func() time.Time { return fixedTime }).Generate(ds)
	require.NoError(t, err)

	md := RenderMarkdown(r)

	assert.Contains(t, md, "# Hedge Strategy Report")
	assert.Contains(t, md, "Generated: 2024-01-15T12:00:00Z")
	assert.Contains(t, md, "| Stop Loss | 120000 |")
	assert.Contains(t, md, "| Take Profit | - |")
	assert.Contains(t, md, "0.5000 *")
	assert.Contains(t, md, "## Warnings")
	assert.Contains(t, md, "odd_0: entry odd is not positive")
}
