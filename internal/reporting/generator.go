package reporting

import (
	"errors"
	"sort"
	"strconv"
	"time"

	"perp-hedge-lab/internal/chart"
	"perp-hedge-lab/internal/idhash"
	"perp-hedge-lab/internal/metrics"
	"perp-hedge-lab/internal/observability"
)

// ErrEmptyDataset is returned when a dataset has no curves.
var ErrEmptyDataset = errors.New("dataset has no curves")

// Generator produces reports from chart datasets.
type Generator struct {
	metrics *observability.Metrics
	now     func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator. m may be nil.
func NewGenerator(m *observability.Metrics) *Generator {
	return &Generator{
		metrics: m,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate produces a complete report for ds.
func (g *Generator) Generate(ds *chart.Dataset) (*Report, error) {
	if ds == nil || len(ds.Curves) == 0 {
		return nil, ErrEmptyDataset
	}

	params := ds.Parameters
	stats := metrics.ComputeAll(ds.AllSeries(), params)

	selected := make(map[float64]bool, len(ds.Curves))
	for _, c := range ds.Curves {
		selected[c.EntryOdd] = c.Selected
	}

	rows := make([]CurveRow, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, CurveRow{
			SeriesID:        idhash.ComputeSeriesID(params.WithEntryOdd(s.EntryOdd), ds.Domain),
			Key:             chart.CurveKey(s.EntryOdd),
			EntryOdd:        s.EntryOdd,
			Selected:        selected[s.EntryOdd],
			MaxPnL:          s.MaxPnL,
			MaxPnLPrice:     s.MaxPnLPrice,
			MinPnL:          s.MinPnL,
			MinPnLPrice:     s.MinPnLPrice,
			MedianPnL:       s.MedianPnL,
			ProfitableShare: s.ProfitableShare,
			Breakevens:      s.BreakevenPrices,
			CliffJump:       s.CliffJump,
			HasSentinel:     s.HasSentinel,
		})
	}

	// ComputeAll already orders by entry odd; keep key as a tiebreaker.
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].EntryOdd != rows[j].EntryOdd {
			return rows[i].EntryOdd < rows[j].EntryOdd
		}
		return rows[i].Key < rows[j].Key
	})

	g.metrics.RecordReport()

	return &Report{
		GeneratedAt: g.now(),
		CurveCount:  len(rows),
		Parameters: ParameterSection{
			CapitalPolymarket: params.CapitalPolymarket,
			PositionSizePerp:  params.PositionSizePerp,
			PerpEntryPrice:    params.PerpEntryPrice,
			ConditionPrice:    params.ConditionPrice,
			SelectedEntryOdd:  params.EntryOdd,
			ResolveOdd:        optional(params.ResolveOdd),
			StopLossPrice:     optional(params.StopLossPrice),
			TakeProfitPrice:   optional(params.TakeProfitPrice),
		},
		Domain: DomainSection{
			Min:     ds.Domain.Min,
			Max:     ds.Domain.Max,
			Step:    ds.Domain.Step,
			Samples: len(ds.Prices),
		},
		Curves: rows,
	}, nil
}

func optional(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
