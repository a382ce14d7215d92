// Package chart builds multi-curve P&L datasets: one curve per entry odd,
// all sharing the same price axis.
package chart

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"perp-hedge-lab/internal/domain"
	"perp-hedge-lab/internal/observability"
	"perp-hedge-lab/internal/pnl"
)

// ErrAxisMismatch is returned if two curves disagree on the price axis.
var ErrAxisMismatch = errors.New("curves do not share a price axis")

// Curve is one entry odd's P&L over the dataset's price axis.
type Curve struct {
	Key      string    `json:"key"`
	EntryOdd float64   `json:"entry_odd"`
	Selected bool      `json:"selected"`
	Values   []float64 `json:"values"`
}

// Dataset is a set of curves over one price axis.
// Curves[i].Values[j] is the net P&L of curve i at Prices[j].
type Dataset struct {
	Parameters domain.StrategyParameters `json:"-"`
	Domain     domain.PriceDomain        `json:"-"`
	Prices     []float64                 `json:"prices"`
	Curves     []Curve                   `json:"curves"`
}

// Row is one price with the value of every curve, keyed by curve key.
type Row struct {
	Price  float64
	Values map[string]float64
}

// CurveKey returns the key a curve for odd is stored under, e.g. "odd_0.5".
func CurveKey(odd float64) string {
	return "odd_" + strconv.FormatFloat(odd, 'f', -1, 64)
}

// Rows returns the dataset as price-keyed rows in ascending price order.
func (d *Dataset) Rows() []Row {
	rows := make([]Row, len(d.Prices))
	for i, price := range d.Prices {
		values := make(map[string]float64, len(d.Curves))
		for _, c := range d.Curves {
			values[c.Key] = c.Values[i]
		}
		rows[i] = Row{Price: price, Values: values}
	}
	return rows
}

// Series returns curve i as a PnLSeries.
func (d *Dataset) Series(i int) domain.PnLSeries {
	c := d.Curves[i]
	points := make([]domain.PnLPoint, len(d.Prices))
	for j, price := range d.Prices {
		points[j] = domain.PnLPoint{Price: price, NetPnL: c.Values[j]}
	}
	return domain.PnLSeries{EntryOdd: c.EntryOdd, Points: points}
}

// AllSeries returns every curve as a PnLSeries.
func (d *Dataset) AllSeries() []domain.PnLSeries {
	out := make([]domain.PnLSeries, len(d.Curves))
	for i := range d.Curves {
		out[i] = d.Series(i)
	}
	return out
}

// Builder computes chart datasets.
type Builder struct {
	logger  zerolog.Logger
	metrics *observability.Metrics
	workers int
}

// BuilderOptions configures a Builder.
type BuilderOptions struct {
	Logger  zerolog.Logger
	Metrics *observability.Metrics // optional
	Workers int                    // defaults to GOMAXPROCS
}

// NewBuilder creates a chart dataset builder.
func NewBuilder(opts BuilderOptions) *Builder {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Builder{
		logger:  opts.Logger,
		metrics: opts.Metrics,
		workers: workers,
	}
}

// Build evaluates params at every odd in odds, plus params.EntryOdd when it
// is not already listed. Duplicate odds are dropped, first occurrence wins.
// Each odd is validated as part of its parameter set before any work starts.
func (b *Builder) Build(ctx context.Context, params domain.StrategyParameters, d domain.PriceDomain, odds []float64) (*Dataset, error) {
	start := time.Now()

	if err := d.Validate(); err != nil {
		b.metrics.RecordValidationError(err)
		return nil, err
	}

	odds = withSelected(odds, params.EntryOdd)

	engines := make([]*pnl.Engine, len(odds))
	for i, odd := range odds {
		e, err := pnl.NewEngine(params.WithEntryOdd(odd))
		if err != nil {
			b.metrics.RecordValidationError(err)
			return nil, fmt.Errorf("entry odd %v: %w", odd, err)
		}
		engines[i] = e
	}

	series := make([]domain.PnLSeries, len(odds))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	for i, e := range engines {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s, err := e.Series(d)
			if err != nil {
				return err
			}
			series[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ds := &Dataset{
		Parameters: params,
		Domain:     d,
		Curves:     make([]Curve, len(series)),
	}
	for i, s := range series {
		if i == 0 {
			ds.Prices = s.Prices()
		} else if len(s.Points) != len(ds.Prices) {
			return nil, ErrAxisMismatch
		}
		ds.Curves[i] = Curve{
			Key:      CurveKey(s.EntryOdd),
			EntryOdd: s.EntryOdd,
			Selected: s.EntryOdd == params.EntryOdd,
			Values:   s.Values(),
		}
		b.metrics.RecordSeries("chart", s)
	}

	elapsed := time.Since(start)
	b.metrics.RecordChartBuild(len(ds.Curves), elapsed)
	b.logger.Debug().
		Int("curves", len(ds.Curves)).
		Int("prices", len(ds.Prices)).
		Dur("elapsed", elapsed).
		Msg("chart dataset built")

	return ds, nil
}

// withSelected dedupes odds and appends selected if missing.
func withSelected(odds []float64, selected float64) []float64 {
	seen := make(map[float64]struct{}, len(odds)+1)
	out := make([]float64, 0, len(odds)+1)
	for _, o := range odds {
		if _, ok := seen[o]; ok {
			continue
		}
		seen[o] = struct{}{}
		out = append(out, o)
	}
	if _, ok := seen[selected]; !ok {
		out = append(out, selected)
	}
	return out
}
