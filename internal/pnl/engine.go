package pnl

import "perp-hedge-lab/internal/domain"

// Engine evaluates one validated set of strategy parameters.
type Engine struct {
	params   domain.StrategyParameters
	sampling SamplingOptions
}

// Option configures an Engine.
type Option func(*Engine)

// WithSampling overrides the cliff sampling options.
func WithSampling(opts SamplingOptions) Option {
	return func(e *Engine) {
		e.sampling = opts
	}
}

// NewEngine validates params and returns an Engine for them.
// Invalid parameters are rejected here rather than producing a
// meaningless curve later.
func NewEngine(params domain.StrategyParameters, opts ...Option) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		params:   params,
		sampling: DefaultSamplingOptions(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Parameters returns the parameters the engine was built with.
func (e *Engine) Parameters() domain.StrategyParameters {
	return e.params
}

// Evaluate returns the per-leg breakdown at finalPrice.
func (e *Engine) Evaluate(finalPrice float64) domain.Breakdown {
	return Evaluate(e.params, finalPrice)
}

// SamplePrices returns the price axis for d with the engine's sampling options.
func (e *Engine) SamplePrices(d domain.PriceDomain) []float64 {
	return SamplePricesWith(d.Min, d.Max, e.params.ConditionPrice, d.Step, e.sampling)
}

// Series evaluates the net P&L at every sampled price of d.
// Points come back in ascending price order.
func (e *Engine) Series(d domain.PriceDomain) (domain.PnLSeries, error) {
	if err := d.Validate(); err != nil {
		return domain.PnLSeries{}, err
	}

	prices := e.SamplePrices(d)
	points := make([]domain.PnLPoint, len(prices))
	for i, price := range prices {
		resolveOdd := ResolveOddAt(price, e.params.ConditionPrice, e.params.ResolveOdd)
		points[i] = domain.PnLPoint{
			Price:  price,
			NetPnL: CombinedPnL(price, e.params.EntryOdd, resolveOdd, e.params),
		}
	}

	return domain.PnLSeries{EntryOdd: e.params.EntryOdd, Points: points}, nil
}

// Breakdowns evaluates the full breakdown at every sampled price of d.
func (e *Engine) Breakdowns(d domain.PriceDomain) ([]domain.Breakdown, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	prices := e.SamplePrices(d)
	out := make([]domain.Breakdown, len(prices))
	for i, price := range prices {
		out[i] = e.Evaluate(price)
	}
	return out, nil
}

// GenerateSeries validates params and d, then returns the P&L series.
func GenerateSeries(params domain.StrategyParameters, d domain.PriceDomain) (domain.PnLSeries, error) {
	e, err := NewEngine(params)
	if err != nil {
		return domain.PnLSeries{}, err
	}
	return e.Series(d)
}
