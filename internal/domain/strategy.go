package domain

import (
	"errors"
	"fmt"
	"math"
)

// StrategyParameters describes one Polymarket + Perpdex hedge.
// The perp leg is always a short: it loses when price rises.
type StrategyParameters struct {
	CapitalPolymarket float64  // capital spent on the binary leg
	PositionSizePerp  float64  // perp notional, leverage already applied
	PerpEntryPrice    float64  // short entry price
	ConditionPrice    float64  // binary market resolves Yes strictly above this price
	EntryOdd          float64  // price paid per Yes share, in [0,1]
	ResolveOdd        *float64 // early-sale price; nil means hold to resolution
	StopLossPrice     *float64 // must be >= PerpEntryPrice
	TakeProfitPrice   *float64 // must be <= PerpEntryPrice
}

// Reference deployment defaults.
const (
	DefaultCapitalPolymarket = 5000.0
	DefaultPositionSizePerp  = 50000.0
	DefaultPerpEntryPrice    = 104370.0
	DefaultConditionPrice    = 104000.0
	DefaultEntryOdd          = 0.50
)

// DefaultChartOdds are the entry odds plotted alongside the selected one.
var DefaultChartOdds = []float64{0.30, 0.50, 0.63, 0.80}

// Validation errors. All of them wrap ErrInvalidParameters.
var (
	ErrInvalidParameters  = errors.New("invalid strategy parameters")
	ErrCapitalNotPositive = fmt.Errorf("%w: capital_polymarket must be positive", ErrInvalidParameters)
	ErrSizeNotPositive    = fmt.Errorf("%w: position_size_perp must be positive", ErrInvalidParameters)
	ErrEntryNotPositive   = fmt.Errorf("%w: perp_entry_price must be positive", ErrInvalidParameters)
	ErrConditionInvalid   = fmt.Errorf("%w: condition_price must be positive", ErrInvalidParameters)
	ErrEntryOddRange      = fmt.Errorf("%w: entry_odd must be within [0,1]", ErrInvalidParameters)
	ErrResolveOddRange    = fmt.Errorf("%w: resolve_odd must be within [0,1]", ErrInvalidParameters)
	ErrStopLossBelowEntry = fmt.Errorf("%w: stop_loss_price must be >= perp_entry_price for a short", ErrInvalidParameters)
	ErrTakeProfitAbove    = fmt.Errorf("%w: take_profit_price must be <= perp_entry_price for a short", ErrInvalidParameters)
	ErrTakeProfitNegative = fmt.Errorf("%w: take_profit_price must not be negative", ErrInvalidParameters)
)

// DefaultStrategyParameters returns the reference deployment's parameters
// with no early sale and no stop-loss/take-profit.
func DefaultStrategyParameters() StrategyParameters {
	return StrategyParameters{
		CapitalPolymarket: DefaultCapitalPolymarket,
		PositionSizePerp:  DefaultPositionSizePerp,
		PerpEntryPrice:    DefaultPerpEntryPrice,
		ConditionPrice:    DefaultConditionPrice,
		EntryOdd:          DefaultEntryOdd,
	}
}

// Validate checks the parameters for a short hedge.
// EntryOdd of exactly 0 is accepted: the Polymarket leg maps it to a sentinel.
func (p StrategyParameters) Validate() error {
	if !positive(p.CapitalPolymarket) {
		return ErrCapitalNotPositive
	}
	if !positive(p.PositionSizePerp) {
		return ErrSizeNotPositive
	}
	if !positive(p.PerpEntryPrice) {
		return ErrEntryNotPositive
	}
	if !positive(p.ConditionPrice) {
		return ErrConditionInvalid
	}
	if !unitInterval(p.EntryOdd) {
		return ErrEntryOddRange
	}
	if p.ResolveOdd != nil && !unitInterval(*p.ResolveOdd) {
		return ErrResolveOddRange
	}
	if p.StopLossPrice != nil && !(*p.StopLossPrice >= p.PerpEntryPrice) {
		return ErrStopLossBelowEntry
	}
	if p.TakeProfitPrice != nil {
		if !(*p.TakeProfitPrice <= p.PerpEntryPrice) {
			return ErrTakeProfitAbove
		}
		if *p.TakeProfitPrice < 0 {
			return ErrTakeProfitNegative
		}
	}
	return nil
}

// WithEntryOdd returns a copy of p using a different entry odd.
func (p StrategyParameters) WithEntryOdd(odd float64) StrategyParameters {
	p.EntryOdd = odd
	return p
}

// positive rejects NaN and Inf as well as non-positive values.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func unitInterval(v float64) bool {
	return v >= 0 && v <= 1
}

// Float64 returns a pointer to v. Handy for the optional fields.
func Float64(v float64) *float64 {
	return &v
}
