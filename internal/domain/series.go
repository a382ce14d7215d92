package domain

import (
	"errors"
	"fmt"
	"math"
)

// PriceDomain is the range of final prices a series is evaluated over.
type PriceDomain struct {
	Min  float64 // lowest final price sampled
	Max  float64 // highest final price sampled
	Step float64 // uniform grid interval
}

// Reference price domain.
const (
	DefaultDomainMin  = 85000.0
	DefaultDomainMax  = 130000.0
	DefaultDomainStep = 500.0

	// MaxGridSamples caps the uniform grid of a domain.
	MaxGridSamples = 100_000
)

// Domain errors.
var (
	ErrInvalidDomain = errors.New("invalid price domain")
	ErrDomainMin     = fmt.Errorf("%w: min must be positive", ErrInvalidDomain)
	ErrDomainRange   = fmt.Errorf("%w: max must be greater than min", ErrInvalidDomain)
	ErrDomainStep    = fmt.Errorf("%w: step must be positive", ErrInvalidDomain)
	ErrDomainDense   = fmt.Errorf("%w: step too small for range", ErrInvalidDomain)
)

// DefaultPriceDomain returns the reference 85k-130k domain at a 500 step.
func DefaultPriceDomain() PriceDomain {
	return PriceDomain{Min: DefaultDomainMin, Max: DefaultDomainMax, Step: DefaultDomainStep}
}

// GridSize returns the number of uniform grid points min + i*step in the
// domain. It is only meaningful for a domain that passes Validate.
func (d PriceDomain) GridSize() int {
	return int(math.Floor((d.Max-d.Min)/d.Step+1e-9)) + 1
}

// Validate checks the domain bounds and step. The uniform grid may hold at
// most MaxGridSamples points.
func (d PriceDomain) Validate() error {
	if !positive(d.Min) {
		return ErrDomainMin
	}
	if !(d.Max > d.Min) || math.IsInf(d.Max, 1) {
		return ErrDomainRange
	}
	if !positive(d.Step) {
		return ErrDomainStep
	}
	if n := (d.Max - d.Min) / d.Step; math.IsNaN(n) || n+1 > MaxGridSamples {
		return fmt.Errorf("%w: %.0f points over %v..%v at %v, limit %d",
			ErrDomainDense, math.Floor(n)+1, d.Min, d.Max, d.Step, MaxGridSamples)
	}
	return nil
}

// Perp exit reasons.
const (
	ExitReasonStopLoss   = "STOP_LOSS"
	ExitReasonTakeProfit = "TAKE_PROFIT"
	ExitReasonFinalPrice = "FINAL_PRICE"
)

// Breakdown is the per-leg evaluation of a strategy at one final price.
type Breakdown struct {
	Price          float64 `json:"price"`       // sampled final price
	ResolveOdd     float64 `json:"resolve_odd"` // odd received on the binary leg
	PolymarketPnL  float64 `json:"polymarket_pnl"`
	PerpExitPrice  float64 `json:"perp_exit_price"` // after stop-loss / take-profit adjustment
	PerpExitReason string  `json:"perp_exit_reason"`
	PerpPnL        float64 `json:"perp_pnl"`
	NetPnL         float64 `json:"net_pnl"` // PolymarketPnL + PerpPnL
}

// PnLPoint is one (price, net P&L) sample.
type PnLPoint struct {
	Price  float64 `json:"price"`
	NetPnL float64 `json:"net_pnl"`
}

// PnLSeries is the P&L curve for a single entry odd.
// Points are ordered by ascending price.
type PnLSeries struct {
	EntryOdd float64    `json:"entry_odd"`
	Points   []PnLPoint `json:"points"`
}

// Prices returns the price axis of the series.
func (s PnLSeries) Prices() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Price
	}
	return out
}

// Values returns the net P&L values of the series.
func (s PnLSeries) Values() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.NetPnL
	}
	return out
}
