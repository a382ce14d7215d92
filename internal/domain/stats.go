package domain

// CurveStats summarises one P&L series.
// Mean/median/percentiles are taken over the sampled points, so the dense
// band around the condition price weighs more than the coarse grid.
type CurveStats struct {
	EntryOdd float64
	Samples  int

	// Extremes
	MaxPnL      float64
	MaxPnLPrice float64
	MinPnL      float64
	MinPnLPrice float64

	// Distribution over samples
	MeanPnL         float64
	MedianPnL       float64
	P10PnL          float64
	P90PnL          float64
	ProfitableShare float64 // samples with NetPnL > 0 / Samples

	// Shape
	BreakevenPrices []float64 // where the continuous parts of the curve cross zero
	CliffJump       *float64  // P&L just above minus at-or-below the condition price; nil without a cliff
	HasSentinel     bool      // entry odd <= 0, binary leg is the sentinel value
}
