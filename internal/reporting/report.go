package reporting

import "time"

// Report represents a hedge scenario report.
type Report struct {
	// Metadata
	GeneratedAt time.Time
	CurveCount  int

	// Inputs
	Parameters ParameterSection
	Domain     DomainSection

	// Curve statistics (sorted by entry odd)
	Curves []CurveRow

	// Filled in by the bundle pipeline
	Coverage    CoverageSection
	DataVersion string
}

// CoverageSection lists sampling coverage checks.
type CoverageSection struct {
	Checks    []CoverageCheckRow
	AllPassed bool
}

// CoverageCheckRow represents one coverage check.
type CoverageCheckRow struct {
	Name     string
	Expected string
	Actual   string
	Pass     bool
}

// ParameterSection lists the strategy parameters. Optional values are
// rendered as "-" when unset.
type ParameterSection struct {
	CapitalPolymarket float64
	PositionSizePerp  float64
	PerpEntryPrice    float64
	ConditionPrice    float64
	SelectedEntryOdd  float64
	ResolveOdd        string
	StopLossPrice     string
	TakeProfitPrice   string
}

// DomainSection describes the sampled price domain.
type DomainSection struct {
	Min     float64
	Max     float64
	Step    float64
	Samples int
}

// CurveRow represents one row in the curve statistics table.
type CurveRow struct {
	SeriesID        string // deterministic hash of parameters + domain
	Key             string // chart key, e.g. odd_0.5
	EntryOdd        float64
	Selected        bool
	MaxPnL          float64
	MaxPnLPrice     float64
	MinPnL          float64
	MinPnLPrice     float64
	MedianPnL       float64
	ProfitableShare float64
	Breakevens      []float64
	CliffJump       *float64
	HasSentinel     bool
}
