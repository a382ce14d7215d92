package decision

import (
	"errors"

	"perp-hedge-lab/internal/reporting"
)

// ErrNoSelectedCurve is returned when a report has no selected curve.
var ErrNoSelectedCurve = errors.New("report has no selected curve")

// BuildInput creates an Input for the report's selected curve.
func BuildInput(report *reporting.Report) (*Input, error) {
	for _, c := range report.Curves {
		if !c.Selected {
			continue
		}
		return &Input{
			EntryOdd:        c.EntryOdd,
			Capital:         report.Parameters.CapitalPolymarket,
			MinPnL:          c.MinPnL,
			MinPnLPrice:     c.MinPnLPrice,
			MaxPnL:          c.MaxPnL,
			MaxPnLPrice:     c.MaxPnLPrice,
			ProfitableShare: c.ProfitableShare,
			Breakevens:      c.Breakevens,
			CliffJump:       c.CliffJump,
			HasSentinel:     c.HasSentinel,
			CoverageChecked: len(report.Coverage.Checks) > 0,
			CoveragePassed:  report.Coverage.AllPassed,
		}, nil
	}
	return nil, ErrNoSelectedCurve
}
