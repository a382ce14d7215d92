package lookup

import (
	"errors"

	"perp-hedge-lab/internal/domain"
)

// Errors returned by lookup functions.
var (
	ErrNoPoints  = errors.New("series has no points")
	ErrNoneAbove = errors.New("no point above target price")
)

// PnLAt returns the net P&L of the point at or below target price.
// If every point is above target, the first point's value is returned.
// Returns ErrNoPoints if the series is empty.
func PnLAt(target float64, series domain.PnLSeries) (float64, error) {
	p, err := PointAtOrBelow(target, series)
	if err != nil {
		return 0, err
	}
	return p.NetPnL, nil
}

// PointAtOrBelow returns the last point whose price is <= target.
// Falls back to the first point when none qualifies.
func PointAtOrBelow(target float64, series domain.PnLSeries) (domain.PnLPoint, error) {
	pts := series.Points
	if len(pts) == 0 {
		return domain.PnLPoint{}, ErrNoPoints
	}

	for i := len(pts) - 1; i >= 0; i-- {
		if pts[i].Price <= target {
			return pts[i], nil
		}
	}

	return pts[0], nil
}

// PointAbove returns the first point whose price is strictly above target.
// Returns ErrNoneAbove if target is at or past the last point.
func PointAbove(target float64, series domain.PnLSeries) (domain.PnLPoint, error) {
	pts := series.Points
	if len(pts) == 0 {
		return domain.PnLPoint{}, ErrNoPoints
	}

	for _, p := range pts {
		if p.Price > target {
			return p, nil
		}
	}

	return domain.PnLPoint{}, ErrNoneAbove
}
