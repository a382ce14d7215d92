package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"perp-hedge-lab/internal/domain"
)

// ComputeSeriesID computes a deterministic series_id using SHA256.
// Formula: SHA256(capital|size|entry|condition|entry_odd|resolve_odd|stop_loss|take_profit|min|max|step)
// Unset optional fields are written as "-".
// Returns hex-encoded hash (64 characters).
func ComputeSeriesID(params domain.StrategyParameters, d domain.PriceDomain) string {
	fields := []string{
		formatFloat(params.CapitalPolymarket),
		formatFloat(params.PositionSizePerp),
		formatFloat(params.PerpEntryPrice),
		formatFloat(params.ConditionPrice),
		formatFloat(params.EntryOdd),
		formatOptional(params.ResolveOdd),
		formatOptional(params.StopLossPrice),
		formatOptional(params.TakeProfitPrice),
		formatFloat(d.Min),
		formatFloat(d.Max),
		formatFloat(d.Step),
	}

	hash := sha256.Sum256([]byte(strings.Join(fields, "|")))
	return hex.EncodeToString(hash[:])
}

// ShortID returns the first 12 hex characters of id, for display.
func ShortID(id string) string {
	if len(id) <= 12 {
		return id
	}
	return id[:12]
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatOptional(v *float64) string {
	if v == nil {
		return "-"
	}
	return formatFloat(*v)
}
