package reporting

import (
	"fmt"
	"strings"

	"perp-hedge-lab/internal/chart"
)

// RenderSeriesCSV renders a dataset as a wide CSV: one row per price,
// one column per curve.
func RenderSeriesCSV(ds *chart.Dataset) string {
	var sb strings.Builder

	// Header
	sb.WriteString("price")
	for _, c := range ds.Curves {
		sb.WriteString(",")
		sb.WriteString(c.Key)
	}
	sb.WriteString("\n")

	// Rows
	for i, price := range ds.Prices {
		sb.WriteString(fmt.Sprintf("%.2f", price))
		for _, c := range ds.Curves {
			sb.WriteString(fmt.Sprintf(",%.6f", c.Values[i]))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// RenderStatsCSV renders the curve statistics of a report as CSV.
func RenderStatsCSV(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("series_id,key,entry_odd,selected,max_pnl,max_pnl_price,min_pnl,min_pnl_price,")
	sb.WriteString("median_pnl,profitable_share,breakevens,cliff_jump,sentinel\n")

	// Rows
	for _, c := range r.Curves {
		sb.WriteString(fmt.Sprintf("%s,%s,%.4f,%t,%.6f,%.2f,%.6f,%.2f,%.6f,%.6f,%s,%s,%t\n",
			c.SeriesID,
			c.Key,
			c.EntryOdd,
			c.Selected,
			c.MaxPnL,
			c.MaxPnLPrice,
			c.MinPnL,
			c.MinPnLPrice,
			c.MedianPnL,
			c.ProfitableShare,
			joinPrices(c.Breakevens, ";"),
			formatCliff(c.CliffJump, "%.6f"),
			c.HasSentinel,
		))
	}

	return sb.String()
}

func joinPrices(prices []float64, sep string) string {
	parts := make([]string, len(prices))
	for i, p := range prices {
		parts[i] = fmt.Sprintf("%.2f", p)
	}
	return strings.Join(parts, sep)
}

func formatCliff(v *float64, format string) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf(format, *v)
}
