package reporting

import (
	"fmt"
	"strings"
	"time"

	"perp-hedge-lab/internal/idhash"
)

// RenderMarkdown renders report as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Hedge Strategy Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Curves: %d | Samples per curve: %d\n\n", r.CurveCount, r.Domain.Samples))

	// Parameters
	p := r.Parameters
	sb.WriteString("## Parameters\n\n")
	sb.WriteString("| Parameter | Value |\n")
	sb.WriteString("|-----------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Polymarket Capital | %.2f |\n", p.CapitalPolymarket))
	sb.WriteString(fmt.Sprintf("| Perp Position Size | %.2f |\n", p.PositionSizePerp))
	sb.WriteString(fmt.Sprintf("| Perp Entry Price | %.2f |\n", p.PerpEntryPrice))
	sb.WriteString(fmt.Sprintf("| Condition Price | %.2f |\n", p.ConditionPrice))
	sb.WriteString(fmt.Sprintf("| Selected Entry Odd | %.4f |\n", p.SelectedEntryOdd))
	sb.WriteString(fmt.Sprintf("| Resolve Odd | %s |\n", p.ResolveOdd))
	sb.WriteString(fmt.Sprintf("| Stop Loss | %s |\n", p.StopLossPrice))
	sb.WriteString(fmt.Sprintf("| Take Profit | %s |\n", p.TakeProfitPrice))
	sb.WriteString(fmt.Sprintf("| Price Domain | %.2f - %.2f (step %.2f) |\n", r.Domain.Min, r.Domain.Max, r.Domain.Step))
	sb.WriteString("\n")

	// Curve statistics
	sb.WriteString("## Curves\n\n")
	if len(r.Curves) > 0 {
		sb.WriteString("| Series | Entry Odd | Max P&L | @ Price | Min P&L | @ Price | Median | Profitable | Break-even | Cliff |\n")
		sb.WriteString("|--------|-----------|---------|---------|---------|---------|--------|------------|------------|-------|\n")
		for _, c := range r.Curves {
			odd := fmt.Sprintf("%.4f", c.EntryOdd)
			if c.Selected {
				odd += " *"
			}
			breakevens := joinPrices(c.Breakevens, ", ")
			if breakevens == "" {
				breakevens = "none"
			}
			cliff := formatCliff(c.CliffJump, "%.2f")
			if cliff == "" {
				cliff = "-"
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %.2f | %.2f | %.2f | %.2f | %.2f | %.1f%% | %s | %s |\n",
				idhash.ShortID(c.SeriesID), odd,
				c.MaxPnL, c.MaxPnLPrice, c.MinPnL, c.MinPnLPrice, c.MedianPnL,
				c.ProfitableShare*100, breakevens, cliff))
		}
		sb.WriteString("\n`*` marks the selected entry odd.\n")
	} else {
		sb.WriteString("No curves available.\n")
	}
	sb.WriteString("\n")

	// Warnings
	var warnings []string
	for _, c := range r.Curves {
		if c.HasSentinel {
			warnings = append(warnings, fmt.Sprintf("- %s: entry odd is not positive; the Polymarket leg shows a placeholder value", c.Key))
		}
	}
	if len(warnings) > 0 {
		sb.WriteString("## Warnings\n\n")
		sb.WriteString(strings.Join(warnings, "\n"))
		sb.WriteString("\n\n")
	}

	// Coverage
	if len(r.Coverage.Checks) > 0 {
		sb.WriteString("## Sampling Coverage\n\n")
		sb.WriteString("| Check | Expected | Actual | Status |\n")
		sb.WriteString("|-------|----------|--------|--------|\n")
		for _, c := range r.Coverage.Checks {
			status := "PASS"
			if !c.Pass {
				status = "FAIL"
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", c.Name, c.Expected, c.Actual, status))
		}
		sb.WriteString("\n")
	}

	// Notes
	sb.WriteString("## Notes\n\n")
	sb.WriteString("- The Polymarket leg resolves Yes only when the final price is strictly above the condition price; a tie resolves No.\n")
	sb.WriteString("- Stop-loss is checked before take-profit.\n")
	if r.DataVersion != "" {
		sb.WriteString(fmt.Sprintf("- Data version: `%s`\n", r.DataVersion))
	}

	return sb.String()
}
