package decision

import (
	"fmt"
	"strings"
)

// RenderMarkdown renders DecisionResult as Markdown string: the verdict,
// the curve it was reached on, then the checklist.
func RenderMarkdown(result *DecisionResult) string {
	var sb strings.Builder
	in := result.Input

	sb.WriteString("# Hedge Gate Report\n\n")
	sb.WriteString(fmt.Sprintf("## Decision: %s\n\n", result.Decision))

	// Curve the gate looked at
	sb.WriteString("## Hedge Context\n\n")
	sb.WriteString("| Field | Value |\n")
	sb.WriteString("|-------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Entry Odd | %.4f |\n", in.EntryOdd))
	sb.WriteString(fmt.Sprintf("| Polymarket Capital | %.2f |\n", in.Capital))
	sb.WriteString(fmt.Sprintf("| Worst Case | %.2f at %.2f |\n", in.MinPnL, in.MinPnLPrice))
	sb.WriteString(fmt.Sprintf("| Best Case | %.2f at %.2f |\n", in.MaxPnL, in.MaxPnLPrice))
	sb.WriteString(fmt.Sprintf("| Break-even Prices | %s |\n", formatPrices(in.Breakevens)))
	cliff := "-"
	if in.CliffJump != nil {
		cliff = fmt.Sprintf("%.2f", *in.CliffJump)
	}
	sb.WriteString(fmt.Sprintf("| Cliff Jump | %s |\n", cliff))
	sb.WriteString(fmt.Sprintf("| Profitable Share | %.1f%% |\n\n", in.ProfitableShare*100))

	failed := writeChecks(&sb, "GO Criteria", "Criterion", "Threshold", result.GOCriteria, "PASS", "FAIL")
	triggered := writeChecks(&sb, "NO-GO Triggers", "Trigger", "Condition", result.NOGOChecks, "NOT TRIGGERED", "TRIGGERED")

	sb.WriteString(fmt.Sprintf("GO criteria passed: %d/%d. NO-GO triggers fired: %d/%d.\n\n",
		len(result.GOCriteria)-len(failed), len(result.GOCriteria), len(triggered), len(result.NOGOChecks)))

	if result.Decision == DecisionGO {
		sb.WriteString("All GO criteria passed and no NO-GO triggers fired.\n")
		return sb.String()
	}
	sb.WriteString("Decision is NO-GO due to:\n")
	for _, c := range failed {
		sb.WriteString(fmt.Sprintf("- GO criterion failed: %s (actual: %s)\n", c.Name, c.Actual))
	}
	for _, c := range triggered {
		sb.WriteString(fmt.Sprintf("- NO-GO trigger fired: %s (actual: %s)\n", c.Name, c.Actual))
	}
	return sb.String()
}

// writeChecks renders one checklist table and returns the failing rows.
func writeChecks(sb *strings.Builder, title, nameCol, condCol string, checks []CriterionResult, ok, bad string) []CriterionResult {
	var failed []CriterionResult
	sb.WriteString(fmt.Sprintf("## %s\n\n", title))
	sb.WriteString(fmt.Sprintf("| # | %s | %s | Actual | Status |\n", nameCol, condCol))
	sb.WriteString("|---|---|---|---|---|\n")
	for i, c := range checks {
		status := ok
		if !c.Pass {
			status = bad
			failed = append(failed, c)
		}
		sb.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s |\n", i+1, c.Name, c.Threshold, c.Actual, status))
	}
	sb.WriteString("\n")
	return failed
}

func formatPrices(prices []float64) string {
	if len(prices) == 0 {
		return "none"
	}
	parts := make([]string, len(prices))
	for i, p := range prices {
		parts[i] = fmt.Sprintf("%.2f", p)
	}
	return strings.Join(parts, ", ")
}
