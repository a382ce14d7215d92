package decision

import "fmt"

// Evaluator evaluates decision criteria.
type Evaluator struct {
	thresholds Thresholds
}

// NewEvaluator creates a new decision evaluator.
func NewEvaluator(t Thresholds) *Evaluator {
	return &Evaluator{thresholds: t}
}

// Evaluate produces DecisionResult from Input.
// GO if ALL criteria pass and NO NO-GO triggers.
// NO-GO if ANY criterion fails or ANY trigger fires.
func (e *Evaluator) Evaluate(input Input) *DecisionResult {
	goCriteria := e.evaluateGOCriteria(input)
	nogoChecks := e.evaluateNOGOTriggers(input)

	allGOPass := true
	for _, c := range goCriteria {
		if !c.Pass {
			allGOPass = false
			break
		}
	}

	anyNOGOTriggered := false
	for _, c := range nogoChecks {
		if !c.Pass { // Pass=false means triggered
			anyNOGOTriggered = true
			break
		}
	}

	decision := DecisionGO
	if !allGOPass || anyNOGOTriggered {
		decision = DecisionNOGO
	}

	return &DecisionResult{
		Decision:   decision,
		Input:      input,
		GOCriteria: goCriteria,
		NOGOChecks: nogoChecks,
	}
}

// evaluateGOCriteria evaluates the GO criteria.
func (e *Evaluator) evaluateGOCriteria(input Input) []CriterionResult {
	maxLoss := e.thresholds.MaxLossMultiple * input.Capital

	return []CriterionResult{
		{
			Name:      "Worst-case loss",
			Threshold: fmt.Sprintf(">= %.2f (%.2fx capital)", -maxLoss, e.thresholds.MaxLossMultiple),
			Actual:    fmt.Sprintf("%.2f at %.2f", input.MinPnL, input.MinPnLPrice),
			Pass:      input.MinPnL >= -maxLoss,
		},
		{
			Name:      "Profitable share",
			Threshold: fmt.Sprintf(">= %.1f%%", e.thresholds.MinProfitableShare*100),
			Actual:    fmt.Sprintf("%.1f%%", input.ProfitableShare*100),
			Pass:      input.ProfitableShare >= e.thresholds.MinProfitableShare,
		},
		{
			Name:      "Break-even reachable",
			Threshold: ">= 1 crossing",
			Actual:    fmt.Sprintf("%d", len(input.Breakevens)),
			Pass:      len(input.Breakevens) > 0,
		},
		{
			Name:      "Best case",
			Threshold: "> 0",
			Actual:    fmt.Sprintf("%.2f at %.2f", input.MaxPnL, input.MaxPnLPrice),
			Pass:      input.MaxPnL > 0,
		},
	}
}

// evaluateNOGOTriggers evaluates NO-GO triggers. Pass=true means not triggered.
func (e *Evaluator) evaluateNOGOTriggers(input Input) []CriterionResult {
	checks := []CriterionResult{
		{
			Name:      "Placeholder Polymarket leg",
			Threshold: "entry odd > 0",
			Actual:    fmt.Sprintf("entry odd %.4f", input.EntryOdd),
			Pass:      !input.HasSentinel,
		},
	}
	if input.CoverageChecked {
		actual := "all passed"
		if !input.CoveragePassed {
			actual = "failed"
		}
		checks = append(checks, CriterionResult{
			Name:      "Sampling coverage",
			Threshold: "all checks pass",
			Actual:    actual,
			Pass:      input.CoveragePassed,
		})
	}
	return checks
}
