package decision

// Decision represents the final GO/NO-GO result.
type Decision string

const (
	DecisionGO   Decision = "GO"
	DecisionNOGO Decision = "NO-GO"
)

// Default gate thresholds.
const (
	DefaultMaxLossMultiple    = 2.0  // worst case may lose up to 2x the Polymarket capital
	DefaultMinProfitableShare = 0.40 // of sampled prices
)

// Thresholds parameterise the GO criteria.
type Thresholds struct {
	MaxLossMultiple    float64 `mapstructure:"max_loss_multiple" yaml:"max_loss_multiple"`
	MinProfitableShare float64 `mapstructure:"min_profitable_share" yaml:"min_profitable_share"`
}

// DefaultThresholds returns the default gate thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxLossMultiple:    DefaultMaxLossMultiple,
		MinProfitableShare: DefaultMinProfitableShare,
	}
}

// Input contains the numbers the gate evaluates for one curve.
type Input struct {
	EntryOdd        float64
	Capital         float64 // Polymarket capital the loss limit is scaled by
	MinPnL          float64
	MinPnLPrice     float64
	MaxPnL          float64
	MaxPnLPrice     float64
	ProfitableShare float64
	Breakevens      []float64 // break-even prices, ascending
	CliffJump       *float64  // nil when the binary leg has no cliff
	HasSentinel     bool

	// Coverage is only evaluated when checks were run
	CoverageChecked bool
	CoveragePassed  bool
}

// CriterionResult represents pass/fail for one criterion.
type CriterionResult struct {
	Name      string
	Threshold string
	Actual    string
	Pass      bool
}

// DecisionResult contains the final decision with checklist.
type DecisionResult struct {
	Decision   Decision
	Input      Input
	GOCriteria []CriterionResult
	NOGOChecks []CriterionResult
}
