// Package pipeline runs a full scenario: chart dataset, coverage checks,
// report, hedge gate, and the files written for it.
package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"perp-hedge-lab/internal/chart"
	"perp-hedge-lab/internal/decision"
	"perp-hedge-lab/internal/domain"
	"perp-hedge-lab/internal/observability"
	"perp-hedge-lab/internal/pnl"
	"perp-hedge-lab/internal/reporting"
)

// Output file names.
const (
	ReportFile     = "REPORT.md"
	SeriesCSVFile  = "pnl_series.csv"
	StatsCSVFile   = "curve_stats.csv"
	SeriesJSONFile = "pnl_series.json"
	DecisionFile   = "DECISION.md"
)

// Options configures a Pipeline.
type Options struct {
	Logger     zerolog.Logger
	Metrics    *observability.Metrics // optional
	Workers    int
	OutputDir  string
	Thresholds decision.Thresholds // zero value means defaults
}

// Pipeline orchestrates dataset, report and file generation.
type Pipeline struct {
	builder   *chart.Builder
	reportGen *reporting.Generator
	evaluator *decision.Evaluator
	sampling  pnl.SamplingOptions
	logger    zerolog.Logger
	outputDir string
}

// Result is what a run produced.
type Result struct {
	Dataset  *chart.Dataset
	Report   *reporting.Report
	Coverage *CoverageResult
	Decision *decision.DecisionResult
	Files    []string
}

// New creates a pipeline.
func New(opts Options) *Pipeline {
	thresholds := opts.Thresholds
	if thresholds == (decision.Thresholds{}) {
		thresholds = decision.DefaultThresholds()
	}
	return &Pipeline{
		builder: chart.NewBuilder(chart.BuilderOptions{
			Logger:  opts.Logger,
			Metrics: opts.Metrics,
			Workers: opts.Workers,
		}),
		reportGen: reporting.NewGenerator(opts.Metrics),
		evaluator: decision.NewEvaluator(thresholds),
		sampling:  pnl.DefaultSamplingOptions(),
		logger:    opts.Logger,
		outputDir: opts.OutputDir,
	}
}

// WithClock sets a custom clock function for deterministic output.
func (p *Pipeline) WithClock(clock func() time.Time) *Pipeline {
	p.reportGen = p.reportGen.WithClock(clock)
	return p
}

// Run builds the dataset and report. When an output directory is set it
// also writes:
// - REPORT.md
// - pnl_series.csv
// - curve_stats.csv
// - pnl_series.json
// - DECISION.md
func (p *Pipeline) Run(ctx context.Context, params domain.StrategyParameters, d domain.PriceDomain, odds []float64) (*Result, error) {
	// 1. Build dataset
	ds, err := p.builder.Build(ctx, params, d, odds)
	if err != nil {
		return nil, err
	}

	// 2. Coverage checks
	coverage := CheckCoverage(ds, p.sampling)
	if !coverage.AllPass {
		p.logger.Warn().Msg("sampling coverage checks failed")
	}

	// 3. Report
	report, err := p.reportGen.Generate(ds)
	if err != nil {
		return nil, err
	}
	report.Coverage = convertCoverage(coverage)
	report.DataVersion = computeDataVersion(ds)

	// 4. Hedge gate
	input, err := decision.BuildInput(report)
	if err != nil {
		return nil, err
	}
	gate := p.evaluator.Evaluate(*input)
	p.logger.Info().
		Float64("entry_odd", gate.Input.EntryOdd).
		Str("decision", string(gate.Decision)).
		Msg("hedge gate evaluated")

	result := &Result{Dataset: ds, Report: report, Coverage: coverage, Decision: gate}
	if p.outputDir == "" {
		return result, nil
	}

	// 5. Files
	if err := os.MkdirAll(p.outputDir, 0755); err != nil {
		return nil, err
	}

	seriesJSON, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode dataset: %w", err)
	}

	outputs := []struct {
		name    string
		content []byte
	}{
		{ReportFile, []byte(reporting.RenderMarkdown(report))},
		{SeriesCSVFile, []byte(reporting.RenderSeriesCSV(ds))},
		{StatsCSVFile, []byte(reporting.RenderStatsCSV(report))},
		{SeriesJSONFile, append(seriesJSON, '\n')},
		{DecisionFile, []byte(decision.RenderMarkdown(gate))},
	}
	for _, out := range outputs {
		path := filepath.Join(p.outputDir, out.name)
		if err := os.WriteFile(path, out.content, 0644); err != nil {
			return nil, err
		}
		result.Files = append(result.Files, path)
	}

	p.logger.Info().
		Str("dir", p.outputDir).
		Int("files", len(result.Files)).
		Str("data_version", report.DataVersion).
		Msg("report bundle written")

	return result, nil
}

// computeDataVersion hashes every curve value so two bundles can be
// compared at a glance.
func computeDataVersion(ds *chart.Dataset) string {
	h := sha256.New()
	for _, price := range ds.Prices {
		fmt.Fprintf(h, "%.6f\n", price)
	}
	for _, c := range ds.Curves {
		fmt.Fprintf(h, "%s\n", c.Key)
		for _, v := range c.Values {
			fmt.Fprintf(h, "%.6f\n", v)
		}
	}
	return hex.EncodeToString(h.Sum(nil))[:12] // short hash
}

func convertToRows(checks []CoverageCheck) []reporting.CoverageCheckRow {
	rows := make([]reporting.CoverageCheckRow, len(checks))
	for i, c := range checks {
		rows[i] = reporting.CoverageCheckRow{
			Name:     c.Name,
			Expected: c.Expected,
			Actual:   c.Actual,
			Pass:     c.Pass,
		}
	}
	return rows
}

// convertCoverage converts a CoverageResult to reporting.CoverageSection.
func convertCoverage(result *CoverageResult) reporting.CoverageSection {
	return reporting.CoverageSection{
		Checks:    convertToRows(result.Checks),
		AllPassed: result.AllPass,
	}
}
