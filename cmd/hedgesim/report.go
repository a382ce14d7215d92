package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"perp-hedge-lab/internal/config"
	"perp-hedge-lab/internal/decision"
	"perp-hedge-lab/internal/idhash"
	"perp-hedge-lab/internal/pipeline"
	"perp-hedge-lab/internal/reporting"
)

func reportCmd(a *app) *cobra.Command {
	var outputDir string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate curve statistics and optionally write a report bundle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.runPipeline(cmd, outputDir)
			if err != nil {
				return err
			}
			if outputDir != "" {
				for _, f := range res.Files {
					fmt.Fprintf(cmd.ErrOrStderr(), "  - %s\n", f)
				}
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "hedge gate: %s\n", res.Decision.Decision)

			switch a.cfg.Output.Format {
			case config.FormatMarkdown:
				_, err = io.WriteString(a.out, reporting.RenderMarkdown(res.Report))
			case config.FormatCSV:
				_, err = io.WriteString(a.out, reporting.RenderStatsCSV(res.Report))
			default:
				err = a.emit(reportTable(res.Report))
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&outputDir, "out", "o", "", "directory to write REPORT.md, DECISION.md, CSV and JSON files to")
	addGateFlags(cmd)
	return cmd
}

func gateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gate",
		Short: "Evaluate the GO/NO-GO hedge gate for the selected entry odd",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.runPipeline(cmd, "")
			if err != nil {
				return err
			}
			if a.cfg.Output.Format == config.FormatMarkdown {
				_, err = io.WriteString(a.out, decision.RenderMarkdown(res.Decision))
				return err
			}
			return a.emit(gateTable(res.Decision))
		},
	}
	addGateFlags(cmd)
	return cmd
}

func addGateFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Float64("max-loss-multiple", decision.DefaultMaxLossMultiple, "worst-case loss limit as a multiple of Polymarket capital")
	fs.Float64("min-profitable-share", decision.DefaultMinProfitableShare, "minimum share of sampled prices with positive P&L")
}

func (a *app) runPipeline(cmd *cobra.Command, outputDir string) (*pipeline.Result, error) {
	p := pipeline.New(pipeline.Options{
		Logger:     a.logger,
		Metrics:    a.metrics,
		Workers:    a.cfg.Workers,
		OutputDir:  outputDir,
		Thresholds: a.cfg.Gate,
	})
	return p.Run(cmd.Context(), a.cfg.Parameters(), a.cfg.PriceDomain(), a.cfg.Odds)
}

func gateTable(r *decision.DecisionResult) tabular {
	t := tabular{
		headers: []string{"kind", "check", "threshold", "actual", "status"},
		value:   r,
	}
	for _, c := range r.GOCriteria {
		status := "PASS"
		if !c.Pass {
			status = "FAIL"
		}
		t.rows = append(t.rows, []string{"go", c.Name, c.Threshold, c.Actual, status})
	}
	for _, c := range r.NOGOChecks {
		status := "ok"
		if !c.Pass {
			status = "TRIGGERED"
		}
		t.rows = append(t.rows, []string{"no-go", c.Name, c.Threshold, c.Actual, status})
	}
	t.rows = append(t.rows, []string{"decision", odd(r.Input.EntryOdd), "", "", string(r.Decision)})
	return t
}

func reportTable(r *reporting.Report) tabular {
	t := tabular{
		headers: []string{"series", "entry_odd", "max_pnl", "max_at", "min_pnl", "min_at", "median", "profitable", "breakevens", "cliff"},
		value:   r,
	}
	for _, c := range r.Curves {
		o := odd(c.EntryOdd)
		if c.Selected {
			o += "*"
		}
		breakevens := "none"
		if len(c.Breakevens) > 0 {
			breakevens = ""
			for i, b := range c.Breakevens {
				if i > 0 {
					breakevens += " "
				}
				breakevens += fixed(b)
			}
		}
		cliff := "-"
		if c.CliffJump != nil {
			cliff = fixed(*c.CliffJump)
		}
		t.rows = append(t.rows, []string{
			idhash.ShortID(c.SeriesID),
			o,
			fixed(c.MaxPnL),
			fixed(c.MaxPnLPrice),
			fixed(c.MinPnL),
			fixed(c.MinPnLPrice),
			fixed(c.MedianPnL),
			fmt.Sprintf("%.1f%%", c.ProfitableShare*100),
			breakevens,
			cliff,
		})
	}
	return t
}
