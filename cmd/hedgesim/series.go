package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"perp-hedge-lab/internal/domain"
	"perp-hedge-lab/internal/pnl"
)

func seriesCmd(a *app) *cobra.Command {
	var breakdown bool
	cmd := &cobra.Command{
		Use:   "series",
		Short: "Print the P&L curve for the selected entry odd",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := pnl.NewEngine(a.cfg.Parameters())
			if err != nil {
				a.metrics.RecordValidationError(err)
				return err
			}
			d := a.cfg.PriceDomain()

			if breakdown {
				rows, err := engine.Breakdowns(d)
				if err != nil {
					a.metrics.RecordValidationError(err)
					return err
				}
				return a.emit(breakdownTable(rows))
			}

			series, err := engine.Series(d)
			if err != nil {
				a.metrics.RecordValidationError(err)
				return err
			}
			a.metrics.RecordSeries("series", series)
			a.logger.Debug().Int("points", len(series.Points)).Msg("series generated")

			t := tabular{headers: []string{"price", "net_pnl"}, value: series}
			for _, p := range series.Points {
				t.rows = append(t.rows, []string{fixed(p.Price), fixed(p.NetPnL)})
			}
			return a.emit(t)
		},
	}
	cmd.Flags().BoolVar(&breakdown, "breakdown", false, "show per-leg values for every sampled price")
	return cmd
}

func pointCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "point <final-price>...",
		Short: "Evaluate the strategy at specific final prices",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := pnl.NewEngine(a.cfg.Parameters())
			if err != nil {
				a.metrics.RecordValidationError(err)
				return err
			}

			rows := make([]domain.Breakdown, 0, len(args))
			for _, arg := range args {
				p, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return fmt.Errorf("invalid final price %q: %w", arg, err)
				}
				rows = append(rows, engine.Evaluate(p))
			}
			return a.emit(breakdownTable(rows))
		},
	}
}

func breakdownTable(rows []domain.Breakdown) tabular {
	t := tabular{
		headers: []string{"price", "resolve_odd", "polymarket_pnl", "perp_exit_price", "perp_exit_reason", "perp_pnl", "net_pnl"},
		value:   rows,
	}
	for _, b := range rows {
		t.rows = append(t.rows, []string{
			fixed(b.Price),
			odd(b.ResolveOdd),
			fixed(b.PolymarketPnL),
			fixed(b.PerpExitPrice),
			b.PerpExitReason,
			fixed(b.PerpPnL),
			fixed(b.NetPnL),
		})
	}
	return t
}
