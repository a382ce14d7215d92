package main

import (
	"io"

	"github.com/spf13/cobra"

	"perp-hedge-lab/internal/chart"
	"perp-hedge-lab/internal/config"
	"perp-hedge-lab/internal/reporting"
)

func chartCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chart",
		Short: "Print P&L curves for several entry odds on one price axis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b := chart.NewBuilder(chart.BuilderOptions{
				Logger:  a.logger,
				Metrics: a.metrics,
				Workers: a.cfg.Workers,
			})
			ds, err := b.Build(cmd.Context(), a.cfg.Parameters(), a.cfg.PriceDomain(), a.cfg.Odds)
			if err != nil {
				return err
			}

			if a.cfg.Output.Format == config.FormatCSV {
				_, err := io.WriteString(a.out, reporting.RenderSeriesCSV(ds))
				return err
			}
			return a.emit(datasetTable(ds))
		},
	}
}

func datasetTable(ds *chart.Dataset) tabular {
	t := tabular{headers: []string{"price"}, value: ds}
	for _, c := range ds.Curves {
		h := c.Key
		if c.Selected {
			h += "*"
		}
		t.headers = append(t.headers, h)
	}
	for i, p := range ds.Prices {
		row := []string{fixed(p)}
		for _, c := range ds.Curves {
			row = append(row, fixed(c.Values[i]))
		}
		t.rows = append(t.rows, row)
	}
	return t
}
