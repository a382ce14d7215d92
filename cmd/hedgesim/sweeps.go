package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"perp-hedge-lab/internal/sweeps"
)

func sweepsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweeps",
		Short: "Work with saved sweeps dashboard API payloads",
	}
	cmd.AddCommand(sweepsSummarizeCmd(a), sweepsQueryCmd(a))
	return cmd
}

func sweepsSummarizeCmd(a *app) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "summarize <payload.json>",
		Short: "Summarise a saved sweeps, aggregated, daily or users payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			dec := sweeps.NewDecoder(a.metrics)
			var t tabular
			switch kind {
			case sweeps.KindSweeps:
				page, err := dec.Sweeps(f)
				if err != nil {
					return err
				}
				t = sweepSummaryTable(sweeps.SummarizeSweeps(page.Data))
			case sweeps.KindAggregated:
				data, err := dec.Aggregated(f)
				if err != nil {
					return err
				}
				t = sweepSummaryTable(sweeps.SummarizeAggregated(data))
			case sweeps.KindDaily:
				page, err := dec.DailyMetrics(f)
				if err != nil {
					return err
				}
				t = dailyTable(sweeps.SummarizeDaily(page.Data))
			case sweeps.KindUserMetrics:
				page, err := dec.UserDailyMetrics(f)
				if err != nil {
					return err
				}
				t = usersTable(sweeps.SummarizeUsers(page.Data))
			default:
				return fmt.Errorf("unknown payload kind %q", kind)
			}
			a.logger.Debug().Str("kind", kind).Str("file", args[0]).Msg("payload summarised")
			return a.emit(t)
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", sweeps.KindSweeps, "payload kind: sweeps, aggregated, daily or users")
	return cmd
}

func sweepsQueryCmd(a *app) *cobra.Command {
	var (
		base    string
		kind    string
		limit   int
		offset  int
		period  string
		address []string
	)
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Print the API URL the dashboard would request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				req sweeps.Request
				err error
			)
			switch kind {
			case sweeps.KindSweeps:
				req = sweeps.SweepsFilter{Limit: limit, Offset: offset}.Request()
			case sweeps.KindAggregated:
				req = sweeps.AggregatedFilter{Period: sweeps.Period(period)}.Request()
			case sweeps.KindDaily:
				req = sweeps.DailyMetricsFilter{Limit: limit, Offset: offset}.Request()
			case sweeps.KindUserMetrics:
				if len(address) == 1 {
					req, err = sweeps.UserDailyMetricsFilter{Address: address[0], Limit: limit, Offset: offset}.Request()
				} else {
					req, err = sweeps.UsersDailyMetricsFilter{Addresses: address, Limit: limit, Offset: offset}.Request()
				}
			default:
				err = fmt.Errorf("unknown payload kind %q", kind)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, req.URL(base))
			return err
		},
	}
	cmd.Flags().StringVar(&base, "base-url", "http://localhost:8080", "API base URL")
	cmd.Flags().StringVarP(&kind, "kind", "k", sweeps.KindSweeps, "payload kind: sweeps, aggregated, daily or users")
	cmd.Flags().IntVar(&limit, "limit", 0, "page size; 0 uses the dashboard default")
	cmd.Flags().IntVar(&offset, "offset", 0, "row offset")
	cmd.Flags().StringVar(&period, "period", "", "aggregation period: 1d, 3d, 7d, 1m or all")
	cmd.Flags().StringSliceVar(&address, "address", nil, "wallet address; repeat for several")
	return cmd
}

func sweepSummaryTable(s sweeps.SweepSummary) tabular {
	return tabular{
		headers: []string{"metric", "value"},
		rows: [][]string{
			{"total", strconv.Itoa(s.Total)},
			{"successful", strconv.Itoa(s.Successful)},
			{"failed", strconv.Itoa(s.Failed)},
			{"success_rate", fmt.Sprintf("%.1f%%", s.SuccessRate)},
			{"band", string(s.Band)},
			{"big_odd_ask_value", s.BigOddAskValue.StringFixed(2)},
			{"post_order_value", s.PostOrderValue.StringFixed(2)},
			{"executed_share", fmt.Sprintf("%.1f%%", s.ExecutedShare)},
		},
		value: s,
	}
}

func dailyTable(d sweeps.DailyTotals) tabular {
	return tabular{
		headers: []string{"metric", "value"},
		rows: [][]string{
			{"days", strconv.Itoa(d.Days)},
			{"sweeps", strconv.Itoa(d.Sweeps)},
			{"sent_value", d.SentValue.StringFixed(2)},
			{"profit", d.Profit.StringFixed(2)},
			{"loss", d.Loss.StringFixed(2)},
			{"net", d.Net.StringFixed(2)},
			{"wins", strconv.Itoa(d.Wins)},
			{"losses", strconv.Itoa(d.Losses)},
			{"win_rate", fmt.Sprintf("%.2f%%", d.WinRate)},
			{"band", string(d.Band)},
		},
		value: d,
	}
}

func usersTable(u sweeps.UserTotals) tabular {
	return tabular{
		headers: []string{"metric", "value"},
		rows: [][]string{
			{"wallets", strconv.Itoa(u.Wallets)},
			{"days", strconv.Itoa(u.Days)},
			{"trades", strconv.Itoa(u.Trades)},
			{"volume", u.Volume.StringFixed(2)},
			{"value", u.Value.StringFixed(2)},
			{"profit", u.Profit.StringFixed(2)},
			{"loss", u.Loss.StringFixed(2)},
			{"net", u.Net.StringFixed(2)},
			{"profitable_positions", strconv.Itoa(u.Profitable)},
			{"losing_positions", strconv.Itoa(u.Losing)},
			{"win_rate", fmt.Sprintf("%.2f%%", u.WinRate)},
			{"band", string(u.Band)},
		},
		value: u,
	}
}
