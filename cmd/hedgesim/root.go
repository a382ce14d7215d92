package main

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"perp-hedge-lab/internal/config"
	"perp-hedge-lab/internal/domain"
	"perp-hedge-lab/internal/observability"
)

// app is the state shared by all subcommands once flags and config are
// resolved.
type app struct {
	v          *viper.Viper
	configPath string

	cfg     *config.Config
	logger  zerolog.Logger
	metrics *observability.Metrics
	out     io.Writer
}

// flagKeys maps CLI flags onto config keys. Only flags set explicitly
// override the config file and environment.
var flagKeys = []struct {
	flag string
	key  string
}{
	{"capital", "capital_polymarket"},
	{"size", "position_size_perp"},
	{"entry-price", "perp_entry_price"},
	{"condition", "condition_price"},
	{"entry-odd", "entry_odd"},
	{"resolve-odd", "resolve_odd"},
	{"stop-loss", "stop_loss_price"},
	{"take-profit", "take_profit_price"},
	{"min", "domain.min"},
	{"max", "domain.max"},
	{"step", "domain.step"},
	{"odds", "odds"},
	{"workers", "workers"},
	{"max-loss-multiple", "gate.max_loss_multiple"},
	{"min-profitable-share", "gate.min_profitable_share"},
	{"format", "output.format"},
	{"metrics-file", "output.metrics_file"},
	{"log-level", "log.level"},
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	root := newRootCmd()
	log.Debug().Msg("hedgesim starting")
	return root.ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.NewViper(), logger: log.Logger}

	root := &cobra.Command{
		Use:                "hedgesim",
		Short:              "Polymarket + perp short hedge P&L simulator",
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}
	addScenarioFlags(root.PersistentFlags(), &a.configPath)

	root.AddCommand(
		seriesCmd(a),
		pointCmd(a),
		chartCmd(a),
		reportCmd(a),
		gateCmd(a),
		configCmd(a),
		sweepsCmd(a),
	)
	return root
}

func addScenarioFlags(fs *pflag.FlagSet, configPath *string) {
	fs.StringVarP(configPath, "config", "c", "", "scenario config file (yaml, json or toml)")

	fs.Float64("capital", domain.DefaultCapitalPolymarket, "Polymarket capital")
	fs.Float64("size", domain.DefaultPositionSizePerp, "perp position size (leverage-adjusted)")
	fs.Float64("entry-price", domain.DefaultPerpEntryPrice, "perp short entry price")
	fs.Float64("condition", domain.DefaultConditionPrice, "condition price the binary market resolves on")
	fs.Float64("entry-odd", domain.DefaultEntryOdd, "Polymarket entry odd in [0, 1]")
	fs.Float64("resolve-odd", 0, "explicit resolve odd; unset resolves at the condition price")
	fs.Float64("stop-loss", 0, "perp stop-loss price; unset disables")
	fs.Float64("take-profit", 0, "perp take-profit price; unset disables")

	fs.Float64("min", domain.DefaultDomainMin, "lowest sampled final price")
	fs.Float64("max", domain.DefaultDomainMax, "highest sampled final price")
	fs.Float64("step", domain.DefaultDomainStep, "uniform grid step")
	fs.Float64Slice("odds", domain.DefaultChartOdds, "entry odds plotted by chart and report")
	fs.Int("workers", 0, "chart workers; 0 uses GOMAXPROCS")

	fs.StringP("format", "f", config.FormatTable, "output format: table, json, csv or markdown")
	fs.String("metrics-file", "", "write Prometheus metrics to this textfile on exit")
	fs.String("log-level", "info", "log level")
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	for _, fk := range flagKeys {
		if !flags.Changed(fk.flag) {
			continue
		}
		if fk.flag == "odds" {
			odds, err := flags.GetFloat64Slice(fk.flag)
			if err != nil {
				return err
			}
			a.v.Set(fk.key, odds)
			continue
		}
		a.v.Set(fk.key, flags.Lookup(fk.flag).Value.String())
	}

	cfg, err := config.LoadFrom(a.v, a.configPath)
	if err != nil {
		return err
	}
	lvl, err := cfg.LogLevel()
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = log.Logger.Level(lvl)
	a.out = cmd.OutOrStdout()
	a.metrics = observability.NewMetrics("")

	a.logger.Debug().
		Str("command", cmd.Name()).
		Str("config", a.configPath).
		Str("format", cfg.Output.Format).
		Msg("config loaded")
	return nil
}

func (a *app) teardown(_ *cobra.Command, _ []string) error {
	if a.cfg == nil || a.cfg.Output.MetricsFile == "" {
		return nil
	}
	a.metrics.MarkRun(time.Now())
	if err := a.metrics.WriteTextfile(a.cfg.Output.MetricsFile); err != nil {
		return err
	}
	a.logger.Debug().Str("path", a.cfg.Output.MetricsFile).Msg("metrics written")
	return nil
}
