// Package config loads hedge scenarios from a file, environment variables
// and explicit overrides.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"perp-hedge-lab/internal/decision"
	"perp-hedge-lab/internal/domain"
)

// EnvPrefix is prepended to every environment override, e.g.
// HEDGESIM_ENTRY_ODD or HEDGESIM_DOMAIN_STEP.
const EnvPrefix = "HEDGESIM"

// Output formats.
const (
	FormatTable    = "table"
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
)

// Config errors.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrOutputFormat  = fmt.Errorf("%w: unknown output.format", ErrInvalidConfig)
	ErrLogLevel      = fmt.Errorf("%w: unknown log.level", ErrInvalidConfig)
	ErrChartOdd      = fmt.Errorf("%w: chart odds must be within [0, 1]", ErrInvalidConfig)
	ErrWorkers       = fmt.Errorf("%w: workers must not be negative", ErrInvalidConfig)
	ErrGate          = fmt.Errorf("%w: gate thresholds out of range", ErrInvalidConfig)
)

// Config is the effective scenario configuration.
type Config struct {
	CapitalPolymarket float64  `mapstructure:"capital_polymarket" yaml:"capital_polymarket"`
	PositionSizePerp  float64  `mapstructure:"position_size_perp" yaml:"position_size_perp"`
	PerpEntryPrice    float64  `mapstructure:"perp_entry_price" yaml:"perp_entry_price"`
	ConditionPrice    float64  `mapstructure:"condition_price" yaml:"condition_price"`
	EntryOdd          float64  `mapstructure:"entry_odd" yaml:"entry_odd"`
	ResolveOdd        *float64 `mapstructure:"resolve_odd" yaml:"resolve_odd,omitempty"`
	StopLossPrice     *float64 `mapstructure:"stop_loss_price" yaml:"stop_loss_price,omitempty"`
	TakeProfitPrice   *float64 `mapstructure:"take_profit_price" yaml:"take_profit_price,omitempty"`

	Domain  DomainConfig `mapstructure:"domain" yaml:"domain"`
	Odds    []float64    `mapstructure:"odds" yaml:"odds"`
	Workers int          `mapstructure:"workers" yaml:"workers"`

	Gate   decision.Thresholds `mapstructure:"gate" yaml:"gate"`
	Output OutputConfig        `mapstructure:"output" yaml:"output"`
	Log    LogConfig           `mapstructure:"log" yaml:"log"`
}

// DomainConfig is the sampled price range.
type DomainConfig struct {
	Min  float64 `mapstructure:"min" yaml:"min"`
	Max  float64 `mapstructure:"max" yaml:"max"`
	Step float64 `mapstructure:"step" yaml:"step"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Format      string `mapstructure:"format" yaml:"format"`
	MetricsFile string `mapstructure:"metrics_file" yaml:"metrics_file,omitempty"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// keys lists every recognised key so environment overrides resolve even
// when the key has no default.
var keys = []string{
	"capital_polymarket",
	"position_size_perp",
	"perp_entry_price",
	"condition_price",
	"entry_odd",
	"resolve_odd",
	"stop_loss_price",
	"take_profit_price",
	"domain.min",
	"domain.max",
	"domain.step",
	"odds",
	"workers",
	"gate.max_loss_multiple",
	"gate.min_profitable_share",
	"output.format",
	"output.metrics_file",
	"log.level",
}

// NewViper returns a viper instance with defaults and environment
// overrides configured. Callers may Set further overrides before Load.
func NewViper() *viper.Viper {
	v := viper.New()

	defaults := map[string]interface{}{
		"capital_polymarket": domain.DefaultCapitalPolymarket,
		"position_size_perp": domain.DefaultPositionSizePerp,
		"perp_entry_price":   domain.DefaultPerpEntryPrice,
		"condition_price":    domain.DefaultConditionPrice,
		"entry_odd":          domain.DefaultEntryOdd,
		"domain.min":         domain.DefaultDomainMin,
		"domain.max":         domain.DefaultDomainMax,
		"domain.step":        domain.DefaultDomainStep,
		"odds":               domain.DefaultChartOdds,
		"workers":            0,
		"output.format":      FormatTable,
		"log.level":          "info",

		"gate.max_loss_multiple":    decision.DefaultMaxLossMultiple,
		"gate.min_profitable_share": decision.DefaultMinProfitableShare,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	return v
}

// Load reads the config file at path (if any) on top of defaults and
// environment overrides, then validates the result.
func Load(path string) (*Config, error) {
	return LoadFrom(NewViper(), path)
}

// LoadFrom is Load using a caller-prepared viper instance.
func LoadFrom(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the strategy, domain, gate and output settings.
func (c *Config) Validate() error {
	if err := c.Parameters().Validate(); err != nil {
		return err
	}
	if err := c.PriceDomain().Validate(); err != nil {
		return err
	}
	for _, odd := range c.Odds {
		if !(odd >= 0 && odd <= 1) {
			return fmt.Errorf("%w: got %v", ErrChartOdd, odd)
		}
	}
	if c.Workers < 0 {
		return ErrWorkers
	}
	if !(c.Gate.MaxLossMultiple > 0) || !(c.Gate.MinProfitableShare >= 0 && c.Gate.MinProfitableShare <= 1) {
		return fmt.Errorf("%w: max_loss_multiple=%v min_profitable_share=%v",
			ErrGate, c.Gate.MaxLossMultiple, c.Gate.MinProfitableShare)
	}
	switch c.Output.Format {
	case FormatTable, FormatJSON, FormatCSV, FormatMarkdown:
	default:
		return fmt.Errorf("%w: %q", ErrOutputFormat, c.Output.Format)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// Parameters returns the strategy parameters described by c.
func (c *Config) Parameters() domain.StrategyParameters {
	return domain.StrategyParameters{
		CapitalPolymarket: c.CapitalPolymarket,
		PositionSizePerp:  c.PositionSizePerp,
		PerpEntryPrice:    c.PerpEntryPrice,
		ConditionPrice:    c.ConditionPrice,
		EntryOdd:          c.EntryOdd,
		ResolveOdd:        c.ResolveOdd,
		StopLossPrice:     c.StopLossPrice,
		TakeProfitPrice:   c.TakeProfitPrice,
	}
}

// PriceDomain returns the sampled price domain described by c.
func (c *Config) PriceDomain() domain.PriceDomain {
	return domain.PriceDomain{Min: c.Domain.Min, Max: c.Domain.Max, Step: c.Domain.Step}
}

// LogLevel parses Log.Level. An empty level means info.
func (c *Config) LogLevel() (zerolog.Level, error) {
	if c.Log.Level == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("%w: %q", ErrLogLevel, c.Log.Level)
	}
	return lvl, nil
}

// YAML renders the effective config.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
