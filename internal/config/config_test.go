package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"perp-hedge-lab/internal/decision"
	"perp-hedge-lab/internal/domain"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultStrategyParameters(), cfg.Parameters())
	assert.Equal(t, domain.DefaultPriceDomain(), cfg.PriceDomain())
	assert.Equal(t, domain.DefaultChartOdds, cfg.Odds)
	assert.Equal(t, FormatTable, cfg.Output.Format)
	assert.Empty(t, cfg.Output.MetricsFile)
	assert.Equal(t, decision.DefaultThresholds(), cfg.Gate)

	lvl, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, lvl)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeConfig(t, "scenario.yaml", `
capital_polymarket: 2500
entry_odd: 0.63
stop_loss_price: 115000
resolve_odd: 0.75
domain:
  min: 90000
  max: 120000
  step: 250
odds: [0.2, 0.4]
output:
  format: Markdown
  metrics_file: /tmp/hedgesim.prom
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	p := cfg.Parameters()
	assert.Equal(t, 2500.0, p.CapitalPolymarket)
	assert.Equal(t, domain.DefaultPositionSizePerp, p.PositionSizePerp)
	assert.Equal(t, 0.63, p.EntryOdd)
	require.NotNil(t, p.StopLossPrice)
	assert.Equal(t, 115000.0, *p.StopLossPrice)
	require.NotNil(t, p.ResolveOdd)
	assert.Equal(t, 0.75, *p.ResolveOdd)
	assert.Nil(t, p.TakeProfitPrice)

	assert.Equal(t, domain.PriceDomain{Min: 90000, Max: 120000, Step: 250}, cfg.PriceDomain())
	assert.Equal(t, []float64{0.2, 0.4}, cfg.Odds)
	assert.Equal(t, FormatMarkdown, cfg.Output.Format)
	assert.Equal(t, "/tmp/hedgesim.prom", cfg.Output.MetricsFile)

	lvl, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, lvl)
}

func TestLoad_JSONFile(t *testing.T) {
	path := writeConfig(t, "scenario.json", `{"entry_odd": 0.8, "take_profit_price": 95000}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.8, cfg.EntryOdd)
	require.NotNil(t, cfg.TakeProfitPrice)
	assert.Equal(t, 95000.0, *cfg.TakeProfitPrice)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HEDGESIM_ENTRY_ODD", "0.3")
	t.Setenv("HEDGESIM_DOMAIN_STEP", "1000")
	t.Setenv("HEDGESIM_STOP_LOSS_PRICE", "120000")
	t.Setenv("HEDGESIM_OUTPUT_FORMAT", "json")

	path := writeConfig(t, "scenario.yaml", "entry_odd: 0.9\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.3, cfg.EntryOdd)
	assert.Equal(t, 1000.0, cfg.Domain.Step)
	require.NotNil(t, cfg.StopLossPrice)
	assert.Equal(t, 120000.0, *cfg.StopLossPrice)
	assert.Equal(t, FormatJSON, cfg.Output.Format)
}

func TestLoadFrom_ExplicitOverrideWins(t *testing.T) {
	t.Setenv("HEDGESIM_ENTRY_ODD", "0.3")

	v := NewViper()
	v.Set("entry_odd", 0.45)

	cfg, err := LoadFrom(v, "")
	require.NoError(t, err)
	assert.Equal(t, 0.45, cfg.EntryOdd)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"stop loss below entry", "stop_loss_price: 100000\n", domain.ErrStopLossBelowEntry},
		{"entry odd out of range", "entry_odd: 1.5\n", domain.ErrEntryOddRange},
		{"zero step", "domain:\n  step: 0\n", domain.ErrDomainStep},
		{"inverted domain", "domain:\n  min: 120000\n  max: 90000\n", domain.ErrDomainRange},
		{"chart odd", "odds: [0.5, 2]\n", ErrChartOdd},
		{"format", "output:\n  format: xml\n", ErrOutputFormat},
		{"log level", "log:\n  level: loud\n", ErrLogLevel},
		{"workers", "workers: -2\n", ErrWorkers},
		{"gate loss multiple", "gate:\n  max_loss_multiple: 0\n", ErrGate},
		{"gate share", "gate:\n  min_profitable_share: 1.5\n", ErrGate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, "scenario.yaml", tt.content))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestYAML_OmitsUnsetOptionals(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	cfg.StopLossPrice = domain.Float64(118000)

	out, err := cfg.YAML()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(out, &decoded))

	assert.EqualValues(t, 118000, decoded["stop_loss_price"])
	assert.NotContains(t, decoded, "resolve_odd")
	assert.NotContains(t, decoded, "take_profit_price")
	assert.Equal(t, 0.5, decoded["entry_odd"])
}
