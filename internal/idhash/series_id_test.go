package idhash

import (
	"testing"

	"perp-hedge-lab/internal/domain"
)

func TestComputeSeriesID(t *testing.T) {
	params := domain.DefaultStrategyParameters()
	d := domain.DefaultPriceDomain()

	got := ComputeSeriesID(params, d)
	if len(got) != 64 {
		t.Errorf("ComputeSeriesID() length = %d, want 64", len(got))
	}

	// Verify determinism: same inputs should produce same output
	if got2 := ComputeSeriesID(params, d); got != got2 {
		t.Errorf("ComputeSeriesID() not deterministic: %s != %s", got, got2)
	}
}

func TestComputeSeriesID_SensitiveToInputs(t *testing.T) {
	base := domain.DefaultStrategyParameters()
	d := domain.DefaultPriceDomain()
	baseID := ComputeSeriesID(base, d)

	variants := map[string]func() string{
		"entry odd": func() string { return ComputeSeriesID(base.WithEntryOdd(0.63), d) },
		"resolve odd": func() string {
			p := base
			p.ResolveOdd = domain.Float64(0.5)
			return ComputeSeriesID(p, d)
		},
		"stop loss": func() string {
			p := base
			p.StopLossPrice = domain.Float64(110000)
			return ComputeSeriesID(p, d)
		},
		"domain step": func() string {
			d2 := d
			d2.Step = 250
			return ComputeSeriesID(base, d2)
		},
	}

	for name, fn := range variants {
		if id := fn(); id == baseID {
			t.Errorf("%s: expected a different ID", name)
		}
	}
}

func TestComputeSeriesID_UnsetDiffersFromZero(t *testing.T) {
	d := domain.DefaultPriceDomain()
	unset := domain.DefaultStrategyParameters()
	zero := unset
	zero.ResolveOdd = domain.Float64(0)

	if ComputeSeriesID(unset, d) == ComputeSeriesID(zero, d) {
		t.Error("unset resolve odd must not hash like an explicit 0")
	}
}

func TestShortID(t *testing.T) {
	if got := ShortID("abc"); got != "abc" {
		t.Errorf("ShortID(abc) = %s", got)
	}
	if got := ShortID("0123456789abcdef"); got != "0123456789ab" {
		t.Errorf("ShortID() = %s", got)
	}
}
