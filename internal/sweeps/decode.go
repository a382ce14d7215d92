package sweeps

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"perp-hedge-lab/internal/observability"
)

// Payload kinds, used as metric labels and CLI selectors.
const (
	KindSweeps      = "sweeps"
	KindAggregated  = "aggregated"
	KindDaily       = "daily"
	KindUserMetrics = "users"
)

// ErrUnsuccessful is returned for envelopes with success == false.
var ErrUnsuccessful = errors.New("api reported failure")

// Decoder decodes API payloads and counts them.
type Decoder struct {
	metrics *observability.Metrics
}

// NewDecoder creates a decoder. m may be nil.
func NewDecoder(m *observability.Metrics) *Decoder {
	return &Decoder{metrics: m}
}

// Sweeps decodes a sweeps list response.
func (d *Decoder) Sweeps(r io.Reader) (Page[Sweep], error) {
	return decode[Page[Sweep]](d, KindSweeps, r)
}

// Aggregated decodes an aggregated sweeps response.
func (d *Decoder) Aggregated(r io.Reader) (SweepAggregatedData, error) {
	return decode[SweepAggregatedData](d, KindAggregated, r)
}

// DailyMetrics decodes a daily metrics response.
func (d *Decoder) DailyMetrics(r io.Reader) (Page[DailyMetric], error) {
	return decode[Page[DailyMetric]](d, KindDaily, r)
}

// UserDailyMetrics decodes a single- or multi-user daily metrics response.
func (d *Decoder) UserDailyMetrics(r io.Reader) (Page[UserDailyMetric], error) {
	return decode[Page[UserDailyMetric]](d, KindUserMetrics, r)
}

func decode[T any](d *Decoder, kind string, r io.Reader) (T, error) {
	data, err := DecodeEnvelope[T](r)
	d.metrics.RecordPayload(kind, err)
	if err != nil {
		return data, fmt.Errorf("decode %s payload: %w", kind, err)
	}
	return data, nil
}

// DecodeEnvelope reads one envelope from r and returns its data.
func DecodeEnvelope[T any](r io.Reader) (T, error) {
	var env Envelope[T]
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		var zero T
		return zero, err
	}
	if !env.Success {
		var zero T
		msg := env.Error
		if msg == "" {
			msg = env.Message
		}
		if msg != "" {
			return zero, fmt.Errorf("%w: %s", ErrUnsuccessful, msg)
		}
		return zero, ErrUnsuccessful
	}
	return env.Data, nil
}
