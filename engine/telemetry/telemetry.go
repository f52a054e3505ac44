package telemetry

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/1siamBot/trench-sim/engine/core"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

const instrumentationName = "github.com/1siamBot/trench-sim/engine/telemetry"

const (
	eventsName = "battle.events"
	killsName  = "battle.kills"
	damageName = "battle.damage"
)

// Metrics counts battle events on its own meter provider. A manual reader
// collects the counters on demand, so the report reads the same numbers an
// exporter would see.
type Metrics struct {
	reader   *sdkmetric.ManualReader
	provider *sdkmetric.MeterProvider

	events metric.Int64Counter
	kills  metric.Int64Counter
	damage metric.Int64Counter
}

// New creates a provider with a manual reader and the battle instruments on it
func New() (*Metrics, error) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m := provider.Meter(instrumentationName)

	t := &Metrics{reader: reader, provider: provider}

	var err error
	t.events, err = m.Int64Counter(
		eventsName,
		metric.WithDescription("Battle events by type"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating events counter: %w", err)
	}

	t.kills, err = m.Int64Counter(
		killsName,
		metric.WithDescription("Units killed, by the side that killed them"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating kills counter: %w", err)
	}

	t.damage, err = m.Int64Counter(
		damageName,
		metric.WithDescription("Hit points dealt, by the side that dealt them"),
		metric.WithUnit("{hp}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating damage counter: %w", err)
	}

	return t, nil
}

// Attach records every event dispatched on bus
func (t *Metrics) Attach(bus *core.EventBus) {
	bus.OnAll(t.Record)
}

// Record counts a single event
func (t *Metrics) Record(e core.Event) {
	ctx := context.Background()
	side := metric.WithAttributes(attribute.String("side", e.Side.String()))

	t.events.Add(ctx, 1, metric.WithAttributes(attribute.String("type", e.Type.String())))

	switch e.Type {
	case core.EvtUnitKilled:
		t.kills.Add(ctx, 1, side)
	case core.EvtUnitHit:
		if hit, ok := e.Payload.(core.HitInfo); ok {
			t.damage.Add(ctx, int64(hit.Damage), side)
		}
	}
}

// Count returns how many events of type et were recorded
func (t *Metrics) Count(et core.EventType) int64 {
	return t.sum(eventsName, "type", et.String())
}

// Kills returns the units killed by side
func (t *Metrics) Kills(side core.Side) int64 {
	return t.sum(killsName, "side", side.String())
}

// Damage returns the hit points dealt by side
func (t *Metrics) Damage(side core.Side) int64 {
	return t.sum(damageName, "side", side.String())
}

func (t *Metrics) collect() []metricdata.Metrics {
	var rm metricdata.ResourceMetrics
	if err := t.reader.Collect(context.Background(), &rm); err != nil {
		return nil
	}
	var out []metricdata.Metrics
	for _, sm := range rm.ScopeMetrics {
		out = append(out, sm.Metrics...)
	}
	return out
}

func (t *Metrics) sum(name string, key attribute.Key, value string) int64 {
	var total int64
	for _, m := range t.collect() {
		if m.Name != name {
			continue
		}
		s, ok := m.Data.(metricdata.Sum[int64])
		if !ok {
			continue
		}
		for _, dp := range s.DataPoints {
			if v, ok := dp.Attributes.Value(key); ok && v.AsString() == value {
				total += dp.Value
			}
		}
	}
	return total
}

// Dump writes every collected data point as "name{key=value} total", sorted
func (t *Metrics) Dump(w io.Writer) error {
	var lines []string
	for _, m := range t.collect() {
		s, ok := m.Data.(metricdata.Sum[int64])
		if !ok {
			continue
		}
		for _, dp := range s.DataPoints {
			attrs := ""
			iter := dp.Attributes.Iter()
			for iter.Next() {
				kv := iter.Attribute()
				if attrs != "" {
					attrs += ","
				}
				attrs += string(kv.Key) + "=" + kv.Value.Emit()
			}
			lines = append(lines, fmt.Sprintf("%s{%s} %d", m.Name, attrs, dp.Value))
		}
	}
	sort.Strings(lines)
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}

// Shutdown stops the provider; later collections return nothing
func (t *Metrics) Shutdown(ctx context.Context) error {
	return t.provider.Shutdown(ctx)
}
