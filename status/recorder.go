package status

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/lixenwraith/vi-saber/core"
	"github.com/lixenwraith/vi-saber/event"
)

// Recorder counts feedback into the HUD registry and OpenTelemetry instruments
type Recorder struct {
	reg *Registry

	sliced       *atomic.Int64
	missed       *atomic.Int64
	fallback     *atomic.Int64
	failedSwings *atomic.Int64
	lastReason   *AtomicString

	verdicts metric.Int64Counter
	resolved metric.Int64Counter
	geometry metric.Int64Counter
}

// NewRecorder creates the instruments on m and caches registry pointers
func NewRecorder(reg *Registry, m metric.Meter) (*Recorder, error) {
	r := &Recorder{
		reg:          reg,
		sliced:       reg.Ints.Get(KeySliced),
		missed:       reg.Ints.Get(KeyMissed),
		fallback:     reg.Ints.Get(KeyFallback),
		failedSwings: reg.Ints.Get(KeyFailedSwings),
		lastReason:   reg.Strings.Get(KeyLastReason),
	}

	var err error
	r.verdicts, err = m.Int64Counter(
		"saber.verdicts",
		metric.WithDescription("Swing verdicts by failure reason"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create verdicts counter: %w", err)
	}

	r.resolved, err = m.Int64Counter(
		"saber.blocks.resolved",
		metric.WithDescription("Blocks reaching a resolved state"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resolved counter: %w", err)
	}

	r.geometry, err = m.Int64Counter(
		"saber.geometry.fallbacks",
		metric.WithDescription("Validated swings that no plane could cut"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create fallback counter: %w", err)
	}

	return r, nil
}

// Registry returns the backing HUD registry
func (r *Recorder) Registry() *Registry {
	return r.reg
}

// Notify implements event.Sink
func (r *Recorder) Notify(f event.Feedback) {
	ctx := context.Background()

	switch f.Kind {
	case event.KindSliceSuccess:
		r.sliced.Add(1)
		r.verdict(ctx, core.ReasonNone)
		r.resolve(ctx, core.StateResolvedSliced)

	case event.KindSliceFail:
		r.failedSwings.Add(1)
		r.lastReason.Store(f.Reason.String())
		r.verdict(ctx, f.Reason)

	case event.KindGeometryFallback:
		r.fallback.Add(1)
		r.verdict(ctx, core.ReasonNone)
		r.resolve(ctx, core.StateResolvedFallback)
		r.geometry.Add(ctx, 1)

	case event.KindMiss:
		r.missed.Add(1)
		r.resolve(ctx, core.StateResolvedMissed)
	}
}

func (r *Recorder) verdict(ctx context.Context, reason core.FailureReason) {
	r.verdicts.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason.String())))
}

func (r *Recorder) resolve(ctx context.Context, state core.BlockState) {
	r.resolved.Add(ctx, 1, metric.WithAttributes(attribute.String("state", state.String())))
}
