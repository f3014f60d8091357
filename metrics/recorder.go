// Package metrics exports level generation events as Prometheus metrics.
package metrics

import (
	"fmt"

	"github.com/automoto/skyclimb/shared/leveldata"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "skyclimb"

// Recorder counts generator events. It satisfies levelgen.Recorder.
type Recorder struct {
	slotsGenerated   *prometheus.CounterVec
	slotsCleaned     prometheus.Counter
	capHits          prometheus.Counter
	driftCorrections prometheus.Counter
	poolExhausted    *prometheus.CounterVec
	rejections       prometheus.Counter
	fallbacks        prometheus.Counter
	activeSlots      prometheus.Gauge
}

// NewRecorder creates the generator metrics and registers them with reg.
// A nil reg leaves them unregistered.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		slotsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slots_generated_total",
			Help:      "Slots generated, by slot type.",
		}, []string{"type"}),
		slotsCleaned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slots_cleaned_total",
			Help:      "Slots removed behind the retreat horizon.",
		}),
		capHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_cap_hits_total",
			Help:      "Ticks that stopped generating at the per-tick cap.",
		}),
		driftCorrections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stack_drift_corrections_total",
			Help:      "Slots moved back onto the stack after a misaligned start.",
		}),
		poolExhausted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pool_exhausted_total",
			Help:      "Spawns refused by the object pool, by placement kind.",
		}, []string{"kind"}),
		rejections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "placement_rejections_total",
			Help:      "Platforms skipped after every placement retry failed.",
		}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallback_layouts_total",
			Help:      "Slots that needed the forced center column layout.",
		}),
		activeSlots: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_slots",
			Help:      "Slots currently materialized.",
		}),
	}

	if reg == nil {
		return r, nil
	}
	for _, c := range r.collectors() {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register generator metrics: %w", err)
		}
	}
	return r, nil
}

func (r *Recorder) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		r.slotsGenerated,
		r.slotsCleaned,
		r.capHits,
		r.driftCorrections,
		r.poolExhausted,
		r.rejections,
		r.fallbacks,
		r.activeSlots,
	}
}

func (r *Recorder) SlotGenerated(t leveldata.SlotType) {
	r.slotsGenerated.WithLabelValues(t.String()).Inc()
}

func (r *Recorder) SlotsCleaned(n int) { r.slotsCleaned.Add(float64(n)) }

func (r *Recorder) CapHit() { r.capHits.Inc() }

func (r *Recorder) DriftCorrected() { r.driftCorrections.Inc() }

func (r *Recorder) PoolExhausted(kind leveldata.PlacementKind) {
	r.poolExhausted.WithLabelValues(kind.String()).Inc()
}

func (r *Recorder) PlacementRejected() { r.rejections.Inc() }

func (r *Recorder) FallbackUsed() { r.fallbacks.Inc() }

func (r *Recorder) ActiveSlots(n int) { r.activeSlots.Set(float64(n)) }
