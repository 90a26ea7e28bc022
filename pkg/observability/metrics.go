package observability

import (
	"context"
	"net/http"
	"strconv"

	"github.com/aretw0/slidedeck/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the navigation collectors.
type Metrics struct {
	registry *prometheus.Registry

	SlideVisits   *prometheus.CounterVec
	Rejections    *prometheus.CounterVec
	Activations   *prometheus.CounterVec
	HookFailures  prometheus.Counter
	Transitioning prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		SlideVisits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slidedeck_slide_visits_total",
				Help: "Total number of slide visits",
			},
			[]string{"index"},
		),
		Rejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slidedeck_navigation_rejected_total",
				Help: "Navigation requests ignored, by reason",
			},
			[]string{"reason"},
		),
		Activations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slidedeck_slide_activations_total",
				Help: "Deferred slide activations, by whether a hook was resolved",
			},
			[]string{"hooked"},
		),
		HookFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "slidedeck_activation_hook_failures_total",
				Help: "Activation hooks that returned an error",
			},
		),
		Transitioning: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "slidedeck_transitions_in_flight",
				Help: "Transitions holding the lock, across sessions",
			},
		),
	}
	m.registry.MustRegister(m.SlideVisits, m.Rejections, m.Activations, m.HookFailures, m.Transitioning)
	return m
}

// Registry exposes the registry, e.g. to add process collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Hooks records metrics from controller lifecycle events.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSlideEnter: func(ctx context.Context, e *domain.SlideEvent) {
			m.SlideVisits.WithLabelValues(strconv.Itoa(e.Index)).Inc()
			m.Transitioning.Inc()
		},
		OnSettle: func(ctx context.Context, e *domain.SlideEvent) {
			m.Transitioning.Dec()
		},
		OnReject: func(ctx context.Context, e *domain.RejectEvent) {
			m.Rejections.WithLabelValues(string(e.Reason)).Inc()
		},
		OnActivate: func(ctx context.Context, e *domain.ActivationEvent) {
			m.Activations.WithLabelValues(strconv.FormatBool(e.Hooked)).Inc()
			if e.Error != "" {
				m.HookFailures.Inc()
			}
		},
	}
}
