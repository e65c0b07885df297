package metrics

import (
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Package-level Prometheus collectors. They are registered via Register.
var (
	regOK atomic.Bool

	launches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "launchkit",
			Subsystem: "devserver",
			Name:      "launches_total",
			Help:      "Number of dev server launches that reached Starting.",
		}, []string{"stack"},
	)
	launchFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "launchkit",
			Subsystem: "devserver",
			Name:      "launch_failures_total",
			Help:      "Launches that ended Failed, by failure reason.",
		}, []string{"stack", "reason"},
	)
	stops = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "launchkit",
			Subsystem: "devserver",
			Name:      "stops_total",
			Help:      "Number of stops, split by graceful vs forced.",
		}, []string{"stack", "mode"},
	)
	readinessWait = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "launchkit",
			Subsystem: "devserver",
			Name:      "readiness_wait_seconds",
			Help:      "Time from launch until the readiness probe succeeded.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"stack"},
	)
	running = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "launchkit",
			Subsystem: "devserver",
			Name:      "running",
			Help:      "1 while a dev server is registered and alive.",
		},
	)
)

// Register registers all metrics with the provided registerer.
// It is safe to call multiple times; subsequent calls after success are no-ops.
func Register(r prometheus.Registerer) error {
	if regOK.Load() {
		return nil
	}
	cs := []prometheus.Collector{launches, launchFailures, stops, readinessWait, running}
	for _, c := range cs {
		if err := r.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	regOK.Store(true)
	return nil
}

// Handler returns an http.Handler serving the DefaultGatherer.
func Handler() http.Handler { return promhttp.Handler() }

// Helpers below no-op until Register has been called, so library embedders
// who never opt into metrics pay nothing.

func IncLaunch(stack string) {
	if regOK.Load() {
		launches.WithLabelValues(stack).Inc()
	}
}

func IncLaunchFailure(stack, reason string) {
	if regOK.Load() {
		launchFailures.WithLabelValues(stack, reason).Inc()
	}
}

func IncStop(stack string, forced bool) {
	if regOK.Load() {
		mode := "graceful"
		if forced {
			mode = "forced"
		}
		stops.WithLabelValues(stack, mode).Inc()
	}
}

func ObserveReadinessWait(stack string, seconds float64) {
	if regOK.Load() {
		readinessWait.WithLabelValues(stack).Observe(seconds)
	}
}

func SetRunning(up bool) {
	if regOK.Load() {
		if up {
			running.Set(1)
		} else {
			running.Set(0)
		}
	}
}
