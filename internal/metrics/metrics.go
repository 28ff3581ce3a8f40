// Package metrics exposes prometheus collectors for the engine and the HTTP
// router that serves them.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collectors use bounded label values only; nothing is labelled per player.
var (
	tickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wolf_tick_duration_seconds",
		Help:    "Time spent advancing one world per frame",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025},
	})

	ticsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wolf_tics_total",
		Help: "Simulation tics run across all worlds",
	})

	liveActors = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "wolf_live_actors",
		Help: "Actors alive in all running worlds",
	})

	openDoors = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "wolf_open_doors",
		Help: "Doors not fully closed in all running worlds",
	})

	sessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "wolf_sessions_active",
		Help: "Connected SSH sessions",
	})

	sessionsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wolf_sessions_rejected_total",
		Help: "SSH sessions refused before the game started",
	}, []string{"reason"}) // Bounded: "rate_limit", "no_pty"

	levelsFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wolf_levels_finished_total",
		Help: "Levels left, by outcome",
	}, []string{"outcome"}) // Bounded: "complete", "secret", "victory", "dead"

	playerDeaths = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wolf_player_deaths_total",
		Help: "Player deaths",
	})

	saveOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wolf_save_operations_total",
		Help: "Save slot operations",
	}, []string{"op", "result"}) // op: "save", "load"; result: "ok", "error"
)

// RecordTick records one world update.
func RecordTick(duration time.Duration, tics int) {
	tickDuration.Observe(duration.Seconds())
	ticsTotal.Add(float64(tics))
}

// RecordSessionStart increments the active session gauge.
func RecordSessionStart() {
	sessionsActive.Inc()
}

// RecordSessionEnd decrements the active session gauge.
func RecordSessionEnd() {
	sessionsActive.Dec()
}

// RecordSessionRejected counts a refused session.
// reason must be one of: "rate_limit", "no_pty".
func RecordSessionRejected(reason string) {
	sessionsRejected.WithLabelValues(reason).Inc()
}

// RecordLevelFinished counts a level exit.
// outcome must be one of: "complete", "secret", "victory", "dead".
func RecordLevelFinished(outcome string) {
	levelsFinished.WithLabelValues(outcome).Inc()
	if outcome == "dead" {
		playerDeaths.Inc()
	}
}

// RecordSave counts a save or load attempt.
func RecordSave(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	saveOps.WithLabelValues(op, result).Inc()
}

// WorldGauge contributes one world's counts to the shared gauges. Each
// running world owns one and reports its absolute counts; the gauge only
// moves by the difference.
type WorldGauge struct {
	mu     sync.Mutex
	actors int
	doors  int
}

// Update reports the world's current counts.
func (g *WorldGauge) Update(actors, doors int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	liveActors.Add(float64(actors - g.actors))
	openDoors.Add(float64(doors - g.doors))
	g.actors, g.doors = actors, doors
}

// Release withdraws the world's counts, e.g. when the session ends.
func (g *WorldGauge) Release() {
	g.Update(0, 0)
}
