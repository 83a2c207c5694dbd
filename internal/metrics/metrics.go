package metrics

import (
	"aimtrainer/internal/challenge"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder counts session activity. It implements challenge.Recorder.
type Recorder struct {
	sessionsStarted prometheus.Counter
	sessionsEnded   *prometheus.CounterVec
	shots           *prometheus.CounterVec
	spawned         prometheus.Counter
	spawnSkipped    prometheus.Counter
	expired         prometheus.Counter
}

// NewRecorder registers the aimtrainer collectors on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		sessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aimtrainer",
			Name:      "sessions_started_total",
			Help:      "Challenge sessions started.",
		}),
		sessionsEnded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aimtrainer",
			Name:      "sessions_ended_total",
			Help:      "Challenge sessions ended, by reason.",
		}, []string{"reason"}),
		shots: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aimtrainer",
			Name:      "shots_total",
			Help:      "Pointer presses during running sessions, by result.",
		}, []string{"result"}),
		spawned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aimtrainer",
			Name:      "targets_spawned_total",
			Help:      "Targets placed on the surface.",
		}),
		spawnSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aimtrainer",
			Name:      "spawns_skipped_total",
			Help:      "Spawn cycles skipped because no free position was found.",
		}),
		expired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aimtrainer",
			Name:      "targets_expired_total",
			Help:      "Targets that outlived their lifetime without being hit.",
		}),
	}
	reg.MustRegister(r.sessionsStarted, r.sessionsEnded, r.shots, r.spawned, r.spawnSkipped, r.expired)
	return r
}

func (r *Recorder) SessionStarted() {
	r.sessionsStarted.Inc()
}

func (r *Recorder) SessionEnded(reason challenge.EndReason) {
	r.sessionsEnded.WithLabelValues(reason.String()).Inc()
}

func (r *Recorder) Shot(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.shots.WithLabelValues(result).Inc()
}

func (r *Recorder) Spawned() {
	r.spawned.Inc()
}

func (r *Recorder) SpawnSkipped() {
	r.spawnSkipped.Inc()
}

func (r *Recorder) Expired(n int) {
	r.expired.Add(float64(n))
}
