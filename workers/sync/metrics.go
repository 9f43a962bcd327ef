package sync

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	syncRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tidalbot_sync_runs_total",
		Help: "Completed sync runs by result.",
	}, []string{"result"})

	trackResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tidalbot_sync_tracks_total",
		Help: "Tracks processed during sync runs by outcome.",
	}, []string{"outcome"})
)
