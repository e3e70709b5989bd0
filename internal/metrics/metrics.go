// Package metrics собирает Prometheus-метрики ленты и пополнения кэша.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "paapimg"

// Источники загрузки страницы ленты
const (
	SourceCache   = "cache"
	SourceCurated = "curated"
	SourceSearch  = "search"
)

var (
	FeedLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feed_loads_total",
		Help:      "Feed page loads by source and result",
	}, []string{"source", "result"})

	FeedLoadDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "feed_load_duration_seconds",
		Help:      "Time spent fetching one feed page",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // от 5ms
	}, []string{"source"})

	StaleLoadsDiscarded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feed_stale_loads_discarded_total",
		Help:      "Loads whose result was dropped because a newer search superseded them",
	})

	FavoriteToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "favorite_toggles_total",
		Help:      "Favorite toggles by outcome",
	}, []string{"status"})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "feed_sessions_active",
		Help:      "Browsing sessions with a live feed controller",
	})

	RefillRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_refill_runs_total",
		Help:      "Cache refill job runs by result",
	}, []string{"result"})

	RefillRowsCached = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cache_refill_last_rows",
		Help:      "Rows upserted by the last successful refill run",
	})
)

// ResultLabel переводит ошибку в значение метки result
func ResultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
