package youtube

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// quotaCost is the Data API unit cost per endpoint.
var quotaCost = map[string]int{
	"videos.list":        1,
	"channels.list":      1,
	"playlistItems.list": 1,
	"search.list":        100,
}

var (
	apiCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyzer_youtube_api_calls_total",
			Help: "YouTube Data API calls, by endpoint.",
		},
		[]string{"endpoint"},
	)
	quotaUnits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "analyzer_youtube_quota_units_total",
			Help: "Estimated YouTube Data API quota units consumed.",
		},
	)
)

// QuotaTracker counts API calls and their estimated quota cost. The daily
// quota itself is enforced server-side by Google; this is for visibility.
type QuotaTracker struct {
	used atomic.Int64
}

func NewQuotaTracker() *QuotaTracker {
	return &QuotaTracker{}
}

// Record accounts one call against the given endpoint.
func (t *QuotaTracker) Record(endpoint string) {
	cost, ok := quotaCost[endpoint]
	if !ok {
		cost = 1
	}
	t.used.Add(int64(cost))
	apiCalls.WithLabelValues(endpoint).Inc()
	quotaUnits.Add(float64(cost))
}

// Used returns the estimated quota units consumed since process start.
func (t *QuotaTracker) Used() int64 {
	return t.used.Load()
}
