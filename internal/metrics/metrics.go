package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	articleWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_article_writes_total",
		Help: "Article create/update/delete attempts grouped by action and status.",
	}, []string{"action", "status"})

	favoriteEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_favorite_events_total",
		Help: "Favorite/unfavorite attempts grouped by action and status.",
	}, []string{"action", "status"})

	followEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_follow_events_total",
		Help: "Follow/unfollow attempts grouped by action and status.",
	}, []string{"action", "status"})

	publishBatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_publish_batches_total",
		Help: "Bulk draft-publish attempts grouped by status.",
	}, []string{"status"})

	rateLimitHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_rate_limit_hits_total",
		Help: "Rate limiter activations grouped by limiter name.",
	}, []string{"limiter"})
)

// IncArticleWrite increments the article mutation counter.
func IncArticleWrite(action, status string) {
	articleWrites.WithLabelValues(action, status).Inc()
}

// IncFavorite increments the favorite/unfavorite counter.
func IncFavorite(action, status string) {
	favoriteEvents.WithLabelValues(action, status).Inc()
}

// IncFollow increments the follow/unfollow counter.
func IncFollow(action, status string) {
	followEvents.WithLabelValues(action, status).Inc()
}

// IncPublish increments the bulk publish counter.
func IncPublish(status string) {
	publishBatches.WithLabelValues(status).Inc()
}

// IncRateLimit increments the rate-limit hit counter.
func IncRateLimit(name string) {
	rateLimitHits.WithLabelValues(name).Inc()
}
