package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	VotesCast = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memebot_votes_cast_total",
			Help: "Votes received, by decision and outcome.",
		},
		[]string{"decision", "outcome"},
	)

	Resolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memebot_reviews_resolved_total",
			Help: "Reviews concluded, by verdict.",
		},
		[]string{"verdict"},
	)

	Submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memebot_submissions_total",
			Help: "Submissions sent to review, by result.",
		},
		[]string{"result"},
	)

	GatewayFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memebot_gateway_failures_total",
			Help: "Failed messaging gateway calls, by operation.",
		},
		[]string{"op"},
	)

	InteractionsThrottled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "memebot_interactions_throttled_total",
			Help: "Interactions dropped by the per-user limiter.",
		},
	)
)

func init() {
	prometheus.MustRegister(VotesCast)
	prometheus.MustRegister(Resolutions)
	prometheus.MustRegister(Submissions)
	prometheus.MustRegister(GatewayFailures)
	prometheus.MustRegister(InteractionsThrottled)
}
