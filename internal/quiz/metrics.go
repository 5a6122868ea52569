package quiz

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sessionsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quizkit_sessions_started_total",
		Help: "Sessions started, including restarts.",
	})

	answersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quizkit_answers_total",
		Help: "Answer outcomes by result.",
	}, []string{"result"}) // correct, wrong, timeout

	scoresSaved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quizkit_scores_saved_total",
		Help: "Completed sessions saved to the leaderboard.",
	})
)
