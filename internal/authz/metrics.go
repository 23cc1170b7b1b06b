package authz

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DecisionsTotal 按角色、路由、方法与结果统计授权决策
	DecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gradmate_authz_decisions_total",
			Help: "Total number of authorization decisions",
		},
		[]string{"role", "route", "method", "decision"},
	)

	// DecisionDuration 授权决策耗时
	DecisionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gradmate_authz_decision_duration_seconds",
			Help:    "Duration of authorization decisions in seconds",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		},
		[]string{"role"},
	)
)

// recordDecision 记录一次授权决策
func recordDecision(role, route, method string, allowed bool, d time.Duration) {
	decision := "deny"
	if allowed {
		decision = "allow"
	}
	DecisionsTotal.WithLabelValues(role, route, method, decision).Inc()
	DecisionDuration.WithLabelValues(role).Observe(d.Seconds())
}
