package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 聊天与LLM调用相关指标
var (
	ChatRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chat_requests_total",
		Help: "Total number of chat requests by outcome.",
	}, []string{"status"})

	ChatRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "chat_request_duration_seconds",
		Help:    "Chat request latency including the provider round trip.",
		Buckets: prometheus.DefBuckets,
	})

	LLMFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "llm_failures_total",
		Help: "Total number of failed LLM provider calls.",
	})

	LLMFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "llm_fallbacks_total",
		Help: "Total number of chat replies served with the fixed fallback text.",
	})
)

// Handler 返回Prometheus指标的HTTP处理器
func Handler() http.Handler {
	return promhttp.Handler()
}
