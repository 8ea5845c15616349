package server

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sheetforge_http_requests_total",
		Help: "HTTP requests by route and status.",
	}, []string{"route", "status"})

	extractionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sheetforge_extraction_duration_seconds",
		Help:    "End-to-end /process pipeline duration.",
		Buckets: prometheus.DefBuckets,
	})
)

func requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		if route == "/process" {
			extractionDuration.Observe(time.Since(start).Seconds())
		}
	}
}
