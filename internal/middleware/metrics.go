package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/heimweh17/GatorGrades/internal/metrics"
)

// Metrics observes per-route request duration. The route template
// (not the raw path) is used so course ids don't explode label
// cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.APIRequestDuration.
			WithLabelValues(path, c.Request.Method, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
