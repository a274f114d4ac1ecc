package handlers

import (
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sensor-sentiment/logging"
	"sensor-sentiment/metrics"
)

const requestIDHeader = "X-Request-ID"

var tagNamesOnce sync.Once

// NewEngine returns a gin engine with recovery, request IDs, access logs
// and Prometheus metrics, and /metrics mounted. service labels the metrics.
func NewEngine(service string) *gin.Engine {
	tagNamesOnce.Do(registerTagNames)

	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), AccessLog(), Metrics(service))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

// registerTagNames makes validation errors report json/form names
// (page_size) instead of Go field names (PageSize).
func registerTagNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, key := range []string{"json", "form"} {
			name := strings.Split(f.Tag.Get(key), ",")[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
}

// RequestID propagates X-Request-ID, generating one when absent, and stores
// it in the request context for logging.Ctx.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = logging.GenerateRequestID()
		}
		c.Header(requestIDHeader, id)
		c.Request = c.Request.WithContext(logging.ContextWithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// AccessLog writes one structured line per request.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		ev := logging.Ctx(c.Request.Context()).Info()
		if status >= 500 {
			ev = logging.Ctx(c.Request.Context()).Error()
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}

// Metrics records request counts and latencies by route template.
func Metrics(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordHTTPRequest(service, c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
