package observability

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type key struct {
	Method string
	Path   string
	Status int
}

type stat struct {
	Count     int64
	LatencyMS float64
}

type validationStat struct {
	Runs         int64
	LastTotal    int
	LastValid    int
	LastInvalid  int
	LastRunAtUTC time.Time
}

// Collector aggregates per-route request stats and validation run counts
// for the preview server.
type Collector struct {
	log *zap.Logger

	mu           sync.RWMutex
	requestStats map[key]stat
	validation   validationStat
	startedAt    time.Time
}

func NewCollector(log *zap.Logger) *Collector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Collector{
		log:          log,
		requestStats: make(map[key]stat),
		startedAt:    time.Now(),
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		latencyMS := float64(time.Since(start).Microseconds()) / 1000.0
		path := normalizedPath(r.URL.Path)

		c.mu.Lock()
		k := key{Method: r.Method, Path: path, Status: rec.status}
		s := c.requestStats[k]
		s.Count++
		s.LatencyMS += latencyMS
		c.requestStats[k] = s
		c.mu.Unlock()

		c.log.Info("http request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", path),
			zap.Int("status", rec.status),
			zap.Float64("latency_ms", latencyMS),
			zap.String("remote_ip", strings.TrimSpace(r.RemoteAddr)),
		)
	})
}

// RecordValidation stores the outcome of one directory validation run.
func (c *Collector) RecordValidation(total, valid, invalid int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.validation.Runs++
	c.validation.LastTotal = total
	c.validation.LastValid = valid
	c.validation.LastInvalid = invalid
	c.validation.LastRunAtUTC = time.Now().UTC()
}

func (c *Collector) MetricsHandler(w http.ResponseWriter, r *http.Request) {
	c.mu.RLock()
	statsCopy := make(map[key]stat, len(c.requestStats))
	for k, v := range c.requestStats {
		statsCopy[k] = v
	}
	vs := c.validation
	startedAt := c.startedAt
	c.mu.RUnlock()

	keys := make([]key, 0, len(statsCopy))
	for k := range statsCopy {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Method != keys[j].Method {
			return keys[i].Method < keys[j].Method
		}
		if keys[i].Path != keys[j].Path {
			return keys[i].Path < keys[j].Path
		}
		return keys[i].Status < keys[j].Status
	})

	var sb strings.Builder
	sb.WriteString("# quizgen preview server metrics\n")
	sb.WriteString("# TYPE quizgen_uptime_seconds gauge\n")
	sb.WriteString(fmt.Sprintf("quizgen_uptime_seconds %.0f\n", time.Since(startedAt).Seconds()))

	sb.WriteString("# TYPE quizgen_http_requests_total counter\n")
	sb.WriteString("# TYPE quizgen_http_request_latency_ms_sum counter\n")
	sb.WriteString("# TYPE quizgen_http_request_latency_ms_avg gauge\n")
	for _, k := range keys {
		s := statsCopy[k]
		labels := fmt.Sprintf("method=\"%s\",path=\"%s\",status=\"%d\"", k.Method, k.Path, k.Status)
		sb.WriteString(fmt.Sprintf("quizgen_http_requests_total{%s} %d\n", labels, s.Count))
		sb.WriteString(fmt.Sprintf("quizgen_http_request_latency_ms_sum{%s} %.3f\n", labels, s.LatencyMS))
		avg := 0.0
		if s.Count > 0 {
			avg = s.LatencyMS / float64(s.Count)
		}
		sb.WriteString(fmt.Sprintf("quizgen_http_request_latency_ms_avg{%s} %.3f\n", labels, avg))
	}

	sb.WriteString("# TYPE quizgen_validation_runs_total counter\n")
	sb.WriteString(fmt.Sprintf("quizgen_validation_runs_total %d\n", vs.Runs))
	sb.WriteString("# TYPE quizgen_validation_files gauge\n")
	sb.WriteString(fmt.Sprintf("quizgen_validation_files{state=\"total\"} %d\n", vs.LastTotal))
	sb.WriteString(fmt.Sprintf("quizgen_validation_files{state=\"valid\"} %d\n", vs.LastValid))
	sb.WriteString(fmt.Sprintf("quizgen_validation_files{state=\"invalid\"} %d\n", vs.LastInvalid))
	if !vs.LastRunAtUTC.IsZero() {
		sb.WriteString("# TYPE quizgen_validation_last_run_timestamp_seconds gauge\n")
		sb.WriteString(fmt.Sprintf("quizgen_validation_last_run_timestamp_seconds %d\n", vs.LastRunAtUTC.Unix()))
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(sb.String()))
}

// normalizedPath folds numeric segments and generated quiz pages so the
// metrics label set stays small.
func normalizedPath(path string) string {
	if path == "" {
		return "/"
	}
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if p == "" {
			continue
		}
		if _, err := strconv.ParseInt(p, 10, 64); err == nil {
			parts[i] = "{id}"
			continue
		}
		if strings.HasPrefix(p, "quiz-") && strings.HasSuffix(p, ".html") {
			parts[i] = "{quiz}"
		}
	}
	return strings.Join(parts, "/")
}
