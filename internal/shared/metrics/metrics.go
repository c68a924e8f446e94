package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	recommendRequestsTotal   atomic.Uint64
	recommendValidationTotal atomic.Uint64
	recommendFailedTotal     atomic.Uint64
	recommendResultsTotal    atomic.Uint64

	recommendDuration = newHistogram([]float64{0.1, 0.5, 1, 5, 10, 50, 100, 500})
)

// IncRecommendRequests counts a recommendation request that reached the selector.
func IncRecommendRequests() {
	recommendRequestsTotal.Add(1)
}

// IncValidationFailed counts a request rejected before selection.
func IncValidationFailed() {
	recommendValidationTotal.Add(1)
}

// IncRecommendFailed counts a request that failed for a server-side reason.
func IncRecommendFailed() {
	recommendFailedTotal.Add(1)
}

// AddResults adds the number of recommendations returned to a caller.
func AddResults(n int) {
	if n > 0 {
		recommendResultsTotal.Add(uint64(n))
	}
}

// ObserveDuration records how long a recommendation took to produce.
func ObserveDuration(d time.Duration) {
	ms := float64(d.Microseconds()) / 1000.0
	if ms < 0 {
		ms = 0
	}
	recommendDuration.Observe(ms)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "recommend_requests_total", "Recommendation requests served", recommendRequestsTotal.Load())
	writeCounter(&buf, "recommend_validation_failed_total", "Requests rejected by semester validation", recommendValidationTotal.Load())
	writeCounter(&buf, "recommend_failed_total", "Requests that failed server-side", recommendFailedTotal.Load())
	writeCounter(&buf, "recommend_results_total", "Recommendations returned", recommendResultsTotal.Load())
	writeHistogram(&buf, "recommend_duration_ms", "Recommendation latency in milliseconds", recommendDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
