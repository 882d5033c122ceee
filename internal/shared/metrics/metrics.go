package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	questionStartedTotal  atomic.Uint64
	questionAnsweredTotal atomic.Uint64
	questionFailedTotal   atomic.Uint64

	excerptExactTotal      atomic.Uint64
	excerptBridgedTotal    atomic.Uint64
	excerptWindowTotal     atomic.Uint64
	excerptUngroundedTotal atomic.Uint64

	questionDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncQuestionStarted increments the started counter.
func IncQuestionStarted() {
	questionStartedTotal.Add(1)
}

// IncQuestionAnswered increments the answered counter.
func IncQuestionAnswered() {
	questionAnsweredTotal.Add(1)
}

// IncQuestionFailed increments the failed counter.
func IncQuestionFailed() {
	questionFailedTotal.Add(1)
}

// IncExcerptStrategy records which locator strategy produced the excerpt.
func IncExcerptStrategy(strategy string) {
	switch strategy {
	case "exact":
		excerptExactTotal.Add(1)
	case "bridged":
		excerptBridgedTotal.Add(1)
	case "window":
		excerptWindowTotal.Add(1)
	default:
		excerptUngroundedTotal.Add(1)
	}
}

// ObserveQuestionDurationMs records a question round-trip duration in milliseconds.
func ObserveQuestionDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	questionDuration.Observe(value)
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
	writeCounter(&buf, "question_started_total", "Total questions started", questionStartedTotal.Load())
	writeCounter(&buf, "question_answered_total", "Total questions answered", questionAnsweredTotal.Load())
	writeCounter(&buf, "question_failed_total", "Total questions failed", questionFailedTotal.Load())
	writeCounter(&buf, "excerpt_exact_total", "Excerpts grounded by exact containment", excerptExactTotal.Load())
	writeCounter(&buf, "excerpt_bridged_total", "Excerpts grounded by multi-line bridging", excerptBridgedTotal.Load())
	writeCounter(&buf, "excerpt_window_total", "Excerpts grounded by word-window fallback", excerptWindowTotal.Load())
	writeCounter(&buf, "excerpt_ungrounded_total", "Excerpts returned without grounding", excerptUngroundedTotal.Load())
	writeHistogram(&buf, "question_duration_ms", "Question round-trip duration in milliseconds", questionDuration.Snapshot())
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
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
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
