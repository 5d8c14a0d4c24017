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
	humanizeStartedTotal   atomic.Uint64
	humanizeCompletedTotal atomic.Uint64
	humanizeFailedTotal    atomic.Uint64
	humanizeTimedOutTotal  atomic.Uint64

	humanizeDuration = newHistogram([]float64{1000, 2500, 5000, 10000, 30000, 60000, 120000, 300000})
	pollAttempts     = newHistogram([]float64{1, 2, 3, 5, 10, 15, 20, 30})
)

// IncHumanizeStarted increments the started counter.
func IncHumanizeStarted() {
	humanizeStartedTotal.Add(1)
}

// IncHumanizeCompleted increments the completed counter.
func IncHumanizeCompleted() {
	humanizeCompletedTotal.Add(1)
}

// IncHumanizeFailed increments the failed counter.
func IncHumanizeFailed() {
	humanizeFailedTotal.Add(1)
}

// IncHumanizeTimedOut increments the timed-out counter.
func IncHumanizeTimedOut() {
	humanizeTimedOutTotal.Add(1)
}

// ObserveHumanizeDurationMs records an end-to-end humanization duration.
func ObserveHumanizeDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	humanizeDuration.Observe(value)
}

// ObservePollAttempts records how many provider polls a call consumed.
func ObservePollAttempts(n int) {
	if n < 0 {
		n = 0
	}
	pollAttempts.Observe(float64(n))
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
	writeCounter(&buf, "humanize_started_total", "Total humanizations started", humanizeStartedTotal.Load())
	writeCounter(&buf, "humanize_completed_total", "Total humanizations completed", humanizeCompletedTotal.Load())
	writeCounter(&buf, "humanize_failed_total", "Total humanizations failed", humanizeFailedTotal.Load())
	writeCounter(&buf, "humanize_timed_out_total", "Total humanizations timed out while polling", humanizeTimedOutTotal.Load())
	writeHistogram(&buf, "humanize_duration_ms", "Humanization duration in milliseconds", humanizeDuration.Snapshot())
	writeHistogram(&buf, "humanize_poll_attempts", "Provider poll attempts per humanization", pollAttempts.Snapshot())
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
	// Observe already increments every bucket whose bound covers the value,
	// so counts are cumulative as stored; emit them as-is.
	for i, bound := range snap.buckets {
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), snap.counts[i])
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
