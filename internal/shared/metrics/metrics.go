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
	candidatesScoredTotal  atomic.Uint64
	proposalsCreatedTotal  atomic.Uint64
	proposalsApprovedTotal atomic.Uint64
	proposalsRejectedTotal atomic.Uint64
	bookingsScheduledTotal atomic.Uint64
	bookingsFailedTotal    atomic.Uint64

	executorDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncCandidatesScored increments the scored-candidates counter.
func IncCandidatesScored() {
	candidatesScoredTotal.Add(1)
}

// IncProposalsCreated increments the created-proposals counter.
func IncProposalsCreated() {
	proposalsCreatedTotal.Add(1)
}

// IncProposalsApproved increments the approved-proposals counter.
func IncProposalsApproved() {
	proposalsApprovedTotal.Add(1)
}

// IncProposalsRejected increments the rejected-proposals counter.
func IncProposalsRejected() {
	proposalsRejectedTotal.Add(1)
}

// IncBookingsScheduled increments the scheduled-bookings counter.
func IncBookingsScheduled() {
	bookingsScheduledTotal.Add(1)
}

// IncBookingsFailed increments the failed-bookings counter.
func IncBookingsFailed() {
	bookingsFailedTotal.Add(1)
}

// ObserveExecutorDurationMs records an action-executor run duration in milliseconds.
func ObserveExecutorDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	executorDuration.Observe(value)
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
	writeCounter(&buf, "candidates_scored_total", "Total candidates scored", candidatesScoredTotal.Load())
	writeCounter(&buf, "proposals_created_total", "Total interview proposals created", proposalsCreatedTotal.Load())
	writeCounter(&buf, "proposals_approved_total", "Total interview proposals approved", proposalsApprovedTotal.Load())
	writeCounter(&buf, "proposals_rejected_total", "Total interview proposals rejected", proposalsRejectedTotal.Load())
	writeCounter(&buf, "bookings_scheduled_total", "Total bookings scheduled", bookingsScheduledTotal.Load())
	writeCounter(&buf, "bookings_failed_total", "Total bookings failed", bookingsFailedTotal.Load())
	writeHistogram(&buf, "executor_duration_ms", "Action executor duration in milliseconds", executorDuration.Snapshot())
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

// NowMillis returns current time in milliseconds, useful for callers without time utilities.
func NowMillis() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}
