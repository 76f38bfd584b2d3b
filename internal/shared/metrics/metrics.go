package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	extractions      = newCounterVec("format", "outcome")
	structurings     = newCounterVec("outcome")
	normalizations   = newCounterVec("outcome")
	repairsTotal     atomic.Uint64
	structuringDedup atomic.Uint64

	structuringDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000, 120000})
)

// IncExtraction counts one text extraction by file format and outcome.
func IncExtraction(format, outcome string) {
	extractions.Inc(format, outcome)
}

// IncStructuring counts one structuring request by outcome.
func IncStructuring(outcome string) {
	structurings.Inc(outcome)
}

// IncStructuringShared counts callers served by an already in-flight request.
func IncStructuringShared() {
	structuringDedup.Add(1)
}

// ObserveStructuringDurationMs records a structuring service round trip.
func ObserveStructuringDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	structuringDuration.Observe(value)
}

// IncNormalization counts one normalization by outcome and adds its repairs.
func IncNormalization(outcome string, repairs int) {
	normalizations.Inc(outcome)
	if repairs > 0 {
		repairsTotal.Add(uint64(repairs))
	}
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
	writeCounterVec(&buf, "cv_extraction_total", "Text extractions by format and outcome", extractions)
	writeCounterVec(&buf, "cv_structuring_total", "Structuring requests by outcome", structurings)
	writeCounter(&buf, "cv_structuring_shared_total", "Structuring callers served by an in-flight request", structuringDedup.Load())
	writeHistogram(&buf, "cv_structuring_duration_ms", "Structuring duration in milliseconds", structuringDuration.Snapshot())
	writeCounterVec(&buf, "cv_normalization_total", "Normalizations by outcome", normalizations)
	writeCounter(&buf, "cv_normalization_repairs_total", "Field repairs applied by the normalizer", repairsTotal.Load())
	return buf.String()
}

type counterVec struct {
	mu     sync.Mutex
	labels []string
	values map[string]uint64
}

func newCounterVec(labels ...string) *counterVec {
	return &counterVec{labels: labels, values: make(map[string]uint64)}
}

func (v *counterVec) Inc(values ...string) {
	if len(values) != len(v.labels) {
		return
	}
	pairs := make([]string, len(values))
	for i, value := range values {
		pairs[i] = fmt.Sprintf("%s=%q", v.labels[i], value)
	}
	key := strings.Join(pairs, ",")
	v.mu.Lock()
	v.values[key]++
	v.mu.Unlock()
}

func (v *counterVec) snapshot() map[string]uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make(map[string]uint64, len(v.values))
	for k, n := range v.values {
		out[k] = n
	}
	return out
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

// Observe records value in the first bucket that holds it; Render makes the
// counts cumulative.
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

func writeCounterVec(buf *bytes.Buffer, name, help string, v *counterVec) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	snap := v.snapshot()
	keys := make([]string, 0, len(snap))
	for k := range snap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(buf, "%s{%s} %d\n", name, k, snap[k])
	}
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

// SinceMillis returns the milliseconds elapsed since start.
func SinceMillis(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}
