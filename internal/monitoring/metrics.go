package monitoring

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"time"
)

// MetricsCollector collects and aggregates run metrics
type MetricsCollector struct {
	mu       sync.RWMutex
	started  time.Time
	counters map[string]int64
	timers   map[string][]time.Duration
	kinds    map[string]struct{}
}

// NewMetricsCollector creates a new metrics collector
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		started:  time.Now(),
		counters: make(map[string]int64),
		timers:   make(map[string][]time.Duration),
		kinds:    make(map[string]struct{}),
	}
}

// RecordRunStart records the start of a run
func (mc *MetricsCollector) RecordRunStart(kind string) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.kinds[kind] = struct{}{}
	mc.counters["runs.started"]++
	mc.counters[fmt.Sprintf("runs.started.%s", kind)]++
}

// RecordRunEnd records a run completion
func (mc *MetricsCollector) RecordRunEnd(kind string, duration time.Duration, success bool) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.kinds[kind] = struct{}{}
	mc.timers[fmt.Sprintf("runs.duration.%s", kind)] = append(
		mc.timers[fmt.Sprintf("runs.duration.%s", kind)], duration,
	)
	mc.timers["runs.duration.all"] = append(mc.timers["runs.duration.all"], duration)

	if success {
		mc.counters["runs.completed"]++
		mc.counters[fmt.Sprintf("runs.completed.%s", kind)]++
	} else {
		mc.counters["runs.failed"]++
		mc.counters[fmt.Sprintf("runs.failed.%s", kind)]++
	}
}

// AddCounter adds delta to a named counter
func (mc *MetricsCollector) AddCounter(name string, delta int64) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.counters[name] += delta
}

// Counter returns the current value of a named counter
func (mc *MetricsCollector) Counter(name string) int64 {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.counters[name]
}

// MetricsSnapshot is a point-in-time view of all metrics
type MetricsSnapshot struct {
	Timestamp time.Time              `json:"timestamp"`
	Uptime    time.Duration          `json:"uptime_ns"`
	Runs      RunMetrics             `json:"runs"`
	ByKind    map[string]KindMetrics `json:"by_kind"`
}

// RunMetrics holds aggregate run metrics
type RunMetrics struct {
	TotalStarted   int64   `json:"total_started"`
	TotalCompleted int64   `json:"total_completed"`
	TotalFailed    int64   `json:"total_failed"`
	ActiveCount    int64   `json:"active_count"`
	SuccessRate    float64 `json:"success_rate"`
	AvgDurationMs  float64 `json:"avg_duration_ms"`
	P95DurationMs  float64 `json:"p95_duration_ms"`
	P99DurationMs  float64 `json:"p99_duration_ms"`
}

// KindMetrics holds per-kind run metrics
type KindMetrics struct {
	Started       int64   `json:"started"`
	Completed     int64   `json:"completed"`
	Failed        int64   `json:"failed"`
	SuccessRate   float64 `json:"success_rate"`
	AvgDurationMs float64 `json:"avg_duration_ms"`
}

// GetSnapshot returns a point-in-time snapshot of all metrics
func (mc *MetricsCollector) GetSnapshot() *MetricsSnapshot {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	started := mc.counters["runs.started"]
	completed := mc.counters["runs.completed"]
	failed := mc.counters["runs.failed"]

	successRate := 0.0
	if completed+failed > 0 {
		successRate = float64(completed) / float64(completed+failed) * 100
	}

	active := started - completed - failed
	if active < 0 {
		active = 0
	}

	return &MetricsSnapshot{
		Timestamp: time.Now(),
		Uptime:    time.Since(mc.started),
		Runs: RunMetrics{
			TotalStarted:   started,
			TotalCompleted: completed,
			TotalFailed:    failed,
			ActiveCount:    active,
			SuccessRate:    successRate,
			AvgDurationMs:  mc.avgDuration("runs.duration.all"),
			P95DurationMs:  mc.percentileDuration("runs.duration.all", 0.95),
			P99DurationMs:  mc.percentileDuration("runs.duration.all", 0.99),
		},
		ByKind: mc.getKindMetrics(),
	}
}

// getKindMetrics computes per-kind metrics
func (mc *MetricsCollector) getKindMetrics() map[string]KindMetrics {
	kinds := make(map[string]KindMetrics, len(mc.kinds))

	for kind := range mc.kinds {
		completed := mc.counters[fmt.Sprintf("runs.completed.%s", kind)]
		failed := mc.counters[fmt.Sprintf("runs.failed.%s", kind)]

		km := KindMetrics{
			Started:       mc.counters[fmt.Sprintf("runs.started.%s", kind)],
			Completed:     completed,
			Failed:        failed,
			AvgDurationMs: mc.avgDuration(fmt.Sprintf("runs.duration.%s", kind)),
		}
		if completed+failed > 0 {
			km.SuccessRate = float64(completed) / float64(completed+failed) * 100
		}
		kinds[kind] = km
	}

	return kinds
}

// avgDuration calculates the average duration for a timer key
func (mc *MetricsCollector) avgDuration(key string) float64 {
	durations := mc.timers[key]
	if len(durations) == 0 {
		return 0
	}

	var total time.Duration
	for _, d := range durations {
		total += d
	}

	return durationMs(total) / float64(len(durations))
}

// percentileDuration calculates a percentile duration
func (mc *MetricsCollector) percentileDuration(key string, percentile float64) float64 {
	durations := mc.timers[key]
	if len(durations) == 0 {
		return 0
	}

	sorted := slices.Clone(durations)
	slices.Sort(sorted)

	idx := int(float64(len(sorted)-1) * percentile)
	return durationMs(sorted[idx])
}

func durationMs(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// WriteSummary renders the snapshot as a short text report
func (s *MetricsSnapshot) WriteSummary(w io.Writer) error {
	var b strings.Builder

	b.WriteString("Run Summary\n")
	b.WriteString(strings.Repeat("=", 40))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  Runs:         %d\n", s.Runs.TotalStarted)
	fmt.Fprintf(&b, "  Completed:    %d\n", s.Runs.TotalCompleted)
	fmt.Fprintf(&b, "  Failed:       %d\n", s.Runs.TotalFailed)
	fmt.Fprintf(&b, "  Success Rate: %.1f%%\n", s.Runs.SuccessRate)
	fmt.Fprintf(&b, "  Avg Duration: %.3f ms\n", s.Runs.AvgDurationMs)
	fmt.Fprintf(&b, "  P95 Duration: %.3f ms\n", s.Runs.P95DurationMs)

	kinds := make([]string, 0, len(s.ByKind))
	for k := range s.ByKind {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)

	for _, k := range kinds {
		km := s.ByKind[k]
		fmt.Fprintf(&b, "  %s: %d runs, avg %.3f ms\n", k, km.Started, km.AvgDurationMs)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Reset clears all in-memory metrics
func (mc *MetricsCollector) Reset() {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.started = time.Now()
	mc.counters = make(map[string]int64)
	mc.timers = make(map[string][]time.Duration)
	mc.kinds = make(map[string]struct{})
}
