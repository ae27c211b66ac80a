// Metrics collection for observability of the matching and apply pipeline.
package fudiff

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics collects engine statistics for monitoring and observability.
type Metrics interface {
	// RecordLocate records one context search with its candidate count and
	// whether the accepted match needed fuzzy normalization.
	RecordLocate(candidates int, fuzzy bool)
	// RecordHunkApplied records a successfully applied hunk and its duration.
	RecordHunkApplied(duration time.Duration)
	// RecordMerge records two hunks being merged into one.
	RecordMerge()
	// Snapshot returns the current metrics snapshot.
	Snapshot() MetricsSnapshot
	// Reset clears all metrics (useful for testing).
	Reset()
}

// MetricsSnapshot contains a point-in-time view of collected metrics.
type MetricsSnapshot struct {
	Locates       int64
	FuzzyMatches  int64
	NoCandidates  int64
	HunksApplied  int64
	Merges        int64
	TotalHunkTime time.Duration
	MaxHunkTime   time.Duration
}

// NoOpMetrics is a metrics collector that discards all measurements.
type NoOpMetrics struct{}

func (n *NoOpMetrics) RecordLocate(_ int, _ bool)          {}
func (n *NoOpMetrics) RecordHunkApplied(_ time.Duration)   {}
func (n *NoOpMetrics) RecordMerge()                        {}
func (n *NoOpMetrics) Snapshot() MetricsSnapshot           { return MetricsSnapshot{} }
func (n *NoOpMetrics) Reset()                              {}

var noopMetrics Metrics = &NoOpMetrics{}

// InMemoryMetrics is a thread-safe in-memory metrics collector.
type InMemoryMetrics struct {
	mu            sync.Mutex
	locates       int64
	fuzzyMatches  int64
	noCandidates  int64
	hunksApplied  int64
	totalHunkTime time.Duration
	maxHunkTime   time.Duration

	merges atomic.Int64
}

// NewInMemoryMetrics creates a new in-memory metrics collector.
func NewInMemoryMetrics() *InMemoryMetrics {
	return &InMemoryMetrics{}
}

func (m *InMemoryMetrics) RecordLocate(candidates int, fuzzy bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locates++
	if candidates == 0 {
		m.noCandidates++
	}
	if fuzzy {
		m.fuzzyMatches++
	}
}

func (m *InMemoryMetrics) RecordHunkApplied(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hunksApplied++
	m.totalHunkTime += duration
	if duration > m.maxHunkTime {
		m.maxHunkTime = duration
	}
}

func (m *InMemoryMetrics) RecordMerge() {
	m.merges.Add(1)
}

func (m *InMemoryMetrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return MetricsSnapshot{
		Locates:       m.locates,
		FuzzyMatches:  m.fuzzyMatches,
		NoCandidates:  m.noCandidates,
		HunksApplied:  m.hunksApplied,
		Merges:        m.merges.Load(),
		TotalHunkTime: m.totalHunkTime,
		MaxHunkTime:   m.maxHunkTime,
	}
}

func (m *InMemoryMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locates = 0
	m.fuzzyMatches = 0
	m.noCandidates = 0
	m.hunksApplied = 0
	m.totalHunkTime = 0
	m.maxHunkTime = 0
	m.merges.Store(0)
}
