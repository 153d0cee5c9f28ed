package dispatcher

import (
	"sort"
	"sync"
	"time"
)

// Metrics collects dispatch statistics.
type Metrics struct {
	mu      sync.RWMutex
	actions map[string]*ActionMetrics
	total   uint64
	errors  uint64
	panics  uint64
	elapsed time.Duration
}

// ActionMetrics holds the statistics of one action.
type ActionMetrics struct {
	Name          string
	Source        Source
	Count         uint64
	ErrorCount    uint64
	TotalDuration time.Duration
	MaxDuration   time.Duration
}

// NewMetrics creates an empty collector.
func NewMetrics() *Metrics {
	return &Metrics{actions: make(map[string]*ActionMetrics)}
}

// Record records one handled key.
func (m *Metrics) Record(r Result, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.total++
	m.elapsed += d
	am := m.actions[r.Action]
	if am == nil {
		am = &ActionMetrics{Name: r.Action, Source: r.Source}
		m.actions[r.Action] = am
	}
	am.Count++
	am.TotalDuration += d
	if d > am.MaxDuration {
		am.MaxDuration = d
	}
	if r.Err != nil {
		m.errors++
		am.ErrorCount++
	}
}

// RecordPanic counts a recovered panic.
func (m *Metrics) RecordPanic() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panics++
}

// Action returns a copy of the statistics for name.
func (m *Metrics) Action(name string) (ActionMetrics, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	am, ok := m.actions[name]
	if !ok {
		return ActionMetrics{}, false
	}
	return *am, true
}

// Top returns the n most used actions, most used first.
func (m *Metrics) Top(n int) []ActionMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]ActionMetrics, 0, len(m.actions))
	for _, am := range m.actions {
		out = append(out, *am)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// Snapshot is a point-in-time summary.
type Snapshot struct {
	Total   uint64
	Errors  uint64
	Panics  uint64
	Average time.Duration
	Actions int
}

// Snapshot returns the current summary.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := Snapshot{Total: m.total, Errors: m.errors, Panics: m.panics, Actions: len(m.actions)}
	if m.total > 0 {
		s.Average = m.elapsed / time.Duration(m.total)
	}
	return s
}

// Reset clears all statistics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actions = make(map[string]*ActionMetrics)
	m.total, m.errors, m.panics, m.elapsed = 0, 0, 0, 0
}
