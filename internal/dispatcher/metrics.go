package dispatcher

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dshills/transpose/internal/dispatcher/handler"
)

// ActionStats counts the dispatches of one action name.
type ActionStats struct {
	Name string

	// Dispatches counts every dispatch that reached a handler.
	Dispatches uint64

	// Changed counts dispatches that edited the buffer; Blocked those
	// that ran and changed nothing.
	Changed uint64
	Blocked uint64
	Errors  uint64

	// Panics counts recovered panics, which are also Errors.
	Panics uint64

	// Runs sums the repetitions that changed the buffer.
	Runs uint64

	Elapsed time.Duration
}

// Mean is the average time a dispatch of the action took.
func (s ActionStats) Mean() time.Duration {
	if s.Dispatches == 0 {
		return 0
	}
	return s.Elapsed / time.Duration(s.Dispatches)
}

// Metrics collects per-action dispatch statistics.
type Metrics struct {
	mu      sync.Mutex
	actions map[string]*ActionStats
}

// NewMetrics creates an empty collector.
func NewMetrics() *Metrics {
	return &Metrics{actions: make(map[string]*ActionStats)}
}

func (m *Metrics) stats(name string) *ActionStats {
	s := m.actions[name]
	if s == nil {
		s = &ActionStats{Name: name}
		m.actions[name] = s
	}
	return s
}

// Record counts one dispatch of name that took elapsed.
func (m *Metrics) Record(name string, elapsed time.Duration, result handler.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.stats(name)
	s.Dispatches++
	s.Elapsed += elapsed
	s.Runs += uint64(result.Runs)
	switch result.Status {
	case handler.StatusOK:
		s.Changed++
	case handler.StatusNoOp:
		s.Blocked++
	case handler.StatusError:
		s.Errors++
	}
}

// RecordPanic counts a recovered handler panic.
func (m *Metrics) RecordPanic(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats(name).Panics++
}

// Action returns a copy of the statistics for name.
func (m *Metrics) Action(name string) (ActionStats, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.actions[name]
	if !ok {
		return ActionStats{Name: name}, false
	}
	return *s, true
}

// Snapshot returns the statistics of every action seen, by name.
func (m *Metrics) Snapshot() []ActionStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]ActionStats, 0, len(m.actions))
	for _, s := range m.actions {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Total sums the statistics of every action under the name "total".
func (m *Metrics) Total() ActionStats {
	total := ActionStats{Name: "total"}
	for _, s := range m.Snapshot() {
		total.Dispatches += s.Dispatches
		total.Changed += s.Changed
		total.Blocked += s.Blocked
		total.Errors += s.Errors
		total.Panics += s.Panics
		total.Runs += s.Runs
		total.Elapsed += s.Elapsed
	}
	return total
}

// Summary renders one line per action, for the debug log.
func (m *Metrics) Summary() string {
	var sb strings.Builder
	for _, s := range append(m.Snapshot(), m.Total()) {
		fmt.Fprintf(&sb, "%s: %d dispatched, %d changed (%d runs), %d blocked, %d failed, mean %v\n",
			s.Name, s.Dispatches, s.Changed, s.Runs, s.Blocked, s.Errors, s.Mean())
	}
	return sb.String()
}

// Reset forgets everything recorded.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.actions)
}
