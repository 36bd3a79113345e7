package metrics

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Registry collects engine counters: messages seen, violations by rule,
// enforcement outcomes, and sweep activity.
type Registry struct {
	messagesSeen     uint64
	enforcements     uint64
	enforcementFails uint64
	escalations      uint64
	punishmentsSwept uint64
	lockdownToggles  uint64

	mu         sync.Mutex
	violations map[string]uint64

	dispatchLatency *LatencyHistogram
	messageRate     *RateCounter
}

var globalRegistry = NewRegistry()

func NewRegistry() *Registry {
	return &Registry{
		violations:      make(map[string]uint64),
		dispatchLatency: NewLatencyHistogram(),
		messageRate:     NewRateCounter(),
	}
}

// Get returns the process-wide registry.
func Get() *Registry {
	return globalRegistry
}

func (r *Registry) IncrementMessages() {
	atomic.AddUint64(&r.messagesSeen, 1)
	r.messageRate.Increment()
}

func (r *Registry) IncrementViolation(kind string) {
	r.mu.Lock()
	r.violations[kind]++
	r.mu.Unlock()
}

func (r *Registry) IncrementEnforcements() {
	atomic.AddUint64(&r.enforcements, 1)
}

func (r *Registry) IncrementEnforcementFailures() {
	atomic.AddUint64(&r.enforcementFails, 1)
}

func (r *Registry) IncrementEscalations() {
	atomic.AddUint64(&r.escalations, 1)
}

func (r *Registry) AddPunishmentsSwept(n int) {
	atomic.AddUint64(&r.punishmentsSwept, uint64(n))
}

func (r *Registry) IncrementLockdownToggles() {
	atomic.AddUint64(&r.lockdownToggles, 1)
}

func (r *Registry) RecordDispatchLatency(d time.Duration) {
	r.dispatchLatency.Record(uint64(d.Nanoseconds()))
}

// Export renders all counters in a flat text format, one metric per line.
func (r *Registry) Export() string {
	var b strings.Builder

	fmt.Fprintf(&b, "messages_seen %d\n", atomic.LoadUint64(&r.messagesSeen))
	fmt.Fprintf(&b, "message_rate_eps %.2f\n", r.messageRate.Rate())
	fmt.Fprintf(&b, "enforcements_total %d\n", atomic.LoadUint64(&r.enforcements))
	fmt.Fprintf(&b, "enforcement_failures_total %d\n", atomic.LoadUint64(&r.enforcementFails))
	fmt.Fprintf(&b, "escalations_total %d\n", atomic.LoadUint64(&r.escalations))
	fmt.Fprintf(&b, "punishments_swept_total %d\n", atomic.LoadUint64(&r.punishmentsSwept))
	fmt.Fprintf(&b, "lockdown_toggles_total %d\n", atomic.LoadUint64(&r.lockdownToggles))

	r.mu.Lock()
	kinds := make([]string, 0, len(r.violations))
	for kind := range r.violations {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		fmt.Fprintf(&b, "violations_total{rule=%q} %d\n", kind, r.violations[kind])
	}
	r.mu.Unlock()

	stats := r.dispatchLatency.GetStats()
	fmt.Fprintf(&b, "dispatch_latency_min_ns %d\n", stats.Min)
	fmt.Fprintf(&b, "dispatch_latency_max_ns %d\n", stats.Max)
	fmt.Fprintf(&b, "dispatch_latency_avg_ns %d\n", stats.Avg)
	fmt.Fprintf(&b, "dispatch_count %d\n", stats.Count)

	return b.String()
}
