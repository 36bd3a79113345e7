package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRegistryExport(t *testing.T) {
	r := NewRegistry()

	r.IncrementMessages()
	r.IncrementMessages()
	r.IncrementViolation("spam")
	r.IncrementViolation("spam")
	r.IncrementViolation("excessive_caps")
	r.IncrementEnforcements()
	r.IncrementEnforcementFailures()
	r.IncrementEscalations()
	r.AddPunishmentsSwept(3)
	r.IncrementLockdownToggles()
	r.RecordDispatchLatency(5 * time.Millisecond)

	out := r.Export()

	assert.Contains(t, out, "messages_seen 2\n")
	assert.Contains(t, out, "enforcements_total 1\n")
	assert.Contains(t, out, "enforcement_failures_total 1\n")
	assert.Contains(t, out, "escalations_total 1\n")
	assert.Contains(t, out, "punishments_swept_total 3\n")
	assert.Contains(t, out, "lockdown_toggles_total 1\n")
	assert.Contains(t, out, `violations_total{rule="spam"} 2`)
	assert.Contains(t, out, `violations_total{rule="excessive_caps"} 1`)
	assert.Contains(t, out, "dispatch_count 1\n")

	// Violation kinds are emitted in sorted order.
	capsIdx := strings.Index(out, `rule="excessive_caps"`)
	spamIdx := strings.Index(out, `rule="spam"`)
	assert.Less(t, capsIdx, spamIdx)
}

func TestLatencyHistogramStats(t *testing.T) {
	h := NewLatencyHistogram()
	h.Record(100)
	h.Record(300)

	stats := h.GetStats()
	assert.Equal(t, uint64(100), stats.Min)
	assert.Equal(t, uint64(300), stats.Max)
	assert.Equal(t, uint64(200), stats.Avg)
	assert.Equal(t, uint64(2), stats.Count)
}
