package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"30s", 30},
		{"10m", 600},
		{"1h", 3600},
		{"2d", 172800},
		{"1w", 604800},
		{"1h30m", 5400},
		{"1d 12h", 129600},
		{"10M", 600},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDuration(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDurationRejectsBadInput(t *testing.T) {
	for _, input := range []string{"", "soon", "h", "0s"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseDuration(input)
			assert.Error(t, err)
		})
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1 second", FormatDuration(1))
	assert.Equal(t, "30 seconds", FormatDuration(30))
	assert.Equal(t, "10 minutes", FormatDuration(600))
	assert.Equal(t, "1 hour", FormatDuration(3600))
	assert.Equal(t, "2 days", FormatDuration(172800))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "lon...", Truncate("long message", 6))
	assert.Equal(t, "lo", Truncate("long", 2))
}
