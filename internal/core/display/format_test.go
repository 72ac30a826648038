package display

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRemaining(t *testing.T) {
	cases := []struct {
		name     string
		value    time.Duration
		expected string
	}{
		{"zero", 0, "00:00"},
		{"under a minute", 59 * time.Second, "00:59"},
		{"truncates millis", 59999 * time.Millisecond, "00:59"},
		{"ten minutes", 10 * time.Minute, "10:00"},
		{"just under an hour", time.Hour - time.Second, "59:59"},
		{"one hour", time.Hour, "1:00:00"},
		{"hour minute second", time.Hour + time.Minute + time.Second, "1:01:01"},
		{"many hours", 27*time.Hour + 5*time.Second, "27:00:05"},
		{"negative clamps", -5 * time.Second, "00:00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Remaining(tc.value))
		})
	}
}
