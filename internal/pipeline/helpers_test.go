package pipeline

import (
	"strings"
	"testing"
	"time"

	"github.com/banshee-data/rangefinder/internal/timeutil"
)

const testWidth = 80

func newTestClock() *timeutil.MockClock {
	return timeutil.NewMockClock(time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC))
}

// drain collects everything left in a closed channel.
func drain[T any](ch <-chan Message[T]) []Message[T] {
	var out []Message[T]
	for msg := range ch {
		out = append(out, msg)
	}
	return out
}

// frames splits display output into the text of each redraw, checking the
// header and the padding that precedes every frame.
func frames(t *testing.T, out string) []string {
	t.Helper()

	header := "\r" + Header + "\r\n"
	if !strings.HasPrefix(out, header) {
		t.Fatalf("output missing header: %q", out)
	}
	parts := strings.Split(strings.TrimPrefix(out, header), "\r")
	if len(parts) == 1 && parts[0] == "" {
		return nil
	}
	if parts[0] != "" || len(parts)%2 != 1 {
		t.Fatalf("malformed output: %q", out)
	}

	pad := strings.Repeat(" ", testWidth)
	var texts []string
	for i := 1; i < len(parts); i += 2 {
		if parts[i] != pad {
			t.Fatalf("frame %d not preceded by %d blanks: %q", i/2, testWidth, parts[i])
		}
		texts = append(texts, parts[i+1])
	}
	return texts
}
