package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestWithPhase(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))

	log := WithPhase("load")
	log.Info().Msg("dataset loaded")

	out := buf.String()
	if !strings.Contains(out, `"phase":"load"`) {
		t.Errorf("output missing phase field: %s", out)
	}
	if !strings.Contains(out, "dataset loaded") {
		t.Errorf("output missing message: %s", out)
	}
}

func TestPhaseComplete(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	PhaseComplete(log, "aggregate", 1500*time.Millisecond).
		Rows(42).
		Str("window", "2024-01-01..2024-01-31").
		Log("report computed")

	out := buf.String()
	for _, want := range []string{
		`"event":"phase_completed"`,
		`"phase":"aggregate"`,
		`"duration_ms":1500`,
		`"rows":42`,
		`"rows_per_sec":28`,
		`"window":"2024-01-01..2024-01-31"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestCompletionEventCount(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	NewCompletionEvent(log, "phase_completed", "load", time.Second).
		Count("customers", 1500).
		Log("done")

	out := buf.String()
	if !strings.Contains(out, `"customers":1500`) {
		t.Errorf("output missing count field: %s", out)
	}
	// Pretty mode is off: no human-readable companion field.
	if strings.Contains(out, "customers_h") {
		t.Errorf("unexpected pretty companion field: %s", out)
	}
}
