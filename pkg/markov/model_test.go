package markov

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestNewModel(t *testing.T) {
	testCases := []struct {
		name         string
		windowLength int
		expectError  bool
	}{
		{name: "Positive window", windowLength: 3},
		{name: "Window of one", windowLength: 1},
		{name: "Zero window", windowLength: 0, expectError: true},
		{name: "Negative window", windowLength: -2, expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := NewModel(tc.windowLength)
			if tc.expectError {
				if !errors.Is(err, ErrInvalidWindowLength) {
					t.Errorf("expected ErrInvalidWindowLength, got %v", err)
				}
				if m != nil {
					t.Errorf("expected nil model on error, got %+v", m)
				}
				return
			}
			if err != nil {
				t.Fatalf("got unexpected error: %v", err)
			}
			if m.WindowLength() != tc.windowLength {
				t.Errorf("WindowLength() = %d, want %d", m.WindowLength(), tc.windowLength)
			}
			if m.Len() != 0 {
				t.Errorf("new model has %d windows, want 0", m.Len())
			}
		})
	}
}

func TestWithSourceNilIgnored(t *testing.T) {
	m, err := NewModel(1, WithSource(nil))
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}
	if m.source == nil {
		t.Error("expected a default source when WithSource(nil) is given")
	}
}

func TestModelString(t *testing.T) {
	m := newTestModel(t, 1, "aab")
	want := "a : ('b' 1 0.5 0.5) ('a' 1 0.5 1)\n"
	if got := m.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	empty := newTestModel(t, 4, "abc")
	if got := empty.String(); got != "" {
		t.Errorf("String() of untrained model = %q, want empty", got)
	}
}

func TestWindowsSorted(t *testing.T) {
	m := newTestModel(t, 2, "banana")
	got := strings.Join(m.Windows(), ",")
	if got != "an,ba,na" {
		t.Errorf("Windows() = %q, want %q", got, "an,ba,na")
	}
}

func TestStats(t *testing.T) {
	m := newTestModel(t, 2, "banana")
	// ba->n, an->a, na->n, an->a
	s := m.Stats()
	want := Stats{Windows: 3, Observations: 4, DistinctChars: 2, MaxFanout: 1}
	if s != want {
		t.Errorf("Stats() = %+v, want %+v", s, want)
	}
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	m, _ := NewModel(2, WithSeed(1))
	m.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	m.SetLogger(nil)

	if err := m.Train("hello there"); err != nil {
		t.Fatalf("Train failed: %v", err)
	}
	if _, err := m.Generate("zz", 3); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Training completed") {
		t.Errorf("expected training log, got %q", out)
	}
	if !strings.Contains(out, "reason=unknown_context") {
		t.Errorf("expected unknown-context log, got %q", out)
	}
}
