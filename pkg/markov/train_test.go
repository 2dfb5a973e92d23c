package markov

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"testing/iotest"
)

func TestTrain(t *testing.T) {
	m := newTestModel(t, 1, "aab")

	if m.Len() != 1 {
		t.Errorf("expected 1 window, got %d", m.Len())
	}
	table, ok := m.Table("a")
	if !ok {
		t.Fatal("expected a table for window \"a\"")
	}
	if _, ok := m.Table("b"); ok {
		t.Error("expected no table for window \"b\"")
	}

	records := table.Records()
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Char != 'b' || records[1].Char != 'a' {
		t.Errorf("expected table order [b a], got [%c %c]", records[0].Char, records[1].Char)
	}
	for _, r := range records {
		if r.Count != 1 || !floatEquals(r.P, 0.5) {
			t.Errorf("unexpected record %+v", r)
		}
	}
	if !floatEquals(records[0].CP, 0.5) || !floatEquals(records[1].CP, 1) {
		t.Errorf("expected CP [0.5 1], got [%v %v]", records[0].CP, records[1].CP)
	}
}

func TestTrainCountReconciliation(t *testing.T) {
	corpus := "the cat sat on the mat. the hat sat on the cat."
	for _, l := range []int{1, 2, 3, 5} {
		t.Run(fmt.Sprintf("Window%d", l), func(t *testing.T) {
			m := newTestModel(t, l, corpus)
			total := 0
			for _, w := range m.Windows() {
				table, _ := m.Table(w)
				if got, want := table.Total(), countFollowed(corpus, w); got != want {
					t.Errorf("window %q: total %d, want %d", w, got, want)
				}
				var sum float64
				for _, r := range table.Records() {
					sum += r.P
				}
				if !floatEquals(sum, 1) {
					t.Errorf("window %q: sum of P = %v", w, sum)
				}
				total += table.Total()
			}
			if want := len([]rune(corpus)) - l; total != want {
				t.Errorf("total observations %d, want %d", total, want)
			}
		})
	}
}

func TestTrainDegenerateCorpus(t *testing.T) {
	for _, corpus := range []string{"", "a", "abc"} {
		m := newTestModel(t, 3, corpus)
		if m.Len() != 0 {
			t.Errorf("corpus %q: expected no windows, got %d", corpus, m.Len())
		}
	}
	m := newTestModel(t, 3, "abcd")
	if m.Len() != 1 {
		t.Errorf("expected exactly one window for a corpus of length window+1, got %d", m.Len())
	}
}

func TestTrainRunes(t *testing.T) {
	m := newTestModel(t, 1, "héé")
	table, ok := m.Table("é")
	if !ok {
		t.Fatal("expected a table for the multi-byte window")
	}
	if chars := table.Characters(); string(chars) != "é" {
		t.Errorf("Characters() = %q, want %q", string(chars), "é")
	}
	if _, ok := m.Table("h"); !ok {
		t.Error("expected a table for window \"h\"")
	}
}

func TestTrainRejectsInvalidUTF8(t *testing.T) {
	m := newTestModel(t, 1, "ab")

	// Two different Latin-1 bytes must not collapse into one replacement window.
	err := m.Train("\xe9a\xe8b")
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
	if m.Len() != 1 {
		t.Errorf("expected model untouched after rejected corpus, got %d windows", m.Len())
	}
	if _, ok := m.Table("\uFFFD"); ok {
		t.Error("expected no replacement-character window")
	}

	err = m.TrainReader(strings.NewReader("caf\xe9"))
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Errorf("expected ErrInvalidUTF8 from TrainReader, got %v", err)
	}
}

func TestTrainAccumulates(t *testing.T) {
	m := newTestModel(t, 1, "ab")
	if err := m.Train("ac"); err != nil {
		t.Fatalf("second Train failed: %v", err)
	}
	table, _ := m.Table("a")
	if table.Total() != 2 {
		t.Errorf("expected second Train to accumulate, total = %d", table.Total())
	}
	if chars := string(table.Characters()); chars != "cb" {
		t.Errorf("Characters() = %q, want %q", chars, "cb")
	}
	records := table.Records()
	if !floatEquals(records[0].P, 0.5) || !floatEquals(records[1].CP, 1) {
		t.Errorf("expected probabilities refreshed after second Train, got %+v", records)
	}
}

func TestTrainReader(t *testing.T) {
	m, _ := NewModel(1, WithSeed(20))
	if err := m.TrainReader(strings.NewReader("aab")); err != nil {
		t.Fatalf("TrainReader failed: %v", err)
	}
	if m.Len() != 1 {
		t.Errorf("expected 1 window, got %d", m.Len())
	}

	failing, _ := NewModel(1, WithSeed(20))
	readErr := errors.New("disk on fire")
	err := failing.TrainReader(iotest.ErrReader(readErr))
	if !errors.Is(err, readErr) {
		t.Errorf("expected wrapped reader error, got %v", err)
	}
	if failing.Len() != 0 {
		t.Errorf("expected model untouched after read error, got %d windows", failing.Len())
	}
}

func BenchmarkTrain(b *testing.B) {
	corpus := createBenchmarkCorpus()

	for _, l := range []int{1, 2, 3, 4, 5, 8} {
		b.Run(fmt.Sprintf("Window%d", l), func(b *testing.B) {
			b.SetBytes(int64(len(corpus)))
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				m, err := NewModel(l, WithSeed(20))
				if err != nil {
					b.Fatalf("NewModel() failed: %v", err)
				}
				if err := m.Train(corpus); err != nil {
					b.Fatalf("Train() failed: %v", err)
				}
			}
		})
	}
}
