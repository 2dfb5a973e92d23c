package markov

import (
	"fmt"
	"go/build"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// scriptedSource replays a fixed list of draws, failing the test if the
// model asks for more than were scripted.
type scriptedSource struct {
	t      testing.TB
	values []float64
	index  int
}

func (s *scriptedSource) Float64() float64 {
	if s.index >= len(s.values) {
		s.t.Fatalf("scriptedSource exhausted after %d draws", len(s.values))
	}
	v := s.values[s.index]
	s.index++
	return v
}

func floatEquals(a, b float64) bool {
	const tolerance = 1e-9
	return math.Abs(a-b) < tolerance
}

// newTestModel builds a seeded model and trains it on corpus.
func newTestModel(t testing.TB, windowLength int, corpus string) *Model {
	m, err := NewModel(windowLength, WithSeed(20))
	if err != nil {
		t.Fatalf("NewModel(%d) error = %v", windowLength, err)
	}
	if err := m.Train(corpus); err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	return m
}

// countFollowed counts how often window occurs in corpus with at least one
// character after it.
func countFollowed(corpus, window string) int {
	chars := []rune(corpus)
	w := []rune(window)
	n := 0
	for i := 0; i+len(w) < len(chars); i++ {
		if string(chars[i:i+len(w)]) == window {
			n++
		}
	}
	return n
}

var (
	benchmarkCorpus string
	corpusOnce      sync.Once
)

// createBenchmarkCorpus reads Go source files to create a corpus for benchmarking.
func createBenchmarkCorpus() string {
	corpusOnce.Do(func() {
		var sb strings.Builder
		goRoot := build.Default.GOROOT
		filesToRead := []string{
			filepath.Join(goRoot, "src/net/http/server.go"),
			filepath.Join(goRoot, "src/go/parser/parser.go"),
			filepath.Join(goRoot, "src/encoding/json/encode.go"),
		}

		for _, file := range filesToRead {
			content, err := os.ReadFile(file)
			if err != nil {
				benchmarkCorpus = strings.Repeat("this is a fallback corpus for benchmarking. it is not very long but will prevent a crash. ", 50)
				return
			}
			sb.Write(content)
			sb.WriteString("\n")
		}
		benchmarkCorpus = sb.String()
	})
	return benchmarkCorpus
}

func ExampleModel_Generate() {
	m, _ := NewModel(1, WithSeed(20))
	_ = m.Train("aab")
	fmt.Print(m)
	out, _ := m.Generate("b", 5)
	fmt.Println(out)
	// Output:
	// a : ('b' 1 0.5 0.5) ('a' 1 0.5 1)
	// b
}
