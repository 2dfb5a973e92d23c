package markov

import (
	"errors"
	"io"
	"log/slog"
	"sort"
	"strings"
)

var (
	// ErrInvalidWindowLength is returned by NewModel for a window length
	// that is not positive.
	ErrInvalidWindowLength = errors.New("markov: window length must be positive")
	// ErrInvalidLength is returned by Generate for a negative target length.
	ErrInvalidLength = errors.New("markov: target length must not be negative")
	// ErrInvalidUTF8 is returned by Train for a corpus that is not valid
	// UTF-8. Decoding it with replacement would merge distinct contexts.
	ErrInvalidUTF8 = errors.New("markov: corpus is not valid UTF-8")
)

// Model maps every window of WindowLength characters seen in the training
// corpus to the FrequencyTable of characters that followed it.
//
// The lifecycle is construct, Train, then any number of Generate calls.
// Training more than once keeps accumulating counts into the same tables,
// which merges the corpora into one model.
type Model struct {
	windowLength int
	tables       map[string]*FrequencyTable
	source       Source
	logger       *slog.Logger
}

// Option configures a Model at construction.
type Option func(*Model)

// WithSeed makes the model draw from a deterministic source seeded with seed,
// so identical models trained on identical corpora generate identical text.
func WithSeed(seed int64) Option {
	return func(m *Model) { m.source = NewSeededSource(seed) }
}

// WithSource makes the model draw from src. A nil src is ignored.
func WithSource(src Source) Option {
	return func(m *Model) {
		if src != nil {
			m.source = src
		}
	}
}

// NewModel returns an empty model for windows of windowLength characters.
// Without WithSeed or WithSource it samples from an entropy-seeded source.
func NewModel(windowLength int, opts ...Option) (*Model, error) {
	if windowLength <= 0 {
		return nil, ErrInvalidWindowLength
	}
	m := &Model{
		windowLength: windowLength,
		tables:       make(map[string]*FrequencyTable),
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.source == nil {
		m.source = NewRandomSource()
	}
	return m, nil
}

// SetLogger sets the logger for the Model. By default, all logs are discarded.
func (m *Model) SetLogger(logger *slog.Logger) {
	if logger != nil {
		m.logger = logger
	}
}

// WindowLength returns the number of characters in each window.
func (m *Model) WindowLength() int {
	return m.windowLength
}

// Len returns the number of distinct windows the model has learned.
func (m *Model) Len() int {
	return len(m.tables)
}

// Table returns the frequency table for window, if the model has one. The
// table belongs to the model and must not be modified.
func (m *Model) Table(window string) (*FrequencyTable, bool) {
	t, ok := m.tables[window]
	return t, ok
}

// Windows returns every learned window in sorted order.
func (m *Model) Windows() []string {
	windows := make([]string, 0, len(m.tables))
	for w := range m.tables {
		windows = append(windows, w)
	}
	sort.Strings(windows)
	return windows
}

// String dumps the model, one window per line in sorted order, each followed
// by its table in table order.
func (m *Model) String() string {
	var sb strings.Builder
	for _, w := range m.Windows() {
		sb.WriteString(w)
		sb.WriteString(" : ")
		sb.WriteString(m.tables[w].String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
