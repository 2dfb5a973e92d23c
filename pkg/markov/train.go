package markov

import (
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"
)

// Train slides a window of WindowLength characters over corpus one character
// at a time and counts the character that follows each window. A corpus with
// no more than WindowLength characters teaches nothing. Probabilities of
// every table are finalized once the scan is complete.
//
// A corpus that is not valid UTF-8 is rejected with ErrInvalidUTF8 and the
// model is left untouched.
func (m *Model) Train(corpus string) error {
	if !utf8.ValidString(corpus) {
		return ErrInvalidUTF8
	}
	chars := []rune(corpus)
	l := m.windowLength

	var observations int
	for i := 0; i+l < len(chars); i++ {
		window := string(chars[i : i+l])
		table, ok := m.tables[window]
		if !ok {
			table = newFrequencyTable()
			m.tables[window] = table
		}
		table.RecordObservation(chars[i+l])
		observations++
	}

	for _, table := range m.tables {
		table.Finalize()
	}

	m.logger.Info("Training completed",
		slog.Int("window_length", l),
		slog.Int("corpus_chars", len(chars)),
		slog.Int("observations", observations),
		slog.Int("windows", len(m.tables)),
	)
	return nil
}

// TrainReader reads r to the end and trains on its full contents. If reading
// fails the model is left untouched.
func (m *Model) TrainReader(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("could not read corpus: %w", err)
	}
	return m.Train(string(data))
}
