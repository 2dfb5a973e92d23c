package markov

import (
	"log/slog"
	"unicode/utf8"
)

// Generate extends seed by length characters sampled from the model, using
// the model's own Source.
//
// A seed shorter than WindowLength is returned unchanged. Generation also
// stops early, returning what it has so far, when the trailing window was
// never seen during training. A negative length yields ErrInvalidLength.
// The seed's bytes are never re-encoded; generated characters are appended
// after them.
func (m *Model) Generate(seed string, length int) (string, error) {
	return m.GenerateWith(m.source, seed, length)
}

// GenerateWith is Generate drawing from src instead of the model's Source.
// Concurrent callers sharing a trained model must each pass their own src.
// A nil src falls back to the model's Source.
func (m *Model) GenerateWith(src Source, seed string, length int) (string, error) {
	if length < 0 {
		return "", ErrInvalidLength
	}
	if src == nil {
		src = m.source
	}
	if n := utf8.RuneCountInString(seed); n < m.windowLength {
		m.logger.Debug("Generation skipped, seed shorter than window",
			slog.String("reason", "seed_too_short"),
			slog.Int("seed_length", n),
			slog.Int("window_length", m.windowLength),
		)
		return seed, nil
	}

	out := []byte(seed)
	for generated := 0; generated < length; generated++ {
		window := trailingWindow(out, m.windowLength)
		table, ok := m.tables[window]
		if !ok {
			m.logger.Debug("Generation terminated due to unknown context",
				slog.String("reason", "unknown_context"),
				slog.String("window", window),
				slog.Int("generated_length", generated),
			)
			return string(out), nil
		}
		out = utf8.AppendRune(out, table.Sample(src.Float64()))
	}

	m.logger.Debug("Generation terminated by reaching target length",
		slog.String("reason", "length_reached"),
		slog.Int("generated_length", length),
	)
	return string(out), nil
}

// trailingWindow returns the last n characters of b as a string, keeping
// their original bytes. An invalid byte counts as one character, so a window
// containing one never matches a trained window.
func trailingWindow(b []byte, n int) string {
	i := len(b)
	for k := 0; k < n && i > 0; k++ {
		_, size := utf8.DecodeLastRune(b[:i])
		i -= size
	}
	return string(b[i:])
}
