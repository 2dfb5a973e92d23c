package markov

// Stats summarises a trained model.
type Stats struct {
	Windows       int // distinct windows learned
	Observations  int // window -> next character transitions counted
	DistinctChars int // distinct characters seen as a next character
	MaxFanout     int // largest number of distinct successors of one window
}

// Stats returns a snapshot of counts over every table in the model.
func (m *Model) Stats() Stats {
	chars := make(map[rune]struct{})
	s := Stats{Windows: len(m.tables)}
	for _, t := range m.tables {
		s.Observations += t.Total()
		if t.Len() > s.MaxFanout {
			s.MaxFanout = t.Len()
		}
		for _, c := range t.Characters() {
			chars[c] = struct{}{}
		}
	}
	s.DistinctChars = len(chars)
	return s
}
