package markov

import (
	"fmt"
	"strings"
)

// CharFrequency is one entry of a FrequencyTable: a character observed after
// a window, how many times it was observed, and the probabilities derived
// from that count by Finalize.
type CharFrequency struct {
	Char  rune
	Count int
	P     float64 // Count divided by the table total
	CP    float64 // running sum of P in table order
}

// String renders the record the way the model dump prints it.
func (c CharFrequency) String() string {
	return fmt.Sprintf("(%q %d %g %g)", c.Char, c.Count, c.P, c.CP)
}

// FrequencyTable holds the characters observed to follow one window.
//
// Table order is most-recent-new-character-first: a character seen for the
// first time goes in front of every character already present. That order is
// used both for display and for accumulating CP, so it decides which
// character a given uniform draw selects.
type FrequencyTable struct {
	// records is kept in first-seen order and read back to front, which
	// gives the front-insertion order without shifting the slice.
	records []CharFrequency
	index   map[rune]int
	total   int
}

func newFrequencyTable() *FrequencyTable {
	return &FrequencyTable{index: make(map[rune]int)}
}

// RecordObservation counts one more occurrence of c. A character not yet in
// the table is inserted at the front with a count of 1.
func (t *FrequencyTable) RecordObservation(c rune) {
	if t.index == nil {
		t.index = make(map[rune]int)
	}
	t.total++
	if i, ok := t.index[c]; ok {
		t.records[i].Count++
		return
	}
	t.index[c] = len(t.records)
	t.records = append(t.records, CharFrequency{Char: c, Count: 1})
}

// Finalize recomputes P and CP for every record from the current counts.
// It must run after the last observation and before sampling; calling it
// again without new observations leaves every value unchanged.
func (t *FrequencyTable) Finalize() {
	if t.total == 0 {
		return
	}
	total := float64(t.total)
	var acc float64
	for i := len(t.records) - 1; i >= 0; i-- {
		r := &t.records[i]
		r.P = float64(r.Count) / total
		acc += r.P
		r.CP = acc
	}
}

// Sample maps a uniform draw u in [0,1) to a character: the first record in
// table order whose CP is at least u. If rounding leaves every CP below u the
// last record is returned. Sample on an empty table returns 0.
func (t *FrequencyTable) Sample(u float64) rune {
	if len(t.records) == 0 {
		return 0
	}
	for i := len(t.records) - 1; i >= 0; i-- {
		if t.records[i].CP >= u {
			return t.records[i].Char
		}
	}
	return t.records[0].Char
}

// Characters returns the distinct characters in table order.
func (t *FrequencyTable) Characters() []rune {
	chars := make([]rune, 0, len(t.records))
	for i := len(t.records) - 1; i >= 0; i-- {
		chars = append(chars, t.records[i].Char)
	}
	return chars
}

// Records returns a copy of the records in table order.
func (t *FrequencyTable) Records() []CharFrequency {
	out := make([]CharFrequency, 0, len(t.records))
	for i := len(t.records) - 1; i >= 0; i-- {
		out = append(out, t.records[i])
	}
	return out
}

// Len returns the number of distinct characters in the table.
func (t *FrequencyTable) Len() int {
	return len(t.records)
}

// Total returns the sum of all counts, i.e. how many times the owning window
// was followed by some character.
func (t *FrequencyTable) Total() int {
	return t.total
}

func (t *FrequencyTable) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i := len(t.records) - 1; i >= 0; i-- {
		if i != len(t.records)-1 {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.records[i].String())
	}
	sb.WriteByte(')')
	return sb.String()
}
