package format

import (
	"strings"
)

// IndentType identifies the character used for indentation
type IndentType int

const (
	// IndentNone means no indentation could be detected
	IndentNone IndentType = iota
	// IndentSpace means lines are indented with spaces
	IndentSpace
	// IndentTab means lines are indented with tabs
	IndentTab
)

// String returns the indent type name
func (t IndentType) String() string {
	switch t {
	case IndentSpace:
		return "space"
	case IndentTab:
		return "tab"
	default:
		return "none"
	}
}

// Indent describes the detected indentation unit
type Indent struct {
	Type   IndentType
	Amount int
	Unit   string
}

// Detected reports whether an indentation unit was found
func (i Indent) Detected() bool {
	return i.Type != IndentNone && i.Amount > 0
}

type indentKey struct {
	typ    IndentType
	amount int
}

type indentStat struct {
	uses   int
	weight int
}

// indentStats keeps per-key counters in first-seen order
type indentStats struct {
	order []indentKey
	stats map[indentKey]*indentStat
}

// add records a line against key. A key seen for the first time counts
// one use and no weight, whatever the line contributed.
func (s *indentStats) add(key indentKey, use, weight int) {
	if s.stats == nil {
		s.stats = make(map[indentKey]*indentStat)
	}
	st, ok := s.stats[key]
	if !ok {
		s.order = append(s.order, key)
		s.stats[key] = &indentStat{uses: 1}
		return
	}
	st.uses += use
	st.weight += weight
}

func (s *indentStats) mostUsed() (indentKey, bool) {
	var best indentKey
	found := false
	maxUses, maxWeight := 0, 0
	for _, key := range s.order {
		st := s.stats[key]
		if st.uses > maxUses || (st.uses == maxUses && st.weight > maxWeight) {
			best, maxUses, maxWeight = key, st.uses, st.weight
			found = true
		}
	}
	return best, found
}

// DetectIndent finds the dominant indentation unit of text.
//
// Each indented line is compared with the previous one. A change in depth
// counts one use of that difference as a unit; an unchanged depth only adds
// weight to the last unit seen. The unit with most uses wins, ties go to
// the heavier unit, then to the one seen first. Single-space indents are
// ignored unless nothing else is found, since they usually come from block
// comment continuations.
func DetectIndent(text string) Indent {
	stats := collectIndents(text, true)
	if len(stats.order) == 0 {
		stats = collectIndents(text, false)
	}

	key, ok := stats.mostUsed()
	if !ok || key.amount == 0 {
		return Indent{Type: IndentNone}
	}

	char := " "
	if key.typ == IndentTab {
		char = "\t"
	}
	return Indent{
		Type:   key.typ,
		Amount: key.amount,
		Unit:   strings.Repeat(char, key.amount),
	}
}

func collectIndents(text string, ignoreSingleSpaces bool) *indentStats {
	stats := &indentStats{}

	var (
		prevSize int
		prevType IndentType
		key      indentKey
		haveKey  bool
	)
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}

		typ, size := leadingIndent(line)
		if typ == IndentNone {
			prevSize = 0
			prevType = IndentNone
			continue
		}
		if ignoreSingleSpaces && typ == IndentSpace && size == 1 {
			continue
		}
		if typ != prevType {
			prevSize = 0
		}
		prevType = typ

		use, weight := 1, 0
		diff := size - prevSize
		prevSize = size
		if diff == 0 {
			use, weight = 0, 1
		} else {
			if diff < 0 {
				diff = -diff
			}
			key = indentKey{typ: typ, amount: diff}
			haveKey = true
		}
		if haveKey {
			stats.add(key, use, weight)
		}
	}
	return stats
}

// leadingIndent measures the run of spaces or tabs at the start of line.
// The run's type is taken from its first character.
func leadingIndent(line string) (IndentType, int) {
	if line == "" {
		return IndentNone, 0
	}

	var c byte
	var typ IndentType
	switch line[0] {
	case ' ':
		c, typ = ' ', IndentSpace
	case '\t':
		c, typ = '\t', IndentTab
	default:
		return IndentNone, 0
	}

	n := 0
	for n < len(line) && line[n] == c {
		n++
	}
	return typ, n
}
