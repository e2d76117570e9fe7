package acmatch

import "iter"

// FindIter drives the automaton over input one byte at a time (spec
// §4.4): a single table lookup per symbol, matches emitted in canonical
// order (non-decreasing end position; longest-first at a tied end
// position, per the match list's stored order). The returned iter.Seq is
// lazy — every range over it starts a fresh scan from the root — and may
// be abandoned between yields (by returning false from the
// range body, or simply not exhausting a for-range) without leaving any
// cleanup obligation, satisfying the cooperative-cancellation rule in
// spec §5.
func (a *ByteAutomaton) FindIter(input []byte) iter.Seq[Match] {
	return func(yield func(Match) bool) {
		state := int32(0)
		for p, sym := range input {
			next, matchID := a.table.step(state, sym)
			state = next
			end := int64(p) + 1
			for _, kw := range a.lists[matchID] {
				if !yield(Match{Keyword: kw, Offset: end - int64(len(kw))}) {
					return
				}
			}
		}
	}
}

// FindAll is the eager concatenation of FindIter.
func (a *ByteAutomaton) FindAll(input []byte) []Match {
	matches := make([]Match, 0, len(input)>>5)
	for m := range a.FindIter(input) {
		matches = append(matches, m)
	}
	return matches
}

// FindIter drives the automaton over input one code point at a time. See
// ByteAutomaton.FindIter for the ordering and cancellation guarantees,
// which hold identically here.
func (a *TextAutomaton) FindIter(input []rune) iter.Seq[Match] {
	return func(yield func(Match) bool) {
		state := int32(0)
		for p, sym := range input {
			next, matchID := a.step(state, sym)
			state = next
			end := int64(p) + 1
			for _, kw := range a.lists[matchID] {
				kwLen := int64(len([]rune(kw)))
				if !yield(Match{Keyword: kw, Offset: end - kwLen}) {
					return
				}
			}
		}
	}
}

// FindAllRunes is the eager concatenation of FindIter over []rune.
func (a *TextAutomaton) FindAllRunes(input []rune) []Match {
	matches := make([]Match, 0, len(input)>>5)
	for m := range a.FindIter(input) {
		matches = append(matches, m)
	}
	return matches
}

// FindAllString is a convenience wrapper decoding s to runes first.
func (a *TextAutomaton) FindAllString(s string) []Match {
	return a.FindAllRunes([]rune(s))
}

// FindIterString is a convenience wrapper decoding s to runes first.
func (a *TextAutomaton) FindIterString(s string) iter.Seq[Match] {
	return a.FindIter([]rune(s))
}
