package acmatch

import (
	"golang.org/x/exp/slices"

	"github.com/scoder/multikey/internal/symfold"
)

func upperByte(b byte) (byte, bool) { return symfold.UpperByte(b) }
func upperRune(r rune) (rune, bool) { return symfold.UpperRune(r) }

func foldByte(b byte) byte { return symfold.FoldByte(b) }
func foldRune(r rune) rune { return symfold.FoldRune(r) }

// Compile is the Automaton Compiler component (spec §4.3): it consumes a
// frozen Trie and produces a finalized, immutable Automaton whose goto
// table has failure-link effects already folded in, so the Scanner never
// walks a failure chain at runtime.
func (t *Trie) Compile() (Automaton, error) {
	switch t.domain {
	case TextDomain:
		return compileText(t.textTrie, t.ignoreCase)
	default:
		return compileByte(t.byteTrie, t.ignoreCase)
	}
}

// combinedMatchesFor computes, for every state (root excluded, since empty
// keywords are rejected so root never carries matches), the full set of
// keywords simultaneously active at that state: its own terminal matches
// union every match reachable by following failure links up to the root
// (spec §4.3 step 2, "suffix-match propagation"). It relies on
// trie.levelOrder so that fail(id) — always a strictly shallower state —
// has already been resolved by the time id is processed.
func combinedMatchesFor[S symbol](t *rawTrie[S]) [][]string {
	combined := make([][]string, len(t.states))
	for _, id := range t.levelOrder {
		s := t.states[id]
		var list []string
		list = append(list, s.matches...)
		list = append(list, combined[s.fail]...)
		sortMatchList(list)
		combined[id] = list
	}
	return combined
}

// resolveGoto computes the destination state for (id, sym): the state's
// own explicit edge wins outright; otherwise, under ignore_case, the edge
// keyed by sym's folded (lowercase) form wins — trie edges are always
// stored folded (spec §4.2), so an uppercase query symbol only ever finds
// its child by looking up the lowercase key, never the other way round.
// Failing both, the failure chain above id is searched, defaulting to
// root (spec §4.3 steps 2-3).
func resolveGoto[S symbol](t *rawTrie[S], id int32, sym S, fold func(S) S) int32 {
	s := t.states[id]
	if next, ok := s.children[sym]; ok {
		return next
	}
	if fold != nil {
		if f := fold(sym); f != sym {
			if next, ok := s.children[f]; ok {
				return next
			}
		}
	}
	if id == 0 {
		return 0
	}
	return t.findFail(s.fail, sym, fold)
}

// alphabetOf collects every distinct symbol used as an edge anywhere in
// the trie (plus, under ignore_case, its paired case form). For the text
// domain this is the only alphabet worth materializing a goto row for:
// any other rune the scanner sees at runtime simply never has a
// transition recorded and is treated as "go to root, no match" — which is
// exactly the behavior an explicit root self-loop would produce anyway.
func alphabetOf[S symbol](t *rawTrie[S], upper func(S) (S, bool)) []S {
	seen := make(map[S]struct{})
	for _, s := range t.states {
		for sym := range s.children {
			seen[sym] = struct{}{}
			if upper != nil {
				if u, distinct := upper(sym); distinct {
					seen[u] = struct{}{}
				}
			}
		}
	}
	out := make([]S, 0, len(seen))
	for sym := range seen {
		out = append(out, sym)
	}
	slices.Sort(out)
	return out
}
