package acmatch

import "golang.org/x/exp/constraints"

// symbol is the generic alphabet element the pre-compilation trie and the
// failure-link BFS are parameterized over: byte for the byte domain, rune
// (int32) for the text domain. Constraining it to constraints.Integer
// (rather than writing two near-identical trie implementations by hand)
// mirrors the generic-container style golang.org/x/exp/constraints is
// used for elsewhere in the corpus (priority queues, ordered maps).
type symbol interface {
	constraints.Integer
}

// state is a single pre-compilation trie node, addressed by a
// monotonically increasing id assigned in insertion order (root = 0).
// It is shared, unmodified in shape, by both domains via the symbol type
// parameter; only the transition representation chosen by the Automaton
// Compiler differs per domain (dense array vs. sorted rows).
type state[S symbol] struct {
	id       int32
	children map[S]int32
	matches  []string // keywords whose path ends here, insertion order
	fail     int32
}

// rawTrie is the Trie Builder component (spec §4.2): an ordinary prefix
// tree built by walking one keyword at a time from the root, allocating a
// fresh state only when no existing edge covers the next symbol.
type rawTrie[S symbol] struct {
	states []*state[S]
	// levelOrder lists every non-root state id in breadth-first order,
	// populated as a byproduct of computeFailLinks. Failure links always
	// point to a strictly shallower state, so this order is exactly what
	// the Automaton Compiler needs to fold in suffix matches one pass,
	// regardless of how insertion order happened to number the ids.
	levelOrder []int32
}

func newRawTrie[S symbol]() *rawTrie[S] {
	t := &rawTrie[S]{}
	t.states = append(t.states, &state[S]{id: 0, children: make(map[S]int32)})
	return t
}

// insert walks symbols from the root, allocating new states as needed,
// and appends keyword to the terminal state's match list if it is not
// already present there (duplicate adds are idempotent, spec §4.2/§8.6).
func (t *rawTrie[S]) insert(symbols []S, keyword string) {
	cur := int32(0)
	for _, sym := range symbols {
		cur = t.childOrAlloc(cur, sym)
	}
	end := t.states[cur]
	for _, m := range end.matches {
		if m == keyword {
			return
		}
	}
	end.matches = append(end.matches, keyword)
}

func (t *rawTrie[S]) childOrAlloc(cur int32, sym S) int32 {
	st := t.states[cur]
	next, ok := st.children[sym]
	if ok {
		return next
	}
	next = int32(len(t.states))
	t.states = append(t.states, &state[S]{id: next, children: make(map[S]int32)})
	st.children[sym] = next
	return next
}

// computeFailLinks is the Aho-Corasick breadth-first failure-link
// assignment (spec §4.3 step 1). fold, when non-nil, lower-folds a symbol
// to the form trie edges are actually keyed under (spec §4.2 folds every
// symbol at insertion time under ignore_case), so ignore_case builds can
// probe an ancestor's transition set with an unfolded query symbol and
// still land on the lowercase-keyed edge.
func (t *rawTrie[S]) computeFailLinks(fold func(S) S) {
	root := t.states[0]
	root.fail = 0

	queue := make([]int32, 0, len(root.children))
	for _, childID := range orderedChildIDs(root) {
		queue = append(queue, childID)
	}

	t.levelOrder = t.levelOrder[:0]
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		t.levelOrder = append(t.levelOrder, id)
		s := t.states[id]

		for _, childID := range orderedChildIDs(s) {
			queue = append(queue, childID)
		}
		for sym, childID := range s.children {
			child := t.states[childID]
			child.fail = t.findFail(s.fail, sym, fold)
		}
	}
}

// findFail walks the failure chain starting at state from, looking for an
// existing edge on sym (or, when fold is set and maps sym to a distinct
// symbol, on its folded form — children are always keyed by the folded
// form under ignore_case), stopping at root if none is found.
func (t *rawTrie[S]) findFail(from int32, sym S, fold func(S) S) int32 {
	f := from
	for {
		s := t.states[f]
		if next, ok := s.children[sym]; ok {
			return next
		}
		if fold != nil {
			if g := fold(sym); g != sym {
				if next, ok := s.children[g]; ok {
					return next
				}
			}
		}
		if f == 0 {
			return 0
		}
		f = s.fail
	}
}

// orderedChildIDs returns a state's children ids sorted so BFS traversal
// order (which never affects the final failure links or match lists,
// since both are computed from ancestor state alone) is still
// deterministic end to end, keeping state ids assigned by insert order
// reproducible across runs for identical input.
func orderedChildIDs[S symbol](s *state[S]) []int32 {
	ids := make([]int32, 0, len(s.children))
	for _, id := range s.children {
		ids = append(ids, id)
	}
	// Simple insertion sort: per-state fan-out is small in practice and
	// this keeps the package free of an extra sort import here.
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
	return ids
}
