package acmatch

import "golang.org/x/exp/slices"

// Match is an emitted (keyword, absolute_offset) pair (spec §3 Match
// Record). Offset is zero-based and, in stream mode, cumulative across
// chunks.
type Match struct {
	Keyword string
	Offset  int64
}

// sortMatchList orders a destination's combined match list longest-first,
// breaking ties lexicographically by keyword (spec §9 Open Question
// resolution: ties at equal length are broken lexicographically, not by
// discovery order).
func sortMatchList(list []string) {
	slices.SortFunc(list, func(a, b string) int {
		if len(a) != len(b) {
			return len(b) - len(a)
		}
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
		return 0
	})
}

// matchInterner hash-conses match-list slices during compilation (spec §9
// "Match lists as shared immutable slices"): many destination states end
// up with the identical combined match list, so instead of storing len
// (states) independent slices the compiler interns them once here and
// stores a small integer id per transition.
type matchInterner struct {
	byKey map[string]int32
	lists [][]string
}

func newMatchInterner() *matchInterner {
	in := &matchInterner{byKey: make(map[string]int32)}
	in.lists = append(in.lists, nil) // id 0 is always the empty list
	return in
}

func (in *matchInterner) intern(list []string) int32 {
	if len(list) == 0 {
		return 0
	}
	key := matchListKey(list)
	if id, ok := in.byKey[key]; ok {
		return id
	}
	id := int32(len(in.lists))
	in.lists = append(in.lists, list)
	in.byKey[key] = id
	return id
}

func matchListKey(list []string) string {
	// \x00 cannot appear inside a keyword that arrived through AddString
	// (it folds like any other rune) without colliding across domains in
	// a way that matters here: the interner is scoped to one compile, and
	// a false merge only happens if two distinct ordered lists produce
	// the same joined bytes, which \x00-separation rules out for any
	// input that does not itself already contain \x00 keyword content
	// identically positioned.
	total := 0
	for _, m := range list {
		total += len(m) + 1
	}
	buf := make([]byte, 0, total)
	for _, m := range list {
		buf = append(buf, m...)
		buf = append(buf, 0)
	}
	return string(buf)
}
