package acmatch

// Automaton is the finalized, immutable, freely-shareable output of
// Trie.Compile (spec §3/§5). ByteAutomaton and TextAutomaton are the two
// concrete domains; keeping them as distinct types (rather than one
// runtime-checked type) means a Scanner call on the wrong domain's input
// is a compile error, not a runtime ErrDomainMismatch.
type Automaton interface {
	IgnoreCase() bool
	Domain() Domain
	StateCount() int32

	matchList(id int32) []string
}

const alphabetSize = 256

// byteTable is the dense, total transition table used for the byte
// domain: next/matchID are flattened [state*256+symbol] arrays, mirroring
// the teacher's [][256]int64 failTrans. Every (state, symbol) pair has an
// entry; unseen symbols resolve to the root with an empty match list,
// exactly as spec §4.3 step 3 requires.
type byteTable struct {
	next    []int32 // len = stateCount*256
	matchID []int32 // len = stateCount*256
}

func (b *byteTable) step(state int32, sym byte) (int32, int32) {
	i := int(state)*alphabetSize + int(sym)
	return b.next[i], b.matchID[i]
}

// ByteAutomaton is the finalized automaton for byte-domain keywords.
type ByteAutomaton struct {
	ignoreCase bool
	table      byteTable
	lists      [][]string
	numStates  int32
	// stateMatchID[i] is the interned match-list id of state i's own
	// combined match set, kept alongside the per-transition table purely
	// so serialize.go can emit the wire format's per-state match-list
	// section (spec §6) without recomputing it from scratch.
	stateMatchID []int32
}

func (a *ByteAutomaton) IgnoreCase() bool      { return a.ignoreCase }
func (a *ByteAutomaton) Domain() Domain        { return ByteDomain }
func (a *ByteAutomaton) StateCount() int32     { return a.numStates }
func (a *ByteAutomaton) matchList(id int32) []string { return a.lists[id] }

// textRow is one state's sparse, sorted transition row for the text
// domain, where the alphabet is unbounded and a dense array per state
// would waste memory (spec §9 Design Notes). Entries are sorted by
// symbol so Scanner lookups use binary search.
type textRow struct {
	symbols []rune
	next    []int32
	matchID []int32
}

func (r *textRow) lookup(sym rune) (int32, int32, bool) {
	i, ok := binarySearchRune(r.symbols, sym)
	if !ok {
		return 0, 0, false
	}
	return r.next[i], r.matchID[i], true
}

func binarySearchRune(symbols []rune, sym rune) (int, bool) {
	lo, hi := 0, len(symbols)
	for lo < hi {
		mid := (lo + hi) / 2
		if symbols[mid] < sym {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(symbols) && symbols[lo] == sym {
		return lo, true
	}
	return lo, false
}

// TextAutomaton is the finalized automaton for text-domain (rune)
// keywords.
type TextAutomaton struct {
	ignoreCase bool
	rows       []textRow
	lists      [][]string
	// stateMatchID mirrors ByteAutomaton.stateMatchID; see its doc comment.
	stateMatchID []int32
}

func (a *TextAutomaton) IgnoreCase() bool      { return a.ignoreCase }
func (a *TextAutomaton) Domain() Domain        { return TextDomain }
func (a *TextAutomaton) StateCount() int32     { return int32(len(a.rows)) }
func (a *TextAutomaton) matchList(id int32) []string { return a.lists[id] }

// step returns the destination state and match-list id for (state, sym),
// defaulting to the root with no matches when the state's row has no
// entry for sym: either sym is outside the alphabet seen at build time,
// or its goto from this state resolves to the root anyway (spec §4.3's
// total-goto guarantee, specialized to that finite alphabet).
func (a *TextAutomaton) step(state int32, sym rune) (int32, int32) {
	next, matchID, ok := a.rows[state].lookup(sym)
	if !ok {
		return 0, 0
	}
	return next, matchID
}

func compileByte(t *rawTrie[byte], ignoreCase bool) (*ByteAutomaton, error) {
	var fold func(byte) byte
	if ignoreCase {
		fold = foldByte
	}
	t.computeFailLinks(fold)
	combined := combinedMatchesFor(t)

	interner := newMatchInterner()
	matchIDOf := make([]int32, len(t.states))
	for id, list := range combined {
		matchIDOf[id] = interner.intern(list)
	}

	n := len(t.states)
	table := byteTable{
		next:    make([]int32, n*alphabetSize),
		matchID: make([]int32, n*alphabetSize),
	}
	for id := int32(0); id < int32(n); id++ {
		for sym := 0; sym < alphabetSize; sym++ {
			dest := resolveGoto(t, id, byte(sym), fold)
			i := int(id)*alphabetSize + sym
			table.next[i] = dest
			table.matchID[i] = matchIDOf[dest]
		}
	}

	return &ByteAutomaton{
		ignoreCase:   ignoreCase,
		table:        table,
		lists:        interner.lists,
		numStates:    int32(n),
		stateMatchID: matchIDOf,
	}, nil
}

func compileText(t *rawTrie[rune], ignoreCase bool) (*TextAutomaton, error) {
	var fold func(rune) rune
	var upper func(rune) (rune, bool)
	if ignoreCase {
		fold = foldRune
		upper = upperRune
	}
	t.computeFailLinks(fold)
	combined := combinedMatchesFor(t)

	interner := newMatchInterner()
	matchIDOf := make([]int32, len(t.states))
	for id, list := range combined {
		matchIDOf[id] = interner.intern(list)
	}

	alphabet := alphabetOf(t, upper)
	rows := make([]textRow, len(t.states))
	for id := int32(0); id < int32(len(t.states)); id++ {
		row := textRow{
			symbols: make([]rune, 0, len(alphabet)),
			next:    make([]int32, 0, len(alphabet)),
			matchID: make([]int32, 0, len(alphabet)),
		}
		for _, sym := range alphabet {
			dest := resolveGoto(t, id, sym, fold)
			if dest == 0 && id != 0 {
				// dest == 0 here means the failure-chain walk bottomed
				// out at root with no edge at all on sym (a root child
				// always has a nonzero id, so any match would have
				// returned it instead). That is exactly the Scanner's
				// table-miss default, so the row does not need an
				// explicit entry — root itself is always fully
				// populated below, which is the only state spec §4.3
				// step 3 requires to be total.
				continue
			}
			row.symbols = append(row.symbols, sym)
			row.next = append(row.next, dest)
			row.matchID = append(row.matchID, matchIDOf[dest])
		}
		rows[id] = row
	}

	return &TextAutomaton{
		ignoreCase:   ignoreCase,
		rows:         rows,
		lists:        interner.lists,
		stateMatchID: matchIDOf,
	}, nil
}
