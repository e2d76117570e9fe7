package acmatch

import (
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/exp/slices"
)

var wireMagic = [4]byte{'A', 'C', '0', '1'}

const (
	flagIgnoreCase byte = 1 << 0
	flagTextMode   byte = 1 << 1
)

// Encode serializes a finalized Automaton to w in the wire layout fixed
// by spec §6: magic, flags, a per-state match-list section, then a flat
// transition list. The per-state section is the "shared pool" every
// transition's match_list_index points into — state i's entry there is
// exactly state i's own combined match list (spec §4.3's suffix-match
// propagation already folded in), so a transition's match_list_index is
// simply its destination state id.
func Encode(w io.Writer, a Automaton) error {
	if err := writeAll(w, wireMagic[:]); err != nil {
		return err
	}
	var flags byte
	if a.IgnoreCase() {
		flags |= flagIgnoreCase
	}
	if a.Domain() == TextDomain {
		flags |= flagTextMode
	}
	if err := writeAll(w, []byte{flags}); err != nil {
		return err
	}

	stateCount := a.StateCount()
	if err := writeU32(w, uint32(stateCount)); err != nil {
		return err
	}

	stateMatchID := stateMatchIDsOf(a)
	for i := int32(0); i < stateCount; i++ {
		list := a.matchList(stateMatchID[i])
		if err := writeU32(w, uint32(len(list))); err != nil {
			return err
		}
		for _, kw := range list {
			b := []byte(kw)
			if err := writeU32(w, uint32(len(b))); err != nil {
				return err
			}
			if err := writeAll(w, b); err != nil {
				return err
			}
		}
	}

	switch at := a.(type) {
	case *ByteAutomaton:
		return encodeByteTransitions(w, at)
	case *TextAutomaton:
		return encodeTextTransitions(w, at)
	default:
		return fmt.Errorf("acmatch: unknown automaton type %T", a)
	}
}

func stateMatchIDsOf(a Automaton) []int32 {
	switch at := a.(type) {
	case *ByteAutomaton:
		return at.stateMatchID
	case *TextAutomaton:
		return at.stateMatchID
	default:
		return nil
	}
}

func encodeByteTransitions(w io.Writer, a *ByteAutomaton) error {
	count := uint32(a.numStates) * alphabetSize
	if err := writeU32(w, count); err != nil {
		return err
	}
	for state := int32(0); state < a.numStates; state++ {
		for sym := 0; sym < alphabetSize; sym++ {
			dest, _ := a.table.step(state, byte(sym))
			if err := writeU32(w, uint32(state)); err != nil {
				return err
			}
			if err := writeAll(w, []byte{byte(sym)}); err != nil {
				return err
			}
			if err := writeU32(w, uint32(dest)); err != nil {
				return err
			}
			if err := writeU32(w, uint32(dest)); err != nil { // match_list_index
				return err
			}
		}
	}
	return nil
}

func encodeTextTransitions(w io.Writer, a *TextAutomaton) error {
	count := 0
	for _, row := range a.rows {
		count += len(row.symbols)
	}
	if err := writeU32(w, uint32(count)); err != nil {
		return err
	}
	for state, row := range a.rows {
		for i, sym := range row.symbols {
			if err := writeU32(w, uint32(state)); err != nil {
				return err
			}
			if err := writeU32(w, uint32(sym)); err != nil {
				return err
			}
			dest := row.next[i]
			if err := writeU32(w, uint32(dest)); err != nil {
				return err
			}
			if err := writeU32(w, uint32(dest)); err != nil { // match_list_index
				return err
			}
		}
	}
	return nil
}

// Decode reconstructs an Automaton from the layout Encode writes.
func Decode(r io.Reader) (Automaton, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSerialization, err)
	}
	if magic != wireMagic {
		return nil, fmt.Errorf("%w: bad magic", ErrCorruptSerialization)
	}

	var flagsBuf [1]byte
	if _, err := io.ReadFull(r, flagsBuf[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSerialization, err)
	}
	flags := flagsBuf[0]
	ignoreCase := flags&flagIgnoreCase != 0
	textMode := flags&flagTextMode != 0

	stateCount, err := readU32(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSerialization, err)
	}

	pool := make([][]string, int(stateCount))
	for i := range pool {
		matchCount, err := readU32(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptSerialization, err)
		}
		list := make([]string, matchCount)
		for j := range list {
			kwLen, err := readU32(r)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrCorruptSerialization, err)
			}
			buf := make([]byte, kwLen)
			if _, err := io.ReadFull(r, buf); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrCorruptSerialization, err)
			}
			list[j] = string(buf)
		}
		pool[i] = list
	}

	transitionCount, err := readU32(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSerialization, err)
	}

	if textMode {
		return decodeTextAutomaton(r, ignoreCase, pool, transitionCount)
	}
	return decodeByteAutomaton(r, ignoreCase, pool, transitionCount)
}

func decodeByteAutomaton(r io.Reader, ignoreCase bool, pool [][]string, transitionCount uint32) (*ByteAutomaton, error) {
	n := len(pool)
	table := byteTable{
		next:    make([]int32, n*alphabetSize),
		matchID: make([]int32, n*alphabetSize),
	}
	for k := uint32(0); k < transitionCount; k++ {
		source, err := readU32(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptSerialization, err)
		}
		var symBuf [1]byte
		if _, err := io.ReadFull(r, symBuf[:]); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptSerialization, err)
		}
		dest, err := readU32(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptSerialization, err)
		}
		matchIdx, err := readU32(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptSerialization, err)
		}
		if int(source) >= n || int(dest) >= n || int(matchIdx) >= n {
			return nil, fmt.Errorf("%w: transition out of range", ErrCorruptSerialization)
		}
		i := int(source)*alphabetSize + int(symBuf[0])
		table.next[i] = int32(dest)
		table.matchID[i] = int32(matchIdx) // placeholder, replaced with interned id below
	}

	a := &ByteAutomaton{
		ignoreCase: ignoreCase,
		table:      table,
		numStates:  int32(n),
	}
	internPool(a, pool)
	return a, nil
}

func decodeTextAutomaton(r io.Reader, ignoreCase bool, pool [][]string, transitionCount uint32) (*TextAutomaton, error) {
	n := len(pool)
	type rawEntry struct {
		sym  rune
		next int32
		midx int32
	}
	byState := make([][]rawEntry, n)
	for k := uint32(0); k < transitionCount; k++ {
		source, err := readU32(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptSerialization, err)
		}
		sym, err := readU32(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptSerialization, err)
		}
		dest, err := readU32(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptSerialization, err)
		}
		matchIdx, err := readU32(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptSerialization, err)
		}
		if int(source) >= n || int(dest) >= n || int(matchIdx) >= n {
			return nil, fmt.Errorf("%w: transition out of range", ErrCorruptSerialization)
		}
		byState[source] = append(byState[source], rawEntry{sym: rune(sym), next: int32(dest), midx: int32(matchIdx)})
	}

	rows := make([]textRow, n)
	for i, entries := range byState {
		slices.SortFunc(entries, func(a, b rawEntry) int { return int(a.sym) - int(b.sym) })
		row := textRow{
			symbols: make([]rune, len(entries)),
			next:    make([]int32, len(entries)),
			matchID: make([]int32, len(entries)),
		}
		for j, e := range entries {
			row.symbols[j] = e.sym
			row.next[j] = e.next
			row.matchID[j] = e.midx // placeholder, replaced with interned id below
		}
		rows[i] = row
	}

	a := &TextAutomaton{ignoreCase: ignoreCase, rows: rows}
	internPool(a, pool)
	return a, nil
}

// internPool rebuilds the hash-consed match-list pool (spec §9) from the
// wire format's flat per-state list and rewrites every matchID that, on
// the wire, was simply a destination-state index into the interned id
// the in-memory Automaton actually uses.
func internPool(a Automaton, pool [][]string) {
	interner := newMatchInterner()
	stateMatchID := make([]int32, len(pool))
	for i, list := range pool {
		stateMatchID[i] = interner.intern(list)
	}

	switch at := a.(type) {
	case *ByteAutomaton:
		at.lists = interner.lists
		at.stateMatchID = stateMatchID
		for i := range at.table.matchID {
			at.table.matchID[i] = stateMatchID[at.table.matchID[i]]
		}
	case *TextAutomaton:
		at.lists = interner.lists
		at.stateMatchID = stateMatchID
		for s := range at.rows {
			row := &at.rows[s]
			for i := range row.matchID {
				row.matchID[i] = stateMatchID[row.matchID[i]]
			}
		}
	}
}

func writeAll(w io.Writer, b []byte) error {
	_, err := w.Write(b)
	return err
}

func writeU32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return writeAll(w, buf[:])
}

func readU32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}
