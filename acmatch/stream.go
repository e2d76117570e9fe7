package acmatch

import (
	"bufio"
	"fmt"
	"io"
	"iter"
)

// DefaultChunkSize is the Stream Driver's default fixed read size (spec
// §4.5).
const DefaultChunkSize = 32 * 1024

// chunkReader caps every Read on r at n bytes. bufio.Reader enforces a
// minimum buffer size of 16 bytes, so the cap is applied to the source
// itself to keep chunk sizes below that honored.
type chunkReader struct {
	r io.Reader
	n int
}

func (c chunkReader) Read(p []byte) (int, error) {
	if len(p) > c.n {
		p = p[:c.n]
	}
	return c.r.Read(p)
}

// StreamFindIter wraps FindIter with a fixed-size read loop over r (the
// "abstract byte-chunk iterator" of spec §1/§4.5 — a bufio.Reader over r
// is the idiomatic Go shape for it: it requests at most chunkSize bytes
// at a time from the underlying source and hands the scanner one symbol
// at a time from that buffer). The automaton's state persists across
// chunks, so a keyword straddling a chunk boundary is still detected, and
// emitted offsets are cumulative across the whole stream.
//
// Any error from r other than io.EOF is wrapped in ErrStreamRead and
// yielded as the final element; the driver never retries. A consumer
// that stops ranging early leaves nothing to clean up.
func (a *ByteAutomaton) StreamFindIter(r io.Reader, chunkSize int) iter.Seq2[Match, error] {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	br := bufio.NewReaderSize(chunkReader{r, chunkSize}, chunkSize)

	return func(yield func(Match, error) bool) {
		state := int32(0)
		var pos int64

		for {
			b, err := br.ReadByte()
			if err != nil {
				if err != io.EOF {
					yield(Match{}, fmt.Errorf("%w: %w", ErrStreamRead, err))
				}
				return
			}
			next, matchID := a.table.step(state, b)
			state = next
			pos++
			for _, kw := range a.lists[matchID] {
				off := pos - int64(len(kw))
				if !yield(Match{Keyword: kw, Offset: off}, nil) {
					return
				}
			}
		}
	}
}

// StreamFindIter is the text-domain counterpart of
// ByteAutomaton.StreamFindIter. Runes are decoded with bufio.Reader's
// ReadRune, which already handles a UTF-8 sequence split across the
// underlying source's chunk boundary, so offsets stay correct without any
// extra bookkeeping here beyond the running code-point count.
func (a *TextAutomaton) StreamFindIter(r io.Reader, chunkSize int) iter.Seq2[Match, error] {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	br := bufio.NewReaderSize(chunkReader{r, chunkSize}, chunkSize)

	return func(yield func(Match, error) bool) {
		state := int32(0)
		var pos int64

		for {
			sym, _, err := br.ReadRune()
			if err != nil {
				if err != io.EOF {
					yield(Match{}, fmt.Errorf("%w: %w", ErrStreamRead, err))
				}
				return
			}
			next, matchID := a.step(state, sym)
			state = next
			pos++
			for _, kw := range a.lists[matchID] {
				kwLen := int64(len([]rune(kw)))
				if !yield(Match{Keyword: kw, Offset: pos - kwLen}, nil) {
					return
				}
			}
		}
	}
}
