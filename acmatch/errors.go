package acmatch

import "errors"

// Sentinel errors surfaced by the core. Callers should compare against
// these with errors.Is, not string-match messages.
var (
	// ErrEmptyKeyword is returned by Add/AddString for a zero-length keyword.
	ErrEmptyKeyword = errors.New("acmatch: empty keyword")

	// ErrDomainMismatch is returned when a byte keyword and a text keyword
	// are added to the same Builder/KeywordStore.
	ErrDomainMismatch = errors.New("acmatch: mixed byte and text keywords in one builder")

	// ErrCaseFoldingUnsupported is reserved for a domain/casing combination
	// the builder cannot fold safely. The Go construction path never
	// raises it for the exported API (byte-mode ignore_case always falls
	// back to ASCII-only folding, see internal/symfold), but it is kept as
	// part of the public error surface for callers that plug in their own
	// domain validation.
	ErrCaseFoldingUnsupported = errors.New("acmatch: case folding unsupported for this domain")

	// ErrStreamRead wraps a failure from the io.Reader given to
	// StreamFindIter; the reader's own error is wrapped too. The driver never
	// retries; it surfaces the error after yielding whatever matches were
	// already found.
	ErrStreamRead = errors.New("acmatch: stream read failed")

	// ErrCorruptSerialization is returned by Decode when the magic,
	// version, or internal structure of a buffer fails validation.
	ErrCorruptSerialization = errors.New("acmatch: corrupt serialization")
)
