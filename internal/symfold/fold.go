// Package symfold implements the simple case-folding rules used by the
// byte-mode and text-mode automaton builders. Folding here is always
// "simple" in the Unicode sense: one code point maps to one code point,
// with no locale awareness and no multi-character expansion.
package symfold

import "unicode"

// FoldByte returns the ASCII lowercase form of b. Bytes outside 'A'-'Z'
// are returned unchanged: only the ASCII range is case-stable-or-not by
// definition here, non-ASCII bytes are always left alone.
func FoldByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

// UpperByte returns the ASCII uppercase counterpart of b and whether one
// exists and differs from b. Only 'a'-'z' have a distinct uppercase form
// under the ASCII folding rule in use here.
func UpperByte(b byte) (byte, bool) {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A'), true
	}
	return b, false
}

// FoldRune returns the simple lowercase mapping of r.
func FoldRune(r rune) rune {
	return unicode.ToLower(r)
}

// UpperRune returns the simple uppercase mapping of r and whether it
// differs from r. r is assumed to already be in folded (lowercase) form,
// matching how the trie builder folds symbols at insertion time.
func UpperRune(r rune) (rune, bool) {
	u := unicode.ToUpper(r)
	return u, u != r
}
