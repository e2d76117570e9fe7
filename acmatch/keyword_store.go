package acmatch

import "github.com/scoder/multikey/internal/symfold"

// KeywordStore accumulates keywords of a single domain with a chosen
// case-sensitivity flag (spec §4.1). It is single-owner and mutable: no
// concurrent Add calls, matching the teacher's unsynchronized TrieBuilder.
type KeywordStore struct {
	ignoreCase bool
	domain     Domain
	byteTrie   *rawTrie[byte]
	textTrie   *rawTrie[rune]
}

// NewKeywordStore creates an empty store. ignoreCase governs whether
// symbols are folded at insertion time; the domain (byte xor text) is
// fixed by whichever of Add/AddString is called first.
func NewKeywordStore(ignoreCase bool) *KeywordStore {
	return &KeywordStore{ignoreCase: ignoreCase, domain: domainUnset}
}

// Add appends a byte-domain keyword. Fails with ErrEmptyKeyword if k is
// empty, or ErrDomainMismatch if a text keyword was added earlier.
func (s *KeywordStore) Add(k []byte) error {
	if len(k) == 0 {
		return ErrEmptyKeyword
	}
	if err := s.fixDomain(ByteDomain); err != nil {
		return err
	}
	if s.byteTrie == nil {
		s.byteTrie = newRawTrie[byte]()
	}
	folded := k
	if s.ignoreCase {
		folded = make([]byte, len(k))
		for i, b := range k {
			folded[i] = symfold.FoldByte(b)
		}
	}
	s.byteTrie.insert(folded, string(k))
	return nil
}

// AddString appends a text-domain keyword (interpreted as code points).
// Fails with ErrEmptyKeyword if k is empty, or ErrDomainMismatch if a
// byte keyword was added earlier.
func (s *KeywordStore) AddString(k string) error {
	runes := []rune(k)
	if len(runes) == 0 {
		return ErrEmptyKeyword
	}
	if err := s.fixDomain(TextDomain); err != nil {
		return err
	}
	if s.textTrie == nil {
		s.textTrie = newRawTrie[rune]()
	}
	folded := runes
	if s.ignoreCase {
		folded = make([]rune, len(runes))
		for i, r := range runes {
			folded[i] = symfold.FoldRune(r)
		}
	}
	s.textTrie.insert(folded, k)
	return nil
}

func (s *KeywordStore) fixDomain(d Domain) error {
	if s.domain == domainUnset {
		s.domain = d
		return nil
	}
	if s.domain != d {
		return ErrDomainMismatch
	}
	return nil
}

// Trie is the frozen, read-only output of a KeywordStore: the prefix
// trie the Automaton Compiler consumes (spec §4.1/§4.3). Freezing does
// not invalidate the KeywordStore. The Trie shares the store's keyword
// storage rather than copying it: Add calls made after Freeze also show
// up in a Trie frozen earlier. An Automaton already compiled is not
// affected by later Add calls.
type Trie struct {
	ignoreCase bool
	domain     Domain
	byteTrie   *rawTrie[byte]
	textTrie   *rawTrie[rune]
}

// Freeze returns the accumulated trie. An empty store freezes to an
// empty, domain-less trie (ByteDomain is used as the degenerate default);
// Compile on it yields a single-root automaton with no
// transitions and zero matches — permitted, not an error (spec §4.3).
func (s *KeywordStore) Freeze() (*Trie, error) {
	domain := s.domain
	if domain == domainUnset {
		domain = ByteDomain
	}
	t := &Trie{ignoreCase: s.ignoreCase, domain: domain}
	switch domain {
	case ByteDomain:
		if s.byteTrie != nil {
			t.byteTrie = s.byteTrie
		} else {
			t.byteTrie = newRawTrie[byte]()
		}
	case TextDomain:
		if s.textTrie != nil {
			t.textTrie = s.textTrie
		} else {
			t.textTrie = newRawTrie[rune]()
		}
	}
	return t, nil
}

// Builder is the convenience front door described in spec §6: construct,
// Add/AddString repeatedly, Build. It is a thin wrapper over
// KeywordStore+Trie.Compile, kept separate from KeywordStore because the
// spec names Keyword Store, Trie Builder and Automaton Compiler as
// distinct components with their own operations (§4.1-§4.3); Builder
// exists purely as sugar for callers who don't need the staged API.
type Builder struct {
	store *KeywordStore
}

// NewBuilder creates a Builder. ignoreCase enables case-insensitive
// search; see KeywordStore for domain/casing rules.
func NewBuilder(ignoreCase bool) *Builder {
	return &Builder{store: NewKeywordStore(ignoreCase)}
}

// Add is equivalent to KeywordStore.Add.
func (b *Builder) Add(k []byte) error { return b.store.Add(k) }

// AddString is equivalent to KeywordStore.AddString.
func (b *Builder) AddString(k string) error { return b.store.AddString(k) }

// Build freezes the store and compiles the finalized Automaton.
func (b *Builder) Build() (Automaton, error) {
	trie, err := b.store.Freeze()
	if err != nil {
		return nil, err
	}
	return trie.Compile()
}
