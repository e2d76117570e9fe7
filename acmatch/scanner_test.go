package acmatch

import (
	"testing"
)

func buildText(t *testing.T, ignoreCase bool, keywords ...string) *TextAutomaton {
	t.Helper()
	b := NewBuilder(ignoreCase)
	for _, k := range keywords {
		if err := b.AddString(k); err != nil {
			t.Fatalf("AddString(%q): %v", k, err)
		}
	}
	a, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	ta, ok := a.(*TextAutomaton)
	if !ok {
		t.Fatalf("Build() = %T; want *TextAutomaton", a)
	}
	return ta
}

func buildBytes(t *testing.T, ignoreCase bool, keywords ...string) *ByteAutomaton {
	t.Helper()
	b := NewBuilder(ignoreCase)
	for _, k := range keywords {
		if err := b.Add([]byte(k)); err != nil {
			t.Fatalf("Add(%q): %v", k, err)
		}
	}
	a, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	ba, ok := a.(*ByteAutomaton)
	if !ok {
		t.Fatalf("Build() = %T; want *ByteAutomaton", a)
	}
	return ba
}

// TestScenarios exercises spec §8's concrete end-to-end table, scenarios 1-5
// (6 is covered separately in TestScenarioSix since it needs a generated
// input).
func TestScenarios(t *testing.T) {
	tests := []struct {
		name       string
		keywords   []string
		ignoreCase bool
		input      string
		want       []Match
	}{
		{
			name:     "scenario 1",
			keywords: []string{"ab", "bc", "de", "a", "b"},
			input:    "abc",
			want: []Match{
				{"a", 0}, {"ab", 0}, {"b", 1}, {"bc", 1},
			},
		},
		{
			name:     "scenario 2",
			keywords: []string{"ab", "bc", "de", "a", "b"},
			input:    "abde",
			want: []Match{
				{"a", 0}, {"ab", 0}, {"b", 1}, {"de", 2},
			},
		},
		{
			name:     "scenario 3",
			keywords: []string{"a", "ab", "abc", "abcd"},
			input:    "abcd",
			want: []Match{
				{"a", 0}, {"ab", 0}, {"abc", 0}, {"abcd", 0},
			},
		},
		{
			name:     "scenario 4",
			keywords: []string{"d", "cd", "bcd", "abcd"},
			input:    "abcd",
			want: []Match{
				{"abcd", 0}, {"bcd", 1}, {"cd", 2}, {"d", 3},
			},
		},
		{
			name:       "scenario 5 ignore_case",
			keywords:   []string{"a", "b", "c", "d"},
			ignoreCase: true,
			input:      "AaBbCcDd",
			want: []Match{
				{"a", 0}, {"a", 1}, {"b", 2}, {"b", 3},
				{"c", 4}, {"c", 5}, {"d", 6}, {"d", 7},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := buildText(t, tt.ignoreCase, tt.keywords...)
			got := a.FindAllString(tt.input)
			assertMatchesEqual(t, got, tt.want)
		})
	}
}

// TestScenarioSix is spec §8 scenario 6, byte mode, with a long input that
// forces the automaton through a large overlapping run before the final
// match.
func TestScenarioSix(t *testing.T) {
	a := buildBytes(t, false, "abc", "abcde")

	var middle []byte
	for i := 0; i < 1000; i++ {
		for j := 0; j < 100; j++ {
			middle = append(middle, 'a')
		}
		for j := 0; j < 100; j++ {
			middle = append(middle, 'b')
		}
	}
	input := append([]byte("abc"), middle...)
	input = append(input, []byte("abcde")...)
	L := int64(len(input))

	got := a.FindAll(input)
	want := []Match{
		{"abc", 0},
		{"abc", L - 5},
		{"abcde", L - 5},
	}
	assertMatchesEqual(t, got, want)
}

func TestBoundaryEmptyInput(t *testing.T) {
	a := buildText(t, false, "a", "ab")
	if got := a.FindAllString(""); len(got) != 0 {
		t.Errorf("FindAllString(\"\") = %v; want none", got)
	}
}

func TestBoundaryKeywordEqualsWholeInput(t *testing.T) {
	a := buildText(t, false, "hello")
	got := a.FindAllString("hello")
	assertMatchesEqual(t, got, []Match{{"hello", 0}})
}

func TestBoundaryKeywordLongerThanInput(t *testing.T) {
	a := buildText(t, false, "helloworld")
	if got := a.FindAllString("hello"); len(got) != 0 {
		t.Errorf("FindAllString(\"hello\") = %v; want none (keyword longer than input)", got)
	}
}

func TestOverlapAllSuffixesReported(t *testing.T) {
	a := buildText(t, false, "a", "na", "ana", "banana")
	got := a.FindAllString("banana")
	assertSoundAndComplete(t, []string{"a", "na", "ana", "banana"}, "banana", got)
}

func TestOrderingNonDecreasingEndPositionLongestFirst(t *testing.T) {
	a := buildText(t, false, "a", "ab", "abc", "abcd")
	got := a.FindAllString("abcd")
	lastEnd := int64(-1)
	for i, m := range got {
		end := m.Offset + int64(len([]rune(m.Keyword)))
		if end < lastEnd {
			t.Fatalf("match %d (%v) out of order: end %d < previous end %d", i, m, end, lastEnd)
		}
		if end == lastEnd && i > 0 && len([]rune(got[i-1].Keyword)) < len([]rune(m.Keyword)) {
			t.Fatalf("match %d (%v) same end position as previous but not longest-first", i, m)
		}
		lastEnd = end
	}
}

func TestIgnoreCaseFoldCorrectness(t *testing.T) {
	a := buildText(t, true, "needle")
	got := a.FindAllString("a NEEDLE in a haystack, another Needle here")
	want := []Match{{"needle", 2}, {"needle", 32}}
	assertMatchesEqual(t, got, want)
}

func assertMatchesEqual(t *testing.T, got, want []Match) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v; want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("match %d: got %v; want %v (full got=%v want=%v)", i, got[i], want[i], got, want)
		}
	}
}

// assertSoundAndComplete checks spec §8 properties 1/2/3 for an arbitrary
// set of ASCII keywords against a plain input: every reported match is a
// real occurrence (soundness), every real occurrence is reported exactly
// once (completeness), and offsets are non-decreasing in end position.
func assertSoundAndComplete(t *testing.T, keywords []string, input string, got []Match) {
	t.Helper()
	want := map[Match]int{}
	for _, k := range keywords {
		kr := []rune(k)
		ir := []rune(input)
		for o := 0; o+len(kr) <= len(ir); o++ {
			if string(ir[o:o+len(kr)]) == k {
				want[Match{k, int64(o)}]++
			}
		}
	}
	gotCount := map[Match]int{}
	lastEnd := int64(-1)
	for _, m := range got {
		gotCount[m]++
		end := m.Offset + int64(len([]rune(m.Keyword)))
		if end < lastEnd {
			t.Fatalf("ordering violated at %v (end %d < previous end %d)", m, end, lastEnd)
		}
		lastEnd = end
	}
	for m, n := range want {
		if gotCount[m] != n {
			t.Errorf("match %v: got count %d; want %d", m, gotCount[m], n)
		}
	}
	for m, n := range gotCount {
		if want[m] != n {
			t.Errorf("unsound match %v emitted %d times; input does not contain it that many times", m, n)
		}
	}
}

func TestFindIterEarlyBreak(t *testing.T) {
	a := buildText(t, false, "a", "ab", "abc")
	count := 0
	for range a.FindIter([]rune("abcabcabc")) {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Fatalf("early break: got %d iterations; want 2", count)
	}
}
