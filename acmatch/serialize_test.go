package acmatch

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodeDecodeRoundTripByte(t *testing.T) {
	a := buildBytes(t, false, "he", "she", "his", "hers")
	input := []byte("ushershehis")
	want := a.FindAll(input)

	var buf bytes.Buffer
	if err := Encode(&buf, a); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	db, ok := decoded.(*ByteAutomaton)
	if !ok {
		t.Fatalf("Decode() = %T; want *ByteAutomaton", decoded)
	}
	if db.IgnoreCase() != a.IgnoreCase() {
		t.Errorf("IgnoreCase() = %v; want %v", db.IgnoreCase(), a.IgnoreCase())
	}
	got := db.FindAll(input)
	assertMatchesEqual(t, got, want)
}

func TestEncodeDecodeRoundTripText(t *testing.T) {
	a := buildText(t, true, "a", "ab", "abc", "abcd")
	input := "ABCDabcdAbCd"
	want := a.FindAllString(input)

	var buf bytes.Buffer
	if err := Encode(&buf, a); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	dt, ok := decoded.(*TextAutomaton)
	if !ok {
		t.Fatalf("Decode() = %T; want *TextAutomaton", decoded)
	}
	got := dt.FindAllString(input)
	assertMatchesEqual(t, got, want)
}

func TestDecodeCorruptMagic(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("XXXX\x00\x00\x00\x00\x00")))
	if !errors.Is(err, ErrCorruptSerialization) {
		t.Errorf("Decode(bad magic) = %v; want ErrCorruptSerialization", err)
	}
}

func TestDecodeTruncated(t *testing.T) {
	a := buildBytes(t, false, "abc")
	var buf bytes.Buffer
	if err := Encode(&buf, a); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	truncated := buf.Bytes()[:buf.Len()/2]
	_, err := Decode(bytes.NewReader(truncated))
	if !errors.Is(err, ErrCorruptSerialization) {
		t.Errorf("Decode(truncated) = %v; want ErrCorruptSerialization", err)
	}
}
