package identity

import (
	"errors"
	"testing"

	"github.com/mr-tron/base58"
	"pgregory.net/rapid"
)

func TestParseRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.SliceOfN(rapid.Byte(), KeySize, KeySize).Draw(t, "raw")
		k, err := FromBytes(raw)
		if err != nil {
			t.Fatalf("FromBytes: %v", err)
		}
		got, err := Parse(k.String())
		if err != nil {
			t.Fatalf("Parse(%q): %v", k.String(), err)
		}
		if got != k {
			t.Fatalf("round trip mismatch: %v != %v", got, k)
		}
	})
}

func TestParseRejectsBadInput(t *testing.T) {
	if _, err := Parse("0OIl"); !errors.Is(err, ErrBadEncoding) {
		t.Fatalf("expected ErrBadEncoding, got %v", err)
	}
	short := base58.Encode([]byte{1, 2, 3})
	if _, err := Parse(short); !errors.Is(err, ErrKeyLength) {
		t.Fatalf("expected ErrKeyLength, got %v", err)
	}
}

func TestNewKeysDiffer(t *testing.T) {
	a, b := New(), New()
	if a == b {
		t.Fatalf("two random keys are equal: %v", a)
	}
	if a.IsZero() {
		t.Fatalf("random key is zero")
	}
}

func TestTextMarshalling(t *testing.T) {
	k := New()
	b, err := k.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	var got Key
	if err := got.UnmarshalText(b); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if got != k {
		t.Fatalf("expected %v, got %v", k, got)
	}
}

func TestSecretDerivesStableKey(t *testing.T) {
	s := NewSecret()
	parsed, err := ParseSecret(s.String())
	if err != nil {
		t.Fatalf("ParseSecret: %v", err)
	}
	if parsed != s || parsed.Key() != s.Key() {
		t.Fatalf("secret round trip changed the derived key")
	}
	if s.Key() == Key(s) {
		t.Fatalf("public key must not equal the secret")
	}
}

func TestPublicKeyIsNotItsOwnSecret(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.SliceOfN(rapid.Byte(), KeySize, KeySize).Draw(t, "raw")
		var s Secret
		copy(s[:], raw)
		pub := s.Key()
		// presenting the public key as a secret yields a different identity
		if Secret(pub).Key() == pub {
			t.Fatalf("key %s authenticates as itself", pub)
		}
	})
}
