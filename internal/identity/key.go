// Package identity holds the opaque player identifier and the secret a
// player authenticates with.
package identity

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"

	"github.com/mr-tron/base58"
)

// KeySize is the length of a player key in bytes.
const KeySize = 32

// Errors returned when decoding keys.
var (
	ErrBadEncoding = errors.New("bad base58 key")
	ErrKeyLength   = errors.New("key length")
)

// Key identifies a player. Equality is the only operation the game needs.
type Key [KeySize]byte

// Parse decodes a base58 key.
func Parse(s string) (Key, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return Key{}, ErrBadEncoding
	}
	return FromBytes(raw)
}

// FromBytes copies a raw 32-byte key.
func FromBytes(raw []byte) (Key, error) {
	var k Key
	if len(raw) != KeySize {
		return Key{}, ErrKeyLength
	}
	copy(k[:], raw)
	return k, nil
}

// New returns a random key.
func New() Key {
	var k Key
	if _, err := rand.Read(k[:]); err != nil {
		panic("identity: crypto/rand failed: " + err.Error())
	}
	return k
}

func (k Key) String() string { return base58.Encode(k[:]) }

func (k Key) IsZero() bool { return k == Key{} }

// Short is a log-friendly prefix of the encoded key.
func (k Key) Short() string {
	s := k.String()
	if len(s) > 8 {
		return s[:8]
	}
	return s
}

func (k Key) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Key) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Secret is the credential a player presents on every request. Only the Key
// derived from it is ever shown to other players.
type Secret [KeySize]byte

// NewSecret returns a random secret.
func NewSecret() Secret { return Secret(New()) }

// ParseSecret decodes a base58 secret.
func ParseSecret(s string) (Secret, error) {
	k, err := Parse(s)
	if err != nil {
		return Secret{}, err
	}
	return Secret(k), nil
}

func (s Secret) String() string { return base58.Encode(s[:]) }

func (s Secret) IsZero() bool { return s == Secret{} }

// Key derives the public identity as SHA-256 of the secret.
func (s Secret) Key() Key { return Key(sha256.Sum256(s[:])) }
