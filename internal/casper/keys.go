package casper

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// KeyAlgorithm identifies the signature scheme of an account key.
// Its value is the tag byte prepended to public keys and signatures.
type KeyAlgorithm byte

const (
	KeyAlgorithmEd25519   KeyAlgorithm = 0x01
	KeyAlgorithmSecp256k1 KeyAlgorithm = 0x02
)

const (
	ed25519PublicKeySize   = 32
	secp256k1PublicKeySize = 33
)

var ErrInvalidPublicKey = errors.New("invalid public key")

// String returns the lowercase algorithm name used in account hash derivation
func (a KeyAlgorithm) String() string {
	switch a {
	case KeyAlgorithmEd25519:
		return "ed25519"
	case KeyAlgorithmSecp256k1:
		return "secp256k1"
	default:
		return fmt.Sprintf("unknown(%d)", byte(a))
	}
}

func (a KeyAlgorithm) publicKeySize() int {
	switch a {
	case KeyAlgorithmEd25519:
		return ed25519PublicKeySize
	case KeyAlgorithmSecp256k1:
		return secp256k1PublicKeySize
	default:
		return 0
	}
}

// PublicKey is a tagged account public key
type PublicKey struct {
	Algorithm KeyAlgorithm
	Raw       []byte
}

// NewPublicKey validates the raw key length for the algorithm
func NewPublicKey(algo KeyAlgorithm, raw []byte) (PublicKey, error) {
	size := algo.publicKeySize()
	if size == 0 {
		return PublicKey{}, fmt.Errorf("%w: unsupported algorithm tag %d", ErrInvalidPublicKey, byte(algo))
	}
	if len(raw) != size {
		return PublicKey{}, fmt.Errorf("%w: %s key must be %d bytes, got %d", ErrInvalidPublicKey, algo, size, len(raw))
	}
	return PublicKey{Algorithm: algo, Raw: append([]byte(nil), raw...)}, nil
}

// ParsePublicKeyHex parses a tagged public key such as "01<64 hex>" or "02<66 hex>"
func ParsePublicKeyHex(s string) (PublicKey, error) {
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return PublicKey{}, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	if len(b) < 1 {
		return PublicKey{}, fmt.Errorf("%w: empty key", ErrInvalidPublicKey)
	}
	return NewPublicKey(KeyAlgorithm(b[0]), b[1:])
}

// Bytes returns the tag byte followed by the raw key
func (p PublicKey) Bytes() []byte {
	return append([]byte{byte(p.Algorithm)}, p.Raw...)
}

// Hex returns the lowercase tagged hex encoding
func (p PublicKey) Hex() string {
	return hex.EncodeToString(p.Bytes())
}

func (p PublicKey) String() string {
	return p.Hex()
}

// IsZero reports whether the key is unset
func (p PublicKey) IsZero() bool {
	return len(p.Raw) == 0
}

// AccountHash derives blake2b256(algorithm name || 0x00 || raw key)
func (p PublicKey) AccountHash() [32]byte {
	data := make([]byte, 0, len(p.Algorithm.String())+1+len(p.Raw))
	data = append(data, []byte(p.Algorithm.String())...)
	data = append(data, 0x00)
	data = append(data, p.Raw...)
	return blake2b.Sum256(data)
}

// AccountHashString formats the account hash the way the node prints it
func (p PublicKey) AccountHashString() string {
	h := p.AccountHash()
	return "account-hash-" + hex.EncodeToString(h[:])
}

// ParseHash parses a 32-byte hex hash, accepting the "hash-", "contract-" and
// "contract-package-" prefixes used by explorers and node output
func ParseHash(s string) ([32]byte, error) {
	var out [32]byte
	s = strings.TrimSpace(s)
	for _, prefix := range []string{"contract-package-", "contract-", "hash-"} {
		if strings.HasPrefix(s, prefix) {
			s = strings.TrimPrefix(s, prefix)
			break
		}
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return out, fmt.Errorf("invalid hash %q: %w", s, err)
	}
	if len(b) != len(out) {
		return out, fmt.Errorf("invalid hash %q: expected 32 bytes, got %d", s, len(b))
	}
	copy(out[:], b)
	return out, nil
}
