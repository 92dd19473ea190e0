package casper

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/sha256"
	"crypto/x509"
	"encoding/asn1"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
)

var ErrUnsupportedKey = errors.New("unsupported private key")

// PrivateKey signs deploy hashes for a single account
type PrivateKey interface {
	PublicKey() PublicKey
	// Sign returns the raw 64-byte signature over a deploy hash
	Sign(hash []byte) ([]byte, error)
}

type ed25519Key struct {
	key ed25519.PrivateKey
	pub PublicKey
}

// NewEd25519Key wraps an ed25519 private key
func NewEd25519Key(key ed25519.PrivateKey) PrivateKey {
	raw := key.Public().(ed25519.PublicKey)
	return &ed25519Key{
		key: key,
		pub: PublicKey{Algorithm: KeyAlgorithmEd25519, Raw: append([]byte(nil), raw...)},
	}
}

func (k *ed25519Key) PublicKey() PublicKey {
	return k.pub
}

func (k *ed25519Key) Sign(hash []byte) ([]byte, error) {
	return ed25519.Sign(k.key, hash), nil
}

type secp256k1Key struct {
	key *ecdsa.PrivateKey
	pub PublicKey
}

// NewSecp256k1Key wraps a secp256k1 private key
func NewSecp256k1Key(key *ecdsa.PrivateKey) PrivateKey {
	return &secp256k1Key{
		key: key,
		pub: PublicKey{Algorithm: KeyAlgorithmSecp256k1, Raw: crypto.CompressPubkey(&key.PublicKey)},
	}
}

func (k *secp256k1Key) PublicKey() PublicKey {
	return k.pub
}

// Sign signs sha256(hash) and drops the recovery byte, leaving the compact r||s form
func (k *secp256k1Key) Sign(hash []byte) ([]byte, error) {
	digest := sha256.Sum256(hash)
	sig, err := crypto.Sign(digest[:], k.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign with secp256k1 key: %w", err)
	}
	return sig[:SignatureSize], nil
}

// VerifySignature checks a raw signature over a deploy hash
func VerifySignature(pub PublicKey, hash, sig []byte) bool {
	if len(sig) != SignatureSize {
		return false
	}
	switch pub.Algorithm {
	case KeyAlgorithmEd25519:
		return ed25519.Verify(ed25519.PublicKey(pub.Raw), hash, sig)
	case KeyAlgorithmSecp256k1:
		digest := sha256.Sum256(hash)
		return crypto.VerifySignature(pub.Raw, digest[:], sig)
	default:
		return false
	}
}

// sec1PrivateKey mirrors the RFC 5915 EC private key structure
type sec1PrivateKey struct {
	Version       int
	PrivateKey    []byte
	NamedCurveOID asn1.ObjectIdentifier `asn1:"optional,explicit,tag:0"`
	PublicKey     asn1.BitString        `asn1:"optional,explicit,tag:1"`
}

// ParsePrivateKeyPEM parses the secret key files produced by casper-client keygen:
// PKCS#8 "PRIVATE KEY" for ed25519 and SEC1 "EC PRIVATE KEY" for secp256k1
func ParsePrivateKeyPEM(data []byte) (PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", ErrUnsupportedKey)
	}

	switch block.Type {
	case "PRIVATE KEY":
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedKey, err)
		}
		edKey, ok := key.(ed25519.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: PKCS#8 key is %T", ErrUnsupportedKey, key)
		}
		return NewEd25519Key(edKey), nil
	case "EC PRIVATE KEY":
		var sec1 sec1PrivateKey
		if _, err := asn1.Unmarshal(block.Bytes, &sec1); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedKey, err)
		}
		ecKey, err := crypto.ToECDSA(sec1.PrivateKey)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedKey, err)
		}
		return NewSecp256k1Key(ecKey), nil
	default:
		return nil, fmt.Errorf("%w: PEM type %q", ErrUnsupportedKey, block.Type)
	}
}
