package casper

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// SignatureSize is the length of a raw ed25519 or compact secp256k1 signature
const SignatureSize = 64

var ErrInvalidSignature = errors.New("invalid signature")

// EncodeApprovalSignature returns the hex signature stored in a deploy approval.
//
// Preconditions: algo is ed25519 or secp256k1; sig is either the 64-byte raw signature
// or 65 bytes whose first byte is algo's tag.
// Postconditions: the result is 130 lowercase hex characters, the algorithm tag followed by
// the 64-byte signature. Any other input is rejected with ErrInvalidSignature.
func EncodeApprovalSignature(algo KeyAlgorithm, sig []byte) (string, error) {
	if algo != KeyAlgorithmEd25519 && algo != KeyAlgorithmSecp256k1 {
		return "", fmt.Errorf("%w: unsupported algorithm tag %d", ErrInvalidSignature, byte(algo))
	}

	switch len(sig) {
	case SignatureSize:
		return hex.EncodeToString(append([]byte{byte(algo)}, sig...)), nil
	case SignatureSize + 1:
		if sig[0] != byte(algo) {
			return "", fmt.Errorf("%w: tag %#02x does not match %s key", ErrInvalidSignature, sig[0], algo)
		}
		return hex.EncodeToString(sig), nil
	default:
		return "", fmt.Errorf("%w: expected %d or %d bytes, got %d", ErrInvalidSignature, SignatureSize, SignatureSize+1, len(sig))
	}
}

// DecodeSignatureHex decodes a wallet-provided hex signature, with or without a 0x prefix
func DecodeSignatureHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return b, nil
}
