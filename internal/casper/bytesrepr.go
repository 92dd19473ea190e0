package casper

import (
	"encoding/binary"
	"math/big"
)

// The helpers below implement the little-endian "bytesrepr" serialization used by Casper nodes
// to hash and verify deploys.

func appendU32(b []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(b, v)
}

func appendU64(b []byte, v uint64) []byte {
	return binary.LittleEndian.AppendUint64(b, v)
}

// appendBytes writes a u32 length prefix followed by the raw bytes
func appendBytes(b []byte, data []byte) []byte {
	b = appendU32(b, uint32(len(data)))
	return append(b, data...)
}

func appendString(b []byte, s string) []byte {
	return appendBytes(b, []byte(s))
}

// encodeU512 encodes a non-negative integer as a one-byte length followed by its
// little-endian bytes with trailing zeros trimmed. Zero encodes as a single 0x00.
func encodeU512(v *big.Int) []byte {
	if v == nil || v.Sign() == 0 {
		return []byte{0}
	}
	be := v.Bytes()
	le := make([]byte, len(be))
	for i := range be {
		le[i] = be[len(be)-1-i]
	}
	return append([]byte{byte(len(le))}, le...)
}

func encodeU64(v uint64) []byte {
	return appendU64(nil, v)
}

func encodeString(s string) []byte {
	return appendString(nil, s)
}
