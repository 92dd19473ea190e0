package casper

import (
	"crypto/ed25519"
	"crypto/x509"
	"encoding/asn1"
	"encoding/hex"
	"encoding/json"
	"encoding/pem"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"
)

func testEd25519Key(t *testing.T) PrivateKey {
	t.Helper()
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = byte(i)
	}
	return NewEd25519Key(ed25519.NewKeyFromSeed(seed))
}

func testSecp256k1Key(t *testing.T) PrivateKey {
	t.Helper()
	key, err := crypto.HexToECDSA("4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318")
	require.NoError(t, err)
	return NewSecp256k1Key(key)
}

func TestEncodeU512(t *testing.T) {
	tests := []struct {
		name     string
		value    *big.Int
		expected string
	}{
		{name: "zero", value: big.NewInt(0), expected: "00"},
		{name: "one", value: big.NewInt(1), expected: "0101"},
		{name: "standard payment", value: big.NewInt(100_000_000), expected: "0400e1f505"},
		{name: "fifty cspr", value: big.NewInt(50_000_000_000), expected: "0500743ba40b"},
		{name: "nil", value: nil, expected: "00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, hex.EncodeToString(encodeU512(tt.value)))
		})
	}
}

func TestCLValueBytes(t *testing.T) {
	s := StringValue("hi")
	assert.Equal(t, "06000000"+"020000006869"+"0a", hex.EncodeToString(s.Bytes()))

	none := OptionU64Value(nil)
	assert.Equal(t, "01000000"+"00"+"0d05", hex.EncodeToString(none.Bytes()))

	id := uint64(7)
	some := OptionU64Value(&id)
	assert.Equal(t, "09000000"+"01"+"0700000000000000"+"0d05", hex.EncodeToString(some.Bytes()))

	raw, err := json.Marshal(some)
	require.NoError(t, err)
	assert.JSONEq(t, `{"cl_type":{"Option":"U64"},"bytes":"010700000000000000","parsed":"7"}`, string(raw))

	raw, err = json.Marshal(U512FromUint64(100_000_000))
	require.NoError(t, err)
	assert.JSONEq(t, `{"cl_type":"U512","bytes":"0400e1f505","parsed":"100000000"}`, string(raw))
}

func TestPublicKeyParsing(t *testing.T) {
	ed := testEd25519Key(t).PublicKey()
	assert.Len(t, ed.Hex(), 66)
	assert.True(t, strings.HasPrefix(ed.Hex(), "01"))

	parsed, err := ParsePublicKeyHex(ed.Hex())
	require.NoError(t, err)
	assert.Equal(t, ed, parsed)

	secp := testSecp256k1Key(t).PublicKey()
	assert.Len(t, secp.Hex(), 68)
	assert.True(t, strings.HasPrefix(secp.Hex(), "02"))

	_, err = ParsePublicKeyHex("03" + strings.Repeat("00", 32))
	assert.ErrorIs(t, err, ErrInvalidPublicKey)

	_, err = ParsePublicKeyHex("01" + strings.Repeat("00", 31))
	assert.ErrorIs(t, err, ErrInvalidPublicKey)

	_, err = ParsePublicKeyHex("zz")
	assert.ErrorIs(t, err, ErrInvalidPublicKey)
}

func TestAccountHash(t *testing.T) {
	pk := testEd25519Key(t).PublicKey()

	expected := blake2b.Sum256(append([]byte("ed25519\x00"), pk.Raw...))
	assert.Equal(t, expected, pk.AccountHash())
	assert.Equal(t, "account-hash-"+hex.EncodeToString(expected[:]), pk.AccountHashString())

	key := AccountKeyValue(pk)
	assert.Equal(t, byte(0x00), key.Data[0])
	assert.Equal(t, expected[:], key.Data[1:])
}

func TestParseHash(t *testing.T) {
	h, err := ParseHash("contract-2faa3d9bd2009c1988dd45f19cf307b3737ab191a4c16605588936ebb98aaa1a")
	require.NoError(t, err)
	assert.Equal(t, "2faa3d9bd2009c1988dd45f19cf307b3737ab191a4c16605588936ebb98aaa1a", hex.EncodeToString(h[:]))

	_, err = ParseHash("hash-00")
	assert.Error(t, err)
}

func TestFormatTTL(t *testing.T) {
	assert.Equal(t, "30m", FormatTTL(30*time.Minute))
	assert.Equal(t, "1h 30m", FormatTTL(90*time.Minute))
	assert.Equal(t, "1day", FormatTTL(24*time.Hour))
	assert.Equal(t, "0ms", FormatTTL(0))
}

func TestNewDeploy(t *testing.T) {
	key := testEd25519Key(t)
	ts := time.Date(2025, 3, 1, 12, 0, 0, 123_456_789, time.UTC)
	contract, err := ParseHash("2faa3d9bd2009c1988dd45f19cf307b3737ab191a4c16605588936ebb98aaa1a")
	require.NoError(t, err)

	payment := StandardPayment(50_000_000_000)
	session := StoredContractByHash{
		Hash:       contract,
		EntryPoint: "mint",
		Args: RuntimeArgs{
			{Name: "token_owner", Value: AccountKeyValue(key.PublicKey())},
			{Name: "token_meta_data", Value: StringValue(`{"name":"INV-1"}`)},
		},
	}

	d, err := NewDeploy(DeployParams{
		Account:   key.PublicKey(),
		ChainName: "casper-test",
		Timestamp: ts,
		TTL:       30 * time.Minute,
	}, payment, session)
	require.NoError(t, err)

	body := append(payment.Bytes(), session.Bytes()...)
	assert.Equal(t, blake2b.Sum256(body), d.Header.BodyHash)
	assert.Equal(t, blake2b.Sum256(d.Header.Bytes()), d.Hash)
	assert.Equal(t, uint64(1), d.Header.GasPrice)
	assert.Equal(t, ts.Truncate(time.Millisecond), d.Header.Timestamp)
	assert.NoError(t, d.Verify())
	assert.False(t, d.IsSigned())

	// any change to the session changes the deploy hash
	session.EntryPoint = "register_owner"
	d2, err := NewDeploy(DeployParams{Account: key.PublicKey(), ChainName: "casper-test", Timestamp: ts, TTL: 30 * time.Minute}, payment, session)
	require.NoError(t, err)
	assert.NotEqual(t, d.Hash, d2.Hash)

	raw, err := json.Marshal(d)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, d.HashHex(), decoded["hash"])
	header := decoded["header"].(map[string]interface{})
	assert.Equal(t, "2025-03-01T12:00:00.123Z", header["timestamp"])
	assert.Equal(t, "30m", header["ttl"])
	assert.Equal(t, "casper-test", header["chain_name"])
	assert.Equal(t, []interface{}{}, header["dependencies"])
	assert.Contains(t, decoded["session"], "StoredContractByHash")
	assert.Contains(t, decoded["payment"], "ModuleBytes")
	assert.Equal(t, []interface{}{}, decoded["approvals"])
}

func TestNewDeployValidation(t *testing.T) {
	key := testEd25519Key(t)
	payment := StandardPayment(1)
	session := NewTransfer(1, key.PublicKey(), nil)

	_, err := NewDeploy(DeployParams{ChainName: "casper-test"}, payment, session)
	assert.ErrorIs(t, err, ErrInvalidDeploy)

	_, err = NewDeploy(DeployParams{Account: key.PublicKey()}, payment, session)
	assert.ErrorIs(t, err, ErrInvalidDeploy)

	_, err = NewDeploy(DeployParams{Account: key.PublicKey(), ChainName: "casper-test"}, nil, session)
	assert.ErrorIs(t, err, ErrInvalidDeploy)
}

func TestEncodeApprovalSignature(t *testing.T) {
	raw := make([]byte, SignatureSize)
	for i := range raw {
		raw[i] = 0xab
	}
	rawHex := hex.EncodeToString(raw)

	tests := []struct {
		name     string
		algo     KeyAlgorithm
		sig      []byte
		expected string
		wantErr  bool
	}{
		{name: "ed25519 raw", algo: KeyAlgorithmEd25519, sig: raw, expected: "01" + rawHex},
		{name: "ed25519 tagged", algo: KeyAlgorithmEd25519, sig: append([]byte{0x01}, raw...), expected: "01" + rawHex},
		{name: "secp256k1 raw", algo: KeyAlgorithmSecp256k1, sig: raw, expected: "02" + rawHex},
		{name: "secp256k1 tagged", algo: KeyAlgorithmSecp256k1, sig: append([]byte{0x02}, raw...), expected: "02" + rawHex},
		{name: "tag mismatch", algo: KeyAlgorithmSecp256k1, sig: append([]byte{0x01}, raw...), wantErr: true},
		{name: "recoverable secp256k1 signature", algo: KeyAlgorithmSecp256k1, sig: append(raw, 0x1b), wantErr: true},
		{name: "too short", algo: KeyAlgorithmEd25519, sig: raw[:63], wantErr: true},
		{name: "too long", algo: KeyAlgorithmEd25519, sig: append(append([]byte{0x01}, raw...), 0x00), wantErr: true},
		{name: "unknown algorithm", algo: KeyAlgorithm(0x03), sig: raw, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeApprovalSignature(tt.algo, tt.sig)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSignature)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.Len(t, got, 130)
		})
	}
}

func TestDecodeSignatureHex(t *testing.T) {
	b, err := DecodeSignatureHex("0x0102")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, b)

	_, err = DecodeSignatureHex("xyz")
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestSignAndApprove(t *testing.T) {
	for _, key := range []PrivateKey{testEd25519Key(t), testSecp256k1Key(t)} {
		t.Run(key.PublicKey().Algorithm.String(), func(t *testing.T) {
			d, err := NewDeploy(DeployParams{
				Account:   key.PublicKey(),
				ChainName: "casper-test",
				Timestamp: time.Unix(1700000000, 0),
				TTL:       30 * time.Minute,
			}, StandardPayment(100_000_000), NewTransfer(1_000_000_000, key.PublicKey(), nil))
			require.NoError(t, err)

			sig, err := key.Sign(d.Hash[:])
			require.NoError(t, err)
			require.Len(t, sig, SignatureSize)
			assert.True(t, VerifySignature(key.PublicKey(), d.Hash[:], sig))
			assert.False(t, VerifySignature(key.PublicKey(), d.Hash[1:], sig))

			require.NoError(t, d.AddApproval(key.PublicKey(), sig))
			require.True(t, d.IsSigned())
			assert.Equal(t, key.PublicKey().Hex(), d.Approvals[0].Signer)
			assert.Equal(t, hex.EncodeToString(key.PublicKey().Bytes()[:1])+hex.EncodeToString(sig), d.Approvals[0].Signature)
		})
	}
}

func TestParsePrivateKeyPEM(t *testing.T) {
	t.Run("ed25519 pkcs8", func(t *testing.T) {
		seed := make([]byte, ed25519.SeedSize)
		edKey := ed25519.NewKeyFromSeed(seed)
		der, err := x509.MarshalPKCS8PrivateKey(edKey)
		require.NoError(t, err)
		data := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})

		key, err := ParsePrivateKeyPEM(data)
		require.NoError(t, err)
		assert.Equal(t, KeyAlgorithmEd25519, key.PublicKey().Algorithm)
		assert.Equal(t, []byte(edKey.Public().(ed25519.PublicKey)), key.PublicKey().Raw)
	})

	t.Run("secp256k1 sec1", func(t *testing.T) {
		ecKey, err := crypto.HexToECDSA("4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318")
		require.NoError(t, err)
		der, err := asn1.Marshal(sec1PrivateKey{
			Version:       1,
			PrivateKey:    crypto.FromECDSA(ecKey),
			NamedCurveOID: asn1.ObjectIdentifier{1, 3, 132, 0, 10},
		})
		require.NoError(t, err)
		data := pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der})

		key, err := ParsePrivateKeyPEM(data)
		require.NoError(t, err)
		assert.Equal(t, KeyAlgorithmSecp256k1, key.PublicKey().Algorithm)
		assert.Equal(t, crypto.CompressPubkey(&ecKey.PublicKey), key.PublicKey().Raw)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParsePrivateKeyPEM([]byte("not a pem"))
		assert.ErrorIs(t, err, ErrUnsupportedKey)
	})

	t.Run("unknown block type", func(t *testing.T) {
		data := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: []byte{0x01}})
		_, err := ParsePrivateKeyPEM(data)
		assert.ErrorIs(t, err, ErrUnsupportedKey)
	})
}
