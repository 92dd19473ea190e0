package casper

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/blake2b"
)

const timestampLayout = "2006-01-02T15:04:05.000Z"

// Executable item tags
const (
	itemTagModuleBytes          byte = 0
	itemTagStoredContractByHash byte = 1
	itemTagTransfer             byte = 5
)

var ErrInvalidDeploy = errors.New("invalid deploy")

// ExecutableDeployItem is the payment or session part of a deploy
type ExecutableDeployItem interface {
	Bytes() []byte
	json.Marshaler
}

// ModuleBytes runs wasm; empty module bytes select the standard payment contract
type ModuleBytes struct {
	Module []byte
	Args   RuntimeArgs
}

func (m ModuleBytes) Bytes() []byte {
	out := []byte{itemTagModuleBytes}
	out = appendBytes(out, m.Module)
	return append(out, m.Args.Bytes()...)
}

func (m ModuleBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"ModuleBytes": map[string]interface{}{
			"module_bytes": hex.EncodeToString(m.Module),
			"args":         m.Args,
		},
	})
}

// StandardPayment returns the payment item paying the given amount of motes
func StandardPayment(motes uint64) ModuleBytes {
	return ModuleBytes{
		Args: RuntimeArgs{{Name: "amount", Value: U512FromUint64(motes)}},
	}
}

// StoredContractByHash calls an entry point of an installed contract
type StoredContractByHash struct {
	Hash       [32]byte
	EntryPoint string
	Args       RuntimeArgs
}

func (s StoredContractByHash) Bytes() []byte {
	out := []byte{itemTagStoredContractByHash}
	out = append(out, s.Hash[:]...)
	out = appendString(out, s.EntryPoint)
	return append(out, s.Args.Bytes()...)
}

func (s StoredContractByHash) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"StoredContractByHash": map[string]interface{}{
			"hash":        hex.EncodeToString(s.Hash[:]),
			"entry_point": s.EntryPoint,
			"args":        s.Args,
		},
	})
}

// Transfer is a native CSPR transfer
type Transfer struct {
	Args RuntimeArgs
}

// NewTransfer builds the native transfer session
func NewTransfer(amount uint64, target PublicKey, id *uint64) Transfer {
	return Transfer{
		Args: RuntimeArgs{
			{Name: "amount", Value: U512FromUint64(amount)},
			{Name: "target", Value: PublicKeyValue(target)},
			{Name: "id", Value: OptionU64Value(id)},
		},
	}
}

func (t Transfer) Bytes() []byte {
	out := []byte{itemTagTransfer}
	return append(out, t.Args.Bytes()...)
}

func (t Transfer) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"Transfer": map[string]interface{}{
			"args": t.Args,
		},
	})
}

// Header holds the deploy header fields
type Header struct {
	Account      PublicKey
	Timestamp    time.Time
	TTL          time.Duration
	GasPrice     uint64
	BodyHash     [32]byte
	Dependencies [][32]byte
	ChainName    string
}

// Bytes serializes the header; its blake2b hash is the deploy hash
func (h Header) Bytes() []byte {
	out := h.Account.Bytes()
	out = appendU64(out, uint64(h.Timestamp.UnixMilli()))
	out = appendU64(out, uint64(h.TTL.Milliseconds()))
	out = appendU64(out, h.GasPrice)
	out = append(out, h.BodyHash[:]...)
	out = appendU32(out, uint32(len(h.Dependencies)))
	for _, d := range h.Dependencies {
		out = append(out, d[:]...)
	}
	return appendString(out, h.ChainName)
}

type headerJSON struct {
	Account      string   `json:"account"`
	Timestamp    string   `json:"timestamp"`
	TTL          string   `json:"ttl"`
	GasPrice     uint64   `json:"gas_price"`
	BodyHash     string   `json:"body_hash"`
	Dependencies []string `json:"dependencies"`
	ChainName    string   `json:"chain_name"`
}

func (h Header) MarshalJSON() ([]byte, error) {
	deps := make([]string, 0, len(h.Dependencies))
	for _, d := range h.Dependencies {
		deps = append(deps, hex.EncodeToString(d[:]))
	}
	return json.Marshal(headerJSON{
		Account:      h.Account.Hex(),
		Timestamp:    h.Timestamp.UTC().Format(timestampLayout),
		TTL:          FormatTTL(h.TTL),
		GasPrice:     h.GasPrice,
		BodyHash:     hex.EncodeToString(h.BodyHash[:]),
		Dependencies: deps,
		ChainName:    h.ChainName,
	})
}

// Approval is a signer's signature over the deploy hash
type Approval struct {
	Signer    string `json:"signer"`
	Signature string `json:"signature"`
}

// Deploy is a Casper deploy ready to be signed and submitted
type Deploy struct {
	Hash      [32]byte
	Header    Header
	Payment   ExecutableDeployItem
	Session   ExecutableDeployItem
	Approvals []Approval
}

// DeployParams are the header inputs of a new deploy
type DeployParams struct {
	Account   PublicKey
	ChainName string
	Timestamp time.Time
	TTL       time.Duration
	GasPrice  uint64
}

// NewDeploy computes the body hash and deploy hash for the payment and session items
func NewDeploy(params DeployParams, payment, session ExecutableDeployItem) (*Deploy, error) {
	if params.Account.IsZero() {
		return nil, fmt.Errorf("%w: missing account", ErrInvalidDeploy)
	}
	if params.ChainName == "" {
		return nil, fmt.Errorf("%w: missing chain name", ErrInvalidDeploy)
	}
	if payment == nil || session == nil {
		return nil, fmt.Errorf("%w: missing payment or session", ErrInvalidDeploy)
	}
	if params.GasPrice == 0 {
		params.GasPrice = 1
	}

	body := append(payment.Bytes(), session.Bytes()...)
	header := Header{
		Account: params.Account,
		// the node works in milliseconds
		Timestamp: params.Timestamp.UTC().Truncate(time.Millisecond),
		TTL:       params.TTL,
		GasPrice:  params.GasPrice,
		BodyHash:  blake2b.Sum256(body),
		ChainName: params.ChainName,
	}

	return &Deploy{
		Hash:    blake2b.Sum256(header.Bytes()),
		Header:  header,
		Payment: payment,
		Session: session,
	}, nil
}

// HashHex returns the deploy hash as lowercase hex
func (d *Deploy) HashHex() string {
	return hex.EncodeToString(d.Hash[:])
}

// AddApproval attaches a signature produced by signer over the deploy hash.
// The signature may be raw or already tagged; see EncodeApprovalSignature.
func (d *Deploy) AddApproval(signer PublicKey, signature []byte) error {
	encoded, err := EncodeApprovalSignature(signer.Algorithm, signature)
	if err != nil {
		return err
	}
	d.Approvals = append(d.Approvals, Approval{
		Signer:    signer.Hex(),
		Signature: encoded,
	})
	return nil
}

// IsSigned reports whether at least one approval is attached
func (d *Deploy) IsSigned() bool {
	return len(d.Approvals) > 0
}

// Verify recomputes the body and deploy hashes
func (d *Deploy) Verify() error {
	body := append(d.Payment.Bytes(), d.Session.Bytes()...)
	if blake2b.Sum256(body) != d.Header.BodyHash {
		return fmt.Errorf("%w: body hash mismatch", ErrInvalidDeploy)
	}
	if blake2b.Sum256(d.Header.Bytes()) != d.Hash {
		return fmt.Errorf("%w: deploy hash mismatch", ErrInvalidDeploy)
	}
	return nil
}

type deployJSON struct {
	Hash      string               `json:"hash"`
	Header    Header               `json:"header"`
	Payment   ExecutableDeployItem `json:"payment"`
	Session   ExecutableDeployItem `json:"session"`
	Approvals []Approval           `json:"approvals"`
}

func (d *Deploy) MarshalJSON() ([]byte, error) {
	approvals := d.Approvals
	if approvals == nil {
		approvals = []Approval{}
	}
	return json.Marshal(deployJSON{
		Hash:      d.HashHex(),
		Header:    d.Header,
		Payment:   d.Payment,
		Session:   d.Session,
		Approvals: approvals,
	})
}

// FormatTTL renders a duration in the humantime style used by the node, e.g. "30m" or "1h 30m"
func FormatTTL(d time.Duration) string {
	ms := d.Milliseconds()
	if ms <= 0 {
		return "0ms"
	}
	units := []struct {
		suffix string
		size   int64
	}{
		{"day", 24 * 60 * 60 * 1000},
		{"h", 60 * 60 * 1000},
		{"m", 60 * 1000},
		{"s", 1000},
		{"ms", 1},
	}
	parts := make([]string, 0, len(units))
	for _, u := range units {
		if ms >= u.size {
			parts = append(parts, fmt.Sprintf("%d%s", ms/u.size, u.suffix))
			ms %= u.size
		}
	}
	return strings.Join(parts, " ")
}
