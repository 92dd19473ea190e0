package deployer

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Eras256/FlowFi/internal/adapter"
	"github.com/Eras256/FlowFi/internal/domain"
)

// Attribute is one CEP-78 metadata trait
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// TokenMetadata is the JSON stored on-chain with an invoice token
type TokenMetadata struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	TokenURI    string      `json:"token_uri"`
	Checksum    string      `json:"checksum"`
	Attributes  []Attribute `json:"attributes,omitempty"`
}

// NewTokenMetadata describes an assessed invoice. The checksum is the sha256 of the document.
func NewTokenMetadata(invoice *domain.Invoice, document []byte) TokenMetadata {
	sum := sha256.Sum256(document)
	valuation := strconv.FormatFloat(invoice.Valuation, 'f', -1, 64)

	meta := TokenMetadata{
		Name:        "FlowFi Invoice #" + invoice.ID,
		Description: fmt.Sprintf("RWA Invoice - Valuation: $%s, Risk Score: %s", valuation, invoice.Grade),
		TokenURI:    invoice.IPFSURL,
		Checksum:    hex.EncodeToString(sum[:]),
		Attributes: []Attribute{
			{TraitType: "Risk Score", Value: string(invoice.Grade)},
			{TraitType: "Valuation", Value: valuation},
			{TraitType: "Confidence", Value: fmt.Sprintf("%.0f%%", invoice.Confidence*100)},
			{TraitType: "Document Type", Value: "Invoice"},
			{TraitType: "IPFS URL", Value: invoice.IPFSURL},
		},
	}
	if !invoice.CreatedAt.IsZero() {
		meta.Attributes = append(meta.Attributes, Attribute{
			TraitType: "Minted On",
			Value:     invoice.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return meta
}

// EncodeMetadata returns the canonical JSON form of the metadata
func EncodeMetadata(j adapter.JCS, meta TokenMetadata) (json.RawMessage, error) {
	raw, err := j.Canonicalize(meta)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize token metadata: %w", err)
	}
	return raw, nil
}
