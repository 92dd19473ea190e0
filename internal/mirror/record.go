package mirror

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Text is a string that also decodes from JSON numbers and booleans
type Text string

// UnmarshalJSON implements json.Unmarshaler
func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*t = ""
			return nil
		}
		*t = Text(s)
		return nil
	}
	if _, err := strconv.ParseFloat(string(b), 64); err == nil || string(b) == "true" || string(b) == "false" {
		*t = Text(b)
		return nil
	}
	*t = ""
	return nil
}

// Record is one entry of the mirror's JSON array. Entries written by older clients use
// different names for the same field, so every known spelling has its own slot.
type Record struct {
	ID        string `json:"id,omitempty"`
	InvoiceID string `json:"invoice_id,omitempty"`

	Vendor     string `json:"vendor,omitempty"`
	VendorName string `json:"vendor_name,omitempty"`
	FileName   string `json:"file_name,omitempty"`
	ClientName string `json:"client_name,omitempty"`
	Amount     Text   `json:"amount,omitempty"`
	Currency   string `json:"currency,omitempty"`
	DueDate    string `json:"due_date,omitempty"`

	Score        string `json:"score,omitempty"`
	Grade        string `json:"grade,omitempty"`
	RiskScore    string `json:"risk_score,omitempty"`
	Valuation    Text   `json:"valuation,omitempty"`
	Confidence   Text   `json:"confidence,omitempty"`
	Summary      string `json:"summary,omitempty"`
	QuantumScore Text   `json:"quantum_score,omitempty"`
	ModelUsed    string `json:"model_used,omitempty"`

	Yield     Text `json:"yield,omitempty"`
	YieldRate Text `json:"yield_rate,omitempty"`
	Term      Text `json:"term,omitempty"`
	TermDays  Text `json:"term_days,omitempty"`

	DeployHash      string          `json:"deployHash,omitempty"`
	DeployHashSnake string          `json:"deploy_hash,omitempty"`
	IPFSURL         string          `json:"ipfsUrl,omitempty"`
	IPFSURLSnake    string          `json:"ipfs_url,omitempty"`
	TokenID         string          `json:"tokenId,omitempty"`
	TokenIDSnake    string          `json:"token_id,omitempty"`
	TokenMetadata   json.RawMessage `json:"token_metadata,omitempty"`
	Owner           string          `json:"owner,omitempty"`
	OwnerAddress    string          `json:"owner_address,omitempty"`
	MintedAt        string          `json:"mintedAt,omitempty"`
	CreatedAt       string          `json:"created_at,omitempty"`

	IsFunded           bool   `json:"isFunded,omitempty"`
	FundingStatus      string `json:"funding_status,omitempty"`
	InvestorDeployHash string `json:"investor_deploy_hash,omitempty"`
	InvestorAddress    string `json:"investor_address,omitempty"`
	FundedAt           string `json:"funded_at,omitempty"`
}

// Key returns the record identifier under whichever name it was stored
func (r *Record) Key() string {
	if r.InvoiceID != "" {
		return r.InvoiceID
	}
	return r.ID
}
