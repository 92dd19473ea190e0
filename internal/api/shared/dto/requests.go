package dto

import (
	"encoding/json"
	"time"
)

// SubmitDeployRequest is the body of POST /api/deploy. Deploy may be the bare deploy or the
// {"deploy": {...}} envelope produced by wallet SDKs.
type SubmitDeployRequest struct {
	Deploy json.RawMessage `json:"deploy" binding:"required"`
}

// BuildDeployRequest is the body of POST /api/deploy/build
type BuildDeployRequest struct {
	Kind       string          `json:"kind" binding:"required,oneof=register mint transfer"`
	Account    string          `json:"account" binding:"required"`
	Metadata   json.RawMessage `json:"metadata,omitempty"`
	Amount     float64         `json:"amount,omitempty"`
	Target     string          `json:"target,omitempty"`
	TransferID *uint64         `json:"transfer_id,omitempty"`
}

// CreateInvoiceRequest records an invoice minted outside the API
type CreateInvoiceRequest struct {
	InvoiceID     string          `json:"invoice_id,omitempty"`
	FileName      string          `json:"file_name,omitempty"`
	VendorName    string          `json:"vendor_name" binding:"required"`
	ClientName    string          `json:"client_name,omitempty"`
	Amount        float64         `json:"amount" binding:"gte=0"`
	Currency      string          `json:"currency,omitempty"`
	DueDate       *time.Time      `json:"due_date,omitempty"`
	RiskScore     string          `json:"risk_score" binding:"required"`
	Valuation     float64         `json:"valuation" binding:"gte=0"`
	Confidence    float64         `json:"confidence" binding:"gte=0,lte=1"`
	Summary       string          `json:"summary,omitempty"`
	QuantumScore  *float64        `json:"quantum_score,omitempty"`
	ModelUsed     string          `json:"model_used,omitempty"`
	IPFSURL       string          `json:"ipfs_url" binding:"required"`
	DeployHash    string          `json:"deploy_hash" binding:"required"`
	OwnerAddress  string          `json:"owner_address" binding:"required"`
	TokenMetadata json.RawMessage `json:"token_metadata,omitempty"`
}

// FundInvoiceRequest records the funding transfer of an invoice
type FundInvoiceRequest struct {
	DeployHash      string `json:"deploy_hash" binding:"required"`
	InvestorAddress string `json:"investor_address,omitempty"`
}
