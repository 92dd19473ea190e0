package dto

import (
	"encoding/json"
	"time"

	"github.com/Eras256/FlowFi/internal/domain"
)

// SubmitDeployResponse mirrors the relay contract: success with a hash, or an error message
type SubmitDeployResponse struct {
	Success    bool   `json:"success"`
	DeployHash string `json:"deploy_hash,omitempty"`
	Error      string `json:"error,omitempty"`
}

// DeployStatusResponse is the execution status of a deploy
type DeployStatusResponse struct {
	DeployHash   string `json:"deploy_hash"`
	Status       string `json:"status"`
	BlockHash    string `json:"block_hash,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	ExplorerURL  string `json:"explorer_url"`
}

// BuildDeployResponse is an unsigned deploy ready for an external wallet
type BuildDeployResponse struct {
	DeployHash string          `json:"deploy_hash"`
	Deploy     json.RawMessage `json:"deploy"`
}

// InvoiceResponse is an invoice with its browsable links
type InvoiceResponse struct {
	domain.Invoice
	DocumentURL string `json:"document_url"`
	ExplorerURL string `json:"explorer_url,omitempty"`
	Seed        bool   `json:"seed"`
}

// InvoiceListResponse is the marketplace listing
type InvoiceListResponse struct {
	Invoices []InvoiceResponse  `json:"invoices"`
	Total    int                `json:"total"`
	Stats    domain.MarketStats `json:"stats"`
}

// InvoiceEventListResponse is the journal of an invoice
type InvoiceEventListResponse struct {
	InvoiceID string                `json:"invoice_id"`
	Events    []domain.InvoiceEvent `json:"events"`
}

// HealthResponse reports the service and its optional backends
type HealthResponse struct {
	Status   string          `json:"status"`
	Service  string          `json:"service"`
	Time     time.Time       `json:"time"`
	Backends map[string]bool `json:"backends,omitempty"`
}
