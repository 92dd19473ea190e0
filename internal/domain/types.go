package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Grade represents the ordinal risk category assigned to an invoice
type Grade string

const (
	GradeAPlus  Grade = "A+"
	GradeA      Grade = "A"
	GradeAMinus Grade = "A-"
	GradeBPlus  Grade = "B+"
	GradeB      Grade = "B"
	GradeBMinus Grade = "B-"
	GradeCPlus  Grade = "C+"
	GradeC      Grade = "C"
	GradeCMinus Grade = "C-"
	GradeD      Grade = "D"
)

var gradeOrder = []Grade{
	GradeAPlus, GradeA, GradeAMinus,
	GradeBPlus, GradeB, GradeBMinus,
	GradeCPlus, GradeC, GradeCMinus,
	GradeD,
}

// ParseGrade normalizes a grade string, e.g. " a+ " -> "A+"
func ParseGrade(s string) (Grade, bool) {
	g := Grade(strings.ToUpper(strings.TrimSpace(s)))
	return g, g.Valid()
}

// Valid checks if the grade is one of the known categories
func (g Grade) Valid() bool {
	for _, known := range gradeOrder {
		if g == known {
			return true
		}
	}
	return false
}

// Rank returns the ordinal position of the grade, 0 being the best
// Unknown grades rank after every known grade
func (g Grade) Rank() int {
	for i, known := range gradeOrder {
		if g == known {
			return i
		}
	}
	return len(gradeOrder)
}

// YieldRate returns the annual yield percentage offered for the grade
func (g Grade) YieldRate() float64 {
	switch g {
	case GradeAPlus:
		return 9.5
	case GradeA:
		return 12.0
	case GradeAMinus:
		return 13.0
	case GradeBPlus:
		return 15.5
	case GradeB:
		return 16.5
	case GradeBMinus:
		return 17.5
	case GradeCPlus:
		return 19.0
	case GradeC:
		return 20.0
	default:
		return 22.0
	}
}

// TermDays returns the financing term offered for the grade
func (g Grade) TermDays() int {
	switch {
	case strings.HasPrefix(string(g), "A"):
		return 30
	case strings.HasPrefix(string(g), "B"):
		return 60
	default:
		return 90
	}
}

// FundingStatus represents the funding state of a listed invoice
type FundingStatus string

const (
	FundingStatusAvailable FundingStatus = "available"
	FundingStatusFunded    FundingStatus = "funded"
)

// Assessment is the structured output of the risk analyzer
type Assessment struct {
	Grade        Grade    `json:"risk_score"`
	Valuation    float64  `json:"valuation"`
	Confidence   float64  `json:"confidence"`
	Summary      string   `json:"summary"`
	QuantumScore *float64 `json:"quantum_score,omitempty"`
	ModelUsed    string   `json:"model_used,omitempty"`
	Source       string   `json:"source,omitempty"`
}

// WellFormed reports whether every required assessment field carries a usable value
func (a *Assessment) WellFormed() bool {
	if a == nil {
		return false
	}
	return a.Grade.Valid() &&
		a.Valuation > 0 &&
		a.Confidence >= 0 && a.Confidence <= 1
}

// Document is an uploaded invoice file
type Document struct {
	Name        string
	ContentType string
	Data        []byte
}

// Size returns the document size in bytes
func (d *Document) Size() int {
	return len(d.Data)
}

// Invoice is the canonical invoice record shared by every backend
type Invoice struct {
	ID         string `json:"invoice_id"`
	FileName   string `json:"file_name,omitempty"`
	VendorName string `json:"vendor_name"`
	ClientName string `json:"client_name,omitempty"`

	Amount   float64    `json:"amount"`
	Currency string     `json:"currency"`
	DueDate  *time.Time `json:"due_date,omitempty"`

	Grade        Grade    `json:"risk_score"`
	Valuation    float64  `json:"valuation"`
	Confidence   float64  `json:"confidence"`
	Summary      string   `json:"summary,omitempty"`
	QuantumScore *float64 `json:"quantum_score,omitempty"`
	ModelUsed    string   `json:"model_used,omitempty"`

	IPFSURL       string          `json:"ipfs_url"`
	TokenID       string          `json:"token_id,omitempty"`
	TokenMetadata json.RawMessage `json:"token_metadata,omitempty"`
	DeployHash    string          `json:"deploy_hash"`
	OwnerAddress  string          `json:"owner_address"`

	YieldRate float64 `json:"yield_rate"`
	TermDays  int     `json:"term_days"`

	FundingStatus      FundingStatus `json:"funding_status"`
	InvestorDeployHash string        `json:"investor_deploy_hash,omitempty"`
	InvestorAddress    string        `json:"investor_address,omitempty"`
	FundedAt           *time.Time    `json:"funded_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// IsFunded checks whether the invoice has been funded
func (i *Invoice) IsFunded() bool {
	return i.FundingStatus == FundingStatusFunded
}

// Validate checks the record invariants
func (i *Invoice) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return fmt.Errorf("%w: missing invoice id", ErrInvalidInvoice)
	}
	switch i.FundingStatus {
	case FundingStatusAvailable:
	case FundingStatusFunded:
		if i.InvestorDeployHash == "" {
			return fmt.Errorf("%w: funded invoice %s has no funding deploy hash", ErrInvalidInvoice, i.ID)
		}
	default:
		return fmt.Errorf("%w: unknown funding status %q", ErrInvalidInvoice, i.FundingStatus)
	}
	return nil
}

// ApplyAssessment copies the risk assessment into the invoice and derives its display terms
func (i *Invoice) ApplyAssessment(a Assessment) {
	i.Grade = a.Grade
	i.Valuation = a.Valuation
	i.Confidence = a.Confidence
	i.Summary = a.Summary
	i.QuantumScore = a.QuantumScore
	i.ModelUsed = a.ModelUsed
	i.YieldRate = a.Grade.YieldRate()
	i.TermDays = a.Grade.TermDays()
	if i.Amount == 0 {
		i.Amount = a.Valuation
	}
}

// MarkFunded sets the funding fields of the invoice
func (i *Invoice) MarkFunded(deployHash, investor string, at time.Time) error {
	if i.IsFunded() {
		return ErrAlreadyFunded
	}
	if deployHash == "" {
		return fmt.Errorf("%w: empty funding deploy hash", ErrInvalidInvoice)
	}
	if investor != "" && strings.EqualFold(investor, i.OwnerAddress) {
		return ErrSelfFunding
	}
	i.FundingStatus = FundingStatusFunded
	i.InvestorDeployHash = deployHash
	i.InvestorAddress = investor
	funded := at.UTC()
	i.FundedAt = &funded
	return nil
}

// InvoiceEventType represents the type of an invoice lifecycle event
type InvoiceEventType string

const (
	InvoiceEventMinted InvoiceEventType = "minted"
	InvoiceEventFunded InvoiceEventType = "funded"
)

// InvoiceEvent is published to NATS when an invoice is minted or funded
type InvoiceEvent struct {
	ID         string           `json:"id"`
	Type       InvoiceEventType `json:"type"`
	InvoiceID  string           `json:"invoice_id"`
	DeployHash string           `json:"deploy_hash"`
	Account    string           `json:"account"`
	Amount     float64          `json:"amount"`
	Grade      Grade            `json:"risk_score"`
	Timestamp  time.Time        `json:"timestamp"`
}

// MarketStats summarizes the listed invoices
type MarketStats struct {
	TotalInvoices int     `json:"total_invoices"`
	FundedCount   int     `json:"funded_count"`
	TotalVolume   float64 `json:"total_volume"`
	AvgYield      float64 `json:"avg_yield"`
}
