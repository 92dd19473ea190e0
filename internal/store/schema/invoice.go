package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Invoice represents the invoices table - one row per minted invoice NFT
type Invoice struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// InvoiceID is the public invoice identifier, also used as the NFT token id
	InvoiceID string `gorm:"column:invoice_id;not null;uniqueIndex;type:text"`
	FileName  string `gorm:"column:file_name;not null;default:'';type:text"`
	// VendorName is the issuer shown in the marketplace
	VendorName string     `gorm:"column:vendor_name;not null;default:'';type:text"`
	ClientName string     `gorm:"column:client_name;not null;default:'';type:text"`
	Amount     float64    `gorm:"column:amount;not null;default:0;type:numeric"`
	Currency   string     `gorm:"column:currency;not null;default:'USD';type:text"`
	DueDate    *time.Time `gorm:"column:due_date"`

	// Risk assessment, immutable once minted
	Grade        string   `gorm:"column:grade;not null;type:text"`
	Valuation    float64  `gorm:"column:valuation;not null;default:0;type:numeric"`
	Confidence   float64  `gorm:"column:confidence;not null;default:0"`
	Summary      string   `gorm:"column:summary;not null;default:'';type:text"`
	QuantumScore *float64 `gorm:"column:quantum_score"`
	ModelUsed    string   `gorm:"column:model_used;not null;default:'';type:text"`

	// On-chain references
	IPFSURL      string `gorm:"column:ipfs_url;not null;default:'';type:text"`
	TokenID      string `gorm:"column:token_id;not null;default:'';type:text"`
	DeployHash   string `gorm:"column:deploy_hash;not null;default:'';type:text"`
	OwnerAddress string `gorm:"column:owner_address;not null;default:'';type:text;index"`
	// TokenMetadata is the canonical JSON stored on-chain with the token
	TokenMetadata datatypes.JSON `gorm:"column:token_metadata;type:jsonb"`

	YieldRate float64 `gorm:"column:yield_rate;not null;default:0"`
	TermDays  int     `gorm:"column:term_days;not null;default:0"`

	// Funding state, the only mutable part of the record
	FundingStatus      string     `gorm:"column:funding_status;not null;default:'available';type:text;index"`
	InvestorDeployHash *string    `gorm:"column:investor_deploy_hash;type:text"`
	InvestorAddress    *string    `gorm:"column:investor_address;type:text"`
	FundedAt           *time.Time `gorm:"column:funded_at"`

	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`

	// Associations
	Events []InvoiceEvent `gorm:"foreignKey:InvoiceID;references:InvoiceID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}
