package schema

import (
	"time"

	"gorm.io/datatypes"
)

// InvoiceEventType represents the lifecycle event recorded for an invoice
type InvoiceEventType string

const (
	// InvoiceEventTypeMinted is recorded when the invoice NFT is minted
	InvoiceEventTypeMinted InvoiceEventType = "minted"
	// InvoiceEventTypeFunded is recorded when an investor funds the invoice
	InvoiceEventTypeFunded InvoiceEventType = "funded"
)

// InvoiceEvent represents the invoice_events table - an append-only journal of invoice lifecycle changes
type InvoiceEvent struct {
	ID         int64            `gorm:"column:id;primaryKey;autoIncrement"`
	InvoiceID  string           `gorm:"column:invoice_id;not null;type:text;index"`
	EventType  InvoiceEventType `gorm:"column:event_type;not null;type:text"`
	DeployHash string           `gorm:"column:deploy_hash;not null;type:text"`
	Account    string           `gorm:"column:account;not null;default:'';type:text"`
	// Raw is the JSON snapshot of the change
	Raw       datatypes.JSON `gorm:"column:raw;type:jsonb"`
	CreatedAt time.Time      `gorm:"column:created_at;not null;default:now()"`
}

// TableName specifies the table name for the InvoiceEvent model
func (InvoiceEvent) TableName() string {
	return "invoice_events"
}
