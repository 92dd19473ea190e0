package store

import (
	"context"
	"time"

	"github.com/Eras256/FlowFi/internal/store/schema"
)

// MarkFundedInput carries the funding details recorded for an invoice
type MarkFundedInput struct {
	InvestorDeployHash string
	InvestorAddress    string
	FundedAt           time.Time
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// Ping checks the database connection
	Ping(ctx context.Context) error
	// CreateInvoice inserts a minted invoice and journals the mint event
	CreateInvoice(ctx context.Context, invoice *schema.Invoice) error
	// GetInvoice retrieves an invoice by its public identifier, nil when absent
	GetInvoice(ctx context.Context, invoiceID string) (*schema.Invoice, error)
	// ListInvoices retrieves every invoice, newest first
	ListInvoices(ctx context.Context) ([]schema.Invoice, error)
	// MarkInvoiceFunded records the funding of an invoice and journals the funding event
	MarkInvoiceFunded(ctx context.Context, invoiceID string, input MarkFundedInput) error
	// GetInvoiceEvents retrieves the lifecycle journal of an invoice, oldest first
	GetInvoiceEvents(ctx context.Context, invoiceID string) ([]schema.InvoiceEvent, error)
}
