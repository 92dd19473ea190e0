package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/Eras256/FlowFi/internal/domain"
	"github.com/Eras256/FlowFi/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

// buildTestInvoice creates a minted invoice row
func buildTestInvoice(invoiceID string, createdAt time.Time) *schema.Invoice {
	quantum := 88.5
	return &schema.Invoice{
		InvoiceID:     invoiceID,
		FileName:      invoiceID + ".pdf",
		VendorName:    "ACME Corp",
		Amount:        9850,
		Currency:      "USD",
		Grade:         "A",
		Valuation:     9850,
		Confidence:    0.92,
		Summary:       "Verified corporate invoice",
		QuantumScore:  &quantum,
		ModelUsed:     "gemini-1.5-flash",
		IPFSURL:       "ipfs://QmTest" + invoiceID,
		TokenID:       invoiceID,
		DeployHash:    "deploy-" + invoiceID,
		OwnerAddress:  "0202a4d9d6e4ac827ddd6a6e08a53dfde6181ec7d9d058e215a36cea17f7e1dc6095",
		TokenMetadata: datatypes.JSON(`{"name":"FlowFi Invoice ` + invoiceID + `"}`),
		YieldRate:     12,
		TermDays:      30,
		FundingStatus: string(domain.FundingStatusAvailable),
		CreatedAt:     createdAt,
	}
}

// =============================================================================
// Tests
// =============================================================================

func testCreateAndGetInvoice(t *testing.T, store Store) {
	ctx := context.Background()
	invoice := buildTestInvoice("INV-TEST-1", time.Now().UTC())

	require.NoError(t, store.CreateInvoice(ctx, invoice))
	assert.NotZero(t, invoice.ID)

	got, err := store.GetInvoice(ctx, "INV-TEST-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "ACME Corp", got.VendorName)
	assert.Equal(t, "A", got.Grade)
	assert.InDelta(t, 9850, got.Valuation, 0.001)
	require.NotNil(t, got.QuantumScore)
	assert.InDelta(t, 88.5, *got.QuantumScore, 0.001)
	assert.Equal(t, string(domain.FundingStatusAvailable), got.FundingStatus)
	assert.Nil(t, got.InvestorDeployHash)

	var metadata map[string]string
	require.NoError(t, json.Unmarshal(got.TokenMetadata, &metadata))
	assert.Equal(t, "FlowFi Invoice INV-TEST-1", metadata["name"])

	events, err := store.GetInvoiceEvents(ctx, "INV-TEST-1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, schema.InvoiceEventTypeMinted, events[0].EventType)
	assert.Equal(t, "deploy-INV-TEST-1", events[0].DeployHash)
}

func testCreateInvoiceDuplicate(t *testing.T, store Store) {
	ctx := context.Background()
	require.NoError(t, store.CreateInvoice(ctx, buildTestInvoice("INV-DUP", time.Now().UTC())))

	err := store.CreateInvoice(ctx, buildTestInvoice("INV-DUP", time.Now().UTC()))
	assert.ErrorIs(t, err, domain.ErrInvoiceAlreadyExists)
}

func testGetInvoiceNotFound(t *testing.T, store Store) {
	got, err := store.GetInvoice(context.Background(), "INV-MISSING")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func testListInvoicesNewestFirst(t *testing.T, store Store) {
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)

	require.NoError(t, store.CreateInvoice(ctx, buildTestInvoice("INV-OLD", base)))
	require.NoError(t, store.CreateInvoice(ctx, buildTestInvoice("INV-NEW", base.Add(30*time.Minute))))
	require.NoError(t, store.CreateInvoice(ctx, buildTestInvoice("INV-MID", base.Add(10*time.Minute))))

	invoices, err := store.ListInvoices(ctx)
	require.NoError(t, err)

	var ids []string
	for _, inv := range invoices {
		ids = append(ids, inv.InvoiceID)
	}
	assert.Equal(t, []string{"INV-NEW", "INV-MID", "INV-OLD"}, ids)
}

func testMarkInvoiceFunded(t *testing.T, store Store) {
	ctx := context.Background()
	require.NoError(t, store.CreateInvoice(ctx, buildTestInvoice("INV-FUND", time.Now().UTC())))

	fundedAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	err := store.MarkInvoiceFunded(ctx, "INV-FUND", MarkFundedInput{
		InvestorDeployHash: "funding-hash",
		InvestorAddress:    "01investor",
		FundedAt:           fundedAt,
	})
	require.NoError(t, err)

	got, err := store.GetInvoice(ctx, "INV-FUND")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, string(domain.FundingStatusFunded), got.FundingStatus)
	require.NotNil(t, got.InvestorDeployHash)
	assert.Equal(t, "funding-hash", *got.InvestorDeployHash)
	require.NotNil(t, got.InvestorAddress)
	assert.Equal(t, "01investor", *got.InvestorAddress)
	require.NotNil(t, got.FundedAt)
	assert.True(t, fundedAt.Equal(*got.FundedAt))

	// Second funding is rejected
	err = store.MarkInvoiceFunded(ctx, "INV-FUND", MarkFundedInput{InvestorDeployHash: "other", FundedAt: time.Now()})
	assert.ErrorIs(t, err, domain.ErrAlreadyFunded)

	events, err := store.GetInvoiceEvents(ctx, "INV-FUND")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, schema.InvoiceEventTypeMinted, events[0].EventType)
	assert.Equal(t, schema.InvoiceEventTypeFunded, events[1].EventType)
	assert.Equal(t, "funding-hash", events[1].DeployHash)
	assert.Equal(t, "01investor", events[1].Account)
}

func testMarkInvoiceFundedErrors(t *testing.T, store Store) {
	ctx := context.Background()

	err := store.MarkInvoiceFunded(ctx, "INV-NOPE", MarkFundedInput{InvestorDeployHash: "h", FundedAt: time.Now()})
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)

	err = store.MarkInvoiceFunded(ctx, "INV-NOPE", MarkFundedInput{FundedAt: time.Now()})
	assert.ErrorIs(t, err, domain.ErrInvalidInvoice)
}

func testPing(t *testing.T, store Store) {
	assert.NoError(t, store.Ping(context.Background()))
}

func TestNormalizeConnectionPoolSettings(t *testing.T) {
	open, idle, lifetime, idleTime := NormalizeConnectionPoolSettings(0, 0, 0, 0)
	assert.Equal(t, 10, open)
	assert.Equal(t, 2, idle)
	assert.Equal(t, 5*time.Minute, lifetime)
	assert.Equal(t, 10*time.Minute, idleTime)

	open, idle, _, _ = NormalizeConnectionPoolSettings(4, 8, time.Minute, time.Minute)
	assert.Equal(t, 4, open)
	assert.Equal(t, 4, idle)
}

// RunStoreTests runs every store test against the given implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"Ping", testPing},
		{"CreateAndGetInvoice", testCreateAndGetInvoice},
		{"CreateInvoiceDuplicate", testCreateInvoiceDuplicate},
		{"GetInvoiceNotFound", testGetInvoiceNotFound},
		{"ListInvoicesNewestFirst", testListInvoicesNewestFirst},
		{"MarkInvoiceFunded", testMarkInvoiceFunded},
		{"MarkInvoiceFundedErrors", testMarkInvoiceFundedErrors},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
