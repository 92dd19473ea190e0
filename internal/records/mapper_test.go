package records_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eras256/FlowFi/internal/domain"
	"github.com/Eras256/FlowFi/internal/mirror"
	"github.com/Eras256/FlowFi/internal/records"
	"github.com/Eras256/FlowFi/internal/store/schema"
)

func decodeRecord(t *testing.T, raw string) mirror.Record {
	t.Helper()
	var r mirror.Record
	require.NoError(t, json.Unmarshal([]byte(raw), &r))
	return r
}

func TestFromMirror(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		validate func(*testing.T, domain.Invoice)
	}{
		{
			name: "legacy camelCase record",
			raw: `{"id":"INV-1","vendor":"Acme","amount":"50000","score":"a","yield":"12.5%","term":"30 Days",
				"deployHash":"h1","ipfsUrl":"ipfs://Qm1","tokenId":"INV-1","owner":"02ab","mintedAt":"2025-01-02T03:04:05Z","isFunded":false}`,
			validate: func(t *testing.T, inv domain.Invoice) {
				assert.Equal(t, "INV-1", inv.ID)
				assert.Equal(t, "Acme", inv.VendorName)
				assert.Equal(t, 50000.0, inv.Amount)
				assert.Equal(t, domain.GradeA, inv.Grade)
				assert.Equal(t, 12.5, inv.YieldRate)
				assert.Equal(t, 30, inv.TermDays)
				assert.Equal(t, "h1", inv.DeployHash)
				assert.Equal(t, "ipfs://Qm1", inv.IPFSURL)
				assert.Equal(t, "02ab", inv.OwnerAddress)
				assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), inv.CreatedAt)
				assert.Equal(t, domain.FundingStatusAvailable, inv.FundingStatus)
				assert.Equal(t, domain.DEFAULT_CURRENCY, inv.Currency)
			},
		},
		{
			name: "snake_case record wins over legacy names",
			raw: `{"invoice_id":"INV-2","id":"ignored","vendor_name":"Beta","amount":1200.5,"grade":"B+",
				"yield_rate":15.5,"term_days":60,"deploy_hash":"h2","deployHash":"old","funding_status":"funded",
				"investor_deploy_hash":"f1","investor_address":"01cd","funded_at":"2025-02-01T00:00:00Z"}`,
			validate: func(t *testing.T, inv domain.Invoice) {
				assert.Equal(t, "INV-2", inv.ID)
				assert.Equal(t, 1200.5, inv.Amount)
				assert.Equal(t, domain.GradeBPlus, inv.Grade)
				assert.Equal(t, 15.5, inv.YieldRate)
				assert.Equal(t, 60, inv.TermDays)
				assert.Equal(t, "h2", inv.DeployHash)
				assert.True(t, inv.IsFunded())
				assert.Equal(t, "f1", inv.InvestorDeployHash)
				require.NotNil(t, inv.FundedAt)
			},
		},
		{
			name: "non-numeric values coerce to zero and terms derive from grade",
			raw:  `{"id":"INV-3","amount":"n/a","risk_score":"A-","yield":"soon","term":"TBD"}`,
			validate: func(t *testing.T, inv domain.Invoice) {
				assert.Zero(t, inv.Amount)
				assert.Equal(t, domain.GradeAMinus.YieldRate(), inv.YieldRate)
				assert.Equal(t, 30, inv.TermDays)
			},
		},
		{
			name: "currency formatted amount",
			raw:  `{"id":"INV-4","amount":"$1,250.75","quantum_score":"88.5"}`,
			validate: func(t *testing.T, inv domain.Invoice) {
				assert.Equal(t, 1250.75, inv.Amount)
				require.NotNil(t, inv.QuantumScore)
				assert.Equal(t, 88.5, *inv.QuantumScore)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, ok := records.FromMirror(decodeRecord(t, tt.raw))
			require.True(t, ok)
			tt.validate(t, inv)
		})
	}
}

func TestFromMirror_MissingID(t *testing.T) {
	_, ok := records.FromMirror(decodeRecord(t, `{"vendor":"Nobody","amount":10}`))
	assert.False(t, ok)
}

func TestFromMirror_FundedWithoutHash(t *testing.T) {
	_, ok := records.FromMirror(decodeRecord(t, `{"id":"INV-1","vendor":"Acme","isFunded":true}`))
	assert.False(t, ok)

	_, ok = records.FromMirror(decodeRecord(t, `{"invoice_id":"INV-2","funding_status":"funded"}`))
	assert.False(t, ok)
}

func TestMirrorRoundTrip(t *testing.T) {
	due := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	quantum := 88.5
	original := domain.Invoice{
		ID:            "INV-01J0000000000000000000000",
		FileName:      "invoice.pdf",
		VendorName:    "Acme",
		Amount:        9850,
		Currency:      "USD",
		DueDate:       &due,
		Grade:         domain.GradeA,
		Valuation:     9850,
		Confidence:    0.92,
		QuantumScore:  &quantum,
		IPFSURL:       "ipfs://QmX",
		TokenID:       "INV-01J0000000000000000000000",
		TokenMetadata: json.RawMessage(`{"name":"FlowFi Invoice"}`),
		DeployHash:    "abc",
		OwnerAddress:  "02ab",
		YieldRate:     12,
		TermDays:      30,
		FundingStatus: domain.FundingStatusAvailable,
		CreatedAt:     time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(records.ToMirror(&original))
	require.NoError(t, err)

	// only canonical names are written
	assert.NotContains(t, string(data), `"deployHash"`)
	assert.Contains(t, string(data), `"deploy_hash":"abc"`)

	got, ok := records.FromMirror(decodeRecord(t, string(data)))
	require.True(t, ok)
	assert.Equal(t, original, got)
}

func TestSchemaRoundTrip(t *testing.T) {
	funded := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	original := domain.Invoice{
		ID:                 "INV-9",
		VendorName:         "Acme",
		Amount:             100,
		Currency:           "USD",
		Grade:              domain.GradeB,
		Valuation:          100,
		Confidence:         0.5,
		DeployHash:         "abc",
		YieldRate:          16.5,
		TermDays:           60,
		FundingStatus:      domain.FundingStatusFunded,
		InvestorDeployHash: "def",
		InvestorAddress:    "01cd",
		FundedAt:           &funded,
		CreatedAt:          time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	row := records.ToSchema(&original)
	require.NotNil(t, row.InvestorDeployHash)
	assert.Equal(t, "def", *row.InvestorDeployHash)
	assert.Equal(t, "funded", row.FundingStatus)

	assert.Equal(t, original, records.FromSchema(row))
}

func TestFromSchema_Defaults(t *testing.T) {
	inv := records.FromSchema(&schema.Invoice{InvoiceID: "INV-1", Grade: " a+ "})
	assert.Equal(t, domain.GradeAPlus, inv.Grade)
	assert.Equal(t, domain.FundingStatusAvailable, inv.FundingStatus)
	assert.Equal(t, domain.DEFAULT_CURRENCY, inv.Currency)
	assert.Nil(t, inv.TokenMetadata)
}

func TestSeedInvoices(t *testing.T) {
	seeds := records.SeedInvoices()
	require.Len(t, seeds, 20)

	funded := 0
	ids := make(map[string]bool)
	for _, inv := range seeds {
		assert.False(t, ids[inv.ID], "duplicate seed id %s", inv.ID)
		ids[inv.ID] = true
		assert.True(t, inv.Grade.Valid())
		assert.Equal(t, records.SEED_OWNER, inv.OwnerAddress)
		assert.True(t, records.IsSeed(inv.ID))
		require.NoError(t, inv.Validate())
		if inv.IsFunded() {
			funded++
			assert.Len(t, inv.InvestorDeployHash, 64)
			assert.NotEqual(t, inv.DeployHash, inv.InvestorDeployHash)
			assert.Equal(t, records.SEED_INVESTOR, inv.InvestorAddress)
			assert.NotNil(t, inv.FundedAt)
		}
	}
	assert.Equal(t, 8, funded)
	assert.Equal(t, "INV-3392", seeds[0].ID)

	// callers get their own copy
	seeds[0].VendorName = "changed"
	assert.Equal(t, "Quantum Hardware", records.SeedInvoices()[0].VendorName)
}
