package records_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Eras256/FlowFi/internal/domain"
	"github.com/Eras256/FlowFi/internal/records"
)

func TestStats(t *testing.T) {
	tests := []struct {
		name     string
		invoices []domain.Invoice
		expected domain.MarketStats
	}{
		{
			name:     "empty listing",
			invoices: nil,
			expected: domain.MarketStats{},
		},
		{
			name: "mixed",
			invoices: []domain.Invoice{
				{ID: "1", Amount: 1000, YieldRate: 10, FundingStatus: domain.FundingStatusFunded},
				{ID: "2", Amount: 3000, YieldRate: 14, FundingStatus: domain.FundingStatusAvailable},
			},
			expected: domain.MarketStats{TotalInvoices: 2, FundedCount: 1, TotalVolume: 4000, AvgYield: 12},
		},
		{
			name: "non-finite values count as zero",
			invoices: []domain.Invoice{
				{ID: "1", Amount: math.NaN(), YieldRate: math.Inf(1)},
				{ID: "2", Amount: 500, YieldRate: 8},
			},
			expected: domain.MarketStats{TotalInvoices: 2, TotalVolume: 500, AvgYield: 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, records.Stats(tt.invoices))
		})
	}
}

func TestStats_Seed(t *testing.T) {
	stats := records.Stats(records.SeedInvoices())
	assert.Equal(t, 20, stats.TotalInvoices)
	assert.Equal(t, 8, stats.FundedCount)
	assert.InDelta(t, 1487200, stats.TotalVolume, 0.001)
}

func TestApply(t *testing.T) {
	invoices := append([]domain.Invoice{
		{ID: "INV-LOCAL", VendorName: "Zeta Freight", Amount: 1, YieldRate: 30, TermDays: 5},
	}, records.SeedInvoices()...)

	minted := records.Apply(invoices, records.Query{Filter: records.FilterMinted})
	assert.Len(t, minted, 1)

	funded := records.Apply(invoices, records.Query{Filter: records.FilterFunded})
	assert.Len(t, funded, 8)

	available := records.Apply(invoices, records.Query{Filter: records.FilterAvailable})
	assert.Len(t, available, 13)

	search := records.Apply(invoices, records.Query{Search: "zeta"})
	assert.Len(t, search, 1)
	search = records.Apply(invoices, records.Query{Search: "inv-33"})
	assert.Len(t, search, 2)

	byAmount := records.Apply(invoices, records.Query{SortBy: records.SortAmount})
	assert.Equal(t, "INV-1029", byAmount[0].ID)

	byYield := records.Apply(invoices, records.Query{SortBy: records.SortYield})
	assert.Equal(t, "INV-LOCAL", byYield[0].ID)

	byTerm := records.Apply(invoices, records.Query{SortBy: records.SortTerm})
	assert.Equal(t, "INV-LOCAL", byTerm[0].ID)
	assert.Equal(t, "INV-1182", byTerm[1].ID)

	// the input order is preserved
	assert.Equal(t, "INV-LOCAL", invoices[0].ID)
}
