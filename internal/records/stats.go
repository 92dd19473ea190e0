package records

import (
	"math"
	"sort"
	"strings"

	"github.com/Eras256/FlowFi/internal/domain"
)

// Listing filters
const (
	FilterAll       = "all"
	FilterMinted    = "minted"
	FilterFunded    = "funded"
	FilterAvailable = "available"
)

// Listing sort keys
const (
	SortAmount = "amount"
	SortYield  = "yield"
	SortTerm   = "term"
)

// Query narrows and orders a marketplace listing
type Query struct {
	Filter string
	Search string
	SortBy string
}

// Stats aggregates the listed invoices. Non-finite amounts and yields count as zero.
func Stats(invoices []domain.Invoice) domain.MarketStats {
	stats := domain.MarketStats{TotalInvoices: len(invoices)}
	var yieldSum float64
	for _, inv := range invoices {
		if inv.IsFunded() {
			stats.FundedCount++
		}
		stats.TotalVolume += finite(inv.Amount)
		yieldSum += finite(inv.YieldRate)
	}
	if len(invoices) > 0 {
		stats.AvgYield = yieldSum / float64(len(invoices))
	}
	return stats
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Apply filters and sorts a listing. The input slice is not modified.
func Apply(invoices []domain.Invoice, q Query) []domain.Invoice {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]domain.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		switch q.Filter {
		case FilterMinted:
			if IsSeed(inv.ID) {
				continue
			}
		case FilterFunded:
			if !inv.IsFunded() {
				continue
			}
		case FilterAvailable:
			if inv.IsFunded() {
				continue
			}
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(inv.VendorName), search) &&
			!strings.Contains(strings.ToLower(inv.ID), search) {
			continue
		}
		out = append(out, inv)
	}

	switch q.SortBy {
	case SortAmount:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Amount > out[j].Amount })
	case SortYield:
		sort.SliceStable(out, func(i, j int) bool { return out[i].YieldRate > out[j].YieldRate })
	case SortTerm:
		sort.SliceStable(out, func(i, j int) bool { return out[i].TermDays < out[j].TermDays })
	}
	return out
}
