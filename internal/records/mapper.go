package records

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/Eras256/FlowFi/internal/domain"
	"github.com/Eras256/FlowFi/internal/mirror"
	"github.com/Eras256/FlowFi/internal/store/schema"
)

const dateLayout = "2006-01-02"

// FromSchema converts a remote row into the canonical invoice
func FromSchema(row *schema.Invoice) domain.Invoice {
	inv := domain.Invoice{
		ID:            row.InvoiceID,
		FileName:      row.FileName,
		VendorName:    row.VendorName,
		ClientName:    row.ClientName,
		Amount:        row.Amount,
		Currency:      row.Currency,
		DueDate:       row.DueDate,
		Grade:         normalizeGrade(row.Grade),
		Valuation:     row.Valuation,
		Confidence:    row.Confidence,
		Summary:       row.Summary,
		QuantumScore:  row.QuantumScore,
		ModelUsed:     row.ModelUsed,
		IPFSURL:       row.IPFSURL,
		TokenID:       row.TokenID,
		DeployHash:    row.DeployHash,
		OwnerAddress:  row.OwnerAddress,
		YieldRate:     row.YieldRate,
		TermDays:      row.TermDays,
		FundingStatus: domain.FundingStatus(row.FundingStatus),
		FundedAt:      row.FundedAt,
		CreatedAt:     row.CreatedAt,
	}
	if len(row.TokenMetadata) > 0 {
		inv.TokenMetadata = json.RawMessage(row.TokenMetadata)
	}
	if row.InvestorDeployHash != nil {
		inv.InvestorDeployHash = *row.InvestorDeployHash
	}
	if row.InvestorAddress != nil {
		inv.InvestorAddress = *row.InvestorAddress
	}
	if inv.FundingStatus != domain.FundingStatusFunded {
		inv.FundingStatus = domain.FundingStatusAvailable
	}
	if inv.Currency == "" {
		inv.Currency = domain.DEFAULT_CURRENCY
	}
	return inv
}

// ToSchema converts the canonical invoice into a remote row
func ToSchema(inv *domain.Invoice) *schema.Invoice {
	row := &schema.Invoice{
		InvoiceID:     inv.ID,
		FileName:      inv.FileName,
		VendorName:    inv.VendorName,
		ClientName:    inv.ClientName,
		Amount:        inv.Amount,
		Currency:      inv.Currency,
		DueDate:       inv.DueDate,
		Grade:         string(inv.Grade),
		Valuation:     inv.Valuation,
		Confidence:    inv.Confidence,
		Summary:       inv.Summary,
		QuantumScore:  inv.QuantumScore,
		ModelUsed:     inv.ModelUsed,
		IPFSURL:       inv.IPFSURL,
		TokenID:       inv.TokenID,
		DeployHash:    inv.DeployHash,
		OwnerAddress:  inv.OwnerAddress,
		YieldRate:     inv.YieldRate,
		TermDays:      inv.TermDays,
		FundingStatus: string(inv.FundingStatus),
		FundedAt:      inv.FundedAt,
		CreatedAt:     inv.CreatedAt,
	}
	if len(inv.TokenMetadata) > 0 {
		row.TokenMetadata = datatypes.JSON(inv.TokenMetadata)
	}
	if inv.InvestorDeployHash != "" {
		row.InvestorDeployHash = &inv.InvestorDeployHash
	}
	if inv.InvestorAddress != "" {
		row.InvestorAddress = &inv.InvestorAddress
	}
	if row.Currency == "" {
		row.Currency = domain.DEFAULT_CURRENCY
	}
	if row.FundingStatus == "" {
		row.FundingStatus = string(domain.FundingStatusAvailable)
	}
	return row
}

// FromMirror converts a mirror entry into the canonical invoice. Entries without an
// identifier are rejected, as are funded entries that carry no funding deploy hash.
func FromMirror(r mirror.Record) (domain.Invoice, bool) {
	id := strings.TrimSpace(r.Key())
	if id == "" {
		return domain.Invoice{}, false
	}

	grade := normalizeGrade(firstNonEmpty(r.RiskScore, r.Grade, r.Score))
	inv := domain.Invoice{
		ID:            id,
		FileName:      r.FileName,
		VendorName:    firstNonEmpty(r.VendorName, r.Vendor),
		ClientName:    r.ClientName,
		Amount:        parseNumber(string(r.Amount)),
		Currency:      firstNonEmpty(r.Currency, domain.DEFAULT_CURRENCY),
		DueDate:       parseTime(r.DueDate),
		Grade:         grade,
		Valuation:     parseNumber(string(r.Valuation)),
		Confidence:    parseNumber(string(r.Confidence)),
		Summary:       r.Summary,
		ModelUsed:     r.ModelUsed,
		IPFSURL:       firstNonEmpty(r.IPFSURLSnake, r.IPFSURL),
		TokenID:       firstNonEmpty(r.TokenIDSnake, r.TokenID),
		TokenMetadata: r.TokenMetadata,
		DeployHash:    firstNonEmpty(r.DeployHashSnake, r.DeployHash),
		OwnerAddress:  firstNonEmpty(r.OwnerAddress, r.Owner),
		YieldRate:     parseNumber(firstNonEmpty(string(r.YieldRate), string(r.Yield))),
		TermDays:      int(parseNumber(firstNonEmpty(string(r.TermDays), string(r.Term)))),
		FundingStatus: domain.FundingStatusAvailable,
	}

	if qs := strings.TrimSpace(string(r.QuantumScore)); qs != "" {
		v := parseNumber(qs)
		inv.QuantumScore = &v
	}
	if inv.YieldRate == 0 && grade.Valid() {
		inv.YieldRate = grade.YieldRate()
	}
	if inv.TermDays == 0 && grade.Valid() {
		inv.TermDays = grade.TermDays()
	}
	if created := parseTime(firstNonEmpty(r.CreatedAt, r.MintedAt)); created != nil {
		inv.CreatedAt = *created
	}

	if r.IsFunded || strings.EqualFold(r.FundingStatus, string(domain.FundingStatusFunded)) {
		inv.FundingStatus = domain.FundingStatusFunded
		inv.InvestorDeployHash = r.InvestorDeployHash
		inv.InvestorAddress = r.InvestorAddress
		inv.FundedAt = parseTime(r.FundedAt)
	}

	if err := inv.Validate(); err != nil {
		return domain.Invoice{}, false
	}
	return inv, true
}

// ToMirror converts the canonical invoice into a mirror entry. Only the snake_case
// names are written; the legacy spellings are read-only.
func ToMirror(inv *domain.Invoice) mirror.Record {
	r := mirror.Record{
		InvoiceID:          inv.ID,
		VendorName:         inv.VendorName,
		FileName:           inv.FileName,
		ClientName:         inv.ClientName,
		Amount:             formatNumber(inv.Amount),
		Currency:           inv.Currency,
		RiskScore:          string(inv.Grade),
		Valuation:          formatNumber(inv.Valuation),
		Confidence:         formatNumber(inv.Confidence),
		Summary:            inv.Summary,
		ModelUsed:          inv.ModelUsed,
		YieldRate:          formatNumber(inv.YieldRate),
		TermDays:           mirror.Text(strconv.Itoa(inv.TermDays)),
		DeployHashSnake:    inv.DeployHash,
		IPFSURLSnake:       inv.IPFSURL,
		TokenIDSnake:       inv.TokenID,
		TokenMetadata:      inv.TokenMetadata,
		OwnerAddress:       inv.OwnerAddress,
		FundingStatus:      string(inv.FundingStatus),
		InvestorDeployHash: inv.InvestorDeployHash,
		InvestorAddress:    inv.InvestorAddress,
	}
	if inv.DueDate != nil {
		r.DueDate = inv.DueDate.UTC().Format(dateLayout)
	}
	if inv.QuantumScore != nil {
		r.QuantumScore = formatNumber(*inv.QuantumScore)
	}
	if !inv.CreatedAt.IsZero() {
		r.CreatedAt = inv.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	if inv.FundedAt != nil {
		r.FundedAt = inv.FundedAt.UTC().Format(time.RFC3339Nano)
	}
	return r
}

func normalizeGrade(s string) domain.Grade {
	g, _ := domain.ParseGrade(s)
	return g
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// parseNumber reads the leading number of values such as "50000", "$1,200.50",
// "12.5%" or "30 Days". Anything without a leading number is zero.
func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")

	end := 0
	for end < len(s) {
		c := s[end]
		if (c >= '0' && c <= '9') || c == '.' || (end == 0 && (c == '-' || c == '+')) {
			end++
			continue
		}
		break
	}

	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return v
}

func formatNumber(v float64) mirror.Text {
	return mirror.Text(strconv.FormatFloat(v, 'f', -1, 64))
}

func parseTime(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, dateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
