package records

import (
	"time"

	"github.com/Eras256/FlowFi/internal/domain"
)

const (
	// SEED_OWNER is the account that minted the seed invoices on testnet
	SEED_OWNER = "0202a4d9d6e4ac827ddd6a6e08a53dfde6181ec7d9d058e215a36cea17f7e1dc6095"
	// SEED_INVESTOR is the account that funded the funded seed invoices
	SEED_INVESTOR = "01a35887f3962a6a232e8e11fa7d4567b6866d68850974aad7289ef287676825f6"
)

// seedFundedAt is when the funded seed invoices were funded
var seedFundedAt = time.Date(2025, 11, 20, 14, 0, 0, 0, time.UTC)

type seedRow struct {
	id          string
	vendor      string
	amount      float64
	grade       domain.Grade
	yieldRate   float64
	termDays    int
	deployHash  string
	fundingHash string // transfer deploy of a funded seed, empty when available
}

// Testnet mints listed in the marketplace before any local record exists
var seedRows = []seedRow{
	{"INV-3392", "Quantum Hardware", 112000, domain.GradeAPlus, 9.5, 90, "be7e48e10d93a43fd277337515ee344e2ab19309a6c33bb976f75509e9221941", "e46f13da533359b600c469ffe64f74afd1b65ca922cc998c25b83add3896bdfc"},
	{"INV-9982", "BioLife Pharma", 89500, domain.GradeAPlus, 10.2, 45, "8528aef0da7e6f5e4da5a1b074cc78441f7c066689acc1d449e9f7626653558e", "84f7bdde35a1cafde8ef6bff16d0fd80cfab6d9e04e359e7fabba8c844a0d1ad"},
	{"INV-4419", "GreenEnergy Co", 67500, domain.GradeAPlus, 10.8, 45, "48bd1c5b8fee2a998e2a23fb2ecd066ed9b761cf5cba5582e9931f01fa76fee1", "1936acf6df2dd2e0b1a5c7a63cccfc7ed65952fad260d0a55927b9ab8241dcc1"},
	{"INV-1175", "Urban Construction", 56000, domain.GradeAMinus, 13.1, 60, "c0d334fb24bce160ee1793ab2493c731280afb03fad1c574e59c9cde5b5c32f6", "2be493a5aa1ea5fb97a076cd98ba8172cc63f9928a706ecbab091ef00f53a782"},
	{"INV-9042", "SolarSystems Ltd", 45000, domain.GradeA, 14.2, 45, "ac83ec2b1b4f5529eaa6479f08248dfffbe8c309236f203c3b02bb6f823ca43d", "3559db421e1d0e5f7e31f5bae6067c645a6b439b321d2ff4f6192e7bd06f1fc2"},
	{"INV-5523", "MedTech Solutions", 28300, domain.GradeA, 13.4, 30, "d451f737c7423980d2054c5ab4949c749bef50927c55406e4a223fc310f3197f", "b3fe47ca7d46e1e68ff8d5a824e7837f87bc3f1ac674ab72b18a95b48474f0fc"},
	{"INV-2921", "AgriFuture Corp", 125000, domain.GradeBPlus, 15.5, 180, "7b314b1ad0ea3ccbbd95cd441866848f6057938fbd893b9f799c505dcdb50e9f", "41369d467282cd184153b96bec7d51e81c7b4d560b56ccfaae1d84a3cabadf1e"},
	{"INV-8410", "CyberShield Sec", 32000, domain.GradeA, 12.0, 30, "a5cec810dc5cca9b956756d290421eae6cbe99d08b65f26e766e9805b6baa75e", "96f5342c9497bbd9c72c40dc8f4d90875fad61e8934fcfe99fe5aa5b56d6228d"},
	{"INV-3882", "BlueOcean Logistics", 78000, domain.GradeA, 11.5, 60, "5cbea6b1e5e51605a6647f0974015ca7bf94a088f2ed3c3bb89c147ad7ebf4f7", ""},
	{"INV-7331", "NanoTech Labs", 42500, domain.GradeBPlus, 16.2, 90, "9f70509840118a9fc0c7234b1fd761f78abef3c941acccefcd9138199b673f2f", ""},
	{"INV-1029", "SpaceX Dynamics", 215000, domain.GradeAPlus, 9.8, 120, "632a44991ec1b06e6557f63d2ac3eeb553f75b509504d459c365b083042beef0", ""},
	{"INV-6644", "EcoBlock Materials", 18900, domain.GradeB, 14.8, 45, "3d45b81216a2695aef278f67b89b2e3b3535425474774030ac01e153f61aa7fe", ""},
	{"INV-5511", "FusionCore Energy", 95000, domain.GradeA, 12.5, 60, "7b4dc4639f14133c7db3d819923db8f8210f1c24ab35ac38c29caed481504221", ""},
	{"INV-4928", "GlobalNet Telecom", 62000, domain.GradeAMinus, 13.0, 30, "60165c702d8219888439cc43dbe5a6872b70a6c887bb2e7b51d43404b59bbd47", ""},
	{"INV-8172", "SmartCity Infra", 145000, domain.GradeAPlus, 10.0, 90, "cc28354977044f2b1b0c0620f19b8f7abb14b473508787000e1245f33c449abd", ""},
	{"INV-3320", "AeroSpace Parts", 38000, domain.GradeBPlus, 15.0, 45, "d5c7b34046c04bfd1b896da93c90553fa2ecf411cf60c453b0b82bcf0949e928", ""},
	{"INV-2299", "DeepBlue Marine", 54000, domain.GradeA, 12.8, 60, "e64c2a1007a1069d06268afd473142ed7c4e610adaa368b81c935e8f9880592e", ""},
	{"INV-7741", "Vertex Robotics", 88000, domain.GradeA, 11.2, 30, "8af93f6668eb2a0231a5d71314d56651da4dc6fae8240dc0467bee831a93b286", ""},
	{"INV-1182", "CloudScale Data", 26500, domain.GradeB, 14.5, 15, "2df12740ff63c8c39b3f4dd4e8568087c9e272c580ac7d09fddd7f62a9d2e679", ""},
	{"INV-5501", "FutureFintech", 69000, domain.GradeAMinus, 13.5, 60, "673f73a9dd112f2a5a2975ac6b7d735167daa901fb91c9cc82119b08d42ada39", ""},
}

// SeedInvoices returns the fixed demonstration invoices. The slice is fresh on every call.
func SeedInvoices() []domain.Invoice {
	invoices := make([]domain.Invoice, 0, len(seedRows))
	for _, row := range seedRows {
		inv := domain.Invoice{
			ID:            row.id,
			VendorName:    row.vendor,
			Amount:        row.amount,
			Currency:      domain.DEFAULT_CURRENCY,
			Grade:         row.grade,
			Valuation:     row.amount,
			TokenID:       row.id,
			DeployHash:    row.deployHash,
			OwnerAddress:  SEED_OWNER,
			YieldRate:     row.yieldRate,
			TermDays:      row.termDays,
			FundingStatus: domain.FundingStatusAvailable,
		}
		if row.fundingHash != "" {
			fundedAt := seedFundedAt
			inv.FundingStatus = domain.FundingStatusFunded
			inv.InvestorDeployHash = row.fundingHash
			inv.InvestorAddress = SEED_INVESTOR
			inv.FundedAt = &fundedAt
		}
		invoices = append(invoices, inv)
	}
	return invoices
}

// IsSeed reports whether id belongs to the seed set
func IsSeed(id string) bool {
	for _, row := range seedRows {
		if row.id == id {
			return true
		}
	}
	return false
}
