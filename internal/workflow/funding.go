package workflow

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Eras256/FlowFi/internal/adapter"
	"github.com/Eras256/FlowFi/internal/casper"
	"github.com/Eras256/FlowFi/internal/deployer"
	"github.com/Eras256/FlowFi/internal/domain"
	"github.com/Eras256/FlowFi/internal/logger"
	"github.com/Eras256/FlowFi/internal/records"
)

// FundingState is the funding progress of one invoice
type FundingState string

const (
	FundingUnfunded  FundingState = "unfunded"
	FundingInvesting FundingState = "investing"
	FundingFunded    FundingState = "funded"
)

// FundingAttempt is the last known funding state of an invoice
type FundingAttempt struct {
	InvoiceID  string       `json:"invoice_id"`
	State      FundingState `json:"state"`
	Motes      uint64       `json:"motes,omitempty"`
	Recipient  string       `json:"recipient,omitempty"`
	DeployHash string       `json:"deploy_hash,omitempty"`
	Error      string       `json:"error,omitempty"`
}

// FundDeps are the collaborators of the funding workflow
type FundDeps struct {
	Deployer deployer.Deployer
	Wallet   deployer.Wallet
	Records  records.Store
	Clock    adapter.Clock
	// Vault receives the transfer when an invoice has no usable owner key
	Vault casper.PublicKey
}

// Funder transfers CSPR to invoice owners and records the funding
type Funder struct {
	deps FundDeps

	mu       sync.Mutex
	attempts map[string]*FundingAttempt
}

// NewFunder creates a funding workflow
func NewFunder(deps FundDeps) *Funder {
	return &Funder{
		deps:     deps,
		attempts: make(map[string]*FundingAttempt),
	}
}

// InvestmentMotes converts an invoice amount in USD to the motes transferred, at the
// reference CSPR price and capped at MAX_INVESTMENT_MOTES
func InvestmentMotes(amount float64) uint64 {
	if math.IsNaN(amount) || amount <= 0 {
		return 0
	}
	motes := math.Floor(amount/domain.CSPR_USD_PRICE) * float64(domain.MOTES_PER_CSPR)
	if motes >= float64(domain.MAX_INVESTMENT_MOTES) {
		return domain.MAX_INVESTMENT_MOTES
	}
	return uint64(motes)
}

// Offerable reports whether the invoice may still be funded. An invoice whose transfer
// was sent but not recorded is not offered again.
func (f *Funder) Offerable(invoice *domain.Invoice) bool {
	if invoice == nil || invoice.IsFunded() {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.attempts[invoice.ID]
	return !ok || (a.State == FundingUnfunded && a.DeployHash == "")
}

// Status returns the last funding attempt of an invoice
func (f *Funder) Status(invoiceID string) FundingAttempt {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.attempts[invoiceID]; ok {
		return *a
	}
	return FundingAttempt{InvoiceID: invoiceID, State: FundingUnfunded}
}

// Fund transfers the investment to the invoice owner and marks the invoice funded. Without a
// connected wallet it starts the connect flow and leaves the invoice unfunded. When an earlier
// transfer was sent but not recorded, only the recording is retried.
func (f *Funder) Fund(ctx context.Context, invoiceID string) (*FundingAttempt, error) {
	ctx = logger.WithFields(ctx, zap.String("invoice_id", invoiceID))

	invoice, err := f.deps.Records.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.IsFunded() {
		return nil, domain.ErrAlreadyFunded
	}

	if !f.deps.Wallet.IsConnected() {
		if err := f.deps.Wallet.Connect(ctx); err != nil {
			logger.WarnCtx(ctx, "Wallet connection failed", zap.Error(err))
		}
		return nil, domain.ErrWalletNotConnected
	}

	attempt, err := f.begin(invoiceID)
	if err != nil {
		return nil, err
	}

	investor := ""
	if pub, err := f.deps.Wallet.PublicKey(); err == nil {
		investor = pub.Hex()
	}
	if investor != "" && strings.EqualFold(investor, invoice.OwnerAddress) {
		return f.fail(ctx, attempt, domain.ErrSelfFunding)
	}

	if attempt.DeployHash == "" {
		amount := invoice.Amount
		if amount <= 0 {
			amount = invoice.Valuation
		}
		attempt.Motes = InvestmentMotes(amount)
		recipient := f.recipient(ctx, invoice)
		attempt.Recipient = recipient.Hex()

		transferID := uint64(f.deps.Clock.Now().UnixMilli())
		deployHash, err := f.deps.Deployer.Send(ctx, f.deps.Wallet, deployer.TransferIntent(attempt.Motes, recipient, transferID))
		if err != nil {
			return f.fail(ctx, attempt, err)
		}
		attempt.DeployHash = deployHash
	} else {
		logger.InfoCtx(ctx, "Transfer already sent, retrying funding record", zap.String("deploy_hash", attempt.DeployHash))
	}

	if _, err := f.deps.Records.MarkFunded(ctx, invoiceID, records.FundingInput{
		DeployHash:      attempt.DeployHash,
		InvestorAddress: investor,
	}); err != nil {
		return f.fail(ctx, attempt, fmt.Errorf("transfer %s sent but funding not recorded: %w", attempt.DeployHash, err))
	}

	return f.finish(ctx, attempt, FundingFunded, ""), nil
}

// begin moves the invoice to investing. A sent but unrecorded transfer is carried over.
func (f *Funder) begin(invoiceID string) (*FundingAttempt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	next := FundingAttempt{InvoiceID: invoiceID, State: FundingInvesting}
	if a, ok := f.attempts[invoiceID]; ok {
		switch a.State {
		case FundingInvesting:
			return nil, domain.ErrWorkflowBusy
		case FundingFunded:
			return nil, domain.ErrAlreadyFunded
		}
		next.DeployHash = a.DeployHash
		next.Motes = a.Motes
		next.Recipient = a.Recipient
	}
	stored := next
	f.attempts[invoiceID] = &stored
	return &next, nil
}

func (f *Funder) fail(ctx context.Context, attempt *FundingAttempt, err error) (*FundingAttempt, error) {
	logger.WarnCtx(ctx, "Funding failed", zap.Error(err))
	return f.finish(ctx, attempt, FundingUnfunded, err.Error()), err
}

func (f *Funder) finish(ctx context.Context, attempt *FundingAttempt, state FundingState, errMsg string) *FundingAttempt {
	attempt.State = state
	attempt.Error = errMsg

	f.mu.Lock()
	stored := *attempt
	f.attempts[attempt.InvoiceID] = &stored
	f.mu.Unlock()

	logger.InfoCtx(ctx, "Funding workflow transition",
		zap.String("to", string(state)),
		zap.String("deploy_hash", attempt.DeployHash),
	)
	return attempt
}

func (f *Funder) recipient(ctx context.Context, invoice *domain.Invoice) casper.PublicKey {
	if invoice.OwnerAddress != "" {
		owner, err := casper.ParsePublicKeyHex(invoice.OwnerAddress)
		if err == nil {
			return owner
		}
		logger.WarnCtx(ctx, "Invoice owner is not a public key, paying the vault",
			zap.String("owner", invoice.OwnerAddress),
			zap.Error(err),
		)
	}
	return f.deps.Vault
}
