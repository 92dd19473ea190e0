package workflow_test

import (
	"context"
	"crypto/ed25519"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eras256/FlowFi/internal/casper"
	"github.com/Eras256/FlowFi/internal/deployer"
	"github.com/Eras256/FlowFi/internal/domain"
	"github.com/Eras256/FlowFi/internal/mocks"
	"github.com/Eras256/FlowFi/internal/records"
	"github.com/Eras256/FlowFi/internal/workflow"
)

func vaultKey() casper.PublicKey {
	seed := make([]byte, ed25519.SeedSize)
	seed[0] = 9
	return casper.NewEd25519Key(ed25519.NewKeyFromSeed(seed)).PublicKey()
}

type funderMocks struct {
	deployer *mocks.MockDeployer
	wallet   *mocks.MockWallet
	records  *mocks.MockRecordStore
	clock    *mocks.MockClock
}

func newFunder(t *testing.T) (*workflow.Funder, *funderMocks) {
	ctrl := gomock.NewController(t)
	m := &funderMocks{
		deployer: mocks.NewMockDeployer(ctrl),
		wallet:   mocks.NewMockWallet(ctrl),
		records:  mocks.NewMockRecordStore(ctrl),
		clock:    mocks.NewMockClock(ctrl),
	}
	m.clock.EXPECT().Now().Return(testNow).AnyTimes()

	return workflow.NewFunder(workflow.FundDeps{
		Deployer: m.deployer,
		Wallet:   m.wallet,
		Records:  m.records,
		Clock:    m.clock,
		Vault:    vaultKey(),
	}), m
}

func TestInvestmentMotes(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   uint64
	}{
		{name: "small invoice", amount: 0.5, want: 20 * domain.MOTES_PER_CSPR},
		{name: "one cspr", amount: 0.0245, want: domain.MOTES_PER_CSPR},
		{name: "capped", amount: 10_000_000, want: domain.MAX_INVESTMENT_MOTES},
		{name: "just under cap", amount: 1.2, want: 48 * domain.MOTES_PER_CSPR},
		{name: "zero", amount: 0, want: 0},
		{name: "negative", amount: -5, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, workflow.InvestmentMotes(tt.amount))
		})
	}
}

func TestFund_Success(t *testing.T) {
	funder, m := newFunder(t)
	owner := testAccount()
	investor := vaultKey()

	invoice := &domain.Invoice{ID: "INV-1", Amount: 1.2, OwnerAddress: owner.Hex(), FundingStatus: domain.FundingStatusAvailable}
	assert.True(t, funder.Offerable(invoice))

	m.records.EXPECT().Get(gomock.Any(), "INV-1").Return(invoice, nil)
	m.wallet.EXPECT().IsConnected().Return(true)
	m.deployer.EXPECT().
		Send(gomock.Any(), m.wallet, deployer.TransferIntent(48*domain.MOTES_PER_CSPR, owner, uint64(testNow.UnixMilli()))).
		Return("transfer-hash", nil)
	m.wallet.EXPECT().PublicKey().Return(investor, nil)
	m.records.EXPECT().
		MarkFunded(gomock.Any(), "INV-1", records.FundingInput{DeployHash: "transfer-hash", InvestorAddress: investor.Hex()}).
		Return(invoice, nil)

	attempt, err := funder.Fund(context.Background(), "INV-1")
	require.NoError(t, err)
	assert.Equal(t, workflow.FundingFunded, attempt.State)
	assert.Equal(t, "transfer-hash", attempt.DeployHash)
	assert.Equal(t, owner.Hex(), attempt.Recipient)
	assert.Equal(t, workflow.FundingFunded, funder.Status("INV-1").State)
	assert.False(t, funder.Offerable(invoice))

	// a funded attempt is never repeated
	m.records.EXPECT().Get(gomock.Any(), "INV-1").Return(invoice, nil)
	m.wallet.EXPECT().IsConnected().Return(true)
	_, err = funder.Fund(context.Background(), "INV-1")
	assert.ErrorIs(t, err, domain.ErrAlreadyFunded)
}

func TestFund_VaultRecipientAndValuationFallback(t *testing.T) {
	funder, m := newFunder(t)
	invoice := &domain.Invoice{ID: "INV-4418", Valuation: 0.5, OwnerAddress: "0x71C...9A23"}

	m.records.EXPECT().Get(gomock.Any(), "INV-4418").Return(invoice, nil)
	m.wallet.EXPECT().IsConnected().Return(true)
	m.deployer.EXPECT().Send(gomock.Any(), m.wallet, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ deployer.Wallet, intent deployer.Intent) (string, error) {
			assert.Equal(t, deployer.IntentTransfer, intent.Kind)
			assert.Equal(t, 20*domain.MOTES_PER_CSPR, intent.Amount)
			assert.Equal(t, vaultKey(), intent.Target)
			return "transfer-hash", nil
		})
	m.wallet.EXPECT().PublicKey().Return(testAccount(), nil)
	m.records.EXPECT().MarkFunded(gomock.Any(), "INV-4418", gomock.Any()).Return(invoice, nil)

	attempt, err := funder.Fund(context.Background(), "INV-4418")
	require.NoError(t, err)
	assert.Equal(t, vaultKey().Hex(), attempt.Recipient)
}

func TestFund_AlreadyFundedInvoice(t *testing.T) {
	funder, m := newFunder(t)
	invoice := &domain.Invoice{ID: "INV-3392", Amount: 45000, FundingStatus: domain.FundingStatusFunded}
	assert.False(t, funder.Offerable(invoice))
	assert.False(t, funder.Offerable(nil))

	m.records.EXPECT().Get(gomock.Any(), "INV-3392").Return(invoice, nil)

	_, err := funder.Fund(context.Background(), "INV-3392")
	assert.ErrorIs(t, err, domain.ErrAlreadyFunded)
}

func TestFund_UnknownInvoice(t *testing.T) {
	funder, m := newFunder(t)
	m.records.EXPECT().Get(gomock.Any(), "INV-404").Return(nil, domain.ErrInvoiceNotFound)

	_, err := funder.Fund(context.Background(), "INV-404")
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
}

func TestFund_WalletNotConnected(t *testing.T) {
	funder, m := newFunder(t)
	invoice := &domain.Invoice{ID: "INV-1", Amount: 100}

	m.records.EXPECT().Get(gomock.Any(), "INV-1").Return(invoice, nil)
	m.wallet.EXPECT().IsConnected().Return(false)
	m.wallet.EXPECT().Connect(gomock.Any()).Return(nil)

	_, err := funder.Fund(context.Background(), "INV-1")
	assert.ErrorIs(t, err, domain.ErrWalletNotConnected)
	assert.Equal(t, workflow.FundingUnfunded, funder.Status("INV-1").State)
	assert.True(t, funder.Offerable(invoice))
}

func TestFund_SendFailureReturnsToUnfunded(t *testing.T) {
	funder, m := newFunder(t)
	invoice := &domain.Invoice{ID: "INV-1", Amount: 100, OwnerAddress: testAccount().Hex()}

	m.records.EXPECT().Get(gomock.Any(), "INV-1").Return(invoice, nil)
	m.wallet.EXPECT().IsConnected().Return(true)
	m.wallet.EXPECT().PublicKey().Return(vaultKey(), nil)
	m.deployer.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return("", domain.ErrSignatureRejected)

	attempt, err := funder.Fund(context.Background(), "INV-1")
	assert.ErrorIs(t, err, domain.ErrSignatureRejected)
	require.NotNil(t, attempt)
	assert.Equal(t, workflow.FundingUnfunded, attempt.State)
	assert.NotEmpty(t, attempt.Error)
	assert.True(t, funder.Offerable(invoice))
}

func TestFund_RecordFailureKeepsTransfer(t *testing.T) {
	funder, m := newFunder(t)
	investor := vaultKey()
	invoice := &domain.Invoice{ID: "INV-1", Amount: 100, OwnerAddress: testAccount().Hex()}

	m.records.EXPECT().Get(gomock.Any(), "INV-1").Return(invoice, nil).Times(2)
	m.wallet.EXPECT().IsConnected().Return(true).Times(2)
	m.wallet.EXPECT().PublicKey().Return(investor, nil).Times(2)
	// exactly one transfer across both attempts
	m.deployer.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return("transfer-hash", nil).Times(1)
	gomock.InOrder(
		m.records.EXPECT().MarkFunded(gomock.Any(), "INV-1", gomock.Any()).Return(nil, domain.ErrStoreUnavailable),
		m.records.EXPECT().
			MarkFunded(gomock.Any(), "INV-1", records.FundingInput{DeployHash: "transfer-hash", InvestorAddress: investor.Hex()}).
			Return(invoice, nil),
	)

	attempt, err := funder.Fund(context.Background(), "INV-1")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Contains(t, err.Error(), "transfer-hash")
	assert.Equal(t, "transfer-hash", attempt.DeployHash)
	assert.Equal(t, workflow.FundingUnfunded, funder.Status("INV-1").State)
	assert.Equal(t, "transfer-hash", funder.Status("INV-1").DeployHash)
	assert.False(t, funder.Offerable(invoice))

	attempt, err = funder.Fund(context.Background(), "INV-1")
	require.NoError(t, err)
	assert.Equal(t, workflow.FundingFunded, attempt.State)
	assert.Equal(t, "transfer-hash", attempt.DeployHash)
	assert.Equal(t, uint64(domain.MAX_INVESTMENT_MOTES), attempt.Motes)
}

func TestFund_RejectsOwnerWallet(t *testing.T) {
	funder, m := newFunder(t)
	owner := testAccount()
	invoice := &domain.Invoice{ID: "INV-1", Amount: 100, OwnerAddress: owner.Hex()}

	m.records.EXPECT().Get(gomock.Any(), "INV-1").Return(invoice, nil)
	m.wallet.EXPECT().IsConnected().Return(true)
	m.wallet.EXPECT().PublicKey().Return(owner, nil)

	attempt, err := funder.Fund(context.Background(), "INV-1")
	assert.ErrorIs(t, err, domain.ErrSelfFunding)
	require.NotNil(t, attempt)
	assert.Equal(t, workflow.FundingUnfunded, attempt.State)
	assert.Empty(t, attempt.DeployHash)
	assert.True(t, funder.Offerable(invoice))
}
