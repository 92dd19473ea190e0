package workflow_test

import (
	"context"
	"crypto/ed25519"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eras256/FlowFi/internal/adapter"
	"github.com/Eras256/FlowFi/internal/analyzer"
	"github.com/Eras256/FlowFi/internal/casper"
	"github.com/Eras256/FlowFi/internal/deployer"
	"github.com/Eras256/FlowFi/internal/domain"
	"github.com/Eras256/FlowFi/internal/logger"
	"github.com/Eras256/FlowFi/internal/mocks"
	"github.com/Eras256/FlowFi/internal/providers/gemini"
	"github.com/Eras256/FlowFi/internal/workflow"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

var testNow = time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

func testAccount() casper.PublicKey {
	seed := make([]byte, ed25519.SeedSize)
	seed[0] = 7
	return casper.NewEd25519Key(ed25519.NewKeyFromSeed(seed)).PublicKey()
}

func testDocument() *domain.Document {
	return &domain.Document{Name: "acme_corp-invoice.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.4 invoice")}
}

func goodAssessment() *domain.Assessment {
	return &domain.Assessment{Grade: domain.GradeAMinus, Valuation: 12000, Confidence: 0.8, Summary: "ok"}
}

type minterMocks struct {
	analyzer *mocks.MockAnalyzer
	uploader *mocks.MockPinataClient
	deployer *mocks.MockDeployer
	wallet   *mocks.MockWallet
	records  *mocks.MockRecordStore
	clock    *mocks.MockClock
}

func newMinter(t *testing.T) (*workflow.Minter, *minterMocks) {
	ctrl := gomock.NewController(t)
	m := &minterMocks{
		analyzer: mocks.NewMockAnalyzer(ctrl),
		uploader: mocks.NewMockPinataClient(ctrl),
		deployer: mocks.NewMockDeployer(ctrl),
		wallet:   mocks.NewMockWallet(ctrl),
		records:  mocks.NewMockRecordStore(ctrl),
		clock:    mocks.NewMockClock(ctrl),
	}
	m.clock.EXPECT().Now().Return(testNow).AnyTimes()

	minter := workflow.NewMinter(workflow.MintDeps{
		Analyzer:   m.analyzer,
		Uploader:   m.uploader,
		Deployer:   m.deployer,
		Wallet:     m.wallet,
		Records:    m.records,
		Clock:      m.clock,
		JCS:        adapter.NewJCS(),
		SettleWait: 30 * time.Second,
	})
	return minter, m
}

func scoredMinter(t *testing.T) (*workflow.Minter, *minterMocks) {
	minter, m := newMinter(t)
	m.analyzer.EXPECT().Analyze(gomock.Any(), gomock.Any()).Return(goodAssessment(), nil)
	require.NoError(t, minter.Drop(context.Background(), testDocument()))
	return minter, m
}

func TestDrop(t *testing.T) {
	minter, m := newMinter(t)
	assert.Equal(t, workflow.StateIdle, minter.Snapshot().State)

	m.analyzer.EXPECT().Analyze(gomock.Any(), gomock.Any()).Return(goodAssessment(), nil)
	require.NoError(t, minter.Drop(context.Background(), testDocument()))

	snap := minter.Snapshot()
	assert.Equal(t, workflow.StateScored, snap.State)
	assert.Equal(t, "acme_corp-invoice.pdf", snap.FileName)
	assert.Equal(t, domain.GradeAMinus, snap.Assessment.Grade)
}

func TestDrop_FallbackAfterSimulatedDelay(t *testing.T) {
	tests := []struct {
		name   string
		result *domain.Assessment
		err    error
	}{
		{name: "analyzer unavailable", err: domain.ErrAnalyzerUnavailable},
		{name: "malformed assessment", result: &domain.Assessment{Grade: "Z", Valuation: -1, Confidence: 3}},
		{name: "nil assessment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			minter, m := newMinter(t)
			gomock.InOrder(
				m.analyzer.EXPECT().Analyze(gomock.Any(), gomock.Any()).Return(tt.result, tt.err),
				m.clock.EXPECT().Wait(gomock.Any(), domain.SIMULATED_SCORE_WAIT).Return(nil),
			)

			require.NoError(t, minter.Drop(context.Background(), testDocument()))

			snap := minter.Snapshot()
			assert.Equal(t, workflow.StateScored, snap.State)
			require.NotNil(t, snap.Assessment)
			assert.Equal(t, domain.GradeA, snap.Assessment.Grade)
			assert.Equal(t, 9800.0, snap.Assessment.Valuation)
			assert.Equal(t, 0.99, snap.Assessment.Confidence)
		})
	}
}

func TestDrop_UnconfiguredGeminiUsesSimulatedAssessment(t *testing.T) {
	ctrl := gomock.NewController(t)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(testNow).AnyTimes()
	clock.EXPECT().Wait(gomock.Any(), domain.SIMULATED_SCORE_WAIT).Return(nil)

	unconfigured := gemini.NewClient(nil, nil, "https://generativelanguage.example", "", []string{"gemini-1.5-flash"})
	minter := workflow.NewMinter(workflow.MintDeps{
		Analyzer: analyzer.NewDirect(unconfigured),
		Uploader: mocks.NewMockPinataClient(ctrl),
		Deployer: mocks.NewMockDeployer(ctrl),
		Wallet:   mocks.NewMockWallet(ctrl),
		Records:  mocks.NewMockRecordStore(ctrl),
		Clock:    clock,
		JCS:      adapter.NewJCS(),
	})

	require.NoError(t, minter.Drop(context.Background(), testDocument()))

	snap := minter.Snapshot()
	assert.Equal(t, workflow.StateScored, snap.State)
	require.NotNil(t, snap.Assessment)
	assert.Equal(t, domain.GradeA, snap.Assessment.Grade)
	assert.Equal(t, 9800.0, snap.Assessment.Valuation)
	assert.Equal(t, 0.99, snap.Assessment.Confidence)
}

func TestDrop_Rejects(t *testing.T) {
	minter, _ := newMinter(t)

	err := minter.Drop(context.Background(), &domain.Document{Name: "empty.pdf"})
	assert.ErrorIs(t, err, domain.ErrInvalidDocument)
	assert.Equal(t, workflow.StateIdle, minter.Snapshot().State)
}

func TestDrop_RedropFromScored(t *testing.T) {
	minter, m := scoredMinter(t)

	m.analyzer.EXPECT().Analyze(gomock.Any(), gomock.Any()).Return(&domain.Assessment{Grade: domain.GradeB, Valuation: 50, Confidence: 0.5}, nil)
	require.NoError(t, minter.Drop(context.Background(), &domain.Document{Name: "second.pdf", Data: []byte("x")}))
	assert.Equal(t, domain.GradeB, minter.Snapshot().Assessment.Grade)
	assert.Equal(t, "second.pdf", minter.Snapshot().FileName)
}

func TestMint_WalletNotConnected(t *testing.T) {
	minter, m := scoredMinter(t)

	m.wallet.EXPECT().IsConnected().Return(false)
	m.wallet.EXPECT().Connect(gomock.Any()).Return(nil)
	// no deploy is built: the deployer mock has no expectations

	err := minter.Mint(context.Background())
	assert.ErrorIs(t, err, domain.ErrWalletNotConnected)
	assert.Equal(t, workflow.StateScored, minter.Snapshot().State)
	assert.Empty(t, minter.Snapshot().Error)
}

func TestMint_Success(t *testing.T) {
	minter, m := scoredMinter(t)
	ctx := context.Background()
	account := testAccount()

	m.wallet.EXPECT().IsConnected().Return(true)
	m.wallet.EXPECT().PublicKey().Return(account, nil)
	m.uploader.EXPECT().PinFile(ctx, gomock.Any()).Return("ipfs://QmInvoice", nil)
	m.records.EXPECT().NewInvoiceID(ctx).Return("INV-01TEST", nil)

	gomock.InOrder(
		m.deployer.EXPECT().Send(ctx, m.wallet, deployer.RegisterIntent()).Return("register-hash", nil),
		m.clock.EXPECT().Wait(ctx, 30*time.Second).Return(nil),
		m.deployer.EXPECT().Send(ctx, m.wallet, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ deployer.Wallet, intent deployer.Intent) (string, error) {
				assert.Equal(t, deployer.IntentMint, intent.Kind)
				assert.Contains(t, string(intent.Metadata), `"name":"FlowFi Invoice #INV-01TEST"`)
				assert.Contains(t, string(intent.Metadata), `"token_uri":"ipfs://QmInvoice"`)
				return "mint-hash", nil
			}),
		m.records.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, inv *domain.Invoice) error {
			assert.Equal(t, "INV-01TEST", inv.ID)
			assert.Equal(t, "INV-01TEST", inv.TokenID)
			assert.Equal(t, "mint-hash", inv.DeployHash)
			assert.Equal(t, account.Hex(), inv.OwnerAddress)
			assert.Equal(t, "acme corp invoice", inv.VendorName)
			assert.Equal(t, domain.GradeAMinus, inv.Grade)
			assert.Equal(t, 12000.0, inv.Amount)
			assert.Equal(t, domain.GradeAMinus.YieldRate(), inv.YieldRate)
			assert.NotEmpty(t, inv.TokenMetadata)
			return nil
		}),
	)

	require.NoError(t, minter.Mint(ctx))

	snap := minter.Snapshot()
	assert.Equal(t, workflow.StateSuccess, snap.State)
	assert.Equal(t, "ipfs://QmInvoice", snap.IPFSURL)
	assert.Equal(t, "register-hash", snap.RegisterDeployHash)
	assert.Equal(t, "mint-hash", snap.DeployHash)
	require.NotNil(t, snap.Invoice)

	// success only allows reset
	assert.ErrorIs(t, minter.Mint(ctx), domain.ErrInvalidTransition)

	require.NoError(t, minter.Reset(ctx))
	require.NoError(t, minter.Reset(ctx))
	assert.Equal(t, workflow.Snapshot{State: workflow.StateIdle}, minter.Snapshot())
}

func TestMint_UploadAndRegisterFailuresAreAbsorbed(t *testing.T) {
	minter, m := scoredMinter(t)
	ctx := context.Background()

	m.wallet.EXPECT().IsConnected().Return(true)
	m.wallet.EXPECT().PublicKey().Return(testAccount(), nil)
	m.uploader.EXPECT().PinFile(ctx, gomock.Any()).Return("", domain.ErrUploadFailed)
	m.records.EXPECT().NewInvoiceID(ctx).Return("INV-2", nil)
	m.deployer.EXPECT().Send(ctx, m.wallet, deployer.RegisterIntent()).Return("", errors.New("owner already registered"))
	m.deployer.EXPECT().Send(ctx, m.wallet, gomock.Any()).Return("mint-hash", nil)
	m.records.EXPECT().Save(ctx, gomock.Any()).Return(nil)

	require.NoError(t, minter.Mint(ctx))

	snap := minter.Snapshot()
	assert.Equal(t, workflow.StateSuccess, snap.State)
	assert.Equal(t, "ipfs://QmDemoFallbackInvoice1746093600000", snap.IPFSURL)
	assert.Empty(t, snap.RegisterDeployHash)
}

func TestMint_FailureReturnsToScored(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*minterMocks)
		err   error
	}{
		{
			name: "mint deploy rejected by relay",
			setup: func(m *minterMocks) {
				m.deployer.EXPECT().Send(gomock.Any(), gomock.Any(), deployer.RegisterIntent()).Return("", domain.ErrRelayRejected)
				m.deployer.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return("", domain.ErrRelayRejected)
			},
			err: domain.ErrRelayRejected,
		},
		{
			name: "signature rejected on registration",
			setup: func(m *minterMocks) {
				m.deployer.EXPECT().Send(gomock.Any(), gomock.Any(), deployer.RegisterIntent()).Return("", domain.ErrSignatureRejected)
			},
			err: domain.ErrSignatureRejected,
		},
		{
			name: "record not saved",
			setup: func(m *minterMocks) {
				m.deployer.EXPECT().Send(gomock.Any(), gomock.Any(), deployer.RegisterIntent()).Return("", domain.ErrRelayUnavailable)
				m.deployer.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return("mint-hash", nil)
				m.records.EXPECT().Save(gomock.Any(), gomock.Any()).Return(domain.ErrStoreUnavailable)
			},
			err: domain.ErrStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			minter, m := scoredMinter(t)
			m.wallet.EXPECT().IsConnected().Return(true)
			m.wallet.EXPECT().PublicKey().Return(testAccount(), nil)
			m.uploader.EXPECT().PinFile(gomock.Any(), gomock.Any()).Return("ipfs://QmInvoice", nil)
			m.records.EXPECT().NewInvoiceID(gomock.Any()).Return("INV-3", nil)
			tt.setup(m)

			err := minter.Mint(context.Background())
			assert.ErrorIs(t, err, tt.err)

			snap := minter.Snapshot()
			assert.Equal(t, workflow.StateScored, snap.State)
			assert.NotEmpty(t, snap.Error)
			require.NotNil(t, snap.Assessment)
		})
	}
}

func TestMint_NotScored(t *testing.T) {
	minter, _ := newMinter(t)
	assert.ErrorIs(t, minter.Mint(context.Background()), domain.ErrInvalidTransition)
}

func TestDrop_BusyWhileAnalyzing(t *testing.T) {
	minter, m := newMinter(t)
	started := make(chan struct{})
	release := make(chan struct{})

	m.analyzer.EXPECT().Analyze(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, *domain.Document) (*domain.Assessment, error) {
		close(started)
		<-release
		return goodAssessment(), nil
	})

	done := make(chan error)
	go func() { done <- minter.Drop(context.Background(), testDocument()) }()

	<-started
	assert.Equal(t, workflow.StateAnalyzing, minter.Snapshot().State)
	assert.ErrorIs(t, minter.Drop(context.Background(), testDocument()), domain.ErrWorkflowBusy)
	assert.ErrorIs(t, minter.Reset(context.Background()), domain.ErrWorkflowBusy)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, workflow.StateScored, minter.Snapshot().State)
}
