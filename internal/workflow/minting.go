package workflow

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Eras256/FlowFi/internal/adapter"
	"github.com/Eras256/FlowFi/internal/analyzer"
	"github.com/Eras256/FlowFi/internal/deployer"
	"github.com/Eras256/FlowFi/internal/domain"
	"github.com/Eras256/FlowFi/internal/logger"
	"github.com/Eras256/FlowFi/internal/providers/pinata"
	"github.com/Eras256/FlowFi/internal/records"
)

// State is a step of the minting workflow
type State string

const (
	StateIdle      State = "idle"
	StateAnalyzing State = "analyzing"
	StateScored    State = "scored"
	StateUploading State = "uploading"
	StateMinting   State = "minting"
	StateSuccess   State = "success"
)

// FALLBACK_IPFS_PREFIX is combined with the unix milliseconds when the upload fails
const FALLBACK_IPFS_PREFIX = "ipfs://QmDemoFallbackInvoice"

// Snapshot is a copy of the workflow state safe to hand out
type Snapshot struct {
	State              State              `json:"state"`
	FileName           string             `json:"file_name,omitempty"`
	Assessment         *domain.Assessment `json:"assessment,omitempty"`
	IPFSURL            string             `json:"ipfs_url,omitempty"`
	RegisterDeployHash string             `json:"register_deploy_hash,omitempty"`
	DeployHash         string             `json:"deploy_hash,omitempty"`
	Invoice            *domain.Invoice    `json:"invoice,omitempty"`
	Error              string             `json:"error,omitempty"`
}

// MintDeps are the collaborators of the minting workflow
type MintDeps struct {
	Analyzer analyzer.Analyzer
	Uploader pinata.Client
	Deployer deployer.Deployer
	Wallet   deployer.Wallet
	Records  records.Store
	Clock    adapter.Clock
	JCS      adapter.JCS
	// SettleWait separates the owner registration from the mint
	SettleWait time.Duration
}

// Minter drives one document from upload to a minted invoice token.
// Actions run in the calling goroutine; a second action while one is running fails with
// domain.ErrWorkflowBusy.
type Minter struct {
	deps MintDeps

	mu       sync.Mutex
	busy     bool
	state    State
	document *domain.Document
	snap     Snapshot
}

// NewMinter creates a minting workflow in the idle state
func NewMinter(deps MintDeps) *Minter {
	return &Minter{
		deps:  deps,
		state: StateIdle,
		snap:  Snapshot{State: StateIdle},
	}
}

// Snapshot returns the current state
func (m *Minter) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := m.snap
	snap.State = m.state
	return snap
}

// begin claims the machine for an action allowed in one of the given states
func (m *Minter) begin(allowed ...State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.busy {
		return domain.ErrWorkflowBusy
	}
	for _, s := range allowed {
		if m.state == s {
			m.busy = true
			return nil
		}
	}
	return fmt.Errorf("%w: not allowed in state %s", domain.ErrInvalidTransition, m.state)
}

func (m *Minter) end() {
	m.mu.Lock()
	m.busy = false
	m.mu.Unlock()
}

func (m *Minter) transition(ctx context.Context, to State, update func(*Snapshot)) {
	m.mu.Lock()
	from := m.state
	m.state = to
	if update != nil {
		update(&m.snap)
	}
	m.mu.Unlock()

	logger.InfoCtx(ctx, "Minting workflow transition",
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
}

// Drop accepts a document and scores it. The result is always an assessment: when the
// analyzer fails the simulated assessment is used after a fixed delay.
func (m *Minter) Drop(ctx context.Context, doc *domain.Document) error {
	if err := analyzer.ValidateDocument(doc); err != nil {
		return err
	}
	if err := m.begin(StateIdle, StateScored); err != nil {
		return err
	}
	defer m.end()

	m.mu.Lock()
	m.document = doc
	m.mu.Unlock()

	m.transition(ctx, StateAnalyzing, func(s *Snapshot) {
		*s = Snapshot{FileName: doc.Name}
	})

	assessment, err := m.deps.Analyzer.Analyze(ctx, doc)
	if err != nil || !assessment.WellFormed() {
		logger.WarnCtx(ctx, "Risk analysis failed, using simulated assessment",
			zap.String("file_name", doc.Name),
			zap.Error(err),
		)
		if err := m.deps.Clock.Wait(ctx, domain.SIMULATED_SCORE_WAIT); err != nil {
			logger.WarnCtx(ctx, "Simulated scoring delay interrupted", zap.Error(err))
		}
		assessment = analyzer.SimulatedFallback()
	}

	m.transition(ctx, StateScored, func(s *Snapshot) {
		s.Assessment = assessment
	})
	return nil
}

// Mint uploads the scored document, mints the invoice token and records it. Without a
// connected wallet it starts the connect flow and stays scored.
func (m *Minter) Mint(ctx context.Context) error {
	if err := m.begin(StateScored); err != nil {
		return err
	}
	defer m.end()

	if !m.deps.Wallet.IsConnected() {
		if err := m.deps.Wallet.Connect(ctx); err != nil {
			logger.WarnCtx(ctx, "Wallet connection failed", zap.Error(err))
		}
		return domain.ErrWalletNotConnected
	}

	if err := m.mint(ctx); err != nil {
		logger.WarnCtx(ctx, "Mint failed", zap.Error(err))
		m.transition(ctx, StateScored, func(s *Snapshot) {
			s.Error = err.Error()
		})
		return err
	}
	return nil
}

func (m *Minter) mint(ctx context.Context) error {
	m.mu.Lock()
	doc := m.document
	assessment := m.snap.Assessment
	m.mu.Unlock()

	owner, err := m.deps.Wallet.PublicKey()
	if err != nil {
		return err
	}

	m.transition(ctx, StateUploading, func(s *Snapshot) {
		s.Error = ""
	})

	ipfsURL, err := m.deps.Uploader.PinFile(ctx, doc)
	if err != nil {
		ipfsURL = fmt.Sprintf("%s%d", FALLBACK_IPFS_PREFIX, m.deps.Clock.Now().UnixMilli())
		logger.WarnCtx(ctx, "Upload failed, using placeholder address",
			zap.String("ipfs_url", ipfsURL),
			zap.Error(err),
		)
	}

	m.transition(ctx, StateMinting, func(s *Snapshot) {
		s.IPFSURL = ipfsURL
	})

	id, err := m.deps.Records.NewInvoiceID(ctx)
	if err != nil {
		return err
	}

	invoice := &domain.Invoice{
		ID:            id,
		FileName:      doc.Name,
		VendorName:    vendorFromFileName(doc.Name),
		Currency:      domain.DEFAULT_CURRENCY,
		IPFSURL:       ipfsURL,
		TokenID:       id,
		OwnerAddress:  owner.Hex(),
		FundingStatus: domain.FundingStatusAvailable,
		CreatedAt:     m.deps.Clock.Now().UTC(),
	}
	invoice.ApplyAssessment(*assessment)

	// Registration is needed once per account; a failure here usually means it already happened
	registerHash, err := m.deps.Deployer.Send(ctx, m.deps.Wallet, deployer.RegisterIntent())
	if err != nil {
		if errors.Is(err, domain.ErrSignatureRejected) {
			return err
		}
		logger.WarnCtx(ctx, "Owner registration failed, minting anyway", zap.Error(err))
	} else {
		m.transition(ctx, StateMinting, func(s *Snapshot) {
			s.RegisterDeployHash = registerHash
		})
		if err := m.deps.Clock.Wait(ctx, m.deps.SettleWait); err != nil {
			return err
		}
	}

	metadata, err := deployer.EncodeMetadata(m.deps.JCS, deployer.NewTokenMetadata(invoice, doc.Data))
	if err != nil {
		return err
	}
	invoice.TokenMetadata = metadata

	deployHash, err := m.deps.Deployer.Send(ctx, m.deps.Wallet, deployer.MintIntent(metadata))
	if err != nil {
		return err
	}
	invoice.DeployHash = deployHash

	m.transition(ctx, StateMinting, func(s *Snapshot) {
		s.DeployHash = deployHash
	})

	if err := m.deps.Records.Save(ctx, invoice); err != nil {
		return fmt.Errorf("invoice minted in deploy %s but not recorded: %w", deployHash, err)
	}

	m.transition(ctx, StateSuccess, func(s *Snapshot) {
		s.Invoice = invoice
	})
	return nil
}

// Reset returns the workflow to idle and clears every field
func (m *Minter) Reset(ctx context.Context) error {
	m.mu.Lock()
	if m.busy {
		m.mu.Unlock()
		return domain.ErrWorkflowBusy
	}
	m.document = nil
	m.mu.Unlock()

	m.transition(ctx, StateIdle, func(s *Snapshot) {
		*s = Snapshot{}
	})
	return nil
}

func vendorFromFileName(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)
	return strings.TrimSpace(base)
}
