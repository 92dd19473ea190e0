package deployer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Eras256/FlowFi/internal/adapter"
	"github.com/Eras256/FlowFi/internal/casper"
	"github.com/Eras256/FlowFi/internal/domain"
	"github.com/Eras256/FlowFi/internal/logger"
	casperrpc "github.com/Eras256/FlowFi/internal/providers/casper"
)

// Entry points of the invoice contract
const (
	ENTRY_POINT_REGISTER = "register_owner"
	ENTRY_POINT_MINT     = "mint"
)

// IntentKind names the on-chain action a deploy performs
type IntentKind string

const (
	IntentRegister IntentKind = "register"
	IntentMint     IntentKind = "mint"
	IntentTransfer IntentKind = "transfer"
)

var ErrInvalidIntent = errors.New("invalid deploy intent")

// Intent describes a deploy before it is built
type Intent struct {
	Kind IntentKind
	// Account sends the deploy; Send fills it from the wallet when empty
	Account casper.PublicKey

	// Metadata is the canonical token metadata of a mint
	Metadata json.RawMessage

	// Transfer fields
	Amount     uint64
	Target     casper.PublicKey
	TransferID *uint64
}

// RegisterIntent registers the account as a token owner with the contract
func RegisterIntent() Intent {
	return Intent{Kind: IntentRegister}
}

// MintIntent mints a token carrying the canonical metadata
func MintIntent(metadata json.RawMessage) Intent {
	return Intent{Kind: IntentMint, Metadata: metadata}
}

// TransferIntent sends motes to target; id tags the transfer
func TransferIntent(amount uint64, target casper.PublicKey, id uint64) Intent {
	return Intent{Kind: IntentTransfer, Amount: amount, Target: target, TransferID: &id}
}

// Config holds the network and contract parameters of built deploys
type Config struct {
	ChainName       string
	ContractHash    string
	RegisterPayment uint64
	MintPayment     uint64
	TransferPayment uint64
	GasPrice        uint64
	TTL             time.Duration
}

// Deployer turns intents into signed deploys and submits them through the relay
//
//go:generate mockgen -source=deployer.go -destination=../mocks/deployer.go -package=mocks -mock_names=Deployer=MockDeployer
type Deployer interface {
	// Build returns the unsigned deploy for an intent
	Build(intent Intent) (*casper.Deploy, error)
	// Send builds the deploy, has the wallet sign it and submits it, returning the deploy hash
	Send(ctx context.Context, wallet Wallet, intent Intent) (string, error)
}

type deployer struct {
	config       Config
	contractHash [32]byte
	rpc          casperrpc.Client
	clock        adapter.Clock
}

// New creates a deployer
func New(cfg Config, rpc casperrpc.Client, clock adapter.Clock) (Deployer, error) {
	contractHash, err := casper.ParseHash(cfg.ContractHash)
	if err != nil {
		return nil, fmt.Errorf("invalid contract hash: %w", err)
	}
	if cfg.TTL <= 0 {
		cfg.TTL = domain.DEFAULT_DEPLOY_TTL
	}
	if cfg.GasPrice == 0 {
		cfg.GasPrice = domain.DEFAULT_GAS_PRICE
	}

	return &deployer{
		config:       cfg,
		contractHash: contractHash,
		rpc:          rpc,
		clock:        clock,
	}, nil
}

func (d *deployer) Build(intent Intent) (*casper.Deploy, error) {
	if intent.Account.IsZero() {
		return nil, fmt.Errorf("%w: missing account", ErrInvalidIntent)
	}

	var (
		payment casper.ExecutableDeployItem
		session casper.ExecutableDeployItem
	)

	switch intent.Kind {
	case IntentRegister:
		payment = casper.StandardPayment(d.config.RegisterPayment)
		session = casper.StoredContractByHash{
			Hash:       d.contractHash,
			EntryPoint: ENTRY_POINT_REGISTER,
			Args: casper.RuntimeArgs{
				{Name: "token_owner", Value: casper.AccountKeyValue(intent.Account)},
			},
		}
	case IntentMint:
		if len(intent.Metadata) == 0 {
			return nil, fmt.Errorf("%w: mint without metadata", ErrInvalidIntent)
		}
		payment = casper.StandardPayment(d.config.MintPayment)
		session = casper.StoredContractByHash{
			Hash:       d.contractHash,
			EntryPoint: ENTRY_POINT_MINT,
			Args: casper.RuntimeArgs{
				{Name: "token_owner", Value: casper.AccountKeyValue(intent.Account)},
				{Name: "token_meta_data", Value: casper.StringValue(string(intent.Metadata))},
			},
		}
	case IntentTransfer:
		if intent.Target.IsZero() {
			return nil, fmt.Errorf("%w: transfer without target", ErrInvalidIntent)
		}
		if intent.Amount == 0 {
			return nil, fmt.Errorf("%w: transfer of zero motes", ErrInvalidIntent)
		}
		payment = casper.StandardPayment(d.config.TransferPayment)
		session = casper.NewTransfer(intent.Amount, intent.Target, intent.TransferID)
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidIntent, intent.Kind)
	}

	return casper.NewDeploy(casper.DeployParams{
		Account:   intent.Account,
		ChainName: d.config.ChainName,
		Timestamp: d.clock.Now(),
		TTL:       d.config.TTL,
		GasPrice:  d.config.GasPrice,
	}, payment, session)
}

func (d *deployer) Send(ctx context.Context, wallet Wallet, intent Intent) (string, error) {
	if !wallet.IsConnected() {
		return "", domain.ErrWalletNotConnected
	}

	account, err := wallet.PublicKey()
	if err != nil {
		return "", err
	}
	if intent.Account.IsZero() {
		intent.Account = account
	}

	deploy, err := d.Build(intent)
	if err != nil {
		return "", err
	}

	signature, err := wallet.Sign(ctx, deploy.Hash[:])
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSignatureRejected, err)
	}
	if err := deploy.AddApproval(account, signature); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSignatureRejected, err)
	}

	raw, err := json.Marshal(deploy)
	if err != nil {
		return "", fmt.Errorf("failed to marshal deploy: %w", err)
	}

	logger.InfoCtx(ctx, "Submitting deploy",
		zap.String("kind", string(intent.Kind)),
		zap.String("deploy_hash", deploy.HashHex()),
		zap.String("account", account.Hex()),
	)

	hash, err := d.rpc.PutDeploy(ctx, raw)
	if err != nil {
		return "", err
	}
	if hash == "" {
		hash = deploy.HashHex()
	} else if hash != deploy.HashHex() {
		logger.WarnCtx(ctx, "Relay returned a different deploy hash",
			zap.String("local", deploy.HashHex()),
			zap.String("relay", hash),
		)
	}
	return hash, nil
}
