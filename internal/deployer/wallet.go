package deployer

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Eras256/FlowFi/internal/adapter"
	"github.com/Eras256/FlowFi/internal/casper"
	"github.com/Eras256/FlowFi/internal/domain"
	"github.com/Eras256/FlowFi/internal/logger"
)

// Wallet is the signing authority of the active account
//
//go:generate mockgen -source=wallet.go -destination=../mocks/wallet.go -package=mocks -mock_names=Wallet=MockWallet
type Wallet interface {
	// IsConnected reports whether an account is available for signing
	IsConnected() bool
	// Connect asks the wallet to expose an account
	Connect(ctx context.Context) error
	// PublicKey returns the active account or domain.ErrWalletNotConnected
	PublicKey() (casper.PublicKey, error)
	// Sign returns a signature over a deploy hash, raw or already algorithm-tagged
	Sign(ctx context.Context, deployHash []byte) ([]byte, error)
}

type keyFileWallet struct {
	fs   adapter.FileSystem
	path string

	mu  sync.RWMutex
	key casper.PrivateKey
}

// NewKeyFileWallet returns a wallet backed by a PEM secret key file. The file is read on Connect.
func NewKeyFileWallet(fs adapter.FileSystem, path string) Wallet {
	return &keyFileWallet{fs: fs, path: path}
}

func (w *keyFileWallet) IsConnected() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.key != nil
}

func (w *keyFileWallet) Connect(ctx context.Context) error {
	data, err := w.fs.ReadFile(w.path)
	if err != nil {
		return fmt.Errorf("failed to read key file %s: %w", w.path, err)
	}

	key, err := casper.ParsePrivateKeyPEM(data)
	if err != nil {
		return fmt.Errorf("failed to parse key file %s: %w", w.path, err)
	}

	w.mu.Lock()
	w.key = key
	w.mu.Unlock()

	logger.InfoCtx(ctx, "Wallet connected",
		zap.String("public_key", key.PublicKey().Hex()),
		zap.String("algorithm", key.PublicKey().Algorithm.String()),
	)
	return nil
}

func (w *keyFileWallet) PublicKey() (casper.PublicKey, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.key == nil {
		return casper.PublicKey{}, domain.ErrWalletNotConnected
	}
	return w.key.PublicKey(), nil
}

func (w *keyFileWallet) Sign(_ context.Context, deployHash []byte) ([]byte, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.key == nil {
		return nil, domain.ErrWalletNotConnected
	}
	return w.key.Sign(deployHash)
}
