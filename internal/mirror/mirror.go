package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Eras256/FlowFi/internal/adapter"
	"github.com/Eras256/FlowFi/internal/domain"
	"github.com/Eras256/FlowFi/internal/logger"
)

// Backend names accepted by the mirror configuration
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Backend stores the raw JSON array of the mirror
type Backend interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

// Mirror is the local durable copy of minted invoices
//
//go:generate mockgen -source=mirror.go -destination=../mocks/mirror.go -package=mocks -mock_names=Mirror=MockMirror,Backend=MockMirrorBackend
type Mirror interface {
	// Load returns every record in insertion order
	Load(ctx context.Context) ([]Record, error)
	// Append adds a record to the end of the array
	Append(ctx context.Context, record Record) error
	// Update applies fn to the record with the given id. It reports whether the record existed.
	Update(ctx context.Context, id string, fn func(*Record)) (bool, error)
}

type mirror struct {
	backend Backend
	mu      sync.Mutex
}

// New creates a mirror on top of a backend
func New(backend Backend) Mirror {
	return &mirror{backend: backend}
}

func (m *mirror) Load(ctx context.Context) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load(ctx)
}

func (m *mirror) load(ctx context.Context) ([]Record, error) {
	data, err := m.backend.Read(ctx)
	if err != nil {
		if errors.Is(err, adapter.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read mirror: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	// Decode element by element so one corrupt entry does not hide the rest
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		logger.WarnCtx(ctx, "Mirror content is not a JSON array, ignoring", zap.Error(err))
		return nil, nil
	}

	records := make([]Record, 0, len(raw))
	for i, item := range raw {
		var r Record
		if err := json.Unmarshal(item, &r); err != nil {
			logger.WarnCtx(ctx, "Skipping undecodable mirror record", zap.Int("index", i), zap.Error(err))
			continue
		}
		records = append(records, r)
	}
	return records, nil
}

func (m *mirror) save(ctx context.Context, records []Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal mirror: %w", err)
	}
	if err := m.backend.Write(ctx, data); err != nil {
		return fmt.Errorf("failed to write mirror: %w", err)
	}
	return nil
}

func (m *mirror) Append(ctx context.Context, record Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	records, err := m.load(ctx)
	if err != nil {
		return err
	}
	return m.save(ctx, append(records, record))
}

func (m *mirror) Update(ctx context.Context, id string, fn func(*Record)) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	records, err := m.load(ctx)
	if err != nil {
		return false, err
	}

	found := false
	for i := range records {
		if records[i].Key() == id {
			fn(&records[i])
			found = true
		}
	}
	if !found {
		return false, nil
	}
	return true, m.save(ctx, records)
}

type fileBackend struct {
	fs   adapter.FileSystem
	path string
}

// NewFileBackend stores the mirror as a JSON file
func NewFileBackend(fs adapter.FileSystem, path string) Backend {
	return &fileBackend{fs: fs, path: path}
}

func (b *fileBackend) Read(_ context.Context) ([]byte, error) {
	return b.fs.ReadFile(b.path)
}

func (b *fileBackend) Write(_ context.Context, data []byte) error {
	return b.fs.WriteFile(b.path, data)
}

type redisBackend struct {
	client adapter.RedisClient
	key    string
}

// NewRedisBackend stores the mirror under a single Redis key
func NewRedisBackend(client adapter.RedisClient, key string) Backend {
	if key == "" {
		key = domain.MIRROR_KEY
	}
	return &redisBackend{client: client, key: key}
}

func (b *redisBackend) Read(ctx context.Context) ([]byte, error) {
	return b.client.Get(ctx, b.key)
}

func (b *redisBackend) Write(ctx context.Context, data []byte) error {
	return b.client.Set(ctx, b.key, data, 0)
}
