package records

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/Eras256/FlowFi/internal/adapter"
	"github.com/Eras256/FlowFi/internal/domain"
	"github.com/Eras256/FlowFi/internal/logger"
	"github.com/Eras256/FlowFi/internal/messaging"
	"github.com/Eras256/FlowFi/internal/mirror"
	"github.com/Eras256/FlowFi/internal/store"
	"github.com/Eras256/FlowFi/internal/store/schema"
)

const (
	INVOICE_ID_PREFIX   = "INV-"
	maxInvoiceIDRetries = 5
)

// FundingInput carries the result of a successful funding transfer
type FundingInput struct {
	DeployHash      string
	InvestorAddress string
}

// Store is the dual-backed invoice record store: a remote relational store plus the local mirror.
// Reads merge both with the seed invoices; writes go to each backend independently.
//
//go:generate mockgen -source=records.go -destination=../mocks/records.go -package=mocks -mock_names=Store=MockRecordStore
type Store interface {
	// Save records a newly minted invoice
	Save(ctx context.Context, invoice *domain.Invoice) error
	// List returns the merged invoices: loaded records first, then seed invoices
	List(ctx context.Context) ([]domain.Invoice, error)
	// Get returns one invoice from the merged set or domain.ErrInvoiceNotFound
	Get(ctx context.Context, id string) (*domain.Invoice, error)
	// MarkFunded records the funding of an invoice and returns the updated record
	MarkFunded(ctx context.Context, id string, input FundingInput) (*domain.Invoice, error)
	// Events returns the remote lifecycle journal of an invoice
	Events(ctx context.Context, id string) ([]domain.InvoiceEvent, error)
	// NewInvoiceID allocates an identifier unused in every backend and the seed set
	NewInvoiceID(ctx context.Context) (string, error)
}

type dualStore struct {
	remote    store.Store
	mirror    mirror.Mirror
	publisher messaging.Publisher
	clock     adapter.Clock
}

// NewStore creates the dual-backed store. remote may be nil when no database is configured.
func NewStore(remote store.Store, m mirror.Mirror, publisher messaging.Publisher, clock adapter.Clock) Store {
	if publisher == nil {
		publisher = messaging.NewNoopPublisher()
	}
	return &dualStore{
		remote:    remote,
		mirror:    m,
		publisher: publisher,
		clock:     clock,
	}
}

func (s *dualStore) Save(ctx context.Context, invoice *domain.Invoice) error {
	if invoice.FundingStatus == "" {
		invoice.FundingStatus = domain.FundingStatusAvailable
	}
	if invoice.Currency == "" {
		invoice.Currency = domain.DEFAULT_CURRENCY
	}
	if invoice.CreatedAt.IsZero() {
		invoice.CreatedAt = s.clock.Now().UTC()
	}
	if err := invoice.Validate(); err != nil {
		return err
	}

	existing, err := s.ids(ctx)
	if err != nil {
		return err
	}
	if existing[invoice.ID] {
		return fmt.Errorf("%w: %s", domain.ErrInvoiceAlreadyExists, invoice.ID)
	}

	remoteErr := domain.ErrStoreUnavailable
	if s.remote != nil {
		remoteErr = s.remote.CreateInvoice(ctx, ToSchema(invoice))
		if remoteErr != nil {
			logger.WarnCtx(ctx, "Failed to save invoice remotely", zap.String("invoice_id", invoice.ID), zap.Error(remoteErr))
		}
	}

	// The mirror is written regardless of the remote outcome
	mirrorErr := s.mirror.Append(ctx, ToMirror(invoice))
	if mirrorErr != nil {
		logger.WarnCtx(ctx, "Failed to save invoice to mirror", zap.String("invoice_id", invoice.ID), zap.Error(mirrorErr))
	}

	if remoteErr != nil && mirrorErr != nil {
		return fmt.Errorf("failed to save invoice %s: %w", invoice.ID, errors.Join(remoteErr, mirrorErr))
	}

	logger.InfoCtx(ctx, "Invoice saved",
		zap.String("invoice_id", invoice.ID),
		zap.Bool("remote", remoteErr == nil),
		zap.Bool("mirror", mirrorErr == nil),
	)

	s.publish(ctx, &domain.InvoiceEvent{
		Type:       domain.InvoiceEventMinted,
		InvoiceID:  invoice.ID,
		DeployHash: invoice.DeployHash,
		Account:    invoice.OwnerAddress,
		Amount:     invoice.Amount,
		Grade:      invoice.Grade,
	})
	return nil
}

func (s *dualStore) List(ctx context.Context) ([]domain.Invoice, error) {
	loaded, mirrored := s.load(ctx)
	return overlayFunding(merge(loaded, SeedInvoices()), mirrored), nil
}

// load reads the remote records, falling back to the mirror when the remote is
// unavailable or empty. The mirror records are returned as well so their funding
// state can be applied to records the remote does not know as funded.
func (s *dualStore) load(ctx context.Context) (loaded []domain.Invoice, mirrored []domain.Invoice) {
	var rows []schema.Invoice
	if s.remote != nil {
		var err error
		rows, err = s.remote.ListInvoices(ctx)
		if err != nil {
			logger.WarnCtx(ctx, "Remote store unavailable, reading mirror", zap.Error(err))
		}
	}
	mirrored = s.loadMirror(ctx)

	if len(rows) == 0 {
		return mirrored, mirrored
	}
	loaded = make([]domain.Invoice, 0, len(rows))
	for i := range rows {
		loaded = append(loaded, FromSchema(&rows[i]))
	}
	return loaded, mirrored
}

func (s *dualStore) loadMirror(ctx context.Context) []domain.Invoice {
	records, err := s.mirror.Load(ctx)
	if err != nil {
		logger.WarnCtx(ctx, "Mirror unavailable", zap.Error(err))
		return nil
	}

	invoices := make([]domain.Invoice, 0, len(records))
	for _, r := range records {
		inv, ok := FromMirror(r)
		if !ok {
			logger.WarnCtx(ctx, "Skipping invalid mirror entry", zap.String("invoice_id", r.Key()))
			continue
		}
		invoices = append(invoices, inv)
	}
	return invoices
}

// overlayFunding marks invoices funded when the mirror recorded a funding the other
// source missed. A funding is never undone by the overlay.
func overlayFunding(invoices []domain.Invoice, mirrored []domain.Invoice) []domain.Invoice {
	funded := make(map[string]domain.Invoice)
	for _, inv := range mirrored {
		if inv.IsFunded() {
			funded[inv.ID] = inv
		}
	}
	if len(funded) == 0 {
		return invoices
	}

	for i := range invoices {
		m, ok := funded[invoices[i].ID]
		if !ok || invoices[i].IsFunded() {
			continue
		}
		invoices[i].FundingStatus = domain.FundingStatusFunded
		invoices[i].InvestorDeployHash = m.InvestorDeployHash
		invoices[i].InvestorAddress = m.InvestorAddress
		invoices[i].FundedAt = m.FundedAt
	}
	return invoices
}

// merge de-duplicates by ID keeping the first occurrence; loaded records come before seeds
func merge(loaded []domain.Invoice, seeds []domain.Invoice) []domain.Invoice {
	seen := make(map[string]bool, len(loaded)+len(seeds))
	merged := make([]domain.Invoice, 0, len(loaded)+len(seeds))
	for _, group := range [][]domain.Invoice{loaded, seeds} {
		for _, inv := range group {
			if seen[inv.ID] {
				continue
			}
			seen[inv.ID] = true
			merged = append(merged, inv)
		}
	}
	return merged
}

func (s *dualStore) Get(ctx context.Context, id string) (*domain.Invoice, error) {
	invoices, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range invoices {
		if invoices[i].ID == id {
			return &invoices[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrInvoiceNotFound, id)
}

func (s *dualStore) MarkFunded(ctx context.Context, id string, input FundingInput) (*domain.Invoice, error) {
	invoice, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	fundedAt := s.clock.Now().UTC()
	if err := invoice.MarkFunded(input.DeployHash, input.InvestorAddress, fundedAt); err != nil {
		return nil, err
	}

	remoteErr := domain.ErrStoreUnavailable
	if s.remote != nil {
		remoteErr = s.remote.MarkInvoiceFunded(ctx, id, store.MarkFundedInput{
			InvestorDeployHash: input.DeployHash,
			InvestorAddress:    input.InvestorAddress,
			FundedAt:           fundedAt,
		})
		if errors.Is(remoteErr, domain.ErrInvoiceNotFound) {
			// seed and mirror-only invoices are inserted already funded
			logger.InfoCtx(ctx, "Invoice not present remotely, inserting funded record", zap.String("invoice_id", id))
			remoteErr = s.remote.CreateInvoice(ctx, ToSchema(invoice))
		}
		if remoteErr != nil {
			logger.WarnCtx(ctx, "Failed to mark invoice funded remotely", zap.String("invoice_id", id), zap.Error(remoteErr))
		}
	}

	mirrorErr := s.markMirrorFunded(ctx, invoice)
	if mirrorErr != nil {
		logger.WarnCtx(ctx, "Failed to mark invoice funded in mirror", zap.String("invoice_id", id), zap.Error(mirrorErr))
	}

	if remoteErr != nil && mirrorErr != nil {
		return nil, fmt.Errorf("failed to record funding of %s: %w", id, errors.Join(remoteErr, mirrorErr))
	}

	logger.InfoCtx(ctx, "Invoice funded",
		zap.String("invoice_id", id),
		zap.String("deploy_hash", input.DeployHash),
	)

	s.publish(ctx, &domain.InvoiceEvent{
		Type:       domain.InvoiceEventFunded,
		InvoiceID:  id,
		DeployHash: input.DeployHash,
		Account:    input.InvestorAddress,
		Amount:     invoice.Amount,
		Grade:      invoice.Grade,
	})
	return invoice, nil
}

// markMirrorFunded updates the mirror entry, appending the whole record when the invoice
// was only known remotely or from the seed set
func (s *dualStore) markMirrorFunded(ctx context.Context, invoice *domain.Invoice) error {
	updated := ToMirror(invoice)
	found, err := s.mirror.Update(ctx, invoice.ID, func(r *mirror.Record) {
		r.IsFunded = true
		r.FundingStatus = updated.FundingStatus
		r.InvestorDeployHash = updated.InvestorDeployHash
		r.InvestorAddress = updated.InvestorAddress
		r.FundedAt = updated.FundedAt
	})
	if err != nil {
		return err
	}
	if found {
		return nil
	}
	return s.mirror.Append(ctx, updated)
}

func (s *dualStore) Events(ctx context.Context, id string) ([]domain.InvoiceEvent, error) {
	if s.remote == nil {
		return nil, domain.ErrStoreUnavailable
	}

	rows, err := s.remote.GetInvoiceEvents(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice events: %w", err)
	}

	events := make([]domain.InvoiceEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, domain.InvoiceEvent{
			ID:         strconv.FormatInt(row.ID, 10),
			Type:       domain.InvoiceEventType(row.EventType),
			InvoiceID:  row.InvoiceID,
			DeployHash: row.DeployHash,
			Account:    row.Account,
			Timestamp:  row.CreatedAt,
		})
	}
	return events, nil
}

func (s *dualStore) NewInvoiceID(ctx context.Context) (string, error) {
	existing, err := s.ids(ctx)
	if err != nil {
		return "", err
	}

	for range maxInvoiceIDRetries {
		id := INVOICE_ID_PREFIX + ulid.MustNew(ulid.Timestamp(s.clock.Now()), ulid.DefaultEntropy()).String()
		if !existing[id] {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: could not allocate a unique invoice id", domain.ErrInvoiceAlreadyExists)
}

func (s *dualStore) ids(ctx context.Context) (map[string]bool, error) {
	invoices, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]bool, len(invoices))
	for _, inv := range invoices {
		ids[strings.TrimSpace(inv.ID)] = true
	}
	return ids, nil
}

func (s *dualStore) publish(ctx context.Context, event *domain.InvoiceEvent) {
	event.ID = uuid.NewString()
	event.Timestamp = s.clock.Now().UTC()
	if err := s.publisher.PublishInvoiceEvent(ctx, event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish invoice event",
			zap.String("type", string(event.Type)),
			zap.String("invoice_id", event.InvoiceID),
			zap.Error(err),
		)
	}
}
