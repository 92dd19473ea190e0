package messaging

import (
	"context"

	"go.uber.org/zap"

	"github.com/Eras256/FlowFi/internal/domain"
	"github.com/Eras256/FlowFi/internal/logger"
)

// Publisher defines the interface for publishing invoice lifecycle events to the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishInvoiceEvent publishes a minted or funded event
	PublishInvoiceEvent(ctx context.Context, event *domain.InvoiceEvent) error
	// Close closes the connection
	Close()
}

type noopPublisher struct{}

// NewNoopPublisher returns a publisher that only logs, used when no broker is configured
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) PublishInvoiceEvent(ctx context.Context, event *domain.InvoiceEvent) error {
	logger.DebugCtx(ctx, "Event broker not configured, dropping event",
		zap.String("type", string(event.Type)),
		zap.String("invoice_id", event.InvoiceID),
	)
	return nil
}

func (noopPublisher) Close() {}
