package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Eras256/FlowFi/internal/domain"
	"github.com/Eras256/FlowFi/internal/logger"
	"github.com/Eras256/FlowFi/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// If any of the pool settings are 0, the defaults of NormalizeConnectionPoolSettings are used.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 10
//   - MaxIdleConns: 2
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 10
	}
	if maxIdleConns == 0 {
		maxIdleConns = 2
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// Ping checks the database connection
func (s *pgStore) Ping(ctx context.Context) error {
	return s.db.WithContext(ctx).Exec("SELECT 1").Error
}

// CreateInvoice inserts a minted invoice and journals the mint event
func (s *pgStore) CreateInvoice(ctx context.Context, invoice *schema.Invoice) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// ON CONFLICT DO NOTHING leaves ID at zero when the invoice id is taken
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "invoice_id"}},
			DoNothing: true,
		}).Omit("Events").Create(invoice)
		if result.Error != nil {
			return fmt.Errorf("failed to create invoice: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: %s", domain.ErrInvoiceAlreadyExists, invoice.InvoiceID)
		}

		event := schema.InvoiceEvent{
			InvoiceID:  invoice.InvoiceID,
			EventType:  schema.InvoiceEventTypeMinted,
			DeployHash: invoice.DeployHash,
			Account:    invoice.OwnerAddress,
			Raw:        snapshot(map[string]interface{}{"ipfs_url": invoice.IPFSURL, "grade": invoice.Grade, "valuation": invoice.Valuation}),
		}
		if err := tx.Create(&event).Error; err != nil {
			return fmt.Errorf("failed to journal mint event: %w", err)
		}

		return nil
	})
}

// GetInvoice retrieves an invoice by its public identifier
func (s *pgStore) GetInvoice(ctx context.Context, invoiceID string) (*schema.Invoice, error) {
	var invoice schema.Invoice
	err := s.db.WithContext(ctx).Where("invoice_id = ?", invoiceID).First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return &invoice, nil
}

// ListInvoices retrieves every invoice, newest first
func (s *pgStore) ListInvoices(ctx context.Context) ([]schema.Invoice, error) {
	var invoices []schema.Invoice
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&invoices).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}

// MarkInvoiceFunded records the funding of an invoice and journals the funding event
func (s *pgStore) MarkInvoiceFunded(ctx context.Context, invoiceID string, input MarkFundedInput) error {
	if input.InvestorDeployHash == "" {
		return fmt.Errorf("%w: empty funding deploy hash", domain.ErrInvalidInvoice)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the row so two funding attempts cannot both pass the status check
		var invoice schema.Invoice
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("invoice_id = ?", invoiceID).
			First(&invoice).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", domain.ErrInvoiceNotFound, invoiceID)
			}
			return fmt.Errorf("failed to lock invoice: %w", err)
		}

		if invoice.FundingStatus == string(domain.FundingStatusFunded) {
			return domain.ErrAlreadyFunded
		}

		fundedAt := input.FundedAt.UTC()
		err = tx.Model(&schema.Invoice{}).
			Where("id = ?", invoice.ID).
			Updates(map[string]interface{}{
				"funding_status":       string(domain.FundingStatusFunded),
				"investor_deploy_hash": input.InvestorDeployHash,
				"investor_address":     input.InvestorAddress,
				"funded_at":            fundedAt,
				"updated_at":           time.Now().UTC(),
			}).Error
		if err != nil {
			return fmt.Errorf("failed to mark invoice funded: %w", err)
		}

		event := schema.InvoiceEvent{
			InvoiceID:  invoiceID,
			EventType:  schema.InvoiceEventTypeFunded,
			DeployHash: input.InvestorDeployHash,
			Account:    input.InvestorAddress,
			Raw:        snapshot(map[string]interface{}{"funded_at": fundedAt}),
		}
		if err := tx.Create(&event).Error; err != nil {
			return fmt.Errorf("failed to journal funding event: %w", err)
		}

		return nil
	})
}

// GetInvoiceEvents retrieves the lifecycle journal of an invoice, oldest first
func (s *pgStore) GetInvoiceEvents(ctx context.Context, invoiceID string) ([]schema.InvoiceEvent, error) {
	var events []schema.InvoiceEvent
	err := s.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice events: %w", err)
	}
	return events, nil
}

func snapshot(v map[string]interface{}) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		logger.Warn("failed to marshal event snapshot", zap.Error(err))
		return nil
	}
	return datatypes.JSON(b)
}
