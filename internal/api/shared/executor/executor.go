package executor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Eras256/FlowFi/internal/analyzer"
	"github.com/Eras256/FlowFi/internal/api/shared/dto"
	apierrors "github.com/Eras256/FlowFi/internal/api/shared/errors"
	"github.com/Eras256/FlowFi/internal/casper"
	"github.com/Eras256/FlowFi/internal/deployer"
	"github.com/Eras256/FlowFi/internal/domain"
	"github.com/Eras256/FlowFi/internal/logger"
	"github.com/Eras256/FlowFi/internal/marketdata"
	casperrpc "github.com/Eras256/FlowFi/internal/providers/casper"
	"github.com/Eras256/FlowFi/internal/providers/csprcloud"
	"github.com/Eras256/FlowFi/internal/records"
	"github.com/Eras256/FlowFi/internal/uri"
	"github.com/Eras256/FlowFi/internal/workflow"
)

// Executor holds the business logic behind the HTTP handlers
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// AnalyzeDocument scores an uploaded invoice document
	AnalyzeDocument(ctx context.Context, doc *domain.Document) (*domain.Assessment, error)

	// SubmitDeploy relays a signed deploy and returns the accepted hash
	SubmitDeploy(ctx context.Context, deploy json.RawMessage) (string, error)

	// GetDeploy returns the execution status of a deploy
	GetDeploy(ctx context.Context, deployHash string) (*dto.DeployStatusResponse, error)

	// BuildDeploy returns an unsigned deploy for an external wallet to sign
	BuildDeploy(ctx context.Context, req *dto.BuildDeployRequest) (*dto.BuildDeployResponse, error)

	// GetMarketData proxies one CSPR.cloud endpoint
	GetMarketData(ctx context.Context, endpoint string) (*marketdata.Result, error)

	// GetMarketDashboard returns the combined market view
	GetMarketDashboard(ctx context.Context) (*marketdata.Dashboard, error)

	// SubscribeMarketStream relays a CSPR.cloud streaming channel
	SubscribeMarketStream(ctx context.Context, channel string) (<-chan json.RawMessage, func(), error)

	// ListInvoices returns the merged marketplace listing with its aggregates
	ListInvoices(ctx context.Context, query records.Query) (*dto.InvoiceListResponse, error)

	// GetInvoice returns one invoice
	GetInvoice(ctx context.Context, invoiceID string) (*dto.InvoiceResponse, error)

	// GetInvoiceEvents returns the lifecycle journal of an invoice
	GetInvoiceEvents(ctx context.Context, invoiceID string) (*dto.InvoiceEventListResponse, error)

	// CreateInvoice records an invoice minted by a wallet
	CreateInvoice(ctx context.Context, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)

	// FundInvoice records the funding transfer of an invoice
	FundInvoice(ctx context.Context, invoiceID string, req *dto.FundInvoiceRequest) (*dto.InvoiceResponse, error)
}

// Deps are the services the executor delegates to. Stream may be nil.
type Deps struct {
	Analyzer   analyzer.Analyzer
	RPC        casperrpc.Client
	Deployer   deployer.Deployer
	MarketData marketdata.Service
	Stream     csprcloud.Stream
	Records    records.Store
	Resolver   uri.Resolver
}

type executor struct {
	deps Deps
}

func NewExecutor(deps Deps) Executor {
	return &executor{deps: deps}
}

func (e *executor) AnalyzeDocument(ctx context.Context, doc *domain.Document) (*domain.Assessment, error) {
	return e.deps.Analyzer.Analyze(ctx, doc)
}

func (e *executor) SubmitDeploy(ctx context.Context, deploy json.RawMessage) (string, error) {
	return e.deps.RPC.PutDeploy(ctx, UnwrapDeploy(deploy))
}

// UnwrapDeploy accepts both the bare deploy and the {"deploy": {...}} wrapper
func UnwrapDeploy(raw json.RawMessage) json.RawMessage {
	var wrapper struct {
		Deploy json.RawMessage `json:"deploy"`
	}
	if err := json.Unmarshal(raw, &wrapper); err == nil && len(wrapper.Deploy) > 0 && string(wrapper.Deploy) != "null" {
		return wrapper.Deploy
	}
	return raw
}

func (e *executor) GetDeploy(ctx context.Context, deployHash string) (*dto.DeployStatusResponse, error) {
	info, err := e.deps.RPC.GetDeploy(ctx, deployHash)
	if err != nil {
		return nil, err
	}
	return &dto.DeployStatusResponse{
		DeployHash:   info.DeployHash,
		Status:       info.Status,
		BlockHash:    info.BlockHash,
		ErrorMessage: info.ErrorMessage,
		ExplorerURL:  e.deps.Resolver.DeployURL(info.DeployHash),
	}, nil
}

func (e *executor) BuildDeploy(ctx context.Context, req *dto.BuildDeployRequest) (*dto.BuildDeployResponse, error) {
	account, err := casper.ParsePublicKeyHex(req.Account)
	if err != nil {
		return nil, apierrors.NewValidationError(fmt.Sprintf("invalid account: %v", err))
	}

	var intent deployer.Intent
	switch deployer.IntentKind(req.Kind) {
	case deployer.IntentRegister:
		intent = deployer.RegisterIntent()
	case deployer.IntentMint:
		if len(req.Metadata) == 0 {
			return nil, apierrors.NewValidationError("metadata is required for a mint deploy")
		}
		intent = deployer.MintIntent(req.Metadata)
	case deployer.IntentTransfer:
		target, err := casper.ParsePublicKeyHex(req.Target)
		if err != nil {
			return nil, apierrors.NewValidationError(fmt.Sprintf("invalid target: %v", err))
		}
		var id uint64
		if req.TransferID != nil {
			id = *req.TransferID
		}
		intent = deployer.TransferIntent(workflow.InvestmentMotes(req.Amount), target, id)
	default:
		return nil, apierrors.NewValidationError(fmt.Sprintf("unsupported deploy kind %q", req.Kind))
	}
	intent.Account = account

	deploy, err := e.deps.Deployer.Build(intent)
	if err != nil {
		return nil, apierrors.NewValidationError(err.Error())
	}
	raw, err := json.Marshal(deploy)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal deploy: %w", err)
	}

	logger.InfoCtx(ctx, "Built unsigned deploy",
		zap.String("kind", req.Kind),
		zap.String("deploy_hash", deploy.HashHex()),
	)
	return &dto.BuildDeployResponse{DeployHash: deploy.HashHex(), Deploy: raw}, nil
}

func (e *executor) GetMarketData(ctx context.Context, endpoint string) (*marketdata.Result, error) {
	result, err := e.deps.MarketData.Get(ctx, endpoint)
	if err != nil {
		return nil, apierrors.NewBadRequestError("Invalid endpoint", err.Error())
	}
	return result, nil
}

func (e *executor) GetMarketDashboard(ctx context.Context) (*marketdata.Dashboard, error) {
	return e.deps.MarketData.Dashboard(ctx)
}

func (e *executor) SubscribeMarketStream(ctx context.Context, channel string) (<-chan json.RawMessage, func(), error) {
	if e.deps.Stream == nil {
		return nil, nil, fmt.Errorf("%w: market stream not configured", csprcloud.ErrStreamClosed)
	}
	return e.deps.Stream.Subscribe(ctx, channel)
}

func (e *executor) ListInvoices(ctx context.Context, query records.Query) (*dto.InvoiceListResponse, error) {
	invoices, err := e.deps.Records.List(ctx)
	if err != nil {
		return nil, err
	}

	listed := records.Apply(invoices, query)
	resp := &dto.InvoiceListResponse{
		Invoices: make([]dto.InvoiceResponse, 0, len(listed)),
		Total:    len(listed),
		Stats:    records.Stats(invoices),
	}
	for i := range listed {
		resp.Invoices = append(resp.Invoices, e.mapInvoice(&listed[i]))
	}
	return resp, nil
}

func (e *executor) GetInvoice(ctx context.Context, invoiceID string) (*dto.InvoiceResponse, error) {
	invoice, err := e.deps.Records.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	resp := e.mapInvoice(invoice)
	return &resp, nil
}

func (e *executor) GetInvoiceEvents(ctx context.Context, invoiceID string) (*dto.InvoiceEventListResponse, error) {
	if _, err := e.deps.Records.Get(ctx, invoiceID); err != nil {
		return nil, err
	}
	events, err := e.deps.Records.Events(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []domain.InvoiceEvent{}
	}
	return &dto.InvoiceEventListResponse{InvoiceID: invoiceID, Events: events}, nil
}

func (e *executor) CreateInvoice(ctx context.Context, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	grade, ok := domain.ParseGrade(req.RiskScore)
	if !ok {
		return nil, apierrors.NewValidationError(fmt.Sprintf("invalid risk score %q", req.RiskScore))
	}

	id := strings.TrimSpace(req.InvoiceID)
	if id == "" {
		var err error
		if id, err = e.deps.Records.NewInvoiceID(ctx); err != nil {
			return nil, err
		}
	}

	invoice := &domain.Invoice{
		ID:            id,
		FileName:      req.FileName,
		VendorName:    req.VendorName,
		ClientName:    req.ClientName,
		Amount:        req.Amount,
		Currency:      req.Currency,
		DueDate:       req.DueDate,
		IPFSURL:       req.IPFSURL,
		TokenID:       id,
		TokenMetadata: req.TokenMetadata,
		DeployHash:    req.DeployHash,
		OwnerAddress:  req.OwnerAddress,
		FundingStatus: domain.FundingStatusAvailable,
	}
	invoice.ApplyAssessment(domain.Assessment{
		Grade:        grade,
		Valuation:    req.Valuation,
		Confidence:   req.Confidence,
		Summary:      req.Summary,
		QuantumScore: req.QuantumScore,
		ModelUsed:    req.ModelUsed,
	})

	if err := e.deps.Records.Save(ctx, invoice); err != nil {
		return nil, err
	}

	resp := e.mapInvoice(invoice)
	return &resp, nil
}

func (e *executor) FundInvoice(ctx context.Context, invoiceID string, req *dto.FundInvoiceRequest) (*dto.InvoiceResponse, error) {
	invoice, err := e.deps.Records.MarkFunded(ctx, invoiceID, records.FundingInput{
		DeployHash:      req.DeployHash,
		InvestorAddress: req.InvestorAddress,
	})
	if err != nil {
		return nil, err
	}
	resp := e.mapInvoice(invoice)
	return &resp, nil
}

func (e *executor) mapInvoice(invoice *domain.Invoice) dto.InvoiceResponse {
	resp := dto.InvoiceResponse{
		Invoice:     *invoice,
		DocumentURL: e.deps.Resolver.Resolve(invoice.IPFSURL),
		Seed:        records.IsSeed(invoice.ID),
	}
	if invoice.DeployHash != "" && !resp.Seed {
		resp.ExplorerURL = e.deps.Resolver.DeployURL(invoice.DeployHash)
	}
	return resp
}
