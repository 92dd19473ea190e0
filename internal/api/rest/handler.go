package rest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Eras256/FlowFi/internal/api/middleware"
	"github.com/Eras256/FlowFi/internal/api/shared/dto"
	"github.com/Eras256/FlowFi/internal/api/shared/executor"
	"github.com/Eras256/FlowFi/internal/domain"
	"github.com/Eras256/FlowFi/internal/logger"
	casperrpc "github.com/Eras256/FlowFi/internal/providers/casper"
)

const SERVICE_NAME = "flowfi-api"

// HealthCheck reports whether an optional backend is reachable
type HealthCheck func(ctx context.Context) error

// Handler defines the interface for REST API handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)

	// Analyze scores an uploaded invoice document
	// POST /api/analyze (multipart field "file")
	Analyze(c *gin.Context)

	// SubmitDeploy relays a signed deploy to the node cascade
	// POST /api/deploy
	SubmitDeploy(c *gin.Context)

	// GetDeploy returns the execution status of a deploy
	// GET /api/deploy/:hash
	GetDeploy(c *gin.Context)

	// BuildDeploy returns an unsigned deploy for an external wallet
	// POST /api/deploy/build
	BuildDeploy(c *gin.Context)

	// GetMarketData proxies CSPR.cloud market data
	// GET /api/market-data?endpoint=<path>
	GetMarketData(c *gin.Context)

	// GetMarketDashboard returns overview, tokens, pools and recent transactions
	// GET /api/market-data/dashboard
	GetMarketDashboard(c *gin.Context)

	// StreamMarketData relays a CSPR.cloud streaming channel as server-sent events
	// GET /api/market-data/stream?channel=<channel>
	StreamMarketData(c *gin.Context)

	// ListInvoices returns the marketplace listing
	// GET /api/v1/invoices?filter=<all|minted|funded|available>&search=<text>&sort=<amount|yield|term>
	ListInvoices(c *gin.Context)

	// GetInvoice returns one invoice
	// GET /api/v1/invoices/:id
	GetInvoice(c *gin.Context)

	// GetInvoiceEvents returns the lifecycle journal of an invoice
	// GET /api/v1/invoices/:id/events
	GetInvoiceEvents(c *gin.Context)

	// CreateInvoice records a minted invoice
	// POST /api/v1/invoices
	CreateInvoice(c *gin.Context)

	// FundInvoice records the funding of an invoice
	// POST /api/v1/invoices/:id/fund
	FundInvoice(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	debug    bool
	executor executor.Executor
	health   map[string]HealthCheck
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(debug bool, exec executor.Executor, health map[string]HealthCheck) Handler {
	return &handler{
		debug:    debug,
		executor: exec,
		health:   health,
	}
}

func (h *handler) HealthCheck(c *gin.Context) {
	resp := dto.HealthResponse{
		Status:  "ok",
		Service: SERVICE_NAME,
		Time:    nowUTC(),
	}

	if len(h.health) > 0 {
		resp.Backends = make(map[string]bool, len(h.health))
		for name, check := range h.health {
			err := check(c.Request.Context())
			resp.Backends[name] = err == nil
			if err != nil {
				resp.Status = "degraded"
				logger.WarnCtx(c.Request.Context(), "Backend unhealthy", zap.String("backend", name), zap.Error(err))
			}
		}
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) Analyze(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondBadRequest(c, "No file uploaded")
		return
	}
	if fileHeader.Size > domain.MAX_DOCUMENT_SIZE {
		respondError(c, fmt.Errorf("%w: %d bytes", domain.ErrDocumentTooLarge, fileHeader.Size), "Failed to analyze document")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondBadRequest(c, "Failed to read uploaded file", err.Error())
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, domain.MAX_DOCUMENT_SIZE+1))
	if err != nil {
		respondBadRequest(c, "Failed to read uploaded file", err.Error())
		return
	}

	assessment, err := h.executor.AnalyzeDocument(c.Request.Context(), &domain.Document{
		Name:        fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		respondError(c, err, "Failed to analyze document")
		return
	}

	c.JSON(http.StatusOK, assessment)
}

func (h *handler) SubmitDeploy(c *gin.Context) {
	var req dto.SubmitDeployRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Deploy) == 0 || string(req.Deploy) == "null" {
		respondBadRequest(c, "Missing deploy data")
		return
	}

	deployHash, err := h.executor.SubmitDeploy(c.Request.Context(), req.Deploy)
	if err != nil {
		status := http.StatusBadGateway
		var rpcErr *casperrpc.RPCError
		if errors.As(err, &rpcErr) {
			status = http.StatusInternalServerError
		}
		logger.WarnCtx(c.Request.Context(), "Deploy relay failed", zap.Error(err))
		c.JSON(status, dto.SubmitDeployResponse{Success: false, Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.SubmitDeployResponse{Success: true, DeployHash: deployHash})
}

func (h *handler) GetDeploy(c *gin.Context) {
	deployHash := c.Param("hash")
	if deployHash == "" {
		respondBadRequest(c, "Deploy hash is required")
		return
	}

	status, err := h.executor.GetDeploy(c.Request.Context(), deployHash)
	if err != nil {
		respondError(c, err, "Failed to get deploy")
		return
	}

	c.JSON(http.StatusOK, status)
}

func (h *handler) BuildDeploy(c *gin.Context) {
	var req dto.BuildDeployRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	resp, err := h.executor.BuildDeploy(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to build deploy")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) GetMarketData(c *gin.Context) {
	var params MarketDataQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	result, err := h.executor.GetMarketData(c.Request.Context(), params.Endpoint)
	if err != nil {
		respondError(c, err, "Failed to get market data")
		return
	}

	c.Header("X-Data-Source", string(result.Source))
	c.Data(http.StatusOK, "application/json; charset=utf-8", result.Data)
}

func (h *handler) GetMarketDashboard(c *gin.Context) {
	dashboard, err := h.executor.GetMarketDashboard(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to get market dashboard")
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

func (h *handler) StreamMarketData(c *gin.Context) {
	var params StreamQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	messages, unsubscribe, err := h.executor.SubscribeMarketStream(ctx, params.Channel)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case msg, ok := <-messages:
			if !ok {
				return false
			}
			c.SSEvent(params.Channel, msg)
			return true
		}
	})
}

func (h *handler) ListInvoices(c *gin.Context) {
	query, err := ParseListInvoicesQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	resp, err := h.executor.ListInvoices(c.Request.Context(), *query)
	if err != nil {
		respondError(c, err, "Failed to list invoices")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) GetInvoice(c *gin.Context) {
	resp, err := h.executor.GetInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get invoice")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) GetInvoiceEvents(c *gin.Context) {
	resp, err := h.executor.GetInvoiceEvents(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get invoice events")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) CreateInvoice(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	resp, err := h.executor.CreateInvoice(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to record invoice")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *handler) FundInvoice(c *gin.Context) {
	var req dto.FundInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	resp, err := h.executor.FundInvoice(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err, "Failed to record funding")
		return
	}

	if op, ok := middleware.OperatorFrom(c); ok {
		logger.InfoCtx(c.Request.Context(), "Funding recorded by operator",
			zap.String("invoice_id", c.Param("id")),
			zap.String("credential", op.Credential),
			zap.String("operator", op.Subject))
	}

	c.JSON(http.StatusOK, resp)
}
