package casper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Eras256/FlowFi/internal/adapter"
	"github.com/Eras256/FlowFi/internal/domain"
	"github.com/Eras256/FlowFi/internal/logger"
)

// Execution status of a deploy as reported by info_get_deploy
const (
	DeployStatusPending = "pending"
	DeployStatusSuccess = "success"
	DeployStatusFailure = "failure"
)

// Client defines the interface for the Casper node JSON-RPC API
//
//go:generate mockgen -source=client.go -destination=../../mocks/casper_rpc_client.go -package=mocks -mock_names=Client=MockCasperRPCClient
type Client interface {
	// PutDeploy submits a signed deploy and returns the hash accepted by the node
	PutDeploy(ctx context.Context, deploy json.RawMessage) (string, error)

	// GetDeploy returns the execution status of a deploy
	GetDeploy(ctx context.Context, deployHash string) (*DeployInfo, error)
}

// RPCError is a JSON-RPC protocol error returned by a node
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	if len(e.Data) > 0 {
		return fmt.Sprintf("rpc error %d: %s (%s)", e.Code, e.Message, string(e.Data))
	}
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// Unwrap makes every protocol error match domain.ErrRelayRejected
func (e *RPCError) Unwrap() error {
	return domain.ErrRelayRejected
}

// DeployInfo is the execution status of a deploy
type DeployInfo struct {
	DeployHash   string          `json:"deploy_hash"`
	Status       string          `json:"status"`
	BlockHash    string          `json:"block_hash,omitempty"`
	ErrorMessage string          `json:"error_message,omitempty"`
	Raw          json.RawMessage `json:"raw,omitempty"`
}

type rpcRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      int64       `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

type client struct {
	httpClient   adapter.HTTPClient
	endpoints    []string
	cloudNodeURL string
	accessToken  string
	nextID       atomic.Int64
}

// NewClient creates a JSON-RPC client that cascades through the endpoints in order.
// Requests to cloudNodeURL carry the CSPR.cloud access token.
func NewClient(httpClient adapter.HTTPClient, endpoints []string, cloudNodeURL, accessToken string) Client {
	return &client{
		httpClient:   httpClient,
		endpoints:    endpoints,
		cloudNodeURL: cloudNodeURL,
		accessToken:  accessToken,
	}
}

func (c *client) PutDeploy(ctx context.Context, deploy json.RawMessage) (string, error) {
	if len(deploy) == 0 {
		return "", fmt.Errorf("%w: empty deploy", domain.ErrRelayRejected)
	}

	var result struct {
		DeployHash string `json:"deploy_hash"`
	}
	endpoint, err := c.call(ctx, "account_put_deploy", []json.RawMessage{deploy}, &result)
	if err != nil {
		return "", err
	}

	logger.InfoCtx(ctx, "Deploy accepted", zap.String("endpoint", endpoint), zap.String("deploy_hash", result.DeployHash))
	return result.DeployHash, nil
}

type executionResult struct {
	BlockHash string `json:"block_hash"`
	Result    struct {
		Success *json.RawMessage `json:"Success"`
		Failure *struct {
			ErrorMessage string `json:"error_message"`
		} `json:"Failure"`
	} `json:"result"`
}

func (c *client) GetDeploy(ctx context.Context, deployHash string) (*DeployInfo, error) {
	deployHash = strings.TrimSpace(deployHash)
	if deployHash == "" {
		return nil, fmt.Errorf("%w: empty deploy hash", domain.ErrRelayRejected)
	}

	var result json.RawMessage
	if _, err := c.call(ctx, "info_get_deploy", map[string]string{"deploy_hash": deployHash}, &result); err != nil {
		return nil, err
	}

	// 1.x nodes answer with execution_results, 2.x nodes with execution_info
	var parsed struct {
		ExecutionResults []executionResult `json:"execution_results"`
		ExecutionInfo    *struct {
			BlockHash       string `json:"block_hash"`
			ExecutionResult struct {
				Version2 *struct {
					ErrorMessage *string `json:"error_message"`
				} `json:"Version2"`
			} `json:"execution_result"`
		} `json:"execution_info"`
	}
	if err := json.Unmarshal(result, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode deploy info: %w", err)
	}

	info := &DeployInfo{
		DeployHash: deployHash,
		Status:     DeployStatusPending,
		Raw:        result,
	}

	switch {
	case parsed.ExecutionInfo != nil && parsed.ExecutionInfo.ExecutionResult.Version2 != nil:
		info.BlockHash = parsed.ExecutionInfo.BlockHash
		if msg := parsed.ExecutionInfo.ExecutionResult.Version2.ErrorMessage; msg != nil && *msg != "" {
			info.Status = DeployStatusFailure
			info.ErrorMessage = *msg
		} else {
			info.Status = DeployStatusSuccess
		}
	case len(parsed.ExecutionResults) > 0:
		r := parsed.ExecutionResults[0]
		info.BlockHash = r.BlockHash
		switch {
		case r.Result.Failure != nil:
			info.Status = DeployStatusFailure
			info.ErrorMessage = r.Result.Failure.ErrorMessage
		case r.Result.Success != nil:
			info.Status = DeployStatusSuccess
		}
	}

	return info, nil
}

// call sends the request to each endpoint in turn. Transport failures and non-2xx
// answers move on to the next endpoint, a JSON-RPC error is returned immediately.
func (c *client) call(ctx context.Context, method string, params interface{}, result interface{}) (string, error) {
	if len(c.endpoints) == 0 {
		return "", fmt.Errorf("%w: no endpoints configured", domain.ErrRelayUnavailable)
	}

	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal rpc request: %w", err)
	}

	var lastErr error
	for _, endpoint := range c.endpoints {
		var headers map[string]string
		if endpoint == c.cloudNodeURL && c.accessToken != "" {
			// CSPR.cloud expects the raw token in a lowercase authorization header
			headers = map[string]string{"authorization": c.accessToken}
		}

		respBody, err := c.httpClient.Post(ctx, endpoint, "application/json", headers, body)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			logger.WarnCtx(ctx, "RPC endpoint failed, trying next",
				zap.String("endpoint", endpoint),
				zap.String("method", method),
				zap.Error(err),
			)
			lastErr = err
			continue
		}

		var resp rpcResponse
		if err := json.Unmarshal(respBody, &resp); err != nil {
			logger.WarnCtx(ctx, "RPC endpoint returned invalid JSON, trying next", zap.String("endpoint", endpoint), zap.Error(err))
			lastErr = err
			continue
		}

		if resp.Error != nil {
			logger.WarnCtx(ctx, "RPC error", zap.String("endpoint", endpoint), zap.String("method", method), zap.Error(resp.Error))
			return endpoint, resp.Error
		}

		if len(resp.Result) == 0 {
			lastErr = errors.New("empty rpc result")
			continue
		}
		if err := json.Unmarshal(resp.Result, result); err != nil {
			return endpoint, fmt.Errorf("failed to decode rpc result: %w", err)
		}
		return endpoint, nil
	}

	return "", fmt.Errorf("%w: %v", domain.ErrRelayUnavailable, lastErr)
}
