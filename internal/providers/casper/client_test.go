package casper_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eras256/FlowFi/internal/adapter"
	"github.com/Eras256/FlowFi/internal/domain"
	"github.com/Eras256/FlowFi/internal/logger"
	"github.com/Eras256/FlowFi/internal/mocks"
	casperrpc "github.com/Eras256/FlowFi/internal/providers/casper"
)

const (
	cloudNode  = "https://node.cspr.example/rpc"
	publicNode = "https://node.public.example/rpc"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestPutDeploy(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockHTTP := mocks.NewMockHTTPClient(ctrl)
	client := casperrpc.NewClient(mockHTTP, []string{cloudNode, publicNode}, cloudNode, "cloud-token")

	ctx := context.Background()
	deploy := json.RawMessage(`{"hash":"abc"}`)

	mockHTTP.EXPECT().
		Post(ctx, cloudNode, "application/json", map[string]string{"authorization": "cloud-token"}, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ string, _ map[string]string, body []byte) ([]byte, error) {
			var req struct {
				JSONRPC string            `json:"jsonrpc"`
				Method  string            `json:"method"`
				Params  []json.RawMessage `json:"params"`
			}
			require.NoError(t, json.Unmarshal(body, &req))
			assert.Equal(t, "2.0", req.JSONRPC)
			assert.Equal(t, "account_put_deploy", req.Method)
			require.Len(t, req.Params, 1)
			assert.JSONEq(t, `{"hash":"abc"}`, string(req.Params[0]))
			return []byte(`{"jsonrpc":"2.0","id":1,"result":{"api_version":"1.5.6","deploy_hash":"abc"}}`), nil
		})

	hash, err := client.PutDeploy(ctx, deploy)
	require.NoError(t, err)
	assert.Equal(t, "abc", hash)
}

func TestPutDeploy_CascadesOnTransportError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockHTTP := mocks.NewMockHTTPClient(ctrl)
	client := casperrpc.NewClient(mockHTTP, []string{cloudNode, publicNode}, cloudNode, "cloud-token")

	ctx := context.Background()
	gomock.InOrder(
		mockHTTP.EXPECT().
			Post(ctx, cloudNode, "application/json", gomock.Any(), gomock.Any()).
			Return(nil, &adapter.StatusError{StatusCode: 502, Body: "bad gateway"}),
		mockHTTP.EXPECT().
			Post(ctx, publicNode, "application/json", gomock.Nil(), gomock.Any()).
			Return([]byte(`{"result":{"deploy_hash":"def"}}`), nil),
	)

	hash, err := client.PutDeploy(ctx, json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "def", hash)
}

func TestPutDeploy_RPCErrorIsNotRetried(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockHTTP := mocks.NewMockHTTPClient(ctrl)
	client := casperrpc.NewClient(mockHTTP, []string{cloudNode, publicNode}, cloudNode, "")

	mockHTTP.EXPECT().
		Post(gomock.Any(), cloudNode, gomock.Any(), gomock.Nil(), gomock.Any()).
		Return([]byte(`{"error":{"code":-32008,"message":"invalid deploy","data":"expired"}}`), nil)

	_, err := client.PutDeploy(context.Background(), json.RawMessage(`{}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRelayRejected)

	var rpcErr *casperrpc.RPCError
	require.True(t, errors.As(err, &rpcErr))
	assert.Equal(t, -32008, rpcErr.Code)
	assert.Equal(t, "invalid deploy", rpcErr.Message)
}

func TestPutDeploy_AllEndpointsUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockHTTP := mocks.NewMockHTTPClient(ctrl)
	client := casperrpc.NewClient(mockHTTP, []string{cloudNode, publicNode}, cloudNode, "")

	mockHTTP.EXPECT().
		Post(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("dial tcp: connection refused")).
		Times(2)

	_, err := client.PutDeploy(context.Background(), json.RawMessage(`{}`))
	assert.ErrorIs(t, err, domain.ErrRelayUnavailable)
}

func TestPutDeploy_NoEndpoints(t *testing.T) {
	client := casperrpc.NewClient(mocks.NewMockHTTPClient(gomock.NewController(t)), nil, "", "")
	_, err := client.PutDeploy(context.Background(), json.RawMessage(`{}`))
	assert.ErrorIs(t, err, domain.ErrRelayUnavailable)
}

func TestGetDeploy(t *testing.T) {
	tests := []struct {
		name     string
		result   string
		status   string
		block    string
		errorMsg string
	}{
		{
			name:   "pending",
			result: `{"deploy":{},"execution_results":[]}`,
			status: casperrpc.DeployStatusPending,
		},
		{
			name:   "1.x success",
			result: `{"execution_results":[{"block_hash":"b1","result":{"Success":{"cost":"1"}}}]}`,
			status: casperrpc.DeployStatusSuccess,
			block:  "b1",
		},
		{
			name:     "1.x failure",
			result:   `{"execution_results":[{"block_hash":"b2","result":{"Failure":{"error_message":"User error: 1"}}}]}`,
			status:   casperrpc.DeployStatusFailure,
			block:    "b2",
			errorMsg: "User error: 1",
		},
		{
			name:   "2.x success",
			result: `{"execution_info":{"block_hash":"b3","execution_result":{"Version2":{"error_message":null}}}}`,
			status: casperrpc.DeployStatusSuccess,
			block:  "b3",
		},
		{
			name:     "2.x failure",
			result:   `{"execution_info":{"block_hash":"b4","execution_result":{"Version2":{"error_message":"Out of gas"}}}}`,
			status:   casperrpc.DeployStatusFailure,
			block:    "b4",
			errorMsg: "Out of gas",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockHTTP := mocks.NewMockHTTPClient(ctrl)
			client := casperrpc.NewClient(mockHTTP, []string{publicNode}, cloudNode, "")

			mockHTTP.EXPECT().
				Post(gomock.Any(), publicNode, "application/json", gomock.Nil(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ string, _ string, _ map[string]string, body []byte) ([]byte, error) {
					assert.Contains(t, string(body), `"method":"info_get_deploy"`)
					assert.Contains(t, string(body), `"params":{"deploy_hash":"h1"}`)
					return []byte(`{"result":` + tt.result + `}`), nil
				})

			info, err := client.GetDeploy(context.Background(), " h1 ")
			require.NoError(t, err)
			assert.Equal(t, "h1", info.DeployHash)
			assert.Equal(t, tt.status, info.Status)
			assert.Equal(t, tt.block, info.BlockHash)
			assert.Equal(t, tt.errorMsg, info.ErrorMessage)
		})
	}
}
