package csprcloud_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eras256/FlowFi/internal/logger"
	"github.com/Eras256/FlowFi/internal/mocks"
	"github.com/Eras256/FlowFi/internal/providers/csprcloud"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestGet(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockHTTP := mocks.NewMockHTTPClient(ctrl)
	client := csprcloud.NewClient(mockHTTP, nil, "https://api.cspr.example/", "token")

	ctx := context.Background()
	expectedHeaders := map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "token",
	}
	mockHTTP.EXPECT().
		Get(ctx, "https://api.cspr.example/market/overview", expectedHeaders, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ map[string]string, result interface{}) error {
			return json.Unmarshal([]byte(`{"cspr_price_usd":0.03}`), result)
		})

	raw, err := client.Get(ctx, "/market/overview")
	require.NoError(t, err)
	assert.JSONEq(t, `{"cspr_price_usd":0.03}`, string(raw))
}

func TestGet_WithoutToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockHTTP := mocks.NewMockHTTPClient(ctrl)
	client := csprcloud.NewClient(mockHTTP, nil, "https://api.cspr.example", "")

	mockHTTP.EXPECT().
		Get(gomock.Any(), "https://api.cspr.example/dex/pools", map[string]string{"Content-Type": "application/json"}, gomock.Any()).
		Return(errors.New("status 401"))

	_, err := client.Get(context.Background(), "dex/pools")
	assert.Error(t, err)
}

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		input       string
		expected    string
		expectError bool
	}{
		{input: "market/overview", expected: "market/overview"},
		{input: "/market/tokens/", expected: "market/tokens"},
		{input: "transactions/recent?limit=20", expected: "transactions/recent?limit=20"},
		{input: "", expectError: true},
		{input: "https://evil.example/x", expectError: true},
		{input: "//evil.example/x", expectError: true},
		{input: "market/../../admin", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := csprcloud.NormalizeEndpoint(tt.input)
			if tt.expectError {
				assert.ErrorIs(t, err, csprcloud.ErrInvalidEndpoint)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
