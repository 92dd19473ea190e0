package csprcloud

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/Eras256/FlowFi/internal/adapter"
	"github.com/Eras256/FlowFi/internal/ratelimit"
)

const PROVIDER_NAME = ratelimit.ProviderCSPRCloud

// ErrInvalidEndpoint is returned for endpoints that do not name a relative API path
var ErrInvalidEndpoint = fmt.Errorf("invalid market data endpoint")

// Client defines the interface for the CSPR.cloud REST API
//
//go:generate mockgen -source=client.go -destination=../../mocks/csprcloud_client.go -package=mocks -mock_names=Client=MockCSPRCloudClient
type Client interface {
	// Get fetches an API path such as "market/overview" and returns the raw JSON body
	Get(ctx context.Context, endpoint string) (json.RawMessage, error)
}

type client struct {
	httpClient     adapter.HTTPClient
	rateLimitProxy ratelimit.Proxy
	apiURL         string
	accessToken    string
}

// NewClient creates a new CSPR.cloud API client
func NewClient(httpClient adapter.HTTPClient, rateLimitProxy ratelimit.Proxy, apiURL, accessToken string) Client {
	return &client{
		httpClient:     httpClient,
		rateLimitProxy: rateLimitProxy,
		apiURL:         strings.TrimRight(apiURL, "/"),
		accessToken:    accessToken,
	}
}

func (c *client) Get(ctx context.Context, endpoint string) (json.RawMessage, error) {
	path, err := NormalizeEndpoint(endpoint)
	if err != nil {
		return nil, err
	}

	headers := map[string]string{"Content-Type": "application/json"}
	if c.accessToken != "" {
		headers["Authorization"] = c.accessToken
	}

	return ratelimit.Request(ctx, c.rateLimitProxy, PROVIDER_NAME, func(ctx context.Context) (json.RawMessage, error) {
		var raw json.RawMessage
		if err := c.httpClient.Get(ctx, c.apiURL+"/"+path, headers, &raw); err != nil {
			return nil, err
		}
		return raw, nil
	})
}

// NormalizeEndpoint trims surrounding slashes and rejects anything that could leave the API host
func NormalizeEndpoint(endpoint string) (string, error) {
	endpoint = strings.Trim(strings.TrimSpace(endpoint), "/")
	if endpoint == "" {
		return "", ErrInvalidEndpoint
	}

	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme != "" || u.Host != "" || strings.HasPrefix(endpoint, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidEndpoint, endpoint)
	}
	for _, segment := range strings.Split(u.Path, "/") {
		if segment == ".." || segment == "." {
			return "", fmt.Errorf("%w: %q", ErrInvalidEndpoint, endpoint)
		}
	}

	return endpoint, nil
}
