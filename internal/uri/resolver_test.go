package uri_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Eras256/FlowFi/internal/uri"
)

func TestResolver_Resolve(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		config   *uri.Config
		expected string
	}{
		{
			name:     "regular HTTPS URL",
			uri:      "https://example.com/invoice.pdf",
			config:   &uri.Config{IPFSGateways: []string{"https://ipfs.io"}},
			expected: "https://example.com/invoice.pdf",
		},
		{
			name:     "IPFS URI",
			uri:      "ipfs://QmInvoice",
			config:   &uri.Config{IPFSGateways: []string{"https://gateway.pinata.cloud/", "https://ipfs.io"}},
			expected: "https://gateway.pinata.cloud/ipfs/QmInvoice",
		},
		{
			name:     "IPFS URI with ipfs path prefix",
			uri:      "ipfs://ipfs/QmInvoice",
			config:   &uri.Config{IPFSGateways: []string{"https://ipfs.io"}},
			expected: "https://ipfs.io/ipfs/QmInvoice",
		},
		{
			name:     "gateway URL is rewritten to the preferred gateway",
			uri:      "https://gateway.pinata.cloud/ipfs/QmInvoice",
			config:   &uri.Config{IPFSGateways: []string{"https://ipfs.io"}},
			expected: "https://ipfs.io/ipfs/QmInvoice",
		},
		{
			name:     "fallback placeholder",
			uri:      "ipfs://QmDemoFallbackInvoice1746093600000",
			config:   nil,
			expected: "https://ipfs.io/ipfs/QmDemoFallbackInvoice1746093600000",
		},
		{
			name:     "empty IPFS URI is left alone",
			uri:      "ipfs://",
			config:   nil,
			expected: "ipfs://",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := uri.NewResolver(tt.config)
			assert.Equal(t, tt.expected, r.Resolve(tt.uri))
		})
	}
}

func TestResolver_Candidates(t *testing.T) {
	r := uri.NewResolver(&uri.Config{IPFSGateways: []string{"https://ipfs.io", " ", "https://gateway.pinata.cloud"}})

	assert.Equal(t, []string{
		"https://ipfs.io/ipfs/QmInvoice",
		"https://gateway.pinata.cloud/ipfs/QmInvoice",
	}, r.Candidates("ipfs://QmInvoice"))
	assert.Equal(t, []string{"https://example.com/a.pdf"}, r.Candidates("https://example.com/a.pdf"))
}

func TestExplorerURLs(t *testing.T) {
	assert.Equal(t, "https://testnet.cspr.live/deploy/abc123", uri.ExplorerDeployURL("", "abc123"))
	assert.Equal(t, "https://cspr.live/deploy/abc123", uri.ExplorerDeployURL("https://cspr.live/", "abc123"))

	r := uri.NewResolver(&uri.Config{ExplorerURL: "https://cspr.live"})
	assert.Equal(t, "https://cspr.live/deploy/abc123", r.DeployURL("abc123"))
	assert.Equal(t, "https://cspr.live/account/01ab", r.AccountURL("01ab"))
}
