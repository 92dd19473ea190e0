package uri

import (
	"strings"

	"github.com/Eras256/FlowFi/internal/domain"
)

// Config holds configuration for the URI resolver
type Config struct {
	// IPFSGateways is the list of IPFS gateways, the first one is preferred
	IPFSGateways []string
	// ExplorerURL is the block explorer base URL
	ExplorerURL string
}

// Resolver maps stored document and deploy references to browsable links
//
//go:generate mockgen -source=resolver.go -destination=../mocks/uri_resolver.go -package=mocks -mock_names=Resolver=MockURIResolver
type Resolver interface {
	// Resolve maps ipfs:// and gateway URLs to the preferred gateway.
	// Any other URI is returned unchanged.
	Resolve(uri string) string

	// Candidates returns the URI on every configured gateway, preferred first
	Candidates(uri string) []string

	// DeployURL returns the explorer page of a deploy
	DeployURL(deployHash string) string

	// AccountURL returns the explorer page of an account
	AccountURL(publicKeyHex string) string
}

type resolver struct {
	gateways []string
	explorer string
}

// NewResolver creates a resolver, defaulting to the public gateway and testnet explorer
func NewResolver(config *Config) Resolver {
	var gateways []string
	explorer := domain.DEFAULT_EXPLORER_URL
	if config != nil {
		for _, gw := range config.IPFSGateways {
			if gw = strings.TrimRight(strings.TrimSpace(gw), "/"); gw != "" {
				gateways = append(gateways, gw)
			}
		}
		if config.ExplorerURL != "" {
			explorer = config.ExplorerURL
		}
	}
	if len(gateways) == 0 {
		gateways = []string{domain.DEFAULT_IPFS_GATEWAY}
	}

	return &resolver{gateways: gateways, explorer: explorer}
}

func (r *resolver) Resolve(uri string) string {
	cid, ok := ExtractCID(uri)
	if !ok {
		return uri
	}
	return r.gateways[0] + "/ipfs/" + cid
}

func (r *resolver) Candidates(uri string) []string {
	cid, ok := ExtractCID(uri)
	if !ok {
		return []string{uri}
	}
	urls := make([]string, 0, len(r.gateways))
	for _, gw := range r.gateways {
		urls = append(urls, gw+"/ipfs/"+cid)
	}
	return urls
}

func (r *resolver) DeployURL(deployHash string) string {
	return ExplorerDeployURL(r.explorer, deployHash)
}

func (r *resolver) AccountURL(publicKeyHex string) string {
	return strings.TrimRight(r.explorer, "/") + "/account/" + publicKeyHex
}

// ExtractCID returns the content identifier of ipfs:// URIs and IPFS gateway URLs
func ExtractCID(uri string) (string, bool) {
	uri = strings.TrimSpace(uri)

	if cid, ok := strings.CutPrefix(uri, "ipfs://"); ok {
		cid = strings.TrimPrefix(cid, "ipfs/")
		return cid, cid != ""
	}

	// Gateway URLs, e.g. https://gateway.pinata.cloud/ipfs/QmXxx
	if _, cid, ok := strings.Cut(uri, "/ipfs/"); ok && strings.HasPrefix(uri, "http") {
		return cid, cid != ""
	}

	return "", false
}

// ExplorerDeployURL returns <explorer>/deploy/<hash>
func ExplorerDeployURL(explorerURL, deployHash string) string {
	if explorerURL == "" {
		explorerURL = domain.DEFAULT_EXPLORER_URL
	}
	return strings.TrimRight(explorerURL, "/") + "/deploy/" + deployHash
}
