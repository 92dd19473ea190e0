package pinata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/Eras256/FlowFi/internal/adapter"
	"github.com/Eras256/FlowFi/internal/domain"
	"github.com/Eras256/FlowFi/internal/logger"
	"github.com/Eras256/FlowFi/internal/ratelimit"
)

const (
	PROVIDER_NAME = ratelimit.ProviderPinata

	// DEFAULT_API_URL is the Pinata pinning API
	DEFAULT_API_URL = "https://api.pinata.cloud"
)

// Client defines the interface for the Pinata pinning API
//
//go:generate mockgen -source=client.go -destination=../../mocks/pinata_client.go -package=mocks -mock_names=Client=MockPinataClient
type Client interface {
	// PinFile pins the document and returns its ipfs:// locator
	PinFile(ctx context.Context, doc *domain.Document) (string, error)
}

type client struct {
	httpClient     adapter.HTTPClient
	rateLimitProxy ratelimit.Proxy
	clock          adapter.Clock
	apiURL         string
	jwt            string
}

// NewClient creates a new Pinata API client
func NewClient(httpClient adapter.HTTPClient, rateLimitProxy ratelimit.Proxy, clock adapter.Clock, apiURL, jwt string) Client {
	if apiURL == "" {
		apiURL = DEFAULT_API_URL
	}
	return &client{
		httpClient:     httpClient,
		rateLimitProxy: rateLimitProxy,
		clock:          clock,
		apiURL:         strings.TrimRight(apiURL, "/"),
		jwt:            jwt,
	}
}

type pinResponse struct {
	IpfsHash  string `json:"IpfsHash"`
	PinSize   int64  `json:"PinSize"`
	Timestamp string `json:"Timestamp"`
}

// PinFile uploads the document with pinFileToIPFS
func (c *client) PinFile(ctx context.Context, doc *domain.Document) (string, error) {
	if c.jwt == "" {
		return "", fmt.Errorf("%w: pinata jwt not configured", domain.ErrUploadFailed)
	}
	if doc == nil || doc.Size() == 0 {
		return "", fmt.Errorf("%w: empty document", domain.ErrUploadFailed)
	}
	if doc.Size() > domain.MAX_DOCUMENT_SIZE {
		return "", domain.ErrDocumentTooLarge
	}

	name := PinName(doc.Name, c.clock.Now().UnixMilli())
	body, contentType, err := encodeMultipart(doc, name)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	endpoint := c.apiURL + "/pinning/pinFileToIPFS"
	headers := map[string]string{"Authorization": "Bearer " + c.jwt}

	respBody, err := ratelimit.Request(ctx, c.rateLimitProxy, PROVIDER_NAME, func(ctx context.Context) ([]byte, error) {
		return c.httpClient.Post(ctx, endpoint, contentType, headers, body)
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrUploadFailed, err)
	}

	var resp pinResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", domain.ErrUploadFailed, err)
	}
	if resp.IpfsHash == "" {
		return "", fmt.Errorf("%w: response carries no IpfsHash", domain.ErrUploadFailed)
	}

	logger.InfoCtx(ctx, "Pinned document", zap.String("name", name), zap.String("cid", resp.IpfsHash), zap.Int64("size", resp.PinSize))

	return "ipfs://" + resp.IpfsHash, nil
}

// PinName is the pin name recorded for an uploaded invoice
func PinName(fileName string, unixMilli int64) string {
	return fmt.Sprintf("FlowFi_Invoice_%d_%s", unixMilli, fileName)
}

func encodeMultipart(doc *domain.Document, name string) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	contentType := doc.ContentType
	if contentType == "" {
		contentType = mimetype.Detect(doc.Data).String()
	}

	fileName := doc.Name
	if fileName == "" {
		fileName = "invoice"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, fileName))
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(doc.Data); err != nil {
		return nil, "", err
	}

	metadata, err := json.Marshal(map[string]string{"name": name})
	if err != nil {
		return nil, "", err
	}
	if err := w.WriteField("pinataMetadata", string(metadata)); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("pinataOptions", `{"cidVersion":0}`); err != nil {
		return nil, "", err
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
