package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/Eras256/FlowFi/internal/adapter"
	"github.com/Eras256/FlowFi/internal/domain"
	"github.com/Eras256/FlowFi/internal/logger"
	"github.com/Eras256/FlowFi/internal/ratelimit"
)

const (
	PROVIDER_NAME = ratelimit.ProviderGemini

	// SOURCE is reported on assessments produced by a model
	SOURCE = "serverless-rest"

	// MAX_TEXT_CHARS bounds the document text embedded in the prompt
	MAX_TEXT_CHARS = 30000
)

const promptTemplate = `You are FlowAI, an expert financial risk auditor.
Analyze this invoice content and return strictly valid JSON.
User uploaded a file of size: %d bytes.
Return JSON structure:
{ "risk_score": "Grade (A+, A, B)", "valuation": Number, "confidence": Number (0-1), "summary": "Short analysis", "quantum_score": Number }
If content is unreadable make a realistic estimate.`

// Client defines the interface for the Gemini generative language API
//
//go:generate mockgen -source=client.go -destination=../../mocks/gemini_client.go -package=mocks -mock_names=Client=MockGeminiClient
type Client interface {
	// Analyze scores the document with the first model of the cascade that answers with a
	// well-formed assessment
	Analyze(ctx context.Context, doc *domain.Document) (*domain.Assessment, error)
}

type client struct {
	httpClient     adapter.HTTPClient
	rateLimitProxy ratelimit.Proxy
	baseURL        string
	apiKey         string
	models         []string
}

// NewClient creates a new Gemini API client
func NewClient(httpClient adapter.HTTPClient, rateLimitProxy ratelimit.Proxy, baseURL, apiKey string, models []string) Client {
	return &client{
		httpClient:     httpClient,
		rateLimitProxy: rateLimitProxy,
		baseURL:        strings.TrimRight(baseURL, "/"),
		apiKey:         apiKey,
		models:         models,
	}
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// modelAssessment is the shape requested from the model. Numbers are decoded leniently.
type modelAssessment struct {
	RiskScore    string         `json:"risk_score"`
	Valuation    domain.Number  `json:"valuation"`
	Confidence   domain.Number  `json:"confidence"`
	Summary      string         `json:"summary"`
	QuantumScore *domain.Number `json:"quantum_score"`
}

// Analyze scores the document against each configured model in order
func (c *client) Analyze(ctx context.Context, doc *domain.Document) (*domain.Assessment, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: gemini api key not configured", domain.ErrAnalyzerUnavailable)
	}
	if doc == nil || doc.Size() == 0 {
		return nil, fmt.Errorf("%w: empty document", domain.ErrInvalidDocument)
	}

	body, err := json.Marshal(buildRequest(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	for _, model := range c.models {
		assessment, err := c.generate(ctx, model, body)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.WarnCtx(ctx, "Model failed or returned empty", zap.String("model", model), zap.Error(err))
			continue
		}

		assessment.ModelUsed = model
		assessment.Source = SOURCE
		return assessment, nil
	}

	return nil, fmt.Errorf("%w: all gemini models failed", domain.ErrAnalyzerUnavailable)
}

func (c *client) generate(ctx context.Context, model string, body []byte) (*domain.Assessment, error) {
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, url.PathEscape(model), url.QueryEscape(c.apiKey))

	respBody, err := ratelimit.Request(ctx, c.rateLimitProxy, PROVIDER_NAME, func(ctx context.Context) ([]byte, error) {
		return c.httpClient.Post(ctx, endpoint, "application/json", nil, body)
	})
	if err != nil {
		return nil, err
	}

	var resp generateResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response")
	}

	text := resp.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty response")
	}

	return ParseAssessment(text)
}

// ParseAssessment parses a model reply, tolerating markdown code fences around the JSON
func ParseAssessment(text string) (*domain.Assessment, error) {
	clean := strings.ReplaceAll(text, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	clean = strings.TrimSpace(clean)

	var raw modelAssessment
	if err := json.Unmarshal([]byte(clean), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse model output: %w", err)
	}

	grade, _ := domain.ParseGrade(raw.RiskScore)
	assessment := &domain.Assessment{
		Grade:      grade,
		Valuation:  raw.Valuation.Float64(),
		Confidence: raw.Confidence.Float64(),
		Summary:    strings.TrimSpace(raw.Summary),
	}
	if raw.QuantumScore != nil {
		score := raw.QuantumScore.Float64()
		assessment.QuantumScore = &score
	}

	if !assessment.WellFormed() {
		return nil, fmt.Errorf("malformed assessment: grade=%q valuation=%v confidence=%v",
			raw.RiskScore, assessment.Valuation, assessment.Confidence)
	}

	return assessment, nil
}

// buildRequest embeds binary documents as inline data and everything else as truncated text
func buildRequest(doc *domain.Document) generateRequest {
	prompt := fmt.Sprintf(promptTemplate, doc.Size())

	mime := mimetype.Detect(doc.Data)
	if mime.Is("application/pdf") || strings.HasPrefix(mime.String(), "image/") {
		return generateRequest{
			Contents: []content{{
				Parts: []part{
					{Text: prompt},
					{InlineData: &inlineData{
						MimeType: strings.SplitN(mime.String(), ";", 2)[0],
						Data:     base64.StdEncoding.EncodeToString(doc.Data),
					}},
				},
			}},
		}
	}

	return generateRequest{
		Contents: []content{{
			Parts: []part{{Text: prompt + "\n\nDOCUMENT CONTENT:\n" + truncate(string(doc.Data), MAX_TEXT_CHARS)}},
		}},
	}
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
