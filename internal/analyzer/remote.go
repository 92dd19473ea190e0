package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/Eras256/FlowFi/internal/adapter"
	"github.com/Eras256/FlowFi/internal/domain"
)

type remote struct {
	httpClient adapter.HTTPClient
	apiURL     string
}

// NewRemote creates an analyzer that posts documents to a FlowFi API server
func NewRemote(httpClient adapter.HTTPClient, apiURL string) Analyzer {
	return &remote{
		httpClient: httpClient,
		apiURL:     strings.TrimRight(apiURL, "/"),
	}
}

type remoteAssessment struct {
	RiskScore    string         `json:"risk_score"`
	Valuation    domain.Number  `json:"valuation"`
	Confidence   domain.Number  `json:"confidence"`
	Summary      string         `json:"summary"`
	QuantumScore *domain.Number `json:"quantum_score"`
	ModelUsed    string         `json:"model_used"`
	Source       string         `json:"source"`
}

func (r *remote) Analyze(ctx context.Context, doc *domain.Document) (*domain.Assessment, error) {
	if err := ValidateDocument(doc); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", doc.Name)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(doc.Data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	respBody, err := r.httpClient.Post(ctx, r.apiURL+"/api/analyze", w.FormDataContentType(), nil, buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrAnalyzerUnavailable, err)
	}

	var raw remoteAssessment
	if err := json.Unmarshal(respBody, &raw); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrAnalyzerUnavailable, err)
	}

	grade, _ := domain.ParseGrade(raw.RiskScore)
	assessment := &domain.Assessment{
		Grade:      grade,
		Valuation:  raw.Valuation.Float64(),
		Confidence: raw.Confidence.Float64(),
		Summary:    raw.Summary,
		ModelUsed:  raw.ModelUsed,
		Source:     raw.Source,
	}
	if raw.QuantumScore != nil {
		score := raw.QuantumScore.Float64()
		assessment.QuantumScore = &score
	}
	if !assessment.WellFormed() {
		return nil, fmt.Errorf("%w: malformed assessment", domain.ErrAnalyzerUnavailable)
	}

	return assessment, nil
}
