package gemini_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eras256/FlowFi/internal/adapter"
	"github.com/Eras256/FlowFi/internal/domain"
	"github.com/Eras256/FlowFi/internal/logger"
	"github.com/Eras256/FlowFi/internal/mocks"
	"github.com/Eras256/FlowFi/internal/providers/gemini"
)

const baseURL = "https://generativelanguage.example.com"

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func modelReply(t *testing.T, text string) []byte {
	t.Helper()
	resp := map[string]interface{}{
		"candidates": []interface{}{
			map[string]interface{}{
				"content": map[string]interface{}{
					"parts": []interface{}{map[string]interface{}{"text": text}},
				},
			},
		},
	}
	b, err := json.Marshal(resp)
	require.NoError(t, err)
	return b
}

func modelURL(model string) string {
	return baseURL + "/v1beta/models/" + model + ":generateContent?key=secret"
}

func TestAnalyze_FirstModelSucceeds(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockHTTP := mocks.NewMockHTTPClient(ctrl)
	client := gemini.NewClient(mockHTTP, nil, baseURL, "secret", []string{"gemini-2.0-flash-exp", "gemini-1.5-flash"})

	ctx := context.Background()
	doc := &domain.Document{Name: "invoice.txt", Data: []byte("Invoice #42 ACME Corp total 12,000 USD")}

	mockHTTP.EXPECT().
		Post(ctx, modelURL("gemini-2.0-flash-exp"), "application/json", gomock.Nil(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ string, _ map[string]string, body []byte) ([]byte, error) {
			var req map[string]interface{}
			require.NoError(t, json.Unmarshal(body, &req))
			text := req["contents"].([]interface{})[0].(map[string]interface{})["parts"].([]interface{})[0].(map[string]interface{})["text"].(string)
			assert.Contains(t, text, "DOCUMENT CONTENT:\nInvoice #42 ACME Corp")
			assert.Contains(t, text, "file of size: 38 bytes")
			return modelReply(t, "```json\n{\"risk_score\":\"a-\",\"valuation\":\"12000\",\"confidence\":0.81,\"summary\":\"Solid payer\",\"quantum_score\":77.5}\n```"), nil
		})

	assessment, err := client.Analyze(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, domain.GradeAMinus, assessment.Grade)
	assert.Equal(t, 12000.0, assessment.Valuation)
	assert.Equal(t, 0.81, assessment.Confidence)
	assert.Equal(t, "Solid payer", assessment.Summary)
	require.NotNil(t, assessment.QuantumScore)
	assert.Equal(t, 77.5, *assessment.QuantumScore)
	assert.Equal(t, "gemini-2.0-flash-exp", assessment.ModelUsed)
	assert.Equal(t, gemini.SOURCE, assessment.Source)
}

func TestAnalyze_CascadesToNextModel(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockHTTP := mocks.NewMockHTTPClient(ctrl)
	client := gemini.NewClient(mockHTTP, nil, baseURL, "secret", []string{"m1", "m2", "m3"})

	ctx := context.Background()
	doc := &domain.Document{Name: "invoice.txt", Data: []byte("invoice")}

	gomock.InOrder(
		mockHTTP.EXPECT().
			Post(ctx, modelURL("m1"), "application/json", gomock.Nil(), gomock.Any()).
			Return(nil, &adapter.StatusError{StatusCode: 404, Body: "model not found"}),
		mockHTTP.EXPECT().
			Post(ctx, modelURL("m2"), "application/json", gomock.Nil(), gomock.Any()).
			Return(modelReply(t, "I cannot read this document."), nil),
		mockHTTP.EXPECT().
			Post(ctx, modelURL("m3"), "application/json", gomock.Nil(), gomock.Any()).
			Return(modelReply(t, `{"risk_score":"B","valuation":5000,"confidence":0.7,"summary":"ok"}`), nil),
	)

	assessment, err := client.Analyze(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, domain.GradeB, assessment.Grade)
	assert.Equal(t, "m3", assessment.ModelUsed)
	assert.Nil(t, assessment.QuantumScore)
}

func TestAnalyze_AllModelsFail(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockHTTP := mocks.NewMockHTTPClient(ctrl)
	client := gemini.NewClient(mockHTTP, nil, baseURL, "secret", []string{"m1", "m2"})

	mockHTTP.EXPECT().
		Post(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused")).
		Times(2)

	_, err := client.Analyze(context.Background(), &domain.Document{Data: []byte("x")})
	assert.ErrorIs(t, err, domain.ErrAnalyzerUnavailable)
}

func TestAnalyze_NoAPIKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockHTTP := mocks.NewMockHTTPClient(ctrl)
	client := gemini.NewClient(mockHTTP, nil, baseURL, "", []string{"m1"})

	_, err := client.Analyze(context.Background(), &domain.Document{Data: []byte("x")})
	assert.ErrorIs(t, err, domain.ErrAnalyzerUnavailable)
}

func TestAnalyze_PDFSentAsInlineData(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockHTTP := mocks.NewMockHTTPClient(ctrl)
	client := gemini.NewClient(mockHTTP, nil, baseURL, "secret", []string{"m1"})

	pdf := []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n%%EOF")
	mockHTTP.EXPECT().
		Post(gomock.Any(), modelURL("m1"), "application/json", gomock.Nil(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ string, _ map[string]string, body []byte) ([]byte, error) {
			assert.Contains(t, string(body), `"inline_data":{"mime_type":"application/pdf"`)
			assert.NotContains(t, string(body), "DOCUMENT CONTENT")
			return modelReply(t, `{"risk_score":"A+","valuation":100,"confidence":1,"summary":"pdf"}`), nil
		})

	assessment, err := client.Analyze(context.Background(), &domain.Document{Name: "invoice.pdf", Data: pdf})
	require.NoError(t, err)
	assert.Equal(t, domain.GradeAPlus, assessment.Grade)
}

func TestAnalyze_TruncatesLongText(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockHTTP := mocks.NewMockHTTPClient(ctrl)
	client := gemini.NewClient(mockHTTP, nil, baseURL, "secret", []string{"m1"})

	long := strings.Repeat("a", gemini.MAX_TEXT_CHARS+500)
	mockHTTP.EXPECT().
		Post(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ string, _ map[string]string, body []byte) ([]byte, error) {
			assert.Contains(t, string(body), strings.Repeat("a", gemini.MAX_TEXT_CHARS))
			assert.NotContains(t, string(body), strings.Repeat("a", gemini.MAX_TEXT_CHARS+1))
			return modelReply(t, `{"risk_score":"C","valuation":1,"confidence":0.1,"summary":""}`), nil
		})

	_, err := client.Analyze(context.Background(), &domain.Document{Data: []byte(long)})
	require.NoError(t, err)
}

func TestParseAssessment(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		grade       domain.Grade
	}{
		{name: "plain json", input: `{"risk_score":"A","valuation":10,"confidence":0.5,"summary":"s"}`, grade: domain.GradeA},
		{name: "fenced json", input: "```json\n{\"risk_score\":\"B+\",\"valuation\":10,\"confidence\":0.5}\n```", grade: domain.GradeBPlus},
		{name: "unknown grade", input: `{"risk_score":"Z","valuation":10,"confidence":0.5}`, expectError: true},
		{name: "zero valuation", input: `{"risk_score":"A","valuation":0,"confidence":0.5}`, expectError: true},
		{name: "confidence out of range", input: `{"risk_score":"A","valuation":10,"confidence":1.5}`, expectError: true},
		{name: "not json", input: "Grade A, looks fine", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := gemini.ParseAssessment(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.grade, got.Grade)
		})
	}
}
