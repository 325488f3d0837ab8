package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sponsorscope/sponsorscope/internal/simulator"
)

// MockSimService implements SimulationService for testing
type MockSimService struct {
	mock.Mock
}

func (m *MockSimService) Run(ctx context.Context, req simulator.Request) (*simulator.Result, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*simulator.Result), args.Error(1)
}

func (m *MockSimService) CompareWeights(ctx context.Context, req simulator.CompareRequest) (*simulator.CompareResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*simulator.CompareResult), args.Error(1)
}

func (m *MockSimService) AnalyzeBrand(ctx context.Context, req simulator.Request) (*simulator.BrandScore, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*simulator.BrandScore), args.Error(1)
}

func (m *MockSimService) AnalyzeSentiment(ctx context.Context, req simulator.Request) (*simulator.SentimentScore, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*simulator.SentimentScore), args.Error(1)
}

func (m *MockSimService) SummarizeComments(ctx context.Context, comments []string) (*simulator.CommentSummary, error) {
	args := m.Called(ctx, comments)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*simulator.CommentSummary), args.Error(1)
}

func TestBrandCompatibilityEndpoint(t *testing.T) {
	svc := new(MockSimService)
	svc.On("AnalyzeBrand", mock.Anything, mock.MatchedBy(func(req simulator.Request) bool {
		return req.ChannelID == "UCtest" && req.BrandName == "Acme"
	})).Return(&simulator.BrandScore{
		CompatibilityScore: 85,
		CategoryMatch:      90,
		AnalysisMethod:     "ai",
	}, nil)

	handler := NewSimulateHandler(svc)
	body, _ := json.Marshal(map[string]string{
		"channel_id":     "UCtest",
		"brand_name":     "Acme",
		"brand_category": "beverages",
	})
	req := httptest.NewRequest("POST", "/api/v1/brand-compatibility", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.BrandCompatibility(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var score simulator.BrandScore
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &score))
	assert.Equal(t, 85.0, score.CompatibilityScore)
	assert.Equal(t, "ai", score.AnalysisMethod)
	svc.AssertExpectations(t)
}

func TestBrandCompatibilityUnknownChannel(t *testing.T) {
	svc := new(MockSimService)
	svc.On("AnalyzeBrand", mock.Anything, mock.Anything).
		Return(nil, simulator.ErrChannelNotFound)

	handler := NewSimulateHandler(svc)
	body, _ := json.Marshal(map[string]string{
		"channel_id": "UCmissing",
		"brand_name": "Acme",
	})
	req := httptest.NewRequest("POST", "/api/v1/brand-compatibility", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.BrandCompatibility(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	svc.AssertExpectations(t)
}

func TestBrandCompatibilityBadBody(t *testing.T) {
	svc := new(MockSimService)
	handler := NewSimulateHandler(svc)

	req := httptest.NewRequest("POST", "/api/v1/brand-compatibility", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	handler.BrandCompatibility(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "AnalyzeBrand")
}
