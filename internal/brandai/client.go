package brandai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Compatibility is the brand-fit verdict produced by the analysis service.
// Scores are on a 0-100 scale.
type Compatibility struct {
	CompatibilityScore float64 `json:"compatibility_score"`
	ImageSimilarity    float64 `json:"image_similarity"`
	TextSimilarity     float64 `json:"text_similarity"`
	ToneMatch          float64 `json:"tone_match"`
	CategoryMatch      float64 `json:"category_match"`
	Detail             string  `json:"detail,omitempty"`
	AnalysisMethod     string  `json:"analysis_method,omitempty"`
}

// ChannelProfile is what the analysis service sees of a channel. The
// thumbnail feeds the image-similarity leg and may be empty.
type ChannelProfile struct {
	ChannelID    string   `json:"channel_id"`
	Title        string   `json:"title,omitempty"`
	Description  string   `json:"description,omitempty"`
	Category     string   `json:"category,omitempty"`
	Keywords     []string `json:"keywords,omitempty"`
	ThumbnailURL string   `json:"thumbnail_url,omitempty"`
}

type Client interface {
	AnalyzeCompatibility(ctx context.Context, brandName, brandCategory string, profile ChannelProfile) (*Compatibility, error)
}

type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) doReq(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("brandai %s %s: %d %s", method, path, resp.StatusCode, string(body))
	}
	return body, nil
}

func (c *HTTPClient) AnalyzeCompatibility(ctx context.Context, brandName, brandCategory string, profile ChannelProfile) (*Compatibility, error) {
	payload := map[string]any{
		"brand_name":     brandName,
		"brand_category": brandCategory,
		"channel":        profile,
	}
	data, err := c.doReq(ctx, "POST", "/v1/compatibility", payload)
	if err != nil {
		return nil, err
	}
	var result Compatibility
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
