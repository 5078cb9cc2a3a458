// Package content is the HTTP client for the external article generation
// and headline rating service. Both calls are advisory: the simulation
// treats their output as decoration and tolerates failure or slowness.
package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/RDelgadoM/RatNewsNetwork/server/internal/domain/article"
)

// Client talks to the article API service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the service at baseURL. A zero timeout
// defaults to 30 seconds.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// generateRequest is the POST body for article generation.
type generateRequest struct {
	Topic     string            `json:"topic"`
	Type      string            `json:"type"`
	Qualities article.Qualities `json:"qualities"`
	Status    string            `json:"status"`
	Category  *string           `json:"category"`
}

// ArticleJSON is the generated display copy.
type ArticleJSON struct {
	Dek  string `json:"dek"`
	Body string `json:"body"`
}

// GenerateResponse is the article generation result. Only Article is used
// by the engine; the rest is surfaced to the UI verbatim.
type GenerateResponse struct {
	Topic          string            `json:"topic"`
	Type           string            `json:"type"`
	Category       *string           `json:"category,omitempty"`
	Model          string            `json:"model,omitempty"`
	Article        *ArticleJSON      `json:"article,omitempty"`
	ElapsedMS      float64           `json:"elapsed_ms,omitempty"`
	Reviews        []json.RawMessage `json:"reviews,omitempty"`
	WrittenReviews []json.RawMessage `json:"written_reviews,omitempty"`
}

// HeadlineRateIn is the headline rating request.
type HeadlineRateIn struct {
	Headline    string `json:"headline"`
	ArticleType string `json:"article_type"`
}

// HeadlineRateOut is the headline rating result, display-only.
type HeadlineRateOut struct {
	Type                string             `json:"type"`
	Overall             float64            `json:"overall"`
	TypeSimilarity      float64            `json:"type_similarity"`
	AxisScores          map[string]float64 `json:"axis_scores"`
	GibberishSimilarity float64            `json:"gibberish_similarity"`
	Tips                []string           `json:"tips,omitempty"`
	ElapsedMS           float64            `json:"elapsed_ms,omitempty"`
}

// GenerateArticle requests generated display copy for a committed draft.
func (c *Client) GenerateArticle(ctx context.Context, draft article.Draft, publicationName string, sliderScore float64) (*GenerateResponse, error) {
	endpoint := fmt.Sprintf("%s/api/v1/articles/generate?company_name=%s&slider_score=%s",
		c.baseURL,
		url.QueryEscape(publicationName),
		url.QueryEscape(fmt.Sprintf("%g", sliderScore)),
	)

	body := generateRequest{
		Topic:     draft.Topic,
		Type:      string(draft.Type),
		Qualities: draft.Qualities,
		Status:    string(article.StatusDraft),
	}
	if draft.Category != "" {
		body.Category = &draft.Category
	}

	var resp GenerateResponse
	if err := c.post(ctx, endpoint, body, &resp); err != nil {
		return nil, fmt.Errorf("article generation: %w", err)
	}
	return &resp, nil
}

// RateHeadline requests a quality rating for a headline.
func (c *Client) RateHeadline(ctx context.Context, headline, articleType string) (*HeadlineRateOut, error) {
	endpoint := c.baseURL + "/api/v1/headlines/rate"

	var resp HeadlineRateOut
	err := c.post(ctx, endpoint, HeadlineRateIn{Headline: headline, ArticleType: articleType}, &resp)
	if err != nil {
		return nil, fmt.Errorf("headline rating: %w", err)
	}
	return &resp, nil
}

// Generate implements engine.ContentClient.
func (c *Client) Generate(ctx context.Context, draft article.Draft, publicationName string, sliderScore float64) (article.GeneratedContent, error) {
	resp, err := c.GenerateArticle(ctx, draft, publicationName, sliderScore)
	if err != nil {
		return article.GeneratedContent{}, err
	}
	if resp.Article == nil {
		return article.GeneratedContent{}, fmt.Errorf("article generation: empty article in response")
	}
	return article.GeneratedContent{Dek: resp.Article.Dek, Body: resp.Article.Body}, nil
}

func (c *Client) post(ctx context.Context, endpoint string, payload, out interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(text))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
