package article

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Article is the fetched source material for a pipeline run.
type Article struct {
	Title   string
	Extract string
	URL     string
}

// Client fetches article summaries from the Wikipedia REST API.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a Wikipedia article client.
func NewClient(baseURL, userAgent string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = "https://en.wikipedia.org/api/rest_v1"
	}
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

type summaryResponse struct {
	Title   string `json:"title"`
	Extract string `json:"extract"`
	Type    string `json:"type"`
	Content struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// FetchSummary retrieves the plain-text summary of a Wikipedia page by title.
func (c *Client) FetchSummary(ctx context.Context, title string) (*Article, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("article title is empty")
	}

	endpoint := c.baseURL + "/page/summary/" + url.PathEscape(strings.ReplaceAll(title, " ", "_"))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug("fetching article summary", zap.String("title", title))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch article: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("article %q not found", title)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Wikipedia API error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("title", title))
		return nil, fmt.Errorf("Wikipedia API error (status %d): %s", resp.StatusCode, string(body))
	}

	var summary summaryResponse
	if err := json.Unmarshal(body, &summary); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if strings.TrimSpace(summary.Extract) == "" {
		return nil, fmt.Errorf("article %q has no extract", title)
	}

	c.logger.Info("article fetched",
		zap.String("title", summary.Title),
		zap.Int("extract_chars", len(summary.Extract)))

	return &Article{
		Title:   summary.Title,
		Extract: summary.Extract,
		URL:     summary.Content.Desktop.Page,
	}, nil
}

// Truncate caps text at maxChars without splitting a multi-byte rune.
func Truncate(text string, maxChars int) string {
	if maxChars <= 0 || len(text) <= maxChars {
		return text
	}
	cut := text[:maxChars]
	for !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut
}
