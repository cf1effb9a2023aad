package snapklik

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/skinsift/backend/internal/domain"
	"golang.org/x/time/rate"
)

const (
	defaultPageDelay = time.Second
	defaultMaxPages  = 50
	maxAttempts      = 3
)

// Client handles communication with the Snapklik search API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
	maxPages    int
	debug       bool
}

// NewClient creates a new Snapklik API client. pageDelay is the minimum
// spacing between page requests; the public API is unauthenticated, so the
// pacing is deliberately conservative.
func NewClient(baseURL string, pageDelay time.Duration, maxPages int) *Client {
	if pageDelay <= 0 {
		pageDelay = defaultPageDelay
	}
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:     baseURL,
		rateLimiter: rate.NewLimiter(rate.Every(pageDelay), 1),
		maxPages:    maxPages,
	}
}

// SetDebug toggles verbose request logging.
func (c *Client) SetDebug(enabled bool) {
	c.debug = enabled
}

func (c *Client) debugLog(format string, args ...any) {
	if c.debug {
		log.Printf("[snapklik] "+format, args...)
	}
}

// searchResponse mirrors the API envelope. isFinished is a pointer because
// the field is sometimes omitted, and an omitted flag means the result set
// is complete.
type searchResponse struct {
	Data struct {
		Hits       []domain.RawProduct `json:"hits"`
		IsFinished *bool               `json:"isFinished"`
	} `json:"data"`
}

// SearchProducts fetches one page of search results for the given term.
// Transient failures (5xx, 429, network errors) are retried with a linear
// backoff; other client errors fail immediately.
func (c *Client) SearchProducts(ctx context.Context, term string, page int) (*domain.SearchPage, error) {
	params := url.Values{}
	params.Set("p", fmt.Sprintf("%d", page))
	params.Set("s", term)
	reqURL := fmt.Sprintf("%s/a/sr/?%s", c.baseURL, params.Encode())

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		body, status, err := c.doRequest(ctx, reqURL)
		if err != nil {
			lastErr = err
			c.debugLog("page %d attempt %d failed: %v", page, attempt, err)
			if !sleepBackoff(ctx, attempt) {
				return nil, ctx.Err()
			}
			continue
		}

		if status != http.StatusOK {
			lastErr = fmt.Errorf("%w: status %d", domain.ErrSourceUnavailable, status)
			if status == http.StatusTooManyRequests || status >= http.StatusInternalServerError {
				c.debugLog("page %d attempt %d: status %d, retrying", page, attempt, status)
				if !sleepBackoff(ctx, attempt) {
					return nil, ctx.Err()
				}
				continue
			}
			return nil, lastErr
		}

		var decoded searchResponse
		if err := json.Unmarshal(body, &decoded); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}

		finished := true
		if decoded.Data.IsFinished != nil {
			finished = *decoded.Data.IsFinished
		}

		c.debugLog("page %d: %d hits, finished=%v", page, len(decoded.Data.Hits), finished)
		return &domain.SearchPage{Hits: decoded.Data.Hits, Finished: finished}, nil
	}

	return nil, lastErr
}

// FetchAll paginates through search results until the API reports the set
// is finished or the page cap is reached. A failure after the first page
// ends pagination and returns the partial batch: downstream processing
// degrades gracefully on partial input.
func (c *Client) FetchAll(ctx context.Context, term string) ([]domain.RawProduct, error) {
	var all []domain.RawProduct

	for page := 0; page < c.maxPages; page++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return all, fmt.Errorf("rate limiter: %w", err)
		}

		log.Printf("[snapklik] fetching page %d", page)
		result, err := c.SearchProducts(ctx, term, page)
		if err != nil {
			if page == 0 {
				return nil, err
			}
			log.Printf("[snapklik] page %d failed, keeping %d products: %v", page, len(all), err)
			break
		}

		all = append(all, result.Hits...)
		if result.Finished {
			break
		}
	}

	return all, nil
}

// doRequest executes one GET with browser-like headers; the API rejects
// requests without a plausible Origin/Referer pair.
func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Origin", "https://snapklik.com")
	req.Header.Set("Referer", "https://snapklik.com/")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	return body, resp.StatusCode, nil
}

// sleepBackoff blocks for a linearly growing delay, honoring cancellation.
// Returns false when the context ended first.
func sleepBackoff(ctx context.Context, attempt int) bool {
	timer := time.NewTimer(time.Duration(attempt) * 500 * time.Millisecond)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
