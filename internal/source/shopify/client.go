package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"catalog_writer/internal/domain"
)

type PaginationMode string

const (
	// PaginationCursor follows page_info cursors from the Link header.
	PaginationCursor PaginationMode = "cursor"
	// PaginationSinceID walks the legacy since_id offset until an empty page.
	PaginationSinceID PaginationMode = "since_id"
)

// Config holds Shopify client configuration.
type Config struct {
	ShopDomain     string
	AccessToken    string
	APIVersion     string
	BaseURL        string // overrides https://{shop}/admin/api/{version}
	PageSize       int
	MaxPages       int
	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Pagination     map[domain.Kind]PaginationMode
}

// StatusError is a non-2xx response from Shopify.
type StatusError struct {
	StatusCode int
	Body       string
	RetryAfter time.Duration
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status: %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status: %d: %s", e.StatusCode, e.Body)
}

func (e *StatusError) retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

var errDecode = errors.New("decode response")

// Client implements the catalog provider against the Shopify Admin REST API.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	accessToken    string
	pageSize       int
	maxPages       int
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	pagination     map[domain.Kind]PaginationMode
	logger         *slog.Logger
}

// New creates a new Shopify client.
func New(cfg Config, logger *slog.Logger) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s/admin/api/%s", shopHost(cfg.ShopDomain), cfg.APIVersion)
	}

	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	pagination := map[domain.Kind]PaginationMode{
		domain.KindProduct:    PaginationCursor,
		domain.KindCollection: PaginationSinceID,
	}
	for k, mode := range cfg.Pagination {
		pagination[k] = mode
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:        baseURL,
		accessToken:    cfg.AccessToken,
		pageSize:       cfg.PageSize,
		maxPages:       cfg.MaxPages,
		maxAttempts:    maxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		pagination:     pagination,
		logger:         logger.With("catalog", "shopify"),
	}
}

func shopHost(shop string) string {
	shop = strings.TrimSpace(shop)
	shop = strings.TrimPrefix(shop, "https://")
	shop = strings.TrimPrefix(shop, "http://")
	return strings.TrimRight(shop, "/")
}

// ListAll walks every page of the kind's list endpoint. When a page fails the
// items collected so far are returned along with the error.
func (c *Client) ListAll(ctx context.Context, kind domain.Kind) ([]domain.ListedItem, error) {
	res, ok := resources[kind]
	if !ok {
		return nil, fmt.Errorf("unsupported kind %q", kind)
	}

	if c.pagination[kind] == PaginationSinceID {
		return c.listBySinceID(ctx, res)
	}
	return c.listByCursor(ctx, res)
}

func (c *Client) listByCursor(ctx context.Context, res resource) ([]domain.ListedItem, error) {
	var items []domain.ListedItem
	seen := make(map[string]struct{})
	cursor := ""

	for page := 0; c.maxPages <= 0 || page < c.maxPages; page++ {
		query := url.Values{"limit": {strconv.Itoa(c.pageSize)}}
		if cursor != "" {
			query.Set("page_info", cursor)
		}

		records, header, err := c.fetchPage(ctx, res, query)
		if err != nil {
			return items, fmt.Errorf("fetch %s page %d: %w", res.plural, page, err)
		}
		if len(records) == 0 {
			break
		}

		for _, r := range records {
			items = append(items, r.listed())
		}

		c.logger.Debug("fetched page",
			"resource", res.plural,
			"page", page,
			"items", len(records),
			"total", len(items),
		)

		next, ok := ParseNextCursor(header.Get("Link"))
		if !ok {
			break
		}
		if _, dup := seen[next]; dup {
			c.logger.Warn("cursor repeated, stopping pagination", "resource", res.plural, "page", page)
			break
		}
		seen[next] = struct{}{}
		cursor = next
	}

	return items, nil
}

func (c *Client) listBySinceID(ctx context.Context, res resource) ([]domain.ListedItem, error) {
	var items []domain.ListedItem
	var sinceID int64

	for page := 0; c.maxPages <= 0 || page < c.maxPages; page++ {
		query := url.Values{"limit": {strconv.Itoa(c.pageSize)}}
		if sinceID > 0 {
			query.Set("since_id", strconv.FormatInt(sinceID, 10))
		}

		records, _, err := c.fetchPage(ctx, res, query)
		if err != nil {
			return items, fmt.Errorf("fetch %s page %d: %w", res.plural, page, err)
		}
		if len(records) == 0 {
			break
		}

		lastID := sinceID
		for _, r := range records {
			items = append(items, r.listed())
			if r.ID > lastID {
				lastID = r.ID
			}
		}

		c.logger.Debug("fetched page",
			"resource", res.plural,
			"since_id", sinceID,
			"items", len(records),
			"total", len(items),
		)

		if lastID == sinceID {
			c.logger.Warn("since_id did not advance, stopping pagination", "resource", res.plural, "since_id", sinceID)
			break
		}
		sinceID = lastID
	}

	return items, nil
}

func (c *Client) fetchPage(ctx context.Context, res resource, query url.Values) ([]apiItem, http.Header, error) {
	var envelope map[string]json.RawMessage
	header, err := c.do(ctx, http.MethodGet, res.plural+".json", query, nil, &envelope)
	if err != nil {
		return nil, nil, err
	}

	var records []apiItem
	if raw, ok := envelope[res.plural]; ok {
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, nil, fmt.Errorf("%w: %s: %v", errDecode, res.plural, err)
		}
	}
	return records, header, nil
}

// GetDetail fetches a single item. Unknown items yield domain.ErrNotFound.
func (c *Client) GetDetail(ctx context.Context, kind domain.Kind, externalID string) (*domain.ItemDetail, error) {
	res, ok := resources[kind]
	if !ok {
		return nil, fmt.Errorf("unsupported kind %q", kind)
	}

	var envelope map[string]json.RawMessage
	_, err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/%s.json", res.plural, url.PathEscape(externalID)), nil, nil, &envelope)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%s %s: %w", res.singular, externalID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get %s %s: %w", res.singular, externalID, err)
	}

	raw, ok := envelope[res.singular]
	if !ok || string(raw) == "null" {
		return nil, fmt.Errorf("%s %s: %w", res.singular, externalID, domain.ErrNotFound)
	}

	var item apiItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errDecode, res.singular, err)
	}
	return item.detail(), nil
}

// Update pushes a partial update. Sending the same fields twice leaves the
// item in the same state.
func (c *Client) Update(ctx context.Context, kind domain.Kind, externalID string, fields domain.UpdateFields) error {
	res, ok := resources[kind]
	if !ok {
		return fmt.Errorf("unsupported kind %q", kind)
	}
	if fields.Empty() {
		return nil
	}

	id, err := strconv.ParseInt(externalID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid %s id %q: %w", res.singular, externalID, err)
	}

	body, err := json.Marshal(map[string]updatePayload{
		res.singular: {
			ID:              id,
			Title:           fields.Title,
			BodyHTML:        fields.BodyHTML,
			MetaTitle:       fields.MetaTitle,
			MetaDescription: fields.MetaDescription,
		},
	})
	if err != nil {
		return fmt.Errorf("marshal update: %w", err)
	}

	if _, err := c.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d.json", res.plural, id), nil, body, nil); err != nil {
		return fmt.Errorf("update %s %s: %w", res.singular, externalID, err)
	}

	c.logger.Debug("updated item", "resource", res.plural, "external_id", externalID)
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte, out any) (http.Header, error) {
	endpoint := c.baseURL + "/" + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var header http.Header
	var err error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		header, err = c.doRequest(ctx, method, endpoint, body, out)
		if err == nil {
			return header, nil
		}

		if attempt == c.maxAttempts || !c.retryable(ctx, err) {
			break
		}

		backoff := c.calculateBackoff(attempt, err)
		c.logger.Warn("request failed, retrying",
			"method", method,
			"path", path,
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	return nil, err
}

func (c *Client) doRequest(ctx context.Context, method, endpoint string, body []byte, out any) (http.Header, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "CatalogWriter/1.0")
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(payload)),
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, fmt.Errorf("%w: %v", errDecode, err)
		}
	}

	return resp.Header, nil
}

func (c *Client) retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil || errors.Is(err, errDecode) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.retryable()
	}
	return true
}

func (c *Client) calculateBackoff(attempt int, err error) time.Duration {
	backoff := c.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}

	var se *StatusError
	if errors.As(err, &se) && se.RetryAfter > backoff {
		backoff = se.RetryAfter
	}

	if c.maxBackoff > 0 && backoff > c.maxBackoff {
		backoff = c.maxBackoff
	}
	return backoff
}

func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	secs, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs * float64(time.Second))
}
