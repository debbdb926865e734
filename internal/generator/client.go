// Package generator talks to an OpenAI-compatible chat completions endpoint
// and turns its replies into bounded SEO content.
package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"catalog_writer/internal/domain"
	"catalog_writer/internal/sanitize"
)

const (
	MaxTitleLength           = 70
	MaxMetaTitleLength       = 70
	MaxMetaDescriptionLength = 155
)

// Config holds generator client configuration.
type Config struct {
	Endpoint    string
	Model       string
	APIKey      string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// GenerationError means no reply could be obtained at all. Malformed replies
// never produce it; they end in the fallback instead.
type GenerationError struct {
	Mode domain.GenerationMode
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate %s content: %v", e.Mode, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Client generates titles, descriptions and search metadata.
type Client struct {
	httpClient  *http.Client
	endpoint    string
	model       string
	apiKey      string
	temperature float64
	maxTokens   int
	logger      *slog.Logger
}

// New creates a new generator client.
func New(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		endpoint:    cfg.Endpoint,
		model:       cfg.Model,
		apiKey:      cfg.APIKey,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		logger:      logger.With("generator", cfg.Model),
	}
}

// GenerateFull produces a replacement title and HTML description.
func (c *Client) GenerateFull(ctx context.Context, in domain.GenerationInput) (*domain.GenerationResult, error) {
	return c.generate(ctx, domain.ModeFull, in)
}

// GenerateMetaOnly produces a title plus meta title and meta description.
func (c *Client) GenerateMetaOnly(ctx context.Context, in domain.GenerationInput) (*domain.GenerationResult, error) {
	return c.generate(ctx, domain.ModeMeta, in)
}

func (c *Client) generate(ctx context.Context, mode domain.GenerationMode, in domain.GenerationInput) (*domain.GenerationResult, error) {
	in.Keywords = c.keywords(ctx, in)

	reply, err := c.complete(ctx, c.contentRequest(buildMessages(mode, in, false)))
	if err != nil {
		return nil, &GenerationError{Mode: mode, Err: err}
	}
	if p, ok := parseReply(mode, reply); ok {
		return p.result(mode, domain.OriginModel, in.Keywords), nil
	}

	c.logger.Warn("malformed reply, retrying with stricter instruction",
		"mode", mode,
		"reply", preview(reply),
	)

	reply, err = c.complete(ctx, c.contentRequest(buildMessages(mode, in, true)))
	switch {
	case err != nil && ctx.Err() != nil:
		return nil, &GenerationError{Mode: mode, Err: err}
	case err != nil:
		c.logger.Warn("stricter retry failed, using fallback", "mode", mode, "error", err)
	default:
		if p, ok := parseReply(mode, reply); ok {
			return p.result(mode, domain.OriginModelRetry, in.Keywords), nil
		}
		c.logger.Warn("malformed reply after retry, using fallback",
			"mode", mode,
			"reply", preview(reply),
		)
	}

	return Fallback(mode, in), nil
}

func (c *Client) contentRequest(messages []chatMessage) chatRequest {
	return chatRequest{
		Model:          c.model,
		Messages:       messages,
		Temperature:    c.temperature,
		MaxTokens:      c.maxTokens,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}
}

func (c *Client) complete(ctx context.Context, chatReq chatRequest) (string, error) {
	body, err := json.Marshal(chatReq)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("unexpected status: %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", errors.New("response has no choices")
	}

	c.logger.Debug("completion received", "duration", time.Since(start))
	return out.Choices[0].Message.Content, nil
}

func (p *payload) result(mode domain.GenerationMode, origin domain.ContentOrigin, keywords []string) *domain.GenerationResult {
	res := &domain.GenerationResult{
		Mode:     mode,
		Origin:   origin,
		Keywords: keywords,
		Title:  sanitize.Truncate(sanitize.NormalizeWhitespace(p.Title), MaxTitleLength),
	}
	if mode == domain.ModeFull {
		res.DescriptionHTML = strings.TrimSpace(p.DescriptionHTML)
		return res
	}
	res.MetaTitle = sanitize.Truncate(sanitize.NormalizeWhitespace(p.MetaTitle), MaxMetaTitleLength)
	res.MetaDescription = sanitize.Truncate(sanitize.NormalizeWhitespace(p.MetaDescription), MaxMetaDescriptionLength)
	return res
}

func preview(s string) string {
	return sanitize.Truncate(sanitize.NormalizeWhitespace(s), 120)
}
