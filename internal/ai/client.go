package ai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cenkalti/backoff/v4"
	errorvalues "github.com/nutriamiga/nutriamiga/internal/error_values"
	"github.com/nutriamiga/nutriamiga/pkg/entity"
)

const (
	defaultModel   = "gemini-2.0-flash"
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	defaultMaxAttempts = 3
	defaultRetryBase   = time.Second
)

// ClientConfig configures the completion client. Zero values fall back to
// sensible defaults.
type ClientConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
	// MaxAttempts is the total number of underlying calls on rate limiting.
	MaxAttempts uint64
	// RetryBase is the first backoff delay; it doubles on each attempt.
	RetryBase time.Duration
}

// Client talks to the external text-generation service. Stateless with
// respect to prior calls; conversation history is supplied by the caller.
type Client struct {
	apiKey      string
	model       string
	baseURL     string
	httpc       *http.Client
	maxAttempts uint64
	retryBase   time.Duration
}

func NewClient(cfg ClientConfig) *Client {
	c := &Client{
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		httpc:       cfg.HTTPClient,
		maxAttempts: cfg.MaxAttempts,
		retryBase:   cfg.RetryBase,
	}
	if c.model == "" {
		c.model = defaultModel
	}
	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	if c.httpc == nil {
		c.httpc = &http.Client{Timeout: 60 * time.Second}
	}
	if c.maxAttempts == 0 {
		c.maxAttempts = defaultMaxAttempts
	}
	if c.retryBase == 0 {
		c.retryBase = defaultRetryBase
	}
	return c
}

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Role  string         `json:"role,omitempty"`
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	SystemInstruction *generateContent  `json:"systemInstruction,omitempty"`
	Contents          []generateContent `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content generateContent `json:"content"`
	} `json:"candidates"`
}

// Generate submits the fixed analysis persona plus one prompt and returns the
// raw completion text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, SystemInstruction, []generateContent{
		{Role: "user", Parts: []generatePart{{Text: prompt}}},
	})
}

// GenerateChat runs one turn of the conversational flow on top of the
// caller-supplied history.
func (c *Client) GenerateChat(ctx context.Context, history []entity.ChatMessage, message string) (string, error) {
	contents := make([]generateContent, 0, len(history)+1)
	for _, msg := range history {
		role := "user"
		if msg.Role == "model" {
			role = "model"
		}
		contents = append(contents, generateContent{
			Role:  role,
			Parts: []generatePart{{Text: msg.Text}},
		})
	}
	contents = append(contents, generateContent{
		Role:  "user",
		Parts: []generatePart{{Text: message}},
	})
	return c.generate(ctx, ChatInstruction, contents)
}

func (c *Client) generate(ctx context.Context, instruction string, contents []generateContent) (string, error) {
	req := generateRequest{
		SystemInstruction: &generateContent{Parts: []generatePart{{Text: instruction}}},
		Contents:          contents,
	}

	var text string
	op := func() error {
		out, err := c.call(ctx, &req)
		if err != nil {
			if errors.Is(err, errorvalues.ErrRateLimited) {
				return err
			}
			// Only rate limiting is transient, everything else fails now.
			return backoff.Permanent(err)
		}
		text = out
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.retryBase
	bo.Multiplier = 2
	bo.RandomizationFactor = 0
	bo.MaxElapsedTime = 0

	err := backoff.Retry(op, backoff.WithMaxRetries(backoff.WithContext(bo, ctx), c.maxAttempts-1))
	if err != nil {
		slog.Warn("completion request failed", slog.String("error", err.Error()))
		return "", errorvalues.ErrServiceUnavailable
	}
	return text, nil
}

func (c *Client) call(ctx context.Context, req *generateRequest) (string, error) {
	body, err := sonic.ConfigDefault.Marshal(req)
	if err != nil {
		return "", errors.New("marshaling completion request error: " + err.Error())
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", errors.New("creating completion request error: " + err.Error())
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return "", errors.New("calling completion service error: " + err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		io.Copy(io.Discard, resp.Body)
		return "", errorvalues.ErrRateLimited
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.New("reading completion response error: " + err.Error())
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion service error %d: %s", resp.StatusCode, string(raw))
	}

	var out generateResponse
	if err := sonic.ConfigDefault.Unmarshal(raw, &out); err != nil {
		return "", errors.New("parsing completion response error: " + err.Error())
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("completion response has no candidates")
	}

	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}
