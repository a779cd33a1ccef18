// SPDX-License-Identifier: Apache-2.0

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Groq speaks the OpenAI-compatible chat-completions protocol.
const (
	defaultBaseURL  = "https://api.groq.com/openai/v1"
	defaultModel    = "llama-3.1-8b-instant"
	defaultKeyEnv   = "GROQ_API_KEY"
	defaultTimeout  = 60 * time.Second
	completionsPath = "/chat/completions"
)

// ErrMissingAPIKey is returned by NewGroq when no API key is available.
var ErrMissingAPIKey = errors.New("groq: missing api key")

// GroqOptions configures the Groq client. Zero values use the defaults
// above; the API key is read from the environment variable named by
// APIKeyEnv unless APIKey is set directly (tests only).
type GroqOptions struct {
	BaseURL     string
	Model       string
	APIKeyEnv   string
	APIKey      string
	Timeout     time.Duration
	// Temperature, when set, is sent on every request. Leave nil for the
	// API default; use WithTemperature to pin it per caller instead.
	Temperature *float64
}

func (o *GroqOptions) defaults() {
	if o.BaseURL == "" {
		o.BaseURL = defaultBaseURL
	}
	if o.Model == "" {
		o.Model = defaultModel
	}
	if o.APIKeyEnv == "" {
		o.APIKeyEnv = defaultKeyEnv
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
}

// Groq is a chat-completions client for the Groq API.
type Groq struct {
	url    string
	apiKey string
	model  string
	temp   *float64
	do     func(*http.Request) (*http.Response, error)
}

// NewGroq builds a client from options. Fails only when no API key can be
// resolved.
func NewGroq(opts GroqOptions) (*Groq, error) {
	opts.defaults()

	key := opts.APIKey
	if key == "" {
		key = os.Getenv(opts.APIKeyEnv)
	}
	if key == "" {
		return nil, fmt.Errorf("%w (set %s)", ErrMissingAPIKey, opts.APIKeyEnv)
	}

	hc := &http.Client{Timeout: opts.Timeout}
	return &Groq{
		url:    strings.TrimRight(opts.BaseURL, "/") + completionsPath,
		apiKey: key,
		model:  opts.Model,
		temp:   opts.Temperature,
		do:     hc.Do,
	}, nil
}

// WithTemperature returns a copy of the client that pins the sampling
// temperature on its requests. The receiver is unchanged, so one underlying
// client can serve both pinned and API-default callers.
func (g *Groq) WithTemperature(t float64) *Groq {
	clone := *g
	clone.temp = &t
	return &clone
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends a single user message.
func (g *Groq) Complete(ctx context.Context, prompt string) (string, error) {
	return g.invoke(ctx, []chatMessage{{Role: "user", Content: prompt}})
}

// CompleteWithSystem sends a system prompt followed by a user message.
func (g *Groq) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return g.invoke(ctx, []chatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt},
	})
}

func (g *Groq) invoke(ctx context.Context, messages []chatMessage) (string, error) {
	body, err := json.Marshal(chatRequest{Model: g.model, Messages: messages, Temperature: g.temp})
	if err != nil {
		return "", fmt.Errorf("groq: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("groq: new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := g.do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("groq: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		slurp, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return "", fmt.Errorf("groq: upstream %d: %s", resp.StatusCode, strings.TrimSpace(string(slurp)))
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("groq: decode response: %w", err)
	}
	if len(cr.Choices) == 0 || cr.Choices[0].Message.Content == "" {
		return "", errors.New("groq: empty completion")
	}
	return cr.Choices[0].Message.Content, nil
}
