package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/jesuspadres/Vibe-Check/shared"
)

// AnthropicService is the narrow client for the text-completion API: one
// system instruction, one user message, bounded output, no streaming and
// no retries.
type AnthropicService struct {
	appContext.DefaultService

	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

const ANTHROPIC_SVC = "anthropic_svc"

const (
	anthropicVersion = "2023-06-01"
	defaultModel     = "claude-sonnet-4-20250514"
)

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicResponse struct {
	Content []anthropicContentBlock `json:"content"`
}

func (svc AnthropicService) Id() string {
	return ANTHROPIC_SVC
}

func (svc *AnthropicService) Configure(ctx *appContext.Context) error {
	svc.apiKey = os.Getenv("ANTHROPIC_API_KEY")
	if svc.apiKey == "" {
		log.Warn("ANTHROPIC_API_KEY not set, completion calls will be rejected upstream")
	}

	svc.model = os.Getenv("ANTHROPIC_MODEL")
	if svc.model == "" {
		svc.model = defaultModel
	}

	svc.baseURL = os.Getenv("ANTHROPIC_BASE_URL")
	if svc.baseURL == "" {
		svc.baseURL = "https://api.anthropic.com"
	}

	timeout := 60 * time.Second
	if timeoutStr := os.Getenv("ANTHROPIC_TIMEOUT"); timeoutStr != "" {
		if d, err := time.ParseDuration(timeoutStr); err == nil && d > 0 {
			timeout = d
		}
	}
	svc.httpClient = &http.Client{Timeout: timeout}

	return svc.DefaultService.Configure(ctx)
}

// Complete issues a single completion call and returns the raw text of
// the first text block. Every failure is a service-level error for the
// caller to classify.
func (svc *AnthropicService) Complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	payload, err := shared.JSONMarshal(anthropicRequest{
		Model:     svc.model,
		MaxTokens: maxTokens,
		System:    system,
		Messages:  []anthropicMessage{{Role: "user", Content: user}},
	})
	if err != nil {
		return "", fmt.Errorf("encode completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, svc.baseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", svc.apiKey)
	req.Header.Set("Anthropic-Version", anthropicVersion)

	start := time.Now()
	resp, err := svc.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	modelCallDuration.Observe(time.Since(start).Seconds())

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read completion response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion API returned status %d: %s", resp.StatusCode, string(body))
	}

	var decoded anthropicResponse
	if err := shared.JSONUnmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}

	for _, block := range decoded.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}

	return "", nil
}
