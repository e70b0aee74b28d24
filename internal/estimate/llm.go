package estimate

import (
	"context"
	"errors"
	"net"
	"os"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type llmFailureClass int

const (
	failureNone llmFailureClass = iota
	failureTimeout
	failureRateLimit
	failureServer
	failureClient
)

// LLMCaller is the single point of contact with the generative model. It
// performs no retries and no user-facing formatting; both are orchestrator
// concerns.
type LLMCaller interface {
	Complete(ctx context.Context, system, task string) (string, error)
}

// AnthropicMessager matches the slice of the Anthropic SDK the gateway uses,
// so tests can substitute a scripted implementation.
type AnthropicMessager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

type AnthropicClientCreator func(apiKey string) AnthropicMessager

func defaultAnthropicCreator(apiKey string) AnthropicMessager {
	c := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &c.Messages
}

var newAnthropicClient AnthropicClientCreator = defaultAnthropicCreator

// AnthropicGateway talks to the Anthropic messages API. Each call carries an
// explicit per-attempt timeout, distinct from the orchestrator's retry
// backoff.
type AnthropicGateway struct {
	messages AnthropicMessager
	model    anthropic.Model
	timeout  time.Duration
}

// NewAnthropicGatewayFromEnv builds a gateway from ANTHROPIC_API_KEY and the
// optional ESTIMATE_MODEL override. A missing credential is a *ConfigError
// raised before any network I/O.
func NewAnthropicGatewayFromEnv() (*AnthropicGateway, error) {
	apiKey := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	if apiKey == "" {
		return nil, &ConfigError{Reason: "ANTHROPIC_API_KEY not configured"}
	}
	model := anthropic.ModelClaudeSonnet4_20250514
	if v := strings.TrimSpace(os.Getenv("ESTIMATE_MODEL")); v != "" {
		model = anthropic.Model(v)
	}
	return &AnthropicGateway{
		messages: newAnthropicClient(apiKey),
		model:    model,
		timeout:  30 * time.Second,
	}, nil
}

func (g *AnthropicGateway) Complete(ctx context.Context, system, task string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.messages.New(callCtx, anthropic.MessageNewParams{
		Model:       g.model,
		MaxTokens:   4096,
		System:      []anthropic.TextBlockParam{{Text: system}},
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(task))},
		Temperature: anthropic.Float(0.3),
	})
	if err != nil {
		return "", &TransportError{Err: err}
	}
	var sb strings.Builder
	for _, b := range resp.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", &MalformedResponseError{Reason: "empty response"}
	}
	return sb.String(), nil
}

func classifyTransportError(err error) llmFailureClass {
	if errors.Is(err, context.DeadlineExceeded) {
		return failureTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return failureTimeout
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "429"):
		return failureRateLimit
	case strings.Contains(msg, "status code: 5") || strings.Contains(msg, "server error"):
		return failureServer
	case strings.Contains(msg, "status code: 4"):
		return failureClient
	default:
		return failureServer
	}
}
