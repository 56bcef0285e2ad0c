package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	openai "github.com/sashabaranov/go-openai"

	"github.com/rizalafandiv1-png/Website-Andikilz-Store/app/config"
)

// Generator is the external AI provider. It may fail or time out; the
// gateway treats it as a black box.
type Generator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// UpstreamError wraps a provider failure or timeout. The caller may retry;
// no quota was consumed.
type UpstreamError struct {
	Err error
}

func (e UpstreamError) Error() string {
	return fmt.Sprintf("generation provider: %v", e.Err)
}

func (e UpstreamError) Unwrap() error {
	return e.Err
}

// Gateway composes quota check, provider call and usage commit as one
// request-scoped operation.
//
// Calls for the same user are serialized with a per-user lock so the free
// limit is exact even under concurrent load; without it, N racing requests
// could all pass Evaluate before any of them commits. The lock is local to
// the gateway: no store lock is ever held across the provider call, and
// different users never contend.
type Gateway struct {
	quota     *QuotaPolicy
	generator Generator

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewGateway(quota *QuotaPolicy, generator Generator) *Gateway {
	return &Gateway{
		quota:     quota,
		generator: generator,
		locks:     make(map[string]*sync.Mutex),
	}
}

func (g *Gateway) userLock(userID string) *sync.Mutex {
	g.mu.Lock()
	defer g.mu.Unlock()
	l, ok := g.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		g.locks[userID] = l
	}
	return l
}

// Generate runs evaluate, the provider call, then commit. Usage is committed
// only after the provider succeeds: failed or timed-out calls are free, but
// their rate is not separately throttled.
func (g *Gateway) Generate(ctx context.Context, userID, prompt string) (string, error) {
	l := g.userLock(userID)
	l.Lock()
	defer l.Unlock()

	if _, err := g.quota.Evaluate(ctx, userID); err != nil {
		return "", err
	}

	text, err := g.generator.Complete(ctx, prompt)
	if err != nil {
		return "", UpstreamError{Err: err}
	}

	if err := g.quota.Commit(ctx, userID); err != nil {
		return "", err
	}
	return text, nil
}

// OpenAIGenerator backs Generator with chat completions.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

func NewOpenAIGenerator(cfg config.OpenAIConfig) (*OpenAIGenerator, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OPENAI_API_KEY must be set")
	}
	return &OpenAIGenerator{
		client: openai.NewClient(cfg.APIKey),
		model:  cfg.Model,
	}, nil
}

func (g *OpenAIGenerator) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		}},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}
