package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"google.golang.org/genai"
)

var ErrEmptyResponse = errors.New("empty model response")

type Client struct {
	client         *genai.Client
	chatModels     []string // 할당량 초과 시 순서대로 전환
	modelIdx       atomic.Int64
	embedModel     string
	translateModel string
	temp           float32
	maxTokens      int32
	limiter        *rateLimiter
}

type Options struct {
	APIKey          string
	ChatModels      []string
	EmbeddingModel  string
	TranslateModel  string
	Temperature     float32
	MaxOutputTokens int32
	RPMLimit        int
}

func NewClient(ctx context.Context, opts Options) (*Client, error) {
	if len(opts.ChatModels) == 0 {
		return nil, fmt.Errorf("at least one chat model is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	translateModel := opts.TranslateModel
	if translateModel == "" {
		translateModel = opts.ChatModels[0]
	}

	return &Client{
		client:         client,
		chatModels:     opts.ChatModels,
		embedModel:     opts.EmbeddingModel,
		translateModel: translateModel,
		temp:           opts.Temperature,
		maxTokens:      opts.MaxOutputTokens,
		limiter:        newRateLimiter(opts.RPMLimit),
	}, nil
}

func (c *Client) currentModel() string {
	idx := c.modelIdx.Load() % int64(len(c.chatModels))
	return c.chatModels[idx]
}

func (c *Client) rotateModel() string {
	newIdx := c.modelIdx.Add(1) % int64(len(c.chatModels))
	model := c.chatModels[newIdx]
	slog.Info("rotating to next model", "model", model)
	return model
}

// Complete 시스템 지시문 + 사용자 프롬프트 한 턴으로 답변을 생성한다.
// 할당량 초과(429)일 때만 다음 모델로 넘어가며, 모델마다 한 번씩만 시도한다.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr(c.temp),
		MaxOutputTokens:   c.maxTokens,
	}
	contents := []*genai.Content{genai.NewContentFromText(user, genai.RoleUser)}

	var lastErr error
	for attempt := 0; attempt < len(c.chatModels); attempt++ {
		if err := c.limiter.wait(ctx); err != nil {
			return "", err
		}
		model := c.currentModel()
		resp, err := c.client.Models.GenerateContent(ctx, model, contents, cfg)
		if err != nil {
			lastErr = err
			if isQuotaError(err) {
				slog.Warn("model quota exceeded, switching", "model", model, "attempt", attempt+1)
				c.rotateModel()
				continue
			}
			return "", fmt.Errorf("generate content with %s: %w", model, err)
		}
		text := strings.TrimSpace(resp.Text())
		if text == "" {
			return "", ErrEmptyResponse
		}
		slog.Debug("generated answer", "model", model)
		return text, nil
	}
	return "", fmt.Errorf("all models exhausted: %w", lastErr)
}

// Embed 텍스트 임베딩 벡터 생성
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := c.limiter.wait(ctx); err != nil {
		return nil, err
	}
	resp, err := c.client.Models.EmbedContent(ctx, c.embedModel,
		[]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}, nil)
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}
	if len(resp.Embeddings) == 0 {
		return nil, fmt.Errorf("embed content: %w", ErrEmptyResponse)
	}
	return resp.Embeddings[0].Values, nil
}

// EmbedFunc returns Embed in the shape chromem-go expects.
func (c *Client) EmbedFunc() func(ctx context.Context, text string) ([]float32, error) {
	return c.Embed
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}
