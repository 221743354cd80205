package ai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawbot/billrag/internal/config"
)

func TestRateLimiterReserve(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := newRateLimiter(2)
	l.lastTick = now
	l.now = func() time.Time { return now }

	assert.Zero(t, l.reserve())
	assert.Zero(t, l.reserve())

	now = now.Add(20 * time.Second)
	assert.Equal(t, 40*time.Second, l.reserve())

	now = now.Add(40 * time.Second)
	assert.Zero(t, l.reserve(), "tokens refill after a minute")
}

func TestRateLimiterDisabled(t *testing.T) {
	var nilLimiter *rateLimiter
	assert.NoError(t, nilLimiter.wait(context.Background()))
	assert.NoError(t, newRateLimiter(0).wait(context.Background()))
}

func TestRateLimiterWaitCancelled(t *testing.T) {
	l := newRateLimiter(1)
	require.NoError(t, l.wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, l.wait(ctx), context.Canceled)
}

func TestParseTranslations(t *testing.T) {
	out, err := parseTranslations("```json\n[\" sexual violence, special act \", \"\"]\n```", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"sexual violence, special act", ""}, out)

	_, err = parseTranslations(`["only one"]`, 2)
	assert.Error(t, err)

	_, err = parseTranslations(`not json`, 1)
	assert.Error(t, err)
}

func TestIsQuotaError(t *testing.T) {
	assert.True(t, isQuotaError(errors.New("Error 429: RESOURCE_EXHAUSTED")))
	assert.False(t, isQuotaError(errors.New("Error 401: unauthenticated")))
}

func TestNewProvidersOpenAI(t *testing.T) {
	cfg := &config.Config{
		LLM:       config.LLMConfig{Provider: config.ProviderOpenAI, MaxOutputTokens: 400},
		Embedding: config.EmbeddingConfig{Provider: config.ProviderOpenAI},
		OpenAI:    config.OpenAIConfig{APIKey: "sk-test", ChatModel: "gpt-4o-mini", EmbeddingModel: "text-embedding-3-small"},
	}

	p, err := NewProviders(context.Background(), cfg, true, true)
	require.NoError(t, err)
	assert.Nil(t, p.Gemini)
	assert.IsType(t, &OpenAIClient{}, p.Chat)
	assert.NotNil(t, p.Embed)
}

func TestNewProvidersOpenAIEmbedBaseURL(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"embedding":[0.6,0.8]}]}`))
	}))
	defer srv.Close()

	cfg := &config.Config{
		Embedding: config.EmbeddingConfig{Provider: config.ProviderOpenAI},
		OpenAI:    config.OpenAIConfig{APIKey: "sk-local", BaseURL: srv.URL + "/v1", EmbeddingModel: "local-embed"},
	}

	p, err := NewProviders(context.Background(), cfg, false, true)
	require.NoError(t, err)
	require.NotNil(t, p.Embed)

	vec, err := p.Embed(context.Background(), "주택임대차")
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{0.6, 0.8}, vec, 1e-6)
	assert.Equal(t, "/v1/embeddings", gotPath)
	assert.Equal(t, "Bearer sk-local", gotAuth)
}

func TestNewClientRequiresModel(t *testing.T) {
	_, err := NewClient(context.Background(), Options{APIKey: "k"})
	assert.Error(t, err)
}
