package ai

import (
	"context"

	"github.com/philippgille/chromem-go"

	"github.com/lawbot/billrag/internal/answer"
	"github.com/lawbot/billrag/internal/config"
)

// Providers holds the model clients selected by configuration.
type Providers struct {
	Gemini *Client
	Chat   answer.ChatModel
	Embed  chromem.EmbeddingFunc
}

// NewProviders builds the chat model and/or embedding function named in cfg.
// The Gemini client is created once and shared when either side uses it.
func NewProviders(ctx context.Context, cfg *config.Config, chat, embed bool) (*Providers, error) {
	p := &Providers{}

	useGemini := (chat && cfg.LLM.Provider == config.ProviderGemini) ||
		(embed && cfg.Embedding.Provider == config.ProviderGemini)
	if useGemini {
		c, err := NewClient(ctx, GeminiOptions(cfg))
		if err != nil {
			return nil, err
		}
		p.Gemini = c
	}

	if chat {
		switch cfg.LLM.Provider {
		case config.ProviderOpenAI:
			p.Chat = NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.ChatModel,
				cfg.LLM.Temperature, int(cfg.LLM.MaxOutputTokens))
		default:
			p.Chat = p.Gemini
		}
	}

	if embed {
		switch cfg.Embedding.Provider {
		case config.ProviderOpenAI:
			p.Embed = openAIEmbedFunc(cfg.OpenAI)
		default:
			p.Embed = p.Gemini.EmbedFunc()
		}
	}
	return p, nil
}

// GeminiOptions maps configuration onto client options.
func GeminiOptions(cfg *config.Config) Options {
	return Options{
		APIKey:          cfg.Gemini.APIKey,
		ChatModels:      cfg.Gemini.ChatModels,
		EmbeddingModel:  cfg.Gemini.EmbeddingModel,
		TranslateModel:  cfg.Gemini.TranslateModel,
		Temperature:     cfg.LLM.Temperature,
		MaxOutputTokens: cfg.LLM.MaxOutputTokens,
		RPMLimit:        cfg.Gemini.RPMLimit,
	}
}

// openAIEmbedFunc uses the compatible endpoint when base_url points away from api.openai.com.
func openAIEmbedFunc(cfg config.OpenAIConfig) chromem.EmbeddingFunc {
	if cfg.BaseURL != "" {
		return chromem.NewEmbeddingFuncOpenAICompat(cfg.BaseURL, cfg.APIKey, cfg.EmbeddingModel, nil)
	}
	return chromem.NewEmbeddingFuncOpenAI(cfg.APIKey, chromem.EmbeddingModelOpenAI(cfg.EmbeddingModel))
}
