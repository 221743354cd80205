package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

var ErrMissingAPIKey = errors.New("api key is required")

type Config struct {
	LLM        LLMConfig        `mapstructure:"llm"`
	Embedding  EmbeddingConfig  `mapstructure:"embedding"`
	Gemini     GeminiConfig     `mapstructure:"gemini"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	RAG        RAGConfig        `mapstructure:"rag"`
	Translate  TranslateConfig  `mapstructure:"translate"`
	Preprocess PreprocessConfig `mapstructure:"preprocess"`
	Web        WebConfig        `mapstructure:"web"`
	Log        LogConfig        `mapstructure:"log"`
}

// LLMConfig 답변 생성 모델 설정
type LLMConfig struct {
	Provider        string  `mapstructure:"provider"`
	Temperature     float32 `mapstructure:"temperature"`
	MaxOutputTokens int32   `mapstructure:"max_output_tokens"`
}

type EmbeddingConfig struct {
	Provider string `mapstructure:"provider"`
}

type GeminiConfig struct {
	APIKey         string   `mapstructure:"api_key"`
	ChatModels     []string `mapstructure:"chat_models"`
	EmbeddingModel string   `mapstructure:"embedding_model"`
	TranslateModel string   `mapstructure:"translate_model"`
	RPMLimit       int      `mapstructure:"rpm_limit"`
}

type OpenAIConfig struct {
	APIKey         string `mapstructure:"api_key"`
	BaseURL        string `mapstructure:"base_url"`
	ChatModel      string `mapstructure:"chat_model"`
	EmbeddingModel string `mapstructure:"embedding_model"`
}

type RAGConfig struct {
	Collection string `mapstructure:"collection"`
	TopK       int    `mapstructure:"top_k"`
	Compress   bool   `mapstructure:"compress"`
}

type TranslateConfig struct {
	BatchSize int `mapstructure:"batch_size"`
}

type PreprocessConfig struct {
	Committees []string `mapstructure:"committees"`
	Sessions   []string `mapstructure:"sessions"`
}

type WebConfig struct {
	Addr string `mapstructure:"addr"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load 설정 파일을 읽는다. 파일이 없으면 기본값과 환경변수만 사용한다.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config: %w", err)
			}
		} else {
			slog.Debug("config file not found, using defaults", "path", path)
		}
	}

	// 환경변수 덮어쓰기
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		v.Set("gemini.api_key", key)
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		v.Set("openai.api_key", key)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	for _, p := range []string{cfg.LLM.Provider, cfg.Embedding.Provider} {
		if p != ProviderGemini && p != ProviderOpenAI {
			return nil, fmt.Errorf("unknown provider %q", p)
		}
	}
	if len(cfg.Gemini.ChatModels) == 0 {
		return nil, fmt.Errorf("gemini.chat_models must not be empty")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("llm.provider", ProviderGemini)
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.max_output_tokens", 400)

	v.SetDefault("embedding.provider", ProviderGemini)

	v.SetDefault("gemini.chat_models", []string{"gemini-2.5-flash"})
	v.SetDefault("gemini.embedding_model", "gemini-embedding-001")
	v.SetDefault("gemini.translate_model", "gemini-2.5-flash")
	v.SetDefault("gemini.rpm_limit", 60)

	v.SetDefault("openai.chat_model", "gpt-4o-mini")
	v.SetDefault("openai.embedding_model", "text-embedding-3-small")

	v.SetDefault("rag.collection", "bill_reports")
	v.SetDefault("rag.top_k", 3)
	v.SetDefault("rag.compress", false)

	v.SetDefault("translate.batch_size", 32)

	v.SetDefault("web.addr", ":8501")

	v.SetDefault("log.level", "info")
}

// SetAPIKey applies a command-line key to the chat and embedding providers.
func (c *Config) SetAPIKey(key string) {
	if key == "" {
		return
	}
	for _, p := range []string{c.LLM.Provider, c.Embedding.Provider} {
		switch p {
		case ProviderOpenAI:
			c.OpenAI.APIKey = key
		case ProviderGemini:
			c.Gemini.APIKey = key
		}
	}
}

// RequireAPIKeys checks the keys needed by the selected providers.
func (c *Config) RequireAPIKeys(chat, embed bool) error {
	need := map[string]bool{}
	if chat {
		need[c.LLM.Provider] = true
	}
	if embed {
		need[c.Embedding.Provider] = true
	}
	if need[ProviderGemini] && c.Gemini.APIKey == "" {
		return fmt.Errorf("gemini: %w (set gemini.api_key or GEMINI_API_KEY)", ErrMissingAPIKey)
	}
	if need[ProviderOpenAI] && c.OpenAI.APIKey == "" {
		return fmt.Errorf("openai: %w (set openai.api_key or OPENAI_API_KEY)", ErrMissingAPIKey)
	}
	return nil
}

// SlogLevel 로그 레벨 문자열을 slog.Level 로 변환
func (l LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}
