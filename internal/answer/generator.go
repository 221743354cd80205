package answer

import (
	"context"
	"log/slog"
	"strings"

	"github.com/lawbot/billrag/internal/bill"
)

// ChatModel 은 시스템 지시문과 사용자 턴 하나로 답변을 만든다.
type ChatModel interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Answer 는 생성 결과. Failed 면 Text 는 항상 빈 문자열이다.
type Answer struct {
	Text   string
	Failed bool
	Err    error
}

type Generator struct {
	model ChatModel
}

func NewGenerator(model ChatModel) *Generator {
	return &Generator{model: model}
}

// Generate formats the prompt for query and calls the chat model once.
// Model failures are logged and reported as a failed Answer, never returned as errors.
func (g *Generator) Generate(ctx context.Context, query, retrieved string, source bill.Record) Answer {
	prompt := BuildPrompt(query, retrieved, source)

	text, err := g.model.Complete(ctx, SystemInstruction, prompt)
	if err != nil {
		slog.Error("generate answer failed", "error", err, "title", source.Title)
		return Answer{Failed: true, Err: err}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		slog.Error("generate answer failed", "error", "empty completion", "title", source.Title)
		return Answer{Failed: true}
	}
	return Answer{Text: text}
}
