package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lawbot/billrag/internal/answer"
	"github.com/lawbot/billrag/internal/bill"
	"github.com/lawbot/billrag/internal/rag"
)

var ErrEmptyQuestion = errors.New("question is empty")

type Status int

const (
	StatusAnswered Status = iota
	StatusNoContext
	StatusGenerationFailed
)

func (s Status) String() string {
	switch s {
	case StatusAnswered:
		return "answered"
	case StatusNoContext:
		return "no_context"
	case StatusGenerationFailed:
		return "generation_failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) (rag.Retrieval, error)
}

type Generator interface {
	Generate(ctx context.Context, query, retrieved string, source bill.Record) answer.Answer
}

// Result 질문 한 건의 처리 결과
type Result struct {
	Status  Status
	Answer  string
	Context string
	Source  bill.Record
	Results []rag.Result
}

type Service struct {
	retriever Retriever
	generator Generator
	k         int
}

func New(retriever Retriever, generator Generator, k int) *Service {
	return &Service{retriever: retriever, generator: generator, k: k}
}

// Ask 검색 -> 프롬프트 구성 -> 모델 호출을 순서대로 수행한다.
// 검색 결과 없음과 생성 실패는 Status 로 돌려주고, 그 밖의 검색 오류만 error 로 반환한다.
func (s *Service) Ask(ctx context.Context, question string) (Result, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Result{}, ErrEmptyQuestion
	}

	retrieval, err := s.retriever.Retrieve(ctx, question, s.k)
	if errors.Is(err, rag.ErrNoContext) {
		slog.Warn("no context for question", "question", question)
		return Result{Status: StatusNoContext}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("retrieve context: %w", err)
	}

	res := Result{
		Context: retrieval.Context,
		Source:  retrieval.Source,
		Results: retrieval.Results,
	}

	ans := s.generator.Generate(ctx, question, retrieval.Context, retrieval.Source)
	if ans.Failed {
		res.Status = StatusGenerationFailed
		return res, nil
	}
	res.Status = StatusAnswered
	res.Answer = ans.Text
	slog.Info("answered question", "question", question, "source", retrieval.Source.Title)
	return res, nil
}

