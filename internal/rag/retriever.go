package rag

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/lawbot/billrag/internal/bill"
)

var (
	ErrNoContext = errors.New("no relevant context found")
	ErrNoStore   = errors.New("vector store not configured")
)

// Retrieval 검색 결과. Found 가 false 면 나머지 필드는 비어 있다.
type Retrieval struct {
	Found   bool
	Context string
	// 가장 유사한 문서의 메타데이터만 답변 템플릿에 쓰인다
	Source  bill.Record
	Results []Result
}

type Retriever struct {
	store *Store
}

func NewRetriever(store *Store) *Retriever {
	return &Retriever{store: store}
}

// Retrieve embeds query, fetches the k nearest paragraphs and joins them into one context.
// An empty result set returns ErrNoContext.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) (Retrieval, error) {
	if r.store == nil {
		return Retrieval{}, ErrNoStore
	}

	results, err := r.store.Query(ctx, query, k)
	if err != nil {
		return Retrieval{}, err
	}
	if len(results) == 0 {
		return Retrieval{}, ErrNoContext
	}

	texts := make([]string, 0, len(results))
	for _, res := range results {
		texts = append(texts, res.Content)
	}

	slog.Debug("retrieved context", "query", query, "count", len(results), "top_similarity", results[0].Similarity)
	return Retrieval{
		Found:   true,
		Context: strings.Join(texts, " "),
		Source:  results[0].Record,
		Results: results,
	}, nil
}
