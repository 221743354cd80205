package rag

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/google/uuid"
	"github.com/philippgille/chromem-go"

	"github.com/lawbot/billrag/internal/bill"
)

const DefaultCollection = "bill_reports"

type Store struct {
	db         *chromem.DB
	collection *chromem.Collection
}

type Result struct {
	ID         string
	Content    string
	Similarity float32
	Record     bill.Record
}

// NewStore 디렉터리 기반 벡터 DB 를 열거나 새로 만든다
func NewStore(dir, collection string, compress bool, embedFunc chromem.EmbeddingFunc) (*Store, error) {
	db, err := chromem.NewPersistentDB(dir, compress)
	if err != nil {
		return nil, fmt.Errorf("open vector db: %w", err)
	}
	s, err := newStore(db, collection, embedFunc)
	if err != nil {
		return nil, err
	}
	slog.Info("vector store loaded", "dir", dir, "count", s.Count())
	return s, nil
}

// NewMemoryStore keeps documents in memory only.
func NewMemoryStore(embedFunc chromem.EmbeddingFunc) (*Store, error) {
	return newStore(chromem.NewDB(), DefaultCollection, embedFunc)
}

func newStore(db *chromem.DB, collection string, embedFunc chromem.EmbeddingFunc) (*Store, error) {
	if collection == "" {
		collection = DefaultCollection
	}
	col, err := db.GetOrCreateCollection(collection, nil, embedFunc)
	if err != nil {
		return nil, fmt.Errorf("get/create collection: %w", err)
	}
	return &Store{db: db, collection: col}, nil
}

// AddRecords 단락 본문을 임베딩해서 메타데이터와 함께 저장한다.
// ID 는 매번 새로 발급되므로 같은 데이터를 다시 넣으면 중복 저장된다.
func (s *Store) AddRecords(ctx context.Context, records []bill.Record) (int, error) {
	docs := make([]chromem.Document, 0, len(records))
	for _, r := range records {
		if r.Paragraph == "" {
			slog.Warn("skipping record without paragraph", "id", r.ID, "title", r.Title)
			continue
		}
		docs = append(docs, chromem.Document{
			ID:       uuid.NewString(),
			Content:  r.Paragraph,
			Metadata: r.Metadata(),
		})
	}
	if len(docs) == 0 {
		return 0, nil
	}

	if err := s.collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return 0, fmt.Errorf("add documents: %w", err)
	}
	return len(docs), nil
}

// Query returns up to k documents ordered by descending similarity.
func (s *Store) Query(ctx context.Context, text string, k int) ([]Result, error) {
	count := s.collection.Count()
	if count == 0 || k <= 0 {
		return nil, nil
	}
	k = min(k, count)

	docs, err := s.collection.Query(ctx, text, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query vectors: %w", err)
	}

	results := make([]Result, 0, len(docs))
	for _, d := range docs {
		results = append(results, Result{
			ID:         d.ID,
			Content:    d.Content,
			Similarity: d.Similarity,
			Record:     bill.FromMetadata(d.Metadata),
		})
	}
	return results, nil
}

func (s *Store) Count() int {
	return s.collection.Count()
}
