package translate

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/lawbot/billrag/internal/bill"
)

const DefaultBatchSize = 32

// Translator 한국어 용어 문자열 묶음을 영어로 번역한다. 출력 길이는 입력과 같아야 한다.
type Translator interface {
	TranslateBatch(ctx context.Context, texts []string) ([]string, error)
}

// Terminology fills TerminologyEN of every record, batchSize records at a time.
// Any translator failure aborts the whole run.
func Terminology(ctx context.Context, records []bill.Record, tr Translator, batchSize int) error {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	for start := 0; start < len(records); start += batchSize {
		end := min(start+batchSize, len(records))

		texts := make([]string, 0, end-start)
		for _, r := range records[start:end] {
			texts = append(texts, r.Terminology)
		}

		translated, err := tr.TranslateBatch(ctx, texts)
		if err != nil {
			return fmt.Errorf("translate batch %d-%d: %w", start, end, err)
		}
		if len(translated) != len(texts) {
			return fmt.Errorf("translate batch %d-%d: got %d results for %d inputs", start, end, len(translated), len(texts))
		}

		for i, en := range translated {
			records[start+i].TerminologyEN = en
		}
		slog.Info("translated", "progress", fmt.Sprintf("%d/%d", end, len(records)))
	}
	return nil
}

// DedupTerms 중복 용어를 제거하고 정렬해서 다시 합친다.
func DedupTerms(s string) string {
	if s == "" {
		return ""
	}
	seen := make(map[string]struct{})
	var terms []string
	for _, t := range strings.Split(s, bill.TermSeparator) {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return strings.Join(terms, bill.TermSeparator)
}

// DedupAll applies DedupTerms to each record's TerminologyEN.
func DedupAll(records []bill.Record) {
	for i := range records {
		if records[i].TerminologyEN != "" {
			records[i].TerminologyEN = DedupTerms(records[i].TerminologyEN)
		}
	}
}

// Run reads inputPath, translates and dedups terminology, and writes outputPath.
func Run(ctx context.Context, inputPath, outputPath string, tr Translator, batchSize int) error {
	records, err := bill.ReadFile(inputPath)
	if err != nil {
		return err
	}
	slog.Info("translating terminology", "records", len(records), "batch_size", batchSize)

	if err := Terminology(ctx, records, tr, batchSize); err != nil {
		return err
	}
	DedupAll(records)

	if err := bill.WriteFile(outputPath, records); err != nil {
		return err
	}
	slog.Info("saved translated data", "path", outputPath)
	return nil
}
