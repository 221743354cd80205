package preprocess

import (
	"fmt"
	"log/slog"

	"github.com/lawbot/billrag/internal/bill"
)

type Stats struct {
	Merged   int
	Filtered int
}

// Normalize 원본 레코드를 Record 형태로 바꾸고 요약문을 정리한다
func Normalize(raws []bill.RawRecord) []bill.Record {
	records := make([]bill.Record, 0, len(raws))
	for _, raw := range raws {
		r := bill.FromRaw(raw)
		r.Paragraph = CleanText(r.Paragraph)
		records = append(records, r)
	}
	return records
}

// Run merges inputDir into mergedPath, then writes the filtered records to outputPath.
func Run(inputDir, mergedPath, outputPath string, allow Allow) (Stats, error) {
	slog.Info("merging JSON files", "dir", inputDir)
	raws, objects, err := LoadDir(inputDir)
	if err != nil {
		return Stats{}, err
	}
	if objects == nil {
		objects = []map[string]any{}
	}
	if err := bill.WriteJSON(mergedPath, objects); err != nil {
		return Stats{}, fmt.Errorf("save merged data: %w", err)
	}
	slog.Info("saved merged data", "path", mergedPath, "records", len(objects))

	filtered := Filter(Normalize(raws), allow)
	if err := bill.WriteFile(outputPath, filtered); err != nil {
		return Stats{}, fmt.Errorf("save filtered data: %w", err)
	}
	slog.Info("saved filtered data", "path", outputPath, "records", len(filtered))

	return Stats{Merged: len(objects), Filtered: len(filtered)}, nil
}
