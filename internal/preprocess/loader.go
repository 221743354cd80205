package preprocess

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lawbot/billrag/internal/bill"
)

// LoadDir 하위 폴더까지 모든 .json 파일을 읽어 하나의 목록으로 병합한다.
// 파일 하나는 단일 객체 또는 객체 배열이다. 깨진 파일은 경고 후 건너뛴다.
// 반환값 objects 는 원본 키를 그대로 보존한 병합본이다.
func LoadDir(root string) (raws []bill.RawRecord, objects []map[string]any, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}

		objs, err := loadFile(path)
		if err != nil {
			slog.Warn("skipping file", "path", path, "error", err)
			return nil
		}
		for _, obj := range objs {
			objects = append(objects, obj)
			raws = append(raws, rawFromObject(obj))
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return raws, objects, nil
}

func loadFile(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	switch t := v.(type) {
	case map[string]any:
		return []map[string]any{t}, nil
	case []any:
		objs := make([]map[string]any, 0, len(t))
		for _, item := range t {
			// 배열 안의 객체가 아닌 원소는 버린다
			if obj, ok := item.(map[string]any); ok {
				objs = append(objs, obj)
			}
		}
		return objs, nil
	default:
		return nil, fmt.Errorf("unexpected JSON structure %T", v)
	}
}

func rawFromObject(obj map[string]any) bill.RawRecord {
	return bill.RawRecord{
		BillID:      stringField(obj, "bill_id"),
		Session:     stringField(obj, "session"),
		Title:       stringField(obj, "title"),
		Committee:   stringField(obj, "committee"),
		Field:       stringField(obj, "field"),
		GenSummary:  stringField(obj, "gen_summary"),
		Enactment:   stringField(obj, "enactment"),
		Amendment:   stringField(obj, "amendment"),
		Terminology: stringField(obj, "terminology"),
		Disposal:    stringField(obj, "disposal"),
		Date:        stringField(obj, "date"),
	}
}

// stringField 누락 또는 null 이면 "", 숫자와 불리언은 원문 표기 그대로.
func stringField(obj map[string]any, key string) string {
	switch v := obj[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}
