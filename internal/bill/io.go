package bill

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// ReadFile 전처리된 JSON 배열 파일을 읽는다
func ReadFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode records %s: %w", path, err)
	}
	return records, nil
}

// WriteFile writes records as an indented JSON array with Korean text left unescaped.
func WriteFile(path string, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	return WriteJSON(path, records)
}

// WriteJSON encodes any value the way every pipeline stage writes its output.
func WriteJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
