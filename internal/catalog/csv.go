package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
)

var header = []string{"committee", "session", "field", "title", "date"}

// WriteCSV UI 목록용 CSV 를 쓴다
func WriteCSV(path string, entries []Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range entries {
		if err := w.Write([]string{e.Committee, e.Session, e.Field, e.Title, e.Date}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return f.Close()
}

// ReadCSV loads a listing written by WriteCSV. Columns are matched by header name.
func ReadCSV(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	cols := map[string]int{}
	for i, name := range rows[0] {
		cols[name] = i
	}
	for _, name := range header {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("read csv: missing column %q", name)
		}
	}

	entries := make([]Entry, 0, len(rows)-1)
	for _, row := range rows[1:] {
		entries = append(entries, Entry{
			Committee: row[cols["committee"]],
			Session:   row[cols["session"]],
			Field:     row[cols["field"]],
			Title:     row[cols["title"]],
			Date:      row[cols["date"]],
		})
	}
	return entries, nil
}
