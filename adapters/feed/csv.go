package feed

import (
	"encoding/csv"
	"fmt"
	"os"

	"bugdesk/internal/board"
)

// CSVSource reads the scraped defect export from a CSV file. Row 1 is the
// header.
type CSVSource struct {
	Path string
}

func (s *CSVSource) Name() string { return s.Path }

func (s *CSVSource) Records() ([]board.Record, []*board.InvalidRecordError, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("feed: open %q: %w", s.Path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // exports are ragged, tolerate short rows
	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("feed: parse %q: %w", s.Path, err)
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}
	records, bad := parseRows(rows[0], rows[1:])
	return records, bad, nil
}
