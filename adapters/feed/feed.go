// Package feed parses the scraped defect source (the daily CQE export)
// into board records for the merge stage. Rows the parser declines are
// returned as named validation errors, never silently dropped.
package feed

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"bugdesk/internal/board"
)

// Source yields one batch of raw defect rows.
type Source interface {
	// Name identifies the source in logs and reports.
	Name() string
	// Records parses the source. Invalid rows come back alongside the
	// good ones; only structural failures (unreadable file) error.
	Records() ([]board.Record, []*board.InvalidRecordError, error)
}

// Open picks a source by file extension: .csv or .xlsx.
func Open(path string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return &CSVSource{Path: path}, nil
	case ".xlsx":
		return &XLSXSource{Path: path}, nil
	}
	return nil, fmt.Errorf("feed: unsupported source format %q", path)
}

// headerIndex maps known headers case-insensitively. "Bug ID" and "ID" are
// both accepted for the identifier, matching what the scrape exports use.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func lookup(idx map[string]int, names ...string) (int, bool) {
	for _, n := range names {
		if i, ok := idx[n]; ok {
			return i, true
		}
	}
	return 0, false
}

// parseRows turns header+data rows into records. row numbers in errors are
// 1-based over data rows, matching how the merge stage counts.
func parseRows(header []string, rows [][]string) ([]board.Record, []*board.InvalidRecordError) {
	idx := headerIndex(header)
	idCol, hasID := lookup(idx, "bug id", "id")
	prioCol, hasPrio := lookup(idx, "priority")
	modeCol, hasMode := lookup(idx, "failure mode")
	asgCol, hasAsg := lookup(idx, "assignment")

	get := func(row []string, col int) string {
		if col < len(row) {
			return strings.TrimSpace(row[col])
		}
		return ""
	}

	var records []board.Record
	var bad []*board.InvalidRecordError
	for n, row := range rows {
		if isBlank(row) {
			continue
		}
		rec := board.Record{}
		if hasID {
			rec.ID = get(row, idCol)
		}
		if rec.ID == "" {
			bad = append(bad, &board.InvalidRecordError{Row: n + 1, Reason: "missing id"})
			continue
		}
		if hasPrio {
			raw := get(row, prioCol)
			if raw != "" {
				p, err := strconv.Atoi(raw)
				if err != nil {
					bad = append(bad, &board.InvalidRecordError{Row: n + 1, ID: rec.ID, Reason: fmt.Sprintf("priority %q is not a number", raw)})
					continue
				}
				rec.Priority = p
			}
		}
		if hasMode {
			rec.FailureMode = get(row, modeCol)
		}
		if hasAsg {
			rec.Assignment = board.ParseTeam(get(row, asgCol))
		}
		for i, h := range header {
			if i == idCol && hasID || i == prioCol && hasPrio || i == modeCol && hasMode || i == asgCol && hasAsg {
				continue
			}
			rec.Fields = append(rec.Fields, board.Cell{Column: strings.TrimSpace(h), Value: get(row, i)})
		}
		records = append(records, rec)
	}
	return records, bad
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
