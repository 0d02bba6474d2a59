package feed

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"bugdesk/internal/board"
)

// XLSXSource reads the scraped defect export from the first sheet of an
// Excel workbook. Sheet can pin a specific sheet name instead.
type XLSXSource struct {
	Path  string
	Sheet string
}

func (s *XLSXSource) Name() string { return s.Path }

func (s *XLSXSource) Records() ([]board.Record, []*board.InvalidRecordError, error) {
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("feed: open %q: %w", s.Path, err)
	}
	defer f.Close()

	sheet := s.Sheet
	if sheet == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return nil, nil, fmt.Errorf("feed: %q has no sheets", s.Path)
		}
		sheet = list[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("feed: read %q sheet %q: %w", s.Path, sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}
	records, bad := parseRows(rows[0], rows[1:])
	return records, bad, nil
}
