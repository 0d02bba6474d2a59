package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"bugdesk/internal/board"
)

// XLSXStore is a TabStore over an Excel workbook. Row 1 of every sheet is
// the header; the engine columns are located by header name and everything
// else rides along verbatim. A green fill on the completion-marker cell is
// read as Done; Done records written back get the same fill.
type XLSXStore struct {
	path string
	f    *excelize.File

	// style cache: fill RGB → excelize style ID, per open file
	styles map[string]int
}

// OpenXLSX opens an existing workbook.
func OpenXLSX(path string) (*XLSXStore, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("store: open workbook %q: %w", path, err)
	}
	return &XLSXStore{path: path, f: f, styles: make(map[string]int)}, nil
}

// NewXLSX creates a fresh workbook at path with the four required tabs and
// a standard header row.
func NewXLSX(path string) (*XLSXStore, error) {
	f := excelize.NewFile()
	header := []string{ColAssignment, ColID, ColPriority, ColFailureMode, board.MarkerColumn}

	for i, name := range board.RequiredTabs() {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, fmt.Errorf("store: rename default sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("store: create sheet %q: %w", name, err)
		}
		for col, h := range header {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			if err := f.SetCellValue(name, cell, h); err != nil {
				return nil, fmt.Errorf("store: write header of %q: %w", name, err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		return nil, fmt.Errorf("store: save workbook %q: %w", path, err)
	}
	return &XLSXStore{path: path, f: f, styles: make(map[string]int)}, nil
}

// Close releases the underlying file handle without saving.
func (x *XLSXStore) Close() error {
	return x.f.Close()
}

// Save persists all pending writes back to the workbook file.
func (x *XLSXStore) Save() error {
	if err := x.f.Save(); err != nil {
		return fmt.Errorf("store: save workbook %q: %w", x.path, err)
	}
	return nil
}

func (x *XLSXStore) Tabs() ([]string, error) {
	return x.f.GetSheetList(), nil
}

func (x *XLSXStore) ReadTab(name string) (board.Tab, error) {
	if idx, err := x.f.GetSheetIndex(name); err != nil || idx < 0 {
		return board.Tab{}, &board.MissingTabError{Name: name}
	}
	rows, err := x.f.GetRows(name)
	if err != nil {
		return board.Tab{}, fmt.Errorf("store: read tab %q: %w", name, err)
	}

	tab := board.Tab{Name: name}
	if len(rows) == 0 {
		return tab, nil
	}
	tab.Columns = append(tab.Columns, rows[0]...)

	for rowIdx, row := range rows[1:] {
		rec := board.Record{}
		empty := true
		for colIdx, header := range tab.Columns {
			val := ""
			if colIdx < len(row) {
				val = strings.TrimSpace(row[colIdx])
			}
			if val != "" {
				empty = false
			}
			switch header {
			case ColID:
				rec.ID = val
			case ColPriority:
				// Unparsable workbook priorities are treated as
				// unranked rather than dropping the row.
				if n, err := strconv.Atoi(val); err == nil {
					rec.Priority = n
				}
			case ColFailureMode:
				rec.FailureMode = val
			case ColAssignment:
				rec.Assignment = board.ParseTeam(val)
			case board.MarkerColumn:
				fill := x.cellFill(name, colIdx+1, rowIdx+2)
				rec.Done = isDoneFill(fill)
				rec.Fields = append(rec.Fields, board.Cell{Column: header, Value: val, Fill: fill})
			default:
				rec.Fields = append(rec.Fields, board.Cell{Column: header, Value: val, Fill: x.cellFill(name, colIdx+1, rowIdx+2)})
			}
		}
		if empty && !rec.Done {
			continue
		}
		tab.Records = append(tab.Records, rec)
	}
	return tab, nil
}

func (x *XLSXStore) WriteTab(tab board.Tab) error {
	name := tab.Name
	if idx, err := x.f.GetSheetIndex(name); err != nil || idx < 0 {
		if _, err := x.f.NewSheet(name); err != nil {
			return fmt.Errorf("store: create sheet %q: %w", name, err)
		}
	}

	existing, err := x.f.GetRows(name)
	if err != nil {
		return fmt.Errorf("store: read tab %q before write: %w", name, err)
	}

	columns := tab.Columns
	if len(columns) == 0 {
		columns = []string{ColAssignment, ColID, ColPriority, ColFailureMode, board.MarkerColumn}
	}

	for col, h := range columns {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := x.f.SetCellValue(name, cell, h); err != nil {
			return fmt.Errorf("store: write header of %q: %w", name, err)
		}
	}

	for i, rec := range tab.Records {
		row := i + 2
		for col, header := range columns {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			val, fill := cellFor(rec, header)
			if err := x.f.SetCellValue(name, cell, val); err != nil {
				return fmt.Errorf("store: write %s!%s: %w", name, cell, err)
			}
			// Rows are rewritten in place, so a cell with no fill must be
			// reset explicitly or it inherits the previous occupant's
			// style (a purged record's done highlight would bleed onto
			// the survivor taking over its row).
			if fill != "" {
				if err := x.fillCell(name, cell, fill); err != nil {
					return err
				}
			} else if err := x.f.SetCellStyle(name, cell, cell, 0); err != nil {
				return fmt.Errorf("store: clear style %s!%s: %w", name, cell, err)
			}
		}
	}

	// Drop leftover rows from the previous contents, bottom up so row
	// numbers stay valid.
	for r := len(existing); r > len(tab.Records)+1; r-- {
		if err := x.f.RemoveRow(name, r); err != nil {
			return fmt.Errorf("store: trim tab %q row %d: %w", name, r, err)
		}
	}
	return nil
}

// cellFor maps one record onto one column of the write row.
func cellFor(rec board.Record, header string) (value any, fill string) {
	switch header {
	case ColAssignment:
		return string(rec.Assignment), ""
	case ColID:
		return rec.ID, ""
	case ColPriority:
		if rec.Ranked() {
			return rec.Priority, ""
		}
		return "", ""
	case ColFailureMode:
		return rec.FailureMode, ""
	case board.MarkerColumn:
		c, _ := rec.Field(board.MarkerColumn)
		if rec.Done {
			return c.Value, DoneFillRGB
		}
		return c.Value, ""
	default:
		c, ok := rec.Field(header)
		if !ok {
			return "", ""
		}
		return c.Value, c.Fill
	}
}

// cellFill returns the ARGB fill of a cell, "" when unstyled.
func (x *XLSXStore) cellFill(sheet string, col, row int) string {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return ""
	}
	styleID, err := x.f.GetCellStyle(sheet, cell)
	if err != nil || styleID == 0 {
		return ""
	}
	style, err := x.f.GetStyle(styleID)
	if err != nil || style == nil || len(style.Fill.Color) == 0 {
		return ""
	}
	return style.Fill.Color[0]
}

// fillCell paints a solid background fill, reusing style IDs per color.
func (x *XLSXStore) fillCell(sheet, cell, rgb string) error {
	id, ok := x.styles[rgb]
	if !ok {
		var err error
		id, err = x.f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{rgb}},
		})
		if err != nil {
			return fmt.Errorf("store: style for fill %s: %w", rgb, err)
		}
		x.styles[rgb] = id
	}
	if err := x.f.SetCellStyle(sheet, cell, cell, id); err != nil {
		return fmt.Errorf("store: fill %s!%s: %w", sheet, cell, err)
	}
	return nil
}

// isDoneFill matches the completion highlight with or without the alpha
// prefix excelize may report (FF00FF00 vs 00FF00).
func isDoneFill(rgb string) bool {
	u := strings.ToUpper(strings.TrimPrefix(rgb, "#"))
	return u == DoneFillRGB || strings.HasSuffix(u, DoneFillRGB) && len(u) == 8
}
