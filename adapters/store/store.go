// Package store adapts workbook-like backends to the board model. The
// engine only ever sees board.Store snapshots; everything about sheets,
// headers, and cell styling stays behind the TabStore interface.
package store

import "bugdesk/internal/board"

// Well-known column headers. Any other header is carried verbatim as an
// opaque field. The completion marker is board.MarkerColumn.
const (
	ColAssignment  = "Assignment"
	ColID          = "Bug ID"
	ColPriority    = "Priority"
	ColFailureMode = "Failure Mode"
)

// DoneFillRGB is the highlight that marks a defect completed. Cell text in
// the marker column is ignored; only this fill counts.
const DoneFillRGB = "00FF00"

// TabStore is the workbook capability the pipeline needs: named tabs in,
// named tabs out. Implementations map their cell styling into Record.Done
// and Cell.Fill on read and restore it on write.
type TabStore interface {
	// ReadTab returns the named tab. A required tab that is absent is
	// reported as *board.MissingTabError.
	ReadTab(name string) (board.Tab, error)
	// WriteTab replaces the named tab's contents, creating it if needed.
	WriteTab(tab board.Tab) error
	// Tabs lists the tab names present, in workbook order.
	Tabs() ([]string, error)
}

// Load reads the four required tabs into a fresh snapshot. Fails on the
// first missing tab, before the engine mutates anything.
func Load(ts TabStore) (*board.Store, error) {
	s := board.NewStore()
	for _, name := range board.RequiredTabs() {
		tab, err := ts.ReadTab(name)
		if err != nil {
			return nil, err
		}
		s.SetTab(tab)
	}
	return s, nil
}

// Save writes the four required tabs back.
func Save(ts TabStore, s *board.Store) error {
	for _, name := range board.RequiredTabs() {
		tab, err := s.Tab(name)
		if err != nil {
			return err
		}
		if err := ts.WriteTab(tab); err != nil {
			return err
		}
	}
	return nil
}
