package board

// Required tab names. IntakeTab holds every merged defect regardless of
// team; the three team tabs are named after their tags.
const (
	IntakeTab = "Daily New"

	// MarkerColumn is the completion-marker column. The purge stage
	// creates it when absent; a green-highlighted marker cell means the
	// defect is done regardless of the cell's text.
	MarkerColumn = "COMPLETED"
)

// RequiredTabs returns the four tab names every store must carry, in
// workbook order.
func RequiredTabs() []string {
	return []string{IntakeTab, string(GL), string(NT), string(PP)}
}

// TeamTabName maps a team tag to its tab name.
func TeamTabName(t Team) string {
	return string(t)
}

// Tab is a named ordered sequence of records. Columns is the tab's header
// row: the columns the engine understands plus any opaque ones, in source
// order. Record order is significant; after a reorder it is priority order.
type Tab struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns,omitempty"`
	Records []Record `json:"records"`
}

// Contains reports whether a record with the given ID is present.
func (t Tab) Contains(id string) bool {
	return t.indexOf(id) >= 0
}

// Find returns the record with the given ID.
func (t Tab) Find(id string) (Record, bool) {
	if i := t.indexOf(id); i >= 0 {
		return t.Records[i], true
	}
	return Record{}, false
}

func (t Tab) indexOf(id string) int {
	for i, r := range t.Records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the header carries the named column.
func (t Tab) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the tab.
func (t Tab) Clone() Tab {
	out := Tab{Name: t.Name}
	if t.Columns != nil {
		out.Columns = make([]string, len(t.Columns))
		copy(out.Columns, t.Columns)
	}
	if t.Records != nil {
		out.Records = make([]Record, 0, len(t.Records))
		for _, r := range t.Records {
			out.Records = append(out.Records, r.Clone())
		}
	}
	return out
}
