package store

import "bugdesk/internal/board"

// MemStore is an in-memory TabStore for tests and the MCP server. Tabs are
// held as board values directly; Done and Fill survive round trips, which
// makes it the reference behavior for the workbook-backed stores.
type MemStore struct {
	tabs  map[string]board.Tab
	order []string
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{tabs: make(map[string]board.Tab)}
}

// NewMemWorkbook returns a MemStore pre-seeded with the four required tabs.
func NewMemWorkbook() *MemStore {
	m := NewMemStore()
	for _, name := range board.RequiredTabs() {
		_ = m.WriteTab(board.Tab{Name: name})
	}
	return m
}

func (m *MemStore) ReadTab(name string) (board.Tab, error) {
	t, ok := m.tabs[name]
	if !ok {
		return board.Tab{}, &board.MissingTabError{Name: name}
	}
	return t.Clone(), nil
}

func (m *MemStore) WriteTab(tab board.Tab) error {
	if _, ok := m.tabs[tab.Name]; !ok {
		m.order = append(m.order, tab.Name)
	}
	m.tabs[tab.Name] = tab.Clone()
	return nil
}

func (m *MemStore) Tabs() ([]string, error) {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out, nil
}

// MarkDone sets the completion highlight on a record in one tab, the way a
// human would paint the marker cell green.
func (m *MemStore) MarkDone(tabName, id string) bool {
	t, ok := m.tabs[tabName]
	if !ok {
		return false
	}
	for i, r := range t.Records {
		if r.ID == id {
			t.Records[i].Done = true
			m.tabs[tabName] = t
			return true
		}
	}
	return false
}
