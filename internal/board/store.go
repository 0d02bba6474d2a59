package board

// Store is one pipeline run's snapshot of the workbook: tab name → tab.
// The engine owns the value for the duration of a run; persistence belongs
// to the adapter that produced it.
type Store struct {
	tabs map[string]Tab
}

// NewStore returns a store pre-seeded with the four required tabs, empty.
func NewStore() *Store {
	s := &Store{tabs: make(map[string]Tab, len(RequiredTabs()))}
	for _, name := range RequiredTabs() {
		s.tabs[name] = Tab{Name: name}
	}
	return s
}

// Tab returns the named tab. Absence of a required tab is a structural
// fault, reported as *MissingTabError.
func (s *Store) Tab(name string) (Tab, error) {
	t, ok := s.tabs[name]
	if !ok {
		return Tab{}, &MissingTabError{Name: name}
	}
	return t, nil
}

// SetTab replaces the tab under its own name.
func (s *Store) SetTab(t Tab) {
	if s.tabs == nil {
		s.tabs = make(map[string]Tab)
	}
	s.tabs[t.Name] = t
}

// Validate checks the four-tab contract. Returns *MissingTabError for the
// first absent tab, in RequiredTabs order.
func (s *Store) Validate() error {
	for _, name := range RequiredTabs() {
		if _, ok := s.tabs[name]; !ok {
			return &MissingTabError{Name: name}
		}
	}
	return nil
}

// Clone returns a deep copy of the store.
func (s *Store) Clone() *Store {
	out := &Store{tabs: make(map[string]Tab, len(s.tabs))}
	for name, t := range s.tabs {
		out.tabs[name] = t.Clone()
	}
	return out
}
