package store

import (
	"path/filepath"
	"testing"

	"bugdesk/internal/board"
)

func newTestWorkbook(t *testing.T) (*XLSXStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "worklist.xlsx")
	x, err := NewXLSX(path)
	if err != nil {
		t.Fatalf("NewXLSX: %v", err)
	}
	t.Cleanup(func() { _ = x.Close() })
	return x, path
}

func TestNewXLSX_CreatesRequiredTabs(t *testing.T) {
	x, _ := newTestWorkbook(t)
	tabs, err := x.Tabs()
	if err != nil {
		t.Fatalf("Tabs: %v", err)
	}
	if len(tabs) != 4 {
		t.Fatalf("tabs = %v, want the 4 required", tabs)
	}
	for i, want := range board.RequiredTabs() {
		if tabs[i] != want {
			t.Errorf("tab[%d] = %q, want %q", i, tabs[i], want)
		}
	}
}

func TestXLSX_RoundTrip(t *testing.T) {
	x, path := newTestWorkbook(t)

	tab := board.Tab{
		Name:    board.IntakeTab,
		Columns: []string{ColAssignment, ColID, ColPriority, ColFailureMode, "Title", board.MarkerColumn},
		Records: []board.Record{
			{ID: "B1", Priority: 5, FailureMode: "gpu hang", Assignment: board.GL,
				Fields: []board.Cell{{Column: "Title", Value: "tearing on resume"}}},
			{ID: "B2", FailureMode: "unranked one"},
		},
	}
	if err := x.WriteTab(tab); err != nil {
		t.Fatalf("WriteTab: %v", err)
	}
	if err := x.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	y, err := OpenXLSX(path)
	if err != nil {
		t.Fatalf("OpenXLSX: %v", err)
	}
	defer y.Close()

	got, err := y.ReadTab(board.IntakeTab)
	if err != nil {
		t.Fatalf("ReadTab: %v", err)
	}
	if len(got.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(got.Records))
	}
	r := got.Records[0]
	if r.ID != "B1" || r.Priority != 5 || r.FailureMode != "gpu hang" || r.Assignment != board.GL {
		t.Errorf("B1 round trip mangled: %+v", r)
	}
	if c, ok := r.Field("Title"); !ok || c.Value != "tearing on resume" {
		t.Errorf("opaque column lost: %+v", r.Fields)
	}
	if got.Records[1].Ranked() {
		t.Error("B2 should read back unranked")
	}
}

func TestXLSX_DoneHighlightRoundTrip(t *testing.T) {
	x, path := newTestWorkbook(t)

	tab := board.Tab{
		Name:    "NT",
		Columns: []string{ColAssignment, ColID, ColPriority, ColFailureMode, board.MarkerColumn},
		Records: []board.Record{
			{ID: "B1", Priority: 1, Assignment: board.NT},
			{ID: "B2", Priority: 2, Assignment: board.NT, Done: true},
		},
	}
	if err := x.WriteTab(tab); err != nil {
		t.Fatalf("WriteTab: %v", err)
	}
	if err := x.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	y, err := OpenXLSX(path)
	if err != nil {
		t.Fatalf("OpenXLSX: %v", err)
	}
	defer y.Close()

	got, err := y.ReadTab("NT")
	if err != nil {
		t.Fatalf("ReadTab: %v", err)
	}
	b1, _ := got.Find("B1")
	b2, _ := got.Find("B2")
	if b1.Done {
		t.Error("B1 read back Done without a highlight")
	}
	if !b2.Done {
		t.Error("B2's green marker highlight not read back as Done")
	}
}

func TestXLSX_WriteShrinksTab(t *testing.T) {
	x, _ := newTestWorkbook(t)

	big := board.Tab{Name: "GL", Columns: []string{ColID, ColPriority}, Records: []board.Record{
		{ID: "B1", Priority: 1}, {ID: "B2", Priority: 2}, {ID: "B3", Priority: 3},
	}}
	if err := x.WriteTab(big); err != nil {
		t.Fatalf("WriteTab: %v", err)
	}

	small := board.Tab{Name: "GL", Columns: []string{ColID, ColPriority}, Records: []board.Record{
		{ID: "B2", Priority: 2},
	}}
	if err := x.WriteTab(small); err != nil {
		t.Fatalf("WriteTab shrink: %v", err)
	}

	got, err := x.ReadTab("GL")
	if err != nil {
		t.Fatalf("ReadTab: %v", err)
	}
	if len(got.Records) != 1 || got.Records[0].ID != "B2" {
		t.Errorf("leftover rows after shrink: %+v", got.Records)
	}
}

func TestXLSX_RewriteClearsPurgedHighlight(t *testing.T) {
	x, path := newTestWorkbook(t)

	cols := []string{ColAssignment, ColID, ColPriority, ColFailureMode, board.MarkerColumn}
	before := board.Tab{Name: "NT", Columns: cols, Records: []board.Record{
		{ID: "B1", Priority: 1, Assignment: board.NT, Done: true},
		{ID: "B2", Priority: 2, Assignment: board.NT},
	}}
	if err := x.WriteTab(before); err != nil {
		t.Fatalf("WriteTab: %v", err)
	}
	if err := x.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// B1 is purged; B2 takes over B1's old row on the rewrite.
	after := board.Tab{Name: "NT", Columns: cols, Records: []board.Record{
		{ID: "B2", Priority: 2, Assignment: board.NT},
	}}
	if err := x.WriteTab(after); err != nil {
		t.Fatalf("WriteTab rewrite: %v", err)
	}
	if err := x.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	y, err := OpenXLSX(path)
	if err != nil {
		t.Fatalf("OpenXLSX: %v", err)
	}
	defer y.Close()

	got, err := y.ReadTab("NT")
	if err != nil {
		t.Fatalf("ReadTab: %v", err)
	}
	if len(got.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(got.Records))
	}
	if got.Records[0].Done {
		t.Error("survivor inherited the purged record's highlight and reads as Done")
	}
}

func TestXLSX_MissingTab(t *testing.T) {
	x, _ := newTestWorkbook(t)
	if _, err := x.ReadTab("Archive"); err == nil {
		t.Error("ReadTab should fail for an absent sheet")
	}
}

func TestIsDoneFill(t *testing.T) {
	cases := []struct {
		rgb  string
		want bool
	}{
		{"00FF00", true},
		{"FF00FF00", true},
		{"#00ff00", true},
		{"", false},
		{"FFFF00", false},
		{"0000FF00", true}, // any 8-digit ARGB over green
	}
	for _, c := range cases {
		if got := isDoneFill(c.rgb); got != c.want {
			t.Errorf("isDoneFill(%q) = %v, want %v", c.rgb, got, c.want)
		}
	}
}
