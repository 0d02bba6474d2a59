package browser

import (
	"context"
	"testing"
	"time"
)

func TestExportURL_GoogleSheet(t *testing.T) {
	in := "https://docs.google.com/spreadsheets/d/abc123XYZ/edit#gid=0"
	got, err := ExportURL(in)
	if err != nil {
		t.Fatalf("ExportURL: %v", err)
	}
	want := "https://docs.google.com/spreadsheets/d/abc123XYZ/export?format=xlsx"
	if got != want {
		t.Errorf("ExportURL = %q, want %q", got, want)
	}
}

func TestExportURL_DirectFilePassesThrough(t *testing.T) {
	in := "https://files.example.com/worklist.xlsx"
	got, err := ExportURL(in)
	if err != nil {
		t.Fatalf("ExportURL: %v", err)
	}
	if got != in {
		t.Errorf("ExportURL rewrote a direct URL to %q", got)
	}
}

func TestExportURL_Invalid(t *testing.T) {
	if _, err := ExportURL("://not a url"); err == nil {
		t.Error("ExportURL should reject unparsable input")
	}
}

func TestCaptureTabs_RequiresPlaceholder(t *testing.T) {
	_, err := CaptureTabs(context.Background(), Options{}, "https://sheets.example.com/view", []string{"GL"}, t.TempDir())
	if err == nil {
		t.Errorf("a tab URL without a %%s placeholder cannot address tabs and must be rejected")
	}
}

func TestOptions_TimeoutDefault(t *testing.T) {
	if (Options{}).timeout() != DefaultTimeout {
		t.Error("zero timeout should fall back to DefaultTimeout")
	}
	if (Options{Timeout: time.Second}).timeout() != time.Second {
		t.Error("explicit timeout ignored")
	}
}
