package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// execute runs the root command in-process with the given args and
// returns its combined output.
func execute(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("bugdesk %s: %v\n%s", strings.Join(args, " "), err, buf.String())
	}
	return buf.String()
}

func TestInitRunStatus(t *testing.T) {
	dir := t.TempDir()
	workbook := filepath.Join(dir, "worklist.xlsx")

	execute(t, "--workbook", workbook, "init")
	if _, err := os.Stat(workbook); err != nil {
		t.Fatalf("workbook not created: %v", err)
	}

	feedPath := filepath.Join(dir, "feed.csv")
	data := "Bug ID,Priority,Failure Mode\nB1,5,gpu render glitch\nB2,3,wifi drops on resume\n"
	if err := os.WriteFile(feedPath, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	out := execute(t, "--workbook", workbook, "run", "--source", feedPath)
	if !strings.Contains(out, "merged: 2 new") {
		t.Errorf("run output missing added count:\n%s", out)
	}

	out = execute(t, "--workbook", workbook, "status")
	if !strings.Contains(out, "GL") || !strings.Contains(out, "NT") {
		t.Errorf("status output missing team tabs:\n%s", out)
	}

	out = execute(t, "--workbook", workbook, "digest")
	if !strings.Contains(out, "B1") || !strings.Contains(out, "B2") {
		t.Errorf("digest output missing records:\n%s", out)
	}
}

// executeErr runs the root command and hands back the error instead of
// failing, for exercising rejection paths.
func executeErr(t *testing.T, args ...string) error {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestFetchCaptureNeedsTabURL(t *testing.T) {
	dir := t.TempDir()
	err := executeErr(t, "--workbook", filepath.Join(dir, "wb.xlsx"), "fetch",
		"--url", "https://files.example.com/wb.xlsx",
		"--out", filepath.Join(dir, "wb.xlsx"),
		"--capture", dir)
	if err == nil || !strings.Contains(err.Error(), "tab_url") {
		t.Errorf("fetch --capture without browser.tab_url should be rejected up front, got %v", err)
	}
}

func TestClassifyCommand(t *testing.T) {
	out := execute(t, "classify", "thermal", "runaway", "under", "load")
	if strings.TrimSpace(out) != "PP" {
		t.Errorf("classify = %q, want PP", out)
	}

	out = execute(t, "classify", "sticky", "keys")
	if strings.TrimSpace(out) != "unassigned" {
		t.Errorf("classify = %q, want unassigned", out)
	}
}
