package config

import (
	"os"
	"path/filepath"
	"testing"

	"bugdesk/internal/board"
)

const sampleYAML = `
workbook: worklist.xlsx
source: cqe_bugs.csv
digest_size: 10
log_level: debug
email:
  smtp_host: smtp.example.com
  smtp_port: 587
  from: bugs@example.com
  teams:
    GL: geetha@example.com
    NT: nicolas@example.com
    PP: phuong@example.com
browser:
  sheet_url: https://sheets.example.com/d/abc
  headless: false
`

func TestLoad_YAML(t *testing.T) {
	cfg, err := Load([]byte(sampleYAML), ".yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Workbook != "worklist.xlsx" {
		t.Errorf("workbook = %q", cfg.Workbook)
	}
	if cfg.DigestSize != 10 {
		t.Errorf("digest_size = %d, want 10", cfg.DigestSize)
	}
	if cfg.Email.SMTPHost != "smtp.example.com" || cfg.Email.SMTPPort != 587 {
		t.Errorf("smtp = %s:%d", cfg.Email.SMTPHost, cfg.Email.SMTPPort)
	}
	if cfg.Browser.IsHeadless() {
		t.Error("headless: false not honored")
	}

	addr, ok := cfg.Recipient(board.NT)
	if !ok || addr != "nicolas@example.com" {
		t.Errorf("Recipient(NT) = %q, %v", addr, ok)
	}
}

func TestLoad_JSONDetectedByContent(t *testing.T) {
	cfg, err := Load([]byte(`{"workbook": "w.xlsx"}`), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Workbook != "w.xlsx" {
		t.Errorf("workbook = %q", cfg.Workbook)
	}
	if cfg.DigestSize != 25 {
		t.Errorf("digest_size default = %d, want 25", cfg.DigestSize)
	}
	if cfg.Browser.IsHeadless() != true {
		t.Error("headless should default to true")
	}
}

func TestLoad_UnknownTeamRejected(t *testing.T) {
	_, err := Load([]byte("workbook: w.xlsx\nemail:\n  teams:\n    QA: someone@example.com\n"), ".yaml")
	if err == nil {
		t.Error("unknown team in email.teams should fail validation")
	}
}

func TestLoad_MissingWorkbookRejected(t *testing.T) {
	_, err := Load([]byte(`workbook: ""`), ".yaml")
	if err == nil {
		t.Error("empty workbook path should fail validation")
	}
}

func TestLoad_SecretsFromEnv(t *testing.T) {
	t.Setenv(EnvSMTPUser, "daily-bot")
	t.Setenv(EnvSMTPPassword, "hunter2")

	cfg, err := Load([]byte("workbook: w.xlsx"), ".yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Email.User != "daily-bot" || cfg.Email.Password != "hunter2" {
		t.Errorf("secrets not pulled from env: %q/%q", cfg.Email.User, cfg.Email.Password)
	}
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bugdesk.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.Source != "cqe_bugs.csv" {
		t.Errorf("source = %q", cfg.Source)
	}
}
