// Package config loads the bugdesk run configuration from a YAML or JSON
// file. Format is detected by extension, falling back to content sniffing.
// SMTP credentials are never stored in the file; they come from the
// environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"bugdesk/internal/board"
)

// Env variable names for secrets kept out of the config file.
const (
	EnvSMTPUser     = "BUGDESK_SMTP_USER"
	EnvSMTPPassword = "BUGDESK_SMTP_PASSWORD"
)

// Config is the full runtime configuration.
type Config struct {
	// Workbook is the path to the .xlsx worklist workbook.
	Workbook string `yaml:"workbook" json:"workbook"`
	// Source is the path to the scraped defect feed (.csv or .xlsx).
	Source string `yaml:"source,omitempty" json:"source,omitempty"`

	DigestSize int    `yaml:"digest_size,omitempty" json:"digest_size,omitempty"`
	LogLevel   string `yaml:"log_level,omitempty" json:"log_level,omitempty"`
	LogFormat  string `yaml:"log_format,omitempty" json:"log_format,omitempty"`

	Email   Email   `yaml:"email,omitempty" json:"email,omitempty"`
	Browser Browser `yaml:"browser,omitempty" json:"browser,omitempty"`
}

// Email configures digest delivery. User and Password are filled from the
// environment, not the file.
type Email struct {
	SMTPHost string            `yaml:"smtp_host,omitempty" json:"smtp_host,omitempty"`
	SMTPPort int               `yaml:"smtp_port,omitempty" json:"smtp_port,omitempty"`
	From     string            `yaml:"from,omitempty" json:"from,omitempty"`
	Teams    map[string]string `yaml:"teams,omitempty" json:"teams,omitempty"`

	User     string `yaml:"-" json:"-"`
	Password string `yaml:"-" json:"-"`
}

// Browser configures the chromedp download of the shared online workbook.
// TabURL is a format string producing the view of one named tab (the tab
// name replaces %s); it drives the per-tab screenshot capture.
type Browser struct {
	SheetURL    string `yaml:"sheet_url,omitempty" json:"sheet_url,omitempty"`
	TabURL      string `yaml:"tab_url,omitempty" json:"tab_url,omitempty"`
	DownloadDir string `yaml:"download_dir,omitempty" json:"download_dir,omitempty"`
	Headless    *bool  `yaml:"headless,omitempty" json:"headless,omitempty"`
	TimeoutSecs int    `yaml:"timeout_seconds,omitempty" json:"timeout_seconds,omitempty"`
}

// IsHeadless defaults to true when unset.
func (b Browser) IsHeadless() bool {
	return b.Headless == nil || *b.Headless
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Workbook:   "bug-worklist.xlsx",
		DigestSize: 25,
		LogLevel:   "info",
		LogFormat:  "text",
	}
}

// LoadFromPath reads and parses a config file, applies defaults, and pulls
// secrets from the environment.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}
	cfg, err := Load(data, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load parses config bytes. ext is the file extension for format hint;
// empty = detect from content (JSON starts with "{", otherwise YAML).
func Load(data []byte, ext string) (*Config, error) {
	cfg := Default()

	ext = strings.ToLower(ext)
	if ext == ".yml" {
		ext = ".yaml"
	}
	switch {
	case ext == ".yaml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse yaml: %w", err)
		}
	case ext == ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse json: %w", err)
		}
	case strings.HasPrefix(strings.TrimSpace(string(data)), "{"):
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse yaml: %w", err)
		}
	}

	if cfg.DigestSize <= 0 {
		cfg.DigestSize = 25
	}
	cfg.Email.User = os.Getenv(EnvSMTPUser)
	cfg.Email.Password = os.Getenv(EnvSMTPPassword)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Workbook == "" {
		return fmt.Errorf("config: workbook path is required")
	}
	for team := range c.Email.Teams {
		if board.ParseTeam(team) == board.Unassigned {
			return fmt.Errorf("config: email.teams has unknown team %q", team)
		}
	}
	return nil
}

// Recipient returns the digest recipient for a team, if configured.
func (c *Config) Recipient(team board.Team) (string, bool) {
	for name, addr := range c.Email.Teams {
		if board.ParseTeam(name) == team && addr != "" {
			return addr, true
		}
	}
	return "", false
}
