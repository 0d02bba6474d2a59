// bugdesk maintains a daily bug worklist workbook: it merges scraped
// defect feeds into the intake tab, classifies records onto teams,
// distributes them to team tabs, purges completed work and mails each
// team its top-priority digest.
//
// Usage:
//
//	bugdesk run [--source=<feed>] [--send] [--dry-run]
//	bugdesk digest [--size=<n>] [--send]
//	bugdesk fetch [--url=<sheet>] [--out=<path>]
//	bugdesk classify <failure mode text>
//	bugdesk status
//	bugdesk serve
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bugdesk/internal/config"
	"bugdesk/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

// cfg is resolved once in the persistent pre-run and shared by all
// subcommands.
var cfg *config.Config

var rootFlags struct {
	configPath string
	workbook   string
	logLevel   string
	logFormat  string
}

var rootCmd = &cobra.Command{
	Use:   "bugdesk",
	Short: "Daily bug worklist pipeline over an .xlsx workbook",
	Long: "Bugdesk keeps a shared bug worklist workbook current: new defects land\n" +
		"on the intake tab, get classified onto teams, distributed to team tabs,\n" +
		"and completed records are purged before the daily digest goes out.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&rootFlags.configPath, "config", "c", "", "Config file (.yaml or .json)")
	pf.StringVar(&rootFlags.workbook, "workbook", "", "Workbook path (overrides config)")
	pf.StringVar(&rootFlags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&rootFlags.logFormat, "log-format", "", "Log format: text or json")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(digestCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.Version = version
}

// setup resolves the configuration and wires logging before any
// subcommand runs. Flags win over the config file.
func setup(_ *cobra.Command, _ []string) error {
	var err error
	if rootFlags.configPath != "" {
		cfg, err = config.LoadFromPath(rootFlags.configPath)
		if err != nil {
			return err
		}
	} else {
		cfg = config.Default()
	}

	if rootFlags.workbook != "" {
		cfg.Workbook = rootFlags.workbook
	}
	if rootFlags.logLevel != "" {
		cfg.LogLevel = rootFlags.logLevel
	}
	if rootFlags.logFormat != "" {
		cfg.LogFormat = rootFlags.logFormat
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logging.Init(level, cfg.LogFormat, os.Stderr)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
