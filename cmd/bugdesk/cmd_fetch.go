package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bugdesk/adapters/browser"
	"bugdesk/internal/board"
)

var fetchFlags struct {
	url     string
	out     string
	capture string
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the shared online workbook as .xlsx",
	Long: "Drives a headless browser to export the shared online sheet and\n" +
		"saves it to the local workbook path, ready for 'bugdesk run'.\n" +
		"With --capture each tab is also screenshotted for the digest mail.",
	RunE: runFetch,
}

func init() {
	f := fetchCmd.Flags()
	f.StringVar(&fetchFlags.url, "url", "", "Online sheet URL; default from config")
	f.StringVarP(&fetchFlags.out, "out", "o", "", "Destination .xlsx path; default is the configured workbook")
	f.StringVar(&fetchFlags.capture, "capture", "", "Directory for per-tab screenshots (needs browser.tab_url in the config)")
}

func runFetch(cmd *cobra.Command, _ []string) error {
	url := fetchFlags.url
	if url == "" {
		url = cfg.Browser.SheetURL
	}
	if url == "" {
		return fmt.Errorf("no sheet URL; set browser.sheet_url in the config file or pass --url")
	}

	dest := fetchFlags.out
	if dest == "" {
		dest = cfg.Workbook
	}
	if dest == "" {
		return fmt.Errorf("no destination; set workbook: in the config file or pass --out")
	}
	if fetchFlags.capture != "" && cfg.Browser.TabURL == "" {
		return fmt.Errorf("--capture needs browser.tab_url in the config file")
	}

	if err := browser.Download(cmd.Context(), browserOptions(), url, dest); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "workbook saved to %s\n", dest)

	if fetchFlags.capture != "" {
		paths, err := browser.CaptureTabs(cmd.Context(), browserOptions(), cfg.Browser.TabURL, board.RequiredTabs(), fetchFlags.capture)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintf(out, "tab captured to %s\n", p)
		}
	}
	return nil
}
