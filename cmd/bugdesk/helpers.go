package main

import (
	"fmt"
	"io"
	"time"

	"bugdesk/adapters/browser"
	"bugdesk/adapters/store"
	"bugdesk/internal/board"
)

// openWorkbook opens the configured .xlsx workbook. The caller owns the
// returned store and must Close it.
func openWorkbook() (*store.XLSXStore, error) {
	if cfg.Workbook == "" {
		return nil, fmt.Errorf("no workbook configured; set workbook: in the config file or pass --workbook")
	}
	return store.OpenXLSX(cfg.Workbook)
}

// browserOptions maps the browser config section onto adapter options.
func browserOptions() browser.Options {
	opts := browser.Options{
		Headless:    cfg.Browser.IsHeadless(),
		DownloadDir: cfg.Browser.DownloadDir,
	}
	if cfg.Browser.TimeoutSecs > 0 {
		opts.Timeout = time.Duration(cfg.Browser.TimeoutSecs) * time.Second
	}
	return opts
}

// printDigest writes the per-team digest as plain text, canonical team
// order, most urgent first.
func printDigest(w io.Writer, digest map[board.Team][]board.Record) {
	for _, team := range board.Teams() {
		records := digest[team]
		if len(records) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s (%d)\n", team, len(records))
		for _, r := range records {
			rank := "-"
			if r.Ranked() {
				rank = fmt.Sprintf("%d", r.Priority)
			}
			fmt.Fprintf(w, "  %-4s %-12s %s\n", rank, r.ID, r.FailureMode)
		}
	}
}
