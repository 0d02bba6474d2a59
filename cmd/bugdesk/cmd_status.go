package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bugdesk/adapters/store"
	"bugdesk/internal/board"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show record counts per workbook tab",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, _ []string) error {
	ts, err := openWorkbook()
	if err != nil {
		return err
	}
	defer ts.Close()

	snap, err := store.Load(ts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Workbook: %s\n", cfg.Workbook)
	for _, name := range board.RequiredTabs() {
		tab, err := snap.Tab(name)
		if err != nil {
			return err
		}
		ranked, done := 0, 0
		for _, r := range tab.Records {
			if r.Ranked() {
				ranked++
			}
			if r.Done {
				done++
			}
		}
		fmt.Fprintf(out, "  %-10s %3d records (%d ranked, %d completed)\n", name, len(tab.Records), ranked, done)
	}
	return nil
}
