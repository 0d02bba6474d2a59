package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"bugdesk/adapters/feed"
	"bugdesk/adapters/store"
	"bugdesk/internal/board"
	"bugdesk/internal/engine"
	"bugdesk/internal/notify"
)

var runFlags struct {
	source     string
	reclassify bool
	dryRun     bool
	send       bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full daily pipeline against the workbook",
	Long: "Merges the defect feed into the intake tab, classifies new records,\n" +
		"distributes them to team tabs, reorders by priority and purges\n" +
		"completed records. With --send the digest is mailed afterwards.",
	RunE: runRun,
}

func init() {
	f := runCmd.Flags()
	f.StringVarP(&runFlags.source, "source", "s", "", "Scraped defect feed (.csv or .xlsx); default from config")
	f.BoolVar(&runFlags.reclassify, "reclassify", false, "Re-run the classifier over already-assigned records")
	f.BoolVar(&runFlags.dryRun, "dry-run", false, "Run everything but do not save the workbook")
	f.BoolVar(&runFlags.send, "send", false, "Mail each team its digest after the run")
}

func runRun(cmd *cobra.Command, _ []string) error {
	ts, err := openWorkbook()
	if err != nil {
		return err
	}
	defer ts.Close()

	snap, err := store.Load(ts)
	if err != nil {
		return err
	}

	sourcePath := runFlags.source
	if sourcePath == "" {
		sourcePath = cfg.Source
	}

	var records []board.Record
	var feedBad []*board.InvalidRecordError
	if sourcePath != "" {
		src, err := feed.Open(sourcePath)
		if err != nil {
			return err
		}
		records, feedBad, err = src.Records()
		if err != nil {
			return err
		}
	}

	rep, err := engine.Run(snap, records, engine.Options{Reclassify: runFlags.reclassify})
	if err != nil {
		return err
	}
	rep.Skipped = append(feedBad, rep.Skipped...)

	if !runFlags.dryRun {
		if err := store.Save(ts, snap); err != nil {
			return err
		}
		if err := ts.Save(); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, rep.Summary())
	if runFlags.dryRun {
		fmt.Fprintln(out, "dry run: workbook not saved")
		return nil
	}

	if runFlags.send {
		digest, err := engine.Digest(snap, cfg.DigestSize)
		if err != nil {
			return err
		}
		sender := &notify.SMTPSender{
			Host:     cfg.Email.SMTPHost,
			Port:     cfg.Email.SMTPPort,
			From:     cfg.Email.From,
			User:     cfg.Email.User,
			Password: cfg.Email.Password,
		}
		return notify.Deliver(cmd.Context(), sender, cfg, digest, time.Now())
	}
	return nil
}
