package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"bugdesk/adapters/store"
	"bugdesk/internal/board"
	"bugdesk/internal/engine"
	"bugdesk/internal/notify"
)

var digestFlags struct {
	size   int
	send   bool
	mailto bool
}

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Show or mail each team's top-priority bugs",
	RunE:  runDigest,
}

func init() {
	f := digestCmd.Flags()
	f.IntVar(&digestFlags.size, "size", 0, "Entries per team (default from config, then 25)")
	f.BoolVar(&digestFlags.send, "send", false, "Mail the digest instead of printing it")
	f.BoolVar(&digestFlags.mailto, "mailto", false, "Print a mailto: link for manual sending")
}

func runDigest(cmd *cobra.Command, _ []string) error {
	ts, err := openWorkbook()
	if err != nil {
		return err
	}
	defer ts.Close()

	snap, err := store.Load(ts)
	if err != nil {
		return err
	}

	size := digestFlags.size
	if size == 0 {
		size = cfg.DigestSize
	}
	digest, err := engine.Digest(snap, size)
	if err != nil {
		return err
	}

	if digestFlags.send {
		sender := &notify.SMTPSender{
			Host:     cfg.Email.SMTPHost,
			Port:     cfg.Email.SMTPPort,
			From:     cfg.Email.From,
			User:     cfg.Email.User,
			Password: cfg.Email.Password,
		}
		return notify.Deliver(cmd.Context(), sender, cfg, digest, time.Now())
	}

	out := cmd.OutOrStdout()
	printDigest(out, digest)

	if digestFlags.mailto {
		var recipients []string
		for _, team := range board.Teams() {
			if addr, ok := cfg.Recipient(team); ok {
				recipients = append(recipients, addr)
			}
		}
		fmt.Fprintln(out, notify.MailtoLink(recipients, notify.Subject(time.Now()), digest))
	}
	return nil
}
