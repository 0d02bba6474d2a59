package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wneessen/go-mail"
	"golang.org/x/sync/errgroup"

	"bugdesk/internal/board"
	"bugdesk/internal/config"
	"bugdesk/internal/logging"
)

// Sender delivers one rendered digest mail. Split out so tests can swap
// SMTP for a recorder.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SMTPSender delivers via go-mail.
type SMTPSender struct {
	Host     string
	Port     int
	From     string
	User     string
	Password string
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	m := mail.NewMsg()
	if err := m.From(s.From); err != nil {
		return fmt.Errorf("notify: from %q: %w", s.From, err)
	}
	if err := m.To(to); err != nil {
		return fmt.Errorf("notify: to %q: %w", to, err)
	}
	m.Subject(subject)
	m.SetBodyString(mail.TypeTextHTML, htmlBody)

	opts := []mail.Option{mail.WithPort(s.Port), mail.WithTLSPolicy(mail.TLSMandatory)}
	if s.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.User),
			mail.WithPassword(s.Password),
		)
	}
	c, err := mail.NewClient(s.Host, opts...)
	if err != nil {
		return fmt.Errorf("notify: smtp client: %w", err)
	}
	if err := c.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("notify: send to %q: %w", to, err)
	}
	return nil
}

// Deliver sends each configured team its digest, concurrently. Teams with
// no recipient or an empty digest are skipped and logged. One failed team
// does not stop the others; the first error is returned after all sends
// finish.
func Deliver(ctx context.Context, sender Sender, cfg *config.Config, digest map[board.Team][]board.Record, day time.Time) error {
	log := logging.New("notify")
	subject := Subject(day)

	body, err := Body(digest)
	if err != nil {
		return err
	}

	// A plain group, not WithContext: one team's failed send must not
	// cancel a sibling send already on the wire.
	var g errgroup.Group
	for _, team := range board.Teams() {
		addr, ok := cfg.Recipient(team)
		if !ok {
			log.Warn("no recipient configured, skipping", slog.String("team", string(team)))
			continue
		}
		if len(digest[team]) == 0 {
			log.Info("no bugs for team, skipping", slog.String("team", string(team)))
			continue
		}
		g.Go(func() error {
			if err := sender.Send(ctx, addr, subject, body); err != nil {
				log.Error("digest send failed", slog.String("team", string(team)), slog.Any("error", err))
				return err
			}
			log.Info("digest sent", slog.String("team", string(team)), slog.String("to", addr))
			return nil
		})
	}
	return g.Wait()
}
