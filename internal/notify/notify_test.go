package notify

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"bugdesk/internal/board"
	"bugdesk/internal/config"
)

func sampleDigest() map[board.Team][]board.Record {
	return map[board.Team][]board.Record{
		board.GL: {
			{ID: "B1", Priority: 2, FailureMode: "gpu hang",
				Fields: []board.Cell{{Column: "Title", Value: "tearing <on> resume"}}},
		},
		board.NT: {{ID: "B7", Priority: 12, FailureMode: "wifi drop"}},
		board.PP: {},
	}
}

func TestSubject(t *testing.T) {
	day := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	want := "Daily Top Bugs Ready For You to Start - 2026-08-27"
	if got := Subject(day); got != want {
		t.Errorf("Subject = %q, want %q", got, want)
	}
}

func TestBody(t *testing.T) {
	body, err := Body(sampleDigest())
	if err != nil {
		t.Fatalf("Body: %v", err)
	}
	if !strings.Contains(body, "GL Team Bugs:") || !strings.Contains(body, "NT Team Bugs:") {
		t.Error("team sections missing")
	}
	if strings.Contains(body, "PP Team Bugs:") {
		t.Error("empty team should be omitted")
	}
	if !strings.Contains(body, "B7") || !strings.Contains(body, "wifi drop") {
		t.Error("NT row content missing")
	}
	if !strings.Contains(body, "tearing &lt;on&gt; resume") {
		t.Error("title not HTML-escaped")
	}
	// GL precedes NT in the rendered order.
	if strings.Index(body, "GL Team Bugs:") > strings.Index(body, "NT Team Bugs:") {
		t.Error("teams out of canonical order")
	}
}

func TestMailtoLink(t *testing.T) {
	link := MailtoLink([]string{"a@x.com", "b@x.com"}, "Subject Line", sampleDigest())
	if !strings.HasPrefix(link, "mailto:a@x.com,b@x.com?") {
		t.Errorf("link prefix wrong: %s", link)
	}
	if !strings.Contains(link, "subject=Subject+Line") {
		t.Errorf("subject not encoded: %s", link)
	}
	if !strings.Contains(link, "B7") {
		t.Errorf("digest content missing: %s", link)
	}
}

type fakeSender struct {
	mu   sync.Mutex
	sent map[string]string // to → subject
	fail map[string]bool
}

func (f *fakeSender) Send(_ context.Context, to, subject, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail[to] {
		return errors.New("boom")
	}
	if f.sent == nil {
		f.sent = make(map[string]string)
	}
	f.sent[to] = subject
	return nil
}

func deliverConfig() *config.Config {
	cfg := config.Default()
	cfg.Email.Teams = map[string]string{
		"GL": "geetha@example.com",
		"NT": "nicolas@example.com",
		"PP": "phuong@example.com",
	}
	return cfg
}

func TestDeliver_SendsPerTeamWithRecords(t *testing.T) {
	f := &fakeSender{}
	day := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)

	if err := Deliver(context.Background(), f, deliverConfig(), sampleDigest(), day); err != nil {
		t.Fatalf("Deliver: %v", err)
	}

	if len(f.sent) != 2 {
		t.Fatalf("sent to %d recipients, want 2 (PP digest empty): %v", len(f.sent), f.sent)
	}
	if _, ok := f.sent["phuong@example.com"]; ok {
		t.Error("PP has no bugs and should not be mailed")
	}
	if subj := f.sent["nicolas@example.com"]; !strings.HasSuffix(subj, "2026-08-27") {
		t.Errorf("subject = %q", subj)
	}
}

func TestDeliver_OneFailureDoesNotStopOthers(t *testing.T) {
	f := &fakeSender{fail: map[string]bool{"geetha@example.com": true}}
	day := time.Now()

	err := Deliver(context.Background(), f, deliverConfig(), sampleDigest(), day)
	if err == nil {
		t.Fatal("Deliver should surface the failed send")
	}
	if _, ok := f.sent["nicolas@example.com"]; !ok {
		t.Error("healthy team send should still have gone out")
	}
}

// ctxSender behaves like a real SMTP client: a send observes the context
// it was handed and aborts when that context is cancelled.
type ctxSender struct {
	fakeSender
	failAddr string
}

func (c *ctxSender) Send(ctx context.Context, to, subject, body string) error {
	if to == c.failAddr {
		return errors.New("boom")
	}
	// Let the failing sibling finish first so any cancellation it could
	// cause would be visible here.
	time.Sleep(20 * time.Millisecond)
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.fakeSender.Send(ctx, to, subject, body)
}

func TestDeliver_FailureDoesNotCancelSiblingSend(t *testing.T) {
	f := &ctxSender{failAddr: "geetha@example.com"}
	day := time.Now()

	err := Deliver(context.Background(), f, deliverConfig(), sampleDigest(), day)
	if err == nil {
		t.Fatal("Deliver should surface the failed send")
	}
	if errors.Is(err, context.Canceled) {
		t.Fatal("sibling send was cancelled by the failed one")
	}
	if _, ok := f.sent["nicolas@example.com"]; !ok {
		t.Error("in-flight sibling send should complete despite the failure")
	}
}

func TestDeliver_SkipsUnconfiguredTeam(t *testing.T) {
	cfg := deliverConfig()
	delete(cfg.Email.Teams, "NT")
	f := &fakeSender{}

	if err := Deliver(context.Background(), f, cfg, sampleDigest(), time.Now()); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if _, ok := f.sent["nicolas@example.com"]; ok {
		t.Error("unconfigured team must be skipped, not guessed")
	}
}
