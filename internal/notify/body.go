// Package notify renders and delivers the daily digest. The engine hands
// over structured top-N-per-team data; this package turns it into the HTML
// the teams receive and pushes it over SMTP.
package notify

import (
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	"bugdesk/internal/board"
)

// SubjectPrefix matches the long-standing digest subject line; the date is
// appended per send.
const SubjectPrefix = "Daily Top Bugs Ready For You to Start"

// Subject returns the digest subject for the given day.
func Subject(day time.Time) string {
	return fmt.Sprintf("%s - %s", SubjectPrefix, day.Format("2006-01-02"))
}

var bodyTmpl = template.Must(template.New("digest").Parse(`<html>
<body>
<h2>Daily Top Bugs Assignment</h2>
<p>Please review your assigned bugs below. You can click on rows you don't
want and click to 'empty' (on manual click, the bug stays only in the Daily
New tab).</p>
{{range .Sections}}<h3>{{.Team}} Team Bugs:</h3>
<table border='1' style='border-collapse: collapse;'>
<tr><th>Bug ID</th><th>Priority</th><th>Title</th><th>Failure Mode</th></tr>
{{range .Rows}}<tr><td>{{.ID}}</td><td>{{.Priority}}</td><td>{{.Title}}</td><td>{{.FailureMode}}</td></tr>
{{end}}</table><br>
{{end}}</body>
</html>
`))

type bodyRow struct {
	ID          string
	Priority    string
	Title       string
	FailureMode string
}

type bodySection struct {
	Team board.Team
	Rows []bodyRow
}

// Body renders the digest HTML. Teams come out in canonical order; teams
// with no records are omitted, like the original daily mail.
func Body(digest map[board.Team][]board.Record) (string, error) {
	var sections []bodySection
	for _, team := range board.Teams() {
		records := digest[team]
		if len(records) == 0 {
			continue
		}
		sec := bodySection{Team: team}
		for _, r := range records {
			row := bodyRow{ID: r.ID, FailureMode: r.FailureMode}
			if r.Ranked() {
				row.Priority = fmt.Sprintf("%d", r.Priority)
			}
			if c, ok := r.Field("Title"); ok {
				row.Title = c.Value
			}
			sec.Rows = append(sec.Rows, row)
		}
		sections = append(sections, sec)
	}

	var b strings.Builder
	if err := bodyTmpl.Execute(&b, struct{ Sections []bodySection }{sections}); err != nil {
		return "", fmt.Errorf("notify: render digest: %w", err)
	}
	return b.String(), nil
}

// MailtoLink builds a mailto: fallback carrying the digest as plain text,
// for runs without SMTP credentials.
func MailtoLink(recipients []string, subject string, digest map[board.Team][]board.Record) string {
	var b strings.Builder
	for _, team := range board.Teams() {
		records := digest[team]
		if len(records) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s Team Bugs:\n", team)
		for _, r := range records {
			fmt.Fprintf(&b, "  %s (priority %d) %s\n", r.ID, r.Priority, r.FailureMode)
		}
		b.WriteString("\n")
	}
	return fmt.Sprintf("mailto:%s?subject=%s&body=%s",
		strings.Join(recipients, ","),
		url.QueryEscape(subject),
		url.QueryEscape(b.String()))
}
