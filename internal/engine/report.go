// Package engine implements the bug lifecycle pipeline: merge newly scraped
// defects into the intake tab, classify them onto teams, keep every tab in
// priority order, replicate assigned defects into team tabs, purge completed
// ones, and extract the per-team digest.
//
// Stages are pure over an explicit board.Store snapshot and run strictly
// sequentially; a second run over an unchanged store is a no-op.
package engine

import (
	"fmt"
	"strings"

	"bugdesk/internal/board"
)

// Report collects everything a run declined to process plus per-stage
// counters. Individual bad rows never abort a run; they are named here.
type Report struct {
	// Skipped holds source rows rejected by validation (missing ID,
	// priority out of range). Order follows the source feed.
	Skipped []*board.InvalidRecordError

	// Conflicts holds records found in a team tab that does not match
	// their assignment. Warnings; the stray copy is left alone.
	Conflicts []*board.AssignmentConflict

	Added      int // records appended to intake by merge
	Updated    int // existing intake records whose priority was refreshed
	Classified int // records the classifier assigned this run

	Distributed map[board.Team]int // copies appended per team tab
	Purged      map[string]int     // records removed per tab
}

// NewReport returns an empty report with counters initialized.
func NewReport() *Report {
	return &Report{
		Distributed: make(map[board.Team]int),
		Purged:      make(map[string]int),
	}
}

func (r *Report) skip(e *board.InvalidRecordError) {
	r.Skipped = append(r.Skipped, e)
}

func (r *Report) conflict(e *board.AssignmentConflict) {
	r.Conflicts = append(r.Conflicts, e)
}

// HasIssues reports whether anything was skipped or conflicted.
func (r *Report) HasIssues() bool {
	return len(r.Skipped) > 0 || len(r.Conflicts) > 0
}

// Summary renders a short human-readable run summary, one line per fact.
func (r *Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "merged: %d new, %d updated\n", r.Added, r.Updated)
	fmt.Fprintf(&b, "classified: %d\n", r.Classified)
	for _, team := range board.Teams() {
		if n := r.Distributed[team]; n > 0 {
			fmt.Fprintf(&b, "distributed to %s: %d\n", team, n)
		}
	}
	for _, name := range board.RequiredTabs() {
		if n := r.Purged[name]; n > 0 {
			fmt.Fprintf(&b, "purged from %s: %d\n", name, n)
		}
	}
	for _, e := range r.Skipped {
		fmt.Fprintf(&b, "skipped: %v\n", e)
	}
	for _, e := range r.Conflicts {
		fmt.Fprintf(&b, "conflict: %v\n", e)
	}
	return b.String()
}
