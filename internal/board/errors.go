package board

import "fmt"

// MissingTabError reports a required tab absent from the store. Structural:
// the run aborts before any mutation.
type MissingTabError struct {
	Name string
}

func (e *MissingTabError) Error() string {
	return fmt.Sprintf("board: required tab %q missing", e.Name)
}

// InvalidRecordError reports a source row the engine declines to process
// (missing ID, unparsable priority). Collected per stage and surfaced in
// the run report; never aborts the run.
type InvalidRecordError struct {
	Row    int    // 1-based position in the source feed
	ID     string // may be empty, that being the problem
	Reason string
}

func (e *InvalidRecordError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("board: source row %d: %s", e.Row, e.Reason)
	}
	return fmt.Sprintf("board: source row %d (%s): %s", e.Row, e.ID, e.Reason)
}

// AssignmentConflict reports a record whose ID appears in a team tab that
// does not match its current assignment. Warning only: the record stays
// where it was and is not copied again.
type AssignmentConflict struct {
	ID       string
	Assigned Team
	FoundIn  string // tab name holding the stray copy
}

func (e *AssignmentConflict) Error() string {
	return fmt.Sprintf("board: record %s assigned %s but present in tab %q", e.ID, e.Assigned, e.FoundIn)
}
