// Package board defines the in-memory model of the bug worklist: defect
// records, named tabs, and the four-tab store contract (one intake tab,
// three team tabs).
//
// This package has no knowledge of workbook files, spreadsheets, or any
// other backing representation. Adapters map their storage into these
// types; the engine package operates on them.
package board

import "strings"

// Team is a defect-handling group tag.
type Team string

const (
	Unassigned Team = ""
	GL         Team = "GL"
	NT         Team = "NT"
	PP         Team = "PP"
)

// Teams returns the three team tags in their canonical (tie-break) order.
func Teams() []Team {
	return []Team{GL, NT, PP}
}

// ParseTeam maps a cell value to a Team. Unknown or empty values are
// Unassigned; matching is case-insensitive and whitespace-tolerant.
func ParseTeam(s string) Team {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "GL":
		return GL
	case "NT":
		return NT
	case "PP":
		return PP
	}
	return Unassigned
}

// Priority bounds. UnrankedPriority marks a record that has not been
// ranked yet; unranked records sort after all ranked ones.
const (
	UnrankedPriority = 0
	MinPriority      = 1
	MaxPriority      = 100
)

// Cell is one opaque column value carried verbatim through the pipeline.
// Fill is the cell's background color in ARGB hex ("" = no fill).
type Cell struct {
	Column string `json:"column"`
	Value  string `json:"value"`
	Fill   string `json:"fill,omitempty"`
}

// Record is one defect. ID, Priority, FailureMode, and Assignment are the
// columns the engine understands; everything else rides along in Fields in
// source column order. Done is derived from the completion-marker cell's
// highlight by the store adapter, never from cell text.
type Record struct {
	ID          string `json:"id"`
	Priority    int    `json:"priority"`
	FailureMode string `json:"failure_mode"`
	Assignment  Team   `json:"assignment"`
	Done        bool   `json:"done,omitempty"`
	Fields      []Cell `json:"fields,omitempty"`
}

// Ranked reports whether the record carries a usable priority.
func (r Record) Ranked() bool {
	return r.Priority >= MinPriority && r.Priority <= MaxPriority
}

// Field returns the opaque cell for the named column.
func (r Record) Field(column string) (Cell, bool) {
	for _, c := range r.Fields {
		if c.Column == column {
			return c, true
		}
	}
	return Cell{}, false
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	out := r
	if r.Fields != nil {
		out.Fields = make([]Cell, len(r.Fields))
		copy(out.Fields, r.Fields)
	}
	return out
}
