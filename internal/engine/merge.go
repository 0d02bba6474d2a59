package engine

import (
	"fmt"

	"bugdesk/internal/board"
)

// Merge reconciles freshly scraped source records against the intake tab.
// Source records with an unseen ID are appended; records whose ID already
// exists refresh only that record's priority (the source is authoritative
// for priority day to day, nothing else). A source row that carries no
// priority says nothing about rank and leaves the existing one alone.
// Source rows without an ID or with a priority outside [1,100] are skipped
// and named in the report.
//
// Merge never touches team tabs and never removes a record.
func Merge(intake board.Tab, source []board.Record, rep *Report) board.Tab {
	out := intake.Clone()
	for i, src := range source {
		if src.ID == "" {
			rep.skip(&board.InvalidRecordError{Row: i + 1, Reason: "missing id"})
			continue
		}
		if src.Priority != board.UnrankedPriority && !src.Ranked() {
			rep.skip(&board.InvalidRecordError{
				Row:    i + 1,
				ID:     src.ID,
				Reason: fmt.Sprintf("priority %d out of range [%d,%d]", src.Priority, board.MinPriority, board.MaxPriority),
			})
			continue
		}
		if j := indexByID(out.Records, src.ID); j >= 0 {
			if src.Ranked() && out.Records[j].Priority != src.Priority {
				out.Records[j].Priority = src.Priority
				rep.Updated++
			}
			continue
		}
		out.Records = append(out.Records, src.Clone())
		rep.Added++
	}
	return out
}

func indexByID(records []board.Record, id string) int {
	for i, r := range records {
		if r.ID == id {
			return i
		}
	}
	return -1
}
