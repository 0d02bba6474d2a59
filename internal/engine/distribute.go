package engine

import "bugdesk/internal/board"

// Distribute replicates assigned intake records into their team tabs.
// A copy is appended only when the team tab does not already hold the ID,
// so re-running is a no-op. Intake remains the durable master list: nothing
// is ever moved out of it, and nothing already in a team tab is removed.
//
// A record whose ID turns up in a different team's tab than its assignment
// is reported as a conflict and left where it is, not duplicated.
func Distribute(s *board.Store, rep *Report) error {
	intake, err := s.Tab(board.IntakeTab)
	if err != nil {
		return err
	}

	tabs := make(map[board.Team]board.Tab, len(board.Teams()))
	for _, team := range board.Teams() {
		t, err := s.Tab(board.TeamTabName(team))
		if err != nil {
			return err
		}
		tabs[team] = t
	}

	for _, r := range intake.Records {
		if r.Assignment == board.Unassigned {
			continue
		}
		if stray := strayTab(tabs, r); stray != "" {
			rep.conflict(&board.AssignmentConflict{
				ID:       r.ID,
				Assigned: r.Assignment,
				FoundIn:  stray,
			})
			continue
		}
		dst := tabs[r.Assignment]
		if dst.Contains(r.ID) {
			continue
		}
		for _, c := range r.Fields {
			if !dst.HasColumn(c.Column) {
				dst.Columns = append(dst.Columns, c.Column)
			}
		}
		dst.Records = append(dst.Records, r.Clone())
		tabs[r.Assignment] = dst
		rep.Distributed[r.Assignment]++
	}

	for _, team := range board.Teams() {
		s.SetTab(tabs[team])
	}
	return nil
}

// strayTab returns the name of a team tab holding r despite a different
// assignment, or "" when there is none. Checked in canonical team order so
// the reported tab is deterministic.
func strayTab(tabs map[board.Team]board.Tab, r board.Record) string {
	for _, team := range board.Teams() {
		if team != r.Assignment && tabs[team].Contains(r.ID) {
			return tabs[team].Name
		}
	}
	return ""
}
