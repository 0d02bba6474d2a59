package engine

import (
	"strings"

	"bugdesk/internal/board"
)

// rules is the classifier dispatch table, evaluated in declaration order.
// When a failure mode matches keywords from more than one set, the earlier
// entry wins, so the order GL, NT, PP is the tie-break contract.
var rules = []struct {
	team     board.Team
	keywords []string
}{
	{board.GL, []string{"graphics", "display", "render", "gpu"}},
	{board.NT, []string{"network", "connectivity", "wifi", "ethernet"}},
	{board.PP, []string{"power", "performance", "battery", "thermal"}},
}

// Classify maps a failure-mode text to a team by case-insensitive substring
// match. No match returns Unassigned; there is no default team, so a record
// nobody's keywords claim stays on the intake tab until a human tags it.
func Classify(failureMode string) board.Team {
	mode := strings.ToLower(failureMode)
	for _, rule := range rules {
		for _, kw := range rule.keywords {
			if strings.Contains(mode, kw) {
				return rule.team
			}
		}
	}
	return board.Unassigned
}

// Assign runs the classifier over a tab. Only records without an assignment
// are touched unless reclassify is set; a manual team choice is never
// silently overwritten, and an Unassigned classifier verdict never clears
// one either.
func Assign(tab board.Tab, reclassify bool, rep *Report) board.Tab {
	out := tab.Clone()
	for i, r := range out.Records {
		if r.Assignment != board.Unassigned && !reclassify {
			continue
		}
		team := Classify(r.FailureMode)
		if team == board.Unassigned || team == r.Assignment {
			continue
		}
		out.Records[i].Assignment = team
		rep.Classified++
	}
	return out
}
