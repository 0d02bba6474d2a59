package engine

import (
	"sort"

	"bugdesk/internal/board"
)

// Reorder returns the tab sorted by priority ascending (lower value = more
// urgent). The sort is stable: equal priorities keep their relative order,
// and unranked records land after all ranked ones in their original order.
// No record is created, duplicated, or dropped.
func Reorder(tab board.Tab) board.Tab {
	out := tab.Clone()
	sort.SliceStable(out.Records, func(i, j int) bool {
		a, b := out.Records[i], out.Records[j]
		switch {
		case a.Ranked() && b.Ranked():
			return a.Priority < b.Priority
		case a.Ranked():
			return true
		default:
			return false
		}
	})
	return out
}
