package engine

import "bugdesk/internal/board"

// Purge removes completed records from a single tab. A record is completed
// when the store adapter derived Done from the completion-marker highlight;
// marker text is never consulted. Survivors keep their relative order.
//
// The marker column is added to the tab header when absent so the written
// workbook always carries it; row data is not touched by that.
//
// Purge is per tab on purpose: a record marked done in one tab stays in
// every other tab unless independently marked there.
func Purge(tab board.Tab, rep *Report) board.Tab {
	out := tab.Clone()
	if !out.HasColumn(board.MarkerColumn) {
		out.Columns = append(out.Columns, board.MarkerColumn)
	}

	kept := out.Records[:0]
	for _, r := range out.Records {
		if r.Done {
			rep.Purged[out.Name]++
			continue
		}
		kept = append(kept, r)
	}
	out.Records = kept
	return out
}
