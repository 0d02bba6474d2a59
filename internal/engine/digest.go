package engine

import "bugdesk/internal/board"

// DigestSize is how many records per team the daily digest carries.
const DigestSize = 25

// Digest returns the top entries of each team tab in tab order, which after
// a run is priority order, most urgent first. Tabs shorter than size yield
// what they have. Pure read; the store is not touched.
func Digest(s *board.Store, size int) (map[board.Team][]board.Record, error) {
	if size <= 0 {
		size = DigestSize
	}
	out := make(map[board.Team][]board.Record, len(board.Teams()))
	for _, team := range board.Teams() {
		tab, err := s.Tab(board.TeamTabName(team))
		if err != nil {
			return nil, err
		}
		n := min(size, len(tab.Records))
		top := make([]board.Record, 0, n)
		for _, r := range tab.Records[:n] {
			top = append(top, r.Clone())
		}
		out[team] = top
	}
	return out, nil
}
