package engine

import (
	"log/slog"

	"bugdesk/internal/board"
	"bugdesk/internal/logging"
)

// Options tunes a pipeline run.
type Options struct {
	// Reclassify re-runs the classifier over already-assigned records.
	// Off by default: manual team choices stand.
	Reclassify bool
}

// Run executes one full pipeline pass over the store:
//
//	merge → assign → reorder(intake) → distribute → reorder(teams) → purge(all)
//
// The store is mutated in place, stage by stage; on error it is left at the
// last completed stage's output and the caller decides whether to persist.
// Structural faults (missing tab) abort before any mutation; bad source
// rows and assignment conflicts land in the returned report instead.
//
// Running twice with an empty source feed leaves the store unchanged.
func Run(s *board.Store, source []board.Record, opts Options) (*Report, error) {
	log := logging.New("engine")
	rep := NewReport()

	if err := s.Validate(); err != nil {
		return rep, err
	}

	intake, err := s.Tab(board.IntakeTab)
	if err != nil {
		return rep, err
	}

	intake = Merge(intake, source, rep)
	log.Info("merge done", slog.Int("added", rep.Added), slog.Int("updated", rep.Updated), slog.Int("skipped", len(rep.Skipped)))

	intake = Assign(intake, opts.Reclassify, rep)
	log.Info("assign done", slog.Int("classified", rep.Classified))

	intake = Reorder(intake)
	s.SetTab(intake)

	if err := Distribute(s, rep); err != nil {
		return rep, err
	}
	log.Info("distribute done", slog.Int("conflicts", len(rep.Conflicts)))

	for _, team := range board.Teams() {
		tab, err := s.Tab(board.TeamTabName(team))
		if err != nil {
			return rep, err
		}
		s.SetTab(Reorder(tab))
	}

	for _, name := range board.RequiredTabs() {
		tab, err := s.Tab(name)
		if err != nil {
			return rep, err
		}
		s.SetTab(Purge(tab, rep))
	}
	log.Info("purge done", slog.Any("purged", rep.Purged))

	return rep, nil
}
