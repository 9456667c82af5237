package worker

import (
	"context"
	"time"

	"github.com/collegeconnect/suggester-backend/internal/repository"
	"github.com/collegeconnect/suggester-backend/internal/service"
	"github.com/rs/zerolog"
)

// SnapshotWorker keeps the in-memory cutoff snapshot in sync with
// Postgres. It polls the table version on an interval and triggers a
// rebuild only when the version drifts, so out-of-band writes (another
// instance's import, a manual fix-up) reach the engine without a
// restart.
type SnapshotWorker struct {
	cutoffRepo  repository.CutoffRepository
	suggestions service.SuggestionService
	interval    time.Duration
	log         zerolog.Logger
}

func NewSnapshotWorker(
	cutoffRepo repository.CutoffRepository,
	suggestions service.SuggestionService,
	interval time.Duration,
	log zerolog.Logger,
) *SnapshotWorker {
	return &SnapshotWorker{
		cutoffRepo:  cutoffRepo,
		suggestions: suggestions,
		interval:    interval,
		log:         log.With().Str("component", "snapshot_worker").Logger(),
	}
}

func (w *SnapshotWorker) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("SnapshotWorker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested")
			return
		case <-ticker.C:
			w.checkOnce(ctx)
		}
	}
}

func (w *SnapshotWorker) checkOnce(ctx context.Context) {
	stored, err := w.cutoffRepo.Version(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.log.Error().Err(err).Msg("Version check failed")
		}
		return
	}

	active := w.suggestions.SnapshotVersion()
	if stored == active {
		return
	}

	w.log.Info().
		Str("active", active).
		Str("stored", stored).
		Msg("Snapshot version drift, rebuilding")

	if err := w.suggestions.Rebuild(ctx); err != nil {
		// Keep serving the stale snapshot; the next tick retries.
		w.log.Error().Err(err).Msg("Snapshot rebuild failed")
	}
}
