package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/govmap"
)

// Ensure LoggingCheckpointStore implements govmap.CheckpointStore.
var _ govmap.CheckpointStore = (*LoggingCheckpointStore)(nil)

// LoggingCheckpointStore wraps a CheckpointStore with save/load/sweep
// logging.
type LoggingCheckpointStore struct {
	next   govmap.CheckpointStore
	logger *slog.Logger
}

// NewLoggingCheckpointStore creates a logging decorator around a
// CheckpointStore.
func NewLoggingCheckpointStore(next govmap.CheckpointStore, logger *slog.Logger) *LoggingCheckpointStore {
	return &LoggingCheckpointStore{next: next, logger: logger}
}

// Save delegates and logs the persisted checkpoint name.
func (s *LoggingCheckpointStore) Save(ctx context.Context, state *govmap.CrawlState) (string, error) {
	name, err := s.next.Save(ctx, state)
	if err != nil {
		s.logger.Warn("checkpoint save", "err", govmap.ErrorMessage(err))
		return "", err
	}
	s.logger.Info("checkpoint save",
		"name", name,
		"pages", state.Metadata.TotalPages,
		"sections", state.Metadata.SectionsCovered,
	)
	return name, nil
}

// Load delegates and logs the restore.
func (s *LoggingCheckpointStore) Load(ctx context.Context, name string) (*govmap.Checkpoint, error) {
	checkpoint, err := s.next.Load(ctx, name)
	if err != nil {
		s.logger.Warn("checkpoint load", "name", name, "code", govmap.ErrorCode(err))
		return nil, err
	}
	s.logger.Info("checkpoint load",
		"name", name,
		"pages", checkpoint.Metadata.PagesProcessed,
	)
	return checkpoint, nil
}

// Sweep delegates and logs how many checkpoints were removed.
func (s *LoggingCheckpointStore) Sweep(ctx context.Context, maxAge time.Duration) (int, error) {
	removed, err := s.next.Sweep(ctx, maxAge)
	if err != nil {
		return 0, err
	}
	s.logger.Info("checkpoint sweep", "removed", removed, "max_age", maxAge)
	return removed, nil
}

// ShouldCheckpoint delegates without logging; it runs on every page.
func (s *LoggingCheckpointStore) ShouldCheckpoint(pagesProcessed int) bool {
	return s.next.ShouldCheckpoint(pagesProcessed)
}
