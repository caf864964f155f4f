// Package fs provides file-based checkpoint storage.
package fs

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/govmap"
)

// DefaultInterval is the default number of pages between checkpoints.
const DefaultInterval = 100

// checkpointTimeLayout is the sortable timestamp embedded in names.
const checkpointTimeLayout = "20060102_150405"

// Ensure CheckpointStore implements govmap.CheckpointStore at compile time.
var _ govmap.CheckpointStore = (*CheckpointStore)(nil)

// CheckpointStore persists crawl state as JSON files named
// checkpoint_<YYYYMMDD_HHMMSS>.json in a directory.
type CheckpointStore struct {
	dir      string
	interval int
	logger   *slog.Logger

	pagesSinceCheckpoint int

	// now is swappable for tests.
	now func() time.Time
}

// Option configures a CheckpointStore.
type Option func(*CheckpointStore)

// WithInterval sets the number of pages between checkpoints.
// Defaults to DefaultInterval (100).
func WithInterval(pages int) Option {
	return func(s *CheckpointStore) {
		s.interval = pages
	}
}

// WithLogger sets the logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(s *CheckpointStore) {
		s.logger = logger
	}
}

// WithClock sets the time source used for checkpoint names.
func WithClock(now func() time.Time) Option {
	return func(s *CheckpointStore) {
		s.now = now
	}
}

// NewCheckpointStore creates a store writing to dir.
func NewCheckpointStore(dir string, opts ...Option) *CheckpointStore {
	s := &CheckpointStore{
		dir:      dir,
		interval: DefaultInterval,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save serializes the state under a timestamp-derived name and returns
// that name.
func (s *CheckpointStore) Save(ctx context.Context, state *govmap.CrawlState) (string, error) {
	now := s.now()
	name := "checkpoint_" + now.Format(checkpointTimeLayout)

	checkpoint := &govmap.Checkpoint{
		CreatedAt: now,
		State:     state,
		Metadata: govmap.CheckpointMetadata{
			PagesProcessed:  state.Metadata.TotalPages,
			SectionsCovered: state.Metadata.SectionsCovered,
		},
	}

	data, err := json.MarshalIndent(checkpoint, "", "  ")
	if err != nil {
		return "", govmap.Errorf(govmap.EINTERNAL, "marshal checkpoint: %v", err)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(s.path(name), data, 0644); err != nil {
		return "", err
	}

	s.logger.Info("checkpoint saved", "name", name)
	s.pagesSinceCheckpoint = 0
	return name, nil
}

// Load restores a checkpoint by name.
// Returns ENOTFOUND if no checkpoint with that name exists.
func (s *CheckpointStore) Load(ctx context.Context, name string) (*govmap.Checkpoint, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, govmap.Errorf(govmap.ENOTFOUND, "checkpoint %q not found", name)
		}
		return nil, err
	}

	var checkpoint govmap.Checkpoint
	if err := json.Unmarshal(data, &checkpoint); err != nil {
		return nil, govmap.Errorf(govmap.EINVALID, "invalid checkpoint %q: %v", name, err)
	}

	s.logger.Info("checkpoint loaded", "name", name)
	return &checkpoint, nil
}

// Sweep deletes checkpoints whose embedded timestamp is older than
// maxAge. Files whose names don't parse are skipped with a warning.
func (s *CheckpointStore) Sweep(ctx context.Context, maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	cutoff := s.now().Add(-maxAge)
	removed := 0

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "checkpoint_") || !strings.HasSuffix(name, ".json") {
			continue
		}

		stamp := strings.TrimSuffix(strings.TrimPrefix(name, "checkpoint_"), ".json")
		created, err := time.ParseInLocation(checkpointTimeLayout, stamp, time.Local)
		if err != nil {
			s.logger.Warn("skipping unparsable checkpoint name", "name", name)
			continue
		}

		if created.Before(cutoff) {
			if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
				s.logger.Warn("failed to remove old checkpoint", "name", name, "err", err)
				continue
			}
			s.logger.Info("removed old checkpoint", "name", name)
			removed++
		}
	}
	return removed, nil
}

// List returns the available checkpoint names, oldest first. The
// timestamp-embedding name format makes lexical order chronological.
func (s *CheckpointStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, "checkpoint_") && strings.HasSuffix(name, ".json") {
			names = append(names, strings.TrimSuffix(name, ".json"))
		}
	}
	return names, nil
}

// ShouldCheckpoint accumulates pagesProcessed and reports whether the
// cumulative count has reached the interval. The counter resets to zero
// in the same call that returns true.
func (s *CheckpointStore) ShouldCheckpoint(pagesProcessed int) bool {
	s.pagesSinceCheckpoint += pagesProcessed
	if s.pagesSinceCheckpoint >= s.interval {
		s.pagesSinceCheckpoint = 0
		return true
	}
	return false
}

func (s *CheckpointStore) path(name string) string {
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	return filepath.Join(s.dir, name)
}
