package mock

import (
	"context"
	"time"

	"github.com/fwojciec/govmap"
)

var _ govmap.CheckpointStore = (*CheckpointStore)(nil)

// CheckpointStore is a mock implementation of govmap.CheckpointStore.
type CheckpointStore struct {
	SaveFn             func(ctx context.Context, state *govmap.CrawlState) (string, error)
	LoadFn             func(ctx context.Context, name string) (*govmap.Checkpoint, error)
	SweepFn            func(ctx context.Context, maxAge time.Duration) (int, error)
	ShouldCheckpointFn func(pagesProcessed int) bool
}

func (s *CheckpointStore) Save(ctx context.Context, state *govmap.CrawlState) (string, error) {
	return s.SaveFn(ctx, state)
}

func (s *CheckpointStore) Load(ctx context.Context, name string) (*govmap.Checkpoint, error) {
	return s.LoadFn(ctx, name)
}

func (s *CheckpointStore) Sweep(ctx context.Context, maxAge time.Duration) (int, error) {
	return s.SweepFn(ctx, maxAge)
}

func (s *CheckpointStore) ShouldCheckpoint(pagesProcessed int) bool {
	if s.ShouldCheckpointFn == nil {
		return false
	}
	return s.ShouldCheckpointFn(pagesProcessed)
}
