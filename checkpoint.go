package govmap

import (
	"context"
	"time"
)

// Checkpoint is a durable snapshot of crawl state.
type Checkpoint struct {
	CreatedAt time.Time          `json:"timestamp"`
	State     *CrawlState        `json:"state"`
	Metadata  CheckpointMetadata `json:"metadata"`
}

// CheckpointMetadata summarizes a checkpoint without loading its state.
type CheckpointMetadata struct {
	PagesProcessed  int `json:"pages_processed"`
	SectionsCovered int `json:"sections_covered"`
}

// CheckpointStore saves and restores crawl state.
//
// Checkpoints are identified by a name embedding a sortable timestamp
// in the pattern checkpoint_<YYYYMMDD_HHMMSS>.
type CheckpointStore interface {
	// Save persists the state and returns the checkpoint name.
	Save(ctx context.Context, state *CrawlState) (string, error)

	// Load restores a checkpoint by name.
	// Returns ENOTFOUND if no checkpoint with that name exists.
	Load(ctx context.Context, name string) (*Checkpoint, error)

	// Sweep deletes checkpoints older than maxAge and returns how many
	// were removed. Unparsable names are skipped, never fatal.
	Sweep(ctx context.Context, maxAge time.Duration) (int, error)

	// ShouldCheckpoint accumulates pagesProcessed into a running
	// counter and reports whether the configured interval has been
	// reached. When it returns true the counter resets to zero in the
	// same call.
	ShouldCheckpoint(pagesProcessed int) bool
}
