package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/govmap/fs"
)

// Run executes the sweep command: delete checkpoints older than the
// given age.
func (c *SweepCmd) Run(deps *Dependencies) error {
	maxAge, err := time.ParseDuration(c.MaxAge)
	if err != nil {
		return fmt.Errorf("invalid max age %q: %w", c.MaxAge, err)
	}

	store := fs.NewCheckpointStore(deps.CheckpointDir, fs.WithLogger(deps.Logger))
	removed, err := store.Sweep(deps.Ctx, maxAge)
	if err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Removed %d checkpoint(s) older than %s\n", removed, maxAge)
	return nil
}
