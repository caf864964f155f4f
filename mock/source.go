// Package mock provides function-field mock implementations of govmap
// interfaces for testing.
package mock

import (
	"context"

	"github.com/fwojciec/govmap"
)

var _ govmap.ContentSource = (*ContentSource)(nil)

// ContentSource is a mock implementation of govmap.ContentSource.
type ContentSource struct {
	GetContentFn func(ctx context.Context, path string) (*govmap.ContentRecord, error)
}

func (s *ContentSource) GetContent(ctx context.Context, path string) (*govmap.ContentRecord, error) {
	return s.GetContentFn(ctx, path)
}

var _ govmap.Limiter = (*Limiter)(nil)

// Limiter is a mock implementation of govmap.Limiter.
// A zero Limiter never waits.
type Limiter struct {
	WaitFn func(ctx context.Context) error
}

func (l *Limiter) Wait(ctx context.Context) error {
	if l.WaitFn == nil {
		return nil
	}
	return l.WaitFn(ctx)
}
