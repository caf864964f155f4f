// Package slog provides logging decorators for govmap services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/govmap"
)

// Ensure LoggingSource implements govmap.ContentSource.
var _ govmap.ContentSource = (*LoggingSource)(nil)

// LoggingSource wraps a ContentSource with per-fetch debug logging.
type LoggingSource struct {
	next   govmap.ContentSource
	logger *slog.Logger
}

// NewLoggingSource creates a logging decorator around a ContentSource.
func NewLoggingSource(next govmap.ContentSource, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// GetContent delegates to the wrapped source and logs the outcome.
func (s *LoggingSource) GetContent(ctx context.Context, path string) (*govmap.ContentRecord, error) {
	start := time.Now()
	rec, err := s.next.GetContent(ctx, path)
	duration := time.Since(start)

	if err != nil {
		s.logger.Warn("fetch",
			"path", path,
			"duration", duration,
			"code", govmap.ErrorCode(err),
			"err", govmap.ErrorMessage(err),
		)
		return nil, err
	}

	s.logger.Debug("fetch",
		"path", path,
		"duration", duration,
		"type", rec.DocumentType,
	)
	return rec, nil
}
