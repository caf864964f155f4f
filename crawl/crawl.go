// Package crawl orchestrates depth-bounded traversal of the content
// graph. It coordinates the frontier, rate limiter, content source,
// progress tracker and checkpoint store.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/fwojciec/govmap"
)

// Default engine settings.
const (
	DefaultMaxDepth  = 5
	DefaultBatchSize = 10
)

// Crawler walks the content graph one node at a time: dequeue, rate
// limit, fetch, classify, record, expand. Processing is single-threaded
// and cooperative; the only blocking points are the limiter and the
// content source's own network call.
type Crawler struct {
	Source      govmap.ContentSource
	Limiter     govmap.Limiter
	Frontier    govmap.Frontier
	Checkpoints govmap.CheckpointStore
	Progress    govmap.ProgressTracker

	// MaxDepth bounds traversal. Items are only enqueued at depths
	// <= MaxDepth, so no page ever exceeds it.
	MaxDepth int

	// BatchSize bounds how many dequeue-fetch-expand cycles run
	// between checkpoint interval checks.
	BatchSize int

	// ExcludeTypes lists content types never recorded into aggregates.
	ExcludeTypes []string

	Logger *slog.Logger

	state *govmap.CrawlState

	// Guards the rate-limit pause counter, the only state touched by
	// the concurrent quick-analysis path.
	pauseMu sync.Mutex
}

// init fills in defaults and lazily creates crawl state.
func (c *Crawler) init() {
	if c.MaxDepth <= 0 {
		c.MaxDepth = DefaultMaxDepth
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.state == nil {
		c.state = &govmap.CrawlState{
			Metadata: govmap.ScanMetadata{
				StartedAt:  time.Now(),
				DepthLimit: c.MaxDepth,
			},
			Sections: make(map[string]*govmap.Section),
		}
	}
}

// State returns a snapshot of the current crawl state, including
// pending frontier items, suitable for checkpointing.
func (c *Crawler) State() *govmap.CrawlState {
	c.init()
	return c.snapshot()
}

// Restore rebuilds engine state from a checkpoint. Visited paths are
// replayed into the frontier's membership structure and pending items
// are re-queued, so resumed crawls neither lose progress nor re-fetch
// already-seen content.
func (c *Crawler) Restore(state *govmap.CrawlState) {
	c.init()

	if state.Sections != nil {
		c.state.Sections = state.Sections
	}
	c.state.Metadata = state.Metadata
	if c.state.Metadata.DepthLimit == 0 {
		c.state.Metadata.DepthLimit = c.MaxDepth
	}
	c.state.Visited = append([]string(nil), state.Visited...)

	for _, path := range state.Visited {
		c.Frontier.MarkSeen(path)
	}
	for _, item := range state.Pending {
		if item.Depth > c.MaxDepth {
			continue
		}
		// MarkSeen above may have claimed pending paths too; only
		// visited paths are in the membership set, so Push accepts
		// genuinely pending ones.
		c.Frontier.Push(item)
	}

	if r, ok := c.Progress.(interface {
		Restore(*govmap.ProgressStatus)
	}); ok {
		r.Restore(state.Progress)
	}
}

// CrawlSection crawls the content graph rooted at sectionPath. Every
// page reached from the entry is recorded under that section, whatever
// its own top-level segment. A failure fetching the entry path itself
// aborts this section and returns an empty aggregate; failures on
// related links abandon only the affected branch.
func (c *Crawler) CrawlSection(ctx context.Context, sectionPath string) (*govmap.Section, error) {
	c.init()
	c.Logger.Info("starting section crawl", "section", sectionPath)

	if !c.Frontier.Seen(sectionPath) {
		// Process the entry node directly: its failure modes differ
		// from every other node's.
		c.Frontier.MarkSeen(sectionPath)
		rec, err := c.fetch(ctx, sectionPath)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if govmap.ErrorCode(err) != govmap.ENOTFOUND {
				c.Logger.Error("failed to crawl section", "section", sectionPath, "err", err)
				return govmap.NewSection(), nil
			}
			rec = nil // entry is a placeholder terminal
		}
		if err := c.processNode(ctx, govmap.WorkItem{Path: sectionPath, Depth: 0}, rec, sectionPath); err != nil {
			return nil, err
		}
	}

	// Drain the frontier in bounded batches, consulting the
	// checkpoint interval after each processed node.
	for c.Frontier.Len() > 0 {
		if err := c.processBatch(ctx, sectionPath); err != nil {
			return nil, err
		}
	}

	section, ok := c.state.Sections[sectionPath]
	if !ok {
		return govmap.NewSection(), nil
	}
	return section, nil
}

// processBatch runs up to BatchSize dequeue-fetch-expand cycles.
func (c *Crawler) processBatch(ctx context.Context, sectionPath string) error {
	for i := 0; i < c.BatchSize; i++ {
		item, ok := c.Frontier.Pop()
		if !ok {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if item.Depth > c.MaxDepth {
			continue
		}

		rec, err := c.fetch(ctx, item.Path)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if govmap.ErrorCode(err) != govmap.ENOTFOUND {
				// Transient failure or rate limit: abandon only this
				// branch, siblings continue.
				c.Logger.Warn("failed to fetch related content", "path", item.Path, "err", err)
				continue
			}
			rec = nil
		}

		if err := c.processNode(ctx, item, rec, sectionPath); err != nil {
			return err
		}
	}
	return nil
}

// fetch rate-limits and retrieves one record. Rate-limited responses
// are recorded as progress events; the limiter provides the backoff for
// the next request, so there is no immediate retry.
func (c *Crawler) fetch(ctx context.Context, path string) (*govmap.ContentRecord, error) {
	if err := c.Limiter.Wait(ctx); err != nil {
		return nil, err
	}
	rec, err := c.Source.GetContent(ctx, path)
	if err != nil && govmap.ErrorCode(err) == govmap.ERATELIMIT {
		c.pauseMu.Lock()
		c.state.Metadata.RateLimitPauses++
		c.pauseMu.Unlock()
		if c.Progress != nil {
			c.Progress.RateLimited()
		}
	}
	return rec, err
}

// processNode classifies a fetched record into a page, records it under
// the owning section, expands related links, and triggers checkpoints.
// A nil record means the path was not found and yields a placeholder.
func (c *Crawler) processNode(ctx context.Context, item govmap.WorkItem, rec *govmap.ContentRecord, sectionPath string) error {
	page := classify(item, rec)

	c.state.Visited = append(c.state.Visited, page.Path)
	c.state.Metadata.TotalPages++

	if c.Progress != nil {
		c.Progress.LinksFound(1)
		c.Progress.DepthObserved(page.DepthLevel)
		c.Progress.ContentTypeObserved(page.ContentType)
	}

	// Expand related links before recording so the page carries them.
	if rec != nil && item.Depth < c.MaxDepth {
		links := rec.RelatedLinks()
		page.RelatedLinks = links
		for _, link := range links {
			c.Frontier.Push(govmap.WorkItem{
				Path:        link,
				ContentType: rec.DocumentType,
				Depth:       item.Depth + 1,
			})
		}
	}

	if !c.excluded(page.ContentType) {
		section, ok := c.state.Sections[sectionPath]
		if !ok {
			section = govmap.NewSection()
			c.state.Sections[sectionPath] = section
			c.state.Metadata.SectionsCovered++
			if c.Progress != nil {
				c.Progress.SectionChanged(sectionPath)
			}
		}
		section.Record(page)
	}

	if c.Checkpoints != nil && c.Checkpoints.ShouldCheckpoint(1) {
		if _, err := c.Checkpoints.Save(ctx, c.snapshot()); err != nil {
			// A failed snapshot is not fatal; the crawl continues
			// without having persisted it.
			c.Logger.Warn("checkpoint save failed", "err", err)
		}
	}

	return nil
}

// classify builds the immutable page for a processed node.
func classify(item govmap.WorkItem, rec *govmap.ContentRecord) *govmap.Page {
	if rec == nil {
		contentType := item.ContentType
		if contentType == "" {
			contentType = "unknown"
		}
		return &govmap.Page{
			Path:        item.Path,
			ContentType: contentType,
			Status:      govmap.StatusPlaceholder,
			DepthLevel:  item.Depth,
		}
	}

	contentType := rec.DocumentType
	if contentType == "" {
		contentType = "unknown"
	}
	page := &govmap.Page{
		Path:          item.Path,
		ContentType:   contentType,
		LastUpdated:   rec.UpdatedAt,
		Status:        govmap.StatusActive,
		DepthLevel:    item.Depth,
		PublishingOrg: rec.PublishingOrg(),
	}
	if rec.IsPlaceholder() {
		page.Status = govmap.StatusPlaceholder
	} else {
		page.ContentHash = fmt.Sprintf("%x", xxhash.Sum64String(rec.Body))
	}
	return page
}

// excluded reports whether a content type is on the exclusion list.
func (c *Crawler) excluded(contentType string) bool {
	for _, t := range c.ExcludeTypes {
		if t == contentType {
			return true
		}
	}
	return false
}

// snapshot copies the crawl state for checkpointing.
func (c *Crawler) snapshot() *govmap.CrawlState {
	state := &govmap.CrawlState{
		Metadata: c.state.Metadata,
		Sections: c.state.Sections,
		Visited:  append([]string(nil), c.state.Visited...),
		Pending:  c.Frontier.Pending(),
	}
	if c.Progress != nil {
		state.Progress = c.Progress.Status()
	}
	return state
}
