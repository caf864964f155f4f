package crawl

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/fwojciec/govmap"
)

// RootPath is where section discovery begins.
const RootPath = "/browse"

// analyzeConcurrency bounds the fan-out of quick analysis. The shared
// rate limiter still gates the actual request cadence.
const analyzeConcurrency = 4

// DiscoverSections fetches the browse root and returns its child
// sections. Returns ENOTFOUND if the root lists no sections, which the
// caller should treat as an unrecoverable setup failure.
func (c *Crawler) DiscoverSections(ctx context.Context) ([]govmap.SectionRef, error) {
	c.init()

	rec, err := c.fetch(ctx, RootPath)
	if err != nil {
		return nil, err
	}

	var sections []govmap.SectionRef
	for _, child := range rec.Links.Children {
		if child.Title == "" || child.BasePath == "" {
			continue
		}
		sections = append(sections, govmap.SectionRef{
			Title: child.Title,
			Path:  child.BasePath,
		})
	}

	if len(sections) == 0 {
		return nil, govmap.Errorf(govmap.ENOTFOUND, "no sections found in browse page")
	}
	return sections, nil
}

// QuickAnalysis estimates a section's content volume from a single
// depth-1 fetch, without crawling it.
type QuickAnalysis struct {
	Title          string         `json:"title"`
	Path           string         `json:"path"`
	EstimatedPages int            `json:"estimated_pages"`
	Subsections    []string       `json:"subsections"`
	SampleLinks    []string       `json:"sample_links"`
	ContentTypes   map[string]int `json:"content_types"`
}

// AnalyzeSections runs a quick analysis of each section concurrently.
// Sections that fail to fetch produce an empty analysis rather than
// failing the whole batch. Results preserve input order.
func (c *Crawler) AnalyzeSections(ctx context.Context, sections []govmap.SectionRef) ([]*QuickAnalysis, error) {
	c.init()

	results := make([]*QuickAnalysis, len(sections))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(analyzeConcurrency)

	for i, section := range sections {
		i, section := i, section
		g.Go(func() error {
			analysis := c.analyzeSection(gctx, section)
			mu.Lock()
			results[i] = analysis
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// analyzeSection does the single depth-1 probe for one section.
func (c *Crawler) analyzeSection(ctx context.Context, section govmap.SectionRef) *QuickAnalysis {
	analysis := &QuickAnalysis{
		Title:        section.Title,
		Path:         section.Path,
		ContentTypes: make(map[string]int),
	}

	rec, err := c.fetch(ctx, section.Path)
	if err != nil {
		c.Logger.Error("failed to analyze section", "section", section.Path, "err", err)
		return analysis
	}

	for _, child := range rec.Links.Children {
		if child.Title == "" || child.BasePath == "" {
			continue
		}
		analysis.Subsections = append(analysis.Subsections, child.Title)
		analysis.SampleLinks = append(analysis.SampleLinks, child.BasePath)
	}
	analysis.EstimatedPages = len(analysis.SampleLinks)

	contentType := rec.DocumentType
	if contentType == "" {
		contentType = "unknown"
	}
	analysis.ContentTypes[contentType]++

	return analysis
}
