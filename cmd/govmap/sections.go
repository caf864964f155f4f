package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/govmap"
	"github.com/fwojciec/govmap/crawl"
)

// Run executes the sections command: list the discoverable top-level
// sections, optionally with a quick depth-1 analysis of each.
func (c *SectionsCmd) Run(deps *Dependencies) error {
	ctx := deps.Ctx

	crawler := &crawl.Crawler{
		Source:   deps.Source,
		Limiter:  crawl.NewLimiter(c.Rate),
		Frontier: crawl.NewFrontier(govmap.NewExactSet(), nil),
		Logger:   deps.Logger,
	}

	refs, err := crawler.DiscoverSections(ctx)
	if err != nil {
		return fmt.Errorf("failed to discover sections: %w", err)
	}

	if !c.Analyse {
		for _, ref := range refs {
			fmt.Fprintf(deps.Stdout, "%-40s %s\n", ref.Title, ref.Path)
		}
		return nil
	}

	analyses, err := crawler.AnalyzeSections(ctx, refs)
	if err != nil {
		return err
	}
	for _, a := range analyses {
		fmt.Fprintf(deps.Stdout, "%s (%s)\n", a.Title, a.Path)
		fmt.Fprintf(deps.Stdout, "  estimated pages: %d\n", a.EstimatedPages)
		if len(a.Subsections) > 0 {
			fmt.Fprintf(deps.Stdout, "  subsections: %s\n", strings.Join(a.Subsections, ", "))
		}
	}
	return nil
}
