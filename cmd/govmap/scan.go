package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fwojciec/govmap"
	"github.com/fwojciec/govmap/bloom"
	"github.com/fwojciec/govmap/crawl"
	"github.com/fwojciec/govmap/fs"
	govslog "github.com/fwojciec/govmap/slog"
)

// Run executes the scan command: discover sections, crawl each one,
// persist the resulting scan, and optionally export it to a file.
func (c *ScanCmd) Run(deps *Dependencies) error {
	ctx := deps.Ctx

	weights, err := c.loadWeights()
	if err != nil {
		return err
	}

	var seen govmap.MemberSet
	if c.Probabilistic {
		seen = bloom.NewFilter(c.Capacity, c.FPRate)
	} else {
		seen = govmap.NewExactSet()
	}

	var frontier govmap.Frontier
	switch c.Strategy {
	case "exhaustive":
		frontier = crawl.NewStackFrontier(seen)
	default:
		frontier = crawl.NewFrontier(seen, weights)
	}

	store := fs.NewCheckpointStore(deps.CheckpointDir,
		fs.WithInterval(c.CheckpointInterval),
		fs.WithLogger(deps.Logger),
	)

	crawler := &crawl.Crawler{
		Source:       deps.Source,
		Limiter:      crawl.NewLimiter(c.Rate),
		Frontier:     frontier,
		Checkpoints:  govslog.NewLoggingCheckpointStore(store, deps.Logger),
		Progress:     crawl.NewTracker(deps.Logger),
		MaxDepth:     c.Depth,
		BatchSize:    c.BatchSize,
		ExcludeTypes: c.ExcludeTypes,
		Logger:       deps.Logger,
	}

	if c.Resume != "" {
		checkpoint, err := store.Load(ctx, c.Resume)
		if err != nil {
			if govmap.ErrorCode(err) == govmap.ENOTFOUND {
				names, _ := store.List(ctx)
				if len(names) > 0 {
					return fmt.Errorf("checkpoint %q not found; available: %s",
						c.Resume, strings.Join(names, ", "))
				}
				return fmt.Errorf("checkpoint %q not found; no checkpoints in %s",
					c.Resume, deps.CheckpointDir)
			}
			return err
		}
		crawler.Restore(checkpoint.State)
		fmt.Fprintf(deps.Stdout, "Resumed from %s (%d pages processed)\n",
			c.Resume, checkpoint.Metadata.PagesProcessed)
	}

	refs, err := crawler.DiscoverSections(ctx)
	if err != nil {
		return fmt.Errorf("failed to discover sections: %w", err)
	}
	refs, err = selectSections(refs, c.Sections)
	if err != nil {
		return err
	}

	for _, ref := range refs {
		section, err := crawler.CrawlSection(ctx, ref.Path)
		if err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "%s: %d pages (%d active, %d placeholder)\n",
			ref.Path, section.TotalPages, section.ActivePages, section.PlaceholderPages)
	}

	state := crawler.State()
	scan := &govmap.Scan{
		Metadata: state.Metadata,
		Sections: state.Sections,
	}
	if err := deps.Scans.CreateScan(ctx, scan); err != nil {
		return fmt.Errorf("failed to save scan: %w", err)
	}
	fmt.Fprintf(deps.Stdout, "Saved scan %s (%d pages across %d sections)\n",
		scan.ID, scan.Metadata.TotalPages, scan.Metadata.SectionsCovered)

	if c.Output != "" {
		if err := c.export(scan); err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %s results to %s\n", c.Format, c.Output)
	}
	return nil
}

// loadWeights reads priority weight overrides from the YAML file named
// by --weights. Absent fields keep their default values.
func (c *ScanCmd) loadWeights() (*govmap.PriorityWeights, error) {
	weights := govmap.DefaultPriorityWeights()
	if c.Weights == "" {
		return weights, nil
	}

	data, err := os.ReadFile(c.Weights)
	if err != nil {
		return nil, fmt.Errorf("failed to read weights file %q: %w", c.Weights, err)
	}
	if err := yaml.Unmarshal(data, weights); err != nil {
		return nil, govmap.Errorf(govmap.EINVALID, "invalid weights file %q: %v", c.Weights, err)
	}
	return weights, nil
}

// selectSections filters discovered sections by the --sections flag.
// Each requested value matches a section title (case-insensitively) or
// an exact path; a value matching nothing is an error.
func selectSections(refs []govmap.SectionRef, requested []string) ([]govmap.SectionRef, error) {
	if len(requested) == 0 {
		return refs, nil
	}

	var selected []govmap.SectionRef
	for _, want := range requested {
		found := false
		for _, ref := range refs {
			if ref.Path == want || strings.EqualFold(ref.Title, want) {
				selected = append(selected, ref)
				found = true
				break
			}
		}
		if !found {
			return nil, govmap.Errorf(govmap.EINVALID, "unknown section %q", want)
		}
	}
	return selected, nil
}

// export writes the scan to the --output file in the --format encoding.
func (c *ScanCmd) export(scan *govmap.Scan) error {
	f, err := os.Create(c.Output)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", c.Output, err)
	}
	defer f.Close()

	switch c.Format {
	case "csv":
		if err := writeCSV(f, scan); err != nil {
			return err
		}
	default:
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		if err := enc.Encode(scan); err != nil {
			return err
		}
	}
	return f.Close()
}

// writeCSV flattens the scan into one row per page.
func writeCSV(f *os.File, scan *govmap.Scan) error {
	w := csv.NewWriter(f)
	if err := w.Write([]string{
		"section", "path", "content_type", "status", "depth_level",
		"publishing_org", "last_updated", "related_links_count",
	}); err != nil {
		return err
	}

	for sectionPath, section := range scan.Sections {
		for _, page := range section.Pages {
			if err := w.Write([]string{
				sectionPath,
				page.Path,
				page.ContentType,
				string(page.Status),
				strconv.Itoa(page.DepthLevel),
				page.PublishingOrg,
				page.LastUpdated,
				strconv.Itoa(len(page.RelatedLinks)),
			}); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}
