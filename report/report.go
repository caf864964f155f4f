// Package report renders human-readable markdown reports for scans.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/fwojciec/govmap"
)

// Writer renders scan reports as GitHub-flavored markdown.
type Writer struct {
	output io.Writer
}

// NewWriter creates a Writer that renders to the given writer.
func NewWriter(output io.Writer) *Writer {
	return &Writer{output: output}
}

// Write renders the full report for a scan, including per-section
// trend analysis.
func (w *Writer) Write(scan *govmap.Scan) error {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, scan)
	w.writeSummary(md, scan)

	for _, path := range sortedSectionPaths(scan.Sections) {
		w.writeSection(md, path, scan.Sections[path])
	}

	return md.Build()
}

// writeHeader writes the report title and scan metadata.
func (w *Writer) writeHeader(md *markdown.Markdown, scan *govmap.Scan) {
	md.H1("GOV.UK Content Mapping Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Scan ID", "`" + scan.ID + "`"},
			{"Started", scan.Metadata.StartedAt.Format("2006-01-02 15:04:05")},
			{"Depth limit", strconv.Itoa(scan.Metadata.DepthLimit)},
			{"Rate limit pauses", strconv.Itoa(scan.Metadata.RateLimitPauses)},
		},
	})
	md.PlainText("")
}

// writeSummary writes scan-wide totals.
func (w *Writer) writeSummary(md *markdown.Markdown, scan *govmap.Scan) {
	md.H2("Summary")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Count"},
		Rows: [][]string{
			{"Sections covered", strconv.Itoa(scan.Metadata.SectionsCovered)},
			{"Total pages", strconv.Itoa(scan.Metadata.TotalPages)},
		},
	})
	md.PlainText("")
}

// writeSection writes one section's aggregates and analysis.
func (w *Writer) writeSection(md *markdown.Markdown, path string, section *govmap.Section) {
	md.H2("Section " + path)
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Count"},
		Rows: [][]string{
			{"Total pages", strconv.Itoa(section.TotalPages)},
			{"Active pages", strconv.Itoa(section.ActivePages)},
			{"Placeholder pages", strconv.Itoa(section.PlaceholderPages)},
		},
	})
	md.PlainText("")

	analysis := govmap.AnalyzeSection(section)

	md.H3("Depth distribution")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Depth", "Pages"},
		Rows:   countRows(section.DepthDistribution),
	})
	md.PlainText("")

	md.H3("Content types")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Type", "Pages"},
		Rows:   countRows(analysis.TypeDistribution),
	})
	md.PlainText("")

	if len(analysis.Organisations) > 0 {
		md.H3("Publishing organisations")
		md.PlainText("")
		md.Table(markdown.TableSet{
			Header: []string{"Organisation", "Pages"},
			Rows:   countRows(analysis.Organisations),
		})
		md.PlainText("")
	}

	md.H3("Scores")
	md.BulletList(
		fmt.Sprintf("Staleness: %.2f", analysis.StalenessScore),
		fmt.Sprintf("Navigation complexity: %.2f", analysis.ComplexityScore),
	)
	md.PlainText("")
}

// countRows turns a count map into sorted table rows.
func countRows(counts map[string]int) [][]string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, strconv.Itoa(counts[k])})
	}
	return rows
}

// sortedSectionPaths returns section keys in stable order.
func sortedSectionPaths(sections map[string]*govmap.Section) []string {
	paths := make([]string, 0, len(sections))
	for p := range sections {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
