// Package govmap maps the structure of GOV.UK content by crawling the
// Content API. It discovers top-level sections, walks related links to a
// bounded depth, aggregates per-section page statistics, and checkpoints
// progress so interrupted scans can resume without re-fetching.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, bloom/, http/).
package govmap
