package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/govmap"
	"github.com/fwojciec/govmap/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx           context.Context
	Stdout        io.Writer
	Stderr        io.Writer
	Logger        *slog.Logger
	DB            *sqlite.DB
	Scans         govmap.ScanService
	Source        govmap.ContentSource
	CheckpointDir string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB            string `help:"SQLite database path" env:"GOVMAP_DB" default:"govmap.db"`
	CheckpointDir string `help:"Checkpoint directory" default:"checkpoints"`
	Verbose       bool   `short:"v" help:"Enable debug logging"`

	Scan     ScanCmd     `cmd:"" help:"Crawl sections of GOV.UK and record their structure"`
	Sections SectionsCmd `cmd:"" help:"List discoverable top-level sections"`
	Scans    ScansCmd    `cmd:"" help:"List stored scans"`
	Report   ReportCmd   `cmd:"" help:"Render a markdown report for a stored scan"`
	Sweep    SweepCmd    `cmd:"" help:"Delete old checkpoints"`
}

// ScanCmd is the "scan" subcommand.
type ScanCmd struct {
	Strategy           string   `default:"prioritised" enum:"prioritised,exhaustive" help:"Crawl strategy"`
	Depth              int      `default:"5" help:"Maximum crawl depth"`
	BatchSize          int      `default:"10" help:"Pages per batch between checkpoint checks"`
	CheckpointInterval int      `default:"100" help:"Pages between checkpoints"`
	Resume             string   `help:"Resume from a checkpoint name"`
	Sections           []string `help:"Only crawl these sections (title or path, repeatable)"`
	ExcludeTypes       []string `help:"Content types to exclude from aggregates (repeatable)"`
	Rate               float64  `default:"10" help:"Requests per second"`
	Probabilistic      bool     `help:"Use Bloom-filter deduplication (bounded memory)"`
	Capacity           uint     `default:"1000000" help:"Expected paths for Bloom filter sizing"`
	FPRate             float64  `name:"fp-rate" default:"0.1" help:"Bloom filter false positive rate"`
	Weights            string   `help:"YAML file overriding priority weights"`
	Output             string   `help:"Also write results to this file"`
	Format             string   `default:"json" enum:"json,csv" help:"Output file format"`
}

// SectionsCmd is the "sections" subcommand.
type SectionsCmd struct {
	Analyse bool    `help:"Run a quick depth-1 analysis of each section"`
	Rate    float64 `default:"10" help:"Requests per second"`
}

// ScansCmd is the "scans" subcommand.
type ScansCmd struct {
	Limit int `default:"20" help:"Maximum scans to list"`
}

// ReportCmd is the "report" subcommand.
type ReportCmd struct {
	ID string `arg:"" help:"Scan ID"`
}

// SweepCmd is the "sweep" subcommand.
type SweepCmd struct {
	MaxAge string `default:"24h" help:"Delete checkpoints older than this duration"`
}
