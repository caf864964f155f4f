package govmap

import (
	"strconv"
	"time"
)

// PageStatus classifies a crawled page.
type PageStatus string

// Page statuses.
const (
	StatusActive      PageStatus = "active"
	StatusPlaceholder PageStatus = "placeholder"
)

// Page is a single crawled content node. Pages are created once per
// classified fetch, appended to exactly one section, and never mutated
// afterwards.
type Page struct {
	Path          string     `json:"path"`
	ContentType   string     `json:"content_type"`
	LastUpdated   string     `json:"last_updated"`
	Status        PageStatus `json:"status"`
	DepthLevel    int        `json:"depth_level"`
	PublishingOrg string     `json:"publishing_org"`
	RelatedLinks  []string   `json:"related_links"`

	// ContentHash is an xxhash of the page body, recorded for active
	// pages so later scans can detect content changes.
	ContentHash string `json:"content_hash,omitempty"`
}

// Validate returns an error if the page contains invalid fields.
func (p *Page) Validate() error {
	if p.Path == "" {
		return Errorf(EINVALID, "page path required")
	}
	if p.Status != StatusActive && p.Status != StatusPlaceholder {
		return Errorf(EINVALID, "page status must be active or placeholder")
	}
	return nil
}

// Section aggregates the pages crawled under one top-level entry path.
// Invariant: ActivePages + PlaceholderPages == TotalPages == len(Pages).
type Section struct {
	TotalPages        int            `json:"total_pages"`
	ActivePages       int            `json:"active_pages"`
	PlaceholderPages  int            `json:"placeholder_pages"`
	DepthDistribution map[string]int `json:"depth_distribution"`
	Pages             []*Page        `json:"pages"`
}

// NewSection returns an empty section aggregate.
func NewSection() *Section {
	return &Section{DepthDistribution: make(map[string]int)}
}

// Record appends a page to the section and updates all counters.
// It is the only way pages enter a section, which keeps the
// total-equals-sum invariant by construction.
func (s *Section) Record(p *Page) {
	if s.DepthDistribution == nil {
		s.DepthDistribution = make(map[string]int)
	}
	s.TotalPages++
	if p.Status == StatusActive {
		s.ActivePages++
	} else {
		s.PlaceholderPages++
	}
	s.DepthDistribution[strconv.Itoa(p.DepthLevel)]++
	s.Pages = append(s.Pages, p)
}

// SectionRef identifies a discoverable top-level section.
type SectionRef struct {
	Title string `json:"title"`
	Path  string `json:"path"`
}

// ScanMetadata describes a crawl run.
type ScanMetadata struct {
	StartedAt       time.Time `json:"timestamp"`
	DepthLimit      int       `json:"depth_limit"`
	TotalPages      int       `json:"total_pages"`
	SectionsCovered int       `json:"sections_covered"`
	RateLimitPauses int       `json:"rate_limit_pauses"`
}

// CrawlState is everything needed to resume an interrupted crawl.
// The live membership structure is not serialized; Visited holds the
// keys needed to rebuild an equivalent one.
type CrawlState struct {
	Metadata ScanMetadata        `json:"scan_metadata"`
	Sections map[string]*Section `json:"sections"`
	Visited  []string            `json:"visited_urls"`
	Pending  []WorkItem          `json:"frontier,omitempty"`
	Progress *ProgressStatus     `json:"progress,omitempty"`
}
