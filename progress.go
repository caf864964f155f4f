package govmap

import "time"

// ProgressTracker accepts discrete crawl events and answers status
// requests. Counters only ever increase.
type ProgressTracker interface {
	// SectionChanged records that crawling moved to a new section.
	SectionChanged(section string)

	// LinksFound records n newly discovered links.
	LinksFound(n int)

	// DepthObserved records a page processed at the given depth.
	DepthObserved(depth int)

	// ContentTypeObserved records a page of the given content type.
	ContentTypeObserved(contentType string)

	// RateLimited records an upstream rate-limit response.
	RateLimited()

	// Status returns an immutable point-in-time snapshot.
	Status() *ProgressStatus
}

// ProgressStatus is a snapshot of tracker counters. It is derived on
// every status request and never stored long-term.
type ProgressStatus struct {
	Timestamp         time.Time      `json:"timestamp"`
	SectionsProcessed int            `json:"sections_analyzed"`
	TotalLinks        int            `json:"total_links_found"`
	Duration          time.Duration  `json:"scan_duration"`
	RateLimitHits     int            `json:"rate_limit_hits"`
	CurrentSection    string         `json:"current_section"`
	DepthDistribution map[string]int `json:"depth_distribution"`
	ContentTypes      map[string]int `json:"content_types"`
}
