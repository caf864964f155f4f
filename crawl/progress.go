package crawl

import (
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/fwojciec/govmap"
)

// progressLogInterval is how often the tracker emits a progress line.
const progressLogInterval = 60 * time.Second

var _ govmap.ProgressTracker = (*Tracker)(nil)

// Tracker accumulates crawl progress counters and histograms.
// Safe for concurrent use.
type Tracker struct {
	mu sync.Mutex

	logger *slog.Logger

	startTime         time.Time
	sectionsProcessed int
	totalLinks        int
	currentSection    string
	rateLimitHits     int
	depthCounts       map[string]int
	contentTypes      map[string]int
	lastLog           time.Time
}

// NewTracker creates a Tracker. A nil logger uses slog.Default.
func NewTracker(logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	now := time.Now()
	return &Tracker{
		logger:       logger,
		startTime:    now,
		lastLog:      now,
		depthCounts:  make(map[string]int),
		contentTypes: make(map[string]int),
	}
}

// SectionChanged records that crawling moved to a new section.
func (t *Tracker) SectionChanged(section string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.currentSection = section
	t.sectionsProcessed++
	t.logger.Info("processing section", "section", section)
	t.maybeLogProgress()
}

// LinksFound records n newly discovered links.
func (t *Tracker) LinksFound(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.totalLinks += n
	t.maybeLogProgress()
}

// DepthObserved records a page processed at the given depth.
func (t *Tracker) DepthObserved(depth int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.depthCounts[strconv.Itoa(depth)]++
	t.maybeLogProgress()
}

// ContentTypeObserved records a page of the given content type.
func (t *Tracker) ContentTypeObserved(contentType string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.contentTypes[contentType]++
	t.maybeLogProgress()
}

// RateLimited records an upstream rate-limit response.
func (t *Tracker) RateLimited() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rateLimitHits++
	t.maybeLogProgress()
}

// Status returns an immutable snapshot of the current counters.
func (t *Tracker) Status() *govmap.ProgressStatus {
	t.mu.Lock()
	defer t.mu.Unlock()

	depths := make(map[string]int, len(t.depthCounts))
	for k, v := range t.depthCounts {
		depths[k] = v
	}
	types := make(map[string]int, len(t.contentTypes))
	for k, v := range t.contentTypes {
		types[k] = v
	}

	now := time.Now()
	return &govmap.ProgressStatus{
		Timestamp:         now,
		SectionsProcessed: t.sectionsProcessed,
		TotalLinks:        t.totalLinks,
		Duration:          now.Sub(t.startTime),
		RateLimitHits:     t.rateLimitHits,
		CurrentSection:    t.currentSection,
		DepthDistribution: depths,
		ContentTypes:      types,
	}
}

// Restore overwrites the counters from a checkpointed snapshot.
// The start time is kept so Duration covers the whole resumed run.
func (t *Tracker) Restore(status *govmap.ProgressStatus) {
	if status == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.sectionsProcessed = status.SectionsProcessed
	t.totalLinks = status.TotalLinks
	t.currentSection = status.CurrentSection
	t.rateLimitHits = status.RateLimitHits
	t.depthCounts = make(map[string]int, len(status.DepthDistribution))
	for k, v := range status.DepthDistribution {
		t.depthCounts[k] = v
	}
	t.contentTypes = make(map[string]int, len(status.ContentTypes))
	for k, v := range status.ContentTypes {
		t.contentTypes[k] = v
	}
}

// maybeLogProgress emits a progress line at most once per interval.
// Callers must hold t.mu.
func (t *Tracker) maybeLogProgress() {
	now := time.Now()
	if now.Sub(t.lastLog) < progressLogInterval {
		return
	}
	t.lastLog = now
	t.logger.Info("progress",
		"sections", t.sectionsProcessed,
		"links", t.totalLinks,
		"duration", now.Sub(t.startTime).Round(time.Second),
		"rate_limits", t.rateLimitHits,
	)
}
