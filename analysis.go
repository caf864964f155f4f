package govmap

import (
	"sort"
	"time"
)

// SectionAnalysis summarizes patterns in one crawled section.
type SectionAnalysis struct {
	UpdatePatterns   *UpdatePatterns `json:"update_patterns,omitempty"`
	TypeDistribution map[string]int  `json:"type_distribution"`
	DepthMetrics     DepthMetrics    `json:"depth_metrics"`
	Organisations    map[string]int  `json:"org_distribution"`

	// StalenessScore is 0-1, where 1 is most stale (no update within
	// roughly a year, or no update data at all).
	StalenessScore float64 `json:"staleness_score"`

	// ComplexityScore is 0-1, combining maximum and average depth.
	ComplexityScore float64 `json:"complexity_score"`
}

// UpdatePatterns describes content freshness across a section.
type UpdatePatterns struct {
	OldestUpdate   time.Time `json:"oldest_update"`
	NewestUpdate   time.Time `json:"newest_update"`
	TotalUpdates   int       `json:"total_updates"`
	AverageAgeDays float64   `json:"average_age_days"`
}

// DepthMetrics describes how deep a section's content sits.
type DepthMetrics struct {
	MaxDepth     int     `json:"max_depth"`
	AverageDepth float64 `json:"average_depth"`
}

// AnalyzeSection computes trend analysis for a crawled section.
// Pages with unparsable last-updated timestamps are skipped from the
// update patterns but still counted everywhere else.
func AnalyzeSection(section *Section) *SectionAnalysis {
	a := &SectionAnalysis{
		TypeDistribution: make(map[string]int),
		Organisations:    make(map[string]int),
	}

	var updates []time.Time
	var depthSum int
	now := time.Now()

	for _, p := range section.Pages {
		contentType := p.ContentType
		if contentType == "" {
			contentType = "unknown"
		}
		a.TypeDistribution[contentType]++

		if p.PublishingOrg != "" {
			a.Organisations[p.PublishingOrg]++
		}

		if p.DepthLevel > a.DepthMetrics.MaxDepth {
			a.DepthMetrics.MaxDepth = p.DepthLevel
		}
		depthSum += p.DepthLevel

		if p.LastUpdated != "" {
			if ts, err := time.Parse(time.RFC3339, p.LastUpdated); err == nil {
				updates = append(updates, ts)
			}
		}
	}

	if n := len(section.Pages); n > 0 {
		a.DepthMetrics.AverageDepth = float64(depthSum) / float64(n)
	}

	if len(updates) > 0 {
		sort.Slice(updates, func(i, j int) bool { return updates[i].Before(updates[j]) })
		var ageSum float64
		for _, ts := range updates {
			ageSum += now.Sub(ts).Hours() / 24
		}
		a.UpdatePatterns = &UpdatePatterns{
			OldestUpdate:   updates[0],
			NewestUpdate:   updates[len(updates)-1],
			TotalUpdates:   len(updates),
			AverageAgeDays: ageSum / float64(len(updates)),
		}
	}

	a.StalenessScore = stalenessScore(a.UpdatePatterns, now)
	a.ComplexityScore = complexityScore(a.DepthMetrics)
	return a
}

// stalenessScore scales the age of the newest update to a year.
func stalenessScore(up *UpdatePatterns, now time.Time) float64 {
	if up == nil {
		return 1.0
	}
	ageDays := now.Sub(up.NewestUpdate).Hours() / 24
	if ageDays < 0 {
		ageDays = 0
	}
	return clamp01(ageDays / 365)
}

// complexityScore combines maximum depth (scaled to 10 levels) and
// average depth (scaled to 5 levels).
func complexityScore(dm DepthMetrics) float64 {
	depthScore := clamp01(float64(dm.MaxDepth) / 10)
	avgScore := clamp01(dm.AverageDepth / 5)
	return (depthScore + avgScore) / 2
}

func clamp01(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}
