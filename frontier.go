package govmap

import (
	"context"
	"strings"
)

// WorkItem is a discovered-but-unprocessed path awaiting a fetch.
// ContentType is inherited from the parent record and only informs
// priority scoring; the real type comes back with the fetch.
type WorkItem struct {
	Path        string `json:"path"`
	ContentType string `json:"content_type,omitempty"`
	Depth       int    `json:"depth"`
}

// Frontier manages the crawl queue with deduplication.
type Frontier interface {
	// Push adds an item to the frontier. Returns false if the path has
	// already been seen, does not look like a content path, or matches
	// an excluded pattern.
	Push(item WorkItem) bool

	// Pop returns the next item to process.
	// The bool result is false if the frontier is drained.
	Pop() (WorkItem, bool)

	// Len returns the number of pending items.
	Len() int

	// Seen returns true if the path has been processed or queued.
	Seen(path string) bool

	// MarkSeen records a path as seen without queuing it.
	// Used when restoring visited paths from a checkpoint.
	MarkSeen(path string)

	// Pending returns the queued items, for checkpointing.
	Pending() []WorkItem
}

// MemberSet tracks path membership for deduplication. Implementations
// may be exact (no false positives) or probabilistic (bounded memory,
// a configurable false-positive rate, never false negatives).
type MemberSet interface {
	Add(key string)
	Contains(key string) bool
}

// ExactSet is a map-backed MemberSet with no false positives or
// negatives. Memory grows with the number of keys added.
type ExactSet struct {
	m map[string]struct{}
}

// NewExactSet returns an empty ExactSet.
func NewExactSet() *ExactSet {
	return &ExactSet{m: make(map[string]struct{})}
}

// Add records a key.
func (s *ExactSet) Add(key string) { s.m[key] = struct{}{} }

// Contains reports whether the key has been added.
func (s *ExactSet) Contains(key string) bool {
	_, ok := s.m[key]
	return ok
}

// Len returns the number of keys in the set.
func (s *ExactSet) Len() int { return len(s.m) }

// Limiter gates outbound fetch cadence.
type Limiter interface {
	// Wait blocks until the rate limit allows the next request.
	// Returns an error if the context is canceled before then.
	Wait(ctx context.Context) error
}

// PriorityWeights holds the tunable constants of the priority formula.
// Lower scores are processed sooner. The defaults reproduce the
// long-standing relative ordering: content-type bonuses outweigh path
// bonuses, which outweigh the depth penalty.
type PriorityWeights struct {
	// DepthPenalty is added per level of depth.
	DepthPenalty int `json:"depth_penalty" yaml:"depth_penalty"`

	// TypeBonus is subtracted when the item's content type matches.
	TypeBonus map[string]int `json:"type_bonus" yaml:"type_bonus"`

	// PathBonus is subtracted when the path contains the key substring.
	PathBonus map[string]int `json:"path_bonus" yaml:"path_bonus"`

	// Frequency holds historical update-frequency scores per path,
	// subtracted scaled by FrequencyWeight.
	Frequency       map[string]float64 `json:"frequency,omitempty" yaml:"frequency,omitempty"`
	FrequencyWeight int                `json:"frequency_weight" yaml:"frequency_weight"`

	// Importance holds importance scores per path, subtracted scaled
	// by ImportanceWeight.
	Importance       map[string]float64 `json:"importance,omitempty" yaml:"importance,omitempty"`
	ImportanceWeight int                `json:"importance_weight" yaml:"importance_weight"`
}

// DefaultPriorityWeights returns the standard weights.
func DefaultPriorityWeights() *PriorityWeights {
	return &PriorityWeights{
		DepthPenalty: 10,
		TypeBonus: map[string]int{
			"guide":          500,
			"detailed_guide": 400,
			"service":        300,
			"transaction":    300,
		},
		PathBonus: map[string]int{
			"/services/": 100,
			"/guidance/": 50,
		},
		FrequencyWeight:  100,
		ImportanceWeight: 50,
	}
}

// Score computes the priority of an item. Lower values dequeue sooner.
// The result is clamped to a minimum of 1 so a total order exists over
// positive scores.
func (w *PriorityWeights) Score(item WorkItem) int {
	score := item.Depth * w.DepthPenalty
	score -= w.TypeBonus[item.ContentType]
	for substr, bonus := range w.PathBonus {
		if strings.Contains(item.Path, substr) {
			score -= bonus
		}
	}
	if f, ok := w.Frequency[item.Path]; ok {
		score -= int(f * float64(w.FrequencyWeight))
	}
	if imp, ok := w.Importance[item.Path]; ok {
		score -= int(imp * float64(w.ImportanceWeight))
	}
	if score < 1 {
		score = 1
	}
	return score
}
