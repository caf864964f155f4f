// Package bloom provides probabilistic path membership using Bloom filters.
package bloom

import (
	"github.com/bits-and-blooms/bloom/v3"

	"github.com/fwojciec/govmap"
)

// Compile-time interface verification.
var _ govmap.MemberSet = (*Filter)(nil)

// Filter is a Bloom-filter-backed MemberSet. Memory is bounded by the
// configured capacity; a small fraction of distinct paths may test as
// already present (false positives), but paths that were added always
// test present (no false negatives).
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected paths with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records a path in the filter.
func (f *Filter) Add(key string) {
	f.f.AddString(key)
}

// Contains returns true if the path might have been added.
// False positives are possible; false negatives are not.
func (f *Filter) Contains(key string) bool {
	return f.f.TestString(key)
}

// EstimatedCount returns the approximate number of paths added.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
