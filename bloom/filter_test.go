package bloom_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fwojciec/govmap/bloom"
)

func TestFilter_no_false_negatives(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(10000, 0.01)

	paths := make([]string, 1000)
	for i := range paths {
		paths[i] = fmt.Sprintf("/browse/benefits/page-%d", i)
		f.Add(paths[i])
	}

	// Every added path must test present.
	for _, p := range paths {
		assert.True(t, f.Contains(p), "added path %s must be contained", p)
	}
}

func TestFilter_false_positive_rate_is_bounded(t *testing.T) {
	t.Parallel()

	const n = 10000
	const fpRate = 0.01

	f := bloom.NewFilter(n, fpRate)
	for i := 0; i < n; i++ {
		f.Add(fmt.Sprintf("/browse/seen/%d", i))
	}

	falsePositives := 0
	const probes = 10000
	for i := 0; i < probes; i++ {
		if f.Contains(fmt.Sprintf("/browse/unseen/%d", i)) {
			falsePositives++
		}
	}

	// Allow generous headroom over the configured 1% rate.
	assert.Less(t, float64(falsePositives)/probes, fpRate*5,
		"false positive rate should stay near the configured bound")
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.Zero(t, f.EstimatedCount())

	for i := 0; i < 100; i++ {
		f.Add(fmt.Sprintf("/browse/page-%d", i))
	}

	count := f.EstimatedCount()
	assert.InDelta(t, 100, float64(count), 10, "estimate should be close to actual")
}
