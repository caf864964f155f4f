package mock

import "github.com/fwojciec/govmap"

var _ govmap.ProgressTracker = (*ProgressTracker)(nil)

// ProgressTracker is a mock implementation of govmap.ProgressTracker.
// Nil event functions are no-ops so tests only wire what they assert.
type ProgressTracker struct {
	SectionChangedFn      func(section string)
	LinksFoundFn          func(n int)
	DepthObservedFn       func(depth int)
	ContentTypeObservedFn func(contentType string)
	RateLimitedFn         func()
	StatusFn              func() *govmap.ProgressStatus
}

func (t *ProgressTracker) SectionChanged(section string) {
	if t.SectionChangedFn != nil {
		t.SectionChangedFn(section)
	}
}

func (t *ProgressTracker) LinksFound(n int) {
	if t.LinksFoundFn != nil {
		t.LinksFoundFn(n)
	}
}

func (t *ProgressTracker) DepthObserved(depth int) {
	if t.DepthObservedFn != nil {
		t.DepthObservedFn(depth)
	}
}

func (t *ProgressTracker) ContentTypeObserved(contentType string) {
	if t.ContentTypeObservedFn != nil {
		t.ContentTypeObservedFn(contentType)
	}
}

func (t *ProgressTracker) RateLimited() {
	if t.RateLimitedFn != nil {
		t.RateLimitedFn()
	}
}

func (t *ProgressTracker) Status() *govmap.ProgressStatus {
	if t.StatusFn == nil {
		return &govmap.ProgressStatus{}
	}
	return t.StatusFn()
}
