package crawl

import (
	"container/heap"
	"strings"
	"sync"

	"github.com/fwojciec/govmap"
)

// Excluded path segments: non-content assets the crawler never fetches.
var defaultExcludedPatterns = []string{"/assets/", "/images/", "/attachments/"}

// Compile-time interface verification.
var (
	_ govmap.Frontier = (*Frontier)(nil)
	_ govmap.Frontier = (*StackFrontier)(nil)
)

// Frontier is a priority-ordered crawl queue with membership-based
// deduplication. Lower scores dequeue first; ties break by insertion
// order. It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu       sync.Mutex
	seen     govmap.MemberSet
	weights  *govmap.PriorityWeights
	excluded []string
	queue    *itemHeap
	seq      int
}

// NewFrontier creates a priority frontier backed by the given
// membership set. A nil weights uses DefaultPriorityWeights.
func NewFrontier(seen govmap.MemberSet, weights *govmap.PriorityWeights) *Frontier {
	if weights == nil {
		weights = govmap.DefaultPriorityWeights()
	}
	h := &itemHeap{}
	heap.Init(h)
	return &Frontier{
		seen:     seen,
		weights:  weights,
		excluded: defaultExcludedPatterns,
		queue:    h,
	}
}

// admissible reports whether a path is worth queuing: root-relative and
// not an excluded asset path.
func admissible(path string, excluded []string) bool {
	if !strings.HasPrefix(path, "/") {
		return false
	}
	for _, pattern := range excluded {
		if strings.Contains(path, pattern) {
			return false
		}
	}
	return true
}

// Push scores and queues an item. The membership check and insert are
// one atomic operation, so a path can only ever be accepted once.
func (f *Frontier) Push(item govmap.WorkItem) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !admissible(item.Path, f.excluded) {
		return false
	}
	if f.seen.Contains(item.Path) {
		return false
	}
	f.seen.Add(item.Path)

	heap.Push(f.queue, &queued{
		item:     item,
		priority: f.weights.Score(item),
		seq:      f.seq,
	})
	f.seq++
	return true
}

// Pop returns the pending item with the lowest priority score.
// The bool result is false if the frontier is drained.
func (f *Frontier) Pop() (govmap.WorkItem, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.queue.Len() == 0 {
		return govmap.WorkItem{}, false
	}
	q, _ := heap.Pop(f.queue).(*queued)
	return q.item, true
}

// Len returns the number of pending items.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Len()
}

// Seen returns true if the path has been processed or queued.
func (f *Frontier) Seen(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Contains(path)
}

// MarkSeen records a path as seen without queuing it.
func (f *Frontier) MarkSeen(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen.Add(path)
}

// Pending returns the queued items in priority order, for checkpointing.
func (f *Frontier) Pending() []govmap.WorkItem {
	f.mu.Lock()
	defer f.mu.Unlock()

	items := make([]govmap.WorkItem, 0, f.queue.Len())
	// Copy the heap so draining it doesn't disturb the live queue.
	tmp := make(itemHeap, len(*f.queue))
	copy(tmp, *f.queue)
	for tmp.Len() > 0 {
		q, _ := heap.Pop(&tmp).(*queued)
		items = append(items, q.item)
	}
	return items
}

// queued is a frontier entry with its computed priority.
type queued struct {
	item     govmap.WorkItem
	priority int
	seq      int
}

// itemHeap implements heap.Interface as a min-heap on (priority, seq).
type itemHeap []*queued

func (h itemHeap) Len() int { return len(h) }

// Less orders by score, then by insertion order for a stable queue
// discipline.
func (h itemHeap) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	return h[i].seq < h[j].seq
}

func (h itemHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *itemHeap) Push(x any) {
	q, _ := x.(*queued)
	*h = append(*h, q)
}

func (h *itemHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// StackFrontier is a LIFO frontier for exhaustive depth-first crawls.
// It applies the same admission rules and deduplication as Frontier but
// ignores priority scoring, so expansion follows the newest discovery
// first, exactly like the recursive traversal it replaces.
type StackFrontier struct {
	mu       sync.Mutex
	seen     govmap.MemberSet
	excluded []string
	stack    []govmap.WorkItem
}

// NewStackFrontier creates a depth-first frontier backed by the given
// membership set.
func NewStackFrontier(seen govmap.MemberSet) *StackFrontier {
	return &StackFrontier{
		seen:     seen,
		excluded: defaultExcludedPatterns,
	}
}

// Push queues an item if it passes admission and has not been seen.
func (f *StackFrontier) Push(item govmap.WorkItem) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !admissible(item.Path, f.excluded) {
		return false
	}
	if f.seen.Contains(item.Path) {
		return false
	}
	f.seen.Add(item.Path)
	f.stack = append(f.stack, item)
	return true
}

// Pop returns the most recently pushed item.
func (f *StackFrontier) Pop() (govmap.WorkItem, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.stack) == 0 {
		return govmap.WorkItem{}, false
	}
	item := f.stack[len(f.stack)-1]
	f.stack = f.stack[:len(f.stack)-1]
	return item, true
}

// Len returns the number of pending items.
func (f *StackFrontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.stack)
}

// Seen returns true if the path has been processed or queued.
func (f *StackFrontier) Seen(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Contains(path)
}

// MarkSeen records a path as seen without queuing it.
func (f *StackFrontier) MarkSeen(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen.Add(path)
}

// Pending returns the queued items, newest first.
func (f *StackFrontier) Pending() []govmap.WorkItem {
	f.mu.Lock()
	defer f.mu.Unlock()

	items := make([]govmap.WorkItem, 0, len(f.stack))
	for i := len(f.stack) - 1; i >= 0; i-- {
		items = append(items, f.stack[i])
	}
	return items
}
