package mock

import "github.com/fwojciec/govmap"

var _ govmap.Frontier = (*Frontier)(nil)

// Frontier is a mock implementation of govmap.Frontier.
type Frontier struct {
	PushFn     func(item govmap.WorkItem) bool
	PopFn      func() (govmap.WorkItem, bool)
	LenFn      func() int
	SeenFn     func(path string) bool
	MarkSeenFn func(path string)
	PendingFn  func() []govmap.WorkItem
}

func (f *Frontier) Push(item govmap.WorkItem) bool {
	return f.PushFn(item)
}

func (f *Frontier) Pop() (govmap.WorkItem, bool) {
	return f.PopFn()
}

func (f *Frontier) Len() int {
	return f.LenFn()
}

func (f *Frontier) Seen(path string) bool {
	return f.SeenFn(path)
}

func (f *Frontier) MarkSeen(path string) {
	f.MarkSeenFn(path)
}

func (f *Frontier) Pending() []govmap.WorkItem {
	return f.PendingFn()
}

var _ govmap.MemberSet = (*MemberSet)(nil)

// MemberSet is a mock implementation of govmap.MemberSet.
type MemberSet struct {
	AddFn      func(key string)
	ContainsFn func(key string) bool
}

func (s *MemberSet) Add(key string) {
	s.AddFn(key)
}

func (s *MemberSet) Contains(key string) bool {
	return s.ContainsFn(key)
}
