package concurrent_list

import (
	"sync"

	"github.com/pmkol/dlist/pkg/list"
)

// ConcurrentList guards a list.List with a single mutex. Node surgery is not
// split into finer lock regions, so every operation, including caller
// supplied cursor work, holds the lock for its whole duration.
type ConcurrentList[V any] struct {
	sync.Mutex
	l *list.List[V]
}

func NewConcurrentList[V any](vs ...V) *ConcurrentList[V] {
	return &ConcurrentList[V]{
		l: list.From(vs...),
	}
}

func (c *ConcurrentList[V]) PushFront(v V) {
	c.Lock()
	c.l.PushFront(v)
	c.Unlock()
}

func (c *ConcurrentList[V]) PushBack(v V) {
	c.Lock()
	c.l.PushBack(v)
	c.Unlock()
}

func (c *ConcurrentList[V]) PopFront() (v V, ok bool) {
	c.Lock()
	v, ok = c.l.PopFront()
	c.Unlock()
	return
}

func (c *ConcurrentList[V]) PopBack() (v V, ok bool) {
	c.Lock()
	v, ok = c.l.PopBack()
	c.Unlock()
	return
}

func (c *ConcurrentList[V]) Len() int {
	c.Lock()
	n := c.l.Len()
	c.Unlock()
	return n
}

func (c *ConcurrentList[V]) Clear() {
	c.Lock()
	c.l.Clear()
	c.Unlock()
}

// Snapshot copies the elements out, front to back.
func (c *ConcurrentList[V]) Snapshot() []V {
	c.Lock()
	defer c.Unlock()
	return c.l.ToSlice()
}

// Update runs f with exclusive access to the underlying list.
// f must not retain l, its iterators or pointers into it after returning.
func (c *ConcurrentList[V]) Update(f func(l *list.List[V])) {
	c.Lock()
	defer c.Unlock()
	f(c.l)
}

// WithCursor runs f with a fresh cursor over the underlying list. Splits and
// splices done by f are published atomically when the lock is released.
func (c *ConcurrentList[V]) WithCursor(f func(cur *list.CursorMut[V])) {
	c.Lock()
	defer c.Unlock()
	f(c.l.CursorMut())
}

// TakeAll moves every element out into a new, unshared list.
func (c *ConcurrentList[V]) TakeAll() *list.List[V] {
	c.Lock()
	defer c.Unlock()
	return c.l.CursorMut().SplitAfter()
}
