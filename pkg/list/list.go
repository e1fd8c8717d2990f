// Package list implements a generic doubly linked list that owns its
// elements. Elements are added and removed at either end in O(1). A CursorMut
// walks the chain and performs structural surgery (split, splice) in place.
//
// A List is not safe for concurrent use. See package concurrent_list for a
// lock-guarded wrapper.
package list

import (
	"iter"
)

const errConcurrentModification = "list: concurrent modification"

// List is a doubly linked list. The zero value is a ready to use empty list.
type List[V any] struct {
	front, back *node[V]
	length      int

	// gen is bumped on every structural change. Iterators and cursors
	// remember the gen they were created at and refuse to run on a chain
	// that was relinked behind their back.
	gen uint64
}

type node[V any] struct {
	prev, next *node[V]
	value      V
}

func New[V any]() *List[V] {
	return &List[V]{}
}

// From builds a list holding vs in order.
func From[V any](vs ...V) *List[V] {
	l := New[V]()
	l.Append(vs...)
	return l
}

// Collect builds a list from the values yielded by seq.
func Collect[V any](seq iter.Seq[V]) *List[V] {
	l := New[V]()
	l.Extend(seq)
	return l
}

func (l *List[V]) Len() int {
	return l.length
}

func (l *List[V]) IsEmpty() bool {
	return l.length == 0
}

func (l *List[V]) PushFront(v V) {
	n := &node[V]{value: v}
	if l.front == nil {
		l.back = n
	} else {
		n.next = l.front
		l.front.prev = n
	}
	l.front = n
	l.length++
	l.gen++
}

func (l *List[V]) PushBack(v V) {
	n := &node[V]{value: v}
	if l.back == nil {
		l.front = n
	} else {
		n.prev = l.back
		l.back.next = n
	}
	l.back = n
	l.length++
	l.gen++
}

// PopFront removes the first element and returns it.
// ok is false if the list is empty.
func (l *List[V]) PopFront() (v V, ok bool) {
	n := l.front
	if n == nil {
		return
	}

	l.front = n.next
	if l.front != nil {
		l.front.prev = nil
	} else {
		l.back = nil
	}
	l.length--
	l.gen++
	return release(n), true
}

// PopBack removes the last element and returns it.
// ok is false if the list is empty.
func (l *List[V]) PopBack() (v V, ok bool) {
	n := l.back
	if n == nil {
		return
	}

	l.back = n.prev
	if l.back != nil {
		l.back.next = nil
	} else {
		l.front = nil
	}
	l.length--
	l.gen++
	return release(n), true
}

// release clears a detached node so it pins neither its neighbours
// nor its value, and hands the value back.
func release[V any](n *node[V]) V {
	v := n.value
	var zero V
	n.value = zero
	n.prev = nil
	n.next = nil
	return v
}

func (l *List[V]) Front() (v V, ok bool) {
	if l.front == nil {
		return
	}
	return l.front.value, true
}

func (l *List[V]) Back() (v V, ok bool) {
	if l.back == nil {
		return
	}
	return l.back.value, true
}

// FrontMut returns a pointer to the first element, or nil if the list is empty.
// The pointer stays valid until the element is removed.
func (l *List[V]) FrontMut() *V {
	if l.front == nil {
		return nil
	}
	return &l.front.value
}

// BackMut returns a pointer to the last element, or nil if the list is empty.
func (l *List[V]) BackMut() *V {
	if l.back == nil {
		return nil
	}
	return &l.back.value
}

// Clear removes all elements one by one from the front.
func (l *List[V]) Clear() {
	for l.length > 0 {
		l.PopFront()
	}
}

// Append pushes vs to the back in order.
func (l *List[V]) Append(vs ...V) {
	for _, v := range vs {
		l.PushBack(v)
	}
}

// Extend pushes every value yielded by seq to the back.
func (l *List[V]) Extend(seq iter.Seq[V]) {
	for v := range seq {
		l.PushBack(v)
	}
}

func (l *List[V]) ToSlice() []V {
	s := make([]V, 0, l.length)
	for n := l.front; n != nil; n = n.next {
		s = append(s, n.value)
	}
	return s
}

// Clone returns a shallow copy of l.
func (l *List[V]) Clone() *List[V] {
	c := New[V]()
	for n := l.front; n != nil; n = n.next {
		c.PushBack(n.value)
	}
	return c
}

// take moves the whole chain of l into a new list and leaves l empty.
func (l *List[V]) take() *List[V] {
	out := &List[V]{front: l.front, back: l.back, length: l.length}
	if l.length > 0 {
		l.front, l.back, l.length = nil, nil, 0
		l.gen++
	}
	return out
}

// linkFront and linkBack attach a detached chain of n nodes at one end.
func (l *List[V]) linkFront(front, back *node[V], n int) {
	if l.front == nil {
		l.back = back
	} else {
		back.next = l.front
		l.front.prev = back
	}
	l.front = front
	l.length += n
}

func (l *List[V]) linkBack(front, back *node[V], n int) {
	if l.back == nil {
		l.front = front
	} else {
		front.prev = l.back
		l.back.next = front
	}
	l.back = back
	l.length += n
}

func (l *List[V]) checkGen(gen uint64) {
	if l.gen != gen {
		panic(errConcurrentModification)
	}
}
