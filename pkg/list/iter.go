package list

import "iter"

// Iter is a read-only iterator that can be consumed from both ends.
// The remaining count, not pointer equality, decides when the two ends have met.
type Iter[V any] struct {
	l           *List[V]
	front, back *node[V]
	remain      int
	gen         uint64
}

func (l *List[V]) Iter() *Iter[V] {
	return &Iter[V]{l: l, front: l.front, back: l.back, remain: l.length, gen: l.gen}
}

// Len returns the number of elements not yet yielded.
func (it *Iter[V]) Len() int {
	return it.remain
}

func (it *Iter[V]) Next() (v V, ok bool) {
	if it.remain == 0 {
		return
	}
	it.l.checkGen(it.gen)
	n := it.front
	it.front = n.next
	it.remain--
	return n.value, true
}

func (it *Iter[V]) NextBack() (v V, ok bool) {
	if it.remain == 0 {
		return
	}
	it.l.checkGen(it.gen)
	n := it.back
	it.back = n.prev
	it.remain--
	return n.value, true
}

// IterMut is like Iter but yields pointers to the elements. Each element is
// yielded at most once, so no two live pointers returned by the same IterMut
// refer to the same element.
type IterMut[V any] struct {
	l           *List[V]
	front, back *node[V]
	remain      int
	gen         uint64
}

func (l *List[V]) IterMut() *IterMut[V] {
	return &IterMut[V]{l: l, front: l.front, back: l.back, remain: l.length, gen: l.gen}
}

func (it *IterMut[V]) Len() int {
	return it.remain
}

func (it *IterMut[V]) Next() *V {
	if it.remain == 0 {
		return nil
	}
	it.l.checkGen(it.gen)
	n := it.front
	it.front = n.next
	it.remain--
	return &n.value
}

func (it *IterMut[V]) NextBack() *V {
	if it.remain == 0 {
		return nil
	}
	it.l.checkGen(it.gen)
	n := it.back
	it.back = n.prev
	it.remain--
	return &n.value
}

// IntoIter owns the nodes of a drained list and hands out the values by
// popping them.
type IntoIter[V any] struct {
	l *List[V]
}

// Drain moves all elements of l into the returned iterator. l is left empty
// and may be reused right away.
func (l *List[V]) Drain() *IntoIter[V] {
	return &IntoIter[V]{l: l.take()}
}

func (it *IntoIter[V]) Len() int {
	return it.l.Len()
}

func (it *IntoIter[V]) Next() (V, bool) {
	return it.l.PopFront()
}

func (it *IntoIter[V]) NextBack() (V, bool) {
	return it.l.PopBack()
}

// All returns an iterator over the elements from front to back.
// The list must not be structurally modified during the iteration.
func (l *List[V]) All() iter.Seq[V] {
	return func(yield func(V) bool) {
		gen := l.gen
		for n := l.front; n != nil; n = n.next {
			if !yield(n.value) {
				return
			}
			l.checkGen(gen)
		}
	}
}

// Backward returns an iterator over the elements from back to front.
func (l *List[V]) Backward() iter.Seq[V] {
	return func(yield func(V) bool) {
		gen := l.gen
		for n := l.back; n != nil; n = n.prev {
			if !yield(n.value) {
				return
			}
			l.checkGen(gen)
		}
	}
}

// Mutable returns an iterator over pointers to the elements from front to back.
func (l *List[V]) Mutable() iter.Seq[*V] {
	return func(yield func(*V) bool) {
		gen := l.gen
		for n := l.front; n != nil; n = n.next {
			if !yield(&n.value) {
				return
			}
			l.checkGen(gen)
		}
	}
}

// Seq adapts the consuming iterator to a range-over-func sequence.
func (it *IntoIter[V]) Seq() iter.Seq[V] {
	return func(yield func(V) bool) {
		for {
			v, ok := it.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}
