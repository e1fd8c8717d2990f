package list

// CursorMut points either at an element of a list or at the "ghost"
// position, which sits after the back and before the front at the same time.
// Moving past either end lands on the ghost; moving from the ghost wraps to
// the corresponding end.
//
// A cursor is only valid while the list is changed through the cursor
// itself. Any other structural change invalidates it and its next use panics.
type CursorMut[V any] struct {
	list *List[V]
	cur  *node[V] // nil at the ghost
	idx  int
	gen  uint64
}

// CursorMut returns a cursor positioned at the ghost.
func (l *List[V]) CursorMut() *CursorMut[V] {
	return &CursorMut[V]{list: l, gen: l.gen}
}

// Index returns the position of the current element.
// ok is false at the ghost.
func (c *CursorMut[V]) Index() (idx int, ok bool) {
	if c.cur == nil {
		return 0, false
	}
	return c.idx, true
}

// IsGhost reports whether the cursor is at the ghost position.
func (c *CursorMut[V]) IsGhost() bool {
	return c.cur == nil
}

func (c *CursorMut[V]) MoveNext() {
	c.list.checkGen(c.gen)
	switch {
	case c.cur != nil:
		c.cur = c.cur.next
		if c.cur != nil {
			c.idx++
		} else {
			c.idx = 0
		}
	case c.list.front != nil:
		c.cur = c.list.front
		c.idx = 0
	}
}

func (c *CursorMut[V]) MovePrev() {
	c.list.checkGen(c.gen)
	switch {
	case c.cur != nil:
		c.cur = c.cur.prev
		if c.cur != nil {
			c.idx--
		} else {
			c.idx = 0
		}
	case c.list.back != nil:
		c.cur = c.list.back
		c.idx = c.list.length - 1
	}
}

// Current returns a pointer to the current element, or nil at the ghost.
func (c *CursorMut[V]) Current() *V {
	c.list.checkGen(c.gen)
	if c.cur == nil {
		return nil
	}
	return &c.cur.value
}

// PeekNext returns a pointer to the element MoveNext would land on, or nil
// if that is the ghost.
func (c *CursorMut[V]) PeekNext() *V {
	c.list.checkGen(c.gen)
	n := c.list.front
	if c.cur != nil {
		n = c.cur.next
	}
	if n == nil {
		return nil
	}
	return &n.value
}

// PeekPrev returns a pointer to the element MovePrev would land on, or nil
// if that is the ghost.
func (c *CursorMut[V]) PeekPrev() *V {
	c.list.checkGen(c.gen)
	n := c.list.back
	if c.cur != nil {
		n = c.cur.prev
	}
	if n == nil {
		return nil
	}
	return &n.value
}

// SplitBefore cuts off everything before the current element and returns it
// as a new list. The current element becomes the front, so the index resets
// to 0. At the ghost the whole list is returned and the cursor's list is
// left empty.
func (c *CursorMut[V]) SplitBefore() *List[V] {
	l := c.list
	l.checkGen(c.gen)
	if c.cur == nil {
		out := l.take()
		c.gen = l.gen
		return out
	}

	out := New[V]()
	if prev := c.cur.prev; prev != nil {
		out.front, out.back, out.length = l.front, prev, c.idx
		prev.next = nil
		c.cur.prev = nil
		l.front = c.cur
		l.length -= c.idx
		c.commit()
	}
	c.idx = 0
	return out
}

// SplitAfter cuts off everything after the current element and returns it
// as a new list. The index is unchanged. At the ghost the whole list is
// returned and the cursor's list is left empty.
func (c *CursorMut[V]) SplitAfter() *List[V] {
	l := c.list
	l.checkGen(c.gen)
	if c.cur == nil {
		out := l.take()
		c.gen = l.gen
		return out
	}

	out := New[V]()
	if next := c.cur.next; next != nil {
		out.front, out.back, out.length = next, l.back, l.length-c.idx-1
		next.prev = nil
		c.cur.next = nil
		l.back = c.cur
		l.length = c.idx + 1
		c.commit()
	}
	return out
}

// SpliceBefore moves all elements of other in between the current element
// and its predecessor, keeping their order. The index shifts by the number
// of inserted elements. At the ghost the elements are appended at the back.
// other is left empty.
func (c *CursorMut[V]) SpliceBefore(other *List[V]) {
	front, back, n := c.absorb(other)
	if n == 0 {
		return
	}

	l := c.list
	if c.cur == nil {
		l.linkBack(front, back, n)
	} else {
		if prev := c.cur.prev; prev != nil {
			prev.next = front
			front.prev = prev
		} else {
			l.front = front
		}
		back.next = c.cur
		c.cur.prev = back
		l.length += n
		c.idx += n
	}
	c.commit()
}

// SpliceAfter moves all elements of other in between the current element
// and its successor, keeping their order. The index is unchanged. At the
// ghost the elements are prepended at the front. other is left empty.
func (c *CursorMut[V]) SpliceAfter(other *List[V]) {
	front, back, n := c.absorb(other)
	if n == 0 {
		return
	}

	l := c.list
	if c.cur == nil {
		l.linkFront(front, back, n)
	} else {
		if next := c.cur.next; next != nil {
			next.prev = back
			back.next = next
		} else {
			l.back = back
		}
		front.prev = c.cur
		c.cur.next = front
		l.length += n
	}
	c.commit()
}

// absorb empties other and returns its chain.
func (c *CursorMut[V]) absorb(other *List[V]) (front, back *node[V], n int) {
	c.list.checkGen(c.gen)
	if other == nil || other.length == 0 {
		return nil, nil, 0
	}
	if other == c.list {
		panic("list: splice of a list into itself")
	}
	chain := other.take()
	return chain.front, chain.back, chain.length
}

func (c *CursorMut[V]) commit() {
	c.list.gen++
	c.gen = c.list.gen
}
