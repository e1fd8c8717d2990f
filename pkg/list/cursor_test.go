package list

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func requireIndex[V any](t *testing.T, c *CursorMut[V], want int) {
	t.Helper()
	idx, ok := c.Index()
	require.True(t, ok, "cursor is at the ghost")
	require.Equal(t, want, idx)
}

func requireGhost[V any](t *testing.T, c *CursorMut[V]) {
	t.Helper()
	_, ok := c.Index()
	require.False(t, ok, "cursor is not at the ghost")
	require.True(t, c.IsGhost())
	require.Nil(t, c.Current())
}

func TestCursor_Move(t *testing.T) {
	l := From(1, 2, 3)
	c := l.CursorMut()
	requireGhost(t, c)

	c.MoveNext()
	requireIndex(t, c, 0)
	require.Equal(t, 1, *c.Current())
	c.MoveNext()
	c.MoveNext()
	requireIndex(t, c, 2)
	require.Equal(t, 3, *c.Current())
	c.MoveNext()
	requireGhost(t, c)

	c.MovePrev()
	requireIndex(t, c, 2)
	c.MovePrev()
	requireIndex(t, c, 1)
	require.Equal(t, 2, *c.Current())
	c.MovePrev()
	c.MovePrev()
	requireGhost(t, c)
	c.MoveNext()
	requireIndex(t, c, 0)
}

func TestCursor_EmptyList(t *testing.T) {
	l := New[int]()
	c := l.CursorMut()
	c.MoveNext()
	requireGhost(t, c)
	c.MovePrev()
	requireGhost(t, c)
	require.Nil(t, c.PeekNext())
	require.Nil(t, c.PeekPrev())
	require.True(t, c.SplitAfter().IsEmpty())
	require.True(t, c.SplitBefore().IsEmpty())
}

func TestCursor_IndexMatchesWalk(t *testing.T) {
	const n = 7
	l := New[int]()
	for i := 0; i < n; i++ {
		l.PushBack(i)
	}
	c := l.CursorMut()
	r := rand.New(rand.NewSource(7))

	pos := n // n stands for the ghost
	for i := 0; i < 500; i++ {
		if r.Intn(2) == 0 {
			c.MoveNext()
			pos = (pos + 1) % (n + 1)
		} else {
			c.MovePrev()
			pos = (pos + n) % (n + 1)
		}
		if pos == n {
			requireGhost(t, c)
			continue
		}
		requireIndex(t, c, pos)
		require.Equal(t, pos, *c.Current())
	}
}

func TestCursor_Peek(t *testing.T) {
	l := From(1, 2, 3)
	c := l.CursorMut()
	require.Equal(t, 1, *c.PeekNext())
	require.Equal(t, 3, *c.PeekPrev())

	c.MoveNext()
	require.Equal(t, 2, *c.PeekNext())
	require.Nil(t, c.PeekPrev())

	*c.PeekNext() = 20
	*c.Current() = 10
	c.MovePrev()
	c.MovePrev()
	require.Nil(t, c.PeekNext())
	require.Equal(t, 20, *c.PeekPrev())
	require.Equal(t, []int{10, 20, 3}, l.ToSlice())
}

func TestCursor_Scenario(t *testing.T) {
	l := New[int]()
	l.PushBack(1)
	l.PushBack(2)
	l.PushBack(3)
	require.Equal(t, []int{1, 2, 3}, l.ToSlice())

	v, _ := l.PopFront()
	require.Equal(t, 1, v)

	c := l.CursorMut()
	c.MoveNext()
	requireIndex(t, c, 0)
	require.Equal(t, 2, *c.Current())
	c.MoveNext()
	requireIndex(t, c, 1)
	require.Equal(t, 3, *c.Current())

	c.MovePrev()
	tail := c.SplitAfter()
	require.Equal(t, []int{3}, tail.ToSlice())
	require.Equal(t, []int{2}, l.ToSlice())
	requireIndex(t, c, 0)
	checkList(t, l)
	checkList(t, tail)
}

func TestCursor_SplitBefore(t *testing.T) {
	l := From(1, 2, 3, 4, 5)
	c := l.CursorMut()
	c.MoveNext()
	c.MoveNext()
	c.MoveNext()

	head := c.SplitBefore()
	require.Equal(t, []int{1, 2}, head.ToSlice())
	require.Equal(t, []int{3, 4, 5}, l.ToSlice())
	requireIndex(t, c, 0)
	require.Equal(t, 3, *c.Current())
	checkList(t, l)
	checkList(t, head)

	// at the front nothing is cut off
	head = c.SplitBefore()
	require.True(t, head.IsEmpty())
	require.Equal(t, 3, l.Len())

	// the cursor keeps working on the shortened list
	c.MovePrev()
	requireGhost(t, c)
	c.MovePrev()
	requireIndex(t, c, 2)
	require.Equal(t, 5, *c.Current())
}

func TestCursor_SplitAfter(t *testing.T) {
	l := From(1, 2, 3, 4, 5)
	c := l.CursorMut()
	c.MoveNext()
	c.MoveNext()

	tail := c.SplitAfter()
	require.Equal(t, []int{3, 4, 5}, tail.ToSlice())
	require.Equal(t, []int{1, 2}, l.ToSlice())
	requireIndex(t, c, 1)
	checkList(t, l)
	checkList(t, tail)

	tail = c.SplitAfter()
	require.True(t, tail.IsEmpty())
	c.MoveNext()
	requireGhost(t, c)
}

func TestCursor_SplitAtGhost(t *testing.T) {
	for _, split := range []func(*CursorMut[int]) *List[int]{
		(*CursorMut[int]).SplitBefore,
		(*CursorMut[int]).SplitAfter,
	} {
		l := From(1, 2, 3)
		c := l.CursorMut()
		out := split(c)
		require.Equal(t, []int{1, 2, 3}, out.ToSlice())
		require.True(t, l.IsEmpty())
		requireGhost(t, c)
		checkList(t, l)
		checkList(t, out)

		c.MoveNext()
		requireGhost(t, c)
	}
}

func TestCursor_SpliceBefore(t *testing.T) {
	l := From(1, 2, 5)
	c := l.CursorMut()
	c.MoveNext()
	c.MoveNext()
	c.MoveNext()

	other := From(3, 4)
	c.SpliceBefore(other)
	require.Equal(t, []int{1, 2, 3, 4, 5}, l.ToSlice())
	require.True(t, other.IsEmpty())
	checkList(t, other)
	requireIndex(t, c, 4)
	require.Equal(t, 5, *c.Current())
	checkList(t, l)

	// at the front the inserted chain becomes the new front
	c.MovePrev()
	c.MovePrev()
	c.MovePrev()
	c.MovePrev()
	requireIndex(t, c, 0)
	c.SpliceBefore(From(-1, 0))
	require.Equal(t, []int{-1, 0, 1, 2, 3, 4, 5}, l.ToSlice())
	requireIndex(t, c, 2)
	require.Equal(t, 1, *c.Current())
	checkList(t, l)
}

func TestCursor_SpliceAfter(t *testing.T) {
	l := From(1, 4)
	c := l.CursorMut()
	c.MoveNext()

	c.SpliceAfter(From(2, 3))
	require.Equal(t, []int{1, 2, 3, 4}, l.ToSlice())
	requireIndex(t, c, 0)
	require.Equal(t, 2, *c.PeekNext())
	checkList(t, l)

	// at the back the inserted chain becomes the new back
	c.MovePrev()
	c.MovePrev()
	requireIndex(t, c, 3)
	c.SpliceAfter(From(5, 6))
	require.Equal(t, []int{1, 2, 3, 4, 5, 6}, l.ToSlice())
	requireIndex(t, c, 3)
	checkList(t, l)
	b, _ := l.Back()
	require.Equal(t, 6, b)
}

func TestCursor_SpliceAtGhost(t *testing.T) {
	l := From(2, 3)
	c := l.CursorMut()
	c.SpliceBefore(From(4, 5))
	require.Equal(t, []int{2, 3, 4, 5}, l.ToSlice())
	c.SpliceAfter(From(0, 1))
	require.Equal(t, []int{0, 1, 2, 3, 4, 5}, l.ToSlice())
	requireGhost(t, c)
	checkList(t, l)

	empty := New[int]()
	ec := empty.CursorMut()
	ec.SpliceAfter(From(1, 2))
	require.Equal(t, []int{1, 2}, empty.ToSlice())
	checkList(t, empty)

	empty = New[int]()
	ec = empty.CursorMut()
	ec.SpliceBefore(From(1, 2))
	require.Equal(t, []int{1, 2}, empty.ToSlice())
	checkList(t, empty)
}

func TestCursor_SpliceEmpty(t *testing.T) {
	l := From(1, 2)
	c := l.CursorMut()
	c.MoveNext()
	c.SpliceBefore(New[int]())
	c.SpliceAfter(New[int]())
	c.SpliceAfter(nil)
	require.Equal(t, []int{1, 2}, l.ToSlice())
	requireIndex(t, c, 0)

	// an empty splice does not invalidate other views
	it := l.Iter()
	c.SpliceBefore(New[int]())
	v, ok := it.Next()
	require.True(t, ok)
	require.Equal(t, 1, v)
}

func TestCursor_SpliceSelf(t *testing.T) {
	l := From(1, 2)
	c := l.CursorMut()
	require.Panics(t, func() { c.SpliceBefore(l) })
}

func TestCursor_SplitSpliceRoundTrip(t *testing.T) {
	s := []int{0, 1, 2, 3, 4, 5, 6, 7}
	for i := range s {
		l := From(s...)
		c := l.CursorMut()
		for j := 0; j <= i; j++ {
			c.MoveNext()
		}
		requireIndex(t, c, i)

		head := c.SplitBefore()
		require.Equal(t, i, head.Len())
		require.Equal(t, len(s)-i, l.Len())
		c.SpliceBefore(head)
		require.Equal(t, s, l.ToSlice())
		requireIndex(t, c, i)
		checkList(t, l)

		tail := c.SplitAfter()
		c.SpliceAfter(tail)
		require.Equal(t, s, l.ToSlice())
		requireIndex(t, c, i)
		checkList(t, l)
	}
}

func TestCursor_Invalidated(t *testing.T) {
	l := From(1, 2, 3)
	c := l.CursorMut()
	c.MoveNext()
	l.PushBack(4)
	require.PanicsWithValue(t, errConcurrentModification, func() { c.MoveNext() })
	require.PanicsWithValue(t, errConcurrentModification, func() { c.Current() })

	// surgery through a cursor keeps that cursor valid but invalidates others
	a, b := l.CursorMut(), l.CursorMut()
	a.MoveNext()
	a.MoveNext()
	_ = a.SplitAfter()
	a.MovePrev()
	requireIndex(t, a, 0)
	require.PanicsWithValue(t, errConcurrentModification, func() { b.MoveNext() })

	// a split that cuts nothing off leaves other views valid
	it := l.Iter()
	d := l.CursorMut()
	d.MovePrev()
	rest := d.SplitAfter()
	require.True(t, rest.IsEmpty())
	v, ok := it.Next()
	require.True(t, ok)
	require.Equal(t, 1, v)
}

func TestCursor_SpliceInvalidatesSource(t *testing.T) {
	l := From(1)
	other := From(2, 3)
	it := other.Iter()

	c := l.CursorMut()
	c.SpliceAfter(other)
	require.Equal(t, 0, other.Len())
	require.PanicsWithValue(t, errConcurrentModification, func() { it.Next() })
}
