package list

import (
	"cmp"
	"encoding/binary"
	"fmt"
	"hash/maphash"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Equal reports whether a and b have the same length and equal elements
// in the same order.
func Equal[V comparable](a, b *List[V]) bool {
	return EqualFunc(a, b, func(x, y V) bool { return x == y })
}

func EqualFunc[V1, V2 any](a *List[V1], b *List[V2], eq func(V1, V2) bool) bool {
	if a.length != b.length {
		return false
	}
	for x, y := a.front, b.front; x != nil; x, y = x.next, y.next {
		if !eq(x.value, y.value) {
			return false
		}
	}
	return true
}

// Compare compares a and b lexicographically. A list that is a strict
// prefix of the other is the smaller one.
func Compare[V cmp.Ordered](a, b *List[V]) int {
	return CompareFunc(a, b, cmp.Compare[V])
}

func CompareFunc[V1, V2 any](a *List[V1], b *List[V2], cmp func(V1, V2) int) int {
	x, y := a.front, b.front
	for ; x != nil && y != nil; x, y = x.next, y.next {
		if c := cmp(x.value, y.value); c != 0 {
			return c
		}
	}
	switch {
	case x == nil && y == nil:
		return 0
	case x == nil:
		return -1
	default:
		return 1
	}
}

// Hash returns an order sensitive hash of l. The length is hashed first,
// then every element from front to back.
func Hash[V comparable](seed maphash.Seed, l *List[V]) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)

	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(l.length))
	h.Write(b[:])
	for n := l.front; n != nil; n = n.next {
		maphash.WriteComparable(&h, n.value)
	}
	return h.Sum64()
}

// String renders l like a slice, e.g. "[1 2 3]".
func (l *List[V]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for n := l.front; n != nil; n = n.next {
		if n != l.front {
			sb.WriteByte(' ')
		}
		fmt.Fprint(&sb, n.value)
	}
	sb.WriteByte(']')
	return sb.String()
}

// MarshalLogArray implements zapcore.ArrayMarshaler so a list can be logged
// with zap.Array.
func (l *List[V]) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for n := l.front; n != nil; n = n.next {
		if err := enc.AppendReflected(n.value); err != nil {
			return err
		}
	}
	return nil
}
