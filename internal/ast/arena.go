package ast

import (
	"fmt"

	"fortio.org/safecast"
)

// Arena is a flat, append-only store returning 1-based handles so the
// zero value of an arena ID type means "absent".
type Arena[T any] struct {
	data []T
}

func NewArena[T any](capHint int) *Arena[T] {
	return &Arena[T]{data: make([]T, 0, capHint)}
}

func (a *Arena[T]) Allocate(value T) uint32 {
	a.data = append(a.data, value)
	n, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("ast: arena overflow: %w", err))
	}
	return n
}

func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 || int(index) > len(a.data) {
		return nil
	}
	return &a.data[index-1]
}

func (a *Arena[T]) Len() uint32 { return uint32(len(a.data)) }

func (a *Arena[T]) Slice() []T { return a.data }
