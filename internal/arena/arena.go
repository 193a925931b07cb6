// Package arena provides a bump allocator backing the compiler's arena-owned
// data structures (AST nodes, symbols, interned types). Nodes are allocated
// in 64 KB chunks and are never individually freed; the arena is dropped as
// one unit at the end of a compilation.
package arena

import (
	"fmt"
	"unsafe"

	"fortio.org/safecast"
)

// DefaultChunkBytes is the default size of a single arena chunk.
const DefaultChunkBytes = 64 * 1024

// Id is a 1-based handle into an Arena[T]. The zero value, NoId, never
// refers to a live element, which lets arena-backed optional fields use
// Id's zero value as "absent" without a separate boolean.
type Id uint32

// NoId is the invalid/absent handle.
const NoId Id = 0

// IsValid reports whether id refers to a live element.
func (id Id) IsValid() bool { return id != NoId }

// Arena is a typed bump allocator. It grows by appending fixed-capacity
// chunks sized so each chunk holds roughly DefaultChunkBytes of T; once a
// chunk is full a new one is appended rather than reallocating in place, so
// every Id handed out by Alloc stays valid (and every *T from Get stays
// stable) for the arena's lifetime.
//
// Arena is not safe for concurrent allocation; each compilation unit owns
// an independent arena.
type Arena[T any] struct {
	chunks   [][]T
	chunkLen int
	length   uint32
}

// New creates an empty Arena sized to fit roughly DefaultChunkBytes worth
// of T per chunk.
func New[T any]() *Arena[T] {
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	if elemSize == 0 {
		elemSize = 1
	}
	chunkLen := DefaultChunkBytes / elemSize
	if chunkLen < 16 {
		chunkLen = 16
	}
	return &Arena[T]{chunkLen: chunkLen}
}

// Alloc copies v into the arena and returns a stable handle to it.
func (a *Arena[T]) Alloc(v T) Id {
	idx := a.length
	chunkIdx := int(idx) / a.chunkLen
	if chunkIdx >= len(a.chunks) {
		a.chunks = append(a.chunks, make([]T, 0, a.chunkLen))
	}
	a.chunks[chunkIdx] = append(a.chunks[chunkIdx], v)
	a.length++
	id, err := safecast.Conv[Id](a.length)
	if err != nil {
		panic(fmt.Errorf("arena: length overflow: %w", err))
	}
	return id
}

// Get returns a pointer to the element identified by id, or nil for NoId.
// The pointer remains valid for the arena's lifetime; it must not be used
// after the arena is discarded.
func (a *Arena[T]) Get(id Id) *T {
	if id == NoId {
		return nil
	}
	idx := uint32(id) - 1
	chunkIdx := int(idx) / a.chunkLen
	slot := int(idx) % a.chunkLen
	if chunkIdx >= len(a.chunks) {
		return nil
	}
	return &a.chunks[chunkIdx][slot]
}

// Len reports how many elements have been allocated.
func (a *Arena[T]) Len() uint32 { return a.length }

// Stats reports the number of chunks in use and the approximate number of
// bytes occupied by live elements, for debug/diagnostic dumps.
func (a *Arena[T]) Stats() (chunks int, bytesUsed int) {
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	return len(a.chunks), int(a.length) * elemSize
}

// Each calls fn for every allocated element in allocation order.
func (a *Arena[T]) Each(fn func(id Id, v *T)) {
	var n uint32
	for _, chunk := range a.chunks {
		for i := range chunk {
			n++
			fn(Id(n), &chunk[i])
		}
	}
}

// AppendAll copies every element of src into a, in allocation order, and
// returns the offset to add to a source Id to obtain its new Id in a
// (new == old + offset). This holds because arena elements are 1-based,
// dense, and never individually freed, so src's relative ordering survives
// the copy intact; it lets a caller fold one arena's entire contents into
// another's and then renumber any Id that pointed into src by a single
// addition, rather than tracking a per-element remapping table.
func (a *Arena[T]) AppendAll(src *Arena[T]) Id {
	offset, err := safecast.Conv[Id](a.length)
	if err != nil {
		panic(fmt.Errorf("arena: length overflow: %w", err))
	}
	src.Each(func(_ Id, v *T) {
		a.Alloc(*v)
	})
	return offset
}
