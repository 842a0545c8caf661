// Package collaborators models the two external collaborators the core
// engine depends on but does not itself implement: the payload RNG used by
// Create, and the large working buffer used by Sort.
package collaborators

import "math/rand/v2"

// RNG produces bounded pseudo-random uint32 values for Create's payload
// fill.
type RNG interface {
	NextU32Bounded(bound uint32) uint32
}

// DefaultRNG is backed by math/rand/v2, generalising the same generator the
// teacher's skip list already reaches for when picking node levels.
type DefaultRNG struct{}

func (DefaultRNG) NextU32Bounded(bound uint32) uint32 {
	return rand.Uint32N(bound)
}

// LargeBuffer acquires and releases the fixed-size buffer that Sort holds
// for the duration of each sort. The sort engine does not read or write
// through this buffer: its run segments and merge windows are separate Go
// slices allocated per call. Real huge-page acquisition is an OS-level
// collaborator out of scope for this engine; Acquire always returns a plain
// slab the caller is free to treat as a mutable byte region.
type LargeBuffer interface {
	Acquire(size int) []byte
	Release(buf []byte)
}

// DefaultLargeBuffer allocates an ordinary Go slice.
type DefaultLargeBuffer struct{}

func (DefaultLargeBuffer) Acquire(size int) []byte { return make([]byte, size) }
func (DefaultLargeBuffer) Release([]byte)          {}
