// Package bitmap implements the block allocator: one bit per 4 KiB block of
// the data region, with first-fit contiguous-range allocation.
package bitmap

import (
	"io"

	"github.com/bits-and-blooms/bitset"

	"github.com/agar64/University-OS-Assignment02/internal/fserr"
)

// BlockSize is the allocation granularity, in bytes.
const BlockSize = 4096

// Bitmap tracks free/used state for NumBlocks blocks. A set bit means the
// block is allocated. The bit storage is a word-backed bitset.BitSet rather
// than a hand-rolled byte/shift pair, which also lets the first-fit scan
// below skip whole all-ones words via NextClear instead of testing bit by
// bit.
type Bitmap struct {
	bits      *bitset.BitSet
	numBlocks uint
}

// New creates an all-free bitmap covering numBlocks blocks.
func New(numBlocks uint) *Bitmap {
	return &Bitmap{bits: bitset.New(numBlocks), numBlocks: numBlocks}
}

// IsFree reports whether block is currently unallocated.
func (bm *Bitmap) IsFree(block uint) bool {
	return !bm.bits.Test(block)
}

// Mark sets or clears the bits for [block, block+count).
func (bm *Bitmap) Mark(block, count uint, used bool) {
	for i := block; i < block+count; i++ {
		if used {
			bm.bits.Set(i)
		} else {
			bm.bits.Clear(i)
		}
	}
}

// blocksFor returns ceil(nBytes / BlockSize).
func blocksFor(nBytes uint64) uint {
	return uint((nBytes + BlockSize - 1) / BlockSize)
}

// AllocateContiguous finds the lowest-addressed run of free blocks able to
// hold nBytes, marks them used, and returns the byte offset of the run's
// first block. It returns a *fserr.Error of kind NoSpace if no such run
// exists before numBlocks is exhausted.
func (bm *Bitmap) AllocateContiguous(nBytes uint64) (uint64, error) {
	needed := blocksFor(nBytes)
	if needed == 0 {
		needed = 1
	}

	var runStart uint
	var runLen uint
	haveRun := false

	i := uint(0)
	for i < bm.numBlocks {
		if !bm.bits.Test(i) {
			if !haveRun {
				runStart = i
				haveRun = true
			}
			runLen++
			if runLen == needed {
				bm.Mark(runStart, needed, true)
				return uint64(runStart) * BlockSize, nil
			}
			i++
			continue
		}

		// i is used: jump ahead to the next clear bit instead of testing
		// every bit of a long occupied run.
		haveRun = false
		runLen = 0
		next, ok := bm.bits.NextClear(i + 1)
		if !ok || next >= bm.numBlocks {
			break
		}
		i = next
	}

	return 0, fserr.New(fserr.NoSpace, "bitmap.AllocateContiguous", "")
}

// FreeRange clears the blocks backing [offset, offset+nBytes).
func (bm *Bitmap) FreeRange(offset, nBytes uint64) {
	block := uint(offset / BlockSize)
	count := blocksFor(nBytes)
	if count == 0 {
		// AllocateContiguous reserves one block even for a 0-byte request.
		count = 1
	}
	bm.Mark(block, count, false)
}

// IsRangeFree reports whether every block backing [offset, offset+nBytes)
// is currently unallocated. Used by Concatenate to check the tail is free
// before extending a file in place.
func (bm *Bitmap) IsRangeFree(offset, nBytes uint64) bool {
	block := uint(offset / BlockSize)
	count := blocksFor(nBytes)
	for i := block; i < block+count; i++ {
		if i >= bm.numBlocks || bm.bits.Test(i) {
			return false
		}
	}
	return true
}

// WriteTo serialises the bitmap for the metadata region.
func (bm *Bitmap) WriteTo(w io.Writer) (int64, error) {
	return bm.bits.WriteTo(w)
}

// ReadFrom loads a bitmap previously written by WriteTo.
func (bm *Bitmap) ReadFrom(r io.Reader) (int64, error) {
	n, err := bm.bits.ReadFrom(r)
	if err != nil {
		return n, err
	}
	bm.numBlocks = bm.bits.Len()
	return n, nil
}
