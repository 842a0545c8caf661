package sortengine

import "github.com/agar64/University-OS-Assignment02/internal/fs"

// run is an inclusive index range [start, end] within F.
type run struct {
	start, end int
}

func (r run) size() int { return r.end - r.start + 1 }

// window sizes: 40% / 40% / 20% of the in-RAM integer capacity, sized so
// their combined footprint never exceeds ramBudgetInts (P6).
func windowSizes() (in1, in2, out int) {
	in1 = (ramBudgetInts * 2) / 5
	in2 = in1
	out = ramBudgetInts - in1 - in2
	return
}

// sortExternal is Phase A + Phase B of the slow path: generate sorted runs,
// then repeatedly merge adjacent run pairs with doubling run size until a
// single run spans the whole file.
func (e *Engine) sortExternal(startOffset uint64, n int) error {
	if err := e.generateRuns(startOffset, n); err != nil {
		return err
	}

	if err := e.fsys.CreatePagefile(2 * n); err != nil {
		return err
	}
	pagefile, err := e.fsys.EntryByName(fs.PagefileName)
	if err != nil {
		return err
	}

	runSize := ramBudgetInts
	for runSize < n {
		for i := 0; i < n; i += 2 * runSize {
			end1 := i + runSize - 1
			if end1 >= n {
				end1 = n - 1
			}
			r1 := run{start: i, end: end1}

			if r1.end+1 >= n {
				continue // lone tail run, already sorted, left in place
			}

			end2 := r1.end + runSize
			if end2 >= n {
				end2 = n - 1
			}
			r2 := run{start: r1.end + 1, end: end2}

			if err := e.merge(startOffset, pagefile.StartOffset, r1, r2); err != nil {
				return err
			}
		}
		runSize *= 2
	}

	if err := e.fsys.Delete(fs.PagefileName); err != nil {
		return err
	}
	return e.fsys.Flush()
}


// merge merges the two sorted, adjacent runs r1 and r2 of F (both runs
// given as index ranges into F's integers) through the three-window
// buffer, staging the merged output in pagefile before copying it back
// over F. Ties between the two runs favor r1, keeping the merge stable.
func (e *Engine) merge(fStart, pageStart uint64, r1, r2 run) error {
	in1Cap, in2Cap, outCap := windowSizes()

	in1 := make([]int32, in1Cap)
	in2 := make([]int32, in2Cap)
	out := make([]int32, outCap)

	pos1, pos2 := r1.start, r2.start
	in1Len, in2Len := 0, 0
	in1Idx, in2Idx := 0, 0
	outLen := 0
	outPos := 0

	refill1 := func() error {
		if in1Idx < in1Len || pos1 > r1.end {
			return nil
		}
		remaining := r1.end - pos1 + 1
		count := in1Cap
		if remaining < count {
			count = remaining
		}
		if err := e.fsys.ReadInts(int64(fStart)+int64(pos1)*4, in1[:count]); err != nil {
			return err
		}
		in1Len, in1Idx = count, 0
		pos1 += count
		return nil
	}

	refill2 := func() error {
		if in2Idx < in2Len || pos2 > r2.end {
			return nil
		}
		remaining := r2.end - pos2 + 1
		count := in2Cap
		if remaining < count {
			count = remaining
		}
		if err := e.fsys.ReadInts(int64(fStart)+int64(pos2)*4, in2[:count]); err != nil {
			return err
		}
		in2Len, in2Idx = count, 0
		pos2 += count
		return nil
	}

	flushOut := func() error {
		if outLen == 0 {
			return nil
		}
		if err := e.fsys.WriteInts(int64(pageStart)+int64(outPos)*4, out[:outLen]); err != nil {
			return err
		}
		outPos += outLen
		outLen = 0
		return nil
	}

	if err := refill1(); err != nil {
		return err
	}
	if err := refill2(); err != nil {
		return err
	}

	for in1Idx < in1Len || in2Idx < in2Len {
		var v int32
		switch {
		case in1Idx < in1Len && (in2Idx >= in2Len || in1[in1Idx] <= in2[in2Idx]):
			v = in1[in1Idx]
			in1Idx++
		default:
			v = in2[in2Idx]
			in2Idx++
		}

		out[outLen] = v
		outLen++

		if outLen == outCap {
			if err := flushOut(); err != nil {
				return err
			}
		}

		if in1Idx == in1Len {
			if err := refill1(); err != nil {
				return err
			}
		}
		if in2Idx == in2Len {
			if err := refill2(); err != nil {
				return err
			}
		}
	}

	if err := flushOut(); err != nil {
		return err
	}

	mergedSize := r1.size() + r2.size()
	return e.copyBack(fStart, pageStart, r1.start, mergedSize, outCap)
}

// copyBack copies total integers from the start of pagefile back into F
// starting at integer position fDestStart, in chunks sized to the merge's
// output window.
func (e *Engine) copyBack(fStart, pageStart uint64, fDestStart, total, chunk int) error {
	readPos := 0
	buf := make([]int32, chunk)

	for readPos < total {
		n := chunk
		if total-readPos < n {
			n = total - readPos
		}

		if err := e.fsys.ReadInts(int64(pageStart)+int64(readPos)*4, buf[:n]); err != nil {
			return err
		}
		if err := e.fsys.WriteInts(int64(fStart)+int64(fDestStart+readPos)*4, buf[:n]); err != nil {
			return err
		}
		readPos += n
	}

	return e.fsys.Flush()
}
