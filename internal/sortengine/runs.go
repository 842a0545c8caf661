package sortengine

import "slices"

// generateRuns is Phase A: partition the file into ceil(N/M) consecutive
// segments of up to M integers each, sort each segment in place. After this
// the file holds R sorted runs of length M, except possibly the last.
func (e *Engine) generateRuns(startOffset uint64, n int) error {
	seg := make([]int32, 0, ramBudgetInts)

	for start := 0; start < n; start += ramBudgetInts {
		end := start + ramBudgetInts
		if end > n {
			end = n
		}
		segLen := end - start

		seg = seg[:segLen]
		if err := e.fsys.ReadInts(int64(startOffset)+int64(start)*4, seg); err != nil {
			return err
		}

		slices.Sort(seg)

		if err := e.fsys.WriteInts(int64(startOffset)+int64(start)*4, seg); err != nil {
			return err
		}
	}

	return e.fsys.Flush()
}
