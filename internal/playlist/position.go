package playlist

import (
	"math"
	"sort"
)

// insertionPoint returns the position in the ascending indices at which new
// entries go. With before, new entries precede an existing entry equal to
// index; otherwise they follow it.
func insertionPoint(indices []int64, index int64, before bool) int {
	if before {
		return sort.Search(len(indices), func(i int) bool { return indices[i] >= index })
	}
	return sort.Search(len(indices), func(i int) bool { return indices[i] > index })
}

// firstNewIndex is the index of the first inserted entry, where point is the
// insertionPoint for index. New entries start at index unless they follow an
// existing entry equal to it. ok is false when index+1 leaves the int64 range.
func firstNewIndex(indices []int64, point int, index int64, before bool) (start int64, ok bool) {
	if before || point == 0 || indices[point-1] != index {
		return index, true
	}
	if index == math.MaxInt64 {
		return 0, false
	}
	return index + 1, true
}

// addInt64 returns a+b and whether the sum stayed in the int64 range.
func addInt64(a, b int64) (int64, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, false
	}
	return sum, true
}

// lagsBy reports whether index is more than n entries behind marker.
func lagsBy(marker, index, n int64) bool {
	if index >= marker {
		return false
	}
	d := marker - index
	return d < 0 || d > n
}

// overflows reports whether k new entries from start, or shifting the largest
// index up by k, leave the int64 range.
func overflows(indices []int64, start, k int64) bool {
	if k > 0 && start > math.MaxInt64-(k-1) {
		return true
	}
	if len(indices) == 0 {
		return false
	}
	return indices[len(indices)-1] > math.MaxInt64-k
}

// shiftCalculator computes downward shifts after removal. It keeps the pure
// position arithmetic apart from the filesystem operations.
type shiftCalculator struct {
	removed []int64 // ascending
}

func newShiftCalculator(removed []int64) *shiftCalculator {
	sorted := append([]int64(nil), removed...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return &shiftCalculator{removed: sorted}
}

// below counts removed indices strictly less than index.
func (c *shiftCalculator) below(index int64) int64 {
	return int64(sort.Search(len(c.removed), func(i int) bool { return c.removed[i] >= index }))
}

// isRemoved reports whether index is being removed.
func (c *shiftCalculator) isRemoved(index int64) bool {
	i := sort.Search(len(c.removed), func(i int) bool { return c.removed[i] >= index })
	return i < len(c.removed) && c.removed[i] == index
}

// newIndex is the index a surviving entry moves to.
func (c *shiftCalculator) newIndex(index int64) int64 {
	return index - c.below(index)
}
