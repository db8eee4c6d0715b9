package slip

// FeedAccumulator converts scanline counts into whole motion units while
// carrying the fractional remainder across calls, so repeated rounding
// within one page never drifts by more than a single unit.
//
// The carry is kept as an integer numerator in resolution ticks, which
// makes the accounting exact: after every call the remainder is strictly
// less than one unit.
type FeedAccumulator struct {
	remainder int
}

// Units returns the whole motion units to feed for lines scanlines at the
// given vertical motion unit and resolution, folding in any carried
// fraction from earlier feeds.
func (a *FeedAccumulator) Units(lines, motionUnit, resolution int) int {
	a.remainder += lines * motionUnit
	units := a.remainder / resolution
	a.remainder %= resolution
	return units
}

// Reset drops the carried fraction. Called at every page start, since the
// remainder is only meaningful within one page's pipeline.
func (a *FeedAccumulator) Reset() {
	a.remainder = 0
}
