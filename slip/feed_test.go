package slip

import "testing"

func TestFeedAccumulatorNoDrift(t *testing.T) {
	// 3+3+3 scanlines fed piecewise must cover the same distance as 9
	// scanlines fed at once.
	const motionUnit, resolution = 10, 203

	var split FeedAccumulator
	sum := 0
	for i := 0; i < 3; i++ {
		sum += split.Units(3, motionUnit, resolution)
	}

	var whole FeedAccumulator
	if want := whole.Units(9, motionUnit, resolution); sum != want {
		t.Errorf("piecewise feeds sum to %d units, whole feed is %d", sum, want)
	}
}

func TestFeedAccumulatorCarries(t *testing.T) {
	const motionUnit, resolution = 60, 180

	var a FeedAccumulator
	// 8 lines -> 480/180 = 2 units, carrying 120 ticks.
	if got := a.Units(8, motionUnit, resolution); got != 2 {
		t.Errorf("first feed = %d units, want 2", got)
	}
	// 7 more lines -> (120+420)/180 = 3 units exactly.
	if got := a.Units(7, motionUnit, resolution); got != 3 {
		t.Errorf("second feed = %d units, want 3", got)
	}
	if a.remainder != 0 {
		t.Errorf("remainder = %d ticks, want 0", a.remainder)
	}
}

func TestFeedAccumulatorRemainderBounded(t *testing.T) {
	const motionUnit, resolution = 10, 203

	var a FeedAccumulator
	for i := 1; i <= 50; i++ {
		a.Units(i%7, motionUnit, resolution)
		if a.remainder < 0 || a.remainder >= resolution {
			t.Fatalf("after feed %d remainder = %d, want [0,%d)", i, a.remainder, resolution)
		}
	}
}

func TestFeedAccumulatorZero(t *testing.T) {
	var a FeedAccumulator
	if got := a.Units(0, 10, 203); got != 0 {
		t.Errorf("zero scanlines fed %d units", got)
	}
	a.Units(3, 10, 203)
	a.Reset()
	if a.remainder != 0 {
		t.Errorf("Reset left remainder %d", a.remainder)
	}
}
