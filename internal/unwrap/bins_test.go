package unwrap

import (
	"math"
	"testing"
)

func TestBinScheduler_ThresholdSpacing(t *testing.T) {
	s := newBinScheduler(4, 0, 3, DefaultParams())
	if s.bins() != 4 {
		t.Fatalf("bins() = %d, want 4", s.bins())
	}
	span := thresholdSpan * 3.0
	for i, th := range s.thresholds {
		want := span * float64(i) / 3
		if math.Abs(th-want) > 1e-12 {
			t.Errorf("threshold[%d] = %v, want %v", i, th, want)
		}
	}
	// The top threshold must strictly exceed the field maximum.
	if s.thresholds[3] <= 3 {
		t.Errorf("top threshold %v does not clear the field maximum", s.thresholds[3])
	}
}

func TestBinScheduler_BinFloor(t *testing.T) {
	s := newBinScheduler(0, 0, 1, DefaultParams())
	if s.bins() != MinUnwrapBins {
		t.Errorf("bins() = %d, want %d", s.bins(), MinUnwrapBins)
	}
}

func TestBinScheduler_UniformField(t *testing.T) {
	// min == max collapses every threshold onto the single value; the
	// value itself is still admitted by bin 0.
	s := newBinScheduler(3, 5, 5, DefaultParams())
	if !s.admits(0, 5) {
		t.Error("uniform field value rejected by bin 0")
	}
}

func TestBinScheduler_DeferTo(t *testing.T) {
	s := newBinScheduler(4, 0, 3, DefaultParams())
	// thresholds ≈ [0, 1.00001, 2.00002, 3.00003]
	cases := []struct {
		from int
		risk float64
		want int
	}{
		{0, 0.5, 1},  // first later bin admits it
		{0, 1.5, 2},  // skips a bin that is still too low
		{0, 2.5, 3},  // lands in the top bin
		{1, 2.5, 3},  // scan starts past the current bin
		{0, 99.0, 3}, // out-of-range value clamps to the last bin
	}
	for _, c := range cases {
		if got := s.deferTo(c.from, c.risk); got != c.want {
			t.Errorf("deferTo(%d, %v) = %d, want %d", c.from, c.risk, got, c.want)
		}
		if got := s.deferTo(c.from, c.risk); c.risk <= 3 && !s.admits(got, c.risk) {
			t.Errorf("deferTo(%d, %v) landed in bin %d which rejects it", c.from, c.risk, got)
		}
	}
}

func TestBinScheduler_AdmitsNaN(t *testing.T) {
	// NaN compares false against every threshold, so it must be
	// admitted in place instead of deferred forever.
	s := newBinScheduler(4, 0, 3, DefaultParams())
	for i := range s.thresholds {
		if !s.admits(i, math.NaN()) {
			t.Errorf("bin %d defers NaN risk", i)
		}
	}
}

func TestBinScheduler_DeferToClampsAtLastBin(t *testing.T) {
	s := newBinScheduler(4, 0, 3, DefaultParams())
	last := s.bins() - 1
	for _, risk := range []float64{2.5, 99, math.NaN(), math.Inf(1)} {
		if got := s.deferTo(last, risk); got != last {
			t.Errorf("deferTo(%d, %v) = %d, want clamp to %d", last, risk, got, last)
		}
	}
}

func TestBinScheduler_AdmitsMatchesThreshold(t *testing.T) {
	s := newBinScheduler(3, -2, 2, DefaultParams())
	for i, th := range s.thresholds {
		if !s.admits(i, th) {
			t.Errorf("bin %d rejects its own threshold", i)
		}
		if s.admits(i, th+1e-9) {
			t.Errorf("bin %d admits a value above its threshold", i)
		}
	}
}
