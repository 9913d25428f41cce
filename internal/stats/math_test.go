package stats

import (
	"math"
	"testing"
)

func TestMean(t *testing.T) {
	if got := Mean([]int{2, 4, 6}); got != 4 {
		t.Errorf("Mean = %g, want 4", got)
	}
	if got := Mean(nil); got != 0 {
		t.Errorf("Mean of empty slice = %g, want 0", got)
	}
}

func TestSampleStd(t *testing.T) {
	// 2, 4, 4, 4, 5, 5, 7, 9 has a sample variance of 32/7.
	got := SampleStd([]int{2, 4, 4, 4, 5, 5, 7, 9})
	want := math.Sqrt(32.0 / 7.0)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("SampleStd = %g, want %g", got, want)
	}
}

func TestSampleStdUndefinedBelowTwo(t *testing.T) {
	if got := SampleStd([]int{7}); !math.IsNaN(got) {
		t.Errorf("SampleStd of one value = %g, want NaN", got)
	}
	if got := SampleStd(nil); !math.IsNaN(got) {
		t.Errorf("SampleStd of empty slice = %g, want NaN", got)
	}
}

func TestMinMax(t *testing.T) {
	min, max := MinMax([]int{5, 1, 9, 3})
	if min != 1 || max != 9 {
		t.Errorf("MinMax = (%d, %d), want (1, 9)", min, max)
	}

	min, max = MinMax(nil)
	if min != 0 || max != 0 {
		t.Errorf("MinMax of empty slice = (%d, %d), want (0, 0)", min, max)
	}
}

func TestCalculateMedianDiscrete(t *testing.T) {
	if got := CalculateMedianDiscrete([]int{3, 1, 2}); got != 2 {
		t.Errorf("Median of odd-length slice = %g, want 2", got)
	}
	if got := CalculateMedianDiscrete([]int{4, 1, 3, 2}); got != 2.5 {
		t.Errorf("Median of even-length slice = %g, want 2.5", got)
	}
	if got := CalculateMedianDiscrete(nil); got != 0 {
		t.Errorf("Median of empty slice = %g, want 0", got)
	}
}
