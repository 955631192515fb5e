package game

import (
	"math"
	"math/rand"
	"testing"
)

func TestWrapX(t *testing.T) {
	cases := []struct {
		x, width, want float64
	}{
		{0, 1000, 0},
		{999, 1000, 999},
		{1000, 1000, 0},
		{1004, 1000, 4},
		{-1, 1000, 999},
		{-2500, 1000, 500},
		{2500, 1000, 500},
		{42, 0, 42},
		{-7, -5, -7},
	}
	for _, c := range cases {
		if got := WrapX(c.x, c.width); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("WrapX(%v, %v): expected %v, got %v", c.x, c.width, c.want, got)
		}
	}
}

func TestWrapX_RangeAndIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 5000; i++ {
		width := 0.5 + rng.Float64()*5000
		x := (rng.Float64()*2 - 1) * 1e6
		w := WrapX(x, width)
		if w < 0 || w >= width {
			t.Fatalf("WrapX(%v, %v) = %v outside [0,width)", x, width, w)
		}
		if again := WrapX(w, width); again != w {
			t.Fatalf("WrapX not idempotent for x=%v width=%v: %v then %v", x, width, w, again)
		}
	}
}

func TestWrapX_TinyNegativeStaysInRange(t *testing.T) {
	if got := WrapX(-1e-18, 1000); got < 0 || got >= 1000 {
		t.Fatalf("expected value in [0,1000), got %v", got)
	}
}

func TestWrappedDelta(t *testing.T) {
	cases := []struct {
		x1, x2, width, want float64
	}{
		{10, 990, 1000, 20},
		{990, 10, 1000, -20},
		{300, 100, 1000, 200},
		{100, 300, 1000, -200},
		{1010, 950, 1000, 60},
		{-5, 5, 1000, -10},
		{7, 3, 0, 4},
	}
	for _, c := range cases {
		if got := WrappedDelta(c.x1, c.x2, c.width); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("WrappedDelta(%v, %v, %v): expected %v, got %v", c.x1, c.x2, c.width, c.want, got)
		}
	}
}

func TestWrappedDelta_ShortestPathBound(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 5000; i++ {
		width := 1 + rng.Float64()*4000
		x1 := (rng.Float64()*2 - 1) * 20000
		x2 := (rng.Float64()*2 - 1) * 20000
		d := WrappedDelta(x1, x2, width)
		if math.Abs(d) > width/2+1e-9 {
			t.Fatalf("|WrappedDelta(%v, %v, %v)| = %v exceeds half width", x1, x2, width, math.Abs(d))
		}
		// The result must be a true displacement: x2 + d lands on x1.
		if diff := math.Abs(WrappedDelta(x2+d, x1, width)); diff > 1e-6 {
			t.Fatalf("x2+d does not land on x1 (off by %v)", diff)
		}
	}
}

func TestWrappedDelta_ContinuousAcrossSeam(t *testing.T) {
	const width = 1000.0
	const step = 0.25
	for _, ref := range []float64{0, 3, 997} {
		prev := WrappedDelta(width-2, ref, width)
		for x := width - 2 + step; x <= width+2; x += step {
			d := WrappedDelta(x, ref, width)
			if math.Abs(d-prev-step) > 1e-9 {
				t.Fatalf("ref=%v: delta jumped from %v to %v at x=%v", ref, prev, d, x)
			}
			prev = d
		}
	}
}

func TestWrappedScreenPos_PrefersNearPlacement(t *testing.T) {
	// Camera just left of the seam, entity just right of it.
	if got := WrappedScreenPos(5, 995, 1000); math.Abs(got-10) > 1e-9 {
		t.Fatalf("expected entity 10px right of camera, got %v", got)
	}
}

func TestWrapDuplicates(t *testing.T) {
	cases := []struct {
		name   string
		screen float64
		want   []float64
	}{
		{"center", 50, nil},
		{"near right edge", 150, []float64{-850}},
		{"near left edge", -150, []float64{850}},
		{"exact half", 500, []float64{-500}},
	}
	for _, c := range cases {
		got := WrapDuplicates(c.screen, 1000, 400)
		if len(got) != len(c.want) {
			t.Fatalf("%s: expected %v, got %v", c.name, c.want, got)
		}
		for i := range got {
			if math.Abs(got[i]-c.want[i]) > 1e-9 {
				t.Fatalf("%s: expected %v, got %v", c.name, c.want, got)
			}
		}
	}
	if got := WrapDuplicates(10, 0, 400); got != nil {
		t.Fatalf("expected no duplicates for zero width, got %v", got)
	}
}
