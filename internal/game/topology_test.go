package game

import (
	"errors"
	"math"
	"testing"
)

func mustMountain(t *testing.T) *Mountain {
	t.Helper()
	m, err := NewMountain(DefaultLayers())
	if err != nil {
		t.Fatalf("default layers rejected: %v", err)
	}
	return m
}

func TestNewMountain_Validation(t *testing.T) {
	cases := []struct {
		name   string
		layers []Layer
		want   error
	}{
		{"empty", nil, ErrNoLayers},
		{"not at peak", []Layer{{ID: 0, StartY: 10, EndY: 100, Width: 100}}, ErrLayerGap},
		{"gap", []Layer{
			{ID: 0, StartY: 0, EndY: 100, Width: 100},
			{ID: 1, StartY: 150, EndY: 200, Width: 200},
		}, ErrLayerGap},
		{"empty band", []Layer{{ID: 0, StartY: 0, EndY: 0, Width: 100}}, ErrLayerGap},
		{"width shrinks", []Layer{
			{ID: 0, StartY: 0, EndY: 100, Width: 300},
			{ID: 1, StartY: 100, EndY: 200, Width: 200},
		}, ErrLayerWidthOrder},
		{"width equal", []Layer{
			{ID: 0, StartY: 0, EndY: 100, Width: 300},
			{ID: 1, StartY: 100, EndY: 200, Width: 300},
		}, ErrLayerWidthOrder},
		{"zero width", []Layer{{ID: 0, StartY: 0, EndY: 100, Width: 0}}, ErrLayerWidthOrder},
	}
	for _, c := range cases {
		_, err := NewMountain(c.layers)
		if !errors.Is(err, c.want) {
			t.Errorf("%s: expected %v, got %v", c.name, c.want, err)
		}
	}
}

func TestMountain_HeightAndLookup(t *testing.T) {
	m := mustMountain(t)
	if m.Height() != 20000 {
		t.Fatalf("expected height 20000, got %v", m.Height())
	}
	l, ok := m.Layer(3)
	if !ok || l.Width != 1900 {
		t.Fatalf("expected layer 3 width 1900, got %+v ok=%v", l, ok)
	}
	if _, ok := m.Layer(99); ok {
		t.Fatal("expected unknown layer id to report false")
	}
}

func TestLayerForY_Total(t *testing.T) {
	m := mustMountain(t)
	cases := []struct {
		y    float64
		want int
	}{
		{-50, 0},
		{math.Inf(-1), 0},
		{0, 0},
		{3999.999, 0},
		{4000, 1}, // boundary belongs to the lower band
		{11999, 2},
		{16000, 4},
		{19999, 4},
		{20000, 4},
		{1e12, 4},
		{math.Inf(1), 4},
		{math.NaN(), 0},
	}
	for _, c := range cases {
		if got := m.LayerForY(c.y).ID; got != c.want {
			t.Errorf("LayerForY(%v): expected layer %d, got %d", c.y, c.want, got)
		}
	}
}

func TestScaleXAcrossLayers_PreservesProportion(t *testing.T) {
	m := mustMountain(t)
	layers := m.Layers()
	for _, src := range layers {
		for _, dst := range layers {
			for _, p := range []float64{0, 0.1, 0.25, 0.5, 0.75, 0.999} {
				got := ScaleXAcrossLayers(p*src.Width, src, dst)
				if math.Abs(got-p*dst.Width) > 1e-9 {
					t.Fatalf("p=%v %d→%d: expected %v, got %v", p, src.ID, dst.ID, p*dst.Width, got)
				}
			}
		}
	}
}

func TestScaleXAcrossLayers_ZeroWidthSourceIsNoop(t *testing.T) {
	got := ScaleXAcrossLayers(123, Layer{Width: 0}, Layer{Width: 2000})
	if got != 123 {
		t.Fatalf("expected x unscaled, got %v", got)
	}
}

func TestRemapX(t *testing.T) {
	m := mustMountain(t)

	x, l, changed := m.RemapX(750, 3990, 4010)
	if !changed || l.ID != 1 {
		t.Fatalf("expected change into layer 1, got layer %d changed=%v", l.ID, changed)
	}
	if math.Abs(x-975) > 1e-9 {
		t.Fatalf("expected 75%% of 1300 = 975, got %v", x)
	}

	// Same band: only the wrap applies.
	x, _, changed = m.RemapX(1004, 100, 95)
	if changed || math.Abs(x-4) > 1e-9 {
		t.Fatalf("expected x=4 without change, got %v changed=%v", x, changed)
	}

	// Overflow past the seam while crossing a boundary: rescale, then wrap.
	x, _, _ = m.RemapX(1010, 3999, 4001)
	if math.Abs(x-13) > 1e-9 {
		t.Fatalf("expected 1010*1.3 wrapped to 13, got %v", x)
	}
}

func TestLayerContains(t *testing.T) {
	l := Layer{StartY: 100, EndY: 200}
	if !l.Contains(100) || l.Contains(200) || !l.Contains(199.5) {
		t.Fatal("expected [StartY, EndY) containment")
	}
}
