package game

import (
	"math"
	"testing"
)

func TestChooseTarget_PicksNearestImage(t *testing.T) {
	cases := []struct {
		player, cam, period, want float64
	}{
		{10, 950, 1000, 1010},
		{990, 5, 1000, -10},
		{500, 480, 1000, 500},
		{10, 950, 0, 10},
	}
	for _, c := range cases {
		if got := ChooseTarget(c.player, c.cam, c.period); got != c.want {
			t.Errorf("ChooseTarget(%v, %v, %v): expected %v, got %v", c.player, c.cam, c.period, c.want, got)
		}
	}
}

func TestCamera_NoPopAcrossSeam(t *testing.T) {
	layer := Layer{ID: 0, StartY: 0, EndY: 4000, Width: 1000}
	var cam Camera
	cam.Snap(950, 100, layer)

	// Player crossed the seam: 1010 wrapped to 10.
	cam.Follow(10, 100, layer, 0.5)
	if math.Abs(cam.X-980) > 1e-9 {
		t.Fatalf("expected camera to ease forward to 980, got %v", cam.X)
	}
	if got := cam.ScreenX(10); math.Abs(got-30) > 1e-9 {
		t.Fatalf("expected player 30px right of the anchor, got %v", got)
	}

	prev := cam.X
	for i := 0; i < 60; i++ {
		cam.Follow(10, 100, layer, 0.5)
		step := WrappedDelta(prev, cam.X, 1000)
		if math.Abs(step) > 30+1e-9 {
			t.Fatalf("frame %d: camera jumped %v", i, step)
		}
		if cam.X < 0 || cam.X >= 1000 {
			t.Fatalf("frame %d: camera X %v left [0,1000)", i, cam.X)
		}
		prev = cam.X
	}
	if math.Abs(cam.ScreenX(10)) > 1e-6 {
		t.Fatalf("expected camera to settle on the player, offset %v", cam.ScreenX(10))
	}
}

func TestCamera_RescalesOnLayerChange(t *testing.T) {
	l0 := Layer{ID: 0, StartY: 0, EndY: 4000, Width: 1000}
	l1 := Layer{ID: 1, StartY: 4000, EndY: 8000, Width: 1300}
	var cam Camera
	cam.Snap(500, 3990, l0)

	cam.Follow(650, 4010, l1, 0)
	if math.Abs(cam.X-650) > 1e-9 {
		t.Fatalf("expected camera X rescaled to 650, got %v", cam.X)
	}
	if cam.Period() != 1300 {
		t.Fatalf("expected period 1300, got %v", cam.Period())
	}
	if math.Abs(cam.ScreenX(650)) > 1e-9 {
		t.Fatalf("expected player to stay at the anchor, got %v", cam.ScreenX(650))
	}
}

func TestCamera_PinIsUnwrapped(t *testing.T) {
	var cam Camera
	cam.Snap(500, 0, Layer{Width: 1000})
	cam.Pin(400, 2500)
	if cam.Period() != 0 || cam.Y != 2500 {
		t.Fatalf("expected pinned camera, got period=%v y=%v", cam.Period(), cam.Y)
	}
	if got := cam.ScreenX(1390); got != 990 {
		t.Fatalf("expected plain offset 990, got %v", got)
	}
}
