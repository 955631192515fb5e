package game

import "math"

// WrapX normalises x onto [0, width). A non-positive width leaves x untouched.
func WrapX(x, width float64) float64 {
	if width <= 0 {
		return x
	}
	w := math.Mod(x, width)
	if w < 0 {
		w += width
	}
	// A tiny negative remainder can round up to exactly width.
	if w >= width {
		w = 0
	}
	return w
}

// WrappedDelta returns the signed shortest displacement from x2 to x1 on a
// circle of the given circumference. |result| <= width/2.
func WrappedDelta(x1, x2, width float64) float64 {
	if width <= 0 {
		return x1 - x2
	}
	direct := WrapX(x1, width) - WrapX(x2, width)
	around := width - math.Abs(direct)
	if around < math.Abs(direct) {
		if direct > 0 {
			return -around
		}
		return around
	}
	return direct
}

// WrappedScreenPos places an entity relative to the camera, taking whichever
// of the direct or wraparound placements is nearer.
func WrappedScreenPos(entityX, cameraX, width float64) float64 {
	return WrappedDelta(entityX, cameraX, width)
}

// WrapDuplicates returns the extra screen placements (offset by ±width) an
// entity needs when its primary placement sits within half a screen of an
// edge. halfScreen is half the visible width around the camera anchor.
func WrapDuplicates(screenX, width, halfScreen float64) []float64 {
	if width <= 0 {
		return nil
	}
	var out []float64
	if screenX > 0 && screenX >= width/2-halfScreen {
		out = append(out, screenX-width)
	}
	if screenX < 0 && screenX <= -width/2+halfScreen {
		out = append(out, screenX+width)
	}
	return out
}
