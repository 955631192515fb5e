package game

import "github.com/go-gl/mathgl/mgl64"

// Tween interpolates a 2-vector over a fixed duration and calls OnDone once
// when it finishes. The simulation uses it for the forced landing: X is the
// player's absY and Y its render scale.
type Tween struct {
	From, To   mgl64.Vec2
	DurationMs float64
	ElapsedMs  float64
	Ease       func(t float64) float64
	OnDone     func()

	done bool
}

// NewTween builds a tween with quadratic ease-out.
func NewTween(from, to mgl64.Vec2, durationMs float64, onDone func()) *Tween {
	return &Tween{From: from, To: to, DurationMs: durationMs, Ease: EaseOutQuad, OnDone: onDone}
}

// Advance moves the tween forward by dt and returns the current value and
// whether it has finished. OnDone runs on the finishing call only.
func (tw *Tween) Advance(dt float64) (mgl64.Vec2, bool) {
	if tw.done {
		return tw.To, true
	}
	tw.ElapsedMs += dt
	t := 1.0
	if tw.DurationMs > 0 {
		t = mgl64.Clamp(tw.ElapsedMs/tw.DurationMs, 0, 1)
	}
	if t >= 1 {
		tw.done = true
		if tw.OnDone != nil {
			tw.OnDone()
		}
		return tw.To, true
	}
	e := t
	if tw.Ease != nil {
		e = tw.Ease(t)
	}
	return tw.From.Add(tw.To.Sub(tw.From).Mul(e)), false
}

// Done reports whether the tween has completed.
func (tw *Tween) Done() bool { return tw.done }

// EaseOutQuad decelerates into the end value.
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}
