package game

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// updateDownhill integrates one sledding tick: jump machine, steering,
// gravity, obstacle hits and the bottom-of-run check.
func (sc *SimContext) updateDownhill(in Input, e inputEdges, dt float64) {
	p := sc.Player
	cfg := sc.Config
	u := sc.Upgrades

	landed := sc.updateJump(in, e, dt)

	// Steering. Downhill is a single screen wide and does not wrap.
	p.XVel += axis(in.Left, in.Right) * cfg.DownhillAccel(u)
	p.XVel *= cfg.DownhillFriction(u)
	maxX := cfg.DownhillMaxXVel(u)
	p.XVel = mgl64.Clamp(p.XVel, -maxX, maxX)
	p.X = mgl64.Clamp(p.X+p.XVel, p.W/2, math.Max(p.W/2, sc.View.W-p.W/2))

	g := cfg.Gravity
	var trick TrickKind
	if p.Airborne() {
		g = cfg.AirGravity
		if t := p.Jump.Air.Trick; t != nil {
			trick = t.Kind
		}
		if trick == TrickParachute {
			g *= cfg.ParachuteGravityScale
		}
	}
	p.VelocityY = math.Min(p.VelocityY+g, cfg.MaxFallSpeed)
	if trick == TrickAirBrake {
		p.VelocityY *= cfg.AirBrakeDrag
	}
	p.Y += p.VelocityY
	if p.Y < 0 {
		p.Y = 0
		p.VelocityY = math.Max(0, p.VelocityY)
	}

	// Obstacles are cleared while airborne; the landing tick checks the
	// touchdown point like any other grounded tick.
	if !p.Airborne() && sc.Course != nil {
		if o := sc.Course.FirstHit(&p.Body); o != nil {
			if sc.hitObstacle(o, landed) {
				return
			}
		}
	}

	if p.Y >= sc.Mountain.Height()-cfg.BottomMargin {
		sc.completeRun()
	}
}

// hitObstacle applies a downhill collision. It returns true when the hit
// wrecked the sled and the mode was switched.
func (sc *SimContext) hitObstacle(o *Obstacle, onLanding bool) bool {
	p := sc.Player
	p.VelocityY = 0
	p.VelocityY -= sc.Config.BounceImpulse
	p.Collisions++
	sc.Course.Remove(o)
	p.Tricks.ResetChain()

	where := "ground"
	if onLanding {
		where = "landing"
	}
	sc.Log.Add(sc.Tick, "player", "collision", where,
		fmt.Sprintf("%s #%d at (%.0f,%.0f) count=%d", o.Kind, o.ID, o.X, o.Y, p.Collisions), float64(p.Collisions))
	sc.emit(Event{Kind: EventCollision, Collisions: p.Collisions})

	if p.Collisions < sc.Config.MaxCollisions(sc.Upgrades) || p.SledDamaged {
		return false
	}
	p.SledDamaged = true
	sc.emit(Event{Kind: EventSledDamaged, SledDamaged: true})
	return sc.RequestMode(ModeUphill, "sled_damaged")
}

// completeRun reports the run and leaves downhill.
func (sc *SimContext) completeRun() {
	if !sc.run.active {
		return
	}
	sc.run.active = false
	p := sc.Player
	dist := p.Y - sc.run.startY
	secs := (sc.ClockMs - sc.run.startMs) / 1000
	score := sc.Config.RunScore(dist, secs)
	sc.Log.Add(sc.Tick, "player", "run", "complete",
		fmt.Sprintf("%.0fpx in %.1fs score=%.1f", dist, secs, score), score)
	sc.emit(Event{Kind: EventRunComplete, Distance: dist, Seconds: secs, Score: score})

	to := ModeHouse
	if sc.Config.RunEnd == RunEndUphill {
		to = ModeUphill
	}
	sc.RequestMode(to, "run_complete")
}

// updateUphill moves the hiker directly, without inertia, around the
// current layer's circumference.
func (sc *SimContext) updateUphill(in Input, e inputEdges) {
	p := sc.Player
	// Nothing carries over between hiking ticks, least of all sled speed.
	p.XVel = 0
	p.VelocityY = 0

	if e.Jump && sc.RequestMode(ModeDownhill, "sled_from_here") {
		return
	}

	speed := sc.Config.HikeSpeed(sc.Upgrades)
	dx := axis(in.Left, in.Right) * speed
	dy := axis(in.Up, in.Down) * speed
	height := sc.Mountain.Height()

	prevY := p.Y
	newY := mgl64.Clamp(p.Y+dy, 0, height)
	// Rescale into the new band before wrapping with its width.
	x, layer, changed := sc.Mountain.RemapX(p.X+dx, prevY, newY)
	p.X, p.Y = x, newY
	if changed {
		sc.Log.Add(sc.Tick, "player", "move", "layer_change",
			fmt.Sprintf("→ layer %d (width %.0f) x=%.1f", layer.ID, layer.Width, p.X), float64(layer.ID))
	}

	if sc.Trail != nil {
		beforeY := p.Y
		if sc.Trail.PushOut(&p.Body) > 0 {
			p.Y = mgl64.Clamp(p.Y, 0, height)
			p.X, _, _ = sc.Mountain.RemapX(p.X, beforeY, p.Y)
		}
	}

	switch {
	case dy < 0 && p.Y <= 0:
		sc.RequestMode(ModeDownhill, "summit")
	case dy > 0 && p.Y >= height:
		sc.RequestMode(ModeHouse, "reached_base")
	}
}

// updateHouse waits for the player to head out.
func (sc *SimContext) updateHouse(e inputEdges) {
	p := sc.Player
	p.XVel = 0
	p.VelocityY = 0
	if e.Jump {
		sc.RequestMode(ModeUphill, "leave_house")
	}
}

// safeLandingY searches down the course from the player for a spot with no
// obstacle under the sled.
func (sc *SimContext) safeLandingY() float64 {
	p := sc.Player
	height := sc.Mountain.Height()
	probe := p.Body
	if sc.Course == nil {
		return mgl64.Clamp(probe.Y, 0, height)
	}
	step := math.Max(1, sc.Config.SafeLandingStep)
	for i := 0; i < 32; i++ {
		probe.Y = mgl64.Clamp(p.Y+float64(i)*step, 0, height)
		if sc.Course.FirstHit(&probe) == nil {
			return probe.Y
		}
	}
	return mgl64.Clamp(p.Y, 0, height)
}
