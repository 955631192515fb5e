package game

import (
	"math"
	"math/rand"
)

const (
	autoLookAhead = 220.0 // px below the player scanned for obstacles
	autoDodgeSpan = 50.0  // horizontal half-width treated as "in the way"
)

// Autopilot is a seeded bot that plays the whole loop: leave the house,
// hike, sled, jump, trick, repair. Same seed and same session give the same
// inputs.
type Autopilot struct {
	rng       *rand.Rand
	prev      Input
	wander    float64 // -1..1 hiking drift
	hikeTicks int
	chargeFor int
}

// NewAutopilot creates a bot driven by seed.
func NewAutopilot(seed int64) *Autopilot {
	return &Autopilot{rng: rand.New(rand.NewSource(seed))} // #nosec G404 -- gameplay only
}

// Next chooses the input for the coming tick.
func (a *Autopilot) Next(sc *SimContext) Input {
	var in Input
	switch sc.Mode {
	case ModeHouse:
		in.Jump = !a.prev.Jump
		a.hikeTicks = 0
	case ModeUphill:
		in = a.hike(sc)
	case ModeDownhill:
		in = a.sled(sc)
	}
	a.prev = in
	return in
}

func (a *Autopilot) hike(sc *SimContext) Input {
	var in Input
	a.hikeTicks++
	if a.rng.Float64() < 0.02 {
		a.wander = a.rng.Float64()*2 - 1
	}
	in.Left = a.wander < -0.4
	in.Right = a.wander > 0.4
	if sc.Player.SledDamaged {
		in.Down = true
		return in
	}
	in.Up = true
	// Sometimes sled from partway up instead of reaching the summit.
	if a.hikeTicks > 120 && !a.prev.Jump && a.rng.Float64() < 0.004 {
		in.Jump = true
	}
	return in
}

func (a *Autopilot) sled(sc *SimContext) Input {
	var in Input
	p := sc.Player

	threat, ahead := a.nearestAhead(sc)
	if ahead {
		if threat.X >= p.X {
			in.Left = true
		} else {
			in.Right = true
		}
	}

	switch p.Jump.Phase {
	case JumpIdle:
		if ahead && threat.Y-p.Y < 90 && !a.prev.Jump {
			in.Jump = true
			a.chargeFor = 10 + a.rng.Intn(40)
		}
	case JumpCharging:
		a.chargeFor--
		in.Jump = a.chargeFor > 0
	case JumpAirborne:
		air := p.Jump.Air
		if air.Trick == nil && !a.prev.Left && !a.prev.Right && !a.prev.Up && !a.prev.Down &&
			a.rng.Float64() < 0.15 {
			in = Input{}
			switch a.rng.Intn(4) {
			case 0:
				in.Left = true
			case 1:
				in.Right = true
			case 2:
				in.Down = true
			default:
				in.Up = true
			}
		}
		if air.Progress() >= sc.Config.ReHitWindowStart && !air.ReHitUsed && !a.prev.Jump &&
			a.rng.Float64() < 0.1 {
			in.Jump = true
		}
	}
	return in
}

// nearestAhead finds the closest course obstacle in the sled's path.
func (a *Autopilot) nearestAhead(sc *SimContext) (*Obstacle, bool) {
	if sc.Course == nil {
		return nil, false
	}
	p := sc.Player
	var best *Obstacle
	bestDy := math.Inf(1)
	for _, o := range sc.Course.Obstacles() {
		dy := o.Y - p.Y
		if dy <= 0 || dy > autoLookAhead || math.Abs(o.X-p.X) > autoDodgeSpan {
			continue
		}
		if dy < bestDy {
			best, bestDy = o, dy
		}
	}
	return best, best != nil
}
