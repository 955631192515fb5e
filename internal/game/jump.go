package game

import (
	"fmt"
	"math"
)

// JumpPhase is the outer state of the jump machine.
type JumpPhase int

const (
	JumpIdle JumpPhase = iota
	JumpCharging
	JumpAirborne
)

func (p JumpPhase) String() string {
	switch p {
	case JumpIdle:
		return "idle"
	case JumpCharging:
		return "charging"
	case JumpAirborne:
		return "airborne"
	default:
		return "unknown"
	}
}

type jumpTrigger int

const (
	trigPressImmediate jumpTrigger = iota
	trigPressCharge
	trigRelease
	trigChargeFull
	trigReHit
	trigLand
	trigInterrupt
)

func (t jumpTrigger) String() string {
	switch t {
	case trigPressImmediate:
		return "press"
	case trigPressCharge:
		return "press_charge"
	case trigRelease:
		return "release"
	case trigChargeFull:
		return "charge_full"
	case trigReHit:
		return "rehit"
	case trigLand:
		return "land"
	case trigInterrupt:
		return "interrupt"
	default:
		return "unknown"
	}
}

// jumpTransitions is the complete legal transition table. Any (phase,
// trigger) pair missing here is ignored.
var jumpTransitions = map[JumpPhase]map[jumpTrigger]JumpPhase{
	JumpIdle: {
		trigPressImmediate: JumpAirborne,
		trigPressCharge:    JumpCharging,
	},
	JumpCharging: {
		trigRelease:    JumpAirborne,
		trigChargeFull: JumpAirborne,
		trigInterrupt:  JumpIdle,
	},
	JumpAirborne: {
		trigReHit:     JumpAirborne,
		trigLand:      JumpIdle,
		trigInterrupt: JumpIdle,
	},
}

// Jump is the jump sub-state. Air is non-nil exactly when Phase is
// JumpAirborne, and a trick can only live inside Air.
type Jump struct {
	Phase    JumpPhase
	ChargeMs float64
	Air      *Airborne
}

// Airborne carries the in-flight timers.
type Airborne struct {
	Timer        float64
	Duration     float64
	HeightFactor float64
	ReachedPeak  bool
	ReHitUsed    bool
	Trick        *TrickRun
}

// Progress is Timer/Duration, unclamped.
func (a *Airborne) Progress() float64 {
	if a.Duration <= 0 {
		return 1
	}
	return a.Timer / a.Duration
}

// next looks up a transition without applying it.
func (j *Jump) next(t jumpTrigger) (JumpPhase, bool) {
	to, ok := jumpTransitions[j.Phase][t]
	return to, ok
}

// canJump gates the Idle -> Airborne/Charging edge.
func (sc *SimContext) canJump() bool {
	return sc.Mode == ModeDownhill && sc.landing == nil && sc.Player.Jump.Phase == JumpIdle
}

// fireJump applies trigger t if the table allows it, logging and returning
// false otherwise.
func (sc *SimContext) fireJump(t jumpTrigger) bool {
	j := &sc.Player.Jump
	to, ok := j.next(t)
	if !ok {
		sc.ignored("jump", t.String(), fmt.Sprintf("no transition from %s", j.Phase))
		return false
	}
	if to != j.Phase {
		sc.Log.Add(sc.Tick, "player", "jump", "phase", fmt.Sprintf("%s → %s", j.Phase, to), 0)
	}
	j.Phase = to
	return true
}

// updateJump advances the jump machine for one tick. It returns true on the
// tick the player lands.
func (sc *SimContext) updateJump(in Input, e inputEdges, dt float64) bool {
	p := sc.Player
	switch p.Jump.Phase {
	case JumpIdle:
		if !e.Jump {
			return false
		}
		if !sc.canJump() {
			sc.ignored("jump", "press", "cannot jump")
			return false
		}
		if sc.Config.JumpMode == JumpCharge {
			if sc.fireJump(trigPressCharge) {
				p.Jump.ChargeMs = 0
			}
			return false
		}
		bonus := sc.Config.JumpBonus(sc.Upgrades)
		if sc.fireJump(trigPressImmediate) {
			sc.launch(sc.Config.JumpHeightFactor*bonus, sc.Config.JumpDurationMs*bonus)
		}
		return false

	case JumpCharging:
		if in.Jump {
			p.Jump.ChargeMs = math.Min(p.Jump.ChargeMs+dt, sc.Config.MaxChargeMs)
			if p.Jump.ChargeMs < sc.Config.MaxChargeMs {
				return false
			}
			if sc.fireJump(trigChargeFull) {
				sc.launchCharged()
			}
			return false
		}
		if sc.fireJump(trigRelease) {
			sc.launchCharged()
		}
		return false

	case JumpAirborne:
		return sc.updateAirborne(in, e, dt)
	}
	return false
}

// launch enters flight with the given height factor and duration.
func (sc *SimContext) launch(height, duration float64) {
	p := sc.Player
	p.Jump.ChargeMs = 0
	p.Jump.Air = &Airborne{Duration: duration, HeightFactor: height}
	sc.Log.Add(sc.Tick, "player", "jump", "launch",
		fmt.Sprintf("height=%.2f duration=%.0fms", height, duration), duration)
}

// launchCharged converts the held charge into a jump: height is the share of
// the maximum charge, duration lerps between the configured bounds.
func (sc *SimContext) launchCharged() {
	ratio := sc.Player.Jump.ChargeMs / sc.Config.MaxChargeMs
	ratio = math.Max(0, math.Min(1, ratio))
	dur := sc.Config.ChargeMinMs + (sc.Config.ChargeMaxMs-sc.Config.ChargeMinMs)*ratio
	sc.launch(ratio, dur)
}

// updateAirborne advances the flight timer, handles the peak callback, the
// re-hit window, tricks and landing.
func (sc *SimContext) updateAirborne(in Input, e inputEdges, dt float64) bool {
	p := sc.Player
	air := p.Jump.Air
	air.Timer += dt
	prog := air.Progress()

	if e.Jump {
		switch {
		case air.ReHitUsed:
			sc.ignored("jump", "rehit", "already used this jump")
		case prog < sc.Config.ReHitWindowStart || prog >= 1:
			sc.ignored("jump", "rehit", fmt.Sprintf("outside window at %.2f", prog))
		case sc.fireJump(trigReHit):
			air.Timer = 0
			air.Duration *= sc.Config.ReHitBonus
			air.HeightFactor = 1
			air.ReHitUsed = true
			prog = 0
			sc.emit(Event{Kind: EventReHit})
			sc.Log.Add(sc.Tick, "player", "jump", "rehit",
				fmt.Sprintf("duration=%.0fms", air.Duration), air.Duration)
		}
	}

	if !air.ReachedPeak && prog >= 0.5 {
		air.ReachedPeak = true
		sc.emit(Event{Kind: EventJumpPeak})
	}

	sc.updateTrick(e, dt)

	if prog >= 1 {
		sc.land()
		return true
	}
	p.RenderScale = 1 + air.HeightFactor*sc.Config.JumpScaleBoost*math.Sin(math.Pi*prog)
	return false
}

// land ends the flight. A trick still running is dropped without payout.
func (sc *SimContext) land() {
	p := sc.Player
	if air := p.Jump.Air; air != nil && air.Trick != nil {
		sc.ignored("trick", "incomplete", air.Trick.Kind.String())
		sc.fireTrick(air, trickDiscard)
		p.Tricks.ResetChain()
	}
	if !sc.fireJump(trigLand) {
		return
	}
	p.Jump = Jump{}
	p.resetRender()
}

// interruptJump clears any jump state ahead of a forced mode change. It
// returns true if the player was in flight, in which case the caller owes a
// landing interpolation. A running trick counts as a crash.
func (sc *SimContext) interruptJump() bool {
	p := sc.Player
	switch p.Jump.Phase {
	case JumpCharging:
		sc.fireJump(trigInterrupt)
		p.Jump = Jump{}
		return false
	case JumpAirborne:
		if air := p.Jump.Air; air != nil && air.Trick != nil {
			kind := air.Trick.Kind
			sc.fireTrick(air, trickDiscard)
			p.Tricks.ResetChain()
			sc.emit(Event{Kind: EventCrash, Trick: kind})
			sc.Log.Add(sc.Tick, "player", "trick", "crash", kind.String(), 0)
		}
		sc.fireJump(trigInterrupt)
		p.Jump = Jump{}
		return true
	}
	return false
}
