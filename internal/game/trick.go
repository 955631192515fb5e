package game

import (
	"fmt"
	"math"
)

// TrickKind names an aerial trick.
type TrickKind int

const (
	TrickNone TrickKind = iota
	TrickLeftHelicopter
	TrickRightHelicopter
	TrickAirBrake
	TrickParachute
)

func (k TrickKind) String() string {
	switch k {
	case TrickNone:
		return "none"
	case TrickLeftHelicopter:
		return "left_helicopter"
	case TrickRightHelicopter:
		return "right_helicopter"
	case TrickAirBrake:
		return "air_brake"
	case TrickParachute:
		return "parachute"
	default:
		return "unknown"
	}
}

// rotationSign is -1/+1 for the helicopters and 0 for offset tricks.
func (k TrickKind) rotationSign() float64 {
	switch k {
	case TrickLeftHelicopter:
		return -1
	case TrickRightHelicopter:
		return 1
	}
	return 0
}

// offsetSign is the render offset direction for the offset tricks: the air
// brake drags the sled back down-screen, the parachute lifts it.
func (k TrickKind) offsetSign() float64 {
	switch k {
	case TrickAirBrake:
		return 1
	case TrickParachute:
		return -1
	}
	return 0
}

// trickFromEdges maps a directional press to a trick.
func trickFromEdges(e inputEdges) TrickKind {
	switch {
	case e.Left:
		return TrickLeftHelicopter
	case e.Right:
		return TrickRightHelicopter
	case e.Down:
		return TrickAirBrake
	case e.Up:
		return TrickParachute
	}
	return TrickNone
}

// TrickRun is an in-progress trick.
type TrickRun struct {
	Kind     TrickKind
	Timer    float64
	Rotation float64 // degrees, helicopters only
	Offset   float64 // pixels, offset tricks only
}

type trickTrigger int

const (
	trickStart trickTrigger = iota
	trickComplete
	trickDiscard
)

func (t trickTrigger) String() string {
	switch t {
	case trickStart:
		return "start"
	case trickComplete:
		return "complete"
	case trickDiscard:
		return "discard"
	default:
		return "unknown"
	}
}

// trickTransitions keys on whether a trick is active.
var trickTransitions = map[bool]map[trickTrigger]bool{
	false: {trickStart: true},
	true:  {trickComplete: false, trickDiscard: false},
}

// fireTrick checks the trick table and, for the terminal triggers, clears
// air.Trick. Starting is left to the caller, which owns the new TrickRun.
func (sc *SimContext) fireTrick(air *Airborne, t trickTrigger) bool {
	active := air.Trick != nil
	to, ok := trickTransitions[active][t]
	if !ok {
		sc.ignored("trick", t.String(), fmt.Sprintf("active=%v", active))
		return false
	}
	if !to {
		air.Trick = nil
		sc.Player.Rotation = 0
		sc.Player.OffsetY = 0
	}
	return true
}

// updateTrick starts, advances and completes tricks while airborne.
func (sc *SimContext) updateTrick(e inputEdges, dt float64) {
	p := sc.Player
	air := p.Jump.Air
	if air == nil {
		return
	}
	if kind := trickFromEdges(e); kind != TrickNone {
		if sc.fireTrick(air, trickStart) {
			air.Trick = &TrickRun{Kind: kind}
			sc.Log.Add(sc.Tick, "player", "trick", "start", kind.String(), 0)
			// The press tick only starts the trick.
			return
		}
	}
	t := air.Trick
	if t == nil {
		return
	}
	dur := sc.Config.TrickDurationMs
	t.Timer += dt
	prog := math.Min(t.Timer/dur, 1)
	if s := t.Kind.rotationSign(); s != 0 {
		t.Rotation = s * sc.Config.TrickRotationDegPerSec * math.Min(t.Timer, dur) / 1000
	}
	if s := t.Kind.offsetSign(); s != 0 {
		t.Offset = s * sc.Config.TrickMaxOffset * math.Sin(math.Pi*prog)
	}
	p.Rotation = t.Rotation
	p.OffsetY = t.Offset
	if t.Timer < dur {
		return
	}
	kind := t.Kind
	payout, chain := p.Tricks.Complete(kind, sc.ClockMs, sc.Config)
	sc.fireTrick(air, trickComplete)
	sc.emit(Event{Kind: EventTrickComplete, Trick: kind, Payout: payout, Chain: chain})
	sc.Log.Add(sc.Tick, "player", "trick", "complete",
		fmt.Sprintf("%s chain=%d payout=%.2f", kind, chain, payout), payout)
}

// TrickLedger remembers recent tricks for chain and repeat-decay scoring.
type TrickLedger struct {
	Last      TrickKind
	Chain     int
	LastFired map[TrickKind]float64 // sim clock ms
	Completed int
	Earned    float64
}

// NewTrickLedger returns an empty ledger.
func NewTrickLedger() TrickLedger {
	return TrickLedger{LastFired: make(map[TrickKind]float64)}
}

// ResetChain drops the chain, e.g. after a crash or collision.
func (l *TrickLedger) ResetChain() {
	l.Last = TrickNone
	l.Chain = 0
}

// Complete scores kind at time nowMs and records it. The chain grows by one
// for each trick that differs from the previous one and falls back to zero
// on a repeat.
func (l *TrickLedger) Complete(kind TrickKind, nowMs float64, cfg Config) (payout float64, chain int) {
	if l.LastFired == nil {
		l.LastFired = make(map[TrickKind]float64)
	}
	switch {
	case l.Last == kind:
		l.Chain = 0
	case l.Last != TrickNone:
		l.Chain++
	}
	mult := 1.0
	if last, ok := l.LastFired[kind]; ok {
		mult = TrickValueMultiplier(nowMs-last, cfg.TrickCooldownMs, cfg.TrickValueFloor)
	}
	payout = cfg.TrickBaseValue * ChainMultiplier(cfg.ChainBase, l.Chain) * mult
	l.LastFired[kind] = nowMs
	l.Last = kind
	l.Completed++
	l.Earned += payout
	return payout, l.Chain
}

// ChainMultiplier is base^chain.
func ChainMultiplier(base float64, chain int) float64 {
	if chain <= 0 {
		return 1
	}
	return math.Pow(base, float64(chain))
}

// TrickValueMultiplier ramps linearly from floor (just fired) to 1 (a full
// cooldown ago or more).
func TrickValueMultiplier(sinceMs, cooldownMs, floor float64) float64 {
	if cooldownMs <= 0 || sinceMs >= cooldownMs {
		return 1
	}
	if sinceMs <= 0 {
		return floor
	}
	return floor + (1-floor)*sinceMs/cooldownMs
}
