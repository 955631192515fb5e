package game

import "fmt"

// EventKind identifies a discrete gameplay event published by the simulation.
type EventKind int

const (
	EventModeChange EventKind = iota
	EventRunComplete
	EventTrickComplete
	EventCollision
	EventSledDamaged
	EventCrash
	EventJumpPeak
	EventReHit
)

func (k EventKind) String() string {
	switch k {
	case EventModeChange:
		return "mode_change"
	case EventRunComplete:
		return "run_complete"
	case EventTrickComplete:
		return "trick_complete"
	case EventCollision:
		return "collision"
	case EventSledDamaged:
		return "sled_damaged"
	case EventCrash:
		return "crash"
	case EventJumpPeak:
		return "jump_peak"
	case EventReHit:
		return "rehit"
	default:
		return "unknown"
	}
}

// Event is a notification for the systems outside the core (economy, UI,
// wildlife). Only the fields relevant to Kind are set.
type Event struct {
	Tick int
	Kind EventKind

	From, To Mode // EventModeChange
	Reason   string

	Trick  TrickKind // EventTrickComplete, EventCrash
	Payout float64
	Chain  int

	Collisions  int  // EventCollision
	SledDamaged bool // EventSledDamaged (also false when repaired)

	Distance float64 // EventRunComplete
	Seconds  float64
	Score    float64
}

// String renders the event for the on-screen feed.
func (e Event) String() string {
	switch e.Kind {
	case EventModeChange:
		return fmt.Sprintf("%s → %s (%s)", e.From, e.To, e.Reason)
	case EventRunComplete:
		return fmt.Sprintf("run %.0fpx in %.1fs, score %.1f", e.Distance, e.Seconds, e.Score)
	case EventTrickComplete:
		return fmt.Sprintf("%s x%d +$%.1f", e.Trick, e.Chain+1, e.Payout)
	case EventCollision:
		return fmt.Sprintf("hit! collisions=%d", e.Collisions)
	case EventSledDamaged:
		if e.SledDamaged {
			return "sled damaged"
		}
		return "sled repaired"
	case EventCrash:
		return fmt.Sprintf("crashed during %s", e.Trick)
	case EventJumpPeak:
		return "peak"
	case EventReHit:
		return "re-hit!"
	default:
		return e.Kind.String()
	}
}

// Listener receives events synchronously, inside the tick that raised them.
// Listeners must not call back into SimContext.Step.
type Listener interface {
	OnEvent(Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(Event)

// OnEvent calls f.
func (f ListenerFunc) OnEvent(e Event) {
	if f == nil {
		return
	}
	f(e)
}
