package game

import (
	"testing"
)

// --- Invariant helpers ---

// legalModeChanges lists every (from, to, reason) the simulation may emit.
var legalModeChanges = map[[2]Mode]map[string]bool{
	{ModeHouse, ModeUphill}:    {"leave_house": true},
	{ModeUphill, ModeDownhill}: {"summit": true, "sled_from_here": true},
	{ModeUphill, ModeHouse}:    {"reached_base": true},
	{ModeDownhill, ModeHouse}:  {"run_complete": true},
	{ModeDownhill, ModeUphill}: {"sled_damaged": true, "run_complete": true},
}

// checkNoViolations fails on any per-tick rule the harness recorded.
func checkNoViolations(t *testing.T, ts *TestSim) {
	t.Helper()
	for i, v := range ts.Violations {
		if i == 10 {
			t.Errorf("... and %d more", len(ts.Violations)-10)
			break
		}
		t.Error(v)
	}
}

// checkModeChanges verifies every mode change is a legal edge and that
// consecutive changes chain (each starts where the last ended).
func checkModeChanges(t *testing.T, ts *TestSim) {
	t.Helper()
	var last *Event
	for i := range ts.Events {
		e := ts.Events[i]
		if e.Kind != EventModeChange {
			continue
		}
		if !legalModeChanges[[2]Mode{e.From, e.To}][e.Reason] {
			t.Errorf("T=%d illegal mode change %s", e.Tick, e)
		}
		if last != nil && last.To != e.From {
			t.Errorf("T=%d mode change from %s after entering %s", e.Tick, e.From, last.To)
		}
		last = &ts.Events[i]
	}
}

// checkTricksOnlyOnSled verifies trick payouts only happen on a run and are
// never negative.
func checkTricksOnlyOnSled(t *testing.T, ts *TestSim) {
	t.Helper()
	mode := ModeHouse
	for _, e := range ts.Events {
		switch e.Kind {
		case EventModeChange:
			mode = e.To
		case EventTrickComplete, EventReHit, EventCrash:
			if mode != ModeDownhill {
				t.Errorf("T=%d %s while %s", e.Tick, e.Kind, mode)
			}
			if e.Payout < 0 {
				t.Errorf("T=%d negative payout %.2f", e.Tick, e.Payout)
			}
		}
	}
}

// checkWrecksGoUphill verifies a damaged sled always leaves the run, and
// that a repair only happens on entering the house.
func checkWrecksGoUphill(t *testing.T, ts *TestSim) {
	t.Helper()
	for i, e := range ts.Events {
		if e.Kind != EventSledDamaged {
			continue
		}
		var next *Event
		for j := i + 1; j < len(ts.Events); j++ {
			if ts.Events[j].Kind == EventModeChange {
				next = &ts.Events[j]
				break
			}
		}
		if e.SledDamaged {
			if next == nil || next.Reason != "sled_damaged" {
				t.Errorf("T=%d wreck not followed by a sled_damaged switch", e.Tick)
			}
			continue
		}
		// Repairs are raised while entering the house, just before the
		// mode change itself.
		if next == nil || next.To != ModeHouse || next.Tick != e.Tick {
			t.Errorf("T=%d repair outside the house", e.Tick)
		}
	}
}

func runAutopilot(t *testing.T, seed int64, ticks int, opts ...SimOption) *TestSim {
	t.Helper()
	base := []SimOption{WithSeed(seed), WithGeneratedTerrain()}
	ts := NewTestSim(append(base, opts...)...)
	auto := NewAutopilot(seed * 31)
	ts.RunWith(auto.Next, ticks)
	return ts
}

// --- Invariant tests ---

func TestInvariant_AutopilotSessions(t *testing.T) {
	for _, seed := range []int64{1, 7, 42} {
		ts := runAutopilot(t, seed, 12000)
		checkNoViolations(t, ts)
		checkModeChanges(t, ts)
		checkTricksOnlyOnSled(t, ts)
		checkWrecksGoUphill(t, ts)
		if ts.CountEvents(EventModeChange) < 2 {
			t.Errorf("seed %d: expected the bot to leave the house and sled, got %d mode changes",
				seed, ts.CountEvents(EventModeChange))
		}
		if t.Failed() {
			t.Log(ts.SimLog.Summary(ts.Sim))
			return
		}
	}
}

func TestInvariant_AutopilotChargeMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.JumpMode = JumpCharge
	ts := runAutopilot(t, 5, 12000, WithConfig(cfg))
	checkNoViolations(t, ts)
	checkModeChanges(t, ts)
	checkTricksOnlyOnSled(t, ts)
}

func TestInvariant_AutopilotRunEndUphill(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RunEnd = RunEndUphill
	cfg.Upgrades = Upgrades{RocketSurgery: 3, SledDurability: 2, FancierFootwear: 4}
	ts := runAutopilot(t, 11, 12000, WithConfig(cfg))
	checkNoViolations(t, ts)
	checkModeChanges(t, ts)
	checkWrecksGoUphill(t, ts)
}

func TestInvariant_SameSeedSameSession(t *testing.T) {
	a := runAutopilot(t, 9, 6000)
	b := runAutopilot(t, 9, 6000)
	if len(a.Events) != len(b.Events) {
		t.Fatalf("expected identical event streams, got %d and %d events", len(a.Events), len(b.Events))
	}
	for i := range a.Events {
		if a.Events[i] != b.Events[i] {
			t.Fatalf("event %d differs: %s vs %s", i, a.Events[i], b.Events[i])
		}
	}
	pa, pb := a.Player(), b.Player()
	if pa.X != pb.X || pa.Y != pb.Y || a.Sim.Mode != b.Sim.Mode {
		t.Fatalf("expected identical end state, got (%v,%v,%s) and (%v,%v,%s)",
			pa.X, pa.Y, a.Sim.Mode, pb.X, pb.Y, b.Sim.Mode)
	}
}
