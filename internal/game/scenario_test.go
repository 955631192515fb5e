package game

import (
	"math"
	"testing"
)

// dumpLog prints the full SimLog to t.Log so it appears in `go test -v` output.
func dumpLog(t *testing.T, ts *TestSim) {
	t.Helper()
	entries := ts.SimLog.Entries()
	if len(entries) == 0 {
		t.Log("(no log entries)")
		return
	}
	for _, e := range entries {
		if e.Category == "move" && e.Key == "position" {
			continue
		}
		t.Log(e.String())
	}
}

// dumpSummary prints the scenario summary block.
func dumpSummary(t *testing.T, ts *TestSim, stats *RunStats) {
	t.Helper()
	t.Log(ts.SimLog.Summary(ts.Sim))
	if stats != nil {
		t.Log(stats.Summary().Format())
	}
}

// modeReasons lists the reasons of every mode change seen so far.
func modeReasons(ts *TestSim) []string {
	var out []string
	for _, e := range ts.Events {
		if e.Kind == EventModeChange {
			out = append(out, e.Reason)
		}
	}
	return out
}

// --- Scenario: Full Loop ---

func TestScenario_FullLoop(t *testing.T) {
	t.Log("=== TestScenario_FullLoop ===")
	t.Log("--- Setup: empty mountain, hike from the house to the summit, sled to the base ---")

	ts := NewTestSim(WithSeed(42))
	stats := NewRunStats()
	ts.Sim.Subscribe(stats)

	ts.Tap(Input{Jump: true})
	ts.Hold(Input{Up: true})
	if ts.RunUntil(func(ts *TestSim) bool { return ts.Sim.Mode == ModeDownhill }, 5000) < 0 {
		dumpSummary(t, ts, stats)
		t.Fatal("expected to reach the summit")
	}
	if layers := ts.SimLog.CountCategory("move", "layer_change"); layers != 4 {
		t.Errorf("expected 4 layer changes on the way up, got %d", layers)
	}

	ts.Release()
	if ts.RunUntil(func(ts *TestSim) bool { return ts.Sim.Mode == ModeHouse }, 3000) < 0 {
		dumpSummary(t, ts, stats)
		t.Fatal("expected the run to finish at the house")
	}
	dumpLog(t, ts)
	dumpSummary(t, ts, stats)

	want := []string{"leave_house", "summit", "run_complete"}
	got := modeReasons(ts)
	if len(got) != len(want) {
		t.Fatalf("expected mode changes %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected mode changes %v, got %v", want, got)
		}
	}

	sr := stats.Summary()
	if sr == nil || sr.Runs != 1 || sr.Completed != 1 || sr.Wrecked != 0 {
		t.Fatalf("expected one completed run, got %+v", sr)
	}
	if sr.AvgDistance < 19000 {
		t.Errorf("expected a near full-height run, got %.0fpx", sr.AvgDistance)
	}
	checkNoViolations(t, ts)
}

// --- Scenario: Wreck and Repair ---

func TestScenario_WreckThenWalkHome(t *testing.T) {
	t.Log("=== TestScenario_WreckThenWalkHome ===")
	t.Log("--- Setup: sled from mid-mountain into three wide trees, walk down to repair ---")

	ts := NewTestSim(
		WithSeed(3),
		WithDownhillObstacle(NewSimpleObstacle(1, ObstacleTree, 400, 8200, 600, 20)),
		WithDownhillObstacle(NewSimpleObstacle(2, ObstacleTree, 400, 8600, 600, 20)),
		WithDownhillObstacle(NewSimpleObstacle(3, ObstacleTree, 400, 9000, 600, 20)),
		WithMode(ModeUphill),
		WithPlayerAt(500, 8000),
	)
	stats := NewRunStats()
	ts.Sim.Subscribe(stats)

	ts.Tap(Input{Jump: true})
	if ts.Sim.Mode != ModeDownhill {
		t.Fatalf("expected to sled from here, got %s", ts.Sim.Mode)
	}
	if ts.RunUntil(func(ts *TestSim) bool { return ts.Sim.Mode == ModeUphill }, 2000) < 0 {
		dumpSummary(t, ts, stats)
		t.Fatal("expected the third tree to wreck the sled")
	}
	if !ts.Player().SledDamaged || ts.CountEvents(EventCollision) != 3 {
		t.Fatalf("expected a wreck after 3 hits, got damaged=%v hits=%d",
			ts.Player().SledDamaged, ts.CountEvents(EventCollision))
	}
	// A damaged sled cannot start another run.
	ts.Tap(Input{Jump: true})
	if ts.Sim.Mode != ModeUphill {
		t.Fatalf("expected to stay uphill with a damaged sled, got %s", ts.Sim.Mode)
	}

	ts.Hold(Input{Down: true})
	if ts.RunUntil(func(ts *TestSim) bool { return ts.Sim.Mode == ModeHouse }, 3000) < 0 {
		dumpSummary(t, ts, stats)
		t.Fatal("expected to walk down to the house")
	}
	dumpLog(t, ts)
	dumpSummary(t, ts, stats)

	if ts.Player().SledDamaged {
		t.Fatal("expected the house to repair the sled")
	}
	sr := stats.Summary()
	if sr == nil || sr.Runs != 1 || sr.Wrecked != 1 || sr.Completed != 0 || sr.Repairs != 1 {
		t.Fatalf("expected one wrecked run and a repair, got %+v", sr)
	}
	if sr.Collisions != 3 {
		t.Errorf("expected 3 collisions, got %d", sr.Collisions)
	}
	checkNoViolations(t, ts)
	checkWrecksGoUphill(t, ts)
}

// --- Scenario: Trick Chain Through a Re-hit ---

func TestScenario_ChainAcrossReHit(t *testing.T) {
	t.Log("=== TestScenario_ChainAcrossReHit ===")
	t.Log("--- Setup: empty course, two different tricks in one extended jump ---")

	ts := newSledSim(t)
	ts.Tap(Input{Jump: true})
	ts.Tap(Input{Left: true})
	if ts.RunUntil(func(ts *TestSim) bool { return ts.CountEvents(EventTrickComplete) == 1 }, 60) < 0 {
		t.Fatal("expected the first trick to finish in flight")
	}

	air := ts.Player().Jump.Air
	if air == nil || air.Progress() < ts.Sim.Config.ReHitWindowStart {
		t.Fatalf("expected to be in the re-hit window after the trick, air=%+v", air)
	}
	ts.Tap(Input{Jump: true})
	if ts.CountEvents(EventReHit) != 1 {
		dumpLog(t, ts)
		t.Fatal("expected the re-hit to extend the jump")
	}

	ts.Tap(Input{Right: true})
	if ts.RunUntil(func(ts *TestSim) bool { return ts.CountEvents(EventTrickComplete) == 2 }, 80) < 0 {
		dumpLog(t, ts)
		t.Fatal("expected the second trick to finish in the extended jump")
	}
	e, _ := ts.LastEvent(EventTrickComplete)
	if e.Chain != 1 {
		t.Fatalf("expected chain 1, got %d", e.Chain)
	}
	if want := ts.Sim.Config.TrickBaseValue * ts.Sim.Config.ChainBase; math.Abs(e.Payout-want) > 1e-9 {
		t.Fatalf("expected payout %v, got %v", want, e.Payout)
	}
	if earned := ts.Player().Tricks.Earned; math.Abs(earned-25) > 1e-9 {
		t.Fatalf("expected 10 + 15 earned, got %v", earned)
	}
	checkNoViolations(t, ts)
}
