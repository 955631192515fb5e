package game

import (
	"fmt"
	"math"
)

// TestSim is a headless simulation harness used by tests and the headless
// runner. It drives a SimContext with scripted input, starts from empty
// terrain unless obstacles are added, and checks invariants every tick.
type TestSim struct {
	Sim        *SimContext
	SimLog     *SimLog
	Events     []Event
	Violations []string

	cfg       Config
	seed      int64
	view      Viewport
	verbose   bool
	generated bool
	held      Input

	course []*Obstacle // templates copied into every downhill course
	trail  []*Obstacle
	mode   *Mode
	at     *[2]float64
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra   simOptionKind = iota // config, seed, viewport, verbose
	simOptTerrain                      // obstacles, added once the sim exists
	simOptState                        // mode and player position, applied last
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.seed = seed
	}}
}

// WithConfig replaces DefaultConfig.
func WithConfig(cfg Config) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg = cfg
	}}
}

// WithUpgrades sets the starting upgrade levels.
func WithUpgrades(u Upgrades) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg.Upgrades = u
	}}
}

// WithViewport sets the logical screen size.
func WithViewport(w, h float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.view = Viewport{W: w, H: h}
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.verbose = v
	}}
}

// WithDownhillObstacle adds o to every downhill course the sim builds.
func WithDownhillObstacle(o *Obstacle) SimOption {
	return SimOption{simOptTerrain, func(ts *TestSim) {
		ts.course = append(ts.course, o)
	}}
}

// WithTrailObstacle adds o to the uphill trail.
func WithTrailObstacle(o *Obstacle) SimOption {
	return SimOption{simOptTerrain, func(ts *TestSim) {
		ts.trail = append(ts.trail, o)
		ts.Sim.Trail.Add(cloneObstacle(o))
	}}
}

// WithMode switches the sim into m before the first tick.
func WithMode(m Mode) SimOption {
	return SimOption{simOptState, func(ts *TestSim) {
		ts.mode = &m
	}}
}

// WithPlayerAt places the player at (x, absY) after the mode is set.
func WithPlayerAt(x, absY float64) SimOption {
	return SimOption{simOptState, func(ts *TestSim) {
		ts.at = &[2]float64{x, absY}
	}}
}

// WithGeneratedTerrain keeps the seeded trail and courses instead of the
// empty defaults.
func WithGeneratedTerrain() SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.generated = true
	}}
}

// NewTestSim constructs a TestSim from the given options in ordered passes:
//  1. Infrastructure (config, seed, viewport, verbose)
//  2. Build the SimContext with empty terrain
//  3. Obstacles
//  4. Mode and player position
//
// It panics if the options produce an invalid config.
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		cfg:  DefaultConfig(),
		seed: 1,
		view: Viewport{W: 800, H: 600},
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	sc, err := NewSimContext(ts.cfg, ts.seed, ts.view)
	if err != nil {
		panic(fmt.Sprintf("test harness: %v", err))
	}
	ts.Sim = sc
	ts.SimLog = NewSimLog(ts.verbose)
	sc.Log = ts.SimLog
	sc.Subscribe(ListenerFunc(func(e Event) { ts.Events = append(ts.Events, e) }))
	if !ts.generated {
		sc.Trail = NewTrailTerrain(sc.Mountain, sc.Config.ObstacleScale)
		sc.buildCourse = ts.buildCourse
	}

	for _, o := range opts {
		if o.kind == simOptTerrain {
			o.fn(ts)
		}
	}
	for _, o := range opts {
		if o.kind == simOptState {
			o.fn(ts)
		}
	}
	if ts.mode != nil && *ts.mode != sc.Mode {
		sc.setMode(*ts.mode, "test_setup")
	}
	if ts.at != nil {
		sc.Player.X, sc.Player.Y = ts.at[0], ts.at[1]
		if sc.Mode == ModeUphill {
			sc.Camera.Snap(sc.Player.X, sc.Player.Y, sc.Mountain.LayerForY(sc.Player.Y))
		} else {
			sc.Camera.Pin(sc.View.W/2, sc.Player.Y)
		}
		if sc.run.active {
			sc.run.startY = sc.Player.Y
		}
	}
	ts.Events = nil
	return ts
}

// buildCourse copies the registered downhill obstacles into a fresh course.
func (ts *TestSim) buildCourse(_ float64) *Terrain {
	sc := ts.Sim
	t := NewCourseTerrain(sc.View.W, sc.Mountain.Height(), sc.Config.ObstacleScale)
	for _, o := range ts.course {
		t.Add(cloneObstacle(o))
	}
	return t
}

func cloneObstacle(o *Obstacle) *Obstacle {
	cp := *o
	cp.Zones = append([]Zone(nil), o.Zones...)
	return &cp
}

// Player is shorthand for the sim's player.
func (ts *TestSim) Player() *Player { return ts.Sim.Player }

// Hold sets the input held on every following tick.
func (ts *TestSim) Hold(in Input) { ts.held = in }

// Release clears the held input.
func (ts *TestSim) Release() { ts.held = Input{} }

// Step advances one tick with in, without changing the held input.
func (ts *TestSim) Step(in Input) {
	ts.runOneTick(in)
}

// Tap presses in for one tick and releases it on the next.
func (ts *TestSim) Tap(in Input) {
	ts.runOneTick(in)
	ts.runOneTick(ts.held)
}

// RunTicks advances the simulation n ticks with the held input.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.runOneTick(ts.held)
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.runOneTick(ts.held)
		if predicate(ts) {
			return ts.Sim.Tick
		}
	}
	return -1
}

// RunWith drives the sim for n ticks with inputs from next.
func (ts *TestSim) RunWith(next func(*SimContext) Input, n int) {
	for i := 0; i < n; i++ {
		ts.runOneTick(next(ts.Sim))
	}
}

// CountEvents returns how many events of kind were seen.
func (ts *TestSim) CountEvents(kind EventKind) int {
	n := 0
	for _, e := range ts.Events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// LastEvent returns the most recent event of kind.
func (ts *TestSim) LastEvent(kind EventKind) (Event, bool) {
	for i := len(ts.Events) - 1; i >= 0; i-- {
		if ts.Events[i].Kind == kind {
			return ts.Events[i], true
		}
	}
	return Event{}, false
}

// runOneTick steps the sim and records verbose state and invariant breaks.
func (ts *TestSim) runOneTick(in Input) {
	sc := ts.Sim
	sc.Step(in, TickMs)
	p := sc.Player
	ts.SimLog.AddVerbose(sc.Tick, "player", "move", "position",
		fmt.Sprintf("%s (%.1f,%.1f) v=(%.2f,%.2f)", sc.Mode, p.X, p.Y, p.XVel, p.VelocityY), p.Y)
	ts.checkInvariants()
}

// checkInvariants records any broken state rule for the current tick.
func (ts *TestSim) checkInvariants() {
	sc := ts.Sim
	p := sc.Player
	fail := func(format string, args ...any) {
		ts.Violations = append(ts.Violations, fmt.Sprintf("T=%d %s: ", sc.Tick, sc.Mode)+fmt.Sprintf(format, args...))
	}
	if (p.Jump.Air != nil) != (p.Jump.Phase == JumpAirborne) {
		fail("jump phase %s with air=%v", p.Jump.Phase, p.Jump.Air != nil)
	}
	if p.Y < 0 || p.Y > sc.Mountain.Height() || math.IsNaN(p.Y) {
		fail("absY %.2f outside [0,%.0f]", p.Y, sc.Mountain.Height())
	}
	if p.Collisions > sc.Config.MaxCollisions(sc.Upgrades) {
		fail("collisions %d over max", p.Collisions)
	}
	switch sc.Mode {
	case ModeUphill:
		w := sc.Mountain.LayerForY(p.Y).Width
		if p.X < 0 || p.X >= w {
			fail("x %.2f outside layer width %.0f", p.X, w)
		}
		if p.XVel != 0 || p.VelocityY != 0 {
			fail("velocity (%.2f,%.2f) carried uphill", p.XVel, p.VelocityY)
		}
		if p.Jump.Phase != JumpIdle {
			fail("jump %s while hiking", p.Jump.Phase)
		}
	case ModeDownhill:
		if p.X < p.W/2-1e-9 || p.X > sc.View.W-p.W/2+1e-9 {
			fail("x %.2f off screen width %.0f", p.X, sc.View.W)
		}
	case ModeHouse:
		if p.Jump.Phase != JumpIdle || p.SledDamaged {
			fail("house with jump=%s damaged=%v", p.Jump.Phase, p.SledDamaged)
		}
	}
}
