package game

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// TickMs is the fixed frame step the front ends feed the simulation.
const TickMs = 1000.0 / 60.0

// houseX is where the trail starts when leaving the house.
const houseX = 0.0

// Viewport is the logical screen size, read from rendering.
type Viewport struct {
	W, H float64
}

// runState tracks the downhill run in progress.
type runState struct {
	active  bool
	startY  float64
	startMs float64
}

// SimContext owns every piece of mutable simulation state. All updates go
// through Step on a single goroutine.
type SimContext struct {
	Config   Config
	Upgrades Upgrades
	Mountain *Mountain
	Trail    *Terrain // uphill obstacles, layer space
	Course   *Terrain // downhill obstacles, screen space, rebuilt per run
	Player   *Player
	Camera   Camera
	Mode     Mode
	View     Viewport
	Log      *SimLog
	Tick     int
	ClockMs  float64

	rng         *rand.Rand
	seed        int64
	prevInput   Input
	listeners   []Listener
	landing     *Tween
	pendingCfg  *Config
	stepping    bool
	switching   bool
	run         runState
	buildCourse func(startY float64) *Terrain
}

// NewSimContext validates cfg and builds a session starting in the house.
func NewSimContext(cfg Config, seed int64, view Viewport) (*SimContext, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new sim: %w", err)
	}
	m, err := NewMountain(cfg.Layers)
	if err != nil {
		return nil, fmt.Errorf("new sim: %w", err)
	}
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- gameplay only
	sc := &SimContext{
		Config:   cfg,
		Upgrades: cfg.Upgrades,
		Mountain: m,
		Player:   NewPlayer(houseX, m.Height()),
		Mode:     ModeHouse,
		View:     view,
		Log:      NewSimLog(false),
		rng:      rng,
		seed:     seed,
	}
	sc.Trail = generateTrail(rng, cfg, m)
	sc.buildCourse = func(startY float64) *Terrain {
		courseRng := rand.New(rand.NewSource(sc.rng.Int63())) // #nosec G404 -- gameplay only
		return generateCourse(courseRng, sc.Config, sc.View.W, sc.Mountain.Height(), startY)
	}
	sc.Camera.Pin(view.W/2, sc.Player.Y)
	return sc, nil
}

// Seed is the seed the session was built from.
func (sc *SimContext) Seed() int64 { return sc.seed }

// Subscribe registers l for every future event.
func (sc *SimContext) Subscribe(l Listener) {
	sc.listeners = append(sc.listeners, l)
}

// SetConfig queues cfg for the next downhill run. Layers are fixed for the
// session; a differing layer table is ignored.
func (sc *SimContext) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("set config: %w", err)
	}
	cfg.Layers = sc.Config.Layers
	sc.pendingCfg = &cfg
	return nil
}

// SetUpgrades replaces the upgrade levels.
func (sc *SimContext) SetUpgrades(u Upgrades) {
	sc.Upgrades = u
}

// Landing reports whether a forced landing is being interpolated.
func (sc *SimContext) Landing() bool { return sc.landing != nil }

// Step advances the simulation by one frame of dtMs milliseconds.
func (sc *SimContext) Step(in Input, dtMs float64) {
	if sc.stepping {
		sc.ignored("sim", "step", "re-entrant call")
		return
	}
	sc.stepping = true
	defer func() { sc.stepping = false }()

	sc.Tick++
	sc.ClockMs += dtMs
	e := in.edges(sc.prevInput)
	sc.prevInput = in

	if sc.landing != nil {
		sc.advanceLanding(dtMs)
	} else {
		switch sc.Mode {
		case ModeDownhill:
			sc.updateDownhill(in, e, dtMs)
		case ModeUphill:
			sc.updateUphill(in, e)
		case ModeHouse:
			sc.updateHouse(e)
		}
	}
	sc.updateCamera()
}

// RequestMode asks for a locomotion change. While airborne the jump is
// resolved first by easing the player down to a safe landing, and the
// change completes when that finishes. Returns false if refused.
func (sc *SimContext) RequestMode(to Mode, reason string) bool {
	switch {
	case sc.switching:
		sc.ignored("mode", to.String(), "already switching")
		return false
	case sc.landing != nil:
		sc.ignored("mode", to.String(), "landing in progress")
		return false
	case to == sc.Mode:
		sc.ignored("mode", to.String(), "already in mode")
		return false
	case to == ModeDownhill && sc.Player.SledDamaged:
		sc.ignored("mode", to.String(), "sled damaged")
		return false
	}

	if !sc.interruptJump() {
		sc.setMode(to, reason)
		return true
	}
	p := sc.Player
	safeY := sc.safeLandingY()
	sc.Log.Add(sc.Tick, "player", "mode", "landing",
		fmt.Sprintf("%.0f → %.0f before %s", p.Y, safeY, to), safeY)
	sc.landing = NewTween(
		mgl64.Vec2{p.Y, p.RenderScale},
		mgl64.Vec2{safeY, 1},
		sc.Config.LandingTweenMs,
		func() {
			p.Y = safeY
			p.resetRender()
			sc.landing = nil
			sc.setMode(to, reason)
		},
	)
	return true
}

// advanceLanding moves the forced-landing tween one frame.
func (sc *SimContext) advanceLanding(dt float64) {
	v, done := sc.landing.Advance(dt)
	if done {
		return
	}
	sc.Player.Y = v.X()
	sc.Player.RenderScale = v.Y()
}

// setMode switches immediately. Callers guarantee the player is grounded.
func (sc *SimContext) setMode(to Mode, reason string) {
	sc.switching = true
	defer func() { sc.switching = false }()

	from := sc.Mode
	p := sc.Player
	p.XVel, p.VelocityY = 0, 0
	p.Jump = Jump{}
	p.resetRender()
	sc.run.active = false

	switch to {
	case ModeDownhill:
		sc.enterDownhill(from)
	case ModeUphill:
		sc.enterUphill(from)
	case ModeHouse:
		sc.enterHouse()
	}
	sc.Mode = to
	sc.Log.Add(sc.Tick, "player", "mode", "change", fmt.Sprintf("%s → %s (%s)", from, to, reason), 0)
	sc.emit(Event{Kind: EventModeChange, From: from, To: to, Reason: reason})
}

func (sc *SimContext) enterDownhill(from Mode) {
	p := sc.Player
	if sc.pendingCfg != nil {
		sc.Config = *sc.pendingCfg
		sc.pendingCfg = nil
	}
	if from == ModeUphill {
		layer := sc.Mountain.LayerForY(p.Y)
		p.X = WrapX(p.X, layer.Width) / layer.Width * sc.View.W
	}
	p.X = mgl64.Clamp(p.X, p.W/2, math.Max(p.W/2, sc.View.W-p.W/2))
	p.Y = mgl64.Clamp(p.Y, 0, sc.Mountain.Height())
	p.Collisions = 0
	p.Tricks.ResetChain()
	sc.Course = sc.buildCourse(p.Y)
	sc.run = runState{active: true, startY: p.Y, startMs: sc.ClockMs}
}

func (sc *SimContext) enterUphill(from Mode) {
	p := sc.Player
	switch from {
	case ModeDownhill:
		layer := sc.Mountain.LayerForY(p.Y)
		if sc.View.W > 0 {
			p.X = p.X / sc.View.W * layer.Width
		}
		p.X = WrapX(p.X, layer.Width)
	case ModeHouse:
		p.X = houseX
		p.Y = sc.Mountain.Height()
	}
	sc.Camera.Snap(p.X, p.Y, sc.Mountain.LayerForY(p.Y))
}

func (sc *SimContext) enterHouse() {
	p := sc.Player
	p.Y = sc.Mountain.Height()
	p.Collisions = 0
	if p.SledDamaged {
		p.SledDamaged = false
		sc.emit(Event{Kind: EventSledDamaged, SledDamaged: false})
	}
}

// updateCamera follows the player while hiking and pins the view otherwise.
func (sc *SimContext) updateCamera() {
	p := sc.Player
	if sc.Mode == ModeUphill && sc.landing == nil {
		sc.Camera.Follow(p.X, p.Y, sc.Mountain.LayerForY(p.Y), sc.Config.CameraLerp)
		return
	}
	sc.Camera.Pin(sc.View.W/2, p.Y)
}

func (sc *SimContext) emit(e Event) {
	e.Tick = sc.Tick
	for _, l := range sc.listeners {
		l.OnEvent(e)
	}
}

// ignored records a refused transition. These are expected under input
// timing races and never change state.
func (sc *SimContext) ignored(category, key, detail string) {
	sc.Log.Add(sc.Tick, "player", "ignored", category+"/"+key, detail, 0)
}
