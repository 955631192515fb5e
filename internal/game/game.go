package game

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

const (
	playW = 800 // logical playfield size; the event feed takes the rest
	playH = 600

	statusTicks = 180
)

// Game is the windowed front end. It owns input polling and drawing; all
// gameplay state lives in the SimContext.
type Game struct {
	width  int
	height int

	cfg   Config
	seed  int64
	sim   *SimContext
	feed  *EventFeed
	stats *RunStats
	auto  *Autopilot
	face  text.Face

	autopilot   bool
	showHUD     bool
	showOverlay bool
	inspector   Inspector

	// Simulation speed control.
	simSpeed  float64 // multiplier: 0=paused, 0.5, 1, 2, 4
	tickAccum float64

	status     string
	statusLeft int
}

// New builds a session from cfg. A zero seed picks one from the clock.
func New(cfg Config, seed int64) (*Game, error) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := &Game{
		width:    playW + feedPanelWidth,
		height:   playH,
		cfg:      cfg,
		seed:     seed,
		face:     text.NewGoXFace(basicfont.Face7x13),
		showHUD:  true,
		simSpeed: 1,
	}
	if err := g.reset(); err != nil {
		return nil, err
	}
	return g, nil
}

// reset starts a fresh session with the current seed.
func (g *Game) reset() error {
	sc, err := NewSimContext(g.cfg, g.seed, Viewport{W: playW, H: playH})
	if err != nil {
		return fmt.Errorf("new game: %w", err)
	}
	g.sim = sc
	g.feed = NewEventFeed()
	g.stats = NewRunStats()
	g.auto = NewAutopilot(g.seed)
	sc.Subscribe(g.feed)
	sc.Subscribe(g.stats)
	g.feed.Add(0, EventModeChange, fmt.Sprintf("seed %d, at the house", g.seed))
	return nil
}

// Sim exposes the running session.
func (g *Game) Sim() *SimContext { return g.sim }

func (g *Game) Update() error {
	g.handleKeys()
	if g.statusLeft > 0 {
		g.statusLeft--
	}
	if g.simSpeed <= 0 {
		return nil
	}
	// For speeds > 1 run multiple sim ticks per frame.
	// For speeds < 1 accumulate fractions.
	g.tickAccum += g.simSpeed
	for g.tickAccum >= 1.0 {
		g.tickAccum -= 1.0
		var in Input
		if g.autopilot {
			in = g.auto.Next(g.sim)
		} else {
			in = readInput()
		}
		g.sim.Step(in, TickMs)
	}
	return nil
}

// readInput polls the held movement keys.
func readInput() Input {
	pressed := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				return true
			}
		}
		return false
	}
	return Input{
		Left:  pressed(ebiten.KeyArrowLeft, ebiten.KeyA),
		Right: pressed(ebiten.KeyArrowRight, ebiten.KeyD),
		Up:    pressed(ebiten.KeyArrowUp, ebiten.KeyW),
		Down:  pressed(ebiten.KeyArrowDown, ebiten.KeyS),
		Jump:  pressed(ebiten.KeySpace),
	}
}

// handleKeys processes the edge-triggered front-end controls.
func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		g.showOverlay = !g.showOverlay
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		g.inspector.cycle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.autopilot = !g.autopilot
		g.setStatus(fmt.Sprintf("autopilot %v", g.autopilot))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if err := CopyDebugReport(g.sim, 300); err != nil {
			g.setStatus(err.Error())
		} else {
			g.setStatus("debug report copied")
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.seed++
		if err := g.reset(); err != nil {
			g.setStatus(err.Error())
		}
	}

	// Debug upgrades: 1-5 raise a level, shift+1-5 lowers it.
	levels := g.sim.Upgrades
	slots := []*int{
		&levels.RocketSurgery, &levels.OptimalOptics, &levels.SledDurability,
		&levels.FancierFootwear, &levels.AntiGravGenerator,
	}
	digits := []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5}
	changed := false
	for i, k := range digits {
		if !inpututil.IsKeyJustPressed(k) {
			continue
		}
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			if *slots[i] > 0 {
				*slots[i]--
			}
		} else {
			*slots[i]++
		}
		changed = true
	}
	if changed {
		g.sim.SetUpgrades(levels)
		g.setStatus(fmt.Sprintf("upgrades %+v", levels))
	}

	// Sim speed controls: P=pause/resume, ,=slower, .=faster.
	speeds := []float64{0, 0.5, 1, 2, 4}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		if g.simSpeed > 0 {
			g.simSpeed = 0
		} else {
			g.simSpeed = 1
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyComma) {
		for i, s := range speeds {
			if s >= g.simSpeed && i > 0 {
				g.simSpeed = speeds[i-1]
				break
			}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPeriod) {
		for i, s := range speeds {
			if s <= g.simSpeed && i < len(speeds)-1 && speeds[i+1] > g.simSpeed {
				g.simSpeed = speeds[i+1]
				break
			}
		}
	}
}

func (g *Game) setStatus(s string) {
	g.status = s
	g.statusLeft = statusTicks
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// WindowSize is the logical window size including the event feed.
func (g *Game) WindowSize() (int, int) {
	return g.width, g.height
}
