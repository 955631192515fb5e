package game

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Inspector panel, rendered into an offscreen buffer at 1x then blitted at inspScale.
const (
	inspScale = 2   // scale factor for inspector text rendering
	inspBufW  = 200 // buffer width in pixels (~33 chars at debug font)
	inspBufH  = 270 // buffer height in pixels
	inspPad   = 4   // padding in buffer-space pixels
	inspLineH = 13  // line height in buffer-space pixels
)

// inspectorView cycles with the I key.
type inspectorView int

const (
	inspectorOff inspectorView = iota
	inspectorCurated
	inspectorRaw
)

func (v inspectorView) String() string {
	switch v {
	case inspectorCurated:
		return "CURATED"
	case inspectorRaw:
		return "RAW"
	default:
		return "OFF"
	}
}

// Inspector holds the player panel toggle state.
type Inspector struct {
	view inspectorView
	buf  *ebiten.Image
}

// cycle advances off -> curated -> raw -> off.
func (in *Inspector) cycle() {
	in.view = (in.view + 1) % 3
}

// drawInspector renders the inspector panel into an offscreen buffer at 1×,
// then blits it onto the screen at inspScale for readability.
func (g *Game) drawInspector(screen *ebiten.Image) {
	if g.inspector.view == inspectorOff {
		return
	}
	if g.inspector.buf == nil {
		g.inspector.buf = ebiten.NewImage(inspBufW, inspBufH)
	}
	buf := g.inspector.buf
	buf.Clear()

	bw := float32(inspBufW)
	bh := float32(inspBufH)

	panelBg := color.RGBA{R: 14, G: 18, B: 26, A: 230}
	panelBorder := color.RGBA{R: 70, G: 90, B: 120, A: 255}
	vector.FillRect(buf, 0, 0, bw, bh, panelBg, false)
	vector.StrokeRect(buf, 0, 0, bw, bh, 1.0, panelBorder, false)
	// Inner highlight along top edge.
	vector.StrokeLine(buf, 1, 1, bw-1, 1, 1.0, color.RGBA{R: 90, G: 120, B: 170, A: 60}, false)

	lx := inspPad
	ly := inspPad

	sc := g.sim
	ebitenutil.DebugPrintAt(buf, fmt.Sprintf("[ PLAYER T=%d ]", sc.Tick), lx, ly)
	ly += inspLineH + 2
	ebitenutil.DebugPrintAt(buf, fmt.Sprintf("view: %s  [I] cycle", g.inspector.view), lx, ly)
	ly += inspLineH + 4

	vector.StrokeLine(buf, float32(lx), float32(ly), bw-float32(inspPad), float32(ly), 1.0, panelBorder, false)
	ly += 4

	var lines []string
	if g.inspector.view == inspectorRaw {
		lines = inspectorRawLines(sc)
	} else {
		lines = inspectorCuratedLines(sc)
	}
	for _, l := range lines {
		if ly > inspBufH-inspLineH {
			break
		}
		ebitenutil.DebugPrintAt(buf, l, lx, ly)
		ly += inspLineH
	}

	// Bottom-right of the playfield, clear of the event feed.
	px := playW - inspBufW*inspScale - 8
	py := playH - inspBufH*inspScale - 8
	if py < 0 {
		py = 0
	}
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(inspScale), float64(inspScale))
	opts.GeoM.Translate(float64(px), float64(py))
	screen.DrawImage(buf, opts)
}

// meter renders v in [0,1] as a fixed-width text bar.
func meter(label string, v float64) string {
	filled := int(v * 12)
	if filled < 0 {
		filled = 0
	}
	if filled > 12 {
		filled = 12
	}
	return fmt.Sprintf("%-7s %s%s %.2f", label,
		strings.Repeat("#", filled), strings.Repeat(".", 12-filled), v)
}

// inspectorCuratedLines is the organised, human-readable view.
func inspectorCuratedLines(sc *SimContext) []string {
	p := sc.Player
	layer := sc.Mountain.LayerForY(p.Y)
	var out []string
	line := func(format string, args ...any) { out = append(out, fmt.Sprintf(format, args...)) }
	section := func(title string) { out = append(out, "-- "+title+" --") }

	section("MOVE")
	line("mode: %s", sc.Mode)
	line("layer %d w=%.0f", layer.ID, layer.Width)
	line("pos (%.0f, %.0f)", p.X, p.Y)
	out = append(out, meter("height", 1-p.Y/sc.Mountain.Height()))
	if sc.Mode == ModeDownhill {
		out = append(out, meter("steer", absRatio(p.XVel, sc.Config.DownhillMaxXVel(sc.Upgrades))))
		out = append(out, meter("fall", absRatio(p.VelocityY, sc.Config.MaxFallSpeed)))
	}

	section("JUMP")
	line("phase: %s", p.Jump.Phase)
	switch {
	case p.Jump.Phase == JumpCharging:
		out = append(out, meter("charge", p.Jump.ChargeMs/sc.Config.MaxChargeMs))
	case p.Jump.Air != nil:
		air := p.Jump.Air
		out = append(out, meter("flight", air.Progress()))
		if air.ReHitUsed {
			line("re-hit used")
		} else if air.Progress() >= sc.Config.ReHitWindowStart {
			line("RE-HIT NOW")
		}
		if t := air.Trick; t != nil {
			line("trick %s", t.Kind)
			out = append(out, meter("trick", t.Timer/sc.Config.TrickDurationMs))
		}
	}
	if sc.Landing() {
		line("forced landing...")
	}

	section("SLED")
	maxHits := sc.Config.MaxCollisions(sc.Upgrades)
	out = append(out, meter("wear", float64(p.Collisions)/float64(maxHits)))
	if p.SledDamaged {
		line("DAMAGED: walk down to repair")
	}

	section("TRICKS")
	line("done %d  $%.1f", p.Tricks.Completed, p.Tricks.Earned)
	line("chain x%d last %s", p.Tricks.Chain+1, p.Tricks.Last)
	return out
}

// inspectorRawLines dumps the player state verbatim.
func inspectorRawLines(sc *SimContext) []string {
	p := sc.Player
	out := []string{
		fmt.Sprintf("x=%.2f y=%.2f", p.X, p.Y),
		fmt.Sprintf("w=%.0f h=%.0f", p.W, p.H),
		fmt.Sprintf("xv=%.3f vy=%.3f", p.XVel, p.VelocityY),
		fmt.Sprintf("hits=%d dmg=%v", p.Collisions, p.SledDamaged),
		fmt.Sprintf("scale=%.2f rot=%.1f off=%.1f", p.RenderScale, p.Rotation, p.OffsetY),
		fmt.Sprintf("phase=%s charge=%.0f", p.Jump.Phase, p.Jump.ChargeMs),
	}
	if air := p.Jump.Air; air != nil {
		out = append(out,
			fmt.Sprintf("air t=%.0f/%.0f h=%.2f", air.Timer, air.Duration, air.HeightFactor),
			fmt.Sprintf("peak=%v rehit=%v", air.ReachedPeak, air.ReHitUsed))
		if t := air.Trick; t != nil {
			out = append(out, fmt.Sprintf("trick=%s t=%.0f", t.Kind, t.Timer))
		}
	}
	out = append(out,
		"-- camera --",
		fmt.Sprintf("cx=%.1f tx=%.1f", sc.Camera.X, sc.Camera.TargetX),
		fmt.Sprintf("cy=%.1f per=%.0f", sc.Camera.Y, sc.Camera.Period()),
		"-- ledger --",
		fmt.Sprintf("chain=%d last=%s", p.Tricks.Chain, p.Tricks.Last),
		fmt.Sprintf("earned=%.2f n=%d", p.Tricks.Earned, p.Tricks.Completed),
		"-- upgrades --",
		fmt.Sprintf("rs=%d oo=%d sd=%d", sc.Upgrades.RocketSurgery, sc.Upgrades.OptimalOptics, sc.Upgrades.SledDurability),
		fmt.Sprintf("ff=%d ag=%d", sc.Upgrades.FancierFootwear, sc.Upgrades.AntiGravGenerator),
	)
	return out
}

func absRatio(v, limit float64) float64 {
	if limit <= 0 {
		return 0
	}
	if v < 0 {
		v = -v
	}
	return v / limit
}
