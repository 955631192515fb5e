package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	colSnow      = color.RGBA{R: 236, G: 242, B: 250, A: 255}
	colSnowDark  = color.RGBA{R: 214, G: 224, B: 238, A: 255}
	colBand      = color.RGBA{R: 160, G: 180, B: 210, A: 255}
	colSeam      = color.RGBA{R: 240, G: 120, B: 120, A: 140}
	colRock      = color.RGBA{R: 110, G: 112, B: 120, A: 255}
	colTrunk     = color.RGBA{R: 110, G: 76, B: 44, A: 255}
	colCanopy    = color.RGBA{R: 40, G: 110, B: 64, A: 255}
	colPlayer    = color.RGBA{R: 210, G: 50, B: 50, A: 255}
	colDamaged   = color.RGBA{R: 120, G: 60, B: 60, A: 255}
	colSled      = color.RGBA{R: 150, G: 90, B: 40, A: 255}
	colShadow    = color.RGBA{R: 0, G: 0, B: 0, A: 50}
	colHUDPanel  = color.RGBA{R: 14, G: 18, B: 26, A: 210}
	colHUDBorder = color.RGBA{R: 70, G: 90, B: 120, A: 200}
	colHUDText   = color.RGBA{R: 230, G: 236, B: 245, A: 255}
)

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colSnow)
	sc := g.sim
	switch sc.Mode {
	case ModeHouse:
		g.drawHouse(screen)
	default:
		g.drawBands(screen)
		for _, s := range sc.VisibleObstacles() {
			drawObstacle(screen, s)
		}
		g.drawPlayer(screen)
		if g.showOverlay {
			g.drawHitboxOverlay(screen)
		}
	}
	g.drawInspector(screen)

	g.feed.Draw(screen, playW, g.height)
	if g.showHUD {
		g.drawHUD(screen)
	}
}

// drawBands shades alternate layers and marks their boundaries and, while
// hiking, the wrap seam at x=0.
func (g *Game) drawBands(screen *ebiten.Image) {
	sc := g.sim
	_, ay := sc.anchor()
	for _, l := range sc.Mountain.Layers() {
		top := ay + (l.StartY - sc.Camera.Y)
		bottom := ay + (l.EndY - sc.Camera.Y)
		if bottom < 0 || top > playH {
			continue
		}
		if l.ID%2 == 1 {
			vector.FillRect(screen, 0, float32(math.Max(0, top)), playW, float32(math.Min(playH, bottom)-math.Max(0, top)), colSnowDark, false)
		}
		if top >= 0 && top <= playH {
			vector.StrokeLine(screen, 0, float32(top), playW, float32(top), 2, colBand, false)
			g.drawText(screen, fmt.Sprintf("layer %d  %.0fpx", l.ID, l.Width), 6, top+4, colBand)
		}
	}
	if sc.Mode != ModeUphill {
		return
	}
	ax, _ := sc.anchor()
	dx := sc.Camera.ScreenX(0)
	xs := append([]float64{dx}, WrapDuplicates(dx, sc.Camera.Period(), playW/2)...)
	for _, x := range xs {
		sx := float32(ax + x)
		vector.StrokeLine(screen, sx, 0, sx, playH, 1, colSeam, false)
	}
}

func drawObstacle(screen *ebiten.Image, s Sprite) {
	alpha := uint8(255)
	if s.Ghost {
		alpha = 200
	}
	tint := func(c color.RGBA) color.RGBA {
		c.A = alpha
		return c
	}
	o := s.Obstacle
	scale := 1.0
	if o.W > 0 {
		scale = s.W / o.W
	}
	vector.FillRect(screen, float32(s.X-s.W/2+4), float32(s.Y+s.H/2-4), float32(s.W), 6, colShadow, false)
	switch o.Shape {
	case ShapeZoned:
		for _, z := range o.Zones {
			cx := s.X + z.OffsetX*scale
			cy := s.Y + z.OffsetY*scale
			switch z.Kind {
			case ZoneCircle:
				vector.FillCircle(screen, float32(cx), float32(cy), float32(z.W*scale/2), tint(colCanopy), true)
			case ZoneRect:
				vector.FillRect(screen, float32(cx-z.W*scale/2), float32(cy-z.H*scale/2), float32(z.W*scale), float32(z.H*scale), tint(colTrunk), false)
			}
		}
	default:
		vector.FillRect(screen, float32(s.X-s.W/2), float32(s.Y-s.H/2), float32(s.W), float32(s.H), tint(colRock), false)
		vector.StrokeRect(screen, float32(s.X-s.W/2), float32(s.Y-s.H/2), float32(s.W), float32(s.H), 1, tint(colShadow), false)
	}
}

// drawPlayer draws the rider scaled by the jump and the sled rotated by the
// current trick.
func (g *Game) drawPlayer(screen *ebiten.Image) {
	rs := g.sim.RenderState()
	p := g.sim.Player
	w := p.W * rs.Scale
	h := p.H * rs.Scale

	// Ground shadow stays at the unscaled footprint.
	if rs.Jump == JumpAirborne {
		vector.FillCircle(screen, float32(rs.X), float32(rs.Y-p.OffsetY+p.H/2), float32(p.W/2), colShadow, true)
	}
	body := colPlayer
	if rs.SledDamaged {
		body = colDamaged
	}
	if rs.Mode == ModeDownhill {
		rad := rs.Rotation * math.Pi / 180
		half := w * 0.8
		c, s := math.Cos(rad), math.Sin(rad)
		sy := rs.Y + h/2
		vector.StrokeLine(screen,
			float32(rs.X-c*half), float32(sy-s*half),
			float32(rs.X+c*half), float32(sy+s*half),
			float32(4*rs.Scale), colSled, true)
	}
	vector.FillRect(screen, float32(rs.X-w/2), float32(rs.Y-h/2), float32(w), float32(h), body, false)
}

func (g *Game) drawHouse(screen *ebiten.Image) {
	cx, cy := float32(playW/2), float32(playH/2)
	vector.FillRect(screen, cx-90, cy-40, 180, 120, colTrunk, false)
	var roof vector.Path
	roof.MoveTo(cx-110, cy-40)
	roof.LineTo(cx, cy-120)
	roof.LineTo(cx+110, cy-40)
	roof.Close()
	vector.FillPath(screen, &roof, &vector.FillOptions{}, &vector.DrawPathOptions{AntiAlias: true, ColorScale: colorScale(colRock)})
	vector.FillRect(screen, cx-20, cy+20, 40, 60, colSled, false)
	msg := "SPACE: head up the mountain"
	if g.stats.Latest() != nil {
		last := g.stats.Latest()
		msg = fmt.Sprintf("last run %.0fpx  score %.1f  tricks $%.1f   SPACE: go again", last.Distance, last.Score, last.TrickPayout)
	}
	adv := text.Advance(msg, g.face)
	g.drawText(screen, msg, float64(cx)-adv/2, float64(cy)+110, colHUDPanel)
}

func colorScale(c color.RGBA) ebiten.ColorScale {
	var cs ebiten.ColorScale
	cs.ScaleWithColor(c)
	return cs
}

func (g *Game) drawText(screen *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, g.face, op)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	sc := g.sim
	rs := sc.RenderState()
	p := sc.Player

	speedStr := "1x"
	switch {
	case g.simSpeed == 0:
		speedStr = "PAUSED"
	case g.simSpeed != 1:
		speedStr = fmt.Sprintf("%.1fx", g.simSpeed)
	}
	lines := []string{
		fmt.Sprintf("%s  layer %d  (%.0f, %.0f)", rs.Mode, rs.Layer.ID, p.X, p.Y),
		fmt.Sprintf("hits %d/%d  sled %s", rs.Collisions, rs.MaxHits, map[bool]string{false: "ok", true: "DAMAGED"}[rs.SledDamaged]),
		fmt.Sprintf("jump %s  trick %s", rs.Jump, rs.Trick),
		fmt.Sprintf("tricks $%.1f  chain x%d", p.Tricks.Earned, p.Tricks.Chain+1),
		fmt.Sprintf("sim %s  autopilot %v", speedStr, g.autopilot),
		"arrows/WASD move  SPACE jump  TAB auto",
		"P pause  ,/. speed  C copy  R reseed  1-5 upg",
		"H hud  I inspector  O hitboxes",
	}
	if g.statusLeft > 0 {
		lines = append(lines, g.status)
	}

	const lineH = 14
	const pad = 6
	maxW := 0.0
	for _, l := range lines {
		maxW = math.Max(maxW, text.Advance(l, g.face))
	}
	boxW := float32(maxW + pad*2)
	boxH := float32(len(lines)*lineH + pad*2)
	vector.FillRect(screen, 4, 4, boxW, boxH, colHUDPanel, false)
	vector.StrokeRect(screen, 4, 4, boxW, boxH, 1, colHUDBorder, false)
	for i, l := range lines {
		g.drawText(screen, l, 4+pad, float64(4+pad+i*lineH), colHUDText)
	}
}
