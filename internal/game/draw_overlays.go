package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	colOverlayBody  = color.RGBA{R: 40, G: 200, B: 80, A: 200}
	colOverlayHit   = color.RGBA{R: 230, G: 60, B: 60, A: 180}
	colOverlayGhost = color.RGBA{R: 230, G: 60, B: 200, A: 120}
	colOverlayVel   = color.RGBA{R: 40, G: 120, B: 240, A: 200}
)

// drawHitboxOverlay outlines the collision body, every obstacle hit area on
// screen and the velocity vector. Ghost copies across the seam get their own
// colour so wrap bugs stand out.
func (g *Game) drawHitboxOverlay(screen *ebiten.Image) {
	sc := g.sim
	if sc.Mode == ModeHouse {
		return
	}
	rs := sc.RenderState()
	p := sc.Player

	// Collision uses the unscaled body at the ground position.
	bx := rs.X
	by := rs.Y - p.OffsetY
	vector.StrokeRect(screen, float32(bx-p.W/2), float32(by-p.H/2), float32(p.W), float32(p.H), 1, colOverlayBody, false)

	if sc.Mode == ModeDownhill {
		const velScale = 8
		vector.StrokeLine(screen, float32(bx), float32(by),
			float32(bx+p.XVel*velScale), float32(by+p.VelocityY*velScale), 2, colOverlayVel, true)
	}

	scale := 1.0
	if t := sc.activeTerrain(); t != nil {
		scale = t.Scale()
	}
	for _, s := range sc.VisibleObstacles() {
		col := colOverlayHit
		if s.Ghost {
			col = colOverlayGhost
		}
		o := s.Obstacle
		for _, a := range o.hitAreas(scale) {
			cx := s.X + (a.cx - o.X)
			cy := s.Y + (a.cy - o.Y)
			switch a.kind {
			case ZoneCircle:
				vector.StrokeCircle(screen, float32(cx), float32(cy), float32(a.w/2), 1, col, true)
			default:
				vector.StrokeRect(screen, float32(cx-a.w/2), float32(cy-a.h/2), float32(a.w), float32(a.h), 1, col, false)
			}
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("#%d", o.ID), int(s.X-s.W/2), int(s.Y+s.H/2))
	}
}
