package game

// playerAnchorY is the fraction of screen height the player is drawn at.
const playerAnchorY = 0.35

// Sprite is one obstacle placement in screen space. Ghost marks the extra
// copy drawn across the wrap seam.
type Sprite struct {
	Obstacle *Obstacle
	X, Y     float64 // screen center
	W, H     float64 // scaled size
	Ghost    bool
}

// RenderState is what the renderer needs about the player and camera.
type RenderState struct {
	Mode        Mode
	X, Y        float64 // player screen center
	Scale       float64
	Rotation    float64
	CameraX     float64
	CameraY     float64
	Layer       Layer
	Collisions  int
	MaxHits     int
	SledDamaged bool
	Jump        JumpPhase
	Trick       TrickKind
}

func (sc *SimContext) anchor() (float64, float64) {
	return sc.View.W / 2, sc.View.H * playerAnchorY
}

// RenderState reports the player and camera in screen space.
func (sc *SimContext) RenderState() RenderState {
	p := sc.Player
	ax, ay := sc.anchor()
	rs := RenderState{
		Mode:        sc.Mode,
		X:           ax + sc.Camera.ScreenX(p.X),
		Y:           ay + (p.Y - sc.Camera.Y) + p.OffsetY,
		Scale:       p.RenderScale,
		Rotation:    p.Rotation,
		CameraX:     sc.Camera.X,
		CameraY:     sc.Camera.Y,
		Layer:       sc.Mountain.LayerForY(p.Y),
		Collisions:  p.Collisions,
		MaxHits:     sc.Config.MaxCollisions(sc.Upgrades),
		SledDamaged: p.SledDamaged,
		Jump:        p.Jump.Phase,
	}
	if p.Jump.Air != nil && p.Jump.Air.Trick != nil {
		rs.Trick = p.Jump.Air.Trick.Kind
	}
	return rs
}

// VisibleObstacles lists the obstacles of the active terrain that fall on
// screen, with seam duplicates while hiking.
func (sc *SimContext) VisibleObstacles() []Sprite {
	t := sc.activeTerrain()
	if t == nil {
		return nil
	}
	ax, ay := sc.anchor()
	layer := sc.Mountain.LayerForY(sc.Player.Y)
	period := sc.Camera.Period()
	var out []Sprite
	for _, o := range t.Obstacles() {
		w, h := o.W*t.Scale(), o.H*t.Scale()
		sy := ay + (o.Y - sc.Camera.Y)
		if sy+h/2 < 0 || sy-h/2 > sc.View.H {
			continue
		}
		view := t.inFrame(o, layer)
		dx := sc.Camera.ScreenX(view.X)
		if sc.onScreen(ax+dx, w) {
			out = append(out, Sprite{Obstacle: o, X: ax + dx, Y: sy, W: w, H: h})
		}
		for _, gx := range WrapDuplicates(dx, period, sc.View.W/2) {
			if sc.onScreen(ax+gx, w) {
				out = append(out, Sprite{Obstacle: o, X: ax + gx, Y: sy, W: w, H: h, Ghost: true})
			}
		}
	}
	return out
}

func (sc *SimContext) onScreen(x, w float64) bool {
	return x+w/2 >= 0 && x-w/2 <= sc.View.W
}

// activeTerrain is the obstacle set the current mode collides against.
func (sc *SimContext) activeTerrain() *Terrain {
	switch sc.Mode {
	case ModeDownhill:
		return sc.Course
	case ModeUphill:
		return sc.Trail
	}
	return nil
}
