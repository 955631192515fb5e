package game

import (
	"math"
	"math/rand"

	"github.com/solarlune/resolv"
)

const (
	tagObstacle  = "obstacle"
	tagProbe     = "probe"
	courseCellPx = 64
	// broadphasePad offsets resolv trimming a pixel off an object's far edge.
	broadphasePad = 1.0
	// nearSpan bounds the vertical search around a body on the trail.
	nearSpan = 160.0
)

// Terrain owns a set of obstacles. A course (downhill) lives in screen space
// and is indexed by a resolv space; a trail (uphill) lives in layer space and
// wraps with each layer's width.
type Terrain struct {
	obstacles []*Obstacle
	scale     float64
	nextID    int

	// course only
	space   *resolv.Space
	objects map[int]*resolv.Object
	probe   *resolv.Object

	// trail only
	mountain *Mountain
}

// NewCourseTerrain creates an empty, non-wrapping course width x height px.
func NewCourseTerrain(width, height, scale float64) *Terrain {
	cols := int(math.Ceil(width/courseCellPx)) + 1
	rows := int(math.Ceil(height/courseCellPx)) + 1
	t := &Terrain{
		scale:   scale,
		space:   resolv.NewSpace(cols*courseCellPx, rows*courseCellPx, courseCellPx, courseCellPx),
		objects: make(map[int]*resolv.Object),
	}
	t.probe = resolv.NewObject(0, 0, 1, 1, tagProbe)
	t.space.Add(t.probe)
	return t
}

// NewTrailTerrain creates an empty wrapped terrain over m.
func NewTrailTerrain(m *Mountain, scale float64) *Terrain {
	return &Terrain{scale: scale, mountain: m}
}

// Wrapped reports whether X wraps per layer.
func (t *Terrain) Wrapped() bool { return t.mountain != nil }

// Scale is the size multiplier applied to every obstacle.
func (t *Terrain) Scale() float64 { return t.scale }

// Len is the number of live obstacles.
func (t *Terrain) Len() int { return len(t.obstacles) }

// Obstacles returns the live obstacles. Callers must not modify the slice.
func (t *Terrain) Obstacles() []*Obstacle { return t.obstacles }

// Add inserts o, assigning an ID if it has none.
func (t *Terrain) Add(o *Obstacle) {
	if o.ID == 0 {
		t.nextID++
		o.ID = t.nextID
	} else if o.ID > t.nextID {
		t.nextID = o.ID
	}
	t.obstacles = append(t.obstacles, o)
	if t.space == nil {
		return
	}
	// The broadphase box covers the hit areas, which may reach past W x H.
	w, h := o.W*t.scale, o.H*t.scale
	minX, minY := o.X-w/2, o.Y-h/2
	maxX, maxY := o.X+w/2, o.Y+h/2
	if zx0, zy0, zx1, zy1 := o.bounds(t.scale); zx0 <= zx1 {
		minX, minY = math.Min(minX, zx0), math.Min(minY, zy0)
		maxX, maxY = math.Max(maxX, zx1), math.Max(maxY, zy1)
	}
	obj := resolv.NewObject(minX-broadphasePad, minY-broadphasePad,
		maxX-minX+2*broadphasePad, maxY-minY+2*broadphasePad, tagObstacle)
	obj.Data = o
	t.space.Add(obj)
	t.objects[o.ID] = obj
}

// Remove deletes o. Removing an unknown obstacle is a no-op.
func (t *Terrain) Remove(o *Obstacle) bool {
	for i, cur := range t.obstacles {
		if cur != o {
			continue
		}
		t.obstacles = append(t.obstacles[:i], t.obstacles[i+1:]...)
		if obj, ok := t.objects[o.ID]; ok {
			t.space.Remove(obj)
			delete(t.objects, o.ID)
		}
		return true
	}
	return false
}

// candidates returns the obstacles worth a narrowphase test against b.
func (t *Terrain) candidates(b *Body) []*Obstacle {
	if t.space != nil {
		t.probe.X = b.X - b.W/2
		t.probe.Y = b.Y - b.H/2
		t.probe.W = b.W
		t.probe.H = b.H
		t.probe.Update()
		check := t.probe.Check(0, 0, tagObstacle)
		if check == nil {
			return nil
		}
		out := make([]*Obstacle, 0, len(check.Objects))
		for _, obj := range check.Objects {
			if o, ok := obj.Data.(*Obstacle); ok {
				out = append(out, o)
			}
		}
		return out
	}
	var out []*Obstacle
	for _, o := range t.obstacles {
		if math.Abs(o.Y-b.Y) <= nearSpan+o.H*t.scale {
			out = append(out, o)
		}
	}
	return out
}

// inFrame returns o expressed in layer's horizontal frame. Trail obstacles
// from a neighbouring band are rescaled so wrapped distances compare.
func (t *Terrain) inFrame(o *Obstacle, layer Layer) *Obstacle {
	if t.mountain == nil {
		return o
	}
	own := t.mountain.LayerForY(o.Y)
	if own.ID == layer.ID {
		return o
	}
	cp := *o
	cp.X = WrapX(ScaleXAcrossLayers(o.X, own, layer), layer.Width)
	return &cp
}

// periodFor is the wrap period at b's height, or 0 for a course.
func (t *Terrain) periodFor(b *Body) (Layer, float64) {
	if t.mountain == nil {
		return Layer{}, 0
	}
	l := t.mountain.LayerForY(b.Y)
	return l, l.Width
}

// FirstHit returns the first obstacle b overlaps, or nil.
func (t *Terrain) FirstHit(b *Body) *Obstacle {
	layer, period := t.periodFor(b)
	for _, o := range t.candidates(b) {
		if Overlaps(b, t.inFrame(o, layer), t.scale, period) {
			return o
		}
	}
	return nil
}

// PushOut runs soft resolution against every nearby obstacle and returns how
// many were touching.
func (t *Terrain) PushOut(b *Body) int {
	layer, period := t.periodFor(b)
	n := 0
	for _, o := range t.candidates(b) {
		if ResolveCollision(b, t.inFrame(o, layer), t.scale, period) {
			n++
		}
	}
	return n
}

// --- Generation ---

// generateCourse scatters rocks and trees between startY+safe and the
// bottom margin, across width px of screen space.
func generateCourse(rng *rand.Rand, cfg Config, width, height, startY float64) *Terrain {
	t := NewCourseTerrain(width, height, cfg.ObstacleScale)
	top := startY + cfg.CourseSafeSpan
	bottom := height - cfg.BottomMargin
	if bottom <= top {
		return t
	}
	count := int((bottom - top) / 1000 * cfg.CourseDensity)
	for i := 0; i < count; i++ {
		x := 20 + rng.Float64()*math.Max(1, width-40)
		y := top + rng.Float64()*(bottom-top)
		t.Add(randomObstacle(rng, x, y))
	}
	return t
}

// generateTrail scatters obstacles on every layer, proportional to its area.
func generateTrail(rng *rand.Rand, cfg Config, m *Mountain) *Terrain {
	t := NewTrailTerrain(m, cfg.ObstacleScale)
	for _, l := range m.Layers() {
		count := int(l.Width / 1000 * (l.EndY - l.StartY) / 1000 * cfg.TrailDensity)
		for i := 0; i < count; i++ {
			x := rng.Float64() * l.Width
			y := l.StartY + rng.Float64()*(l.EndY-l.StartY)
			t.Add(randomObstacle(rng, x, y))
		}
	}
	return t
}

// randomObstacle picks a rock (plain box) or a tree (trunk box plus canopy
// circle) at (x, y).
func randomObstacle(rng *rand.Rand, x, y float64) *Obstacle {
	if rng.Intn(3) == 0 {
		w := 24 + rng.Float64()*24
		h := 16 + rng.Float64()*12
		return NewSimpleObstacle(0, ObstacleRock, x, y, w, h)
	}
	size := 32 + rng.Float64()*24
	return NewZonedObstacle(0, ObstacleTree, x, y, size, size*1.5,
		Zone{Kind: ZoneCircle, OffsetX: 0, OffsetY: -size * 0.25, W: size},
		Zone{Kind: ZoneRect, OffsetX: 0, OffsetY: size * 0.55, W: size * 0.25, H: size * 0.4},
	)
}
