package game

import "math"

// pushFraction is the share of the overlap removed per resolution pass.
const pushFraction = 0.3

// CheckCollision tests two center-anchored rectangles for overlap. Vertical
// overlap is plain AABB. When layerWidth > 0 the horizontal test uses the
// wrapped center distance; otherwise it is plain AABB too.
func CheckCollision(ax, ay, aw, ah, bx, by, bw, bh, layerWidth float64) bool {
	if math.Abs(ay-by) >= (ah+bh)/2 {
		return false
	}
	dx := ax - bx
	if layerWidth > 0 {
		dx = WrappedDelta(ax, bx, layerWidth)
	}
	return math.Abs(dx) < (aw+bw)/2
}

// Body is a moving axis-aligned box, center anchored.
type Body struct {
	X, Y float64
	W, H float64
}

// ObstacleShape tags which collision representation an Obstacle carries.
type ObstacleShape int

const (
	ShapeSimple ObstacleShape = iota // whole obstacle is one rectangle
	ShapeZoned                       // collide against Zones only
)

// ZoneKind is the geometry of a single collision zone.
type ZoneKind int

const (
	ZoneRect ZoneKind = iota
	ZoneCircle
)

// Zone is a hit area positioned relative to its obstacle's center. For
// circles the radius is W/2 and H is ignored. A circle touches a mover when
// the closest point of the mover's box lies inside it; the push-out depth is
// taken from the circle's bounding square.
type Zone struct {
	Kind             ZoneKind
	OffsetX, OffsetY float64
	W, H             float64
}

// ObstacleKind is the cosmetic/gameplay type of a terrain obstacle.
type ObstacleKind int

const (
	ObstacleRock ObstacleKind = iota
	ObstacleTree
)

func (k ObstacleKind) String() string {
	switch k {
	case ObstacleRock:
		return "rock"
	case ObstacleTree:
		return "tree"
	default:
		return "unknown"
	}
}

// Obstacle is a static terrain object. X is in the owning terrain's
// horizontal frame, Y is absolute.
type Obstacle struct {
	ID    int
	Kind  ObstacleKind
	X, Y  float64
	W, H  float64
	Shape ObstacleShape
	Zones []Zone
}

// NewSimpleObstacle builds a rectangle-only obstacle.
func NewSimpleObstacle(id int, kind ObstacleKind, x, y, w, h float64) *Obstacle {
	return &Obstacle{ID: id, Kind: kind, X: x, Y: y, W: w, H: h, Shape: ShapeSimple}
}

// NewZonedObstacle builds an obstacle that collides only through zones.
func NewZonedObstacle(id int, kind ObstacleKind, x, y, w, h float64, zones ...Zone) *Obstacle {
	return &Obstacle{ID: id, Kind: kind, X: x, Y: y, W: w, H: h, Shape: ShapeZoned, Zones: zones}
}

// hitArea is one resolved collision primitive in world space.
type hitArea struct {
	kind   ZoneKind
	cx, cy float64
	w, h   float64
}

// hitAreas expands the obstacle into world-space primitives at the given
// scale.
func (o *Obstacle) hitAreas(scale float64) []hitArea {
	switch o.Shape {
	case ShapeZoned:
		out := make([]hitArea, 0, len(o.Zones))
		for _, z := range o.Zones {
			out = append(out, hitArea{
				kind: z.Kind,
				cx:   o.X + z.OffsetX*scale,
				cy:   o.Y + z.OffsetY*scale,
				w:    z.W * scale,
				h:    z.H * scale,
			})
		}
		return out
	default:
		return []hitArea{{kind: ZoneRect, cx: o.X, cy: o.Y, w: o.W * scale, h: o.H * scale}}
	}
}

// bounds is the world-space box covering every hit area of o. It is
// inverted (min > max) when o has no areas.
func (o *Obstacle) bounds(scale float64) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, a := range o.hitAreas(scale) {
		h := a.h
		if a.kind == ZoneCircle {
			h = a.w
		}
		minX = math.Min(minX, a.cx-a.w/2)
		maxX = math.Max(maxX, a.cx+a.w/2)
		minY = math.Min(minY, a.cy-h/2)
		maxY = math.Max(maxY, a.cy+h/2)
	}
	return minX, minY, maxX, maxY
}

// overlap returns the per-axis penetration of b into the area along with
// the signed separation (mover minus area). ok is false when they do not
// touch or the area is degenerate.
func (a hitArea) overlap(b *Body, layerWidth float64) (ox, oy, dx, dy float64, ok bool) {
	if a.w <= 0 || (a.kind == ZoneRect && a.h <= 0) {
		return 0, 0, 0, 0, false
	}
	dx = b.X - a.cx
	if layerWidth > 0 {
		dx = WrappedDelta(b.X, a.cx, layerWidth)
	}
	dy = b.Y - a.cy
	switch a.kind {
	case ZoneCircle:
		// Distance from the circle center to the closest point of b.
		r := a.w / 2
		ex := math.Max(0, math.Abs(dx)-b.W/2)
		ey := math.Max(0, math.Abs(dy)-b.H/2)
		if math.Hypot(ex, ey) >= r {
			return 0, 0, 0, 0, false
		}
		ox = r + b.W/2 - math.Abs(dx)
		oy = r + b.H/2 - math.Abs(dy)
	default:
		ox = (b.W+a.w)/2 - math.Abs(dx)
		oy = (b.H+a.h)/2 - math.Abs(dy)
	}
	if ox <= 0 || oy <= 0 {
		return 0, 0, 0, 0, false
	}
	return ox, oy, dx, dy, true
}

// Overlaps reports whether body touches any hit area of o.
func Overlaps(b *Body, o *Obstacle, scale, layerWidth float64) bool {
	for _, a := range o.hitAreas(scale) {
		if _, _, _, _, ok := a.overlap(b, layerWidth); ok {
			return true
		}
	}
	return false
}

// ResolveCollision nudges mover out of o by a fraction of the overlap along
// the shallower axis. X is chosen only when its overlap is strictly smaller.
// With layerWidth > 0 the resulting X is re-wrapped. Returns true if any
// area was resolved.
func ResolveCollision(mover *Body, o *Obstacle, scale, layerWidth float64) bool {
	resolved := false
	for _, a := range o.hitAreas(scale) {
		ox, oy, dx, dy, ok := a.overlap(mover, layerWidth)
		if !ok {
			continue
		}
		if ox < oy {
			mover.X += pushSign(dx) * ox * pushFraction
			if layerWidth > 0 {
				mover.X = WrapX(mover.X, layerWidth)
			}
		} else {
			mover.Y += pushSign(dy) * oy * pushFraction
		}
		resolved = true
	}
	return resolved
}

// pushSign points away from the obstacle; dead-center pushes go positive.
func pushSign(d float64) float64 {
	if d < 0 {
		return -1
	}
	return 1
}
