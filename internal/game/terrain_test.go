package game

import (
	"math/rand"
	"testing"
)

func TestCourseTerrain_BroadphaseFindsAndForgets(t *testing.T) {
	course := NewCourseTerrain(800, 20000, 1)
	rock := NewSimpleObstacle(0, ObstacleRock, 400, 5000, 30, 20)
	far := NewSimpleObstacle(0, ObstacleRock, 100, 9000, 30, 20)
	course.Add(rock)
	course.Add(far)
	if rock.ID == 0 || far.ID == rock.ID {
		t.Fatalf("expected distinct assigned IDs, got %d and %d", rock.ID, far.ID)
	}

	b := &Body{X: 410, Y: 5005, W: playerWidth, H: playerHeight}
	if got := course.FirstHit(b); got != rock {
		t.Fatalf("expected to hit rock #%d, got %v", rock.ID, got)
	}
	if !course.Remove(rock) {
		t.Fatal("expected Remove to report success")
	}
	if got := course.FirstHit(b); got != nil {
		t.Fatalf("expected no hit after removal, got #%d", got.ID)
	}
	if course.Remove(rock) {
		t.Fatal("expected second Remove to be a no-op")
	}
	if course.Len() != 1 {
		t.Fatalf("expected 1 obstacle left, got %d", course.Len())
	}
}

func TestCourseTerrain_DoesNotWrap(t *testing.T) {
	course := NewCourseTerrain(800, 20000, 1)
	course.Add(NewSimpleObstacle(0, ObstacleRock, 795, 500, 20, 20))
	if course.Wrapped() {
		t.Fatal("course must not wrap")
	}
	if hit := course.FirstHit(&Body{X: 5, Y: 500, W: 20, H: 20}); hit != nil {
		t.Fatal("expected no hit across the screen edges downhill")
	}
}

func TestTrailTerrain_HitsAcrossSeam(t *testing.T) {
	m := mustMountain(t)
	trail := NewTrailTerrain(m, 1)
	trail.Add(NewSimpleObstacle(0, ObstacleRock, 995, 1000, 20, 20))
	if !trail.Wrapped() {
		t.Fatal("trail must wrap")
	}
	if trail.FirstHit(&Body{X: 3, Y: 1000, W: 10, H: 10}) == nil {
		t.Fatal("expected a hit through the seam on layer 0")
	}
	if trail.FirstHit(&Body{X: 500, Y: 1000, W: 10, H: 10}) != nil {
		t.Fatal("expected no hit mid-layer")
	}
}

func TestTrailTerrain_RescalesNeighbourBand(t *testing.T) {
	m := mustMountain(t)
	trail := NewTrailTerrain(m, 1)
	// Half way round layer 1 (1300 wide), just below the boundary.
	trail.Add(NewSimpleObstacle(0, ObstacleRock, 650, 4010, 20, 20))
	// Half way round layer 0 (1000 wide), just above it.
	if trail.FirstHit(&Body{X: 500, Y: 3995, W: playerWidth, H: playerHeight}) == nil {
		t.Fatal("expected the layer-1 obstacle to be compared in layer-0 proportions")
	}
	if trail.FirstHit(&Body{X: 650, Y: 3995, W: playerWidth, H: playerHeight}) != nil {
		t.Fatal("expected raw X from another band not to be used")
	}
}

func TestTrailTerrain_PushOut(t *testing.T) {
	m := mustMountain(t)
	trail := NewTrailTerrain(m, 1)
	trail.Add(NewSimpleObstacle(0, ObstacleRock, 2, 600, 20, 40))
	b := &Body{X: 990, Y: 600, W: 10, H: 10}
	if n := trail.PushOut(b); n != 1 {
		t.Fatalf("expected 1 obstacle touched, got %d", n)
	}
	if b.X >= 990 || b.X < 0 {
		t.Fatalf("expected push left and still wrapped, got %v", b.X)
	}
}

func TestGenerateCourse_DeterministicAndInBounds(t *testing.T) {
	cfg := DefaultConfig()
	a := generateCourse(rand.New(rand.NewSource(5)), cfg, 800, 20000, 2000)
	b := generateCourse(rand.New(rand.NewSource(5)), cfg, 800, 20000, 2000)
	if a.Len() == 0 || a.Len() != b.Len() {
		t.Fatalf("expected equal non-empty courses, got %d and %d", a.Len(), b.Len())
	}
	top := 2000 + cfg.CourseSafeSpan
	bottom := 20000 - cfg.BottomMargin
	for i, o := range a.Obstacles() {
		p := b.Obstacles()[i]
		if o.X != p.X || o.Y != p.Y || o.Kind != p.Kind {
			t.Fatalf("obstacle %d differs between identical seeds", i)
		}
		if o.Y < top || o.Y > bottom || o.X < 0 || o.X > 800 {
			t.Fatalf("obstacle %d at (%v,%v) outside the course", i, o.X, o.Y)
		}
	}
}

func TestGenerateCourse_EmptyWhenStartingAtBottom(t *testing.T) {
	c := generateCourse(rand.New(rand.NewSource(1)), DefaultConfig(), 800, 20000, 19900)
	if c.Len() != 0 {
		t.Fatalf("expected no obstacles below the finish, got %d", c.Len())
	}
}

func TestGenerateTrail_WrappedPerLayer(t *testing.T) {
	m := mustMountain(t)
	trail := generateTrail(rand.New(rand.NewSource(9)), DefaultConfig(), m)
	perLayer := map[int]int{}
	for _, o := range trail.Obstacles() {
		l := m.LayerForY(o.Y)
		if o.X < 0 || o.X >= l.Width {
			t.Fatalf("obstacle at x=%v outside layer %d width %v", o.X, l.ID, l.Width)
		}
		perLayer[l.ID]++
	}
	if perLayer[4] <= perLayer[0] {
		t.Fatalf("expected the wider base band to hold more obstacles, got %v", perLayer)
	}
}

func TestCourseTerrain_BroadphaseAgreesAtCellEdges(t *testing.T) {
	// Canopy right edge sits on the 448 cell boundary; the side zone pokes
	// past the obstacle's own W x H box.
	tree := NewZonedObstacle(0, ObstacleTree, 428, 1000, 40, 60,
		Zone{Kind: ZoneCircle, OffsetY: -10, W: 40},
		Zone{Kind: ZoneRect, OffsetX: 28, OffsetY: 0, W: 10, H: 10},
	)
	course := NewCourseTerrain(800, 2000, 1)
	course.Add(tree)

	outside := 0
	for y := 950.0; y <= 1050; y++ {
		for x := 380.0; x <= 500; x += 0.25 {
			b := &Body{X: x, Y: y, W: playerWidth, H: playerHeight}
			want := Overlaps(b, tree, 1, 0)
			if got := course.FirstHit(b) != nil; got != want {
				t.Fatalf("at (%v,%v) expected broadphase hit=%v, got %v", x, y, want, got)
			}
			if want && b.X-b.W/2 >= 448 {
				outside++
			}
		}
	}
	if outside == 0 {
		t.Fatal("expected hits on the zone beyond the obstacle bounds")
	}
}
