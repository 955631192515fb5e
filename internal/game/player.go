package game

// Mode is the locomotion mode the simulation is in.
type Mode int

const (
	ModeHouse    Mode = iota // hub at the base; no movement
	ModeUphill               // hiking, cylindrical, inertialess
	ModeDownhill             // sledding, gravity driven
)

func (m Mode) String() string {
	switch m {
	case ModeHouse:
		return "house"
	case ModeUphill:
		return "uphill"
	case ModeDownhill:
		return "downhill"
	default:
		return "unknown"
	}
}

// Input is the held state of the controls for one tick.
type Input struct {
	Left  bool `msgpack:"l"`
	Right bool `msgpack:"r"`
	Up    bool `msgpack:"u"`
	Down  bool `msgpack:"d"`
	Jump  bool `msgpack:"j"`
}

// inputEdges holds the just-pressed transitions between two ticks.
type inputEdges struct {
	Left, Right, Up, Down bool
	Jump                  bool
	JumpReleased          bool
}

func (in Input) edges(prev Input) inputEdges {
	return inputEdges{
		Left:         in.Left && !prev.Left,
		Right:        in.Right && !prev.Right,
		Up:           in.Up && !prev.Up,
		Down:         in.Down && !prev.Down,
		Jump:         in.Jump && !prev.Jump,
		JumpReleased: !in.Jump && prev.Jump,
	}
}

// axis folds a negative/positive pair into -1, 0 or 1.
func axis(neg, pos bool) float64 {
	switch {
	case neg && !pos:
		return -1
	case pos && !neg:
		return 1
	default:
		return 0
	}
}

const (
	playerWidth  = 20
	playerHeight = 28
)

// Player is the singleton mover. Body.X is layer-relative while uphill and
// screen-relative while downhill; Body.Y is always absolute.
type Player struct {
	Body

	XVel      float64
	VelocityY float64

	Collisions  int
	SledDamaged bool

	Jump   Jump
	Tricks TrickLedger

	// Render-only outputs of the jump/trick machine.
	RenderScale float64
	Rotation    float64 // degrees
	OffsetY     float64
}

// NewPlayer places a player at (x, absY) with neutral render state.
func NewPlayer(x, absY float64) *Player {
	return &Player{
		Body:        Body{X: x, Y: absY, W: playerWidth, H: playerHeight},
		RenderScale: 1,
		Tricks:      NewTrickLedger(),
	}
}

// Airborne reports whether a jump is in flight.
func (p *Player) Airborne() bool {
	return p.Jump.Phase == JumpAirborne
}

// resetRender restores the base render scale and clears trick visuals.
func (p *Player) resetRender() {
	p.RenderScale = 1
	p.Rotation = 0
	p.OffsetY = 0
}
