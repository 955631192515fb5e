package game

import (
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// replayVersion is bumped whenever the encoded layout changes.
const replayVersion = 2

// ErrReplayVersion is returned when decoding a replay from another format
// version.
var ErrReplayVersion = errors.New("unsupported replay version")

// ReplayFrame is one Step call. Upgrades and Config are set only on frames
// where they changed before the step.
type ReplayFrame struct {
	DtMs     float64   `msgpack:"dt"`
	Input    Input     `msgpack:"in"`
	Upgrades *Upgrades `msgpack:"up,omitempty"`
	Config   *Config   `msgpack:"cfg,omitempty"`
}

// Replay is everything needed to rebuild a session tick for tick.
type Replay struct {
	Version int           `msgpack:"v"`
	Seed    int64         `msgpack:"seed"`
	View    Viewport      `msgpack:"view"`
	Config  Config        `msgpack:"config"`
	Frames  []ReplayFrame `msgpack:"frames"`
}

// Recorder wraps a SimContext and captures every step.
type Recorder struct {
	Sim    *SimContext
	replay Replay
	upDiff  *Upgrades
	cfgDiff *Config
}

// NewRecorder builds a fresh session and starts recording it.
func NewRecorder(cfg Config, seed int64, view Viewport) (*Recorder, error) {
	sc, err := NewSimContext(cfg, seed, view)
	if err != nil {
		return nil, fmt.Errorf("new recorder: %w", err)
	}
	return &Recorder{
		Sim: sc,
		replay: Replay{
			Version: replayVersion,
			Seed:    seed,
			View:    view,
			Config:  cfg,
		},
	}, nil
}

// SetUpgrades changes the upgrade levels; the change is stored with the
// next frame.
func (r *Recorder) SetUpgrades(u Upgrades) {
	r.Sim.SetUpgrades(u)
	r.upDiff = &u
}

// SetConfig queues cfg for the next run like SimContext.SetConfig and stores
// it with the next frame. A rejected config is not recorded.
func (r *Recorder) SetConfig(cfg Config) error {
	if err := r.Sim.SetConfig(cfg); err != nil {
		return err
	}
	r.cfgDiff = &cfg
	return nil
}

// Step records and applies one frame.
func (r *Recorder) Step(in Input, dtMs float64) {
	r.replay.Frames = append(r.replay.Frames, ReplayFrame{
		DtMs:     dtMs,
		Input:    in,
		Upgrades: r.upDiff,
		Config:   r.cfgDiff,
	})
	r.upDiff = nil
	r.cfgDiff = nil
	r.Sim.Step(in, dtMs)
}

// Replay returns the recording so far.
func (r *Recorder) Replay() *Replay {
	out := r.replay
	out.Frames = append([]ReplayFrame(nil), r.replay.Frames...)
	return &out
}

// EncodeReplay serialises rp with msgpack.
func EncodeReplay(rp *Replay) ([]byte, error) {
	b, err := msgpack.Marshal(rp)
	if err != nil {
		return nil, fmt.Errorf("encode replay: %w", err)
	}
	return b, nil
}

// DecodeReplay parses a msgpack replay and checks its version.
func DecodeReplay(b []byte) (*Replay, error) {
	var rp Replay
	if err := msgpack.Unmarshal(b, &rp); err != nil {
		return nil, fmt.Errorf("decode replay: %w", err)
	}
	if rp.Version != replayVersion {
		return nil, fmt.Errorf("decode replay: version %d: %w", rp.Version, ErrReplayVersion)
	}
	return &rp, nil
}

// PlayReplay rebuilds the session in rp and runs every frame. Listeners are
// subscribed before the first step.
func PlayReplay(rp *Replay, listeners ...Listener) (*SimContext, error) {
	sc, err := NewSimContext(rp.Config, rp.Seed, rp.View)
	if err != nil {
		return nil, fmt.Errorf("play replay: %w", err)
	}
	for _, l := range listeners {
		sc.Subscribe(l)
	}
	for _, f := range rp.Frames {
		if f.Upgrades != nil {
			sc.SetUpgrades(*f.Upgrades)
		}
		if f.Config != nil {
			if err := sc.SetConfig(*f.Config); err != nil {
				return nil, fmt.Errorf("play replay: tick %d: %w", sc.Tick+1, err)
			}
		}
		sc.Step(f.Input, f.DtMs)
	}
	return sc, nil
}
