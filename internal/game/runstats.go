package game

import (
	"fmt"
	"sort"
	"strings"
)

// RunReport captures one downhill run from start to its end (completion,
// wreck or forced exit).
type RunReport struct {
	StartTick, EndTick int
	Completed          bool
	Distance           float64
	Seconds            float64
	Score              float64
	Collisions         int
	Wrecked            bool
	Tricks             map[TrickKind]int
	TrickPayout        float64
	BestChain          int
	Crashes            int
	ReHits             int
}

// RunStats is a Listener that splits the event stream into runs and keeps
// session totals. It never touches the simulation.
type RunStats struct {
	history []RunReport
	current *RunReport

	ModeChanges int
	Repairs     int
	LastEndMode Mode
}

// NewRunStats creates an empty collector.
func NewRunStats() *RunStats {
	return &RunStats{}
}

// OnEvent folds e into the current run.
func (r *RunStats) OnEvent(e Event) {
	switch e.Kind {
	case EventModeChange:
		r.ModeChanges++
		if e.From == ModeDownhill {
			r.finish(e.Tick, e.To)
		}
		if e.To == ModeDownhill {
			r.current = &RunReport{StartTick: e.Tick, Tricks: make(map[TrickKind]int)}
		}
		return
	case EventSledDamaged:
		if !e.SledDamaged {
			r.Repairs++
			return
		}
	}
	run := r.current
	if run == nil {
		return
	}
	switch e.Kind {
	case EventRunComplete:
		run.Completed = true
		run.Distance = e.Distance
		run.Seconds = e.Seconds
		run.Score = e.Score
	case EventCollision:
		run.Collisions = e.Collisions
	case EventSledDamaged:
		run.Wrecked = true
	case EventTrickComplete:
		run.Tricks[e.Trick]++
		run.TrickPayout += e.Payout
		if e.Chain > run.BestChain {
			run.BestChain = e.Chain
		}
	case EventCrash:
		run.Crashes++
	case EventReHit:
		run.ReHits++
	}
}

func (r *RunStats) finish(tick int, to Mode) {
	if r.current == nil {
		return
	}
	r.current.EndTick = tick
	r.history = append(r.history, *r.current)
	r.current = nil
	r.LastEndMode = to
}

// History returns the finished runs, oldest first.
func (r *RunStats) History() []RunReport { return r.history }

// Current is the run in progress, or nil.
func (r *RunStats) Current() *RunReport { return r.current }

// Latest is the most recently finished run, or nil.
func (r *RunStats) Latest() *RunReport {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// SessionReport aggregates every finished run.
type SessionReport struct {
	Runs        int
	Completed   int
	Wrecked     int
	BestScore   float64
	TotalScore  float64
	AvgDistance float64
	Collisions  int
	Tricks      map[TrickKind]int
	TrickPayout float64
	BestChain   int
	Crashes     int
	ReHits      int
	Repairs     int
}

// Summary aggregates the history. It returns nil before the first run ends.
func (r *RunStats) Summary() *SessionReport {
	if len(r.history) == 0 {
		return nil
	}
	sr := &SessionReport{Runs: len(r.history), Tricks: make(map[TrickKind]int), Repairs: r.Repairs}
	var dist float64
	for _, run := range r.history {
		if run.Completed {
			sr.Completed++
			dist += run.Distance
			sr.TotalScore += run.Score
			if run.Score > sr.BestScore {
				sr.BestScore = run.Score
			}
		}
		if run.Wrecked {
			sr.Wrecked++
		}
		sr.Collisions += run.Collisions
		for k, n := range run.Tricks {
			sr.Tricks[k] += n
		}
		sr.TrickPayout += run.TrickPayout
		if run.BestChain > sr.BestChain {
			sr.BestChain = run.BestChain
		}
		sr.Crashes += run.Crashes
		sr.ReHits += run.ReHits
	}
	if sr.Completed > 0 {
		sr.AvgDistance = dist / float64(sr.Completed)
	}
	return sr
}

// Format returns a human-readable multi-line string of the session.
func (sr *SessionReport) Format() string {
	if sr == nil {
		return "No runs finished yet.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Session Report (%d runs) ===\n", sr.Runs)
	fmt.Fprintf(&sb, "  completed=%d  wrecked=%d  repairs=%d\n", sr.Completed, sr.Wrecked, sr.Repairs)
	fmt.Fprintf(&sb, "  score: best=%.1f total=%.1f  avg distance=%.0fpx\n", sr.BestScore, sr.TotalScore, sr.AvgDistance)
	fmt.Fprintf(&sb, "  collisions=%d  crashes=%d  rehits=%d\n", sr.Collisions, sr.Crashes, sr.ReHits)

	sb.WriteString("\n--- Tricks ---\n")
	kinds := make([]TrickKind, 0, len(sr.Tricks))
	for k := range sr.Tricks {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	for _, k := range kinds {
		fmt.Fprintf(&sb, "  %-18s %d\n", k, sr.Tricks[k])
	}
	fmt.Fprintf(&sb, "  payout=$%.1f  best chain=x%d\n", sr.TrickPayout, sr.BestChain+1)
	return sb.String()
}
