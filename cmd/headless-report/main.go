package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Garsondee/Summit-Sled/internal/game"
	"github.com/atotto/clipboard"
)

type runStats struct {
	runIndex int
	seed     int64

	firstDownhillTick int
	firstTrickTick    int
	firstWreckTick    int

	modeChanges   int
	ignored       int
	landingTweens int

	session *game.SessionReport
	replay  *game.Replay
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var configPath string
	var recordPath string
	var copyReport bool

	flag.IntVar(&runs, "runs", 5, "number of headless sessions")
	flag.IntVar(&ticks, "ticks", 36000, "ticks per session")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for session 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between sessions")
	flag.StringVar(&configPath, "config", "", "TOML config file (defaults if empty)")
	flag.StringVar(&recordPath, "record", "", "write the first session as a msgpack replay")
	flag.BoolVar(&copyReport, "copy", false, "copy the aggregate report to the clipboard")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	cfg, err := game.LoadConfig(configPath)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("=== Headless Sled Report ===\n")
	fmt.Printf("runs=%d ticks=%d seed_base=%d seed_step=%d jump_mode=%s\n\n", runs, ticks, seedBase, seedStep, cfg.JumpMode)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		rs, err := runSession(i+1, seed, ticks, cfg)
		if err != nil {
			log.Fatal(err)
		}
		all = append(all, rs)
		printRun(rs)
	}

	if recordPath != "" {
		b, err := game.EncodeReplay(all[0].replay)
		if err != nil {
			log.Fatal(err)
		}
		if err := os.WriteFile(recordPath, b, 0o644); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("replay written: %s (%d frames, %d bytes)\n\n", recordPath, len(all[0].replay.Frames), len(b))
	}

	report := aggregate(all)
	fmt.Print(report)
	if copyReport {
		if err := clipboard.WriteAll(report); err != nil {
			log.Fatal(err)
		}
	}
}

func runSession(runIndex int, seed int64, ticks int, cfg game.Config) (runStats, error) {
	rec, err := game.NewRecorder(cfg, seed, game.Viewport{W: 800, H: 600})
	if err != nil {
		return runStats{}, err
	}
	stats := game.NewRunStats()
	rec.Sim.Subscribe(stats)
	bot := game.NewAutopilot(seed)
	for i := 0; i < ticks; i++ {
		rec.Step(bot.Next(rec.Sim), game.TickMs)
	}

	entries := rec.Sim.Log.Entries()
	return runStats{
		runIndex:          runIndex,
		seed:              seed,
		firstDownhillTick: firstTick(entries, "mode", "change", "→ downhill"),
		firstTrickTick:    firstTick(entries, "trick", "complete", ""),
		firstWreckTick:    firstTick(entries, "mode", "change", "sled_damaged"),
		modeChanges:       rec.Sim.Log.CountCategory("mode", "change"),
		ignored:           rec.Sim.Log.CountCategory("ignored", ""),
		landingTweens:     rec.Sim.Log.CountCategory("mode", "landing"),
		session:           stats.Summary(),
		replay:            rec.Replay(),
	}, nil
}

func firstTick(entries []game.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

func printRun(rs runStats) {
	fmt.Printf("--- Session %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("phase_markers: first_downhill=%d first_trick=%d first_wreck=%d\n",
		rs.firstDownhillTick, rs.firstTrickTick, rs.firstWreckTick)
	fmt.Printf("event_totals: mode_change=%d ignored=%d landing_tweens=%d\n",
		rs.modeChanges, rs.ignored, rs.landingTweens)
	verdict, reason := classifySession(rs)
	fmt.Printf("verdict=%s (%s)\n", verdict, reason)
	fmt.Print(rs.session.Format())
	fmt.Println()
}

// classifySession labels a session from its totals so regressions in the
// movement tuning stand out across seeds.
func classifySession(rs runStats) (string, string) {
	s := rs.session
	switch {
	case s == nil || s.Runs == 0:
		return "stuck", "no_downhill_run_finished"
	case s.Completed == 0:
		return "brutal", "every_run_wrecked"
	case float64(s.Wrecked)/float64(s.Runs) > 0.5:
		return "rough", fmt.Sprintf("wreck_rate=%.0f%%", float64(s.Wrecked)/float64(s.Runs)*100)
	case s.TrickPayout == 0:
		return "flat", "no_trick_payout"
	default:
		return "healthy", fmt.Sprintf("completed=%d/%d", s.Completed, s.Runs)
	}
}

func aggregate(all []runStats) string {
	var b strings.Builder
	totalRuns, totalCompleted, totalWrecked := 0, 0, 0
	totalScore, totalPayout := 0.0, 0.0
	bestScore := 0.0
	verdicts := map[string]int{}
	downhillTicks := make([]int, 0, len(all))
	for _, rs := range all {
		v, _ := classifySession(rs)
		verdicts[v]++
		if rs.firstDownhillTick >= 0 {
			downhillTicks = append(downhillTicks, rs.firstDownhillTick)
		}
		if rs.session == nil {
			continue
		}
		totalRuns += rs.session.Runs
		totalCompleted += rs.session.Completed
		totalWrecked += rs.session.Wrecked
		totalScore += rs.session.TotalScore
		totalPayout += rs.session.TrickPayout
		if rs.session.BestScore > bestScore {
			bestScore = rs.session.BestScore
		}
	}
	fmt.Fprintln(&b, "=== Aggregate ===")
	fmt.Fprintf(&b, "sessions=%d runs=%d completed=%d wrecked=%d\n", len(all), totalRuns, totalCompleted, totalWrecked)
	fmt.Fprintf(&b, "avg_per_session: runs=%.1f score=%.1f trick_payout=%.1f best_score=%.1f\n",
		avg(totalRuns, len(all)), avgF(totalScore, len(all)), avgF(totalPayout, len(all)), bestScore)
	fmt.Fprintf(&b, "first_downhill_avg_tick=%s\n", avgTickString(downhillTicks))
	fmt.Fprintf(&b, "verdicts: healthy=%d rough=%d flat=%d brutal=%d stuck=%d\n",
		verdicts["healthy"], verdicts["rough"], verdicts["flat"], verdicts["brutal"], verdicts["stuck"])
	return b.String()
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgF(sum float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return sum / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}
