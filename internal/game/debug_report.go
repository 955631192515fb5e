package game

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
)

// DebugReport renders the session state plus the last lastTicks of the sim
// log as plain text, ready to paste into a bug report.
func DebugReport(sc *SimContext, lastTicks int) string {
	if sc == nil {
		return ""
	}
	if lastTicks <= 0 {
		lastTicks = 120
	}
	toTick := sc.Tick
	fromTick := toTick - lastTicks + 1
	if fromTick < 0 {
		fromTick = 0
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- Summit Sled debug report ---\n")
	fmt.Fprintf(&b, "seed=%d tick_range=[%d..%d] ticks=%d clock=%.0fms\n",
		sc.Seed(), fromTick, toTick, toTick-fromTick+1, sc.ClockMs)
	fmt.Fprintf(&b, "upgrades=%+v\n\n", sc.Upgrades)
	b.WriteString(sc.Log.Summary(sc))

	p := sc.Player
	if air := p.Jump.Air; air != nil {
		fmt.Fprintf(&b, "air: t=%.0f/%.0fms height=%.2f peak=%v rehit=%v\n",
			air.Timer, air.Duration, air.HeightFactor, air.ReachedPeak, air.ReHitUsed)
		if t := air.Trick; t != nil {
			fmt.Fprintf(&b, "trick: %s t=%.0fms rot=%.1f off=%.1f\n", t.Kind, t.Timer, t.Rotation, t.Offset)
		}
	}
	if sc.Landing() {
		b.WriteString("landing tween in progress\n")
	}
	fmt.Fprintf(&b, "camera: x=%.1f target=%.1f period=%.0f\n", sc.Camera.X, sc.Camera.TargetX, sc.Camera.Period())
	if sc.Course != nil {
		fmt.Fprintf(&b, "course obstacles=%d\n", sc.Course.Len())
	}
	fmt.Fprintf(&b, "trail obstacles=%d\n", sc.Trail.Len())

	ignored := 0
	for _, e := range sc.Log.FilterTickRange(fromTick, toTick) {
		if e.Category == "ignored" {
			ignored++
		}
	}
	fmt.Fprintf(&b, "\n== log (%d ignored in range) ==\n", ignored)
	log := sc.Log.FormatRange(fromTick, toTick)
	if log == "" {
		b.WriteString("(no entries in range)\n")
	}
	b.WriteString(log)
	return b.String()
}

// CopyDebugReport puts DebugReport on the system clipboard.
func CopyDebugReport(sc *SimContext, lastTicks int) error {
	if err := clipboard.WriteAll(DebugReport(sc, lastTicks)); err != nil {
		return fmt.Errorf("copy debug report: %w", err)
	}
	return nil
}
