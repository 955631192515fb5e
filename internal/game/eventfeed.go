package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	feedPanelWidth = 280
	feedMaxEntries = 60
	feedLineHeight = 14
)

// FeedEntry is a single line in the event feed.
type FeedEntry struct {
	Tick    int
	Kind    EventKind
	Message string
}

// EventFeed is a ring buffer of recent events rendered on-screen. It
// subscribes to the simulation like any other listener.
type EventFeed struct {
	entries []FeedEntry
	head    int
	count   int
}

// NewEventFeed creates a feed with a fixed capacity.
func NewEventFeed() *EventFeed {
	return &EventFeed{
		entries: make([]FeedEntry, feedMaxEntries),
	}
}

// OnEvent appends e. Peaks are too frequent to be worth a line.
func (f *EventFeed) OnEvent(e Event) {
	if e.Kind == EventJumpPeak {
		return
	}
	f.Add(e.Tick, e.Kind, e.String())
}

// Add appends an entry to the feed.
func (f *EventFeed) Add(tick int, kind EventKind, msg string) {
	f.entries[f.head] = FeedEntry{
		Tick:    tick,
		Kind:    kind,
		Message: msg,
	}
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// Len is the number of entries held.
func (f *EventFeed) Len() int { return f.count }

// Recent returns entries in chronological order (oldest first).
func (f *EventFeed) Recent() []FeedEntry {
	result := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = f.entries[idx]
	}
	return result
}

// feedColor tints the marker next to each line.
func feedColor(k EventKind) color.RGBA {
	switch k {
	case EventTrickComplete, EventReHit:
		return color.RGBA{R: 250, G: 200, B: 60, A: 255}
	case EventCollision, EventCrash, EventSledDamaged:
		return color.RGBA{R: 220, G: 70, B: 70, A: 255}
	case EventRunComplete:
		return color.RGBA{R: 90, G: 210, B: 110, A: 255}
	default:
		return color.RGBA{R: 110, G: 150, B: 220, A: 255}
	}
}

// Draw renders the feed panel on the right side of the screen.
func (f *EventFeed) Draw(screen *ebiten.Image, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(feedPanelWidth), float32(panelH), color.RGBA{R: 14, G: 18, B: 26, A: 235}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 70, G: 90, B: 120, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(feedPanelWidth), 16, color.RGBA{R: 24, G: 32, B: 48, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "EVENTS", panelX+8, 0)

	entries := f.Recent()
	maxVisible := (panelH - 24) / feedLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	y := 20
	for i, e := range entries {
		if i >= len(entries)-3 {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(feedPanelWidth-4), float32(feedLineHeight), color.RGBA{R: 34, G: 44, B: 64, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 6, feedColor(e.Kind), false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%5d %s", e.Tick, e.Message), panelX+12, y)
		y += feedLineHeight
	}
}
