package game

import (
	"errors"
	"fmt"
)

var (
	ErrNoLayers        = errors.New("mountain has no layers")
	ErrLayerGap        = errors.New("layers are not contiguous")
	ErrLayerWidthOrder = errors.New("layer widths must strictly increase toward the base")
)

// Layer is one horizontal band of the mountain. X inside a layer wraps with
// period Width. StartY is inclusive, EndY exclusive.
type Layer struct {
	ID     int     `toml:"id" msgpack:"id"`
	StartY float64 `toml:"start_y" msgpack:"start_y"`
	EndY   float64 `toml:"end_y" msgpack:"end_y"`
	Width  float64 `toml:"width" msgpack:"width"`
}

// Contains reports whether absY falls inside [StartY, EndY).
func (l Layer) Contains(absY float64) bool {
	return absY >= l.StartY && absY < l.EndY
}

// Mountain is the immutable stack of layers, peak (absY 0) first.
type Mountain struct {
	layers []Layer
	height float64
}

// DefaultLayers is a five-band mountain, 1000px round at the peak and
// 2200px round at the base.
func DefaultLayers() []Layer {
	return []Layer{
		{ID: 0, StartY: 0, EndY: 4000, Width: 1000},
		{ID: 1, StartY: 4000, EndY: 8000, Width: 1300},
		{ID: 2, StartY: 8000, EndY: 12000, Width: 1600},
		{ID: 3, StartY: 12000, EndY: 16000, Width: 1900},
		{ID: 4, StartY: 16000, EndY: 20000, Width: 2200},
	}
}

// NewMountain validates layers and builds the topology. The first layer
// must start at 0, bands must be contiguous and widths strictly increasing.
func NewMountain(layers []Layer) (*Mountain, error) {
	if len(layers) == 0 {
		return nil, ErrNoLayers
	}
	if layers[0].StartY != 0 {
		return nil, fmt.Errorf("layer %d starts at %.1f, want 0: %w", layers[0].ID, layers[0].StartY, ErrLayerGap)
	}
	for i, l := range layers {
		if l.EndY <= l.StartY {
			return nil, fmt.Errorf("layer %d has empty range [%.1f,%.1f): %w", l.ID, l.StartY, l.EndY, ErrLayerGap)
		}
		if l.Width <= 0 {
			return nil, fmt.Errorf("layer %d width %.1f: %w", l.ID, l.Width, ErrLayerWidthOrder)
		}
		if i == 0 {
			continue
		}
		prev := layers[i-1]
		if l.StartY != prev.EndY {
			return nil, fmt.Errorf("layer %d starts at %.1f but layer %d ends at %.1f: %w",
				l.ID, l.StartY, prev.ID, prev.EndY, ErrLayerGap)
		}
		if l.Width <= prev.Width {
			return nil, fmt.Errorf("layer %d width %.1f <= layer %d width %.1f: %w",
				l.ID, l.Width, prev.ID, prev.Width, ErrLayerWidthOrder)
		}
	}
	cp := make([]Layer, len(layers))
	copy(cp, layers)
	return &Mountain{layers: cp, height: cp[len(cp)-1].EndY}, nil
}

// Height is the total vertical extent (the base sits at absY == Height).
func (m *Mountain) Height() float64 { return m.height }

// Layers returns a copy of the bands.
func (m *Mountain) Layers() []Layer {
	out := make([]Layer, len(m.layers))
	copy(out, m.layers)
	return out
}

// Layer looks a band up by ID.
func (m *Mountain) Layer(id int) (Layer, bool) {
	for _, l := range m.layers {
		if l.ID == id {
			return l, true
		}
	}
	return Layer{}, false
}

// LayerForY returns the band containing absY. It is total: anything above the
// peak maps to the first band, anything at or past the base to the last.
func (m *Mountain) LayerForY(absY float64) Layer {
	if absY < m.layers[0].StartY {
		return m.layers[0]
	}
	// Binary search on StartY; bands are few but this is called several
	// times per tick.
	lo, hi := 0, len(m.layers)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if m.layers[mid].StartY <= absY {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return m.layers[lo]
}

// ScaleXAcrossLayers keeps x at the same fraction of the circumference when
// moving from src to dst. A zero-width source leaves x unscaled.
func ScaleXAcrossLayers(x float64, src, dst Layer) float64 {
	if src.Width == 0 {
		return x
	}
	return x * (dst.Width / src.Width)
}

// RemapX rescales x when prevY and newY fall in different layers, then wraps
// it into the new layer. The returned bool reports a layer change.
func (m *Mountain) RemapX(x, prevY, newY float64) (float64, Layer, bool) {
	prev := m.LayerForY(prevY)
	next := m.LayerForY(newY)
	changed := prev.ID != next.ID
	if changed {
		x = ScaleXAcrossLayers(x, prev, next)
	}
	return WrapX(x, next.Width), next, changed
}
