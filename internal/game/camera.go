package game

import "math"

// Camera tracks the player horizontally on a wrapped layer and vertically on
// absolute Y. X is the world X shown at the screen anchor.
type Camera struct {
	X       float64
	TargetX float64
	Y       float64

	period  float64 // wrap period the X value is currently expressed in
	layerID int
}

// ChooseTarget returns whichever of playerX, playerX+period or
// playerX-period is nearest to cameraX, so the camera never swings the long
// way round the seam. A non-positive period returns playerX.
func ChooseTarget(playerX, cameraX, period float64) float64 {
	if period <= 0 {
		return playerX
	}
	best := playerX
	for _, c := range [2]float64{playerX + period, playerX - period} {
		if math.Abs(c-cameraX) < math.Abs(best-cameraX) {
			best = c
		}
	}
	return best
}

// Follow eases the camera toward the player on a wrapped layer. layer is the
// band at the player's current Y; when it differs from last frame the camera
// X is rescaled with the player so the view does not jump.
func (c *Camera) Follow(playerX, playerY float64, layer Layer, lerp float64) {
	if c.period > 0 && layer.ID != c.layerID {
		c.X = ScaleXAcrossLayers(c.X, Layer{Width: c.period}, layer)
	}
	c.period = layer.Width
	c.layerID = layer.ID

	c.TargetX = ChooseTarget(playerX, c.X, c.period)
	c.X += (c.TargetX - c.X) * lerp
	c.X = WrapX(c.X, c.period)
	c.Y = playerY
}

// Pin fixes the camera for screen-space modes (downhill, house); anchorX is
// the world X that should sit at the screen anchor.
func (c *Camera) Pin(anchorX, playerY float64) {
	c.X = anchorX
	c.TargetX = anchorX
	c.Y = playerY
	c.period = 0
	c.layerID = -1
}

// ScreenX maps a world X to an offset from the screen anchor.
func (c *Camera) ScreenX(worldX float64) float64 {
	if c.period > 0 {
		return WrappedScreenPos(worldX, c.X, c.period)
	}
	return worldX - c.X
}

// Period is the wrap period the camera is following in, 0 when pinned.
func (c *Camera) Period() float64 { return c.period }

// Snap centres the camera on the player without easing.
func (c *Camera) Snap(playerX, playerY float64, layer Layer) {
	c.X = WrapX(playerX, layer.Width)
	c.TargetX = c.X
	c.Y = playerY
	c.period = layer.Width
	c.layerID = layer.ID
}
