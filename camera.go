package engine

// DefaultPixelsPerMeter is the default camera zoom: one meter in the
// world spans this many screen pixels.
const DefaultPixelsPerMeter = 30.0

// Camera maps world coordinates (meters, y up) to screen coordinates
// (pixels, y down). It can optionally follow an actor.
type Camera struct {
	position       Vector
	pixelsPerMeter float64

	focus       *Actor
	focusOffset Vector

	bounds *Bounds
}

func NewCamera() *Camera {
	return &Camera{pixelsPerMeter: DefaultPixelsPerMeter}
}

// Position returns the world point at the center of the screen,
// clamped into the camera bounds if any are set.
func (c *Camera) Position() Vector {
	position := c.position
	if c.focus != nil {
		position = c.focus.Center().Add(c.focusOffset)
	}
	if c.bounds != nil {
		position = c.bounds.clampInto(position)
	}
	return position
}

// SetBounds restricts the camera center to a world rectangle, typically
// the playable area. Nil removes the restriction.
func (c *Camera) SetBounds(bounds *Bounds) {
	c.bounds = bounds
}

// SetPosition centers the camera on a world point and drops any focus.
func (c *Camera) SetPosition(x, y float64) {
	c.focus = nil
	c.position = NewVector(x, y)
}

// MoveBy translates the camera.
func (c *Camera) MoveBy(meters Vector) {
	c.position = c.Position().Add(meters)
	c.focus = nil
}

// SetFocus keeps the camera centered on an actor. A nil actor releases
// the focus at the current position.
func (c *Camera) SetFocus(actor *Actor) {
	if actor == nil && c.focus != nil {
		c.position = c.Position()
	}
	c.focus = actor
}

// SetFocusOffset shifts the camera relative to the focused actor.
func (c *Camera) SetFocusOffset(offset Vector) {
	c.focusOffset = offset
}

// PixelsPerMeter returns the zoom factor.
func (c *Camera) PixelsPerMeter() float64 {
	return c.pixelsPerMeter
}

// SetPixelsPerMeter sets the zoom factor; it must be positive.
func (c *Camera) SetPixelsPerMeter(pixelsPerMeter float64) {
	if pixelsPerMeter <= 0 {
		panic("engine: pixels per meter must be positive")
	}
	c.pixelsPerMeter = pixelsPerMeter
}

// ToScreen converts a world point to screen pixels for a viewport of
// the given size.
func (c *Camera) ToScreen(world Vector, screenWidth, screenHeight int) (float64, float64) {
	center := c.Position()
	x := float64(screenWidth)/2 + (world.X-center.X)*c.pixelsPerMeter
	y := float64(screenHeight)/2 - (world.Y-center.Y)*c.pixelsPerMeter
	return x, y
}

// ToWorld converts a screen pixel position back to world coordinates.
func (c *Camera) ToWorld(screenX, screenY float64, screenWidth, screenHeight int) Vector {
	center := c.Position()
	return NewVector(
		center.X+(screenX-float64(screenWidth)/2)/c.pixelsPerMeter,
		center.Y-(screenY-float64(screenHeight)/2)/c.pixelsPerMeter,
	)
}
