package engine

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// whiteImage backs the solid-color triangle rendering of the geometry
// actors. The 1x1 sub image avoids bleeding at the texture border.
var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(whiteImage.Bounds().Inset(1)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// Rectangle is an axis-aligned box actor anchored at its lower left
// corner.
type Rectangle struct {
	*Actor
	width, height float64
	color         color.Color
}

// NewRectangle creates a rectangle of the given size in meters.
func NewRectangle(width, height float64) *Rectangle {
	assertPositiveWidthAndHeight(width, height)
	r := &Rectangle{
		width:  width,
		height: height,
		color:  color.White,
	}
	r.Actor = NewActor(func() *FixtureData {
		return RectangleFixture(width, height)
	})
	r.Actor.render = r.drawShape
	return r
}

func (r *Rectangle) Width() float64  { return r.width }
func (r *Rectangle) Height() float64 { return r.height }

func (r *Rectangle) Color() color.Color { return r.color }

func (r *Rectangle) SetColor(c color.Color) { r.color = c }

func (r *Rectangle) drawShape(dst *ebiten.Image, camera *Camera) {
	corners := []Vector{
		{0, 0},
		{r.width, 0},
		{r.width, r.height},
		{0, r.height},
	}
	fillWorldPolygon(dst, camera, r.Actor, corners, r.color, r.Opacity())
}

// Circle is a circle actor whose bounding square is anchored at the
// actor's lower left corner.
type Circle struct {
	*Actor
	radius float64
	color  color.Color
}

// NewCircle creates a circle with the given diameter in meters.
func NewCircle(diameter float64) *Circle {
	assertPositiveWidthAndHeight(diameter, diameter)
	c := &Circle{
		radius: diameter / 2,
		color:  color.White,
	}
	c.Actor = NewActor(func() *FixtureData {
		return CircleFixture(diameter / 2)
	})
	c.Actor.render = c.drawShape
	return c
}

func (c *Circle) Radius() float64 { return c.radius }

func (c *Circle) Color() color.Color { return c.color }

func (c *Circle) SetColor(clr color.Color) { c.color = clr }

func (c *Circle) drawShape(dst *ebiten.Image, camera *Camera) {
	// The circle's local center rotates with the actor around its anchor.
	center := c.Position().Add(NewVector(c.radius, c.radius).Rotate(c.Rotation()))
	bounds := dst.Bounds()
	x, y := camera.ToScreen(center, bounds.Dx(), bounds.Dy())
	vector.FillCircle(dst, float32(x), float32(y), float32(c.radius*camera.PixelsPerMeter()),
		scaleAlpha(c.color, c.Opacity()), true)
}

// Polygon is a convex polygon actor defined by local-space vertices.
type Polygon struct {
	*Actor
	vertices []Vector
	color    color.Color
}

// NewPolygon creates a polygon from at least three local-space vertices.
func NewPolygon(vertices ...Vector) *Polygon {
	shape := PolygonShape(vertices...) // validates the vertex count
	p := &Polygon{
		vertices: vertices,
		color:    color.White,
	}
	p.Actor = NewActor(func() *FixtureData {
		return NewFixtureData(shape)
	})
	p.Actor.render = p.drawShape
	return p
}

func (p *Polygon) Color() color.Color { return p.color }

func (p *Polygon) SetColor(c color.Color) { p.color = c }

func (p *Polygon) drawShape(dst *ebiten.Image, camera *Camera) {
	fillWorldPolygon(dst, camera, p.Actor, p.vertices, p.color, p.Opacity())
}

// fillWorldPolygon renders a convex polygon given in the actor's local
// space, honoring the actor's position and rotation, as a triangle fan.
func fillWorldPolygon(dst *ebiten.Image, camera *Camera, actor *Actor, local []Vector, clr color.Color, opacity float64) {
	if len(local) < 3 {
		return
	}
	position := actor.Position()
	rotation := actor.Rotation()
	bounds := dst.Bounds()

	r, g, b, a := clr.RGBA()
	alpha := float32(opacity)
	vertices := make([]ebiten.Vertex, len(local))
	for i, v := range local {
		world := position.Add(v.Rotate(rotation))
		x, y := camera.ToScreen(world, bounds.Dx(), bounds.Dy())
		vertices[i] = ebiten.Vertex{
			DstX:   float32(x),
			DstY:   float32(y),
			SrcX:   1,
			SrcY:   1,
			ColorR: float32(r) / 0xffff * alpha,
			ColorG: float32(g) / 0xffff * alpha,
			ColorB: float32(b) / 0xffff * alpha,
			ColorA: float32(a) / 0xffff * alpha,
		}
	}

	indices := make([]uint16, 0, (len(local)-2)*3)
	for i := 2; i < len(local); i++ {
		indices = append(indices, 0, uint16(i-1), uint16(i))
	}
	dst.DrawTriangles(vertices, indices, whiteSubImage, nil)
}

func scaleAlpha(clr color.Color, opacity float64) color.Color {
	r, g, b, a := clr.RGBA()
	return color.RGBA64{
		R: uint16(float64(r) * opacity),
		G: uint16(float64(g) * opacity),
		B: uint16(float64(b) * opacity),
		A: uint16(float64(a) * opacity),
	}
}
