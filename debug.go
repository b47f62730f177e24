package engine

import (
	"image/color"

	"github.com/ByteArena/box2d"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var debugOutlineColor = color.RGBA{R: 0x00, G: 0xff, B: 0x00, A: 0xff}

// drawDebug strokes the fixture outlines of every mounted actor on top
// of the rendered frame.
func drawDebug(dst *ebiten.Image, scene *Scene) {
	camera := scene.Camera()
	for _, layer := range scene.Layers() {
		for _, actor := range layer.Actors() {
			body := actor.PhysicsHandler().Body()
			if body == nil {
				continue
			}
			transform := body.GetTransform()
			for fixture := body.GetFixtureList(); fixture != nil; fixture = fixture.GetNext() {
				strokeFixture(dst, camera, transform, fixture)
			}
		}
	}
}

func strokeFixture(dst *ebiten.Image, camera *Camera, transform box2d.B2Transform, fixture *box2d.B2Fixture) {
	bounds := dst.Bounds()
	switch shape := fixture.GetShape().(type) {
	case *box2d.B2PolygonShape:
		for i := 0; i < shape.M_count; i++ {
			a := box2d.B2TransformVec2Mul(transform, shape.M_vertices[i])
			b := box2d.B2TransformVec2Mul(transform, shape.M_vertices[(i+1)%shape.M_count])
			ax, ay := camera.ToScreen(vectorFromB2Vec2(a), bounds.Dx(), bounds.Dy())
			bx, by := camera.ToScreen(vectorFromB2Vec2(b), bounds.Dx(), bounds.Dy())
			vector.StrokeLine(dst, float32(ax), float32(ay), float32(bx), float32(by), 1, debugOutlineColor, true)
		}
	case *box2d.B2CircleShape:
		center := box2d.B2TransformVec2Mul(transform, shape.M_p)
		x, y := camera.ToScreen(vectorFromB2Vec2(center), bounds.Dx(), bounds.Dy())
		vector.StrokeCircle(dst, float32(x), float32(y), float32(shape.M_radius*camera.PixelsPerMeter()), 1, debugOutlineColor, true)
	}
}
