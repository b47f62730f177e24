package engine

import (
	"fmt"

	"github.com/ByteArena/box2d"
)

// FixtureData describes one collision shape together with optional
// material overrides. Every override carries its own presence flag: an
// unset field falls back to the owning actor's global default when the
// fixture is realized, and an explicitly set zero stays zero.
type FixtureData struct {
	shape box2d.B2ShapeInterface

	density    float64
	densitySet bool

	friction    float64
	frictionSet bool

	restitution    float64
	restitutionSet bool

	sensor    bool
	sensorSet bool

	filter box2d.B2Filter
}

// NewFixtureData wraps a shape in local/object space.
func NewFixtureData(shape box2d.B2ShapeInterface) *FixtureData {
	return &FixtureData{
		shape:  shape,
		filter: box2d.MakeB2Filter(),
	}
}

// Shape returns the local-space shape of the fixture.
func (f *FixtureData) Shape() box2d.B2ShapeInterface {
	return f.shape
}

func (f *FixtureData) SetShape(shape box2d.B2ShapeInterface) {
	f.shape = shape
}

func (f *FixtureData) Density() float64 {
	return f.density
}

func (f *FixtureData) SetDensity(density float64) {
	f.densitySet = true
	f.density = density
}

func (f *FixtureData) Friction() float64 {
	return f.friction
}

func (f *FixtureData) SetFriction(friction float64) {
	f.frictionSet = true
	f.friction = friction
}

func (f *FixtureData) Restitution() float64 {
	return f.restitution
}

func (f *FixtureData) SetRestitution(restitution float64) {
	f.restitutionSet = true
	f.restitution = restitution
}

func (f *FixtureData) IsSensor() bool {
	return f.sensor
}

func (f *FixtureData) SetSensor(sensor bool) {
	f.sensorSet = true
	f.sensor = sensor
}

// Filter returns the collision filter of the fixture.
func (f *FixtureData) Filter() box2d.B2Filter {
	return f.filter
}

// SetFilter is reserved for custom collision filters.
func (f *FixtureData) SetFilter(box2d.B2Filter) {
	panic("engine: custom collision filters are not implemented yet")
}

// toFixtureDef resolves all unset fields against the owning actor's
// global defaults and the body type's sensor flag.
func (f *FixtureData) toFixtureDef(parent *PhysicsData) box2d.B2FixtureDef {
	def := box2d.MakeB2FixtureDef()
	def.Shape = f.shape
	def.Filter = f.filter
	if f.densitySet {
		def.Density = f.density
	} else {
		def.Density = parent.globalDensity
	}
	if f.frictionSet {
		def.Friction = f.friction
	} else {
		def.Friction = parent.globalFriction
	}
	if f.restitutionSet {
		def.Restitution = f.restitution
	} else {
		def.Restitution = parent.globalRestitution
	}
	if f.sensorSet {
		def.IsSensor = f.sensor
	} else {
		def.IsSensor = parent.bodyType.isSensorType()
	}
	return def
}

// fixtureDataFromFixture snapshots a live fixture. All presence flags
// are set, the snapshot no longer falls back to any default.
func fixtureDataFromFixture(fixture *box2d.B2Fixture) *FixtureData {
	data := NewFixtureData(fixture.GetShape())
	data.SetDensity(fixture.GetDensity())
	data.SetFriction(fixture.GetFriction())
	data.SetRestitution(fixture.GetRestitution())
	data.SetSensor(fixture.IsSensor())
	data.filter = fixture.GetFilterData()
	return data
}

// RectangleShape builds an axis-aligned box of the given size whose
// lower left corner sits at the local origin.
func RectangleShape(width, height float64) *box2d.B2PolygonShape {
	assertPositiveWidthAndHeight(width, height)
	shape := box2d.MakeB2PolygonShape()
	shape.Set([]box2d.B2Vec2{
		box2d.MakeB2Vec2(0, 0),
		box2d.MakeB2Vec2(width, 0),
		box2d.MakeB2Vec2(width, height),
		box2d.MakeB2Vec2(0, height),
	}, 4)
	return &shape
}

// CircleShape builds a circle of the given radius centered so that it
// fits the bounding square anchored at the local origin.
func CircleShape(radius float64) *box2d.B2CircleShape {
	return CircleShapeAt(radius, NewVector(radius, radius))
}

// CircleShapeAt builds a circle of the given radius around a local
// center point.
func CircleShapeAt(radius float64, center Vector) *box2d.B2CircleShape {
	if radius <= 0 {
		panic(fmt.Sprintf("engine: circle radius must be positive, got %g", radius))
	}
	shape := box2d.MakeB2CircleShape()
	shape.M_radius = radius
	shape.M_p = center.toB2Vec2()
	return &shape
}

// PolygonShape builds a convex polygon from local-space vertices.
// At least three vertices are required.
func PolygonShape(vertices ...Vector) *box2d.B2PolygonShape {
	if len(vertices) < 3 {
		panic(fmt.Sprintf("engine: a polygon needs at least 3 vertices, got %d", len(vertices)))
	}
	points := make([]box2d.B2Vec2, len(vertices))
	for i, v := range vertices {
		points[i] = v.toB2Vec2()
	}
	shape := box2d.MakeB2PolygonShape()
	shape.Set(points, len(points))
	return &shape
}

// RectangleFixture is shorthand for a fixture description of an
// axis-aligned box anchored at the local origin.
func RectangleFixture(width, height float64) *FixtureData {
	return NewFixtureData(RectangleShape(width, height))
}

// CircleFixture is shorthand for a fixture description of a circle
// fitting the bounding square anchored at the local origin.
func CircleFixture(radius float64) *FixtureData {
	return NewFixtureData(CircleShape(radius))
}

func assertPositiveWidthAndHeight(width, height float64) {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("engine: width and height must be positive, got %g x %g", width, height))
	}
}
