package engine

import (
	"github.com/ByteArena/box2d"
)

// Global material defaults. Fixtures without their own override inherit
// these values from the owning actor.
const (
	DefaultDensity     = 10.0
	DefaultFriction    = 0.0
	DefaultRestitution = 0.5
)

// PhysicsData is the portable snapshot of an actor's physical
// configuration. It backs the detached handler while an actor is not
// part of a live world and carries the full state across the
// detached/attached transition in both directions.
type PhysicsData struct {
	// fixtures lazily produces the fixture descriptions. It is re-invoked
	// whenever the fixtures are (re)built on a live body.
	fixtures func() []*FixtureData

	globalDensity     float64
	globalFriction    float64
	globalRestitution float64

	bodyType BodyType

	x, y     float64
	rotation float64 // degrees

	velocity        Vector
	angularVelocity float64 // radians/s

	gravityScale   float64
	linearDamping  float64
	angularDamping float64

	rotationLocked bool

	// mass is only known after the actor has lived on a body at least
	// once; nil reads as zero.
	mass *float64
}

// NewPhysicsData creates the default configuration for a fresh actor.
func NewPhysicsData(fixtures func() []*FixtureData) *PhysicsData {
	return &PhysicsData{
		fixtures:          fixtures,
		globalDensity:     DefaultDensity,
		globalFriction:    DefaultFriction,
		globalRestitution: DefaultRestitution,
		bodyType:          Sensor,
		gravityScale:      1,
	}
}

// Fixtures returns the fixture producer.
func (d *PhysicsData) Fixtures() func() []*FixtureData {
	return d.fixtures
}

func (d *PhysicsData) setFixtures(fixtures func() []*FixtureData) {
	d.fixtures = fixtures
}

// Type returns the body type.
func (d *PhysicsData) Type() BodyType {
	return d.bodyType
}

// createBody realizes the snapshot as a live body in the given world,
// fixtures included. Called with the world lock held.
func (d *PhysicsData) createBody(wh *WorldHandler, actor *Actor) *box2d.B2Body {
	def := box2d.MakeB2BodyDef()
	def.Type = d.bodyType.toB2Kind()
	def.Position = box2d.MakeB2Vec2(d.x, d.y)
	def.Angle = DegreesToRadians(d.rotation)
	def.LinearVelocity = d.velocity.toB2Vec2()
	def.AngularVelocity = d.angularVelocity
	def.LinearDamping = d.linearDamping
	def.AngularDamping = d.angularDamping
	def.FixedRotation = d.rotationLocked
	def.GravityScale = d.gravityScale
	def.Active = true
	def.Awake = true
	def.UserData = actor

	body := wh.world.CreateBody(&def)
	for _, fixture := range d.fixtures() {
		fixtureDef := fixture.toFixtureDef(d)
		body.CreateFixtureFromDef(&fixtureDef)
	}
	return body
}

// physicsDataFromBody snapshots a live body, the inverse of createBody.
// Called with the world lock held.
func physicsDataFromBody(body *box2d.B2Body, bodyType BodyType) *PhysicsData {
	var fixtures []*FixtureData
	for fixture := body.GetFixtureList(); fixture != nil; fixture = fixture.GetNext() {
		fixtures = append(fixtures, fixtureDataFromFixture(fixture))
	}

	data := NewPhysicsData(func() []*FixtureData { return fixtures })
	data.bodyType = bodyType
	// The attached getters report the first fixture's material, so the
	// snapshot records it as the global values. Fixtures added later
	// without overrides inherit it.
	if first := body.GetFixtureList(); first != nil {
		data.globalDensity = first.GetDensity()
		data.globalFriction = first.GetFriction()
		data.globalRestitution = first.GetRestitution()
	}
	data.x = body.GetPosition().X
	data.y = body.GetPosition().Y
	data.rotation = RadiansToDegrees(body.GetAngle())
	data.velocity = vectorFromB2Vec2(body.GetLinearVelocity())
	data.angularVelocity = body.GetAngularVelocity()
	data.gravityScale = body.GetGravityScale()
	data.linearDamping = body.GetLinearDamping()
	data.angularDamping = body.GetAngularDamping()
	data.rotationLocked = body.IsFixedRotation()
	mass := body.GetMass()
	data.mass = &mass
	return data
}
