package engine

import (
	"fmt"

	"github.com/ByteArena/box2d"
)

// BodyType classifies how an actor takes part in the simulation and which
// collision filter its fixtures carry.
type BodyType int

const (
	// Static bodies never move and are unaffected by forces. Walls,
	// floors, platforms.
	Static BodyType = iota

	// Kinematic bodies move only through direct velocity or position
	// changes, never through forces or collisions.
	Kinematic

	// Dynamic bodies take full part in the simulation: gravity, forces,
	// impulses, collisions.
	Dynamic

	// Sensor bodies detect collisions but never respond to them. They are
	// moved programmatically, like kinematic bodies.
	Sensor

	// Particle bodies are dynamic but only collide with static and
	// kinematic bodies. Effects and debris that should rest on solid
	// ground without disturbing the rest of the scene.
	Particle
)

func (t BodyType) String() string {
	switch t {
	case Static:
		return "static"
	case Kinematic:
		return "kinematic"
	case Dynamic:
		return "dynamic"
	case Sensor:
		return "sensor"
	case Particle:
		return "particle"
	}
	return fmt.Sprintf("BodyType(%d)", int(t))
}

// Collision categories. Disjoint single-bit flags; a fixture's category
// says what it is, its mask says what it may touch.
const (
	categoryStatic    uint16 = 1 << 0
	categoryKinematic uint16 = 1 << 1
	categoryDynamic   uint16 = 1 << 2
	categoryParticle  uint16 = 1 << 3
	categoryPassive   uint16 = 1 << 4

	defaultMaskBits uint16 = 0xFFFF
)

// filter returns the collision filter and sensor flag for the body type.
// The assignment is a pure function of the type; it is recomputed for
// every fixture whenever the type changes.
//
// Particles only rest on solid ground: they neither collide with each
// other nor with dynamic or sensor objects.
func (t BodyType) filter() (filter box2d.B2Filter, sensor bool) {
	filter = box2d.MakeB2Filter()
	switch t {
	case Sensor:
		filter.CategoryBits = categoryPassive
		filter.MaskBits = defaultMaskBits &^ categoryParticle
		return filter, true
	case Static:
		filter.CategoryBits = categoryStatic
		filter.MaskBits = defaultMaskBits
		return filter, false
	case Kinematic:
		filter.CategoryBits = categoryKinematic
		filter.MaskBits = defaultMaskBits
		return filter, false
	case Dynamic:
		filter.CategoryBits = categoryDynamic
		filter.MaskBits = defaultMaskBits &^ categoryParticle
		return filter, false
	case Particle:
		filter.CategoryBits = categoryParticle
		filter.MaskBits = categoryStatic | categoryKinematic
		return filter, false
	}
	panic(fmt.Sprintf("engine: unknown body type: %d", int(t)))
}

// isSensorType reports whether fixtures of this type default to sensors.
func (t BodyType) isSensorType() bool {
	_, sensor := t.filter()
	return sensor
}

// toB2Kind maps the body type onto the three kinds Box2D knows. Sensors
// behave kinematically (moved by hand, unaffected by gravity), particles
// behave dynamically.
func (t BodyType) toB2Kind() uint8 {
	switch t {
	case Static:
		return box2d.B2BodyType.B2_staticBody
	case Kinematic, Sensor:
		return box2d.B2BodyType.B2_kinematicBody
	case Dynamic, Particle:
		return box2d.B2BodyType.B2_dynamicBody
	}
	panic(fmt.Sprintf("engine: unknown body type: %d", int(t)))
}
