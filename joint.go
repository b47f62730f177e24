package engine

import (
	"sync"

	"github.com/ByteArena/box2d"
)

// Joint is a constraint between the live bodies of two mounted actors.
// It only exists while both actors are mounted; unmounting either side
// destroys the constraint with the body.
type Joint struct {
	worldHandler *WorldHandler
	joint        box2d.B2JointInterface

	mu       sync.Mutex
	released bool
}

// Release destroys the joint. Releasing twice is harmless.
func (j *Joint) Release() {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.released {
		return
	}
	j.released = true
	j.worldHandler.destroyJoint(j.joint)
}

// IsReleased reports whether the joint has been destroyed.
func (j *Joint) IsReleased() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.released
}

// B2Joint exposes the live joint handle for engine-level tuning, motor
// settings for example.
func (j *Joint) B2Joint() box2d.B2JointInterface {
	return j.joint
}

// jointWorld resolves the world both actors are mounted in. Joints
// spanning a detached actor or two different worlds are programmer
// errors.
func (a *Actor) jointWorld(other *Actor) *WorldHandler {
	wh := a.PhysicsHandler().WorldHandler()
	otherWh := other.PhysicsHandler().WorldHandler()
	if wh == nil || otherWh == nil {
		panic("engine: joints can only connect actors that are mounted in a world")
	}
	if wh != otherWh {
		panic("engine: joints can only connect actors mounted in the same world")
	}
	return wh
}

// anchorToWorld converts an anchor given relative to the actor's anchor
// point into world coordinates, honoring the actor's rotation.
func (a *Actor) anchorToWorld(relativeAnchor Vector) Vector {
	return a.Position().Add(relativeAnchor.Rotate(a.Rotation()))
}

// CreateDistanceJoint keeps the two anchor points at their current
// distance. Anchors are relative to the respective actor's anchor
// point, in meters.
func (a *Actor) CreateDistanceJoint(other *Actor, relativeAnchor Vector, relativeAnchorOther Vector) *Joint {
	wh := a.jointWorld(other)
	anchorA := a.anchorToWorld(relativeAnchor).toB2Vec2()
	anchorB := other.anchorToWorld(relativeAnchorOther).toB2Vec2()
	return wh.CreateJoint(a, other, func(bodyA, bodyB *box2d.B2Body) box2d.B2JointDefInterface {
		def := box2d.MakeB2DistanceJointDef()
		def.Initialize(bodyA, bodyB, anchorA, anchorB)
		return &def
	})
}

// CreateRevoluteJoint pins both actors together at one anchor point
// they can rotate around, like a hinge. The anchor is relative to this
// actor's anchor point, in meters.
func (a *Actor) CreateRevoluteJoint(other *Actor, relativeAnchor Vector) *Joint {
	wh := a.jointWorld(other)
	anchor := a.anchorToWorld(relativeAnchor).toB2Vec2()
	return wh.CreateJoint(a, other, func(bodyA, bodyB *box2d.B2Body) box2d.B2JointDefInterface {
		def := box2d.MakeB2RevoluteJointDef()
		def.Initialize(bodyA, bodyB, anchor)
		return &def
	})
}

// CreateRopeJoint limits the distance between the two anchor points to
// ropeLength without otherwise constraining the actors. Anchors are
// relative to the respective actor's anchor point, in meters.
func (a *Actor) CreateRopeJoint(other *Actor, relativeAnchor Vector, relativeAnchorOther Vector, ropeLength float64) *Joint {
	if ropeLength <= 0 {
		panic("engine: rope length must be positive")
	}
	wh := a.jointWorld(other)
	anchorA := a.anchorToWorld(relativeAnchor).toB2Vec2()
	anchorB := other.anchorToWorld(relativeAnchorOther).toB2Vec2()
	return wh.CreateJoint(a, other, func(bodyA, bodyB *box2d.B2Body) box2d.B2JointDefInterface {
		def := box2d.MakeB2RopeJointDef()
		def.SetBodyA(bodyA)
		def.SetBodyB(bodyB)
		def.LocalAnchorA = bodyA.GetLocalPoint(anchorA)
		def.LocalAnchorB = bodyB.GetLocalPoint(anchorB)
		def.MaxLength = ropeLength
		return &def
	})
}

// CreatePrismaticJoint restricts the relative movement of the two
// actors to a straight axis through the anchor. The anchor is relative
// to this actor's anchor point, the axis angle is in degrees.
func (a *Actor) CreatePrismaticJoint(other *Actor, relativeAnchor Vector, axisAngle float64) *Joint {
	wh := a.jointWorld(other)
	anchor := a.anchorToWorld(relativeAnchor).toB2Vec2()
	axis := NewVector(1, 0).Rotate(axisAngle).toB2Vec2()
	return wh.CreateJoint(a, other, func(bodyA, bodyB *box2d.B2Body) box2d.B2JointDefInterface {
		def := box2d.MakeB2PrismaticJointDef()
		def.Initialize(bodyA, bodyB, anchor, axis)
		return &def
	})
}

// CreateWeldJoint rigidly glues both actors together at the anchor
// point, which is relative to this actor's anchor point, in meters.
func (a *Actor) CreateWeldJoint(other *Actor, relativeAnchor Vector) *Joint {
	wh := a.jointWorld(other)
	anchor := a.anchorToWorld(relativeAnchor).toB2Vec2()
	return wh.CreateJoint(a, other, func(bodyA, bodyB *box2d.B2Body) box2d.B2JointDefInterface {
		def := box2d.MakeB2WeldJointDef()
		def.Initialize(bodyA, bodyB, anchor)
		return &def
	})
}
