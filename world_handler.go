package engine

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/ByteArena/box2d"
)

const (
	velocityIterations = 6
	positionIterations = 3
)

// WorldHandler exclusively owns one live simulation world. It is the
// mutual-exclusion domain for everything inside that world: every
// structural mutation of any body, fixture or joint it owns must hold
// its lock, and the world step holds the same lock for its whole
// duration. Actors belonging to different worlds never contend.
type WorldHandler struct {
	mu    sync.Mutex
	world box2d.B2World

	layer *Layer

	// steppingGoroutine holds the id of the goroutine currently running
	// the world step, 0 outside of steps. Structural mutation from that
	// same goroutine is a programmer error and fails fast instead of
	// deadlocking on mu.
	steppingGoroutine atomic.Int64
}

func newWorldHandler(layer *Layer, gravity Vector) *WorldHandler {
	wh := &WorldHandler{
		world: box2d.MakeB2World(gravity.toB2Vec2()),
		layer: layer,
	}
	wh.world.SetContactListener(wh)
	return wh
}

// World exposes the live simulation world handle for layer-level
// configuration.
func (wh *WorldHandler) World() *box2d.B2World {
	return &wh.world
}

// Layer returns the layer this world belongs to.
func (wh *WorldHandler) Layer() *Layer {
	return wh.layer
}

// Step advances the simulation. The step is an indivisible critical
// section with respect to structural mutation: the lock is held for its
// whole duration.
func (wh *WorldHandler) Step(deltaSeconds float64) {
	wh.mu.Lock()
	defer wh.mu.Unlock()

	wh.steppingGoroutine.Store(goroutineID())
	defer wh.steppingGoroutine.Store(0)

	wh.world.Step(deltaSeconds, velocityIterations, positionIterations)
}

// AssertNoWorldStep fails fast when a structural mutation (transform,
// fixture, type or joint change) is attempted from within the running
// world step, i.e. from a collision or solver callback on the stepping
// goroutine. Mutations from other goroutines are not an error; they
// simply block on the world lock until the step has finished.
func (wh *WorldHandler) AssertNoWorldStep() {
	if wh.steppingGoroutine.Load() == goroutineID() {
		panic("engine: structural world mutation is forbidden during a world step")
	}
}

// SetGravity changes the global gravity of this world, in N.
func (wh *WorldHandler) SetGravity(gravity Vector) {
	if gravity.IsNaN() {
		return
	}
	wh.mu.Lock()
	defer wh.mu.Unlock()
	wh.world.SetGravity(gravity.toB2Vec2())
}

// Gravity returns the global gravity of this world.
func (wh *WorldHandler) Gravity() Vector {
	return vectorFromB2Vec2(wh.world.GetGravity())
}

// QueryAABB returns every fixture whose broad-phase bounds intersect the
// box, in no particular order.
func (wh *WorldHandler) QueryAABB(aabb box2d.B2AABB) []*box2d.B2Fixture {
	if wh.steppingGoroutine.Load() != goroutineID() {
		wh.mu.Lock()
		defer wh.mu.Unlock()
	}

	var fixtures []*box2d.B2Fixture
	wh.world.QueryAABB(func(fixture *box2d.B2Fixture) bool {
		fixtures = append(fixtures, fixture)
		return true
	}, aabb)
	return fixtures
}

// IsBodyCollision reports whether the two bodies currently share a
// touching contact.
func (wh *WorldHandler) IsBodyCollision(a, b *box2d.B2Body) bool {
	if a == nil || b == nil {
		return false
	}
	for edge := a.GetContactList(); edge != nil; edge = edge.Next {
		if edge.Other == b && edge.Contact.IsTouching() {
			return true
		}
	}
	return false
}

// CreateJoint realizes a joint between the live bodies of two mounted
// actors. The construct function receives both bodies and builds the
// engine-specific joint definition. Creating a joint spanning a
// detached actor is a programmer error.
func (wh *WorldHandler) CreateJoint(a, b *Actor, construct func(bodyA, bodyB *box2d.B2Body) box2d.B2JointDefInterface) *Joint {
	bodyA := a.physicsHandler.Body()
	bodyB := b.physicsHandler.Body()
	if bodyA == nil || bodyB == nil {
		panic("engine: joints can only connect actors that are mounted in a world")
	}

	wh.AssertNoWorldStep()
	wh.mu.Lock()
	defer wh.mu.Unlock()

	def := construct(bodyA, bodyB)
	return &Joint{
		worldHandler: wh,
		joint:        wh.createJointLocked(def),
	}
}

// createJointLocked builds the joint and links it into the world.
// B2World.CreateJoint only accepts the base definition struct, which
// B2JointCreate cannot turn into a concrete joint, so the linking it
// would do is replicated here against the concrete definition.
func (wh *WorldHandler) createJointLocked(def box2d.B2JointDefInterface) box2d.B2JointInterface {
	j := box2d.B2JointCreate(def)

	j.SetPrev(nil)
	j.SetNext(wh.world.M_jointList)
	if wh.world.M_jointList != nil {
		wh.world.M_jointList.SetPrev(j)
	}
	wh.world.M_jointList = j
	wh.world.M_jointCount++

	j.GetEdgeA().Joint = j
	j.GetEdgeA().Other = j.GetBodyB()
	j.GetEdgeA().Prev = nil
	j.GetEdgeA().Next = j.GetBodyA().M_jointList
	if j.GetBodyA().M_jointList != nil {
		j.GetBodyA().M_jointList.Prev = j.GetEdgeA()
	}
	j.GetBodyA().M_jointList = j.GetEdgeA()

	j.GetEdgeB().Joint = j
	j.GetEdgeB().Other = j.GetBodyA()
	j.GetEdgeB().Prev = nil
	j.GetEdgeB().Next = j.GetBodyB().M_jointList
	if j.GetBodyB().M_jointList != nil {
		j.GetBodyB().M_jointList.Prev = j.GetEdgeB()
	}
	j.GetBodyB().M_jointList = j.GetEdgeB()

	if !j.IsCollideConnected() {
		for edge := j.GetBodyB().GetContactList(); edge != nil; edge = edge.Next {
			if edge.Other == j.GetBodyA() {
				edge.Contact.FlagForFiltering()
			}
		}
	}
	return j
}

// destroyJoint removes a joint from the world.
func (wh *WorldHandler) destroyJoint(j box2d.B2JointInterface) {
	wh.AssertNoWorldStep()
	wh.mu.Lock()
	defer wh.mu.Unlock()
	wh.world.DestroyJoint(j)
}

// BeginContact dispatches the start of a touching contact to the
// collision listeners of both involved actors. Runs on the stepping
// goroutine with the world lock held; listeners must not mutate world
// structure (AssertNoWorldStep guards this).
func (wh *WorldHandler) BeginContact(contact box2d.B2ContactInterface) {
	actorA, actorB := actorsOfContact(contact)
	if actorA != nil {
		actorA.collisionListeners.invoke(func(l CollisionListener) {
			l.OnCollision(CollisionEvent{contact: contact, other: actorB})
		})
	}
	if actorB != nil {
		actorB.collisionListeners.invoke(func(l CollisionListener) {
			l.OnCollision(CollisionEvent{contact: contact, other: actorA})
		})
	}
}

// EndContact dispatches the end of a contact, see BeginContact.
func (wh *WorldHandler) EndContact(contact box2d.B2ContactInterface) {
	actorA, actorB := actorsOfContact(contact)
	if actorA != nil {
		actorA.collisionListeners.invoke(func(l CollisionListener) {
			l.OnCollisionEnd(CollisionEvent{contact: contact, other: actorB})
		})
	}
	if actorB != nil {
		actorB.collisionListeners.invoke(func(l CollisionListener) {
			l.OnCollisionEnd(CollisionEvent{contact: contact, other: actorA})
		})
	}
}

func (wh *WorldHandler) PreSolve(box2d.B2ContactInterface, box2d.B2Manifold) {}

func (wh *WorldHandler) PostSolve(box2d.B2ContactInterface, *box2d.B2ContactImpulse) {}

func actorsOfContact(contact box2d.B2ContactInterface) (*Actor, *Actor) {
	actorA, _ := contact.GetFixtureA().GetBody().GetUserData().(*Actor)
	actorB, _ := contact.GetFixtureB().GetBody().GetUserData().(*Actor)
	return actorA, actorB
}

// goroutineID parses the current goroutine's id from its stack header.
// Only used to detect reentrant world mutation; never for scheduling.
func goroutineID() int64 {
	buf := make([]byte, 64)
	buf = buf[:runtime.Stack(buf, false)]
	// The header reads "goroutine 123 [running]:".
	buf = bytes.TrimPrefix(buf, []byte("goroutine "))
	if i := bytes.IndexByte(buf, ' '); i >= 0 {
		buf = buf[:i]
	}
	id, _ := strconv.ParseInt(string(buf), 10, 64)
	return id
}
