package engine

import (
	"testing"
)

func TestFixtureDefaults(t *testing.T) {
	parent := NewPhysicsData(nil)
	fixture := RectangleFixture(1, 1)

	def := fixture.toFixtureDef(parent)
	if def.Density != DefaultDensity {
		t.Errorf("density = %g, want %g", def.Density, DefaultDensity)
	}
	if def.Friction != DefaultFriction {
		t.Errorf("friction = %g, want %g", def.Friction, DefaultFriction)
	}
	if def.Restitution != DefaultRestitution {
		t.Errorf("restitution = %g, want %g", def.Restitution, DefaultRestitution)
	}
	// New actors are sensors, so the fixture defaults to a sensor too.
	if !def.IsSensor {
		t.Error("fixture of a sensor actor is not a sensor")
	}
}

func TestFixtureOverrides(t *testing.T) {
	parent := NewPhysicsData(nil)
	fixture := RectangleFixture(1, 1)
	fixture.SetDensity(2)
	fixture.SetFriction(0.3)
	fixture.SetRestitution(0) // explicit zero must not fall back
	fixture.SetSensor(false)

	def := fixture.toFixtureDef(parent)
	if def.Density != 2 {
		t.Errorf("density = %g, want 2", def.Density)
	}
	if def.Friction != 0.3 {
		t.Errorf("friction = %g, want 0.3", def.Friction)
	}
	if def.Restitution != 0 {
		t.Errorf("restitution = %g, want explicit 0", def.Restitution)
	}
	if def.IsSensor {
		t.Error("explicit sensor override ignored")
	}
}

func TestFixtureOverridesPartial(t *testing.T) {
	parent := NewPhysicsData(nil)
	parent.globalDensity = 5
	fixture := CircleFixture(1)
	fixture.SetFriction(0.7)

	def := fixture.toFixtureDef(parent)
	if def.Density != 5 {
		t.Errorf("density = %g, want parent value 5", def.Density)
	}
	if def.Friction != 0.7 {
		t.Errorf("friction = %g, want override 0.7", def.Friction)
	}
	if def.Restitution != DefaultRestitution {
		t.Errorf("restitution = %g, want default %g", def.Restitution, DefaultRestitution)
	}
}

func TestFixtureSetFilterPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic")
		}
	}()
	RectangleFixture(1, 1).SetFilter(RectangleFixture(1, 1).Filter())
}

func TestShapeConstructorsValidate(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"zero width rectangle", func() { RectangleShape(0, 1) }},
		{"negative height rectangle", func() { RectangleShape(1, -1) }},
		{"zero radius circle", func() { CircleShape(0) }},
		{"two vertex polygon", func() { PolygonShape(NewVector(0, 0), NewVector(1, 0)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("expected a panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestCircleShapeAnchoredAtOrigin(t *testing.T) {
	shape := CircleShape(2)
	if shape.M_radius != 2 {
		t.Errorf("radius = %g, want 2", shape.M_radius)
	}
	// The bounding square of the circle sits at the local origin, so the
	// center is offset by the radius on both axes.
	if shape.M_p.X != 2 || shape.M_p.Y != 2 {
		t.Errorf("center = (%g|%g), want (2|2)", shape.M_p.X, shape.M_p.Y)
	}
}
