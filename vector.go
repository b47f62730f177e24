package engine

import (
	"fmt"
	"math"

	"github.com/ByteArena/box2d"
)

// Vector is an immutable 2D vector in meters.
type Vector struct {
	X, Y float64
}

// NullVector is the zero vector.
var NullVector = Vector{}

// NewVector returns the vector (x, y).
func NewVector(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

// Add returns the component-wise sum of v and other.
func (v Vector) Add(other Vector) Vector {
	return Vector{X: v.X + other.X, Y: v.Y + other.Y}
}

// Subtract returns v minus other.
func (v Vector) Subtract(other Vector) Vector {
	return Vector{X: v.X - other.X, Y: v.Y - other.Y}
}

// Multiply returns v scaled by factor.
func (v Vector) Multiply(factor float64) Vector {
	return Vector{X: v.X * factor, Y: v.Y * factor}
}

// Negate returns the vector pointing in the opposite direction.
func (v Vector) Negate() Vector {
	return Vector{X: -v.X, Y: -v.Y}
}

// Length returns the euclidean length of v.
func (v Vector) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Rotate returns v rotated counterclockwise by the given angle in degrees.
func (v Vector) Rotate(degrees float64) Vector {
	rad := DegreesToRadians(degrees)
	sin, cos := math.Sincos(rad)
	return Vector{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// IsNaN reports whether any component of v is NaN. NaN vectors are
// rejected by all physics mutators, see the handler implementations.
func (v Vector) IsNaN() bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y)
}

// IsNil reports whether v is the zero vector.
func (v Vector) IsNil() bool {
	return v.X == 0 && v.Y == 0
}

func (v Vector) String() string {
	return fmt.Sprintf("(%g|%g)", v.X, v.Y)
}

func (v Vector) toB2Vec2() box2d.B2Vec2 {
	return box2d.MakeB2Vec2(v.X, v.Y)
}

func vectorFromB2Vec2(v box2d.B2Vec2) Vector {
	return Vector{X: v.X, Y: v.Y}
}

// DegreesToRadians converts an angle in degrees to radians.
func DegreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadiansToDegrees converts an angle in radians to degrees.
func RadiansToDegrees(radians float64) float64 {
	return radians * 180 / math.Pi
}
