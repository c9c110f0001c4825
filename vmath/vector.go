package vmath

import "math"

// Vec2 is a 2D vector in world units
// Value type: every operation returns a new vector
type Vec2 struct {
	X, Y float64
}

// V returns the vector (x, y)
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale multiplies both components by s
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Neg returns the inverted vector
func (v Vec2) Neg() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

// Dot returns v.X*o.X + v.Y*o.Y
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Len returns the Euclidean length
func (v Vec2) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LenSq returns the squared length without sqrt
func (v Vec2) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// IsZero reports whether both components are exactly zero
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Normalize returns the unit vector, zero-safe
func (v Vec2) Normalize() Vec2 {
	return v.DivScalar(v.Len())
}

// DivScalar divides by s; division by zero yields the zero vector
func (v Vec2) DivScalar(s float64) Vec2 {
	if s == 0 {
		return Vec2{}
	}
	inv := 1 / s
	return Vec2{X: v.X * inv, Y: v.Y * inv}
}

// Truncate limits the vector to max length while preserving direction
// Returns unchanged vector if length <= max
func (v Vec2) Truncate(max float64) Vec2 {
	if v.LenSq() > max*max {
		return v.Normalize().Scale(max)
	}
	return v
}

// Rad returns the angle of the vector in radians, measured from +X toward +Y
func (v Vec2) Rad() float64 {
	return math.Atan2(v.Y, v.X)
}

// Deg returns the angle of the vector in degrees
func (v Vec2) Deg() float64 {
	return v.Rad() * 180 / math.Pi
}

// FromRad builds a vector of the given length pointing at angle rad
func FromRad(rad, length float64) Vec2 {
	return Vec2{X: length * math.Cos(rad), Y: length * math.Sin(rad)}
}

// WithinDistance reports whether a and b are strictly closer than distance
func WithinDistance(a, b Vec2, distance float64) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx+dy*dy < distance*distance
}

// Reflect returns velocity reflected off a surface with the given unit normal
// vel' = vel - 2 * dot(vel, normal) * normal
func Reflect(vel, normal Vec2) Vec2 {
	return vel.Sub(normal.Scale(2 * vel.Dot(normal)))
}
