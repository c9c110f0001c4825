package core

// InfiniteMass marks an immovable body: its inverse mass is treated as zero
const InfiniteMass = 0.0

// Body is the capability set the collision core consumes
// The core never owns bodies; it mutates Kinetics in place during resolution
type Body interface {
	Handle() Handle
	Kinetics() *Kinetic
	Size() (width, height float64)
	Mass() float64
	// Rotation in degrees, visual only; collision ignores it
	Rotation() float64
	// Region is derived from the center position and half extents
	Region() Region
}

// Limited is implemented by bodies with optional integration clamps
// A zero or negative limit means unlimited
type Limited interface {
	Limits() (maxForce, maxSpeed float64)
}

// InverseMass returns 1/mass, or 0 for an infinite-mass body
func InverseMass(b Body) float64 {
	m := b.Mass()
	if m == InfiniteMass {
		return 0
	}
	return 1 / m
}
