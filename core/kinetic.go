package core

import "github.com/lixenwraith/collide/vmath"

// Kinetic holds the motion state of a body
type Kinetic struct {
	// P is the center position in world units
	P vmath.Vec2
	// V is velocity in world units per second
	V vmath.Vec2
	// A is acceleration in world units per second squared
	A vmath.Vec2
}
