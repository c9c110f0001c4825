package physics

import "github.com/lixenwraith/collide/vmath"

// CapSpeed limits the velocity vector magnitude to maxSpeed
// Returns true if velocity was clamped
func CapSpeed(vel *vmath.Vec2, maxSpeed float64) bool {
	if vel.LenSq() <= maxSpeed*maxSpeed {
		return false
	}
	*vel = vel.Truncate(maxSpeed)
	return true
}
