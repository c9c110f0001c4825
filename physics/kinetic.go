package physics

import (
	"github.com/lixenwraith/collide/constants"
	"github.com/lixenwraith/collide/core"
)

// Integrate performs semi-implicit Euler integration: v = v + a*dt; p = p + v*dt
// Positive maxForce truncates acceleration first, positive maxSpeed truncates velocity
func Integrate(k *core.Kinetic, dt, maxForce, maxSpeed float64) {
	if maxForce > 0 {
		k.A = k.A.Truncate(maxForce)
	}
	k.V = k.V.Add(k.A.Scale(dt))

	if maxSpeed > 0 {
		CapSpeed(&k.V, maxSpeed)
	}
	k.P = k.P.Add(k.V.Scale(dt))
}

// Step integrates a body, honoring its limits when it implements core.Limited
func Step(b core.Body, dt float64) {
	var maxForce, maxSpeed float64
	if l, ok := b.(core.Limited); ok {
		maxForce, maxSpeed = l.Limits()
	}
	Integrate(b.Kinetics(), dt, maxForce, maxSpeed)
}

// ContainWithin bounces a body off the edges of bounds
// Velocity is reflected, acceleration reversed and damped, and the body edge
// clamped back inside; returns true if any axis bounced
func ContainWithin(b core.Body, bounds core.Region) bool {
	k := b.Kinetics()
	w, h := b.Size()
	r := b.Region()
	bounced := false

	if r.Right > bounds.Right {
		k.V.X = -k.V.X
		k.A.X *= -constants.BoundsAccelDamping
		k.P.X = bounds.Right - w/2
		bounced = true
	} else if r.Left < bounds.Left {
		k.V.X = -k.V.X
		k.A.X *= -constants.BoundsAccelDamping
		k.P.X = bounds.Left + w/2
		bounced = true
	}

	if r.Bottom > bounds.Bottom {
		k.V.Y = -k.V.Y
		k.A.Y *= -constants.BoundsAccelDamping
		k.P.Y = bounds.Bottom - h/2
		bounced = true
	} else if r.Top < bounds.Top {
		k.V.Y = -k.V.Y
		k.A.Y *= -constants.BoundsAccelDamping
		k.P.Y = bounds.Top + h/2
		bounced = true
	}

	return bounced
}
