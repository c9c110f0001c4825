package core

import "github.com/lixenwraith/collide/vmath"

// Object is the stock Body implementation: a box centered on its position
type Object struct {
	Kinetic

	handle Handle

	Width, Height float64
	// Rot is the visual rotation in degrees
	Rot float64
	// M is the mass; InfiniteMass makes the object immovable
	M float64

	// MaxForce and MaxSpeed clamp integration when positive
	MaxForce float64
	MaxSpeed float64
}

// NewObject creates an object of the given size at center (x, y) with mass 1
func NewObject(x, y, width, height float64) *Object {
	return &Object{
		Kinetic: Kinetic{P: vmath.Vec2{X: x, Y: y}},
		handle:  NewHandle(),
		Width:   width,
		Height:  height,
		M:       1,
	}
}

// NewStaticObject creates an immovable object
func NewStaticObject(x, y, width, height float64) *Object {
	o := NewObject(x, y, width, height)
	o.M = InfiniteMass
	return o
}

func (o *Object) Handle() Handle { return o.handle }
func (o *Object) Kinetics() *Kinetic { return &o.Kinetic }
func (o *Object) Size() (float64, float64) { return o.Width, o.Height }
func (o *Object) Mass() float64 { return o.M }
func (o *Object) Rotation() float64 { return o.Rot }

// Limits implements Limited
func (o *Object) Limits() (float64, float64) {
	return o.MaxForce, o.MaxSpeed
}

// Region derives the AABB from center and half extents
func (o *Object) Region() Region {
	return RegionAround(o.P, o.Width, o.Height)
}

// Left, Right, Top and Bottom report the edges of the box

func (o *Object) Left() float64 { return o.P.X - o.Width/2 }
func (o *Object) Right() float64 { return o.P.X + o.Width/2 }
func (o *Object) Top() float64 { return o.P.Y - o.Height/2 }
func (o *Object) Bottom() float64 { return o.P.Y + o.Height/2 }

// SetLeft moves the object so its left edge sits at x
func (o *Object) SetLeft(x float64) { o.P.X = x + o.Width/2 }

// SetRight moves the object so its right edge sits at x
func (o *Object) SetRight(x float64) { o.P.X = x - o.Width/2 }

// SetTop moves the object so its top edge sits at y
func (o *Object) SetTop(y float64) { o.P.Y = y + o.Height/2 }

// SetBottom moves the object so its bottom edge sits at y
func (o *Object) SetBottom(y float64) { o.P.Y = y - o.Height/2 }

// LookAtVelocity points the visual rotation along the direction of travel
// A stationary object keeps its rotation
func (o *Object) LookAtVelocity() {
	if !o.V.IsZero() {
		o.Rot = o.V.Deg()
	}
}
