package core

import (
	"math"

	"github.com/lixenwraith/collide/vmath"
)

// Region is an axis-aligned bounding box in world units
// Valid when Left <= Right and Top <= Bottom; Y grows downward
type Region struct {
	Top, Left, Right, Bottom float64
}

// RegionAround returns the box of size w x h centered on c
func RegionAround(c vmath.Vec2, w, h float64) Region {
	hw, hh := w/2, h/2
	return Region{
		Top:    c.Y - hh,
		Left:   c.X - hw,
		Right:  c.X + hw,
		Bottom: c.Y + hh,
	}
}

// Width returns Right - Left
func (r Region) Width() float64 {
	return r.Right - r.Left
}

// Height returns Bottom - Top
func (r Region) Height() float64 {
	return r.Bottom - r.Top
}

// MidX returns the horizontal midpoint
func (r Region) MidX() float64 {
	return r.Left + (r.Right-r.Left)/2
}

// MidY returns the vertical midpoint
func (r Region) MidY() float64 {
	return r.Top + (r.Bottom-r.Top)/2
}

// Center returns the midpoint as a vector
func (r Region) Center() vmath.Vec2 {
	return vmath.Vec2{X: r.MidX(), Y: r.MidY()}
}

// Valid reports whether the region is well formed: no NaN, Left <= Right, Top <= Bottom
func (r Region) Valid() bool {
	if math.IsNaN(r.Top) || math.IsNaN(r.Left) || math.IsNaN(r.Right) || math.IsNaN(r.Bottom) {
		return false
	}
	return r.Left <= r.Right && r.Top <= r.Bottom
}

// Contains reports whether other lies fully inside r, edges inclusive
func (r Region) Contains(other Region) bool {
	return other.Left >= r.Left &&
		other.Right <= r.Right &&
		other.Top >= r.Top &&
		other.Bottom <= r.Bottom
}

// ContainsPoint reports whether p lies inside r, edges inclusive
func (r Region) ContainsPoint(p vmath.Vec2) bool {
	return p.X >= r.Left && p.X <= r.Right && p.Y >= r.Top && p.Y <= r.Bottom
}

// Overlaps is the inclusive AABB test: touching edges count as overlap
func (r Region) Overlaps(other Region) bool {
	return r.Left <= other.Right &&
		r.Right >= other.Left &&
		r.Top <= other.Bottom &&
		r.Bottom >= other.Top
}

// Quadrants splits r at its midpoint into NW, NE, SW, SE
func (r Region) Quadrants() [4]Region {
	mx, my := r.MidX(), r.MidY()
	return [4]Region{
		{Top: r.Top, Left: r.Left, Right: mx, Bottom: my},
		{Top: r.Top, Left: mx, Right: r.Right, Bottom: my},
		{Top: my, Left: r.Left, Right: mx, Bottom: r.Bottom},
		{Top: my, Left: mx, Right: r.Right, Bottom: r.Bottom},
	}
}
