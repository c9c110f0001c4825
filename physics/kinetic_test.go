package physics

import (
	"testing"

	"github.com/lixenwraith/collide/core"
	"github.com/lixenwraith/collide/vmath"
)

// TestIntegrateSemiImplicit tests that velocity is updated before position
func TestIntegrateSemiImplicit(t *testing.T) {
	k := core.Kinetic{
		P: vmath.V(10, 10),
		V: vmath.V(2, 0),
		A: vmath.V(0, 4),
	}
	Integrate(&k, 0.5, 0, 0)

	if !nearVec(k.V, vmath.V(2, 2)) {
		t.Errorf("V = %v, want (2,2)", k.V)
	}
	// Position uses the updated velocity
	if !nearVec(k.P, vmath.V(11, 11)) {
		t.Errorf("P = %v, want (11,11)", k.P)
	}
	if k.A != vmath.V(0, 4) {
		t.Errorf("A should persist across integration, got %v", k.A)
	}
}

func TestIntegrateLimits(t *testing.T) {
	k := core.Kinetic{A: vmath.V(300, 400)}
	Integrate(&k, 1, 50, 0)
	if !near(k.V.Len(), 50) {
		t.Errorf("force truncation: |V| = %v, want 50", k.V.Len())
	}
	if !near(k.A.Len(), 50) {
		t.Errorf("acceleration not truncated: |A| = %v", k.A.Len())
	}

	k = core.Kinetic{V: vmath.V(60, 80)}
	Integrate(&k, 1, 0, 10)
	if !near(k.V.Len(), 10) {
		t.Errorf("speed truncation: |V| = %v, want 10", k.V.Len())
	}
	if !nearVec(k.P, vmath.V(6, 8)) {
		t.Errorf("P = %v, want (6,8)", k.P)
	}
}

func TestStepUsesObjectLimits(t *testing.T) {
	o := core.NewObject(0, 0, 4, 4)
	o.V = vmath.V(100, 0)
	o.MaxSpeed = 20

	Step(o, 0.5)

	if !nearVec(o.V, vmath.V(20, 0)) {
		t.Errorf("V = %v, want (20,0)", o.V)
	}
	if !nearVec(o.P, vmath.V(10, 0)) {
		t.Errorf("P = %v, want (10,0)", o.P)
	}
}

func TestContainWithin(t *testing.T) {
	bounds := core.Region{Top: 0, Left: 0, Right: 100, Bottom: 100}

	tests := []struct {
		name   string
		pos    vmath.Vec2
		vel    vmath.Vec2
		acc    vmath.Vec2
		wantP  vmath.Vec2
		wantV  vmath.Vec2
		wantA  vmath.Vec2
		bounce bool
	}{
		{
			name: "inside", pos: vmath.V(50, 50), vel: vmath.V(5, 5), acc: vmath.V(1, 1),
			wantP: vmath.V(50, 50), wantV: vmath.V(5, 5), wantA: vmath.V(1, 1),
		},
		{
			name: "right edge", pos: vmath.V(98, 50), vel: vmath.V(5, 1), acc: vmath.V(10, 0),
			wantP: vmath.V(95, 50), wantV: vmath.V(-5, 1), wantA: vmath.V(-9, 0), bounce: true,
		},
		{
			name: "top left corner", pos: vmath.V(2, 1), vel: vmath.V(-3, -4), acc: vmath.V(-10, -20),
			wantP: vmath.V(5, 5), wantV: vmath.V(3, 4), wantA: vmath.V(9, 18), bounce: true,
		},
		{
			name: "bottom edge", pos: vmath.V(50, 99), vel: vmath.V(0, 7), acc: vmath.V(0, 0),
			wantP: vmath.V(50, 95), wantV: vmath.V(0, -7), wantA: vmath.V(0, 0), bounce: true,
		},
	}

	for _, tt := range tests {
		o := core.NewObject(tt.pos.X, tt.pos.Y, 10, 10)
		o.V = tt.vel
		o.A = tt.acc

		got := ContainWithin(o, bounds)
		if got != tt.bounce {
			t.Errorf("%s: bounced = %v, want %v", tt.name, got, tt.bounce)
		}
		if !nearVec(o.P, tt.wantP) || !nearVec(o.V, tt.wantV) || !nearVec(o.A, tt.wantA) {
			t.Errorf("%s: got P=%v V=%v A=%v, want P=%v V=%v A=%v",
				tt.name, o.P, o.V, o.A, tt.wantP, tt.wantV, tt.wantA)
		}
	}
}

func TestCapSpeed(t *testing.T) {
	v := vmath.V(3, 4)
	if CapSpeed(&v, 5) {
		t.Error("speed equal to the cap should not be clamped")
	}
	if CapSpeed(&v, 10) {
		t.Error("slower than cap reported as clamped")
	}
	if !CapSpeed(&v, 1) {
		t.Fatal("expected clamp")
	}
	if !near(v.Len(), 1) {
		t.Errorf("|v| = %v, want 1", v.Len())
	}
}
