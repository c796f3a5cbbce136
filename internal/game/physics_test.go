package game

import (
	"math"
	"testing"
)

// TestIntegrateBodyWhole verifies one reference-rate step of translation,
// gravity and rotation
func TestIntegrateBodyWhole(t *testing.T) {
	b := newBody(1, 100, 200, 2, -10, 60, 1, 0.05)

	integrateBody(b, 1, 0.25)

	if b.X != 102 {
		t.Errorf("X = %v, want 102", b.X)
	}
	if b.Y != 190 {
		t.Errorf("Y = %v, want 190", b.Y)
	}
	if b.VY != -9.75 {
		t.Errorf("VY = %v, want -9.75 (gravity applied after translation)", b.VY)
	}
	if b.Rotation != 1.05 {
		t.Errorf("Rotation = %v, want 1.05", b.Rotation)
	}
}

// TestIntegrateBodyScaled verifies sub-step scaling covers the same ground
// per unit of real time
func TestIntegrateBodyScaled(t *testing.T) {
	// Two half-steps vs one full step: positions match exactly for the
	// linear terms; gravity accumulates slightly differently but the
	// total velocity change is identical.
	full := newBody(1, 0, 0, 4, 0, 60, 0, 0)
	halves := newBody(2, 0, 0, 4, 0, 60, 0, 0)

	integrateBody(full, 1, 0.25)
	integrateBody(halves, 0.5, 0.25)
	integrateBody(halves, 0.5, 0.25)

	if full.X != halves.X {
		t.Errorf("X diverged: full %v vs halves %v", full.X, halves.X)
	}
	if math.Abs(full.VY-halves.VY) > 1e-9 {
		t.Errorf("VY diverged: full %v vs halves %v", full.VY, halves.VY)
	}
}

// TestIntegrateSlicedHalves verifies halves integrate independently under
// shared gravity
func TestIntegrateSlicedHalves(t *testing.T) {
	b := newBody(1, 100, 100, 0, 0, 60, 0, 0)
	sliceBody(b, 0, 8)

	x, y := b.X, b.Y
	integrateBody(b, 1, 0.25)

	// Parent position is frozen once sliced
	if b.X != x || b.Y != y {
		t.Error("parent position moved after slice")
	}

	// Horizontal cut kicks halves apart vertically
	if b.Slice.Left.OffY >= 0 {
		t.Errorf("Left.OffY = %v, want negative (kicked up)", b.Slice.Left.OffY)
	}
	if b.Slice.Right.OffY <= 0 {
		t.Errorf("Right.OffY = %v, want positive (kicked down)", b.Slice.Right.OffY)
	}
	if b.Slice.Left.VY != -8+0.25 {
		t.Errorf("Left.VY = %v, want %v", b.Slice.Left.VY, -8+0.25)
	}
	if b.Slice.Left.Rotation != leftHalfRotSpeed {
		t.Errorf("Left.Rotation = %v, want %v after one step", b.Slice.Left.Rotation, leftHalfRotSpeed)
	}
}

// TestReflectWalls verifies side-boundary clamping with restitution
func TestReflectWalls(t *testing.T) {
	tests := []struct {
		name   string
		x, vx  float64
		wantX  float64
		wantVX float64
	}{
		{"left overshoot clamps and reflects", -10, -5, 0, 4},
		{"right overshoot clamps and reflects", 770, 5, 740, -4},
		{"interior untouched", 300, -5, 300, -5},
		{"exactly at left edge is not a crossing", 0, -5, 0, -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBody(1, tt.x, 100, tt.vx, 0, 60, 0, 0)
			reflectWalls(b, 800, 0.8)

			if b.X != tt.wantX {
				t.Errorf("X = %v, want %v", b.X, tt.wantX)
			}
			if math.Abs(b.VX-tt.wantVX) > 1e-9 {
				t.Errorf("VX = %v, want %v", b.VX, tt.wantVX)
			}
		})
	}
}

// TestReflectWallsNoVerticalClamp verifies bodies exit freely above and below
func TestReflectWallsNoVerticalClamp(t *testing.T) {
	b := newBody(1, 300, -500, 0, -3, 60, 0, 0)
	reflectWalls(b, 800, 0.8)
	if b.Y != -500 || b.VY != -3 {
		t.Error("vertical state changed by wall handling")
	}
}

// TestReflectHalves verifies each half bounces on its own absolute extent
func TestReflectHalves(t *testing.T) {
	b := newBody(1, 10, 100, 0, 0, 60, 0, 0)
	sliceBody(b, math.Pi/2, 8) // vertical cut: halves kick apart horizontally
	b.Slice.Left.OffX = -20    // absolute -10, past the left edge
	b.Slice.Left.VX = -5
	b.Slice.Right.OffX = 5

	reflectWalls(b, 800, 0.8)

	if got := b.X + b.Slice.Left.OffX; got != 0 {
		t.Errorf("left half absolute X = %v, want 0", got)
	}
	if math.Abs(b.Slice.Left.VX-4) > 1e-9 {
		t.Errorf("left half VX = %v, want 4", b.Slice.Left.VX)
	}
	if b.Slice.Right.OffX != 5 {
		t.Errorf("right half OffX = %v, want unchanged 5", b.Slice.Right.OffX)
	}
}

// TestBelowBottom verifies the expiry thresholds
func TestBelowBottom(t *testing.T) {
	tests := []struct {
		name string
		y    float64
		want bool
	}{
		{"above playfield bottom", 500, false},
		{"inside the grace margin", 650, false},
		{"exactly at threshold", 700, false},
		{"past threshold", 700.1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBody(1, 100, tt.y, 0, 0, 60, 0, 0)
			if got := belowBottom(b, 600); got != tt.want {
				t.Errorf("belowBottom(y=%v) = %v, want %v", tt.y, got, tt.want)
			}
		})
	}
}

// TestHalvesBelowBottom verifies sliced expiry waits for both halves
func TestHalvesBelowBottom(t *testing.T) {
	b := newBody(1, 100, 650, 0, 0, 60, 0, 0)
	sliceBody(b, 0, 8)

	b.Slice.Left.OffY = 100 // absolute 750, below threshold
	b.Slice.Right.OffY = 0  // absolute 650, still visible-ish

	if halvesBelowBottom(b, 600) {
		t.Error("expired with one half still above threshold")
	}

	b.Slice.Right.OffY = 60 // absolute 710
	if !halvesBelowBottom(b, 600) {
		t.Error("not expired with both halves below threshold")
	}

	whole := newBody(2, 100, 900, 0, 0, 60, 0, 0)
	if halvesBelowBottom(whole, 600) {
		t.Error("halvesBelowBottom true for an unsliced body")
	}
}
