package game

import "math"

// Half rotation speeds are fixed on slice, independent of the parent's
// prior spin. Left spins counter-clockwise, right clockwise.
const (
	leftHalfRotSpeed  = -0.1
	rightHalfRotSpeed = 0.1
)

// testAndSlice walks consecutive trail point pairs oldest-first and cuts
// the body on the first segment whose distance to the body center is below
// the hit radius. Returns true when a slice happened this call.
//
// Already-sliced bodies are no-ops, so the false→true transition happens
// exactly once per body. Trails with fewer than two points trivially miss.
// First qualifying segment wins; there is no distance minimization across
// the whole trail (only observable when the trail self-intersects within a
// single tick, an accepted edge case).
func testAndSlice(b *Body, pts []TrailPoint, regularRadius, sliceForce float64) bool {
	if b.Slice != nil || len(pts) < 2 {
		return false
	}

	radius := b.hitRadius(regularRadius)
	cx, cy := b.CenterX(), b.CenterY()

	for i := 0; i+1 < len(pts); i++ {
		p1, p2 := pts[i], pts[i+1]
		if PointToSegmentDistance(cx, cy, p1.X, p1.Y, p2.X, p2.Y) >= radius {
			continue
		}

		angle := math.Atan2(p2.Y-p1.Y, p2.X-p1.X)
		sliceBody(b, angle, sliceForce)
		return true
	}

	return false
}

// sliceBody converts a whole body into the sliced variant. The parent
// velocity splits symmetrically around the axis perpendicular to the slice
// direction: each half keeps the parent velocity plus-or-minus the
// perpendicular kick. Both halves start at the parent rotation.
func sliceBody(b *Body, angle, sliceForce float64) {
	perp := angle + math.Pi/2
	kickX := math.Cos(perp) * sliceForce
	kickY := math.Sin(perp) * sliceForce

	b.Slice = &SliceState{
		Angle: angle,
		Left: Half{
			VX:       b.VX - kickX,
			VY:       b.VY - kickY,
			Rotation: b.Rotation,
			RotSpeed: leftHalfRotSpeed,
		},
		Right: Half{
			VX:       b.VX + kickX,
			VY:       b.VY + kickY,
			Rotation: b.Rotation,
			RotSpeed: rightHalfRotSpeed,
		},
	}
}
