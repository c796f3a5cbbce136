package game

import "math"

// PointToSegmentDistance returns the minimum distance from point (px, py)
// to the segment (x1, y1)-(x2, y2). The projection parameter is clamped to
// [0, 1] so points beyond either endpoint measure against the nearer
// endpoint. A zero-length segment degenerates to plain point distance
// (guards the squared-length denominator).
func PointToSegmentDistance(px, py, x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1

	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(px-x1, py-y1)
	}

	t := ((px-x1)*dx + (py-y1)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	nearX := x1 + t*dx
	nearY := y1 + t*dy
	return math.Hypot(px-nearX, py-nearY)
}
