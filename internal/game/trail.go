package game

import "time"

// TrailPoint is a single timestamped pointer sample in canvas coordinates.
// Points are immutable once recorded.
type TrailPoint struct {
	X, Y float64
	T    time.Time
}

// Trail is the bounded ordered history of recent pointer positions used for
// slice detection. Input events append; the collision engine consumes. The
// buffer is trimmed from the front past maxLen and cleared entirely when the
// gesture ends or cancels.
type Trail struct {
	points []TrailPoint
	maxLen int
}

// NewTrail creates a trail buffer holding at most maxLen samples.
func NewTrail(maxLen int) *Trail {
	if maxLen < 2 {
		maxLen = 2
	}
	return &Trail{
		points: make([]TrailPoint, 0, maxLen),
		maxLen: maxLen,
	}
}

// Record appends a pointer sample, evicting the oldest points beyond the
// configured maximum length.
func (t *Trail) Record(x, y float64, now time.Time) {
	t.points = append(t.points, TrailPoint{X: x, Y: y, T: now})
	if over := len(t.points) - t.maxLen; over > 0 {
		t.points = append(t.points[:0], t.points[over:]...)
	}
}

// Clear empties the buffer. Called on gesture end/cancel.
func (t *Trail) Clear() {
	t.points = t.points[:0]
}

// Len returns the number of recorded samples.
func (t *Trail) Len() int {
	return len(t.points)
}

// Points returns a stable copy of the recorded samples, oldest first.
// Consumers iterate the copy so interleaved Record calls never mutate a
// sequence mid-iteration.
func (t *Trail) Points() []TrailPoint {
	if len(t.points) == 0 {
		return nil
	}
	out := make([]TrailPoint, len(t.points))
	copy(out, t.points)
	return out
}
