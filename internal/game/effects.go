package game

// ScoreText is the floating score feedback emitted at a slice. The core
// only ages it; drawing is the renderer's problem.
type ScoreText struct {
	X, Y     float64
	Value    int
	Color    string
	Age      float64 // Seconds since emission
	Lifespan float64 // Seconds until removal
}

// scoreTextLifespan is how long a floating score stays alive.
const scoreTextLifespan = 0.8

// newScoreText creates a floating score at the slice position with the
// color tier derived from the awarded value.
func newScoreText(x, y float64, value int) *ScoreText {
	return &ScoreText{
		X:        x,
		Y:        y,
		Value:    value,
		Color:    ScoreColor(value),
		Lifespan: scoreTextLifespan,
	}
}

// update ages the text by dt seconds and reports whether it stays alive.
// The text drifts upward slightly while fading.
func (t *ScoreText) update(dt float64) bool {
	t.Age += dt
	t.Y -= 30 * dt
	return t.Age < t.Lifespan
}

// alpha returns the remaining opacity in [0, 1].
func (t *ScoreText) alpha() float64 {
	a := 1 - t.Age/t.Lifespan
	if a < 0 {
		a = 0
	}
	return a
}
