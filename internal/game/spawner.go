package game

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"fruit-rush/internal/config"
)

// spawner rolls spawn batches and delays. It owns the session RNG and the
// body sequence counter; the engine owns the self-rescheduling timer that
// calls into it (see Engine.scheduleSpawn).
type spawner struct {
	rng    *rand.Rand
	tuning config.Tuning
	width  float64
	height float64
	seq    uint64
}

func newSpawner(rng *rand.Rand, tuning config.Tuning, width, height float64) *spawner {
	return &spawner{
		rng:    rng,
		tuning: tuning,
		width:  width,
		height: height,
	}
}

// difficultyAt computes the session difficulty for a given elapsed time:
// 1 + (elapsedSeconds/10) * rate, capped at max. Monotonic non-decreasing
// until capped; never scales gravity, only spawn pressure and throw force.
func difficultyAt(elapsedSeconds, rate, max float64) float64 {
	d := 1 + (elapsedSeconds/10)*rate
	if d > max {
		d = max
	}
	return d
}

// nextDelay rolls the delay until the next spawn batch:
// max(baseDelay/difficulty, minDelay) + u*500ms.
func (s *spawner) nextDelay(difficulty float64) time.Duration {
	ms := s.tuning.BaseSpawnDelayMs / difficulty
	if ms < s.tuning.MinSpawnDelayMs {
		ms = s.tuning.MinSpawnDelayMs
	}
	ms += s.rng.Float64() * 500
	return time.Duration(ms * float64(time.Millisecond))
}

// batch rolls one spawn batch: min(1+floor(u*difficulty), maxFruitsPerSpawn)
// bodies launched from just below the bottom edge. Horizontal positions are
// drawn uniformly within the centered spawn fraction of the playfield and
// sorted ascending so spawn points never visually cross (cosmetic ordering,
// kept deliberately).
func (s *spawner) batch(difficulty float64) []*Body {
	count := 1 + int(s.rng.Float64()*difficulty)
	if count > s.tuning.MaxFruitsPerSpawn {
		count = s.tuning.MaxFruitsPerSpawn
	}

	span := s.width * s.tuning.SpawnWidthFrac
	left := (s.width - span) / 2

	xs := make([]float64, count)
	for i := range xs {
		xs[i] = left + s.rng.Float64()*span
	}
	sort.Float64s(xs)

	bodies := make([]*Body, 0, count)
	for _, x := range xs {
		bodies = append(bodies, s.roll(x, difficulty))
	}
	return bodies
}

// roll creates a single body at spawn x with randomized kinematics.
// Launch speed grows with sqrt(difficulty) so variance stays bounded at
// high difficulty.
func (s *spawner) roll(x, difficulty float64) *Body {
	s.seq++

	size := s.tuning.FruitSize
	special := s.rng.Float64() < s.tuning.SpecialChance
	var kind FruitKind
	if special {
		kind = pickSpecial(s.rng.Float64() * totalSpawnWeight())
		size = kind.RenderSize
	}

	vy := s.tuning.BaseThrowForce - s.rng.Float64()*s.tuning.ExtraForce*math.Sqrt(difficulty)
	vx := (s.rng.Float64()*2 - 1) * s.tuning.MaxSpeedX
	rotation := s.rng.Float64() * 2 * math.Pi
	rotSpeed := (s.rng.Float64()*2 - 1) * s.tuning.MaxRotSpeed

	b := newBody(s.seq, x, s.height, vx, vy, size, rotation, rotSpeed)
	b.Special = special
	b.Kind = kind
	return b
}
