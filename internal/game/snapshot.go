package game

import (
	"sync/atomic"
	"time"

	"fruit-rush/internal/config"
)

// HalfSnapshot is an immutable copy of one half of a sliced body.
type HalfSnapshot struct {
	OffX     float64 `json:"offX"`
	OffY     float64 `json:"offY"`
	Rotation float64 `json:"rotation"`
}

// BodySnapshot is an immutable copy of a live body for rendering.
// Uses value types (not pointers) to ensure immutability.
type BodySnapshot struct {
	ID       string  `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	W        float64 `json:"w"`
	H        float64 `json:"h"`
	Rotation float64 `json:"rotation"`

	Special bool   `json:"special"`
	Kind    string `json:"kind,omitempty"`
	Color   string `json:"color,omitempty"`

	Sliced     bool         `json:"sliced"`
	SliceAngle float64      `json:"sliceAngle,omitempty"`
	Left       HalfSnapshot `json:"left,omitempty"`
	Right      HalfSnapshot `json:"right,omitempty"`
}

// TrailPointSnapshot is a single pointer sample for rendering.
type TrailPointSnapshot struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TextSnapshot is an immutable floating score text.
type TextSnapshot struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Value int     `json:"value"`
	Color string  `json:"color"`
	Alpha float64 `json:"alpha"`
}

// GameSnapshot is a complete immutable simulation state for rendering.
// All slices are pre-allocated and capped.
type GameSnapshot struct {
	Sequence   uint64    `json:"sequence"`  // Monotonic sequence for ordering
	Timestamp  time.Time `json:"timestamp"` // When the snapshot was created
	TickNumber uint64    `json:"tickNumber"`

	Phase         string  `json:"phase"`
	Score         int     `json:"score"`
	Lives         int     `json:"lives"`
	FruitsSliced  int     `json:"fruitsSliced"`
	Difficulty    float64 `json:"difficulty"`
	DifficultyPct int     `json:"difficultyPct"` // floor((difficulty-1)*100); 0 hides the HUD indicator
	ElapsedSec    float64 `json:"elapsedSec"`

	Bodies []BodySnapshot       `json:"bodies"`
	Trail  []TrailPointSnapshot `json:"trail"`
	Texts  []TextSnapshot       `json:"texts"`
}

// SnapshotPool pre-allocates snapshots to avoid GC pressure.
// Uses triple buffering for lock-free producer/consumer: the tick goroutine
// writes, HTTP handlers / the broadcast loop / the renderer read.
type SnapshotPool struct {
	snapshots [3]GameSnapshot // Triple buffer
	limits    config.ResourceLimits
	writeIdx  uint32 // atomic - producer index
	readIdx   uint32 // atomic - consumer index
	sequence  uint64 // atomic - monotonic sequence
}

// NewSnapshotPool creates a pool with pre-allocated slices
func NewSnapshotPool(limits config.ResourceLimits) *SnapshotPool {
	pool := &SnapshotPool{limits: limits}

	for i := 0; i < 3; i++ {
		pool.snapshots[i] = GameSnapshot{
			Bodies: make([]BodySnapshot, 0, limits.MaxBodies),
			Trail:  make([]TrailPointSnapshot, 0, limits.MaxTrailPoints),
			Texts:  make([]TextSnapshot, 0, limits.MaxTexts),
		}
	}

	return pool
}

// AcquireWrite gets the next write slot (producer only, called from the tick).
// Returns a snapshot with reset slices but preserved capacity.
func (p *SnapshotPool) AcquireWrite() *GameSnapshot {
	idx := atomic.AddUint32(&p.writeIdx, 1) % 3
	snap := &p.snapshots[idx]

	snap.Bodies = snap.Bodies[:0]
	snap.Trail = snap.Trail[:0]
	snap.Texts = snap.Texts[:0]

	snap.Sequence = atomic.AddUint64(&p.sequence, 1)
	snap.Timestamp = time.Now()

	return snap
}

// PublishWrite marks write complete and advances the read pointer.
// Called after the snapshot is fully populated.
func (p *SnapshotPool) PublishWrite() {
	atomic.StoreUint32(&p.readIdx, atomic.LoadUint32(&p.writeIdx))
}

// AcquireRead gets the latest complete snapshot (consumers only).
func (p *SnapshotPool) AcquireRead() *GameSnapshot {
	idx := atomic.LoadUint32(&p.readIdx) % 3
	return &p.snapshots[idx]
}
