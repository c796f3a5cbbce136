package game

import (
	"log"
	"math/rand"
	"sync"
	"time"

	"fruit-rush/internal/config"
)

// FixedStep is the physics timestep. Velocities are tuned against a 60Hz
// reference, so the default step integrates with scale factor 1.
const FixedStep = time.Second / 60

// maxFrameDelta caps the real-time delta fed to the accumulator so a
// suspended process resuming does not spiral through thousands of catch-up
// steps. Three steps' worth: a 40ms frame hiccup still drains exactly, a
// multi-second stall does not.
const maxFrameDelta = 3 * FixedStep

// InitialLives is the number of lives at session start.
const InitialLives = 3

// Phase is the session state machine: Idle → Active → GameOver → Active.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseActive
	PhaseGameOver
)

// String returns the wire name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseGameOver:
		return "game_over"
	default:
		return "idle"
	}
}

// PointerKind tags a normalized pointer sample with its gesture transition.
type PointerKind string

const (
	PointerStart  PointerKind = "start"
	PointerMove   PointerKind = "move"
	PointerEnd    PointerKind = "end"
	PointerCancel PointerKind = "cancel"
)

// Summary is the final report raised once when a session ends.
type Summary struct {
	Score        int     `json:"score"`
	FruitsSliced int     `json:"fruitsSliced"`
	ElapsedSec   float64 `json:"elapsedSec"`
}

// EngineConfig bundles everything the engine needs at construction.
type EngineConfig struct {
	Playfield config.PlayfieldConfig
	Tuning    config.Tuning
	Limits    config.ResourceLimits
}

// Engine is the simulation core: fixed-timestep physics, trail-vs-body
// slice detection, difficulty-driven spawning and session scoring. A frame
// ticker drives it at render rate; a fixed-step accumulator keeps physics
// deterministic regardless of that rate.
type Engine struct {
	mu  sync.Mutex
	cfg EngineConfig

	// Frame loop
	running   bool
	ticker    *time.Ticker
	stopChan  chan struct{}
	lastFrame time.Time
	acc       time.Duration
	tickCount uint64

	// Session state
	phase        Phase
	score        int
	lives        int
	fruitsSliced int
	elapsed      float64 // Seconds of session time
	difficulty   float64

	bodies []*Body
	trail  *Trail
	texts  []*ScoreText

	// Spawning. spawnGen makes timer cancellation atomic with the phase
	// check: a fire whose generation is stale is a no-op, so no stray
	// batch lands after game over or a restart double-schedule.
	spawner    *spawner
	spawnGen   uint64
	spawnTimer *time.Timer

	rng          *rand.Rand
	snapshotPool *SnapshotPool
	eventLog     *EventLog

	// Event callbacks
	onGameOver   func(Summary)
	tickObserver func(time.Duration)
}

// NewEngine creates an engine in the Idle phase. No goroutines run until
// Start is called.
func NewEngine(cfg EngineConfig) *Engine {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	return &Engine{
		cfg:          cfg,
		phase:        PhaseIdle,
		lives:        InitialLives,
		difficulty:   1,
		trail:        NewTrail(cfg.Tuning.TrailLength),
		spawner:      newSpawner(rng, cfg.Tuning, float64(cfg.Playfield.Width), float64(cfg.Playfield.Height)),
		rng:          rng,
		snapshotPool: NewSnapshotPool(cfg.Limits),
		eventLog:     NewEventLog(),
		stopChan:     make(chan struct{}),
	}
}

// Start begins the frame loop at the configured render rate.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.mu.Unlock()

	e.ticker = time.NewTicker(time.Second / time.Duration(e.cfg.Playfield.FPS))

	go func() {
		for {
			select {
			case <-e.ticker.C:
				e.OnFrame(time.Now())
			case <-e.stopChan:
				return
			}
		}
	}()

	log.Printf("🍉 Engine started: %d FPS frames, %.2fms fixed step", e.cfg.Playfield.FPS, float64(FixedStep)/float64(time.Millisecond))
}

// Stop halts the frame loop and cancels any pending spawn.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return
	}

	e.running = false
	e.cancelSpawnLocked()
	if e.ticker != nil {
		e.ticker.Stop()
	}
	close(e.stopChan)
	log.Println("🛑 Engine stopped")
}

// StartSession starts a new session, or restarts after game over. All
// session state resets: score, lives, bodies, difficulty, trail.
func (e *Engine) StartSession() {
	e.mu.Lock()
	defer e.mu.Unlock()

	// A restart while Active must orphan the previous timer chain, else
	// its next fire would pass the generation check and double-schedule.
	e.cancelSpawnLocked()

	e.phase = PhaseActive
	e.score = 0
	e.lives = InitialLives
	e.fruitsSliced = 0
	e.elapsed = 0
	e.difficulty = 1
	e.tickCount = 0
	e.acc = 0
	e.lastFrame = time.Time{}
	e.bodies = e.bodies[:0]
	e.texts = e.texts[:0]
	e.trail.Clear()

	e.eventLog.EmitSimple(EventTypeSessionStart, e.tickCount, SessionStartPayload{
		DeviceClass: e.cfg.Tuning.DeviceClass,
		Gravity:     e.cfg.Tuning.Gravity,
		ThrowForce:  e.cfg.Tuning.BaseThrowForce,
	})

	// First batch flies immediately; the timer chain takes over from there.
	e.spawnBatchLocked()
	e.scheduleSpawnLocked()

	log.Printf("🎮 Session started (%s tuning)", e.cfg.Tuning.DeviceClass)
}

// RecordPointer feeds one normalized input sample into the trail buffer.
// Driven by pointer events, not by the fixed-step loop: several samples can
// land between two physics ticks and the next collision pass consumes them
// all.
func (e *Engine) RecordPointer(kind PointerKind, x, y float64, now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch kind {
	case PointerStart:
		e.trail.Clear()
		e.trail.Record(x, y, now)
	case PointerMove:
		e.trail.Record(x, y, now)
	case PointerEnd, PointerCancel:
		e.trail.Clear()
	}
}

// OnFrame advances the simulation for one render frame: the real-time
// delta (clamped to maxFrameDelta) drains through the fixed-step
// accumulator in whole steps, the remainder carries over, and one snapshot
// is produced after the steps settle.
func (e *Engine) OnFrame(now time.Time) {
	start := time.Now()

	e.mu.Lock()

	if !e.lastFrame.IsZero() && e.phase == PhaseActive {
		delta := now.Sub(e.lastFrame)
		if delta > maxFrameDelta {
			delta = maxFrameDelta
		}
		if delta > 0 {
			e.acc += delta
			for e.acc >= FixedStep {
				e.fixedUpdate(FixedStep.Seconds())
				e.acc -= FixedStep
			}
		}
	}
	e.lastFrame = now

	e.produceSnapshotLocked()
	e.mu.Unlock()

	if e.tickObserver != nil {
		e.tickObserver(time.Since(start))
	}
}

// fixedUpdate runs exactly one deterministic physics step. Caller holds the
// lock and guarantees phase == PhaseActive.
func (e *Engine) fixedUpdate(dt float64) {
	e.tickCount++
	e.elapsed += dt
	e.difficulty = difficultyAt(e.elapsed, e.cfg.Tuning.DifficultyRate, e.cfg.Tuning.MaxDifficulty)

	scale := dt * 60
	width := float64(e.cfg.Playfield.Width)
	height := float64(e.cfg.Playfield.Height)

	// Integrate, then boundary-handle, same tick.
	for _, b := range e.bodies {
		integrateBody(b, scale, e.cfg.Tuning.Gravity)
		reflectWalls(b, width, e.cfg.Tuning.Restitution)
	}

	// Collision pass over a stable copy of whatever trail state is
	// current at this tick.
	pts := e.trail.Points()
	for _, b := range e.bodies {
		if !testAndSlice(b, pts, e.cfg.Tuning.HitRadius, e.cfg.Tuning.SliceForce) {
			continue
		}
		e.applySliceLocked(b)
	}

	// Expiry: in-place filtering, lives only move on unsliced escapes.
	n := 0
	for _, b := range e.bodies {
		if b.Sliced() {
			if halvesBelowBottom(b, height) {
				continue
			}
		} else if belowBottom(b, height) {
			e.lives--
			e.eventLog.EmitSimple(EventTypeLifeLost, e.tickCount, LifeLostPayload{
				BodyID: b.ID,
				Lives:  e.lives,
			})
			continue
		}
		e.bodies[n] = b
		n++
	}
	e.bodies = e.bodies[:n]

	// Age floating texts, in-place.
	n = 0
	for _, t := range e.texts {
		if t.update(dt) {
			e.texts[n] = t
			n++
		}
	}
	e.texts = e.texts[:n]

	if e.lives <= 0 {
		e.lives = 0
		e.gameOverLocked()
	}
}

// applySliceLocked scores a just-sliced body and emits its feedback.
func (e *Engine) applySliceLocked(b *Body) {
	points := b.PointValue()
	e.score += points
	e.fruitsSliced++

	if len(e.texts) < e.cfg.Limits.MaxTexts {
		e.texts = append(e.texts, newScoreText(b.CenterX(), b.CenterY(), points))
	}

	e.eventLog.EmitSimple(EventTypeSlice, e.tickCount, SlicePayload{
		BodyID:     b.ID,
		Kind:       b.Kind.Name,
		Points:     points,
		SliceAngle: b.Slice.Angle,
		Score:      e.score,
	})
}

// gameOverLocked transitions Active → GameOver exactly once: spawning
// halts, the state freezes, and the final summary is reported.
func (e *Engine) gameOverLocked() {
	if e.phase != PhaseActive {
		return
	}
	e.phase = PhaseGameOver
	e.cancelSpawnLocked()

	summary := Summary{
		Score:        e.score,
		FruitsSliced: e.fruitsSliced,
		ElapsedSec:   e.elapsed,
	}

	e.eventLog.EmitSimple(EventTypeGameOver, e.tickCount, GameOverPayload{
		Score:        summary.Score,
		FruitsSliced: summary.FruitsSliced,
		ElapsedSec:   summary.ElapsedSec,
	})

	log.Printf("💀 Game over: %d points, %d fruits in %.1fs", summary.Score, summary.FruitsSliced, summary.ElapsedSec)

	if e.onGameOver != nil {
		go e.onGameOver(summary)
	}
}

// scheduleSpawnLocked arms the single in-flight spawn timer.
func (e *Engine) scheduleSpawnLocked() {
	gen := e.spawnGen
	delay := e.spawner.nextDelay(e.difficulty)
	e.spawnTimer = time.AfterFunc(delay, func() {
		e.spawnFired(gen)
	})
}

// cancelSpawnLocked invalidates any pending timer fire. Bumping the
// generation is what makes cancellation atomic with the phase check; the
// timer Stop is best-effort cleanup.
func (e *Engine) cancelSpawnLocked() {
	e.spawnGen++
	if e.spawnTimer != nil {
		e.spawnTimer.Stop()
		e.spawnTimer = nil
	}
}

// spawnFired is the timer callback: spawn one batch and re-arm.
func (e *Engine) spawnFired(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	// A stale generation means the session ended or restarted after this
	// fire was scheduled.
	if e.phase != PhaseActive || gen != e.spawnGen {
		return
	}

	e.spawnBatchLocked()
	e.scheduleSpawnLocked()
}

// spawnBatchLocked rolls a batch and registers its bodies.
func (e *Engine) spawnBatchLocked() {
	batch := e.spawner.batch(e.difficulty)

	var specials []string
	for _, b := range batch {
		if len(e.bodies) >= e.cfg.Limits.MaxBodies {
			break
		}
		e.bodies = append(e.bodies, b)
		if b.Special {
			specials = append(specials, b.ID)
		}
	}

	e.eventLog.EmitSimple(EventTypeSpawn, e.tickCount, SpawnPayload{
		Count:      len(batch),
		Difficulty: e.difficulty,
		SpecialIDs: specials,
	})
}

// produceSnapshotLocked publishes the current state through the lock-free
// triple buffer.
func (e *Engine) produceSnapshotLocked() {
	snap := e.snapshotPool.AcquireWrite()
	snap.TickNumber = e.tickCount
	snap.Phase = e.phase.String()
	snap.Score = e.score
	snap.Lives = e.lives
	snap.FruitsSliced = e.fruitsSliced
	snap.Difficulty = e.difficulty
	snap.DifficultyPct = int((e.difficulty - 1) * 100)
	snap.ElapsedSec = e.elapsed

	for _, b := range e.bodies {
		if len(snap.Bodies) >= e.cfg.Limits.MaxBodies {
			break
		}
		bs := BodySnapshot{
			ID:       b.ID,
			X:        b.X,
			Y:        b.Y,
			W:        b.W,
			H:        b.H,
			Rotation: b.Rotation,
			Special:  b.Special,
		}
		if b.Special {
			bs.Kind = b.Kind.Name
			bs.Color = b.Kind.Color
		}
		if b.Slice != nil {
			bs.Sliced = true
			bs.SliceAngle = b.Slice.Angle
			bs.Left = HalfSnapshot{OffX: b.Slice.Left.OffX, OffY: b.Slice.Left.OffY, Rotation: b.Slice.Left.Rotation}
			bs.Right = HalfSnapshot{OffX: b.Slice.Right.OffX, OffY: b.Slice.Right.OffY, Rotation: b.Slice.Right.Rotation}
		}
		snap.Bodies = append(snap.Bodies, bs)
	}

	for _, p := range e.trail.Points() {
		if len(snap.Trail) >= e.cfg.Limits.MaxTrailPoints {
			break
		}
		snap.Trail = append(snap.Trail, TrailPointSnapshot{X: p.X, Y: p.Y})
	}

	for _, t := range e.texts {
		if len(snap.Texts) >= e.cfg.Limits.MaxTexts {
			break
		}
		snap.Texts = append(snap.Texts, TextSnapshot{
			X:     t.X,
			Y:     t.Y,
			Value: t.Value,
			Color: t.Color,
			Alpha: t.alpha(),
		})
	}

	e.snapshotPool.PublishWrite()
}

// GetSnapshot returns the latest immutable snapshot for lock-free reading.
// This is the preferred accessor for HTTP handlers and the renderer.
func (e *Engine) GetSnapshot() *GameSnapshot {
	return e.snapshotPool.AcquireRead()
}

// Phase returns the current session phase.
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// SetCallbacks sets event callbacks. The game-over callback fires once per
// session, from its own goroutine.
func (e *Engine) SetCallbacks(onGameOver func(Summary)) {
	e.onGameOver = onGameOver
}

// SetTickObserver installs a per-frame duration observer (metrics hook).
func (e *Engine) SetTickObserver(fn func(time.Duration)) {
	e.tickObserver = fn
}

// StartEventLog initializes the event logging system
func (e *Engine) StartEventLog(filePath string) error {
	return e.eventLog.Start(filePath)
}

// StopEventLog gracefully stops the event logging system
func (e *Engine) StopEventLog() {
	e.eventLog.Stop()
}

// GetEventLogStats returns event log statistics for monitoring
func (e *Engine) GetEventLogStats() map[string]interface{} {
	return e.eventLog.GetStats()
}
