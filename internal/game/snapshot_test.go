package game

import (
	"testing"

	"fruit-rush/internal/config"
)

// TestSnapshotPoolRoundtrip verifies published writes become visible to
// readers with advancing sequence numbers
func TestSnapshotPoolRoundtrip(t *testing.T) {
	pool := NewSnapshotPool(config.DefaultLimits())

	w := pool.AcquireWrite()
	w.Score = 5
	w.Phase = "active"
	w.Bodies = append(w.Bodies, BodySnapshot{ID: "fruit_1"})
	pool.PublishWrite()

	r := pool.AcquireRead()
	if r.Score != 5 || r.Phase != "active" || len(r.Bodies) != 1 {
		t.Errorf("read snapshot = %+v, want the published write", r)
	}
	firstSeq := r.Sequence

	w = pool.AcquireWrite()
	w.Score = 9
	pool.PublishWrite()

	r = pool.AcquireRead()
	if r.Score != 9 {
		t.Errorf("Score = %d, want 9 from the second publish", r.Score)
	}
	if r.Sequence <= firstSeq {
		t.Errorf("Sequence = %d, want > %d", r.Sequence, firstSeq)
	}
}

// TestSnapshotPoolResetKeepsCapacity verifies acquired slots come back
// empty without reallocating
func TestSnapshotPoolResetKeepsCapacity(t *testing.T) {
	limits := config.DefaultLimits()
	pool := NewSnapshotPool(limits)

	// Cycle through all three buffers once, filling each
	for i := 0; i < 3; i++ {
		w := pool.AcquireWrite()
		w.Bodies = append(w.Bodies, BodySnapshot{ID: "x"})
		w.Trail = append(w.Trail, TrailPointSnapshot{X: 1})
		pool.PublishWrite()
	}

	w := pool.AcquireWrite()
	if len(w.Bodies) != 0 || len(w.Trail) != 0 || len(w.Texts) != 0 {
		t.Error("acquired slot not reset")
	}
	if cap(w.Bodies) != limits.MaxBodies {
		t.Errorf("Bodies capacity = %d, want preallocated %d", cap(w.Bodies), limits.MaxBodies)
	}
}

// TestSnapshotPoolReadBeforePublish verifies a reader never observes a
// half-written buffer
func TestSnapshotPoolReadBeforePublish(t *testing.T) {
	pool := NewSnapshotPool(config.DefaultLimits())

	w := pool.AcquireWrite()
	w.Score = 1
	pool.PublishWrite()
	published := pool.AcquireRead()

	// Start a second write without publishing
	w2 := pool.AcquireWrite()
	w2.Score = 999

	if r := pool.AcquireRead(); r != published {
		t.Error("reader advanced to an unpublished buffer")
	}
}
