package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"fruit-rush/internal/game"

	"github.com/gorilla/websocket"
)

type recordedSample struct {
	kind game.PointerKind
	x, y float64
}

// recordingSink captures pointer samples for assertions.
type recordingSink struct {
	mu      sync.Mutex
	samples []recordedSample
}

func (s *recordingSink) RecordPointer(kind game.PointerKind, x, y float64, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.samples = append(s.samples, recordedSample{kind: kind, x: x, y: y})
}

func (s *recordingSink) snapshot() []recordedSample {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]recordedSample, len(s.samples))
	copy(out, s.samples)
	return out
}

func dialHub(t *testing.T, srv *httptest.Server, origin string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	header := http.Header{}
	if origin != "" {
		header.Set("Origin", origin)
	}
	return websocket.DefaultDialer.Dial(url, header)
}

// TestWebSocketPointerInput verifies inbound samples reach the input sink
// with their gesture kinds mapped
func TestWebSocketPointerInput(t *testing.T) {
	sink := &recordingSink{}
	hub := NewWebSocketHub(sink)
	go hub.Run()

	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	defer srv.Close()

	conn, _, err := dialHub(t, srv, "http://localhost:3000")
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	messages := []string{
		`{"type":"start","x":100,"y":200}`,
		`{"type":"move","x":150,"y":210}`,
		`{"type":"end","x":0,"y":0}`,
		`{"type":"teleport","x":1,"y":1}`, // Unknown type is dropped
		`not json`,                        // Garbage is dropped
	}
	for _, m := range messages {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(m)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	deadline := time.Now().Add(2 * time.Second)
	var got []recordedSample
	for time.Now().Before(deadline) {
		got = sink.snapshot()
		if len(got) >= 3 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	if len(got) != 3 {
		t.Fatalf("recorded %d samples, want 3", len(got))
	}
	want := []recordedSample{
		{kind: game.PointerStart, x: 100, y: 200},
		{kind: game.PointerMove, x: 150, y: 210},
		{kind: game.PointerEnd, x: 0, y: 0},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

// TestWebSocketRejectsBadOrigin verifies the upgrade fails for origins
// outside the allowlist
func TestWebSocketRejectsBadOrigin(t *testing.T) {
	hub := NewWebSocketHub(&recordingSink{})
	go hub.Run()

	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	defer srv.Close()

	conn, resp, err := dialHub(t, srv, "https://evil.example.com")
	if err == nil {
		conn.Close()
		t.Fatal("dial succeeded with a disallowed origin")
	}
	if resp != nil && resp.StatusCode != http.StatusForbidden {
		t.Errorf("handshake status = %d, want 403", resp.StatusCode)
	}
}

// TestWebSocketClientCount verifies register/unregister bookkeeping
func TestWebSocketClientCount(t *testing.T) {
	hub := NewWebSocketHub(&recordingSink{})
	go hub.Run()

	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	defer srv.Close()

	conn, _, err := dialHub(t, srv, "http://localhost:3000")
	if err != nil {
		t.Fatalf("dial: %v", err)
	}

	waitFor := func(want int) {
		t.Helper()
		deadline := time.Now().Add(2 * time.Second)
		for time.Now().Before(deadline) {
			if hub.ClientCount() == want {
				return
			}
			time.Sleep(10 * time.Millisecond)
		}
		t.Fatalf("ClientCount = %d, want %d", hub.ClientCount(), want)
	}

	waitFor(1)
	conn.Close()
	waitFor(0)
}

// TestWebSocketBroadcastDelivery verifies published broadcasts reach a
// connected client
func TestWebSocketBroadcastDelivery(t *testing.T) {
	hub := NewWebSocketHub(&recordingSink{})
	go hub.Run()

	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	defer srv.Close()

	conn, _, err := dialHub(t, srv, "http://localhost:3000")
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Wait until the hub has registered the client before broadcasting
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	hub.Broadcast("game:snapshot", map[string]int{"score": 30})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read broadcast: %v", err)
	}
	if !strings.Contains(string(msg), `"event":"game:snapshot"`) {
		t.Errorf("broadcast frame = %s, want a game:snapshot event", msg)
	}
}

// TestSnapshotDeltas verifies counter increments follow observed snapshot
// changes and the zero-value snapshot before the first frame seeds the
// baseline instead of counting as lost lives
func TestSnapshotDeltas(t *testing.T) {
	var d snapshotDeltas

	steps := []struct {
		name          string
		sliced, lives int
		wantSlices    int
		wantLivesLost int
	}{
		{"zero-value snapshot seeds baseline", 0, 0, 0, 0},
		{"first real frame after seeding", 0, 3, 0, 0},
		{"two slices land", 2, 3, 2, 0},
		{"one life lost", 2, 2, 0, 1},
		{"restart resets downward, skipped", 0, 3, 0, 0},
		{"counting resumes after restart", 1, 2, 1, 1},
	}

	for _, s := range steps {
		snap := &game.GameSnapshot{FruitsSliced: s.sliced, Lives: s.lives}
		slices, livesLost := d.observe(snap)
		if slices != s.wantSlices || livesLost != s.wantLivesLost {
			t.Errorf("%s: observe = (%d, %d), want (%d, %d)",
				s.name, slices, livesLost, s.wantSlices, s.wantLivesLost)
		}
	}
}
