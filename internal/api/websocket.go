package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"fruit-rush/internal/game"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

const (
	// MaxWSConnectionsTotal is the maximum number of WebSocket connections allowed
	MaxWSConnectionsTotal = 500

	// MaxWSConnectionsPerIP is the maximum WebSocket connections per IP
	MaxWSConnectionsPerIP = 10

	// Pointer samples per second accepted from one connection. High-rate
	// mice report around 125Hz; anything past this is flood, not gesture.
	maxInputEventsPerSec = 250
	inputEventBurst      = 50
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")

		if IsAllowedOrigin(origin) {
			return true
		}

		log.Printf("⚠️ WebSocket connection rejected from origin: %s", origin)
		RecordConnectionRejected("origin")
		return false
	},
}

// pointerMessage is the inbound wire format: one normalized pointer sample
// in canvas-local coordinates, tagged with its gesture transition.
type pointerMessage struct {
	Type string  `json:"type"` // start | move | end | cancel
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// InputSink receives normalized pointer samples. The game engine satisfies
// this; tests substitute a recorder.
type InputSink interface {
	RecordPointer(kind game.PointerKind, x, y float64, now time.Time)
}

// wsClient tracks a WebSocket connection with its source IP
type wsClient struct {
	conn *websocket.Conn
	ip   string
}

// WebSocketHub manages all WebSocket connections: pointer samples in,
// snapshot broadcasts out.
type WebSocketHub struct {
	clients    map[*websocket.Conn]*wsClient
	broadcast  chan []byte
	register   chan *wsClient
	unregister chan *websocket.Conn
	mu         sync.RWMutex

	input InputSink

	// Connection limiting per IP
	wsLimiter *WebSocketRateLimiter
}

// NewWebSocketHub creates a new hub feeding the given input sink.
func NewWebSocketHub(input InputSink) *WebSocketHub {
	return &WebSocketHub{
		clients:    make(map[*websocket.Conn]*wsClient),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *wsClient),
		unregister: make(chan *websocket.Conn),
		input:      input,
		wsLimiter:  NewWebSocketRateLimiter(MaxWSConnectionsPerIP),
	}
}

// Run starts the hub
func (h *WebSocketHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.conn] = client
			h.mu.Unlock()

			count := h.ClientCount()
			log.Printf("📱 Client connected from %s (%d total)", client.ip, count)
			UpdateWSConnections(count)

		case conn := <-h.unregister:
			h.mu.Lock()
			if client, ok := h.clients[conn]; ok {
				h.wsLimiter.Release(client.ip)
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()

			count := h.ClientCount()
			log.Printf("📱 Client disconnected (%d remaining)", count)
			UpdateWSConnections(count)

		case message := <-h.broadcast:
			h.mu.RLock()
			var dead []*websocket.Conn
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					dead = append(dead, conn)
				}
			}
			h.mu.RUnlock()

			for _, conn := range dead {
				h.mu.Lock()
				if client, ok := h.clients[conn]; ok {
					h.wsLimiter.Release(client.ip)
					delete(h.clients, conn)
					conn.Close()
				}
				h.mu.Unlock()
			}
			IncrementWSMessages()
		}
	}
}

// Broadcast sends a message to all connected clients
func (h *WebSocketHub) Broadcast(event string, data interface{}) {
	msg := map[string]interface{}{
		"event": event,
		"data":  data,
	}

	jsonBytes, err := json.Marshal(msg)
	if err != nil {
		return
	}

	select {
	case h.broadcast <- jsonBytes:
	default:
		// Channel full, skip (backpressure)
	}
}

// ClientCount returns the number of connected clients
func (h *WebSocketHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// snapshotDeltas turns successive snapshot observations into counter
// increments. The first observation seeds the baseline, so the zero-value
// snapshot published before the engine's first frame never counts as lost
// lives. Session restarts reset both fields downward and are skipped.
type snapshotDeltas struct {
	sliced int
	lives  int
	seeded bool
}

func (d *snapshotDeltas) observe(snap *game.GameSnapshot) (slices, livesLost int) {
	if !d.seeded {
		d.sliced, d.lives, d.seeded = snap.FruitsSliced, snap.Lives, true
		return 0, 0
	}
	if snap.FruitsSliced > d.sliced {
		slices = snap.FruitsSliced - d.sliced
	}
	if snap.Lives < d.lives {
		livesLost = d.lives - snap.Lives
	}
	d.sliced, d.lives = snap.FruitsSliced, snap.Lives
	return slices, livesLost
}

// StartBroadcastLoop pushes the latest snapshot to all clients at a fixed
// cadence. Reads are lock-free (snapshot triple buffer), so an idle or
// busy tick never stalls the broadcast.
func (h *WebSocketHub) StartBroadcastLoop(engine *game.Engine) {
	ticker := time.NewTicker(33 * time.Millisecond) // ~30 updates per second

	go func() {
		var deltas snapshotDeltas

		for range ticker.C {
			snap := engine.GetSnapshot()
			UpdateBodyCount(len(snap.Bodies))

			slices, livesLost := deltas.observe(snap)
			if slices > 0 {
				RecordSlices(slices)
			}
			if livesLost > 0 {
				RecordLivesLost(livesLost)
			}

			if h.ClientCount() == 0 {
				continue
			}
			h.Broadcast("game:snapshot", snap)
		}
	}()
}

// HandleWebSocket handles incoming WebSocket connections with DoS protection
func (h *WebSocketHub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	ip := GetClientIP(r)

	if h.ClientCount() >= MaxWSConnectionsTotal {
		log.Printf("⚠️ WebSocket connection rejected: total limit reached")
		RecordConnectionRejected("ws_total_limit")
		http.Error(w, "Too many connections", http.StatusServiceUnavailable)
		return
	}

	if !h.wsLimiter.Allow(ip) {
		log.Printf("⚠️ WebSocket connection rejected from %s: per-IP limit reached", ip)
		RecordConnectionRejected("ws_ip_limit")
		http.Error(w, "Too many connections from your IP", http.StatusTooManyRequests)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		h.wsLimiter.Release(ip)
		return
	}

	client := &wsClient{conn: conn, ip: ip}
	h.register <- client

	go h.readLoop(conn, ip)
}

// readLoop consumes pointer samples from one connection and feeds them to
// the input sink, rate limited per connection.
func (h *WebSocketHub) readLoop(conn *websocket.Conn, ip string) {
	defer func() {
		h.unregister <- conn
	}()

	limiter := rate.NewLimiter(maxInputEventsPerSec, inputEventBurst)

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return
		}

		if !limiter.Allow() {
			RecordConnectionRejected("input_rate")
			continue
		}

		var msg pointerMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}

		var kind game.PointerKind
		switch msg.Type {
		case "start":
			kind = game.PointerStart
		case "move":
			kind = game.PointerMove
		case "end":
			kind = game.PointerEnd
		case "cancel":
			kind = game.PointerCancel
		default:
			continue
		}

		h.input.RecordPointer(kind, msg.X, msg.Y, time.Now())
		RecordPointerSample()
	}
}
