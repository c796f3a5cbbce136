package game

import (
	"encoding/json"
	"time"
)

// EventType enum for event classification
type EventType uint8

const (
	EventTypeUnknown EventType = iota
	EventTypeSessionStart
	EventTypeSpawn
	EventTypeSlice
	EventTypeLifeLost
	EventTypeGameOver
)

// EventVersion for backwards compatibility when replaying logs
const EventVersion uint8 = 1

// Event is the core event structure for the event log
type Event struct {
	Version   uint8     `json:"version"`   // Schema version
	Type      EventType `json:"type"`      // Event type
	Timestamp int64     `json:"timestamp"` // Unix nano
	Sequence  uint64    `json:"sequence"`  // Monotonic sequence
	TickNum   uint64    `json:"tickNum"`   // Fixed tick this occurred in
	Payload   []byte    `json:"payload"`   // JSON-encoded payload
}

// String returns human-readable event type
func (t EventType) String() string {
	switch t {
	case EventTypeSessionStart:
		return "session_start"
	case EventTypeSpawn:
		return "spawn"
	case EventTypeSlice:
		return "slice"
	case EventTypeLifeLost:
		return "life_lost"
	case EventTypeGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Typed payloads for different event types

// SessionStartPayload records the tuning snapshot a session began with
type SessionStartPayload struct {
	DeviceClass string  `json:"deviceClass"`
	Gravity     float64 `json:"gravity"`
	ThrowForce  float64 `json:"throwForce"`
}

// SpawnPayload records one spawned batch
type SpawnPayload struct {
	Count      int      `json:"count"`
	Difficulty float64  `json:"difficulty"`
	SpecialIDs []string `json:"specialIds,omitempty"`
}

// SlicePayload records a successful slice
type SlicePayload struct {
	BodyID     string  `json:"bodyId"`
	Kind       string  `json:"kind,omitempty"`
	Points     int     `json:"points"`
	SliceAngle float64 `json:"sliceAngle"`
	Score      int     `json:"score"`
}

// LifeLostPayload records an unsliced body escaping below the playfield
type LifeLostPayload struct {
	BodyID string `json:"bodyId"`
	Lives  int    `json:"lives"`
}

// GameOverPayload records the final session summary
type GameOverPayload struct {
	Score        int     `json:"score"`
	FruitsSliced int     `json:"fruitsSliced"`
	ElapsedSec   float64 `json:"elapsedSec"`
}

// NewEvent creates an event with a marshaled payload. Marshal failures
// leave the payload nil rather than failing the emit.
func NewEvent(eventType EventType, tickNum uint64, payload interface{}) Event {
	var data []byte
	if payload != nil {
		data, _ = json.Marshal(payload)
	}
	return Event{
		Version:   EventVersion,
		Type:      eventType,
		Timestamp: time.Now().UnixNano(),
		TickNum:   tickNum,
		Payload:   data,
	}
}
