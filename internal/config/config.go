// Package config provides centralized configuration management.
// This is the SINGLE SOURCE OF TRUTH for all game tuning constants.
//
// IMPORTANT: When changing values, only modify this file.
// All other parts of the codebase should reference these values.
package config

import (
	"os"
	"strconv"
)

// =============================================================================
// PLAYFIELD CONFIGURATION
// =============================================================================

// PlayfieldConfig holds canvas/playfield settings shared between the game
// engine and the preview renderer.
type PlayfieldConfig struct {
	Width  int // Playfield width in units (pixels)
	Height int // Playfield height in units (pixels)
	FPS    int // Render frames per second (the frame driver tick rate)
}

// DefaultPlayfield returns the default playfield configuration.
func DefaultPlayfield() PlayfieldConfig {
	return PlayfieldConfig{
		Width:  800,
		Height: 600,
		FPS:    60,
	}
}

// PlayfieldFromEnv returns playfield configuration with environment overrides.
func PlayfieldFromEnv() PlayfieldConfig {
	cfg := DefaultPlayfield()

	if w := getEnvInt("PLAYFIELD_WIDTH", 0); w > 0 {
		cfg.Width = w
	}
	if h := getEnvInt("PLAYFIELD_HEIGHT", 0); h > 0 {
		cfg.Height = h
	}
	if fps := getEnvInt("FPS", 0); fps > 0 {
		cfg.FPS = fps
	}

	return cfg
}

// =============================================================================
// GAME TUNING (DEVICE-CLASS PRESETS)
// =============================================================================

// Tuning holds all simulation constants for one device class.
// Velocities are expressed in units per tick at a 60Hz reference; the
// integrator rescales them by the fixed timestep so physics is
// frame-rate-independent. These values are frozen at session start and
// never change mid-session (only throw force is difficulty-scaled, at
// spawn time).
type Tuning struct {
	DeviceClass string // "desktop" or "mobile"

	// Physics
	Gravity        float64 // Downward acceleration per tick
	BaseThrowForce float64 // Initial vertical speed (negative = up)
	ExtraForce     float64 // Random extra launch speed range
	MaxSpeedX      float64 // Horizontal launch speed magnitude bound
	MaxRotSpeed    float64 // Rotation speed magnitude bound (radians/tick)
	Restitution    float64 // Speed retained after a side-wall bounce

	// Bodies
	FruitSize  float64 // Regular fruit width/height in units
	HitRadius  float64 // Slice detection radius for regular fruits
	SliceForce float64 // Velocity kick applied to each half on slice

	// Spawning
	BaseSpawnDelayMs  float64 // Base delay between spawn batches
	MinSpawnDelayMs   float64 // Lower bound after difficulty division
	MaxFruitsPerSpawn int     // Hard cap on bodies per batch
	SpawnWidthFrac    float64 // Centered fraction of width used for spawn X
	SpecialChance     float64 // Probability a spawned body is special

	// Difficulty
	DifficultyRate float64 // Growth per 10 seconds of session time
	MaxDifficulty  float64 // Difficulty cap

	// Input
	TrailLength int // Max pointer samples kept in the trail buffer
}

// DesktopTuning returns the desktop device-class preset.
func DesktopTuning() Tuning {
	return Tuning{
		DeviceClass:       "desktop",
		Gravity:           0.25,
		BaseThrowForce:    -14.0,
		ExtraForce:        4.0,
		MaxSpeedX:         3.0,
		MaxRotSpeed:       0.08,
		Restitution:       0.8,
		FruitSize:         60,
		HitRadius:         30,
		SliceForce:        8,
		BaseSpawnDelayMs:  2000,
		MinSpawnDelayMs:   700,
		MaxFruitsPerSpawn: 4,
		SpawnWidthFrac:    0.8,
		SpecialChance:     0.15,
		DifficultyRate:    0.1,
		MaxDifficulty:     3.0,
		TrailLength:       12,
	}
}

// MobileTuning returns the mobile device-class preset. Smaller fruits,
// gentler gravity and a shorter trail buffer (touch samples arrive less
// frequently than mouse moves).
func MobileTuning() Tuning {
	t := DesktopTuning()
	t.DeviceClass = "mobile"
	t.Gravity = 0.2
	t.BaseThrowForce = -12.0
	t.ExtraForce = 3.0
	t.FruitSize = 50
	t.SpawnWidthFrac = 0.7
	t.TrailLength = 8
	return t
}

// TuningFromEnv selects the device-class preset (DEVICE_CLASS=mobile|desktop,
// desktop default) and applies environment overrides.
func TuningFromEnv() Tuning {
	var cfg Tuning
	if os.Getenv("DEVICE_CLASS") == "mobile" {
		cfg = MobileTuning()
	} else {
		cfg = DesktopTuning()
	}

	if g := getEnvFloat("GRAVITY", 0); g > 0 {
		cfg.Gravity = g
	}
	if f := getEnvFloat("BASE_THROW_FORCE", 0); f < 0 {
		cfg.BaseThrowForce = f
	}
	if n := getEnvInt("TRAIL_LENGTH", 0); n > 0 {
		cfg.TrailLength = n
	}
	if n := getEnvInt("MAX_FRUITS_PER_SPAWN", 0); n > 0 {
		cfg.MaxFruitsPerSpawn = n
	}
	if d := getEnvFloat("MAX_DIFFICULTY", 0); d >= 1 {
		cfg.MaxDifficulty = d
	}

	return cfg
}

// =============================================================================
// GAME RESOURCE LIMITS
// =============================================================================

// ResourceLimits controls snapshot sizes and performance limits.
type ResourceLimits struct {
	MaxBodies      int // Hard cap on live bodies
	MaxTexts       int // Floating score text limit
	MaxTrailPoints int // Trail points copied into a snapshot
}

// DefaultLimits returns the default resource limits.
func DefaultLimits() ResourceLimits {
	return ResourceLimits{
		MaxBodies:      64,
		MaxTexts:       30,
		MaxTrailPoints: 16,
	}
}

// =============================================================================
// SERVER CONFIGURATION
// =============================================================================

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int
}

// DefaultServer returns the default server configuration.
func DefaultServer() ServerConfig {
	return ServerConfig{Port: 3000}
}

// ServerFromEnv returns server configuration with environment overrides.
func ServerFromEnv() ServerConfig {
	cfg := DefaultServer()

	if p := getEnvInt("PORT", 0); p > 0 {
		cfg.Port = p
	}

	return cfg
}

// =============================================================================
// COMPLETE APP CONFIGURATION
// =============================================================================

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Playfield PlayfieldConfig
	Tuning    Tuning
	Server    ServerConfig
	Limits    ResourceLimits
}

// Load returns the complete configuration with environment overrides.
func Load() AppConfig {
	return AppConfig{
		Playfield: PlayfieldFromEnv(),
		Tuning:    TuningFromEnv(),
		Server:    ServerFromEnv(),
		Limits:    DefaultLimits(),
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
