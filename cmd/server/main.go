package main

import (
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"fruit-rush/internal/api"
	"fruit-rush/internal/config"
	"fruit-rush/internal/game"
	"fruit-rush/internal/render"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file from parent directory
	if err := godotenv.Load("../.env"); err != nil {
		// Try current directory as fallback
		if err := godotenv.Load(".env"); err != nil {
			log.Println("💡 No .env file found, using environment variables only")
		}
	} else {
		log.Println("✅ Loaded environment from ../.env")
	}

	log.Println("🍉 ================================")
	log.Println("🍉  FRUIT RUSH - GO ENGINE")
	log.Println("🍉 ================================")

	// Load centralized configuration (SSOT - Single Source of Truth)
	appConfig := config.Load()
	playfield := appConfig.Playfield
	tuning := appConfig.Tuning
	serverCfg := appConfig.Server

	port := strconv.Itoa(serverCfg.Port)

	log.Printf("🎮 Playfield: %dx%d @ %d FPS", playfield.Width, playfield.Height, playfield.FPS)
	log.Printf("🎮 Device class: %s (gravity %.2f, throw %.1f, fruit %gpx)",
		tuning.DeviceClass, tuning.Gravity, tuning.BaseThrowForce, tuning.FruitSize)

	// Create game engine with centralized config
	engine := game.NewEngine(game.EngineConfig{
		Playfield: playfield,
		Tuning:    tuning,
		Limits:    appConfig.Limits,
	})
	log.Printf("🛡️ Resource limits: %d bodies, %d texts, %d trail points",
		appConfig.Limits.MaxBodies, appConfig.Limits.MaxTexts, appConfig.Limits.MaxTrailPoints)

	// Start event log
	eventLogPath := getEnvWithDefault("EVENT_LOG_PATH", "events.jsonl")
	if err := engine.StartEventLog(eventLogPath); err != nil {
		log.Printf("⚠️ Event log disabled: %v", err)
	} else {
		log.Printf("📝 Event log: %s", eventLogPath)
	}

	// Start debug server (pprof + metrics, localhost only)
	if os.Getenv("DISABLE_DEBUG_SERVER") != "true" {
		if err := api.StartDebugServer(api.DefaultObservabilityConfig()); err != nil {
			log.Printf("⚠️ Debug server disabled: %v", err)
		}
	}

	// Frame timing feeds the Prometheus histogram
	engine.SetTickObserver(api.RecordFrame)

	engine.SetCallbacks(func(s game.Summary) {
		log.Printf("💀 Game over: score=%d sliced=%d elapsed=%.1fs", s.Score, s.FruitsSliced, s.ElapsedSec)
	})

	renderer := render.NewRenderer(playfield.Width, playfield.Height)
	server := api.NewServer(engine, renderer)

	// Start game engine
	engine.Start()
	log.Println("✅ Game Engine started")

	// Start API server in goroutine
	go func() {
		addr := ":" + port
		log.Printf("🌐 API server on http://localhost%s", addr)
		log.Printf("🕹️ Start a session: POST http://localhost%s/api/session/start", addr)
		log.Printf("🔌 WebSocket input+snapshots: ws://localhost%s/ws", addr)

		if err := server.Start(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	log.Println("✅ Server ready! Press Ctrl+C to stop.")
	<-quit

	log.Println("🛑 Shutting down...")
	engine.Stop()
	engine.StopEventLog()
	server.Stop()
	log.Println("👋 Goodbye!")
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
