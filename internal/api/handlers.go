package api

import (
	"encoding/json"
	"log"
	"net/http"

	"fruit-rush/internal/game"
)

// Handler methods for routerHandlers.
// These are used by both the standalone router (for testing) and the full Server.

func (h *routerHandlers) handleGetState(w http.ResponseWriter, r *http.Request) {
	// Lock-free snapshot: polling renderers never contend with the tick.
	writeJSON(w, h.engine.GetSnapshot())
}

func (h *routerHandlers) handleGetHUD(w http.ResponseWriter, r *http.Request) {
	snap := h.engine.GetSnapshot()
	writeJSON(w, map[string]interface{}{
		"score":         snap.Score,
		"lives":         snap.Lives,
		"fruitsSliced":  snap.FruitsSliced,
		"difficultyPct": snap.DifficultyPct, // 0 means hide the indicator
		"phase":         snap.Phase,
	})
}

func (h *routerHandlers) handleGetCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, game.SpecialFruits)
}

func (h *routerHandlers) handleGetEventStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.engine.GetEventLogStats())
}

func (h *routerHandlers) handleSessionStart(w http.ResponseWriter, r *http.Request) {
	log.Println("🎮 Session start requested via API")
	h.engine.StartSession()
	RecordSessionStart()

	writeJSON(w, map[string]interface{}{
		"success": true,
		"lives":   game.InitialLives,
	})
}

func (h *routerHandlers) handleGetFrame(w http.ResponseWriter, r *http.Request) {
	png, err := h.renderer.RenderPNG(h.engine.GetSnapshot())
	if err != nil {
		writeError(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(png)
}

// Helper functions (package-level for reuse)

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
