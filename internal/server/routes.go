package server

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

// HandleRoutes registers the HTTP diagnostic endpoints.
func HandleRoutes(hub *Hub) {
	http.HandleFunc("/health", HealthHandler)
	http.HandleFunc("/api/rooms", func(w http.ResponseWriter, r *http.Request) {
		RoomsHandler(hub, w, r)
	})

	logrus.Info("registered routes: /health, /api/rooms")
}

// HealthHandler reports liveness.
func HealthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// RoomsHandler lists current lobbies and games.
func RoomsHandler(hub *Hub, w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(hub.Rooms()); err != nil {
		http.Error(w, "failed to encode rooms", http.StatusInternalServerError)
	}
}
