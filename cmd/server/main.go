package main

import (
	"net/http"
	"os"
	"time"

	"math/rand/v2"

	"truco-game/internal/server"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
)

func main() {
	if level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		logrus.SetLevel(level)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logrus.Info("starting truco server")

	seed := uint64(time.Now().UnixNano())
	rng := rand.New(rand.NewPCG(seed, seed>>32))

	hub := server.NewHub(rng)
	go hub.Run()

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		server.ServeWs(hub, w, r)
	})
	server.HandleRoutes(hub)

	logrus.WithField("port", port).Info("listening")
	logrus.Fatal(http.ListenAndServe(":"+port, nil))
}
