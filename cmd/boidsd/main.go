// boidsd runs the flocking simulation headless and streams each tick's
// snapshot as JSON to websocket subscribers on /ws.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jlajr36/FlockingSimulation/internal/server"
	"github.com/jlajr36/FlockingSimulation/pkg/flock"
)

func main() {
	// Optional .env next to the binary; flag defaults pick the values up.
	_ = godotenv.Load()

	var (
		addr       = flag.String("addr", envOr("BOIDS_ADDR", ":8080"), "listen address")
		configFile = flag.String("config", "", "path to a config json file (built-in defaults when empty)")
		schemaFile = flag.String("schema", "config.schema.json", "path to the config JSON schema")
		tick       = flag.Duration("tick", 33*time.Millisecond, "simulation tick interval")
	)
	flag.Parse()

	cfg := flock.DefaultConfig()
	if *configFile != "" {
		loaded, err := flock.LoadConfig(*configFile, *schemaFile)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}

	f := flock.New(cfg)
	hub := server.NewHub()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.Handler())
	srv := &http.Server{Addr: *addr, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("boidsd listening on %s (%d boids, tick %s)", *addr, cfg.NumBoids, *tick)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()

	ticker := time.NewTicker(*tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Printf("shutdown: %v", err)
			}
			return
		case <-ticker.C:
			f.Step()
			hub.Broadcast(f.Snapshot())
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
