package main

import (
	"log"
	"net/http"

	"resumerank/internal/api"
	"resumerank/internal/config"

	"github.com/joho/godotenv"
	tclient "go.temporal.io/sdk/client"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()

	var tc tclient.Client
	if cfg.BatchEnabled {
		// Lazy so /rank keeps serving while Temporal is down.
		c, err := tclient.NewLazyClient(tclient.Options{HostPort: cfg.TemporalAddress})
		if err != nil {
			log.Fatal(err)
		}
		defer c.Close()
		tc = c
	}

	h := api.NewServer(cfg, tc)
	log.Printf("resumerank api listening on %s batch_enabled=%t temporal=%q", cfg.APIAddr, cfg.BatchEnabled, cfg.TemporalAddress)
	if err := http.ListenAndServe(cfg.APIAddr, h.Routes()); err != nil {
		log.Fatal(err)
	}
}
