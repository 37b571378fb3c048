package main

import (
	"log"

	"resumerank/internal/activities"
	"resumerank/internal/config"
	"resumerank/internal/workflows"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()
	c, err := client.Dial(client.Options{HostPort: cfg.TemporalAddress})
	if err != nil {
		log.Fatal(err)
	}
	defer c.Close()

	w := worker.New(c, cfg.TemporalTaskQueue, worker.Options{})
	workflows.Register(w)
	activities.Register(w, activities.New(cfg))

	log.Printf("resumerank worker listening on %s queue=%s data_out=%q", cfg.TemporalAddress, cfg.TemporalTaskQueue, cfg.DataOutRoot)
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatal(err)
	}
}
