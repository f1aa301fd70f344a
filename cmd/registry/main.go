package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/filippkowalski/heywish/internal/app"
)

func main() {
	// Best effort: a missing .env file just means real env vars are in use.
	_ = godotenv.Load()

	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ heywish failed to start: %v", err)
	}
}
