package main

import (
	"log"

	"github.com/parley-im/parley/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ parleyd failed to start: %v", err)
	}
}
