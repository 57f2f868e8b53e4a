package main

import (
	"log"

	"github.com/anhdng/songngu/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ songngu failed to start: %v", err)
	}
}
