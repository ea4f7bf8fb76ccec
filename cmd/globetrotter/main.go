// Command globetrotter runs the trip planner presentation server in front of
// the trips REST API.
package main

import (
	"log"

	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/app"
)

func main() {
	application, err := app.New()
	if err != nil {
		log.Fatalf("failed to initialize app: %v", err)
	}
	defer application.Close()

	if err := application.Run(); err != nil {
		log.Printf("server stopped with error: %v", err)
	}
}
