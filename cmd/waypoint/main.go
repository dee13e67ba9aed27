// Command waypoint serves every handler registered by the plugins it imports.
package main

import (
	"log"

	_ "github.com/joho/godotenv/autoload"
	"github.com/xy-planning-network/waypoint/app"
	"github.com/xy-planning-network/waypoint/config"
	_ "github.com/xy-planning-network/waypoint/plugins/status"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	if err := a.Run(); err != nil {
		a.Logger().Fatal(err.Error(), nil)
	}
}
