package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"starfall/game"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (defaults are used when empty)")
	flag.Parse()

	config := game.DefaultConfig()
	if *configPath != "" {
		var err error
		config, err = game.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	g, err := game.NewGame(config)
	if err != nil {
		log.Fatalf("Failed to create game: %v", err)
	}

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Starfall")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
