package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"math/rand"
	"os"
	"time"

	"starfall/game"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to a YAML config file (defaults are used when empty)")
	ticks := flag.Int("ticks", 3600, "Number of ticks to simulate")
	report := flag.Int("report", 600, "Ticks between progress lines (0 disables them)")
	seed := flag.Int64("seed", 0, "Random seed (overrides the config; 0 keeps it)")
	snapshot := flag.String("snapshot", "", "Write the final frame to this PNG file")
	flag.Parse()

	config := game.DefaultConfig()
	if *configPath != "" {
		var err error
		config, err = game.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *seed != 0 {
		config.Seed = *seed
	}
	if config.Seed == 0 {
		config.Seed = time.Now().UnixNano()
	}

	log.Printf("Simulating %d ticks on a %dx%d viewport (seed %d)",
		*ticks, config.ScreenWidth, config.ScreenHeight, config.Seed)

	rng := rand.New(rand.NewSource(config.Seed))
	sim := game.NewSimulation(config, rng, float64(config.ScreenWidth), float64(config.ScreenHeight))

	start := time.Now()
	maxFragments := 0
	for i := 1; i <= *ticks; i++ {
		sim.Step()

		if n := len(sim.Fragments()); n > maxFragments {
			maxFragments = n
		}
		if *report > 0 && i%*report == 0 {
			log.Printf("tick=%d stars=%d fragments=%d next-spawn-interval=%d",
				sim.Tick(), len(sim.Particles()), len(sim.Fragments()), sim.SpawnInterval())
		}
	}
	elapsed := time.Since(start)

	log.Printf("Done in %v (%.0f ticks/s), peak fragments=%d",
		elapsed, float64(*ticks)/elapsed.Seconds(), maxFragments)

	if *snapshot != "" {
		if err := writeSnapshot(sim, config, *snapshot); err != nil {
			log.Fatalf("Failed to write snapshot: %v", err)
		}
		log.Printf("Snapshot saved to: %s", *snapshot)
	}
}

// writeSnapshot renders the current state with the software drawer and saves it as PNG
func writeSnapshot(sim *game.Simulation, config game.Config, path string) error {
	w, h := config.ScreenWidth, config.ScreenHeight

	drawer := game.NewRasterDrawer(w, h)
	backdrop := game.NewBackdrop(w, h, config.Background.Mountains)
	var twinkle *game.Twinkle
	if config.Twinkle > 0 {
		twinkle = game.NewTwinkle(config.Twinkle, config.Seed)
	}
	sim.Draw(drawer, backdrop, twinkle)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, drawer.Image()); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}
