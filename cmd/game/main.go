package main

import (
	"flag"
	"log"

	"github.com/Garsondee/Summit-Sled/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var configPath string
	var seed int64
	flag.StringVar(&configPath, "config", "", "TOML config file (defaults if empty)")
	flag.Int64Var(&seed, "seed", 0, "session seed (0 = from clock)")
	flag.Parse()

	cfg, err := game.LoadConfig(configPath)
	if err != nil {
		log.Fatal(err)
	}
	g, err := game.New(cfg, seed)
	if err != nil {
		log.Fatal(err)
	}
	w, h := g.WindowSize()
	ebiten.SetWindowTitle("Summit Sled")
	ebiten.SetWindowSize(w, h)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
