package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/OCharnyshevich/tile-trees/pkg/config"
	"github.com/OCharnyshevich/tile-trees/pkg/forest"
	"github.com/OCharnyshevich/tile-trees/pkg/world/gen"
	"github.com/OCharnyshevich/tile-trees/pkg/world/grid"
)

func main() {
	cfg := config.Default()

	configPath := flag.String("config", "", "YAML config file")
	width := flag.Int("width", 1200, "grid width in tiles")
	height := flag.Int("height", 400, "grid height in tiles")
	surface := flag.Int("surface", 250, "average surface row")
	ticks := flag.Int("ticks", 0, "random growth updates to run after generation")
	snapshot := flag.String("snapshot", "world", "snapshot name to save")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "world seed")
	flag.IntVar(&cfg.Border, "border", cfg.Border, "columns skipped at each side")
	flag.StringVar(&cfg.Kinds, "kinds", cfg.Kinds, "kind definition source (path, URL or git::)")
	flag.StringVar(&cfg.SnapshotDir, "snapshot-dir", cfg.SnapshotDir, "snapshot directory")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flag.Parse()

	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "snapshot-dir":
			explicit["snapshotDir"] = true
		case "log-level":
			explicit["logLevel"] = true
		default:
			explicit[f.Name] = true
		}
	})

	if *configPath != "" {
		fromFile, err := config.Load(*configPath)
		if err != nil {
			slog.Error("load config", "error", err)
			os.Exit(1)
		}
		config.Merge(cfg, fromFile, explicit)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	g := grid.NewMem(*width, *height)
	gen.DefaultTerrain(cfg.Seed, *surface).Build(g)

	f := forest.New(cfg, g, log)
	if _, err := f.LoadKinds(ctx); err != nil {
		log.Error("load kinds", "error", err)
		os.Exit(1)
	}

	last := -1
	planted, err := f.Generate(ctx, func(p float64) {
		if pct := int(p * 100); pct/10 != last/10 {
			last = pct
			log.Debug("generating trees", "progress", pct)
		}
	})
	if err != nil {
		log.Error("generate", "error", err)
		os.Exit(1)
	}

	grown := f.Tick(*ticks)
	log.Info("forest ready", "planted", planted, "grown", grown)

	if err := f.Save(*snapshot); err != nil {
		log.Error("save snapshot", "error", err)
		os.Exit(1)
	}
}
