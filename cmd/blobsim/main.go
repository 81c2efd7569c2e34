// Command blobsim runs the absorption-world simulation: circular players
// on a bounded plane eating pellets and each other, driven by a built-in
// policy, with optional terminal rendering, outcome recording, and a
// read-only status API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/talgya/blobworld/internal/api"
	"github.com/talgya/blobworld/internal/chronicle"
	"github.com/talgya/blobworld/internal/policy"
	"github.com/talgya/blobworld/internal/render"
	"github.com/talgya/blobworld/internal/runner"
	"github.com/talgya/blobworld/internal/world"
)

func main() {
	var (
		seed       = flag.Int64("seed", 42, "base random seed")
		preset     = flag.String("preset", "default", "config preset: default or elimination")
		configPath = flag.String("config", "", "YAML config file (overrides preset)")
		players    = flag.Int("players", 0, "override player count (0 = preset value)")
		pellets    = flag.Int("pellets", 0, "override pellet count (0 = preset value)")
		episodes   = flag.Int("episodes", 1, "number of episodes to run")
		maxTicks   = flag.Int("ticks", 2000, "tick limit per episode")
		policyName = flag.String("policy", "random", "control policy: random or greedy")
		doRender   = flag.Bool("render", false, "render to the terminal")
		fps        = flag.Int("fps", 60, "render frame rate")
		highlight  = flag.Int("highlight", -1, "player index to highlight when rendering")
		dbPath     = flag.String("db", "", "chronicle SQLite path (empty = no recording)")
		apiAddr    = flag.String("api", "", "status API listen address (empty = disabled)")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := buildConfig(*preset, *configPath, *players, *pellets)
	if err != nil {
		slog.Error("bad configuration", "error", err)
		os.Exit(1)
	}

	w, err := world.New(cfg)
	if err != nil {
		slog.Error("bad configuration", "error", err)
		os.Exit(1)
	}

	if *doRender {
		if !isatty.IsTerminal(os.Stdout.Fd()) {
			slog.Error("refusing -render: stdout is not a terminal")
			os.Exit(1)
		}
		term, err := render.NewTerminal(render.Config{
			FPS:       *fps,
			Highlight: *highlight,
			WorldSize: cfg.WorldSize,
		})
		if err != nil {
			slog.Error("renderer init failed", "error", err)
			os.Exit(1)
		}
		w.AttachRenderer(term)
	}
	defer w.Close()

	var db *chronicle.DB
	if *dbPath != "" {
		db, err = chronicle.Open(*dbPath)
		if err != nil {
			slog.Error("failed to open chronicle", "path", *dbPath, "error", err)
			os.Exit(1)
		}
		defer db.Close()
		slog.Info("chronicle opened", "path", *dbPath)
	}

	pol, err := buildPolicy(*policyName, *seed)
	if err != nil {
		slog.Error("bad policy", "error", err)
		os.Exit(1)
	}

	run := &runner.Runner{
		Env:       w,
		Policy:    pol,
		Chronicle: db,
		Episodes:  *episodes,
		MaxTicks:  *maxTicks,
		Seed:      *seed,
	}

	if *apiAddr != "" {
		srv := &api.Server{Runner: run, Addr: *apiAddr}
		srv.Start()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("simulation starting",
		"players", cfg.NumPlayers,
		"pellets", cfg.NumPellets,
		"boundary", cfg.Boundary,
		"episodes", *episodes,
		"policy", *policyName,
		"seed", *seed,
	)

	start := time.Now()
	sum, err := run.Run(ctx)
	if err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)

	tps := float64(sum.TotalTicks) / elapsed.Seconds()
	fmt.Printf("\nRun %s: %d episodes, %s ticks in %s (%s ticks/sec)\n",
		sum.RunID,
		sum.Episodes,
		humanize.Comma(sum.TotalTicks),
		elapsed.Round(time.Millisecond),
		humanize.CommafWithDigits(tps, 0),
	)
	fmt.Printf("Terminated: %d, truncated at tick limit: %d\n", sum.Terminated, sum.Truncated)
}

func buildConfig(preset, path string, players, pellets int) (world.Config, error) {
	var cfg world.Config
	switch {
	case path != "":
		var err error
		cfg, err = world.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
	case preset == "default":
		cfg = world.DefaultConfig()
	case preset == "elimination":
		cfg = world.EliminationConfig()
	default:
		return cfg, fmt.Errorf("unknown preset %q", preset)
	}
	if players > 0 {
		cfg.NumPlayers = players
	}
	if pellets > 0 {
		cfg.NumPellets = pellets
	}
	return cfg, cfg.Validate()
}

func buildPolicy(name string, seed int64) (policy.Policy, error) {
	switch name {
	case "random":
		// Offset keeps the policy stream independent of the world's.
		return policy.NewRandom(seed + 7919), nil
	case "greedy":
		return policy.NewGreedy(), nil
	default:
		return nil, fmt.Errorf("unknown policy %q", name)
	}
}
