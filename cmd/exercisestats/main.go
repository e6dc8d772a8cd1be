package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/YaguangZhang/SimpleExerciseStatistics/internal/config"
	"github.com/YaguangZhang/SimpleExerciseStatistics/internal/render"
	"github.com/YaguangZhang/SimpleExerciseStatistics/internal/table"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("exercisestats starting", "version", Version)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	tbl, err := table.Load(cfg.Input.Path)
	if err != nil {
		log.Error("failed to load exercise table", "path", cfg.Input.Path, "error", err)
		os.Exit(1)
	}
	log.Info("table loaded", "days", len(tbl.Rows), "sets", tbl.NumSets)

	stats, err := render.New(cfg, log).RenderAll(tbl)
	if err != nil {
		log.Error("rendering failed", "error", err)
		os.Exit(1)
	}

	log.Info("rendering finished",
		"output_dir", cfg.Output.Dir,
		"charts_written", stats.ChartsWritten,
		"charts_failed", stats.ChartsFailed)
}
