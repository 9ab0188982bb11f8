package main

import (
	"errors"
	"fmt"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/hailam/cooldownchess/internal/config"
	"github.com/hailam/cooldownchess/internal/console"
	"github.com/hailam/cooldownchess/internal/movecache"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	zerolog.SetGlobalLevel(cfg.Level())
	logger := zerolog.New(output).Level(cfg.Level()).With().Timestamp().Logger()
	log.Logger = logger

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := cfg.CPUProfile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer pprof.StopCPUProfile()
		log.Info().Str("path", profilePath).Msg("CPU profiling enabled")
	}

	start, err := cfg.StartBoard()
	if err != nil {
		log.Fatal().Err(err).Msg("bad start position")
	}

	cache, err := movecache.New(cfg.MoveCacheSize)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create move cache")
	}
	defer cache.Close()

	c := console.New(os.Stdout, start, cache, cfg.TickInterval, cfg.HistoryFile)
	if err := c.Loop(); err != nil {
		log.Error().Err(err).Msg("console stopped")
	}
	log.Debug().Float64("hit_rate", cache.HitRate()).Msg("move cache")
}
