// Package config loads runtime settings from defaults, an optional YAML file, the environment
// and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hailam/cooldownchess/internal/board"
)

// Config keys.
const (
	KeyLogLevel      = "log_level"
	KeyTickInterval  = "tick_interval"
	KeyStartFEN      = "start_fen"
	KeyMoveCacheSize = "move_cache_size"
	KeyHistoryFile   = "history_file"
	KeyCPUProfile    = "cpuprofile"
)

// StartPos selects the standard starting position for start_fen.
const StartPos = "startpos"

// Config holds the resolved runtime settings.
type Config struct {
	LogLevel      string
	TickInterval  time.Duration
	StartFEN      string
	MoveCacheSize int
	HistoryFile   string
	CPUProfile    string
}

// Load builds a Config. A file named cooldownchess.yaml is looked up in the data directory and
// the working directory unless --config names one explicitly; COOLDOWNCHESS_<KEY> variables
// override the file and flags override everything.
func Load(args []string) (*Config, error) {
	v := viper.New()

	dataDir, err := DataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyTickInterval, board.TickRate)
	v.SetDefault(KeyStartFEN, StartPos)
	v.SetDefault(KeyMoveCacheSize, 4096)
	v.SetDefault(KeyHistoryFile, filepath.Join(dataDir, "history"))
	v.SetDefault(KeyCPUProfile, "")

	fs := pflag.NewFlagSet(appName, pflag.ContinueOnError)
	configFile := fs.String("config", "", "path to a YAML config file")
	fs.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	fs.Duration("tick-interval", board.TickRate, "time between cooldown ticks")
	fs.String("start-fen", StartPos, "starting position: startpos or a FEN string")
	fs.Int("move-cache-size", 4096, "number of move sets kept in the move cache")
	fs.String("history-file", "", "console history file")
	fs.String("cpuprofile", "", "write cpu profile to file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	for key, name := range map[string]string{
		KeyLogLevel:      "log-level",
		KeyTickInterval:  "tick-interval",
		KeyStartFEN:      "start-fen",
		KeyMoveCacheSize: "move-cache-size",
		KeyHistoryFile:   "history-file",
		KeyCPUProfile:    "cpuprofile",
	} {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return nil, err
		}
	}

	v.SetEnvPrefix("COOLDOWNCHESS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if *configFile != "" {
		v.SetConfigFile(*configFile)
	} else {
		v.SetConfigName(appName)
		v.SetConfigType("yaml")
		v.AddConfigPath(dataDir)
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		LogLevel:      v.GetString(KeyLogLevel),
		TickInterval:  v.GetDuration(KeyTickInterval),
		StartFEN:      v.GetString(KeyStartFEN),
		MoveCacheSize: v.GetInt(KeyMoveCacheSize),
		HistoryFile:   v.GetString(KeyHistoryFile),
		CPUProfile:    v.GetString(KeyCPUProfile),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that viper cannot type-check on its own.
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid %s: %w", KeyLogLevel, err)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("invalid %s: %v must be positive", KeyTickInterval, c.TickInterval)
	}
	if c.MoveCacheSize <= 0 {
		return fmt.Errorf("invalid %s: %d must be positive", KeyMoveCacheSize, c.MoveCacheSize)
	}
	if _, err := c.StartBoard(); err != nil {
		return fmt.Errorf("invalid %s: %w", KeyStartFEN, err)
	}
	return nil
}

// Level returns the parsed log level. Call Validate first.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// StartBoard returns the position games start from.
func (c *Config) StartBoard() (board.Board, error) {
	if c.StartFEN == "" || c.StartFEN == StartPos {
		return board.Standard(), nil
	}
	return board.ParseFEN(c.StartFEN)
}
