// Package config reads replay settings from .env files and the environment.
// Command-line flags in cmd/ take their defaults from here.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvLog         = "REPLAY_LOG"
	EnvProfile     = "REPLAY_PROFILE"
	EnvProfileFile = "REPLAY_PROFILE_FILE"
	EnvGameData    = "REPLAY_GAMEDATA"
	EnvStep        = "REPLAY_STEP"
	EnvFPS         = "REPLAY_FPS"
	EnvLogLevel    = "LOG_LEVEL"
	EnvLogFormat   = "LOG_FORMAT"
)

// Config is the resolved set of replay settings.
type Config struct {
	LogPath     string // simulation log to replay
	Profile     string // built-in render profile name
	ProfileFile string // optional YAML overlay
	GameData    string // optional game_data.db for item names
	Step        int    // frames per render tick, 0 = profile default
	FPS         int    // render rate, 0 = profile default
	LogLevel    string
	LogFormat   string
}

// Defaults returns the settings used when nothing is configured.
func Defaults() Config {
	return Config{
		LogPath:   "Simulation.log",
		Profile:   "standard",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads the given .env files (".env" when none are named) into the
// process environment, then resolves the configuration from it. Missing
// files are skipped; variables already set in the environment win over file
// values.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv resolves the configuration from environment variables alone.
func FromEnv() (Config, error) {
	c := Defaults()
	str := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	str(EnvLog, &c.LogPath)
	str(EnvProfile, &c.Profile)
	str(EnvProfileFile, &c.ProfileFile)
	str(EnvGameData, &c.GameData)
	str(EnvLogLevel, &c.LogLevel)
	str(EnvLogFormat, &c.LogFormat)

	var err error
	if c.Step, err = intEnv(EnvStep); err != nil {
		return Config{}, err
	}
	if c.FPS, err = intEnv(EnvFPS); err != nil {
		return Config{}, err
	}
	return c, nil
}

func intEnv(key string) (int, error) {
	str := os.Getenv(key)
	if str == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("could not convert %s=%q to int: %w", key, str, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s must not be negative, got %d", key, n)
	}
	return n, nil
}
