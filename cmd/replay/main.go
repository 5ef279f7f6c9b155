// Command replay plays a settlement simulation log back in a window.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Garsondee/Settlement-Replay/internal/config"
	"github.com/Garsondee/Settlement-Replay/internal/gamedata"
	"github.com/Garsondee/Settlement-Replay/internal/logger"
	"github.com/Garsondee/Settlement-Replay/internal/render"
	"github.com/Garsondee/Settlement-Replay/internal/replay"
	"github.com/Garsondee/Settlement-Replay/internal/viewer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.WithError(err).Fatal("load config")
	}

	flag.StringVar(&cfg.LogPath, "log", cfg.LogPath, "simulation log to replay (.log, .gz or .zst)")
	flag.StringVar(&cfg.Profile, "profile", cfg.Profile, "render profile ("+strings.Join(render.PresetNames(), ", ")+")")
	flag.StringVar(&cfg.ProfileFile, "profile-file", cfg.ProfileFile, "YAML profile overlay")
	flag.StringVar(&cfg.GameData, "gamedata", cfg.GameData, "game_data.db for item names")
	flag.IntVar(&cfg.Step, "step", cfg.Step, "frames per render tick (0 = profile default)")
	flag.IntVar(&cfg.FPS, "fps", cfg.FPS, "render ticks per second (0 = profile default)")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "logrus level")
	flag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "text or json")
	flag.Parse()

	logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err := run(cfg); err != nil {
		logger.Log.WithError(err).Error("replay failed")
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	profile, err := loadProfile(cfg)
	if err != nil {
		return err
	}

	rep, err := replay.Load(cfg.LogPath)
	if err != nil {
		return err
	}

	var opts []viewer.Option
	if cfg.GameData != "" {
		cat, err := gamedata.Open(context.Background(), cfg.GameData)
		switch {
		case errors.Is(err, gamedata.ErrNoDatabase):
			logger.Log.WithField("path", cfg.GameData).Warn("game data not found, items shown by id")
		case err != nil:
			return err
		default:
			opts = append(opts, viewer.WithLabels(cat))
		}
	}

	v, err := viewer.New(rep, profile, opts...)
	if err != nil {
		return err
	}
	return viewer.Run(v)
}

// loadProfile resolves the preset or overlay file, then applies the step
// and rate overrides.
func loadProfile(cfg config.Config) (render.Profile, error) {
	var (
		p   render.Profile
		err error
	)
	if cfg.ProfileFile != "" {
		p, err = render.LoadProfile(cfg.ProfileFile, cfg.Profile)
	} else {
		p, err = render.Preset(cfg.Profile)
	}
	if err != nil {
		return render.Profile{}, err
	}
	if cfg.Step > 0 {
		p.StepSize = cfg.Step
	}
	if cfg.FPS > 0 {
		p.FPS = cfg.FPS
	}
	logger.Log.WithFields(logrus.Fields{
		"profile": p.Name,
		"size":    []int{p.Width, p.Height},
		"step":    p.StepSize,
		"fps":     p.FPS,
	}).Debug("profile resolved")
	return p, p.Validate()
}
