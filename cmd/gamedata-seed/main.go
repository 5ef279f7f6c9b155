// Command gamedata-seed writes the built-in resource, building, item and
// crafting tables to a SQLite database. Running it twice leaves the same
// rows in place.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Garsondee/Settlement-Replay/internal/gamedata"
	"github.com/Garsondee/Settlement-Replay/internal/logger"
)

func main() {
	var (
		path     string
		timeout  time.Duration
		logLevel string
	)
	flag.StringVar(&path, "db", "game_data.db", "SQLite database to create or update")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "give up after this long")
	flag.StringVar(&logLevel, "log-level", "info", "logrus level")
	flag.Parse()

	logger.Init(logLevel, "text")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cat := gamedata.Default()
	if err := gamedata.Seed(ctx, path, cat); err != nil {
		logger.Log.WithError(err).WithField("db", path).Error("seed game data")
		os.Exit(1)
	}
	logger.Log.WithFields(logrus.Fields{
		"db":        path,
		"items":     len(cat.Items),
		"buildings": len(cat.Buildings),
		"crafting":  len(cat.Crafting),
	}).Info("game data seeded")
}
