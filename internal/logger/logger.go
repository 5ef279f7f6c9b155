// Package logger holds the process-wide logrus logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the global logger. It is usable before Init is called (text
// formatter, info level, stderr) so packages can log from tests.
var Log = logrus.New()

// Init configures the global logger. level is any logrus level name and
// falls back to "info"; format "json" selects the JSON formatter, anything
// else the text formatter. It should be called once from main.
func Init(level, format string) {
	InitTo(os.Stdout, level, format)
}

// InitTo is Init with an explicit output.
func InitTo(w io.Writer, level, format string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	if strings.ToLower(format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
	Log.SetOutput(w)
}
