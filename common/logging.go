package common

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// ConfigureLogging sets up the package-level logrus logger. level is one of
// logrus's parseable level names ("trace", "debug", "info", "warn",
// "error"); an unparseable value falls back to "info" with a warning
// instead of aborting startup over a bad flag value.
func ConfigureLogging(level string) {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.SetLevel(log.InfoLevel)
		log.Warn("Unknown log level [", level, "], defaulting to info")
		return
	}
	log.SetLevel(lvl)
}
