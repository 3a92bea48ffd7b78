// Package logrusconfig sets up the loggers used by the command line tools.
package logrusconfig

import (
	"flag"
	"fmt"

	prefixed "github.com/BertoldVdb/logrus-prefixed-formatter"
	"github.com/sirupsen/logrus"
)

var (
	loglevel   *string
	logElapsed *bool
)

// InitParam registers the logging flags on the default flag set. Call it
// before flag.Parse.
func InitParam() {
	loglevel = flag.String("loglevel", "", "Log level by name (error, warn, info, debug, trace). debug logs every bus transaction")
	logElapsed = flag.Bool("logelapsed", false, "Stamp lines with the seconds since start instead of the time of day")
}

func newFormatter(elapsed bool) *prefixed.TextFormatter {
	formatter := new(prefixed.TextFormatter)
	formatter.FullTimestamp = !elapsed
	formatter.TimestampFormat = "15:04:05.000"
	formatter.PrefixPadding = 12
	formatter.SpacePadding = 40
	return formatter
}

// GetLogger returns a logger using the prefixed text format at the given
// level. A -loglevel given on the command line replaces level; an invalid
// name is reported on the returned logger and ignored.
func GetLogger(level logrus.Level) *logrus.Entry {
	logrus.ErrorKey = "$error"

	var levelErr error
	if loglevel != nil && *loglevel != "" {
		parsed, err := logrus.ParseLevel(*loglevel)
		if err == nil {
			level = parsed
		} else {
			levelErr = err
		}
	}

	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(newFormatter(logElapsed != nil && *logElapsed))

	entry := logrus.NewEntry(logger)
	if levelErr != nil {
		entry.WithError(levelErr).Warnf("Ignoring -loglevel, using %s", level)
	}
	return entry
}

// Prefixed returns a child logger whose lines are tagged with prefix
func Prefixed(entry *logrus.Entry, prefix string) *logrus.Entry {
	return entry.WithField("prefix", prefix)
}

// ForDevice tags the lines of a bus or chip logger with the device name
func ForDevice(entry *logrus.Entry, dev fmt.Stringer) *logrus.Entry {
	return Prefixed(entry, dev.String())
}
