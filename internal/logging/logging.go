package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// TimestampFormat is the timestamp layout of every log line.
const TimestampFormat = "2006-01-02 15:04:05"

// Setup configures the standard logrus logger to write text lines at level
// to out. Debug level also reports the calling function.
func Setup(level string, out io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}

	logger := logrus.StandardLogger()
	Configure(logger, lvl, out)

	return logger, nil
}

// Configure applies the fedibot formatter, level and output to logger.
func Configure(logger *logrus.Logger, level logrus.Level, out io.Writer) {
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: TimestampFormat,
	})
	logger.SetLevel(level)
	logger.SetReportCaller(level >= logrus.DebugLevel)
}
