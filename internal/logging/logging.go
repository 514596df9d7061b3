package logging

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/jonathangjertsen/benchscpi/internal/config"
)

const timestampFormat = "2006-01-02 15:04:05"

// Setup builds the logger for the command-line tools. An unknown level
// falls back to info, an unopenable log file to stderr.
func Setup(cfg config.LogConfig) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: timestampFormat,
		})
	}

	if cfg.Output == "file" && cfg.FilePath != "" {
		file, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err == nil {
			log.SetOutput(file)
		} else {
			log.Warnf("opening log file failed: %v, using stderr", err)
		}
	}

	return log
}
