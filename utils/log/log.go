// Package log holds the process-wide structured logger.
package log

import (
	"os"

	"github.com/sirupsen/logrus"
)

const serviceName = "spyne-api"

// global accessible logger
var (
	logger *logrus.Logger
	Log    *logrus.Entry
)

// Tests and packages imported before main runs still need a usable logger.
func init() {
	InitLogger(os.Getenv("APP_ENV"))
}

// InitLogger configures the logger for env. Production emits JSON; everything
// else uses the human readable text formatter.
func InitLogger(env string) {
	logger = logrus.New()
	logger.SetOutput(os.Stderr)

	if env == "prod" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		logger.SetLevel(lvl)
	}

	Log = logger.WithFields(logrus.Fields{
		"service": serviceName,
		"env":     env,
	})
}
