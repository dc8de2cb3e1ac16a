package config

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// SetupLogging configures the global logrus logger based on args.
// Returns the log file handle (caller must close it) or nil if no file.
func SetupLogging(args Args) (*os.File, error) {
	var writers []io.Writer
	var logFile *os.File

	if args.Log != "" {
		f, err := os.OpenFile(args.Log, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, err
		}
		logFile = f
		writers = append(writers, f)
	}

	if args.Json {
		// JSON mode: data goes to stdout, logs to stderr
		writers = append(writers, os.Stderr)
	} else if len(writers) == 0 {
		// Text report mode without a log file: keep the report clean
		writers = append(writers, io.Discard)
	}

	var output io.Writer
	if len(writers) == 1 {
		output = writers[0]
	} else {
		output = io.MultiWriter(writers...)
	}
	logrus.SetOutput(output)

	level, err := logrus.ParseLevel(args.LogLevel)
	if err != nil {
		level = logrus.ErrorLevel
	}
	logrus.SetLevel(level)

	if args.Json {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logFile, nil
}
