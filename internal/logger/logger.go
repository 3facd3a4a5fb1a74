// Package logger builds the leveled loggers used across datafetch.
package logger

import (
	"io"

	"github.com/op/go-logging"
)

// DefaultLogger returns a logger for module writing to out at the given level.
// The go-logging backend is process-wide, so the most recent call decides where all
// module loggers write.
func DefaultLogger(out io.Writer, level logging.Level, module string) *logging.Logger {
	log := logging.MustGetLogger(module)

	format := logging.MustStringFormatter(
		`%{color}%{time:15:04:05.000} %{shortfunc} ▶ %{level:.4s}%{color:reset} %{message}`,
	)

	backend := logging.NewLogBackend(out, "", 0)
	backendFormatter := logging.NewBackendFormatter(backend, format)
	leveled := logging.AddModuleLevel(backendFormatter)
	leveled.SetLevel(level, module)
	logging.SetBackend(leveled)

	return log
}

// Level maps the CLI verbosity switch to a go-logging level.
func Level(verbose bool) logging.Level {
	if verbose {
		return logging.DEBUG
	}
	return logging.INFO
}
