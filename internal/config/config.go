// Package config handles application configuration and setup
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CreateWriter opens the output destination of a command.
// An empty file name selects standard output, which is not closed.
func CreateWriter(fileName string) (io.WriteCloser, error) {
	if fileName == "" {
		return nopCloser{Writer: os.Stdout}, nil
	}

	f, err := os.Create(fileName)
	if err != nil {
		return nil, fmt.Errorf("creating file '%s': %w", fileName, err)
	}
	return f, nil
}

// nopCloser wraps an io.Writer to add a no-op Close method.
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}
