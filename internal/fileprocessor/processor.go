// Package fileprocessor handles file selection and processing operations
package fileprocessor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/FutureFractal/g1utils/internal/config"
	"github.com/FutureFractal/g1utils/internal/options"
	"github.com/FutureFractal/g1utils/internal/pipeline"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile runs the selected command on the input file and writes the
// result to the output file, or to standard output if none is set.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program) (err error) {
	writer, err := config.CreateWriter(opts.Output)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}
	defer func() {
		if closeErr := writer.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("closing output: %w", closeErr))
		}
	}()

	pipe := pipeline.New(logger)
	if err := pipe.Execute(ctx, opts, writer); err != nil {
		return fmt.Errorf("processing %s: %w", opts.Input, err)
	}
	return nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match batch pattern '%s'", opts.Batch)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputFilename generates the output filename for a given input
// file and command. The info command writes to standard output.
func GenerateOutputFilename(inputFile, command string) string {
	var suffix string
	switch command {
	case options.CommandSprite:
		suffix = ".png"
	case options.CommandDump:
		suffix = ".txt"
	default:
		return ""
	}

	ext := filepath.Ext(inputFile)
	return inputFile[:len(inputFile)-len(ext)] + suffix
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("g1utils", log.String("version", buildinfo.Version(version, commit, date)))
}
