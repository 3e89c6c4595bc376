// Package main implements g1utils, a tool that reads Pokemon Gen 1 data out of
// Game Boy ROM dumps and battery saves.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/FutureFractal/g1utils/internal/cli"
	"github.com/FutureFractal/g1utils/internal/config"
	"github.com/FutureFractal/g1utils/internal/fileprocessor"
	"github.com/FutureFractal/g1utils/internal/options"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if !errors.As(err, &usageErr) {
			logger.Fatal("Invalid options", log.Err(err))
		}
		fileprocessor.PrintBanner(logger, opts, version, commit, date)
		usageErr.ShowUsage()
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	fileprocessor.PrintBanner(logger, opts, version, commit, date)

	images, err := fileprocessor.GetFilesToProcess(&opts)
	if err != nil {
		logger.Fatal("Finding memory images failed", log.Err(err))
	}

	extractAll(ctx, logger, opts, images)
}

// extractAll runs the selected command on every memory image. Sprites always
// go to a file, and a batch gets one output file per image.
func extractAll(ctx context.Context, logger *log.Logger, opts options.Program, images []string) {
	output := opts.Output
	for _, image := range images {
		opts.Input = image
		opts.Output = output
		if len(images) > 1 || (output == "" && opts.Command == options.CommandSprite) {
			opts.Output = fileprocessor.GenerateOutputFilename(image, opts.Command)
		}

		err := fileprocessor.ProcessFile(ctx, logger, opts)
		switch {
		case err == nil:
		case errors.Is(err, context.Canceled):
			logger.Info("Extraction interrupted", log.String("image", image))
			return
		default:
			logger.Error("Extraction failed",
				log.String("image", image),
				log.String("command", opts.Command),
				log.Err(err))
		}
	}
}
