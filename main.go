// Package main implements the main entry point for a CHIP-8 virtual machine
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/gr8/internal/cli"
	"github.com/retroenv/gr8/internal/config"
	"github.com/retroenv/gr8/internal/options"
	"github.com/retroenv/gr8/internal/pipeline"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
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
		if errors.As(err, &usageErr) {
			printBanner(opts)
			if msg := usageErr.Error(); msg != "" {
				fmt.Printf("%s\n\n", msg)
			}
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	printBanner(opts)

	p := pipeline.New(logger)
	if err := p.Execute(ctx, opts, os.Stdout); err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Execution cancelled")
			return
		}
		logger.Error("Running ROM failed", log.Err(err))
		os.Exit(1)
	}
}

func printBanner(opts options.Program) {
	// headless output goes to the console, keep it free of decoration
	if opts.Quiet || opts.Headless {
		return
	}
	fmt.Println("[-------------------------------]")
	fmt.Println("[ gr8 - CHIP-8 virtual machine ]")
	fmt.Printf("[-------------------------------]\n\n")
	fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
}
