// Package main implements the main entry point for rvexpand, a RISC-V
// pseudo instruction expander.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/rvexpand/internal/cli"
	"github.com/retroenv/rvexpand/internal/config"
	"github.com/retroenv/rvexpand/internal/options"
	"github.com/retroenv/rvexpand/internal/processor"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	if err != nil {
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			printBanner(opts.Quiet)
			usageErr.ShowUsage()
		} else {
			logger.Error(err.Error())
		}
		os.Exit(1)
	}

	printBanner(opts.Quiet)

	if err := run(ctx, logger, opts); err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		logger.Error("Expansion failed", log.Err(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *log.Logger, opts options.Program) error {
	reader, err := openInput(opts.Input)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer func() {
		if closer, ok := reader.(io.Closer); ok {
			_ = closer.Close()
		}
	}()

	writer, err := createWriter(opts)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}

	proc := processor.New(logger, opts)
	if err := proc.Process(ctx, reader, writer); err != nil {
		return fmt.Errorf("expanding %s: %w", opts.Input, err)
	}

	if closer, ok := writer.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("closing output: %w", err)
		}
	}
	return nil
}

func openInput(name string) (io.Reader, error) {
	if name == "-" {
		return os.Stdin, nil
	}
	return os.Open(name)
}

func createWriter(opts options.Program) (io.Writer, error) {
	if opts.Output == "" {
		return os.Stdout, nil
	}
	return os.Create(opts.Output)
}

func printBanner(quiet bool) {
	if quiet {
		return
	}
	fmt.Println("[-----------------------------------------------]")
	fmt.Println("[ rvexpand - RISC-V pseudo instruction expander ]")
	fmt.Printf("[-----------------------------------------------]\n\n")
	fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
}
