/*
 * MIT License
 *
 * Copyright (c) 2026 The fileopt Authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Command fileopt walks a set of inputs, recompresses every file it knows
// how to shrink, and rebuilds containers around the shrunk children.
package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sabouaram/fileopt/collector"
	"github.com/sabouaram/fileopt/config"
	"github.com/sabouaram/fileopt/container"
	"github.com/sabouaram/fileopt/eventbus"
	"github.com/sabouaram/fileopt/logger"
	"github.com/sabouaram/fileopt/metrics"
	"github.com/sabouaram/fileopt/orchestrator"
	"github.com/sabouaram/fileopt/pool"
	"github.com/sabouaram/fileopt/processor"
	"github.com/sabouaram/fileopt/report"
	"github.com/sabouaram/fileopt/scanner"
)

var (
	v        = viper.New()
	logLevel string
	noColor  bool
	quiet    bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fileopt [inputs...]",
		Short: "Shrink files and containers in place without changing their semantics",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runRoot,
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug, info, warning or error")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable ANSI colors in console output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress the live progress bar")

	if err := config.BindFlags(cmd, v); err != nil {
		panic(err)
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "config-init",
		Short: "Print a default config file to stdout",
		RunE: func(_ *cobra.Command, _ []string) error {
			return config.WriteDefaultYAML(os.Stdout)
		},
	})

	return cmd
}

func parseLevel(s string) logger.Level {
	switch s {
	case "debug":
		return logger.DebugLevel
	case "warning", "warn":
		return logger.WarnLevel
	case "error":
		return logger.ErrorLevel
	default:
		return logger.InfoLevel
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	log := logger.New(os.Stderr, parseLevel(logLevel))

	configFile, _ := cmd.PersistentFlags().GetString("config")
	settings, err := config.Load(v, configFile)
	if err != nil {
		return err
	}
	config.Watch(v, log)

	log.Info("settings resolved", logger.Fields{
		"recursive": settings.Recursive,
		"dry_run":   settings.DryRun,
		"threads":   settings.NumThreads,
	})

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	scanned, err := scanner.Scan(args, scanner.Options{
		Recursive:       settings.Recursive,
		IncludePatterns: settings.IncludePatterns,
		ExcludePatterns: settings.ExcludePatterns,
		Stdin:           os.Stdin,
	}, log)
	if err != nil {
		return fmt.Errorf("scan inputs: %w", err)
	}
	if len(scanned) == 0 {
		log.Warning("no input files matched", logger.Fields{})
		return nil
	}

	registry := processor.NewRegistry()
	processor.RegisterLeafCodecs(registry)
	container.RegisterEngines(registry)

	threads := int(settings.NumThreads)
	if threads <= 0 {
		threads = pool.DefaultSize()
	}
	workers := pool.New(ctx, threads)
	defer workers.Stop()

	bus := eventbus.New()
	col := collector.New()
	col.Attach(bus)

	sink := metrics.NewSink()
	sink.Attach(bus)

	var prog *report.Progress
	if !quiet {
		prog = report.NewProgress(os.Stderr, len(scanned), "fileopt")
		prog.Attach(bus)
	}

	opts := processor.Options{
		PreserveMetadata:        settings.PreserveMetadata,
		VerifyChecksums:         settings.VerifyChecksums,
		DryRun:                  settings.DryRun,
		EncodeMode:              settings.EncodeModeValue(),
		UnencodableTargetFormat: settings.Format(),
	}

	orch := orchestrator.New(registry, workers, bus, log, opts)
	orch.Run(ctx, scanned)

	workers.WaitIdle()
	if prog != nil {
		prog.Wait()
	}

	console := report.NewConsole(os.Stdout)
	console.PrintSummary(col.Results(), col.ContainerResults())

	if settings.ReportCSV != "" {
		f, cerr := os.Create(settings.ReportCSV)
		if cerr != nil {
			return fmt.Errorf("create report file: %w", cerr)
		}
		defer f.Close()
		if err := report.WriteFileCSV(f, col.Results()); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	if settings.ReportBin != "" {
		f, cerr := os.Create(settings.ReportBin)
		if cerr != nil {
			return fmt.Errorf("create binary report file: %w", cerr)
		}
		defer f.Close()
		env := report.Envelope{Files: col.Results(), Containers: col.ContainerResults()}
		if err := report.WriteMsgpack(f, env); err != nil {
			return fmt.Errorf("write binary report: %w", err)
		}
	}

	return nil
}
