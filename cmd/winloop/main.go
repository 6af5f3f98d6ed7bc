// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command winloop opens a window and renders a demo scene through the
// render loop. Subcommands inspect the monitors, the event stream, the GPU
// adapter and the surface backends, and print font, bitmap and numeric
// type information.
//
// Usage:
//
//	winloop [--config file] [--headless] [--watch] [-v]
//	winloop monitors [--modes] [-n N]
//	winloop events
//	winloop report
//	winloop backend
//	winloop font <file>
//	winloop bitmap <file>
//	winloop numeric [-t type]
//
// Errors are printed as one line on standard output and exit with code 1.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/winloop"
	"github.com/gogpu/winloop/config"
	"github.com/gogpu/winloop/platform"
	"github.com/gogpu/winloop/platform/desktop"
	"github.com/gogpu/winloop/platform/headless"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout))
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout io.Writer) int {
	root := newRootCmd(stdout)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stdout, "error: %v\n", err)
		return winloop.ExitCode(err)
	}
	return 0
}

// options are the root flags shared by every subcommand.
type options struct {
	stdout io.Writer

	configPath string
	noColor    bool
	headless   bool
	watch      bool
	verbose    bool
	frames     int

	cfg config.WindowConfig

	// newPlatform opens the event source. Tests replace it.
	newPlatform func(script ...platform.Event) (platform.Platform, error)
}

func (o *options) color() bool { return !o.noColor }

// openPlatform returns the headless platform under --headless and the
// desktop platform otherwise. script is only used by the headless one.
func (o *options) openPlatform(script ...platform.Event) (platform.Platform, error) {
	if o.newPlatform != nil {
		return o.newPlatform(script...)
	}
	if o.headless {
		return headless.New(script...), nil
	}
	return desktop.New()
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	o := &options{stdout: stdout, cfg: config.Default()}

	root := &cobra.Command{
		Use:           "winloop",
		Short:         "Windowed render loop demo and inspection tools",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return o.setup()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd.Context(), o)
		},
	}
	root.SetOut(stdout)
	root.SetErr(os.Stderr)

	f := root.PersistentFlags()
	f.StringVar(&o.configPath, "config", "", "load the window configuration from a TOML or YAML `file`")
	f.BoolVar(&o.noColor, "no-color", false, "disable colored table output")
	f.BoolVar(&o.headless, "headless", false, "use the scripted platform and the software backend")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "log debug output to stderr")
	root.Flags().BoolVar(&o.watch, "watch", false, "reload the configuration file when it changes")
	root.Flags().IntVar(&o.frames, "frames", 3, "frames to render under --headless")

	root.AddCommand(
		newMonitorsCmd(o),
		newEventsCmd(o),
		newReportCmd(o),
		newBackendCmd(o),
		newFontCmd(o),
		newBitmapCmd(o),
		newNumericCmd(o),
	)
	return root
}

// setup installs the logger and loads the configuration file.
func (o *options) setup() error {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	winloop.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if o.configPath == "" {
		return nil
	}
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	o.cfg = cfg
	return nil
}
