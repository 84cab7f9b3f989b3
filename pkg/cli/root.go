// Copyright (c) 2025, Jobscope Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/jobscope/jobscope/pkg/defaults"
	"github.com/jobscope/jobscope/pkg/logging"
	"github.com/jobscope/jobscope/pkg/scope"
	"github.com/jobscope/jobscope/pkg/serializer"
	"github.com/jobscope/jobscope/pkg/server"
	"github.com/jobscope/jobscope/pkg/worker"
)

const (
	name           = "jobscope"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Flags shared by every command that writes serialized output.
var (
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Write to this file instead of stdout",
	}
	formatFlag = &cli.StringFlag{
		Name:  "format",
		Value: string(serializer.FormatJSON),
		Usage: fmt.Sprintf("Output format (supported values: %s)", serializer.SupportedFormats()),
	}
)

// sessionFlags are shared by the run and demo commands.
func sessionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "dir",
			Usage:   "Snapshot directory shared with the agents (default: session temp dir)",
			Sources: cli.EnvVars("JOBSCOPE_DIR"),
		},
		&cli.DurationFlag{
			Name:  "period",
			Value: defaults.RefreshPeriod,
			Usage: "Snapshot write and poll cadence",
		},
		&cli.BoolFlag{
			Name:  "once",
			Usage: "Capture a single snapshot round and exit",
		},
		&cli.BoolFlag{
			Name:  "headless",
			Usage: "Suppress the live table output",
		},
		&cli.BoolFlag{
			Name:  "summary",
			Usage: "Write an aggregated report when the session ends",
		},
		&cli.StringFlag{
			Name:  "summary-output",
			Usage: "Report destination (default: stdout)",
		},
		&cli.BoolFlag{
			Name:  "serve",
			Usage: "Expose live session state over HTTP",
		},
		&cli.StringFlag{
			Name:    "addr",
			Value:   ":8080",
			Usage:   "Listen address for --serve",
			Sources: cli.EnvVars("JOBSCOPE_ADDR"),
		},
	}
}

// sessionOptions builds scope options from the shared session flags.
func sessionOptions(cmd *cli.Command, workerCfg worker.Config) scope.Options {
	workerCfg.OutputDir = cmd.String("dir")
	workerCfg.Period = cmd.Duration("period")
	workerCfg.Once = cmd.Bool("once")

	opts := scope.Options{
		Worker:      workerCfg,
		Refresh:     cmd.Duration("period"),
		Headless:    cmd.Bool("headless"),
		Summary:     cmd.Bool("summary"),
		SummaryPath: cmd.String("summary-output"),
		Serve:       cmd.Bool("serve"),
	}
	if opts.Serve {
		cfg := server.NewConfig()
		cfg.Name = name
		cfg.Version = version
		cfg.Address = cmd.String("addr")
		opts.ServerConfig = cfg
	}
	return opts
}

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:    name,
		Usage:   "Per-node resource monitoring for Slurm jobs",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("JOBSCOPE_LOG_LEVEL"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			runCmd(),
			demoCmd(),
			summaryCmd(),
			reportCmd(),
		},
	}
}

// Execute runs the command tree with signal-driven cancellation. It is
// called by main and exits the process on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// closeSerializer closes file-backed writers, ignoring stdout ones.
func closeSerializer(s serializer.Serializer) {
	if c, ok := s.(serializer.Closer); ok {
		_ = c.Close()
	}
}

// generatedAt is the report clock, a variable for tests.
var generatedAt = func() int64 { return time.Now().Unix() }
