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

	"github.com/urfave/cli/v3"

	"github.com/jobscope/jobscope/pkg/serializer"
	"github.com/jobscope/jobscope/pkg/snapshot"
	"github.com/jobscope/jobscope/pkg/summary"
)

func summaryCmd() *cli.Command {
	return &cli.Command{
		Name:                  "summary",
		EnableShellCompletion: true,
		Usage:                 "Aggregate an existing snapshot directory into a report",
		Description: `Build the postmortem report from snapshot files left behind by a
previous session (or written by agents directly). Nothing is launched
and nothing is deleted; the directory is read as-is.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "dir",
				Usage:    "Snapshot directory to aggregate",
				Required: true,
				Sources:  cli.EnvVars("JOBSCOPE_DIR"),
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat := serializer.Format(cmd.String("format"))
			if outFormat.IsUnknown() {
				return fmt.Errorf("unknown output format: %q", outFormat)
			}

			store := snapshot.NewStore(cmd.String("dir"))
			report, err := summary.Build(ctx, store, generatedAt())
			if err != nil {
				return fmt.Errorf("error aggregating %q: %w", cmd.String("dir"), err)
			}

			ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer closeSerializer(ser)
			return ser.Serialize(ctx, report)
		},
	}
}
