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

	"github.com/urfave/cli/v3"

	"github.com/jobscope/jobscope/pkg/scope"
	"github.com/jobscope/jobscope/pkg/worker"
)

func demoCmd() *cli.Command {
	return &cli.Command{
		Name:                  "demo",
		EnableShellCompletion: true,
		Usage:                 "Run a synthetic node fleet, no scheduler or agent needed",
		Description: `Generate synthetic snapshots for a fake fleet and run the full
session against them. Useful for trying the live view and the report
pipeline without a cluster.`,
		Flags: append(sessionFlags(),
			&cli.IntFlag{
				Name:  "nodes",
				Value: 2,
				Usage: "Number of synthetic nodes",
			},
			&cli.IntFlag{
				Name:  "cpus",
				Value: 4,
				Usage: "CPU cores per synthetic node",
			},
			&cli.IntFlag{
				Name:  "gpus",
				Value: 1,
				Usage: "GPUs per synthetic node",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts := sessionOptions(cmd, worker.Config{
				Mode:      worker.ModeDemo,
				DemoNodes: int(cmd.Int("nodes")),
				DemoCPUs:  int(cmd.Int("cpus")),
				DemoGPUs:  int(cmd.Int("gpus")),
			})

			session, err := scope.NewSession(opts, nil)
			if err != nil {
				return err
			}
			return session.Run(ctx)
		},
	}
}
