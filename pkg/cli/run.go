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

	"github.com/jobscope/jobscope/pkg/scope"
	"github.com/jobscope/jobscope/pkg/slurm"
	"github.com/jobscope/jobscope/pkg/worker"
)

func runCmd() *cli.Command {
	return &cli.Command{
		Name:                  "run",
		EnableShellCompletion: true,
		Usage:                 "Monitor a running Slurm job, or this host",
		Description: `Attach per-node monitoring agents to a running Slurm job and watch
their snapshots until interrupted. With --mode local a single agent
runs on this host instead and no job id is needed.

The job must already be running; pending jobs are waited on, jobs in a
terminal state are rejected. On exit the agents are stopped, stale
monitoring steps are cancelled, and with --summary an aggregated
report is written.`,
		Flags: append(sessionFlags(),
			&cli.StringFlag{
				Name:    "jobid",
				Aliases: []string{"j"},
				Usage:   "Slurm job id to monitor",
				Sources: cli.EnvVars("JOBSCOPE_JOBID"),
			},
			&cli.StringFlag{
				Name:  "mode",
				Value: string(worker.ModeSlurm),
				Usage: "Where the agents run (slurm or local)",
			},
			&cli.StringFlag{
				Name:    "agent-binary",
				Value:   worker.DefaultAgentBinary,
				Usage:   "Monitoring agent binary, resolved on PATH",
				Sources: cli.EnvVars("JOBSCOPE_AGENT"),
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			mode, err := worker.ParseMode(cmd.String("mode"))
			if err != nil {
				return err
			}
			if mode == worker.ModeDemo {
				return fmt.Errorf("use the demo command for demo mode")
			}
			if mode == worker.ModeSlurm && cmd.String("jobid") == "" {
				return fmt.Errorf("a job id is required, set --jobid")
			}

			opts := sessionOptions(cmd, worker.Config{
				Mode:        mode,
				JobID:       cmd.String("jobid"),
				AgentBinary: cmd.String("agent-binary"),
			})

			session, err := scope.NewSession(opts, slurm.NewRunner())
			if err != nil {
				return err
			}
			return session.Run(ctx)
		},
	}
}
