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

package worker

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"syscall"

	"github.com/jobscope/jobscope/pkg/defaults"
	"github.com/jobscope/jobscope/pkg/errors"
	"github.com/jobscope/jobscope/pkg/slurm"
)

// slurmLauncher attaches one monitoring agent per node to a running
// Slurm job by adding an srun step inside the job's allocation.
type slurmLauncher struct {
	cfg    Config
	runner slurm.Runner
}

func (l *slurmLauncher) Launch(ctx context.Context) (Handle, error) {
	probe := slurm.NewProbe(l.runner, l.cfg.JobID)
	if err := probe.WaitForRunning(ctx); err != nil {
		return nil, err
	}
	alloc := probe.Resources(ctx)

	// Sweep leftover steps from a previous controller before adding ours.
	slurm.NewReaper(l.runner, l.cfg.AgentBinary).Reap(ctx, l.cfg.JobID)

	// Resolve here and pass the result to srun, so the compute nodes
	// never depend on their own PATH to find the agent.
	agentPath, err := exec.LookPath(l.cfg.AgentBinary)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeBinaryNotFound,
			"monitoring agent not found on PATH", err,
			map[string]any{"binary": l.cfg.AgentBinary})
	}

	args := l.srunArgs(alloc, agentPath)
	slog.Info("attaching monitoring step",
		"job_id", l.cfg.JobID,
		"nodes", alloc.NodeCount,
		"cpus_per_node", alloc.CPUsPerNode,
		"args", args)

	cmd := exec.Command("srun", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		spawnFailures.Inc()
		return nil, errors.Wrap(errors.ErrCodeSpawnFailed, "failed to start srun", err)
	}
	launches.WithLabelValues(string(ModeSlurm)).Inc()

	h := newProcHandle(cmd, &stderr)
	// srun needs longer than a plain fork to surface allocation errors.
	if err := checkEarlyExit(ctx, h, defaults.DistributedSpawnCheckDelay); err != nil {
		return nil, err
	}
	return h, nil
}

// srunArgs builds the srun command line: one task per node, overlapping
// the job's own steps, forwarding the memory hint through the step
// environment when it is known. agentPath must already be resolved.
func (l *slurmLauncher) srunArgs(alloc slurm.Allocation, agentPath string) []string {
	args := []string{"--jobid", l.cfg.JobID, "--ntasks-per-node=1", "--overlap"}
	if alloc.NodeCount != "" {
		args = append(args, "--nodes="+alloc.NodeCount)
	}
	if alloc.CPUsPerNode != "" {
		args = append(args, "--cpus-per-task="+alloc.CPUsPerNode)
	}
	if alloc.MemoryTotalMB != nil {
		args = append(args, fmt.Sprintf("--export=ALL,JOBSCOPE_MEM_TOTAL_MB=%d", *alloc.MemoryTotalMB))
	}
	args = append(args, agentPath)
	return append(args, agentArgs(l.cfg, "slurm")...)
}
