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

package slurm

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
)

// Reaper cancels leftover monitoring steps attached to a job. A crashed
// controller can leave its srun step running inside the allocation; the
// next attach (and every teardown) sweeps those away first so at most
// one monitoring step exists per job.
type Reaper struct {
	runner   Runner
	stepName string
}

// NewReaper returns a Reaper that cancels steps named after binary.
// Slurm names a step after its command's basename, so binary may be a
// bare name or a full path.
func NewReaper(runner Runner, binary string) *Reaper {
	return &Reaper{runner: runner, stepName: filepath.Base(binary)}
}

// Reap finds and cancels matching steps of jobID, returning how many it
// cancelled. Reap is idempotent and never fails: query or cancel errors
// are logged and the sweep moves on.
func (r *Reaper) Reap(ctx context.Context, jobID string) int {
	out, err := r.runner.Run(ctx, "squeue", "--steps", "--job", jobID, "--noheader", "--format=%i %j")
	if err != nil {
		slog.Warn("step listing failed", "job_id", jobID, "error", err)
		return 0
	}

	reaped := 0
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || filepath.Base(fields[1]) != r.stepName {
			continue
		}
		stepID := fields[0]
		if _, err := r.runner.Run(ctx, "scancel", stepID); err != nil {
			slog.Warn("step cancel failed", "job_id", jobID, "step_id", stepID, "error", err)
			continue
		}
		slog.Info("cancelled stale monitoring step", "job_id", jobID, "step_id", stepID)
		stepsReaped.Inc()
		reaped++
	}
	return reaped
}
