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
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jobscope/jobscope/pkg/defaults"
	"github.com/jobscope/jobscope/pkg/errors"
)

// Allocation describes the shape of a running job's node allocation.
// Fields are kept as the scheduler reported them so they can be passed
// straight back to srun. Empty or nil fields mean the scheduler did not
// provide a usable value and the corresponding srun flag is omitted.
type Allocation struct {
	// NodeCount is the squeue %D value, e.g. "4".
	NodeCount string
	// CPUsPerNode is the first integer of the squeue %c value.
	CPUsPerNode string
	// MemoryTotalMB is the per-node memory limit, nil when unknown.
	MemoryTotalMB *int64
}

// Probe polls one job's scheduler state.
type Probe struct {
	runner   Runner
	jobID    string
	interval time.Duration
}

// NewProbe returns a Probe for jobID polling at the default interval.
func NewProbe(runner Runner, jobID string) *Probe {
	return &Probe{
		runner:   runner,
		jobID:    jobID,
		interval: defaults.JobPollInterval,
	}
}

// State queries the job's current state once.
func (p *Probe) State(ctx context.Context) (JobState, error) {
	out, err := p.runner.Run(ctx, "squeue", "--job", p.jobID, "--noheader", "--format=%t")
	if err != nil {
		return StateUnknown, err
	}
	code := firstLine(out)
	if code == "" {
		return StateUnknown, errors.NewWithContext(
			errors.ErrCodeJobNotFound,
			"job not known to the scheduler",
			map[string]any{"job_id": p.jobID},
		)
	}
	return ParseJobState(code), nil
}

// WaitForRunning polls until the job is running. It fails fast when the
// scheduler query itself errors, the job is unknown, or the job reaches
// a terminal state; pending and unrecognized states keep the poll alive
// until ctx is cancelled.
func (p *Probe) WaitForRunning(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		state, err := p.State(ctx)
		if err != nil {
			return err
		}
		pollCycles.Inc()

		switch {
		case state == StateRunning:
			return nil
		case state.Terminal():
			return errors.NewWithContext(
				errors.ErrCodeJobTerminal,
				fmt.Sprintf("job is %s, nothing to monitor", state),
				map[string]any{"job_id": p.jobID},
			)
		}
		slog.Debug("waiting for job", "job_id", p.jobID, "state", state)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Resources discovers the job's allocation shape. Discovery is best
// effort: any individual query that fails leaves its field unset and
// never fails the call.
func (p *Probe) Resources(ctx context.Context) Allocation {
	var alloc Allocation

	if out, err := p.runner.Run(ctx, "squeue", "--job", p.jobID, "--noheader", "--format=%D"); err == nil {
		alloc.NodeCount = firstLine(out)
	} else {
		slog.Warn("node count discovery failed", "job_id", p.jobID, "error", err)
	}

	cpusPerNode := 0
	if out, err := p.runner.Run(ctx, "squeue", "--job", p.jobID, "--noheader", "--format=%c"); err == nil {
		if n, ok := firstInt(firstLine(out)); ok && n > 0 {
			cpusPerNode = n
			alloc.CPUsPerNode = fmt.Sprintf("%d", n)
		}
	} else {
		slog.Warn("cpu count discovery failed", "job_id", p.jobID, "error", err)
	}

	if out, err := p.runner.Run(ctx, "scontrol", "show", "job", "-o", p.jobID); err == nil {
		alloc.MemoryTotalMB = resolveMemoryMB(parseJobFields(out), cpusPerNode)
	} else {
		slog.Warn("memory discovery failed", "job_id", p.jobID, "error", err)
	}

	return alloc
}

// firstLine returns the first line of out with surrounding space removed.
func firstLine(out string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	return strings.TrimSpace(line)
}
