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
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jobscope/jobscope/pkg/errors"
	"github.com/jobscope/jobscope/pkg/slurm"
)

// Mode selects which launcher runs the monitoring agents.
type Mode string

const (
	// ModeLocal runs a single agent process on this host.
	ModeLocal Mode = "local"
	// ModeSlurm attaches one agent per node to a running Slurm job.
	ModeSlurm Mode = "slurm"
	// ModeDemo generates synthetic snapshots in-process.
	ModeDemo Mode = "demo"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeLocal, ModeSlurm, ModeDemo:
		return Mode(s), nil
	default:
		return "", errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown mode %q, expected local, slurm or demo", s))
	}
}

// DefaultAgentBinary is the monitoring agent looked up on PATH when no
// explicit binary is configured.
const DefaultAgentBinary = "jobscope-agent"

// Config describes one monitoring session's workers.
type Config struct {
	Mode        Mode
	OutputDir   string
	Period      time.Duration
	Once        bool
	AgentBinary string

	// JobID is required in slurm mode and ignored otherwise.
	JobID string

	// Demo mode shape.
	DemoNodes int
	DemoCPUs  int
	DemoGPUs  int
}

// Validate checks the config and fills in defaults.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "output directory is required")
	}
	if c.Period <= 0 {
		return errors.New(errors.ErrCodeInvalidRequest, "period must be positive")
	}
	if c.AgentBinary == "" {
		c.AgentBinary = DefaultAgentBinary
	}
	switch c.Mode {
	case ModeLocal:
	case ModeSlurm:
		if c.JobID == "" {
			return errors.New(errors.ErrCodeInvalidRequest, "slurm mode requires a job id")
		}
	case ModeDemo:
		if c.DemoNodes <= 0 {
			c.DemoNodes = 2
		}
		if c.DemoCPUs <= 0 {
			c.DemoCPUs = 4
		}
		if c.DemoGPUs < 0 {
			c.DemoGPUs = 0
		}
	default:
		return errors.New(errors.ErrCodeInvalidRequest, fmt.Sprintf("unknown mode %q", c.Mode))
	}
	return nil
}

// Launcher starts the monitoring workers for one session.
type Launcher interface {
	Launch(ctx context.Context) (Handle, error)
}

// NewLauncher returns the launcher for the configured mode. The runner
// is only consulted in slurm mode.
func NewLauncher(cfg Config, runner slurm.Runner) (Launcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Mode {
	case ModeLocal:
		return &localLauncher{cfg: cfg}, nil
	case ModeSlurm:
		return &slurmLauncher{cfg: cfg, runner: runner}, nil
	case ModeDemo:
		return &demoLauncher{cfg: cfg}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidRequest, fmt.Sprintf("unknown mode %q", cfg.Mode))
}

// agentArgs builds the agent's command line for the given mode.
func agentArgs(cfg Config, mode string) []string {
	args := []string{
		"--output", cfg.OutputDir,
		"--period", strconv.Itoa(int(cfg.Period / time.Second)),
		"--mode", mode,
	}
	if !cfg.Once {
		args = append(args, "--continuous")
	}
	return args
}
