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
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/jobscope/jobscope/pkg/defaults"
	"github.com/jobscope/jobscope/pkg/errors"
)

// Runner executes one scheduler CLI command and returns its stdout.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

type execRunner struct {
	timeout time.Duration
}

// NewRunner returns a Runner that shells out to the real scheduler
// binaries with a bounded per-command timeout.
func NewRunner() Runner {
	return &execRunner{timeout: defaults.SchedulerQueryTimeout}
}

func (r *execRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	queries.WithLabelValues(name).Inc()
	if err := cmd.Run(); err != nil {
		queryErrors.Inc()
		return "", errors.WrapWithContext(
			errors.ErrCodeSchedulerQuery,
			fmt.Sprintf("%s command failed", name),
			err,
			map[string]any{
				"args":   strings.Join(args, " "),
				"stderr": strings.TrimSpace(stderr.String()),
			},
		)
	}
	return stdout.String(), nil
}
