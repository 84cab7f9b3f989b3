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
	"log/slog"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/jobscope/jobscope/pkg/defaults"
	"github.com/jobscope/jobscope/pkg/errors"
)

// localLauncher runs a single agent process on this host.
type localLauncher struct {
	cfg Config
}

func (l *localLauncher) Launch(ctx context.Context) (Handle, error) {
	path, err := exec.LookPath(l.cfg.AgentBinary)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeBinaryNotFound,
			"monitoring agent not found on PATH", err,
			map[string]any{"binary": l.cfg.AgentBinary})
	}

	cmd := exec.Command(path, agentArgs(l.cfg, "local")...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		spawnFailures.Inc()
		return nil, errors.Wrap(errors.ErrCodeSpawnFailed, "failed to start monitoring agent", err)
	}
	launches.WithLabelValues(string(ModeLocal)).Inc()
	slog.Info("monitoring agent started", "pid", cmd.Process.Pid, "binary", path)

	h := newProcHandle(cmd, &stderr)
	if err := checkEarlyExit(ctx, h, defaults.SpawnCheckDelay); err != nil {
		return nil, err
	}
	return h, nil
}

// checkEarlyExit gives a freshly spawned process a moment to fail.
// A process that dies within the delay is a launch error, not a
// session; its stderr is attached to the returned error.
func checkEarlyExit(ctx context.Context, h *procHandle, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		h.ForceKill()
		_ = h.Wait(delay)
		return ctx.Err()
	case <-timer.C:
	case <-h.done:
	}

	exited, exitErr := h.exited()
	if !exited {
		return nil
	}
	spawnFailures.Inc()
	return errors.WrapWithContext(errors.ErrCodeSpawnFailed,
		"monitoring agent exited immediately", exitErr,
		map[string]any{"stderr": strings.TrimSpace(h.stderr.String())})
}
