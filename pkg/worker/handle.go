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
	"os/exec"
	"syscall"
	"time"

	"github.com/jobscope/jobscope/pkg/errors"
)

// Handle controls a running set of monitoring workers. SignalStop and
// ForceKill are safe to call more than once and in any order; Wait may
// be called repeatedly and keeps returning the same exit result once
// the workers are gone.
type Handle interface {
	// SignalStop asks the workers to exit gracefully.
	SignalStop()
	// Wait blocks until the workers exit or timeout elapses.
	Wait(timeout time.Duration) error
	// ForceKill terminates the workers immediately.
	ForceKill()
}

// procHandle wraps an agent (or srun) process started in its own
// process group, so signals reach the whole tree.
type procHandle struct {
	cmd    *exec.Cmd
	stderr *bytes.Buffer
	done   chan struct{}
	err    error
}

// newProcHandle starts reaping cmd, which must already be running.
func newProcHandle(cmd *exec.Cmd, stderr *bytes.Buffer) *procHandle {
	h := &procHandle{
		cmd:    cmd,
		stderr: stderr,
		done:   make(chan struct{}),
	}
	go func() {
		h.err = cmd.Wait()
		close(h.done)
	}()
	return h
}

func (h *procHandle) signal(sig syscall.Signal) {
	select {
	case <-h.done:
		return
	default:
	}
	// Negative pid targets the whole process group.
	_ = syscall.Kill(-h.cmd.Process.Pid, sig)
}

func (h *procHandle) SignalStop() {
	h.signal(syscall.SIGTERM)
}

func (h *procHandle) ForceKill() {
	h.signal(syscall.SIGKILL)
}

func (h *procHandle) Wait(timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-h.done:
		return h.err
	case <-timer.C:
		return errors.New(errors.ErrCodeTeardownTimeout, "worker still running after wait timeout")
	}
}

// exited reports whether the process has already finished, returning
// its exit error when it has.
func (h *procHandle) exited() (bool, error) {
	select {
	case <-h.done:
		return true, h.err
	default:
		return false, nil
	}
}
