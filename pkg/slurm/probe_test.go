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
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobscope/jobscope/pkg/errors"
)

// fakeRunner replays canned scheduler output. State queries pop codes
// off a script; other commands are answered from the byFormat map keyed
// by their format flag (or command name for scontrol).
type fakeRunner struct {
	script   []string
	byFormat map[string]string
	fail     map[string]error
	calls    []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (string, error) {
	call := name + " " + strings.Join(args, " ")
	f.calls = append(f.calls, call)

	key := name
	for _, arg := range args {
		if strings.HasPrefix(arg, "--format=") {
			key = strings.TrimPrefix(arg, "--format=")
		}
	}
	if err, ok := f.fail[key]; ok {
		return "", err
	}
	if key == "%t" && len(f.script) > 0 {
		out := f.script[0]
		f.script = f.script[1:]
		return out, nil
	}
	return f.byFormat[key], nil
}

func testProbe(runner Runner) *Probe {
	p := NewProbe(runner, "42")
	p.interval = time.Millisecond
	return p
}

func TestWaitForRunningEventually(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{script: []string{"PD\n", "PD\n", "R\n"}}
	err := testProbe(runner).WaitForRunning(t.Context())
	require.NoError(t, err)
	assert.Len(t, runner.calls, 3)
}

func TestWaitForRunningTerminal(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{script: []string{"PD\n", "CA\n"}}
	err := testProbe(runner).WaitForRunning(t.Context())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeJobTerminal, errors.CodeOf(err))
}

func TestWaitForRunningUnknownJob(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{script: []string{"\n"}}
	err := testProbe(runner).WaitForRunning(t.Context())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeJobNotFound, errors.CodeOf(err))
}

func TestWaitForRunningQueryFailure(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{
		fail: map[string]error{"%t": errors.New(errors.ErrCodeSchedulerQuery, "squeue exploded")},
	}
	err := testProbe(runner).WaitForRunning(t.Context())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSchedulerQuery, errors.CodeOf(err))
	// fail fast, no retry
	assert.Len(t, runner.calls, 1)
}

func TestWaitForRunningContextCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()

	runner := &fakeRunner{byFormat: map[string]string{"%t": "PD\n"}}
	err := testProbe(runner).WaitForRunning(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestResources(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{byFormat: map[string]string{
		"%D":       "3\n",
		"%c":       "8\n8\n",
		"scontrol": "JobId=42 ReqMem=4Gn NumNodes=3 NumCPUs=24\n",
	}}
	alloc := testProbe(runner).Resources(t.Context())

	assert.Equal(t, "3", alloc.NodeCount)
	assert.Equal(t, "8", alloc.CPUsPerNode)
	require.NotNil(t, alloc.MemoryTotalMB)
	assert.Equal(t, int64(4096), *alloc.MemoryTotalMB)
}

func TestResourcesBestEffort(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{
		byFormat: map[string]string{"%D": "2\n"},
		fail: map[string]error{
			"%c":       errors.New(errors.ErrCodeSchedulerQuery, "boom"),
			"scontrol": errors.New(errors.ErrCodeSchedulerQuery, "boom"),
		},
	}
	alloc := testProbe(runner).Resources(t.Context())

	assert.Equal(t, "2", alloc.NodeCount)
	assert.Empty(t, alloc.CPUsPerNode)
	assert.Nil(t, alloc.MemoryTotalMB)
}
