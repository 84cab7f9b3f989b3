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

package scope

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobscope/jobscope/pkg/errors"
	"github.com/jobscope/jobscope/pkg/serializer"
	"github.com/jobscope/jobscope/pkg/snapshot"
	"github.com/jobscope/jobscope/pkg/summary"
	"github.com/jobscope/jobscope/pkg/worker"
)

func demoOptions(t *testing.T) Options {
	t.Helper()
	return Options{
		Worker: worker.Config{
			Mode:      worker.ModeDemo,
			OutputDir: t.TempDir(),
			Period:    10 * time.Millisecond,
			DemoNodes: 2,
			DemoCPUs:  2,
			DemoGPUs:  1,
		},
		Refresh:  10 * time.Millisecond,
		Headless: true,
	}
}

func TestNewSessionTempDir(t *testing.T) {
	opts := demoOptions(t)
	opts.Worker.OutputDir = ""

	s, err := NewSession(opts, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(s.Dir()) })

	assert.NotEmpty(t, s.ID())
	assert.Contains(t, s.Dir(), "jobscope-")
	assert.DirExists(t, s.Dir())
}

func TestNodesBeforeFirstPoll(t *testing.T) {
	t.Parallel()

	s, err := NewSession(demoOptions(t), nil)
	require.NoError(t, err)

	_, err = s.Nodes(t.Context())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUnavailable, errors.CodeOf(err))
}

func TestNodeStatusConversion(t *testing.T) {
	t.Parallel()

	snap := &snapshot.Snapshot{Timestamp: 50}
	snap.CPUs.CPUs = []snapshot.CPUInfo{{Index: 0, UsagePercent: 10}, {Index: 1, UsagePercent: 30}}
	snap.CPUs.Memory = snapshot.MemoryLoad{UsedBytes: 256, TotalBytes: 1024}
	snap.GPUs.GPUs = []snapshot.GPUInfo{{
		Index:        0,
		UsagePercent: 80,
		MemoryLoad:   snapshot.MemoryLoad{UsedBytes: 40, TotalBytes: 100},
	}}

	st := nodeStatus(snap)
	assert.Equal(t, int64(50), st.Timestamp)
	assert.InDelta(t, 20.0, st.CPUAvgUsagePercent, 0.001)
	assert.InDelta(t, 25.0, st.MemoryUsagePercent, 0.001)
	assert.Equal(t, []float64{80}, st.GPUUsagePercent)
	assert.InDelta(t, 40.0, st.GPUMemoryUsagePercent[0], 0.001)
}

func TestRunDemoSessionWritesReport(t *testing.T) {
	t.Parallel()

	opts := demoOptions(t)
	opts.Summary = true
	opts.SummaryPath = filepath.Join(t.TempDir(), "report.json")

	s, err := NewSession(opts, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(t.Context(), 100*time.Millisecond)
	defer cancel()
	require.NoError(t, s.Run(ctx))

	report, err := serializer.FromFile[summary.Report](opts.SummaryPath)
	require.NoError(t, err)
	assert.Len(t, report.Nodes, 2)
	for host, node := range report.Nodes {
		assert.Positive(t, node.SnapshotCount, "host %s", host)
		assert.Equal(t, 2, node.CPUCount, "host %s", host)
	}
}

func TestRunSessionNodesAfterPoll(t *testing.T) {
	t.Parallel()

	opts := demoOptions(t)
	s, err := NewSession(opts, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(t.Context(), 100*time.Millisecond)
	defer cancel()
	require.NoError(t, s.Run(ctx))

	nodes, err := s.Nodes(t.Context())
	require.NoError(t, err)
	assert.Len(t, nodes, 2)
}

func TestRenderView(t *testing.T) {
	t.Parallel()

	s, err := NewSession(demoOptions(t), nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	s.out = &buf

	snap := &snapshot.Snapshot{Timestamp: time.Now().Unix()}
	snap.CPUs.CPUs = []snapshot.CPUInfo{{Index: 0, UsagePercent: 50}}
	snap.CPUs.Memory = snapshot.MemoryLoad{UsedBytes: 1, TotalBytes: 2}

	s.renderView(map[string]snapshot.Entry{
		"node-b": {Snapshot: snap},
		"node-a": {Snapshot: snap},
	})

	out := buf.String()
	assert.Contains(t, out, "NODE")
	// sorted by hostname
	assert.Less(t, strings.Index(out, "node-a"), strings.Index(out, "node-b"))
	// no GPUs reported
	assert.Contains(t, out, "-")
}
