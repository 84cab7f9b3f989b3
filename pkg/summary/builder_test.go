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

package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobscope/jobscope/pkg/snapshot"
)

func testSnapshot(ts int64, cpus int, memUsed, memTotal int64) *snapshot.Snapshot {
	snap := &snapshot.Snapshot{Timestamp: ts}
	for i := 0; i < cpus; i++ {
		snap.CPUs.CPUs = append(snap.CPUs.CPUs, snapshot.CPUInfo{
			Index:        i,
			UsagePercent: float64(10 * (i + 1)),
		})
	}
	snap.CPUs.Memory = snapshot.MemoryLoad{UsedBytes: memUsed, TotalBytes: memTotal}
	return snap
}

func TestBuildTimeline(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, snapshot.WriteAtomic(dir, "node-a", testSnapshot(20, 2, 512, 1024)))
	require.NoError(t, snapshot.WriteAtomic(dir, "node-a", testSnapshot(10, 2, 256, 1024)))
	require.NoError(t, snapshot.WriteAtomic(dir, "node-b", testSnapshot(15, 4, 100, 2000)))

	report, err := Build(t.Context(), snapshot.NewStore(dir), 99)
	require.NoError(t, err)

	assert.Equal(t, int64(99), report.GeneratedAt)
	require.Len(t, report.Nodes, 2)

	a := report.Nodes["node-a"]
	require.NotNil(t, a)
	assert.Equal(t, 2, a.CPUCount)
	assert.Equal(t, 2, a.SnapshotCount)
	require.Len(t, a.Snapshots, 2)
	assert.Equal(t, int64(10), a.Snapshots[0].Timestamp)
	assert.Equal(t, int64(20), a.Snapshots[1].Timestamp)
	assert.Equal(t, int64(256), a.Snapshots[0].MemoryUsedBytes)
	assert.InDelta(t, 25.0, a.Snapshots[0].MemoryUsagePercent, 0.001)
	assert.InDelta(t, 15.0, a.Snapshots[0].CPUAvgUsagePercent, 0.001)

	b := report.Nodes["node-b"]
	require.NotNil(t, b)
	assert.Equal(t, 4, b.CPUCount)
	assert.Equal(t, int64(2000), b.MemoryTotalBytes)
}

func TestBuildInventoryRunningMax(t *testing.T) {
	t.Parallel()

	// A still-initializing agent may write zeroed inventory first.
	dir := t.TempDir()
	counts := []int{0, 8, 8, 8}
	for i, n := range counts {
		snap := testSnapshot(int64(i+1), n, 0, int64(n)*1024)
		require.NoError(t, snapshot.WriteAtomic(dir, "node-a", snap))
	}

	report, err := Build(t.Context(), snapshot.NewStore(dir), 50)
	require.NoError(t, err)

	a := report.Nodes["node-a"]
	require.NotNil(t, a)
	assert.Equal(t, 8, a.CPUCount)
	assert.Equal(t, int64(8*1024), a.MemoryTotalBytes)
	assert.Equal(t, 4, a.SnapshotCount)
}

func TestBuildGPUDevices(t *testing.T) {
	t.Parallel()

	first := testSnapshot(1, 1, 0, 1024)
	first.GPUs.GPUs = []snapshot.GPUInfo{
		{Index: 1, Name: "", UsagePercent: 40, MemoryLoad: snapshot.MemoryLoad{UsedBytes: 10, TotalBytes: 0}},
		{Index: 0, Name: "H100", UsagePercent: 20, MemoryLoad: snapshot.MemoryLoad{UsedBytes: 50, TotalBytes: 100}},
	}
	second := testSnapshot(2, 1, 0, 1024)
	second.GPUs.GPUs = []snapshot.GPUInfo{
		{Index: 0, Name: "H100", UsagePercent: 60, MemoryLoad: snapshot.MemoryLoad{UsedBytes: 80, TotalBytes: 100}},
		{Index: 1, Name: "H100", UsagePercent: 70, MemoryLoad: snapshot.MemoryLoad{UsedBytes: 90, TotalBytes: 200}},
	}

	dir := t.TempDir()
	require.NoError(t, snapshot.WriteAtomic(dir, "node-a", first))
	require.NoError(t, snapshot.WriteAtomic(dir, "node-a", second))

	report, err := Build(t.Context(), snapshot.NewStore(dir), 5)
	require.NoError(t, err)

	a := report.Nodes["node-a"]
	require.NotNil(t, a)
	assert.Equal(t, 2, a.GPUCount)

	// Devices sorted by index, name backfilled from the later snapshot,
	// total memory is the running max.
	require.Len(t, a.GPUInfo, 2)
	assert.Equal(t, GPUDevice{Index: 0, Name: "H100", MemoryTotalBytes: 100}, a.GPUInfo[0])
	assert.Equal(t, GPUDevice{Index: 1, Name: "H100", MemoryTotalBytes: 200}, a.GPUInfo[1])

	// Per-sample GPU slices follow device index order, not wire order.
	require.Len(t, a.Snapshots, 2)
	assert.Equal(t, []float64{20, 40}, a.Snapshots[0].GPUUsagePercent)
	assert.Equal(t, []int64{50, 10}, a.Snapshots[0].GPUMemoryUsedBytes)
	assert.Equal(t, []float64{60, 70}, a.Snapshots[1].GPUUsagePercent)
}

func TestBuildMissingDir(t *testing.T) {
	t.Parallel()

	_, err := Build(t.Context(), snapshot.NewStore("/does/not/exist"), 1)
	assert.Error(t, err)
}
