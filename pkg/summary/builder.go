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
	"context"
	"fmt"
	"sort"

	"github.com/jobscope/jobscope/pkg/snapshot"
)

// Build aggregates every readable snapshot in the store into a Report.
// Nodes whose snapshots are all unreadable simply do not appear; a missing
// snapshot directory is an error, an empty one yields an empty report.
func Build(ctx context.Context, store *snapshot.Store, generatedAt int64) (*Report, error) {
	byHost, err := store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot history: %w", err)
	}

	report := &Report{
		GeneratedAt: generatedAt,
		Nodes:       make(map[string]*NodeSummary, len(byHost)),
	}
	for host, entries := range byHost {
		if len(entries) == 0 {
			continue
		}
		report.Nodes[host] = buildNode(entries)
	}
	return report, nil
}

// buildNode folds one node's ascending snapshot timeline into a summary.
// Inventory fields take the running maximum so that zeroed or partial
// values from a still-initializing agent never shadow later real ones.
func buildNode(entries []snapshot.Entry) *NodeSummary {
	node := &NodeSummary{
		Snapshots:     make([]Sample, 0, len(entries)),
		SnapshotCount: len(entries),
	}
	devices := make(map[int]*GPUDevice)

	for _, entry := range entries {
		snap := entry.Snapshot

		if n := len(snap.CPUs.CPUs); n > node.CPUCount {
			node.CPUCount = n
		}
		if n := len(snap.GPUs.GPUs); n > node.GPUCount {
			node.GPUCount = n
		}
		if total := snap.CPUs.Memory.TotalBytes; total > node.MemoryTotalBytes {
			node.MemoryTotalBytes = total
		}
		for _, gpu := range snap.GPUs.GPUs {
			dev, ok := devices[gpu.Index]
			if !ok {
				dev = &GPUDevice{Index: gpu.Index}
				devices[gpu.Index] = dev
			}
			if dev.Name == "" {
				dev.Name = gpu.Name
			}
			if gpu.MemoryLoad.TotalBytes > dev.MemoryTotalBytes {
				dev.MemoryTotalBytes = gpu.MemoryLoad.TotalBytes
			}
		}

		node.Snapshots = append(node.Snapshots, buildSample(snap))
	}

	node.GPUInfo = make([]GPUDevice, 0, len(devices))
	for _, dev := range devices {
		node.GPUInfo = append(node.GPUInfo, *dev)
	}
	sort.Slice(node.GPUInfo, func(i, j int) bool {
		return node.GPUInfo[i].Index < node.GPUInfo[j].Index
	})
	return node
}

func buildSample(snap *snapshot.Snapshot) Sample {
	sample := Sample{
		Timestamp:          snap.Timestamp,
		CPUAvgUsagePercent: snap.CPUs.AverageUsage(),
		MemoryUsedBytes:    snap.CPUs.Memory.UsedBytes,
		MemoryUsagePercent: snap.CPUs.Memory.UsagePercent(),
	}

	gpus := make([]snapshot.GPUInfo, len(snap.GPUs.GPUs))
	copy(gpus, snap.GPUs.GPUs)
	sort.Slice(gpus, func(i, j int) bool { return gpus[i].Index < gpus[j].Index })

	sample.GPUUsagePercent = make([]float64, 0, len(gpus))
	sample.GPUMemoryUsedBytes = make([]int64, 0, len(gpus))
	sample.GPUMemoryUsagePercent = make([]float64, 0, len(gpus))
	for _, gpu := range gpus {
		sample.GPUUsagePercent = append(sample.GPUUsagePercent, gpu.UsagePercent)
		sample.GPUMemoryUsedBytes = append(sample.GPUMemoryUsedBytes, gpu.MemoryLoad.UsedBytes)
		sample.GPUMemoryUsagePercent = append(sample.GPUMemoryUsagePercent, gpu.MemoryLoad.UsagePercent())
	}
	return sample
}
