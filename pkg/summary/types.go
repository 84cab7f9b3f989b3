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

// Report is the postmortem document written when a monitoring session ends.
type Report struct {
	GeneratedAt int64                   `json:"generated_at" yaml:"generated_at"`
	Nodes       map[string]*NodeSummary `json:"nodes" yaml:"nodes"`
}

// NodeSummary is one node's aggregated hardware inventory and sample timeline.
type NodeSummary struct {
	CPUCount         int         `json:"cpu_count" yaml:"cpu_count"`
	GPUCount         int         `json:"gpu_count" yaml:"gpu_count"`
	MemoryTotalBytes int64       `json:"memory_total_bytes" yaml:"memory_total_bytes"`
	GPUInfo          []GPUDevice `json:"gpu_info" yaml:"gpu_info"`
	Snapshots        []Sample    `json:"snapshots" yaml:"snapshots"`
	SnapshotCount    int         `json:"snapshot_count" yaml:"snapshot_count"`
}

// GPUDevice is one GPU's stable identity within a node summary.
type GPUDevice struct {
	Index            int    `json:"index" yaml:"index"`
	Name             string `json:"name" yaml:"name"`
	MemoryTotalBytes int64  `json:"memory_total_bytes" yaml:"memory_total_bytes"`
}

// Sample is one snapshot reduced to its utilization figures. The GPU slices
// are ordered by device index and share indexes with NodeSummary.GPUInfo.
type Sample struct {
	Timestamp             int64     `json:"timestamp" yaml:"timestamp"`
	CPUAvgUsagePercent    float64   `json:"cpu_avg_usage_percent" yaml:"cpu_avg_usage_percent"`
	MemoryUsedBytes       int64     `json:"memory_used_bytes" yaml:"memory_used_bytes"`
	MemoryUsagePercent    float64   `json:"memory_usage_percent" yaml:"memory_usage_percent"`
	GPUUsagePercent       []float64 `json:"gpu_usage_percent" yaml:"gpu_usage_percent"`
	GPUMemoryUsedBytes    []int64   `json:"gpu_memory_used_bytes" yaml:"gpu_memory_used_bytes"`
	GPUMemoryUsagePercent []float64 `json:"gpu_memory_usage_percent" yaml:"gpu_memory_usage_percent"`
}
