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

package snapshot

import "sort"

// MemoryLoad describes used and total bytes for one memory domain
// (system RAM or a single GPU's VRAM).
type MemoryLoad struct {
	UsedBytes  int64 `json:"used_bytes" yaml:"used_bytes"`
	TotalBytes int64 `json:"total_bytes" yaml:"total_bytes"`
}

// UsagePercent returns used/total as a percentage, or 0 when total is zero.
func (m MemoryLoad) UsagePercent() float64 {
	if m.TotalBytes == 0 {
		return 0
	}
	return float64(m.UsedBytes) / float64(m.TotalBytes) * 100
}

// CPUInfo is one CPU core's utilization sample.
type CPUInfo struct {
	Index        int     `json:"index" yaml:"index"`
	Name         string  `json:"name,omitempty" yaml:"name,omitempty"`
	UsagePercent float64 `json:"usage_percent" yaml:"usage_percent"`
}

// GPUInfo is one GPU device's utilization sample.
type GPUInfo struct {
	Index        int        `json:"index" yaml:"index"`
	Name         string     `json:"name,omitempty" yaml:"name,omitempty"`
	UsagePercent float64    `json:"usage_percent" yaml:"usage_percent"`
	MemoryLoad   MemoryLoad `json:"memory_load" yaml:"memory_load"`
}

// ProcessInfo is one process's resource usage sample.
type ProcessInfo struct {
	PID             int     `json:"pid" yaml:"pid"`
	Name            string  `json:"name,omitempty" yaml:"name,omitempty"`
	CPUUsagePercent float64 `json:"cpu_usage_percent" yaml:"cpu_usage_percent"`
	CPUMemoryBytes  int64   `json:"cpu_memory_bytes" yaml:"cpu_memory_bytes"`
	GPUUsagePercent float64 `json:"gpu_usage_percent" yaml:"gpu_usage_percent"`
	GPUMemoryBytes  int64   `json:"gpu_memory_bytes" yaml:"gpu_memory_bytes"`
	CPUsIndexes     []int   `json:"cpus_indexes" yaml:"cpus_indexes"`
	GPUsIndexes     []int   `json:"gpus_indexes" yaml:"gpus_indexes"`
}

// CPUsSnapshot holds all CPU cores plus system memory at one instant.
type CPUsSnapshot struct {
	CPUs   []CPUInfo  `json:"cpus" yaml:"cpus"`
	Memory MemoryLoad `json:"memory" yaml:"memory"`
}

// AverageUsage returns the mean usage across all cores, or 0 with no cores.
func (c CPUsSnapshot) AverageUsage() float64 {
	if len(c.CPUs) == 0 {
		return 0
	}
	var sum float64
	for _, cpu := range c.CPUs {
		sum += cpu.UsagePercent
	}
	return sum / float64(len(c.CPUs))
}

// GPUsSnapshot holds all GPU devices at one instant.
type GPUsSnapshot struct {
	GPUs []GPUInfo `json:"gpus" yaml:"gpus"`
}

// ProcessesSnapshot holds all monitored processes at one instant.
type ProcessesSnapshot struct {
	Processes []ProcessInfo `json:"processes" yaml:"processes"`
}

// TopCPU returns up to n processes sorted by descending CPU usage.
func (p ProcessesSnapshot) TopCPU(n int) []ProcessInfo {
	return p.top(n, func(a, b ProcessInfo) bool {
		return a.CPUUsagePercent > b.CPUUsagePercent
	})
}

// TopGPU returns up to n processes sorted by descending GPU usage.
func (p ProcessesSnapshot) TopGPU(n int) []ProcessInfo {
	return p.top(n, func(a, b ProcessInfo) bool {
		return a.GPUUsagePercent > b.GPUUsagePercent
	})
}

func (p ProcessesSnapshot) top(n int, less func(a, b ProcessInfo) bool) []ProcessInfo {
	procs := make([]ProcessInfo, len(p.Processes))
	copy(procs, p.Processes)
	sort.SliceStable(procs, func(i, j int) bool { return less(procs[i], procs[j]) })
	if n > len(procs) {
		n = len(procs)
	}
	return procs[:n]
}

// Snapshot is one node's complete resource state at one instant, written
// once by the monitoring agent and never mutated.
type Snapshot struct {
	Timestamp int64             `json:"timestamp" yaml:"timestamp"`
	CPUs      CPUsSnapshot      `json:"cpus_snapshot" yaml:"cpus_snapshot"`
	GPUs      GPUsSnapshot      `json:"gpus_snapshot" yaml:"gpus_snapshot"`
	Processes ProcessesSnapshot `json:"processes_snapshot" yaml:"processes_snapshot"`
}
