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
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/jobscope/jobscope/pkg/snapshot"
)

// renderView prints one live table frame to the session's output, one
// row per node sorted by hostname.
func (s *Session) renderView(latest map[string]snapshot.Entry) {
	hosts := make([]string, 0, len(latest))
	for host := range latest {
		hosts = append(hosts, host)
	}
	sort.Strings(hosts)

	now := time.Now().Unix()
	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "NODE\tAGE\tCPU%%\tMEM%%\tGPU%%\tGPU MEM%%\n")
	for _, host := range hosts {
		snap := latest[host].Snapshot
		fmt.Fprintf(tw, "%s\t%s\t%.1f\t%.1f\t%s\t%s\n",
			host,
			ageString(now-snap.Timestamp),
			snap.CPUs.AverageUsage(),
			snap.CPUs.Memory.UsagePercent(),
			gpuColumn(snap, func(g snapshot.GPUInfo) float64 { return g.UsagePercent }),
			gpuColumn(snap, func(g snapshot.GPUInfo) float64 { return g.MemoryLoad.UsagePercent() }),
		)
	}
	if err := tw.Flush(); err != nil {
		return
	}
	fmt.Fprintln(s.out)
}

func ageString(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return (time.Duration(seconds) * time.Second).String()
}

// gpuColumn joins one figure per GPU, "-" when the node has none.
func gpuColumn(snap *snapshot.Snapshot, value func(snapshot.GPUInfo) float64) string {
	if len(snap.GPUs.GPUs) == 0 {
		return "-"
	}
	col := ""
	for i, gpu := range snap.GPUs.GPUs {
		if i > 0 {
			col += " "
		}
		col += fmt.Sprintf("%.1f", value(gpu))
	}
	return col
}
