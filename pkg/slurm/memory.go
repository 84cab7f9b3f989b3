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
	"math"
	"regexp"
	"strconv"
	"strings"
)

// memScope says what a memory expression is measured against.
type memScope int

const (
	scopeDefault memScope = iota
	scopePerNode
	scopePerCPU
)

// memExprRe matches a Slurm memory expression: a number, an optional
// binary unit, and an optional scope suffix ("n" per node, "c" per CPU).
var memExprRe = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?)([KMGTP]?)([nc]?)$`)

// parseMemExpr parses expressions like "4G", "512M", "16000", "2Gn" or
// "500Mc" into megabytes plus the scope the suffix declared. A missing
// unit means megabytes. Empty, zero and unparseable expressions report
// ok=false; zero means "no limit recorded", never an actual limit.
func parseMemExpr(expr string) (mb float64, scope memScope, ok bool) {
	m := memExprRe.FindStringSubmatch(strings.TrimSpace(expr))
	if m == nil {
		return 0, scopeDefault, false
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil || value == 0 {
		return 0, scopeDefault, false
	}

	switch m[2] {
	case "K":
		value /= 1024
	case "", "M":
	case "G":
		value *= 1024
	case "T":
		value *= 1024 * 1024
	case "P":
		value *= 1024 * 1024 * 1024
	}

	switch m[3] {
	case "n":
		scope = scopePerNode
	case "c":
		scope = scopePerCPU
	}
	return value, scope, true
}

// resolveMemoryMB derives the per-node memory limit in megabytes from
// scontrol job fields, trying ReqMem, then MinMemoryNode, then
// MinMemoryCPU. Per-CPU values are scaled by the node's effective CPU
// count. Returns nil when no field yields a usable value.
func resolveMemoryMB(fields map[string]string, cpusPerNode int) *int64 {
	cpus := effectiveCPUsPerNode(fields, cpusPerNode)

	if mb, scope, ok := parseMemExpr(fields["ReqMem"]); ok {
		if scope == scopePerCPU {
			mb *= float64(cpus)
		}
		return memMB(mb)
	}
	if mb, scope, ok := parseMemExpr(fields["MinMemoryNode"]); ok && scope != scopePerCPU {
		return memMB(mb)
	}
	if mb, _, ok := parseMemExpr(fields["MinMemoryCPU"]); ok {
		return memMB(mb * float64(cpus))
	}
	return nil
}

func memMB(mb float64) *int64 {
	v := int64(math.Ceil(mb))
	if v <= 0 {
		return nil
	}
	return &v
}

// effectiveCPUsPerNode prefers an explicitly known per-node CPU count
// and otherwise spreads the job's total CPUs across its nodes, rounding
// up. Falls back to 1 so a per-CPU value is never dropped entirely.
func effectiveCPUsPerNode(fields map[string]string, cpusPerNode int) int {
	if cpusPerNode > 0 {
		return cpusPerNode
	}
	numCPUs, okCPUs := firstInt(fields["NumCPUs"])
	numNodes, okNodes := firstInt(fields["NumNodes"])
	if okCPUs && okNodes && numCPUs > 0 && numNodes > 0 {
		return (numCPUs + numNodes - 1) / numNodes
	}
	return 1
}

// parseJobFields splits one-line scontrol output ("Key=Value Key=Value ...")
// into a field map. Tokens without "=" are ignored.
func parseJobFields(out string) map[string]string {
	fields := make(map[string]string)
	for _, token := range strings.Fields(out) {
		key, value, found := strings.Cut(token, "=")
		if !found || key == "" {
			continue
		}
		fields[key] = value
	}
	return fields
}

// firstInt returns the first run of digits in s as an int.
func firstInt(s string) (int, bool) {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			n, err := strconv.Atoi(s[start:i])
			return n, err == nil
		}
	}
	if start < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[start:])
	return n, err == nil
}
