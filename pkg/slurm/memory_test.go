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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMemExpr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		expr      string
		wantMB    float64
		wantScope memScope
		wantOK    bool
	}{
		{"4G", 4096, scopeDefault, true},
		{"512M", 512, scopeDefault, true},
		{"16000", 16000, scopeDefault, true},
		{"2048K", 2, scopeDefault, true},
		{"1T", 1024 * 1024, scopeDefault, true},
		{"1P", 1024 * 1024 * 1024, scopeDefault, true},
		{"2Gn", 2048, scopePerNode, true},
		{"500Mc", 500, scopePerCPU, true},
		{"1.5G", 1536, scopeDefault, true},
		{"0", 0, scopeDefault, false},
		{"0Mn", 0, scopeDefault, false},
		{"", 0, scopeDefault, false},
		{"banana", 0, scopeDefault, false},
		{"4Q", 0, scopeDefault, false},
	}
	for _, tc := range tests {
		mb, scope, ok := parseMemExpr(tc.expr)
		require.Equal(t, tc.wantOK, ok, "expr %q", tc.expr)
		if !ok {
			continue
		}
		assert.InDelta(t, tc.wantMB, mb, 0.001, "expr %q", tc.expr)
		assert.Equal(t, tc.wantScope, scope, "expr %q", tc.expr)
	}
}

func TestResolveMemoryMB(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		fields      map[string]string
		cpusPerNode int
		want        *int64
	}{
		{
			name:   "req mem per node",
			fields: map[string]string{"ReqMem": "4Gn"},
			want:   ptr(4096),
		},
		{
			name:        "req mem per cpu scaled",
			fields:      map[string]string{"ReqMem": "2Gc"},
			cpusPerNode: 4,
			want:        ptr(8192),
		},
		{
			name:   "req mem per cpu spread over nodes",
			fields: map[string]string{"ReqMem": "512Mc", "NumCPUs": "10", "NumNodes": "4"},
			// ceil(10/4) = 3 cpus per node
			want: ptr(1536),
		},
		{
			name:   "falls back to min memory node",
			fields: map[string]string{"ReqMem": "0", "MinMemoryNode": "8G"},
			want:   ptr(8192),
		},
		{
			name:        "falls back to min memory cpu",
			fields:      map[string]string{"MinMemoryCPU": "1G"},
			cpusPerNode: 8,
			want:        ptr(8192),
		},
		{
			name:   "zero everywhere means unknown",
			fields: map[string]string{"ReqMem": "0", "MinMemoryNode": "0", "MinMemoryCPU": "0"},
			want:   nil,
		},
		{
			name:   "no fields means unknown",
			fields: map[string]string{},
			want:   nil,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := resolveMemoryMB(tc.fields, tc.cpusPerNode)
			if tc.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tc.want, *got)
		})
	}
}

func TestParseJobFields(t *testing.T) {
	t.Parallel()

	out := "JobId=123 JobName=train UserId=alice(1000) ReqMem=4Gn NumNodes=2 NumCPUs=8 standalone\n"
	fields := parseJobFields(out)
	assert.Equal(t, "123", fields["JobId"])
	assert.Equal(t, "4Gn", fields["ReqMem"])
	assert.Equal(t, "2", fields["NumNodes"])
	_, ok := fields["standalone"]
	assert.False(t, ok)
}

func TestFirstInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"4", 4, true},
		{"  8 \n", 8, true},
		{"12(x2)", 12, true},
		{"cpu=16", 16, true},
		{"", 0, false},
		{"N/A", 0, false},
	}
	for _, tc := range tests {
		got, ok := firstInt(tc.in)
		assert.Equal(t, tc.wantOK, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func ptr(v int64) *int64 { return &v }
