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

package server

import (
	"context"
	"net/http"
	"time"

	"github.com/jobscope/jobscope/pkg/errors"
	"github.com/jobscope/jobscope/pkg/serializer"
	"github.com/jobscope/jobscope/pkg/summary"
)

// Provider supplies the session state the API renders. Implementations
// must be safe for concurrent use.
type Provider interface {
	// Nodes returns the latest known status per node.
	Nodes(ctx context.Context) (map[string]*NodeStatus, error)
	// Summary aggregates the whole session so far.
	Summary(ctx context.Context) (*summary.Report, error)
}

// NodeStatus is one node's most recent reading.
type NodeStatus struct {
	Timestamp             int64     `json:"timestamp" yaml:"timestamp"`
	CPUAvgUsagePercent    float64   `json:"cpu_avg_usage_percent" yaml:"cpu_avg_usage_percent"`
	MemoryUsedBytes       int64     `json:"memory_used_bytes" yaml:"memory_used_bytes"`
	MemoryUsagePercent    float64   `json:"memory_usage_percent" yaml:"memory_usage_percent"`
	GPUUsagePercent       []float64 `json:"gpu_usage_percent" yaml:"gpu_usage_percent"`
	GPUMemoryUsagePercent []float64 `json:"gpu_memory_usage_percent" yaml:"gpu_memory_usage_percent"`
}

// NodesResponse is the GET /v1/nodes payload.
type NodesResponse struct {
	Timestamp time.Time              `json:"timestamp" yaml:"timestamp"`
	Nodes     map[string]*NodeStatus `json:"nodes" yaml:"nodes"`
}

// handleNodes handles GET /v1/nodes
func (s *Server) handleNodes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, nil)
		return
	}

	nodes, err := s.provider.Nodes(r.Context())
	if err != nil {
		writeError(w, r, http.StatusServiceUnavailable, errors.ErrCodeUnavailable,
			"node state unavailable", true, map[string]any{"error": err.Error()})
		return
	}

	serializer.RespondJSON(w, http.StatusOK, NodesResponse{
		Timestamp: time.Now().UTC(),
		Nodes:     nodes,
	})
}

// handleSummary handles GET /v1/summary
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, nil)
		return
	}

	report, err := s.provider.Summary(r.Context())
	if err != nil {
		writeError(w, r, http.StatusServiceUnavailable, errors.ErrCodeUnavailable,
			"summary unavailable", true, map[string]any{"error": err.Error()})
		return
	}

	serializer.RespondJSON(w, http.StatusOK, report)
}
