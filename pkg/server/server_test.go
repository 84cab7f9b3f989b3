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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobscope/jobscope/pkg/errors"
	"github.com/jobscope/jobscope/pkg/summary"
)

type fakeProvider struct {
	nodes  map[string]*NodeStatus
	report *summary.Report
	err    error
}

func (f *fakeProvider) Nodes(context.Context) (map[string]*NodeStatus, error) {
	return f.nodes, f.err
}

func (f *fakeProvider) Summary(context.Context) (*summary.Report, error) {
	return f.report, f.err
}

func testServer(p Provider) *Server {
	return New(NewConfig(), p)
}

func TestHandleHealth(t *testing.T) {
	t.Parallel()

	s := testServer(&fakeProvider{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	s.handleHealth(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
}

func TestHandleReadyLifecycle(t *testing.T) {
	t.Parallel()

	s := testServer(&fakeProvider{})

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	s.SetReady(true)
	rec = httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleNodes(t *testing.T) {
	t.Parallel()

	p := &fakeProvider{nodes: map[string]*NodeStatus{
		"node-a": {Timestamp: 100, CPUAvgUsagePercent: 42.5},
	}}
	s := testServer(p)

	rec := httptest.NewRecorder()
	s.setupRoutes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/nodes", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp NodesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Contains(t, resp.Nodes, "node-a")
	assert.Equal(t, int64(100), resp.Nodes["node-a"].Timestamp)
	assert.InDelta(t, 42.5, resp.Nodes["node-a"].CPUAvgUsagePercent, 0.001)
}

func TestHandleNodesProviderError(t *testing.T) {
	t.Parallel()

	s := testServer(&fakeProvider{err: errors.New(errors.ErrCodeUnavailable, "not polled yet")})

	rec := httptest.NewRecorder()
	s.setupRoutes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/nodes", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, errors.ErrCodeUnavailable, resp.Code)
	assert.True(t, resp.Retryable)
}

func TestHandleNodesMethodNotAllowed(t *testing.T) {
	t.Parallel()

	s := testServer(&fakeProvider{})

	rec := httptest.NewRecorder()
	s.setupRoutes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/nodes", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleSummary(t *testing.T) {
	t.Parallel()

	p := &fakeProvider{report: &summary.Report{
		GeneratedAt: 123,
		Nodes: map[string]*summary.NodeSummary{
			"node-a": {CPUCount: 8, SnapshotCount: 3},
		},
	}}
	s := testServer(p)

	rec := httptest.NewRecorder()
	s.setupRoutes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/summary", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp summary.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(123), resp.GeneratedAt)
	require.Contains(t, resp.Nodes, "node-a")
	assert.Equal(t, 8, resp.Nodes["node-a"].CPUCount)
}

func TestHandleDefault(t *testing.T) {
	t.Parallel()

	s := testServer(&fakeProvider{})

	rec := httptest.NewRecorder()
	s.setupRoutes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Name   string   `json:"name"`
		Routes []string `json:"routes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "jobscope", resp.Name)
	assert.Contains(t, resp.Routes, "GET /v1/nodes")
}
