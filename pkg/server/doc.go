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

// Package server exposes a monitoring session's live state over HTTP.
//
// The server is read only. It renders whatever the session's Provider
// reports at request time:
//
//	GET /health      liveness
//	GET /ready       readiness (false until the first poll completes)
//	GET /metrics     Prometheus metrics
//	GET /v1/nodes    latest snapshot per node
//	GET /v1/summary  aggregated report over the whole session so far
//
// API endpoints run behind the standard middleware chain: metrics,
// request IDs, panic recovery, rate limiting and request logging.
package server
