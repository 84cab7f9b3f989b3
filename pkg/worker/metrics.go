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

package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	launches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobscope_worker_launches_total",
			Help: "Successful worker launches by mode",
		},
		[]string{"mode"},
	)

	spawnFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jobscope_worker_spawn_failures_total",
			Help: "Workers that failed to start or died immediately",
		},
	)

	teardownEscalations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jobscope_worker_teardown_escalations_total",
			Help: "Teardowns that had to escalate from signal to kill",
		},
	)
)
