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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	queries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobscope_slurm_queries_total",
			Help: "Scheduler CLI invocations by command",
		},
		[]string{"command"},
	)

	queryErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jobscope_slurm_query_errors_total",
			Help: "Scheduler CLI invocations that failed",
		},
	)

	pollCycles = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jobscope_slurm_poll_cycles_total",
			Help: "Completed job state poll cycles",
		},
	)

	stepsReaped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jobscope_slurm_steps_reaped_total",
			Help: "Stale monitoring steps cancelled by the reaper",
		},
	)
)
