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

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	filenameSkips = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jobscope_snapshot_filename_skips_total",
			Help: "Directory entries skipped for not matching the snapshot filename grammar",
		},
	)

	loadErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jobscope_snapshot_load_errors_total",
			Help: "Snapshot files skipped because they could not be read or decoded",
		},
	)

	latestNodes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "jobscope_snapshot_latest_nodes",
			Help: "Number of nodes present in the most recent latest-per-node query",
		},
	)
)
