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

package defaults

import "time"

// Scheduler interaction intervals and timeouts.
const (
	// JobPollInterval is the cadence for polling job state while waiting
	// for a scheduler job to start running.
	JobPollInterval = 2 * time.Second

	// SchedulerQueryTimeout bounds a single scheduler CLI invocation.
	// Each call is expected to complete in well under a second; anything
	// longer indicates a wedged controller.
	SchedulerQueryTimeout = 10 * time.Second
)

// Worker process lifecycle timeouts.
const (
	// SpawnCheckDelay is how long to wait before checking that a locally
	// spawned agent did not die immediately.
	SpawnCheckDelay = 500 * time.Millisecond

	// DistributedSpawnCheckDelay is the immediate-failure check delay for
	// distributed launches, which take longer to fail visibly.
	DistributedSpawnCheckDelay = 1 * time.Second

	// TeardownGrace is how long a worker gets to exit after a graceful
	// stop signal before teardown escalates to force-kill.
	TeardownGrace = 3 * time.Second
)

// Monitoring loop defaults.
const (
	// RefreshPeriod is the default live-view refresh and agent sampling
	// period.
	RefreshPeriod = 2 * time.Second
)

// Server timeouts for the live-view HTTP server.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)
