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

import "testing"

func TestCadenceRelationships(t *testing.T) {
	// The teardown grace period must exceed one refresh so an agent mid-write
	// can finish before escalation.
	if TeardownGrace <= 0 {
		t.Error("TeardownGrace must be positive")
	}
	if JobPollInterval <= 0 {
		t.Error("JobPollInterval must be positive")
	}
	if SchedulerQueryTimeout <= JobPollInterval {
		t.Error("a single scheduler query should be allowed longer than one poll interval")
	}
	if DistributedSpawnCheckDelay < SpawnCheckDelay {
		t.Error("distributed spawns should get at least the local check delay")
	}
}
