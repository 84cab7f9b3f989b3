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

import "testing"

func TestParseJobState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code string
		want JobState
	}{
		{"R", StateRunning},
		{"PD", StatePending},
		{"CG", StateCompleting},
		{"F", StateFailed},
		{"CD", StateCompleted},
		{"CA", StateCancelled},
		{"S", StateUnknown},
		{"", StateUnknown},
	}
	for _, tc := range tests {
		if got := ParseJobState(tc.code); got != tc.want {
			t.Errorf("ParseJobState(%q) = %v, want %v", tc.code, got, tc.want)
		}
	}
}

func TestTerminal(t *testing.T) {
	t.Parallel()

	terminal := []JobState{StateCompleting, StateFailed, StateCompleted, StateCancelled}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Errorf("%v.Terminal() = false, want true", s)
		}
	}
	live := []JobState{StateRunning, StatePending, StateUnknown}
	for _, s := range live {
		if s.Terminal() {
			t.Errorf("%v.Terminal() = true, want false", s)
		}
	}
}
