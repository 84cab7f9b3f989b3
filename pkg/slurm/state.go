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

// JobState is a Slurm job lifecycle state as reported by squeue.
type JobState string

const (
	// StateUnknown covers state codes this package does not model.
	// Unknown states are treated like pending and polled again.
	StateUnknown JobState = "unknown"
	// StatePending means the job is queued and has no allocated nodes yet.
	StatePending JobState = "pending"
	// StateRunning means the job's allocation is live and steps can attach.
	StateRunning JobState = "running"
	// StateCompleting means the job is tearing down its allocation.
	StateCompleting JobState = "completing"
	// StateFailed means the job exited with a non-zero code.
	StateFailed JobState = "failed"
	// StateCompleted means the job finished successfully.
	StateCompleted JobState = "completed"
	// StateCancelled means the job was cancelled by a user or admin.
	StateCancelled JobState = "cancelled"
)

// ParseJobState maps a compact squeue %t state code to a JobState.
func ParseJobState(code string) JobState {
	switch code {
	case "R":
		return StateRunning
	case "PD":
		return StatePending
	case "CG":
		return StateCompleting
	case "F":
		return StateFailed
	case "CD":
		return StateCompleted
	case "CA":
		return StateCancelled
	default:
		return StateUnknown
	}
}

// Terminal reports whether the state means the job will never (again)
// accept a new step. Completing is terminal: its allocation is already
// being released.
func (s JobState) Terminal() bool {
	switch s {
	case StateCompleting, StateFailed, StateCompleted, StateCancelled:
		return true
	default:
		return false
	}
}
