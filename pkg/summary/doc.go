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

// Package summary aggregates snapshot history into a postmortem report.
//
// Unlike the live view, which only cares about each node's newest snapshot,
// the summary groups every readable snapshot per hostname into an ascending
// timeline. Hardware inventory fields (core count, GPU count, total memory)
// are computed as the running maximum across the timeline: an agent that is
// still initializing may report zeros or partial inventory in its first
// snapshots, and those startup artifacts must not survive into the report.
package summary
