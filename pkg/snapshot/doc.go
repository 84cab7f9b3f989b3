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

// Package snapshot defines the per-node snapshot wire schema written by the
// monitoring agent and the Store that reads snapshot files back from the
// shared directory.
//
// Agents write files named
//
//	snapshot_<hostname>_<unix_timestamp>.json
//
// into a shared directory, each file an immutable point-in-time record of one
// node's CPU, memory, GPU, and process state. There is no locking: every
// agent owns a disjoint filename key space derived from its own hostname, and
// consumers tolerate missing or partially written files by skipping them.
// The Store never treats an unreadable file as fatal; the live view is a
// best-effort, eventually consistent picture of the cluster.
package snapshot
