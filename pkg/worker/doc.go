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

// Package worker launches and supervises the monitoring agents that
// write snapshot files. Three launchers share one Handle contract: a
// local process on this host, an srun step fanned out across a Slurm
// job's nodes, and an in-process demo generator that needs no agent
// binary at all. Teardown stops any of them the same way, asking
// nicely first and escalating to a kill when the grace period runs out.
package worker
