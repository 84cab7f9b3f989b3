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

// Package slurm talks to the Slurm scheduler through its command line
// tools. It polls job state with squeue, discovers a job's allocation
// shape with squeue and scontrol, and cancels stale monitoring steps
// with scancel. All scheduler access goes through the Runner interface
// so callers and tests can substitute canned CLI output.
package slurm
