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

// Package logging provides structured logging utilities for jobscope components.
//
// It wraps the standard library slog package with jobscope-specific defaults:
// JSON output to stderr, environment-based log level configuration (LOG_LEVEL),
// module/version context injection, and source location tracking for debug logs.
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("jobscope", "v1.0.0")
//
//	    slog.Info("monitoring started", "jobid", jobID)
//	    slog.Debug("snapshot refresh", "nodes", n)
//	    slog.Error("attach failed", "error", err)
//	}
//
// The LOG_LEVEL environment variable controls verbosity when no explicit level
// is given (DEBUG, INFO, WARN, ERROR; case-insensitive; default INFO).
package logging
