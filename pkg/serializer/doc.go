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

// Package serializer provides encoding and decoding of monitoring data in
// multiple formats.
//
// # Supported Formats
//
// JSON:
//   - Machine-parseable, compact representation
//   - Suitable for API responses and programmatic consumption
//
// YAML:
//   - Human-readable with preserved structure
//   - Suitable for files kept under version control
//
// Table:
//   - Flattened key/value text representation
//   - Suitable for terminal viewing
//   - Write-only (no deserialization support)
//
// Usage:
//
//	writer := serializer.NewFileWriterOrStdout(serializer.FormatJSON, path)
//	defer writer.(serializer.Closer).Close()
//	if err := writer.Serialize(ctx, report); err != nil {
//		return err
//	}
package serializer
