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

package snapshot

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	filePrefix = "snapshot_"
	fileSuffix = ".json"

	// UnknownHostname is assigned to legacy two-segment filenames that
	// carry no hostname.
	UnknownHostname = "unknown"
)

// FileRef identifies one snapshot file by the (hostname, timestamp) key
// parsed from its name. The hostname comes from the filename, never from
// the file contents.
type FileRef struct {
	Hostname  string
	Timestamp int64
	Path      string
}

// Filename builds the snapshot filename for a hostname and unix timestamp.
func Filename(hostname string, timestamp int64) string {
	return fmt.Sprintf("%s%s_%d%s", filePrefix, hostname, timestamp, fileSuffix)
}

// ParseFilename parses a snapshot file path into a FileRef.
//
// The grammar is snapshot_<hostname>_<unix_timestamp>.json where the hostname
// may itself contain underscores; everything between the first and last
// separator belongs to the hostname. The legacy two-segment form
// snapshot_<unix_timestamp>.json resolves to hostname "unknown".
//
// Names that fail the grammar return ok=false; callers skip them silently
// because the shared directory may contain unrelated files.
func ParseFilename(path string) (FileRef, bool) {
	base := filepath.Base(path)
	if !strings.HasPrefix(base, filePrefix) || !strings.HasSuffix(base, fileSuffix) {
		return FileRef{}, false
	}

	stem := strings.TrimSuffix(base, fileSuffix)
	parts := strings.Split(stem, "_")

	var hostname, tsRaw string
	switch {
	case len(parts) >= 3:
		hostname = strings.Join(parts[1:len(parts)-1], "_")
		tsRaw = parts[len(parts)-1]
	case len(parts) == 2:
		hostname = UnknownHostname
		tsRaw = parts[1]
	default:
		return FileRef{}, false
	}

	if hostname == "" {
		return FileRef{}, false
	}

	ts, err := strconv.ParseInt(tsRaw, 10, 64)
	if err != nil {
		return FileRef{}, false
	}

	return FileRef{Hostname: hostname, Timestamp: ts, Path: path}, true
}
