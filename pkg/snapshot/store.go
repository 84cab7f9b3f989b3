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
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/jobscope/jobscope/pkg/errors"
)

// Entry pairs a parsed snapshot with the file reference it came from.
type Entry struct {
	Ref      FileRef
	Snapshot *Snapshot
}

// Store reads snapshot files from a shared directory. It is safe for use
// while agents are concurrently writing to the same directory: file-level
// failures are skipped, never propagated.
type Store struct {
	dir string
}

// NewStore creates a Store over the given snapshot directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the directory the store reads from.
func (s *Store) Dir() string {
	return s.dir
}

// List returns a FileRef for every directory entry that parses under the
// snapshot filename grammar. Malformed names are skipped silently.
func (s *Store) List() ([]FileRef, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot directory %q: %w", s.dir, err)
	}

	refs := make([]FileRef, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ref, ok := ParseFilename(entry.Name())
		if !ok {
			filenameSkips.Inc()
			continue
		}
		ref.Path = filepath.Join(s.dir, entry.Name())
		refs = append(refs, ref)
	}
	return refs, nil
}

// Load reads and decodes one snapshot file.
func (s *Store) Load(ref FileRef) (*Snapshot, error) {
	data, err := os.ReadFile(ref.Path)
	if err != nil {
		loadErrors.Inc()
		return nil, errors.WrapWithContext(errors.ErrCodeSnapshotParse,
			"failed to read snapshot file", err,
			map[string]any{"path": ref.Path, "hostname": ref.Hostname})
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		loadErrors.Inc()
		return nil, errors.WrapWithContext(errors.ErrCodeSnapshotParse,
			"failed to decode snapshot file", err,
			map[string]any{"path": ref.Path, "hostname": ref.Hostname})
	}
	return &snap, nil
}

// Latest returns the snapshot with the maximum timestamp for each hostname.
// The result is independent of directory iteration order. A node whose
// newest file cannot be read is absent from the result; other nodes are
// unaffected.
func (s *Store) Latest(ctx context.Context) (map[string]Entry, error) {
	refs, err := s.List()
	if err != nil {
		return nil, err
	}

	newest := make(map[string]FileRef)
	for _, ref := range refs {
		if cur, ok := newest[ref.Hostname]; !ok || ref.Timestamp > cur.Timestamp {
			newest[ref.Hostname] = ref
		}
	}

	out := make(map[string]Entry, len(newest))
	for hostname, ref := range newest {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		snap, err := s.Load(ref)
		if err != nil {
			// Possibly a partial write from a live agent; next refresh
			// will pick up a complete file.
			slog.Debug("skipping unreadable snapshot", "path", ref.Path, "error", err)
			continue
		}
		out[hostname] = Entry{Ref: ref, Snapshot: snap}
	}

	latestNodes.Set(float64(len(out)))
	return out, nil
}

// All returns every readable snapshot grouped by hostname, each group in
// ascending timestamp order. Unreadable files are skipped.
func (s *Store) All(ctx context.Context) (map[string][]Entry, error) {
	refs, err := s.List()
	if err != nil {
		return nil, err
	}

	out := make(map[string][]Entry)
	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		snap, err := s.Load(ref)
		if err != nil {
			slog.Debug("skipping unreadable snapshot", "path", ref.Path, "error", err)
			continue
		}
		out[ref.Hostname] = append(out[ref.Hostname], Entry{Ref: ref, Snapshot: snap})
	}

	for hostname := range out {
		group := out[hostname]
		sort.Slice(group, func(i, j int) bool {
			return group[i].Ref.Timestamp < group[j].Ref.Timestamp
		})
	}
	return out, nil
}

// WriteAtomic writes a snapshot for hostname into dir using write-then-rename
// so concurrent readers never observe a partial file.
func WriteAtomic(dir, hostname string, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	final := filepath.Join(dir, Filename(hostname, snap.Timestamp))
	tmp := final + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, final); err != nil {
		return fmt.Errorf("failed to publish snapshot: %w", err)
	}
	return nil
}

// Prune removes all but the newest keep files for hostname in dir, so a
// long-running writer does not grow the shared directory unbounded.
// Removal errors are ignored; a file may already be gone.
func Prune(dir, hostname string, keep int) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	var refs []FileRef
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ref, ok := ParseFilename(entry.Name())
		if !ok || ref.Hostname != hostname {
			continue
		}
		ref.Path = filepath.Join(dir, entry.Name())
		refs = append(refs, ref)
	}

	if len(refs) <= keep {
		return
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Timestamp < refs[j].Timestamp })
	for _, ref := range refs[:len(refs)-keep] {
		_ = os.Remove(ref.Path)
	}
}
