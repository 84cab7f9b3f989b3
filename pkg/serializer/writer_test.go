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

package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string         `json:"name"`
	Count int            `json:"count"`
	Tags  []string       `json:"tags"`
	Meta  map[string]int `json:"meta,omitempty"`
}

func TestWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatJSON, &buf)

	in := sample{Name: "node-00", Count: 2, Tags: []string{"a", "b"}}
	require.NoError(t, w.Serialize(context.Background(), in))

	var out sample
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, in, out)
}

func TestWriterYAML(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatYAML, &buf)

	require.NoError(t, w.Serialize(context.Background(), sample{Name: "node-00"}))
	assert.Contains(t, buf.String(), "name: node-00")
}

func TestWriterTable(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatTable, &buf)

	in := sample{Name: "node-00", Count: 2, Tags: []string{"a"}, Meta: map[string]int{"x": 1}}
	require.NoError(t, w.Serialize(context.Background(), in))

	out := buf.String()
	assert.Contains(t, out, "FIELD")
	assert.Contains(t, out, "name")
	assert.Contains(t, out, "node-00")
	assert.Contains(t, out, "tags[0]")
	assert.Contains(t, out, "meta.x")
}

func TestWriterUnknownFormatDefaultsToJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(Format("bogus"), &buf)
	require.NoError(t, w.Serialize(context.Background(), sample{Name: "n"}))
	assert.True(t, strings.HasPrefix(strings.TrimSpace(buf.String()), "{"))
}

func TestNewFileWriterOrStdout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	s := NewFileWriterOrStdout(FormatJSON, path)

	require.NoError(t, s.Serialize(context.Background(), sample{Name: "n", Count: 1}))
	closer, ok := s.(Closer)
	require.True(t, ok)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out sample
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "n", out.Name)
}

func TestSupportedFormats(t *testing.T) {
	assert.ElementsMatch(t, []string{"json", "yaml", "table"}, SupportedFormats())
}
