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

package worker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobscope/jobscope/pkg/errors"
)

// fakeHandle is a scriptable worker: it exits on stop only when
// cooperative, and always exits on kill.
type fakeHandle struct {
	cooperative bool
	stopped     bool
	killed      bool
}

func (f *fakeHandle) SignalStop() { f.stopped = true }
func (f *fakeHandle) ForceKill()  { f.killed = true }

func (f *fakeHandle) Wait(time.Duration) error {
	if f.killed || (f.cooperative && f.stopped) {
		return nil
	}
	return errors.New(errors.ErrCodeTeardownTimeout, "still running")
}

func TestTeardownGraceful(t *testing.T) {
	t.Parallel()

	h := &fakeHandle{cooperative: true}
	require.NoError(t, Teardown(h, time.Millisecond))
	assert.True(t, h.stopped)
	assert.False(t, h.killed)
}

func TestTeardownEscalates(t *testing.T) {
	t.Parallel()

	h := &fakeHandle{cooperative: false}
	err := Teardown(h, time.Millisecond)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeTeardownTimeout, errors.CodeOf(err))
	assert.True(t, h.stopped)
	assert.True(t, h.killed)
}
