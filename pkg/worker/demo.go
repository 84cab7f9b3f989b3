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
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/jobscope/jobscope/pkg/errors"
	"github.com/jobscope/jobscope/pkg/snapshot"
)

// demoKeepFiles caps how many snapshot files each synthetic node keeps.
const demoKeepFiles = 5

// demoLauncher fakes a fleet of nodes without any agent binary or
// scheduler, writing synthetic snapshots on the same cadence and with
// the same file discipline as the real agent.
type demoLauncher struct {
	cfg Config
}

func (l *demoLauncher) Launch(ctx context.Context) (Handle, error) {
	// The generator's lifetime belongs to its handle, not the launch call.
	genCtx, cancel := context.WithCancel(context.Background())
	h := &taskHandle{cancel: cancel, done: make(chan struct{})}

	// First round up front, so the session has data to show immediately.
	if err := l.writeRound(time.Now().Unix()); err != nil {
		cancel()
		close(h.done)
		return nil, errors.Wrap(errors.ErrCodeSpawnFailed, "demo generator failed to write", err)
	}
	launches.WithLabelValues(string(ModeDemo)).Inc()

	go l.run(genCtx, h)
	return h, nil
}

func (l *demoLauncher) run(ctx context.Context, h *taskHandle) {
	defer close(h.done)
	if l.cfg.Once {
		return
	}

	ticker := time.NewTicker(l.cfg.Period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := l.writeRound(time.Now().Unix()); err != nil {
				slog.Warn("demo snapshot write failed", "error", err)
			}
		}
	}
}

// writeRound writes one synthetic snapshot per node and prunes each
// node's history down to the newest demoKeepFiles files.
func (l *demoLauncher) writeRound(ts int64) error {
	for n := 0; n < l.cfg.DemoNodes; n++ {
		host := fmt.Sprintf("demo-node-%02d", n+1)
		if err := snapshot.WriteAtomic(l.cfg.OutputDir, host, l.synthesize(ts)); err != nil {
			return err
		}
		snapshot.Prune(l.cfg.OutputDir, host, demoKeepFiles)
	}
	return nil
}

func (l *demoLauncher) synthesize(ts int64) *snapshot.Snapshot {
	const (
		memTotal    = 64 << 30
		gpuMemTotal = 80 << 30
	)

	snap := &snapshot.Snapshot{Timestamp: ts}
	for i := 0; i < l.cfg.DemoCPUs; i++ {
		snap.CPUs.CPUs = append(snap.CPUs.CPUs, snapshot.CPUInfo{
			Index:        i,
			UsagePercent: rand.Float64() * 100,
		})
	}
	snap.CPUs.Memory = snapshot.MemoryLoad{
		UsedBytes:  int64(rand.Float64() * memTotal),
		TotalBytes: memTotal,
	}
	for i := 0; i < l.cfg.DemoGPUs; i++ {
		snap.GPUs.GPUs = append(snap.GPUs.GPUs, snapshot.GPUInfo{
			Index:        i,
			Name:         "Demo GPU",
			UsagePercent: rand.Float64() * 100,
			MemoryLoad: snapshot.MemoryLoad{
				UsedBytes:  int64(rand.Float64() * gpuMemTotal),
				TotalBytes: gpuMemTotal,
			},
		})
	}
	snap.Processes.Processes = []snapshot.ProcessInfo{
		{
			PID:             4242,
			Name:            "train",
			CPUUsagePercent: rand.Float64() * 100,
			CPUMemoryBytes:  int64(rand.Float64() * memTotal / 2),
			GPUUsagePercent: rand.Float64() * 100,
			GPUMemoryBytes:  int64(rand.Float64() * gpuMemTotal / 2),
		},
	}
	return snap
}

// taskHandle adapts an in-process goroutine to the Handle contract.
// Stopping and killing are the same operation; there is no process to
// escalate against.
type taskHandle struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func (t *taskHandle) SignalStop() { t.cancel() }
func (t *taskHandle) ForceKill()  { t.cancel() }

func (t *taskHandle) Wait(timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-t.done:
		return nil
	case <-timer.C:
		return errors.New(errors.ErrCodeTeardownTimeout, "demo generator still running after wait timeout")
	}
}
