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

package scope

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jobscope/jobscope/pkg/defaults"
	"github.com/jobscope/jobscope/pkg/errors"
	"github.com/jobscope/jobscope/pkg/server"
	"github.com/jobscope/jobscope/pkg/serializer"
	"github.com/jobscope/jobscope/pkg/slurm"
	"github.com/jobscope/jobscope/pkg/snapshot"
	"github.com/jobscope/jobscope/pkg/summary"
	"github.com/jobscope/jobscope/pkg/worker"
)

// Options configures one monitoring session.
type Options struct {
	Worker worker.Config

	// Refresh is the live view poll cadence.
	Refresh time.Duration

	// Headless suppresses the live table on stdout.
	Headless bool

	// Summary enables the postmortem report on exit.
	Summary bool
	// SummaryPath is where the report goes; empty means stdout.
	SummaryPath string
	// SummaryFormat defaults to JSON.
	SummaryFormat serializer.Format

	// Serve exposes the live state over HTTP on ServerConfig.Address.
	Serve        bool
	ServerConfig *server.Config
}

// Session is one monitoring run from launch to report.
type Session struct {
	id     string
	opts   Options
	runner slurm.Runner
	store  *snapshot.Store
	out    io.Writer

	// tempDir marks a session-owned snapshot directory, removed on exit.
	tempDir bool

	mu     sync.RWMutex
	latest map[string]snapshot.Entry
	polled bool
}

// NewSession prepares a session. When no output directory is
// configured, snapshots go to a session-scoped temp directory that is
// removed after the report is written.
func NewSession(opts Options, runner slurm.Runner) (*Session, error) {
	if opts.Refresh <= 0 {
		opts.Refresh = defaults.RefreshPeriod
	}

	s := &Session{
		id:     uuid.New().String(),
		opts:   opts,
		runner: runner,
		out:    os.Stdout,
	}

	if s.opts.Worker.OutputDir == "" {
		dir := filepath.Join(os.TempDir(), "jobscope-"+s.id[:8])
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating session directory: %w", err)
		}
		s.opts.Worker.OutputDir = dir
		s.tempDir = true
	}
	s.store = snapshot.NewStore(s.opts.Worker.OutputDir)

	return s, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// Dir returns the snapshot directory this session reads.
func (s *Session) Dir() string {
	return s.store.Dir()
}

// Run executes the session until ctx is cancelled, then tears the
// workers down and, when configured, writes the postmortem report.
// Workers are stopped even when Run returns an error after launch.
func (s *Session) Run(ctx context.Context) error {
	slog.Info("starting session",
		"session_id", s.id,
		"mode", s.opts.Worker.Mode,
		"dir", s.Dir())

	launcher, err := worker.NewLauncher(s.opts.Worker, s.runner)
	if err != nil {
		return err
	}
	handle, err := launcher.Launch(ctx)
	if err != nil {
		return err
	}

	// Teardown exactly once, before the report is built and on every
	// error path after launch.
	var once sync.Once
	teardown := func() { once.Do(func() { s.teardown(handle) }) }
	defer teardown()

	g, gctx := errgroup.WithContext(ctx)

	var srv *server.Server
	if s.opts.Serve {
		srv = server.New(s.opts.ServerConfig, s)
		g.Go(func() error {
			return srv.Start(gctx)
		})
	}

	g.Go(func() error {
		s.pollLoop(gctx, srv)
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	teardown()
	err = s.finish()
	if s.tempDir {
		if rmErr := os.RemoveAll(s.Dir()); rmErr != nil {
			slog.Warn("removing session directory", "dir", s.Dir(), "error", rmErr)
		}
	}
	return err
}

// pollLoop refreshes the cached per-node state until ctx is cancelled.
func (s *Session) pollLoop(ctx context.Context, srv *server.Server) {
	ticker := time.NewTicker(s.opts.Refresh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		latest, err := s.store.Latest(ctx)
		if err != nil {
			slog.Warn("snapshot poll failed", "error", err)
			continue
		}

		s.mu.Lock()
		s.latest = latest
		first := !s.polled
		s.polled = true
		s.mu.Unlock()

		if first && srv != nil {
			srv.SetReady(true)
		}
		if !s.opts.Headless {
			s.renderView(latest)
		}
	}
}

// teardown stops the workers and sweeps stale scheduler steps. In
// slurm mode the sweep runs even when the srun process refused to die;
// the steps are what actually burn allocation resources.
func (s *Session) teardown(handle worker.Handle) {
	if err := worker.Teardown(handle, defaults.TeardownGrace); err != nil {
		slog.Warn("worker teardown escalated", "error", err)
	}
	if s.opts.Worker.Mode == worker.ModeSlurm {
		reaper := slurm.NewReaper(s.runner, s.opts.Worker.AgentBinary)
		reaper.Reap(context.Background(), s.opts.Worker.JobID)
	}
	slog.Info("session stopped", "session_id", s.id)
}

// finish writes the postmortem report when one was requested.
func (s *Session) finish() error {
	if !s.opts.Summary {
		return nil
	}

	ctx := context.Background()
	report, err := summary.Build(ctx, s.store, time.Now().Unix())
	if err != nil {
		return errors.Wrap(errors.ErrCodeSnapshotParse, "building session summary", err)
	}

	format := s.opts.SummaryFormat
	if format.IsUnknown() {
		format = serializer.FormatJSON
	}
	w := serializer.NewFileWriterOrStdout(format, s.opts.SummaryPath)
	defer func() {
		if c, ok := w.(serializer.Closer); ok {
			if cerr := c.Close(); cerr != nil {
				slog.Warn("closing summary writer", "error", cerr)
			}
		}
	}()
	return w.Serialize(ctx, report)
}

// Nodes implements server.Provider from the cached poll state.
func (s *Session) Nodes(context.Context) (map[string]*server.NodeStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.polled {
		return nil, errors.New(errors.ErrCodeUnavailable, "no snapshot poll has completed yet")
	}

	nodes := make(map[string]*server.NodeStatus, len(s.latest))
	for host, entry := range s.latest {
		nodes[host] = nodeStatus(entry.Snapshot)
	}
	return nodes, nil
}

// Summary implements server.Provider with a fresh aggregation pass.
func (s *Session) Summary(ctx context.Context) (*summary.Report, error) {
	return summary.Build(ctx, s.store, time.Now().Unix())
}

func nodeStatus(snap *snapshot.Snapshot) *server.NodeStatus {
	st := &server.NodeStatus{
		Timestamp:          snap.Timestamp,
		CPUAvgUsagePercent: snap.CPUs.AverageUsage(),
		MemoryUsedBytes:    snap.CPUs.Memory.UsedBytes,
		MemoryUsagePercent: snap.CPUs.Memory.UsagePercent(),
	}
	for _, gpu := range snap.GPUs.GPUs {
		st.GPUUsagePercent = append(st.GPUUsagePercent, gpu.UsagePercent)
		st.GPUMemoryUsagePercent = append(st.GPUMemoryUsagePercent, gpu.MemoryLoad.UsagePercent())
	}
	return st
}
