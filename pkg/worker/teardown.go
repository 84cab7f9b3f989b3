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
	"log/slog"
	"time"

	"github.com/jobscope/jobscope/pkg/errors"
)

// Teardown stops the workers behind h: signal, wait out the grace
// period, then kill whatever is left. The workers are guaranteed gone
// when Teardown returns; the error only records that escalation was
// needed.
func Teardown(h Handle, grace time.Duration) error {
	h.SignalStop()
	if err := h.Wait(grace); err == nil || !errors.HasCode(err, errors.ErrCodeTeardownTimeout) {
		return nil
	}

	slog.Warn("worker ignored stop signal, killing", "grace", grace)
	teardownEscalations.Inc()
	h.ForceKill()
	_ = h.Wait(grace)
	return errors.New(errors.ErrCodeTeardownTimeout, "worker did not stop within the grace period")
}
