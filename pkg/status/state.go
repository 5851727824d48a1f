/*-
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package status holds the serving state shared between ingestion and the
// request servers. Updates are published as whole immutable snapshots through
// an atomic pointer, so a reader observes either the previous record or the
// new one, never a partially written one.
package status

import (
	"sync/atomic"
	"time"

	"github.com/mfreeman451/datalogger/pkg/models"
)

type State struct {
	current atomic.Pointer[models.Snapshot]
}

// New returns a State with no record yet.
func New(initTime time.Time) *State {
	s := &State{}
	s.current.Store(&models.Snapshot{InitTime: initTime})

	return s
}

// Publish installs rec as the latest record. The record is copied, callers
// may reuse their value afterwards.
func (s *State) Publish(rec *models.LogRecord) {
	for {
		old := s.current.Load()
		next := &models.Snapshot{InitTime: old.InitTime, LastRecord: rec.Clone()}

		if s.current.CompareAndSwap(old, next) {
			return
		}
	}
}

// Snapshot returns the current state. The returned record must not be modified.
func (s *State) Snapshot() models.Snapshot {
	return *s.current.Load()
}
