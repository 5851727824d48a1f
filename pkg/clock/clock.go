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

// Package clock provides the wall-clock time source used to stamp interval boundaries.
package clock

import "time"

//go:generate mockgen -destination=mock_clock.go -package=clock github.com/mfreeman451/datalogger/pkg/clock Clock

// Clock supplies wall-clock readings. Synchronization against a network
// time source happens outside this process.
type Clock interface {
	Now() time.Time
}

// System reads the host clock in UTC at whole-second resolution.
type System struct{}

func (System) Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// Func adapts a plain function to Clock.
type Func func() time.Time

func (f Func) Now() time.Time {
	return f()
}
