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

package models

import "time"

// TimeLayout is the wire form of every timestamp written or served.
const TimeLayout = "2006-01-02T15:04:05Z"

// DateLayout names the daily log file.
const DateLayout = "2006-01-02"

// FormatTime renders t in UTC using TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// LogRecord spans one interval between two consecutive successful logs.
// Records are immutable once appended.
type LogRecord struct {
	Start    time.Time          `json:"start"`
	End      time.Time          `json:"end"`
	Readings []FormattedReading `json:"readings"`
}

// Clone returns a deep copy of r.
func (r *LogRecord) Clone() *LogRecord {
	if r == nil {
		return nil
	}

	c := *r
	c.Readings = append([]FormattedReading(nil), r.Readings...)

	return &c
}

// Snapshot is the state exposed to the serving path. LastRecord is nil
// until the first successful log.
type Snapshot struct {
	InitTime   time.Time  `json:"init_time"`
	LastRecord *LogRecord `json:"last_record"`
}
