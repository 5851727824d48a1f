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

// Package models pkg/models/reading.go
package models

import "fmt"

// RawReading is one decoded duration, in seconds, attributed to a 1-based subject.
type RawReading struct {
	Subject int
	Seconds float64
}

// Duration is a seconds value broken down into clock units.
type Duration struct {
	Hours        int64 `json:"hours"`
	Minutes      int64 `json:"minutes"`
	Seconds      int64 `json:"seconds"`
	Milliseconds int64 `json:"milliseconds"`
}

func (d Duration) String() string {
	return fmt.Sprintf("%dh %dm %ds %dms", d.Hours, d.Minutes, d.Seconds, d.Milliseconds)
}

// FormattedReading pairs a subject with its formatted duration.
type FormattedReading struct {
	Subject  int      `json:"subject"`
	Label    string   `json:"label"`
	Duration Duration `json:"duration"`
}

// SubjectLabel returns the display name of subject i, e.g. "Subject 2".
func SubjectLabel(prefix string, i int) string {
	return fmt.Sprintf("%s %d", prefix, i)
}
