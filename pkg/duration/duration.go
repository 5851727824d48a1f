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

// Package duration breaks second counts down into hours, minutes, seconds and milliseconds.
package duration

import (
	"errors"
	"fmt"
	"math"

	"github.com/mfreeman451/datalogger/pkg/models"
)

var (
	ErrNegative   = errors.New("negative duration")
	ErrNotFinite  = errors.New("duration is not finite")
	ErrOutOfRange = errors.New("duration out of range")
)

const (
	secondsPerHour   = 3600
	secondsPerMinute = 60
	millisPerSecond  = 1000
)

// Format converts seconds into a Duration. Milliseconds are the fractional
// part truncated toward zero, so 12.9999 yields 999ms, never a carry into seconds.
func Format(seconds float64) (models.Duration, error) {
	switch {
	case math.IsNaN(seconds) || math.IsInf(seconds, 0):
		return models.Duration{}, ErrNotFinite
	case seconds < 0:
		return models.Duration{}, fmt.Errorf("%w: %v", ErrNegative, seconds)
	case seconds >= math.MaxInt64:
		return models.Duration{}, fmt.Errorf("%w: %v", ErrOutOfRange, seconds)
	}

	whole := math.Trunc(seconds)
	total := int64(whole)

	ms := int64((seconds - whole) * millisPerSecond)
	if ms >= millisPerSecond {
		ms = millisPerSecond - 1
	}

	return models.Duration{
		Hours:        total / secondsPerHour,
		Minutes:      (total % secondsPerHour) / secondsPerMinute,
		Seconds:      total % secondsPerMinute,
		Milliseconds: ms,
	}, nil
}

// FormatReadings formats each reading and labels it "<label> <subject>".
func FormatReadings(label string, raws []models.RawReading) ([]models.FormattedReading, error) {
	out := make([]models.FormattedReading, 0, len(raws))

	for _, r := range raws {
		d, err := Format(r.Seconds)
		if err != nil {
			return nil, fmt.Errorf("subject %d: %w", r.Subject, err)
		}

		out = append(out, models.FormattedReading{
			Subject:  r.Subject,
			Label:    models.SubjectLabel(label, r.Subject),
			Duration: d,
		})
	}

	return out, nil
}
