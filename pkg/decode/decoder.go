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

// Package decode turns raw serial lines into per-subject readings.
package decode

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mfreeman451/datalogger/pkg/models"
)

// Format selects how a line is split into per-subject fields.
type Format string

const (
	// FormatCSV is the current producer format: "12.5,90.0".
	FormatCSV Format = "csv"
	// FormatMarker is the legacy format: "Sujeto 1: 12.500000. Sujeto 2: 90.000000. ".
	FormatMarker Format = "marker"
)

const (
	fieldSeparator  = ","
	markerSeparator = ". "
	valueSeparator  = ": "
)

// Decoder decodes one framed line at a time. It holds no state between lines.
type Decoder struct {
	format   Format
	marker   string
	expected int
}

// New returns a Decoder. When expected is positive, a line must carry exactly
// that many subjects.
func New(format Format, marker string, expected int) (*Decoder, error) {
	switch format {
	case FormatCSV:
	case FormatMarker:
		if strings.TrimSpace(marker) == "" {
			return nil, ErrMarkerRequired
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	return &Decoder{format: format, marker: marker, expected: expected}, nil
}

// Decode returns the readings of line in subject order. An empty line yields
// no readings and no error. Lines that are not valid UTF-8 go through Salvage
// first; any failure is reported wrapped in ErrDecodeFailed.
func (d *Decoder) Decode(line []byte) ([]models.RawReading, error) {
	strict := utf8.Valid(line)

	var text string
	if strict {
		text = strings.TrimSpace(string(line))
	} else {
		text = Salvage(line)
	}

	if text == "" {
		if strict {
			return nil, nil
		}

		return nil, fmt.Errorf("%w: nothing left after salvage", ErrDecodeFailed)
	}

	var (
		readings []models.RawReading
		err      error
	)

	switch d.format {
	case FormatMarker:
		readings, err = d.parseMarkers(text, strict)
	default:
		readings, err = parseFields(text)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailed, err)
	}

	if len(readings) == 0 {
		return nil, fmt.Errorf("%w: no subject fields", ErrDecodeFailed)
	}

	if d.expected > 0 && len(readings) != d.expected {
		return nil, fmt.Errorf("%w: %w: got %d, want %d", ErrDecodeFailed, ErrSubjectCount, len(readings), d.expected)
	}

	return readings, nil
}

// Salvage keeps only the bytes of line that are valid text on their own and
// drops the rest. It can silently lose data and is used only after strict
// decoding has failed.
func Salvage(line []byte) string {
	var b strings.Builder

	b.Grow(len(line))

	for _, c := range line {
		if c < utf8.RuneSelf {
			b.WriteByte(c)
		}
	}

	return strings.TrimSpace(b.String())
}

func parseFields(text string) ([]models.RawReading, error) {
	fields := strings.Split(text, fieldSeparator)
	readings := make([]models.RawReading, 0, len(fields))

	for i, field := range fields {
		seconds, err := parseSeconds(field)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i+1, err)
		}

		readings = append(readings, models.RawReading{Subject: i + 1, Seconds: seconds})
	}

	return readings, nil
}

// parseMarkers handles the legacy "<marker> i: <seconds>" sentences. Subjects
// are numbered in the order they appear. In lenient mode parts that are
// unreadable are skipped instead of failing the line.
func (d *Decoder) parseMarkers(text string, strict bool) ([]models.RawReading, error) {
	var readings []models.RawReading

	for _, part := range strings.Split(text, markerSeparator) {
		part = strings.TrimSuffix(strings.TrimSpace(part), ".")
		if part == "" {
			continue
		}

		if !strings.Contains(part, d.marker) {
			if strict {
				return nil, fmt.Errorf("%w: %q", errMalformedField, part)
			}

			continue
		}

		_, value, ok := strings.Cut(part, valueSeparator)
		if !ok {
			if strict {
				return nil, fmt.Errorf("%w: %q", errMalformedField, part)
			}

			continue
		}

		seconds, err := parseSeconds(value)
		if err != nil {
			if strict {
				return nil, err
			}

			continue
		}

		readings = append(readings, models.RawReading{Subject: len(readings) + 1, Seconds: seconds})
	}

	return readings, nil
}

func parseSeconds(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidValue, s)
	}

	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidValue, s)
	}

	return v, nil
}
