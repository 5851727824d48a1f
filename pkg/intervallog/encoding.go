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

package intervallog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mfreeman451/datalogger/pkg/models"
)

const (
	EncodingText = "text"
	EncodingJSON = "json"
)

// NewEncoder returns the encoder registered under name.
func NewEncoder(name string) (Encoder, error) {
	switch name {
	case EncodingText:
		return TextEncoder{}, nil
	case EncodingJSON, "":
		return JSONEncoder{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
}

// TextEncoder writes the flat sentence format:
//
//	Inicio: <start>. Final: <end>. Subject 1: 0h 0m 12s 500ms. Subject 2: ...
type TextEncoder struct{}

func (TextEncoder) Encode(rec *models.LogRecord) ([]byte, error) {
	var b bytes.Buffer

	fmt.Fprintf(&b, "Inicio: %s. Final: %s. ", models.FormatTime(rec.Start), models.FormatTime(rec.End))
	b.WriteString(TextEncoder{}.Summary(rec))
	b.WriteByte('\n')

	return b.Bytes(), nil
}

func (TextEncoder) Summary(rec *models.LogRecord) string {
	parts := make([]string, 0, len(rec.Readings))
	for _, r := range rec.Readings {
		parts = append(parts, fmt.Sprintf("%s: %s", r.Label, r.Duration))
	}

	return strings.Join(parts, ". ")
}

func (TextEncoder) Extension() string { return "txt" }

// JSONEncoder writes one object per line:
//
//	{"interval":{"start":"...","end":"..."},"subjects":{"Subject 1":"0h 0m 12s 500ms"}}
//
// Subjects keep their reading order, which encoding/json would not do for a map.
type JSONEncoder struct{}

type jsonInterval struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func (JSONEncoder) Encode(rec *models.LogRecord) ([]byte, error) {
	interval, err := json.Marshal(jsonInterval{
		Start: models.FormatTime(rec.Start),
		End:   models.FormatTime(rec.End),
	})
	if err != nil {
		return nil, err
	}

	subjects, err := encodeSubjects(rec)
	if err != nil {
		return nil, err
	}

	var b bytes.Buffer

	b.WriteString(`{"interval":`)
	b.Write(interval)
	b.WriteString(`,"subjects":`)
	b.Write(subjects)
	b.WriteString("}\n")

	return b.Bytes(), nil
}

func (JSONEncoder) Summary(rec *models.LogRecord) string {
	subjects, err := encodeSubjects(rec)
	if err != nil {
		return ""
	}

	return string(subjects)
}

func (JSONEncoder) Extension() string { return "json" }

func encodeSubjects(rec *models.LogRecord) ([]byte, error) {
	var b bytes.Buffer

	b.WriteByte('{')

	for i, r := range rec.Readings {
		if i > 0 {
			b.WriteByte(',')
		}

		key, err := json.Marshal(r.Label)
		if err != nil {
			return nil, err
		}

		val, err := json.Marshal(r.Duration.String())
		if err != nil {
			return nil, err
		}

		b.Write(key)
		b.WriteByte(':')
		b.Write(val)
	}

	b.WriteByte('}')

	return b.Bytes(), nil
}
