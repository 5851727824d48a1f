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

package decode

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mfreeman451/datalogger/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCSV(t *testing.T) {
	d, err := New(FormatCSV, "", 2)
	require.NoError(t, err)

	readings, err := d.Decode([]byte("12.5,90.0\r\n"))
	require.NoError(t, err)

	assert.Equal(t, []models.RawReading{
		{Subject: 1, Seconds: 12.5},
		{Subject: 2, Seconds: 90},
	}, readings)
}

func TestDecodeCSVFieldCount(t *testing.T) {
	d, err := New(FormatCSV, "", 0)
	require.NoError(t, err)

	for k := 1; k <= 12; k++ {
		fields := make([]string, k)
		for i := range fields {
			fields[i] = fmt.Sprintf("%d.%d", i*37, i)
		}

		readings, err := d.Decode([]byte(strings.Join(fields, ",")))
		require.NoError(t, err)
		require.Len(t, readings, k)

		for i, r := range readings {
			assert.Equal(t, i+1, r.Subject)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name     string
		format   Format
		expected int
		line     []byte
		wantErr  error
	}{
		{name: "not_a_number", format: FormatCSV, line: []byte("12.5,abc"), wantErr: ErrInvalidValue},
		{name: "empty_field", format: FormatCSV, line: []byte("12.5,"), wantErr: ErrInvalidValue},
		{name: "negative", format: FormatCSV, line: []byte("-1.0,2"), wantErr: ErrInvalidValue},
		{name: "nan", format: FormatCSV, line: []byte("NaN"), wantErr: ErrInvalidValue},
		{name: "wrong_count", format: FormatCSV, expected: 3, line: []byte("1,2"), wantErr: ErrSubjectCount},
		{name: "salvage_leaves_nothing", format: FormatCSV, line: []byte{0xff, 0xfe}, wantErr: ErrDecodeFailed},
		{name: "marker_missing", format: FormatMarker, line: []byte("hello: 3. world"), wantErr: ErrDecodeFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New(tt.format, "Sujeto", tt.expected)
			require.NoError(t, err)

			readings, err := d.Decode(tt.line)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDecodeFailed)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, readings)
		})
	}
}

func TestDecodeEmptyLine(t *testing.T) {
	d, err := New(FormatCSV, "", 2)
	require.NoError(t, err)

	readings, err := d.Decode([]byte("  \r\n"))
	require.NoError(t, err)
	assert.Empty(t, readings)
}

func TestDecodeMarker(t *testing.T) {
	d, err := New(FormatMarker, "Sujeto", 0)
	require.NoError(t, err)

	readings, err := d.Decode([]byte("Sujeto 1: 12.500000. Sujeto 2: 90.000000. \n"))
	require.NoError(t, err)

	assert.Equal(t, []models.RawReading{
		{Subject: 1, Seconds: 12.5},
		{Subject: 2, Seconds: 90},
	}, readings)
}

func TestDecodeSalvage(t *testing.T) {
	t.Run("marker_line_with_noise", func(t *testing.T) {
		d, err := New(FormatMarker, "Sujeto", 0)
		require.NoError(t, err)

		line := []byte("\xffSujeto 1: 3.250000. \xc3Suj\xa9eto 2: 4.0. garbage\x80. ")
		readings, err := d.Decode(line)
		require.NoError(t, err)

		assert.Equal(t, []models.RawReading{
			{Subject: 1, Seconds: 3.25},
			{Subject: 2, Seconds: 4},
		}, readings)
	})

	t.Run("csv_line_with_noise", func(t *testing.T) {
		d, err := New(FormatCSV, "", 2)
		require.NoError(t, err)

		readings, err := d.Decode([]byte("1.5,\xfe2.5"))
		require.NoError(t, err)

		assert.Equal(t, []models.RawReading{
			{Subject: 1, Seconds: 1.5},
			{Subject: 2, Seconds: 2.5},
		}, readings)
	})
}

func TestSalvage(t *testing.T) {
	assert.Equal(t, "abc", Salvage([]byte("\xe2a\x82b\xacc")))
	assert.Equal(t, "", Salvage([]byte{0x80, 0x81, ' '}))
	assert.Equal(t, "12,3", Salvage([]byte(" 12,3 \n")))
}

func TestNew(t *testing.T) {
	_, err := New("xml", "", 0)
	require.ErrorIs(t, err, ErrUnknownFormat)

	_, err = New(FormatMarker, " ", 0)
	require.ErrorIs(t, err, ErrMarkerRequired)
}
