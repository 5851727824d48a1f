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

package ingest

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, src LineSource) ([]string, []error) {
	t.Helper()

	var (
		lines []string
		errs  []error
	)

	for {
		line, err := src.ReadLine()
		if errors.Is(err, io.EOF) {
			return lines, errs
		}

		if err != nil {
			errs = append(errs, err)
			continue
		}

		lines = append(lines, string(line))
	}
}

func TestLineReader(t *testing.T) {
	lr := NewLineReader(strings.NewReader("12.5,90.0\r\n1,2\n\nlast"), 0)

	lines, errs := readAll(t, lr)
	assert.Empty(t, errs)
	assert.Equal(t, []string{"12.5,90.0", "1,2", "", "last"}, lines)
}

func TestLineReaderOneByteReads(t *testing.T) {
	lr := NewLineReader(iotest.OneByteReader(strings.NewReader("a,b\nc,d\n")), 0)

	lines, errs := readAll(t, lr)
	assert.Empty(t, errs)
	assert.Equal(t, []string{"a,b", "c,d"}, lines)
}

func TestLineReaderDropsLongLines(t *testing.T) {
	input := strings.Repeat("9", 600) + "\n1,2\n" + strings.Repeat("x", 700)
	lr := NewLineReader(strings.NewReader(input), 512)

	lines, errs := readAll(t, lr)
	assert.Equal(t, []string{"1,2"}, lines)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrLineTooLong)
}

func TestLineReaderLineLimit(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		lines []string
		errs  int
	}{
		{name: "terminated in one chunk", input: strings.Repeat("1", 40) + "\n2\n", max: 10, lines: []string{"2"}, errs: 1},
		{name: "exactly at limit", input: strings.Repeat("1", 10) + "\r\n", max: 10, lines: []string{strings.Repeat("1", 10)}},
		{name: "one past limit", input: strings.Repeat("1", 11) + "\n", max: 10, errs: 1},
		{name: "default limit", input: strings.Repeat("1", DefaultMaxLine+100) + "\nok\n", lines: []string{"ok"}, errs: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, errs := readAll(t, NewLineReader(strings.NewReader(tt.input), tt.max))
			assert.Equal(t, tt.lines, lines)
			require.Len(t, errs, tt.errs)

			for _, err := range errs {
				assert.ErrorIs(t, err, ErrLineTooLong)
			}
		})
	}
}

type timeoutReader struct {
	chunks []string
}

func (r *timeoutReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		return 0, io.EOF
	}

	c := r.chunks[0]
	r.chunks = r.chunks[1:]

	if c == "" {
		return 0, ErrTimeout
	}

	return copy(p, c), nil
}

func TestLineReaderKeepsPartialLineAcrossTimeouts(t *testing.T) {
	lr := NewLineReader(&timeoutReader{chunks: []string{"12.", "", "5,9", "", "0\n"}}, 0)

	_, err := lr.ReadLine()
	require.ErrorIs(t, err, ErrTimeout)

	_, err = lr.ReadLine()
	require.ErrorIs(t, err, ErrTimeout)

	line, err := lr.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "12.5,90", string(line))
}
