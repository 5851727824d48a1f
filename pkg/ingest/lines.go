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
	"bytes"
	"errors"
	"io"
)

const (
	// DefaultMaxLine bounds one framed line from the serial link.
	DefaultMaxLine = 1024
	readChunk      = 256
)

// LineSource yields newline-framed lines, without the terminator.
type LineSource interface {
	ReadLine() ([]byte, error)
}

// LineReader frames lines from a byte stream. Partial lines survive
// ErrTimeout from the underlying reader; lines longer than the limit are
// dropped up to the next newline and reported as ErrLineTooLong.
type LineReader struct {
	r          io.Reader
	max        int
	buf        []byte
	pending    []byte
	discarding bool
	eof        bool
}

// NewLineReader returns a LineReader over r. A non-positive max selects DefaultMaxLine.
func NewLineReader(r io.Reader, max int) *LineReader {
	if max <= 0 {
		max = DefaultMaxLine
	}

	return &LineReader{
		r:   r,
		max: max,
		buf: make([]byte, readChunk),
	}
}

func (lr *LineReader) ReadLine() ([]byte, error) {
	for {
		if i := bytes.IndexByte(lr.pending, '\n'); i >= 0 {
			line := bytes.TrimSuffix(lr.pending[:i], []byte{'\r'})
			out := append([]byte(nil), line...)
			lr.pending = lr.pending[i+1:]

			if lr.discarding || len(out) > lr.max {
				lr.discarding = false
				return nil, ErrLineTooLong
			}

			return out, nil
		}

		if len(lr.pending) > lr.max {
			lr.pending = lr.pending[:0]
			lr.discarding = true
		}

		if lr.eof {
			return lr.flush()
		}

		n, err := lr.r.Read(lr.buf)
		lr.pending = append(lr.pending, lr.buf[:n]...)

		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			lr.eof = true
		default:
			return nil, err
		}
	}
}

// flush hands out an unterminated final line once the stream has ended.
func (lr *LineReader) flush() ([]byte, error) {
	if len(lr.pending) == 0 || lr.discarding {
		lr.pending = nil
		lr.discarding = false

		return nil, io.EOF
	}

	out := bytes.TrimSuffix(lr.pending, []byte{'\r'})
	lr.pending = nil

	return out, nil
}
