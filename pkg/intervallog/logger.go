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

// Package intervallog builds contiguous interval records and appends them to
// durable storage.
package intervallog

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mfreeman451/datalogger/pkg/clock"
	"github.com/mfreeman451/datalogger/pkg/models"
)

// Publisher receives every successfully appended record.
type Publisher interface {
	Publish(rec *models.LogRecord)
}

// Logger owns the last logged boundary. Calls to Log are serialized.
type Logger struct {
	mu        sync.Mutex
	clock     clock.Clock
	appender  Appender
	encoder   Encoder
	publisher Publisher
	observers []Observer
	boundary  time.Time
}

// NewLogger starts the first interval at start, normally the first clock
// reading taken at startup.
func NewLogger(
	start time.Time, clk clock.Clock, appender Appender, encoder Encoder, publisher Publisher, observers ...Observer) *Logger {
	return &Logger{
		clock:     clk,
		appender:  appender,
		encoder:   encoder,
		publisher: publisher,
		observers: observers,
		boundary:  start,
	}
}

// Log records readings for the interval ending now. On append failure the
// boundary stays put and nothing is published, so the next successful log
// covers the lost interval as well.
func (l *Logger) Log(ctx context.Context, readings []models.FormattedReading) (*models.LogRecord, error) {
	if len(readings) == 0 {
		return nil, errNoReadings
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()

	rec := &models.LogRecord{
		Start:    l.boundary,
		End:      now,
		Readings: append([]models.FormattedReading(nil), readings...),
	}

	line, err := l.encoder.Encode(rec)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %w", ErrAppendFailed, errEncode, err)
	}

	if err := l.appender.Append(ctx, line); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAppendFailed, err)
	}

	l.boundary = now

	if l.publisher != nil {
		l.publisher.Publish(rec)
	}

	for _, o := range l.observers {
		if err := o.OnRecord(ctx, rec); err != nil {
			log.Printf("Record observer failed: %v", err)
		}
	}

	return rec, nil
}

// Boundary returns the end of the last successfully logged interval.
func (l *Logger) Boundary() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.boundary
}

// Encoder returns the record encoder in use.
func (l *Logger) Encoder() Encoder {
	return l.encoder
}
