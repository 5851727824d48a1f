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

// Package ingest runs serial lines through decoding, formatting and interval
// logging, one line at a time and in arrival order.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/mfreeman451/datalogger/pkg/decode"
	"github.com/mfreeman451/datalogger/pkg/duration"
	"github.com/mfreeman451/datalogger/pkg/models"
	"golang.org/x/time/rate"
)

const (
	decodeLogEvery = 10 * time.Second
	decodeLogBurst = 5
)

// RecordLogger appends the readings of one completed line.
type RecordLogger interface {
	Log(ctx context.Context, readings []models.FormattedReading) (*models.LogRecord, error)
}

// Counters receives per-line failure events.
type Counters interface {
	DecodeFailed()
	StorageFailed()
}

// Pipeline is the single consumer of the serial link.
type Pipeline struct {
	decoder    *decode.Decoder
	label      string
	logger     RecordLogger
	counters   Counters
	limiter    *rate.Limiter
	suppressed int
}

// NewPipeline wires a decoder to a logger. counters may be nil.
func NewPipeline(decoder *decode.Decoder, label string, logger RecordLogger, counters Counters) *Pipeline {
	if counters == nil {
		counters = nopCounters{}
	}

	return &Pipeline{
		decoder:  decoder,
		label:    label,
		logger:   logger,
		counters: counters,
		limiter:  rate.NewLimiter(rate.Every(decodeLogEvery), decodeLogBurst),
	}
}

// Run consumes src until ctx is done or src reports io.EOF. Per-line
// failures are logged and never stop the loop.
func (p *Pipeline) Run(ctx context.Context, src LineSource) error {
	log.Printf("Ingestion pipeline started")

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		line, err := src.ReadLine()

		switch {
		case err == nil:
		case errors.Is(err, ErrTimeout):
			continue
		case errors.Is(err, ErrLineTooLong):
			p.counters.DecodeFailed()
			p.logDecodeFailure(err)

			continue
		case errors.Is(err, io.EOF):
			log.Printf("Serial source closed, ingestion pipeline stopping")
			return nil
		default:
			if ctx.Err() != nil {
				return nil
			}

			return fmt.Errorf("%w: %w", errReadLine, err)
		}

		if _, err := p.Process(ctx, line); err != nil && !errors.Is(err, decode.ErrDecodeFailed) {
			log.Printf("Dropping interval: %v", err)
		}
	}
}

// Process handles one line. It returns the logged record, or nil when the
// line was empty or rejected.
func (p *Pipeline) Process(ctx context.Context, line []byte) (*models.LogRecord, error) {
	raws, err := p.decoder.Decode(line)
	if err != nil {
		p.counters.DecodeFailed()
		p.logDecodeFailure(err)

		return nil, err
	}

	if len(raws) == 0 {
		return nil, nil
	}

	readings, err := duration.FormatReadings(p.label, raws)
	if err != nil {
		p.counters.DecodeFailed()
		p.logDecodeFailure(err)

		return nil, fmt.Errorf("%w: %w", decode.ErrDecodeFailed, err)
	}

	rec, err := p.logger.Log(ctx, readings)
	if err != nil {
		p.counters.StorageFailed()
		return nil, err
	}

	log.Printf("Logged interval %s - %s (%d subjects)",
		models.FormatTime(rec.Start), models.FormatTime(rec.End), len(rec.Readings))

	return rec, nil
}

func (p *Pipeline) logDecodeFailure(err error) {
	if !p.limiter.Allow() {
		p.suppressed++
		return
	}

	if p.suppressed > 0 {
		log.Printf("Cannot decode serial line: %v (%d similar messages suppressed)", err, p.suppressed)
		p.suppressed = 0

		return
	}

	log.Printf("Cannot decode serial line: %v", err)
}

type nopCounters struct{}

func (nopCounters) DecodeFailed()  {}
func (nopCounters) StorageFailed() {}
